package game

import (
	"fmt"
	"net/http"
	"path"

	"cardtable/internal/modules/core"
	"cardtable/internal/modules/game/commands"
	"cardtable/internal/modules/game/domain"
	"cardtable/internal/modules/game/queries"

	"github.com/eskrenkovic/mediator-go"
	"github.com/go-chi/chi"
	"github.com/google/uuid"
)

type GameHTTPHandler struct{}

func NewGameHTTPHandler() *GameHTTPHandler {
	return &GameHTTPHandler{}
}

func gameID(r *http.Request) (uuid.UUID, error) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		return uuid.Nil, fmt.Errorf("invalid game id - '%s'", chi.URLParam(r, "id"))
	}

	return id, nil
}

func (h *GameHTTPHandler) HandleCreateGame(w http.ResponseWriter, r *http.Request) {
	command, err := core.RequestBody[commands.CreateGameCommand](r)
	if err != nil {
		core.WriteBadRequest(w, r, err)
		return
	}

	session := core.Session(r.Context())
	command.DealerID = session.UserID
	command.DealerName = session.DisplayName

	response, err := mediator.Send[commands.CreateGameCommand, commands.CreateGameResponse](r.Context(), command)
	if err != nil {
		core.WriteCommandError(w, r, err)
		return
	}

	location := path.Join(r.Host, "games", response.GameID)
	core.WriteCreated(w, r, location, response)
}

func (h *GameHTTPHandler) HandleListGames(w http.ResponseWriter, r *http.Request) {
	response, err := mediator.Send[queries.ListGamesQuery, []domain.Game](r.Context(), queries.ListGamesQuery{})
	if err != nil {
		core.WriteCommandError(w, r, err)
		return
	}

	core.WriteOK(w, r, response)
}

func (h *GameHTTPHandler) HandleGetGame(w http.ResponseWriter, r *http.Request) {
	id, err := gameID(r)
	if err != nil {
		core.WriteBadRequest(w, r, err)
		return
	}

	session := core.Session(r.Context())
	query := queries.GetGameQuery{
		GameID:          id,
		UserID:          session.UserID,
		UserDisplayName: session.DisplayName,
	}

	response, err := mediator.Send[queries.GetGameQuery, queries.GameView](r.Context(), query)
	if err != nil {
		core.WriteCommandError(w, r, err)
		return
	}

	core.WriteOK(w, r, response)
}

func (h *GameHTTPHandler) HandleJoinGame(w http.ResponseWriter, r *http.Request) {
	id, err := gameID(r)
	if err != nil {
		core.WriteBadRequest(w, r, err)
		return
	}

	session := core.Session(r.Context())
	command := commands.JoinGameCommand{
		GameID:     id,
		PlayerID:   session.UserID,
		PlayerName: session.DisplayName,
	}

	response, err := mediator.Send[commands.JoinGameCommand, domain.Game](r.Context(), command)
	if err != nil {
		core.WriteCommandError(w, r, err)
		return
	}

	core.WriteOK(w, r, response)
}

func (h *GameHTTPHandler) HandleShuffleDeck(w http.ResponseWriter, r *http.Request) {
	id, err := gameID(r)
	if err != nil {
		core.WriteBadRequest(w, r, err)
		return
	}

	command := commands.ShuffleDeckCommand{GameID: id, UserID: core.Session(r.Context()).UserID}

	response, err := mediator.Send[commands.ShuffleDeckCommand, domain.Game](r.Context(), command)
	if err != nil {
		core.WriteCommandError(w, r, err)
		return
	}

	core.WriteOK(w, r, response)
}

func (h *GameHTTPHandler) HandleDealCard(w http.ResponseWriter, r *http.Request) {
	id, err := gameID(r)
	if err != nil {
		core.WriteBadRequest(w, r, err)
		return
	}

	command, err := core.RequestBody[commands.DealCardCommand](r)
	if err != nil {
		core.WriteBadRequest(w, r, err)
		return
	}
	command.GameID = id
	command.UserID = core.Session(r.Context()).UserID

	response, err := mediator.Send[commands.DealCardCommand, domain.Game](r.Context(), command)
	if err != nil {
		core.WriteCommandError(w, r, err)
		return
	}

	core.WriteOK(w, r, response)
}

func (h *GameHTTPHandler) HandleEndHand(w http.ResponseWriter, r *http.Request) {
	id, err := gameID(r)
	if err != nil {
		core.WriteBadRequest(w, r, err)
		return
	}

	command := commands.EndHandCommand{GameID: id, UserID: core.Session(r.Context()).UserID}

	response, err := mediator.Send[commands.EndHandCommand, domain.Game](r.Context(), command)
	if err != nil {
		core.WriteCommandError(w, r, err)
		return
	}

	core.WriteOK(w, r, response)
}

func (h *GameHTTPHandler) HandleRevealHand(w http.ResponseWriter, r *http.Request) {
	id, err := gameID(r)
	if err != nil {
		core.WriteBadRequest(w, r, err)
		return
	}

	command := commands.RevealHandCommand{GameID: id, UserID: core.Session(r.Context()).UserID}

	response, err := mediator.Send[commands.RevealHandCommand, domain.Game](r.Context(), command)
	if err != nil {
		core.WriteCommandError(w, r, err)
		return
	}

	core.WriteOK(w, r, response)
}

func (h *GameHTTPHandler) HandleTogglePeek(w http.ResponseWriter, r *http.Request) {
	id, err := gameID(r)
	if err != nil {
		core.WriteBadRequest(w, r, err)
		return
	}

	command := commands.TogglePeekCommand{GameID: id, UserID: core.Session(r.Context()).UserID}

	response, err := mediator.Send[commands.TogglePeekCommand, domain.Game](r.Context(), command)
	if err != nil {
		core.WriteCommandError(w, r, err)
		return
	}

	core.WriteOK(w, r, response)
}
