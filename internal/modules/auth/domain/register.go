package domain

import (
	"crypto/sha256"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"time"

	"cardtable/internal/modules/core"

	"github.com/google/uuid"
)

type ActivationCode struct {
	ID            int64      `db:"id"`
	UserID        uuid.UUID  `db:"user_id"`
	SecurityStamp uuid.UUID  `db:"security_stamp"`
	ExpiresAt     time.Time  `db:"expires_at"`
	SentAt        *time.Time `db:"sent_at"`
	Token         string     `db:"token"`
	Used          bool       `db:"used"`
}

func CreateRegistrationActivationCode(user User, expiration time.Duration) (ActivationCode, error) {
	code := ActivationCode{
		UserID:        user.ID,
		SecurityStamp: user.SecurityStamp,
		ExpiresAt:     time.Now().UTC().Add(expiration),
	}

	serialized, err := json.Marshal(code)
	if err != nil {
		return ActivationCode{}, err
	}

	securityBytes, err := user.SecurityStamp.MarshalBinary()
	if err != nil {
		return ActivationCode{}, err
	}

	h := sha256.New()

	inputBytes := make([]byte, 0, len(securityBytes)+len(serialized))
	inputBytes = append(inputBytes, securityBytes...)
	inputBytes = append(inputBytes, serialized...)

	if _, err := h.Write(inputBytes); err != nil {
		return ActivationCode{}, err
	}

	code.Token = base64.URLEncoding.EncodeToString(h.Sum(nil))

	return code, nil
}

func ValidateUserActivationCode(code ActivationCode, user User) error {
	if time.Now().UTC().After(code.ExpiresAt) {
		return fmt.Errorf("confirmation token expired")
	}

	if code.Used {
		return fmt.Errorf("confirmation token already used")
	}

	if code.SecurityStamp != user.SecurityStamp {
		return fmt.Errorf("token security stamp does not match the user security stamp")
	}

	return nil
}

func RegistrationActivationEmail(user User, code ActivationCode, sender string) core.MailMessage {
	return core.MailMessage{
		Subject:    "Card table account verification",
		From:       sender,
		To:         []string{user.Email},
		IsHTML:     true,
		BodyString: fmt.Sprintf("Confirm your card table account with token: %s", code.Token),
	}
}
