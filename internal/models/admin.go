package models

import (
	"time"

	"github.com/google/uuid"
)

type Admin struct {
	ID       uuid.UUID `json:"id"`
	Username string    `json:"username"`
	Email    string    `json:"email"`
	// PasswordHash is never serialized.
	PasswordHash string `json:"-"`
	// ResetTokenHash is the SHA-256 hex of the emailed reset token.
	ResetTokenHash   string    `json:"-"`
	ResetTokenExpiry time.Time `json:"-"`
	CreatedAt        time.Time `json:"created_at"`
}

// CanResetWith reports whether the given hashed token matches and is unexpired.
func (a *Admin) CanResetWith(tokenHash string, now time.Time) bool {
	if a == nil || a.ResetTokenHash == "" {
		return false
	}
	return a.ResetTokenHash == tokenHash && now.Before(a.ResetTokenExpiry)
}
