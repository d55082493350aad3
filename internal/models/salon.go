package models

import (
	"time"

	"github.com/google/uuid"
)

type Salon struct {
	ID            uuid.UUID `json:"id"`
	Name          string    `json:"name"`
	Location      string    `json:"location,omitempty"`
	ContactNumber string    `json:"contact_number,omitempty"`
	SalonCode     string    `json:"salon_code"`
	Username      string    `json:"username"`
	// PasswordHash is the bcrypt hash used for salon dashboard login.
	PasswordHash string `json:"-"`
	// EncryptedPassword holds the AES-GCM-encrypted plaintext credential so
	// the platform admin can re-surface it. Never serialized.
	EncryptedPassword string    `json:"-"`
	CreatedAt         time.Time `json:"created_at"`
}

// HasContactNumber reports whether the salon can receive order messages.
func (s *Salon) HasContactNumber() bool {
	return s != nil && s.ContactNumber != ""
}
