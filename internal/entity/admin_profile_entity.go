package entity

import (
	"time"

	"github.com/google/uuid"
)

// AdminProfile is the portfolio owner's public profile.
// The gateway only reads it to synthesize a default instruction.
type AdminProfile struct {
	Id           uuid.UUID
	Name         string
	Position     string
	Location     string
	Introduction string
	Education    string
	Skills       []string
	Email        string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
