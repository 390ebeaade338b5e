package domain

import (
	"time"

	"gorm.io/datatypes"
)

// Block kinds applied by the strike ledger.
const (
	BlockNone     = ""
	BlockCooldown = "cooldown"
	BlockLong     = "long_block"
)

type User struct {
	ID        string `json:"id" gorm:"primaryKey"`
	Email     string `json:"email" gorm:"uniqueIndex;not null"`
	Password  string `json:"-"` // Never return password in JSON
	Name      string `json:"name"`
	Provider  string `json:"provider"` // "email"

	// Strike state, mutated only by the strike ledger.
	StrikeCount   int            `json:"strike_count" gorm:"not null;default:0"`
	LastStrikeAt  *time.Time     `json:"last_strike_at,omitempty"`
	BlockedUntil  *time.Time     `json:"blocked_until,omitempty"`
	BlockType     string         `json:"block_type,omitempty"`
	StrikeHistory datatypes.JSON `json:"-"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// StrikeEvent is one entry in a user's strike history.
type StrikeEvent struct {
	Violation string    `json:"violation"`
	Content   string    `json:"content"` // truncated excerpt of the offending input
	At        time.Time `json:"at"`
}

type RefreshToken struct {
	Token     string    `json:"token" gorm:"primaryKey"`
	UserID    string    `json:"user_id" gorm:"index"`
	ExpiresAt time.Time `json:"expires_at"`
}
