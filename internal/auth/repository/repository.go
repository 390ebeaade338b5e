package repository

import (
	"time"

	authdomain "newsdesk-backend/internal/auth/domain"
)

// UserRepository defines persistence for users and refresh tokens.
type UserRepository interface {
	Create(user *authdomain.User) error
	FindByEmail(email string) (*authdomain.User, error)
	FindByID(id string) (*authdomain.User, error)
	Update(user *authdomain.User) error
	// FindStaleStrikes returns users carrying strikes whose last strike is
	// older than cutoff and who have no active block. Used by the
	// moderation sweep.
	FindStaleStrikes(cutoff time.Time) ([]authdomain.User, error)

	SaveRefreshToken(token *authdomain.RefreshToken) error
	FindRefreshToken(token string) (*authdomain.RefreshToken, error)
	DeleteRefreshToken(token string) error
}
