package usecase

import (
	authdomain "newsdesk-backend/internal/auth/domain"
	authdto "newsdesk-backend/internal/auth/dto"
)

// AuthUsecase covers registration, login and token validation.
type AuthUsecase interface {
	Register(req *authdto.RegisterRequest) (*authdto.TokenResponse, error)
	Login(req *authdto.LoginRequest) (*authdto.TokenResponse, error)
	Refresh(req *authdto.RefreshRequest) (*authdto.TokenResponse, error)
	ValidateToken(token string) (*authdomain.User, error)
	GetUserByEmail(email string) (*authdomain.User, error)
}
