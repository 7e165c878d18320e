package auth

import (
	"github.com/srijeyam/tyrestore-backend/internal/accounts"
)

// SignupRequest captures the payload for account creation.
type SignupRequest struct {
	Username string `json:"username" validate:"required,min=2"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
}

// LoginRequest captures the credentials sent to the login endpoint.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// Session is the token plus account shape returned by signup and login.
type Session struct {
	Token string            `json:"token"`
	User  *accounts.Account `json:"user"`
}
