package auth

import (
	"github.com/golang-jwt/jwt/v5"
)

// TokenPayload captures the data available when minting a JWT.
type TokenPayload struct {
	UserID  string
	Email   string
	IsAdmin bool
}

// Claims represents the typed JWT issued to clients. The account id travels
// in the registered subject claim.
type Claims struct {
	Email   string `json:"email"`
	IsAdmin bool   `json:"isAdmin"`
	jwt.RegisteredClaims
}

// UserID returns the account identifier carried by the token.
func (c *Claims) UserID() string {
	if c == nil {
		return ""
	}
	return c.Subject
}
