package accounts

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Account is the persisted shape of a storefront user. The password hash is
// excluded from JSON so it can never leak through a response envelope.
type Account struct {
	ID        primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	Username  string             `json:"username" bson:"username"`
	Email     string             `json:"email" bson:"email"`
	Password  string             `json:"-" bson:"password"`
	IsAdmin   bool               `json:"isAdmin" bson:"isAdmin"`
	CreatedAt time.Time          `json:"createdAt" bson:"createdAt"`
}

// CreateAccountDTO holds the data required to persist a new account.
type CreateAccountDTO struct {
	Username     string
	Email        string
	PasswordHash string
	IsAdmin      bool
}

func (c CreateAccountDTO) toModel(now time.Time) *Account {
	return &Account{
		Username:  c.Username,
		Email:     c.Email,
		Password:  c.PasswordHash,
		IsAdmin:   c.IsAdmin,
		CreatedAt: now.UTC(),
	}
}
