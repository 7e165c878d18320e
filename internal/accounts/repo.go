package accounts

import (
	"context"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/srijeyam/tyrestore-backend/pkg/db"
)

// Repository exposes account persistence operations.
type Repository struct {
	coll *mongo.Collection
}

// NewRepository constructs an accounts repo bound to the provided client.
func NewRepository(client *db.Client) *Repository {
	return &Repository{coll: client.Collection(db.CollectionAccounts)}
}

// Insert persists a new account and returns it with the generated id.
// Duplicate emails surface as a driver duplicate-key error.
func (r *Repository) Insert(ctx context.Context, dto CreateAccountDTO) (*Account, error) {
	account := dto.toModel(time.Now())
	account.Email = strings.ToLower(strings.TrimSpace(account.Email))

	res, err := r.coll.InsertOne(ctx, account)
	if err != nil {
		return nil, err
	}
	if id, ok := res.InsertedID.(primitive.ObjectID); ok {
		account.ID = id
	}
	return account, nil
}

// FindByEmail retrieves the account matching the provided email.
func (r *Repository) FindByEmail(ctx context.Context, email string) (*Account, error) {
	var account Account
	filter := bson.M{"email": strings.ToLower(strings.TrimSpace(email))}
	if err := r.coll.FindOne(ctx, filter).Decode(&account); err != nil {
		return nil, err
	}
	return &account, nil
}

// FindByID loads an account by its ObjectID hex string.
func (r *Repository) FindByID(ctx context.Context, id string) (*Account, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, mongo.ErrNoDocuments
	}

	var account Account
	if err := r.coll.FindOne(ctx, bson.M{"_id": oid}).Decode(&account); err != nil {
		return nil, err
	}
	return &account, nil
}

// FindFirstAdmin returns the oldest admin account, used as the notification
// fallback when no recipient list is configured.
func (r *Repository) FindFirstAdmin(ctx context.Context) (*Account, error) {
	opts := options.FindOne().SetSort(bson.D{{Key: "createdAt", Value: 1}})

	var account Account
	if err := r.coll.FindOne(ctx, bson.M{"isAdmin": true}, opts).Decode(&account); err != nil {
		return nil, err
	}
	return &account, nil
}
