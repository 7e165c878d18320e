package cart

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/srijeyam/tyrestore-backend/pkg/db"
)

// Repository exposes cart line persistence operations.
type Repository struct {
	coll *mongo.Collection
}

// NewRepository constructs a cart repo bound to the provided client.
func NewRepository(client *db.Client) *Repository {
	return &Repository{coll: client.Collection(db.CollectionCartItems)}
}

// ListByUser returns the cart lines for one account.
func (r *Repository) ListByUser(ctx context.Context, userID primitive.ObjectID) ([]Item, error) {
	cursor, err := r.coll.Find(ctx, bson.M{"userId": userID})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	items := []Item{}
	if err := cursor.All(ctx, &items); err != nil {
		return nil, err
	}
	return items, nil
}

// FindLine loads the single line for a (user, product) pair.
func (r *Repository) FindLine(ctx context.Context, userID primitive.ObjectID, productID string) (*Item, error) {
	var item Item
	filter := bson.M{"userId": userID, "productId": productID}
	if err := r.coll.FindOne(ctx, filter).Decode(&item); err != nil {
		return nil, err
	}
	return &item, nil
}

// Insert persists a new cart line.
func (r *Repository) Insert(ctx context.Context, item *Item) (*Item, error) {
	res, err := r.coll.InsertOne(ctx, item)
	if err != nil {
		return nil, err
	}
	if id, ok := res.InsertedID.(primitive.ObjectID); ok {
		item.ID = id
	}
	return item, nil
}

// SetQuantity replaces the quantity of an existing line and returns the
// updated document. Returns mongo.ErrNoDocuments when the line is missing.
func (r *Repository) SetQuantity(ctx context.Context, userID primitive.ObjectID, productID string, quantity int) (*Item, error) {
	filter := bson.M{"userId": userID, "productId": productID}
	update := bson.M{"$set": bson.M{"quantity": quantity}}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var item Item
	if err := r.coll.FindOneAndUpdate(ctx, filter, update, opts).Decode(&item); err != nil {
		return nil, err
	}
	return &item, nil
}

// DeleteLine removes one (user, product) line. Returns mongo.ErrNoDocuments
// when nothing matched.
func (r *Repository) DeleteLine(ctx context.Context, userID primitive.ObjectID, productID string) error {
	res, err := r.coll.DeleteOne(ctx, bson.M{"userId": userID, "productId": productID})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}

// Clear removes every line belonging to the user.
func (r *Repository) Clear(ctx context.Context, userID primitive.ObjectID) error {
	_, err := r.coll.DeleteMany(ctx, bson.M{"userId": userID})
	return err
}
