package orders

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/srijeyam/tyrestore-backend/pkg/db"
)

// Repository exposes order persistence operations.
type Repository struct {
	coll *mongo.Collection
}

// NewRepository constructs an orders repo bound to the provided client.
func NewRepository(client *db.Client) *Repository {
	return &Repository{coll: client.Collection(db.CollectionOrders)}
}

// Insert persists a new order and returns it with the generated id.
func (r *Repository) Insert(ctx context.Context, order *Order) (*Order, error) {
	now := time.Now().UTC()
	order.CreatedAt = now
	order.UpdatedAt = now

	res, err := r.coll.InsertOne(ctx, order)
	if err != nil {
		return nil, err
	}
	if id, ok := res.InsertedID.(primitive.ObjectID); ok {
		order.ID = id
	}
	return order, nil
}

// FindByID loads an order by its ObjectID hex string.
func (r *Repository) FindByID(ctx context.Context, id string) (*Order, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, mongo.ErrNoDocuments
	}

	var order Order
	if err := r.coll.FindOne(ctx, bson.M{"_id": oid}).Decode(&order); err != nil {
		return nil, err
	}
	return &order, nil
}

// ListByUser returns one account's orders, newest first.
func (r *Repository) ListByUser(ctx context.Context, userID primitive.ObjectID) ([]Order, error) {
	return r.list(ctx, bson.M{"userId": userID})
}

// ListAll returns every order, newest first.
func (r *Repository) ListAll(ctx context.Context) ([]Order, error) {
	return r.list(ctx, bson.M{})
}

func (r *Repository) list(ctx context.Context, filter bson.M) ([]Order, error) {
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	cursor, err := r.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	orders := []Order{}
	if err := cursor.All(ctx, &orders); err != nil {
		return nil, err
	}
	return orders, nil
}

// UpdateStatus applies the provided state changes and bumps updatedAt.
// Returns mongo.ErrNoDocuments when the id does not match a document.
func (r *Repository) UpdateStatus(ctx context.Context, id string, req UpdateStatusRequest) (*Order, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, mongo.ErrNoDocuments
	}

	set := bson.M{"updatedAt": time.Now().UTC()}
	if req.Status != nil {
		set["status"] = *req.Status
	}
	if req.PaymentStatus != nil {
		set["paymentStatus"] = *req.PaymentStatus
	}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var order Order
	if err := r.coll.FindOneAndUpdate(ctx, bson.M{"_id": oid}, bson.M{"$set": set}, opts).Decode(&order); err != nil {
		return nil, err
	}
	return &order, nil
}
