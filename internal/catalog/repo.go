package catalog

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/srijeyam/tyrestore-backend/pkg/db"
)

// Repository exposes tyre catalog persistence operations.
type Repository struct {
	coll *mongo.Collection
}

// NewRepository constructs a catalog repo bound to the provided client.
func NewRepository(client *db.Client) *Repository {
	return &Repository{coll: client.Collection(db.CollectionTyres)}
}

// List returns the full catalog, newest first.
func (r *Repository) List(ctx context.Context) ([]Tyre, error) {
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	cursor, err := r.coll.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	tyres := []Tyre{}
	if err := cursor.All(ctx, &tyres); err != nil {
		return nil, err
	}
	return tyres, nil
}

// FindByID loads a tyre by its ObjectID hex string.
func (r *Repository) FindByID(ctx context.Context, id string) (*Tyre, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, mongo.ErrNoDocuments
	}

	var tyre Tyre
	if err := r.coll.FindOne(ctx, bson.M{"_id": oid}).Decode(&tyre); err != nil {
		return nil, err
	}
	return &tyre, nil
}

// Insert persists a new tyre and returns it with the generated id.
func (r *Repository) Insert(ctx context.Context, input TyreInput) (*Tyre, error) {
	tyre := fromInput(input)
	tyre.CreatedAt = time.Now().UTC()

	res, err := r.coll.InsertOne(ctx, tyre)
	if err != nil {
		return nil, err
	}
	if id, ok := res.InsertedID.(primitive.ObjectID); ok {
		tyre.ID = id
	}
	return tyre, nil
}

// Replace overwrites the mutable fields of an existing tyre. Returns
// mongo.ErrNoDocuments when the id does not match a document.
func (r *Repository) Replace(ctx context.Context, id string, input TyreInput) (*Tyre, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, mongo.ErrNoDocuments
	}

	update := bson.M{"$set": bson.M{
		"name":                 input.Name,
		"brand":                input.Brand,
		"price":                input.Price,
		"image":                input.Image,
		"rating":               input.Rating,
		"vehicleCompatibility": input.VehicleCompatibility,
		"size":                 input.Size,
		"type":                 input.Type,
		"features":             input.Features,
		"stock":                input.Stock,
		"vehicleType":          input.VehicleType,
		"vehicleModel":         input.VehicleModel,
	}}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var tyre Tyre
	if err := r.coll.FindOneAndUpdate(ctx, bson.M{"_id": oid}, update, opts).Decode(&tyre); err != nil {
		return nil, err
	}
	return &tyre, nil
}

// Delete removes a tyre. Returns mongo.ErrNoDocuments when nothing matched.
func (r *Repository) Delete(ctx context.Context, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return mongo.ErrNoDocuments
	}

	res, err := r.coll.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}

func fromInput(input TyreInput) *Tyre {
	return &Tyre{
		Name:                 input.Name,
		Brand:                input.Brand,
		Price:                input.Price,
		Image:                input.Image,
		Rating:               input.Rating,
		VehicleCompatibility: input.VehicleCompatibility,
		Size:                 input.Size,
		Type:                 input.Type,
		Features:             input.Features,
		Stock:                input.Stock,
		VehicleType:          input.VehicleType,
		VehicleModel:         input.VehicleModel,
	}
}
