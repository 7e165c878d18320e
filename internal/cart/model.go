package cart

import (
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Item is one cart line. Name, price, and image are denormalized from the
// catalog at the time the line is added.
type Item struct {
	ID           primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	UserID       primitive.ObjectID `json:"userId" bson:"userId"`
	ProductID    string             `json:"productId" bson:"productId"`
	Name         string             `json:"name" bson:"name"`
	Price        float64            `json:"price" bson:"price"`
	Image        string             `json:"image" bson:"image"`
	Quantity     int                `json:"quantity" bson:"quantity"`
	VehicleType  string             `json:"vehicleType" bson:"vehicleType"`
	VehicleModel string             `json:"vehicleModel" bson:"vehicleModel"`
}

// AddItemRequest is the payload for the upsert endpoint.
type AddItemRequest struct {
	ProductID    string  `json:"productId" validate:"required"`
	Name         string  `json:"name" validate:"required"`
	Price        float64 `json:"price" validate:"required,gt=0"`
	Image        string  `json:"image"`
	Quantity     int     `json:"quantity" validate:"required,gt=0"`
	VehicleType  string  `json:"vehicleType"`
	VehicleModel string  `json:"vehicleModel"`
}

// SetQuantityRequest is the payload for replacing a line's quantity.
type SetQuantityRequest struct {
	Quantity int `json:"quantity" validate:"required,gt=0"`
}
