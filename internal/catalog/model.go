package catalog

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Tyre is a catalog entry as stored and served.
type Tyre struct {
	ID                   primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	Name                 string             `json:"name" bson:"name"`
	Brand                string             `json:"brand" bson:"brand"`
	Price                float64            `json:"price" bson:"price"`
	Image                string             `json:"image" bson:"image"`
	Rating               float64            `json:"rating" bson:"rating"`
	VehicleCompatibility []string           `json:"vehicleCompatibility" bson:"vehicleCompatibility"`
	Size                 string             `json:"size" bson:"size"`
	Type                 string             `json:"type" bson:"type"`
	Features             []string           `json:"features" bson:"features"`
	Stock                int                `json:"stock" bson:"stock"`
	VehicleType          string             `json:"vehicleType" bson:"vehicleType"`
	VehicleModel         string             `json:"vehicleModel" bson:"vehicleModel"`
	CreatedAt            time.Time          `json:"createdAt" bson:"createdAt"`
}

// TyreInput is the admin payload for creating or replacing a tyre.
type TyreInput struct {
	Name                 string   `json:"name" validate:"required"`
	Brand                string   `json:"brand" validate:"required"`
	Price                float64  `json:"price" validate:"required,gt=0"`
	Image                string   `json:"image"`
	Rating               float64  `json:"rating" validate:"min=0,max=5"`
	VehicleCompatibility []string `json:"vehicleCompatibility"`
	Size                 string   `json:"size"`
	Type                 string   `json:"type"`
	Features             []string `json:"features"`
	Stock                int      `json:"stock" validate:"min=0"`
	VehicleType          string   `json:"vehicleType"`
	VehicleModel         string   `json:"vehicleModel"`
}
