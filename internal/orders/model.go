package orders

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/srijeyam/tyrestore-backend/pkg/types"
)

// Status is the fulfillment state of an order.
type Status string

const (
	StatusPending    Status = "Pending"
	StatusProcessing Status = "Processing"
	StatusShipped    Status = "Shipped"
	StatusDelivered  Status = "Delivered"
	StatusCancelled  Status = "Cancelled"
)

// IsValid reports whether the value is one of the known fulfillment states.
func (s Status) IsValid() bool {
	switch s {
	case StatusPending, StatusProcessing, StatusShipped, StatusDelivered, StatusCancelled:
		return true
	}
	return false
}

// PaymentStatus is the settlement state of an order.
type PaymentStatus string

const (
	PaymentPending PaymentStatus = "Pending"
	PaymentPaid    PaymentStatus = "Paid"
)

// IsValid reports whether the value is a known settlement state.
func (p PaymentStatus) IsValid() bool {
	return p == PaymentPending || p == PaymentPaid
}

// PaymentMethod is how the customer settles the order.
type PaymentMethod string

const (
	PaymentCOD    PaymentMethod = "cod"
	PaymentOnline PaymentMethod = "online"
)

// IsValid reports whether the value is a known payment method.
func (m PaymentMethod) IsValid() bool {
	return m == PaymentCOD || m == PaymentOnline
}

// OrderItem is a point-in-time snapshot of a purchased product. Snapshots are
// never re-synchronized with later catalog changes.
type OrderItem struct {
	ProductID string  `json:"productId" bson:"productId"`
	Name      string  `json:"name" bson:"name"`
	Price     float64 `json:"price" bson:"price"`
	Quantity  int     `json:"quantity" bson:"quantity"`
	Image     string  `json:"image" bson:"image"`
}

// Order is a placed order as stored and served.
type Order struct {
	ID              primitive.ObjectID    `json:"id" bson:"_id,omitempty"`
	UserID          primitive.ObjectID    `json:"userId" bson:"userId"`
	Items           []OrderItem           `json:"items" bson:"items"`
	TotalAmount     float64               `json:"totalAmount" bson:"totalAmount"`
	ShippingAddress types.ShippingAddress `json:"shippingAddress" bson:"shippingAddress"`
	PaymentMethod   PaymentMethod         `json:"paymentMethod" bson:"paymentMethod"`
	PaymentStatus   PaymentStatus         `json:"paymentStatus" bson:"paymentStatus"`
	Status          Status                `json:"status" bson:"status"`
	CreatedAt       time.Time             `json:"createdAt" bson:"createdAt"`
	UpdatedAt       time.Time             `json:"updatedAt" bson:"updatedAt"`
}
