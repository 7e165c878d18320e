package orders

import (
	"github.com/srijeyam/tyrestore-backend/pkg/types"
)

// CreateOrderRequest is the checkout payload. Field-level validation is
// deliberately collected by the service so a single response lists every
// violation at once.
type CreateOrderRequest struct {
	Items           []OrderItem            `json:"items"`
	TotalAmount     float64                `json:"totalAmount"`
	ShippingAddress *types.ShippingAddress `json:"shippingAddress"`
	PaymentMethod   PaymentMethod          `json:"paymentMethod"`
}

// UpdateStatusRequest is the admin payload for mutating fulfillment or
// settlement state. Both fields are optional; absent fields are untouched.
type UpdateStatusRequest struct {
	Status        *Status        `json:"status,omitempty"`
	PaymentStatus *PaymentStatus `json:"paymentStatus,omitempty"`
}
