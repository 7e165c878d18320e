package types

// ShippingAddress is embedded into an order at checkout. All six fields are
// required by order validation.
type ShippingAddress struct {
	FullName string `json:"fullName" bson:"fullName"`
	Address  string `json:"address" bson:"address"`
	City     string `json:"city" bson:"city"`
	State    string `json:"state" bson:"state"`
	Pincode  string `json:"pincode" bson:"pincode"`
	Phone    string `json:"phone" bson:"phone"`
}
