package domain

import "time"

type OrderStatus string

const (
	StatusPending    OrderStatus = "pending"
	StatusProcessing OrderStatus = "processing"
	StatusShipped    OrderStatus = "shipped"
	StatusDelivered  OrderStatus = "delivered"
	StatusCancelled  OrderStatus = "cancelled"
)

// Valid reports enum membership. There is deliberately no transition graph:
// the admin console may overwrite any status with any other status.
func (s OrderStatus) Valid() bool {
	switch s {
	case StatusPending, StatusProcessing, StatusShipped, StatusDelivered, StatusCancelled:
		return true
	}
	return false
}

func (s OrderStatus) String() string {
	return string(s)
}

// OrderItem is a line frozen at checkout time. Price is the amount actually
// charged per unit: the sale price when one was active, the list price otherwise.
type OrderItem struct {
	ProductID string  `bson:"id" json:"id"`
	Name      string  `bson:"name" json:"name"`
	Price     float64 `bson:"price" json:"price"`
	Quantity  int     `bson:"quantity" json:"quantity"`
	Color     string  `bson:"color,omitempty" json:"color,omitempty"`
	Size      string  `bson:"size,omitempty" json:"size,omitempty"`
	Image     string  `bson:"image" json:"image"`
}

// Order is an immutable snapshot of a completed checkout. Status is the only
// field that may change after creation.
type Order struct {
	ID              string      `bson:"_id,omitempty" json:"id"`
	FullName        string      `bson:"full_name" json:"full_name"`
	Email           string      `bson:"email" json:"email"`
	ShippingAddress string      `bson:"shipping_address" json:"shipping_address"`
	PhoneNumber     string      `bson:"phone_number" json:"phone_number"`
	PaymentMethod   string      `bson:"payment_method" json:"payment_method"`
	Items           []OrderItem `bson:"cart_items" json:"cart_items"`
	Subtotal        float64     `bson:"subtotal" json:"subtotal"`
	DeliveryFee     float64     `bson:"delivery_fee" json:"delivery_fee"`
	Discount        float64     `bson:"discount" json:"discount"`
	Total           float64     `bson:"total" json:"total"`
	CreatedAt       time.Time   `bson:"created_at" json:"created_at"`
	Status          OrderStatus `bson:"status" json:"status"`
	ExpectedArrival string      `bson:"expected_arrival" json:"expected_arrival"`
	TrackingNumber  string      `bson:"tracking_number" json:"tracking_number"`
	IdempotencyKey  string      `bson:"idempotency_key,omitempty" json:"-"`
}
