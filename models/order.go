package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	OrderStatusPending    = "pending"
	OrderStatusProcessing = "processing"
	OrderStatusShipped    = "shipped"
	OrderStatusDelivered  = "delivered"
	OrderStatusCancelled  = "cancelled"
)

const (
	PaymentStatusPending = "pending"
	PaymentStatusPaid    = "paid"
	PaymentStatusFailed  = "failed"
)

const (
	PaymentMethodCreditCard = "credit_card"
	PaymentMethodDebitCard  = "debit_card"
	PaymentMethodPaypal     = "paypal"
	PaymentMethodCOD        = "cod"
	PaymentMethodBkash      = "bkash"
	PaymentMethodNagad      = "nagad"
)

var OrderStatuses = []string{
	OrderStatusPending, OrderStatusProcessing, OrderStatusShipped,
	OrderStatusDelivered, OrderStatusCancelled,
}

var PaymentMethods = []string{
	PaymentMethodCreditCard, PaymentMethodDebitCard, PaymentMethodPaypal,
	PaymentMethodCOD, PaymentMethodBkash, PaymentMethodNagad,
}

func IsValidOrderStatus(s string) bool   { return contains(OrderStatuses, s) }
func IsValidPaymentMethod(s string) bool { return contains(PaymentMethods, s) }

// IsWalletMethod reports whether a payment method is a mobile wallet, which
// requires payment details captured at checkout.
func IsWalletMethod(s string) bool {
	return s == PaymentMethodBkash || s == PaymentMethodNagad
}

// CanCancel reports whether an order in the given status may still be
// cancelled. Shipped, delivered and cancelled orders may not.
func CanCancel(status string) bool {
	return status == OrderStatusPending || status == OrderStatusProcessing
}

// OrderColorVariant is the snapshot of the chosen color embedded in a line
// item. It is decoupled from the live product so historical orders stay
// accurate after catalog edits.
type OrderColorVariant struct {
	Color  Color   `bson:"color" json:"color"`
	Images []Image `bson:"images" json:"images"`
}

// SizeSelection pairs a size name with the purchased quantity.
type SizeSelection struct {
	Name     string `bson:"name" json:"name"`
	Quantity int    `bson:"quantity" json:"quantity"`
}

type OrderItem struct {
	Product      primitive.ObjectID `bson:"product" json:"product"`
	Quantity     int                `bson:"quantity" json:"quantity"`
	Price        float64            `bson:"price" json:"price"`
	ColorVariant OrderColorVariant  `bson:"colorVariant" json:"colorVariant"`
	Size         SizeSelection      `bson:"size" json:"size"`
}

type PaymentDetails struct {
	PaymentNumber string `bson:"paymentNumber,omitempty" json:"paymentNumber,omitempty"`
	TransactionID string `bson:"transactionId,omitempty" json:"transactionId,omitempty"`
	CardLastFour  string `bson:"cardLastFour,omitempty" json:"cardLastFour,omitempty"`
	CardType      string `bson:"cardType,omitempty" json:"cardType,omitempty"`
}

type Order struct {
	ID              primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	User            primitive.ObjectID `bson:"user" json:"user"`
	Items           []OrderItem        `bson:"items" json:"items"`
	TotalAmount     float64            `bson:"totalAmount" json:"totalAmount"`
	ShippingAddress Address            `bson:"shippingAddress" json:"shippingAddress"`
	PaymentMethod   string             `bson:"paymentMethod" json:"paymentMethod"`
	PaymentDetails  *PaymentDetails    `bson:"paymentDetails,omitempty" json:"paymentDetails,omitempty"`
	PaymentStatus   string             `bson:"paymentStatus" json:"paymentStatus"`
	Status          string             `bson:"status" json:"status"`
	TrackingNumber  string             `bson:"trackingNumber,omitempty" json:"trackingNumber,omitempty"`
	Notes           string             `bson:"notes,omitempty" json:"notes,omitempty"`
	DeletedAt       *time.Time         `bson:"deletedAt,omitempty" json:"deletedAt,omitempty"`
	CreatedAt       time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt       time.Time          `bson:"updatedAt" json:"updatedAt"`
}

// OrderTotal sums price x purchased quantity across line items.
func OrderTotal(items []OrderItem) float64 {
	total := 0.0
	for _, item := range items {
		total += item.Price * float64(item.Size.Quantity)
	}
	return total
}
