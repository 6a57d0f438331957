package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Order status lifecycle: pending -> placed -> paid, or pending -> cancelled.
const (
	OrderStatusPending   = "pending"
	OrderStatusPlaced    = "placed"
	OrderStatusPaid      = "paid"
	OrderStatusCancelled = "cancelled"
)

// OrderItem snapshots the menu item's name and price at the time it was
// added. Later catalog edits do not change lines already in an order.
type OrderItem struct {
	MenuItemID primitive.ObjectID `bson:"menuItem" json:"menuItem"`
	ItemNumber int                `bson:"itemNumber" json:"itemNumber"`
	Name       string             `bson:"name" json:"name"`
	Price      float64            `bson:"price" json:"price"`
	Quantity   int                `bson:"quantity" json:"quantity"`
}

// Order defines the persisted order document.
type Order struct {
	ID               primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	SessionID        string             `bson:"sessionId" json:"sessionId"`
	Items            []OrderItem        `bson:"items" json:"items"`
	TotalAmount      float64            `bson:"totalAmount" json:"totalAmount"`
	Status           string             `bson:"status" json:"status"`
	ScheduledFor     *time.Time         `bson:"scheduledFor,omitempty" json:"scheduledFor,omitempty"`
	PaymentReference string             `bson:"paymentReference,omitempty" json:"paymentReference,omitempty"`
	CreatedAt        time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt        time.Time          `bson:"updatedAt" json:"updatedAt"`
}

// RecalculateTotal recomputes TotalAmount from the lines. It must be called
// after every change to Items; the total is never adjusted incrementally.
func (o *Order) RecalculateTotal() {
	total := 0.0
	for _, item := range o.Items {
		total += item.Price * float64(item.Quantity)
	}
	o.TotalAmount = total
}

// ShortID returns the last six hex characters of the order id, used when
// rendering order history to the visitor.
func (o *Order) ShortID() string {
	hex := o.ID.Hex()
	if len(hex) <= 6 {
		return hex
	}
	return hex[len(hex)-6:]
}
