package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type CartItem struct {
	Product      primitive.ObjectID `bson:"product" json:"product"`
	ColorVariant OrderColorVariant  `bson:"colorVariant" json:"colorVariant"`
	Size         SizeSelection      `bson:"size" json:"size"`
	Price        float64            `bson:"price" json:"price"`
	AddedAt      time.Time          `bson:"addedAt" json:"addedAt"`
}

// Cart is the single active cart document per user.
type Cart struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	User        primitive.ObjectID `bson:"user" json:"user"`
	Items       []CartItem         `bson:"items" json:"items"`
	TotalItems  int                `bson:"totalItems" json:"totalItems"`
	TotalAmount float64            `bson:"totalAmount" json:"totalAmount"`
	CreatedAt   time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt   time.Time          `bson:"updatedAt" json:"updatedAt"`
}

// RecalculateTotals rederives both denormalized totals from the current
// items. Totals are never patched incrementally, so partial updates cannot
// make them drift.
func (c *Cart) RecalculateTotals() {
	c.TotalItems = 0
	c.TotalAmount = 0
	for _, item := range c.Items {
		c.TotalItems += item.Size.Quantity
		c.TotalAmount += item.Price * float64(item.Size.Quantity)
	}
}

// FindItem returns the index of the line item matching the
// (product, color, size) merge key, or -1.
func (c *Cart) FindItem(productID primitive.ObjectID, colorName, sizeName string) int {
	for i, item := range c.Items {
		if item.Product == productID &&
			item.ColorVariant.Color.Name == colorName &&
			item.Size.Name == sizeName {
			return i
		}
	}
	return -1
}

// MergeItem merges a new selection into the cart: a duplicate
// (product, color, size) combination increments the existing quantity,
// anything else is appended. Totals are recomputed either way.
func (c *Cart) MergeItem(item CartItem) {
	if i := c.FindItem(item.Product, item.ColorVariant.Color.Name, item.Size.Name); i >= 0 {
		c.Items[i].Size.Quantity += item.Size.Quantity
	} else {
		c.Items = append(c.Items, item)
	}
	c.RecalculateTotals()
}
