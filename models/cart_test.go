package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func newCartItem(productID primitive.ObjectID, color, size string, quantity int, price float64) CartItem {
	return CartItem{
		Product: productID,
		ColorVariant: OrderColorVariant{
			Color: Color{Name: color, HexCode: "#FF0000"},
		},
		Size:  SizeSelection{Name: size, Quantity: quantity},
		Price: price,
	}
}

func TestRecalculateTotals(t *testing.T) {
	productID := primitive.NewObjectID()
	cart := Cart{
		Items: []CartItem{
			newCartItem(productID, "Red", "M", 2, 25),
			newCartItem(productID, "Blue", "L", 1, 40),
		},
	}

	cart.RecalculateTotals()

	assert.Equal(t, 3, cart.TotalItems)
	assert.InDelta(t, 90.0, cart.TotalAmount, 0.001)
}

func TestMergeItem_SameSelectionIncrementsQuantity(t *testing.T) {
	productID := primitive.NewObjectID()
	cart := Cart{}

	cart.MergeItem(newCartItem(productID, "Red", "M", 2, 25))
	cart.MergeItem(newCartItem(productID, "Red", "M", 3, 25))

	require.Len(t, cart.Items, 1)
	assert.Equal(t, 5, cart.Items[0].Size.Quantity)
	assert.InDelta(t, 125.0, cart.TotalAmount, 0.001)
	assert.Equal(t, 5, cart.TotalItems)
}

func TestMergeItem_DifferentSizeAppends(t *testing.T) {
	productID := primitive.NewObjectID()
	cart := Cart{}

	cart.MergeItem(newCartItem(productID, "Red", "M", 1, 25))
	cart.MergeItem(newCartItem(productID, "Red", "L", 1, 25))

	assert.Len(t, cart.Items, 2)
	assert.InDelta(t, 50.0, cart.TotalAmount, 0.001)
}

func TestMergeItem_DifferentColorAppends(t *testing.T) {
	productID := primitive.NewObjectID()
	cart := Cart{}

	cart.MergeItem(newCartItem(productID, "Red", "M", 1, 25))
	cart.MergeItem(newCartItem(productID, "Blue", "M", 1, 25))

	assert.Len(t, cart.Items, 2)
}

func TestFindItem(t *testing.T) {
	first := primitive.NewObjectID()
	second := primitive.NewObjectID()
	cart := Cart{
		Items: []CartItem{
			newCartItem(first, "Red", "M", 1, 25),
			newCartItem(second, "Blue", "L", 2, 40),
		},
	}

	assert.Equal(t, 1, cart.FindItem(second, "Blue", "L"))
	assert.Equal(t, -1, cart.FindItem(first, "Red", "L"))
	assert.Equal(t, -1, cart.FindItem(primitive.NewObjectID(), "Red", "M"))
}
