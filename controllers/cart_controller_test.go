package controllers

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"opdrape-backend/models"
)

func TestResolveCartItem_Success(t *testing.T) {
	product := fixtureProduct()

	item, err := resolveCartItem(&product, cartItemRequest{
		ProductID: product.ID.Hex(),
		ColorName: "Red",
		SizeName:  "S",
		Quantity:  2,
	})

	require.NoError(t, err)
	assert.Equal(t, product.ID, item.Product)
	assert.Equal(t, "S", item.Size.Name)
	assert.Equal(t, 2, item.Size.Quantity)
	assert.Equal(t, 30.0, item.Price)
	assert.Equal(t, "Red", item.ColorVariant.Color.Name)
	assert.False(t, item.AddedAt.IsZero())
}

func TestResolveCartItem_Failures(t *testing.T) {
	tests := []struct {
		name string
		req  cartItemRequest
	}{
		{"unknown color", cartItemRequest{ColorName: "Green", SizeName: "M", Quantity: 1}},
		{"unknown size", cartItemRequest{ColorName: "Red", SizeName: "3XL", Quantity: 1}},
		{"insufficient stock", cartItemRequest{ColorName: "Red", SizeName: "S", Quantity: 3}},
		{"zero quantity", cartItemRequest{ColorName: "Red", SizeName: "S", Quantity: 0}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			product := fixtureProduct()
			_, err := resolveCartItem(&product, tt.req)
			assert.Error(t, err)
		})
	}
}

// Adding the same (product, color, size) twice yields one line item with the
// combined quantity, and the cart total follows.
func TestCartMergeProperty(t *testing.T) {
	product := fixtureProduct()
	cart := models.Cart{}

	first, err := resolveCartItem(&product, cartItemRequest{ColorName: "Red", SizeName: "M", Quantity: 2})
	require.NoError(t, err)
	second, err := resolveCartItem(&product, cartItemRequest{ColorName: "Red", SizeName: "M", Quantity: 3})
	require.NoError(t, err)

	cart.MergeItem(first)
	cart.MergeItem(second)

	require.Len(t, cart.Items, 1)
	assert.Equal(t, 5, cart.Items[0].Size.Quantity)
	assert.InDelta(t, 30.0*5, cart.TotalAmount, 0.001)
}
