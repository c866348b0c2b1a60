package controllers

import (
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"opdrape-backend/models"
)

func fixtureProduct() models.Product {
	return models.Product{
		ID:        primitive.NewObjectID(),
		Name:      "Classic Tee",
		Category:  "men",
		BasePrice: 30,
		ColorVariants: []models.ColorVariant{
			{
				Color:  models.Color{Name: "Red", HexCode: "#FF0000"},
				Images: []models.Image{{URL: "/uploads/products/red.jpg"}},
				Sizes: []models.Size{
					{Name: "S", Quantity: 2},
					{Name: "M", Quantity: 5},
				},
			},
			{
				Color:  models.Color{Name: "Blue", HexCode: "#0000FF"},
				Images: []models.Image{{URL: "/uploads/products/blue.jpg"}},
				Sizes: []models.Size{
					{Name: "L", Quantity: 0},
				},
			},
		},
	}
}

func TestValidatePaymentDetails(t *testing.T) {
	tests := []struct {
		name    string
		method  string
		details *models.PaymentDetails
		wantMsg string
	}{
		{"cod needs no details", models.PaymentMethodCOD, nil, ""},
		{"card needs no details", models.PaymentMethodCreditCard, nil, ""},
		{"unknown method", "bitcoin", nil, "Invalid payment method"},
		{"wallet without details", models.PaymentMethodBkash, nil,
			"For bkash payments, paymentNumber and transactionId are required"},
		{"wallet missing transaction id", models.PaymentMethodNagad,
			&models.PaymentDetails{PaymentNumber: "01712345678"},
			"For nagad payments, paymentNumber and transactionId are required"},
		{"payment number too short", models.PaymentMethodBkash,
			&models.PaymentDetails{PaymentNumber: "0171234", TransactionID: "TXN123456"},
			"Payment number should be a valid 11-digit phone number"},
		{"payment number non-numeric", models.PaymentMethodBkash,
			&models.PaymentDetails{PaymentNumber: "017A2345678", TransactionID: "TXN123456"},
			"Payment number should be a valid 11-digit phone number"},
		{"transaction id too short", models.PaymentMethodBkash,
			&models.PaymentDetails{PaymentNumber: "01712345678", TransactionID: "TX123"},
			"Transaction ID is invalid"},
		{"valid wallet payment", models.PaymentMethodBkash,
			&models.PaymentDetails{PaymentNumber: "01712345678", TransactionID: "TXN123456"}, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validatePaymentDetails(tt.method, tt.details)
			if tt.wantMsg == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Equal(t, tt.wantMsg, err.Error())

			var reqErr *requestError
			require.True(t, errors.As(err, &reqErr))
			assert.Equal(t, http.StatusBadRequest, reqErr.status)
		})
	}
}

func TestResolveOrderItem_Success(t *testing.T) {
	product := fixtureProduct()

	item, err := resolveOrderItem(&product, orderItemRequest{
		ProductID: product.ID.Hex(),
		ColorName: "Red",
		SizeName:  "M",
		Quantity:  3,
	})

	require.NoError(t, err)
	assert.Equal(t, product.ID, item.Product)
	assert.Equal(t, 3, item.Quantity)
	assert.Equal(t, 3, item.Size.Quantity)
	assert.Equal(t, "M", item.Size.Name)
	assert.Equal(t, 30.0, item.Price)
	// Snapshot comes from the catalog, not the client.
	assert.Equal(t, "#FF0000", item.ColorVariant.Color.HexCode)
	require.Len(t, item.ColorVariant.Images, 1)
	assert.Equal(t, "/uploads/products/red.jpg", item.ColorVariant.Images[0].URL)
}

func TestResolveOrderItem_SalePriceWins(t *testing.T) {
	product := fixtureProduct()
	product.SalePrice = 22.5

	item, err := resolveOrderItem(&product, orderItemRequest{ColorName: "Red", SizeName: "M", Quantity: 1})
	require.NoError(t, err)
	assert.Equal(t, 22.5, item.Price)
}

func TestResolveOrderItem_Failures(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*models.Product)
		req    orderItemRequest
		status int
	}{
		{
			"no color variants",
			func(p *models.Product) { p.ColorVariants = nil },
			orderItemRequest{ColorName: "Red", SizeName: "M", Quantity: 1},
			http.StatusBadRequest,
		},
		{
			"unknown color",
			nil,
			orderItemRequest{ColorName: "Green", SizeName: "M", Quantity: 1},
			http.StatusBadRequest,
		},
		{
			"unknown size for color",
			nil,
			orderItemRequest{ColorName: "Red", SizeName: "XL", Quantity: 1},
			http.StatusBadRequest,
		},
		{
			"insufficient stock",
			nil,
			orderItemRequest{ColorName: "Red", SizeName: "M", Quantity: 6},
			http.StatusBadRequest,
		},
		{
			"zero stock",
			nil,
			orderItemRequest{ColorName: "Blue", SizeName: "L", Quantity: 1},
			http.StatusBadRequest,
		},
		{
			"zero quantity",
			nil,
			orderItemRequest{ColorName: "Red", SizeName: "M", Quantity: 0},
			http.StatusBadRequest,
		},
		{
			"no valid price",
			func(p *models.Product) { p.BasePrice = 0; p.SalePrice = 0 },
			orderItemRequest{ColorName: "Red", SizeName: "M", Quantity: 1},
			http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			product := fixtureProduct()
			if tt.mutate != nil {
				tt.mutate(&product)
			}

			_, err := resolveOrderItem(&product, tt.req)
			require.Error(t, err)

			var reqErr *requestError
			require.True(t, errors.As(err, &reqErr))
			assert.Equal(t, tt.status, reqErr.status)
		})
	}
}

// Ordering the full remaining stock succeeds; a follow-up order for the same
// size then fails against the drained counter.
func TestResolveOrderItem_DrainsExactStock(t *testing.T) {
	product := fixtureProduct()

	item, err := resolveOrderItem(&product, orderItemRequest{ColorName: "Red", SizeName: "M", Quantity: 5})
	require.NoError(t, err)
	assert.Equal(t, 5, item.Size.Quantity)

	// Simulate the decrement landing.
	product.FindColorVariant("Red").FindSize("M").Quantity = 0

	_, err = resolveOrderItem(&product, orderItemRequest{ColorName: "Red", SizeName: "M", Quantity: 1})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Insufficient stock")
}

func TestOrderTotalMatchesResolvedItems(t *testing.T) {
	product := fixtureProduct()

	first, err := resolveOrderItem(&product, orderItemRequest{ColorName: "Red", SizeName: "M", Quantity: 2})
	require.NoError(t, err)
	second, err := resolveOrderItem(&product, orderItemRequest{ColorName: "Red", SizeName: "S", Quantity: 1})
	require.NoError(t, err)

	total := models.OrderTotal([]models.OrderItem{first, second})
	assert.InDelta(t, 2*30.0+1*30.0, total, 0.001)
}
