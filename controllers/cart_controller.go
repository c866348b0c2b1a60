package controllers

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"opdrape-backend/database"
	"opdrape-backend/models"
)

type CartController struct {
	store *database.Store
}

func NewCartController(store *database.Store) *CartController {
	return &CartController{store: store}
}

type cartItemRequest struct {
	ProductID string `json:"productId"`
	ColorName string `json:"colorName"`
	SizeName  string `json:"sizeName"`
	Quantity  int    `json:"quantity"`
}

// resolveCartItem validates a requested selection against the live catalog
// and builds the authoritative line-item snapshot. Client-supplied decorative
// fields are never trusted.
func resolveCartItem(product *models.Product, req cartItemRequest) (models.CartItem, error) {
	var item models.CartItem

	if req.Quantity < 1 {
		return item, newRequestError(http.StatusBadRequest, "Quantity must be at least 1")
	}
	if len(product.ColorVariants) == 0 {
		return item, newRequestError(http.StatusBadRequest,
			fmt.Sprintf("Product %s has incomplete data (missing color variants)", product.Name))
	}

	variant := product.FindColorVariant(req.ColorName)
	if variant == nil {
		return item, newRequestError(http.StatusBadRequest,
			fmt.Sprintf("Color %q not found for product %s", req.ColorName, product.Name))
	}

	size := variant.FindSize(req.SizeName)
	if size == nil {
		return item, newRequestError(http.StatusBadRequest,
			fmt.Sprintf("Size %q not found for color %q for product %s", req.SizeName, req.ColorName, product.Name))
	}

	if size.Quantity < req.Quantity {
		return item, newRequestError(http.StatusBadRequest,
			fmt.Sprintf("Insufficient stock for size %q of color %q for product %s", req.SizeName, req.ColorName, product.Name))
	}

	price, err := product.EffectivePrice()
	if err != nil {
		return item, newRequestError(http.StatusBadRequest, err.Error())
	}

	item = models.CartItem{
		Product: product.ID,
		ColorVariant: models.OrderColorVariant{
			Color:  variant.Color,
			Images: variant.Images,
		},
		Size: models.SizeSelection{
			Name:     size.Name,
			Quantity: req.Quantity,
		},
		Price:   price,
		AddedAt: time.Now(),
	}
	return item, nil
}

func (cc *CartController) AddToCart(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Authentication required"})
		return
	}

	var req cartItemRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.ProductID == "" || req.ColorName == "" || req.SizeName == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing required fields"})
		return
	}

	productID, err := primitive.ObjectIDFromHex(req.ProductID)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid productId"})
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	var product models.Product
	if err := cc.store.Products.FindOne(ctx, bson.M{"_id": productID}).Decode(&product); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Product not found"})
		return
	}

	item, err := resolveCartItem(&product, req)
	if err != nil {
		respondError(c, err)
		return
	}

	cart, err := cc.loadOrCreateCart(ctx, userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load cart"})
		return
	}

	cart.MergeItem(item)
	if err := cc.saveCart(ctx, cart); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save cart"})
		return
	}

	cc.mirrorLegacyCartAdd(ctx, userID, productID, req.Quantity)

	c.JSON(http.StatusOK, cc.cartResponse(ctx, cart))
}

func (cc *CartController) GetCart(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Authentication required"})
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	var cart models.Cart
	err := cc.store.Carts.FindOne(ctx, bson.M{"user": userID}).Decode(&cart)
	if err == mongo.ErrNoDocuments {
		c.JSON(http.StatusOK, gin.H{"items": []gin.H{}, "totalItems": 0, "totalAmount": 0})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load cart"})
		return
	}

	c.JSON(http.StatusOK, cc.cartResponse(ctx, &cart))
}

func (cc *CartController) UpdateCartItem(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Authentication required"})
		return
	}

	var req cartItemRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.ProductID == "" || req.ColorName == "" || req.SizeName == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing required fields"})
		return
	}
	if req.Quantity < 1 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Quantity must be at least 1"})
		return
	}

	productID, err := primitive.ObjectIDFromHex(req.ProductID)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid productId"})
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	var cart models.Cart
	if err := cc.store.Carts.FindOne(ctx, bson.M{"user": userID}).Decode(&cart); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Cart not found"})
		return
	}

	index := cart.FindItem(productID, req.ColorName, req.SizeName)
	if index < 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "Item not found in cart"})
		return
	}

	var product models.Product
	if err := cc.store.Products.FindOne(ctx, bson.M{"_id": productID}).Decode(&product); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Product not found"})
		return
	}
	if variant := product.FindColorVariant(req.ColorName); variant != nil {
		if size := variant.FindSize(req.SizeName); size != nil && size.Quantity < req.Quantity {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Quantity exceeds available stock"})
			return
		}
	}

	cart.Items[index].Size.Quantity = req.Quantity
	cart.RecalculateTotals()

	if err := cc.saveCart(ctx, &cart); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save cart"})
		return
	}

	c.JSON(http.StatusOK, cc.cartResponse(ctx, &cart))
}

func (cc *CartController) RemoveFromCart(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Authentication required"})
		return
	}

	var req cartItemRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.ProductID == "" || req.ColorName == "" || req.SizeName == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing required fields"})
		return
	}

	productID, err := primitive.ObjectIDFromHex(req.ProductID)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid productId"})
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	var cart models.Cart
	if err := cc.store.Carts.FindOne(ctx, bson.M{"user": userID}).Decode(&cart); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Cart not found"})
		return
	}

	index := cart.FindItem(productID, req.ColorName, req.SizeName)
	if index < 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "Item not found in cart"})
		return
	}

	cart.Items = append(cart.Items[:index], cart.Items[index+1:]...)
	cart.RecalculateTotals()

	if err := cc.saveCart(ctx, &cart); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save cart"})
		return
	}

	// The legacy list is keyed by product only, so drop the whole product.
	cc.mirrorLegacyCartRemove(ctx, userID, productID)

	c.JSON(http.StatusOK, cc.cartResponse(ctx, &cart))
}

func (cc *CartController) ClearCart(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Authentication required"})
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	update := bson.M{"$set": bson.M{
		"items":       []models.CartItem{},
		"totalItems":  0,
		"totalAmount": 0,
		"updatedAt":   time.Now(),
	}}
	result, err := cc.store.Carts.UpdateOne(ctx, bson.M{"user": userID}, update)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to clear cart"})
		return
	}
	if result.MatchedCount == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "Cart not found"})
		return
	}

	_, _ = cc.store.Users.UpdateOne(ctx, bson.M{"_id": userID},
		bson.M{"$set": bson.M{"cart": []models.UserCartItem{}}})

	c.JSON(http.StatusOK, gin.H{"message": "Cart cleared successfully"})
}

func (cc *CartController) loadOrCreateCart(ctx context.Context, userID primitive.ObjectID) (*models.Cart, error) {
	var cart models.Cart
	err := cc.store.Carts.FindOne(ctx, bson.M{"user": userID}).Decode(&cart)
	if err == mongo.ErrNoDocuments {
		now := time.Now()
		cart = models.Cart{
			ID:        primitive.NewObjectID(),
			User:      userID,
			Items:     []models.CartItem{},
			CreatedAt: now,
			UpdatedAt: now,
		}
		if _, err := cc.store.Carts.InsertOne(ctx, cart); err != nil {
			return nil, err
		}
		return &cart, nil
	}
	if err != nil {
		return nil, err
	}
	return &cart, nil
}

func (cc *CartController) saveCart(ctx context.Context, cart *models.Cart) error {
	cart.UpdatedAt = time.Now()
	update := bson.M{"$set": bson.M{
		"items":       cart.Items,
		"totalItems":  cart.TotalItems,
		"totalAmount": cart.TotalAmount,
		"updatedAt":   cart.UpdatedAt,
	}}
	_, err := cc.store.Carts.UpdateOne(ctx, bson.M{"_id": cart.ID}, update)
	return err
}

// mirrorLegacyCartAdd keeps the embedded per-user cart list in sync for
// legacy readers. It only tracks product and quantity.
func (cc *CartController) mirrorLegacyCartAdd(ctx context.Context, userID, productID primitive.ObjectID, quantity int) {
	result, err := cc.store.Users.UpdateOne(ctx,
		bson.M{"_id": userID, "cart.product": productID},
		bson.M{"$inc": bson.M{"cart.$.quantity": quantity}},
	)
	if err == nil && result.MatchedCount == 0 {
		_, _ = cc.store.Users.UpdateOne(ctx,
			bson.M{"_id": userID},
			bson.M{"$push": bson.M{"cart": models.UserCartItem{Product: productID, Quantity: quantity}}},
		)
	}
}

func (cc *CartController) mirrorLegacyCartRemove(ctx context.Context, userID, productID primitive.ObjectID) {
	_, _ = cc.store.Users.UpdateOne(ctx,
		bson.M{"_id": userID},
		bson.M{"$pull": bson.M{"cart": bson.M{"product": productID}}},
	)
}

// cartResponse resolves item product refs to minimal display fields.
func (cc *CartController) cartResponse(ctx context.Context, cart *models.Cart) gin.H {
	items := make([]gin.H, 0, len(cart.Items))
	for _, item := range cart.Items {
		entry := gin.H{
			"colorVariant": item.ColorVariant,
			"size":         item.Size,
			"price":        item.Price,
			"subtotal":     item.Price * float64(item.Size.Quantity),
		}

		var summary models.ProductSummary
		if err := cc.store.Products.FindOne(ctx, bson.M{"_id": item.Product}).Decode(&summary); err == nil {
			entry["product"] = summary
		} else {
			entry["product"] = gin.H{"id": item.Product.Hex()}
		}
		items = append(items, entry)
	}

	return gin.H{
		"id":          cart.ID.Hex(),
		"items":       items,
		"totalItems":  cart.TotalItems,
		"totalAmount": cart.TotalAmount,
	}
}
