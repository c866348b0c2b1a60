package controllers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"opdrape-backend/database"
	"opdrape-backend/models"
)

type UserController struct {
	store *database.Store
}

func NewUserController(store *database.Store) *UserController {
	return &UserController{store: store}
}

func (uc *UserController) GetProfile(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Authentication required"})
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	var user models.User
	if err := uc.store.Users.FindOne(ctx, bson.M{"_id": userID}).Decode(&user); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}

	c.JSON(http.StatusOK, user)
}

func (uc *UserController) UpdateProfile(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Authentication required"})
		return
	}

	var body struct {
		Name    *string         `json:"name"`
		Email   *string         `json:"email"`
		Phone   *string         `json:"phone"`
		Address *models.Address `json:"address"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	update := bson.M{}
	if body.Name != nil {
		update["name"] = *body.Name
	}
	if body.Email != nil {
		update["email"] = *body.Email
	}
	if body.Phone != nil {
		update["phone"] = *body.Phone
	}
	if body.Address != nil {
		update["address"] = *body.Address
	}
	if len(update) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "No valid fields to update"})
		return
	}
	update["updatedAt"] = time.Now()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	var updated models.User
	err := uc.store.Users.FindOneAndUpdate(ctx,
		bson.M{"_id": userID},
		bson.M{"$set": update},
		findOneAndUpdateAfter(),
	).Decode(&updated)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update profile"})
		return
	}

	c.JSON(http.StatusOK, updated)
}

func (uc *UserController) AddToWishlist(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Authentication required"})
		return
	}

	productID, err := primitive.ObjectIDFromHex(c.Param("productId"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid productId"})
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := uc.store.Products.FindOne(ctx, bson.M{"_id": productID}).Err(); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Product not found"})
		return
	}

	update := bson.M{"$addToSet": bson.M{"wishlist": productID}}
	var updated models.User
	err = uc.store.Users.FindOneAndUpdate(ctx, bson.M{"_id": userID}, update, findOneAndUpdateAfter()).Decode(&updated)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update wishlist"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"wishlist": updated.Wishlist})
}

func (uc *UserController) RemoveFromWishlist(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Authentication required"})
		return
	}

	productID, err := primitive.ObjectIDFromHex(c.Param("productId"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid productId"})
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	update := bson.M{"$pull": bson.M{"wishlist": productID}}
	var updated models.User
	err = uc.store.Users.FindOneAndUpdate(ctx, bson.M{"_id": userID}, update, findOneAndUpdateAfter()).Decode(&updated)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update wishlist"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"wishlist": updated.Wishlist})
}

// GetLegacyCart serves the embedded per-user cart list kept for older
// clients. Products are resolved to display fields with the first variant
// image and the effective price.
func (uc *UserController) GetLegacyCart(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Authentication required"})
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	var user models.User
	if err := uc.store.Users.FindOne(ctx, bson.M{"_id": userID}).Decode(&user); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}

	items := []gin.H{}
	cartTotal := 0.0
	for _, entry := range user.Cart {
		var product models.Product
		if err := uc.store.Products.FindOne(ctx, bson.M{"_id": entry.Product}).Decode(&product); err != nil {
			continue
		}

		imageURL := ""
		if len(product.ColorVariants) > 0 && len(product.ColorVariants[0].Images) > 0 {
			imageURL = product.ColorVariants[0].Images[0].URL
		}

		price, err := product.EffectivePrice()
		if err != nil {
			price = 0
		}
		subtotal := price * float64(entry.Quantity)
		cartTotal += subtotal

		items = append(items, gin.H{
			"product": gin.H{
				"id":       product.ID.Hex(),
				"name":     product.Name,
				"category": product.Category,
				"price":    price,
				"image":    imageURL,
			},
			"quantity": entry.Quantity,
			"subtotal": subtotal,
		})
	}

	c.JSON(http.StatusOK, gin.H{
		"items":      items,
		"totalItems": len(items),
		"cartTotal":  cartTotal,
	})
}
