package controllers

import (
	"context"
	"net/http"
	"sort"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"opdrape-backend/database"
	"opdrape-backend/models"
)

type ReviewController struct {
	store *database.Store
}

func NewReviewController(store *database.Store) *ReviewController {
	return &ReviewController{store: store}
}

func (rc *ReviewController) GetProductReviews(c *gin.Context) {
	objID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid product ID"})
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	var product models.Product
	if err := rc.store.Products.FindOne(ctx, bson.M{"_id": objID}).Decode(&product); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Product not found"})
		return
	}

	reviews := append([]models.Rating(nil), product.Ratings...)
	sort.Slice(reviews, func(i, j int) bool {
		return reviews[i].CreatedAt.After(reviews[j].CreatedAt)
	})

	c.JSON(http.StatusOK, gin.H{
		"reviews":       reviews,
		"totalReviews":  len(reviews),
		"averageRating": product.AverageRating,
	})
}

func (rc *ReviewController) AddProductReview(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Authentication required"})
		return
	}

	objID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid product ID"})
		return
	}

	var body struct {
		Rating int      `json:"rating"`
		Review string   `json:"review"`
		Images []string `json:"images"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}
	if body.Rating < 1 || body.Rating > 5 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Rating must be between 1 and 5"})
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	var product models.Product
	if err := rc.store.Products.FindOne(ctx, bson.M{"_id": objID}).Decode(&product); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Product not found"})
		return
	}

	review := models.Rating{
		User:      userID,
		Rating:    body.Rating,
		Review:    body.Review,
		Images:    body.Images,
		CreatedAt: time.Now(),
	}

	existing := false
	for _, r := range product.Ratings {
		if r.User == userID {
			existing = true
			break
		}
	}

	if existing {
		// Replace this user's review in place.
		_, err = rc.store.Products.UpdateOne(ctx,
			bson.M{"_id": objID, "ratings.user": userID},
			bson.M{"$set": bson.M{"ratings.$": review}},
		)
	} else {
		_, err = rc.store.Products.UpdateOne(ctx,
			bson.M{"_id": objID},
			bson.M{"$push": bson.M{"ratings": review}},
		)
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save review"})
		return
	}

	if err := rc.recalculateRating(ctx, objID); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update rating"})
		return
	}

	message := "Review added successfully"
	if existing {
		message = "Review updated successfully"
	}
	c.JSON(http.StatusCreated, gin.H{"message": message, "review": review})
}

func (rc *ReviewController) DeleteProductReview(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Authentication required"})
		return
	}

	objID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid product ID"})
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	result, err := rc.store.Products.UpdateOne(ctx,
		bson.M{"_id": objID},
		bson.M{"$pull": bson.M{"ratings": bson.M{"user": userID}}},
	)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete review"})
		return
	}
	if result.MatchedCount == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "Product not found"})
		return
	}
	if result.ModifiedCount == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "Review not found"})
		return
	}

	if err := rc.recalculateRating(ctx, objID); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update rating"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Review deleted successfully"})
}

// recalculateRating rederives the denormalized average and count after a
// review mutation.
func (rc *ReviewController) recalculateRating(ctx context.Context, productID primitive.ObjectID) error {
	var product models.Product
	if err := rc.store.Products.FindOne(ctx, bson.M{"_id": productID}).Decode(&product); err != nil {
		return err
	}
	product.RecalculateRating()

	_, err := rc.store.Products.UpdateOne(ctx,
		bson.M{"_id": productID},
		bson.M{"$set": bson.M{
			"averageRating": product.AverageRating,
			"totalReviews":  product.TotalReviews,
		}},
	)
	return err
}
