package controllers

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/options"

	"opdrape-backend/database"
	"opdrape-backend/models"
)

type ProductController struct {
	store *database.Store
}

func NewProductController(store *database.Store) *ProductController {
	return &ProductController{store: store}
}

func (pc *ProductController) GetProducts(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "10"))
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 10
	}

	filter := bson.M{}
	if category := c.Query("category"); category != "" {
		filter["category"] = category
	}

	sort := bson.D{{Key: "createdAt", Value: -1}}
	if field := c.Query("sort"); field != "" {
		sort = bson.D{{Key: field, Value: 1}}
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	count, err := pc.store.Products.CountDocuments(ctx, filter)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	opts := options.Find().
		SetSort(sort).
		SetSkip(int64((page - 1) * limit)).
		SetLimit(int64(limit))

	cursor, err := pc.store.Products.Find(ctx, filter, opts)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	products := []models.Product{}
	if err := cursor.All(ctx, &products); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	totalPages := (count + int64(limit) - 1) / int64(limit)
	c.JSON(http.StatusOK, gin.H{
		"products":    products,
		"totalPages":  totalPages,
		"currentPage": page,
	})
}

func (pc *ProductController) GetProductByID(c *gin.Context) {
	objID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid product ID"})
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	var product models.Product
	if err := pc.store.Products.FindOne(ctx, bson.M{"_id": objID}).Decode(&product); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Product not found"})
		return
	}

	c.JSON(http.StatusOK, product)
}

func (pc *ProductController) GetProductsByCategory(c *gin.Context) {
	category := c.Param("category")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	cursor, err := pc.store.Products.Find(ctx, bson.M{"category": category})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	products := []models.Product{}
	if err := cursor.All(ctx, &products); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, products)
}

func (pc *ProductController) SearchProducts(c *gin.Context) {
	filter := bson.M{}

	if q := c.Query("q"); q != "" {
		pattern := primitive.Regex{Pattern: q, Options: "i"}
		filter["$or"] = []bson.M{
			{"name": pattern},
			{"description": pattern},
			{"tags": pattern},
		}
	}
	if category := c.Query("category"); category != "" {
		filter["category"] = category
	}

	price := bson.M{}
	if min := c.Query("minPrice"); min != "" {
		if v, err := strconv.ParseFloat(min, 64); err == nil {
			price["$gte"] = v
		}
	}
	if max := c.Query("maxPrice"); max != "" {
		if v, err := strconv.ParseFloat(max, 64); err == nil {
			price["$lte"] = v
		}
	}
	if len(price) > 0 {
		filter["basePrice"] = price
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	cursor, err := pc.store.Products.Find(ctx, filter)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	products := []models.Product{}
	if err := cursor.All(ctx, &products); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, products)
}

// GetRelatedProducts returns up to six products sharing the category,
// subcategory or a tag with the given product.
func (pc *ProductController) GetRelatedProducts(c *gin.Context) {
	objID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid product ID"})
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	var product models.Product
	if err := pc.store.Products.FindOne(ctx, bson.M{"_id": objID}).Decode(&product); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Product not found"})
		return
	}

	filter := bson.M{"_id": bson.M{"$ne": objID}}
	if product.Category != "" {
		filter["category"] = product.Category
	}
	if product.SubCategory != "" {
		filter["subCategory"] = product.SubCategory
	}
	if len(product.Tags) > 0 {
		filter["tags"] = bson.M{"$in": product.Tags}
	}

	cursor, err := pc.store.Products.Find(ctx, filter, options.Find().SetLimit(6))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	related := []models.Product{}
	if err := cursor.All(ctx, &related); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, related)
}
