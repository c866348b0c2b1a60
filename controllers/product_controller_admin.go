package controllers

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"opdrape-backend/database"
	"opdrape-backend/models"
)

type ProductAdminController struct {
	store *database.Store
}

func NewProductAdminController(store *database.Store) *ProductAdminController {
	return &ProductAdminController{store: store}
}

// validateColorVariants enforces the catalog invariants: at least one variant,
// each with a named color, a valid hex code, at least one image with a URL and
// at least one size drawn from the size enumeration with quantity >= 0.
func validateColorVariants(variants []models.ColorVariant) error {
	if len(variants) == 0 {
		return fmt.Errorf("product must have at least one color variant")
	}
	for _, variant := range variants {
		if variant.Color.Name == "" || variant.Color.HexCode == "" {
			return fmt.Errorf("each color variant must have color name and hexCode")
		}
		if !models.IsValidHexColor(variant.Color.HexCode) {
			return fmt.Errorf("color %q has an invalid hex code %q", variant.Color.Name, variant.Color.HexCode)
		}
		if len(variant.Images) == 0 {
			return fmt.Errorf("color variant %q must have at least one image", variant.Color.Name)
		}
		for _, image := range variant.Images {
			if image.URL == "" {
				return fmt.Errorf("images for color variant %q must have a URL", variant.Color.Name)
			}
		}
		if len(variant.Sizes) == 0 {
			return fmt.Errorf("color variant %q must have at least one size", variant.Color.Name)
		}
		for _, size := range variant.Sizes {
			if !models.IsValidSizeName(size.Name) {
				return fmt.Errorf("size name must be one of XS, S, M, L, XL, XXL, 3XL (found: %s)", size.Name)
			}
			if size.Quantity < 0 {
				return fmt.Errorf("size quantity must be a non-negative number (found: %d)", size.Quantity)
			}
		}
	}
	return nil
}

func validateProduct(p *models.Product) error {
	if p.Name == "" || p.Description == "" || p.Brand == "" {
		return fmt.Errorf("name, description and brand are required")
	}
	if !models.IsValidCategory(p.Category) {
		return fmt.Errorf("invalid category %q", p.Category)
	}
	if !models.IsValidSubCategory(p.SubCategory) {
		return fmt.Errorf("invalid subCategory %q", p.SubCategory)
	}
	if p.BasePrice < 0 || p.SalePrice < 0 {
		return fmt.Errorf("prices must be non-negative")
	}
	return validateColorVariants(p.ColorVariants)
}

func (pc *ProductAdminController) CreateProduct(c *gin.Context) {
	var product models.Product
	if err := c.ShouldBindJSON(&product); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	if err := validateProduct(&product); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	product.ID = primitive.NewObjectID()
	product.IsActive = true
	product.CreatedAt = time.Now()
	product.UpdatedAt = time.Now()
	product.RecalculateRating()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if _, err := pc.store.Products.InsertOne(ctx, product); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create product"})
		return
	}

	c.JSON(http.StatusCreated, product)
}

func (pc *ProductAdminController) UpdateProduct(c *gin.Context) {
	objID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid product ID"})
		return
	}

	var body struct {
		Name             *string                 `json:"name"`
		Description      *string                 `json:"description"`
		Category         *string                 `json:"category"`
		SubCategory      *string                 `json:"subCategory"`
		Brand            *string                 `json:"brand"`
		BasePrice        *float64                `json:"basePrice"`
		SalePrice        *float64                `json:"salePrice"`
		ColorVariants    []models.ColorVariant   `json:"colorVariants"`
		Features         []string                `json:"features"`
		Material         *string                 `json:"material"`
		CareInstructions []string                `json:"careInstructions"`
		Tags             []string                `json:"tags"`
		DisplayPage      *string                 `json:"displayPage"`
		IsActive         *bool                   `json:"isActive"`
		Metadata         *models.ProductMetadata `json:"metadata"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	update := bson.M{}
	if body.Name != nil {
		update["name"] = *body.Name
	}
	if body.Description != nil {
		update["description"] = *body.Description
	}
	if body.Category != nil {
		if !models.IsValidCategory(*body.Category) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid category"})
			return
		}
		update["category"] = *body.Category
	}
	if body.SubCategory != nil {
		if !models.IsValidSubCategory(*body.SubCategory) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid subCategory"})
			return
		}
		update["subCategory"] = *body.SubCategory
	}
	if body.Brand != nil {
		update["brand"] = *body.Brand
	}
	if body.BasePrice != nil {
		update["basePrice"] = *body.BasePrice
	}
	if body.SalePrice != nil {
		update["salePrice"] = *body.SalePrice
	}
	if body.ColorVariants != nil {
		if err := validateColorVariants(body.ColorVariants); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		update["colorVariants"] = body.ColorVariants
	}
	if body.Features != nil {
		update["features"] = body.Features
	}
	if body.Material != nil {
		update["material"] = *body.Material
	}
	if body.CareInstructions != nil {
		update["careInstructions"] = body.CareInstructions
	}
	if body.Tags != nil {
		update["tags"] = body.Tags
	}
	if body.DisplayPage != nil {
		update["displayPage"] = *body.DisplayPage
	}
	if body.IsActive != nil {
		update["isActive"] = *body.IsActive
	}
	if body.Metadata != nil {
		update["metadata"] = *body.Metadata
	}
	if len(update) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "No valid fields to update"})
		return
	}
	update["updatedAt"] = time.Now()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	var updated models.Product
	err = pc.store.Products.FindOneAndUpdate(ctx, bson.M{"_id": objID}, bson.M{"$set": update}, findOneAndUpdateAfter()).Decode(&updated)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Product not found"})
		return
	}

	c.JSON(http.StatusOK, updated)
}

func (pc *ProductAdminController) DeleteProduct(c *gin.Context) {
	objID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid product ID"})
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	result, err := pc.store.Products.DeleteOne(ctx, bson.M{"_id": objID})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete product"})
		return
	}
	if result.DeletedCount == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "Product not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Product deleted successfully"})
}

// GetLowStockProducts lists products where any size of any variant is at or
// below the threshold (default 5).
func (pc *ProductAdminController) GetLowStockProducts(c *gin.Context) {
	threshold, err := strconv.Atoi(c.DefaultQuery("threshold", "5"))
	if err != nil || threshold < 0 {
		threshold = 5
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	filter := bson.M{
		"colorVariants.sizes.quantity": bson.M{"$lte": threshold},
	}
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

	c.JSON(http.StatusOK, gin.H{
		"threshold": threshold,
		"count":     len(products),
		"products":  products,
	})
}
