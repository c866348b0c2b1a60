package controllers

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"opdrape-backend/models"
)

func validVariant() models.ColorVariant {
	return models.ColorVariant{
		Color:  models.Color{Name: "Red", HexCode: "#FF0000"},
		Images: []models.Image{{URL: "/uploads/products/red.jpg"}},
		Sizes:  []models.Size{{Name: "M", Quantity: 10}},
	}
}

func TestValidateColorVariants(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*models.ColorVariant)
		empty   bool
		wantErr string
	}{
		{"valid variant", nil, false, ""},
		{"no variants at all", nil, true, "at least one color variant"},
		{"missing color name", func(v *models.ColorVariant) { v.Color.Name = "" }, false,
			"color name and hexCode"},
		{"bad hex code", func(v *models.ColorVariant) { v.Color.HexCode = "red" }, false,
			"invalid hex code"},
		{"no images", func(v *models.ColorVariant) { v.Images = nil }, false,
			"at least one image"},
		{"image without url", func(v *models.ColorVariant) { v.Images[0].URL = "" }, false,
			"must have a URL"},
		{"no sizes", func(v *models.ColorVariant) { v.Sizes = nil }, false,
			"at least one size"},
		{"invalid size name", func(v *models.ColorVariant) { v.Sizes[0].Name = "XXXL" }, false,
			"size name must be one of"},
		{"negative quantity", func(v *models.ColorVariant) { v.Sizes[0].Quantity = -1 }, false,
			"non-negative"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var variants []models.ColorVariant
			if !tt.empty {
				v := validVariant()
				if tt.mutate != nil {
					tt.mutate(&v)
				}
				variants = []models.ColorVariant{v}
			}

			err := validateColorVariants(variants)
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestValidateProduct(t *testing.T) {
	valid := models.Product{
		Name:          "Classic Tee",
		Description:   "A tee",
		Brand:         "Opdrape",
		Category:      "men",
		SubCategory:   "t-shirts",
		BasePrice:     30,
		ColorVariants: []models.ColorVariant{validVariant()},
	}
	assert.NoError(t, validateProduct(&valid))

	missingName := valid
	missingName.Name = ""
	assert.Error(t, validateProduct(&missingName))

	badCategory := valid
	badCategory.Category = "electronics"
	assert.Error(t, validateProduct(&badCategory))

	badSubCategory := valid
	badSubCategory.SubCategory = "phones"
	assert.Error(t, validateProduct(&badSubCategory))

	negativePrice := valid
	negativePrice.BasePrice = -1
	assert.Error(t, validateProduct(&negativePrice))
}
