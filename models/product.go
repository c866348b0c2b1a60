package models

import (
	"errors"
	"fmt"
	"regexp"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

var ErrNoValidPrice = errors.New("product has no valid price")

var Categories = []string{"men", "women", "kids", "accessories"}

var SubCategories = []string{
	"t-shirts", "shirts", "pants", "jeans", "dresses",
	"skirts", "jackets", "sweaters", "hoodies", "shorts",
	"activewear", "underwear", "socks", "accessories",
}

// SizeNames is the fixed size enumeration shared by products, carts and orders.
var SizeNames = []string{"XS", "S", "M", "L", "XL", "XXL", "3XL"}

var hexColorPattern = regexp.MustCompile(`^#([A-Fa-f0-9]{6}|[A-Fa-f0-9]{3})$`)

func IsValidCategory(s string) bool    { return contains(Categories, s) }
func IsValidSubCategory(s string) bool { return contains(SubCategories, s) }
func IsValidSizeName(s string) bool    { return contains(SizeNames, s) }
func IsValidHexColor(s string) bool    { return hexColorPattern.MatchString(s) }

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}

type Color struct {
	Name    string `bson:"name" json:"name"`
	HexCode string `bson:"hexCode" json:"hexCode"`
}

type Image struct {
	URL string `bson:"url" json:"url"`
	Alt string `bson:"alt,omitempty" json:"alt,omitempty"`
}

type Size struct {
	Name     string `bson:"name" json:"name"`
	Quantity int    `bson:"quantity" json:"quantity"`
}

type ColorVariant struct {
	Color  Color   `bson:"color" json:"color"`
	Images []Image `bson:"images" json:"images"`
	Sizes  []Size  `bson:"sizes" json:"sizes"`
}

// FindSize returns the size entry with the given name, or nil.
func (cv *ColorVariant) FindSize(name string) *Size {
	for i := range cv.Sizes {
		if cv.Sizes[i].Name == name {
			return &cv.Sizes[i]
		}
	}
	return nil
}

type Rating struct {
	User      primitive.ObjectID `bson:"user" json:"user"`
	Rating    int                `bson:"rating" json:"rating"`
	Review    string             `bson:"review" json:"review"`
	Images    []string           `bson:"images,omitempty" json:"images,omitempty"`
	CreatedAt time.Time          `bson:"createdAt" json:"createdAt"`
}

type ProductMetadata struct {
	IsNewArrival   bool `bson:"isNewArrival" json:"isNewArrival"`
	IsBestSeller   bool `bson:"isBestSeller" json:"isBestSeller"`
	IsSale         bool `bson:"isSale" json:"isSale"`
	SalePercentage int  `bson:"salePercentage,omitempty" json:"salePercentage,omitempty"`
}

type Product struct {
	ID               primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name             string             `bson:"name" json:"name"`
	Description      string             `bson:"description" json:"description"`
	Category         string             `bson:"category" json:"category"`
	SubCategory      string             `bson:"subCategory" json:"subCategory"`
	Brand            string             `bson:"brand" json:"brand"`
	BasePrice        float64            `bson:"basePrice" json:"basePrice"`
	SalePrice        float64            `bson:"salePrice,omitempty" json:"salePrice,omitempty"`
	ColorVariants    []ColorVariant     `bson:"colorVariants" json:"colorVariants"`
	Features         []string           `bson:"features,omitempty" json:"features,omitempty"`
	Material         string             `bson:"material,omitempty" json:"material,omitempty"`
	CareInstructions []string           `bson:"careInstructions,omitempty" json:"careInstructions,omitempty"`
	Tags             []string           `bson:"tags,omitempty" json:"tags,omitempty"`
	Ratings          []Rating           `bson:"ratings,omitempty" json:"ratings,omitempty"`
	AverageRating    float64            `bson:"averageRating" json:"averageRating"`
	TotalReviews     int                `bson:"totalReviews" json:"totalReviews"`
	DisplayPage      string             `bson:"displayPage,omitempty" json:"displayPage,omitempty"`
	IsActive         bool               `bson:"isActive" json:"isActive"`
	Metadata         ProductMetadata    `bson:"metadata" json:"metadata"`
	CreatedAt        time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt        time.Time          `bson:"updatedAt" json:"updatedAt"`
}

// EffectivePrice is the single price-precedence rule: sale price wins when it
// is set, otherwise base price. A product without a positive price is a data
// error surfaced to the caller.
func (p *Product) EffectivePrice() (float64, error) {
	if p.SalePrice > 0 {
		return p.SalePrice, nil
	}
	if p.BasePrice > 0 {
		return p.BasePrice, nil
	}
	return 0, fmt.Errorf("%w: %s", ErrNoValidPrice, p.Name)
}

// FindColorVariant matches a variant by color name.
func (p *Product) FindColorVariant(colorName string) *ColorVariant {
	for i := range p.ColorVariants {
		if p.ColorVariants[i].Color.Name == colorName {
			return &p.ColorVariants[i]
		}
	}
	return nil
}

// TotalStock sums quantities across every variant and size.
func (p *Product) TotalStock() int {
	total := 0
	for _, cv := range p.ColorVariants {
		for _, s := range cv.Sizes {
			total += s.Quantity
		}
	}
	return total
}

// RecalculateRating rederives averageRating and totalReviews from the
// embedded ratings list.
func (p *Product) RecalculateRating() {
	if len(p.Ratings) == 0 {
		p.AverageRating = 0
		p.TotalReviews = 0
		return
	}
	sum := 0
	for _, r := range p.Ratings {
		sum += r.Rating
	}
	p.AverageRating = float64(sum) / float64(len(p.Ratings))
	p.TotalReviews = len(p.Ratings)
}

// ProductSummary is the minimal display shape order and cart responses embed
// in place of a full product document.
type ProductSummary struct {
	ID       primitive.ObjectID `bson:"_id" json:"id"`
	Name     string             `bson:"name" json:"name"`
	Category string             `bson:"category" json:"category"`
}
