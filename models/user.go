package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	RoleUser   = "user"
	RoleAdmin  = "admin"
	RoleVendor = "vendor"
)

type Address struct {
	Street  string `bson:"street,omitempty" json:"street,omitempty"`
	City    string `bson:"city,omitempty" json:"city,omitempty"`
	State   string `bson:"state,omitempty" json:"state,omitempty"`
	ZipCode string `bson:"zipCode,omitempty" json:"zipCode,omitempty"`
	Country string `bson:"country,omitempty" json:"country,omitempty"`
}

// UserCartItem is the legacy embedded cart entry kept on the user document
// for read compatibility. It only tracks product and quantity; the Cart
// document carries the full variant/size snapshot.
type UserCartItem struct {
	Product  primitive.ObjectID `bson:"product" json:"product"`
	Quantity int                `bson:"quantity" json:"quantity"`
}

type User struct {
	ID              primitive.ObjectID   `bson:"_id,omitempty" json:"id"`
	Name            string               `bson:"name" json:"name"`
	Email           string               `bson:"email" json:"email"`
	Password        string               `bson:"password" json:"-"`
	Phone           string               `bson:"phone,omitempty" json:"phone,omitempty"`
	Address         Address              `bson:"address,omitempty" json:"address,omitempty"`
	Wishlist        []primitive.ObjectID `bson:"wishlist,omitempty" json:"wishlist,omitempty"`
	Cart            []UserCartItem       `bson:"cart,omitempty" json:"cart,omitempty"`
	Role            string               `bson:"role" json:"role"`
	IsEmailVerified bool                 `bson:"isEmailVerified" json:"isEmailVerified"`
	LastLogin       *time.Time           `bson:"lastLogin,omitempty" json:"lastLogin,omitempty"`
	DeletedAt       *time.Time           `bson:"deletedAt,omitempty" json:"deletedAt,omitempty"`
	CreatedAt       time.Time            `bson:"createdAt" json:"createdAt"`
	UpdatedAt       time.Time            `bson:"updatedAt" json:"updatedAt"`
}
