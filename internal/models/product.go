package models

import "time"

// Product categories accepted by the catalog.
var ProductCategories = []string{
	"Luxury Bags",
	"Watches",
	"Jewelry",
	"Accessories",
	"Shoes",
	"Clothing",
	"Electronics",
	"Home Decor",
}

// ProductSizes lists the size variants a product may carry.
var ProductSizes = []string{"XS", "S", "M", "L", "XL", "XXL", "One Size"}

// Product represents a product in the store.
type Product struct {
	ID          string    `json:"id" gorm:"primaryKey;type:varchar(36)"`
	Name        string    `json:"name" gorm:"type:varchar(100);not null"`
	Description string    `json:"description" gorm:"type:varchar(1000);not null"`
	Price       float64   `json:"price" gorm:"not null"`
	Category    string    `json:"category" gorm:"type:varchar(50);index;not null"`
	Image       string    `json:"image" gorm:"not null"`
	Images      []string  `json:"images" gorm:"type:text;serializer:json"`
	Sizes       []string  `json:"sizes" gorm:"type:text;serializer:json"`
	Colors      []string  `json:"colors" gorm:"type:text;serializer:json"`
	InStock     bool      `json:"inStock"`
	Quantity    int       `json:"quantity" gorm:"not null;default:0"`
	Featured    bool      `json:"featured" gorm:"index"`
	Rating      float64   `json:"rating" gorm:"default:5"`
	Reviews     []Review  `json:"reviews" gorm:"type:text;serializer:json"`
	CreatedAt   time.Time `json:"createdAt" gorm:"index"`
}

// Review is a customer review stored inline with its product.
type Review struct {
	UserID    string       `json:"userId"`
	Author    *UserSummary `json:"user,omitempty"`
	Name      string       `json:"name"`
	Rating    float64      `json:"rating"`
	Comment   string       `json:"comment"`
	CreatedAt time.Time    `json:"createdAt"`
}
