package services

import (
	"time"

	"boutique/internal/models"
)

func sampleProducts(now time.Time) []models.Product {
	type sample struct {
		name, description, category, image string
		price                              float64
		quantity                           int
		featured                           bool
		rating                             float64
	}
	samples := []sample{
		{"Luxury Designer Handbag", "Elegant leather handbag with premium craftsmanship and timeless design.", "Luxury Bags", "https://images.unsplash.com/photo-1553062407-98eeb64c6a62?w=500&h=500&fit=crop", 299.99, 50, true, 4.8},
		{"Swiss Automatic Watch", "Premium Swiss-made automatic watch with sapphire crystal and leather strap.", "Watches", "https://images.unsplash.com/photo-1524592094714-0f0654e20314?w=500&h=500&fit=crop", 899.99, 25, true, 4.9},
		{"Diamond Tennis Bracelet", "Sparkling diamond tennis bracelet with white gold setting.", "Jewelry", "https://images.unsplash.com/photo-1515562141207-7a88fb7ce338?w=500&h=500&fit=crop", 1299.99, 15, true, 5.0},
		{"Silk Designer Scarf", "Luxurious silk scarf with hand-printed artistic design.", "Accessories", "https://images.unsplash.com/photo-1601924994987-69e26d50dc26?w=500&h=500&fit=crop", 149.99, 40, false, 4.6},
		{"Italian Leather Shoes", "Handcrafted Italian leather dress shoes with classic design.", "Shoes", "https://images.unsplash.com/photo-1549298916-b41d501d3772?w=500&h=500&fit=crop", 449.99, 30, false, 4.7},
		{"Cashmere Sweater", "Ultra-soft cashmere sweater with elegant cut and premium quality.", "Clothing", "https://images.unsplash.com/photo-1434389677669-e08b4cac3105?w=500&h=500&fit=crop", 249.99, 35, false, 4.5},
		{"Crystal Chandelier", "Stunning crystal chandelier perfect for luxury home decor.", "Home Decor", "https://images.unsplash.com/photo-1507003211169-0a1dd7228f2d?w=500&h=500&fit=crop", 799.99, 10, false, 4.8},
		{"Premium Headphones", "High-end wireless headphones with noise cancellation.", "Electronics", "https://images.unsplash.com/photo-1505740420928-5e560c06d30e?w=500&h=500&fit=crop", 349.99, 60, true, 4.4},
	}

	products := make([]models.Product, len(samples))
	for i, s := range samples {
		products[i] = models.Product{
			Name:        s.name,
			Description: s.description,
			Price:       s.price,
			Category:    s.category,
			Image:       s.image,
			Images:      []string{},
			Sizes:       []string{},
			Colors:      []string{},
			Quantity:    s.quantity,
			InStock:     s.quantity > 0,
			Featured:    s.featured,
			Rating:      s.rating,
			Reviews:     []models.Review{},
			// Keep the listed order when sorting newest first.
			CreatedAt: now.Add(-time.Duration(i) * time.Second),
		}
	}
	return products
}
