package models

import "time"

// Order statuses.
const (
	OrderStatusPending    = "pending"
	OrderStatusProcessing = "processing"
	OrderStatusShipped    = "shipped"
	OrderStatusDelivered  = "delivered"
	OrderStatusCancelled  = "cancelled"
)

// OrderStatuses is the set of statuses an order may hold.
var OrderStatuses = []string{
	OrderStatusPending,
	OrderStatusProcessing,
	OrderStatusShipped,
	OrderStatusDelivered,
	OrderStatusCancelled,
}

// OrderItem is a snapshot of a product at the time of ordering.
type OrderItem struct {
	ID        uint    `json:"-" gorm:"primaryKey"`
	OrderID   string  `json:"-" gorm:"type:varchar(36);index"`
	Name      string  `json:"name" validate:"required"`
	Quantity  int     `json:"quantity" validate:"gt=0"`
	Image     string  `json:"image" validate:"required"`
	Price     float64 `json:"price" validate:"gt=0"`
	ProductID string  `json:"product" gorm:"type:varchar(36);index" validate:"required"`
}

// ShippingAddress is where an order is delivered.
type ShippingAddress struct {
	Name       string `json:"name" validate:"required"`
	Address    string `json:"address" validate:"required"`
	City       string `json:"city" validate:"required"`
	Phone      string `json:"phone" validate:"required"`
	PostalCode string `json:"postalCode,omitempty"`
	Country    string `json:"country,omitempty"`
}

// Order represents a customer order.
type Order struct {
	ID              string          `json:"id" gorm:"primaryKey;type:varchar(36)"`
	UserID          string          `json:"userId" gorm:"type:varchar(36);index;not null"`
	User            *User           `json:"user,omitempty" gorm:"foreignKey:UserID"`
	OrderItems      []OrderItem     `json:"orderItems" gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
	ShippingAddress ShippingAddress `json:"shippingAddress" gorm:"embedded;embeddedPrefix:shipping_"`
	TotalPrice      float64         `json:"totalPrice" gorm:"not null;default:0"`
	OrderStatus     string          `json:"orderStatus" gorm:"type:varchar(20);index;not null;default:pending"`
	OrderNumber     string          `json:"orderNumber" gorm:"type:varchar(40);uniqueIndex;not null"`
	Notes           string          `json:"notes,omitempty" gorm:"type:varchar(500)"`
	CreatedAt       time.Time       `json:"createdAt" gorm:"index"`
	DeliveredAt     *time.Time      `json:"deliveredAt,omitempty"`
}
