package models

import "time"

// User represents a customer account.
type User struct {
	ID        string    `json:"id" gorm:"primaryKey;type:varchar(36)"`
	Username  string    `json:"username" gorm:"uniqueIndex;type:varchar(100)"`
	Email     string    `json:"email" gorm:"uniqueIndex;type:varchar(255)"`
	Password  string    `json:"-" gorm:"type:varchar(255)"` // bcrypt hash, never serialized
	Name      string    `json:"name" gorm:"type:varchar(100)"`
	Phone     string    `json:"phone" gorm:"type:varchar(40)"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// UserSummary is the public view of a user embedded in other records.
type UserSummary struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}
