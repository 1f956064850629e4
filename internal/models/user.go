package models

import (
	"time"
)

// User represents a registered community member
type User struct {
	ID          uint      `gorm:"primarykey" json:"id"`
	Username    string    `gorm:"uniqueIndex;not null" json:"username"`
	DisplayName string    `gorm:"not null" json:"display_name"`
	IsAdmin     bool      `gorm:"not null;default:false" json:"is_admin"`
	IsBanned    bool      `gorm:"not null;default:false" json:"is_banned"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// TableName specifies the table name for GORM
func (User) TableName() string {
	return "users"
}

// UserRequest represents the payload for creating or updating a user
type UserRequest struct {
	Username    string `json:"username" validate:"required,min=3,max=50"`
	DisplayName string `json:"display_name" validate:"required,min=1,max=100"`
}

// BanRequest toggles a user's banned state (admin only)
type BanRequest struct {
	Banned bool `json:"banned"`
}

// ErrorResponse represents an error response
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}
