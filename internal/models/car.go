package models

import (
	"time"
)

// Car represents a drivable car in the game catalogue
type Car struct {
	ID           uint      `gorm:"primarykey" json:"id"`
	Name         string    `gorm:"not null;index" json:"name"`
	Manufacturer string    `gorm:"not null" json:"manufacturer"`
	Category     string    `json:"category"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// TableName specifies the table name for GORM
func (Car) TableName() string {
	return "cars"
}

// Track represents a circuit layout
type Track struct {
	ID        uint      `gorm:"primarykey" json:"id"`
	Name      string    `gorm:"not null;index" json:"name"`
	Location  string    `json:"location"`
	Layout    string    `json:"layout"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TableName specifies the table name for GORM
func (Track) TableName() string {
	return "tracks"
}

// CarRequest represents the payload for creating or updating a car
type CarRequest struct {
	Name         string `json:"name" validate:"required,min=1,max=100"`
	Manufacturer string `json:"manufacturer" validate:"required,min=1,max=100"`
	Category     string `json:"category" validate:"max=50"`
}

// TrackRequest represents the payload for creating or updating a track
type TrackRequest struct {
	Name     string `json:"name" validate:"required,min=1,max=100"`
	Location string `json:"location" validate:"max=100"`
	Layout   string `json:"layout" validate:"max=100"`
}
