package models

import (
	"time"
)

// Race represents a planned or completed race event
type Race struct {
	ID          uint       `gorm:"primarykey" json:"id"`
	Name        string     `gorm:"not null" json:"name"`
	CarID       uint       `gorm:"not null;index" json:"car_id"`
	TrackID     *uint      `gorm:"index" json:"track_id"`
	Laps        int        `json:"laps"`
	ScheduledAt *time.Time `json:"scheduled_at"`
	Notes       string     `json:"notes"`
	CreatedBy   uint       `gorm:"not null;index" json:"created_by"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

// TableName specifies the table name for GORM
func (Race) TableName() string {
	return "races"
}

// RunList is an ordered race schedule for a session
type RunList struct {
	ID          uint       `gorm:"primarykey" json:"id"`
	Name        string     `gorm:"not null" json:"name"`
	SessionDate *time.Time `json:"session_date"`
	CreatedBy   uint       `gorm:"not null;index" json:"created_by"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`

	Entries []RunListEntry `gorm:"constraint:OnDelete:CASCADE" json:"entries"`
}

// TableName specifies the table name for GORM
func (RunList) TableName() string {
	return "run_lists"
}

// RunListEntry places one race at a position in a run list.
// Positions are 1-based and contiguous within a list.
type RunListEntry struct {
	ID        uint `gorm:"primarykey" json:"id"`
	RunListID uint `gorm:"not null;index" json:"-"`
	RaceID    uint `gorm:"not null" json:"race_id"`
	Position  int  `gorm:"not null" json:"position"`
}

// TableName specifies the table name for GORM
func (RunListEntry) TableName() string {
	return "run_list_entries"
}

// Note is a free-text note attached to a user
type Note struct {
	ID        uint      `gorm:"primarykey" json:"id"`
	UserID    uint      `gorm:"not null;index" json:"user_id"`
	Title     string    `gorm:"not null" json:"title"`
	Body      string    `json:"body"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TableName specifies the table name for GORM
func (Note) TableName() string {
	return "notes"
}

// RaceRequest represents the payload for creating or updating a race
type RaceRequest struct {
	Name        string     `json:"name" validate:"required,min=1,max=100"`
	CarID       uint       `json:"car_id" validate:"required"`
	TrackID     *uint      `json:"track_id"`
	Laps        int        `json:"laps" validate:"min=0,max=1000"`
	ScheduledAt *time.Time `json:"scheduled_at"`
	Notes       string     `json:"notes" validate:"max=2000"`
}

// RunListRequest represents the payload for creating or updating a run list
type RunListRequest struct {
	Name        string     `json:"name" validate:"required,min=1,max=100"`
	SessionDate *time.Time `json:"session_date"`
}

// RunListReorderRequest replaces the order of races in a run list
type RunListReorderRequest struct {
	RaceIDs []uint `json:"race_ids" validate:"required,min=1,dive,required"`
}

// NoteRequest represents the payload for creating or updating a note
type NoteRequest struct {
	Title string `json:"title" validate:"required,min=1,max=200"`
	Body  string `json:"body" validate:"max=10000"`
}
