package models

import (
	"time"
)

// LapTime is an immutable record of one completed lap.
// Times are stored as integer milliseconds.
type LapTime struct {
	ID         uint      `gorm:"primarykey" json:"id"`
	TimeMs     int       `gorm:"not null;index" json:"time_ms"`
	UserID     uint      `gorm:"not null;index" json:"user_id"`
	CarID      uint      `gorm:"not null;index" json:"car_id"`
	BuildID    *uint     `gorm:"index" json:"build_id"`
	TrackID    *uint     `gorm:"index" json:"track_id"`
	Conditions string    `json:"conditions"`
	CreatedAt  time.Time `json:"created_at"`
}

// TableName specifies the table name for GORM
func (LapTime) TableName() string {
	return "lap_times"
}

// LapTimeRequest represents the payload for submitting a lap
type LapTimeRequest struct {
	TimeMs     int    `json:"time_ms" validate:"required,gt=0"`
	CarID      uint   `json:"car_id" validate:"required"`
	BuildID    *uint  `json:"build_id"`
	TrackID    *uint  `json:"track_id"`
	Conditions string `json:"conditions" validate:"max=500"`
}

// LeaderboardEntry represents a single ranked entry in the leaderboard response
type LeaderboardEntry struct {
	Position        int       `json:"position"`
	UserID          uint      `json:"user_id"`
	Username        string    `json:"username"`
	CarID           uint      `json:"car_id"`
	CarName         string    `json:"car_name"`
	BuildID         *uint     `json:"build_id"`
	BuildName       string    `json:"build_name,omitempty"`
	BestTimeMs      int       `json:"best_time_ms"`
	BestTime        string    `json:"best_time"`
	TotalLaps       int       `json:"total_laps"`
	LastImprovement time.Time `json:"last_improvement"`
}

// LeaderboardStats represents aggregate statistics over all matching laps,
// not just the displayed entries
type LeaderboardStats struct {
	TotalLaps     int  `json:"total_laps"`
	FastestTimeMs *int `json:"fastest_time_ms"`
	AverageTimeMs *int `json:"average_time_ms"`
	UniqueDrivers int  `json:"unique_drivers"`
	UniqueTracks  int  `json:"unique_tracks"`
}

// LeaderboardResponse represents the leaderboard endpoint response
type LeaderboardResponse struct {
	Entries []LeaderboardEntry `json:"entries"`
	Stats   LeaderboardStats   `json:"stats"`
	CarID   *uint              `json:"car_id,omitempty"`
	TrackID *uint              `json:"track_id,omitempty"`
	Version int64              `json:"version"`
}

// TrackBestEntry represents a single track's personal-best summary on a car page
type TrackBestEntry struct {
	TrackID    *uint     `json:"track_id"`
	TrackName  string    `json:"track_name,omitempty"`
	BestTimeMs int       `json:"best_time_ms"`
	BestTime   string    `json:"best_time"`
	TotalLaps  int       `json:"total_laps"`
	RecentLaps []LapTime `json:"recent_laps"`
}
