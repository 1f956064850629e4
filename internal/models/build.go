package models

import (
	"time"
)

// Build is a named configuration of installed parts and tuning values for one car
type Build struct {
	ID          uint      `gorm:"primarykey" json:"id"`
	Name        string    `gorm:"not null" json:"name"`
	Description string    `json:"description"`
	IsPublic    bool      `gorm:"not null;default:false" json:"is_public"`
	ShareToken  string    `gorm:"uniqueIndex;not null" json:"share_token"`
	UserID      uint      `gorm:"not null;index" json:"user_id"`
	CarID       uint      `gorm:"not null;index" json:"car_id"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`

	Upgrades []BuildUpgrade `gorm:"constraint:OnDelete:CASCADE" json:"upgrades"`
	Settings []BuildSetting `gorm:"constraint:OnDelete:CASCADE" json:"settings"`
}

// TableName specifies the table name for GORM
func (Build) TableName() string {
	return "builds"
}

// BuildUpgrade is one persisted part selection.
// Checkbox-style parts store "true"; absence of a row means "not installed".
// Dropdown-style parts store the selected option.
type BuildUpgrade struct {
	ID      uint   `gorm:"primarykey" json:"-"`
	BuildID uint   `gorm:"not null;index" json:"-"`
	PartID  string `gorm:"not null" json:"part_id"`
	Value   string `gorm:"not null" json:"value"`
}

// TableName specifies the table name for GORM
func (BuildUpgrade) TableName() string {
	return "build_upgrades"
}

// BuildSetting is one persisted tuning value. An empty value is a meaningful
// "explicitly cleared" state, distinct from row absence.
type BuildSetting struct {
	ID        uint   `gorm:"primarykey" json:"-"`
	BuildID   uint   `gorm:"not null;index" json:"-"`
	SettingID string `gorm:"not null" json:"setting_id"`
	Value     string `json:"value"`
}

// TableName specifies the table name for GORM
func (BuildSetting) TableName() string {
	return "build_settings"
}

// BuildRequest represents the payload for creating or updating a build
type BuildRequest struct {
	Name        string `json:"name" validate:"required,min=1,max=100"`
	Description string `json:"description" validate:"max=2000"`
	CarID       uint   `json:"car_id" validate:"required"`
	IsPublic    bool   `json:"is_public"`
}

// SubmissionEntry is one {fieldId, value} pair of a build submission
type SubmissionEntry struct {
	FieldID string `json:"field_id" validate:"required"`
	Value   string `json:"value"`
}

// BuildSubmission represents the upgrade/tuning selections to persist for a build
type BuildSubmission struct {
	Upgrades []SubmissionEntry `json:"upgrades" validate:"dive"`
	Settings []SubmissionEntry `json:"settings" validate:"dive"`
}
