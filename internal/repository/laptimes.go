package repository

import (
	"context"

	"github.com/Sipheren/fridaygt-sub000/internal/models"
)

// LapFilter narrows lap-time queries. Nil fields are not filtered on.
type LapFilter struct {
	UserID  *uint
	CarID   *uint
	TrackID *uint
	BuildID *uint
}

// CreateLapTime inserts a new lap time
func (r *PostgresRepository) CreateLapTime(ctx context.Context, lap *models.LapTime) error {
	return r.db.WithContext(ctx).Create(lap).Error
}

// GetLapTime retrieves a lap time by ID
func (r *PostgresRepository) GetLapTime(ctx context.Context, id uint) (*models.LapTime, error) {
	var lap models.LapTime
	err := r.db.WithContext(ctx).First(&lap, id).Error
	if err != nil {
		return nil, wrapNotFound(err)
	}
	return &lap, nil
}

// ListLapTimes retrieves lap times matching the filter, newest first
func (r *PostgresRepository) ListLapTimes(ctx context.Context, filter LapFilter) ([]models.LapTime, error) {
	q := r.db.WithContext(ctx).Model(&models.LapTime{})
	if filter.UserID != nil {
		q = q.Where("user_id = ?", *filter.UserID)
	}
	if filter.CarID != nil {
		q = q.Where("car_id = ?", *filter.CarID)
	}
	if filter.TrackID != nil {
		q = q.Where("track_id = ?", *filter.TrackID)
	}
	if filter.BuildID != nil {
		q = q.Where("build_id = ?", *filter.BuildID)
	}

	var laps []models.LapTime
	err := q.Order("created_at DESC").Find(&laps).Error
	return laps, err
}

// DeleteLapTime removes a lap time
func (r *PostgresRepository) DeleteLapTime(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&models.LapTime{}, id).Error
}

// BulkInsertLapTimes efficiently inserts multiple lap times
func (r *PostgresRepository) BulkInsertLapTimes(ctx context.Context, laps []models.LapTime, batchSize int) error {
	return r.db.WithContext(ctx).CreateInBatches(laps, batchSize).Error
}
