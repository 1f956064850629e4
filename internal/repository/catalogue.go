package repository

import (
	"context"

	"github.com/Sipheren/fridaygt-sub000/internal/models"
)

// CreateCar inserts a new car
func (r *PostgresRepository) CreateCar(ctx context.Context, car *models.Car) error {
	return r.db.WithContext(ctx).Create(car).Error
}

// GetCar retrieves a car by ID
func (r *PostgresRepository) GetCar(ctx context.Context, id uint) (*models.Car, error) {
	var car models.Car
	err := r.db.WithContext(ctx).First(&car, id).Error
	if err != nil {
		return nil, wrapNotFound(err)
	}
	return &car, nil
}

// ListCars retrieves all cars ordered by name
func (r *PostgresRepository) ListCars(ctx context.Context) ([]models.Car, error) {
	var cars []models.Car
	err := r.db.WithContext(ctx).Order("name ASC").Find(&cars).Error
	return cars, err
}

// UpdateCar persists changes to a car
func (r *PostgresRepository) UpdateCar(ctx context.Context, car *models.Car) error {
	return r.db.WithContext(ctx).Save(car).Error
}

// DeleteCar removes a car
func (r *PostgresRepository) DeleteCar(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&models.Car{}, id).Error
}

// GetCarNames resolves car IDs to names for leaderboard display
func (r *PostgresRepository) GetCarNames(ctx context.Context, ids []uint) (map[uint]string, error) {
	names := make(map[uint]string, len(ids))
	if len(ids) == 0 {
		return names, nil
	}
	var cars []models.Car
	err := r.db.WithContext(ctx).Select("id", "name").Where("id IN ?", ids).Find(&cars).Error
	if err != nil {
		return nil, err
	}
	for _, c := range cars {
		names[c.ID] = c.Name
	}
	return names, nil
}

// GetTrackNames resolves track IDs to names for display
func (r *PostgresRepository) GetTrackNames(ctx context.Context, ids []uint) (map[uint]string, error) {
	names := make(map[uint]string, len(ids))
	if len(ids) == 0 {
		return names, nil
	}
	var tracks []models.Track
	err := r.db.WithContext(ctx).Select("id", "name").Where("id IN ?", ids).Find(&tracks).Error
	if err != nil {
		return nil, err
	}
	for _, t := range tracks {
		names[t.ID] = t.Name
	}
	return names, nil
}

// BulkInsertCars efficiently inserts multiple cars
func (r *PostgresRepository) BulkInsertCars(ctx context.Context, cars []models.Car, batchSize int) error {
	return r.db.WithContext(ctx).CreateInBatches(cars, batchSize).Error
}

// CreateTrack inserts a new track
func (r *PostgresRepository) CreateTrack(ctx context.Context, track *models.Track) error {
	return r.db.WithContext(ctx).Create(track).Error
}

// GetTrack retrieves a track by ID
func (r *PostgresRepository) GetTrack(ctx context.Context, id uint) (*models.Track, error) {
	var track models.Track
	err := r.db.WithContext(ctx).First(&track, id).Error
	if err != nil {
		return nil, wrapNotFound(err)
	}
	return &track, nil
}

// ListTracks retrieves all tracks ordered by name
func (r *PostgresRepository) ListTracks(ctx context.Context) ([]models.Track, error) {
	var tracks []models.Track
	err := r.db.WithContext(ctx).Order("name ASC").Find(&tracks).Error
	return tracks, err
}

// UpdateTrack persists changes to a track
func (r *PostgresRepository) UpdateTrack(ctx context.Context, track *models.Track) error {
	return r.db.WithContext(ctx).Save(track).Error
}

// DeleteTrack removes a track
func (r *PostgresRepository) DeleteTrack(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&models.Track{}, id).Error
}

// BulkInsertTracks efficiently inserts multiple tracks
func (r *PostgresRepository) BulkInsertTracks(ctx context.Context, tracks []models.Track, batchSize int) error {
	return r.db.WithContext(ctx).CreateInBatches(tracks, batchSize).Error
}
