package repository

import (
	"context"

	"github.com/Sipheren/fridaygt-sub000/internal/models"

	"gorm.io/gorm"
)

// CreateBuild inserts a new build
func (r *PostgresRepository) CreateBuild(ctx context.Context, build *models.Build) error {
	return r.db.WithContext(ctx).Create(build).Error
}

// GetBuild retrieves a build with its upgrade and tuning selections
func (r *PostgresRepository) GetBuild(ctx context.Context, id uint) (*models.Build, error) {
	var build models.Build
	err := r.db.WithContext(ctx).
		Preload("Upgrades").
		Preload("Settings").
		First(&build, id).Error
	if err != nil {
		return nil, wrapNotFound(err)
	}
	return &build, nil
}

// GetBuildByShareToken retrieves a public build by its share token
func (r *PostgresRepository) GetBuildByShareToken(ctx context.Context, token string) (*models.Build, error) {
	var build models.Build
	err := r.db.WithContext(ctx).
		Preload("Upgrades").
		Preload("Settings").
		Where("share_token = ? AND is_public = ?", token, true).
		First(&build).Error
	if err != nil {
		return nil, wrapNotFound(err)
	}
	return &build, nil
}

// ListBuildsByUser retrieves a user's builds, newest first
func (r *PostgresRepository) ListBuildsByUser(ctx context.Context, userID uint) ([]models.Build, error) {
	var builds []models.Build
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&builds).Error
	return builds, err
}

// ListPublicBuildsByCar retrieves public builds for a car, newest first
func (r *PostgresRepository) ListPublicBuildsByCar(ctx context.Context, carID uint) ([]models.Build, error) {
	var builds []models.Build
	err := r.db.WithContext(ctx).
		Where("car_id = ? AND is_public = ?", carID, true).
		Order("created_at DESC").
		Find(&builds).Error
	return builds, err
}

// GetBuildNames resolves build IDs to names for leaderboard display
func (r *PostgresRepository) GetBuildNames(ctx context.Context, ids []uint) (map[uint]string, error) {
	names := make(map[uint]string, len(ids))
	if len(ids) == 0 {
		return names, nil
	}
	var builds []models.Build
	err := r.db.WithContext(ctx).Select("id", "name").Where("id IN ?", ids).Find(&builds).Error
	if err != nil {
		return nil, err
	}
	for _, b := range builds {
		names[b.ID] = b.Name
	}
	return names, nil
}

// UpdateBuild persists changes to a build's own columns (not its selections)
func (r *PostgresRepository) UpdateBuild(ctx context.Context, build *models.Build) error {
	return r.db.WithContext(ctx).Omit("Upgrades", "Settings").Save(build).Error
}

// DeleteBuild permanently removes a build and its selections
func (r *PostgresRepository) DeleteBuild(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("build_id = ?", id).Delete(&models.BuildUpgrade{}).Error; err != nil {
			return err
		}
		if err := tx.Where("build_id = ?", id).Delete(&models.BuildSetting{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Build{}, id).Error
	})
}

// ReplaceBuildSelections atomically replaces a build's persisted upgrade and
// tuning rows with a newly submitted set
func (r *PostgresRepository) ReplaceBuildSelections(
	ctx context.Context,
	buildID uint,
	upgrades []models.BuildUpgrade,
	settings []models.BuildSetting,
) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("build_id = ?", buildID).Delete(&models.BuildUpgrade{}).Error; err != nil {
			return err
		}
		if err := tx.Where("build_id = ?", buildID).Delete(&models.BuildSetting{}).Error; err != nil {
			return err
		}
		if len(upgrades) > 0 {
			if err := tx.Create(&upgrades).Error; err != nil {
				return err
			}
		}
		if len(settings) > 0 {
			if err := tx.Create(&settings).Error; err != nil {
				return err
			}
		}
		return nil
	})
}
