package repository

import (
	"context"

	"github.com/Sipheren/fridaygt-sub000/internal/models"
)

// CreateUser inserts a new user
func (r *PostgresRepository) CreateUser(ctx context.Context, user *models.User) error {
	return r.db.WithContext(ctx).Create(user).Error
}

// GetUser retrieves a user by ID
func (r *PostgresRepository) GetUser(ctx context.Context, id uint) (*models.User, error) {
	var user models.User
	err := r.db.WithContext(ctx).First(&user, id).Error
	if err != nil {
		return nil, wrapNotFound(err)
	}
	return &user, nil
}

// GetUserByUsername retrieves a user by username
func (r *PostgresRepository) GetUserByUsername(ctx context.Context, username string) (*models.User, error) {
	var user models.User
	err := r.db.WithContext(ctx).Where("username = ?", username).First(&user).Error
	if err != nil {
		return nil, wrapNotFound(err)
	}
	return &user, nil
}

// ListUsers retrieves all users ordered by username
func (r *PostgresRepository) ListUsers(ctx context.Context) ([]models.User, error) {
	var users []models.User
	err := r.db.WithContext(ctx).Order("username ASC").Find(&users).Error
	return users, err
}

// UpdateUser persists changes to a user
func (r *PostgresRepository) UpdateUser(ctx context.Context, user *models.User) error {
	return r.db.WithContext(ctx).Save(user).Error
}

// SetUserBanned toggles a user's banned flag
func (r *PostgresRepository) SetUserBanned(ctx context.Context, id uint, banned bool) error {
	res := r.db.WithContext(ctx).Model(&models.User{}).Where("id = ?", id).Update("is_banned", banned)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// GetUsernames resolves user IDs to usernames for leaderboard display
func (r *PostgresRepository) GetUsernames(ctx context.Context, ids []uint) (map[uint]string, error) {
	names := make(map[uint]string, len(ids))
	if len(ids) == 0 {
		return names, nil
	}
	var users []models.User
	err := r.db.WithContext(ctx).Select("id", "username").Where("id IN ?", ids).Find(&users).Error
	if err != nil {
		return nil, err
	}
	for _, u := range users {
		names[u.ID] = u.Username
	}
	return names, nil
}

// BulkInsertUsers efficiently inserts multiple users
func (r *PostgresRepository) BulkInsertUsers(ctx context.Context, users []models.User, batchSize int) error {
	return r.db.WithContext(ctx).CreateInBatches(users, batchSize).Error
}
