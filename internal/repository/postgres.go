package repository

import (
	"context"
	"errors"

	"github.com/Sipheren/fridaygt-sub000/internal/models"

	"gorm.io/gorm"
)

// ErrNotFound is returned when a requested record does not exist
var ErrNotFound = errors.New("record not found")

// PostgresRepository handles all PostgreSQL operations
type PostgresRepository struct {
	db *gorm.DB
}

// NewPostgresRepository creates a new Postgres repository
func NewPostgresRepository(db *gorm.DB) *PostgresRepository {
	return &PostgresRepository{
		db: db,
	}
}

// AutoMigrate runs database migrations
func (r *PostgresRepository) AutoMigrate() error {
	return r.db.AutoMigrate(
		&models.User{},
		&models.Car{},
		&models.Track{},
		&models.LapTime{},
		&models.Build{},
		&models.BuildUpgrade{},
		&models.BuildSetting{},
		&models.Race{},
		&models.RunList{},
		&models.RunListEntry{},
		&models.Note{},
	)
}

// Ping checks if database is reachable
func (r *PostgresRepository) Ping(ctx context.Context) error {
	sqlDB, err := r.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}

// Close closes the database connection
func (r *PostgresRepository) Close() error {
	sqlDB, err := r.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

func wrapNotFound(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}
	return err
}
