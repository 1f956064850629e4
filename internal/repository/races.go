package repository

import (
	"context"

	"github.com/Sipheren/fridaygt-sub000/internal/models"

	"gorm.io/gorm"
)

// CreateRace inserts a new race
func (r *PostgresRepository) CreateRace(ctx context.Context, race *models.Race) error {
	return r.db.WithContext(ctx).Create(race).Error
}

// GetRace retrieves a race by ID
func (r *PostgresRepository) GetRace(ctx context.Context, id uint) (*models.Race, error) {
	var race models.Race
	err := r.db.WithContext(ctx).First(&race, id).Error
	if err != nil {
		return nil, wrapNotFound(err)
	}
	return &race, nil
}

// ListRaces retrieves all races, soonest scheduled first, unscheduled last
func (r *PostgresRepository) ListRaces(ctx context.Context) ([]models.Race, error) {
	var races []models.Race
	err := r.db.WithContext(ctx).
		Order("scheduled_at ASC NULLS LAST, created_at DESC").
		Find(&races).Error
	return races, err
}

// UpdateRace persists changes to a race
func (r *PostgresRepository) UpdateRace(ctx context.Context, race *models.Race) error {
	return r.db.WithContext(ctx).Save(race).Error
}

// DeleteRace removes a race and any run-list entries pointing at it
func (r *PostgresRepository) DeleteRace(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("race_id = ?", id).Delete(&models.RunListEntry{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Race{}, id).Error
	})
}

// CreateRunList inserts a new run list
func (r *PostgresRepository) CreateRunList(ctx context.Context, list *models.RunList) error {
	return r.db.WithContext(ctx).Create(list).Error
}

// GetRunList retrieves a run list with its entries in position order
func (r *PostgresRepository) GetRunList(ctx context.Context, id uint) (*models.RunList, error) {
	var list models.RunList
	err := r.db.WithContext(ctx).
		Preload("Entries", func(db *gorm.DB) *gorm.DB {
			return db.Order("position ASC")
		}).
		First(&list, id).Error
	if err != nil {
		return nil, wrapNotFound(err)
	}
	return &list, nil
}

// ListRunLists retrieves all run lists, newest session first
func (r *PostgresRepository) ListRunLists(ctx context.Context) ([]models.RunList, error) {
	var lists []models.RunList
	err := r.db.WithContext(ctx).
		Order("session_date DESC NULLS LAST, created_at DESC").
		Find(&lists).Error
	return lists, err
}

// UpdateRunList persists changes to a run list's own columns
func (r *PostgresRepository) UpdateRunList(ctx context.Context, list *models.RunList) error {
	return r.db.WithContext(ctx).Omit("Entries").Save(list).Error
}

// DeleteRunList removes a run list and its entries
func (r *PostgresRepository) DeleteRunList(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("run_list_id = ?", id).Delete(&models.RunListEntry{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.RunList{}, id).Error
	})
}

// ReplaceRunListEntries atomically replaces a run list's race order.
// Positions are renumbered 1..n in the given race order.
func (r *PostgresRepository) ReplaceRunListEntries(ctx context.Context, runListID uint, raceIDs []uint) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("run_list_id = ?", runListID).Delete(&models.RunListEntry{}).Error; err != nil {
			return err
		}
		if len(raceIDs) == 0 {
			return nil
		}
		entries := make([]models.RunListEntry, 0, len(raceIDs))
		for i, raceID := range raceIDs {
			entries = append(entries, models.RunListEntry{
				RunListID: runListID,
				RaceID:    raceID,
				Position:  i + 1,
			})
		}
		return tx.Create(&entries).Error
	})
}

// CreateNote inserts a new note
func (r *PostgresRepository) CreateNote(ctx context.Context, note *models.Note) error {
	return r.db.WithContext(ctx).Create(note).Error
}

// GetNote retrieves a note by ID
func (r *PostgresRepository) GetNote(ctx context.Context, id uint) (*models.Note, error) {
	var note models.Note
	err := r.db.WithContext(ctx).First(&note, id).Error
	if err != nil {
		return nil, wrapNotFound(err)
	}
	return &note, nil
}

// ListNotesByUser retrieves a user's notes, newest first
func (r *PostgresRepository) ListNotesByUser(ctx context.Context, userID uint) ([]models.Note, error) {
	var notes []models.Note
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&notes).Error
	return notes, err
}

// UpdateNote persists changes to a note
func (r *PostgresRepository) UpdateNote(ctx context.Context, note *models.Note) error {
	return r.db.WithContext(ctx).Save(note).Error
}

// DeleteNote removes a note
func (r *PostgresRepository) DeleteNote(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&models.Note{}, id).Error
}
