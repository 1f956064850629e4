package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/Sipheren/fridaygt-sub000/internal/models"
	"github.com/Sipheren/fridaygt-sub000/internal/repository"
)

// RaceService handles races and run lists (ordered race schedules)
type RaceService struct {
	postgresRepo *repository.PostgresRepository
}

// NewRaceService creates a new race service
func NewRaceService(postgresRepo *repository.PostgresRepository) *RaceService {
	return &RaceService{
		postgresRepo: postgresRepo,
	}
}

// CreateRace creates a race owned by the acting user
func (s *RaceService) CreateRace(ctx context.Context, userID uint, req models.RaceRequest) (*models.Race, error) {
	if _, err := s.postgresRepo.GetCar(ctx, req.CarID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, fmt.Errorf("%w: unknown car %d", ErrValidation, req.CarID)
		}
		return nil, err
	}
	if req.TrackID != nil {
		if _, err := s.postgresRepo.GetTrack(ctx, *req.TrackID); err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				return nil, fmt.Errorf("%w: unknown track %d", ErrValidation, *req.TrackID)
			}
			return nil, err
		}
	}

	race := &models.Race{
		Name:        req.Name,
		CarID:       req.CarID,
		TrackID:     req.TrackID,
		Laps:        req.Laps,
		ScheduledAt: req.ScheduledAt,
		Notes:       req.Notes,
		CreatedBy:   userID,
	}
	if err := s.postgresRepo.CreateRace(ctx, race); err != nil {
		return nil, fmt.Errorf("failed to create race: %w", err)
	}
	return race, nil
}

// GetRace retrieves a race by ID
func (s *RaceService) GetRace(ctx context.Context, id uint) (*models.Race, error) {
	return s.postgresRepo.GetRace(ctx, id)
}

// ListRaces retrieves all races
func (s *RaceService) ListRaces(ctx context.Context) ([]models.Race, error) {
	return s.postgresRepo.ListRaces(ctx)
}

// UpdateRace updates a race. Only the creator or an admin may update.
func (s *RaceService) UpdateRace(ctx context.Context, actor *models.User, id uint, req models.RaceRequest) (*models.Race, error) {
	race, err := s.postgresRepo.GetRace(ctx, id)
	if err != nil {
		return nil, err
	}
	if race.CreatedBy != actor.ID && !actor.IsAdmin {
		return nil, ErrForbidden
	}

	race.Name = req.Name
	race.CarID = req.CarID
	race.TrackID = req.TrackID
	race.Laps = req.Laps
	race.ScheduledAt = req.ScheduledAt
	race.Notes = req.Notes
	if err := s.postgresRepo.UpdateRace(ctx, race); err != nil {
		return nil, fmt.Errorf("failed to update race: %w", err)
	}
	return race, nil
}

// DeleteRace removes a race. Only the creator or an admin may delete.
func (s *RaceService) DeleteRace(ctx context.Context, actor *models.User, id uint) error {
	race, err := s.postgresRepo.GetRace(ctx, id)
	if err != nil {
		return err
	}
	if race.CreatedBy != actor.ID && !actor.IsAdmin {
		return ErrForbidden
	}
	return s.postgresRepo.DeleteRace(ctx, id)
}

// CreateRunList creates a run list owned by the acting user
func (s *RaceService) CreateRunList(ctx context.Context, userID uint, req models.RunListRequest) (*models.RunList, error) {
	list := &models.RunList{
		Name:        req.Name,
		SessionDate: req.SessionDate,
		CreatedBy:   userID,
	}
	if err := s.postgresRepo.CreateRunList(ctx, list); err != nil {
		return nil, fmt.Errorf("failed to create run list: %w", err)
	}
	return list, nil
}

// GetRunList retrieves a run list with its entries ordered by position
func (s *RaceService) GetRunList(ctx context.Context, id uint) (*models.RunList, error) {
	return s.postgresRepo.GetRunList(ctx, id)
}

// ListRunLists retrieves all run lists
func (s *RaceService) ListRunLists(ctx context.Context) ([]models.RunList, error) {
	return s.postgresRepo.ListRunLists(ctx)
}

// UpdateRunList updates a run list's name and session date
func (s *RaceService) UpdateRunList(ctx context.Context, actor *models.User, id uint, req models.RunListRequest) (*models.RunList, error) {
	list, err := s.ownedRunList(ctx, actor, id)
	if err != nil {
		return nil, err
	}

	list.Name = req.Name
	list.SessionDate = req.SessionDate
	if err := s.postgresRepo.UpdateRunList(ctx, list); err != nil {
		return nil, fmt.Errorf("failed to update run list: %w", err)
	}
	return list, nil
}

// DeleteRunList removes a run list and its entries
func (s *RaceService) DeleteRunList(ctx context.Context, actor *models.User, id uint) error {
	if _, err := s.ownedRunList(ctx, actor, id); err != nil {
		return err
	}
	return s.postgresRepo.DeleteRunList(ctx, id)
}

// Reorder replaces the race order of a run list. Every race ID must exist
// and appear at most once; positions are renumbered 1..n.
func (s *RaceService) Reorder(ctx context.Context, actor *models.User, id uint, raceIDs []uint) (*models.RunList, error) {
	if _, err := s.ownedRunList(ctx, actor, id); err != nil {
		return nil, err
	}

	seen := make(map[uint]bool, len(raceIDs))
	for _, raceID := range raceIDs {
		if seen[raceID] {
			return nil, fmt.Errorf("%w: race %d listed twice", ErrValidation, raceID)
		}
		seen[raceID] = true
		if _, err := s.postgresRepo.GetRace(ctx, raceID); err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				return nil, fmt.Errorf("%w: unknown race %d", ErrValidation, raceID)
			}
			return nil, err
		}
	}

	if err := s.postgresRepo.ReplaceRunListEntries(ctx, id, raceIDs); err != nil {
		return nil, fmt.Errorf("failed to reorder run list: %w", err)
	}
	return s.postgresRepo.GetRunList(ctx, id)
}

func (s *RaceService) ownedRunList(ctx context.Context, actor *models.User, id uint) (*models.RunList, error) {
	list, err := s.postgresRepo.GetRunList(ctx, id)
	if err != nil {
		return nil, err
	}
	if list.CreatedBy != actor.ID && !actor.IsAdmin {
		return nil, ErrForbidden
	}
	return list, nil
}
