package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/Sipheren/fridaygt-sub000/internal/models"
	"github.com/Sipheren/fridaygt-sub000/internal/repository"
	"github.com/Sipheren/fridaygt-sub000/internal/worker"
)

// LapTimeService handles lap submission and retrieval. Laps are written to
// Postgres synchronously; the leaderboard version bump and snapshot refresh
// happen afterwards and never fail a submission.
type LapTimeService struct {
	postgresRepo *repository.PostgresRepository
	redisRepo    *repository.RedisRepository
	refreshPool  *worker.Pool
}

// NewLapTimeService creates a new lap time service
func NewLapTimeService(
	postgresRepo *repository.PostgresRepository,
	redisRepo *repository.RedisRepository,
	refreshPool *worker.Pool,
) *LapTimeService {
	return &LapTimeService{
		postgresRepo: postgresRepo,
		redisRepo:    redisRepo,
		refreshPool:  refreshPool,
	}
}

// Submit validates and records a lap for a user
func (s *LapTimeService) Submit(ctx context.Context, userID uint, req models.LapTimeRequest) (*models.LapTime, error) {
	if req.TimeMs <= 0 {
		return nil, fmt.Errorf("%w: lap time must be positive", ErrValidation)
	}

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
	if req.BuildID != nil {
		build, err := s.postgresRepo.GetBuild(ctx, *req.BuildID)
		if err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				return nil, fmt.Errorf("%w: unknown build %d", ErrValidation, *req.BuildID)
			}
			return nil, err
		}
		if build.CarID != req.CarID {
			return nil, fmt.Errorf("%w: build %d belongs to a different car", ErrValidation, *req.BuildID)
		}
	}

	lap := &models.LapTime{
		TimeMs:     req.TimeMs,
		UserID:     userID,
		CarID:      req.CarID,
		BuildID:    req.BuildID,
		TrackID:    req.TrackID,
		Conditions: req.Conditions,
	}
	if err := s.postgresRepo.CreateLapTime(ctx, lap); err != nil {
		return nil, fmt.Errorf("failed to record lap: %w", err)
	}

	s.notifyChange(ctx, lap)
	return lap, nil
}

// List retrieves laps matching the filter
func (s *LapTimeService) List(ctx context.Context, filter repository.LapFilter) ([]models.LapTime, error) {
	return s.postgresRepo.ListLapTimes(ctx, filter)
}

// Delete removes a lap. Only the owner or an admin may delete.
func (s *LapTimeService) Delete(ctx context.Context, actor *models.User, lapID uint) error {
	lap, err := s.postgresRepo.GetLapTime(ctx, lapID)
	if err != nil {
		return err
	}
	if lap.UserID != actor.ID && !actor.IsAdmin {
		return ErrForbidden
	}
	if err := s.postgresRepo.DeleteLapTime(ctx, lapID); err != nil {
		return err
	}

	s.notifyChange(ctx, lap)
	return nil
}

// notifyChange bumps the leaderboard version and queues snapshot refreshes
// for every view the lap can appear on. Failures here are logged by the
// pool and never surface to the caller; the snapshot TTL bounds staleness.
func (s *LapTimeService) notifyChange(ctx context.Context, lap *models.LapTime) {
	_ = s.redisRepo.BumpVersion(ctx)

	tasks := []worker.RefreshTask{
		{},                 // global leaderboard
		{CarID: lap.CarID}, // per-car
	}
	if lap.TrackID != nil {
		tasks = append(tasks,
			worker.RefreshTask{TrackID: *lap.TrackID},
			worker.RefreshTask{CarID: lap.CarID, TrackID: *lap.TrackID},
		)
	}
	for _, task := range tasks {
		_ = s.refreshPool.Submit(task)
	}
}
