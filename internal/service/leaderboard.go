package service

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/Sipheren/fridaygt-sub000/internal/leaderboard"
	"github.com/Sipheren/fridaygt-sub000/internal/models"
	"github.com/Sipheren/fridaygt-sub000/internal/repository"
	"github.com/Sipheren/fridaygt-sub000/internal/worker"
)

// LeaderboardService assembles ranked leaderboards from persisted laps.
// Postgres is authoritative; Redis holds the change version and cached
// snapshots that the refresh pool rebuilds after lap writes.
type LeaderboardService struct {
	postgresRepo *repository.PostgresRepository
	redisRepo    *repository.RedisRepository
}

// NewLeaderboardService creates a new leaderboard service
func NewLeaderboardService(
	postgresRepo *repository.PostgresRepository,
	redisRepo *repository.RedisRepository,
) *LeaderboardService {
	return &LeaderboardService{
		postgresRepo: postgresRepo,
		redisRepo:    redisRepo,
	}
}

// Get returns the leaderboard for an optional car/track filter, serving a
// cached snapshot when one exists and rebuilding (and caching) on miss.
// Zero IDs mean unfiltered. limit <= 0 falls back to the default display size.
func (s *LeaderboardService) Get(ctx context.Context, carID, trackID uint, limit int) (*models.LeaderboardResponse, error) {
	if limit <= 0 {
		limit = leaderboard.DefaultTopN
	}

	// Only default-sized views are cached; custom limits rebuild directly
	if limit == leaderboard.DefaultTopN {
		key := repository.SnapshotKey(carID, trackID)
		payload, ok, err := s.redisRepo.GetSnapshot(ctx, key)
		if err == nil && ok {
			var cached models.LeaderboardResponse
			if err := json.Unmarshal(payload, &cached); err == nil {
				return &cached, nil
			}
		}
	}

	resp, err := s.build(ctx, carID, trackID, limit)
	if err != nil {
		return nil, err
	}

	if limit == leaderboard.DefaultTopN {
		s.cache(ctx, carID, trackID, resp)
	}
	return resp, nil
}

// RefreshSnapshot rebuilds and caches one snapshot. Implements the refresh
// pool's task contract.
func (s *LeaderboardService) RefreshSnapshot(ctx context.Context, task worker.RefreshTask) error {
	resp, err := s.build(ctx, task.CarID, task.TrackID, leaderboard.DefaultTopN)
	if err != nil {
		return err
	}
	return s.cache(ctx, task.CarID, task.TrackID, resp)
}

func (s *LeaderboardService) cache(ctx context.Context, carID, trackID uint, resp *models.LeaderboardResponse) error {
	payload, err := json.Marshal(resp)
	if err != nil {
		return err
	}
	return s.redisRepo.SetSnapshot(ctx, repository.SnapshotKey(carID, trackID), payload)
}

func (s *LeaderboardService) build(ctx context.Context, carID, trackID uint, limit int) (*models.LeaderboardResponse, error) {
	filter := repository.LapFilter{}
	var carFilter, trackFilter *uint
	if carID != 0 {
		carFilter = &carID
		filter.CarID = carFilter
	}
	if trackID != 0 {
		trackFilter = &trackID
		filter.TrackID = trackFilter
	}

	laps, err := s.postgresRepo.ListLapTimes(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to load laps: %w", err)
	}

	result := leaderboard.Aggregate(toAggregateLaps(laps), limit)

	entries, err := s.resolveEntries(ctx, result.Entries)
	if err != nil {
		return nil, err
	}

	version, err := s.redisRepo.GetVersion(ctx)
	if err != nil {
		// A missing version only degrades client change detection
		version = 0
	}

	return &models.LeaderboardResponse{
		Entries: entries,
		Stats: models.LeaderboardStats{
			TotalLaps:     result.Stats.TotalLaps,
			FastestTimeMs: result.Stats.FastestTimeMs,
			AverageTimeMs: result.Stats.AverageTimeMs,
			UniqueDrivers: result.Stats.UniqueDrivers,
			UniqueTracks:  result.Stats.UniqueTracks,
		},
		CarID:   carFilter,
		TrackID: trackFilter,
		Version: version,
	}, nil
}

// resolveEntries decorates ranked entries with display names
func (s *LeaderboardService) resolveEntries(ctx context.Context, entries []leaderboard.Entry) ([]models.LeaderboardEntry, error) {
	userIDs := make([]uint, 0, len(entries))
	carIDs := make([]uint, 0, len(entries))
	buildIDs := make([]uint, 0, len(entries))
	for _, e := range entries {
		userIDs = append(userIDs, e.UserID)
		carIDs = append(carIDs, e.CarID)
		if e.BuildID != nil {
			buildIDs = append(buildIDs, *e.BuildID)
		}
	}

	usernames, err := s.postgresRepo.GetUsernames(ctx, userIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve usernames: %w", err)
	}
	carNames, err := s.postgresRepo.GetCarNames(ctx, carIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve car names: %w", err)
	}
	buildNames, err := s.postgresRepo.GetBuildNames(ctx, buildIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve build names: %w", err)
	}

	out := make([]models.LeaderboardEntry, 0, len(entries))
	for _, e := range entries {
		entry := models.LeaderboardEntry{
			Position:        e.Position,
			UserID:          e.UserID,
			Username:        usernames[e.UserID],
			CarID:           e.CarID,
			CarName:         carNames[e.CarID],
			BuildID:         e.BuildID,
			BestTimeMs:      e.BestTimeMs,
			BestTime:        leaderboard.FormatLapTime(e.BestTimeMs),
			TotalLaps:       e.TotalLaps,
			LastImprovement: e.LastImprovement,
		}
		if e.BuildID != nil {
			entry.BuildName = buildNames[*e.BuildID]
		}
		out = append(out, entry)
	}
	return out, nil
}

// TrackBests returns per-track personal bests for a car, optionally
// restricted to one user's laps
func (s *LeaderboardService) TrackBests(ctx context.Context, carID uint, userID *uint) ([]models.TrackBestEntry, error) {
	filter := repository.LapFilter{CarID: &carID, UserID: userID}
	laps, err := s.postgresRepo.ListLapTimes(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to load laps: %w", err)
	}

	lapsByID := make(map[uint]models.LapTime, len(laps))
	for _, lap := range laps {
		lapsByID[lap.ID] = lap
	}

	summaries := leaderboard.TrackBests(toAggregateLaps(laps), leaderboard.DefaultRecentLaps)

	trackIDs := make([]uint, 0, len(summaries))
	for _, sum := range summaries {
		if sum.TrackID != nil {
			trackIDs = append(trackIDs, *sum.TrackID)
		}
	}
	trackNames, err := s.postgresRepo.GetTrackNames(ctx, trackIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve track names: %w", err)
	}

	out := make([]models.TrackBestEntry, 0, len(summaries))
	for _, sum := range summaries {
		entry := models.TrackBestEntry{
			TrackID:    sum.TrackID,
			BestTimeMs: sum.BestTimeMs,
			BestTime:   leaderboard.FormatLapTime(sum.BestTimeMs),
			TotalLaps:  sum.TotalLaps,
		}
		if sum.TrackID != nil {
			entry.TrackName = trackNames[*sum.TrackID]
		}
		for _, recent := range sum.RecentLaps {
			if lap, ok := lapsByID[recent.ID]; ok {
				entry.RecentLaps = append(entry.RecentLaps, lap)
			}
		}
		out = append(out, entry)
	}
	return out, nil
}

func toAggregateLaps(laps []models.LapTime) []leaderboard.Lap {
	out := make([]leaderboard.Lap, 0, len(laps))
	for _, lap := range laps {
		out = append(out, leaderboard.Lap{
			ID:        lap.ID,
			UserID:    lap.UserID,
			CarID:     lap.CarID,
			BuildID:   lap.BuildID,
			TrackID:   lap.TrackID,
			TimeMs:    lap.TimeMs,
			CreatedAt: lap.CreatedAt,
		})
	}
	return out
}
