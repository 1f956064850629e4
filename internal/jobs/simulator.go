// Package jobs hosts background jobs that bypass the HTTP layer.
package jobs

import (
	"context"
	"fmt"
	"log"
	"math/rand"
	"sync"
	"sync/atomic"
	"time"

	"github.com/Sipheren/fridaygt-sub000/internal/models"
	"github.com/Sipheren/fridaygt-sub000/internal/repository"
	"github.com/Sipheren/fridaygt-sub000/internal/service"
)

// LapSimulator feeds random lap submissions through the lap service for
// load testing and demo environments. Disabled in normal operation.
type LapSimulator struct {
	lapService   *service.LapTimeService
	postgresRepo *repository.PostgresRepository

	users  []models.User
	cars   []models.Car
	tracks []models.Track

	stopCh  chan struct{}
	wg      sync.WaitGroup
	running atomic.Bool

	totalLaps    atomic.Int64
	errorCount   atomic.Int64
	tickInterval time.Duration
}

// NewLapSimulator creates a lap simulator
func NewLapSimulator(
	lapService *service.LapTimeService,
	postgresRepo *repository.PostgresRepository,
	tickInterval time.Duration,
) *LapSimulator {
	if tickInterval <= 0 {
		tickInterval = 500 * time.Millisecond
	}
	return &LapSimulator{
		lapService:   lapService,
		postgresRepo: postgresRepo,
		stopCh:       make(chan struct{}),
		tickInterval: tickInterval,
	}
}

// Start loads the demo population and begins submitting laps
func (s *LapSimulator) Start(ctx context.Context) error {
	if s.running.Load() {
		return fmt.Errorf("simulator already running")
	}

	var err error
	if s.users, err = s.postgresRepo.ListUsers(ctx); err != nil {
		return fmt.Errorf("failed to load users: %w", err)
	}
	if s.cars, err = s.postgresRepo.ListCars(ctx); err != nil {
		return fmt.Errorf("failed to load cars: %w", err)
	}
	if s.tracks, err = s.postgresRepo.ListTracks(ctx); err != nil {
		return fmt.Errorf("failed to load tracks: %w", err)
	}
	if len(s.users) == 0 || len(s.cars) == 0 {
		return fmt.Errorf("no users or cars available for simulation")
	}

	s.running.Store(true)
	log.Printf("Lap simulator started: %d users, %d cars, %d tracks, tick %v",
		len(s.users), len(s.cars), len(s.tracks), s.tickInterval)

	s.wg.Add(1)
	go s.loop(ctx)
	return nil
}

// Stop gracefully stops the simulator
func (s *LapSimulator) Stop() {
	if !s.running.Load() {
		return
	}
	s.running.Store(false)
	close(s.stopCh)
	s.wg.Wait()

	log.Printf("Lap simulator stopped: %d laps submitted, %d errors",
		s.totalLaps.Load(), s.errorCount.Load())
}

// IsRunning reports whether the simulator is active
func (s *LapSimulator) IsRunning() bool {
	return s.running.Load()
}

func (s *LapSimulator) loop(ctx context.Context) {
	defer s.wg.Done()

	ticker := time.NewTicker(s.tickInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-s.stopCh:
			return
		case <-ticker.C:
			s.submitRandomLap(ctx)
		}
	}
}

func (s *LapSimulator) submitRandomLap(ctx context.Context) {
	user := s.users[rand.Intn(len(s.users))]
	car := s.cars[rand.Intn(len(s.cars))]

	req := models.LapTimeRequest{
		// 60s to 180s, millisecond jitter
		TimeMs: 60000 + rand.Intn(120000),
		CarID:  car.ID,
	}
	if len(s.tracks) > 0 && rand.Intn(4) != 0 {
		trackID := s.tracks[rand.Intn(len(s.tracks))].ID
		req.TrackID = &trackID
	}

	s.totalLaps.Add(1)
	if _, err := s.lapService.Submit(ctx, user.ID, req); err != nil {
		if s.errorCount.Add(1)%100 == 1 {
			log.Printf("Simulator error (total: %d): %v", s.errorCount.Load(), err)
		}
	}
}
