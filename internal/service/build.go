package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/Sipheren/fridaygt-sub000/internal/catalog"
	"github.com/Sipheren/fridaygt-sub000/internal/models"
	"github.com/Sipheren/fridaygt-sub000/internal/repository"

	"github.com/google/uuid"
)

// BuildService handles build CRUD and the submission boundary where edited
// selections are validated against the part catalogue and persisted
type BuildService struct {
	postgresRepo *repository.PostgresRepository
}

// NewBuildService creates a new build service
func NewBuildService(postgresRepo *repository.PostgresRepository) *BuildService {
	return &BuildService{
		postgresRepo: postgresRepo,
	}
}

// Create creates a build owned by the acting user
func (s *BuildService) Create(ctx context.Context, userID uint, req models.BuildRequest) (*models.Build, error) {
	if _, err := s.postgresRepo.GetCar(ctx, req.CarID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, fmt.Errorf("%w: unknown car %d", ErrValidation, req.CarID)
		}
		return nil, err
	}

	build := &models.Build{
		Name:        req.Name,
		Description: req.Description,
		IsPublic:    req.IsPublic,
		ShareToken:  uuid.NewString(),
		UserID:      userID,
		CarID:       req.CarID,
	}
	if err := s.postgresRepo.CreateBuild(ctx, build); err != nil {
		return nil, fmt.Errorf("failed to create build: %w", err)
	}
	return build, nil
}

// Get retrieves a build. Private builds are visible only to their owner
// and admins.
func (s *BuildService) Get(ctx context.Context, actor *models.User, buildID uint) (*models.Build, error) {
	build, err := s.postgresRepo.GetBuild(ctx, buildID)
	if err != nil {
		return nil, err
	}
	if !build.IsPublic && build.UserID != actor.ID && !actor.IsAdmin {
		return nil, ErrForbidden
	}
	return build, nil
}

// GetShared retrieves a public build by its share token
func (s *BuildService) GetShared(ctx context.Context, token string) (*models.Build, error) {
	return s.postgresRepo.GetBuildByShareToken(ctx, token)
}

// ListByUser retrieves a user's builds
func (s *BuildService) ListByUser(ctx context.Context, userID uint) ([]models.Build, error) {
	return s.postgresRepo.ListBuildsByUser(ctx, userID)
}

// ListPublicByCar retrieves public builds for a car
func (s *BuildService) ListPublicByCar(ctx context.Context, carID uint) ([]models.Build, error) {
	return s.postgresRepo.ListPublicBuildsByCar(ctx, carID)
}

// Update changes a build's name, description, car and visibility.
// Only the owner or an admin may update.
func (s *BuildService) Update(ctx context.Context, actor *models.User, buildID uint, req models.BuildRequest) (*models.Build, error) {
	build, err := s.ownedBuild(ctx, actor, buildID)
	if err != nil {
		return nil, err
	}

	build.Name = req.Name
	build.Description = req.Description
	build.CarID = req.CarID
	build.IsPublic = req.IsPublic
	if err := s.postgresRepo.UpdateBuild(ctx, build); err != nil {
		return nil, fmt.Errorf("failed to update build: %w", err)
	}
	return build, nil
}

// Delete permanently removes a build. There is no soft delete.
func (s *BuildService) Delete(ctx context.Context, actor *models.User, buildID uint) error {
	if _, err := s.ownedBuild(ctx, actor, buildID); err != nil {
		return err
	}
	return s.postgresRepo.DeleteBuild(ctx, buildID)
}

// SubmitSelections validates a submitted selection list against the part
// catalogue and atomically replaces the build's persisted rows. This is the
// option-set validation boundary: the edit-state model upstream performs none.
func (s *BuildService) SubmitSelections(
	ctx context.Context,
	actor *models.User,
	buildID uint,
	submission models.BuildSubmission,
) (*models.Build, error) {
	if _, err := s.ownedBuild(ctx, actor, buildID); err != nil {
		return nil, err
	}

	upgrades := make([]models.BuildUpgrade, 0, len(submission.Upgrades))
	seen := make(map[string]bool, len(submission.Upgrades)+len(submission.Settings))
	for _, entry := range submission.Upgrades {
		if err := catalog.ValidateUpgrade(entry.FieldID, entry.Value); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrValidation, err)
		}
		if seen[entry.FieldID] {
			return nil, fmt.Errorf("%w: duplicate upgrade field %q", ErrValidation, entry.FieldID)
		}
		seen[entry.FieldID] = true
		upgrades = append(upgrades, models.BuildUpgrade{
			BuildID: buildID,
			PartID:  entry.FieldID,
			Value:   entry.Value,
		})
	}

	settings := make([]models.BuildSetting, 0, len(submission.Settings))
	for _, entry := range submission.Settings {
		if err := catalog.ValidateSetting(entry.FieldID, entry.Value); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrValidation, err)
		}
		if seen[entry.FieldID] {
			return nil, fmt.Errorf("%w: duplicate setting field %q", ErrValidation, entry.FieldID)
		}
		seen[entry.FieldID] = true
		settings = append(settings, models.BuildSetting{
			BuildID:   buildID,
			SettingID: entry.FieldID,
			Value:     entry.Value,
		})
	}

	if err := s.postgresRepo.ReplaceBuildSelections(ctx, buildID, upgrades, settings); err != nil {
		return nil, fmt.Errorf("failed to persist selections: %w", err)
	}
	return s.postgresRepo.GetBuild(ctx, buildID)
}

func (s *BuildService) ownedBuild(ctx context.Context, actor *models.User, buildID uint) (*models.Build, error) {
	build, err := s.postgresRepo.GetBuild(ctx, buildID)
	if err != nil {
		return nil, err
	}
	if build.UserID != actor.ID && !actor.IsAdmin {
		return nil, ErrForbidden
	}
	return build, nil
}
