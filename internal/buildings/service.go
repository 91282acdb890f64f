package buildings

import (
	"context"
	"errors"
	"fmt"

	"github.com/leaderturk/property-management/internal/storage"
	"github.com/leaderturk/property-management/pkg/db/models"
	pkgerrors "github.com/leaderturk/property-management/pkg/errors"
)

const resource = "Building"

// Service manages buildings and checks that their manager exists.
type Service struct {
	buildings storage.BuildingRepository
	users     storage.UserRepository
}

func NewService(buildings storage.BuildingRepository, users storage.UserRepository) (*Service, error) {
	if buildings == nil || users == nil {
		return nil, fmt.Errorf("building and user repositories are required")
	}
	return &Service{buildings: buildings, users: users}, nil
}

func (s *Service) List(ctx context.Context) ([]models.Building, error) {
	list, err := s.buildings.List(ctx)
	return list, storage.Translate(err, resource)
}

func (s *Service) Get(ctx context.Context, id string) (*models.Building, error) {
	b, err := s.buildings.GetByID(ctx, id)
	return b, storage.Translate(err, resource)
}

func (s *Service) Create(ctx context.Context, in models.BuildingInput) (*models.Building, error) {
	if in.ManagerID != nil && *in.ManagerID != "" {
		if err := s.checkManager(ctx, *in.ManagerID); err != nil {
			return nil, err
		}
	}
	b, err := s.buildings.Create(ctx, in)
	return b, storage.Translate(err, resource)
}

func (s *Service) Update(ctx context.Context, id string, patch models.BuildingPatch) (*models.Building, error) {
	if patch.ManagerID.Set && patch.ManagerID.Value != nil && *patch.ManagerID.Value != "" {
		if err := s.checkManager(ctx, *patch.ManagerID.Value); err != nil {
			return nil, err
		}
	}
	b, err := s.buildings.Update(ctx, id, patch)
	return b, storage.Translate(err, resource)
}

// Delete removes a building. Buildings that still have flats are kept.
func (s *Service) Delete(ctx context.Context, id string) error {
	ok, err := s.buildings.Delete(ctx, id)
	if errors.Is(err, storage.ErrConflict) {
		return pkgerrors.Wrap(pkgerrors.CodeConflict, err, "Building still has flats")
	}
	if err != nil {
		return storage.Translate(err, resource)
	}
	if !ok {
		return pkgerrors.NotFound(resource)
	}
	return nil
}

func (s *Service) checkManager(ctx context.Context, managerID string) error {
	_, err := s.users.GetByID(ctx, managerID)
	if errors.Is(err, storage.ErrNotFound) {
		return pkgerrors.Validation("managerId", "does not reference an existing user")
	}
	return storage.Translate(err, "User")
}
