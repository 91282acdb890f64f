package residents

import (
	"context"
	"fmt"

	"github.com/leaderturk/property-management/internal/storage"
	"github.com/leaderturk/property-management/pkg/db/models"
	pkgerrors "github.com/leaderturk/property-management/pkg/errors"
)

const resource = "Resident"

type Service struct {
	residents storage.ResidentRepository
}

func NewService(residents storage.ResidentRepository) (*Service, error) {
	if residents == nil {
		return nil, fmt.Errorf("resident repository is required")
	}
	return &Service{residents: residents}, nil
}

func (s *Service) List(ctx context.Context) ([]models.Resident, error) {
	list, err := s.residents.List(ctx)
	return list, storage.Translate(err, resource)
}

func (s *Service) Get(ctx context.Context, id string) (*models.Resident, error) {
	r, err := s.residents.GetByID(ctx, id)
	return r, storage.Translate(err, resource)
}

func (s *Service) Create(ctx context.Context, in models.ResidentInput) (*models.Resident, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}
	r, err := s.residents.Create(ctx, in)
	return r, storage.Translate(err, resource)
}

func (s *Service) Update(ctx context.Context, id string, patch models.ResidentPatch) (*models.Resident, error) {
	if err := patch.Validate(); err != nil {
		return nil, err
	}
	r, err := s.residents.Update(ctx, id, patch)
	return r, storage.Translate(err, resource)
}

// Delete removes a resident and vacates the flats they occupied.
func (s *Service) Delete(ctx context.Context, id string) error {
	ok, err := s.residents.Delete(ctx, id)
	if err != nil {
		return storage.Translate(err, resource)
	}
	if !ok {
		return pkgerrors.NotFound(resource)
	}
	return nil
}
