package flats

import (
	"context"
	"errors"
	"fmt"

	"github.com/leaderturk/property-management/internal/storage"
	"github.com/leaderturk/property-management/pkg/db/models"
	pkgerrors "github.com/leaderturk/property-management/pkg/errors"
	"github.com/leaderturk/property-management/pkg/validation"
)

const resource = "Flat"

// Service manages flats and keeps their building and resident references valid.
type Service struct {
	flats     storage.FlatRepository
	buildings storage.BuildingRepository
	residents storage.ResidentRepository
}

func NewService(flats storage.FlatRepository, buildings storage.BuildingRepository, residents storage.ResidentRepository) (*Service, error) {
	if flats == nil || buildings == nil || residents == nil {
		return nil, fmt.Errorf("flat, building and resident repositories are required")
	}
	return &Service{flats: flats, buildings: buildings, residents: residents}, nil
}

// List returns every flat, or only those of buildingID when it is set.
func (s *Service) List(ctx context.Context, buildingID string) ([]models.Flat, error) {
	var (
		list []models.Flat
		err  error
	)
	if buildingID != "" {
		list, err = s.flats.ListByBuilding(ctx, buildingID)
	} else {
		list, err = s.flats.List(ctx)
	}
	return list, storage.Translate(err, resource)
}

func (s *Service) Get(ctx context.Context, id string) (*models.Flat, error) {
	f, err := s.flats.GetByID(ctx, id)
	return f, storage.Translate(err, resource)
}

func (s *Service) Create(ctx context.Context, in models.FlatInput) (*models.Flat, error) {
	var residentID *string
	if in.ResidentID != nil && *in.ResidentID != "" {
		residentID = in.ResidentID
	}
	if err := s.checkRefs(ctx, &in.BuildingID, residentID); err != nil {
		return nil, err
	}
	f, err := s.flats.Create(ctx, in)
	return f, storage.Translate(err, resource)
}

func (s *Service) Update(ctx context.Context, id string, patch models.FlatPatch) (*models.Flat, error) {
	var buildingID, residentID *string
	if patch.BuildingID.Set {
		buildingID = &patch.BuildingID.Value
	}
	if patch.ResidentID.Set && patch.ResidentID.Value != nil && *patch.ResidentID.Value != "" {
		residentID = patch.ResidentID.Value
	}
	if err := s.checkRefs(ctx, buildingID, residentID); err != nil {
		return nil, err
	}
	f, err := s.flats.Update(ctx, id, patch)
	return f, storage.Translate(err, resource)
}

// Delete removes a flat. Flats with fee or maintenance history are kept.
func (s *Service) Delete(ctx context.Context, id string) error {
	ok, err := s.flats.Delete(ctx, id)
	if errors.Is(err, storage.ErrConflict) {
		return pkgerrors.Wrap(pkgerrors.CodeConflict, err, "Flat has fee payments or maintenance requests")
	}
	if err != nil {
		return storage.Translate(err, resource)
	}
	if !ok {
		return pkgerrors.NotFound(resource)
	}
	return nil
}

func (s *Service) checkRefs(ctx context.Context, buildingID, residentID *string) error {
	errs := validation.Errors{}
	if buildingID != nil {
		if _, err := s.buildings.GetByID(ctx, *buildingID); err != nil {
			if !errors.Is(err, storage.ErrNotFound) {
				return storage.Translate(err, "Building")
			}
			errs.Add("buildingId", "does not reference an existing building")
		}
	}
	if residentID != nil {
		if _, err := s.residents.GetByID(ctx, *residentID); err != nil {
			if !errors.Is(err, storage.ErrNotFound) {
				return storage.Translate(err, "Resident")
			}
			errs.Add("residentId", "does not reference an existing resident")
		}
	}
	return errs.Err()
}
