package maintenance

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/leaderturk/property-management/internal/storage"
	"github.com/leaderturk/property-management/pkg/db/models"
	"github.com/leaderturk/property-management/pkg/enums"
	pkgerrors "github.com/leaderturk/property-management/pkg/errors"
	"github.com/leaderturk/property-management/pkg/types"
)

const resource = "Maintenance request"

// Service tracks maintenance tickets. resolvedAt is stamped when a ticket
// becomes completed and cleared when it leaves that state.
type Service struct {
	requests storage.MaintenanceRepository
	flats    storage.FlatRepository
	now      storage.Clock
}

func NewService(requests storage.MaintenanceRepository, flats storage.FlatRepository, now storage.Clock) (*Service, error) {
	if requests == nil || flats == nil {
		return nil, fmt.Errorf("maintenance and flat repositories are required")
	}
	if now == nil {
		now = storage.SystemClock
	}
	return &Service{requests: requests, flats: flats, now: now}, nil
}

func (s *Service) List(ctx context.Context, flatID string) ([]models.MaintenanceRequest, error) {
	var (
		list []models.MaintenanceRequest
		err  error
	)
	if flatID != "" {
		list, err = s.requests.ListByFlat(ctx, flatID)
	} else {
		list, err = s.requests.List(ctx)
	}
	return list, storage.Translate(err, resource)
}

func (s *Service) Get(ctx context.Context, id string) (*models.MaintenanceRequest, error) {
	mr, err := s.requests.GetByID(ctx, id)
	return mr, storage.Translate(err, resource)
}

func (s *Service) Create(ctx context.Context, in models.MaintenanceRequestInput) (*models.MaintenanceRequest, error) {
	if err := s.checkFlat(ctx, in.FlatID); err != nil {
		return nil, err
	}
	mr, err := s.requests.Create(ctx, in)
	return mr, storage.Translate(err, resource)
}

func (s *Service) Update(ctx context.Context, id string, patch models.MaintenanceRequestPatch) (*models.MaintenanceRequest, error) {
	existing, err := s.requests.GetByID(ctx, id)
	if err != nil {
		return nil, storage.Translate(err, resource)
	}
	if patch.FlatID.Set && patch.FlatID.Value != existing.FlatID {
		if err := s.checkFlat(ctx, patch.FlatID.Value); err != nil {
			return nil, err
		}
	}

	patch.ResolvedAt = types.Nullable[time.Time]{}
	if patch.Status.Set {
		completed := patch.Status.Value == enums.MaintenanceStatusCompleted
		wasCompleted := existing.Status == enums.MaintenanceStatusCompleted
		switch {
		case completed && !wasCompleted:
			patch.ResolvedAt = types.Value(s.now())
		case !completed && wasCompleted:
			patch.ResolvedAt = types.Null[time.Time]()
		}
	}

	mr, err := s.requests.Update(ctx, id, patch)
	return mr, storage.Translate(err, resource)
}

func (s *Service) checkFlat(ctx context.Context, flatID string) error {
	_, err := s.flats.GetByID(ctx, flatID)
	if errors.Is(err, storage.ErrNotFound) {
		return pkgerrors.Validation("flatId", "does not reference an existing flat")
	}
	return storage.Translate(err, "Flat")
}
