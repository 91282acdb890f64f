package fees

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/leaderturk/property-management/internal/storage"
	"github.com/leaderturk/property-management/pkg/db/models"
	pkgerrors "github.com/leaderturk/property-management/pkg/errors"
	"github.com/leaderturk/property-management/pkg/types"
)

const resource = "Fee payment"

// Service records monthly dues. Payments are never deleted.
type Service struct {
	payments storage.FeePaymentRepository
	flats    storage.FlatRepository
	now      storage.Clock
}

func NewService(payments storage.FeePaymentRepository, flats storage.FlatRepository, now storage.Clock) (*Service, error) {
	if payments == nil || flats == nil {
		return nil, fmt.Errorf("fee payment and flat repositories are required")
	}
	if now == nil {
		now = storage.SystemClock
	}
	return &Service{payments: payments, flats: flats, now: now}, nil
}

// List returns every payment, or only those of flatID when it is set.
func (s *Service) List(ctx context.Context, flatID string) ([]models.FeePayment, error) {
	var (
		list []models.FeePayment
		err  error
	)
	if flatID != "" {
		list, err = s.payments.ListByFlat(ctx, flatID)
	} else {
		list, err = s.payments.List(ctx)
	}
	return list, storage.Translate(err, resource)
}

func (s *Service) Get(ctx context.Context, id string) (*models.FeePayment, error) {
	fp, err := s.payments.GetByID(ctx, id)
	return fp, storage.Translate(err, resource)
}

func (s *Service) Create(ctx context.Context, in models.FeePaymentInput) (*models.FeePayment, error) {
	if err := s.checkFlat(ctx, in.FlatID); err != nil {
		return nil, err
	}
	isPaid := in.IsPaid != nil && *in.IsPaid
	in.PaidAt = derivePaidAt(isPaid, in.PaidAt, s.now())
	fp, err := s.payments.Create(ctx, in)
	return fp, storage.Translate(err, resource)
}

func (s *Service) Update(ctx context.Context, id string, patch models.FeePaymentPatch) (*models.FeePayment, error) {
	existing, err := s.payments.GetByID(ctx, id)
	if err != nil {
		return nil, storage.Translate(err, resource)
	}
	if patch.FlatID.Set && patch.FlatID.Value != existing.FlatID {
		if err := s.checkFlat(ctx, patch.FlatID.Value); err != nil {
			return nil, err
		}
	}

	isPaid := existing.IsPaid
	if patch.IsPaid.Set {
		isPaid = patch.IsPaid.Value
	}
	paidAt := existing.PaidAt
	if patch.PaidAt.Set {
		paidAt = patch.PaidAt.Value
	}
	patch.PaidAt = types.Nullable[time.Time]{Set: true, Value: derivePaidAt(isPaid, paidAt, s.now())}

	fp, err := s.payments.Update(ctx, id, patch)
	return fp, storage.Translate(err, resource)
}

// derivePaidAt keeps paidAt set exactly while a payment is paid. A paid
// payment without a timestamp is stamped with now.
func derivePaidAt(isPaid bool, paidAt *time.Time, now time.Time) *time.Time {
	if !isPaid {
		return nil
	}
	if paidAt != nil {
		t := paidAt.UTC().Truncate(time.Microsecond)
		return &t
	}
	return &now
}

func (s *Service) checkFlat(ctx context.Context, flatID string) error {
	_, err := s.flats.GetByID(ctx, flatID)
	if errors.Is(err, storage.ErrNotFound) {
		return pkgerrors.Validation("flatId", "does not reference an existing flat")
	}
	return storage.Translate(err, "Flat")
}
