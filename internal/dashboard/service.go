package dashboard

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/leaderturk/property-management/internal/storage"
	"github.com/leaderturk/property-management/pkg/enums"
)

// Stats is the admin dashboard summary. TotalRevenue is a JSON number with
// two decimals.
type Stats struct {
	TotalBuildings     int         `json:"totalBuildings"`
	TotalFlats         int         `json:"totalFlats"`
	PaymentRate        int         `json:"paymentRate"`
	PendingMaintenance int         `json:"pendingMaintenance"`
	TotalRevenue       json.Number `json:"totalRevenue"`
}

type Service struct {
	store storage.Storage
}

func NewService(store storage.Storage) (*Service, error) {
	if store == nil {
		return nil, fmt.Errorf("storage is required")
	}
	return &Service{store: store}, nil
}

func (s *Service) Stats(ctx context.Context) (*Stats, error) {
	buildings, err := s.store.Buildings().List(ctx)
	if err != nil {
		return nil, storage.Translate(err, "Building")
	}
	flats, err := s.store.Flats().List(ctx)
	if err != nil {
		return nil, storage.Translate(err, "Flat")
	}
	payments, err := s.store.FeePayments().List(ctx)
	if err != nil {
		return nil, storage.Translate(err, "Fee payment")
	}
	requests, err := s.store.MaintenanceRequests().List(ctx)
	if err != nil {
		return nil, storage.Translate(err, "Maintenance request")
	}

	paid := 0
	revenue := decimal.Zero
	for _, p := range payments {
		if p.IsPaid {
			paid++
			revenue = revenue.Add(p.Amount.Decimal)
		}
	}

	pending := 0
	for _, r := range requests {
		if r.Status == enums.MaintenanceStatusPending {
			pending++
		}
	}

	return &Stats{
		TotalBuildings:     len(buildings),
		TotalFlats:         len(flats),
		PaymentRate:        paymentRate(len(flats), paid, len(payments)),
		PendingMaintenance: pending,
		TotalRevenue:       json.Number(revenue.StringFixed(2)),
	}, nil
}

// paymentRate is the rounded percentage of paid payments. It is 0 until
// there is at least one flat and one payment.
func paymentRate(flats, paid, total int) int {
	if flats == 0 || total == 0 {
		return 0
	}
	return (paid*200 + total) / (2 * total)
}
