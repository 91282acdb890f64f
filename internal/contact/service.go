package contact

import (
	"context"
	"fmt"

	"github.com/leaderturk/property-management/internal/storage"
	"github.com/leaderturk/property-management/pkg/db/models"
	"github.com/leaderturk/property-management/pkg/logger"
)

const resource = "Contact request"

// Service accepts public contact form submissions and lets admins triage them.
type Service struct {
	requests storage.ContactRepository
	logg     *logger.Logger
}

func NewService(requests storage.ContactRepository, logg *logger.Logger) (*Service, error) {
	if requests == nil {
		return nil, fmt.Errorf("contact repository is required")
	}
	return &Service{requests: requests, logg: logg}, nil
}

// Submit stores a new request with status "new".
func (s *Service) Submit(ctx context.Context, in models.ContactRequestInput) (*models.ContactRequest, error) {
	cr, err := s.requests.Create(ctx, in)
	if err != nil {
		return nil, storage.Translate(err, resource)
	}
	if s.logg != nil {
		fields := map[string]any{"contact_request_id": cr.ID}
		if cr.ServiceType != nil {
			fields["service_type"] = *cr.ServiceType
		}
		s.logg.Info(s.logg.WithFields(ctx, fields), "contact.submitted")
	}
	return cr, nil
}

func (s *Service) List(ctx context.Context) ([]models.ContactRequest, error) {
	list, err := s.requests.List(ctx)
	return list, storage.Translate(err, resource)
}

// UpdateStatus sets the triage status of a request.
func (s *Service) UpdateStatus(ctx context.Context, id string, patch models.ContactRequestPatch) (*models.ContactRequest, error) {
	cr, err := s.requests.Update(ctx, id, patch)
	return cr, storage.Translate(err, resource)
}
