package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/leaderturk/property-management/internal/storage"
	"github.com/leaderturk/property-management/internal/users"
	"github.com/leaderturk/property-management/pkg/config"
	"github.com/leaderturk/property-management/pkg/db/models"
	"github.com/leaderturk/property-management/pkg/enums"
	pkgerrors "github.com/leaderturk/property-management/pkg/errors"
	"github.com/leaderturk/property-management/pkg/metrics"
	"github.com/leaderturk/property-management/pkg/security"
)

const invalidCredentialsMessage = "invalid credentials"

// Service authenticates credentials and registers self-service accounts.
type Service struct {
	users    storage.UserRepository
	password config.PasswordConfig
	metrics  *metrics.AuthMetrics
}

// ServiceParams bundles the dependencies required to build an auth service.
type ServiceParams struct {
	Users    storage.UserRepository
	Password config.PasswordConfig
	Metrics  *metrics.AuthMetrics
}

func NewService(params ServiceParams) (*Service, error) {
	if params.Users == nil {
		return nil, fmt.Errorf("user repository is required")
	}
	return &Service{
		users:    params.Users,
		password: params.Password,
		metrics:  params.Metrics,
	}, nil
}

// Authenticate checks a username and password. Every failure mode yields
// the same UNAUTHORIZED error.
func (s *Service) Authenticate(ctx context.Context, req LoginRequest) (*models.User, error) {
	user, err := s.authenticate(ctx, req.Username, req.Password)
	if err != nil {
		s.metrics.Record("login", outcome(err))
		return nil, err
	}
	s.metrics.Record("login", "success")
	return user, nil
}

func (s *Service) authenticate(ctx context.Context, username, password string) (*models.User, error) {
	input := strings.TrimSpace(username)
	if input == "" {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, invalidCredentialsMessage)
	}
	user, err := s.users.GetByUsername(ctx, input)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, invalidCredentialsMessage)
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "lookup user")
	}
	if user.Password == nil || !security.VerifyPassword(password, *user.Password, s.password) {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, invalidCredentialsMessage)
	}
	return user, nil
}

// Register creates a regular user. The requested role is ignored.
func (s *Service) Register(ctx context.Context, req RegisterRequest) (*models.User, error) {
	user, err := s.register(ctx, req)
	if err != nil {
		s.metrics.Record("register", outcome(err))
		return nil, err
	}
	s.metrics.Record("register", "success")
	return user, nil
}

func (s *Service) register(ctx context.Context, req RegisterRequest) (*models.User, error) {
	username := strings.TrimSpace(req.Username)
	if len(username) < 3 {
		return nil, pkgerrors.Validation("username", "must be at least 3 characters")
	}

	hash, err := security.HashPassword(req.Password, s.password)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "hash password")
	}

	return users.CreateAccount(ctx, s.users, models.UserInput{
		Username: &username,
		Password: &hash,
		Role:     enums.RoleUser,
	})
}

// Principal re-fetches the live user behind a session. A user deleted since
// login yields nil.
func (s *Service) Principal(ctx context.Context, userID string) (*models.User, error) {
	user, err := s.users.GetByID(ctx, userID)
	if errors.Is(err, storage.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return user, nil
}

func outcome(err error) string {
	typed := pkgerrors.As(err)
	if typed == nil {
		return "error"
	}
	switch typed.Code() {
	case pkgerrors.CodeUnauthorized:
		return "rejected"
	case pkgerrors.CodeValidation:
		return "invalid"
	default:
		return "error"
	}
}
