package users

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/leaderturk/property-management/internal/storage"
	"github.com/leaderturk/property-management/pkg/config"
	"github.com/leaderturk/property-management/pkg/db/models"
	"github.com/leaderturk/property-management/pkg/enums"
	pkgerrors "github.com/leaderturk/property-management/pkg/errors"
	"github.com/leaderturk/property-management/pkg/security"
	"github.com/leaderturk/property-management/pkg/types"
)

const usernameTakenMessage = "Username already exists"

// ErrUsernameTaken is returned when a username is already registered.
var ErrUsernameTaken = pkgerrors.New(pkgerrors.CodeValidation, usernameTakenMessage)

// Service implements admin user management.
type Service struct {
	users    storage.UserRepository
	password config.PasswordConfig
}

func NewService(users storage.UserRepository, password config.PasswordConfig) (*Service, error) {
	if users == nil {
		return nil, fmt.Errorf("user repository is required")
	}
	return &Service{users: users, password: password}, nil
}

func (s *Service) List(ctx context.Context) ([]PublicUser, error) {
	list, err := s.users.List(ctx)
	if err != nil {
		return nil, storage.Translate(err, "User")
	}
	return FromModels(list), nil
}

func (s *Service) Create(ctx context.Context, req CreateUserRequest) (*PublicUser, error) {
	username := strings.TrimSpace(req.Username)
	if len(username) < 3 {
		return nil, pkgerrors.Validation("username", "must be at least 3 characters")
	}
	role := req.Role
	if role == "" {
		role = enums.RoleUser
	}

	hash, err := security.HashPassword(req.Password, s.password)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "hash password")
	}

	u, err := CreateAccount(ctx, s.users, models.UserInput{
		Username:  &username,
		Password:  &hash,
		Role:      role,
		Email:     optionalString(req.Email),
		FirstName: optionalString(req.FirstName),
		LastName:  optionalString(req.LastName),
	})
	if err != nil {
		return nil, err
	}
	return FromModel(u), nil
}

// ChangePassword replaces the stored hash of an existing user.
func (s *Service) ChangePassword(ctx context.Context, id string, req ChangePasswordRequest) (*PublicUser, error) {
	if _, err := s.users.GetByID(ctx, id); err != nil {
		return nil, storage.Translate(err, "User")
	}
	hash, err := security.HashPassword(req.Password, s.password)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "hash password")
	}
	u, err := s.users.Update(ctx, id, models.UserPatch{Password: types.Value(hash)})
	if err != nil {
		return nil, storage.Translate(err, "User")
	}
	return FromModel(u), nil
}

// Delete removes a user. An admin cannot remove their own account.
func (s *Service) Delete(ctx context.Context, actorID, id string) error {
	if actorID != "" && actorID == id {
		return pkgerrors.New(pkgerrors.CodeValidation, "Cannot delete your own account")
	}
	ok, err := s.users.Delete(ctx, id)
	if err != nil {
		return storage.Translate(err, "User")
	}
	if !ok {
		return pkgerrors.NotFound("User")
	}
	return nil
}

// CreateAccount persists a user whose password is already hashed, rejecting
// taken usernames. Registration and admin creation share it.
func CreateAccount(ctx context.Context, repo storage.UserRepository, in models.UserInput) (*models.User, error) {
	if in.Username != nil {
		_, err := repo.GetByUsername(ctx, *in.Username)
		switch {
		case err == nil:
			return nil, ErrUsernameTaken
		case !errors.Is(err, storage.ErrNotFound):
			return nil, storage.Translate(err, "User")
		}
	}
	u, err := repo.Create(ctx, in)
	if errors.Is(err, storage.ErrConflict) {
		return nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "Username or email already exists")
	}
	if err != nil {
		return nil, storage.Translate(err, "User")
	}
	return u, nil
}

func optionalString(v string) *string {
	v = strings.TrimSpace(v)
	if v == "" {
		return nil
	}
	return &v
}
