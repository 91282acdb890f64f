package users

import (
	"time"

	"github.com/leaderturk/property-management/pkg/db/models"
	"github.com/leaderturk/property-management/pkg/enums"
)

// PublicUser is the transport shape of a user. It has no password field.
type PublicUser struct {
	ID              string     `json:"id"`
	Username        *string    `json:"username"`
	Role            enums.Role `json:"role"`
	Email           *string    `json:"email"`
	FirstName       *string    `json:"firstName"`
	LastName        *string    `json:"lastName"`
	ProfileImageURL *string    `json:"profileImageUrl"`
	CreatedAt       time.Time  `json:"createdAt"`
	UpdatedAt       time.Time  `json:"updatedAt"`
}

func FromModel(u *models.User) *PublicUser {
	if u == nil {
		return nil
	}
	return &PublicUser{
		ID:              u.ID,
		Username:        u.Username,
		Role:            u.Role,
		Email:           u.Email,
		FirstName:       u.FirstName,
		LastName:        u.LastName,
		ProfileImageURL: u.ProfileImageURL,
		CreatedAt:       u.CreatedAt,
		UpdatedAt:       u.UpdatedAt,
	}
}

func FromModels(list []models.User) []PublicUser {
	out := make([]PublicUser, 0, len(list))
	for i := range list {
		out = append(out, *FromModel(&list[i]))
	}
	return out
}

// CreateUserRequest is the admin payload for creating an account.
type CreateUserRequest struct {
	Username  string     `json:"username" validate:"required,min=3,max=50"`
	Password  string     `json:"password" validate:"required,min=6,max=100"`
	Role      enums.Role `json:"role" validate:"omitempty,oneof=admin user"`
	Email     string     `json:"email" validate:"omitempty,email"`
	FirstName string     `json:"firstName" validate:"omitempty,max=100"`
	LastName  string     `json:"lastName" validate:"omitempty,max=100"`
}

// ChangePasswordRequest is the admin payload for resetting a password.
type ChangePasswordRequest struct {
	Password string `json:"password" validate:"required,min=6,max=100"`
}
