package models

import (
	"time"

	"github.com/leaderturk/property-management/pkg/enums"
	"github.com/leaderturk/property-management/pkg/types"
)

// User is an account that can sign in to the back-office. Password holds the
// scrypt hash and is never serialized.
type User struct {
	ID              string     `gorm:"column:id;type:varchar(64);primaryKey" json:"id"`
	Username        *string    `gorm:"column:username;uniqueIndex" json:"username"`
	Password        *string    `gorm:"column:password" json:"-"`
	Role            enums.Role `gorm:"column:role;not null;default:user" json:"role"`
	Email           *string    `gorm:"column:email;uniqueIndex" json:"email"`
	FirstName       *string    `gorm:"column:first_name" json:"firstName"`
	LastName        *string    `gorm:"column:last_name" json:"lastName"`
	ProfileImageURL *string    `gorm:"column:profile_image_url" json:"profileImageUrl"`
	CreatedAt       time.Time  `gorm:"column:created_at;not null;autoCreateTime:false" json:"createdAt"`
	UpdatedAt       time.Time  `gorm:"column:updated_at;not null;autoUpdateTime:false" json:"updatedAt"`
}

// IsAdmin reports whether the user carries the admin role.
func (u User) IsAdmin() bool {
	return u.Role == enums.RoleAdmin
}

// UserInput is the insertable shape of a user. Password must already be hashed.
type UserInput struct {
	Username        *string
	Password        *string
	Role            enums.Role
	Email           *string
	FirstName       *string
	LastName        *string
	ProfileImageURL *string
}

// UserPatch updates a subset of user fields; it doubles as the upsert payload.
type UserPatch struct {
	Username        types.Nullable[string]
	Password        types.Nullable[string]
	Role            types.Optional[enums.Role]
	Email           types.Nullable[string]
	FirstName       types.Nullable[string]
	LastName        types.Nullable[string]
	ProfileImageURL types.Nullable[string]
}

// NewUser builds a stored user from its insert shape.
func NewUser(id string, now time.Time, in UserInput) User {
	role := in.Role
	if role == "" {
		role = enums.RoleUser
	}
	return User{
		ID:              id,
		Username:        in.Username,
		Password:        in.Password,
		Role:            role,
		Email:           in.Email,
		FirstName:       in.FirstName,
		LastName:        in.LastName,
		ProfileImageURL: in.ProfileImageURL,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
}

// Apply merges the patch into u and stamps UpdatedAt.
func (p UserPatch) Apply(u *User, now time.Time) {
	p.Username.ApplyTo(&u.Username)
	p.Password.ApplyTo(&u.Password)
	p.Role.ApplyTo(&u.Role)
	p.Email.ApplyTo(&u.Email)
	p.FirstName.ApplyTo(&u.FirstName)
	p.LastName.ApplyTo(&u.LastName)
	p.ProfileImageURL.ApplyTo(&u.ProfileImageURL)
	u.UpdatedAt = now
}

// Input converts an upsert patch into the insert shape used when the user does not exist yet.
func (p UserPatch) Input() UserInput {
	var in UserInput
	in.Username = p.Username.Value
	in.Password = p.Password.Value
	if p.Role.Set {
		in.Role = p.Role.Value
	}
	in.Email = p.Email.Value
	in.FirstName = p.FirstName.Value
	in.LastName = p.LastName.Value
	in.ProfileImageURL = p.ProfileImageURL.Value
	return in
}
