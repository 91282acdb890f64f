package models

import (
	"strings"
	"time"

	"github.com/leaderturk/property-management/pkg/types"
	"github.com/leaderturk/property-management/pkg/validation"
)

// Resident is a person living in one or more flats.
type Resident struct {
	ID        string    `gorm:"column:id;type:varchar(64);primaryKey" json:"id"`
	Name      string    `gorm:"column:name;not null" json:"name"`
	Email     *string   `gorm:"column:email" json:"email"`
	Phone     *string   `gorm:"column:phone" json:"phone"`
	CreatedAt time.Time `gorm:"column:created_at;not null;autoCreateTime:false" json:"createdAt"`
}

// ResidentInput accepts an empty email, which is stored as absent.
type ResidentInput struct {
	Name  string `json:"name" validate:"required,max=200"`
	Email string `json:"email" validate:"omitempty,email"`
	Phone string `json:"phone" validate:"omitempty,max=50"`
}

// Validate rejects names made only of whitespace, which trim to empty.
func (in ResidentInput) Validate() error {
	errs := validation.Errors{}
	checkNotBlank(errs, "name", in.Name)
	return errs.Err()
}

type ResidentPatch struct {
	Name  types.Optional[string] `json:"name"`
	Email types.Nullable[string] `json:"email"`
	Phone types.Nullable[string] `json:"phone"`
}

func (p ResidentPatch) Validate() error {
	errs := validation.Errors{}
	validation.CheckOptional(errs, "name", p.Name, "required,max=200")
	if p.Name.Set {
		checkNotBlank(errs, "name", p.Name.Value)
	}
	validation.CheckNullable(errs, "email", p.Email, "omitempty,email")
	validation.CheckNullable(errs, "phone", p.Phone, "max=50")
	return errs.Err()
}

func NewResident(id string, now time.Time, in ResidentInput) Resident {
	return Resident{
		ID:        id,
		Name:      strings.TrimSpace(in.Name),
		Email:     emptyToNil(&in.Email),
		Phone:     emptyToNil(&in.Phone),
		CreatedAt: now,
	}
}

func (p ResidentPatch) Apply(r *Resident) {
	p.Name.ApplyTo(&r.Name)
	r.Name = strings.TrimSpace(r.Name)
	p.Email.ApplyTo(&r.Email)
	p.Phone.ApplyTo(&r.Phone)
	r.Email = emptyToNil(r.Email)
	r.Phone = emptyToNil(r.Phone)
}
