package models

import (
	"time"

	"github.com/leaderturk/property-management/pkg/enums"
	"github.com/leaderturk/property-management/pkg/types"
	"github.com/leaderturk/property-management/pkg/validation"
)

// ContactRequest is a submission from the public contact form.
type ContactRequest struct {
	ID          string              `gorm:"column:id;type:varchar(64);primaryKey" json:"id"`
	Name        string              `gorm:"column:name;not null" json:"name"`
	Email       string              `gorm:"column:email;not null" json:"email"`
	Phone       *string             `gorm:"column:phone" json:"phone"`
	ServiceType *string             `gorm:"column:service_type" json:"serviceType"`
	Message     string              `gorm:"column:message;not null" json:"message"`
	Status      enums.ContactStatus `gorm:"column:status;not null;default:new" json:"status"`
	CreatedAt   time.Time           `gorm:"column:created_at;not null;autoCreateTime:false" json:"createdAt"`
}

// ContactRequestInput is what the public form may send; status always starts as new.
type ContactRequestInput struct {
	Name        string  `json:"name" validate:"required,max=200"`
	Email       string  `json:"email" validate:"required,email"`
	Phone       *string `json:"phone" validate:"omitempty,max=50"`
	ServiceType *string `json:"serviceType" validate:"omitempty,max=100"`
	Message     string  `json:"message" validate:"required,max=5000"`
}

type ContactRequestPatch struct {
	Status types.Optional[enums.ContactStatus] `json:"status"`
}

func (p ContactRequestPatch) Validate() error {
	errs := validation.Errors{}
	if !p.Status.Set {
		errs.Add("status", "is required")
	}
	validation.CheckOptional(errs, "status", p.Status, "oneof=new in-progress resolved archived")
	return errs.Err()
}

func NewContactRequest(id string, now time.Time, in ContactRequestInput) ContactRequest {
	return ContactRequest{
		ID:          id,
		Name:        in.Name,
		Email:       in.Email,
		Phone:       emptyToNil(in.Phone),
		ServiceType: emptyToNil(in.ServiceType),
		Message:     in.Message,
		Status:      enums.ContactStatusNew,
		CreatedAt:   now,
	}
}

func (p ContactRequestPatch) Apply(c *ContactRequest) {
	p.Status.ApplyTo(&c.Status)
}
