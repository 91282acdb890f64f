package models

import (
	"time"

	"github.com/leaderturk/property-management/pkg/enums"
	"github.com/leaderturk/property-management/pkg/types"
	"github.com/leaderturk/property-management/pkg/validation"
)

// MaintenanceRequest is a repair or service ticket raised for a flat.
// ResolvedAt is maintained by the maintenance service, never by clients.
type MaintenanceRequest struct {
	ID          string                    `gorm:"column:id;type:varchar(64);primaryKey" json:"id"`
	FlatID      string                    `gorm:"column:flat_id;not null;index" json:"flatId"`
	Description string                    `gorm:"column:description;not null" json:"description"`
	Status      enums.MaintenanceStatus   `gorm:"column:status;not null;default:pending" json:"status"`
	Priority    enums.MaintenancePriority `gorm:"column:priority;not null;default:medium" json:"priority"`
	CreatedAt   time.Time                 `gorm:"column:created_at;not null;autoCreateTime:false" json:"createdAt"`
	ResolvedAt  *time.Time                `gorm:"column:resolved_at" json:"resolvedAt"`
}

type MaintenanceRequestInput struct {
	FlatID      string                    `json:"flatId" validate:"required"`
	Description string                    `json:"description" validate:"required,max=5000"`
	Status      enums.MaintenanceStatus   `json:"status" validate:"omitempty,oneof=pending in-progress completed cancelled"`
	Priority    enums.MaintenancePriority `json:"priority" validate:"omitempty,oneof=low medium high urgent"`
}

type MaintenanceRequestPatch struct {
	FlatID      types.Optional[string]                    `json:"flatId"`
	Description types.Optional[string]                    `json:"description"`
	Status      types.Optional[enums.MaintenanceStatus]   `json:"status"`
	Priority    types.Optional[enums.MaintenancePriority] `json:"priority"`

	// ResolvedAt is not decoded from requests.
	ResolvedAt types.Nullable[time.Time] `json:"-"`
}

func (p MaintenanceRequestPatch) Validate() error {
	errs := validation.Errors{}
	validation.CheckOptional(errs, "flatId", p.FlatID, "required")
	validation.CheckOptional(errs, "description", p.Description, "required,max=5000")
	validation.CheckOptional(errs, "status", p.Status, "oneof=pending in-progress completed cancelled")
	validation.CheckOptional(errs, "priority", p.Priority, "oneof=low medium high urgent")
	return errs.Err()
}

func NewMaintenanceRequest(id string, now time.Time, in MaintenanceRequestInput) MaintenanceRequest {
	status := in.Status
	if status == "" {
		status = enums.MaintenanceStatusPending
	}
	priority := in.Priority
	if priority == "" {
		priority = enums.MaintenancePriorityMedium
	}
	mr := MaintenanceRequest{
		ID:          id,
		FlatID:      in.FlatID,
		Description: in.Description,
		Status:      status,
		Priority:    priority,
		CreatedAt:   now,
	}
	if status == enums.MaintenanceStatusCompleted {
		resolved := now
		mr.ResolvedAt = &resolved
	}
	return mr
}

func (p MaintenanceRequestPatch) Apply(mr *MaintenanceRequest) {
	p.FlatID.ApplyTo(&mr.FlatID)
	p.Description.ApplyTo(&mr.Description)
	p.Status.ApplyTo(&mr.Status)
	p.Priority.ApplyTo(&mr.Priority)
	p.ResolvedAt.ApplyTo(&mr.ResolvedAt)
}
