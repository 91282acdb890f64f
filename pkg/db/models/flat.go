package models

import (
	"time"

	"github.com/leaderturk/property-management/pkg/types"
	"github.com/leaderturk/property-management/pkg/validation"
)

// Flat is a unit inside a building, optionally occupied by a resident.
type Flat struct {
	ID         string    `gorm:"column:id;type:varchar(64);primaryKey" json:"id"`
	BuildingID string    `gorm:"column:building_id;not null;index" json:"buildingId"`
	FlatNumber string    `gorm:"column:flat_number;not null" json:"flatNumber"`
	Block      *string   `gorm:"column:block" json:"block"`
	Size       *int      `gorm:"column:size" json:"size"`
	ResidentID *string   `gorm:"column:resident_id;index" json:"residentId"`
	CreatedAt  time.Time `gorm:"column:created_at;not null;autoCreateTime:false" json:"createdAt"`
}

// Occupied reports whether a resident is assigned.
func (f Flat) Occupied() bool {
	return f.ResidentID != nil
}

type FlatInput struct {
	BuildingID string  `json:"buildingId" validate:"required"`
	FlatNumber string  `json:"flatNumber" validate:"required,max=50"`
	Block      *string `json:"block" validate:"omitempty,max=50"`
	Size       *int    `json:"size" validate:"omitempty,min=0,max=100000"`
	ResidentID *string `json:"residentId"`
}

type FlatPatch struct {
	BuildingID types.Optional[string] `json:"buildingId"`
	FlatNumber types.Optional[string] `json:"flatNumber"`
	Block      types.Nullable[string] `json:"block"`
	Size       types.Nullable[int]    `json:"size"`
	ResidentID types.Nullable[string] `json:"residentId"`
}

func (p FlatPatch) Validate() error {
	errs := validation.Errors{}
	validation.CheckOptional(errs, "buildingId", p.BuildingID, "required")
	validation.CheckOptional(errs, "flatNumber", p.FlatNumber, "required,max=50")
	validation.CheckNullable(errs, "block", p.Block, "max=50")
	validation.CheckNullable(errs, "size", p.Size, "min=0,max=100000")
	return errs.Err()
}

func NewFlat(id string, now time.Time, in FlatInput) Flat {
	return Flat{
		ID:         id,
		BuildingID: in.BuildingID,
		FlatNumber: in.FlatNumber,
		Block:      emptyToNil(in.Block),
		Size:       in.Size,
		ResidentID: emptyToNil(in.ResidentID),
		CreatedAt:  now,
	}
}

func (p FlatPatch) Apply(f *Flat) {
	p.BuildingID.ApplyTo(&f.BuildingID)
	p.FlatNumber.ApplyTo(&f.FlatNumber)
	p.Block.ApplyTo(&f.Block)
	p.Size.ApplyTo(&f.Size)
	p.ResidentID.ApplyTo(&f.ResidentID)
	f.ResidentID = emptyToNil(f.ResidentID)
}
