package models

import (
	"time"

	"github.com/leaderturk/property-management/pkg/types"
	"github.com/leaderturk/property-management/pkg/validation"
)

// Building is a managed property.
type Building struct {
	ID         string      `gorm:"column:id;type:varchar(64);primaryKey" json:"id"`
	Name       string      `gorm:"column:name;not null" json:"name"`
	Address    string      `gorm:"column:address;not null" json:"address"`
	TotalFlats int         `gorm:"column:total_flats;not null" json:"totalFlats"`
	MonthlyFee types.Money `gorm:"column:monthly_fee;type:numeric(10,2);not null" json:"monthlyFee"`
	ManagerID  *string     `gorm:"column:manager_id" json:"managerId"`
	CreatedAt  time.Time   `gorm:"column:created_at;not null;autoCreateTime:false" json:"createdAt"`
}

type BuildingInput struct {
	Name       string       `json:"name" validate:"required,max=200"`
	Address    string       `json:"address" validate:"required,max=500"`
	TotalFlats *int         `json:"totalFlats" validate:"required,min=0,max=100000"`
	MonthlyFee *types.Money `json:"monthlyFee" validate:"required"`
	ManagerID  *string      `json:"managerId"`
}

func (in BuildingInput) Validate() error {
	errs := validation.Errors{}
	if in.MonthlyFee != nil {
		validation.CheckMoney(errs, "monthlyFee", *in.MonthlyFee)
	}
	return errs.Err()
}

type BuildingPatch struct {
	Name       types.Optional[string]      `json:"name"`
	Address    types.Optional[string]      `json:"address"`
	TotalFlats types.Optional[int]         `json:"totalFlats"`
	MonthlyFee types.Optional[types.Money] `json:"monthlyFee"`
	ManagerID  types.Nullable[string]      `json:"managerId"`
}

func (p BuildingPatch) Validate() error {
	errs := validation.Errors{}
	validation.CheckOptional(errs, "name", p.Name, "required,max=200")
	validation.CheckOptional(errs, "address", p.Address, "required,max=500")
	validation.CheckOptional(errs, "totalFlats", p.TotalFlats, "min=0,max=100000")
	if p.MonthlyFee.Set {
		validation.CheckMoney(errs, "monthlyFee", p.MonthlyFee.Value)
	}
	return errs.Err()
}

func NewBuilding(id string, now time.Time, in BuildingInput) Building {
	b := Building{
		ID:        id,
		Name:      in.Name,
		Address:   in.Address,
		ManagerID: emptyToNil(in.ManagerID),
		CreatedAt: now,
	}
	if in.TotalFlats != nil {
		b.TotalFlats = *in.TotalFlats
	}
	if in.MonthlyFee != nil {
		b.MonthlyFee = *in.MonthlyFee
	}
	return b
}

func (p BuildingPatch) Apply(b *Building) {
	p.Name.ApplyTo(&b.Name)
	p.Address.ApplyTo(&b.Address)
	p.TotalFlats.ApplyTo(&b.TotalFlats)
	p.MonthlyFee.ApplyTo(&b.MonthlyFee)
	p.ManagerID.ApplyTo(&b.ManagerID)
	b.ManagerID = emptyToNil(b.ManagerID)
}
