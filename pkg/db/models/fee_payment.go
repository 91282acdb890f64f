package models

import (
	"time"

	"github.com/leaderturk/property-management/pkg/types"
	"github.com/leaderturk/property-management/pkg/validation"
)

// FeePayment is the monthly dues record of a flat.
type FeePayment struct {
	ID        string      `gorm:"column:id;type:varchar(64);primaryKey" json:"id"`
	FlatID    string      `gorm:"column:flat_id;not null;index" json:"flatId"`
	Amount    types.Money `gorm:"column:amount;type:numeric(10,2);not null" json:"amount"`
	Month     int         `gorm:"column:month;not null" json:"month"`
	Year      int         `gorm:"column:year;not null" json:"year"`
	IsPaid    bool        `gorm:"column:is_paid;not null;default:false" json:"isPaid"`
	PaidAt    *time.Time  `gorm:"column:paid_at" json:"paidAt"`
	CreatedAt time.Time   `gorm:"column:created_at;not null;autoCreateTime:false" json:"createdAt"`
}

type FeePaymentInput struct {
	FlatID string       `json:"flatId" validate:"required"`
	Amount *types.Money `json:"amount" validate:"required"`
	Month  int          `json:"month" validate:"required,min=1,max=12"`
	Year   int          `json:"year" validate:"required,min=1900,max=9999"`
	IsPaid *bool        `json:"isPaid"`
	PaidAt *time.Time   `json:"paidAt"`
}

func (in FeePaymentInput) Validate() error {
	errs := validation.Errors{}
	if in.Amount != nil {
		validation.CheckMoney(errs, "amount", *in.Amount)
	}
	return errs.Err()
}

type FeePaymentPatch struct {
	FlatID types.Optional[string]      `json:"flatId"`
	Amount types.Optional[types.Money] `json:"amount"`
	Month  types.Optional[int]         `json:"month"`
	Year   types.Optional[int]         `json:"year"`
	IsPaid types.Optional[bool]        `json:"isPaid"`
	PaidAt types.Nullable[time.Time]   `json:"paidAt"`
}

func (p FeePaymentPatch) Validate() error {
	errs := validation.Errors{}
	validation.CheckOptional(errs, "flatId", p.FlatID, "required")
	validation.CheckOptional(errs, "month", p.Month, "min=1,max=12")
	validation.CheckOptional(errs, "year", p.Year, "min=1900,max=9999")
	if p.Amount.Set {
		validation.CheckMoney(errs, "amount", p.Amount.Value)
	}
	return errs.Err()
}

func NewFeePayment(id string, now time.Time, in FeePaymentInput) FeePayment {
	fp := FeePayment{
		ID:        id,
		FlatID:    in.FlatID,
		Month:     in.Month,
		Year:      in.Year,
		PaidAt:    in.PaidAt,
		CreatedAt: now,
	}
	if in.Amount != nil {
		fp.Amount = *in.Amount
	}
	if in.IsPaid != nil {
		fp.IsPaid = *in.IsPaid
	}
	return fp
}

func (p FeePaymentPatch) Apply(fp *FeePayment) {
	p.FlatID.ApplyTo(&fp.FlatID)
	p.Amount.ApplyTo(&fp.Amount)
	p.Month.ApplyTo(&fp.Month)
	p.Year.ApplyTo(&fp.Year)
	p.IsPaid.ApplyTo(&fp.IsPaid)
	p.PaidAt.ApplyTo(&fp.PaidAt)
}
