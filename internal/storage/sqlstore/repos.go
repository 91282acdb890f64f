package sqlstore

import (
	"context"
	"errors"

	"github.com/leaderturk/property-management/internal/storage"
	"github.com/leaderturk/property-management/pkg/db/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type userRepo struct{ s *Store }

func (r userRepo) Create(ctx context.Context, in models.UserInput) (*models.User, error) {
	u := models.NewUser(r.s.newID(), r.s.now(), in)
	if err := r.s.conn(ctx).Create(&u).Error; err != nil {
		return nil, mapErr(err)
	}
	return &u, nil
}

func (r userRepo) GetByID(ctx context.Context, id string) (*models.User, error) {
	return first[models.User](r.s.conn(ctx), id)
}

func (r userRepo) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	var u models.User
	if err := r.s.conn(ctx).Where("username = ?", username).Take(&u).Error; err != nil {
		return nil, mapErr(err)
	}
	return &u, nil
}

func (r userRepo) List(ctx context.Context) ([]models.User, error) {
	return find[models.User](r.s.conn(ctx))
}

func (r userRepo) Upsert(ctx context.Context, id string, patch models.UserPatch) (*models.User, error) {
	var out *models.User
	err := r.s.client.WithTx(ctx, func(tx *gorm.DB) error {
		now := r.s.now()
		existing, err := first[models.User](tx.Clauses(clause.Locking{Strength: "UPDATE"}), id)
		switch {
		case errors.Is(err, storage.ErrNotFound):
			u := models.NewUser(id, now, patch.Input())
			if err := tx.Create(&u).Error; err != nil {
				return mapErr(err)
			}
			out = &u
			return nil
		case err != nil:
			return err
		}
		patch.Apply(existing, now)
		if err := tx.Save(existing).Error; err != nil {
			return mapErr(err)
		}
		out = existing
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (r userRepo) Update(ctx context.Context, id string, patch models.UserPatch) (*models.User, error) {
	var out *models.User
	err := r.s.client.WithTx(ctx, func(tx *gorm.DB) error {
		existing, err := first[models.User](tx.Clauses(clause.Locking{Strength: "UPDATE"}), id)
		if err != nil {
			return err
		}
		patch.Apply(existing, r.s.now())
		if err := tx.Save(existing).Error; err != nil {
			return mapErr(err)
		}
		out = existing
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (r userRepo) Delete(ctx context.Context, id string) (bool, error) {
	return deleteRow[models.User](ctx, r.s, id, func(tx *gorm.DB) error {
		if err := tx.Model(&models.Building{}).Where("manager_id = ?", id).Update("manager_id", nil).Error; err != nil {
			return mapErr(err)
		}
		return mapErr(tx.Where("user_id = ?", id).Delete(&models.Session{}).Error)
	})
}

type buildingRepo struct {
	crud[models.Building, models.BuildingInput, models.BuildingPatch]
}

func (r buildingRepo) Delete(ctx context.Context, id string) (bool, error) {
	return r.delete(ctx, id, func(tx *gorm.DB) error {
		return referenced(tx, "flats", "building_id", id)
	})
}

type flatRepo struct {
	crud[models.Flat, models.FlatInput, models.FlatPatch]
}

func (r flatRepo) ListByBuilding(ctx context.Context, buildingID string) ([]models.Flat, error) {
	return find[models.Flat](r.s.conn(ctx).Where("building_id = ?", buildingID))
}

func (r flatRepo) Delete(ctx context.Context, id string) (bool, error) {
	return r.delete(ctx, id, func(tx *gorm.DB) error {
		if err := referenced(tx, "fee_payments", "flat_id", id); err != nil {
			return err
		}
		return referenced(tx, "maintenance_requests", "flat_id", id)
	})
}

type residentRepo struct {
	crud[models.Resident, models.ResidentInput, models.ResidentPatch]
}

func (r residentRepo) Delete(ctx context.Context, id string) (bool, error) {
	return r.delete(ctx, id, func(tx *gorm.DB) error {
		return mapErr(tx.Model(&models.Flat{}).Where("resident_id = ?", id).Update("resident_id", nil).Error)
	})
}

type feePaymentRepo struct {
	crud[models.FeePayment, models.FeePaymentInput, models.FeePaymentPatch]
}

func (r feePaymentRepo) ListByFlat(ctx context.Context, flatID string) ([]models.FeePayment, error) {
	return find[models.FeePayment](r.s.conn(ctx).Where("flat_id = ?", flatID))
}

type maintenanceRepo struct {
	crud[models.MaintenanceRequest, models.MaintenanceRequestInput, models.MaintenanceRequestPatch]
}

func (r maintenanceRepo) ListByFlat(ctx context.Context, flatID string) ([]models.MaintenanceRequest, error) {
	return find[models.MaintenanceRequest](r.s.conn(ctx).Where("flat_id = ?", flatID))
}

type contactRepo struct {
	crud[models.ContactRequest, models.ContactRequestInput, models.ContactRequestPatch]
}

type blogPostRepo struct {
	crud[models.BlogPost, models.BlogPostInput, models.BlogPostPatch]
}

func (r blogPostRepo) ListPublished(ctx context.Context) ([]models.BlogPost, error) {
	return find[models.BlogPost](r.s.conn(ctx).Where("published = ?", true))
}

func (r blogPostRepo) Delete(ctx context.Context, id string) (bool, error) {
	return r.delete(ctx, id, nil)
}
