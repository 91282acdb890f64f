package memory

import (
	"context"
	"time"

	"github.com/leaderturk/property-management/internal/storage"
	"github.com/leaderturk/property-management/pkg/db/models"
)

type userRepo struct{ s *Store }

func (r userRepo) Create(_ context.Context, in models.UserInput) (*models.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	u := models.NewUser(r.s.newID(), r.s.now(), in)
	if r.collides(u) {
		return nil, storage.ErrConflict
	}
	r.s.users.insert(u.ID, u)
	return &u, nil
}

func (r userRepo) GetByID(_ context.Context, id string) (*models.User, error) {
	return getRow(r.s, r.s.users, id)
}

func (r userRepo) GetByUsername(_ context.Context, username string) (*models.User, error) {
	matches := listRows(r.s, r.s.users, func(u models.User) bool {
		return u.Username != nil && *u.Username == username
	})
	if len(matches) == 0 {
		return nil, storage.ErrNotFound
	}
	return &matches[0], nil
}

func (r userRepo) List(_ context.Context) ([]models.User, error) {
	return listRows(r.s, r.s.users, nil), nil
}

func (r userRepo) Upsert(_ context.Context, id string, patch models.UserPatch) (*models.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	now := r.s.now()
	existing, ok := r.s.users.get(id)
	if !ok {
		u := models.NewUser(id, now, patch.Input())
		if r.collides(u) {
			return nil, storage.ErrConflict
		}
		r.s.users.insert(id, u)
		return &u, nil
	}

	patch.Apply(&existing, now)
	if r.collides(existing) {
		return nil, storage.ErrConflict
	}
	r.s.users.replace(id, existing)
	return &existing, nil
}

func (r userRepo) Update(_ context.Context, id string, patch models.UserPatch) (*models.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	existing, ok := r.s.users.get(id)
	if !ok {
		return nil, storage.ErrNotFound
	}
	patch.Apply(&existing, r.s.now())
	if r.collides(existing) {
		return nil, storage.ErrConflict
	}
	r.s.users.replace(id, existing)
	return &existing, nil
}

func (r userRepo) Delete(_ context.Context, id string) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if !r.s.users.remove(id) {
		return false, nil
	}
	for _, b := range r.s.buildings.filter(func(b models.Building) bool {
		return b.ManagerID != nil && *b.ManagerID == id
	}) {
		b.ManagerID = nil
		r.s.buildings.replace(b.ID, b)
	}
	return true, nil
}

// collides reports whether another user already holds u's username or email.
// Callers hold the store lock.
func (r userRepo) collides(u models.User) bool {
	return r.s.users.any(func(other models.User) bool {
		if other.ID == u.ID {
			return false
		}
		return sameValue(other.Username, u.Username) || sameValue(other.Email, u.Email)
	})
}

func sameValue(a, b *string) bool {
	return a != nil && b != nil && *a == *b
}

type buildingRepo struct{ s *Store }

func (r buildingRepo) Create(_ context.Context, in models.BuildingInput) (*models.Building, error) {
	return createRow(r.s, r.s.buildings, func(id string, now time.Time) models.Building {
		return models.NewBuilding(id, now, in)
	}), nil
}

func (r buildingRepo) GetByID(_ context.Context, id string) (*models.Building, error) {
	return getRow(r.s, r.s.buildings, id)
}

func (r buildingRepo) List(_ context.Context) ([]models.Building, error) {
	return listRows(r.s, r.s.buildings, nil), nil
}

func (r buildingRepo) Update(_ context.Context, id string, patch models.BuildingPatch) (*models.Building, error) {
	return updateRow(r.s, r.s.buildings, id, patch.Apply)
}

func (r buildingRepo) Delete(_ context.Context, id string) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.buildings.get(id); !ok {
		return false, nil
	}
	if r.s.flats.any(func(f models.Flat) bool { return f.BuildingID == id }) {
		return false, storage.ErrConflict
	}
	return r.s.buildings.remove(id), nil
}

type flatRepo struct{ s *Store }

func (r flatRepo) Create(_ context.Context, in models.FlatInput) (*models.Flat, error) {
	return createRow(r.s, r.s.flats, func(id string, now time.Time) models.Flat {
		return models.NewFlat(id, now, in)
	}), nil
}

func (r flatRepo) GetByID(_ context.Context, id string) (*models.Flat, error) {
	return getRow(r.s, r.s.flats, id)
}

func (r flatRepo) List(_ context.Context) ([]models.Flat, error) {
	return listRows(r.s, r.s.flats, nil), nil
}

func (r flatRepo) ListByBuilding(_ context.Context, buildingID string) ([]models.Flat, error) {
	return listRows(r.s, r.s.flats, func(f models.Flat) bool { return f.BuildingID == buildingID }), nil
}

func (r flatRepo) Update(_ context.Context, id string, patch models.FlatPatch) (*models.Flat, error) {
	return updateRow(r.s, r.s.flats, id, patch.Apply)
}

func (r flatRepo) Delete(_ context.Context, id string) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.flats.get(id); !ok {
		return false, nil
	}
	if r.s.feePayments.any(func(fp models.FeePayment) bool { return fp.FlatID == id }) ||
		r.s.maintenance.any(func(mr models.MaintenanceRequest) bool { return mr.FlatID == id }) {
		return false, storage.ErrConflict
	}
	return r.s.flats.remove(id), nil
}

type residentRepo struct{ s *Store }

func (r residentRepo) Create(_ context.Context, in models.ResidentInput) (*models.Resident, error) {
	return createRow(r.s, r.s.residents, func(id string, now time.Time) models.Resident {
		return models.NewResident(id, now, in)
	}), nil
}

func (r residentRepo) GetByID(_ context.Context, id string) (*models.Resident, error) {
	return getRow(r.s, r.s.residents, id)
}

func (r residentRepo) List(_ context.Context) ([]models.Resident, error) {
	return listRows(r.s, r.s.residents, nil), nil
}

func (r residentRepo) Update(_ context.Context, id string, patch models.ResidentPatch) (*models.Resident, error) {
	return updateRow(r.s, r.s.residents, id, patch.Apply)
}

func (r residentRepo) Delete(_ context.Context, id string) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if !r.s.residents.remove(id) {
		return false, nil
	}
	for _, f := range r.s.flats.filter(func(f models.Flat) bool {
		return f.ResidentID != nil && *f.ResidentID == id
	}) {
		f.ResidentID = nil
		r.s.flats.replace(f.ID, f)
	}
	return true, nil
}

type feePaymentRepo struct{ s *Store }

func (r feePaymentRepo) Create(_ context.Context, in models.FeePaymentInput) (*models.FeePayment, error) {
	return createRow(r.s, r.s.feePayments, func(id string, now time.Time) models.FeePayment {
		return models.NewFeePayment(id, now, in)
	}), nil
}

func (r feePaymentRepo) GetByID(_ context.Context, id string) (*models.FeePayment, error) {
	return getRow(r.s, r.s.feePayments, id)
}

func (r feePaymentRepo) List(_ context.Context) ([]models.FeePayment, error) {
	return listRows(r.s, r.s.feePayments, nil), nil
}

func (r feePaymentRepo) ListByFlat(_ context.Context, flatID string) ([]models.FeePayment, error) {
	return listRows(r.s, r.s.feePayments, func(fp models.FeePayment) bool { return fp.FlatID == flatID }), nil
}

func (r feePaymentRepo) Update(_ context.Context, id string, patch models.FeePaymentPatch) (*models.FeePayment, error) {
	return updateRow(r.s, r.s.feePayments, id, patch.Apply)
}

type maintenanceRepo struct{ s *Store }

func (r maintenanceRepo) Create(_ context.Context, in models.MaintenanceRequestInput) (*models.MaintenanceRequest, error) {
	return createRow(r.s, r.s.maintenance, func(id string, now time.Time) models.MaintenanceRequest {
		return models.NewMaintenanceRequest(id, now, in)
	}), nil
}

func (r maintenanceRepo) GetByID(_ context.Context, id string) (*models.MaintenanceRequest, error) {
	return getRow(r.s, r.s.maintenance, id)
}

func (r maintenanceRepo) List(_ context.Context) ([]models.MaintenanceRequest, error) {
	return listRows(r.s, r.s.maintenance, nil), nil
}

func (r maintenanceRepo) ListByFlat(_ context.Context, flatID string) ([]models.MaintenanceRequest, error) {
	return listRows(r.s, r.s.maintenance, func(mr models.MaintenanceRequest) bool { return mr.FlatID == flatID }), nil
}

func (r maintenanceRepo) Update(_ context.Context, id string, patch models.MaintenanceRequestPatch) (*models.MaintenanceRequest, error) {
	return updateRow(r.s, r.s.maintenance, id, patch.Apply)
}

type contactRepo struct{ s *Store }

func (r contactRepo) Create(_ context.Context, in models.ContactRequestInput) (*models.ContactRequest, error) {
	return createRow(r.s, r.s.contacts, func(id string, now time.Time) models.ContactRequest {
		return models.NewContactRequest(id, now, in)
	}), nil
}

func (r contactRepo) GetByID(_ context.Context, id string) (*models.ContactRequest, error) {
	return getRow(r.s, r.s.contacts, id)
}

func (r contactRepo) List(_ context.Context) ([]models.ContactRequest, error) {
	return listRows(r.s, r.s.contacts, nil), nil
}

func (r contactRepo) Update(_ context.Context, id string, patch models.ContactRequestPatch) (*models.ContactRequest, error) {
	return updateRow(r.s, r.s.contacts, id, patch.Apply)
}

type blogPostRepo struct{ s *Store }

func (r blogPostRepo) Create(_ context.Context, in models.BlogPostInput) (*models.BlogPost, error) {
	return createRow(r.s, r.s.blogPosts, func(id string, now time.Time) models.BlogPost {
		return models.NewBlogPost(id, now, in)
	}), nil
}

func (r blogPostRepo) GetByID(_ context.Context, id string) (*models.BlogPost, error) {
	return getRow(r.s, r.s.blogPosts, id)
}

func (r blogPostRepo) List(_ context.Context) ([]models.BlogPost, error) {
	return listRows(r.s, r.s.blogPosts, nil), nil
}

func (r blogPostRepo) ListPublished(_ context.Context) ([]models.BlogPost, error) {
	return listRows(r.s, r.s.blogPosts, func(bp models.BlogPost) bool { return bp.Published }), nil
}

func (r blogPostRepo) Update(_ context.Context, id string, patch models.BlogPostPatch) (*models.BlogPost, error) {
	return updateRow(r.s, r.s.blogPosts, id, patch.Apply)
}

func (r blogPostRepo) Delete(_ context.Context, id string) (bool, error) {
	return deleteRow(r.s, r.s.blogPosts, id), nil
}
