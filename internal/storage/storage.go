package storage

import (
	"context"
	"errors"

	"github.com/leaderturk/property-management/pkg/db/models"
)

var (
	// ErrNotFound is returned when a record with the requested key does not exist.
	ErrNotFound = errors.New("storage: record not found")
	// ErrConflict is returned when a write would break a uniqueness or reference rule.
	ErrConflict = errors.New("storage: conflict")
)

// Repository is the CRUD contract shared by every entity type. I is the
// insertable shape and P the patch shape.
type Repository[T, I, P any] interface {
	Create(ctx context.Context, in I) (*T, error)
	GetByID(ctx context.Context, id string) (*T, error)
	List(ctx context.Context) ([]T, error)
	Update(ctx context.Context, id string, patch P) (*T, error)
}

// Deleter removes a record, reporting whether it existed.
type Deleter interface {
	Delete(ctx context.Context, id string) (bool, error)
}

type UserRepository interface {
	Create(ctx context.Context, in models.UserInput) (*models.User, error)
	GetByID(ctx context.Context, id string) (*models.User, error)
	GetByUsername(ctx context.Context, username string) (*models.User, error)
	List(ctx context.Context) ([]models.User, error)
	// Upsert creates the user under id when absent, otherwise merges the patch.
	Upsert(ctx context.Context, id string, patch models.UserPatch) (*models.User, error)
	// Update merges the patch into an existing user and returns ErrNotFound
	// when the user is gone.
	Update(ctx context.Context, id string, patch models.UserPatch) (*models.User, error)
	Deleter
}

type BuildingRepository interface {
	Repository[models.Building, models.BuildingInput, models.BuildingPatch]
	Deleter
}

type FlatRepository interface {
	Repository[models.Flat, models.FlatInput, models.FlatPatch]
	Deleter
	ListByBuilding(ctx context.Context, buildingID string) ([]models.Flat, error)
}

type ResidentRepository interface {
	Repository[models.Resident, models.ResidentInput, models.ResidentPatch]
	Deleter
}

type FeePaymentRepository interface {
	Repository[models.FeePayment, models.FeePaymentInput, models.FeePaymentPatch]
	ListByFlat(ctx context.Context, flatID string) ([]models.FeePayment, error)
}

type MaintenanceRepository interface {
	Repository[models.MaintenanceRequest, models.MaintenanceRequestInput, models.MaintenanceRequestPatch]
	ListByFlat(ctx context.Context, flatID string) ([]models.MaintenanceRequest, error)
}

type ContactRepository interface {
	Repository[models.ContactRequest, models.ContactRequestInput, models.ContactRequestPatch]
}

type BlogPostRepository interface {
	Repository[models.BlogPost, models.BlogPostInput, models.BlogPostPatch]
	Deleter
	ListPublished(ctx context.Context) ([]models.BlogPost, error)
}

// Storage is the persistence handle created at process start and passed to
// every service.
type Storage interface {
	Users() UserRepository
	Buildings() BuildingRepository
	Flats() FlatRepository
	Residents() ResidentRepository
	FeePayments() FeePaymentRepository
	MaintenanceRequests() MaintenanceRepository
	ContactRequests() ContactRepository
	BlogPosts() BlogPostRepository

	Ping(ctx context.Context) error
	Close() error
}
