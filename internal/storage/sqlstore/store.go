package sqlstore

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/leaderturk/property-management/internal/storage"
	"github.com/leaderturk/property-management/pkg/db"
	"github.com/leaderturk/property-management/pkg/db/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Store persists entities through GORM on postgres or sqlite. The schema is
// owned by the goose migrations in pkg/migrate.
type Store struct {
	client *db.Client
	now    storage.Clock
	newID  func() string
}

var _ storage.Storage = (*Store)(nil)

type Option func(*Store)

func WithClock(clock storage.Clock) Option {
	return func(s *Store) {
		if clock != nil {
			s.now = clock
		}
	}
}

func WithIDGenerator(gen func() string) Option {
	return func(s *Store) {
		if gen != nil {
			s.newID = gen
		}
	}
}

func New(client *db.Client, opts ...Option) *Store {
	s := &Store{
		client: client,
		now:    storage.SystemClock,
		newID:  storage.NewID,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *Store) Users() storage.UserRepository { return userRepo{s} }

func (s *Store) Buildings() storage.BuildingRepository {
	return buildingRepo{newCRUD(s, models.NewBuilding, models.BuildingPatch.Apply)}
}

func (s *Store) Flats() storage.FlatRepository {
	return flatRepo{newCRUD(s, models.NewFlat, models.FlatPatch.Apply)}
}

func (s *Store) Residents() storage.ResidentRepository {
	return residentRepo{newCRUD(s, models.NewResident, models.ResidentPatch.Apply)}
}

func (s *Store) FeePayments() storage.FeePaymentRepository {
	return feePaymentRepo{newCRUD(s, models.NewFeePayment, models.FeePaymentPatch.Apply)}
}

func (s *Store) MaintenanceRequests() storage.MaintenanceRepository {
	return maintenanceRepo{newCRUD(s, models.NewMaintenanceRequest, models.MaintenanceRequestPatch.Apply)}
}

func (s *Store) ContactRequests() storage.ContactRepository {
	return contactRepo{newCRUD(s, models.NewContactRequest, models.ContactRequestPatch.Apply)}
}

func (s *Store) BlogPosts() storage.BlogPostRepository {
	return blogPostRepo{newCRUD(s, models.NewBlogPost, models.BlogPostPatch.Apply)}
}

// Client exposes the underlying connection for components that share it,
// such as the SQL session store.
func (s *Store) Client() *db.Client {
	return s.client
}

func (s *Store) Ping(ctx context.Context) error {
	return s.client.Ping(ctx)
}

func (s *Store) Close() error {
	return s.client.Close()
}

func (s *Store) conn(ctx context.Context) *gorm.DB {
	return s.client.DB().WithContext(ctx)
}

// crud implements the generic repository operations for one entity type.
type crud[T, I, P any] struct {
	s     *Store
	build func(id string, now time.Time, in I) T
	apply func(P, *T)
}

func newCRUD[T, I, P any](s *Store, build func(string, time.Time, I) T, apply func(P, *T)) crud[T, I, P] {
	return crud[T, I, P]{s: s, build: build, apply: apply}
}

func (c crud[T, I, P]) Create(ctx context.Context, in I) (*T, error) {
	row := c.build(c.s.newID(), c.s.now(), in)
	if err := c.s.conn(ctx).Create(&row).Error; err != nil {
		return nil, mapErr(err)
	}
	return &row, nil
}

func (c crud[T, I, P]) GetByID(ctx context.Context, id string) (*T, error) {
	return first[T](c.s.conn(ctx), id)
}

func (c crud[T, I, P]) List(ctx context.Context) ([]T, error) {
	return find[T](c.s.conn(ctx))
}

func (c crud[T, I, P]) Update(ctx context.Context, id string, patch P) (*T, error) {
	var out *T
	err := c.s.client.WithTx(ctx, func(tx *gorm.DB) error {
		row, err := first[T](tx.Clauses(clause.Locking{Strength: "UPDATE"}), id)
		if err != nil {
			return err
		}
		c.apply(patch, row)
		if err := tx.Save(row).Error; err != nil {
			return mapErr(err)
		}
		out = row
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (c crud[T, I, P]) delete(ctx context.Context, id string, guard func(tx *gorm.DB) error) (bool, error) {
	return deleteRow[T](ctx, c.s, id, guard)
}

// deleteRow removes the row inside a transaction after guard approves it.
// A missing row reports false without running guard.
func deleteRow[T any](ctx context.Context, s *Store, id string, guard func(tx *gorm.DB) error) (bool, error) {
	var deleted bool
	err := s.client.WithTx(ctx, func(tx *gorm.DB) error {
		if _, err := first[T](tx, id); err != nil {
			if errors.Is(err, storage.ErrNotFound) {
				return nil
			}
			return err
		}
		if guard != nil {
			if err := guard(tx); err != nil {
				return err
			}
		}
		var zero T
		res := tx.Where("id = ?", id).Delete(&zero)
		if res.Error != nil {
			return mapErr(res.Error)
		}
		deleted = res.RowsAffected > 0
		return nil
	})
	if err != nil {
		return false, err
	}
	return deleted, nil
}

func first[T any](q *gorm.DB, id string) (*T, error) {
	var row T
	if err := q.Where("id = ?", id).Take(&row).Error; err != nil {
		return nil, mapErr(err)
	}
	return &row, nil
}

func find[T any](q *gorm.DB) ([]T, error) {
	rows := make([]T, 0)
	if err := q.Order("created_at ASC, id ASC").Find(&rows).Error; err != nil {
		return nil, mapErr(err)
	}
	return rows, nil
}

// referenced fails with ErrConflict when any row of table matches column = id.
func referenced(tx *gorm.DB, table, column, id string) error {
	var n int64
	if err := tx.Table(table).Where(column+" = ?", id).Count(&n).Error; err != nil {
		return mapErr(err)
	}
	if n > 0 {
		return fmt.Errorf("%w: still referenced by %s", storage.ErrConflict, table)
	}
	return nil
}

func mapErr(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return storage.ErrNotFound
	case errors.Is(err, storage.ErrNotFound), errors.Is(err, storage.ErrConflict):
		return err
	case db.IsUniqueViolation(err, ""), db.IsForeignKeyViolation(err):
		return fmt.Errorf("%w: %v", storage.ErrConflict, err)
	}
	return err
}
