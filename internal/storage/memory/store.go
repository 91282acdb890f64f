package memory

import (
	"context"
	"sync"
	"time"

	"github.com/leaderturk/property-management/internal/storage"
	"github.com/leaderturk/property-management/pkg/db/models"
)

// Store keeps every entity in process memory. A single RWMutex guards all
// tables so cross-entity delete rules observe a consistent view.
type Store struct {
	mu    sync.RWMutex
	now   storage.Clock
	newID func() string

	users       *table[models.User]
	buildings   *table[models.Building]
	flats       *table[models.Flat]
	residents   *table[models.Resident]
	feePayments *table[models.FeePayment]
	maintenance *table[models.MaintenanceRequest]
	contacts    *table[models.ContactRequest]
	blogPosts   *table[models.BlogPost]
}

var _ storage.Storage = (*Store)(nil)

// Option customizes a Store.
type Option func(*Store)

// WithClock overrides the timestamp source.
func WithClock(clock storage.Clock) Option {
	return func(s *Store) {
		if clock != nil {
			s.now = clock
		}
	}
}

// WithIDGenerator overrides the identifier source.
func WithIDGenerator(gen func() string) Option {
	return func(s *Store) {
		if gen != nil {
			s.newID = gen
		}
	}
}

func New(opts ...Option) *Store {
	s := &Store{
		now:         storage.SystemClock,
		newID:       storage.NewID,
		users:       newTable[models.User](),
		buildings:   newTable[models.Building](),
		flats:       newTable[models.Flat](),
		residents:   newTable[models.Resident](),
		feePayments: newTable[models.FeePayment](),
		maintenance: newTable[models.MaintenanceRequest](),
		contacts:    newTable[models.ContactRequest](),
		blogPosts:   newTable[models.BlogPost](),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *Store) Users() storage.UserRepository                      { return userRepo{s} }
func (s *Store) Buildings() storage.BuildingRepository              { return buildingRepo{s} }
func (s *Store) Flats() storage.FlatRepository                      { return flatRepo{s} }
func (s *Store) Residents() storage.ResidentRepository              { return residentRepo{s} }
func (s *Store) FeePayments() storage.FeePaymentRepository          { return feePaymentRepo{s} }
func (s *Store) MaintenanceRequests() storage.MaintenanceRepository { return maintenanceRepo{s} }
func (s *Store) ContactRequests() storage.ContactRepository         { return contactRepo{s} }
func (s *Store) BlogPosts() storage.BlogPostRepository              { return blogPostRepo{s} }

func (s *Store) Ping(ctx context.Context) error {
	return ctx.Err()
}

func (s *Store) Close() error {
	return nil
}

func createRow[T row[T]](s *Store, t *table[T], build func(id string, now time.Time) T) *T {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := s.newID()
	r := build(id, s.now())
	t.insert(id, r)
	return &r
}

func getRow[T row[T]](s *Store, t *table[T], id string) (*T, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	r, ok := t.get(id)
	if !ok {
		return nil, storage.ErrNotFound
	}
	return &r, nil
}

func listRows[T row[T]](s *Store, t *table[T], keep func(T) bool) []T {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return t.filter(keep)
}

func updateRow[T row[T]](s *Store, t *table[T], id string, mutate func(*T)) (*T, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	r, ok := t.get(id)
	if !ok {
		return nil, storage.ErrNotFound
	}
	mutate(&r)
	t.replace(id, r)
	return &r, nil
}

func deleteRow[T row[T]](s *Store, t *table[T], id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return t.remove(id)
}
