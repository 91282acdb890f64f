// Package storagetest holds the behavioural suite every storage.Storage
// implementation must pass.
package storagetest

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/leaderturk/property-management/internal/storage"
	"github.com/leaderturk/property-management/pkg/db/models"
	"github.com/leaderturk/property-management/pkg/enums"
	"github.com/leaderturk/property-management/pkg/types"
	"github.com/stretchr/testify/suite"
)

// Factory builds a fresh, empty store driven by clock.
type Factory func(t *testing.T, clock storage.Clock) storage.Storage

// Run executes the suite against stores produced by factory.
func Run(t *testing.T, factory Factory) {
	suite.Run(t, &Suite{factory: factory})
}

// TickingClock returns a clock that starts at base and advances one second per call.
func TickingClock(base time.Time) storage.Clock {
	var mu sync.Mutex
	next := base
	return func() time.Time {
		mu.Lock()
		defer mu.Unlock()
		now := next
		next = next.Add(time.Second)
		return now
	}
}

type Suite struct {
	suite.Suite
	factory Factory
	store   storage.Storage
	ctx     context.Context
	base    time.Time
}

func (s *Suite) SetupTest() {
	s.ctx = context.Background()
	s.base = time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC)
	s.store = s.factory(s.T(), TickingClock(s.base))
}

func (s *Suite) TearDownTest() {
	if s.store != nil {
		s.Require().NoError(s.store.Close())
	}
}

func ptr[T any](v T) *T { return &v }

func (s *Suite) building(name string) *models.Building {
	b, err := s.store.Buildings().Create(s.ctx, models.BuildingInput{
		Name:       name,
		Address:    "Cumhuriyet Cd. 1",
		TotalFlats: ptr(24),
		MonthlyFee: ptr(types.MustMoney("850")),
	})
	s.Require().NoError(err)
	return b
}

func (s *Suite) flat(buildingID, number string, residentID *string) *models.Flat {
	f, err := s.store.Flats().Create(s.ctx, models.FlatInput{
		BuildingID: buildingID,
		FlatNumber: number,
		ResidentID: residentID,
	})
	s.Require().NoError(err)
	return f
}

func (s *Suite) resident(name string) *models.Resident {
	r, err := s.store.Residents().Create(s.ctx, models.ResidentInput{Name: name})
	s.Require().NoError(err)
	return r
}

func (s *Suite) TestPing() {
	s.Require().NoError(s.store.Ping(s.ctx))
}

func (s *Suite) TestUserLifecycle() {
	users := s.store.Users()

	u, err := users.Create(s.ctx, models.UserInput{
		Username: ptr("admin"),
		Password: ptr("hash.salt"),
		Role:     enums.RoleAdmin,
		Email:    ptr("admin@example.com"),
	})
	s.Require().NoError(err)
	s.Require().NotEmpty(u.ID)
	s.Require().True(s.base.Equal(u.CreatedAt))
	s.Require().True(u.IsAdmin())

	byName, err := users.GetByUsername(s.ctx, "admin")
	s.Require().NoError(err)
	s.Require().Equal(u.ID, byName.ID)
	s.Require().Equal("hash.salt", *byName.Password)

	_, err = users.GetByUsername(s.ctx, "nobody")
	s.Require().ErrorIs(err, storage.ErrNotFound)

	_, err = users.Create(s.ctx, models.UserInput{Username: ptr("admin")})
	s.Require().ErrorIs(err, storage.ErrConflict)

	_, err = users.Create(s.ctx, models.UserInput{Username: ptr("other"), Email: ptr("admin@example.com")})
	s.Require().ErrorIs(err, storage.ErrConflict)

	plain, err := users.Create(s.ctx, models.UserInput{Username: ptr("clerk")})
	s.Require().NoError(err)
	s.Require().Equal(enums.RoleUser, plain.Role)

	all, err := users.List(s.ctx)
	s.Require().NoError(err)
	s.Require().Len(all, 2)
	s.Require().Equal(u.ID, all[0].ID)
}

func (s *Suite) TestUserUpsert() {
	users := s.store.Users()

	created, err := users.Upsert(s.ctx, "ext-1", models.UserPatch{
		Username:  types.Value("ext"),
		FirstName: types.Value("Ayşe"),
	})
	s.Require().NoError(err)
	s.Require().Equal("ext-1", created.ID)
	s.Require().Equal(enums.RoleUser, created.Role)

	merged, err := users.Upsert(s.ctx, "ext-1", models.UserPatch{
		LastName: types.Value("Yılmaz"),
		Role:     types.Some(enums.RoleAdmin),
	})
	s.Require().NoError(err)
	s.Require().Equal("Ayşe", *merged.FirstName)
	s.Require().Equal("Yılmaz", *merged.LastName)
	s.Require().Equal(enums.RoleAdmin, merged.Role)
	s.Require().True(merged.UpdatedAt.After(created.UpdatedAt))
	s.Require().True(created.CreatedAt.Equal(merged.CreatedAt))

	cleared, err := users.Upsert(s.ctx, "ext-1", models.UserPatch{FirstName: types.Null[string]()})
	s.Require().NoError(err)
	s.Require().Nil(cleared.FirstName)
	s.Require().Equal("ext", *cleared.Username)
}

func (s *Suite) TestUserUpdateRequiresExistingUser() {
	users := s.store.Users()

	_, err := users.Update(s.ctx, "missing", models.UserPatch{FirstName: types.Value("Nobody")})
	s.Require().ErrorIs(err, storage.ErrNotFound)
	all, err := users.List(s.ctx)
	s.Require().NoError(err)
	s.Require().Empty(all)

	u, err := users.Create(s.ctx, models.UserInput{Username: ptr("editor"), Email: ptr("editor@example.com")})
	s.Require().NoError(err)
	other, err := users.Create(s.ctx, models.UserInput{Username: ptr("other")})
	s.Require().NoError(err)

	updated, err := users.Update(s.ctx, u.ID, models.UserPatch{LastName: types.Value("Demir")})
	s.Require().NoError(err)
	s.Require().Equal("Demir", *updated.LastName)
	s.Require().Equal("editor", *updated.Username)
	s.Require().True(updated.UpdatedAt.After(u.UpdatedAt))

	_, err = users.Update(s.ctx, other.ID, models.UserPatch{Email: types.Value("editor@example.com")})
	s.Require().ErrorIs(err, storage.ErrConflict)
}

func (s *Suite) TestUserDeleteClearsBuildingManager() {
	u, err := s.store.Users().Create(s.ctx, models.UserInput{Username: ptr("manager")})
	s.Require().NoError(err)

	b, err := s.store.Buildings().Create(s.ctx, models.BuildingInput{
		Name:       "Kayseri Plaza",
		Address:    "Sivas Cd. 10",
		TotalFlats: ptr(48),
		MonthlyFee: ptr(types.MustMoney("1200.00")),
		ManagerID:  &u.ID,
	})
	s.Require().NoError(err)
	s.Require().Equal(u.ID, *b.ManagerID)

	ok, err := s.store.Users().Delete(s.ctx, u.ID)
	s.Require().NoError(err)
	s.Require().True(ok)

	reloaded, err := s.store.Buildings().GetByID(s.ctx, b.ID)
	s.Require().NoError(err)
	s.Require().Nil(reloaded.ManagerID)

	ok, err = s.store.Users().Delete(s.ctx, u.ID)
	s.Require().NoError(err)
	s.Require().False(ok)
}

func (s *Suite) TestBuildingCRUD() {
	b := s.building("Güneş Residans")
	s.Require().Equal("850.00", b.MonthlyFee.String())

	got, err := s.store.Buildings().GetByID(s.ctx, b.ID)
	s.Require().NoError(err)
	s.Require().Equal(b.Name, got.Name)
	s.Require().Equal("850.00", got.MonthlyFee.String())
	s.Require().Equal(24, got.TotalFlats)

	updated, err := s.store.Buildings().Update(s.ctx, b.ID, models.BuildingPatch{
		MonthlyFee: types.Some(types.MustMoney("900.50")),
	})
	s.Require().NoError(err)
	s.Require().Equal("900.50", updated.MonthlyFee.String())
	s.Require().Equal("Güneş Residans", updated.Name)

	_, err = s.store.Buildings().Update(s.ctx, "missing", models.BuildingPatch{Name: types.Some("x")})
	s.Require().ErrorIs(err, storage.ErrNotFound)

	_, err = s.store.Buildings().GetByID(s.ctx, "missing")
	s.Require().ErrorIs(err, storage.ErrNotFound)

	ok, err := s.store.Buildings().Delete(s.ctx, b.ID)
	s.Require().NoError(err)
	s.Require().True(ok)

	all, err := s.store.Buildings().List(s.ctx)
	s.Require().NoError(err)
	s.Require().Empty(all)
}

func (s *Suite) TestBuildingWithFlatsCannotBeDeleted() {
	b := s.building("Güneş Residans")
	s.flat(b.ID, "1", nil)

	ok, err := s.store.Buildings().Delete(s.ctx, b.ID)
	s.Require().ErrorIs(err, storage.ErrConflict)
	s.Require().False(ok)

	_, err = s.store.Buildings().GetByID(s.ctx, b.ID)
	s.Require().NoError(err)
}

func (s *Suite) TestFlatsByBuilding() {
	a := s.building("A")
	b := s.building("B")
	s.flat(a.ID, "1", nil)
	s.flat(b.ID, "1", nil)
	s.flat(a.ID, "2", nil)

	flats, err := s.store.Flats().ListByBuilding(s.ctx, a.ID)
	s.Require().NoError(err)
	s.Require().Len(flats, 2)
	s.Require().Equal("1", flats[0].FlatNumber)
	s.Require().Equal("2", flats[1].FlatNumber)

	all, err := s.store.Flats().List(s.ctx)
	s.Require().NoError(err)
	s.Require().Len(all, 3)
}

func (s *Suite) TestFlatPatchClearsNullableFields() {
	b := s.building("A")
	r := s.resident("Ahmet Yılmaz")
	f, err := s.store.Flats().Create(s.ctx, models.FlatInput{
		BuildingID: b.ID,
		FlatNumber: "5",
		Block:      ptr("A"),
		Size:       ptr(120),
		ResidentID: &r.ID,
	})
	s.Require().NoError(err)
	s.Require().True(f.Occupied())

	updated, err := s.store.Flats().Update(s.ctx, f.ID, models.FlatPatch{
		ResidentID: types.Null[string](),
		Size:       types.Value(130),
	})
	s.Require().NoError(err)
	s.Require().False(updated.Occupied())
	s.Require().Equal(130, *updated.Size)
	s.Require().Equal("A", *updated.Block)
}

func (s *Suite) TestResidentDeleteClearsFlat() {
	b := s.building("A")
	r := s.resident("Fatma Demir")
	f := s.flat(b.ID, "3", &r.ID)

	ok, err := s.store.Residents().Delete(s.ctx, r.ID)
	s.Require().NoError(err)
	s.Require().True(ok)

	reloaded, err := s.store.Flats().GetByID(s.ctx, f.ID)
	s.Require().NoError(err)
	s.Require().Nil(reloaded.ResidentID)

	ok, err = s.store.Residents().Delete(s.ctx, r.ID)
	s.Require().NoError(err)
	s.Require().False(ok)
}

func (s *Suite) TestFlatWithHistoryCannotBeDeleted() {
	b := s.building("A")
	withFee := s.flat(b.ID, "1", nil)
	withTicket := s.flat(b.ID, "2", nil)
	empty := s.flat(b.ID, "3", nil)

	_, err := s.store.FeePayments().Create(s.ctx, models.FeePaymentInput{
		FlatID: withFee.ID, Amount: ptr(types.MustMoney("850")), Month: 1, Year: 2025,
	})
	s.Require().NoError(err)
	_, err = s.store.MaintenanceRequests().Create(s.ctx, models.MaintenanceRequestInput{
		FlatID: withTicket.ID, Description: "Leaking tap",
	})
	s.Require().NoError(err)

	_, err = s.store.Flats().Delete(s.ctx, withFee.ID)
	s.Require().ErrorIs(err, storage.ErrConflict)
	_, err = s.store.Flats().Delete(s.ctx, withTicket.ID)
	s.Require().ErrorIs(err, storage.ErrConflict)

	ok, err := s.store.Flats().Delete(s.ctx, empty.ID)
	s.Require().NoError(err)
	s.Require().True(ok)
}

func (s *Suite) TestFeePayments() {
	b := s.building("A")
	f1 := s.flat(b.ID, "1", nil)
	f2 := s.flat(b.ID, "2", nil)

	paidAt := s.base.Add(-time.Hour)
	fp, err := s.store.FeePayments().Create(s.ctx, models.FeePaymentInput{
		FlatID: f1.ID, Amount: ptr(types.MustMoney("500")), Month: 2, Year: 2025,
		IsPaid: ptr(true), PaidAt: &paidAt,
	})
	s.Require().NoError(err)
	s.Require().True(fp.IsPaid)
	s.Require().True(paidAt.Equal(*fp.PaidAt))

	_, err = s.store.FeePayments().Create(s.ctx, models.FeePaymentInput{
		FlatID: f2.ID, Amount: ptr(types.MustMoney("500")), Month: 2, Year: 2025,
	})
	s.Require().NoError(err)

	byFlat, err := s.store.FeePayments().ListByFlat(s.ctx, f1.ID)
	s.Require().NoError(err)
	s.Require().Len(byFlat, 1)
	s.Require().Equal("500.00", byFlat[0].Amount.String())

	updated, err := s.store.FeePayments().Update(s.ctx, fp.ID, models.FeePaymentPatch{
		IsPaid: types.Some(false),
		PaidAt: types.Null[time.Time](),
	})
	s.Require().NoError(err)
	s.Require().False(updated.IsPaid)
	s.Require().Nil(updated.PaidAt)

	got, err := s.store.FeePayments().GetByID(s.ctx, fp.ID)
	s.Require().NoError(err)
	s.Require().False(got.IsPaid)
	s.Require().Nil(got.PaidAt)
}

func (s *Suite) TestMaintenanceRequests() {
	b := s.building("A")
	f := s.flat(b.ID, "1", nil)

	mr, err := s.store.MaintenanceRequests().Create(s.ctx, models.MaintenanceRequestInput{
		FlatID: f.ID, Description: "Elevator noise",
	})
	s.Require().NoError(err)
	s.Require().Equal(enums.MaintenanceStatusPending, mr.Status)
	s.Require().Equal(enums.MaintenancePriorityMedium, mr.Priority)
	s.Require().Nil(mr.ResolvedAt)

	resolved := s.base.Add(time.Hour)
	updated, err := s.store.MaintenanceRequests().Update(s.ctx, mr.ID, models.MaintenanceRequestPatch{
		Status:     types.Some(enums.MaintenanceStatusCompleted),
		ResolvedAt: types.Value(resolved),
	})
	s.Require().NoError(err)
	s.Require().Equal(enums.MaintenanceStatusCompleted, updated.Status)
	s.Require().True(resolved.Equal(*updated.ResolvedAt))

	byFlat, err := s.store.MaintenanceRequests().ListByFlat(s.ctx, f.ID)
	s.Require().NoError(err)
	s.Require().Len(byFlat, 1)

	none, err := s.store.MaintenanceRequests().ListByFlat(s.ctx, "other")
	s.Require().NoError(err)
	s.Require().Empty(none)
}

func (s *Suite) TestContactRequests() {
	c, err := s.store.ContactRequests().Create(s.ctx, models.ContactRequestInput{
		Name: "Mehmet", Email: "mehmet@example.com", Message: "Teklif almak istiyorum",
		Phone: ptr(""),
	})
	s.Require().NoError(err)
	s.Require().Equal(enums.ContactStatusNew, c.Status)
	s.Require().Nil(c.Phone)

	updated, err := s.store.ContactRequests().Update(s.ctx, c.ID, models.ContactRequestPatch{
		Status: types.Some(enums.ContactStatusResolved),
	})
	s.Require().NoError(err)
	s.Require().Equal(enums.ContactStatusResolved, updated.Status)

	all, err := s.store.ContactRequests().List(s.ctx)
	s.Require().NoError(err)
	s.Require().Len(all, 1)
}

func (s *Suite) TestBlogPosts() {
	draft, err := s.store.BlogPosts().Create(s.ctx, models.BlogPostInput{Title: "Draft", Content: "..."})
	s.Require().NoError(err)
	s.Require().False(draft.Published)

	live, err := s.store.BlogPosts().Create(s.ctx, models.BlogPostInput{
		Title: "Aidat Yönetimi", Content: "...", Published: ptr(true), Category: ptr("Rehber"),
	})
	s.Require().NoError(err)

	published, err := s.store.BlogPosts().ListPublished(s.ctx)
	s.Require().NoError(err)
	s.Require().Len(published, 1)
	s.Require().Equal(live.ID, published[0].ID)

	_, err = s.store.BlogPosts().Update(s.ctx, draft.ID, models.BlogPostPatch{Published: types.Some(true)})
	s.Require().NoError(err)
	published, err = s.store.BlogPosts().ListPublished(s.ctx)
	s.Require().NoError(err)
	s.Require().Len(published, 2)

	ok, err := s.store.BlogPosts().Delete(s.ctx, draft.ID)
	s.Require().NoError(err)
	s.Require().True(ok)
	ok, err = s.store.BlogPosts().Delete(s.ctx, draft.ID)
	s.Require().NoError(err)
	s.Require().False(ok)
}
