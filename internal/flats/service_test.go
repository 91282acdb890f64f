package flats

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leaderturk/property-management/internal/storage/memory"
	"github.com/leaderturk/property-management/pkg/db/models"
	pkgerrors "github.com/leaderturk/property-management/pkg/errors"
	"github.com/leaderturk/property-management/pkg/types"
)

type fixture struct {
	store    *memory.Store
	svc      *Service
	building string
}

func newFixture(t *testing.T) fixture {
	t.Helper()
	store := memory.New()
	svc, err := NewService(store.Flats(), store.Buildings(), store.Residents())
	require.NoError(t, err)

	total := 4
	fee := types.MustMoney("300")
	b, err := store.Buildings().Create(context.Background(), models.BuildingInput{Name: "B", Address: "A", TotalFlats: &total, MonthlyFee: &fee})
	require.NoError(t, err)
	return fixture{store: store, svc: svc, building: b.ID}
}

func TestCreateReportsEveryBrokenReference(t *testing.T) {
	f := newFixture(t)
	ghost := "ghost"

	_, err := f.svc.Create(context.Background(), models.FlatInput{BuildingID: "nope", FlatNumber: "1", ResidentID: &ghost})
	require.Error(t, err)
	perr := pkgerrors.As(err)
	require.NotNil(t, perr)
	assert.Equal(t, pkgerrors.CodeValidation, perr.Code())
	details, ok := perr.Details().(map[string]string)
	require.True(t, ok)
	assert.Contains(t, details, "buildingId")
	assert.Contains(t, details, "residentId")
}

func TestListFiltersByBuilding(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.svc.Create(ctx, models.FlatInput{BuildingID: f.building, FlatNumber: "1"})
	require.NoError(t, err)
	_, err = f.svc.Create(ctx, models.FlatInput{BuildingID: f.building, FlatNumber: "2"})
	require.NoError(t, err)

	got, err := f.svc.List(ctx, f.building)
	require.NoError(t, err)
	assert.Len(t, got, 2)

	got, err = f.svc.List(ctx, "other")
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestUpdateResident(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	r, err := f.store.Residents().Create(ctx, models.ResidentInput{Name: "Zeynep Kaya"})
	require.NoError(t, err)
	flat, err := f.svc.Create(ctx, models.FlatInput{BuildingID: f.building, FlatNumber: "5"})
	require.NoError(t, err)

	_, err = f.svc.Update(ctx, flat.ID, models.FlatPatch{ResidentID: types.Value("ghost")})
	assert.True(t, pkgerrors.IsCode(err, pkgerrors.CodeValidation))

	updated, err := f.svc.Update(ctx, flat.ID, models.FlatPatch{ResidentID: types.Value(r.ID)})
	require.NoError(t, err)
	require.NotNil(t, updated.ResidentID)
	assert.Equal(t, r.ID, *updated.ResidentID)

	_, err = f.svc.Update(ctx, "missing", models.FlatPatch{FlatNumber: types.Some("9")})
	assert.True(t, pkgerrors.IsCode(err, pkgerrors.CodeNotFound))
}

func TestDeleteBlockedByPayments(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	flat, err := f.svc.Create(ctx, models.FlatInput{BuildingID: f.building, FlatNumber: "7"})
	require.NoError(t, err)
	amount := types.MustMoney("300")
	_, err = f.store.FeePayments().Create(ctx, models.FeePaymentInput{FlatID: flat.ID, Amount: &amount, Month: 2, Year: 2025})
	require.NoError(t, err)

	err = f.svc.Delete(ctx, flat.ID)
	assert.True(t, pkgerrors.IsCode(err, pkgerrors.CodeConflict))
}
