package maintenance

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leaderturk/property-management/internal/storage/memory"
	"github.com/leaderturk/property-management/pkg/db/models"
	"github.com/leaderturk/property-management/pkg/enums"
	pkgerrors "github.com/leaderturk/property-management/pkg/errors"
	"github.com/leaderturk/property-management/pkg/types"
)

func setup(t *testing.T, now time.Time) (*Service, string) {
	t.Helper()
	store := memory.New()
	ctx := context.Background()
	fee := types.MustMoney("100")
	total := 1
	b, err := store.Buildings().Create(ctx, models.BuildingInput{Name: "B", Address: "A", TotalFlats: &total, MonthlyFee: &fee})
	require.NoError(t, err)
	f, err := store.Flats().Create(ctx, models.FlatInput{BuildingID: b.ID, FlatNumber: "3"})
	require.NoError(t, err)

	svc, err := NewService(store.MaintenanceRequests(), store.Flats(), func() time.Time { return now })
	require.NoError(t, err)
	return svc, f.ID
}

func TestCreateDefaults(t *testing.T) {
	svc, flatID := setup(t, time.Now().UTC())

	mr, err := svc.Create(context.Background(), models.MaintenanceRequestInput{FlatID: flatID, Description: "Leaking tap"})
	require.NoError(t, err)
	assert.Equal(t, enums.MaintenanceStatusPending, mr.Status)
	assert.Equal(t, enums.MaintenancePriorityMedium, mr.Priority)
	assert.Nil(t, mr.ResolvedAt)
}

func TestCreateRejectsUnknownFlat(t *testing.T) {
	svc, _ := setup(t, time.Now().UTC())
	_, err := svc.Create(context.Background(), models.MaintenanceRequestInput{FlatID: "ghost", Description: "x"})
	assert.True(t, pkgerrors.IsCode(err, pkgerrors.CodeValidation))
}

func TestResolvedAtFollowsStatus(t *testing.T) {
	now := time.Date(2025, 6, 1, 8, 0, 0, 0, time.UTC)
	svc, flatID := setup(t, now)
	ctx := context.Background()

	mr, err := svc.Create(ctx, models.MaintenanceRequestInput{FlatID: flatID, Description: "Broken lift"})
	require.NoError(t, err)

	progress, err := svc.Update(ctx, mr.ID, models.MaintenanceRequestPatch{Status: types.Some(enums.MaintenanceStatusInProgress)})
	require.NoError(t, err)
	assert.Nil(t, progress.ResolvedAt)

	done, err := svc.Update(ctx, mr.ID, models.MaintenanceRequestPatch{Status: types.Some(enums.MaintenanceStatusCompleted)})
	require.NoError(t, err)
	require.NotNil(t, done.ResolvedAt)
	assert.True(t, now.Equal(*done.ResolvedAt))

	again, err := svc.Update(ctx, mr.ID, models.MaintenanceRequestPatch{
		Status:   types.Some(enums.MaintenanceStatusCompleted),
		Priority: types.Some(enums.MaintenancePriorityLow),
	})
	require.NoError(t, err)
	require.NotNil(t, again.ResolvedAt)
	assert.True(t, now.Equal(*again.ResolvedAt))

	reopened, err := svc.Update(ctx, mr.ID, models.MaintenanceRequestPatch{Status: types.Some(enums.MaintenanceStatusPending)})
	require.NoError(t, err)
	assert.Nil(t, reopened.ResolvedAt)
}

func TestClientCannotSetResolvedAt(t *testing.T) {
	svc, flatID := setup(t, time.Now().UTC())
	ctx := context.Background()

	mr, err := svc.Create(ctx, models.MaintenanceRequestInput{FlatID: flatID, Description: "Paint"})
	require.NoError(t, err)

	forged := types.Value(time.Date(2000, 1, 1, 0, 0, 0, 0, time.UTC))
	updated, err := svc.Update(ctx, mr.ID, models.MaintenanceRequestPatch{Description: types.Some("Paint hall"), ResolvedAt: forged})
	require.NoError(t, err)
	assert.Nil(t, updated.ResolvedAt)
}
