package sqlstore_test

import (
	"context"
	"fmt"
	"testing"

	"github.com/google/uuid"
	"github.com/leaderturk/property-management/internal/storage"
	"github.com/leaderturk/property-management/internal/storage/sqlstore"
	"github.com/leaderturk/property-management/internal/storage/storagetest"
	"github.com/leaderturk/property-management/pkg/config"
	"github.com/leaderturk/property-management/pkg/db"
	"github.com/leaderturk/property-management/pkg/migrate"
	"github.com/stretchr/testify/require"
)

func newSQLite(t *testing.T) *db.Client {
	t.Helper()
	ctx := context.Background()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared&_foreign_keys=1", uuid.NewString())
	client, err := db.New(ctx, config.StorageDriverSQLite, config.DBConfig{DSN: dsn}, nil)
	require.NoError(t, err)

	sqlDB, err := client.SQL()
	require.NoError(t, err)
	require.NoError(t, migrate.Run(ctx, sqlDB, client.Dialect(), "up"))
	return client
}

func TestSQLiteStore(t *testing.T) {
	storagetest.Run(t, func(t *testing.T, clock storage.Clock) storage.Storage {
		return sqlstore.New(newSQLite(t), sqlstore.WithClock(clock))
	})
}
