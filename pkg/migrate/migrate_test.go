package migrate_test

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/leaderturk/property-management/pkg/config"
	"github.com/leaderturk/property-management/pkg/db"
	"github.com/leaderturk/property-management/pkg/migrate"
	"github.com/stretchr/testify/require"
)

func TestCoreMigrationContainsTables(t *testing.T) {
	matches, err := filepath.Glob(filepath.Join("migrations", "*_create_core_tables.sql"))
	require.NoError(t, err)
	require.NotEmpty(t, matches, "no core migration file found")

	data, err := os.ReadFile(matches[0])
	require.NoError(t, err)
	content := string(data)

	checks := []string{
		"CREATE TABLE IF NOT EXISTS users",
		"CREATE TABLE IF NOT EXISTS buildings",
		"CREATE TABLE IF NOT EXISTS flats",
		"CREATE TABLE IF NOT EXISTS residents",
		"CREATE TABLE IF NOT EXISTS fee_payments",
		"CREATE TABLE IF NOT EXISTS maintenance_requests",
		"CREATE TABLE IF NOT EXISTS contact_requests",
		"CREATE TABLE IF NOT EXISTS blog_posts",
		"monthly_fee NUMERIC(10,2) NOT NULL",
		"resident_id VARCHAR(64) REFERENCES residents(id) ON DELETE SET NULL",
		"DROP TABLE IF EXISTS users",
	}
	for _, sub := range checks {
		if !strings.Contains(content, sub) {
			t.Errorf("missing expected statement %q", sub)
		}
	}
}

func TestEmbeddedMigrationsAreValid(t *testing.T) {
	require.NoError(t, migrate.ValidateFS(migrate.Migrations, "migrations"))
	require.NoError(t, migrate.ValidateDir("migrations"))
}

func TestValidateDirRejectsBadNames(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "001_init.sql"), []byte("-- +goose Up\n-- +goose Down\n"), 0o644))
	require.Error(t, migrate.ValidateDir(dir))
}

func TestCreateSQLMigrationWritesTemplate(t *testing.T) {
	dir := t.TempDir()
	path, err := migrate.CreateSQLMigration(dir, "Add Notes Column")
	require.NoError(t, err)
	require.True(t, strings.HasSuffix(path, "_add_notes_column.sql"))
	require.NoError(t, migrate.ValidateDir(dir))
}

func TestRunUpAndDownOnSQLite(t *testing.T) {
	ctx := context.Background()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared&_foreign_keys=1", uuid.NewString())
	client, err := db.New(ctx, config.StorageDriverSQLite, config.DBConfig{DSN: dsn}, nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = client.Close() })

	sqlDB, err := client.SQL()
	require.NoError(t, err)

	require.NoError(t, migrate.Run(ctx, sqlDB, client.Dialect(), "up"))
	require.True(t, client.DB().Migrator().HasTable("buildings"))
	require.True(t, client.DB().Migrator().HasTable("sessions"))

	require.NoError(t, migrate.MigrateToVersion(ctx, sqlDB, client.Dialect(), "20250101000000"))
	require.False(t, client.DB().Migrator().HasTable("sessions"))
	require.True(t, client.DB().Migrator().HasTable("buildings"))

	require.NoError(t, migrate.Run(ctx, sqlDB, client.Dialect(), "reset"))
	require.False(t, client.DB().Migrator().HasTable("users"))
}

func TestDialect(t *testing.T) {
	d, err := migrate.Dialect(config.StorageDriverPostgres)
	require.NoError(t, err)
	require.Equal(t, "postgres", d)

	_, err = migrate.Dialect(config.StorageDriverMemory)
	require.Error(t, err)
}

func TestValidateDirRejectsDownBeforeUp(t *testing.T) {
	dir := t.TempDir()
	body := "-- +goose Down\nDROP TABLE x;\n-- +goose Up\nCREATE TABLE x (id INT);\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, "20250101000000_swap.sql"), []byte(body), 0o644))
	err := migrate.ValidateDir(dir)
	require.Error(t, err)
	require.Contains(t, err.Error(), "must come before")
}

func TestCreateSQLMigrationRejectsEmptySlug(t *testing.T) {
	_, err := migrate.CreateSQLMigration(t.TempDir(), "  ---  ")
	require.Error(t, err)
}
