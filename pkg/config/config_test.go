package config

import (
	"testing"
	"time"
)

func TestLoad_Defaults(t *testing.T) {
	setMinimalEnv(t)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() returned unexpected error: %v", err)
	}

	if cfg.Session.CookieName != "sessionId" {
		t.Fatalf("unexpected cookie name %q", cfg.Session.CookieName)
	}
	if cfg.Session.TTL != 24*time.Hour {
		t.Fatalf("expected 24h session ttl, got %v", cfg.Session.TTL)
	}
	if cfg.Storage.Driver != StorageDriverMemory {
		t.Fatalf("expected memory storage by default, got %q", cfg.Storage.Driver)
	}
	if cfg.Password.ScryptKeyLen != 64 || cfg.Password.ScryptSaltLen != 16 {
		t.Fatalf("unexpected scrypt sizes %+v", cfg.Password)
	}
	if len(cfg.CORS.AllowedOrigins) != 2 {
		t.Fatalf("expected two default origins, got %v", cfg.CORS.AllowedOrigins)
	}
	if !cfg.Housekeeping.Enabled || cfg.Housekeeping.SessionPurgeSpec != "@every 15m" {
		t.Fatalf("unexpected housekeeping defaults %+v", cfg.Housekeeping)
	}
}

func TestLoad_DevWithoutSecretFallsBack(t *testing.T) {
	setMinimalEnv(t)
	t.Setenv(EnvSessionSecret, "")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() returned unexpected error: %v", err)
	}
	if !cfg.Session.InsecureSecret {
		t.Fatal("expected insecure secret flag in dev")
	}
	if cfg.Session.Secret == "" {
		t.Fatal("expected fallback secret to be populated")
	}
}

func TestLoad_ProductionRequiresSecret(t *testing.T) {
	setMinimalEnv(t)
	t.Setenv(EnvAppEnv, "production")
	t.Setenv(EnvSessionSecret, "")

	if _, err := Load(); err == nil {
		t.Fatal("expected missing session secret to fail in production")
	}
}

func TestLoad_SQLDriverRequiresDSN(t *testing.T) {
	setMinimalEnv(t)
	t.Setenv(EnvStorageDriver, StorageDriverPostgres)
	t.Setenv(EnvDBDSN, "")

	if _, err := Load(); err == nil {
		t.Fatal("expected postgres driver without DSN to fail")
	}
}

func TestLoad_RedisSessionsRequireRedis(t *testing.T) {
	setMinimalEnv(t)
	t.Setenv(EnvSessionStore, SessionStoreRedis)

	if _, err := Load(); err == nil {
		t.Fatal("expected redis session store without redis url to fail")
	}

	t.Setenv(EnvRedisURL, "redis://localhost:6379/0")
	if _, err := Load(); err != nil {
		t.Fatalf("expected redis session store to load, got %v", err)
	}
}

func TestLoad_DatabaseSessionsRequireSQL(t *testing.T) {
	setMinimalEnv(t)
	t.Setenv(EnvSessionStore, SessionStoreDatabase)

	if _, err := Load(); err == nil {
		t.Fatal("expected database sessions on memory storage to fail")
	}

	t.Setenv(EnvStorageDriver, StorageDriverSQLite)
	t.Setenv(EnvDBDSN, "file:pm.db")
	if _, err := Load(); err != nil {
		t.Fatalf("expected sqlite-backed sessions to load, got %v", err)
	}
}

func setMinimalEnv(t *testing.T) {
	t.Helper()

	t.Setenv(EnvAppEnv, "dev")
	t.Setenv(EnvPort, "8081")
	t.Setenv(EnvSessionSecret, "secret")
	t.Setenv(EnvSessionStore, SessionStoreMemory)
	t.Setenv(EnvStorageDriver, StorageDriverMemory)
	t.Setenv(EnvDBDSN, "")
	t.Setenv(EnvRedisURL, "")
	t.Setenv(EnvRedisAddr, "")
}

func TestAppConfigEnvHelpers(t *testing.T) {
	devConfig := AppConfig{Env: "DEV"}
	if !devConfig.IsDev() {
		t.Fatalf("expected IsDev true for %q", devConfig.Env)
	}
	if devConfig.IsProd() {
		t.Fatalf("expected IsProd false for %q", devConfig.Env)
	}

	prodConfig := AppConfig{Env: "Production"}
	if !prodConfig.IsProd() {
		t.Fatalf("expected IsProd true for %q", prodConfig.Env)
	}
}
