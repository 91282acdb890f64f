package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

// devSessionSecret is only ever used outside production when PM_SESSION_SECRET is unset.
const devSessionSecret = "dev-only-insecure-session-secret"

type Config struct {
	App           AppConfig
	Session       SessionConfig
	Storage       StorageConfig
	DB            DBConfig
	Redis         RedisConfig
	Password      PasswordConfig
	AuthRateLimit AuthRateLimitConfig
	CORS          CORSConfig
	Bootstrap     BootstrapConfig
	Housekeeping  HousekeepingConfig
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if err := cfg.Session.ensureSecret(cfg.App); err != nil {
		return nil, err
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) validate() error {
	switch c.Storage.Driver {
	case StorageDriverMemory:
	case StorageDriverPostgres, StorageDriverSQLite:
		if c.DB.DSN == "" {
			return fmt.Errorf("%s is required when %s=%s", EnvDBDSN, EnvStorageDriver, c.Storage.Driver)
		}
	default:
		return fmt.Errorf("unsupported %s %q", EnvStorageDriver, c.Storage.Driver)
	}

	switch c.Session.Store {
	case SessionStoreMemory:
	case SessionStoreRedis:
		if !c.Redis.Enabled() {
			return fmt.Errorf("%s or %s is required when %s=redis", EnvRedisURL, EnvRedisAddr, EnvSessionStore)
		}
	case SessionStoreDatabase:
		if c.Storage.Driver == StorageDriverMemory {
			return fmt.Errorf("%s=database requires a SQL %s", EnvSessionStore, EnvStorageDriver)
		}
	default:
		return fmt.Errorf("unsupported %s %q", EnvSessionStore, c.Session.Store)
	}
	return nil
}

type AppConfig struct {
	Env             string        `envconfig:"PM_APP_ENV" default:"dev"`
	Port            string        `envconfig:"PM_APP_PORT" default:"5000"`
	LogLevel        string        `envconfig:"PM_LOG_LEVEL" default:"info"`
	LogWarnStack    bool          `envconfig:"PM_LOG_WARN_STACK" default:"false"`
	ShutdownTimeout time.Duration `envconfig:"PM_APP_SHUTDOWN_TIMEOUT" default:"10s"`
	TrustProxy      bool          `envconfig:"PM_APP_TRUST_PROXY" default:"true"`
	SeedDemoData    bool          `envconfig:"PM_SEED_DEMO_DATA" default:"false"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

type SessionConfig struct {
	Secret     string        `envconfig:"PM_SESSION_SECRET"`
	CookieName string        `envconfig:"PM_SESSION_COOKIE_NAME" default:"sessionId"`
	TTL        time.Duration `envconfig:"PM_SESSION_TTL" default:"24h"`
	Issuer     string        `envconfig:"PM_SESSION_ISSUER" default:"property-management"`
	Store      string        `envconfig:"PM_SESSION_STORE" default:"memory"`

	// InsecureSecret is set by Load when the development fallback secret is in use.
	InsecureSecret bool `ignored:"true"`
}

func (s *SessionConfig) ensureSecret(app AppConfig) error {
	if strings.TrimSpace(s.Secret) != "" {
		return nil
	}
	if app.IsProd() {
		return fmt.Errorf("%s is required in production", EnvSessionSecret)
	}
	s.Secret = devSessionSecret
	s.InsecureSecret = true
	return nil
}

type StorageConfig struct {
	Driver string `envconfig:"PM_STORAGE_DRIVER" default:"memory"`
}

// IsSQL reports whether records live in a relational database.
func (s StorageConfig) IsSQL() bool {
	return s.Driver == StorageDriverPostgres || s.Driver == StorageDriverSQLite
}

type DBConfig struct {
	DSN         string `envconfig:"PM_DB_DSN"`
	AutoMigrate bool   `envconfig:"PM_DB_AUTO_MIGRATE" default:"false"`

	MaxOpenConns    int           `envconfig:"PM_DB_MAX_OPEN_CONNS" default:"20"`
	MaxIdleConns    int           `envconfig:"PM_DB_MAX_IDLE_CONNS" default:"10"`
	ConnMaxLifetime time.Duration `envconfig:"PM_DB_CONN_MAX_LIFETIME" default:"1h"`
	ConnMaxIdleTime time.Duration `envconfig:"PM_DB_CONN_MAX_IDLE_TIME" default:"10m"`
}

type RedisConfig struct {
	URL          string        `envconfig:"PM_REDIS_URL"`
	Address      string        `envconfig:"PM_REDIS_ADDR"`
	Password     string        `envconfig:"PM_REDIS_PASSWORD"`
	DB           int           `envconfig:"PM_REDIS_DB" default:"0"`
	PoolSize     int           `envconfig:"PM_REDIS_POOL_SIZE" default:"10"`
	MinIdleConns int           `envconfig:"PM_REDIS_MIN_IDLE_CONNS" default:"2"`
	DialTimeout  time.Duration `envconfig:"PM_REDIS_DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"PM_REDIS_READ_TIMEOUT" default:"5s"`
	WriteTimeout time.Duration `envconfig:"PM_REDIS_WRITE_TIMEOUT" default:"5s"`
}

// Enabled reports whether a redis endpoint was configured.
func (r RedisConfig) Enabled() bool {
	return r.URL != "" || r.Address != ""
}

type PasswordConfig struct {
	ScryptN       int `envconfig:"PM_SCRYPT_N" default:"16384"`
	ScryptR       int `envconfig:"PM_SCRYPT_R" default:"8"`
	ScryptP       int `envconfig:"PM_SCRYPT_P" default:"1"`
	ScryptKeyLen  int `envconfig:"PM_SCRYPT_KEY_LEN" default:"64"`
	ScryptSaltLen int `envconfig:"PM_SCRYPT_SALT_LEN" default:"16"`
}

type AuthRateLimitConfig struct {
	LoginWindow           time.Duration `envconfig:"PM_AUTH_RATE_LIMIT_LOGIN_WINDOW" default:"1m"`
	LoginUsernameLimit    int           `envconfig:"PM_AUTH_RATE_LIMIT_LOGIN_USERNAME_LIMIT" default:"5"`
	LoginIPLimit          int           `envconfig:"PM_AUTH_RATE_LIMIT_LOGIN_IP_LIMIT" default:"20"`
	RegisterWindow        time.Duration `envconfig:"PM_AUTH_RATE_LIMIT_REGISTER_WINDOW" default:"5m"`
	RegisterUsernameLimit int           `envconfig:"PM_AUTH_RATE_LIMIT_REGISTER_USERNAME_LIMIT" default:"3"`
	RegisterIPLimit       int           `envconfig:"PM_AUTH_RATE_LIMIT_REGISTER_IP_LIMIT" default:"20"`
}

type CORSConfig struct {
	AllowedOrigins []string `envconfig:"PM_CORS_ALLOWED_ORIGINS" default:"http://localhost:5000,http://localhost:5173"`
}

type BootstrapConfig struct {
	AdminUsername string `envconfig:"PM_BOOTSTRAP_ADMIN_USERNAME" default:"admin"`
	AdminPassword string `envconfig:"PM_BOOTSTRAP_ADMIN_PASSWORD"`
	AdminEmail    string `envconfig:"PM_BOOTSTRAP_ADMIN_EMAIL" default:"admin@alqyonetim.com.tr"`
}

// HousekeepingConfig schedules background maintenance using cron expressions.
type HousekeepingConfig struct {
	Enabled            bool   `envconfig:"PM_HOUSEKEEPING_ENABLED" default:"true"`
	SessionPurgeSpec   string `envconfig:"PM_HOUSEKEEPING_SESSION_PURGE" default:"@every 15m"`
	RateLimitSweepSpec string `envconfig:"PM_HOUSEKEEPING_RATE_LIMIT_SWEEP" default:"@every 10m"`
}
