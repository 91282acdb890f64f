package config

// EnvPrefix is empty because every variable carries its full PM_ name in the struct tags.
const EnvPrefix = ""

const (
	AppEnvDev  = "dev"
	AppEnvProd = "production"
)

const (
	StorageDriverMemory   = "memory"
	StorageDriverPostgres = "postgres"
	StorageDriverSQLite   = "sqlite"
)

const (
	SessionStoreMemory   = "memory"
	SessionStoreRedis    = "redis"
	SessionStoreDatabase = "database"
)

const (
	EnvAppEnv          = "PM_APP_ENV"
	EnvPort            = "PM_APP_PORT"
	EnvLogLevel        = "PM_LOG_LEVEL"
	EnvSeedDemoData    = "PM_SEED_DEMO_DATA"
	EnvSessionSecret   = "PM_SESSION_SECRET"
	EnvSessionStore    = "PM_SESSION_STORE"
	EnvSessionTTL      = "PM_SESSION_TTL"
	EnvStorageDriver   = "PM_STORAGE_DRIVER"
	EnvDBDSN           = "PM_DB_DSN"
	EnvRedisURL        = "PM_REDIS_URL"
	EnvRedisAddr       = "PM_REDIS_ADDR"
	EnvCORSOrigins     = "PM_CORS_ALLOWED_ORIGINS"
	EnvBootstrapAdmin  = "PM_BOOTSTRAP_ADMIN_USERNAME"
	EnvBootstrapSecret = "PM_BOOTSTRAP_ADMIN_PASSWORD"
)
