package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"go.uber.org/multierr"

	"github.com/leaderturk/property-management/api/controllers"
	"github.com/leaderturk/property-management/api/middleware"
	"github.com/leaderturk/property-management/api/routes"
	"github.com/leaderturk/property-management/internal/auth"
	"github.com/leaderturk/property-management/internal/blog"
	"github.com/leaderturk/property-management/internal/buildings"
	"github.com/leaderturk/property-management/internal/contact"
	"github.com/leaderturk/property-management/internal/dashboard"
	"github.com/leaderturk/property-management/internal/fees"
	"github.com/leaderturk/property-management/internal/flats"
	"github.com/leaderturk/property-management/internal/housekeeping"
	"github.com/leaderturk/property-management/internal/maintenance"
	"github.com/leaderturk/property-management/internal/residents"
	"github.com/leaderturk/property-management/internal/seed"
	"github.com/leaderturk/property-management/internal/storage"
	"github.com/leaderturk/property-management/internal/storage/memory"
	"github.com/leaderturk/property-management/internal/storage/sqlstore"
	"github.com/leaderturk/property-management/internal/users"
	"github.com/leaderturk/property-management/pkg/auth/session"
	"github.com/leaderturk/property-management/pkg/config"
	"github.com/leaderturk/property-management/pkg/db"
	"github.com/leaderturk/property-management/pkg/logger"
	"github.com/leaderturk/property-management/pkg/metrics"
	"github.com/leaderturk/property-management/pkg/migrate"
	"github.com/leaderturk/property-management/pkg/ratelimit"
	"github.com/leaderturk/property-management/pkg/redis"
)

func main() {
	logg := logger.New(logger.Options{ServiceName: "api"})

	if err := godotenv.Load(); err != nil {
		logg.Warn(context.Background(), ".env file not found, relying on environment")
	}

	cfg, err := config.Load()
	if err != nil {
		logg.Error(context.Background(), "failed to load config", err)
		os.Exit(1)
	}

	logg = logger.New(logger.Options{
		ServiceName: "api",
		Level:       logger.ParseLevel(cfg.App.LogLevel),
		WarnStack:   cfg.App.LogWarnStack,
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, logg); err != nil {
		logg.Error(context.Background(), "api server stopped unexpectedly", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg *config.Config, logg *logger.Logger) (err error) {
	if cfg.Session.InsecureSecret {
		logg.Warn(logg.WithField(ctx, "env", cfg.App.Env), "session.secret.insecure_fallback")
	}

	var closers []func() error
	defer func() {
		for i := len(closers) - 1; i >= 0; i-- {
			err = multierr.Append(err, closers[i]())
		}
	}()

	store, dbClient, err := openStorage(ctx, cfg, logg)
	if err != nil {
		return err
	}
	closers = append(closers, store.Close)

	var redisClient *redis.Client
	if cfg.Redis.Enabled() {
		redisClient, err = redis.New(ctx, cfg.Redis, logg)
		if err != nil {
			return err
		}
		closers = append(closers, redisClient.Close)
	}

	sessionStore, err := openSessionStore(cfg, dbClient, redisClient)
	if err != nil {
		return err
	}
	sessions, err := session.NewManager(sessionStore, cfg.Session)
	if err != nil {
		return err
	}

	// redis counters are shared across instances; otherwise throttle in-process
	var (
		limiter     middleware.RateLimiter
		memoryLimit *ratelimit.Memory
	)
	if redisClient != nil {
		limiter = redisClient
	} else {
		memoryLimit = ratelimit.NewMemory()
		limiter = memoryLimit
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	deps, err := buildServices(cfg, logg, store, reg)
	if err != nil {
		return err
	}
	deps.Config = cfg
	deps.Logger = logg
	deps.Metrics = metrics.NewHTTPMetrics(reg)
	deps.Gatherer = reg
	deps.Sessions = sessions
	deps.Limiter = limiter
	deps.Ready = map[string]controllers.Pinger{"storage": store}
	if redisClient != nil {
		deps.Ready["redis"] = redisClient
	}

	if err := bootstrapData(ctx, cfg, logg, store); err != nil {
		return err
	}

	if cfg.Housekeeping.Enabled {
		jobs := housekeeping.NewRegistry(housekeeping.NewSessionPurgeJob(cfg.Housekeeping.SessionPurgeSpec, sessions, logg))
		if memoryLimit != nil {
			jobs.Register(housekeeping.NewRateLimitSweepJob(cfg.Housekeeping.RateLimitSweepSpec, memoryLimit))
		}
		hk, err := housekeeping.NewService(housekeeping.ServiceParams{
			Logger:   logg,
			Registry: jobs,
			Metrics:  metrics.NewJobMetrics(reg),
		})
		if err != nil {
			return err
		}
		if err := hk.Start(ctx); err != nil {
			return err
		}
		defer hk.Stop(context.Background())
	}

	addr := ":" + cfg.App.Port
	server := &http.Server{
		Addr:              addr,
		Handler:           routes.NewRouter(deps),
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       2 * time.Minute,
	}

	serveErr := make(chan error, 1)
	go func() {
		serveErr <- server.ListenAndServe()
	}()
	logg.Info(logg.WithFields(ctx, map[string]any{
		"env":           cfg.App.Env,
		"addr":          addr,
		"storage":       cfg.Storage.Driver,
		"session_store": cfg.Session.Store,
	}), "starting api server")

	select {
	case err := <-serveErr:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	logg.Info(context.Background(), "shutting down api server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.App.ShutdownTimeout)
	defer cancel()
	return server.Shutdown(shutdownCtx)
}

func openStorage(ctx context.Context, cfg *config.Config, logg *logger.Logger) (storage.Storage, *db.Client, error) {
	if !cfg.Storage.IsSQL() {
		return memory.New(), nil, nil
	}

	client, err := db.New(ctx, cfg.Storage.Driver, cfg.DB, logg)
	if err != nil {
		return nil, nil, err
	}
	if err := migrate.MaybeRun(ctx, cfg, logg, client); err != nil {
		return nil, nil, multierr.Append(err, client.Close())
	}
	return sqlstore.New(client), client, nil
}

func openSessionStore(cfg *config.Config, dbClient *db.Client, redisClient *redis.Client) (session.Store, error) {
	switch cfg.Session.Store {
	case config.SessionStoreRedis:
		if redisClient == nil {
			return nil, errors.New("redis session store requires redis")
		}
		return session.NewRedisStore(redisClient), nil
	case config.SessionStoreDatabase:
		if dbClient == nil {
			return nil, errors.New("database session store requires a SQL storage driver")
		}
		return session.NewSQLStore(dbClient.DB()), nil
	}
	return session.NewMemoryStore(), nil
}

func buildServices(cfg *config.Config, logg *logger.Logger, store storage.Storage, reg prometheus.Registerer) (routes.Deps, error) {
	var (
		d    routes.Deps
		errs error
		err  error
	)

	d.Auth, err = auth.NewService(auth.ServiceParams{
		Users:    store.Users(),
		Password: cfg.Password,
		Metrics:  metrics.NewAuthMetrics(reg),
	})
	errs = multierr.Append(errs, err)
	d.Users, err = users.NewService(store.Users(), cfg.Password)
	errs = multierr.Append(errs, err)
	d.Buildings, err = buildings.NewService(store.Buildings(), store.Users())
	errs = multierr.Append(errs, err)
	d.Flats, err = flats.NewService(store.Flats(), store.Buildings(), store.Residents())
	errs = multierr.Append(errs, err)
	d.Residents, err = residents.NewService(store.Residents())
	errs = multierr.Append(errs, err)
	d.Fees, err = fees.NewService(store.FeePayments(), store.Flats(), storage.SystemClock)
	errs = multierr.Append(errs, err)
	d.Maintenance, err = maintenance.NewService(store.MaintenanceRequests(), store.Flats(), storage.SystemClock)
	errs = multierr.Append(errs, err)
	d.Blog, err = blog.NewService(store.BlogPosts())
	errs = multierr.Append(errs, err)
	d.Contact, err = contact.NewService(store.ContactRequests(), logg)
	errs = multierr.Append(errs, err)
	d.Dashboard, err = dashboard.NewService(store)
	errs = multierr.Append(errs, err)

	return d, errs
}

// bootstrapData seeds the demo portfolio when asked and makes sure the
// configured admin account exists.
func bootstrapData(ctx context.Context, cfg *config.Config, logg *logger.Logger, store storage.Storage) error {
	params := seed.Params{
		Store:     store,
		App:       cfg.App,
		Password:  cfg.Password,
		Bootstrap: cfg.Bootstrap,
		Logger:    logg,
	}

	if cfg.App.SeedDemoData {
		res, err := seed.Run(ctx, params)
		if err != nil {
			return err
		}
		if res.Skipped {
			logg.Info(ctx, "seed.skipped.existing_data")
		}
		return nil
	}

	if cfg.Bootstrap.AdminPassword == "" {
		return nil
	}
	res, err := seed.EnsureAdmin(ctx, params)
	if err != nil {
		return err
	}
	logg.Info(logg.WithField(ctx, "admin_id", res.Admin.ID), "bootstrap.admin.ready")
	return nil
}
