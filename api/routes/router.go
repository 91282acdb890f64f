package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/leaderturk/property-management/api/controllers"
	"github.com/leaderturk/property-management/api/middleware"
	"github.com/leaderturk/property-management/internal/auth"
	"github.com/leaderturk/property-management/internal/blog"
	"github.com/leaderturk/property-management/internal/buildings"
	"github.com/leaderturk/property-management/internal/contact"
	"github.com/leaderturk/property-management/internal/dashboard"
	"github.com/leaderturk/property-management/internal/fees"
	"github.com/leaderturk/property-management/internal/flats"
	"github.com/leaderturk/property-management/internal/maintenance"
	"github.com/leaderturk/property-management/internal/residents"
	"github.com/leaderturk/property-management/internal/users"
	"github.com/leaderturk/property-management/pkg/config"
	"github.com/leaderturk/property-management/pkg/logger"
	"github.com/leaderturk/property-management/pkg/metrics"
)

// SessionManager issues sessions on login and resolves them per request.
type SessionManager interface {
	middleware.SessionResolver
	controllers.SessionIssuer
}

// Deps is everything the HTTP surface is built from.
type Deps struct {
	Config  *config.Config
	Logger  *logger.Logger
	Metrics *metrics.HTTPMetrics
	// Gatherer backs /metrics. The endpoint is not mounted when nil.
	Gatherer prometheus.Gatherer
	Sessions SessionManager
	// Limiter throttles login and register. Nil disables throttling.
	Limiter middleware.RateLimiter
	// Ready lists the dependencies /health/ready pings.
	Ready map[string]controllers.Pinger

	Auth        *auth.Service
	Users       *users.Service
	Buildings   *buildings.Service
	Flats       *flats.Service
	Residents   *residents.Service
	Fees        *fees.Service
	Maintenance *maintenance.Service
	Blog        *blog.Service
	Contact     *contact.Service
	Dashboard   *dashboard.Service
}

func NewRouter(d Deps) http.Handler {
	cfg := d.Config
	logg := d.Logger

	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg, d.Metrics),
		middleware.CORS(cfg.CORS),
		middleware.Session(cfg.Session, d.Sessions, d.Auth, logg),
	)

	loginPolicy := middleware.NewAuthRateLimitPolicy(
		"login",
		cfg.AuthRateLimit.LoginWindow,
		cfg.AuthRateLimit.LoginIPLimit,
		cfg.AuthRateLimit.LoginUsernameLimit,
		cfg.App.TrustProxy,
	)
	registerPolicy := middleware.NewAuthRateLimitPolicy(
		"register",
		cfg.AuthRateLimit.RegisterWindow,
		cfg.AuthRateLimit.RegisterIPLimit,
		cfg.AuthRateLimit.RegisterUsernameLimit,
		cfg.App.TrustProxy,
	)

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, logg, d.Ready))
	})
	if d.Gatherer != nil {
		r.Method(http.MethodGet, "/metrics", metrics.Handler(d.Gatherer))
	}

	admin := func(r chi.Router) chi.Router {
		return r.With(middleware.RequireAuthenticated(logg), middleware.RequireAdmin(logg))
	}

	r.Route("/api", func(r chi.Router) {
		r.With(middleware.AuthRateLimit(registerPolicy, d.Limiter, logg)).Post("/register", controllers.AuthRegister(d.Auth, d.Sessions, cfg, logg))
		r.With(middleware.AuthRateLimit(loginPolicy, d.Limiter, logg)).Post("/login", controllers.AuthLogin(d.Auth, d.Sessions, cfg, logg))
		r.Post("/logout", controllers.AuthLogout(d.Sessions, cfg, logg))
		r.With(middleware.RequireAuthenticated(logg)).Get("/user", controllers.AuthUser(logg))

		r.Route("/buildings", func(r chi.Router) {
			r.Get("/", controllers.List(d.Buildings.List, logg))
			r.Get("/{id}", controllers.Get(d.Buildings.Get, logg))
			admin(r).Post("/", controllers.Create(d.Buildings.Create, logg))
			admin(r).Put("/{id}", controllers.Update(d.Buildings.Update, logg))
			admin(r).Delete("/{id}", controllers.Delete(d.Buildings.Delete, logg))
		})

		r.Route("/flats", func(r chi.Router) {
			r.Get("/", controllers.FlatList(d.Flats, logg))
			r.Get("/{id}", controllers.Get(d.Flats.Get, logg))
			admin(r).Post("/", controllers.Create(d.Flats.Create, logg))
			admin(r).Put("/{id}", controllers.Update(d.Flats.Update, logg))
			admin(r).Delete("/{id}", controllers.Delete(d.Flats.Delete, logg))
		})

		r.Route("/residents", func(r chi.Router) {
			r.Get("/", controllers.List(d.Residents.List, logg))
			r.Get("/{id}", controllers.Get(d.Residents.Get, logg))
			admin(r).Post("/", controllers.Create(d.Residents.Create, logg))
			admin(r).Put("/{id}", controllers.Update(d.Residents.Update, logg))
			admin(r).Delete("/{id}", controllers.Delete(d.Residents.Delete, logg))
		})

		r.Route("/fee-payments", func(r chi.Router) {
			r.Get("/", controllers.FeePaymentList(d.Fees, logg))
			r.Get("/{id}", controllers.Get(d.Fees.Get, logg))
			admin(r).Post("/", controllers.Create(d.Fees.Create, logg))
			admin(r).Put("/{id}", controllers.Update(d.Fees.Update, logg))
		})

		r.Route("/maintenance-requests", func(r chi.Router) {
			r.Get("/", controllers.MaintenanceList(d.Maintenance, logg))
			r.Get("/{id}", controllers.Get(d.Maintenance.Get, logg))
			admin(r).Post("/", controllers.Create(d.Maintenance.Create, logg))
			admin(r).Put("/{id}", controllers.Update(d.Maintenance.Update, logg))
		})

		r.Route("/blog-posts", func(r chi.Router) {
			r.Get("/", controllers.BlogPostList(d.Blog, logg))
			r.Get("/{id}", controllers.Get(d.Blog.Get, logg))
			admin(r).Post("/", controllers.Create(d.Blog.Create, logg))
			admin(r).Put("/{id}", controllers.Update(d.Blog.Update, logg))
			admin(r).Delete("/{id}", controllers.Delete(d.Blog.Delete, logg))
		})

		r.Route("/contact", func(r chi.Router) {
			r.Post("/", controllers.Create(d.Contact.Submit, logg))
			admin(r).Get("/", controllers.List(d.Contact.List, logg))
			admin(r).Put("/{id}", controllers.Update(d.Contact.UpdateStatus, logg))
		})

		r.Route("/admin/users", func(r chi.Router) {
			r.Use(middleware.RequireAuthenticated(logg), middleware.RequireAdmin(logg))
			r.Get("/", controllers.AdminUserList(d.Users, logg))
			r.Post("/", controllers.AdminUserCreate(d.Users, logg))
			r.Put("/{id}/password", controllers.AdminUserPassword(d.Users, logg))
			r.Delete("/{id}", controllers.AdminUserDelete(d.Users, logg))
		})

		admin(r).Get("/dashboard/stats", controllers.DashboardStats(d.Dashboard, logg))
	})

	return r
}
