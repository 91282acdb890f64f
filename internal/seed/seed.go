package seed

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/multierr"

	"github.com/leaderturk/property-management/internal/storage"
	"github.com/leaderturk/property-management/pkg/config"
	"github.com/leaderturk/property-management/pkg/db/models"
	"github.com/leaderturk/property-management/pkg/enums"
	"github.com/leaderturk/property-management/pkg/logger"
	"github.com/leaderturk/property-management/pkg/security"
	"github.com/leaderturk/property-management/pkg/types"
)

const tempPasswordLength = 16

// Params bundles what seeding needs.
type Params struct {
	Store     storage.Storage
	App       config.AppConfig
	Password  config.PasswordConfig
	Bootstrap config.BootstrapConfig
	Logger    *logger.Logger
}

// Result summarizes a seeding run.
type Result struct {
	Admin     *models.User
	Generated string
	Skipped   bool
}

// EnsureAdmin returns the bootstrap admin, creating it when absent. When no
// password is configured outside production a temporary one is generated and
// returned in Result.Generated.
func EnsureAdmin(ctx context.Context, p Params) (Result, error) {
	username := strings.TrimSpace(p.Bootstrap.AdminUsername)
	if username == "" {
		return Result{}, fmt.Errorf("%s must not be empty", config.EnvBootstrapAdmin)
	}

	existing, err := p.Store.Users().GetByUsername(ctx, username)
	if err == nil {
		return Result{Admin: existing}, nil
	}
	if !errors.Is(err, storage.ErrNotFound) {
		return Result{}, fmt.Errorf("lookup admin: %w", err)
	}

	password := p.Bootstrap.AdminPassword
	generated := ""
	if password == "" {
		if p.App.IsProd() {
			return Result{}, fmt.Errorf("%s is required in production", config.EnvBootstrapSecret)
		}
		if password, err = security.GenerateTempPassword(tempPasswordLength); err != nil {
			return Result{}, fmt.Errorf("generate admin password: %w", err)
		}
		generated = password
	}

	hash, err := security.HashPassword(password, p.Password)
	if err != nil {
		return Result{}, fmt.Errorf("hash admin password: %w", err)
	}

	in := models.UserInput{
		Username:  &username,
		Password:  &hash,
		Role:      enums.RoleAdmin,
		FirstName: strPtr("Admin"),
		LastName:  strPtr("User"),
	}
	if email := strings.TrimSpace(p.Bootstrap.AdminEmail); email != "" {
		in.Email = &email
	}
	admin, err := p.Store.Users().Create(ctx, in)
	if err != nil {
		return Result{}, fmt.Errorf("create admin: %w", err)
	}
	return Result{Admin: admin, Generated: generated}, nil
}

// Run inserts the demo portfolio into an empty store. A store that already
// has buildings is left untouched.
func Run(ctx context.Context, p Params) (Result, error) {
	existing, err := p.Store.Buildings().List(ctx)
	if err != nil {
		return Result{}, fmt.Errorf("list buildings: %w", err)
	}
	if len(existing) > 0 {
		return Result{Skipped: true}, nil
	}

	res, err := EnsureAdmin(ctx, p)
	if err != nil {
		return Result{}, err
	}
	if res.Generated != "" && p.Logger != nil {
		p.Logger.Warn(p.Logger.WithFields(ctx, map[string]any{
			"username": *res.Admin.Username,
			"password": res.Generated,
		}), "seed.admin.temporary_password")
	}

	if err := demoPortfolio(ctx, p.Store, res.Admin.ID); err != nil {
		return res, err
	}

	if p.Logger != nil {
		p.Logger.Info(p.Logger.WithField(ctx, "admin_id", res.Admin.ID), "seed.completed")
	}
	return res, nil
}

func demoPortfolio(ctx context.Context, st storage.Storage, managerID string) error {
	gunes, err := st.Buildings().Create(ctx, models.BuildingInput{
		Name:       "Güneş Residans",
		Address:    "Melikgazi, Kayseri",
		TotalFlats: intPtr(24),
		MonthlyFee: moneyPtr("850.00"),
		ManagerID:  &managerID,
	})
	if err != nil {
		return fmt.Errorf("seed building: %w", err)
	}
	plaza, err := st.Buildings().Create(ctx, models.BuildingInput{
		Name:       "Kayseri Plaza",
		Address:    "Kocasinan, Kayseri",
		TotalFlats: intPtr(48),
		MonthlyFee: moneyPtr("1200.00"),
		ManagerID:  &managerID,
	})
	if err != nil {
		return fmt.Errorf("seed building: %w", err)
	}

	ahmet, errA := st.Residents().Create(ctx, models.ResidentInput{Name: "Ahmet Yılmaz", Email: "ahmet@email.com", Phone: "+90 532 123 45 67"})
	fatma, errF := st.Residents().Create(ctx, models.ResidentInput{Name: "Fatma Demir", Email: "fatma@email.com", Phone: "+90 543 987 65 43"})
	if err := multierr.Combine(errA, errF); err != nil {
		return fmt.Errorf("seed residents: %w", err)
	}

	flat12, err := st.Flats().Create(ctx, models.FlatInput{
		BuildingID: gunes.ID,
		FlatNumber: "12",
		Block:      strPtr("A"),
		Size:       intPtr(120),
		ResidentID: &ahmet.ID,
	})
	if err != nil {
		return fmt.Errorf("seed flat: %w", err)
	}
	if _, err := st.Flats().Create(ctx, models.FlatInput{
		BuildingID: plaza.ID,
		FlatNumber: "8",
		Block:      strPtr("B"),
		Size:       intPtr(95),
		ResidentID: &fatma.ID,
	}); err != nil {
		return fmt.Errorf("seed flat: %w", err)
	}

	if _, err := st.MaintenanceRequests().Create(ctx, models.MaintenanceRequestInput{
		FlatID:      flat12.ID,
		Description: "Banyo muslugu arızalı",
		Status:      enums.MaintenanceStatusPending,
		Priority:    enums.MaintenancePriorityHigh,
	}); err != nil {
		return fmt.Errorf("seed maintenance request: %w", err)
	}

	published := true
	var errs error
	for _, post := range []models.BlogPostInput{
		{
			Title:     "Kayseri'de Bina Yönetimi: Güvenilir ve Profesyonel Hizmetler",
			Content:   "Bina yönetimi konusunda uzman ekibimizle...",
			Excerpt:   strPtr("Kayseri'de profesyonel bina yönetimi hizmetleri hakkında bilgiler"),
			Category:  strPtr("Yönetim"),
			Published: &published,
		},
		{
			Title:     "Aidat Toplama ve Finansal Yönetim",
			Content:   "Bina yönetiminde finansal süreçler...",
			Excerpt:   strPtr("Aidat toplama ve finansal raporlama hakkında detaylar"),
			Category:  strPtr("Muhasebe"),
			Published: &published,
		},
	} {
		_, err := st.BlogPosts().Create(ctx, post)
		errs = multierr.Append(errs, err)
	}
	if errs != nil {
		return fmt.Errorf("seed blog posts: %w", errs)
	}
	return nil
}

func strPtr(s string) *string { return &s }
func intPtr(i int) *int       { return &i }

func moneyPtr(v string) *types.Money {
	m := types.MustMoney(v)
	return &m
}
