package main

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/leaderturk/property-management/internal/seed"
	"github.com/leaderturk/property-management/internal/storage"
	"github.com/leaderturk/property-management/internal/storage/sqlstore"
	"github.com/leaderturk/property-management/internal/users"
	"github.com/leaderturk/property-management/pkg/config"
	"github.com/leaderturk/property-management/pkg/db"
	"github.com/leaderturk/property-management/pkg/logger"
	"github.com/leaderturk/property-management/pkg/migrate"
	"github.com/leaderturk/property-management/pkg/security"
	"github.com/leaderturk/property-management/pkg/validation"
)

// env is the configuration and storage a command runs against.
type env struct {
	cfg   *config.Config
	logg  *logger.Logger
	store storage.Storage
}

func openEnv(cmd *cobra.Command) (*env, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	level := logger.ParseLevel(cfg.App.LogLevel)
	if debug, _ := cmd.Flags().GetBool("debug"); debug {
		level = zerolog.DebugLevel
	}
	logg := logger.New(logger.Options{
		ServiceName: "propctl",
		Level:       level,
		Output:      cmd.ErrOrStderr(),
	})

	// the memory driver would discard every write when the command exits
	if !cfg.Storage.IsSQL() {
		return nil, fmt.Errorf("%s must name a SQL driver, got %q", config.EnvStorageDriver, cfg.Storage.Driver)
	}

	ctx := cmd.Context()
	client, err := db.New(ctx, cfg.Storage.Driver, cfg.DB, logg)
	if err != nil {
		return nil, err
	}
	if err := migrate.MaybeRun(ctx, cfg, logg, client); err != nil {
		_ = client.Close()
		return nil, err
	}
	return &env{cfg: cfg, logg: logg, store: sqlstore.New(client)}, nil
}

func (e *env) seedParams() seed.Params {
	return seed.Params{
		Store:     e.store,
		App:       e.cfg.App,
		Password:  e.cfg.Password,
		Bootstrap: e.cfg.Bootstrap,
		Logger:    e.logg,
	}
}

func createAdminCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "create-admin",
		Short: "Create the bootstrap admin account if it does not exist",
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := openEnv(cmd)
			if err != nil {
				return err
			}
			defer e.store.Close()

			params := e.seedParams()
			if username, _ := cmd.Flags().GetString("username"); username != "" {
				params.Bootstrap.AdminUsername = username
			}
			if password, _ := cmd.Flags().GetString("password"); password != "" {
				params.Bootstrap.AdminPassword = password
			}

			res, err := seed.EnsureAdmin(cmd.Context(), params)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "admin %s (%s)\n", deref(res.Admin.Username), res.Admin.ID)
			if res.Generated != "" {
				fmt.Fprintf(out, "temporary password: %s\n", res.Generated)
			}
			return nil
		},
	}
	cmd.Flags().String("username", "", "admin username (defaults to "+config.EnvBootstrapAdmin+")")
	cmd.Flags().String("password", "", "admin password (defaults to "+config.EnvBootstrapSecret+")")
	return cmd
}

func setPasswordCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "set-password <username>",
		Short: "Reset a user's password",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			password, _ := cmd.Flags().GetString("password")
			if password == "" {
				var err error
				if password, err = readPassword(cmd.InOrStdin()); err != nil {
					return err
				}
			}
			req := users.ChangePasswordRequest{Password: password}
			if err := validation.Struct(&req); err != nil {
				return err
			}

			e, err := openEnv(cmd)
			if err != nil {
				return err
			}
			defer e.store.Close()

			svc, err := users.NewService(e.store.Users(), e.cfg.Password)
			if err != nil {
				return err
			}
			ctx := cmd.Context()
			u, err := e.store.Users().GetByUsername(ctx, args[0])
			if errors.Is(err, storage.ErrNotFound) {
				return fmt.Errorf("user %q not found", args[0])
			}
			if err != nil {
				return err
			}
			if _, err := svc.ChangePassword(ctx, u.ID, req); err != nil {
				return err
			}
			e.logg.Info(e.logg.WithField(ctx, "user_id", u.ID), "propctl.password_changed")
			fmt.Fprintf(cmd.OutOrStdout(), "password updated for %s\n", args[0])
			return nil
		},
	}
	cmd.Flags().String("password", "", "new password (read from stdin when empty)")
	return cmd
}

func seedCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "seed",
		Short: "Load demo buildings, flats and blog posts into an empty database",
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := openEnv(cmd)
			if err != nil {
				return err
			}
			defer e.store.Close()

			res, err := seed.Run(cmd.Context(), e.seedParams())
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if res.Skipped {
				fmt.Fprintln(out, "database already has buildings, nothing seeded")
				return nil
			}
			fmt.Fprintln(out, "demo data seeded")
			if res.Generated != "" {
				fmt.Fprintf(out, "admin temporary password: %s\n", res.Generated)
			}
			return nil
		},
	}
}

func hashPasswordCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "hash-password",
		Short: "Print the stored form of a password read from stdin",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return fmt.Errorf("load config: %w", err)
			}
			password, err := readPassword(cmd.InOrStdin())
			if err != nil {
				return err
			}
			hash, err := security.HashPassword(password, cfg.Password)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), hash)
			return nil
		},
	}
}

func readPassword(r io.Reader) (string, error) {
	raw, err := io.ReadAll(io.LimitReader(r, 1024))
	if err != nil {
		return "", fmt.Errorf("read password: %w", err)
	}
	password := strings.TrimRight(string(raw), "\r\n")
	if password == "" {
		return "", errors.New("password must not be empty")
	}
	return password, nil
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
