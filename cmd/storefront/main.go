package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/JonMunkholm/storefront/internal/config"
	"github.com/JonMunkholm/storefront/internal/core"
	_ "github.com/JonMunkholm/storefront/internal/core/lists" // Register all lists
	"github.com/JonMunkholm/storefront/internal/fixtures"
	"github.com/JonMunkholm/storefront/internal/logging"
	"github.com/JonMunkholm/storefront/internal/store"
	"github.com/JonMunkholm/storefront/internal/web"
)

func main() {
	if err := newRootCommand().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// app carries what every subcommand needs once the environment is loaded.
type app struct {
	cfg *config.Config
}

func newRootCommand() *cobra.Command {
	a := &app{}

	cmd := &cobra.Command{
		Use:           "storefront",
		Short:         "Storefront admin, seller and customer list pages",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(_ *cobra.Command, _ []string) error {
			return a.load()
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.serve(cmd.Context())
		},
	}
	cmd.AddCommand(a.newServeCommand())
	cmd.AddCommand(a.newMigrateCommand())
	cmd.AddCommand(a.newSeedCommand())
	cmd.AddCommand(a.newListsCommand())
	return cmd
}

// load reads .env and the environment, then sets up logging.
func (a *app) load() error {
	// Overload lets .env win over variables already set in the shell
	if err := godotenv.Overload(); err != nil {
		slog.Debug("no .env file found, using environment variables")
	}

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load configuration: %w", err)
	}
	logging.Setup(cfg.Logging.Level, cfg.Logging.Format)
	core.ActionTimeout = cfg.Table.ActionTimeout

	a.cfg = cfg
	return nil
}

func (a *app) newServeCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP server (default)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.serve(cmd.Context())
		},
	}
}

// openBackend returns the record store: PostgreSQL when a database URL is
// configured, otherwise the embedded fixtures in memory. The returned
// cleanup func must be called when done.
func (a *app) openBackend(ctx context.Context) (core.Backend, func(), error) {
	if a.cfg.Database.URL == "" {
		mem, err := core.LoadFixtures(fixtures.FS)
		if err != nil {
			return nil, nil, err
		}
		slog.Info("using in-memory fixtures", "kinds", len(mem.Kinds()))
		return mem, func() {}, nil
	}

	pool, err := store.Open(ctx, a.cfg.Database)
	if err != nil {
		return nil, nil, err
	}
	slog.Info("connected to database", "max_conns", a.cfg.Database.MaxConns)

	var backend core.Backend = store.NewPostgres(pool)
	if a.cfg.Cache.Enabled {
		backend = core.NewCachedBackend(backend, a.cfg.Cache.Size, a.cfg.Cache.TTL)
	}
	return backend, pool.Close, nil
}

func (a *app) serve(ctx context.Context) error {
	cfg := a.cfg
	slog.Info("configuration loaded",
		"port", cfg.Server.Port,
		"database", cfg.Database.URL != "",
		"cache_enabled", cfg.Cache.Enabled,
		"rate_limit_enabled", cfg.Rate.Enabled,
		"locale", cfg.Locale.Default,
	)

	backend, closeBackend, err := a.openBackend(ctx)
	if err != nil {
		return err
	}
	defer closeBackend()

	opts := []core.Option{
		core.WithAccount(core.PortalSeller, cfg.Accounts.Seller),
		core.WithAccount(core.PortalCustomer, cfg.Accounts.Customer),
		core.WithMaxPerPage(cfg.Table.MaxItemsPerPage),
		core.WithActionLimiter(core.NewActionLimiter(cfg.Table.MaxConcurrentActions, cfg.Table.ActionQueueWait)),
	}
	if cfg.Table.AuditLog {
		opts = append(opts, core.WithAuditLog())
	}
	service := core.NewService(backend, opts...)

	slog.Info("lists registered",
		"count", core.ListCount(),
		"portals", len(core.Portals()),
	)
	for _, p := range core.Portals() {
		slog.Debug("portal", "portal", p, "lists", len(core.ByPortal(p)))
	}

	server := web.NewServer(service, cfg)

	// Graceful shutdown
	stopped := make(chan struct{})
	go func() {
		defer close(stopped)

		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		<-sigCh

		slog.Info("shutting down...")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
		defer cancel()

		if err := server.Shutdown(shutdownCtx); err != nil {
			slog.Error("shutdown error", "error", err)
		}

		// Server.Shutdown stops new requests; let running actions finish writing
		if err := service.WaitForActions(shutdownCtx); err != nil {
			slog.Warn("row actions did not complete in time", "error", err)
		}
	}()

	slog.Info("server starting", "addr", cfg.Server.Addr())
	if err := server.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	<-stopped
	slog.Info("server stopped")
	return nil
}

// openPool connects to the configured database, which the migrate and seed
// commands require.
func (a *app) openPool(ctx context.Context) (*pgxpool.Pool, error) {
	if a.cfg.Database.URL == "" {
		return nil, errors.New("DATABASE_URL is not set")
	}
	return store.Open(ctx, a.cfg.Database)
}
