package cli

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/robfig/cron/v3"
	"github.com/spf13/cobra"

	"github.com/evcraddock/kwartayo/internal/auth"
	"github.com/evcraddock/kwartayo/internal/config"
	"github.com/evcraddock/kwartayo/internal/db"
	"github.com/evcraddock/kwartayo/internal/kv"
	"github.com/evcraddock/kwartayo/internal/listing"
	"github.com/evcraddock/kwartayo/internal/logging"
	"github.com/evcraddock/kwartayo/internal/message"
	"github.com/evcraddock/kwartayo/internal/metrics"
	"github.com/evcraddock/kwartayo/internal/moderation"
	"github.com/evcraddock/kwartayo/internal/web"
)

type serveFlags struct {
	addr    string
	storage string
	dbPath  string
	dev     bool
}

func newServeCmd() *cobra.Command {
	var f serveFlags

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the web UI",
		Long:  "Start the HTTP server for the web UI, the JSON API and /metrics. Stops gracefully on SIGINT or SIGTERM.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(flagConfig, "")
			if err != nil {
				return err
			}
			f.apply(cmd, cfg)
			if err := cfg.Validate(); err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return runServe(ctx, cfg)
		},
	}

	cmd.Flags().StringVar(&f.addr, "addr", "", "listen address (overrides server.addr)")
	cmd.Flags().StringVar(&f.storage, "storage", "", "session storage backend: memory, sqlite or redis")
	cmd.Flags().StringVar(&f.dbPath, "db", "", "SQLite database path for the sqlite backend")
	cmd.Flags().BoolVar(&f.dev, "dev", false, "human-readable debug logging")

	return cmd
}

// apply overrides cfg with the flags set on the command line.
func (f serveFlags) apply(cmd *cobra.Command, cfg *config.Config) {
	flags := cmd.Flags()
	if flags.Changed("addr") {
		cfg.Server.Addr = f.addr
	}
	if flags.Changed("storage") {
		cfg.Storage.Backend = f.storage
	}
	if flags.Changed("db") {
		cfg.Storage.SQLitePath = f.dbPath
	}
	if flags.Changed("dev") {
		cfg.Server.DevMode = f.dev
	}
}

func runServe(ctx context.Context, cfg *config.Config) error {
	logging.Setup(cfg.Server.DevMode)

	store, closer, err := openStorage(ctx, cfg.Storage)
	if err != nil {
		return err
	}
	defer func() {
		if err := closer.Close(); err != nil {
			slog.Warn("closing storage", "error", err)
		}
	}()

	admin, err := auth.NewAdminAuth(auth.AdminConfig{
		Email:    cfg.Admin.Email,
		Password: cfg.Admin.Password,
		Secret:   cfg.Admin.Secret,
		TokenTTL: cfg.Admin.TokenTTL,
	})
	if err != nil {
		return err
	}
	if cfg.Admin.Secret == "" {
		slog.Warn("no admin secret configured; admin sessions end on restart")
	}

	msgs := message.NewService(message.NewMemoryRepository(), cfg.Messages.ReplyDelay)
	defer msgs.Close()

	sessions := auth.NewSessionStore(store, cfg.Session.TTL)
	m := metrics.New()

	srv, err := web.NewServer(web.Options{
		Listings:   listing.NewFixtureRepository(),
		Messages:   msgs,
		Moderation: moderation.NewService(moderation.NewMemoryRepository()),
		Sessions:   sessions,
		Auth:       auth.Options{Delay: cfg.Auth.LoginDelay},
		Admin:      admin,
		Metrics:    m,
	})
	if err != nil {
		return fmt.Errorf("creating server: %w", err)
	}

	sweeper, err := startSweeper(cfg.Session.SweepSchedule, sessions, m)
	if err != nil {
		return err
	}
	defer func() { <-sweeper.Stop().Done() }()

	slog.Info("kwartayo starting", "version", Version, "storage", cfg.Storage.Backend)
	return srv.ListenAndServe(ctx, cfg.Server.Addr)
}

// openStorage connects the configured session storage backend. The
// returned closer releases its connections.
func openStorage(ctx context.Context, cfg config.StorageConfig) (kv.Store, io.Closer, error) {
	switch cfg.Backend {
	case config.BackendSQLite:
		path := cfg.SQLitePath
		if path == "" {
			var err error
			if path, err = db.DefaultPath(); err != nil {
				return nil, nil, err
			}
		}
		database, err := db.Open(path)
		if err != nil {
			return nil, nil, err
		}
		slog.Info("using sqlite session storage", "path", path)
		return kv.NewSQLite(database), database, nil
	case config.BackendRedis:
		r, err := kv.NewRedis(ctx, kv.RedisOptions{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if err != nil {
			return nil, nil, err
		}
		slog.Info("using redis session storage", "addr", cfg.Redis.Addr)
		return r, r, nil
	default:
		return kv.NewMemory(), closeFunc(func() error { return nil }), nil
	}
}

type closeFunc func() error

func (f closeFunc) Close() error { return f() }

// startSweeper schedules removal of expired session data.
func startSweeper(schedule string, sessions *auth.SessionStore, m *metrics.Metrics) (*cron.Cron, error) {
	c := cron.New()
	if _, err := c.AddFunc(schedule, func() { sweep(context.Background(), sessions, m) }); err != nil {
		return nil, fmt.Errorf("scheduling session sweep %q: %w", schedule, err)
	}
	c.Start()
	return c, nil
}

func sweep(ctx context.Context, sessions *auth.SessionStore, m *metrics.Metrics) {
	n, err := sessions.Cleanup(ctx)
	if err != nil {
		slog.Error("session sweep", "error", err)
		return
	}
	m.Swept(n)
	if n > 0 {
		slog.Info("expired session data removed", "keys", n)
	}
}
