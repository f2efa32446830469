package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"

	"github.com/alexanderramin/ejournal/internal/api"
	"github.com/alexanderramin/ejournal/internal/cli"
	"github.com/alexanderramin/ejournal/internal/db"
	"github.com/alexanderramin/ejournal/internal/domain"
	"github.com/alexanderramin/ejournal/internal/editor"
	"github.com/alexanderramin/ejournal/internal/persist"
	"github.com/alexanderramin/ejournal/internal/preferences"
	"github.com/alexanderramin/ejournal/internal/store"
	"github.com/alexanderramin/ejournal/internal/transport"
	"github.com/kelseyhightower/envconfig"
	"github.com/mattn/go-isatty"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// config holds the process settings outside the transport.
type config struct {
	Debug    bool   `envconfig:"DEBUG" default:"false"`
	DB       string `envconfig:"DB"`
	UserID   int    `envconfig:"USER_ID"`
	Username string `envconfig:"USERNAME"`
}

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	var cfg config
	if err := envconfig.Process("EJOURNAL", &cfg); err != nil {
		return fmt.Errorf("processing config: %w", err)
	}
	transportCfg, err := transport.LoadConfig()
	if err != nil {
		return err
	}

	logger, err := newLogger(cfg.Debug)
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	// Determine DB path: env var or default ~/.ejournal/ejournal.db
	dbPath := cfg.DB
	if dbPath == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return fmt.Errorf("finding home directory: %w", err)
		}
		dbPath = filepath.Join(home, ".ejournal", "ejournal.db")
	}

	database, err := db.OpenDB(dbPath)
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer database.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	observer := transport.MultiObserver{transport.NewToastObserver(os.Stderr)}
	if transportCfg.LogCalls {
		observer = append(observer, transport.NewLogObserver(logger))
	}
	client := api.New(transport.NewHTTPClient(transportCfg, observer))

	persister := persist.New(db.NewSQLiteUnitOfWork(database, db.WithTxLogger(logger)), persist.WithLogger(logger))
	if err := persister.BindServer(ctx, transportCfg.BaseURL); err != nil {
		return fmt.Errorf("binding client state: %w", err)
	}
	if id, err := persister.InstanceID(ctx); err == nil {
		logger = logger.With(zap.String("instance_id", id))
	}

	st := store.New(client, store.WithLogger(logger))
	prefs := preferences.New(client.Preferences, preferences.WithLogger(logger))
	user, err := persister.Hydrate(ctx, st, prefs)
	if err != nil {
		return err
	}
	user = resolveUser(user, cfg, transportCfg)
	if user != nil {
		prefs.SetUser(user.ID)
		if len(prefs.Snapshot().Saved) == 0 {
			hydrateSavedPreferences(ctx, client, prefs, user.ID, logger)
		}
	}

	interactive := func() bool {
		return isatty.IsTerminal(os.Stdin.Fd()) || isatty.IsCygwinTerminal(os.Stdin.Fd())
	}

	app := &cli.App{
		Store:       st,
		Editor:      editor.New(st, editor.WithLogger(logger), editor.WithConfirmer(cli.NewConfirmer(interactive, os.Stderr))),
		Preferences: prefs,
		Persist:     persister,
		User:        user,
		Log:         logger,
	}

	return cli.NewRootCmd(app).ExecuteContext(ctx)
}

func newLogger(debug bool) (*zap.Logger, error) {
	zcfg := zap.NewProductionConfig()
	zcfg.Level = zap.NewAtomicLevelAt(zapcore.WarnLevel)
	if debug {
		zcfg.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
	}
	logger, err := zcfg.Build()
	if err != nil {
		return nil, fmt.Errorf("initializing logger: %w", err)
	}
	return logger, nil
}

// resolveUser prefers the configured identity over the stored one.
func resolveUser(stored *domain.User, cfg config, tc transport.Config) *domain.User {
	if cfg.UserID <= 0 {
		return stored
	}
	if stored != nil && stored.ID == cfg.UserID {
		u := *stored
		u.Token = tc.Token
		return &u
	}
	return &domain.User{ID: cfg.UserID, Username: cfg.Username, Token: tc.Token}
}

func hydrateSavedPreferences(ctx context.Context, client *api.Client, prefs *preferences.Preferences, uID int, logger *zap.Logger) {
	saved, err := client.Preferences.Get(ctx, uID)
	if err != nil {
		logger.Warn("fetching preferences failed", zap.Int("user_id", uID), zap.Error(err))
		return
	}
	if err := prefs.Hydrate(saved); err != nil {
		logger.Warn("hydrating preferences failed", zap.Error(err))
	}
}
