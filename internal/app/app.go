package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/five82/quill/internal/blogapi"
	"github.com/five82/quill/internal/config"
	"github.com/five82/quill/internal/keystore"
	"github.com/five82/quill/internal/prefs"
	"github.com/five82/quill/internal/state"
	"github.com/five82/quill/internal/ui"
)

// Options configure the quill application.
type Options struct {
	ConfigPath string
	PrefsPath  string // empty uses default ~/.config/quill/prefs.toml
}

// Env is the wired runtime shared by the TUI and the CLI subcommands.
type Env struct {
	Config    config.Config
	Prefs     prefs.Prefs
	PrefsPath string
	Logger    *slog.Logger
	Client    *blogapi.Client
	Store     *state.Store

	closers []io.Closer
}

// Open loads configuration, opens the log file and the session key store,
// builds the API client and the state store, and restores a persisted
// session token.
func Open(ctx context.Context, opts Options) (*Env, error) {
	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	userPrefs, _ := prefs.Load(opts.PrefsPath)

	env := &Env{Config: cfg, Prefs: userPrefs, PrefsPath: opts.PrefsPath}

	logger, logCloser := setupLogger(cfg.LogLevel, cfg.LogFile)
	env.Logger = logger
	if logCloser != nil {
		env.closers = append(env.closers, logCloser)
	}

	keys := openKeyStore(cfg.SessionDBPath(), logger)
	if c, ok := keys.(io.Closer); ok {
		env.closers = append(env.closers, c)
	}

	client, err := blogapi.NewClient(cfg.APIURL,
		blogapi.WithTimeout(cfg.RequestTimeout),
		blogapi.WithLogger(logger),
	)
	if err != nil {
		_ = env.Close()
		return nil, fmt.Errorf("init blog client: %w", err)
	}
	env.Client = client

	env.Store = state.New(client, keys, state.WithLogger(logger))
	env.Store.SetPageSize(userPrefs.PageSize)
	if err := env.Store.Restore(ctx); err != nil {
		logger.Warn("session restore failed", "error", err)
	}

	logger.Info("quill started", "api_url", client.BaseURL(), "page_size", userPrefs.PageSize)
	return env, nil
}

// Close releases the key store and the log file.
func (e *Env) Close() error {
	var errs []error
	for i := len(e.closers) - 1; i >= 0; i-- {
		if err := e.closers[i].Close(); err != nil {
			errs = append(errs, err)
		}
	}
	e.closers = nil
	return errors.Join(errs...)
}

// Run boots the quill TUI until the context is cancelled.
func Run(ctx context.Context, opts Options) error {
	env, err := Open(ctx, opts)
	if err != nil {
		return err
	}
	defer func() { _ = env.Close() }()

	// Initial load runs behind the UI; the views render pending state.
	go bootstrap(ctx, env.Store, env.Logger)

	return ui.Run(ui.Options{
		Context:   ctx,
		Store:     env.Store,
		Config:    &env.Config,
		ThemeName: env.Prefs.Theme,
		PrefsPath: env.PrefsPath,
		Prefs:     env.Prefs,
		APIURL:    env.Client.BaseURL(),
	})
}

// setupLogger builds a JSON logger writing to path. The TUI owns stdout, so
// when the file cannot be opened logs are discarded.
func setupLogger(level, path string) (*slog.Logger, io.Closer) {
	opts := &slog.HandlerOptions{Level: parseLevel(level)}

	if strings.TrimSpace(path) == "" {
		return slog.New(slog.NewJSONHandler(io.Discard, opts)), nil
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return slog.New(slog.NewJSONHandler(io.Discard, opts)), nil
	}
	file, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return slog.New(slog.NewJSONHandler(io.Discard, opts)), nil
	}
	return slog.New(slog.NewJSONHandler(file, opts)), file
}

func parseLevel(level string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// openKeyStore opens the sqlite session store. A store that cannot be opened
// degrades to an in-memory one so the client still runs without persistence.
func openKeyStore(path string, logger *slog.Logger) keystore.Store {
	db, err := keystore.OpenSQLite(path)
	if err != nil {
		logger.Warn("session store unavailable, using memory", "path", path, "error", err)
		return keystore.NewMemory()
	}
	return db
}
