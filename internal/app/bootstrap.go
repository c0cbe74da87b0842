package app

import (
	"context"
	"errors"
	"log/slog"
	"sync"

	"github.com/five82/quill/internal/state"
)

// bootstrap performs the initial load: categories, the first page of the
// main listing and, when a restored token is waiting for it, the profile.
// The three requests run concurrently; failures are recorded in the store's
// lifecycle slots and logged, never returned.
func bootstrap(ctx context.Context, store *state.Store, logger *slog.Logger) {
	var wg sync.WaitGroup
	run := func(name string, fn func(context.Context) error) {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if err := fn(ctx); err != nil && !errors.Is(err, context.Canceled) && !errors.Is(err, state.ErrSuperseded) {
				logger.Warn("initial load failed", "step", name, "error", err)
			}
		}()
	}

	run("categories", func(ctx context.Context) error {
		_, err := store.Categories(ctx)
		return err
	})
	run("blogs", func(ctx context.Context) error {
		_, err := store.ReloadBlogs(ctx)
		return err
	})
	if store.Snapshot().NeedsProfile() {
		run("profile", func(ctx context.Context) error {
			_, err := store.FetchProfile(ctx)
			return err
		})
	}

	wg.Wait()
	logger.Debug("initial load complete")
}
