package app

import (
	"context"
	"fmt"

	"github.com/five82/quill/internal/blogapi"
	"github.com/five82/quill/internal/state"
)

// Login signs in with creds, persists the token in the session store and
// loads the profile. It is used by the `quill login` subcommand.
func (e *Env) Login(ctx context.Context, creds blogapi.Credentials) (*blogapi.User, error) {
	return login(ctx, e.Store, creds)
}

// Logout clears the persisted session.
func (e *Env) Logout(ctx context.Context) {
	e.Store.Logout(ctx)
	e.Logger.Info("logged out")
}

func login(ctx context.Context, store *state.Store, creds blogapi.Credentials) (*blogapi.User, error) {
	if _, err := store.Login(ctx, creds); err != nil {
		return nil, err
	}
	user, err := store.FetchProfile(ctx)
	if err != nil {
		return nil, fmt.Errorf("load profile: %w", err)
	}
	return user, nil
}
