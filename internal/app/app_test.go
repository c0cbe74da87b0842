package app

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/five82/quill/internal/blogapi"
	"github.com/five82/quill/internal/blogapi/mocks"
	"github.com/five82/quill/internal/keystore"
	"github.com/five82/quill/internal/state"
)

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{Level: slog.LevelError}))
}

func TestBootstrap_LoadsCategoriesBlogsAndProfile(t *testing.T) {
	ctrl := gomock.NewController(t)
	api := mocks.NewMockService(ctrl)
	keys := keystore.NewMemory()
	ctx := context.Background()
	require.NoError(t, keys.Set(ctx, state.TokenKey, "tok"))

	store := state.New(api, keys, state.WithLogger(quietLogger()))
	require.NoError(t, store.Restore(ctx))

	api.EXPECT().Categories(gomock.Any()).Return([]blogapi.Category{{ID: "1", Name: "Go"}}, nil)
	api.EXPECT().ListBlogs(gomock.Any(), gomock.Any()).Return(blogapi.BlogPage{
		Blogs:      []blogapi.Blog{{ID: "b1", Title: "Hello"}},
		Page:       1,
		TotalPages: 1,
		TotalBlogs: 1,
	}, nil)
	api.EXPECT().Profile(gomock.Any(), "tok").Return(&blogapi.User{ID: "u1", Username: "ann"}, nil)

	bootstrap(ctx, store, quietLogger())

	snap := store.Snapshot()
	assert.True(t, snap.CategoriesLoaded)
	assert.Len(t, snap.Blogs, 1)
	require.NotNil(t, snap.User)
	assert.Equal(t, "ann", snap.User.Username)
	assert.False(t, snap.NeedsProfile())
	assert.False(t, snap.Pending())
}

func TestBootstrap_AnonymousSkipsProfileAndRecordsFailures(t *testing.T) {
	ctrl := gomock.NewController(t)
	api := mocks.NewMockService(ctrl)
	store := state.New(api, keystore.NewMemory(), state.WithLogger(quietLogger()))

	api.EXPECT().Categories(gomock.Any()).Return(nil, &blogapi.NetworkError{Err: errors.New("connection refused")})
	api.EXPECT().ListBlogs(gomock.Any(), gomock.Any()).Return(blogapi.BlogPage{}, &blogapi.APIError{Status: 500, Message: "boom"})

	bootstrap(context.Background(), store, quietLogger())

	snap := store.Snapshot()
	assert.Nil(t, snap.User)
	assert.Equal(t, "connection refused", snap.Op(state.OpCategories).Message())
	assert.Equal(t, "boom", snap.Op(state.OpListBlogs).Message())
}

func TestLogin_PersistsTokenAndLoadsProfile(t *testing.T) {
	ctrl := gomock.NewController(t)
	api := mocks.NewMockService(ctrl)
	keys := keystore.NewMemory()
	store := state.New(api, keys, state.WithLogger(quietLogger()))
	ctx := context.Background()

	creds := blogapi.Credentials{Email: "a@b.c", Password: "pw"}
	api.EXPECT().Login(gomock.Any(), creds).Return("tok", nil)
	api.EXPECT().Profile(gomock.Any(), "tok").Return(&blogapi.User{ID: "u1", Username: "ann"}, nil)

	user, err := login(ctx, store, creds)
	require.NoError(t, err)
	assert.Equal(t, "ann", user.Username)

	token, err := keys.Get(ctx, state.TokenKey)
	require.NoError(t, err)
	assert.Equal(t, "tok", token)
}

func TestLogin_ValidationNeverCallsServer(t *testing.T) {
	ctrl := gomock.NewController(t)
	api := mocks.NewMockService(ctrl)
	store := state.New(api, keystore.NewMemory(), state.WithLogger(quietLogger()))

	_, err := login(context.Background(), store, blogapi.Credentials{Email: "a@b.c"})
	require.Error(t, err)
	assert.True(t, state.IsValidation(err))
}

func TestSetupLogger_WritesJSONToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "quill.log")

	logger, closer := setupLogger("debug", path)
	require.NotNil(t, closer)
	logger.Debug("hello", "op", "list_blogs")
	require.NoError(t, closer.Close())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	line := strings.TrimSpace(string(data))
	assert.Contains(t, line, `"msg":"hello"`)
	assert.Contains(t, line, `"op":"list_blogs"`)
}

func TestSetupLogger_UnwritablePathDiscards(t *testing.T) {
	dir := t.TempDir()
	blocker := filepath.Join(dir, "file")
	require.NoError(t, os.WriteFile(blocker, []byte("x"), 0o644))

	logger, closer := setupLogger("info", filepath.Join(blocker, "quill.log"))
	assert.Nil(t, closer)
	require.NotNil(t, logger)
	logger.Info("dropped")
}

func TestParseLevel(t *testing.T) {
	tests := map[string]slog.Level{
		"debug":  slog.LevelDebug,
		" WARN ": slog.LevelWarn,
		"error":  slog.LevelError,
		"info":   slog.LevelInfo,
		"":       slog.LevelInfo,
		"bogus":  slog.LevelInfo,
	}
	for in, want := range tests {
		if got := parseLevel(in); got != want {
			t.Fatalf("parseLevel(%q) = %v, want %v", in, got, want)
		}
	}
}

func TestOpen_WiresStoreAndRestoresSession(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Chdir(t.TempDir())
	t.Setenv("QUILL_API_URL", "")
	t.Setenv("QUILL_LOG_LEVEL", "")
	t.Setenv("QUILL_REQUEST_TIMEOUT", "")

	dataDir := filepath.Join(home, "data")
	configPath := filepath.Join(home, "config.toml")
	config := "api_url = \"http://127.0.0.1:9\"\n" +
		"data_dir = \"" + dataDir + "\"\n" +
		"log_file = \"" + filepath.Join(home, "quill.log") + "\"\n"
	require.NoError(t, os.WriteFile(configPath, []byte(config), 0o644))

	ctx := context.Background()
	prefsPath := filepath.Join(home, "prefs.toml")
	require.NoError(t, os.WriteFile(prefsPath, []byte("page_size = 7\n"), 0o644))

	db, err := keystore.OpenSQLite(filepath.Join(dataDir, "session.db"))
	require.NoError(t, err)
	require.NoError(t, db.Set(ctx, state.TokenKey, "persisted"))
	require.NoError(t, db.Close())

	env, err := Open(ctx, Options{ConfigPath: configPath, PrefsPath: prefsPath})
	require.NoError(t, err)
	t.Cleanup(func() { _ = env.Close() })

	assert.Equal(t, "http://127.0.0.1:9", env.Client.BaseURL())
	snap := env.Store.Snapshot()
	assert.Equal(t, "persisted", snap.Token)
	assert.True(t, snap.NeedsProfile())
	assert.Equal(t, 7, snap.Pagination.PageSize)

	env.Logout(ctx)
	assert.False(t, env.Store.Snapshot().LoggedIn())
}
