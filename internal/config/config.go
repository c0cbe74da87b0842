package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	toml "github.com/pelletier/go-toml/v2"
)

// Config holds quill's runtime settings.
type Config struct {
	APIURL         string
	RequestTimeout time.Duration
	LogLevel       string
	LogFile        string
	DataDir        string
}

const (
	defaultConfigPath = "~/.config/quill/config.toml"
	defaultAPIURL     = "https://blog-api.srengchipor.dev"
	defaultLogLevel   = "info"
	defaultLogFile    = "~/.local/state/quill/quill.log"
	defaultDataDir    = "~/.local/share/quill"

	envAPIURL         = "QUILL_API_URL"
	envLogLevel       = "QUILL_LOG_LEVEL"
	envRequestTimeout = "QUILL_REQUEST_TIMEOUT"
)

// Load reads the config file at path (or the default location), applies
// defaults for anything missing, then applies environment overrides. A .env
// file in the working directory is loaded first when present.
func Load(path string) (Config, error) {
	_ = godotenv.Load()

	resolved, err := resolvePath(path)
	if err != nil {
		return Config{}, err
	}

	var raw struct {
		APIURL         string `toml:"api_url"`
		RequestTimeout string `toml:"request_timeout"`
		LogLevel       string `toml:"log_level"`
		LogFile        string `toml:"log_file"`
		DataDir        string `toml:"data_dir"`
	}

	file, err := os.Open(resolved)
	switch {
	case errors.Is(err, os.ErrNotExist):
	case err != nil:
		return Config{}, fmt.Errorf("open config: %w", err)
	default:
		defer file.Close()
		bytes, err := io.ReadAll(file)
		if err != nil {
			return Config{}, fmt.Errorf("read config: %w", err)
		}
		expanded := os.ExpandEnv(string(bytes))
		if err := toml.Unmarshal([]byte(expanded), &raw); err != nil {
			return Config{}, fmt.Errorf("parse config: %w", err)
		}
	}

	if v, ok := os.LookupEnv(envAPIURL); ok && strings.TrimSpace(v) != "" {
		raw.APIURL = v
	}
	if v, ok := os.LookupEnv(envLogLevel); ok && strings.TrimSpace(v) != "" {
		raw.LogLevel = v
	}
	if v, ok := os.LookupEnv(envRequestTimeout); ok && strings.TrimSpace(v) != "" {
		raw.RequestTimeout = v
	}

	cfg := Config{
		APIURL:   strings.TrimSpace(raw.APIURL),
		LogLevel: strings.ToLower(strings.TrimSpace(raw.LogLevel)),
		LogFile:  strings.TrimSpace(raw.LogFile),
		DataDir:  strings.TrimSpace(raw.DataDir),
	}
	if timeout := strings.TrimSpace(raw.RequestTimeout); timeout != "" {
		d, err := time.ParseDuration(timeout)
		if err != nil {
			return Config{}, fmt.Errorf("parse request_timeout: %w", err)
		}
		if d < 0 {
			return Config{}, fmt.Errorf("parse request_timeout: negative duration %s", d)
		}
		cfg.RequestTimeout = d
	}
	cfg.setDefaults()
	return cfg, nil
}

func (c *Config) setDefaults() {
	if c.APIURL == "" {
		c.APIURL = defaultAPIURL
	}
	switch c.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		c.LogLevel = defaultLogLevel
	}
	if c.LogFile == "" {
		c.LogFile = defaultLogFile
	}
	c.LogFile = mustExpand(c.LogFile)
	if c.DataDir == "" {
		c.DataDir = defaultDataDir
	}
	c.DataDir = mustExpand(c.DataDir)
}

// SessionDBPath returns the path of the key store holding the session token.
func (c Config) SessionDBPath() string {
	if strings.TrimSpace(c.DataDir) == "" {
		return mustExpand(defaultDataDir + "/session.db")
	}
	return filepath.Join(c.DataDir, "session.db")
}

func resolvePath(path string) (string, error) {
	if strings.TrimSpace(path) == "" {
		return expandPath(defaultConfigPath)
	}
	return expandPath(path)
}

func mustExpand(path string) string {
	expanded, err := expandPath(path)
	if err != nil {
		return path
	}
	return expanded
}

func expandPath(path string) (string, error) {
	trimmed := strings.TrimSpace(path)
	if trimmed == "" {
		return "", fmt.Errorf("path is empty")
	}
	if strings.HasPrefix(trimmed, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		trimmed = filepath.Join(home, strings.TrimPrefix(trimmed, "~"))
	}
	return filepath.Abs(trimmed)
}
