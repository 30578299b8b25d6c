// Package config handles the XDG configuration directory and client settings.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	// AppName is the application directory name.
	AppName = "tasklist"

	// EnvFile is the optional dotenv file inside the config directory.
	EnvFile = ".env"

	// DefaultBaseURL is the task collection resource used when none is configured.
	DefaultBaseURL = "http://127.0.0.1:8000/api/todos/"

	// Environment variables read by New.
	EnvBaseURL = "TASKLIST_URL"
	EnvTimeout = "TASKLIST_TIMEOUT"
	EnvPrefs   = "TASKLIST_PREFS"
)

// Preference store backends.
const (
	PrefsFile   = "file"
	PrefsSQLite = "sqlite"
)

// Config holds configuration paths and settings.
type Config struct {
	// Dir is the configuration directory path.
	Dir string

	// BaseURL is the task collection resource, always ending in "/".
	BaseURL string

	// Timeout bounds each remote call. Zero means no timeout.
	Timeout time.Duration

	// PrefsBackend selects the durable preference store.
	PrefsBackend string

	// Debug enables debug logging.
	Debug bool

	// Quiet suppresses informational output.
	Quiet bool

	// Logger receives diagnostics. Never nil after New.
	Logger *slog.Logger
}

// New creates a new Config with the default or specified config directory.
// If configDir is empty, uses XDG_CONFIG_HOME/tasklist or $HOME/.config/tasklist.
// A .env file in that directory is loaded first; it never overrides variables
// already present in the environment.
func New(configDir string) (*Config, error) {
	dir := configDir
	if dir == "" {
		dir = DefaultConfigDir()
	}

	if err := godotenv.Load(filepath.Join(dir, EnvFile)); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("invalid %s: %w", EnvFile, err)
	}

	cfg := &Config{
		Dir:          dir,
		BaseURL:      DefaultBaseURL,
		PrefsBackend: PrefsFile,
		Logger:       slog.New(slog.DiscardHandler),
	}

	if v := strings.TrimSpace(os.Getenv(EnvBaseURL)); v != "" {
		cfg.SetBaseURL(v)
	}
	if v := strings.TrimSpace(os.Getenv(EnvTimeout)); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil || d < 0 {
			return nil, fmt.Errorf("invalid %s: %s", EnvTimeout, v)
		}
		cfg.Timeout = d
	}
	if v := strings.ToLower(strings.TrimSpace(os.Getenv(EnvPrefs))); v != "" {
		if v != PrefsFile && v != PrefsSQLite {
			return nil, fmt.Errorf("invalid %s: %s", EnvPrefs, v)
		}
		cfg.PrefsBackend = v
	}
	return cfg, nil
}

// SetBaseURL sets the collection URL, normalising the trailing slash.
func (c *Config) SetBaseURL(u string) {
	u = strings.TrimSpace(u)
	if !strings.HasSuffix(u, "/") {
		u += "/"
	}
	c.BaseURL = u
}

// DefaultConfigDir returns the default configuration directory.
// Uses XDG_CONFIG_HOME if set, otherwise $HOME/.config.
func DefaultConfigDir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, AppName)
	}
	home, err := os.UserHomeDir()
	if err != nil {
		// Fallback to current directory if home can't be determined
		return AppName
	}
	return filepath.Join(home, ".config", AppName)
}

// PrefsPath returns the path of the preference store for the configured backend.
func (c *Config) PrefsPath() string {
	if c.PrefsBackend == PrefsSQLite {
		return filepath.Join(c.Dir, "prefs.sqlite")
	}
	return filepath.Join(c.Dir, "prefs.json")
}

// EnsureDir creates the config directory if it doesn't exist.
// Directory is created with mode 0700.
func (c *Config) EnsureDir() error {
	return os.MkdirAll(c.Dir, 0700)
}
