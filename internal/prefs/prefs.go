// Package prefs provides the durable key-value store for client preferences.
package prefs

import (
	"encoding/json"
	"fmt"

	"tasklist/internal/config"
)

// DarkModeKey holds the dark-mode preference as a JSON boolean.
const DarkModeKey = "darkMode"

// Store is a small durable key-value store.
type Store interface {
	// Get returns the value for key and whether it was present.
	Get(key string) (string, bool, error)

	// Set writes value for key durably before returning.
	Set(key, value string) error

	// Close releases the underlying resources.
	Close() error
}

// Open opens the store selected by cfg.PrefsBackend, creating the config
// directory when needed.
func Open(cfg *config.Config) (Store, error) {
	if err := cfg.EnsureDir(); err != nil {
		return nil, fmt.Errorf("create config directory: %w", err)
	}
	switch cfg.PrefsBackend {
	case "", config.PrefsFile:
		return OpenFile(cfg.PrefsPath())
	case config.PrefsSQLite:
		return OpenSQLite(cfg.PrefsPath())
	default:
		return nil, fmt.Errorf("unknown prefs backend: %s", cfg.PrefsBackend)
	}
}

// LoadDarkMode reads the dark-mode flag. Absent or unreadable values are false.
func LoadDarkMode(s Store) (bool, error) {
	v, ok, err := s.Get(DarkModeKey)
	if err != nil || !ok {
		return false, err
	}
	var dark bool
	if err := json.Unmarshal([]byte(v), &dark); err != nil {
		return false, nil
	}
	return dark, nil
}

// SaveDarkMode persists the dark-mode flag.
func SaveDarkMode(s Store, dark bool) error {
	data, _ := json.Marshal(dark)
	return s.Set(DarkModeKey, string(data))
}
