package prefs_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tasklist/internal/config"
	"tasklist/internal/prefs"
)

func openBoth(t *testing.T) map[string]func(t *testing.T) prefs.Store {
	t.Helper()
	dir := t.TempDir()
	return map[string]func(t *testing.T) prefs.Store{
		"file": func(t *testing.T) prefs.Store {
			s, err := prefs.OpenFile(filepath.Join(dir, "prefs.json"))
			require.NoError(t, err)
			return s
		},
		"sqlite": func(t *testing.T) prefs.Store {
			s, err := prefs.OpenSQLite(filepath.Join(dir, "prefs.sqlite"))
			require.NoError(t, err)
			return s
		},
	}
}

func TestDarkMode_DefaultsToFalse(t *testing.T) {
	for name, open := range openBoth(t) {
		t.Run(name, func(t *testing.T) {
			s := open(t)
			defer s.Close()

			dark, err := prefs.LoadDarkMode(s)
			require.NoError(t, err)
			assert.False(t, dark)
		})
	}
}

func TestDarkMode_SurvivesReopen(t *testing.T) {
	for name, open := range openBoth(t) {
		t.Run(name, func(t *testing.T) {
			s := open(t)
			require.NoError(t, prefs.SaveDarkMode(s, true))
			require.NoError(t, s.Close())

			s = open(t)
			defer s.Close()
			dark, err := prefs.LoadDarkMode(s)
			require.NoError(t, err)
			assert.True(t, dark)

			require.NoError(t, prefs.SaveDarkMode(s, false))
			dark, err = prefs.LoadDarkMode(s)
			require.NoError(t, err)
			assert.False(t, dark)
		})
	}
}

func TestDarkMode_MalformedValueIsFalse(t *testing.T) {
	s, err := prefs.OpenFile(filepath.Join(t.TempDir(), "prefs.json"))
	require.NoError(t, err)
	require.NoError(t, s.Set(prefs.DarkModeKey, "not-a-bool"))

	dark, err := prefs.LoadDarkMode(s)
	require.NoError(t, err)
	assert.False(t, dark)
}

func TestFileStore_WritesJSONBoolean(t *testing.T) {
	path := filepath.Join(t.TempDir(), "prefs.json")
	s, err := prefs.OpenFile(path)
	require.NoError(t, err)
	require.NoError(t, prefs.SaveDarkMode(s, true))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.JSONEq(t, `{"darkMode":"true"}`, string(data))
}

func TestFileStore_CorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "prefs.json")
	require.NoError(t, os.WriteFile(path, []byte("{"), 0600))

	_, err := prefs.OpenFile(path)
	assert.Error(t, err)
}

func TestOpen_SelectsBackend(t *testing.T) {
	for _, backend := range []string{config.PrefsFile, config.PrefsSQLite} {
		t.Run(backend, func(t *testing.T) {
			cfg := &config.Config{Dir: filepath.Join(t.TempDir(), "nested"), PrefsBackend: backend}
			s, err := prefs.Open(cfg)
			require.NoError(t, err)
			defer s.Close()

			require.NoError(t, prefs.SaveDarkMode(s, true))
			_, err = os.Stat(cfg.PrefsPath())
			assert.NoError(t, err)
		})
	}
}

func TestOpen_UnknownBackend(t *testing.T) {
	cfg := &config.Config{Dir: t.TempDir(), PrefsBackend: "redis"}
	_, err := prefs.Open(cfg)
	assert.Error(t, err)
}
