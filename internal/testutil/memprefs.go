package testutil

import "sync"

// MemPrefs is an in-memory prefs.Store.
type MemPrefs struct {
	mu     sync.Mutex
	values map[string]string

	// SetErr, when set, makes every Set fail.
	SetErr error
}

// NewMemPrefs creates an empty MemPrefs.
func NewMemPrefs() *MemPrefs {
	return &MemPrefs{values: make(map[string]string)}
}

func (m *MemPrefs) Get(key string) (string, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	v, ok := m.values[key]
	return v, ok, nil
}

func (m *MemPrefs) Set(key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.SetErr != nil {
		return m.SetErr
	}
	m.values[key] = value
	return nil
}

func (m *MemPrefs) Close() error { return nil }
