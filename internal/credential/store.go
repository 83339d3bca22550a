// Package credential stores the catalog API key.
package credential

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"gorm.io/gorm"

	"github.com/justchokingaround/vidstream/internal/database"
)

// SettingKey is the settings row holding the API key
const SettingKey = "tmdb_api_key"

// ErrInvalidCredential is returned when saving an empty key
var ErrInvalidCredential = errors.New("please enter a valid API key")

// Store reads and writes the single API key
type Store interface {
	// Get returns the current key, "" when unset
	Get(ctx context.Context) (string, error)
	// Set persists key after trimming; empty input is rejected
	Set(ctx context.Context, key string) error
}

// SettingsStore persists the key in the settings table and keeps an
// in-memory copy for the session.
type SettingsStore struct {
	db *gorm.DB

	mu     sync.RWMutex
	cached string
	loaded bool
}

// NewSettingsStore creates a store backed by db
func NewSettingsStore(db *gorm.DB) *SettingsStore {
	return &SettingsStore{db: db}
}

// Get returns the persisted key or ""
func (s *SettingsStore) Get(ctx context.Context) (string, error) {
	s.mu.RLock()
	if s.loaded {
		key := s.cached
		s.mu.RUnlock()
		return key, nil
	}
	s.mu.RUnlock()

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.loaded {
		return s.cached, nil
	}

	key, err := database.GetSetting(s.db.WithContext(ctx), SettingKey)
	if err != nil {
		return "", fmt.Errorf("failed to read API key: %w", err)
	}
	s.cached = key
	s.loaded = true
	return key, nil
}

// Set validates, persists and caches key
func (s *SettingsStore) Set(ctx context.Context, key string) error {
	key = strings.TrimSpace(key)
	if key == "" {
		return ErrInvalidCredential
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := database.SaveSetting(s.db.WithContext(ctx), SettingKey, key); err != nil {
		return fmt.Errorf("failed to save API key: %w", err)
	}
	s.cached = key
	s.loaded = true
	return nil
}

// Clear removes the stored key
func (s *SettingsStore) Clear(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := database.DeleteSetting(s.db.WithContext(ctx), SettingKey); err != nil {
		return fmt.Errorf("failed to clear API key: %w", err)
	}
	s.cached = ""
	s.loaded = true
	return nil
}

// MemoryStore keeps the key in memory only
type MemoryStore struct {
	mu  sync.RWMutex
	key string
}

// NewMemoryStore returns a store seeded with key
func NewMemoryStore(key string) *MemoryStore {
	return &MemoryStore{key: strings.TrimSpace(key)}
}

// Get returns the key
func (m *MemoryStore) Get(context.Context) (string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.key, nil
}

// Set replaces the key
func (m *MemoryStore) Set(_ context.Context, key string) error {
	key = strings.TrimSpace(key)
	if key == "" {
		return ErrInvalidCredential
	}
	m.mu.Lock()
	m.key = key
	m.mu.Unlock()
	return nil
}

// Mask hides all but the last four characters of key
func Mask(key string) string {
	if key == "" {
		return "(not set)"
	}
	if len(key) <= 4 {
		return strings.Repeat("*", len(key))
	}
	return strings.Repeat("*", len(key)-4) + key[len(key)-4:]
}
