package storage

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"sync"
)

// Well-known keys for collaborator-owned state.
const (
	KeyCreditsRemaining = "credits_remaining"
	KeyAPIBaseOverride  = "api_base_override"
	KeyCachedToken      = "cached_token"
)

// Store is a small persistent key/value capability backed by a JSON file.
// Collaborator-owned state (last-known credit count, cached credential,
// API base override) lives here; the discovery engine itself never touches
// disk directly.
type Store struct {
	filePath string
	values   map[string]string
	mu       sync.RWMutex
}

// NewStore opens (or creates) the store under dataDir.
func NewStore(dataDir string) (*Store, error) {
	if err := os.MkdirAll(dataDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create data directory: %w", err)
	}

	store := &Store{
		filePath: filepath.Join(dataDir, "scout_state.json"),
		values:   make(map[string]string),
	}

	if err := store.load(); err != nil {
		return nil, fmt.Errorf("failed to load store data: %w", err)
	}

	return store, nil
}

// Get returns the stored value for key and whether it was present.
func (s *Store) Get(key string) (string, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	value, ok := s.values[key]
	return value, ok
}

// Set stores value under key and persists immediately.
func (s *Store) Set(key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.values[key] = value
	return s.save()
}

// Delete removes key and persists immediately. Deleting a missing key is
// not an error.
func (s *Store) Delete(key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.values, key)
	return s.save()
}

// GetInt reads an integer value; ok is false when the key is missing or
// not a number.
func (s *Store) GetInt(key string) (int, bool) {
	raw, ok := s.Get(key)
	if !ok {
		return 0, false
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, false
	}
	return n, true
}

// SetInt stores an integer value.
func (s *Store) SetInt(key string, value int) error {
	return s.Set(key, strconv.Itoa(value))
}

func (s *Store) load() error {
	file, err := os.Open(s.filePath)
	if err != nil {
		if os.IsNotExist(err) {
			// No state yet, start empty.
			return nil
		}
		return fmt.Errorf("failed to open store file: %w", err)
	}
	defer file.Close()

	if err := json.NewDecoder(file).Decode(&s.values); err != nil {
		return fmt.Errorf("failed to decode store data: %w", err)
	}

	return nil
}

func (s *Store) save() error {
	file, err := os.Create(s.filePath)
	if err != nil {
		return fmt.Errorf("failed to create store file: %w", err)
	}
	defer file.Close()

	encoder := json.NewEncoder(file)
	encoder.SetIndent("", "  ")
	return encoder.Encode(s.values)
}
