// Package store implements the durable client-side key-value store backing
// the session and user preferences. Values are kept as raw JSON in a single
// file that is rewritten in full on every mutation.
package store

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"
	"time"
)

// ErrNotFound is returned when a key has no stored value.
var ErrNotFound = errors.New("not found")

// Well-known keys.
const (
	KeySession    = "user"
	KeyLastLogin  = "lastLogin"
	KeyCategories = "defaultCategories"
	KeyCurrency   = "defaultCurrency"
	KeyReminder   = "reminderFrequency"
	KeyThreshold  = "budgetThreshold"
)

type snapshot struct {
	Version   int                        `json:"version"`
	Values    map[string]json.RawMessage `json:"values"`
	UpdatedAt time.Time                  `json:"updated_at"`
}

// FileStore is a string-keyed JSON store persisted to a single file.
// Safe for concurrent use.
type FileStore struct {
	mu   sync.RWMutex
	file *os.File
	snap *snapshot
}

// Open opens or creates the store file at path, creating parent directories
// as needed.
func Open(path string) (*FileStore, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, err
	}
	f, err := os.OpenFile(path, os.O_RDWR|os.O_CREATE, 0o600)
	if err != nil {
		return nil, err
	}
	s := &FileStore{file: f}
	if err := s.load(); err != nil {
		_ = f.Close()
		return nil, err
	}
	return s, nil
}

// Close closes the underlying file.
func (s *FileStore) Close() error { return s.file.Close() }

func (s *FileStore) load() error {
	info, err := s.file.Stat()
	if err != nil {
		return err
	}
	if info.Size() == 0 {
		s.snap = &snapshot{
			Version:   1,
			Values:    map[string]json.RawMessage{},
			UpdatedAt: time.Now(),
		}
		return s.flushLocked()
	}
	var snap snapshot
	if err := json.NewDecoder(s.file).Decode(&snap); err != nil {
		return fmt.Errorf("decoding store file: %w", err)
	}
	if snap.Values == nil {
		snap.Values = map[string]json.RawMessage{}
	}
	s.snap = &snap
	return nil
}

func (s *FileStore) flushLocked() error {
	if _, err := s.file.Seek(0, io.SeekStart); err != nil {
		return err
	}
	enc := json.NewEncoder(s.file)
	enc.SetIndent("", "  ")
	if err := enc.Encode(s.snap); err != nil {
		return err
	}
	// truncate in case new content is shorter
	pos, _ := s.file.Seek(0, io.SeekCurrent)
	if err := s.file.Truncate(pos); err != nil {
		return err
	}
	return s.file.Sync()
}

// Get unmarshals the value stored under key into out. Returns ErrNotFound
// when the key is absent.
func (s *FileStore) Get(key string, out any) error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	raw, ok := s.snap.Values[key]
	if !ok {
		return ErrNotFound
	}
	return json.Unmarshal(raw, out)
}

// Put stores v under key, replacing any previous value.
func (s *FileStore) Put(key string, v any) error {
	raw, err := json.Marshal(v)
	if err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.snap.Values[key] = raw
	s.snap.UpdatedAt = time.Now()
	return s.flushLocked()
}

// Delete removes key from the store. Deleting an absent key is a no-op.
func (s *FileStore) Delete(key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.snap.Values[key]; !ok {
		return nil
	}
	delete(s.snap.Values, key)
	s.snap.UpdatedAt = time.Now()
	return s.flushLocked()
}
