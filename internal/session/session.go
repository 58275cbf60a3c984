// Package session keeps the most recently submitted record between a submit
// and a results invocation. Entries live in a temporary directory and are
// never carried across machines or users.
package session

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"github.com/dotcommander/bananaq/internal/types"
)

// ErrNoSession is returned by Load when nothing has been submitted.
var ErrNoSession = errors.New("no prediction data found, submit a record first")

const fileName = "session.json"

// Entry is one submitted record.
type Entry struct {
	ID        string       `json:"id"`
	CreatedAt time.Time    `json:"created_at"`
	Record    types.Record `json:"record"`
}

// Store persists a single Entry in dir.
type Store struct {
	dir string
	now func() time.Time
}

// DefaultDir returns the per-user temporary session directory.
func DefaultDir() string {
	return filepath.Join(os.TempDir(), fmt.Sprintf("bananaq-%d", os.Getuid()))
}

// NewStore creates a Store rooted at dir. An empty dir selects DefaultDir.
func NewStore(dir string) *Store {
	if dir == "" {
		dir = DefaultDir()
	}
	return &Store{dir: dir, now: time.Now}
}

// Dir returns the directory the store writes to.
func (s *Store) Dir() string {
	return s.dir
}

func (s *Store) path() string {
	return filepath.Join(s.dir, fileName)
}

// Save replaces the stored entry with r and returns the new entry.
func (s *Store) Save(r types.Record) (*Entry, error) {
	if err := os.MkdirAll(s.dir, 0700); err != nil {
		return nil, fmt.Errorf("error creating session directory: %w", err)
	}

	entry := &Entry{
		ID:        uuid.NewString(),
		CreatedAt: s.now().UTC(),
		Record:    r,
	}

	data, err := json.MarshalIndent(entry, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("error marshaling session: %w", err)
	}

	// Write then rename so a concurrent Load never sees a partial file.
	tmp, err := os.CreateTemp(s.dir, fileName+".*")
	if err != nil {
		return nil, fmt.Errorf("error writing session: %w", err)
	}
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return nil, fmt.Errorf("error writing session: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return nil, fmt.Errorf("error writing session: %w", err)
	}
	if err := os.Rename(tmp.Name(), s.path()); err != nil {
		os.Remove(tmp.Name())
		return nil, fmt.Errorf("error writing session: %w", err)
	}

	return entry, nil
}

// Load returns the stored entry, or ErrNoSession when there is none.
func (s *Store) Load() (*Entry, error) {
	data, err := os.ReadFile(s.path())
	if errors.Is(err, fs.ErrNotExist) {
		return nil, ErrNoSession
	}
	if err != nil {
		return nil, fmt.Errorf("error reading session: %w", err)
	}

	var entry Entry
	if err := json.Unmarshal(data, &entry); err != nil {
		return nil, fmt.Errorf("error parsing session: %w", err)
	}
	return &entry, nil
}

// Clear removes the stored entry. Clearing an empty store is not an error.
func (s *Store) Clear() error {
	err := os.Remove(s.path())
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("error clearing session: %w", err)
	}
	return nil
}
