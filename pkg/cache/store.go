package cache

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// MemoryStore is an in-process Store, used by tests and the serve command.
type MemoryStore struct {
	entries map[string]Entry
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{entries: make(map[string]Entry)}
}

func (m *MemoryStore) Load(key string) (Entry, bool) {
	entry, ok := m.entries[key]
	return entry, ok
}

func (m *MemoryStore) Save(key string, entry Entry) error {
	m.entries[key] = entry
	return nil
}

// FileStore persists entries as a single JSON file holding a key to entry
// map. Writes replace the whole file atomically (temp file + rename) so a
// crash mid-write never leaves a corrupt cache; a corrupt or missing file
// reads as empty.
type FileStore struct {
	path string
}

// NewFileStore creates a store backed by the given file path.
func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

func (f *FileStore) Load(key string) (Entry, bool) {
	entries := f.read()
	entry, ok := entries[key]
	return entry, ok
}

func (f *FileStore) Save(key string, entry Entry) error {
	entries := f.read()
	entries[key] = entry

	data, err := json.Marshal(entries)
	if err != nil {
		return fmt.Errorf("failed to marshal cache: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(f.path), 0o700); err != nil {
		return fmt.Errorf("failed to create cache dir: %w", err)
	}

	tmp := f.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o600); err != nil {
		return fmt.Errorf("failed to write cache: %w", err)
	}
	if err := os.Rename(tmp, f.path); err != nil {
		return fmt.Errorf("failed to replace cache: %w", err)
	}
	return nil
}

func (f *FileStore) read() map[string]Entry {
	entries := make(map[string]Entry)
	data, err := os.ReadFile(f.path)
	if err != nil {
		return entries
	}
	if err := json.Unmarshal(data, &entries); err != nil {
		// Treat a corrupt cache file as empty; it will be rewritten.
		return make(map[string]Entry)
	}
	return entries
}
