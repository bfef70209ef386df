// Package history persists the bounded command history as a JSON array of
// formatted lines.
package history

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/iotguard/iotguard/internal/domain"
	"github.com/iotguard/iotguard/internal/ports"
)

const defaultLimit = 10

// FileStore keeps the most recent history lines in a single JSON file,
// oldest evicted first. A malformed or missing file reads as empty history;
// it heals on the next append.
type FileStore struct {
	path  string
	limit int
	mu    sync.Mutex
}

// NewFileStore creates a store at path keeping at most limit lines.
// A non-positive limit falls back to 10.
func NewFileStore(path string, limit int) *FileStore {
	if limit <= 0 {
		limit = defaultLimit
	}
	return &FileStore{path: path, limit: limit}
}

// Append formats the record and persists it, evicting the oldest line when
// the store is full.
func (f *FileStore) Append(record domain.HistoryRecord) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	lines := f.load()
	lines = append(lines, record.FormatLine())
	if len(lines) > f.limit {
		lines = lines[len(lines)-f.limit:]
	}
	return f.save(lines)
}

// Lines returns all stored lines, oldest first.
func (f *FileStore) Lines() ([]string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.load(), nil
}

// Search returns the lines containing the query, case-insensitive. An empty
// query returns everything.
func (f *FileStore) Search(query string) ([]string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	lines := f.load()
	if query == "" {
		return lines, nil
	}
	needle := strings.ToLower(query)
	var matched []string
	for _, line := range lines {
		if strings.Contains(strings.ToLower(line), needle) {
			matched = append(matched, line)
		}
	}
	return matched, nil
}

// Clear removes the history file.
func (f *FileStore) Clear() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := os.Remove(f.path); err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}

// Path returns the backing file path.
func (f *FileStore) Path() string {
	return f.path
}

func (f *FileStore) load() []string {
	data, err := os.ReadFile(f.path)
	if err != nil {
		return nil
	}
	var lines []string
	if err := json.Unmarshal(data, &lines); err != nil {
		return nil
	}
	return lines
}

func (f *FileStore) save(lines []string) error {
	if err := os.MkdirAll(filepath.Dir(f.path), 0o755); err != nil {
		return err
	}
	data, err := json.MarshalIndent(lines, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(f.path, data, 0o644)
}

var _ ports.HistoryRepository = (*FileStore)(nil)
