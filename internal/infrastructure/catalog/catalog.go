// Package catalog persists the curated risk-pattern catalog as a JSON file
// and serves it to the matcher and the CLI.
package catalog

import (
	"encoding/json"
	"os"
	"path/filepath"
	"sync"

	"github.com/iotguard/iotguard/internal/domain"
	"github.com/iotguard/iotguard/internal/ports"
)

// JSONCatalog is the file-backed catalog repository. Failed loads never
// disturb the in-memory entries; the previous state stays authoritative
// until a parse succeeds.
type JSONCatalog struct {
	mu      sync.Mutex
	entries []domain.RiskEntry
}

// NewJSONCatalog returns an empty catalog.
func NewJSONCatalog() *JSONCatalog {
	return &JSONCatalog{}
}

// Entries returns a copy of the catalog in stored order.
func (c *JSONCatalog) Entries() []domain.RiskEntry {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]domain.RiskEntry, len(c.entries))
	copy(out, c.entries)
	return out
}

// Load replaces the catalog with the contents of path. A missing file leaves
// the catalog empty; a malformed file returns a FormatError and keeps the
// current entries.
func (c *JSONCatalog) Load(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return &domain.FormatError{Path: path, Err: err}
	}

	var entries []domain.RiskEntry
	if err := json.Unmarshal(data, &entries); err != nil {
		return &domain.FormatError{Path: path, Err: err}
	}

	c.mu.Lock()
	c.entries = entries
	c.mu.Unlock()
	return nil
}

// Save writes the catalog to path in stored order.
func (c *JSONCatalog) Save(path string) error {
	c.mu.Lock()
	data, err := json.MarshalIndent(c.entries, "", "  ")
	c.mu.Unlock()
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

// Add validates the fields and appends a new entry with the next free ID.
// Required fields are trigger, device, risk level, explanation and
// suggestion; condition is optional.
func (c *JSONCatalog) Add(fields domain.RiskEntryFields) (domain.RiskEntry, error) {
	var missing []string
	if fields.Trigger == "" {
		missing = append(missing, "trigger")
	}
	if fields.Device == "" {
		missing = append(missing, "device")
	}
	if fields.RiskLevel == "" {
		missing = append(missing, "risk_level")
	}
	if fields.Explanation == "" {
		missing = append(missing, "explanation")
	}
	if fields.Suggestion == "" {
		missing = append(missing, "suggestion")
	}
	if len(missing) > 0 {
		return domain.RiskEntry{}, &domain.ValidationError{Missing: missing}
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	maxID := 0
	for _, e := range c.entries {
		if e.ID > maxID {
			maxID = e.ID
		}
	}
	entry := domain.RiskEntry{
		ID:          maxID + 1,
		Trigger:     fields.Trigger,
		Condition:   fields.Condition,
		Device:      fields.Device,
		RiskLevel:   domain.RiskLevel(fields.RiskLevel),
		Explanation: fields.Explanation,
		Suggestion:  fields.Suggestion,
	}
	c.entries = append(c.entries, entry)
	return entry, nil
}

var _ ports.CatalogRepository = (*JSONCatalog)(nil)
