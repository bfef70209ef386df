package catalog

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/iotguard/iotguard/internal/domain"
)

func TestAddAssignsNextID(t *testing.T) {
	c := NewJSONCatalog()

	first, err := c.Add(domain.RiskEntryFields{
		Trigger:     "unlock door remotely",
		Device:      "door1",
		RiskLevel:   "High",
		Explanation: "Remote unlocking exposes the home.",
		Suggestion:  "Require authentication.",
	})
	if err != nil {
		t.Fatalf("Add() error = %v", err)
	}
	if first.ID != 1 {
		t.Fatalf("first ID = %d, want 1", first.ID)
	}

	second, err := c.Add(domain.RiskEntryFields{
		Trigger:     "disable camera",
		Condition:   "at night",
		Device:      "camera1",
		RiskLevel:   "Critical",
		Explanation: "Blinds surveillance when it matters most.",
		Suggestion:  "Adjust settings instead.",
	})
	if err != nil {
		t.Fatalf("Add() error = %v", err)
	}
	if second.ID != 2 {
		t.Fatalf("second ID = %d, want 2", second.ID)
	}
}

func TestAddRejectsMissingFields(t *testing.T) {
	c := NewJSONCatalog()

	_, err := c.Add(domain.RiskEntryFields{Trigger: "unlock door"})
	var verr *domain.ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("Add() error = %v, want ValidationError", err)
	}
	if len(verr.Missing) != 4 {
		t.Fatalf("missing fields = %v, want 4 entries", verr.Missing)
	}
	if len(c.Entries()) != 0 {
		t.Fatal("catalog must stay unchanged after a rejected add")
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "catalog.json")

	c := NewJSONCatalog()
	if _, err := c.Add(domain.RiskEntryFields{
		Trigger:     "unlock door remotely",
		Device:      "door1",
		RiskLevel:   "High",
		Explanation: "Remote unlocking exposes the home.",
		Suggestion:  "Require authentication.",
	}); err != nil {
		t.Fatalf("Add() error = %v", err)
	}
	if err := c.Save(path); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	loaded := NewJSONCatalog()
	if err := loaded.Load(path); err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	entries := loaded.Entries()
	if len(entries) != 1 {
		t.Fatalf("loaded %d entries, want 1", len(entries))
	}
	if entries[0].Trigger != "unlock door remotely" || entries[0].RiskLevel != domain.RiskHigh {
		t.Fatalf("loaded entry = %+v", entries[0])
	}
}

func TestLoadMalformedFileKeepsState(t *testing.T) {
	path := filepath.Join(t.TempDir(), "catalog.json")
	if err := os.WriteFile(path, []byte("{not json"), 0o644); err != nil {
		t.Fatal(err)
	}

	c := NewJSONCatalog()
	if _, err := c.Add(domain.RiskEntryFields{
		Trigger:     "unlock door remotely",
		Device:      "door1",
		RiskLevel:   "High",
		Explanation: "Remote unlocking exposes the home.",
		Suggestion:  "Require authentication.",
	}); err != nil {
		t.Fatalf("Add() error = %v", err)
	}

	err := c.Load(path)
	var ferr *domain.FormatError
	if !errors.As(err, &ferr) {
		t.Fatalf("Load() error = %v, want FormatError", err)
	}
	if len(c.Entries()) != 1 {
		t.Fatal("failed load must keep previous entries")
	}
}

func TestLoadMissingFileLeavesCatalogEmpty(t *testing.T) {
	c := NewJSONCatalog()
	if err := c.Load(filepath.Join(t.TempDir(), "absent.json")); err != nil {
		t.Fatalf("Load() error = %v, want nil for missing file", err)
	}
	if len(c.Entries()) != 0 {
		t.Fatal("missing file should leave catalog empty")
	}
}
