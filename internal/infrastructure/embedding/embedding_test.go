package embedding

import (
	"math"
	"testing"

	"github.com/iotguard/iotguard/internal/domain"
)

func TestEmbedDeterministicAndNormalized(t *testing.T) {
	e := NewHashingEmbedder()

	a := e.Embed("unlock the front door")
	b := e.Embed("unlock the front door")
	if len(a) != e.Dimensions() {
		t.Fatalf("vector length = %d, want %d", len(a), e.Dimensions())
	}
	for i := range a {
		if a[i] != b[i] {
			t.Fatalf("embedding not deterministic at index %d", i)
		}
	}

	var norm float64
	for _, v := range a {
		norm += v * v
	}
	if math.Abs(math.Sqrt(norm)-1) > 1e-9 {
		t.Fatalf("vector norm = %f, want 1", math.Sqrt(norm))
	}
}

func TestEmbedEmptyInput(t *testing.T) {
	e := NewHashingEmbedder()
	vec := e.Embed("   ")
	for i, v := range vec {
		if v != 0 {
			t.Fatalf("empty input produced non-zero value at index %d", i)
		}
	}
}

func TestMatcherIdenticalTextMatches(t *testing.T) {
	e := NewHashingEmbedder()
	m := NewMatcher(e, 0.8)

	entries := []domain.RiskEntry{
		{ID: 1, Trigger: "unlock door remotely", Device: "door1", RiskLevel: "High"},
		{ID: 2, Trigger: "play loud music", Device: "speakers", RiskLevel: "Low"},
	}

	entry, ok := m.Match("unlock door remotely door1", entries)
	if !ok {
		t.Fatal("identical text should exceed the threshold")
	}
	if entry.ID != 1 {
		t.Fatalf("matched entry %d, want 1", entry.ID)
	}
}

func TestMatcherUnrelatedTextDoesNotMatch(t *testing.T) {
	e := NewHashingEmbedder()
	m := NewMatcher(e, 0.8)

	entries := []domain.RiskEntry{
		{ID: 1, Trigger: "unlock door remotely", Device: "door1", RiskLevel: "High"},
	}

	if _, ok := m.Match("water the garden plants tomorrow", entries); ok {
		t.Fatal("unrelated text should not match")
	}
}

func TestMatchAllPreservesCatalogOrder(t *testing.T) {
	e := NewHashingEmbedder()
	m := NewMatcher(e, 0.8)

	entries := []domain.RiskEntry{
		{ID: 1, Trigger: "unlock door remotely", Device: "door1"},
		{ID: 2, Trigger: "play loud music", Device: "speakers"},
		{ID: 3, Trigger: "unlock door remotely", Device: "door1"},
	}

	matched := m.MatchAll("unlock door remotely door1", entries)
	if len(matched) != 2 {
		t.Fatalf("matched %d entries, want 2", len(matched))
	}
	if matched[0].ID != 1 || matched[1].ID != 3 {
		t.Fatalf("matched order = %d,%d, want 1,3", matched[0].ID, matched[1].ID)
	}
}

func TestMatcherEmptyCatalog(t *testing.T) {
	m := NewMatcher(NewHashingEmbedder(), 0)
	if _, ok := m.Match("unlock the door", nil); ok {
		t.Fatal("empty catalog should never match")
	}
}
