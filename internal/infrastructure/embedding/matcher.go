package embedding

import (
	"github.com/iotguard/iotguard/internal/domain"
	"github.com/iotguard/iotguard/internal/ports"
)

const defaultThreshold = 0.8

// Matcher finds the catalog entry most similar to a command. An entry only
// matches when its cosine similarity strictly exceeds the threshold, so a
// borderline resemblance never triggers a verdict.
type Matcher struct {
	embedder  ports.Embedder
	threshold float64
}

// NewMatcher builds a matcher around the given embedder. A non-positive
// threshold falls back to the 0.8 default.
func NewMatcher(embedder ports.Embedder, threshold float64) *Matcher {
	if threshold <= 0 {
		threshold = defaultThreshold
	}
	return &Matcher{embedder: embedder, threshold: threshold}
}

// Match returns the best-matching entry, if any. Ties keep the earlier
// catalog entry.
func (m *Matcher) Match(command string, entries []domain.RiskEntry) (domain.RiskEntry, bool) {
	query := m.embedder.Embed(command)

	var best domain.RiskEntry
	bestScore := m.threshold
	found := false
	for _, entry := range entries {
		score := dot(query, m.embedder.Embed(entry.RiskText()))
		if score > bestScore {
			best = entry
			bestScore = score
			found = true
		}
	}
	return best, found
}

// MatchAll returns every entry whose similarity strictly exceeds the
// threshold, preserving catalog order.
func (m *Matcher) MatchAll(command string, entries []domain.RiskEntry) []domain.RiskEntry {
	query := m.embedder.Embed(command)

	var matched []domain.RiskEntry
	for _, entry := range entries {
		if dot(query, m.embedder.Embed(entry.RiskText())) > m.threshold {
			matched = append(matched, entry)
		}
	}
	return matched
}

// dot assumes both vectors are L2-normalized, making this the cosine
// similarity.
func dot(a, b []float64) float64 {
	var sum float64
	for i := range a {
		sum += a[i] * b[i]
	}
	return sum
}
