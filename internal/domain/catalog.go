package domain

import "strings"

// RiskEntry is one curated risk pattern in the catalog. Entries are immutable
// once matched against; the catalog mutates only through explicit
// add/load/save operations.
type RiskEntry struct {
	ID          int       `json:"id"`
	Trigger     string    `json:"trigger"`
	Condition   string    `json:"condition,omitempty"`
	Device      string    `json:"device"`
	RiskLevel   RiskLevel `json:"risk_level"`
	Explanation string    `json:"explanation"`
	Suggestion  string    `json:"suggestion"`
}

// RiskText builds the description string used for similarity matching:
// trigger, condition (when present) and device joined with single spaces.
func (e RiskEntry) RiskText() string {
	parts := []string{e.Trigger}
	if e.Condition != "" {
		parts = append(parts, e.Condition)
	}
	parts = append(parts, e.Device)
	return strings.Join(parts, " ")
}

// RiskEntryFields carries the user-supplied fields of a new catalog entry;
// the catalog assigns the ID.
type RiskEntryFields struct {
	Trigger     string
	Condition   string
	Device      string
	RiskLevel   string
	Explanation string
	Suggestion  string
}
