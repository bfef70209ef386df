package domain

import (
	"fmt"
	"time"
)

// HistoryRecord captures one advisory outcome for the bounded command log.
type HistoryRecord struct {
	Timestamp time.Time
	UserID    string
	Command   string
	Device    string
	RiskLevel RiskLevel
	Result    string
}

// FormatLine renders the record as the persisted history-line string.
func (r HistoryRecord) FormatLine() string {
	device := r.Device
	if device == "" {
		device = "None"
	}
	return fmt.Sprintf("[%s] %s: %s (Device: %s) - Risk: %s - Result: %s",
		r.Timestamp.Format("2006-01-02 15:04:05"),
		r.UserID,
		r.Command,
		device,
		r.RiskLevel,
		r.Result,
	)
}

// CacheEntry stores one raw analyzer reply keyed by user and command text.
// Entries live for the process session.
type CacheEntry struct {
	Key       string    `json:"key"`
	Reply     string    `json:"reply"`
	Analyzer  string    `json:"analyzer"`
	CreatedAt time.Time `json:"created_at"`
}
