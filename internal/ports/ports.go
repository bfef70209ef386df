// Package ports defines the interfaces (ports) for the hexagonal architecture.
//
// This package establishes the contract between the application core and external
// adapters (infrastructure). Following the Ports and Adapters (Hexagonal) pattern,
// these interfaces allow the application to remain independent of specific
// implementations like databases, HTTP clients, or CLI frameworks.
//
// Key architectural concepts:
//   - Ports: Interfaces defined here (e.g., Analyzer, ConfigProvider)
//   - Adapters: Concrete implementations in the infrastructure layer
//   - Dependency inversion: Application depends on abstractions, not implementations
package ports

import (
	"context"

	"github.com/iotguard/iotguard/internal/domain"
)

// ConfigProvider loads the latest configuration from persistent storage.
// Implementations typically read from ~/.iotguard/config.yaml.
type ConfigProvider interface {
	Load(context.Context) (domain.Config, error)
}

// AnalysisRequest contains all data needed for one analyzer invocation.
type AnalysisRequest struct {
	Command string
	UserID  string
	Device  string
}

// Analyzer produces the raw textual risk analysis for a command. Replies
// follow the labeled-line grammar understood by ReplyParser; the raw text is
// what the advisor caches, so both external and local implementations emit
// the same shape.
type Analyzer interface {
	Name() string
	Analyze(context.Context, AnalysisRequest) (string, error)
}

// ReplyParser extracts a structured verdict from a raw analyzer reply.
// The boolean is false when the reply carries no risk-level line, which the
// advisor treats as "no risk detected".
type ReplyParser interface {
	Parse(reply string) (domain.RiskVerdict, bool)
}

// Embedder turns text into a fixed-size numeric vector. Implementations must
// be deterministic and side-effect free, and must tolerate empty input.
type Embedder interface {
	Dimensions() int
	Embed(text string) []float64
}

// Classifier is the fast binary safe/risky pre-filter used by the local
// analysis pipeline before any catalog matching happens.
type Classifier interface {
	Classify(ctx context.Context, command string) (domain.CommandLabel, error)
}

// RuleEngine evaluates the selected security rule against a command.
// Implementations are pure functions of their inputs.
type RuleEngine interface {
	Apply(command string, rule domain.SecurityRule) domain.RuleOutcome
}

// CatalogRepository owns the ordered risk-pattern catalog backing similarity
// matching and catalog management commands.
type CatalogRepository interface {
	Entries() []domain.RiskEntry
	Add(fields domain.RiskEntryFields) (domain.RiskEntry, error)
	Load(path string) error
	Save(path string) error
}

// CacheRepository stores raw analyzer replies for the lifetime of the process.
type CacheRepository interface {
	Get(key string) (domain.CacheEntry, bool)
	Set(entry domain.CacheEntry)
	Len() int
	Clear()
}

// HistoryRepository persists the bounded command history as formatted lines,
// oldest evicted first.
type HistoryRepository interface {
	Append(record domain.HistoryRecord) error
	Lines() ([]string, error)
	Search(query string) ([]string, error)
	Clear() error
}

// UserStore is the credential and device-permission oracle. The advisor
// consults it before spending an external analysis call.
type UserStore interface {
	Validate(userID, pin string) (bool, error)
	Permissions(userID string) ([]string, error)
	Add(userID, pin string, permissions []string) error
	Update(userID, pin string, permissions []string) error
	Delete(userID string) error
	All() ([]domain.UserAccount, error)
}

// DeviceController is the simulated smart-home execution surface. Callers
// invoke Execute only after the advisor allows the command.
type DeviceController interface {
	Devices() []string
	Status() string
	Execute(command, userID, pin, device string) (string, error)
}

// Logger provides structured logging abstraction for the application layer.
// Implementations can route to different backends (stdout, files, external services).
type Logger interface {
	Debug(msg string, fields map[string]interface{})
	Info(msg string, fields map[string]interface{})
	Warn(msg string, fields map[string]interface{})
	Error(msg string, err error, fields map[string]interface{})
}
