// Package rules implements the fixed security-rule policies evaluated before
// any analyzer is consulted.
package rules

import (
	"strings"

	"github.com/iotguard/iotguard/internal/domain"
	"github.com/iotguard/iotguard/internal/ports"
)

// Engine applies the selected security rule to a command. Matching is
// case-insensitive substring matching on the command text; the engine holds
// no state.
type Engine struct{}

// NewEngine returns the rule engine.
func NewEngine() *Engine {
	return &Engine{}
}

// Apply evaluates one rule against one command. A blocked outcome carries a
// remedy suggestion; a passing outcome carries the command to analyze, which
// the door-authentication rule may have amended.
func (e *Engine) Apply(command string, rule domain.SecurityRule) domain.RuleOutcome {
	lower := strings.ToLower(command)

	switch rule {
	case domain.RuleDoorAuth:
		if strings.Contains(lower, "door") && !strings.Contains(lower, "with authentication") {
			return domain.RuleOutcome{Command: command + " with authentication"}
		}
	case domain.RuleCameraNight:
		if strings.Contains(lower, "disable") && strings.Contains(lower, "camera") {
			return domain.RuleOutcome{
				Blocked:    true,
				Suggestion: "Use 'adjust camera settings' instead of disabling cameras.",
			}
		}
	case domain.RuleUnknownDevice:
		if !strings.Contains(lower, "known_device") {
			return domain.RuleOutcome{
				Blocked:    true,
				Suggestion: "Use a known device to issue the command.",
			}
		}
	}
	return domain.RuleOutcome{Command: command}
}

var _ ports.RuleEngine = (*Engine)(nil)
