package domain

// SecurityRule is one of the fixed, user-selected override policies evaluated
// before any AI-based analysis.
type SecurityRule string

const (
	RuleDoorAuth      SecurityRule = "Always require authentication for door commands"
	RuleCameraNight   SecurityRule = "Never disable cameras at night"
	RuleUnknownDevice SecurityRule = "Block commands from unknown devices"
	RuleNone          SecurityRule = "No rules"
)

// AllRules lists the selectable policies in menu order.
func AllRules() []SecurityRule {
	return []SecurityRule{
		RuleDoorAuth,
		RuleCameraNight,
		RuleUnknownDevice,
		RuleNone,
	}
}

// RuleOutcome is the result of evaluating a security rule against a command.
// Either Blocked is true and Suggestion explains the remedy, or Command holds
// the (possibly modified) command to analyze.
type RuleOutcome struct {
	Command    string
	Blocked    bool
	Suggestion string
}
