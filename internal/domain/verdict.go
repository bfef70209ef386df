// Package domain defines core business entities and value objects for IoTGuard.
//
// The domain layer is independent of infrastructure concerns and represents pure
// business logic and data structures.
package domain

// RiskLevel is the ordinal severity classification of an analyzed command.
type RiskLevel string

const (
	RiskNone     RiskLevel = "None"
	RiskLow      RiskLevel = "Low"
	RiskMedium   RiskLevel = "Medium"
	RiskHigh     RiskLevel = "High"
	RiskCritical RiskLevel = "Critical"
	RiskBlocked  RiskLevel = "Blocked"
)

// RiskVerdict is the structured output of one risk analysis for one command.
// A verdict is never mutated after construction; a new verdict replaces an
// old one.
type RiskVerdict struct {
	RiskLevel      RiskLevel `json:"risk_level"`
	Explanation    string    `json:"explanation"`
	Suggestion     string    `json:"suggestion"`
	SafeVariation1 string    `json:"safe_variation_1,omitempty"`
	SafeVariation2 string    `json:"safe_variation_2,omitempty"`
}

// Risky reports whether the verdict describes a detected risk (anything
// other than None).
func (v RiskVerdict) Risky() bool {
	return v.RiskLevel != "" && v.RiskLevel != RiskNone
}

// ParseRiskLevel maps free text onto a known risk level, defaulting to None.
func ParseRiskLevel(value string) RiskLevel {
	switch value {
	case string(RiskLow):
		return RiskLow
	case string(RiskMedium):
		return RiskMedium
	case string(RiskHigh):
		return RiskHigh
	case string(RiskCritical):
		return RiskCritical
	case string(RiskBlocked):
		return RiskBlocked
	default:
		return RiskNone
	}
}

// MoreSevere reports whether next outranks current on the severity ladder.
func MoreSevere(next, current RiskLevel) bool {
	order := map[RiskLevel]int{
		RiskNone:     0,
		RiskLow:      1,
		RiskMedium:   2,
		RiskHigh:     3,
		RiskCritical: 4,
		RiskBlocked:  5,
	}
	return order[next] > order[current]
}

// RiskIcon returns the marker shown next to a risk level in the renderer.
func RiskIcon(level RiskLevel) string {
	icons := map[RiskLevel]string{
		RiskCritical: "🚨",
		RiskHigh:     "⚠️",
		RiskMedium:   "🔔",
		RiskLow:      "ℹ️",
	}
	return icons[level]
}

// LearnMoreMessage returns the expanded help text for a risk level.
func LearnMoreMessage(level RiskLevel) string {
	messages := map[RiskLevel]string{
		RiskCritical: "Critical risks pose an immediate threat. Use strong authentication and encryption.",
		RiskHigh:     "High risks may allow unauthorized access. Implement MFA and update firmware.",
		RiskMedium:   "Medium risks indicate potential issues. Use MFA and specific commands.",
		RiskLow:      "Low risks are minor. Review logs and add security layers.",
		RiskBlocked:  "Blocked by rule. Adjust command or rule settings.",
	}
	if msg, ok := messages[level]; ok {
		return msg
	}
	return "No info available."
}
