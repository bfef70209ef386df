package analyzer

import (
	"strings"

	"github.com/iotguard/iotguard/internal/domain"
	"github.com/iotguard/iotguard/internal/ports"
)

// Parser extracts a structured verdict from the labeled-line reply grammar.
// Unknown lines are skipped, so surrounding prose from the model does not
// break parsing.
type Parser struct{}

// NewParser returns the reply parser.
func NewParser() *Parser {
	return &Parser{}
}

// Parse scans the reply line by line. The boolean is false when no risk-level
// line is present; callers treat that as "no risk detected". A later
// duplicate label overwrites an earlier one.
func (p *Parser) Parse(reply string) (domain.RiskVerdict, bool) {
	var verdict domain.RiskVerdict
	found := false

	for _, line := range strings.Split(reply, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		switch {
		case strings.HasPrefix(line, "- Risk Level:"):
			verdict.RiskLevel = domain.ParseRiskLevel(labelValue(line, "- Risk Level:"))
			found = true
		case strings.HasPrefix(line, "- Explanation:"):
			verdict.Explanation = labelValue(line, "- Explanation:")
		case strings.HasPrefix(line, "- Suggestion:"):
			verdict.Suggestion = labelValue(line, "- Suggestion:")
		case strings.HasPrefix(line, "- Safe Command Variation 1:"):
			verdict.SafeVariation1 = variationValue(line, "- Safe Command Variation 1:")
		case strings.HasPrefix(line, "- Safe Command Variation 2:"):
			verdict.SafeVariation2 = variationValue(line, "- Safe Command Variation 2:")
		}
	}
	return verdict, found
}

func labelValue(line, label string) string {
	return strings.TrimSpace(strings.TrimPrefix(line, label))
}

// variationValue additionally restores a closing quote the model sometimes
// drops, and maps the literal "None" to empty.
func variationValue(line, label string) string {
	value := labelValue(line, label)
	if value == "None" {
		return ""
	}
	if strings.HasPrefix(value, `"`) && !strings.HasSuffix(value, `"`) {
		value += `"`
	}
	return value
}

var _ ports.ReplyParser = (*Parser)(nil)
