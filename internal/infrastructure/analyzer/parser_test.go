package analyzer

import (
	"testing"

	"github.com/iotguard/iotguard/internal/domain"
)

func TestParseFullReply(t *testing.T) {
	reply := `Here is my assessment:

- Risk Level: High
- Explanation: Unlocking doors remotely exposes the home.
- Suggestion: Require multi-factor authentication.
- Safe Command Variation 1: "unlock the door with authentication
- Safe Command Variation 2: unlock the door during daytime only
`

	verdict, found := NewParser().Parse(reply)
	if !found {
		t.Fatal("expected risk level to be found")
	}
	if verdict.RiskLevel != domain.RiskHigh {
		t.Fatalf("RiskLevel = %s, want High", verdict.RiskLevel)
	}
	if verdict.Explanation != "Unlocking doors remotely exposes the home." {
		t.Fatalf("Explanation = %q", verdict.Explanation)
	}
	if verdict.SafeVariation1 != `"unlock the door with authentication"` {
		t.Fatalf("dropped closing quote not restored: %q", verdict.SafeVariation1)
	}
	if verdict.SafeVariation2 != "unlock the door during daytime only" {
		t.Fatalf("SafeVariation2 = %q", verdict.SafeVariation2)
	}
}

func TestParseNoneReply(t *testing.T) {
	reply := `- Risk Level: None
- Explanation: No significant security risks identified.
- Suggestion: No action required.
- Safe Command Variation 1: None
- Safe Command Variation 2: None`

	verdict, found := NewParser().Parse(reply)
	if !found {
		t.Fatal("expected risk level to be found")
	}
	if verdict.Risky() {
		t.Fatalf("verdict %s should not be risky", verdict.RiskLevel)
	}
	if verdict.SafeVariation1 != "" || verdict.SafeVariation2 != "" {
		t.Fatal("literal None variations must map to empty")
	}
}

func TestParseWithoutRiskLevel(t *testing.T) {
	if _, found := NewParser().Parse("I cannot assess this command."); found {
		t.Fatal("reply without risk-level line must report not found")
	}
}

func TestParseUnknownLevelDefaultsToNone(t *testing.T) {
	verdict, found := NewParser().Parse("- Risk Level: Catastrophic")
	if !found {
		t.Fatal("expected risk level line to be found")
	}
	if verdict.RiskLevel != domain.RiskNone {
		t.Fatalf("RiskLevel = %s, want None fallback", verdict.RiskLevel)
	}
}

func TestRenderReplyRoundTrips(t *testing.T) {
	in := domain.RiskVerdict{
		RiskLevel:   domain.RiskCritical,
		Explanation: "Disabling cameras blinds surveillance.",
		Suggestion:  "Adjust settings instead.",
	}

	out, found := NewParser().Parse(renderReply(in))
	if !found {
		t.Fatal("rendered reply must parse")
	}
	if out != in {
		t.Fatalf("round trip changed verdict: %+v != %+v", out, in)
	}
}
