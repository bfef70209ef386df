package domain

import "testing"

func TestNormalizeTimeFormat(t *testing.T) {
	tests := []struct {
		name      string
		command   string
		variation string
		expect    string
	}{
		{
			name:      "evening hour converted for pm command",
			command:   "unlock the door at 8 pm",
			variation: "unlock door at 20",
			expect:    "unlock door at 8 pm",
		},
		{
			name:      "late hour converted",
			command:   "open garage at 11 pm",
			variation: "open the garage door at 23 with supervision",
			expect:    "open the garage door at 11 pm with supervision",
		},
		{
			name:      "am command still triggers conversion",
			command:   "lock up at 9 am",
			variation: "lock the door at 21",
			expect:    "lock the door at 9 pm",
		},
		{
			name:      "command without am/pm left alone",
			command:   "unlock the door at 20:00",
			variation: "unlock door at 20",
			expect:    "unlock door at 20",
		},
		{
			name:      "variation without evening hour left alone",
			command:   "unlock the door at 8 pm",
			variation: "unlock door at 8 pm with authentication",
			expect:    "unlock door at 8 pm with authentication",
		},
		{
			name:      "variation without at clause left alone",
			command:   "play music at 9 pm",
			variation: "play music 20 percent quieter",
			expect:    "play music 20 percent quieter",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := NormalizeTimeFormat(tt.command, tt.variation); got != tt.expect {
				t.Fatalf("NormalizeTimeFormat(%q, %q) = %q, want %q", tt.command, tt.variation, got, tt.expect)
			}
		})
	}
}

func TestParseRiskLevelDefaultsToNone(t *testing.T) {
	if got := ParseRiskLevel("weird"); got != RiskNone {
		t.Fatalf("ParseRiskLevel fallback = %s, want None", got)
	}
	if got := ParseRiskLevel("Critical"); got != RiskCritical {
		t.Fatalf("ParseRiskLevel(Critical) = %s", got)
	}
}

func TestMoreSevereOrdering(t *testing.T) {
	if !MoreSevere(RiskBlocked, RiskCritical) {
		t.Fatal("Blocked should outrank Critical")
	}
	if MoreSevere(RiskLow, RiskHigh) {
		t.Fatal("Low should not outrank High")
	}
}
