package classifier

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/iotguard/iotguard/internal/domain"
)

func TestLexicalClassify(t *testing.T) {
	c := NewLexical()

	tests := []struct {
		command string
		want    domain.CommandLabel
	}{
		{"unlock the door for delivery", domain.LabelRisky},
		{"Disable the security camera", domain.LabelRisky},
		{"share access to all devices", domain.LabelRisky},
		{"play music in the kitchen", domain.LabelSafe},
		{"set the thermostat to 72 degrees", domain.LabelSafe},
		{"turn on the lights in the living room", domain.LabelSafe},
	}

	for _, tt := range tests {
		got, err := c.Classify(context.Background(), tt.command)
		if err != nil {
			t.Fatalf("Classify(%q) error = %v", tt.command, err)
		}
		if got != tt.want {
			t.Fatalf("Classify(%q) = %s, want %s", tt.command, got, tt.want)
		}
	}
}

func TestTruncateCapsTokens(t *testing.T) {
	long := strings.Repeat("word ", 80) + "unlock"
	truncated := Truncate(long)
	if got := len(strings.Fields(truncated)); got != 64 {
		t.Fatalf("truncated to %d tokens, want 64", got)
	}
	if strings.Contains(truncated, "unlock") {
		t.Fatal("tokens beyond the cap must be dropped")
	}

	short := "unlock the door"
	if Truncate(short) != short {
		t.Fatal("short command must pass through unchanged")
	}
}

func TestHTTPClassify(t *testing.T) {
	var seen string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			Text string `json:"text"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Errorf("decode request: %v", err)
		}
		seen = req.Text
		json.NewEncoder(w).Encode(map[string]string{"label": "risky"})
	}))
	defer server.Close()

	c := NewHTTP(server.URL)
	got, err := c.Classify(context.Background(), "unlock the door")
	if err != nil {
		t.Fatalf("Classify() error = %v", err)
	}
	if got != domain.LabelRisky {
		t.Fatalf("Classify() = %s, want risky", got)
	}
	if seen != "unlock the door" {
		t.Fatalf("server saw %q", seen)
	}
}

func TestHTTPClassifyRejectsUnknownLabel(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		json.NewEncoder(w).Encode(map[string]string{"label": "maybe"})
	}))
	defer server.Close()

	if _, err := NewHTTP(server.URL).Classify(context.Background(), "unlock"); err == nil {
		t.Fatal("expected error for unknown label")
	}
}

func TestHTTPClassifyServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "model not loaded", http.StatusInternalServerError)
	}))
	defer server.Close()

	if _, err := NewHTTP(server.URL).Classify(context.Background(), "unlock"); err == nil {
		t.Fatal("expected error for 500 response")
	}
}

func TestNewSelectsImplementation(t *testing.T) {
	if _, ok := New(domain.ClassifierSettings{}).(*LexicalClassifier); !ok {
		t.Fatal("empty endpoint should select the lexical classifier")
	}
	if _, ok := New(domain.ClassifierSettings{Endpoint: "http://localhost:9000"}).(*HTTPClassifier); !ok {
		t.Fatal("configured endpoint should select the HTTP classifier")
	}
}
