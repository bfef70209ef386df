// Package classifier provides the binary safe/risky command pre-filter. The
// served fine-tuned model is used when an endpoint is configured; otherwise a
// lexical approximation of its training data stands in.
package classifier

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/iotguard/iotguard/internal/domain"
	"github.com/iotguard/iotguard/internal/ports"
)

// maxTokens mirrors the sequence length the model was trained with; longer
// commands are truncated before classification.
const maxTokens = 64

// New selects the HTTP classifier when an endpoint is configured and the
// lexical fallback otherwise.
func New(settings domain.ClassifierSettings) ports.Classifier {
	if settings.Endpoint != "" {
		return NewHTTP(settings.Endpoint)
	}
	return NewLexical()
}

// HTTPClassifier calls a served sequence-classification model.
type HTTPClassifier struct {
	endpoint string
	client   *http.Client
}

// NewHTTP returns a classifier backed by the model served at endpoint.
func NewHTTP(endpoint string) *HTTPClassifier {
	return &HTTPClassifier{
		endpoint: endpoint,
		client:   &http.Client{Timeout: 15 * time.Second},
	}
}

type classifyRequest struct {
	Text string `json:"text"`
}

type classifyResponse struct {
	Label string `json:"label"`
}

// Classify posts the truncated command to the model endpoint.
func (c *HTTPClassifier) Classify(ctx context.Context, command string) (domain.CommandLabel, error) {
	body, err := json.Marshal(classifyRequest{Text: Truncate(command)})
	if err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("classifier request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		data, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return "", fmt.Errorf("classifier returned %d: %s", resp.StatusCode, strings.TrimSpace(string(data)))
	}

	var parsed classifyResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return "", fmt.Errorf("decode classifier response: %w", err)
	}

	switch parsed.Label {
	case string(domain.LabelSafe):
		return domain.LabelSafe, nil
	case string(domain.LabelRisky):
		return domain.LabelRisky, nil
	default:
		return "", fmt.Errorf("unknown classifier label %q", parsed.Label)
	}
}

// LexicalClassifier flags commands containing terms the model's training set
// labels risky. It errs on the side of risky; the catalog matcher downstream
// decides the actual severity.
type LexicalClassifier struct {
	riskyTerms []string
}

// NewLexical returns the built-in fallback classifier.
func NewLexical() *LexicalClassifier {
	return &LexicalClassifier{
		riskyTerms: []string{
			"unlock",
			"disable",
			"turn off the alarm",
			"open the garage",
			"open the window",
			"start the car",
			"share access",
			"without authentication",
			"all devices",
			"all security",
		},
	}
}

// Classify labels the truncated command by substring matching.
func (c *LexicalClassifier) Classify(_ context.Context, command string) (domain.CommandLabel, error) {
	lower := strings.ToLower(Truncate(command))
	for _, term := range c.riskyTerms {
		if strings.Contains(lower, term) {
			return domain.LabelRisky, nil
		}
	}
	return domain.LabelSafe, nil
}

// Truncate caps the command at the classifier's sequence length, counting
// whitespace-delimited tokens.
func Truncate(command string) string {
	fields := strings.Fields(command)
	if len(fields) <= maxTokens {
		return command
	}
	return strings.Join(fields[:maxTokens], " ")
}

var (
	_ ports.Classifier = (*HTTPClassifier)(nil)
	_ ports.Classifier = (*LexicalClassifier)(nil)
)
