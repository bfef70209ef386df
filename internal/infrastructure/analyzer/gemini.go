// Package analyzer contains the risk-analysis backends and the shared prompt
// and reply-grammar machinery.
package analyzer

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"regexp"
	"strings"
	"time"

	"github.com/cenkalti/backoff/v4"

	"github.com/iotguard/iotguard/internal/domain"
	"github.com/iotguard/iotguard/internal/ports"
)

const (
	defaultEndpoint   = "https://generativelanguage.googleapis.com/v1beta"
	defaultModel      = "gemini-1.5-pro"
	defaultAuthEnvVar = "GOOGLE_API_KEY"
	defaultMaxRetries = 3
)

// apiKeyPattern is the accepted key shape; anything else is rejected before
// a request is ever made.
var apiKeyPattern = regexp.MustCompile(`^[A-Za-z0-9_-]+$`)

// GeminiAnalyzer calls the Gemini generateContent API. Transient failures
// (5xx, 429, network errors) are retried with exponential backoff; client
// errors fail immediately.
type GeminiAnalyzer struct {
	endpoint   string
	model      string
	apiKey     string
	authEnvVar string
	maxRetries uint64
	client     *http.Client
	logger     ports.Logger
}

type geminiContent struct {
	Parts []geminiPart `json:"parts"`
	Role  string       `json:"role,omitempty"`
}

type geminiPart struct {
	Text string `json:"text,omitempty"`
}

type geminiRequest struct {
	Contents []geminiContent `json:"contents"`
}

type geminiResponse struct {
	Candidates []struct {
		Content struct {
			Parts []geminiPart `json:"parts"`
		} `json:"content"`
	} `json:"candidates"`
}

type geminiError struct {
	Error struct {
		Message string `json:"message"`
		Status  string `json:"status"`
	} `json:"error"`
}

// NewGemini validates the API key from the configured environment variable
// and returns the analyzer. Construction fails on a missing or malformed key
// so a broken setup surfaces at startup, not mid-analysis.
func NewGemini(settings domain.AnalyzerSettings, logger ports.Logger) (*GeminiAnalyzer, error) {
	envVar := settings.AuthEnvVar
	if envVar == "" {
		envVar = defaultAuthEnvVar
	}
	apiKey := strings.TrimSpace(os.Getenv(envVar))
	if apiKey == "" {
		return nil, fmt.Errorf("API key not found in environment variable %s", envVar)
	}
	if !apiKeyPattern.MatchString(apiKey) {
		return nil, fmt.Errorf("invalid API key format in %s", envVar)
	}

	endpoint := strings.TrimSuffix(settings.Endpoint, "/")
	if endpoint == "" {
		endpoint = defaultEndpoint
	}
	model := settings.Model
	if model == "" {
		model = defaultModel
	}
	maxRetries := uint64(defaultMaxRetries)
	if settings.MaxRetries > 0 {
		maxRetries = uint64(settings.MaxRetries)
	}

	return &GeminiAnalyzer{
		endpoint:   endpoint,
		model:      model,
		apiKey:     apiKey,
		authEnvVar: envVar,
		maxRetries: maxRetries,
		client:     &http.Client{Timeout: 30 * time.Second},
		logger:     logger,
	}, nil
}

func (a *GeminiAnalyzer) Name() string {
	return "gemini"
}

// Analyze renders the prompt and calls generateContent, retrying transient
// failures.
func (a *GeminiAnalyzer) Analyze(ctx context.Context, req ports.AnalysisRequest) (string, error) {
	prompt, err := BuildPrompt(req)
	if err != nil {
		return "", fmt.Errorf("build prompt: %w", err)
	}

	var reply string
	operation := func() error {
		var opErr error
		reply, opErr = a.generate(ctx, prompt)
		return opErr
	}

	policy := backoff.WithContext(
		backoff.WithMaxRetries(backoff.NewExponentialBackOff(), a.maxRetries), ctx)
	if err := backoff.Retry(operation, policy); err != nil {
		return "", err
	}

	a.logger.Debug("gemini reply received", map[string]interface{}{
		"model":   a.model,
		"command": req.Command,
	})
	return reply, nil
}

func (a *GeminiAnalyzer) generate(ctx context.Context, prompt string) (string, error) {
	body, err := json.Marshal(geminiRequest{
		Contents: []geminiContent{
			{Role: "user", Parts: []geminiPart{{Text: prompt}}},
		},
	})
	if err != nil {
		return "", backoff.Permanent(err)
	}

	url := fmt.Sprintf("%s/models/%s:generateContent?key=%s", a.endpoint, a.model, a.apiKey)
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return "", backoff.Permanent(err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := a.client.Do(httpReq)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", a.statusError(resp)
	}

	var parsed geminiResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return "", backoff.Permanent(fmt.Errorf("decode response: %w", err))
	}
	if len(parsed.Candidates) == 0 || len(parsed.Candidates[0].Content.Parts) == 0 {
		return "", backoff.Permanent(errors.New("empty response from Gemini API"))
	}

	var sb strings.Builder
	for _, part := range parsed.Candidates[0].Content.Parts {
		sb.WriteString(part.Text)
	}
	if strings.TrimSpace(sb.String()) == "" {
		return "", backoff.Permanent(errors.New("empty response from Gemini API"))
	}
	return sb.String(), nil
}

// statusError maps a non-200 response to a retryable or permanent error.
// An invalid-key rejection gets a message naming the environment variable to
// fix.
func (a *GeminiAnalyzer) statusError(resp *http.Response) error {
	data, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))

	var apiErr geminiError
	message := strings.TrimSpace(string(data))
	if json.Unmarshal(data, &apiErr) == nil && apiErr.Error.Message != "" {
		message = apiErr.Error.Message
	}

	if strings.Contains(string(data), "API_KEY_INVALID") {
		return backoff.Permanent(fmt.Errorf(
			"Invalid API key. Please update the %s environment variable with a valid Gemini API key", a.authEnvVar))
	}

	err := fmt.Errorf("API error (status %d): %s", resp.StatusCode, message)
	if resp.StatusCode == http.StatusTooManyRequests || resp.StatusCode >= 500 {
		return err
	}
	return backoff.Permanent(err)
}

var _ ports.Analyzer = (*GeminiAnalyzer)(nil)
