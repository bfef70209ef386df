package analyzer

import (
	"context"
	"fmt"

	"github.com/iotguard/iotguard/internal/domain"
	"github.com/iotguard/iotguard/internal/ports"
)

// CatalogMatcher finds the catalog entry most similar to a command.
type CatalogMatcher interface {
	Match(command string, entries []domain.RiskEntry) (domain.RiskEntry, bool)
}

// LocalAnalyzer is the offline analysis backend: the classifier screens the
// command, and on a risky label the catalog matcher supplies the explanatory
// entry. It renders its result in the same labeled-line grammar as the
// external analyzer so the cache and parsing path stay uniform.
type LocalAnalyzer struct {
	classifier ports.Classifier
	matcher    CatalogMatcher
	catalog    ports.CatalogRepository
	logger     ports.Logger
}

// NewLocal builds the local analyzer.
func NewLocal(classifier ports.Classifier, matcher CatalogMatcher, catalog ports.CatalogRepository, logger ports.Logger) *LocalAnalyzer {
	return &LocalAnalyzer{
		classifier: classifier,
		matcher:    matcher,
		catalog:    catalog,
		logger:     logger,
	}
}

func (a *LocalAnalyzer) Name() string {
	return "local"
}

// Analyze classifies the command and, when risky, looks up the closest
// catalog entry. A risky command without a catalog match still reports a
// Medium risk so the screening signal is never silently dropped.
func (a *LocalAnalyzer) Analyze(ctx context.Context, req ports.AnalysisRequest) (string, error) {
	label, err := a.classifier.Classify(ctx, req.Command)
	if err != nil {
		return "", fmt.Errorf("classify: %w", err)
	}
	if label == domain.LabelSafe {
		return renderReply(domain.RiskVerdict{
			RiskLevel:   domain.RiskNone,
			Explanation: "No significant security risks identified.",
			Suggestion:  "No action required.",
		}), nil
	}

	entry, ok := a.matcher.Match(req.Command, a.catalog.Entries())
	if !ok {
		a.logger.Debug("risky command without catalog match", map[string]interface{}{
			"command": req.Command,
		})
		return renderReply(domain.RiskVerdict{
			RiskLevel:   domain.RiskMedium,
			Explanation: "The command resembles known risky commands but matches no catalog entry.",
			Suggestion:  "Review the command manually before executing it.",
		}), nil
	}

	a.logger.Debug("catalog entry matched", map[string]interface{}{
		"command": req.Command,
		"entry":   entry.ID,
	})
	return renderReply(domain.RiskVerdict{
		RiskLevel:   entry.RiskLevel,
		Explanation: entry.Explanation,
		Suggestion:  entry.Suggestion,
	}), nil
}

// renderReply serializes a verdict into the labeled-line reply grammar.
// Empty variations render as "None", matching what the prompt asks of the
// external model.
func renderReply(v domain.RiskVerdict) string {
	v1 := v.SafeVariation1
	if v1 == "" {
		v1 = "None"
	}
	v2 := v.SafeVariation2
	if v2 == "" {
		v2 = "None"
	}
	return fmt.Sprintf(
		"- Risk Level: %s\n- Explanation: %s\n- Suggestion: %s\n- Safe Command Variation 1: %s\n- Safe Command Variation 2: %s",
		v.RiskLevel, v.Explanation, v.Suggestion, v1, v2)
}

var _ ports.Analyzer = (*LocalAnalyzer)(nil)
