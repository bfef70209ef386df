package cli

import (
	"fmt"

	"github.com/iotguard/iotguard/internal/domain"
)

// RenderAdvice prints the advisory result and the execution outcome.
func RenderAdvice(resp domain.AdviceResponse, executionResult string) {
	fmt.Printf("Command Analysis: %s\n", resp.Command)
	if resp.FromCache {
		fmt.Println("Note: result served from cache")
	}

	if resp.Err != nil {
		fmt.Printf("\n%v\n", resp.Err)
		fmt.Println("Command not executed.")
		return
	}

	verdict := resp.Verdict
	if !verdict.Risky() {
		fmt.Println("\nNo vulnerabilities detected.")
		fmt.Printf("Execution Result: %s\n", executionResult)
		return
	}

	fmt.Printf("\nRisk Level: %s %s\n", verdict.RiskLevel, domain.RiskIcon(verdict.RiskLevel))
	if verdict.Explanation != "" {
		fmt.Printf("Why It's Risky: %s\n", verdict.Explanation)
	}
	if verdict.Suggestion != "" {
		fmt.Printf("Suggestion: %s\n", verdict.Suggestion)
	}
	if verdict.SafeVariation1 != "" {
		fmt.Printf("Safe Alternative 1: %s\n", verdict.SafeVariation1)
	}
	if verdict.SafeVariation2 != "" {
		fmt.Printf("Safe Alternative 2: %s\n", verdict.SafeVariation2)
	}
	fmt.Printf("Learn More: %s\n", domain.LearnMoreMessage(verdict.RiskLevel))
	fmt.Println("Command not executed.")
}
