package domain

import "context"

// AdviceRequest captures one command submission originating from the CLI or
// another front-end.
type AdviceRequest struct {
	Context context.Context
	Command string
	UserID  string
	Device  string
	Rule    SecurityRule
}

// AdviceResponse is the canonical advisory result propagated back to the
// caller. Err is set on degraded outcomes (timeout, service failure,
// permission denial); the Verdict still carries a renderable explanation in
// those cases, and the caller must not execute the command while Err is
// non-nil.
type AdviceResponse struct {
	Command   string
	Verdict   RiskVerdict
	FromCache bool
	Analyzer  string
	Err       error
}

// ExecutionAllowed reports whether the caller may hand the command to the
// device layer: no detected risk, no rule block and no degraded outcome.
func (r AdviceResponse) ExecutionAllowed() bool {
	return r.Err == nil && !r.Verdict.Risky()
}

// AdvisorService exposes the use-case boundary for risk-checking a command.
type AdvisorService interface {
	Check(AdviceRequest) (AdviceResponse, error)
}
