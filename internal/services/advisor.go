// Package services contains application use-cases orchestrating domain logic
// through the ports.
package services

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/iotguard/iotguard/internal/domain"
	"github.com/iotguard/iotguard/internal/ports"
)

const (
	defaultTimeout    = 10 * time.Second
	defaultMaxWorkers = 4
	maxCommandLength  = 100
)

// AdvisorService orchestrates the risk-check lifecycle end-to-end:
// permission check, rule evaluation, cache lookup, analyzer dispatch with a
// bounded wait, reply parsing and session caching.
type AdvisorService struct {
	ConfigProvider ports.ConfigProvider
	Users          ports.UserStore
	Rules          ports.RuleEngine
	Cache          ports.CacheRepository
	Analyzer       ports.Analyzer
	Parser         ports.ReplyParser
	Logger         ports.Logger

	once sync.Once
	sem  chan struct{}
}

// Check risk-assesses a single command submission. Degraded outcomes
// (permission denial, analyzer failure, timeout) are reported in the response
// with Err set rather than as a call error, so callers can always render a
// verdict.
func (s *AdvisorService) Check(req domain.AdviceRequest) (domain.AdviceResponse, error) {
	if s.ConfigProvider == nil || s.Users == nil || s.Rules == nil ||
		s.Cache == nil || s.Analyzer == nil || s.Parser == nil || s.Logger == nil {
		return domain.AdviceResponse{}, errors.New("services.AdvisorService dependencies not satisfied")
	}

	ctx := req.Context
	if ctx == nil {
		ctx = context.Background()
	}

	if req.Command == "" || len(req.Command) > maxCommandLength {
		return domain.AdviceResponse{}, fmt.Errorf("command must be non-empty and at most %d characters", maxCommandLength)
	}

	cfg, err := s.ConfigProvider.Load(ctx)
	if err != nil {
		return domain.AdviceResponse{}, fmt.Errorf("load config: %w", err)
	}

	resp := domain.AdviceResponse{Command: req.Command}

	if req.Device != "" {
		allowed, err := s.deviceAllowed(req.UserID, req.Device)
		if err != nil {
			return domain.AdviceResponse{}, fmt.Errorf("lookup permissions: %w", err)
		}
		if !allowed {
			perr := &domain.PermissionError{UserID: req.UserID, Device: req.Device}
			s.Logger.Warn("device permission denied", map[string]interface{}{
				"user":   req.UserID,
				"device": req.Device,
			})
			resp.Err = perr
			resp.Verdict = domain.RiskVerdict{
				RiskLevel:   domain.RiskBlocked,
				Explanation: perr.Error(),
				Suggestion:  "Ask the master user to grant access to this device.",
			}
			return resp, nil
		}
	}

	rule := req.Rule
	if rule == "" {
		rule = domain.SecurityRule(cfg.Advisor.DefaultRule)
	}
	if rule == "" {
		rule = domain.RuleNone
	}

	outcome := s.Rules.Apply(req.Command, rule)
	if outcome.Blocked {
		s.Logger.Info("command blocked by rule", map[string]interface{}{
			"rule":    string(rule),
			"command": req.Command,
		})
		resp.Verdict = domain.RiskVerdict{
			RiskLevel:   domain.RiskBlocked,
			Explanation: fmt.Sprintf("Command blocked by rule: %s", rule),
			Suggestion:  outcome.Suggestion,
		}
		return resp, nil
	}
	analyzed := outcome.Command
	if analyzed != req.Command {
		s.Logger.Info("command modified by rule", map[string]interface{}{
			"rule":    string(rule),
			"command": analyzed,
		})
	}

	key := cacheKey(req.UserID, analyzed)
	if entry, ok := s.Cache.Get(key); ok {
		s.Logger.Debug("cache hit", map[string]interface{}{"key": key})
		resp.Verdict = s.buildVerdict(req.Command, entry.Reply)
		resp.FromCache = true
		resp.Analyzer = entry.Analyzer
		return resp, nil
	}

	reply, err := s.dispatch(ctx, cfg, ports.AnalysisRequest{
		Command: analyzed,
		UserID:  req.UserID,
		Device:  req.Device,
	})
	if err != nil {
		resp.Err = err
		resp.Analyzer = s.Analyzer.Name()
		resp.Verdict = domain.RiskVerdict{
			RiskLevel:   domain.RiskNone,
			Explanation: err.Error(),
		}
		return resp, nil
	}

	s.Cache.Set(domain.CacheEntry{
		Key:       key,
		Reply:     reply,
		Analyzer:  s.Analyzer.Name(),
		CreatedAt: time.Now(),
	})

	resp.Verdict = s.buildVerdict(req.Command, reply)
	resp.Analyzer = s.Analyzer.Name()
	return resp, nil
}

// dispatch hands the analysis to the bounded worker pool and waits at most
// the configured timeout. A late result is discarded, not cancelled.
func (s *AdvisorService) dispatch(ctx context.Context, cfg domain.Config, req ports.AnalysisRequest) (string, error) {
	s.once.Do(func() {
		workers := cfg.Advisor.MaxWorkers
		if workers <= 0 {
			workers = defaultMaxWorkers
		}
		s.sem = make(chan struct{}, workers)
	})

	timeout := defaultTimeout
	if cfg.Advisor.TimeoutSeconds > 0 {
		timeout = time.Duration(cfg.Advisor.TimeoutSeconds) * time.Second
	}

	type result struct {
		reply string
		err   error
	}
	results := make(chan result, 1)

	select {
	case s.sem <- struct{}{}:
	case <-ctx.Done():
		return "", &domain.ServiceError{Command: req.Command, Err: ctx.Err()}
	}

	go func() {
		defer func() { <-s.sem }()
		// The worker keeps its own context so a caller timeout does not
		// abort an analysis whose result could still warm the cache path
		// of a later identical request.
		reply, err := s.Analyzer.Analyze(context.Background(), req)
		results <- result{reply: reply, err: err}
	}()

	timer := time.NewTimer(timeout)
	defer timer.Stop()

	select {
	case res := <-results:
		if res.err != nil {
			s.Logger.Error("analysis failed", res.err, map[string]interface{}{
				"command": req.Command,
			})
			return "", &domain.ServiceError{Command: req.Command, Err: res.err}
		}
		return res.reply, nil
	case <-timer.C:
		s.Logger.Error("analysis timed out", domain.ErrTimeout, map[string]interface{}{
			"command": req.Command,
			"timeout": timeout.String(),
		})
		return "", fmt.Errorf("analysis of %q: %w", req.Command, domain.ErrTimeout)
	case <-ctx.Done():
		return "", &domain.ServiceError{Command: req.Command, Err: ctx.Err()}
	}
}

// buildVerdict parses a raw reply and normalizes evening times in the safe
// variations against the phrasing of the submitted command.
func (s *AdvisorService) buildVerdict(command, reply string) domain.RiskVerdict {
	verdict, found := s.Parser.Parse(reply)
	if !found {
		return domain.RiskVerdict{RiskLevel: domain.RiskNone}
	}
	verdict.SafeVariation1 = domain.NormalizeTimeFormat(command, verdict.SafeVariation1)
	verdict.SafeVariation2 = domain.NormalizeTimeFormat(command, verdict.SafeVariation2)
	return verdict
}

func (s *AdvisorService) deviceAllowed(userID, device string) (bool, error) {
	perms, err := s.Users.Permissions(userID)
	if err != nil {
		return false, err
	}
	for _, d := range perms {
		if d == device {
			return true, nil
		}
	}
	return false, nil
}

func cacheKey(userID, command string) string {
	return userID + ":" + command
}

// Compile-time interface compliance check
var _ domain.AdvisorService = (*AdvisorService)(nil)
