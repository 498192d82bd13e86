// Package explain produces the prose guidance shown after an intervention
// resolves. The primary implementation calls an external grounded-explanation
// composer; when that errors or returns nothing relevant the engine falls
// back to a deterministic template, so explanation availability never
// affects the simulation itself.
package explain

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/brightward-health/pedsim/internal/sim"
)

// Service mirrors sim.Explainer so any implementation here can be handed
// straight to the engine.
type Service interface {
	Explain(ctx context.Context, req sim.ExplainRequest) (string, error)
}

// Template is the local, deterministic composer used when no remote service
// is configured or reachable.
type Template struct{}

func (Template) Explain(_ context.Context, req sim.ExplainRequest) (string, error) {
	if req.Success {
		return fmt.Sprintf(
			"%s was the right call during %q: in a %s emergency it directly addresses the active threat. Keep reassessing vitals after every action.",
			req.InterventionName, req.StageDescription, req.CaseCategory), nil
	}
	return fmt.Sprintf(
		"%s failed this time, which happens even with correct technique. During %q the priority is unchanged: reattempt or escalate, and watch for deterioration while you do.",
		req.InterventionName, req.StageDescription), nil
}

// WithFallback wraps a remote composer so callers always get usable text:
// remote first, template on any error or empty answer.
type WithFallback struct {
	Remote   Service
	fallback Template
	logger   *zap.Logger
}

func NewWithFallback(remote Service, logger *zap.Logger) *WithFallback {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &WithFallback{Remote: remote, logger: logger}
}

func (s *WithFallback) Explain(ctx context.Context, req sim.ExplainRequest) (string, error) {
	if s.Remote != nil {
		text, err := s.Remote.Explain(ctx, req)
		if err == nil && text != "" {
			return text, nil
		}
		if err != nil {
			s.logger.Warn("explanation composer unavailable, using template",
				zap.String("intervention_id", req.InterventionID),
				zap.Error(err))
		}
	}
	return s.fallback.Explain(ctx, req)
}
