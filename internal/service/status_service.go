package service

import (
	"context"

	"go.uber.org/zap"

	"github.com/campus-it/helpdesk-service/internal/domain"
	"github.com/campus-it/helpdesk-service/internal/observability"
	"github.com/campus-it/helpdesk-service/internal/repository"
)

// StatusResult carries a service-status snapshot together with its
// provenance, so callers can tell real data from the substituted
// fallback.
type StatusResult struct {
	Snapshot domain.StatusSnapshot `json:"snapshot"`
	Degraded bool                  `json:"degraded"`
	Reason   string                `json:"reason,omitempty"`
}

// StatusService reads campus service health with a fallback policy.
type StatusService struct {
	status  repository.StatusRepository
	logger  *zap.Logger
	metrics *observability.Metrics
}

// NewStatusService constructs the service.
func NewStatusService(status repository.StatusRepository, logger *zap.Logger, metrics *observability.Metrics) *StatusService {
	return &StatusService{status: status, logger: logger, metrics: metrics}
}

// FetchServiceStatus returns the current snapshot, or the fixed
// fallback when the status source errors or reports an incomplete set
// of services. It never fails: service status is decorative and must
// not block dashboard render.
func (s *StatusService) FetchServiceStatus(ctx context.Context) StatusResult {
	snapshot, err := s.status.FetchSnapshot(ctx)
	if err != nil {
		return s.fallback(err.Error())
	}
	for _, name := range domain.MonitoredServices {
		if _, ok := snapshot[name]; !ok {
			return s.fallback("incomplete snapshot: missing " + string(name))
		}
	}
	return StatusResult{Snapshot: snapshot}
}

func (s *StatusService) fallback(reason string) StatusResult {
	s.logger.Warn("service status unavailable, using fallback snapshot", zap.String("reason", reason))
	s.metrics.RecordStatusFallback()
	return StatusResult{
		Snapshot: domain.FallbackSnapshot(),
		Degraded: true,
		Reason:   reason,
	}
}
