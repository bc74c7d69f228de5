// Package compliance derives compliance artifacts from the session
// event log: metrics, the requirement matrix, violations, the composed
// report, and threshold-based alerts.
package compliance

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/gaia-qao/compliance-backend/internal/domain/compliance"
	"github.com/gaia-qao/compliance-backend/internal/domain/errors"
	"github.com/gaia-qao/compliance-backend/internal/domain/session"
)

// DetectorConfig tunes the violation detector.
type DetectorConfig struct {
	// RequireEndEventCheck preserves the historical behavior of
	// flagging every non-empty session as missing its end event.
	// When false, the detector instead checks for an actual
	// SESSION_ENDED event before raising AGAD-LOG-001.
	RequireEndEventCheck bool `koanf:"require_end_event_check"`
}

// DefaultDetectorConfig returns the compatibility configuration.
func DefaultDetectorConfig() DetectorConfig {
	return DetectorConfig{RequireEndEventCheck: true}
}

// Hooks receive generation and alerting outcomes. Used by the binary
// to feed process metrics; both fields are optional.
type Hooks struct {
	ReportGenerated func(report *compliance.Report, elapsed time.Duration)
	AlertsRaised    func(alerts []compliance.Alert)
}

// Service generates compliance reports over the session event log.
type Service struct {
	logger *zap.Logger
	events session.Repository
	config DetectorConfig
	hooks  Hooks
}

// SetHooks installs outcome hooks. Call before serving traffic; the
// hooks are not guarded by a lock.
func (s *Service) SetHooks(hooks Hooks) {
	s.hooks = hooks
}

// NewService creates a compliance service bound to an event repository.
func NewService(logger *zap.Logger, events session.Repository, config DetectorConfig) *Service {
	return &Service{
		logger: logger,
		events: events,
		config: config,
	}
}

// GenerateReport fetches the session's events and produces a report.
// An unknown level is rejected; an empty log yields a well-formed
// report with zero-valued metrics rather than an error.
func (s *Service) GenerateReport(ctx context.Context, sessionID string, level compliance.Level) (*compliance.Report, error) {
	if !level.Valid() {
		return nil, errors.NewValidationError("INVALID_COMPLIANCE_LEVEL",
			"unknown compliance level: "+string(level))
	}

	events, err := s.events.BySession(ctx, sessionID)
	if err != nil {
		s.logger.Error("failed to fetch session events",
			zap.String("session_id", sessionID),
			zap.Error(err))
		return nil, errors.Wrap(err, "fetching session events")
	}

	report := s.GenerateReportForEvents(events, level)

	s.logger.Info("compliance report generated",
		zap.String("session_id", sessionID),
		zap.String("level", string(level)),
		zap.Int("total_events", report.Metrics.TotalEvents),
		zap.Int("compliance_score", report.Metrics.ComplianceScore),
		zap.Int("violations", len(report.Violations)),
		zap.String("status", string(report.ComplianceStatus)))

	return report, nil
}

// GenerateReportForEvents produces a report from an explicit event
// slice. Pure except for timestamps.
func (s *Service) GenerateReportForEvents(events []*session.Event, level compliance.Level) *compliance.Report {
	start := time.Now()
	report := assembleReport(events, level, s.config)
	if s.hooks.ReportGenerated != nil {
		s.hooks.ReportGenerated(report, time.Since(start))
	}
	return report
}

// MonitorCompliance compares a report against thresholds and returns
// the resulting alerts.
func (s *Service) MonitorCompliance(report *compliance.Report, thresholds compliance.Thresholds) []compliance.Alert {
	alerts := DetectAlerts(report, thresholds)
	if s.hooks.AlertsRaised != nil && len(alerts) > 0 {
		s.hooks.AlertsRaised(alerts)
	}
	if len(alerts) > 0 {
		s.logger.Debug("compliance monitoring pass",
			zap.String("level", string(report.Level)),
			zap.Int("alerts", len(alerts)))
	}
	return alerts
}
