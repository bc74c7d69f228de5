// Package monitor runs periodic compliance checks over active
// sessions, accumulating alerts and a bounded metric history per
// session.
package monitor

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	domain "github.com/gaia-qao/compliance-backend/internal/domain/compliance"
	"github.com/gaia-qao/compliance-backend/internal/domain/errors"
	compliancesvc "github.com/gaia-qao/compliance-backend/internal/service/compliance"
)

// historyCap bounds the per-session history ring. Points are kept
// newest-first; the oldest point is dropped once the ring is full.
const historyCap = 100

// watch is one session's running monitor loop. The generation is
// captured at start so results from a superseded loop are dropped
// instead of applied.
type watch struct {
	sessionID  string
	level      domain.Level
	interval   time.Duration
	generation uint64
	cancel     context.CancelFunc
	done       chan struct{}
	inFlight   atomic.Bool
}

// Monitor owns the periodic check loops. Thresholds are shared across
// sessions; history and alerts accumulate per session until cleared.
type Monitor struct {
	logger   *zap.Logger
	service  *compliancesvc.Service
	validate *validator.Validate

	mu          sync.RWMutex
	thresholds  domain.Thresholds
	sessions    map[string]*watch
	history     map[string][]domain.HistoryPoint
	alerts      map[string][]domain.Alert
	generations map[string]uint64
}

// New creates a monitor with the default thresholds.
func New(logger *zap.Logger, service *compliancesvc.Service) *Monitor {
	return &Monitor{
		logger:      logger,
		service:     service,
		validate:    validator.New(),
		thresholds:  domain.DefaultThresholds(),
		sessions:    make(map[string]*watch),
		history:     make(map[string][]domain.HistoryPoint),
		alerts:      make(map[string][]domain.Alert),
		generations: make(map[string]uint64),
	}
}

// Start begins monitoring a session at the given interval. Starting a
// session that is already monitored restarts its loop with the new
// interval and level; any result still in flight from the old loop is
// discarded.
func (m *Monitor) Start(ctx context.Context, sessionID string, interval time.Duration, level domain.Level) error {
	if sessionID == "" {
		return errors.NewValidationError("MISSING_SESSION_ID", "session id is required")
	}
	if interval <= 0 {
		return errors.NewValidationError("INVALID_INTERVAL", "monitoring interval must be positive")
	}
	if !level.Valid() {
		return errors.NewValidationError("INVALID_COMPLIANCE_LEVEL",
			"unknown compliance level: "+string(level))
	}

	m.mu.Lock()
	if existing, ok := m.sessions[sessionID]; ok {
		existing.cancel()
	}
	m.generations[sessionID]++
	loopCtx, cancel := context.WithCancel(context.WithoutCancel(ctx))
	w := &watch{
		sessionID:  sessionID,
		level:      level,
		interval:   interval,
		generation: m.generations[sessionID],
		cancel:     cancel,
		done:       make(chan struct{}),
	}
	m.sessions[sessionID] = w
	m.mu.Unlock()

	m.logger.Info("compliance monitoring started",
		zap.String("session_id", sessionID),
		zap.Duration("interval", interval),
		zap.String("level", string(level)))

	go m.run(loopCtx, w)
	return nil
}

// Stop halts monitoring for a session. Stopping a session that is not
// monitored is a no-op; Stop is safe to call repeatedly.
func (m *Monitor) Stop(sessionID string) {
	m.mu.Lock()
	w, ok := m.sessions[sessionID]
	if ok {
		delete(m.sessions, sessionID)
		m.generations[sessionID]++
	}
	m.mu.Unlock()

	if !ok {
		return
	}

	w.cancel()
	<-w.done

	m.logger.Info("compliance monitoring stopped",
		zap.String("session_id", sessionID))
}

// StopAll halts every running loop. Used during shutdown.
func (m *Monitor) StopAll() {
	m.mu.Lock()
	watches := make([]*watch, 0, len(m.sessions))
	for sessionID, w := range m.sessions {
		watches = append(watches, w)
		delete(m.sessions, sessionID)
		m.generations[sessionID]++
	}
	m.mu.Unlock()

	for _, w := range watches {
		w.cancel()
		<-w.done
	}
}

// Monitoring reports whether a session currently has a running loop.
func (m *Monitor) Monitoring(sessionID string) bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	_, ok := m.sessions[sessionID]
	return ok
}

func (m *Monitor) run(ctx context.Context, w *watch) {
	defer close(w.done)

	// First check fires immediately so a freshly monitored session has
	// a history point before the first interval elapses.
	m.tick(ctx, w)

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			m.tick(ctx, w)
		}
	}
}

// tick runs one compliance check. A tick that would overlap a previous
// still-running one for the same loop is skipped, and a result arriving
// after the loop has been superseded is dropped.
func (m *Monitor) tick(ctx context.Context, w *watch) {
	if !w.inFlight.CompareAndSwap(false, true) {
		m.logger.Debug("skipping overlapping monitor tick",
			zap.String("session_id", w.sessionID))
		return
	}
	defer w.inFlight.Store(false)

	report, err := m.service.GenerateReport(ctx, w.sessionID, w.level)
	if err != nil {
		m.logger.Error("monitor tick failed",
			zap.String("session_id", w.sessionID),
			zap.Error(err))
		return
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if m.generations[w.sessionID] != w.generation {
		return
	}

	alerts := m.service.MonitorCompliance(report, m.thresholds)

	point := domain.HistoryPoint{
		Timestamp:           time.Now().UTC(),
		ComplianceScore:     report.Metrics.ComplianceScore,
		ViolationCount:      len(report.Violations),
		CriticalViolations:  report.Metrics.CriticalViolations,
		InfoCodeCompliance:  report.Metrics.InfoCodeCompliancePercent,
		SessionCompleteness: report.Metrics.SessionCompletenessPercent,
		Traceability:        report.Metrics.TraceabilityPercent,
	}

	history := append([]domain.HistoryPoint{point}, m.history[w.sessionID]...)
	if len(history) > historyCap {
		history = history[:historyCap]
	}
	m.history[w.sessionID] = history
	// Newest first, like the history ring.
	m.alerts[w.sessionID] = append(append([]domain.Alert{}, alerts...), m.alerts[w.sessionID]...)

	if len(alerts) > 0 {
		m.logger.Info("monitor tick raised alerts",
			zap.String("session_id", w.sessionID),
			zap.Int("alerts", len(alerts)),
			zap.Int("compliance_score", point.ComplianceScore))
	}
}

// Thresholds returns the current threshold configuration.
func (m *Monitor) Thresholds() domain.Thresholds {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.thresholds
}

// SetThresholds replaces the threshold configuration wholesale after
// validation. Subsequent ticks of every session use the new values.
func (m *Monitor) SetThresholds(thresholds domain.Thresholds) error {
	if err := m.validate.Struct(thresholds); err != nil {
		return errors.NewValidationError("INVALID_THRESHOLDS", err.Error())
	}

	m.mu.Lock()
	m.thresholds = thresholds
	m.mu.Unlock()

	m.logger.Info("monitoring thresholds updated",
		zap.Int("overall_compliance", thresholds.OverallCompliance),
		zap.Int("critical_violations", thresholds.CriticalViolations))
	return nil
}

// History returns a copy of the session's history, newest first.
func (m *Monitor) History(sessionID string) []domain.HistoryPoint {
	m.mu.RLock()
	defer m.mu.RUnlock()

	stored := m.history[sessionID]
	history := make([]domain.HistoryPoint, len(stored))
	copy(history, stored)
	return history
}

// Alerts returns a copy of the session's accumulated alerts.
func (m *Monitor) Alerts(sessionID string) []domain.Alert {
	m.mu.RLock()
	defer m.mu.RUnlock()

	stored := m.alerts[sessionID]
	alerts := make([]domain.Alert, len(stored))
	copy(alerts, stored)
	return alerts
}

// ClearHistory discards the session's history points.
func (m *Monitor) ClearHistory(sessionID string) {
	m.mu.Lock()
	delete(m.history, sessionID)
	m.mu.Unlock()
}

// ClearAlerts discards the session's accumulated alerts.
func (m *Monitor) ClearAlerts(sessionID string) {
	m.mu.Lock()
	delete(m.alerts, sessionID)
	m.mu.Unlock()
}
