package monitor

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	domain "github.com/gaia-qao/compliance-backend/internal/domain/compliance"
	"github.com/gaia-qao/compliance-backend/internal/domain/infocode"
	"github.com/gaia-qao/compliance-backend/internal/domain/session"
	"github.com/gaia-qao/compliance-backend/internal/infrastructure/eventlog"
	compliancesvc "github.com/gaia-qao/compliance-backend/internal/service/compliance"
)

func newTestMonitor(t *testing.T) (*Monitor, *eventlog.MemoryRepository) {
	t.Helper()
	repo := eventlog.NewMemoryRepository()
	svc := compliancesvc.NewService(zaptest.NewLogger(t), repo, compliancesvc.DefaultDetectorConfig())
	return New(zaptest.NewLogger(t), svc), repo
}

func seedSession(t *testing.T, repo *eventlog.MemoryRepository, sessionID string, n int) {
	t.Helper()
	ctx := context.Background()
	for i := 0; i < n; i++ {
		eventType := session.EventUserQuery
		if i == 0 {
			eventType = session.EventSessionStarted
		}
		event, err := session.NewEvent(sessionID, infocode.Generate(session.PrefixQuery, sessionID), eventType, nil)
		require.NoError(t, err)
		require.NoError(t, repo.Append(ctx, event))
	}
}

func waitFor(t *testing.T, timeout time.Duration, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(timeout)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	require.Fail(t, "condition not met within "+timeout.String())
}

func TestMonitor_StartValidation(t *testing.T) {
	m, _ := newTestMonitor(t)
	ctx := context.Background()

	tests := []struct {
		name      string
		sessionID string
		interval  time.Duration
		level     domain.Level
	}{
		{"missing session id", "", time.Second, domain.LevelAGADL1},
		{"zero interval", "s1", 0, domain.LevelAGADL1},
		{"negative interval", "s1", -time.Second, domain.LevelAGADL1},
		{"unknown level", "s1", time.Second, domain.Level("AGAD-L9")},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := m.Start(ctx, tt.sessionID, tt.interval, tt.level)
			assert.Error(t, err)
		})
	}
}

func TestMonitor_StartRecordsHistory(t *testing.T) {
	m, repo := newTestMonitor(t)
	seedSession(t, repo, "s1", 5)

	require.NoError(t, m.Start(context.Background(), "s1", 10*time.Millisecond, domain.LevelAGADL1))
	defer m.Stop("s1")

	assert.True(t, m.Monitoring("s1"))

	waitFor(t, 2*time.Second, func() bool {
		return len(m.History("s1")) >= 2
	})

	history := m.History("s1")
	point := history[0]
	assert.Greater(t, point.ComplianceScore, 0)
	assert.Equal(t, 100, point.InfoCodeCompliance)
	assert.Equal(t, 2, point.ViolationCount)
}

func TestMonitor_StopIsIdempotent(t *testing.T) {
	m, repo := newTestMonitor(t)
	seedSession(t, repo, "s1", 3)

	require.NoError(t, m.Start(context.Background(), "s1", 10*time.Millisecond, domain.LevelAGADL1))
	m.Stop("s1")
	assert.False(t, m.Monitoring("s1"))

	m.Stop("s1")
	m.Stop("never-started")
}

func TestMonitor_RestartReplacesLoop(t *testing.T) {
	m, repo := newTestMonitor(t)
	seedSession(t, repo, "s1", 3)
	ctx := context.Background()

	require.NoError(t, m.Start(ctx, "s1", time.Hour, domain.LevelAGADL1))
	require.NoError(t, m.Start(ctx, "s1", 10*time.Millisecond, domain.LevelCOAFIFull))
	defer m.Stop("s1")

	assert.True(t, m.Monitoring("s1"))
	waitFor(t, 2*time.Second, func() bool {
		return len(m.History("s1")) >= 1
	})
}

func TestMonitor_HistoryRingIsBoundedNewestFirst(t *testing.T) {
	m, repo := newTestMonitor(t)
	seedSession(t, repo, "s1", 5)
	ctx := context.Background()

	m.mu.Lock()
	m.generations["s1"]++
	w := &watch{
		sessionID:  "s1",
		level:      domain.LevelAGADL1,
		generation: m.generations["s1"],
	}
	m.mu.Unlock()

	for i := 0; i < historyCap+20; i++ {
		m.tick(ctx, w)
	}

	history := m.History("s1")
	require.Len(t, history, historyCap)
	for i := 1; i < len(history); i++ {
		assert.False(t, history[i-1].Timestamp.Before(history[i].Timestamp),
			"history must be newest first at index %d", i)
	}
}

func TestMonitor_StaleTickResultIsDropped(t *testing.T) {
	m, repo := newTestMonitor(t)
	seedSession(t, repo, "s1", 5)
	ctx := context.Background()

	m.mu.Lock()
	m.generations["s1"] = 3
	m.mu.Unlock()

	stale := &watch{
		sessionID:  "s1",
		level:      domain.LevelAGADL1,
		generation: 2,
	}
	m.tick(ctx, stale)

	assert.Empty(t, m.History("s1"))
	assert.Empty(t, m.Alerts("s1"))
}

func TestMonitor_OverlappingTickIsSkipped(t *testing.T) {
	m, repo := newTestMonitor(t)
	seedSession(t, repo, "s1", 5)
	ctx := context.Background()

	m.mu.Lock()
	m.generations["s1"] = 1
	m.mu.Unlock()

	w := &watch{
		sessionID:  "s1",
		level:      domain.LevelAGADL1,
		generation: 1,
	}
	w.inFlight.Store(true)
	m.tick(ctx, w)
	assert.Empty(t, m.History("s1"))

	w.inFlight.Store(false)
	m.tick(ctx, w)
	assert.Len(t, m.History("s1"), 1)
}

func TestMonitor_AlertsAccumulateNewestFirst(t *testing.T) {
	m, repo := newTestMonitor(t)
	seedSession(t, repo, "s1", 5)
	ctx := context.Background()

	m.mu.Lock()
	m.generations["s1"] = 1
	m.mu.Unlock()
	w := &watch{sessionID: "s1", level: domain.LevelAGADL1, generation: 1}

	// A clean 5-event session passes every default threshold, so the
	// first tick only raises the no-significant-violations notice.
	m.tick(ctx, w)
	first := m.Alerts("s1")
	require.Len(t, first, 1)
	assert.Equal(t, "No Significant Violations", first[0].Title)

	// Raising the overall bound makes the second tick breach it.
	require.NoError(t, m.SetThresholds(domain.Thresholds{
		OverallCompliance:   100,
		CriticalViolations:  1,
		InfoCodeCompliance:  85,
		SessionCompleteness: 90,
		Traceability:        85,
	}))
	m.tick(ctx, w)

	alerts := m.Alerts("s1")
	require.Len(t, alerts, 3)
	assert.Equal(t, "Overall Compliance Below Threshold", alerts[0].Title)
	assert.Equal(t, domain.AlertCritical, alerts[0].Severity)
	assert.Equal(t, first[0].ID, alerts[len(alerts)-1].ID, "first tick's alert must sink to the end")
	assert.False(t, alerts[0].Timestamp.Before(alerts[len(alerts)-1].Timestamp))
}

func TestMonitor_ThresholdsRoundTrip(t *testing.T) {
	m, _ := newTestMonitor(t)

	assert.Equal(t, domain.DefaultThresholds(), m.Thresholds())

	updated := domain.Thresholds{
		OverallCompliance:   70,
		CriticalViolations:  2,
		InfoCodeCompliance:  75,
		SessionCompleteness: 80,
		Traceability:        75,
	}
	require.NoError(t, m.SetThresholds(updated))
	assert.Equal(t, updated, m.Thresholds())
}

func TestMonitor_SetThresholdsRejectsOutOfRange(t *testing.T) {
	m, _ := newTestMonitor(t)

	err := m.SetThresholds(domain.Thresholds{
		OverallCompliance:   140,
		CriticalViolations:  -1,
		InfoCodeCompliance:  85,
		SessionCompleteness: 90,
		Traceability:        85,
	})
	require.Error(t, err)
	assert.Equal(t, domain.DefaultThresholds(), m.Thresholds())
}

func TestMonitor_ClearHistoryAndAlerts(t *testing.T) {
	m, repo := newTestMonitor(t)
	seedSession(t, repo, "s1", 5)
	ctx := context.Background()

	m.mu.Lock()
	m.generations["s1"] = 1
	m.mu.Unlock()
	w := &watch{sessionID: "s1", level: domain.LevelAGADL1, generation: 1}
	m.tick(ctx, w)

	require.NotEmpty(t, m.History("s1"))

	m.ClearHistory("s1")
	m.ClearAlerts("s1")
	assert.Empty(t, m.History("s1"))
	assert.Empty(t, m.Alerts("s1"))
}

func TestMonitor_StopAll(t *testing.T) {
	m, repo := newTestMonitor(t)
	seedSession(t, repo, "s1", 3)
	seedSession(t, repo, "s2", 3)
	ctx := context.Background()

	require.NoError(t, m.Start(ctx, "s1", 10*time.Millisecond, domain.LevelAGADL1))
	require.NoError(t, m.Start(ctx, "s2", 10*time.Millisecond, domain.LevelAGADL2))

	m.StopAll()

	assert.False(t, m.Monitoring("s1"))
	assert.False(t, m.Monitoring("s2"))
}
