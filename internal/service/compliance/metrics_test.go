package compliance

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gaia-qao/compliance-backend/internal/domain/compliance"
	"github.com/gaia-qao/compliance-backend/internal/domain/infocode"
	"github.com/gaia-qao/compliance-backend/internal/domain/session"
)

func makeEvents(t *testing.T, n int) []*session.Event {
	t.Helper()

	base := time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)
	events := make([]*session.Event, 0, n)
	for i := 0; i < n; i++ {
		eventType := session.EventUserQuery
		if i == 0 {
			eventType = session.EventSessionStarted
		}
		event, err := session.NewEvent("session-1", infocode.Generate(session.PrefixQuery, "session-1"), eventType, map[string]interface{}{
			"seq": i,
		})
		require.NoError(t, err)
		event.Timestamp = base.Add(time.Duration(i) * time.Second)
		events = append(events, event)
	}
	return events
}

func TestComputeMetrics_EmptyLog(t *testing.T) {
	metrics := ComputeMetrics(nil, compliance.LevelAGADL1)

	assert.Equal(t, 0, metrics.ComplianceScore)
	assert.Equal(t, 0, metrics.TotalEvents)
	assert.Equal(t, 0, metrics.EventCoveragePercent)
	assert.Equal(t, 0, metrics.InfoCodeCompliancePercent)
	assert.Equal(t, 0, metrics.SessionCompletenessPercent)
	assert.Equal(t, 0, metrics.TraceabilityPercent)
	assert.Equal(t, 0, metrics.InfoCodeHierarchyPercent)
	assert.Empty(t, metrics.ComponentCoverage)
	assert.Empty(t, metrics.EventTypeDistribution)
	assert.Equal(t, 0, metrics.ViolationCount)
}

func TestComputeMetrics_FullyCompliantLog(t *testing.T) {
	events := makeEvents(t, 10)

	metrics := ComputeMetrics(events, compliance.LevelAGADL1)

	assert.Equal(t, 10, metrics.TotalEvents)
	assert.Equal(t, 10, metrics.ValidInfoCodes)
	assert.Equal(t, 100, metrics.InfoCodeCompliancePercent)
	assert.Equal(t, 100, metrics.EventCoveragePercent)
	assert.Equal(t, 90, metrics.SessionCompletenessPercent)
	assert.Equal(t, 85, metrics.TraceabilityPercent)

	// round(100*0.3 + 90*0.2 + 85*0.3 + 100*0.2) = round(93.5) = 94
	assert.Equal(t, 94, metrics.ComplianceScore)
}

func TestComputeMetrics_Deterministic(t *testing.T) {
	events := makeEvents(t, 7)

	first := ComputeMetrics(events, compliance.LevelCOAFIFull)
	second := ComputeMetrics(events, compliance.LevelCOAFIFull)

	assert.Equal(t, first, second)
}

func TestComputeMetrics_LooseInfoCodeCheck(t *testing.T) {
	events := makeEvents(t, 4)
	events[1].InfoCode = ""          // missing
	events[2].InfoCode = "NODASHES"  // present but unstructured
	events[3].InfoCode = "custom-x1" // loose but dashed, counts

	metrics := ComputeMetrics(events, compliance.LevelAGADL1)

	assert.Equal(t, 2, metrics.ValidInfoCodes)
	assert.Equal(t, 50, metrics.InfoCodeCompliancePercent)
}

func TestComputeMetrics_Distributions(t *testing.T) {
	events := makeEvents(t, 5)
	events[4].EventType = ""
	events[4].InfoCode = ""

	metrics := ComputeMetrics(events, compliance.LevelAGADL1)

	assert.Equal(t, 1, metrics.EventTypeDistribution[session.EventSessionStarted])
	assert.Equal(t, 3, metrics.EventTypeDistribution[session.EventUserQuery])
	assert.Equal(t, 1, metrics.EventTypeDistribution["UNKNOWN"])

	// Events without an InfoCode contribute no prefix bucket.
	total := 0
	for _, count := range metrics.InfoCodePrefixDistribution {
		total += count
	}
	assert.Equal(t, 4, total)
	assert.Equal(t, 4, metrics.InfoCodePrefixDistribution[session.PrefixQuery])
}

func TestComputeMetrics_ViolationEstimates(t *testing.T) {
	events := makeEvents(t, 100)

	metrics := ComputeMetrics(events, compliance.LevelAGADL1)

	assert.Equal(t, 5, metrics.ViolationCount)
	assert.Equal(t, 1, metrics.CriticalViolations)
	assert.Equal(t, 1, metrics.MajorViolations)
	assert.Equal(t, 3, metrics.MinorViolations)
	assert.Equal(t, metrics.ViolationCount,
		metrics.CriticalViolations+metrics.MajorViolations+metrics.MinorViolations)
}

func TestComputeMetrics_ScoreBounds(t *testing.T) {
	for _, n := range []int{0, 1, 2, 5, 13, 50} {
		t.Run(fmt.Sprintf("events_%d", n), func(t *testing.T) {
			events := makeEvents(t, n)
			if n > 2 {
				events[1].InfoCode = ""
			}
			metrics := ComputeMetrics(events, compliance.LevelAGADL2)
			assert.GreaterOrEqual(t, metrics.ComplianceScore, 0)
			assert.LessOrEqual(t, metrics.ComplianceScore, 100)
		})
	}
}

func TestRoundPercent(t *testing.T) {
	tests := []struct {
		n, d, want int
	}{
		{0, 0, 0},
		{5, 0, 0},
		{1, 2, 50},
		{1, 3, 33},
		{2, 3, 67},
		{10, 10, 100},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, roundPercent(tt.n, tt.d), "roundPercent(%d, %d)", tt.n, tt.d)
	}
}
