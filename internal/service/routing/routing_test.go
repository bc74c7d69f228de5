package routing

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/gaia-qao/compliance-backend/internal/domain/session"
	"github.com/gaia-qao/compliance-backend/internal/infrastructure/eventlog"
	"github.com/gaia-qao/compliance-backend/internal/service/analysis"
)

func TestScore_RegistryQueryPrefersAerospaceLLM(t *testing.T) {
	result := &analysis.Result{
		DetectedTypes:         []analysis.FileType{analysis.FileText},
		PrimaryIntent:         analysis.IntentRegistryQuery,
		RequiresRegistryQuery: true,
	}

	recommendations := Score(result)
	require.NotEmpty(t, recommendations)

	primary := recommendations[0]
	assert.Equal(t, "aerospace-llm", primary.ModelID)
	// intent 0.5 + full input-type overlap 0.3 + registry bonus 0.2
	assert.InDelta(t, 1.0, primary.Confidence, 0.0001)
	assert.Contains(t, primary.Reason, "Supports registry_query intent")
	assert.Contains(t, primary.Reason, "Can parse registry queries")
	assert.Contains(t, primary.Reason, "Overall match score: 100%")
}

func TestScore_FallbackConfidenceIsDamped(t *testing.T) {
	result := &analysis.Result{
		DetectedTypes: []analysis.FileType{analysis.FileText},
		PrimaryIntent: analysis.IntentKnowledgeQuery,
	}

	recommendations := Score(result)
	require.Len(t, recommendations, 3)

	for i := 1; i < len(recommendations); i++ {
		assert.LessOrEqual(t, recommendations[i].Confidence, recommendations[0].Confidence)
	}

	// Scores sort descending; fallbacks carry score*0.8.
	assert.GreaterOrEqual(t, recommendations[0].Confidence, recommendations[1].Confidence/0.8-0.0001)
}

func TestScore_TelemetryBonus(t *testing.T) {
	result := &analysis.Result{
		DetectedTypes: []analysis.FileType{analysis.FileTelemetry},
		PrimaryIntent: analysis.IntentTelemetryAnalysis,
	}

	recommendations := Score(result)
	require.NotEmpty(t, recommendations)
	assert.Equal(t, "telemetry-analyzer", recommendations[0].ModelID)
	assert.Contains(t, recommendations[0].Reason, "Specialized in telemetry analysis")
}

func TestScore_IneligibleTypesExcluded(t *testing.T) {
	result := &analysis.Result{
		DetectedTypes: []analysis.FileType{analysis.FileQuantumData},
		PrimaryIntent: analysis.IntentQuantumSimulation,
	}

	recommendations := Score(result)
	require.Len(t, recommendations, 1)
	assert.Equal(t, "quantum-simulator", recommendations[0].ModelID)
}

func TestScore_NoDetectedTypes(t *testing.T) {
	result := &analysis.Result{
		PrimaryIntent: analysis.IntentKnowledgeQuery,
	}

	assert.Empty(t, Score(result))
}

func TestRegistry_ReturnsCopy(t *testing.T) {
	models := Registry()
	require.Len(t, models, 9)
	models[0].ID = "tampered"
	assert.NotEqual(t, "tampered", Registry()[0].ID)
}

func TestRecommend_LogsRoutingEvents(t *testing.T) {
	repo := eventlog.NewMemoryRepository()
	svc := NewService(zaptest.NewLogger(t), repo)
	ctx := context.Background()

	result := &analysis.Result{
		DetectedTypes: []analysis.FileType{analysis.FileText},
		PrimaryIntent: analysis.IntentKnowledgeQuery,
	}

	recommendations, err := svc.Recommend(ctx, "s1", result)
	require.NoError(t, err)
	require.NotEmpty(t, recommendations)

	events, err := repo.BySession(ctx, "s1")
	require.NoError(t, err)
	require.Len(t, events, 2)
	assert.Equal(t, session.EventModelRoutingStarted, events[0].EventType)
	assert.Equal(t, session.EventModelRoutingCompleted, events[1].EventType)
	assert.Equal(t, events[0].InfoCode, events[1].InfoCode)
	assert.Equal(t, recommendations[0].ModelID, events[1].Details["primaryModel"])
}

func TestRecommend_Validation(t *testing.T) {
	svc := NewService(zaptest.NewLogger(t), eventlog.NewMemoryRepository())

	_, err := svc.Recommend(context.Background(), "", &analysis.Result{})
	assert.Error(t, err)

	_, err = svc.Recommend(context.Background(), "s1", nil)
	assert.Error(t, err)
}
