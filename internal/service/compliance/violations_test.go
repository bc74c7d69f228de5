package compliance

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gaia-qao/compliance-backend/internal/domain/compliance"
	"github.com/gaia-qao/compliance-backend/internal/domain/session"
)

func findViolation(violations []compliance.Violation, requirementID string) (compliance.Violation, bool) {
	for _, v := range violations {
		if v.RequirementID == requirementID {
			return v, true
		}
	}
	return compliance.Violation{}, false
}

func TestDetectViolations_EmptyLog(t *testing.T) {
	violations := DetectViolations(nil, compliance.LevelCOAFIFull, DefaultDetectorConfig())
	assert.Nil(t, violations)
}

func TestDetectViolations_MissingInfoCodes(t *testing.T) {
	events := makeEvents(t, 10)
	events[3].InfoCode = ""

	violations := DetectViolations(events, compliance.LevelAGADL1, DefaultDetectorConfig())

	matches := 0
	var found compliance.Violation
	for _, v := range violations {
		if v.RequirementID == compliance.ReqValidInfoCodes {
			matches++
			found = v
		}
	}
	require.Equal(t, 1, matches, "exactly one missing-InfoCode violation expected")

	assert.Equal(t, violationMissingInfoCodes, found.ID)
	assert.Equal(t, compliance.SeverityMajor, found.Severity)
	assert.Equal(t, 1, found.Details["affectedCount"])
	assert.Equal(t, []string{session.EventUserQuery}, found.Details["examples"])
	require.Len(t, found.RelatedEvents, 1)
	assert.Equal(t, "MISSING", found.RelatedEvents[0].InfoCode)
}

func TestDetectViolations_MissingInfoCodesCapsExamples(t *testing.T) {
	events := makeEvents(t, 8)
	for i := 1; i < 6; i++ {
		events[i].InfoCode = ""
	}

	violations := DetectViolations(events, compliance.LevelAGADL1, DefaultDetectorConfig())

	v, ok := findViolation(violations, compliance.ReqValidInfoCodes)
	require.True(t, ok)
	assert.Equal(t, 5, v.Details["affectedCount"])
	assert.Len(t, v.Details["examples"], maxViolationExamples)
	assert.Len(t, v.RelatedEvents, maxViolationExamples)
}

func TestDetectViolations_NoMissingInfoCodes(t *testing.T) {
	events := makeEvents(t, 5)

	violations := DetectViolations(events, compliance.LevelAGADL1, DefaultDetectorConfig())

	_, ok := findViolation(violations, compliance.ReqValidInfoCodes)
	assert.False(t, ok)
}

func TestDetectViolations_EndEventCheckModes(t *testing.T) {
	withEnd := makeEvents(t, 4)
	withEnd[3].EventType = session.EventSessionEnded

	withoutEnd := makeEvents(t, 4)

	tests := []struct {
		name   string
		events []*session.Event
		config DetectorConfig
		want   bool
	}{
		{"compat mode flags even ended sessions", withEnd, DefaultDetectorConfig(), true},
		{"compat mode flags open sessions", withoutEnd, DefaultDetectorConfig(), true},
		{"strict mode passes ended sessions", withEnd, DetectorConfig{RequireEndEventCheck: false}, false},
		{"strict mode flags open sessions", withoutEnd, DetectorConfig{RequireEndEventCheck: false}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			violations := DetectViolations(tt.events, compliance.LevelAGADL1, tt.config)
			v, ok := findViolation(violations, compliance.ReqSessionLifecycle)
			assert.Equal(t, tt.want, ok)
			if ok {
				assert.Equal(t, violationIncompleteSession, v.ID)
				assert.Equal(t, compliance.SeverityCritical, v.Severity)
				assert.Equal(t, "session-1", v.Details["sessionId"])
			}
		})
	}
}

func TestDetectViolations_LevelScoping(t *testing.T) {
	events := makeEvents(t, 5)
	config := DefaultDetectorConfig()

	tests := []struct {
		level         compliance.Level
		wantSensitive bool
		wantObjectRef bool
	}{
		{compliance.LevelAGADL1, false, false},
		{compliance.LevelAGADL2, true, false},
		{compliance.LevelAGADL3, true, false},
		{compliance.LevelCOAFIBasic, false, true},
		{compliance.LevelCOAFIFull, true, true},
	}
	for _, tt := range tests {
		t.Run(string(tt.level), func(t *testing.T) {
			violations := DetectViolations(events, tt.level, config)

			_, sensitive := findViolation(violations, compliance.ReqSensitiveRedaction)
			assert.Equal(t, tt.wantSensitive, sensitive)

			objectRef, hasObjectRef := findViolation(violations, compliance.ReqObjectRefValidated)
			assert.Equal(t, tt.wantObjectRef, hasObjectRef)
			if hasObjectRef {
				assert.Equal(t, "AS-M-PAX-BW-Q1H-00001", objectRef.Details["objectId"])
				assert.Equal(t, "SKIPPED", objectRef.Details["validationStatus"])
			}

			// Naming-consistency fires at every level.
			v, ok := findViolation(violations, compliance.ReqUserActionsLogged)
			require.True(t, ok)
			assert.Equal(t, compliance.SeverityMinor, v.Severity)
		})
	}
}
