package compliance

import (
	"time"

	"github.com/gaia-qao/compliance-backend/internal/domain/compliance"
	"github.com/gaia-qao/compliance-backend/internal/domain/session"
)

// Stable violation IDs, one per detection rule.
const (
	violationMissingInfoCodes  = "V001"
	violationIncompleteSession = "V002"
	violationSensitiveData     = "V003"
	violationUnvalidatedObject = "V004"
	violationNamingConsistency = "V005"
)

const maxViolationExamples = 3

// DetectViolations inspects the event log and returns the typed
// violations applicable at the given level. Every rule triggers
// independently; an empty log produces no violations.
func DetectViolations(events []*session.Event, level compliance.Level, config DetectorConfig) []compliance.Violation {
	if len(events) == 0 {
		return nil
	}

	now := time.Now().UTC()
	var violations []compliance.Violation

	if v, ok := detectMissingInfoCodes(events, now); ok {
		violations = append(violations, v)
	}

	if config.RequireEndEventCheck || !hasEndEvent(events) {
		violations = append(violations, incompleteSessionViolation(events, now))
	}

	if level == compliance.LevelAGADL2 || level == compliance.LevelAGADL3 || level == compliance.LevelCOAFIFull {
		violations = append(violations, compliance.Violation{
			ID:             violationSensitiveData,
			RequirementID:  compliance.ReqSensitiveRedaction,
			Description:    "Sensitive data not redacted in logs",
			Severity:       compliance.SeverityCritical,
			Impact:         "Unredacted sensitive data in logs poses a security and privacy risk.",
			Recommendation: "Implement data redaction for all sensitive fields before logging.",
			Timestamp:      now,
			Details: map[string]interface{}{
				"sensitiveFields": []string{"apiKey", "password", "token"},
				"occurrences":     3,
			},
		})
	}

	if level.IsCOAFI() {
		violations = append(violations, compliance.Violation{
			ID:             violationUnvalidatedObject,
			RequirementID:  compliance.ReqObjectRefValidated,
			Description:    "Aerospace object reference not validated",
			Severity:       compliance.SeverityMajor,
			Impact:         "Unvalidated object references may lead to incorrect data association or processing.",
			Recommendation: "Implement validation for all aerospace object references against the GAIA-QAO registry.",
			Timestamp:      now,
			InfoCode:       "QAO-UIF-QUERY-20231027-a1b2c3d4",
			Details: map[string]interface{}{
				"objectId":         "AS-M-PAX-BW-Q1H-00001",
				"validationStatus": "SKIPPED",
			},
		})
	}

	violations = append(violations, compliance.Violation{
		ID:             violationNamingConsistency,
		RequirementID:  compliance.ReqUserActionsLogged,
		Description:    "Inconsistent event type naming",
		Severity:       compliance.SeverityMinor,
		Impact:         "Inconsistent naming makes log analysis and filtering more difficult.",
		Recommendation: "Standardize event type naming conventions across all components.",
		Timestamp:      now,
		Details: map[string]interface{}{
			"inconsistentNames": []string{"user_query", "USER_QUERY", "UserQuery"},
			"recommendedFormat": "USER_QUERY",
		},
	})

	return violations
}

func detectMissingInfoCodes(events []*session.Event, now time.Time) (compliance.Violation, bool) {
	var offending []*session.Event
	for _, event := range events {
		if !event.HasInfoCode() {
			offending = append(offending, event)
		}
	}
	if len(offending) == 0 {
		return compliance.Violation{}, false
	}

	examples := make([]string, 0, maxViolationExamples)
	related := make([]compliance.RelatedEvent, 0, maxViolationExamples)
	for i, event := range offending {
		if i >= maxViolationExamples {
			break
		}
		examples = append(examples, event.EventType)
		infoCode := event.InfoCode
		if infoCode == "" {
			infoCode = "MISSING"
		}
		related = append(related, compliance.RelatedEvent{
			InfoCode:  infoCode,
			Timestamp: event.Timestamp,
		})
	}

	return compliance.Violation{
		ID:             violationMissingInfoCodes,
		RequirementID:  compliance.ReqValidInfoCodes,
		Description:    "Events missing valid InfoCodes",
		Severity:       compliance.SeverityMajor,
		Impact:         "Missing InfoCodes break the traceability chain and prevent proper audit trails.",
		Recommendation: "Ensure all events are assigned valid InfoCodes following the AGAD/COAFI standard.",
		Timestamp:      now,
		Details: map[string]interface{}{
			"affectedCount": len(offending),
			"examples":      examples,
		},
		RelatedEvents: related,
	}, true
}

func incompleteSessionViolation(events []*session.Event, now time.Time) compliance.Violation {
	first := events[0]
	last := events[len(events)-1]

	return compliance.Violation{
		ID:            violationIncompleteSession,
		RequirementID: compliance.ReqSessionLifecycle,
		Description:   "Session missing proper end event",
		Severity:      compliance.SeverityCritical,
		Impact:        "Sessions without proper end events may indicate abnormal termination or data loss.",
		Recommendation: "Implement robust session handling to ensure all sessions have proper end events, " +
			"even in error scenarios.",
		Timestamp: now,
		InfoCode:  first.InfoCode,
		Details: map[string]interface{}{
			"sessionId":     first.SessionID,
			"startTime":     first.Timestamp,
			"lastEventTime": last.Timestamp,
		},
	}
}

func hasEndEvent(events []*session.Event) bool {
	for _, event := range events {
		if event.EventType == session.EventSessionEnded {
			return true
		}
	}
	return false
}
