package compliance

import (
	"fmt"
	"time"

	"github.com/gaia-qao/compliance-backend/internal/domain/compliance"
)

// DetectAlerts compares a report against the given thresholds and
// returns the alerts for this pass. Percentage dimensions alert when
// the metric drops below the bound; the critical-violation count alerts
// when it exceeds its bound. Two INFO notices fire on strong results.
func DetectAlerts(report *compliance.Report, thresholds compliance.Thresholds) []compliance.Alert {
	now := time.Now().UTC()
	metrics := report.Metrics
	var alerts []compliance.Alert

	next := func() string {
		return fmt.Sprintf("ALERT-%d-%d", now.UnixMilli(), len(alerts))
	}

	if metrics.ComplianceScore < thresholds.OverallCompliance {
		alerts = append(alerts, compliance.Alert{
			ID:        next(),
			Timestamp: now,
			Severity:  compliance.AlertCritical,
			Title:     "Overall Compliance Below Threshold",
			Message: fmt.Sprintf("Overall compliance score (%d%%) is below the required threshold (%d%%).",
				metrics.ComplianceScore, thresholds.OverallCompliance),
			Details: map[string]interface{}{
				"currentScore": metrics.ComplianceScore,
				"threshold":    thresholds.OverallCompliance,
			},
			RelatedRequirements: []string{"AGAD-COMP-001"},
		})
	}

	if metrics.CriticalViolations > thresholds.CriticalViolations {
		alerts = append(alerts, compliance.Alert{
			ID:        next(),
			Timestamp: now,
			Severity:  compliance.AlertCritical,
			Title:     "Critical Violations Detected",
			Message: fmt.Sprintf("%d critical violations detected, exceeding the threshold of %d.",
				metrics.CriticalViolations, thresholds.CriticalViolations),
			Details: map[string]interface{}{
				"violationCount": metrics.CriticalViolations,
				"threshold":      thresholds.CriticalViolations,
			},
			RelatedRequirements: []string{"AGAD-COMP-002"},
		})
	}

	if metrics.InfoCodeCompliancePercent < thresholds.InfoCodeCompliance {
		alerts = append(alerts, compliance.Alert{
			ID:        next(),
			Timestamp: now,
			Severity:  compliance.AlertWarning,
			Title:     "InfoCode Compliance Below Threshold",
			Message: fmt.Sprintf("InfoCode compliance (%d%%) is below the required threshold (%d%%).",
				metrics.InfoCodeCompliancePercent, thresholds.InfoCodeCompliance),
			Details: map[string]interface{}{
				"currentCompliance": metrics.InfoCodeCompliancePercent,
				"threshold":         thresholds.InfoCodeCompliance,
			},
			RelatedRequirements: []string{compliance.ReqValidInfoCodes},
		})
	}

	if metrics.SessionCompletenessPercent < thresholds.SessionCompleteness {
		alerts = append(alerts, compliance.Alert{
			ID:        next(),
			Timestamp: now,
			Severity:  compliance.AlertWarning,
			Title:     "Session Completeness Below Threshold",
			Message: fmt.Sprintf("Session completeness (%d%%) is below the required threshold (%d%%).",
				metrics.SessionCompletenessPercent, thresholds.SessionCompleteness),
			Details: map[string]interface{}{
				"currentCompleteness": metrics.SessionCompletenessPercent,
				"threshold":           thresholds.SessionCompleteness,
			},
			RelatedRequirements: []string{compliance.ReqSessionLifecycle},
		})
	}

	if metrics.TraceabilityPercent < thresholds.Traceability {
		alerts = append(alerts, compliance.Alert{
			ID:        next(),
			Timestamp: now,
			Severity:  compliance.AlertWarning,
			Title:     "Traceability Below Threshold",
			Message: fmt.Sprintf("Traceability (%d%%) is below the required threshold (%d%%).",
				metrics.TraceabilityPercent, thresholds.Traceability),
			Details: map[string]interface{}{
				"currentTraceability": metrics.TraceabilityPercent,
				"threshold":           thresholds.Traceability,
			},
			RelatedRequirements: []string{compliance.ReqUserActionsLogged},
		})
	}

	if metrics.ComplianceScore >= 95 {
		alerts = append(alerts, compliance.Alert{
			ID:        next(),
			Timestamp: now,
			Severity:  compliance.AlertInfo,
			Title:     "Excellent Compliance Score",
			Message: fmt.Sprintf("Compliance score of %d%% indicates excellent adherence to standards.",
				metrics.ComplianceScore),
			Details: map[string]interface{}{
				"currentScore": metrics.ComplianceScore,
			},
		})
	}

	if metrics.CriticalViolations == 0 && metrics.MajorViolations == 0 {
		alerts = append(alerts, compliance.Alert{
			ID:        next(),
			Timestamp: now,
			Severity:  compliance.AlertInfo,
			Title:     "No Significant Violations",
			Message:   "No critical or major violations detected in this monitoring pass.",
			Details: map[string]interface{}{
				"minorViolations": metrics.MinorViolations,
			},
		})
	}

	return alerts
}
