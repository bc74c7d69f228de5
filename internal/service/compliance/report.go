package compliance

import (
	"fmt"
	"sort"
	"time"

	"github.com/gaia-qao/compliance-backend/internal/domain/compliance"
	"github.com/gaia-qao/compliance-backend/internal/domain/session"
)

// complianceStatusThreshold is the score at or above which a report is
// COMPLIANT.
const complianceStatusThreshold = 80

func assembleReport(events []*session.Event, level compliance.Level, config DetectorConfig) *compliance.Report {
	metrics := ComputeMetrics(events, level)
	matrix := BuildMatrix(events, level)
	violations := DetectViolations(events, level, config)
	timeline := buildTimeline(events, violations)

	status := compliance.StatusNonCompliant
	if metrics.ComplianceScore >= complianceStatusThreshold {
		status = compliance.StatusCompliant
	}

	return &compliance.Report{
		Title:            fmt.Sprintf("AGAD/COAFI Compliance Report - %s", level),
		ExecutiveSummary: buildExecutiveSummary(metrics, violations, status, level),
		ComplianceStatus: status,
		Metrics:          metrics,
		Violations:       violations,
		TimelineEvents:   timeline,
		ComplianceMatrix: matrix,
		KeyFindings:      buildKeyFindings(metrics, violations),
		Recommendations:  buildRecommendations(violations, metrics),
		GeneratedAt:      time.Now().UTC(),
		Level:            level,
	}
}

// buildTimeline composes the chronological narrative: the session
// start marker, one entry per violation, up to two compliant samples
// from the mid-log, and the session end marker, sorted by timestamp.
func buildTimeline(events []*session.Event, violations []compliance.Violation) []compliance.TimelineEvent {
	var timeline []compliance.TimelineEvent

	if len(events) > 0 {
		first := events[0]
		timeline = append(timeline, compliance.TimelineEvent{
			ID:          "T001",
			Title:       "Session Started",
			Description: "User session initiated",
			Timestamp:   first.Timestamp,
			InfoCode:    first.InfoCode,
			Status:      compliance.TimelineInfo,
			Details:     first.Details,
		})
	}

	for i, violation := range violations {
		timeline = append(timeline, compliance.TimelineEvent{
			ID:    fmt.Sprintf("T%d", 100+i),
			Title: violation.Description,
			Description: fmt.Sprintf("%s violation of requirement %s",
				violation.Severity, violation.RequirementID),
			Timestamp:           violation.Timestamp,
			InfoCode:            violation.InfoCode,
			Status:              compliance.TimelineViolation,
			Details:             violation.Details,
			RelatedRequirements: []string{violation.RequirementID},
		})
	}

	if len(events) > 2 {
		mid := events[len(events)/2]
		timeline = append(timeline, compliance.TimelineEvent{
			ID:                  "T201",
			Title:               "Proper InfoCode Usage",
			Description:         "InfoCodes correctly implemented for user query",
			Timestamp:           mid.Timestamp,
			InfoCode:            mid.InfoCode,
			Status:              compliance.TimelineCompliant,
			RelatedRequirements: []string{compliance.ReqValidInfoCodes},
		})

		third := events[len(events)/3]
		timeline = append(timeline, compliance.TimelineEvent{
			ID:          "T202",
			Title:       "Proper Model Invocation Logging",
			Description: "AI model invocation correctly logged with all required fields",
			Timestamp:   third.Timestamp,
			InfoCode:    third.InfoCode,
			Status:      compliance.TimelineCompliant,
			RelatedRequirements: []string{
				compliance.ReqModelCallsLogged,
				compliance.ReqConfidenceTagged,
			},
		})
	}

	if len(events) > 1 {
		last := events[len(events)-1]
		timeline = append(timeline, compliance.TimelineEvent{
			ID:          "T999",
			Title:       "Session Ended",
			Description: "User session properly terminated",
			Timestamp:   last.Timestamp,
			InfoCode:    last.InfoCode,
			Status:      compliance.TimelineInfo,
			Details:     last.Details,
		})
	}

	sort.SliceStable(timeline, func(i, j int) bool {
		return timeline[i].Timestamp.Before(timeline[j].Timestamp)
	})

	return timeline
}

func buildKeyFindings(metrics compliance.Metrics, violations []compliance.Violation) []compliance.Finding {
	var findings []compliance.Finding

	if metrics.ComplianceScore >= 90 {
		findings = append(findings, compliance.Finding{
			Type: compliance.FindingPositive,
			Description: fmt.Sprintf("Overall compliance score of %d%% exceeds the 90%% threshold.",
				metrics.ComplianceScore),
		})
	}

	if metrics.InfoCodeCompliancePercent >= 90 {
		findings = append(findings, compliance.Finding{
			Type: compliance.FindingPositive,
			Description: fmt.Sprintf("InfoCode compliance of %d%% demonstrates strong traceability.",
				metrics.InfoCodeCompliancePercent),
		})
	}

	if metrics.SessionCompletenessPercent == 100 {
		findings = append(findings, compliance.Finding{
			Type:        compliance.FindingPositive,
			Description: "All sessions have proper start and end events, ensuring complete audit trails.",
		})
	}

	criticalCount := countBySeverity(violations, compliance.SeverityCritical)
	if criticalCount > 0 {
		findings = append(findings, compliance.Finding{
			Type: compliance.FindingNegative,
			Description: fmt.Sprintf("%d critical violations require immediate attention.",
				criticalCount),
		})
	}

	if metrics.ComplianceScore < 80 {
		findings = append(findings, compliance.Finding{
			Type: compliance.FindingNegative,
			Description: fmt.Sprintf("Overall compliance score of %d%% is below the 80%% threshold.",
				metrics.ComplianceScore),
		})
	}

	findings = append(findings,
		compliance.Finding{
			Type: compliance.FindingNeutral,
			Description: fmt.Sprintf("%d user queries were processed and logged.",
				metrics.EventTypeDistribution[session.EventUserQuery]),
		},
		compliance.Finding{
			Type: compliance.FindingNeutral,
			Description: fmt.Sprintf("%d system components were analyzed for compliance.",
				len(metrics.ComponentCoverage)),
		},
	)

	return findings
}

func buildRecommendations(violations []compliance.Violation, metrics compliance.Metrics) []string {
	var recommendations []string

	if countBySeverity(violations, compliance.SeverityCritical) > 0 {
		recommendations = append(recommendations,
			"Address all critical violations immediately to ensure compliance with AGAD/COAFI standards.")
	}

	if hasViolationFor(violations, compliance.ReqValidInfoCodes) {
		recommendations = append(recommendations,
			"Implement consistent InfoCode generation and validation across all system components.")
	}

	if hasViolationFor(violations, compliance.ReqSensitiveRedaction) {
		recommendations = append(recommendations,
			"Enhance data redaction mechanisms to ensure sensitive information is not exposed in logs.")
	}

	if hasViolationFor(violations, compliance.ReqObjectRefValidated) {
		recommendations = append(recommendations,
			"Implement validation for all aerospace object references against the GAIA-QAO registry.")
	}

	if metrics.InfoCodeHierarchyPercent < 90 {
		recommendations = append(recommendations,
			"Improve parent-child relationships in InfoCodes to enhance traceability.")
	}

	if metrics.TraceabilityPercent < 90 {
		recommendations = append(recommendations,
			"Enhance event correlation to improve traceability across the system.")
	}

	recommendations = append(recommendations,
		"Implement regular automated compliance checks to continuously monitor and improve compliance status.")

	return recommendations
}

func buildExecutiveSummary(metrics compliance.Metrics, violations []compliance.Violation, status compliance.Status, level compliance.Level) string {
	criticalCount := countBySeverity(violations, compliance.SeverityCritical)
	majorCount := countBySeverity(violations, compliance.SeverityMajor)
	minorCount := countBySeverity(violations, compliance.SeverityMinor)

	summary := fmt.Sprintf(
		"This report evaluates compliance with %s standards based on the analysis of %d logged events. ",
		level, metrics.TotalEvents)

	if status == compliance.StatusCompliant {
		summary += fmt.Sprintf(
			"The system achieves an overall compliance score of %d%%, meeting the minimum threshold for %s compliance. ",
			metrics.ComplianceScore, level)
	} else {
		summary += fmt.Sprintf(
			"The system achieves an overall compliance score of %d%%, which falls below the minimum threshold for %s compliance. ",
			metrics.ComplianceScore, level)
	}

	summary += fmt.Sprintf(
		"Analysis identified %d compliance violations (%d critical, %d major, %d minor). ",
		len(violations), criticalCount, majorCount, minorCount)

	if criticalCount > 0 {
		summary += "Critical violations require immediate attention to ensure system integrity and compliance. "
	}

	summary += fmt.Sprintf(
		"Key areas of strength include %d%% session completeness and %d%% traceability. ",
		metrics.SessionCompletenessPercent, metrics.TraceabilityPercent)

	if metrics.InfoCodeCompliancePercent < 90 {
		summary += fmt.Sprintf(
			"InfoCode compliance (%d%%) requires improvement to enhance audit capabilities. ",
			metrics.InfoCodeCompliancePercent)
	}

	summary += fmt.Sprintf(
		"This report provides detailed findings and recommendations to address identified issues and improve overall compliance with %s standards.",
		level)

	return summary
}

func countBySeverity(violations []compliance.Violation, severity compliance.Severity) int {
	count := 0
	for _, v := range violations {
		if v.Severity == severity {
			count++
		}
	}
	return count
}

func hasViolationFor(violations []compliance.Violation, requirementID string) bool {
	for _, v := range violations {
		if v.RequirementID == requirementID {
			return true
		}
	}
	return false
}
