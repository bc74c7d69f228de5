package compliance

import "time"

// Status is the report-level verdict, derived solely from the
// compliance score crossing the 80% threshold.
type Status string

const (
	StatusCompliant    Status = "COMPLIANT"
	StatusNonCompliant Status = "NON_COMPLIANT"
)

// Severity classifies a detected violation.
type Severity string

const (
	SeverityCritical Severity = "CRITICAL"
	SeverityMajor    Severity = "MAJOR"
	SeverityMinor    Severity = "MINOR"
)

// FindingType classifies a key finding in the report narrative.
type FindingType string

const (
	FindingPositive FindingType = "POSITIVE"
	FindingNegative FindingType = "NEGATIVE"
	FindingNeutral  FindingType = "NEUTRAL"
)

// TimelineStatus tags a timeline entry.
type TimelineStatus string

const (
	TimelineInfo      TimelineStatus = "INFO"
	TimelineCompliant TimelineStatus = "COMPLIANT"
	TimelineViolation TimelineStatus = "VIOLATION"
)

// Report is the single externally visible compliance artifact. It is
// the pure output of (events, level); it has no independent lifecycle
// and is recomputed, never patched.
type Report struct {
	Title            string          `json:"title"`
	ExecutiveSummary string          `json:"executiveSummary"`
	ComplianceStatus Status          `json:"complianceStatus"`
	Metrics          Metrics         `json:"metrics"`
	Violations       []Violation     `json:"violations"`
	TimelineEvents   []TimelineEvent `json:"timelineEvents"`
	ComplianceMatrix Matrix          `json:"complianceMatrix"`
	KeyFindings      []Finding       `json:"keyFindings"`
	Recommendations  []string        `json:"recommendations"`
	GeneratedAt      time.Time       `json:"generatedAt"`
	Level            Level           `json:"level"`
}

// Metrics is the numeric rollup over one session's event set.
type Metrics struct {
	ComplianceScore int `json:"complianceScore"`

	TotalEvents          int `json:"totalEvents"`
	EventsAnalyzed       int `json:"eventsAnalyzed"`
	EventCoveragePercent int `json:"eventCoveragePercent"`

	TotalInfoCodes            int `json:"totalInfoCodes"`
	ValidInfoCodes            int `json:"validInfoCodes"`
	InfoCodeCompliancePercent int `json:"infoCodeCompliancePercent"`

	EventTypeDistribution      map[string]int `json:"eventTypeDistribution"`
	InfoCodePrefixDistribution map[string]int `json:"infoCodePrefixDistribution"`
	ComponentCoverage          map[string]int `json:"componentCoverage"`

	SessionCompletenessPercent int `json:"sessionCompletenessPercent"`
	TraceabilityPercent        int `json:"traceabilityPercent"`
	InfoCodeHierarchyPercent   int `json:"infoCodeHierarchyPercent"`

	ViolationCount     int `json:"violationCount"`
	CriticalViolations int `json:"criticalViolations"`
	MajorViolations    int `json:"majorViolations"`
	MinorViolations    int `json:"minorViolations"`

	InfoCodeIssues        []InfoCodeIssue        `json:"infoCodeIssues"`
	RequirementCompliance []RequirementCompliance `json:"requirementCompliance"`
}

// InfoCodeIssue is an estimated InfoCode quality problem bucket.
type InfoCodeIssue struct {
	Type   string `json:"type"`
	Count  int    `json:"count"`
	Impact string `json:"impact"` // HIGH, MEDIUM, LOW
}

// RequirementCompliance is one catalog requirement's per-report score.
type RequirementCompliance struct {
	ID          string            `json:"id"`
	Description string            `json:"description"`
	Status      RequirementStatus `json:"status"`
	Score       int               `json:"score"`
}

// Violation is one detected non-conformance against the catalog.
// Violations are derived, not stored: each report generation recomputes
// them from the current event set and level.
type Violation struct {
	ID             string                 `json:"id"`
	RequirementID  string                 `json:"requirementId"`
	Description    string                 `json:"description"`
	Severity       Severity               `json:"severity"`
	Impact         string                 `json:"impact"`
	Recommendation string                 `json:"recommendation"`
	Timestamp      time.Time              `json:"timestamp"`
	InfoCode       string                 `json:"infoCode,omitempty"`
	Details        map[string]interface{} `json:"details,omitempty"`
	RelatedEvents  []RelatedEvent         `json:"relatedEvents,omitempty"`
}

// RelatedEvent references a log event implicated in a violation.
type RelatedEvent struct {
	InfoCode  string    `json:"infoCode"`
	Timestamp time.Time `json:"timestamp"`
}

// TimelineEvent is one entry of the report's chronological narrative.
type TimelineEvent struct {
	ID                  string                 `json:"id"`
	Title               string                 `json:"title"`
	Description         string                 `json:"description"`
	Timestamp           time.Time              `json:"timestamp"`
	InfoCode            string                 `json:"infoCode,omitempty"`
	Status              TimelineStatus         `json:"status"`
	Details             map[string]interface{} `json:"details,omitempty"`
	RelatedRequirements []string               `json:"relatedRequirements,omitempty"`
}

// Finding is one entry of the report's key-findings list.
type Finding struct {
	Type        FindingType `json:"type"`
	Description string      `json:"description"`
}
