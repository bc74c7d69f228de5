package compliance

import "time"

// AlertSeverity classifies a threshold-breach alert.
type AlertSeverity string

const (
	AlertCritical AlertSeverity = "CRITICAL"
	AlertWarning  AlertSeverity = "WARNING"
	AlertInfo     AlertSeverity = "INFO"
)

// Thresholds is the monitoring configuration the monitor compares each
// report against. Percentage dimensions breach when the metric drops
// below the bound; CriticalViolations breaches when the count exceeds
// its bound.
type Thresholds struct {
	OverallCompliance   int `json:"overallCompliance" koanf:"overall_compliance" validate:"min=0,max=100"`
	CriticalViolations  int `json:"criticalViolations" koanf:"critical_violations" validate:"min=0"`
	InfoCodeCompliance  int `json:"infoCodeCompliance" koanf:"infocode_compliance" validate:"min=0,max=100"`
	SessionCompleteness int `json:"sessionCompleteness" koanf:"session_completeness" validate:"min=0,max=100"`
	Traceability        int `json:"traceability" koanf:"traceability" validate:"min=0,max=100"`
}

// DefaultThresholds returns the process-start threshold configuration.
func DefaultThresholds() Thresholds {
	return Thresholds{
		OverallCompliance:   80,
		CriticalViolations:  1,
		InfoCodeCompliance:  85,
		SessionCompleteness: 90,
		Traceability:        85,
	}
}

// Alert is one threshold breach (or positive INFO notice) produced by
// a monitoring pass. Alerts are transient: accumulated by the caller,
// never persisted.
type Alert struct {
	ID                  string                 `json:"id"`
	Timestamp           time.Time              `json:"timestamp"`
	Severity            AlertSeverity          `json:"severity"`
	Title               string                 `json:"title"`
	Message             string                 `json:"message"`
	Details             map[string]interface{} `json:"details,omitempty"`
	RelatedRequirements []string               `json:"relatedRequirements,omitempty"`
}

// HistoryPoint is a compact per-tick snapshot of the headline metrics,
// retained newest-first in a bounded ring for trend analysis.
type HistoryPoint struct {
	Timestamp           time.Time `json:"timestamp"`
	ComplianceScore     int       `json:"complianceScore"`
	ViolationCount      int       `json:"violationCount"`
	CriticalViolations  int       `json:"criticalViolations"`
	InfoCodeCompliance  int       `json:"infoCodeCompliance"`
	SessionCompleteness int       `json:"sessionCompleteness"`
	Traceability        int       `json:"traceability"`
}
