package compliance

// RequirementStatus is the per-requirement verdict in the matrix.
type RequirementStatus string

const (
	RequirementCompliant          RequirementStatus = "COMPLIANT"
	RequirementPartiallyCompliant RequirementStatus = "PARTIAL"
	RequirementNonCompliant       RequirementStatus = "NON_COMPLIANT"
)

// Priority ranks a catalog requirement.
type Priority string

const (
	PriorityCritical Priority = "CRITICAL"
	PriorityHigh     Priority = "HIGH"
	PriorityMedium   Priority = "MEDIUM"
	PriorityLow      Priority = "LOW"
)

// Requirement is one entry of the fixed AGAD/COAFI catalog, carrying
// its reference status and score.
type Requirement struct {
	ID            string            `json:"id"`
	Category      string            `json:"category"`
	Description   string            `json:"description"`
	Status        RequirementStatus `json:"status"`
	Score         int               `json:"score"`
	EvidenceCount int               `json:"evidenceCount"`
	Priority      Priority          `json:"priority"`
}

// Matrix maps the requirement catalog, filtered by compliance level,
// to statuses plus summary rollups over the filtered set.
type Matrix struct {
	Requirements []Requirement `json:"requirements"`
	Summary      MatrixSummary `json:"summary"`
}

// MatrixSummary aggregates the filtered requirement set.
type MatrixSummary struct {
	CompliantCount           int            `json:"compliantCount"`
	PartiallyCompliantCount  int            `json:"partiallyCompliantCount"`
	NonCompliantCount        int            `json:"nonCompliantCount"`
	TotalCount               int            `json:"totalCount"`
	CompliantPercent         int            `json:"compliantPercent"`
	PartiallyCompliantPercent int           `json:"partiallyCompliantPercent"`
	NonCompliantPercent      int            `json:"nonCompliantPercent"`
	CategoryCounts           map[string]int `json:"categoryCounts"`
	PriorityCounts           map[string]int `json:"priorityCounts"`
}
