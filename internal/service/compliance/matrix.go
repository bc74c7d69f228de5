package compliance

import (
	"github.com/gaia-qao/compliance-backend/internal/domain/compliance"
	"github.com/gaia-qao/compliance-backend/internal/domain/session"
)

// BuildMatrix maps the fixed requirement catalog, filtered by level,
// into a matrix with summary rollups. Per-requirement status and score
// come from the catalog itself; the event set only selects the level
// scope today, which keeps matrix output repeatable for a given level.
func BuildMatrix(events []*session.Event, level compliance.Level) compliance.Matrix {
	_ = events
	requirements := compliance.CatalogForLevel(level)

	summary := compliance.MatrixSummary{
		TotalCount:     len(requirements),
		CategoryCounts: make(map[string]int),
		PriorityCounts: make(map[string]int),
	}

	for _, req := range requirements {
		switch req.Status {
		case compliance.RequirementCompliant:
			summary.CompliantCount++
		case compliance.RequirementPartiallyCompliant:
			summary.PartiallyCompliantCount++
		case compliance.RequirementNonCompliant:
			summary.NonCompliantCount++
		}
		summary.CategoryCounts[req.Category]++
		summary.PriorityCounts[string(req.Priority)]++
	}

	summary.CompliantPercent = roundPercent(summary.CompliantCount, summary.TotalCount)
	summary.PartiallyCompliantPercent = roundPercent(summary.PartiallyCompliantCount, summary.TotalCount)
	summary.NonCompliantPercent = roundPercent(summary.NonCompliantCount, summary.TotalCount)

	return compliance.Matrix{
		Requirements: requirements,
		Summary:      summary,
	}
}
