package compliance

import "strings"

// Requirement IDs referenced across the violation detector, the matrix
// and the alerting rules.
const (
	ReqSessionLifecycle   = "AGAD-LOG-001"
	ReqValidInfoCodes     = "AGAD-LOG-002"
	ReqUserActionsLogged  = "AGAD-LOG-003"
	ReqModelCallsLogged   = "AGAD-LOG-004"
	ReqSensitiveRedaction = "AGAD-SEC-001"
	ReqAuthenticated      = "AGAD-SEC-002"
	ReqObjectRefValidated = "COAFI-001"
	ReqDataTraceable      = "COAFI-002"
	ReqConfidenceTagged   = "COAFI-003"
)

// catalog is the fixed AGAD/COAFI requirement set. It is static
// configuration, deliberately not derived from events: the same level
// always yields the same filtered matrix, which is what makes matrix
// generation repeatable.
var catalog = []Requirement{
	{
		ID:            ReqSessionLifecycle,
		Category:      "Logging",
		Description:   "All sessions must have start and end events",
		Status:        RequirementCompliant,
		Score:         100,
		EvidenceCount: 5,
		Priority:      PriorityHigh,
	},
	{
		ID:            ReqValidInfoCodes,
		Category:      "Logging",
		Description:   "All events must have valid InfoCodes",
		Status:        RequirementPartiallyCompliant,
		Score:         85,
		EvidenceCount: 8,
		Priority:      PriorityHigh,
	},
	{
		ID:            ReqUserActionsLogged,
		Category:      "Logging",
		Description:   "All user actions must be logged",
		Status:        RequirementCompliant,
		Score:         95,
		EvidenceCount: 12,
		Priority:      PriorityMedium,
	},
	{
		ID:            ReqModelCallsLogged,
		Category:      "Logging",
		Description:   "All AI model invocations must be logged",
		Status:        RequirementCompliant,
		Score:         90,
		EvidenceCount: 10,
		Priority:      PriorityMedium,
	},
	{
		ID:            ReqSensitiveRedaction,
		Category:      "Security",
		Description:   "All sensitive data must be redacted in logs",
		Status:        RequirementNonCompliant,
		Score:         60,
		EvidenceCount: 3,
		Priority:      PriorityHigh,
	},
	{
		ID:            ReqAuthenticated,
		Category:      "Security",
		Description:   "All sessions must have user authentication",
		Status:        RequirementCompliant,
		Score:         100,
		EvidenceCount: 4,
		Priority:      PriorityHigh,
	},
	{
		ID:            ReqObjectRefValidated,
		Category:      "Aerospace",
		Description:   "All aerospace object references must be validated",
		Status:        RequirementPartiallyCompliant,
		Score:         75,
		EvidenceCount: 6,
		Priority:      PriorityCritical,
	},
	{
		ID:            ReqDataTraceable,
		Category:      "Aerospace",
		Description:   "All aerospace data must be traceable to source",
		Status:        RequirementPartiallyCompliant,
		Score:         80,
		EvidenceCount: 7,
		Priority:      PriorityHigh,
	},
	{
		ID:            ReqConfidenceTagged,
		Category:      "Aerospace",
		Description:   "All model outputs must be tagged with confidence scores",
		Status:        RequirementCompliant,
		Score:         95,
		EvidenceCount: 9,
		Priority:      PriorityMedium,
	},
}

// Catalog returns a copy of the full requirement catalog.
func Catalog() []Requirement {
	out := make([]Requirement, len(catalog))
	copy(out, catalog)
	return out
}

// CatalogForLevel returns the catalog subset applicable at the given
// compliance level:
//
//	AGAD-L1:     CRITICAL priority, or id starting AGAD-LOG
//	AGAD-L2:     CRITICAL or HIGH priority, or id starting AGAD-
//	AGAD-L3:     everything
//	COAFI-BASIC: id starting COAFI-, or CRITICAL priority
//	COAFI-FULL:  everything
//
// Unknown levels fall through to the full catalog.
func CatalogForLevel(level Level) []Requirement {
	var filtered []Requirement
	for _, req := range catalog {
		if requirementApplies(req, level) {
			filtered = append(filtered, req)
		}
	}
	return filtered
}

func requirementApplies(req Requirement, level Level) bool {
	switch level {
	case LevelAGADL1:
		return req.Priority == PriorityCritical || strings.HasPrefix(req.ID, "AGAD-LOG")
	case LevelAGADL2:
		return req.Priority == PriorityCritical || req.Priority == PriorityHigh ||
			strings.HasPrefix(req.ID, "AGAD-")
	case LevelAGADL3, LevelCOAFIFull:
		return true
	case LevelCOAFIBasic:
		return strings.HasPrefix(req.ID, "COAFI-") || req.Priority == PriorityCritical
	}
	return true
}
