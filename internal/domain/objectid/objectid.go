// Package objectid recognizes GAIA-QAO aerospace object identifiers of
// the grammar XX-X-XXX-XX-XXX-XXXXX: two-letter domain, one-letter
// autonomy code (M or U), three-letter functional class, two-letter
// subtype, three-character alphanumeric model, five-digit serial,
// e.g. AS-M-PAX-BW-Q1H-00001.
package objectid

import "regexp"

var (
	embeddedPattern = regexp.MustCompile(`\b([A-Z]{2})-([MU])-([A-Z]{3})-([A-Z]{2})-([A-Z0-9]{3})-(\d{5})\b`)
	strictPattern   = regexp.MustCompile(`^([A-Z]{2})-([MU])-([A-Z]{3})-([A-Z]{2})-([A-Z0-9]{3})-(\d{5})$`)
)

var domainNames = map[string]string{
	"AS": "Air System",
	"SP": "Space System",
}

var autonomyNames = map[string]string{
	"M": "Manned/Semi-Autonomous",
	"U": "Unmanned/Fully Autonomous",
}

// ID holds the parsed fields of a GAIA-QAO object identifier.
type ID struct {
	Domain          string `json:"domain"`
	Autonomy        string `json:"autonomy"`
	FunctionalClass string `json:"functionalClass"`
	SubType         string `json:"subType"`
	Model           string `json:"model"`
	SerialNumber    string `json:"serialNumber"`
}

// Extract scans free text for embedded object identifiers and returns
// the unique matches in first-seen order.
func Extract(text string) []string {
	matches := embeddedPattern.FindAllString(text, -1)
	if len(matches) == 0 {
		return nil
	}

	seen := make(map[string]bool, len(matches))
	unique := make([]string, 0, len(matches))
	for _, m := range matches {
		if !seen[m] {
			seen[m] = true
			unique = append(unique, m)
		}
	}
	return unique
}

// Validate reports whether id matches the full grammar exactly.
// Partial or embedded matches are rejected; use Extract for scanning.
func Validate(id string) bool {
	return strictPattern.MatchString(id)
}

// Parse decomposes a strictly valid object identifier into its fields.
// The second return is false when id fails validation.
func Parse(id string) (ID, bool) {
	groups := strictPattern.FindStringSubmatch(id)
	if groups == nil {
		return ID{}, false
	}
	return ID{
		Domain:          groups[1],
		Autonomy:        groups[2],
		FunctionalClass: groups[3],
		SubType:         groups[4],
		Model:           groups[5],
		SerialNumber:    groups[6],
	}, true
}

// Components returns the decoded, human-readable breakdown of an
// object identifier. Unrecognized domain or autonomy codes map to
// "Unknown …" rather than failing, since the code grammar outlives the
// registry of known names.
func Components(id string) (map[string]string, bool) {
	parsed, ok := Parse(id)
	if !ok {
		return nil, false
	}

	domainName, ok := domainNames[parsed.Domain]
	if !ok {
		domainName = "Unknown Domain"
	}
	autonomyName, ok := autonomyNames[parsed.Autonomy]
	if !ok {
		autonomyName = "Unknown Autonomy Level"
	}

	return map[string]string{
		"domainCode":          parsed.Domain,
		"domainName":          domainName,
		"autonomyCode":        parsed.Autonomy,
		"autonomyName":        autonomyName,
		"functionalClassCode": parsed.FunctionalClass,
		"subTypeCode":         parsed.SubType,
		"modelCode":           parsed.Model,
		"serialNumber":        parsed.SerialNumber,
	}, true
}
