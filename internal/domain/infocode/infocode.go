// Package infocode implements the AGAD/COAFI trace token used to
// correlate every session event with the logical operation that
// produced it. An InfoCode has the shape "prefix-YYYYMMDD-shortid",
// where the prefix may itself contain hyphens
// (e.g. "QAO-UIF-MODEL-gpt-4o-20250901-a1b2c3d4").
package infocode

import (
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"
)

var (
	datePattern = regexp.MustCompile(`^\d{8}$`)
	idPattern   = regexp.MustCompile(`^[a-fA-F0-9]+$`)
)

// Parts is the decomposition of an InfoCode.
type Parts struct {
	Prefix string `json:"prefix"`
	Date   string `json:"date"`
	ID     string `json:"id"`
}

// Generate builds a new InfoCode for the given prefix. The short id is
// the first group of a v4 UUID (8 hex chars): unique enough for a
// single session's event volume, not cryptographically so. The session
// ID does not participate in the token; callers pass it so generation
// sites read the same as logging sites.
func Generate(prefix, sessionID string) string {
	_ = sessionID
	date := time.Now().UTC().Format("20060102")
	shortID := strings.SplitN(uuid.NewString(), "-", 2)[0]
	return prefix + "-" + date + "-" + shortID
}

// Parse splits an InfoCode into prefix, date and id. The last two
// hyphen-delimited segments are date and id; everything before them is
// the prefix, re-joined so embedded hyphens survive. Malformed input
// (fewer than 3 segments) degrades to {Prefix: input} rather than
// failing: downstream consumers such as the prefix distribution
// tolerate and expect this.
func Parse(code string) Parts {
	parts := strings.Split(code, "-")
	if len(parts) < 3 {
		return Parts{Prefix: code}
	}
	return Parts{
		Prefix: strings.Join(parts[:len(parts)-2], "-"),
		Date:   parts[len(parts)-2],
		ID:     parts[len(parts)-1],
	}
}

// IsValid reports whether code is structurally a well-formed InfoCode:
// at least 3 segments, an 8-digit date segment, and a hex id segment.
func IsValid(code string) bool {
	if code == "" {
		return false
	}
	parts := strings.Split(code, "-")
	if len(parts) < 3 {
		return false
	}
	if !datePattern.MatchString(parts[len(parts)-2]) {
		return false
	}
	return idPattern.MatchString(parts[len(parts)-1])
}

// SessionIDFrom returns the short-id segment of a valid InfoCode.
// The second return is false when the code fails validation.
func SessionIDFrom(code string) (string, bool) {
	if !IsValid(code) {
		return "", false
	}
	return Parse(code).ID, true
}
