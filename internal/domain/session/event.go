// Package session defines the append-only trace log's atomic unit, the
// Event, and the repository contract for storing it.
package session

import (
	"time"

	"github.com/gaia-qao/compliance-backend/internal/domain/errors"
)

// Event is one logged occurrence within a user session. Once appended
// to a repository an event is immutable: there is no update or delete
// of individual events, only bulk clear-by-session.
type Event struct {
	SessionID string                 `json:"sessionId"`
	InfoCode  string                 `json:"infoCode"`
	EventType string                 `json:"eventType"`
	Timestamp time.Time              `json:"timestamp"`
	Details   map[string]interface{} `json:"details,omitempty"`
}

// NewEvent creates a session event with validation. The InfoCode is
// deliberately not validated here: events with missing or malformed
// InfoCodes must still enter the log so the violation detector can see
// them.
func NewEvent(sessionID, infoCode, eventType string, details map[string]interface{}) (*Event, error) {
	if sessionID == "" {
		return nil, errors.NewValidationError("MISSING_SESSION_ID",
			"session ID is required")
	}
	if eventType == "" {
		return nil, errors.NewValidationError("MISSING_EVENT_TYPE",
			"event type is required")
	}

	return &Event{
		SessionID: sessionID,
		InfoCode:  infoCode,
		EventType: eventType,
		Details:   details,
	}, nil
}

// Stamp assigns the timestamp if the event does not carry one. Called
// by repositories at append time so log order and timestamps agree.
func (e *Event) Stamp(now time.Time) {
	if e.Timestamp.IsZero() {
		e.Timestamp = now.UTC()
	}
}

// HasInfoCode reports whether the event carries a non-blank InfoCode.
func (e *Event) HasInfoCode() bool {
	if e.InfoCode == "" {
		return false
	}
	for _, r := range e.InfoCode {
		if r != ' ' && r != '\t' && r != '\n' && r != '\r' {
			return true
		}
	}
	return false
}
