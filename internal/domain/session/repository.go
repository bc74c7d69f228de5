package session

import "context"

// Repository is the append-only event log, queryable by session.
//
// Concurrency contract: appends are atomic; single writer per session
// is assumed. There is no transactional guarantee across sessions.
// Events are never mutated after insertion; the only destructive
// operation is Clear, which removes one session's events wholesale.
type Repository interface {
	// Append stores the event, stamping its timestamp if absent.
	Append(ctx context.Context, event *Event) error

	// BySession returns all events for a session in insertion order.
	// A session with no events yields an empty slice, not an error.
	BySession(ctx context.Context, sessionID string) ([]*Event, error)

	// Clear removes only the given session's events.
	Clear(ctx context.Context, sessionID string) error
}
