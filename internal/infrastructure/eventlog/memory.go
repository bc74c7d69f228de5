// Package eventlog provides session.Repository implementations: an
// in-memory store for tests and single-process use, and a Redis-backed
// store for deployments that need the log to survive restarts.
package eventlog

import (
	"context"
	"sync"

	"github.com/gaia-qao/compliance-backend/internal/domain/errors"
	"github.com/gaia-qao/compliance-backend/internal/domain/session"
)

// MemoryRepository keeps per-session event slices under a single lock.
// Append order is preserved; reads return copies so callers cannot
// mutate the stored log.
type MemoryRepository struct {
	mu       sync.RWMutex
	sessions map[string][]*session.Event
}

// NewMemoryRepository creates an empty in-memory event log.
func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{
		sessions: make(map[string][]*session.Event),
	}
}

// Append adds an event to its session's log.
func (r *MemoryRepository) Append(ctx context.Context, event *session.Event) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if event == nil {
		return errors.NewValidationError("NIL_EVENT", "event must not be nil")
	}

	stored := *event
	r.mu.Lock()
	r.sessions[event.SessionID] = append(r.sessions[event.SessionID], &stored)
	r.mu.Unlock()
	return nil
}

// BySession returns the session's events in append order. An unknown
// session yields an empty slice, not an error.
func (r *MemoryRepository) BySession(ctx context.Context, sessionID string) ([]*session.Event, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	stored := r.sessions[sessionID]
	events := make([]*session.Event, len(stored))
	for i, event := range stored {
		copied := *event
		events[i] = &copied
	}
	return events, nil
}

// Clear removes the session's log. Clearing an unknown session is a
// no-op.
func (r *MemoryRepository) Clear(ctx context.Context, sessionID string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	r.mu.Lock()
	delete(r.sessions, sessionID)
	r.mu.Unlock()
	return nil
}
