package eventlog

import (
	"context"
	"encoding/json"

	"github.com/redis/go-redis/v9"

	"github.com/gaia-qao/compliance-backend/internal/domain/errors"
	"github.com/gaia-qao/compliance-backend/internal/domain/session"
)

const redisKeyPrefix = "eventlog:session:"

// RedisRepository stores each session's log as a Redis list of JSON
// events, one RPUSH per append so ordering matches the in-memory
// repository.
type RedisRepository struct {
	client *redis.Client
}

// NewRedisRepository wraps an existing Redis client.
func NewRedisRepository(client *redis.Client) *RedisRepository {
	return &RedisRepository{client: client}
}

func sessionKey(sessionID string) string {
	return redisKeyPrefix + sessionID
}

// Append serializes the event and pushes it onto the session's list.
func (r *RedisRepository) Append(ctx context.Context, event *session.Event) error {
	if event == nil {
		return errors.NewValidationError("NIL_EVENT", "event must not be nil")
	}

	payload, err := json.Marshal(event)
	if err != nil {
		return errors.Wrap(err, "marshaling event")
	}

	if err := r.client.RPush(ctx, sessionKey(event.SessionID), payload).Err(); err != nil {
		return errors.NewExternalError("redis", "failed to append event").WithCause(err)
	}
	return nil
}

// BySession reads the whole list and decodes each entry. An unknown
// session yields an empty slice.
func (r *RedisRepository) BySession(ctx context.Context, sessionID string) ([]*session.Event, error) {
	entries, err := r.client.LRange(ctx, sessionKey(sessionID), 0, -1).Result()
	if err != nil {
		return nil, errors.NewExternalError("redis", "failed to read session events").WithCause(err)
	}

	events := make([]*session.Event, 0, len(entries))
	for _, entry := range entries {
		var event session.Event
		if err := json.Unmarshal([]byte(entry), &event); err != nil {
			return nil, errors.Wrap(err, "decoding stored event")
		}
		events = append(events, &event)
	}
	return events, nil
}

// Clear deletes the session's list.
func (r *RedisRepository) Clear(ctx context.Context, sessionID string) error {
	if err := r.client.Del(ctx, sessionKey(sessionID)).Err(); err != nil {
		return errors.NewExternalError("redis", "failed to clear session events").WithCause(err)
	}
	return nil
}
