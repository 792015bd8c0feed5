package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/bookquiz/quiz-backend/internal/config"
	"github.com/bookquiz/quiz-backend/internal/model"
)

// ErrSessionNotFound is returned when no record exists for a session id.
// Expired keys are removed by Redis itself, so they surface the same way.
var ErrSessionNotFound = errors.New("session record not found")

// SessionRepository persists quiz session records in Redis with a TTL.
type SessionRepository struct {
	rdb *redis.Client
}

// NewSessionRepository creates a new SessionRepository.
func NewSessionRepository(rdb *redis.Client) *SessionRepository {
	return &SessionRepository{rdb: rdb}
}

// PutSession stores a fully built session record under the given TTL.
// The record is marshaled in memory first; a session is never written
// incrementally.
func (r *SessionRepository) PutSession(ctx context.Context, sessionID string, rec *model.SessionRecord, ttl time.Duration) error {
	raw, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("marshal session: %w", err)
	}

	if err := r.rdb.Set(ctx, config.CacheKey.QuizSessionKey(sessionID), raw, ttl).Err(); err != nil {
		return fmt.Errorf("store session: %w", err)
	}
	return nil
}

// GetSession loads a session record. Absent keys map to ErrSessionNotFound;
// a present but undecodable payload is surfaced as a distinct error since
// that is corruption, not a miss.
func (r *SessionRepository) GetSession(ctx context.Context, sessionID string) (*model.SessionRecord, error) {
	data, err := r.rdb.Get(ctx, config.CacheKey.QuizSessionKey(sessionID)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ErrSessionNotFound
		}
		return nil, fmt.Errorf("get session: %w", err)
	}

	var rec model.SessionRecord
	if err := json.Unmarshal(data, &rec); err != nil {
		return nil, fmt.Errorf("unmarshal session: %w", err)
	}
	return &rec, nil
}
