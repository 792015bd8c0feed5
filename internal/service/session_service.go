package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/bookquiz/quiz-backend/internal/model"
	"github.com/bookquiz/quiz-backend/internal/repository"
)

// ErrSessionNotFound covers both absent and expired sessions. Callers must
// not be able to tell the two apart.
var ErrSessionNotFound = errors.New("session not found or expired")

// SessionStore is the session table contract used by the manager.
type SessionStore interface {
	PutSession(ctx context.Context, sessionID string, rec *model.SessionRecord, ttl time.Duration) error
	GetSession(ctx context.Context, sessionID string) (*model.SessionRecord, error)
}

// SessionService builds, persists and retrieves per-attempt answer keys.
type SessionService struct {
	store SessionStore
	ttl   time.Duration
	log   zerolog.Logger
	now   func() time.Time
}

// NewSessionService creates a new SessionService with the given answer-key TTL.
func NewSessionService(store SessionStore, ttl time.Duration, log zerolog.Logger) *SessionService {
	if ttl <= 0 {
		ttl = 7200 * time.Second
	}
	return &SessionService{
		store: store,
		ttl:   ttl,
		log:   log.With().Str("component", "session_service").Logger(),
		now:   time.Now,
	}
}

// CreateSession persists the answer key for the offered questions and returns
// a fresh opaque session id. The record is fully built in memory before the
// single write, so no partial session is ever visible to a later read.
func (s *SessionService) CreateSession(ctx context.Context, records []model.QuestionRecord) (string, error) {
	sessionID := "sess_" + uuid.NewString()

	answerKey := make(map[string]model.AnswerKeyEntry, len(records))
	for _, rec := range records {
		answerKey[rec.QuestionID] = model.AnswerKeyEntry{
			CorrectOptionID: rec.CorrectOptionID,
			Category:        rec.Category,
			QuestionText:    rec.QuestionText,
			Options:         rec.Options,
			Explanation:     rec.Explanation,
		}
	}

	record := &model.SessionRecord{
		AnswerKey: answerKey,
		ExpiresAt: s.now().Add(s.ttl).Unix(),
	}

	if err := s.store.PutSession(ctx, sessionID, record, s.ttl); err != nil {
		return "", fmt.Errorf("persist session: %w", err)
	}

	s.log.Debug().
		Str("session_id", sessionID).
		Int("questions", len(records)).
		Msg("Session created")
	return sessionID, nil
}

// LoadSession returns the unexpired record for a session id.
//
// The store's TTL normally removes expired records first, but the record's
// own expiry timestamp is authoritative: an expired record that is still
// present reads exactly like an absent one. A record that is present but
// fails to decode is a server fault, not a miss, and surfaces as a plain
// error.
func (s *SessionService) LoadSession(ctx context.Context, sessionID string) (*model.SessionRecord, error) {
	rec, err := s.store.GetSession(ctx, sessionID)
	if err != nil {
		if errors.Is(err, repository.ErrSessionNotFound) {
			return nil, ErrSessionNotFound
		}
		return nil, fmt.Errorf("load session: %w", err)
	}

	if rec.ExpiresAt <= s.now().Unix() {
		return nil, ErrSessionNotFound
	}
	if rec.AnswerKey == nil {
		return nil, fmt.Errorf("session %s: corrupt record, missing answer key", sessionID)
	}
	return rec, nil
}
