package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/kashafa/tadreeb-backend/internal/config"
	"github.com/kashafa/tadreeb-backend/internal/model"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

// ExamSessionStore persists exam attempt state as JSON blobs keyed per user
// and course, plus a set of keys with a running deadline so the sweep worker
// never scans the whole keyspace.
type ExamSessionStore struct {
	rdb *redis.Client
}

func NewExamSessionStore(rdb *redis.Client) *ExamSessionStore {
	return &ExamSessionStore{rdb: rdb}
}

// Load fetches the session for a user and course. A missing key returns
// (nil, nil). A corrupt blob is logged, deleted, and treated as missing so
// one bad write cannot wedge an attempt forever.
func (s *ExamSessionStore) Load(ctx context.Context, userID string, courseID int) (*model.ExamSession, error) {
	key := config.CacheKey.ExamSessionKey(userID, courseID)
	raw, err := s.rdb.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("load exam session: %w", err)
	}

	var session model.ExamSession
	if err := json.Unmarshal(raw, &session); err != nil {
		log.Warn().Str("component", "exam_session_store").Str("key", key).
			Err(err).Msg("Discarding corrupt exam session blob")
		s.rdb.Del(ctx, key)
		return nil, nil
	}
	return &session, nil
}

// Save writes the session blob. Sessions have no TTL; cooldown and result
// state must survive arbitrarily long absences.
func (s *ExamSessionStore) Save(ctx context.Context, session *model.ExamSession) error {
	raw, err := json.Marshal(session)
	if err != nil {
		return fmt.Errorf("marshal exam session: %w", err)
	}
	key := config.CacheKey.ExamSessionKey(session.UserID, session.CourseID)
	if err := s.rdb.Set(ctx, key, raw, 0).Err(); err != nil {
		return fmt.Errorf("save exam session: %w", err)
	}
	return nil
}

// MarkActive registers a running attempt for the deadline sweep.
func (s *ExamSessionStore) MarkActive(ctx context.Context, userID string, courseID int) error {
	member := config.CacheKey.ExamSessionKey(userID, courseID)
	return s.rdb.SAdd(ctx, config.CacheKey.ActiveExamSessionsKey(), member).Err()
}

// ClearActive removes a finished attempt from the sweep set.
func (s *ExamSessionStore) ClearActive(ctx context.Context, userID string, courseID int) error {
	member := config.CacheKey.ExamSessionKey(userID, courseID)
	return s.rdb.SRem(ctx, config.CacheKey.ActiveExamSessionsKey(), member).Err()
}

// ActiveSessions returns the identity of every attempt currently registered
// for the deadline sweep.
func (s *ExamSessionStore) ActiveSessions(ctx context.Context) ([]model.SessionRef, error) {
	members, err := s.rdb.SMembers(ctx, config.CacheKey.ActiveExamSessionsKey()).Result()
	if err != nil {
		return nil, fmt.Errorf("list active exam sessions: %w", err)
	}

	refs := make([]model.SessionRef, 0, len(members))
	for _, member := range members {
		userID, courseID, ok := config.CacheKey.ParseExamSessionKey(member)
		if !ok {
			log.Warn().Str("component", "exam_session_store").Str("member", member).
				Msg("Dropping unparseable active session member")
			s.rdb.SRem(ctx, config.CacheKey.ActiveExamSessionsKey(), member)
			continue
		}
		refs = append(refs, model.SessionRef{UserID: userID, CourseID: courseID})
	}
	return refs, nil
}
