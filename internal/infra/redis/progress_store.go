package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"theorie-engine/internal/domain"
)

// ProgressStore persists quiz progress and history in Redis.
// Layout:
//   - In-progress sessions:  SET quiz:progress:{sessionID} {json}  (TTL)
//   - History per user:      LPUSH quiz:history:{userID} {json}
//
// Sessions round-trip through JSON, so a resumed session is semantically
// equal to the one saved.
type ProgressStore struct {
	client *redis.Client
	ttl    time.Duration
}

func NewProgressStore(client *redis.Client, ttl time.Duration) *ProgressStore {
	return &ProgressStore{client: client, ttl: ttl}
}

func (s *ProgressStore) SaveQuizProgress(ctx context.Context, session domain.Session) error {
	data, err := json.Marshal(session)
	if err != nil {
		return fmt.Errorf("marshal session: %w", err)
	}
	if err := s.client.Set(ctx, s.progressKey(session.ID), data, s.ttl).Err(); err != nil {
		return fmt.Errorf("save progress: %w", err)
	}
	return nil
}

func (s *ProgressStore) GetQuizProgress(ctx context.Context, sessionID string) (domain.Session, bool, error) {
	raw, err := s.client.Get(ctx, s.progressKey(sessionID)).Bytes()
	if errors.Is(err, redis.Nil) {
		return domain.Session{}, false, nil
	}
	if err != nil {
		return domain.Session{}, false, fmt.Errorf("load progress: %w", err)
	}
	var session domain.Session
	if err := json.Unmarshal(raw, &session); err != nil {
		return domain.Session{}, false, fmt.Errorf("unmarshal session: %w", err)
	}
	return session, true, nil
}

func (s *ProgressStore) SaveCompletedQuiz(ctx context.Context, session domain.Session, result domain.QuizResult) error {
	entry := domain.HistoryEntry{
		SessionID:       result.SessionID,
		UserID:          result.UserID,
		TemplateID:      result.TemplateID,
		ScorePercentage: result.ScorePercentage,
		LetterGrade:     result.LetterGrade,
		CompletedAt:     result.CompletedAt,
	}
	data, err := json.Marshal(entry)
	if err != nil {
		return fmt.Errorf("marshal history entry: %w", err)
	}

	pipe := s.client.Pipeline()
	pipe.LPush(ctx, s.historyKey(session.UserID), data)
	pipe.Del(ctx, s.progressKey(session.ID))
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("save completed quiz: %w", err)
	}
	return nil
}

func (s *ProgressStore) GetQuizHistory(ctx context.Context, filter domain.HistoryFilter) ([]domain.HistoryEntry, error) {
	if filter.UserID == "" {
		return nil, fmt.Errorf("redis history requires a user filter")
	}
	stop := int64(-1)
	if filter.Limit > 0 {
		stop = int64(filter.Limit) - 1
	}
	raws, err := s.client.LRange(ctx, s.historyKey(filter.UserID), 0, stop).Result()
	if err != nil {
		return nil, fmt.Errorf("load history: %w", err)
	}

	var out []domain.HistoryEntry
	for _, raw := range raws {
		var entry domain.HistoryEntry
		if err := json.Unmarshal([]byte(raw), &entry); err != nil {
			continue
		}
		if filter.TemplateID != "" && entry.TemplateID != filter.TemplateID {
			continue
		}
		out = append(out, entry)
	}
	return out, nil
}

func (s *ProgressStore) progressKey(sessionID string) string {
	return "quiz:progress:" + sessionID
}

func (s *ProgressStore) historyKey(userID string) string {
	return "quiz:history:" + userID
}
