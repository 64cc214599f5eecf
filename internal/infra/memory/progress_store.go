package memory

import (
	"context"
	"sort"
	"sync"

	"theorie-engine/internal/domain"
)

// ProgressStore is an in-memory implementation of app.ProgressStore.
type ProgressStore struct {
	mu       sync.RWMutex
	progress map[string]domain.Session
	history  []domain.HistoryEntry
}

func NewProgressStore() *ProgressStore {
	return &ProgressStore{
		progress: make(map[string]domain.Session),
	}
}

func (s *ProgressStore) SaveQuizProgress(_ context.Context, session domain.Session) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.progress[session.ID] = session
	return nil
}

func (s *ProgressStore) GetQuizProgress(_ context.Context, sessionID string) (domain.Session, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	session, ok := s.progress[sessionID]
	return session, ok, nil
}

func (s *ProgressStore) SaveCompletedQuiz(_ context.Context, session domain.Session, result domain.QuizResult) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.progress, session.ID)
	s.history = append(s.history, domain.HistoryEntry{
		SessionID:       result.SessionID,
		UserID:          result.UserID,
		TemplateID:      result.TemplateID,
		ScorePercentage: result.ScorePercentage,
		LetterGrade:     result.LetterGrade,
		CompletedAt:     result.CompletedAt,
	})
	return nil
}

func (s *ProgressStore) GetQuizHistory(_ context.Context, filter domain.HistoryFilter) ([]domain.HistoryEntry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []domain.HistoryEntry
	for _, entry := range s.history {
		if filter.UserID != "" && entry.UserID != filter.UserID {
			continue
		}
		if filter.TemplateID != "" && entry.TemplateID != filter.TemplateID {
			continue
		}
		out = append(out, entry)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CompletedAt.After(out[j].CompletedAt) })
	if filter.Limit > 0 && len(out) > filter.Limit {
		out = out[:filter.Limit]
	}
	return out, nil
}
