package app

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"theorie-engine/internal/domain"
)

// ProgressStore abstracts how quiz progress and history are persisted
// (in-memory, Redis, etc).
type ProgressStore interface {
	SaveQuizProgress(ctx context.Context, session domain.Session) error
	GetQuizProgress(ctx context.Context, sessionID string) (domain.Session, bool, error)
	SaveCompletedQuiz(ctx context.Context, session domain.Session, result domain.QuizResult) error
	GetQuizHistory(ctx context.Context, filter domain.HistoryFilter) ([]domain.HistoryEntry, error)
}

// QuizService contains the quiz-taking use cases. It is the single logical
// owner of live sessions: session values are immutable and every transition
// swaps the held value under the mutex.
type QuizService struct {
	generator *Generator
	store     ProgressStore
	now       func() time.Time
	newID     func() string

	mu       sync.RWMutex
	sessions map[string]domain.Session
}

func NewQuizService(generator *Generator, store ProgressStore) *QuizService {
	return &QuizService{
		generator: generator,
		store:     store,
		now:       time.Now,
		newID:     func() string { return uuid.NewString() },
		sessions:  make(map[string]domain.Session),
	}
}

// NewQuizServiceWithClock is test-only for deterministic timestamps and IDs.
func NewQuizServiceWithClock(generator *Generator, store ProgressStore, now func() time.Time, newID func() string) *QuizService {
	s := NewQuizService(generator, store)
	s.now = now
	s.newID = newID
	return s
}

// Start generates a quiz from the template and opens a session for the user.
func (s *QuizService) Start(ctx context.Context, userID string, template domain.QuizTemplate) (domain.Session, GenerationReport, error) {
	questions, report, err := s.generator.Generate(ctx, template)
	if err != nil {
		return domain.Session{}, GenerationReport{}, err
	}
	if len(questions) == 0 {
		return domain.Session{}, report, fmt.Errorf("%w: pool produced no questions", domain.ErrSectionNotFound)
	}

	session := domain.NewSession(s.newID(), userID, template.ID, questions, s.now())

	s.mu.Lock()
	s.sessions[session.ID] = session
	s.mu.Unlock()

	if err := s.store.SaveQuizProgress(ctx, session); err != nil {
		return domain.Session{}, report, fmt.Errorf("save progress: %w", err)
	}
	return session, report, nil
}

// Resume restores a persisted in-progress session into the live set.
func (s *QuizService) Resume(ctx context.Context, sessionID string) (domain.Session, error) {
	s.mu.RLock()
	if session, ok := s.sessions[sessionID]; ok {
		s.mu.RUnlock()
		return session, nil
	}
	s.mu.RUnlock()

	session, found, err := s.store.GetQuizProgress(ctx, sessionID)
	if err != nil {
		return domain.Session{}, fmt.Errorf("load progress: %w", err)
	}
	if !found {
		return domain.Session{}, domain.ErrSessionNotFound
	}

	s.mu.Lock()
	s.sessions[session.ID] = session
	s.mu.Unlock()
	return session, nil
}

// Submit validates an answer against its question and records it.
func (s *QuizService) Submit(ctx context.Context, sessionID, questionID string, answer domain.Answer) (domain.ValidationResult, domain.Session, error) {
	session, err := s.transition(sessionID, func(current domain.Session) (domain.Session, error) {
		question, ok := current.QuestionByID(questionID)
		if !ok {
			return current, fmt.Errorf("%w: %s", domain.ErrQuestionNotFound, questionID)
		}
		result := ValidateAnswer(question, answer)
		return current.RecordAnswer(questionID, answer, result, s.now())
	})
	if err != nil {
		return domain.ValidationResult{}, domain.Session{}, err
	}

	if err := s.store.SaveQuizProgress(ctx, session); err != nil {
		return domain.ValidationResult{}, domain.Session{}, fmt.Errorf("save progress: %w", err)
	}
	return session.Answers[questionID].Result, session, nil
}

// Skip marks a question skipped; it scores zero and stays terminal.
func (s *QuizService) Skip(ctx context.Context, sessionID, questionID string) (domain.Session, error) {
	session, err := s.transition(sessionID, func(current domain.Session) (domain.Session, error) {
		return current.Skip(questionID, s.now())
	})
	if err != nil {
		return domain.Session{}, err
	}
	if err := s.store.SaveQuizProgress(ctx, session); err != nil {
		return domain.Session{}, fmt.Errorf("save progress: %w", err)
	}
	return session, nil
}

// Navigate moves the session cursor.
func (s *QuizService) Navigate(_ context.Context, sessionID string, index int) (domain.Session, error) {
	return s.transition(sessionID, func(current domain.Session) (domain.Session, error) {
		return current.Navigate(index), nil
	})
}

// Complete freezes the session, aggregates the result, persists it, and
// drops the live session.
func (s *QuizService) Complete(ctx context.Context, sessionID string) (domain.QuizResult, error) {
	session, err := s.transition(sessionID, func(current domain.Session) (domain.Session, error) {
		return current.Complete(s.now())
	})
	if err != nil {
		return domain.QuizResult{}, err
	}

	result, err := BuildResult(session)
	if err != nil {
		return domain.QuizResult{}, err
	}
	if err := s.store.SaveCompletedQuiz(ctx, session, result); err != nil {
		return domain.QuizResult{}, fmt.Errorf("save completed quiz: %w", err)
	}

	s.mu.Lock()
	delete(s.sessions, sessionID)
	s.mu.Unlock()
	return result, nil
}

// Abandon terminates a session without producing a result.
func (s *QuizService) Abandon(ctx context.Context, sessionID string) error {
	session, err := s.transition(sessionID, func(current domain.Session) (domain.Session, error) {
		return current.Abandon(s.now())
	})
	if err != nil {
		return err
	}
	if err := s.store.SaveQuizProgress(ctx, session); err != nil {
		return fmt.Errorf("save progress: %w", err)
	}

	s.mu.Lock()
	delete(s.sessions, sessionID)
	s.mu.Unlock()
	return nil
}

// History lists completed quizzes matching the filter.
func (s *QuizService) History(ctx context.Context, filter domain.HistoryFilter) ([]domain.HistoryEntry, error) {
	return s.store.GetQuizHistory(ctx, filter)
}

// Session returns a snapshot of a live session.
func (s *QuizService) Session(sessionID string) (domain.Session, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	session, ok := s.sessions[sessionID]
	return session, ok
}

// transition applies a state-transition function to the held session value
// and swaps in the result, all under the write lock.
func (s *QuizService) transition(sessionID string, fn func(domain.Session) (domain.Session, error)) (domain.Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	current, ok := s.sessions[sessionID]
	if !ok {
		return domain.Session{}, domain.ErrSessionNotFound
	}
	next, err := fn(current)
	if err != nil {
		return domain.Session{}, err
	}
	s.sessions[sessionID] = next
	return next, nil
}
