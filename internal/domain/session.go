package domain

import (
	"fmt"
	"time"
)

// SessionStatus is the lifecycle state of a quiz session.
type SessionStatus string

const (
	StatusInProgress SessionStatus = "in_progress"
	StatusCompleted  SessionStatus = "completed"
	StatusAbandoned  SessionStatus = "abandoned"
)

// QuestionState is the per-question state within a session.
type QuestionState string

const (
	Unanswered QuestionState = "unanswered"
	Answered   QuestionState = "answered"
	Skipped    QuestionState = "skipped"
)

// RecordedAnswer is one submitted (or skipped) answer with its validation.
type RecordedAnswer struct {
	QuestionID string           `json:"questionId"`
	State      QuestionState    `json:"state"`
	Submitted  Answer           `json:"submitted"`
	Result     ValidationResult `json:"result"`
	AnsweredAt time.Time        `json:"answeredAt"`
}

// Session is a quiz in flight. Values are treated as immutable: every
// transition returns a new Session. The owning service serializes updates
// behind a single writer.
type Session struct {
	ID           string                    `json:"id"`
	UserID       string                    `json:"userId"`
	TemplateID   string                    `json:"templateId"`
	Questions    []Question                `json:"questions"`
	Answers      map[string]RecordedAnswer `json:"answers"`
	CurrentIndex int                       `json:"currentIndex"`
	Status       SessionStatus             `json:"status"`
	StartedAt    time.Time                 `json:"startedAt"`
	EndedAt      *time.Time                `json:"endedAt,omitempty"`
}

// NewSession starts a session over the generated question list.
func NewSession(id, userID, templateID string, questions []Question, now time.Time) Session {
	return Session{
		ID:         id,
		UserID:     userID,
		TemplateID: templateID,
		Questions:  questions,
		Answers:    make(map[string]RecordedAnswer),
		Status:     StatusInProgress,
		StartedAt:  now,
	}
}

// QuestionByID finds a session question.
func (s Session) QuestionByID(id string) (Question, bool) {
	for _, q := range s.Questions {
		if q.ID == id {
			return q, true
		}
	}
	return Question{}, false
}

// withAnswers returns a copy with a fresh answers map including extra.
func (s Session) withAnswer(rec RecordedAnswer) Session {
	answers := make(map[string]RecordedAnswer, len(s.Answers)+1)
	for k, v := range s.Answers {
		answers[k] = v
	}
	answers[rec.QuestionID] = rec
	s.Answers = answers
	return s
}

// RecordAnswer transitions a question from Unanswered to Answered.
func (s Session) RecordAnswer(questionID string, submitted Answer, result ValidationResult, now time.Time) (Session, error) {
	if s.Status != StatusInProgress {
		return s, ErrSessionFinished
	}
	if _, ok := s.QuestionByID(questionID); !ok {
		return s, fmt.Errorf("%w: %s", ErrQuestionNotFound, questionID)
	}
	if _, done := s.Answers[questionID]; done {
		return s, fmt.Errorf("%w: %s", ErrQuestionAnswered, questionID)
	}
	return s.withAnswer(RecordedAnswer{
		QuestionID: questionID,
		State:      Answered,
		Submitted:  submitted,
		Result:     result,
		AnsweredAt: now,
	}), nil
}

// Skip marks a question skipped: a terminal state that always scores zero.
func (s Session) Skip(questionID string, now time.Time) (Session, error) {
	if s.Status != StatusInProgress {
		return s, ErrSessionFinished
	}
	if _, ok := s.QuestionByID(questionID); !ok {
		return s, fmt.Errorf("%w: %s", ErrQuestionNotFound, questionID)
	}
	if _, done := s.Answers[questionID]; done {
		return s, fmt.Errorf("%w: %s", ErrQuestionAnswered, questionID)
	}
	return s.withAnswer(RecordedAnswer{
		QuestionID: questionID,
		State:      Skipped,
		Result:     ValidationResult{QuestionID: questionID, Feedback: "Skipped."},
		AnsweredAt: now,
	}), nil
}

// Navigate moves the cursor to index, clamped to the question list.
func (s Session) Navigate(index int) Session {
	if index < 0 {
		index = 0
	}
	if max := len(s.Questions) - 1; index > max && max >= 0 {
		index = max
	}
	s.CurrentIndex = index
	return s
}

// Complete freezes the session. The transformation to a result is one-way.
func (s Session) Complete(now time.Time) (Session, error) {
	if s.Status != StatusInProgress {
		return s, ErrSessionFinished
	}
	s.Status = StatusCompleted
	s.EndedAt = &now
	return s, nil
}

// Abandon terminates the session without results.
func (s Session) Abandon(now time.Time) (Session, error) {
	if s.Status != StatusInProgress {
		return s, ErrSessionFinished
	}
	s.Status = StatusAbandoned
	s.EndedAt = &now
	return s, nil
}

// AnsweredCount counts questions in the Answered state (skips excluded).
func (s Session) AnsweredCount() int {
	count := 0
	for _, rec := range s.Answers {
		if rec.State == Answered {
			count++
		}
	}
	return count
}

// Remaining counts questions with no terminal state yet.
func (s Session) Remaining() int {
	return len(s.Questions) - len(s.Answers)
}
