package domain

import "errors"

var (
	// ErrSessionNotFound is returned when a quiz session has not been started.
	ErrSessionNotFound = errors.New("quiz session not found")
	// ErrSessionFinished is returned on mutations after completion or abandonment.
	ErrSessionFinished = errors.New("quiz session already finished")
	// ErrQuestionNotFound indicates a question ID that is not part of the session.
	ErrQuestionNotFound = errors.New("question not found")
	// ErrQuestionAnswered indicates a question already in a terminal state.
	ErrQuestionAnswered = errors.New("question already answered or skipped")
	// ErrSectionNotFound indicates the question pool has no such section.
	ErrSectionNotFound = errors.New("question section not found")
	// ErrInvalidTemplate wraps template validation failures. These are
	// detected before any question selection work begins.
	ErrInvalidTemplate = errors.New("invalid quiz template")
	// ErrQuizNotCompleted is returned when results are requested for an
	// unfinished session.
	ErrQuizNotCompleted = errors.New("quiz session not completed")
)
