package domain

import "time"

// TopicPerformance is the per-topic breakdown of a completed quiz.
type TopicPerformance struct {
	TopicID         string        `json:"topicId"`
	QuestionCount   int           `json:"questionCount"`
	AnsweredCount   int           `json:"answeredCount"`
	CorrectCount    int           `json:"correctCount"`
	Accuracy        float64       `json:"accuracy"`
	ScorePercentage float64       `json:"scorePercentage"`
	AverageTime     time.Duration `json:"averageTime"`
}

// QuizResult is the frozen outcome of a completed session.
type QuizResult struct {
	SessionID       string                      `json:"sessionId"`
	UserID          string                      `json:"userId"`
	TemplateID      string                      `json:"templateId"`
	TotalPoints     float64                     `json:"totalPoints"`
	EarnedPoints    float64                     `json:"earnedPoints"`
	ScorePercentage float64                     `json:"scorePercentage"`
	Accuracy        float64                     `json:"accuracy"`
	LetterGrade     string                      `json:"letterGrade"`
	Topics          map[string]TopicPerformance `json:"topics"`
	WeakTopics      []string                    `json:"weakTopics"`
	StrongTopics    []string                    `json:"strongTopics"`
	CompletedAt     time.Time                   `json:"completedAt"`
}

// gradeBands maps minimum score percentage to letter grade, best first.
var gradeBands = []struct {
	min   float64
	grade string
}{
	{0.97, "A+"},
	{0.93, "A"},
	{0.90, "A-"},
	{0.87, "B+"},
	{0.83, "B"},
	{0.80, "B-"},
	{0.77, "C+"},
	{0.73, "C"},
	{0.70, "C-"},
	{0.60, "D"},
}

// LetterGrade maps a score percentage in [0,1] to its letter grade.
func LetterGrade(scorePercentage float64) string {
	for _, band := range gradeBands {
		if scorePercentage >= band.min {
			return band.grade
		}
	}
	return "F"
}

// HistoryEntry is the persisted summary of one completed quiz.
type HistoryEntry struct {
	SessionID       string    `json:"sessionId"`
	UserID          string    `json:"userId"`
	TemplateID      string    `json:"templateId"`
	ScorePercentage float64   `json:"scorePercentage"`
	LetterGrade     string    `json:"letterGrade"`
	CompletedAt     time.Time `json:"completedAt"`
}

// HistoryFilter narrows quiz history queries. Zero values match everything.
type HistoryFilter struct {
	UserID     string `json:"userId,omitempty"`
	TemplateID string `json:"templateId,omitempty"`
	Limit      int    `json:"limit,omitempty"`
}
