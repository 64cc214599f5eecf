package domain

import (
	"fmt"
	"math"
)

// DifficultyRange bounds question difficulty, inclusive on both ends.
type DifficultyRange struct {
	Min int `json:"min"`
	Max int `json:"max"`
}

// Contains reports whether d falls inside the range.
func (r DifficultyRange) Contains(d int) bool {
	return d >= r.Min && d <= r.Max
}

// Midpoint returns the center of the range.
func (r DifficultyRange) Midpoint() float64 {
	return float64(r.Min+r.Max) / 2
}

// QuizTemplate drives quiz generation. Not mutated after construction.
type QuizTemplate struct {
	ID               string                   `json:"id"`
	Name             string                   `json:"name"`
	SectionID        string                   `json:"sectionId"`
	Distribution     map[QuestionKind]int     `json:"distribution"`
	TopicWeights     map[string]float64       `json:"topicWeights"`
	Difficulty       DifficultyRange          `json:"difficulty"`
	RequiredConcepts []string                 `json:"requiredConcepts,omitempty"`
	Strategy         string                   `json:"strategy,omitempty"`
}

// TotalQuestions sums the requested distribution counts.
func (t QuizTemplate) TotalQuestions() int {
	total := 0
	for _, count := range t.Distribution {
		total += count
	}
	return total
}

// Validate checks the template before any generation work: the distribution
// must request at least one question, topic weights must sum to 1 within a
// 5% tolerance, and the difficulty range must not be inverted.
func (t QuizTemplate) Validate() error {
	if t.TotalQuestions() <= 0 {
		return fmt.Errorf("%w: distribution requests no questions", ErrInvalidTemplate)
	}
	sum := 0.0
	for _, w := range t.TopicWeights {
		sum += w
	}
	if len(t.TopicWeights) > 0 && math.Abs(sum-1.0) > 0.05 {
		return fmt.Errorf("%w: topic weights sum to %.3f, want ~1.0", ErrInvalidTemplate, sum)
	}
	if t.Difficulty.Min > t.Difficulty.Max {
		return fmt.Errorf("%w: difficulty range %d..%d is inverted", ErrInvalidTemplate, t.Difficulty.Min, t.Difficulty.Max)
	}
	return nil
}

// IsValid reports template validity without the diagnostic.
func (t QuizTemplate) IsValid() bool {
	return t.Validate() == nil
}
