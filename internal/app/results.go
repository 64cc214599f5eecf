package app

import (
	"sort"
	"time"

	"theorie-engine/internal/domain"
)

// weakTopicThreshold is the absolute score bar a topic must clear to count
// as strong; topics are also compared against the across-topics mean.
const weakTopicThreshold = 0.8

// BuildResult aggregates a completed session into its frozen result.
// Skipped questions count toward totals but are excluded from the accuracy
// denominator.
func BuildResult(session domain.Session) (domain.QuizResult, error) {
	if session.Status != domain.StatusCompleted {
		return domain.QuizResult{}, domain.ErrQuizNotCompleted
	}

	type topicAccum struct {
		questions int
		answered  int
		correct   int
		possible  float64
		earned    float64
		time      time.Duration
	}
	topics := make(map[string]*topicAccum)

	totalPoints, earnedPoints := 0.0, 0.0
	answered, correct := 0, 0
	for _, q := range session.Questions {
		accum := topics[q.TopicID]
		if accum == nil {
			accum = &topicAccum{}
			topics[q.TopicID] = accum
		}
		accum.questions++
		accum.possible += q.Points()
		totalPoints += q.Points()

		rec, ok := session.Answers[q.ID]
		if !ok || rec.State != domain.Answered {
			continue
		}
		answered++
		accum.answered++
		accum.earned += rec.Result.EarnedPoints
		accum.time += time.Duration(rec.Submitted.TimeSpentMS) * time.Millisecond
		earnedPoints += rec.Result.EarnedPoints
		if rec.Result.IsCorrect {
			correct++
			accum.correct++
		}
	}

	result := domain.QuizResult{
		SessionID:    session.ID,
		UserID:       session.UserID,
		TemplateID:   session.TemplateID,
		TotalPoints:  totalPoints,
		EarnedPoints: earnedPoints,
		Topics:       make(map[string]domain.TopicPerformance, len(topics)),
	}
	if session.EndedAt != nil {
		result.CompletedAt = *session.EndedAt
	}
	if totalPoints > 0 {
		result.ScorePercentage = earnedPoints / totalPoints
	}
	if answered > 0 {
		result.Accuracy = float64(correct) / float64(answered)
	}
	result.LetterGrade = domain.LetterGrade(result.ScorePercentage)

	meanScore := 0.0
	for topicID, accum := range topics {
		perf := domain.TopicPerformance{
			TopicID:       topicID,
			QuestionCount: accum.questions,
			AnsweredCount: accum.answered,
			CorrectCount:  accum.correct,
		}
		if accum.answered > 0 {
			perf.Accuracy = float64(accum.correct) / float64(accum.answered)
			perf.AverageTime = accum.time / time.Duration(accum.answered)
		}
		if accum.possible > 0 {
			perf.ScorePercentage = accum.earned / accum.possible
		}
		result.Topics[topicID] = perf
		meanScore += perf.ScorePercentage
	}
	if len(topics) > 0 {
		meanScore /= float64(len(topics))
	}

	// Weak: below the across-topics mean AND below the absolute bar.
	// Strong: at or above both.
	for topicID, perf := range result.Topics {
		switch {
		case perf.ScorePercentage < meanScore && perf.ScorePercentage < weakTopicThreshold:
			result.WeakTopics = append(result.WeakTopics, topicID)
		case perf.ScorePercentage >= meanScore && perf.ScorePercentage >= weakTopicThreshold:
			result.StrongTopics = append(result.StrongTopics, topicID)
		}
	}
	sort.Strings(result.WeakTopics)
	sort.Strings(result.StrongTopics)

	return result, nil
}

// HistoryEntryFor condenses a result into its persisted summary form.
func HistoryEntryFor(result domain.QuizResult) domain.HistoryEntry {
	return domain.HistoryEntry{
		SessionID:       result.SessionID,
		UserID:          result.UserID,
		TemplateID:      result.TemplateID,
		ScorePercentage: result.ScorePercentage,
		LetterGrade:     result.LetterGrade,
		CompletedAt:     result.CompletedAt,
	}
}
