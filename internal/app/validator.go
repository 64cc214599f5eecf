package app

import (
	"sort"
	"strings"

	"theorie-engine/internal/domain"
	"theorie-engine/internal/theory"
)

// feedback buckets are a contract: >=1.0, >=0.8, >=0.5, else.
func feedbackFor(score float64) string {
	switch {
	case score >= 1.0:
		return "Perfect!"
	case score >= 0.8:
		return "Almost there - just a small slip."
	case score >= 0.5:
		return "Partially correct - review the missed notes."
	default:
		return "Incorrect - give it another look."
	}
}

// ValidateAnswer checks a submitted answer against a question, dispatching
// on the question kind. Malformed submissions score zero with explanatory
// feedback; this function never panics on user input.
func ValidateAnswer(q domain.Question, submitted domain.Answer) domain.ValidationResult {
	result := domain.ValidationResult{QuestionID: q.ID}
	switch q.Kind {
	case domain.MultipleChoice:
		result = validateMultipleChoice(q, submitted)
	case domain.ScaleStrip:
		result = validateScaleStrip(q, submitted)
	case domain.ScaleInteractive:
		result = validateScaleInteractive(q, submitted)
	case domain.ChordInteractive:
		result = validateChordInteractive(q, submitted)
	default:
		result.Feedback = "Unsupported question type."
	}
	return result
}

func validateMultipleChoice(q domain.Question, submitted domain.Answer) domain.ValidationResult {
	result := domain.ValidationResult{QuestionID: q.ID}
	if q.MultipleChoice == nil || submitted.OptionID == "" {
		result.Feedback = "No option selected."
		return result
	}
	for _, opt := range q.MultipleChoice.Options {
		if opt.ID == submitted.OptionID {
			if opt.Correct {
				result.IsCorrect = true
				result.EarnedPoints = q.Points()
				result.Feedback = feedbackFor(1)
			} else {
				result.Feedback = feedbackFor(0)
			}
			return result
		}
	}
	result.Feedback = "Selected option is not part of this question."
	return result
}

// validateScaleStrip requires exact position-set equality.
func validateScaleStrip(q domain.Question, submitted domain.Answer) domain.ValidationResult {
	result := domain.ValidationResult{QuestionID: q.ID}
	if q.ScaleStrip == nil {
		result.Feedback = "Question has no strip answer configured."
		return result
	}
	if len(submitted.Positions) == 0 {
		result.Feedback = "No positions selected."
		return result
	}
	if intSetsEqual(submitted.Positions, q.ScaleStrip.Positions) {
		result.IsCorrect = true
		result.EarnedPoints = q.Points()
		result.Feedback = feedbackFor(1)
		return result
	}
	result.Feedback = feedbackFor(0)
	return result
}

// validateScaleInteractive grades note names with enharmonic partial credit:
// full weight for exact spellings, 0.75 for enharmonic equivalents, minus a
// 0.25-weighted excess penalty, clamped to [0,1]. Full credit requires every
// note exact and no extras.
func validateScaleInteractive(q domain.Question, submitted domain.Answer) domain.ValidationResult {
	result := domain.ValidationResult{QuestionID: q.ID}
	if q.ScaleInteractive == nil || len(q.ScaleInteractive.ExpectedNotes) == 0 {
		result.Feedback = "Question has no expected notes configured."
		return result
	}
	if len(submitted.Notes) == 0 {
		result.Feedback = "No notes submitted."
		return result
	}

	expected := q.ScaleInteractive.ExpectedNotes
	remaining := make(map[string]int)
	remainingPC := make(map[int]int)
	for _, n := range expected {
		remaining[normalizeNote(n)]++
		if p, err := theory.ParsePitch(n); err == nil {
			remainingPC[p.PitchClass]++
		}
	}

	exact, enharmonic := 0, 0
	for _, n := range submitted.Notes {
		key := normalizeNote(n)
		if remaining[key] > 0 {
			remaining[key]--
			exact++
			if p, err := theory.ParsePitch(n); err == nil && remainingPC[p.PitchClass] > 0 {
				remainingPC[p.PitchClass]--
			}
			continue
		}
		if p, err := theory.ParsePitch(n); err == nil && remainingPC[p.PitchClass] > 0 {
			remainingPC[p.PitchClass]--
			enharmonic++
		}
	}

	expectedCount := float64(len(expected))
	score := float64(exact)/expectedCount + 0.75*float64(enharmonic)/expectedCount
	if excess := len(submitted.Notes) - len(expected); excess > 0 {
		score -= 0.25 * float64(excess) / expectedCount
	}
	if score < 0 {
		score = 0
	}
	if score > 1 {
		score = 1
	}

	allExact := exact == len(expected) && len(submitted.Notes) == len(expected)
	result.IsCorrect = allExact
	if allExact {
		score = 1
	}
	result.EarnedPoints = score * q.Points()
	result.Feedback = feedbackFor(score)
	return result
}

// validateChordInteractive compares interval shapes: the sorted successive
// differences of submitted vs expected positions. A transposed but
// correctly-shaped answer still scores.
func validateChordInteractive(q domain.Question, submitted domain.Answer) domain.ValidationResult {
	result := domain.ValidationResult{QuestionID: q.ID}
	if q.ChordInteractive == nil || len(q.ChordInteractive.ExpectedPositions) == 0 {
		result.Feedback = "Question has no expected positions configured."
		return result
	}
	if len(submitted.Positions) == 0 {
		result.Feedback = "No positions selected."
		return result
	}

	subPattern := intervalPattern(submitted.Positions)
	expPattern := intervalPattern(q.ChordInteractive.ExpectedPositions)
	if len(subPattern) != len(expPattern) {
		result.Feedback = feedbackFor(0)
		return result
	}

	expMultiset := make(map[int]int)
	for _, iv := range expPattern {
		expMultiset[iv]++
	}
	matched := 0
	for _, iv := range subPattern {
		if expMultiset[iv] > 0 {
			expMultiset[iv]--
			matched++
		}
	}

	score := 0.0
	if len(subPattern) > 0 {
		score = float64(matched) / float64(len(subPattern))
	} else if intSetsEqual(submitted.Positions, q.ChordInteractive.ExpectedPositions) {
		// Single-note chord shapes degenerate to an empty pattern.
		score = 1
	}

	result.IsCorrect = score >= 1
	result.EarnedPoints = score * q.Points()
	result.Feedback = feedbackFor(score)
	return result
}

// intervalPattern returns the successive differences of the sorted positions.
func intervalPattern(positions []int) []int {
	sorted := make([]int, len(positions))
	copy(sorted, positions)
	sort.Ints(sorted)
	if len(sorted) < 2 {
		return nil
	}
	pattern := make([]int, 0, len(sorted)-1)
	for i := 1; i < len(sorted); i++ {
		pattern = append(pattern, sorted[i]-sorted[i-1])
	}
	return pattern
}

func intSetsEqual(a, b []int) bool {
	setA := make(map[int]bool, len(a))
	for _, v := range a {
		setA[v] = true
	}
	setB := make(map[int]bool, len(b))
	for _, v := range b {
		setB[v] = true
	}
	if len(setA) != len(setB) {
		return false
	}
	for v := range setA {
		if !setB[v] {
			return false
		}
	}
	return true
}

// normalizeNote strips octave digits and unifies accidentals so "F#4" and
// "F♯" compare equal as spellings. Enharmonic respelling is left to the
// pitch-class comparison; "Fb" stays distinct from "E" here.
func normalizeNote(s string) string {
	s = strings.TrimSpace(s)
	s = strings.NewReplacer("♯", "#", "♭", "b").Replace(s)
	s = strings.TrimRight(s, "-0123456789")
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
