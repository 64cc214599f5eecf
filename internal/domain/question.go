package domain

// QuestionKind tags the question variants. Adding a kind means adding a
// payload struct here plus a handler arm in the validator.
type QuestionKind string

const (
	MultipleChoice   QuestionKind = "multiple_choice"
	ScaleStrip       QuestionKind = "scale_strip"
	ScaleInteractive QuestionKind = "scale_interactive"
	ChordInteractive QuestionKind = "chord_interactive"
)

// Option is one choice of a multiple-choice question.
type Option struct {
	ID      string `json:"id"`
	Text    string `json:"text"`
	Correct bool   `json:"correct"`
}

// MultipleChoicePayload holds the options for a multiple-choice question.
type MultipleChoicePayload struct {
	Options []Option `json:"options"`
}

// ScaleStripPayload holds the canonical answer for a strip drill plus the
// strip geometry the client renders.
type ScaleStripPayload struct {
	StripRoot   string   `json:"stripRoot"`
	OctaveCount int      `json:"octaveCount"`
	KeyContext  string   `json:"keyContext"`
	Positions   []int    `json:"positions"`
	Notes       []string `json:"notes"`
}

// ScaleInteractivePayload expects note names; scoring grants enharmonic
// partial credit.
type ScaleInteractivePayload struct {
	ScaleKey      string   `json:"scaleKey"`
	Root          string   `json:"root"`
	ExpectedNotes []string `json:"expectedNotes"`
}

// ChordInteractivePayload expects positions matched by interval shape, so a
// transposed but correctly-shaped answer still scores.
type ChordInteractivePayload struct {
	ChordType         string `json:"chordType"`
	Root              string `json:"root"`
	Inversion         int    `json:"inversion"`
	ExpectedPositions []int  `json:"expectedPositions"`
}

// Question is a tagged union over the four variants. Exactly one payload
// matching Kind is set. Immutable once constructed.
type Question struct {
	ID         string       `json:"id"`
	Kind       QuestionKind `json:"kind"`
	Text       string       `json:"text"`
	SectionID  string       `json:"sectionId"`
	TopicID    string       `json:"topicId"`
	Difficulty int          `json:"difficulty"`
	PointValue float64      `json:"pointValue"`
	ConceptIDs []string     `json:"conceptIds,omitempty"`

	MultipleChoice   *MultipleChoicePayload   `json:"multipleChoice,omitempty"`
	ScaleStrip       *ScaleStripPayload       `json:"scaleStrip,omitempty"`
	ScaleInteractive *ScaleInteractivePayload `json:"scaleInteractive,omitempty"`
	ChordInteractive *ChordInteractivePayload `json:"chordInteractive,omitempty"`
}

// Points returns the point value, defaulting to 1.
func (q Question) Points() float64 {
	if q.PointValue <= 0 {
		return 1
	}
	return q.PointValue
}

// Answer is the submitted answer shape shared across variants. The validator
// reads the fields relevant to the question's kind and treats anything
// malformed as an incorrect answer, never an error.
type Answer struct {
	OptionID    string   `json:"optionId,omitempty"`
	Positions   []int    `json:"positions,omitempty"`
	Notes       []string `json:"notes,omitempty"`
	TimeSpentMS int64    `json:"timeSpentMs,omitempty"`
}

// ValidationResult is the outcome of checking one answer.
type ValidationResult struct {
	QuestionID   string  `json:"questionId"`
	IsCorrect    bool    `json:"isCorrect"`
	EarnedPoints float64 `json:"earnedPoints"`
	Feedback     string  `json:"feedback"`
}
