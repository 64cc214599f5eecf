package theory

import "errors"

var (
	// ErrNoteParse is returned when a note-name string cannot be parsed.
	ErrNoteParse = errors.New("unparseable note name")
	// ErrUnknownScale indicates a scale name missing from the registry.
	ErrUnknownScale = errors.New("unknown scale")
	// ErrUnknownChord indicates a chord type missing from the registry.
	ErrUnknownChord = errors.New("unknown chord type")
	// ErrUnknownTuning indicates a tuning name missing from the registry.
	ErrUnknownTuning = errors.New("unknown tuning")
)
