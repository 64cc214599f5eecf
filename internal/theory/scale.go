package theory

import (
	"fmt"
	"sort"
)

// Scale is a named set of ascending degree intervals starting at 0.
type Scale struct {
	Name      string   `json:"name"`
	Intervals []int    `json:"intervals"`
	ModeNames []string `json:"modeNames,omitempty"`
}

// degreeLabels spells each semitone offset as a scale degree.
var degreeLabels = [12]string{"1", "♭2", "2", "♭3", "3", "4", "♭5", "5", "♭6", "6", "♭7", "7"}

var scaleRegistry = map[string]Scale{
	"major": {
		Name:      "Major",
		Intervals: []int{0, 2, 4, 5, 7, 9, 11},
		ModeNames: []string{"Ionian", "Dorian", "Phrygian", "Lydian", "Mixolydian", "Aeolian", "Locrian"},
	},
	"naturalMinor": {
		Name:      "Natural Minor",
		Intervals: []int{0, 2, 3, 5, 7, 8, 10},
	},
	"harmonicMinor": {
		Name:      "Harmonic Minor",
		Intervals: []int{0, 2, 3, 5, 7, 8, 11},
	},
	"melodicMinor": {
		Name:      "Melodic Minor",
		Intervals: []int{0, 2, 3, 5, 7, 9, 11},
	},
	"majorPentatonic": {
		Name:      "Major Pentatonic",
		Intervals: []int{0, 2, 4, 7, 9},
	},
	"minorPentatonic": {
		Name:      "Minor Pentatonic",
		Intervals: []int{0, 3, 5, 7, 10},
	},
	"blues": {
		Name:      "Blues",
		Intervals: []int{0, 3, 5, 6, 7, 10},
	},
	"wholeTone": {
		Name:      "Whole Tone",
		Intervals: []int{0, 2, 4, 6, 8, 10},
	},
}

// LookupScale returns the scale registered under key.
func LookupScale(key string) (Scale, error) {
	s, ok := scaleRegistry[key]
	if !ok {
		return Scale{}, fmt.Errorf("%w: %q", ErrUnknownScale, key)
	}
	return s, nil
}

// ScaleKeys returns the registered scale keys in sorted order.
func ScaleKeys() []string {
	keys := make([]string, 0, len(scaleRegistry))
	for k := range scaleRegistry {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// NotesForRoot generates the scale tones ascending from root. Intervals of
// 12 or more bump the octave.
func (s Scale) NotesForRoot(root Pitch) []Pitch {
	notes := make([]Pitch, 0, len(s.Intervals))
	for _, iv := range s.Intervals {
		notes = append(notes, root.Transpose(iv))
	}
	return notes
}

// ModeIntervals rotates the scale to start at modeIndex and renormalizes so
// the first interval is 0. Defined for any scale length; modeIndex wraps.
func (s Scale) ModeIntervals(modeIndex int) []int {
	n := len(s.Intervals)
	if n == 0 {
		return nil
	}
	modeIndex = ((modeIndex % n) + n) % n
	if modeIndex == 0 {
		out := make([]int, n)
		copy(out, s.Intervals)
		return out
	}
	offset := s.Intervals[modeIndex]
	out := make([]int, 0, n)
	for i := 0; i < n; i++ {
		iv := s.Intervals[(modeIndex+i)%n] - offset
		out = append(out, ((iv%12)+12)%12)
	}
	sort.Ints(out)
	return out
}

// DegreeLabels maps the scale intervals through the fixed degree-name table.
func (s Scale) DegreeLabels() []string {
	labels := make([]string, 0, len(s.Intervals))
	for _, iv := range s.Intervals {
		labels = append(labels, degreeLabels[((iv%12)+12)%12])
	}
	return labels
}

// ModeCount returns the number of rotations the scale supports.
func (s Scale) ModeCount() int {
	return len(s.Intervals)
}
