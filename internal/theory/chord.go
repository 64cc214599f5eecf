package theory

import (
	"fmt"
	"sort"
)

// MaxChordInversions caps how many inversions a voicing may request,
// regardless of chord size.
const MaxChordInversions = 4

// Chord is a named interval stack. Intervals may exceed 12 (extensions) and
// may repeat (doubled voicings).
type Chord struct {
	Type        string `json:"type"`
	Symbol      string `json:"symbol"`
	DisplayName string `json:"displayName"`
	Intervals   []int  `json:"intervals"`
	Category    string `json:"category"`
}

var chordRegistry = map[string]Chord{
	"major":      {Type: "major", Symbol: "", DisplayName: "Major", Intervals: []int{0, 4, 7}, Category: "triad"},
	"minor":      {Type: "minor", Symbol: "m", DisplayName: "Minor", Intervals: []int{0, 3, 7}, Category: "triad"},
	"diminished": {Type: "diminished", Symbol: "dim", DisplayName: "Diminished", Intervals: []int{0, 3, 6}, Category: "triad"},
	"augmented":  {Type: "augmented", Symbol: "aug", DisplayName: "Augmented", Intervals: []int{0, 4, 8}, Category: "triad"},
	"sus2":       {Type: "sus2", Symbol: "sus2", DisplayName: "Suspended 2nd", Intervals: []int{0, 2, 7}, Category: "suspended"},
	"sus4":       {Type: "sus4", Symbol: "sus4", DisplayName: "Suspended 4th", Intervals: []int{0, 5, 7}, Category: "suspended"},
	"major6":     {Type: "major6", Symbol: "6", DisplayName: "Major 6th", Intervals: []int{0, 4, 7, 9}, Category: "sixth"},
	"minor6":     {Type: "minor6", Symbol: "m6", DisplayName: "Minor 6th", Intervals: []int{0, 3, 7, 9}, Category: "sixth"},
	"major7":     {Type: "major7", Symbol: "maj7", DisplayName: "Major 7th", Intervals: []int{0, 4, 7, 11}, Category: "seventh"},
	"minor7":     {Type: "minor7", Symbol: "m7", DisplayName: "Minor 7th", Intervals: []int{0, 3, 7, 10}, Category: "seventh"},
	"dominant7":  {Type: "dominant7", Symbol: "7", DisplayName: "Dominant 7th", Intervals: []int{0, 4, 7, 10}, Category: "seventh"},
	"diminished7": {
		Type: "diminished7", Symbol: "dim7", DisplayName: "Diminished 7th",
		Intervals: []int{0, 3, 6, 9}, Category: "seventh",
	},
	"halfDiminished7": {
		Type: "halfDiminished7", Symbol: "m7♭5", DisplayName: "Half-Diminished 7th",
		Intervals: []int{0, 3, 6, 10}, Category: "seventh",
	},
	"minorMajor7": {
		Type: "minorMajor7", Symbol: "m(maj7)", DisplayName: "Minor Major 7th",
		Intervals: []int{0, 3, 7, 11}, Category: "seventh",
	},
	"add9":       {Type: "add9", Symbol: "add9", DisplayName: "Added 9th", Intervals: []int{0, 4, 7, 14}, Category: "extended"},
	"major9":     {Type: "major9", Symbol: "maj9", DisplayName: "Major 9th", Intervals: []int{0, 4, 7, 11, 14}, Category: "extended"},
	"minor9":     {Type: "minor9", Symbol: "m9", DisplayName: "Minor 9th", Intervals: []int{0, 3, 7, 10, 14}, Category: "extended"},
	"dominant9":  {Type: "dominant9", Symbol: "9", DisplayName: "Dominant 9th", Intervals: []int{0, 4, 7, 10, 14}, Category: "extended"},
	"dominant11": {Type: "dominant11", Symbol: "11", DisplayName: "Dominant 11th", Intervals: []int{0, 4, 7, 10, 14, 17}, Category: "extended"},
	"dominant13": {
		Type: "dominant13", Symbol: "13", DisplayName: "Dominant 13th",
		Intervals: []int{0, 4, 7, 10, 14, 21}, Category: "extended",
	},
}

// LookupChord returns the chord registered under chordType.
func LookupChord(chordType string) (Chord, error) {
	c, ok := chordRegistry[chordType]
	if !ok {
		return Chord{}, fmt.Errorf("%w: %q", ErrUnknownChord, chordType)
	}
	return c, nil
}

// ChordKeys returns the registered chord type keys in sorted order.
func ChordKeys() []string {
	keys := make([]string, 0, len(chordRegistry))
	for k := range chordRegistry {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// ChordsInCategory returns registered chords with the given category,
// ordered by type key.
func ChordsInCategory(category string) []Chord {
	var out []Chord
	for _, k := range ChordKeys() {
		if chordRegistry[k].Category == category {
			out = append(out, chordRegistry[k])
		}
	}
	return out
}

// NotesForRoot generates the chord tones for a root pitch.
func (c Chord) NotesForRoot(root Pitch) []Pitch {
	notes := make([]Pitch, 0, len(c.Intervals))
	for _, iv := range c.Intervals {
		notes = append(notes, root.Transpose(iv))
	}
	return notes
}

// AvailableInversions reports how many inversions (including root position)
// the chord supports.
func (c Chord) AvailableInversions() int {
	if len(c.Intervals) < MaxChordInversions {
		return len(c.Intervals)
	}
	return MaxChordInversions
}

// BuildVoicing constructs the chord voicing for the given inversion.
// The intervals from the inversion index up stay in the root octave; the
// intervals below it move up one octave, appended after the tail so the
// result reads bass-first. An out-of-range inversion falls back to root
// position.
func (c Chord) BuildVoicing(root Pitch, inversion int) []Pitch {
	if inversion < 0 || inversion >= len(c.Intervals) || inversion >= MaxChordInversions {
		inversion = 0
	}
	base := root.MIDI()
	notes := make([]Pitch, 0, len(c.Intervals))
	for _, iv := range c.Intervals[inversion:] {
		notes = append(notes, FromMIDI(base+iv))
	}
	for _, iv := range c.Intervals[:inversion] {
		notes = append(notes, FromMIDI(base+iv+12))
	}
	for i := range notes {
		notes[i].Preference = root.Preference
	}
	return notes
}
