package theory

import (
	"fmt"
	"sort"
)

// InstrumentFamily groups tunings by the instrument they belong to.
type InstrumentFamily string

const (
	Guitar   InstrumentFamily = "guitar"
	Bass     InstrumentFamily = "bass"
	Ukulele  InstrumentFamily = "ukulele"
	Mandolin InstrumentFamily = "mandolin"
)

// Tuning describes an instrument's open strings, low to high.
type Tuning struct {
	Name        string           `json:"name"`
	OpenStrings []string         `json:"openStrings"`
	Family      InstrumentFamily `json:"family"`
}

// FretPosition locates a pitch on a string/fret pair. StringIndex 0 is the
// lowest string.
type FretPosition struct {
	StringIndex int   `json:"stringIndex"`
	FretNumber  int   `json:"fretNumber"`
	Pitch       Pitch `json:"pitch"`
}

var tuningRegistry = map[string]Tuning{
	"standard": {Name: "Standard", OpenStrings: []string{"E2", "A2", "D3", "G3", "B3", "E4"}, Family: Guitar},
	"dropD":    {Name: "Drop D", OpenStrings: []string{"D2", "A2", "D3", "G3", "B3", "E4"}, Family: Guitar},
	"dadgad":   {Name: "DADGAD", OpenStrings: []string{"D2", "A2", "D3", "G3", "A3", "D4"}, Family: Guitar},
	"openG":    {Name: "Open G", OpenStrings: []string{"D2", "G2", "D3", "G3", "B3", "D4"}, Family: Guitar},
	"bass4":    {Name: "Bass (4-string)", OpenStrings: []string{"E1", "A1", "D2", "G2"}, Family: Bass},
	"bass5":    {Name: "Bass (5-string)", OpenStrings: []string{"B0", "E1", "A1", "D2", "G2"}, Family: Bass},
	"ukulele":  {Name: "Ukulele (re-entrant)", OpenStrings: []string{"G4", "C4", "E4", "A4"}, Family: Ukulele},
	"mandolin": {Name: "Mandolin", OpenStrings: []string{"G3", "D4", "A4", "E5"}, Family: Mandolin},
}

// LookupTuning returns the tuning registered under key.
func LookupTuning(key string) (Tuning, error) {
	t, ok := tuningRegistry[key]
	if !ok {
		return Tuning{}, fmt.Errorf("%w: %q", ErrUnknownTuning, key)
	}
	return t, nil
}

// TuningKeys returns the registered tuning keys in sorted order.
func TuningKeys() []string {
	keys := make([]string, 0, len(tuningRegistry))
	for k := range tuningRegistry {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// StringCount returns the number of strings.
func (t Tuning) StringCount() int {
	return len(t.OpenStrings)
}

// OpenPitches parses the open-string notes. Registry entries are authored
// statically, so a parse failure here is a programmer error.
func (t Tuning) OpenPitches() ([]Pitch, error) {
	pitches := make([]Pitch, 0, len(t.OpenStrings))
	for _, s := range t.OpenStrings {
		p, err := ParsePitch(s)
		if err != nil {
			return nil, fmt.Errorf("tuning %q: %w", t.Name, err)
		}
		pitches = append(pitches, p)
	}
	return pitches, nil
}

// Range returns the lowest open-string pitch and the highest pitch reachable
// within maxFrets.
func (t Tuning) Range(maxFrets int) (low, high Pitch, err error) {
	open, err := t.OpenPitches()
	if err != nil {
		return Pitch{}, Pitch{}, err
	}
	if len(open) == 0 {
		return Pitch{}, Pitch{}, fmt.Errorf("tuning %q has no strings", t.Name)
	}
	low, high = open[0], open[0]
	for _, p := range open {
		if p.MIDI() < low.MIDI() {
			low = p
		}
		if p.MIDI() > high.MIDI() {
			high = p
		}
	}
	return low, high.Transpose(maxFrets), nil
}

// FindNotePositions returns every string/fret pair within maxFrets that
// sounds the given pitch. A pitch reachable on several strings yields one
// position per string; the caller decides how many to show.
func (t Tuning) FindNotePositions(pitch Pitch, maxFrets int) ([]FretPosition, error) {
	open, err := t.OpenPitches()
	if err != nil {
		return nil, err
	}
	var positions []FretPosition
	for i, openPitch := range open {
		fret := pitch.MIDI() - openPitch.MIDI()
		if fret >= 0 && fret <= maxFrets {
			positions = append(positions, FretPosition{
				StringIndex: i,
				FretNumber:  fret,
				Pitch:       pitch,
			})
		}
	}
	return positions, nil
}

// CanPlayNote reports whether the pitch is reachable within maxFrets.
func (t Tuning) CanPlayNote(pitch Pitch, maxFrets int) bool {
	positions, err := t.FindNotePositions(pitch, maxFrets)
	return err == nil && len(positions) > 0
}
