package theory

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Spelling selects between sharp and flat note names for a pitch class.
type Spelling int

const (
	Sharp Spelling = iota
	Flat
)

// Pitch is an immutable pitch class + octave pair. Equality is by
// (PitchClass, Octave); the spelling preference only affects String().
type Pitch struct {
	PitchClass int      `json:"pitchClass"` // 0=C .. 11=B
	Octave     int      `json:"octave"`
	Preference Spelling `json:"preference"`
}

var sharpNames = [12]string{"C", "C#", "D", "D#", "E", "F", "F#", "G", "G#", "A", "A#", "B"}
var flatNames = [12]string{"C", "Db", "D", "Eb", "E", "F", "Gb", "G", "Ab", "A", "Bb", "B"}

// spellings maps every recognized letter+accidental combination to its pitch
// class, including the theoretical B#, Cb, E#, Fb.
var spellings = map[string]int{
	"C": 0, "D": 2, "E": 4, "F": 5, "G": 7, "A": 9, "B": 11,
	"C#": 1, "D#": 3, "F#": 6, "G#": 8, "A#": 10,
	"Db": 1, "Eb": 3, "Gb": 6, "Ab": 8, "Bb": 10,
	"B#": 0, "Cb": 11, "E#": 5, "Fb": 4,
}

// FromMIDI builds a Pitch from a MIDI note number.
// Octave follows the MIDI convention: middle C (60) is C4.
func FromMIDI(midi int) Pitch {
	pc := midi % 12
	if pc < 0 {
		pc += 12
	}
	return Pitch{
		PitchClass: pc,
		Octave:     floorDiv(midi, 12) - 1,
	}
}

// ParsePitch parses a note name such as "C", "F#4", "Bb2", or "A♭3".
// A missing octave defaults to 3. Unrecognized letter+accidental
// combinations fail with ErrNoteParse.
func ParsePitch(s string) (Pitch, error) {
	raw := strings.TrimSpace(s)
	if raw == "" {
		return Pitch{}, fmt.Errorf("%w: empty note name", ErrNoteParse)
	}

	normalized := strings.NewReplacer("♯", "#", "♭", "b").Replace(raw)

	// Split the trailing octave digits (with optional leading minus) off.
	split := len(normalized)
	for split > 0 {
		c := normalized[split-1]
		if c >= '0' && c <= '9' {
			split--
			continue
		}
		if c == '-' && split < len(normalized) {
			split--
		}
		break
	}
	name := normalized[:split]
	octavePart := normalized[split:]

	if name == "" {
		return Pitch{}, fmt.Errorf("%w: %q has no note letter", ErrNoteParse, s)
	}
	name = strings.ToUpper(name[:1]) + name[1:]

	pc, ok := spellings[name]
	if !ok {
		return Pitch{}, fmt.Errorf("%w: unknown spelling %q", ErrNoteParse, s)
	}

	octave := 3
	if octavePart != "" {
		n, err := strconv.Atoi(octavePart)
		if err != nil {
			return Pitch{}, fmt.Errorf("%w: bad octave in %q", ErrNoteParse, s)
		}
		octave = n
	}

	pref := Sharp
	if strings.HasSuffix(name, "b") {
		pref = Flat
	}
	return Pitch{PitchClass: pc, Octave: octave, Preference: pref}, nil
}

// MIDI returns the MIDI note number: (octave+1)*12 + pitchClass.
func (p Pitch) MIDI() int {
	return (p.Octave+1)*12 + p.PitchClass
}

// Transpose shifts the pitch by semitones, preserving spelling preference.
func (p Pitch) Transpose(semitones int) Pitch {
	out := FromMIDI(p.MIDI() + semitones)
	out.Preference = p.Preference
	return out
}

// Frequency returns the equal-temperament frequency in Hz (A4 = 440).
func (p Pitch) Frequency() float64 {
	return 440 * math.Pow(2, float64(p.MIDI()-69)/12)
}

// Name returns the note name without octave, honoring the spelling preference.
func (p Pitch) Name() string {
	if p.Preference == Flat {
		return flatNames[p.PitchClass]
	}
	return sharpNames[p.PitchClass]
}

// String returns the note name with octave, e.g. "F#4".
func (p Pitch) String() string {
	return fmt.Sprintf("%s%d", p.Name(), p.Octave)
}

// ToggleEnharmonic flips the spelling preference without changing the pitch.
func (p Pitch) ToggleEnharmonic() Pitch {
	if p.Preference == Sharp {
		p.Preference = Flat
	} else {
		p.Preference = Sharp
	}
	return p
}

// SamePitchClass reports whether two note names resolve to the same pitch
// class, regardless of spelling or octave.
func SamePitchClass(a, b string) bool {
	pa, errA := ParsePitch(a)
	pb, errB := ParsePitch(b)
	if errA != nil || errB != nil {
		return false
	}
	return pa.PitchClass == pb.PitchClass
}

// PitchClassName spells a bare pitch class with the given preference.
func PitchClassName(pc int, pref Spelling) string {
	pc = ((pc % 12) + 12) % 12
	if pref == Flat {
		return flatNames[pc]
	}
	return sharpNames[pc]
}

func floorDiv(a, b int) int {
	q := a / b
	if (a%b != 0) && ((a < 0) != (b < 0)) {
		q--
	}
	return q
}
