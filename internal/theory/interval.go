package theory

import "fmt"

// IntervalQuality classifies a simple interval.
type IntervalQuality string

const (
	Perfect    IntervalQuality = "perfect"
	Major      IntervalQuality = "major"
	Minor      IntervalQuality = "minor"
	Diminished IntervalQuality = "diminished"
)

// Interval is a non-negative semitone distance. Naming and quality are pure
// functions of semitones mod 12 plus the octave count.
type Interval struct {
	Semitones int `json:"semitones"`
}

var intervalNames = [12]string{
	"Unison", "Minor 2nd", "Major 2nd", "Minor 3rd", "Major 3rd", "Perfect 4th",
	"Tritone", "Perfect 5th", "Minor 6th", "Major 6th", "Minor 7th", "Major 7th",
}

var intervalLabels = [12]string{"P1", "m2", "M2", "m3", "M3", "P4", "TT", "P5", "m6", "M6", "m7", "M7"}

var intervalQualities = [12]IntervalQuality{
	Perfect, Minor, Major, Minor, Major, Perfect,
	Diminished, Perfect, Minor, Major, Minor, Major,
}

// degreeNumbers maps a simple interval to its scale-degree number.
var degreeNumbers = [12]int{1, 2, 2, 3, 3, 4, 5, 5, 6, 6, 7, 7}

// consonant simple intervals: unison, thirds, fourth, fifth, sixths.
var consonantSet = map[int]bool{0: true, 3: true, 4: true, 5: true, 7: true, 8: true, 9: true}

// Name returns the interval name. Extended intervals past an octave keep the
// simple-interval quality and bump the degree number by 7 per octave, so 14
// semitones is a "Major 9th".
func (iv Interval) Name() string {
	simple := iv.Semitones % 12
	octaves := iv.Semitones / 12
	if octaves == 0 {
		return intervalNames[simple]
	}
	if simple == 0 {
		if octaves == 1 {
			return "Octave"
		}
		return fmt.Sprintf("%d Octaves", octaves)
	}
	degree := degreeNumbers[simple] + 7*octaves
	return fmt.Sprintf("%s %s", qualityPrefix(intervalQualities[simple]), ordinal(degree))
}

// Label returns the short label, e.g. "m3" or "M9".
func (iv Interval) Label() string {
	simple := iv.Semitones % 12
	octaves := iv.Semitones / 12
	if octaves == 0 {
		return intervalLabels[simple]
	}
	if simple == 0 {
		return fmt.Sprintf("P%d", 1+7*octaves)
	}
	if simple == 6 {
		return fmt.Sprintf("TT+%d", octaves)
	}
	degree := degreeNumbers[simple] + 7*octaves
	return fmt.Sprintf("%s%d", string(intervalLabels[simple][0]), degree)
}

// Quality returns the quality of the simple interval.
func (iv Interval) Quality() IntervalQuality {
	return intervalQualities[iv.Semitones%12]
}

// IsConsonant reports membership in the classical consonance set.
func (iv Interval) IsConsonant() bool {
	return consonantSet[iv.Semitones%12]
}

// Inverted returns the inversion of the simple interval: 12 - (s mod 12).
func (iv Interval) Inverted() Interval {
	return Interval{Semitones: 12 - iv.Semitones%12}
}

func qualityPrefix(q IntervalQuality) string {
	switch q {
	case Perfect:
		return "Perfect"
	case Major:
		return "Major"
	case Minor:
		return "Minor"
	default:
		return "Diminished"
	}
}

func ordinal(n int) string {
	switch n % 10 {
	case 1:
		if n%100 != 11 {
			return fmt.Sprintf("%dst", n)
		}
	case 2:
		if n%100 != 12 {
			return fmt.Sprintf("%dnd", n)
		}
	case 3:
		if n%100 != 13 {
			return fmt.Sprintf("%drd", n)
		}
	}
	return fmt.Sprintf("%dth", n)
}
