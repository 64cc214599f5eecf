package theory

// KeyConfiguration describes one key in a rendered keyboard range. The
// visual position is a fractional index among white keys; black keys sit at
// fixed offsets within their octave.
type KeyConfiguration struct {
	KeyIndex       int     `json:"keyIndex"`
	MIDINote       int     `json:"midiNote"`
	IsWhiteKey     bool    `json:"isWhiteKey"`
	VisualPosition float64 `json:"visualPosition"`
}

var whiteSemitones = map[int]bool{0: true, 2: true, 4: true, 5: true, 7: true, 9: true, 11: true}

// blackKeyOffsets gives the fractional position of each black key among the
// white keys of its octave. Tuned for even-looking 2+3 grouping, not for
// physical key widths.
var blackKeyOffsets = map[int]float64{1: 0.65, 3: 1.35, 6: 3.65, 8: 4.25, 10: 4.9}

// whiteIndexInOctave counts how many white keys precede each semitone within
// one octave starting at C.
var whiteIndexInOctave = [12]int{0, 1, 1, 2, 2, 3, 4, 4, 5, 5, 6, 6}

// IsWhiteKey reports whether a MIDI note maps to a white key.
func IsWhiteKey(midi int) bool {
	pc := ((midi % 12) + 12) % 12
	return whiteSemitones[pc]
}

// BuildKeyboard derives the key layout for an inclusive MIDI range. Visual
// positions are relative to the first octave boundary at or below lowMIDI,
// so the layout is stable regardless of whether the range starts on C.
func BuildKeyboard(lowMIDI, highMIDI int) []KeyConfiguration {
	if highMIDI < lowMIDI {
		return nil
	}
	baseOctave := floorDiv(lowMIDI, 12)
	keys := make([]KeyConfiguration, 0, highMIDI-lowMIDI+1)
	for midi := lowMIDI; midi <= highMIDI; midi++ {
		pc := ((midi % 12) + 12) % 12
		octave := floorDiv(midi, 12) - baseOctave
		whiteBase := float64(octave * 7)

		var pos float64
		white := whiteSemitones[pc]
		if white {
			pos = whiteBase + float64(whiteIndexInOctave[pc])
		} else {
			pos = whiteBase + blackKeyOffsets[pc]
		}

		keys = append(keys, KeyConfiguration{
			KeyIndex:       midi - lowMIDI,
			MIDINote:       midi,
			IsWhiteKey:     white,
			VisualPosition: pos,
		})
	}
	return keys
}

// WhiteKeyCount returns how many white keys the range contains.
func WhiteKeyCount(lowMIDI, highMIDI int) int {
	count := 0
	for midi := lowMIDI; midi <= highMIDI; midi++ {
		if IsWhiteKey(midi) {
			count++
		}
	}
	return count
}
