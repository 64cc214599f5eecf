package theory

import (
	"fmt"
	"sort"
	"strings"
)

// StripConfig describes a scale strip: a linear run of semitone positions
// anchored at StripRoot, spanning OctaveCount octaves. KeyContext names the
// key the exercise is set in and drives sharp/flat spelling.
type StripConfig struct {
	StripRoot   string `json:"stripRoot"`
	OctaveCount int    `json:"octaveCount"`
	KeyContext  string `json:"keyContext"`
}

// StripAnswer is the canonical correct answer for a strip drill: the
// semitone positions relative to the strip root, and the spelled note names.
// It is also the shape of user-submitted strip answers.
type StripAnswer struct {
	Positions []int    `json:"positions"`
	Notes     []string `json:"notes"`
}

// flatKeyRoots are the key roots that prefer flat spelling, along with
// their relative minors.
var flatKeyRoots = map[string]bool{
	"F": true, "Bb": true, "Eb": true, "Ab": true, "Db": true, "Gb": true,
	"Dm": true, "Gm": true, "Cm": true, "Fm": true, "Bbm": true, "Ebm": true,
}

// KeyPrefersFlats reports whether a key context (e.g. "Bb", "Gm", "F major")
// spells its accidentals flat. The decision is by key identity, not by the
// accidental used to write the root.
func KeyPrefersFlats(keyContext string) bool {
	k := strings.TrimSpace(keyContext)
	if k == "" {
		return false
	}
	k = strings.NewReplacer("♯", "#", "♭", "b").Replace(k)
	fields := strings.Fields(k)
	root := fields[0]
	minor := false
	if len(fields) > 1 && strings.EqualFold(fields[1], "minor") {
		minor = true
	}
	if strings.HasSuffix(root, "m") && len(root) > 1 {
		minor = true
		root = strings.TrimSuffix(root, "m")
	}
	root = strings.ToUpper(root[:1]) + root[1:]
	if minor {
		root += "m"
	}
	return flatKeyRoots[root]
}

// TotalLength returns the number of semitone positions on the strip.
func (c StripConfig) TotalLength() int {
	octaves := c.OctaveCount
	if octaves < 1 {
		octaves = 1
	}
	return 12 * octaves
}

// GenerateScaleAnswer computes the correct strip answer for a scale rooted
// at objectRoot. The object root need not match the strip root: positions
// are offset by the semitone distance between the two.
func GenerateScaleAnswer(scaleKey, objectRoot string, cfg StripConfig) (StripAnswer, error) {
	scale, err := LookupScale(scaleKey)
	if err != nil {
		return StripAnswer{}, err
	}
	return generateAnswer(scale.Intervals, objectRoot, cfg)
}

// GenerateChordAnswer computes the correct strip answer for a chord rooted
// at objectRoot. Extended chords wrap across the strip's octaves.
func GenerateChordAnswer(chordType, objectRoot string, cfg StripConfig) (StripAnswer, error) {
	chord, err := LookupChord(chordType)
	if err != nil {
		return StripAnswer{}, err
	}
	return generateAnswer(chord.Intervals, objectRoot, cfg)
}

func generateAnswer(intervals []int, objectRoot string, cfg StripConfig) (StripAnswer, error) {
	root, err := ParsePitch(objectRoot)
	if err != nil {
		return StripAnswer{}, fmt.Errorf("object root: %w", err)
	}
	stripRootName := cfg.StripRoot
	if stripRootName == "" {
		stripRootName = "C"
	}
	stripRoot, err := ParsePitch(stripRootName)
	if err != nil {
		return StripAnswer{}, fmt.Errorf("strip root: %w", err)
	}

	pref := Sharp
	if KeyPrefersFlats(cfg.KeyContext) {
		pref = Flat
	}

	total := cfg.TotalLength()
	offset := ((root.PitchClass - stripRoot.PitchClass) % 12 + 12) % 12

	posSet := make(map[int]bool)
	noteSet := make(map[string]bool)
	for _, iv := range intervals {
		pos := (offset + iv) % total
		posSet[pos] = true
		noteSet[PitchClassName(root.PitchClass+iv, pref)] = true
	}

	answer := StripAnswer{
		Positions: make([]int, 0, len(posSet)),
		Notes:     make([]string, 0, len(noteSet)),
	}
	for pos := range posSet {
		answer.Positions = append(answer.Positions, pos)
	}
	for note := range noteSet {
		answer.Notes = append(answer.Notes, note)
	}
	sort.Ints(answer.Positions)
	sort.Strings(answer.Notes)
	return answer, nil
}
