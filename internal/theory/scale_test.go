package theory

import (
	"errors"
	"reflect"
	"testing"
)

func TestRegistryInvariants(t *testing.T) {
	for _, key := range ScaleKeys() {
		scale, err := LookupScale(key)
		if err != nil {
			t.Fatalf("lookup %q: %v", key, err)
		}
		if len(scale.Intervals) == 0 {
			t.Fatalf("%q has no intervals", key)
		}
		if scale.Intervals[0] != 0 {
			t.Fatalf("%q does not start at 0: %v", key, scale.Intervals)
		}
		for i, iv := range scale.Intervals {
			if iv < 0 || iv > 11 {
				t.Fatalf("%q interval %d out of range: %v", key, iv, scale.Intervals)
			}
			if i > 0 && iv <= scale.Intervals[i-1] {
				t.Fatalf("%q intervals not strictly ascending: %v", key, scale.Intervals)
			}
		}
	}
}

func TestLookupScaleUnknown(t *testing.T) {
	if _, err := LookupScale("klingon"); !errors.Is(err, ErrUnknownScale) {
		t.Fatalf("expected ErrUnknownScale, got %v", err)
	}
}

func TestNotesForRoot(t *testing.T) {
	scale, err := LookupScale("major")
	if err != nil {
		t.Fatalf("lookup: %v", err)
	}
	root := FromMIDI(60) // C4
	notes := scale.NotesForRoot(root)
	want := []int{60, 62, 64, 65, 67, 69, 71}
	if len(notes) != len(want) {
		t.Fatalf("expected %d notes, got %d", len(want), len(notes))
	}
	for i, n := range notes {
		if n.MIDI() != want[i] {
			t.Fatalf("degree %d: got midi %d, want %d", i, n.MIDI(), want[i])
		}
	}
}

func TestModeRotation(t *testing.T) {
	major, err := LookupScale("major")
	if err != nil {
		t.Fatalf("lookup: %v", err)
	}
	cases := []struct {
		mode int
		want []int
	}{
		{0, []int{0, 2, 4, 5, 7, 9, 11}}, // Ionian, unchanged
		{1, []int{0, 2, 3, 5, 7, 9, 10}}, // Dorian
		{5, []int{0, 2, 3, 5, 7, 8, 10}}, // Aeolian = natural minor
		{6, []int{0, 1, 3, 5, 6, 8, 10}}, // Locrian
	}
	for _, tc := range cases {
		got := major.ModeIntervals(tc.mode)
		if !reflect.DeepEqual(got, tc.want) {
			t.Fatalf("mode %d: got %v, want %v", tc.mode, got, tc.want)
		}
	}
}

func TestModeRotationShortScales(t *testing.T) {
	// Rotation is defined for any scale length, not just 7.
	pentatonic, err := LookupScale("majorPentatonic")
	if err != nil {
		t.Fatalf("lookup: %v", err)
	}
	// Mode 4 of major pentatonic (starting on the 9) is the minor pentatonic.
	got := pentatonic.ModeIntervals(4)
	want := []int{0, 3, 5, 7, 10}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("pentatonic mode 4: got %v, want %v", got, want)
	}

	blues, err := LookupScale("blues")
	if err != nil {
		t.Fatalf("lookup: %v", err)
	}
	for mode := 0; mode < blues.ModeCount(); mode++ {
		rotated := blues.ModeIntervals(mode)
		if len(rotated) != len(blues.Intervals) {
			t.Fatalf("blues mode %d changed length: %v", mode, rotated)
		}
		if rotated[0] != 0 {
			t.Fatalf("blues mode %d does not start at 0: %v", mode, rotated)
		}
		for i := 1; i < len(rotated); i++ {
			if rotated[i] <= rotated[i-1] {
				t.Fatalf("blues mode %d not ascending: %v", mode, rotated)
			}
		}
	}
}

func TestModeRotationWraps(t *testing.T) {
	major, _ := LookupScale("major")
	if !reflect.DeepEqual(major.ModeIntervals(7), major.ModeIntervals(0)) {
		t.Fatalf("mode index should wrap at scale length")
	}
	if !reflect.DeepEqual(major.ModeIntervals(-1), major.ModeIntervals(6)) {
		t.Fatalf("negative mode index should wrap")
	}
}

func TestDegreeLabels(t *testing.T) {
	minor, err := LookupScale("naturalMinor")
	if err != nil {
		t.Fatalf("lookup: %v", err)
	}
	want := []string{"1", "2", "♭3", "4", "5", "♭6", "♭7"}
	if got := minor.DegreeLabels(); !reflect.DeepEqual(got, want) {
		t.Fatalf("got %v, want %v", got, want)
	}
}
