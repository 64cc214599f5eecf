package theory

import (
	"errors"
	"reflect"
	"testing"
)

func TestChordRegistryInvariants(t *testing.T) {
	for _, key := range ChordKeys() {
		chord, err := LookupChord(key)
		if err != nil {
			t.Fatalf("lookup %q: %v", key, err)
		}
		if len(chord.Intervals) == 0 || chord.Intervals[0] != 0 {
			t.Fatalf("%q intervals must start at 0: %v", key, chord.Intervals)
		}
		if chord.Category == "" {
			t.Fatalf("%q has no category", key)
		}
	}
}

func TestLookupChordUnknown(t *testing.T) {
	if _, err := LookupChord("power13sus"); !errors.Is(err, ErrUnknownChord) {
		t.Fatalf("expected ErrUnknownChord, got %v", err)
	}
}

func TestNotesForRootExtended(t *testing.T) {
	chord, err := LookupChord("major9")
	if err != nil {
		t.Fatalf("lookup: %v", err)
	}
	notes := chord.NotesForRoot(FromMIDI(60))
	want := []int{60, 64, 67, 71, 74}
	for i, n := range notes {
		if n.MIDI() != want[i] {
			t.Fatalf("note %d: got midi %d, want %d", i, n.MIDI(), want[i])
		}
	}
	// The 9th lands an octave up.
	if notes[4].Octave != 5 {
		t.Fatalf("9th should be in octave 5, got %d", notes[4].Octave)
	}
}

func TestBuildVoicingFirstInversion(t *testing.T) {
	chord, err := LookupChord("dominant7")
	if err != nil {
		t.Fatalf("lookup: %v", err)
	}
	voicing := chord.BuildVoicing(FromMIDI(60), 1)
	got := make([]int, len(voicing))
	for i, p := range voicing {
		got[i] = p.MIDI()
	}
	// Tail [4,7,10] stays in the base octave, head [0] moves up one.
	want := []int{64, 67, 70, 72}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("first inversion: got %v, want %v", got, want)
	}
}

func TestBuildVoicingBassNote(t *testing.T) {
	// The bass note of inversion k must be root.midi + intervals[k].
	root := FromMIDI(60)
	for _, key := range []string{"major", "minor7", "dominant7", "diminished7"} {
		chord, err := LookupChord(key)
		if err != nil {
			t.Fatalf("lookup %q: %v", key, err)
		}
		for inv := 0; inv < chord.AvailableInversions(); inv++ {
			voicing := chord.BuildVoicing(root, inv)
			lowest := voicing[0].MIDI()
			for _, p := range voicing {
				if p.MIDI() < lowest {
					lowest = p.MIDI()
				}
			}
			want := root.MIDI() + chord.Intervals[inv]
			if lowest != want {
				t.Fatalf("%s inversion %d: bass %d, want %d", key, inv, lowest, want)
			}
		}
	}
}

func TestBuildVoicingOutOfRangeFallsBack(t *testing.T) {
	chord, err := LookupChord("major")
	if err != nil {
		t.Fatalf("lookup: %v", err)
	}
	root := FromMIDI(60)
	fallback := chord.BuildVoicing(root, 9)
	rootPos := chord.BuildVoicing(root, 0)
	if !reflect.DeepEqual(fallback, rootPos) {
		t.Fatalf("out-of-range inversion should fall back to root position")
	}
}

func TestAvailableInversionsCapped(t *testing.T) {
	triad, _ := LookupChord("major")
	if got := triad.AvailableInversions(); got != 3 {
		t.Fatalf("triad inversions: got %d, want 3", got)
	}
	thirteenth, _ := LookupChord("dominant13")
	if got := thirteenth.AvailableInversions(); got != MaxChordInversions {
		t.Fatalf("13th chord inversions: got %d, want cap %d", got, MaxChordInversions)
	}
}

func TestChordsInCategory(t *testing.T) {
	sevenths := ChordsInCategory("seventh")
	if len(sevenths) == 0 {
		t.Fatalf("expected seventh chords in registry")
	}
	for _, c := range sevenths {
		if c.Category != "seventh" {
			t.Fatalf("category filter leaked %q", c.Type)
		}
	}
}
