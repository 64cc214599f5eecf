package theory

import (
	"errors"
	"testing"
)

func TestTuningRegistryParses(t *testing.T) {
	for _, key := range TuningKeys() {
		tuning, err := LookupTuning(key)
		if err != nil {
			t.Fatalf("lookup %q: %v", key, err)
		}
		open, err := tuning.OpenPitches()
		if err != nil {
			t.Fatalf("%q open pitches: %v", key, err)
		}
		if len(open) != tuning.StringCount() {
			t.Fatalf("%q: %d pitches for %d strings", key, len(open), tuning.StringCount())
		}
	}
}

func TestLookupTuningUnknown(t *testing.T) {
	if _, err := LookupTuning("banjo9"); !errors.Is(err, ErrUnknownTuning) {
		t.Fatalf("expected ErrUnknownTuning, got %v", err)
	}
}

func TestFindNotePositionsStandardGuitar(t *testing.T) {
	tuning, err := LookupTuning("standard")
	if err != nil {
		t.Fatalf("lookup: %v", err)
	}
	// E4 (midi 64): open high E, 5th fret on B, 9th on G, 14th on D, 19th on A.
	e4 := FromMIDI(64)
	positions, err := tuning.FindNotePositions(e4, 12)
	if err != nil {
		t.Fatalf("find: %v", err)
	}
	want := map[int]int{5: 0, 4: 5, 3: 9} // string index -> fret, within 12 frets
	if len(positions) != len(want) {
		t.Fatalf("expected %d positions, got %+v", len(want), positions)
	}
	for _, pos := range positions {
		fret, ok := want[pos.StringIndex]
		if !ok || fret != pos.FretNumber {
			t.Fatalf("unexpected position %+v", pos)
		}
	}
}

func TestFindNotePositionsNoDedup(t *testing.T) {
	tuning, _ := LookupTuning("standard")
	// Within 24 frets E4 is reachable on every string; all six must be reported.
	positions, err := tuning.FindNotePositions(FromMIDI(64), 24)
	if err != nil {
		t.Fatalf("find: %v", err)
	}
	if len(positions) != 6 {
		t.Fatalf("expected 6 positions within 24 frets, got %d", len(positions))
	}
}

func TestCanPlayNote(t *testing.T) {
	tuning, _ := LookupTuning("standard")
	if !tuning.CanPlayNote(FromMIDI(40), 12) { // open low E
		t.Fatalf("low E should be playable")
	}
	if tuning.CanPlayNote(FromMIDI(39), 12) { // below open low E
		t.Fatalf("D#2 is below the instrument range")
	}
	if tuning.CanPlayNote(FromMIDI(100), 12) { // above high E + 12 frets
		t.Fatalf("midi 100 is beyond 12 frets")
	}
}

func TestTuningRange(t *testing.T) {
	tuning, _ := LookupTuning("standard")
	low, high, err := tuning.Range(22)
	if err != nil {
		t.Fatalf("range: %v", err)
	}
	if low.MIDI() != 40 {
		t.Fatalf("low should be E2 (40), got %d", low.MIDI())
	}
	if high.MIDI() != 64+22 {
		t.Fatalf("high should be E4+22 frets (86), got %d", high.MIDI())
	}
}
