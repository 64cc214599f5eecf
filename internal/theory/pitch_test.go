package theory

import (
	"errors"
	"math"
	"testing"
)

func TestMIDIRoundTrip(t *testing.T) {
	for midi := 0; midi <= 127; midi++ {
		p := FromMIDI(midi)
		if p.MIDI() != midi {
			t.Fatalf("midi %d round-tripped to %d", midi, p.MIDI())
		}
	}
}

func TestFromMIDIKnownNotes(t *testing.T) {
	cases := []struct {
		midi   int
		pc     int
		octave int
	}{
		{60, 0, 4},  // middle C
		{69, 9, 4},  // A4
		{21, 9, 0},  // lowest piano A
		{0, 0, -1},  // C-1
		{11, 11, -1},
	}
	for _, tc := range cases {
		p := FromMIDI(tc.midi)
		if p.PitchClass != tc.pc || p.Octave != tc.octave {
			t.Fatalf("midi %d: got pc=%d oct=%d, want pc=%d oct=%d", tc.midi, p.PitchClass, p.Octave, tc.pc, tc.octave)
		}
	}
}

func TestParsePitch(t *testing.T) {
	cases := []struct {
		in     string
		pc     int
		octave int
	}{
		{"C4", 0, 4},
		{"c4", 0, 4},
		{"F#2", 6, 2},
		{"Bb3", 10, 3},
		{"A♯5", 10, 5},
		{"E♭1", 3, 1},
		{"G", 7, 3}, // missing octave defaults to 3
		{"B#4", 0, 4},
		{"Cb4", 11, 4},
		{"Fb2", 4, 2},
		{"E#0", 5, 0},
	}
	for _, tc := range cases {
		p, err := ParsePitch(tc.in)
		if err != nil {
			t.Fatalf("parse %q: %v", tc.in, err)
		}
		if p.PitchClass != tc.pc || p.Octave != tc.octave {
			t.Fatalf("parse %q: got pc=%d oct=%d, want pc=%d oct=%d", tc.in, p.PitchClass, p.Octave, tc.pc, tc.octave)
		}
	}
}

func TestParsePitchRejectsUnknownSpellings(t *testing.T) {
	for _, in := range []string{"", "H2", "C##4", "xyz", "#4", "4"} {
		if _, err := ParsePitch(in); !errors.Is(err, ErrNoteParse) {
			t.Fatalf("parse %q: expected ErrNoteParse, got %v", in, err)
		}
	}
}

func TestParseStringRoundTrip(t *testing.T) {
	for _, in := range []string{"C4", "F#2", "Bb3", "G3", "A0"} {
		p, err := ParsePitch(in)
		if err != nil {
			t.Fatalf("parse %q: %v", in, err)
		}
		again, err := ParsePitch(p.String())
		if err != nil {
			t.Fatalf("reparse %q: %v", p.String(), err)
		}
		if again.PitchClass != p.PitchClass || again.Octave != p.Octave {
			t.Fatalf("%q round-tripped to %q", in, again.String())
		}
	}
}

func TestTransposePreservesPreference(t *testing.T) {
	p, err := ParsePitch("Bb3")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	up := p.Transpose(3)
	if up.MIDI() != p.MIDI()+3 {
		t.Fatalf("expected midi %d, got %d", p.MIDI()+3, up.MIDI())
	}
	if up.Name() != "Db" {
		t.Fatalf("expected flat spelling Db, got %s", up.Name())
	}
}

func TestFrequency(t *testing.T) {
	a4 := FromMIDI(69)
	if math.Abs(a4.Frequency()-440) > 1e-9 {
		t.Fatalf("A4 should be 440Hz, got %f", a4.Frequency())
	}
	c4 := FromMIDI(60)
	if math.Abs(c4.Frequency()-261.6255653) > 1e-4 {
		t.Fatalf("C4 should be ~261.63Hz, got %f", c4.Frequency())
	}
	a5 := FromMIDI(81)
	if math.Abs(a5.Frequency()-880) > 1e-9 {
		t.Fatalf("A5 should be 880Hz, got %f", a5.Frequency())
	}
}

func TestToggleEnharmonic(t *testing.T) {
	p := Pitch{PitchClass: 1, Octave: 4}
	if p.Name() != "C#" {
		t.Fatalf("expected C#, got %s", p.Name())
	}
	flipped := p.ToggleEnharmonic()
	if flipped.Name() != "Db" {
		t.Fatalf("expected Db after toggle, got %s", flipped.Name())
	}
	if flipped.MIDI() != p.MIDI() {
		t.Fatalf("toggle changed pitch: %d vs %d", flipped.MIDI(), p.MIDI())
	}
}

func TestSamePitchClass(t *testing.T) {
	if !SamePitchClass("C#", "Db") {
		t.Fatalf("C# and Db should share a pitch class")
	}
	if !SamePitchClass("E#3", "F5") {
		t.Fatalf("E# and F should share a pitch class regardless of octave")
	}
	if SamePitchClass("D#", "E") {
		t.Fatalf("D# and E must not share a pitch class")
	}
}
