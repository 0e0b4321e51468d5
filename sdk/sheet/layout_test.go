package sheet

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStaffStepAndLedgerLines(t *testing.T) {
	tests := []struct {
		name   string
		clef   Clef
		step   NoteStep
		octave int
		want   int
		ledger int
	}{
		{"treble bottom line", TrebleClef, E, 4, 0, 0},
		{"treble top line", TrebleClef, F, 5, 8, 0},
		{"middle C in treble", TrebleClef, C, 4, -2, -1},
		{"A5 above treble", TrebleClef, A, 5, 10, 1},
		{"bass bottom line", BassClef, G, 2, 0, 0},
		{"middle C in bass", BassClef, C, 4, 10, 1},
		{"alto middle line", AltoClef, C, 4, 4, 0},
		{"two ledgers below", TrebleClef, A, 3, -4, -2},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			n := note(0, 1, 1, tt.step, tt.octave, nil)
			got := n.StaffStep(tt.clef)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.ledger, LedgerLines(got))
		})
	}
}

func TestKeySignatureSteps(t *testing.T) {
	assert.Equal(t, []int{8, 5, 9, 6, 3, 7, 4}, KeySignatureSteps(7, TrebleClef))
	assert.Equal(t, []int{4, 7, 3}, KeySignatureSteps(-3, TrebleClef))
	assert.Equal(t, []int{6, 3}, KeySignatureSteps(2, BassClef))
	assert.Empty(t, KeySignatureSteps(0, TrebleClef))
}

func TestChordOrientations(t *testing.T) {
	cluster := note(0, 1, 1, C, 4, nil)
	cluster.AddChordNote(note(0, 1, 1, D, 4, nil))
	cluster.AddChordNote(note(0, 1, 1, G, 4, nil))
	NewMeasure([]Symbol{cluster}, nil, headWithFifths(0), nil)
	assert.Equal(t, []ChordNoteOrientation{Left, Right, Left}, ChordOrientations(cluster))

	triple := NewNote(SymbolInfo{Duration: 1, Type: Quarter, Staff: 1}, NoteSpec{Step: C, Octave: 4, StemDown: true})
	triple.AddChordNote(note(0, 1, 1, D, 4, nil))
	triple.AddChordNote(note(0, 1, 1, E, 4, nil))
	NewMeasure([]Symbol{triple}, nil, headWithFifths(0), nil)
	assert.Equal(t, []ChordNoteOrientation{Right, Left, Right}, ChordOrientations(triple))
}

func TestMeasureLayout(t *testing.T) {
	quarter := note(0, 2, 1, C, 5, nil)
	eighthA := note(2, 1, 1, D, 5, nil)
	eighthB := note(3, 1, 1, E, 5, nil)
	whole := note(0, 4, 2, C, 3, nil)
	m := NewMeasure([]Symbol{quarter, whole, eighthA, eighthB}, nil, headWithFifths(0), nil)

	layout := m.Layout(2, 8, false)
	assert.InDelta(t, 0, layout.Offsets[0], 1e-9)
	assert.InDelta(t, 8, layout.Offsets[2], 1e-9)
	assert.InDelta(t, 10, layout.Offsets[3], 1e-9)
	assert.InDelta(t, 12, layout.Width, 1e-9)

	grand := m.Layout(2, 8, true)
	assert.InDelta(t, 4, grand.Offsets[2], 1e-9)
	assert.InDelta(t, 8, grand.Width, 1e-9)
}

func TestHasStemAndFlags(t *testing.T) {
	assert.Equal(t, 2, Note16.FlagCount())
	assert.Equal(t, 0, Whole.FlagCount())
	assert.True(t, note(0, 1, 1, C, 4, nil).HasStem())
	assert.False(t, NewNote(SymbolInfo{Type: Whole}, NoteSpec{Step: C, Octave: 4}).HasStem())
}

func TestStaffHeadRedrawFlags(t *testing.T) {
	prev := headWithFifths(0)
	same := headWithFifths(0)
	changed := NewStaffHead(TrebleClef, nil, 1, TimeSignature{Beats: 3, BeatType: 4})

	assert.True(t, prev.Equal(same))
	assert.False(t, same.DrawKey(prev))
	assert.False(t, same.DrawClef(prev, 2))
	assert.True(t, changed.DrawKey(prev))
	assert.True(t, changed.DrawTime(prev))
	assert.False(t, changed.DrawClef(prev, 1))
	assert.False(t, changed.DrawClef(prev, 2), "missing bottom clef reads as bass")
	assert.True(t, changed.DrawClef(nil, 1))
	assert.Equal(t, 6, changed.TimeSignature().MeasureTicks(2))
}
