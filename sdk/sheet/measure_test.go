package sheet

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKeySignatureAlterations(t *testing.T) {
	tests := []struct {
		name   string
		fifths int
		step   NoteStep
		octave int
		want   int
	}{
		{"D major raises F", 2, F, 4, 66},
		{"D major raises C", 2, C, 5, 73},
		{"D major leaves G", 2, G, 4, 67},
		{"F major lowers B", -1, B, 4, 70},
		{"F major leaves E", -1, E, 4, 64},
		{"C flat major lowers F", -7, F, 4, 64},
		{"out of range fifths saturate", 9, B, 3, 60},
		{"C major", 0, A, 4, 69},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			n := note(0, 1, 1, tt.step, tt.octave, nil)
			NewMeasure([]Symbol{n}, nil, headWithFifths(tt.fifths), nil)
			assert.Equal(t, tt.want, n.MidiCode())
		})
	}
}

func TestExplicitAccidentalCarriesWithinMeasure(t *testing.T) {
	first := note(0, 1, 1, F, 4, accidental(Natural))
	second := note(1, 1, 1, F, 4, nil)
	otherOctave := note(2, 1, 1, F, 5, nil)
	bottom := note(1, 1, 2, F, 4, nil)

	m := NewMeasure([]Symbol{first, second, bottom, otherOctave}, nil, headWithFifths(2), nil)

	assert.Equal(t, 65, first.MidiCode())
	assert.Equal(t, 65, second.MidiCode(), "natural carries to the same letter and octave")
	assert.Equal(t, 78, otherOctave.MidiCode(), "other octaves keep the key signature")
	assert.Equal(t, 66, bottom.MidiCode(), "staves keep separate tables")
	assert.Equal(t, 0, m.Alteration(1, F, 4))
	assert.Equal(t, 1, m.Alteration(2, F, 4))
}

func TestAlterationsResetBetweenMeasures(t *testing.T) {
	head := headWithFifths(0)
	sharp := note(0, 1, 1, C, 4, accidental(Sharp))
	NewMeasure([]Symbol{sharp}, nil, head, nil)

	plain := note(0, 1, 1, C, 4, nil)
	NewMeasure([]Symbol{plain}, nil, head, head)

	assert.Equal(t, 61, sharp.MidiCode())
	assert.Equal(t, 60, plain.MidiCode())
}

func TestChordMembersResolvedAndOrdered(t *testing.T) {
	primary := note(0, 2, 1, G, 4, nil)
	high := note(0, 2, 1, D, 5, nil)
	low := note(0, 2, 1, B, 3, accidental(Flat))
	primary.AddChordNote(high)
	primary.AddChordNote(low)
	primary.AddChordNote(primary)

	NewMeasure([]Symbol{primary}, nil, headWithFifths(0), nil)

	chord := primary.GetChordNotes()
	require.Len(t, chord, 3)
	assert.Equal(t, []int{58, 67, 74}, []int{chord[0].MidiCode(), chord[1].MidiCode(), chord[2].MidiCode()})
	assert.Len(t, primary.ChordMembers(), 2)
	assert.True(t, primary.IsChord())
}

func TestChordMemberAccidentalAffectsLaterNotes(t *testing.T) {
	primary := note(0, 1, 1, C, 4, nil)
	member := note(0, 1, 1, E, 4, accidental(Flat))
	primary.AddChordNote(member)
	later := note(1, 1, 1, E, 4, nil)

	NewMeasure([]Symbol{primary, later}, nil, headWithFifths(0), nil)

	assert.Equal(t, 63, later.MidiCode())
}

func TestGetNextSymbols(t *testing.T) {
	topA := note(0, 2, 1, C, 5, nil)
	topB := note(2, 2, 1, D, 5, nil)
	bottomA := note(0, 4, 2, C, 3, nil)
	bottomRest := rest(4, 4, 2)
	m := NewMeasure([]Symbol{topA, bottomA, topB, bottomRest}, nil, headWithFifths(0), nil)

	assert.Equal(t, []Symbol{topA, bottomA}, m.GetNextSymbols())
	assert.Equal(t, []Symbol{topB}, m.GetNextSymbols())
	assert.Equal(t, []Symbol{bottomRest}, m.GetNextSymbols())
	assert.Nil(t, m.GetNextSymbols())
	assert.True(t, m.Exhausted())

	m.Rewind()
	assert.Len(t, m.GetNextSymbols(), 2)
}

func TestGetNextSymbolsExcludesChordMembers(t *testing.T) {
	primary := note(0, 1, 1, C, 4, nil)
	member := note(0, 1, 1, E, 4, nil)
	primary.AddChordNote(member)
	m := NewMeasure([]Symbol{primary}, nil, headWithFifths(0), nil)

	group := m.GetNextSymbols()
	require.Len(t, group, 1)
	assert.Same(t, primary, group[0])
	assert.Contains(t, group[0].(*Note).GetChordNotes(), member)
}

func TestNewMeasureKeepsStaffOrder(t *testing.T) {
	symbols := []Symbol{note(0, 1, 1, C, 4, nil), rest(0, 1, 2), note(1, 1, 1, D, 4, nil), note(1, 1, 2, E, 3, nil)}
	m := NewMeasure(symbols, nil, headWithFifths(0), nil)

	top, bottom := m.GetAllSymbols()
	require.Len(t, top, 2)
	require.Len(t, bottom, 2)
	for _, staff := range [][]Symbol{top, bottom} {
		for i := 1; i < len(staff); i++ {
			assert.LessOrEqual(t, staff[i-1].StartPosition(), staff[i].StartPosition())
		}
	}
	assert.True(t, m.HasNewStaffHead())
}
