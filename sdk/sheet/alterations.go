package sheet

// MaxOctave is the highest octave accepted in a note pitch.
const MaxOctave = 10

// alterationTable holds the alteration in effect for every (letter, octave) of one staff.
type alterationTable [7][MaxOctave + 1]int

// newAlterationTable seeds a table from a key signature: sharps take the first letters of
// SharpOrder, flats the last ones.
func newAlterationTable(fifths int) *alterationTable {
	t := &alterationTable{}
	count := min(abs(fifths), len(SharpOrder))
	sign := 1
	letters := SharpOrder[:count]
	if fifths < 0 {
		sign = -1
		letters = SharpOrder[len(SharpOrder)-count:]
	}
	for _, step := range letters {
		for octave := 0; octave <= MaxOctave; octave++ {
			t[step.Index()][octave] = sign
		}
	}
	return t
}

// resolve returns the alteration of note. An explicit accidental is recorded and wins;
// otherwise the current table value applies.
func (t *alterationTable) resolve(note *Note) int {
	idx := note.step.Index()
	if idx < 0 || note.octave < 0 || note.octave > MaxOctave {
		return 0
	}
	if note.accidental != nil {
		t[idx][note.octave] = int(*note.accidental)
	}
	return t[idx][note.octave]
}

func (t *alterationTable) get(step NoteStep, octave int) int {
	idx := step.Index()
	if idx < 0 || octave < 0 || octave > MaxOctave {
		return 0
	}
	return t[idx][octave]
}
