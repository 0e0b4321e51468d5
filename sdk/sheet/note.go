package sheet

import "sort"

// Note is a pitched symbol. A note that owns chord members is the chord's primary note;
// members are reachable only through it.
type Note struct {
	symbolBase
	step       NoteStep
	octave     int
	accidental *Accidental
	stemDown   bool
	beams      []BeamValue

	midiCode     int
	chordMembers []*Note
}

// NoteSpec carries the pitch and notation fields of a note.
type NoteSpec struct {
	Step       NoteStep
	Octave     int
	Accidental *Accidental
	StemDown   bool
	Beams      []BeamValue // Ordered by beam level.
}

// NewNote creates a note. Its MIDI code is resolved when it is placed in a Measure.
func NewNote(info SymbolInfo, spec NoteSpec) *Note {
	n := &Note{
		symbolBase: newSymbolBase(info),
		step:       spec.Step,
		octave:     spec.Octave,
		stemDown:   spec.StemDown,
		beams:      append([]BeamValue(nil), spec.Beams...),
	}
	if spec.Accidental != nil {
		a := *spec.Accidental
		n.accidental = &a
	}
	n.midiCode = n.naturalMidiCode()
	return n
}

func (n *Note) Step() NoteStep     { return n.step }
func (n *Note) Octave() int        { return n.octave }
func (n *Note) IsStemDown() bool   { return n.stemDown }
func (n *Note) MidiCode() int      { return n.midiCode }
func (n *Note) Beams() []BeamValue { return append([]BeamValue(nil), n.beams...) }

// Accidental returns the explicit accidental, if any.
func (n *Note) Accidental() (Accidental, bool) {
	if n.accidental == nil {
		return 0, false
	}
	return *n.accidental, true
}

// IsChord reports whether the note owns chord members.
func (n *Note) IsChord() bool { return len(n.chordMembers) > 0 }

// ChordMembers returns the notes attached to this primary, excluding the primary itself.
func (n *Note) ChordMembers() []*Note { return append([]*Note(nil), n.chordMembers...) }

// AddChordNote attaches a chord member to this primary note.
func (n *Note) AddChordNote(member *Note) {
	if member == nil || member == n {
		return
	}
	n.chordMembers = append(n.chordMembers, member)
}

// GetChordNotes returns the primary and its members ordered by ascending MIDI code.
// For a single note it returns just the note.
func (n *Note) GetChordNotes() []*Note {
	notes := make([]*Note, 0, len(n.chordMembers)+1)
	notes = append(notes, n)
	notes = append(notes, n.chordMembers...)
	sort.SliceStable(notes, func(i, j int) bool { return notes[i].midiCode < notes[j].midiCode })
	return notes
}

// GetNotesInRange returns the chord notes whose MIDI code passes filter.
func (n *Note) GetNotesInRange(filter PitchFilter) []*Note {
	var out []*Note
	for _, note := range n.GetChordNotes() {
		if filter == nil || filter.IsInDeviceRange(note.midiCode) {
			out = append(out, note)
		}
	}
	return out
}

// HasStem reports whether the note type is drawn with a stem.
func (n *Note) HasStem() bool {
	t := n.Type()
	return t.FlagCount() > 0 || t == Half || t == Quarter
}

func (n *Note) naturalMidiCode() int {
	return midiCode(n.step, n.octave, 0)
}

func (n *Note) setMidiCode(code int) { n.midiCode = code }

func midiCode(step NoteStep, octave, alter int) int {
	return 12*(octave+1) + int(step) + alter
}

// PitchFilter decides whether a MIDI code is playable on the active input device.
type PitchFilter interface {
	IsInDeviceRange(midiCode int) bool
}
