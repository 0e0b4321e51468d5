package sheet

import "math"

// positionTolerance is the distance under which two start positions count as simultaneous.
const positionTolerance = 0.01

// Measure is one compiled bar: symbols of both staves sorted by start position, their beam groups
// and the staff head in effect.
type Measure struct {
	topSymbols    []Symbol
	bottomSymbols []Symbol
	beamGroups    []*BeamGroup
	staffHead     *StaffHead
	prevStaffHead *StaffHead

	topAlterations    *alterationTable
	bottomAlterations *alterationTable

	topIdx    int
	bottomIdx int
}

// NewMeasure builds a measure from symbols sorted by start position and resolves the MIDI code of
// every note, chord members included. staffHead must not be nil; prevStaffHead is nil for the first
// measure.
func NewMeasure(symbols []Symbol, beamGroups []*BeamGroup, staffHead, prevStaffHead *StaffHead) *Measure {
	if staffHead == nil {
		staffHead = DefaultStaffHead()
	}
	m := &Measure{
		beamGroups:    beamGroups,
		staffHead:     staffHead,
		prevStaffHead: prevStaffHead,
	}
	for _, s := range symbols {
		if s.IsInTopStaff() {
			m.topSymbols = append(m.topSymbols, s)
		} else {
			m.bottomSymbols = append(m.bottomSymbols, s)
		}
	}
	m.resolvePitches(symbols)
	return m
}

// resolvePitches walks symbols in insertion order, chord members right after their primary.
func (m *Measure) resolvePitches(symbols []Symbol) {
	m.topAlterations = newAlterationTable(m.staffHead.fifths)
	m.bottomAlterations = newAlterationTable(m.staffHead.fifths)

	for _, s := range symbols {
		note, ok := s.(*Note)
		if !ok {
			continue
		}
		m.resolveNote(note)
		for _, member := range note.chordMembers {
			m.resolveNote(member)
		}
	}
}

func (m *Measure) resolveNote(note *Note) {
	table := m.bottomAlterations
	if note.IsInTopStaff() {
		table = m.topAlterations
	}
	note.setMidiCode(midiCode(note.step, note.octave, table.resolve(note)))
}

func (m *Measure) StaffHead() *StaffHead { return m.staffHead }

// PrevStaffHead is the head of the preceding measure, nil for the first one.
func (m *Measure) PrevStaffHead() *StaffHead { return m.prevStaffHead }

// HasNewStaffHead reports whether this measure starts a new staff head.
func (m *Measure) HasNewStaffHead() bool { return m.staffHead != m.prevStaffHead }

func (m *Measure) BeamGroups() []*BeamGroup { return append([]*BeamGroup(nil), m.beamGroups...) }

// GetAllSymbols returns the top and bottom staff symbols.
func (m *Measure) GetAllSymbols() (top, bottom []Symbol) {
	return append([]Symbol(nil), m.topSymbols...), append([]Symbol(nil), m.bottomSymbols...)
}

// Alteration returns the alteration in effect at the end of the measure for a pitch on staff.
func (m *Measure) Alteration(staff int, step NoteStep, octave int) int {
	if staff == 1 {
		return m.topAlterations.get(step, octave)
	}
	return m.bottomAlterations.get(step, octave)
}

// GetNextSymbols returns every symbol of both staves starting at the earliest unread position and
// moves past them. It returns nil once both staves are exhausted.
func (m *Measure) GetNextSymbols() []Symbol {
	if m.Exhausted() {
		return nil
	}

	topX := nextPosition(m.topSymbols, m.topIdx)
	bottomX := nextPosition(m.bottomSymbols, m.bottomIdx)
	nextX := math.Min(topX, bottomX)

	var next []Symbol
	for m.topIdx < len(m.topSymbols) && math.Abs(float64(m.topSymbols[m.topIdx].StartPosition())-nextX) < positionTolerance {
		next = append(next, m.topSymbols[m.topIdx])
		m.topIdx++
	}
	for m.bottomIdx < len(m.bottomSymbols) && math.Abs(float64(m.bottomSymbols[m.bottomIdx].StartPosition())-nextX) < positionTolerance {
		next = append(next, m.bottomSymbols[m.bottomIdx])
		m.bottomIdx++
	}
	return next
}

// Exhausted reports whether GetNextSymbols has consumed every symbol.
func (m *Measure) Exhausted() bool {
	return m.topIdx >= len(m.topSymbols) && m.bottomIdx >= len(m.bottomSymbols)
}

// Rewind resets the traversal cursor to the start of the measure.
func (m *Measure) Rewind() {
	m.topIdx, m.bottomIdx = 0, 0
}

func nextPosition(symbols []Symbol, idx int) float64 {
	if idx >= len(symbols) {
		return math.Inf(1)
	}
	return float64(symbols[idx].StartPosition())
}
