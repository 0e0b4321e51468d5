package sheet

import (
	"sort"

	"golang.org/x/exp/constraints"
)

func abs[T constraints.Signed | constraints.Float](v T) T {
	if v < 0 {
		return -v
	}
	return v
}

// stepDifference counts diatonic steps from pitch b up to pitch a.
func stepDifference(aStep NoteStep, aOctave int, bStep NoteStep, bOctave int) int {
	return aStep.Index() - bStep.Index() + 7*(aOctave-bOctave)
}

// StaffStep is the vertical position of the note on a staff in clef, counted in diatonic steps
// above the bottom line: 0 is the bottom line, 1 the first space, 8 the top line.
func (n *Note) StaffStep(clef Clef) int {
	return stepDifference(n.step, n.octave, clef.Step, clef.Octave()) + 2*(clef.Line-1)
}

// LedgerLines is the number of ledger lines needed at a staff step: positive above the staff,
// negative below it.
func LedgerLines(step int) int {
	switch {
	case step > 8:
		return (step - 8) / 2
	case step < 0:
		return step / 2
	}
	return 0
}

// ChordOrientations places each chord notehead, from the lowest up, on the left or right of the
// stem. Heads a second apart alternate sides.
func ChordOrientations(primary *Note) []ChordNoteOrientation {
	notes := primary.GetChordNotes()
	correct, opposite := Left, Right
	if primary.IsStemDown() {
		correct, opposite = Right, Left
	}

	var groups [][]*Note
	for i, n := range notes {
		if i == 0 || abs(stepDifference(notes[i-1].step, notes[i-1].octave, n.step, n.octave)) > 1 {
			groups = append(groups, []*Note{n})
			continue
		}
		groups[len(groups)-1] = append(groups[len(groups)-1], n)
	}

	orientations := make([]ChordNoteOrientation, 0, len(notes))
	for _, g := range groups {
		switch {
		case len(g) == 1:
			orientations = append(orientations, correct)
		case len(g)%2 == 0:
			for range len(g) / 2 {
				orientations = append(orientations, Left, Right)
			}
		default:
			for i := range g {
				if i%2 == 0 {
					orientations = append(orientations, correct)
				} else {
					orientations = append(orientations, opposite)
				}
			}
		}
	}
	return orientations
}

// MeasureLayout maps each distinct start position of a measure to a horizontal offset.
type MeasureLayout struct {
	Offsets map[int]float64
	Width   float64
}

// Layout spaces the measure horizontally: each symbol gets a width remapped linearly from its
// duration range onto [minWidth, maxWidth], and each distinct start position is placed after the
// widths of the positions before it. The bottom staff only counts when includeBottom is set.
func (m *Measure) Layout(minWidth, maxWidth float64, includeBottom bool) MeasureLayout {
	symbols := append([]Symbol(nil), m.topSymbols...)
	if includeBottom {
		symbols = append(symbols, m.bottomSymbols...)
	}
	layout := MeasureLayout{Offsets: map[int]float64{}}
	if len(symbols) == 0 {
		return layout
	}

	minDur, maxDur := symbols[0].Duration(), symbols[0].Duration()
	for _, s := range symbols[1:] {
		minDur = min(minDur, s.Duration())
		maxDur = max(maxDur, s.Duration())
	}
	width := func(s Symbol) float64 {
		return remap(float64(minDur), float64(maxDur), minWidth, maxWidth, float64(s.Duration()))
	}

	distinct := map[int]Symbol{}
	for _, s := range symbols {
		if _, ok := distinct[s.StartPosition()]; !ok {
			distinct[s.StartPosition()] = s
		}
	}
	positions := make([]int, 0, len(distinct))
	for p := range distinct {
		positions = append(positions, p)
	}
	sort.Ints(positions)

	x := 0.0
	for _, p := range positions {
		layout.Offsets[p] = x
		x += width(distinct[p])
	}

	staves := [][]Symbol{m.topSymbols}
	if includeBottom {
		staves = append(staves, m.bottomSymbols)
	}
	for _, staff := range staves {
		if len(staff) == 0 {
			continue
		}
		last := staff[len(staff)-1]
		layout.Width = max(layout.Width, layout.Offsets[last.StartPosition()]+width(last))
	}
	return layout
}

func remap(fromMin, fromMax, toMin, toMax, value float64) float64 {
	normalized := (value - fromMin) / max(fromMax-fromMin, 0.001)
	return toMin + normalized*(toMax-toMin)
}
