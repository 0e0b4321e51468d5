// Package summary reduces a compiled score to a JSON-friendly overview.
package summary

import (
	"fmt"

	"github.com/FilipRuta/sight-readia/sdk/sheet"
)

// Layout bounds used for the reported measure widths.
const (
	MinSymbolWidth = 1.0
	MaxSymbolWidth = 4.0
)

// Summary describes a score.
type Summary struct {
	Measures   int            `json:"measures"`
	Staves     int            `json:"staves"`
	Divisions  int            `json:"divisions"`
	GrandStaff bool           `json:"grandStaff"`
	Notes      int            `json:"notes"`
	Rests      int            `json:"rests"`
	Chords     int            `json:"chords"`
	BeamGroups int            `json:"beamGroups"`
	Lowest     int            `json:"lowest,omitempty"`
	Highest    int            `json:"highest,omitempty"`
	StaffHeads []StaffHead    `json:"staffHeads"`
	Details    []MeasureStats `json:"details"`
}

// StaffHead records a clef, key or time change and the measure it starts at.
type StaffHead struct {
	Measure    int    `json:"measure"`
	TopClef    string `json:"topClef"`
	BottomClef string `json:"bottomClef,omitempty"`
	Fifths     int    `json:"fifths"`
	Time       string `json:"time"`
}

// MeasureStats holds per-measure counts. Width is in layout units.
type MeasureStats struct {
	Measure    int     `json:"measure"`
	Notes      int     `json:"notes"`
	Rests      int     `json:"rests"`
	BeamGroups int     `json:"beamGroups"`
	Width      float64 `json:"width"`
}

// FromScore summarizes score without moving its cursor.
func FromScore(score *sheet.MusicScore) Summary {
	measures := score.Measures()
	s := Summary{
		Measures:   len(measures),
		Staves:     score.Staves(),
		Divisions:  score.Divisions(),
		GrandStaff: score.IsGrandStaff(),
		StaffHeads: []StaffHead{},
		Details:    make([]MeasureStats, 0, len(measures)),
	}

	var pitched bool
	for i, m := range measures {
		number := i + 1
		if m.HasNewStaffHead() && m.StaffHead() != nil {
			s.StaffHeads = append(s.StaffHeads, describeHead(number, m.StaffHead()))
		}

		stats := MeasureStats{
			Measure:    number,
			BeamGroups: len(m.BeamGroups()),
			Width:      m.Layout(MinSymbolWidth, MaxSymbolWidth, score.IsGrandStaff()).Width,
		}
		top, bottom := m.GetAllSymbols()
		for _, sym := range append(top, bottom...) {
			note, ok := sym.(*sheet.Note)
			if !ok {
				stats.Rests++
				continue
			}
			if note.IsChord() {
				s.Chords++
			}
			for _, n := range note.GetChordNotes() {
				stats.Notes++
				code := n.MidiCode()
				if !pitched {
					s.Lowest, s.Highest, pitched = code, code, true
				}
				s.Lowest = min(s.Lowest, code)
				s.Highest = max(s.Highest, code)
			}
		}

		s.Notes += stats.Notes
		s.Rests += stats.Rests
		s.BeamGroups += stats.BeamGroups
		s.Details = append(s.Details, stats)
	}
	return s
}

func describeHead(measure int, head *sheet.StaffHead) StaffHead {
	ts := head.TimeSignature()
	out := StaffHead{
		Measure: measure,
		TopClef: clefName(head.TopClef()),
		Fifths:  head.Fifths(),
		Time:    fmt.Sprintf("%d/%d", ts.Beats, ts.BeatType),
	}
	if bottom, ok := head.BottomClef(); ok {
		out.BottomClef = clefName(bottom)
	}
	return out
}

func clefName(c sheet.Clef) string {
	return fmt.Sprintf("%s%d", c.Step, c.Line)
}
