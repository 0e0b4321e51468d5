package game

import (
	"github.com/FilipRuta/sight-readia/sdk/sheet"
)

func quarter(start int, step sheet.NoteStep, octave int) *sheet.Note {
	return sheet.NewNote(
		sheet.SymbolInfo{StartPosition: start, Duration: 1, Type: sheet.Quarter, Staff: 1},
		sheet.NoteSpec{Step: step, Octave: octave},
	)
}

// practiceScore has two measures:
//
//	1: C4 | E4+G4 | rest
//	2: A5 and C2 together | D4
func practiceScore() *sheet.MusicScore {
	head := sheet.DefaultStaffHead()

	chord := quarter(1, sheet.E, 4)
	chord.AddChordNote(quarter(1, sheet.G, 4))
	first := sheet.NewMeasure([]sheet.Symbol{
		quarter(0, sheet.C, 4),
		chord,
		sheet.NewRest(sheet.SymbolInfo{StartPosition: 2, Duration: 2, Type: sheet.Half, Staff: 1}, false),
	}, nil, head, nil)

	second := sheet.NewMeasure([]sheet.Symbol{
		quarter(0, sheet.A, 5),
		quarter(0, sheet.C, 2),
		quarter(1, sheet.D, 4),
	}, nil, head, head)

	return sheet.NewMusicScore([]*sheet.Measure{first, second}, 1, 1)
}
