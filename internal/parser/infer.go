package parser

import (
	"github.com/FilipRuta/sight-readia/sdk/sheet"
	"golang.org/x/exp/constraints"
)

// InferNoteType picks the duration class closest to duration, given divisions ticks per quarter.
// Ties go to the longer class.
func InferNoteType(duration, divisions int) sheet.NoteType {
	if divisions <= 0 {
		divisions = 1
	}
	scaled := int64(duration) * int64(sheet.QuarterScale) / int64(divisions)

	best := sheet.NoteTypes[0]
	bestDist := absDiff(scaled, int64(best))
	for _, t := range sheet.NoteTypes[1:] {
		if d := absDiff(scaled, int64(t)); d < bestDist {
			best, bestDist = t, d
		}
	}
	return best
}

func absDiff[T constraints.Integer](a, b T) T {
	if a > b {
		return a - b
	}
	return b - a
}
