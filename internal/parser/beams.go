package parser

import (
	"math"
	"sort"

	"github.com/FilipRuta/sight-readia/internal/mxl"
	"github.com/FilipRuta/sight-readia/sdk/sheet"
)

// ParseBeams orders beam elements by their level number (missing numbers last) and maps their
// values. Unrecognized values are reported through invalid and dropped.
func ParseBeams(elements []mxl.BeamElement, invalid func(value string)) []sheet.BeamValue {
	ordered := append([]mxl.BeamElement(nil), elements...)
	sort.SliceStable(ordered, func(i, j int) bool {
		return beamLevel(ordered[i]) < beamLevel(ordered[j])
	})

	values := make([]sheet.BeamValue, 0, len(ordered))
	for _, el := range ordered {
		v, ok := sheet.ParseBeamValue(el.Value)
		if !ok {
			if invalid != nil {
				invalid(el.Value)
			}
			continue
		}
		values = append(values, v)
	}
	return values
}

func beamLevel(el mxl.BeamElement) int {
	if n, ok := parseOptInt(el.Number); ok {
		return n
	}
	return math.MaxInt
}

// beamBalance is the number of beams a note opens minus the number it closes.
func beamBalance(values []sheet.BeamValue) int {
	balance := 0
	for _, v := range values {
		switch v {
		case sheet.BeamBegin:
			balance++
		case sheet.BeamEnd:
			balance--
		}
	}
	return balance
}
