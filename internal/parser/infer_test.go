package parser

import (
	"testing"

	"github.com/FilipRuta/sight-readia/internal/mxl"
	"github.com/FilipRuta/sight-readia/sdk/sheet"
	"github.com/stretchr/testify/assert"
)

func TestInferNoteTypeRoundTrip(t *testing.T) {
	for _, nt := range sheet.NoteTypes {
		t.Run(nt.String(), func(t *testing.T) {
			assert.Equal(t, nt, InferNoteType(int(nt), sheet.QuarterScale))
		})
	}
}

func TestInferNoteType(t *testing.T) {
	tests := []struct {
		name      string
		duration  int
		divisions int
		want      sheet.NoteType
	}{
		{"quarter", 4, 4, sheet.Quarter},
		{"sixteenth", 1, 4, sheet.Note16},
		{"whole", 16, 4, sheet.Whole},
		{"dotted quarter ties to half", 6, 4, sheet.Half},
		{"close to eighth", 5, 12, sheet.Eighth},
		{"zero divisions", 1, 0, sheet.Quarter},
		{"huge", 1 << 20, 1, sheet.Maxima},
		{"zero duration", 0, 4, sheet.Note1024},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, InferNoteType(tt.duration, tt.divisions))
		})
	}
}

func TestParseBeams(t *testing.T) {
	var invalid []string
	got := ParseBeams([]mxl.BeamElement{
		{Value: "end"},
		{Number: str("3"), Value: "backward hook"},
		{Number: str("1"), Value: "Begin"},
		{Number: str("2"), Value: "sideways"},
	}, func(v string) { invalid = append(invalid, v) })

	assert.Equal(t, []sheet.BeamValue{sheet.BeamBegin, sheet.BeamBackwardHook, sheet.BeamEnd}, got)
	assert.Equal(t, []string{"sideways"}, invalid)
	assert.Equal(t, 0, beamBalance(got))
}
