package parser

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/FilipRuta/sight-readia/internal/logger"
	"github.com/FilipRuta/sight-readia/internal/mxl"
	"github.com/FilipRuta/sight-readia/sdk/contracts"
	"github.com/FilipRuta/sight-readia/sdk/sheet"
)

// MeasureContext carries what the compiler needs to know beyond the measure's own records.
type MeasureContext struct {
	Index      int // 1-based, for log fields.
	Divisions  int
	GrandStaff bool
	Logger     contracts.Logger
}

// CompiledMeasure is the output of CompileMeasure: symbols sorted by start position with chord
// members attached to their primary, plus the closed beam groups.
type CompiledMeasure struct {
	Symbols    []sheet.Symbol
	BeamGroups []*sheet.BeamGroup
}

type measureCompiler struct {
	ctx MeasureContext

	cursor    int
	lastNote  *sheet.Note
	openGroup *sheet.BeamGroup
	openBeams int

	symbols []sheet.Symbol
	groups  []*sheet.BeamGroup
}

// CompileMeasure turns one measure's records into positioned symbols and beam groups.
func CompileMeasure(records []mxl.Record, ctx MeasureContext) (*CompiledMeasure, error) {
	if ctx.Divisions <= 0 {
		ctx.Divisions = 1
	}
	if ctx.Logger == nil {
		ctx.Logger = logger.NewNopLogger()
	}
	c := &measureCompiler{ctx: ctx}
	for _, rec := range records {
		if err := c.process(rec); err != nil {
			return nil, err
		}
	}

	if c.openGroup != nil {
		c.warn("beam group was not closed", c.field().Int("openBeams", c.openBeams))
	}
	sort.SliceStable(c.symbols, func(i, j int) bool {
		return c.symbols[i].StartPosition() < c.symbols[j].StartPosition()
	})
	return &CompiledMeasure{Symbols: c.symbols, BeamGroups: c.groups}, nil
}

func (c *measureCompiler) process(rec mxl.Record) error {
	switch r := rec.(type) {
	case mxl.ForwardRecord:
		d, err := parseDuration(r.Duration, "forward")
		if err != nil {
			return err
		}
		c.cursor += d
	case mxl.BackupRecord:
		d, err := parseDuration(r.Duration, "backup")
		if err != nil {
			return err
		}
		c.cursor -= d
		if c.cursor < 0 {
			c.warn("backup moved before measure start, clamping to 0",
				c.field().Int("cursor", c.cursor), c.field().Int("duration", d))
			c.cursor = 0
		}
	case mxl.NoteRecord:
		return c.processNote(r)
	}
	return nil
}

func (c *measureCompiler) processNote(r mxl.NoteRecord) error {
	if r.Grace {
		return nil
	}
	staff := c.staffOf(r.Staff)
	if staff != 1 && !c.ctx.GrandStaff {
		return nil
	}
	duration, err := parseDuration(r.Duration, "note")
	if err != nil {
		return err
	}

	var beams []sheet.BeamValue
	if len(r.Beams) > 0 && !r.Chord {
		beams = ParseBeams(r.Beams, func(value string) {
			c.warn("dropping unrecognized beam value", c.field().String("value", value))
		})
		if c.openGroup == nil {
			c.openGroup = &sheet.BeamGroup{}
		}
		c.openBeams += beamBalance(beams)
	}

	info := sheet.SymbolInfo{StartPosition: c.cursor, Duration: duration, DotCount: r.Dots, Staff: staff}
	if r.Rest {
		rest, err := c.buildRest(r, info)
		if err != nil {
			return err
		}
		c.symbols = append(c.symbols, rest)
	} else {
		chordMember := r.Chord && c.lastNote != nil
		if chordMember {
			info.StartPosition = c.lastNote.StartPosition()
		}
		note, err := c.buildNote(r, info, beams)
		if err != nil {
			return err
		}
		if chordMember {
			c.lastNote.AddChordNote(note)
		} else {
			c.lastNote = note
			c.symbols = append(c.symbols, note)
		}
		if c.openGroup != nil && beams != nil && !r.Chord {
			c.openGroup.AddNote(note)
		}
	}

	if c.openGroup != nil && beams != nil && c.openBeams <= 0 {
		if len(c.openGroup.Notes()) > 0 {
			c.groups = append(c.groups, c.openGroup)
		}
		c.openGroup, c.openBeams = nil, 0
	}

	if !r.Chord {
		c.cursor += duration
	}
	return nil
}

func (c *measureCompiler) buildRest(r mxl.NoteRecord, info sheet.SymbolInfo) (*sheet.Rest, error) {
	switch {
	case r.Type == nil:
		info.Type = InferNoteType(info.Duration, c.ctx.Divisions)
	case !r.MeasureRest:
		t, ok := sheet.ParseNoteType(*r.Type)
		if !ok {
			return nil, fmt.Errorf("%w: %q", contracts.ErrUnsupportedRestType, *r.Type)
		}
		info.Type = t
	}
	return sheet.NewRest(info, r.MeasureRest), nil
}

func (c *measureCompiler) buildNote(r mxl.NoteRecord, info sheet.SymbolInfo, beams []sheet.BeamValue) (*sheet.Note, error) {
	octave, err := strconv.Atoi(strings.TrimSpace(r.Octave))
	if err != nil || octave < 0 || octave > sheet.MaxOctave {
		return nil, fmt.Errorf("%w: %q", contracts.ErrInvalidOctave, r.Octave)
	}

	if r.Type == nil {
		info.Type = InferNoteType(info.Duration, c.ctx.Divisions)
	} else {
		t, ok := sheet.ParseNoteType(*r.Type)
		if !ok {
			return nil, fmt.Errorf("%w: %q", contracts.ErrUnsupportedNoteType, *r.Type)
		}
		info.Type = t
	}

	step, ok := sheet.ParseNoteStep(r.Step)
	if !ok {
		return nil, fmt.Errorf("%w: %q", contracts.ErrUnsupportedStep, r.Step)
	}

	spec := sheet.NoteSpec{Step: step, Octave: octave, StemDown: r.StemDown, Beams: beams}
	if r.Accidental != nil {
		acc, ok := sheet.ParseAccidental(*r.Accidental)
		if !ok {
			return nil, fmt.Errorf("%w: %q", contracts.ErrUnsupportedAccidental, *r.Accidental)
		}
		spec.Accidental = &acc
	}
	return sheet.NewNote(info, spec), nil
}

// staffOf defaults an absent staff to 1. An unreadable staff number is logged and read as 1.
func (c *measureCompiler) staffOf(staff *string) int {
	if staff == nil {
		return 1
	}
	n, ok := parseOptInt(staff)
	if !ok || n < 1 {
		c.warn("unreadable staff number, using staff 1", c.field().String("value", *staff))
		return 1
	}
	return n
}

func parseDuration(s *string, element string) (int, error) {
	if s == nil {
		return 0, fmt.Errorf("%w: <%s>", contracts.ErrMissingDuration, element)
	}
	d, ok := parseOptInt(s)
	if !ok || d < 0 {
		return 0, fmt.Errorf("%w: <%s> has duration %q", contracts.ErrMissingDuration, element, *s)
	}
	return d, nil
}

func (c *measureCompiler) field() contracts.Field {
	return c.ctx.Logger.Field()
}

func (c *measureCompiler) warn(msg string, fields ...contracts.Field) {
	c.ctx.Logger.Warn(msg, append([]contracts.Field{c.field().Int("measure", c.ctx.Index)}, fields...)...)
}
