package parser

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/FilipRuta/sight-readia/internal/mxl"
	"github.com/FilipRuta/sight-readia/sdk/contracts"
	"github.com/FilipRuta/sight-readia/sdk/sheet"
)

// ResolveStaffHead folds the staff-head fields probed from one measure into the previous head.
// Fields that are absent carry forward. It returns nil when nothing differs from prev; the first
// measure (prev == nil) always yields a head, starting from sheet.DefaultStaffHead.
// A clef with a missing or unknown sign, or a line outside 1..5, fails with ErrUnsupportedClef.
func ResolveStaffHead(prev *sheet.StaffHead, probe mxl.HeadProbe, grandStaff bool) (*sheet.StaffHead, error) {
	base := prev
	if base == nil {
		base = sheet.DefaultStaffHead()
	}

	top := base.TopClef()
	var bottom *sheet.Clef
	if c, ok := base.BottomClef(); ok {
		bottom = &c
	}
	fifths := base.Fifths()
	ts := base.TimeSignature()

	if v, ok := parseOptInt(probe.Fifths); ok {
		fifths = v
	}
	beats, okBeats := parseOptInt(probe.Beats)
	beatType, okBeatType := parseOptInt(probe.BeatType)
	if okBeats && okBeatType {
		ts = sheet.TimeSignature{Beats: beats, BeatType: beatType}
	}

	for _, el := range probe.Clefs {
		clef, err := parseClef(el)
		if err != nil {
			return nil, err
		}
		switch {
		case el.Number == nil || *el.Number == "1":
			top = clef
		case *el.Number == "2" && grandStaff:
			bottom = &clef
		}
	}

	head := sheet.NewStaffHead(top, bottom, fifths, ts)
	if prev != nil && head.Equal(prev) {
		return nil, nil
	}
	return head, nil
}

func parseClef(el mxl.ClefElement) (sheet.Clef, error) {
	line, ok := parseOptInt(el.Line)
	if !ok || strings.TrimSpace(el.Sign) == "" {
		return sheet.Clef{}, fmt.Errorf("%w: sign %q line %v", contracts.ErrUnsupportedClef, el.Sign, deref(el.Line))
	}
	step, ok := sheet.ParseNoteStep(el.Sign)
	if !ok || !sheet.IsSupportedClefStep(step) {
		return sheet.Clef{}, fmt.Errorf("%w: unsupported clef step %s", contracts.ErrUnsupportedClef, el.Sign)
	}
	if line < 1 || line > 5 {
		return sheet.Clef{}, fmt.Errorf("%w: line %d", contracts.ErrUnsupportedClef, line)
	}
	return sheet.Clef{Step: step, Line: line}, nil
}

func parseOptInt(s *string) (int, bool) {
	if s == nil {
		return 0, false
	}
	v, err := strconv.Atoi(strings.TrimSpace(*s))
	return v, err == nil
}

func deref(s *string) string {
	if s == nil {
		return "<missing>"
	}
	return *s
}
