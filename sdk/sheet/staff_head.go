package sheet

// Clef is a clef sign placed on a staff line (1 = bottom line).
type Clef struct {
	Step NoteStep
	Line int
}

var clefOctaves = map[NoteStep]int{G: 4, C: 4, F: 3}

// Clef signs with a known reference octave.
var (
	TrebleClef = Clef{Step: G, Line: 2}
	BassClef   = Clef{Step: F, Line: 4}
	AltoClef   = Clef{Step: C, Line: 3}
)

// IsSupportedClefStep reports whether step can be used as a clef sign.
func IsSupportedClefStep(step NoteStep) bool {
	_, ok := clefOctaves[step]
	return ok
}

// Octave is the octave of the pitch the clef marks.
func (c Clef) Octave() int {
	return clefOctaves[c.Step]
}

// TimeSignature is a (beats, beat-type) pair.
type TimeSignature struct {
	Beats    int
	BeatType int
}

// MeasureTicks returns the length of a full measure in division units.
func (ts TimeSignature) MeasureTicks(divisions int) int {
	if ts.BeatType <= 0 {
		return 0
	}
	return ts.Beats * divisions * 4 / ts.BeatType
}

// StaffHead is an immutable snapshot of the clefs, key and time signature in effect for a measure.
// Measures with no change share the same *StaffHead.
type StaffHead struct {
	topClef       Clef
	bottomClef    *Clef
	fifths        int
	timeSignature TimeSignature
}

// NewStaffHead builds a staff head. bottomClef may be nil for a single staff.
func NewStaffHead(topClef Clef, bottomClef *Clef, fifths int, ts TimeSignature) *StaffHead {
	h := &StaffHead{topClef: topClef, fifths: fifths, timeSignature: ts}
	if bottomClef != nil {
		c := *bottomClef
		h.bottomClef = &c
	}
	return h
}

// DefaultStaffHead is used when a score starts without attributes: treble clef, C major, 4/4.
func DefaultStaffHead() *StaffHead {
	return NewStaffHead(TrebleClef, nil, 0, TimeSignature{Beats: 4, BeatType: 4})
}

func (h *StaffHead) TopClef() Clef { return h.topClef }

// BottomClef returns the bottom staff clef and whether one was declared.
func (h *StaffHead) BottomClef() (Clef, bool) {
	if h.bottomClef == nil {
		return Clef{}, false
	}
	return *h.bottomClef, true
}

func (h *StaffHead) Fifths() int                  { return h.fifths }
func (h *StaffHead) TimeSignature() TimeSignature { return h.timeSignature }

// ClefFor returns the clef for staff 1 (top) or any other staff (bottom).
// A bottom staff without a declared clef reads in bass clef.
func (h *StaffHead) ClefFor(staff int) Clef {
	if staff == 1 {
		return h.topClef
	}
	if h.bottomClef != nil {
		return *h.bottomClef
	}
	return BassClef
}

// Equal reports whether both heads describe the same clefs, key and time.
func (h *StaffHead) Equal(o *StaffHead) bool {
	if h == nil || o == nil {
		return h == o
	}
	if h.topClef != o.topClef || h.fifths != o.fifths || h.timeSignature != o.timeSignature {
		return false
	}
	if (h.bottomClef == nil) != (o.bottomClef == nil) {
		return false
	}
	return h.bottomClef == nil || *h.bottomClef == *o.bottomClef
}

// DrawClef reports whether the clef of staff must be drawn given the previous head.
func (h *StaffHead) DrawClef(prev *StaffHead, staff int) bool {
	return prev == nil || prev.ClefFor(staff) != h.ClefFor(staff)
}

// DrawKey reports whether the key signature must be drawn given the previous head.
func (h *StaffHead) DrawKey(prev *StaffHead) bool {
	return prev == nil || prev.fifths != h.fifths
}

// DrawTime reports whether the time signature must be drawn given the previous head.
func (h *StaffHead) DrawTime(prev *StaffHead) bool {
	return prev == nil || prev.timeSignature != h.timeSignature
}

var (
	sharpKeyPositions = [7]int{1, 4, 0, 3, 6, 2, 5}
	flatKeyPositions  = [7]int{5, 2, 6, 3, 7, 4, 8}
	clefKeyShift      = map[NoteStep]int{G: 0, C: 1, F: 2}
)

// KeySignatureSteps returns the staff step (see StaffStep) of each accidental of the key signature
// on a staff in the given clef, in drawing order.
func KeySignatureSteps(fifths int, clef Clef) []int {
	count := min(abs(fifths), 7)
	positions := sharpKeyPositions
	if fifths < 0 {
		positions = flatKeyPositions
	}
	steps := make([]int, count)
	for i := range steps {
		// Positions count down from the space above the top line.
		steps[i] = 9 - positions[i] - clefKeyShift[clef.Step]
	}
	return steps
}
