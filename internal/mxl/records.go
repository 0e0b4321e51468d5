package mxl

// Record is one timed element of a measure: a NoteRecord, ForwardRecord or BackupRecord.
type Record interface {
	record()
}

// NoteRecord holds the raw fields of a <note>. Optional fields are nil when absent.
// Nothing here is validated.
type NoteRecord struct {
	Rest        bool
	MeasureRest bool // <rest measure="yes"/>
	Step        string
	Octave      string
	Duration    *string
	Type        *string
	Accidental  *string
	Dots        int
	Staff       *string
	Beams       []BeamElement // Document order.
	StemDown    bool
	Chord       bool
	Grace       bool
}

// BeamElement is a raw <beam number="n">value</beam>.
type BeamElement struct {
	Number *string
	Value  string
}

// ForwardRecord moves the time cursor forward.
type ForwardRecord struct {
	Duration *string
}

// BackupRecord moves the time cursor backward.
type BackupRecord struct {
	Duration *string
}

func (NoteRecord) record()    {}
func (ForwardRecord) record() {}
func (BackupRecord) record()  {}

// HeadProbe holds the raw staff-head fields found in a measure.
type HeadProbe struct {
	Fifths    *string
	Beats     *string
	BeatType  *string
	Divisions *string
	Clefs     []ClefElement
}

// ClefElement is a raw <clef number="n"><sign/><line/></clef>.
type ClefElement struct {
	Number *string
	Sign   string
	Line   *string
}
