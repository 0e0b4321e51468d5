package sheet

// Symbol is a note or rest placed in a measure.
type Symbol interface {
	// StartPosition is the tick offset from the start of the measure, in division units.
	StartPosition() int
	Duration() int
	Type() NoteType
	DotCount() int
	// Staff is 1 for the top staff, 2 for the bottom one.
	Staff() int
	IsInTopStaff() bool
}

// SymbolInfo holds the fields shared by notes and rests.
type SymbolInfo struct {
	StartPosition int
	Duration      int
	Type          NoteType
	DotCount      int
	Staff         int
}

type symbolBase struct {
	info SymbolInfo
}

func newSymbolBase(info SymbolInfo) symbolBase {
	if info.Staff == 0 {
		info.Staff = 1
	}
	if info.StartPosition < 0 {
		info.StartPosition = 0
	}
	return symbolBase{info: info}
}

func (s *symbolBase) StartPosition() int { return s.info.StartPosition }
func (s *symbolBase) Duration() int      { return s.info.Duration }
func (s *symbolBase) Type() NoteType     { return s.info.Type }
func (s *symbolBase) DotCount() int      { return s.info.DotCount }
func (s *symbolBase) Staff() int         { return s.info.Staff }
func (s *symbolBase) IsInTopStaff() bool { return s.info.Staff == 1 }

// Rest is a silent symbol.
type Rest struct {
	symbolBase
	wholeMeasure bool
}

// NewRest creates a rest. A whole-measure rest always has type Whole.
func NewRest(info SymbolInfo, wholeMeasure bool) *Rest {
	if wholeMeasure {
		info.Type = Whole
	}
	return &Rest{symbolBase: newSymbolBase(info), wholeMeasure: wholeMeasure}
}

// IsWholeMeasure reports whether the rest fills the whole measure.
func (r *Rest) IsWholeMeasure() bool { return r.wholeMeasure }
