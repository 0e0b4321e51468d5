package sheet

import "strings"

// NoteStep is a note letter valued by its semitone distance from C.
type NoteStep int

const (
	C NoteStep = 0
	D NoteStep = 2
	E NoteStep = 4
	F NoteStep = 5
	G NoteStep = 7
	A NoteStep = 9
	B NoteStep = 11
)

// NoteSequence lists the letters in diatonic order starting from C.
var NoteSequence = [7]NoteStep{C, D, E, F, G, A, B}

// SharpOrder is the order in which a key signature adds sharps. Flats are added in reverse.
var SharpOrder = [7]NoteStep{F, C, G, D, A, E, B}

var stepNames = map[NoteStep]string{C: "C", D: "D", E: "E", F: "F", G: "G", A: "A", B: "B"}

// ParseNoteStep maps a letter (case-insensitive, surrounding spaces ignored) to its NoteStep.
func ParseNoteStep(s string) (NoteStep, bool) {
	for step, name := range stepNames {
		if strings.EqualFold(strings.TrimSpace(s), name) {
			return step, true
		}
	}
	return 0, false
}

// Index returns the diatonic index of the step (C=0 ... B=6), or -1 for an invalid step.
func (s NoteStep) Index() int {
	for i, step := range NoteSequence {
		if step == s {
			return i
		}
	}
	return -1
}

func (s NoteStep) String() string {
	if name, ok := stepNames[s]; ok {
		return name
	}
	return "?"
}

// NoteType is a duration class. Values are tick lengths on a scale where a quarter note is 256.
type NoteType int

const (
	Note1024 NoteType = 1 << iota
	Note512
	Note256
	Note128
	Note64
	Note32
	Note16
	Eighth
	Quarter
	Half
	Whole
	Breve
	Long
	Maxima
)

// QuarterScale is the NoteType value of a quarter note.
const QuarterScale = int(Quarter)

// NoteTypes lists every duration class from the longest to the shortest.
// Type inference walks this order, so the longer class wins a tie.
var NoteTypes = []NoteType{
	Maxima, Long, Breve, Whole, Half, Quarter, Eighth,
	Note16, Note32, Note64, Note128, Note256, Note512, Note1024,
}

var mxlNoteTypes = map[string]NoteType{
	"maxima":  Maxima,
	"long":    Long,
	"breve":   Breve,
	"whole":   Whole,
	"half":    Half,
	"quarter": Quarter,
	"eighth":  Eighth,
	"16th":    Note16,
	"32nd":    Note32,
	"64th":    Note64,
	"128th":   Note128,
	"256th":   Note256,
	"512th":   Note512,
	"1024th":  Note1024,
}

// ParseNoteType maps a MusicXML <type> value to a NoteType.
func ParseNoteType(s string) (NoteType, bool) {
	t, ok := mxlNoteTypes[strings.TrimSpace(s)]
	return t, ok
}

func (t NoteType) String() string {
	for name, v := range mxlNoteTypes {
		if v == t {
			return name
		}
	}
	return "unknown"
}

// FlagCount is the number of flags drawn on an unbeamed note of this type.
func (t NoteType) FlagCount() int {
	switch t {
	case Eighth:
		return 1
	case Note16:
		return 2
	case Note32:
		return 3
	case Note64:
		return 4
	case Note128:
		return 5
	case Note256:
		return 6
	case Note512:
		return 7
	case Note1024:
		return 8
	}
	return 0
}

// Accidental is an explicit alteration valued in semitones.
type Accidental int

const (
	Flat    Accidental = -1
	Natural Accidental = 0
	Sharp   Accidental = 1
)

// ParseAccidental accepts "sharp", "flat" and "natural" in any case.
func ParseAccidental(s string) (Accidental, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "sharp":
		return Sharp, true
	case "flat":
		return Flat, true
	case "natural":
		return Natural, true
	}
	return 0, false
}

func (a Accidental) String() string {
	switch a {
	case Sharp:
		return "sharp"
	case Flat:
		return "flat"
	}
	return "natural"
}

// BeamValue is one beam-level marker on a note.
type BeamValue int

const (
	BeamBegin BeamValue = iota
	BeamContinue
	BeamEnd
	BeamForwardHook
	BeamBackwardHook
)

var beamNames = map[string]BeamValue{
	"BEGIN":         BeamBegin,
	"CONTINUE":      BeamContinue,
	"END":           BeamEnd,
	"FORWARD_HOOK":  BeamForwardHook,
	"BACKWARD_HOOK": BeamBackwardHook,
}

// ParseBeamValue matches a MusicXML beam value case-insensitively, treating spaces as underscores.
func ParseBeamValue(s string) (BeamValue, bool) {
	key := strings.ToUpper(strings.ReplaceAll(strings.TrimSpace(s), " ", "_"))
	v, ok := beamNames[key]
	return v, ok
}

func (v BeamValue) String() string {
	for name, bv := range beamNames {
		if bv == v {
			return strings.ToLower(strings.ReplaceAll(name, "_", " "))
		}
	}
	return "unknown"
}

// ChordNoteOrientation is the side of the stem a chord notehead is drawn on.
type ChordNoteOrientation int

const (
	Left ChordNoteOrientation = iota
	Right
)
