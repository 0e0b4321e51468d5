package contracts

import (
	"errors"
	"fmt"
)

// ErrFormat is the root of every fatal MusicXML format error. A parse that fails
// with an error matching ErrFormat returns no score.
var ErrFormat = errors.New("invalid MusicXML")

// Fatal format errors. All of them match ErrFormat with errors.Is.
var (
	ErrMalformedDocument     = fmt.Errorf("%w: malformed document", ErrFormat)
	ErrUnsupportedClef       = fmt.Errorf("%w: unsupported clef", ErrFormat)
	ErrUnsupportedNoteType   = fmt.Errorf("%w: unsupported note type", ErrFormat)
	ErrUnsupportedRestType   = fmt.Errorf("%w: unsupported rest type", ErrFormat)
	ErrInvalidOctave         = fmt.Errorf("%w: invalid octave", ErrFormat)
	ErrUnsupportedStep       = fmt.Errorf("%w: unsupported step", ErrFormat)
	ErrUnsupportedAccidental = fmt.Errorf("%w: unsupported accidental", ErrFormat)
	ErrMissingDuration       = fmt.Errorf("%w: missing duration", ErrFormat)
)

// ErrNilDocument is returned when Parse is called without a document.
var ErrNilDocument = errors.New("no MusicXML document given")
