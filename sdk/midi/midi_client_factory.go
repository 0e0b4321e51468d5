package midi

import (
	"errors"
	"fmt"
	"runtime"

	"github.com/FilipRuta/sight-readia/internal/midi/mididarwin"
	"github.com/FilipRuta/sight-readia/internal/midi/midiwindows"
	"github.com/FilipRuta/sight-readia/sdk/contracts"
)

// ErrUnsupportedOS is returned when no MIDI input back end exists for the operating system.
var ErrUnsupportedOS = errors.New("unsupported operating system")

type backend func(*contracts.ClientOptions) (contracts.ClientMIDI, error)

// backends maps GOOS values to their MIDI input back end.
var backends = map[string]backend{
	"darwin":  mididarwin.NewMIDIClient,
	"windows": midiwindows.NewMIDIClient,
}

// NewClient initializes the back end for the running operating system with already defaulted options.
//
// Returns:
//   - contracts.ClientMIDI: An instance of the MIDI client.
//   - error: ErrUnsupportedOS when the platform has no back end, or the back end's error.
func NewClient(opts *contracts.ClientOptions) (contracts.ClientMIDI, error) {
	newBackend, ok := backends[runtime.GOOS]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedOS, runtime.GOOS)
	}
	client, err := newBackend(opts)
	if err != nil {
		return nil, fmt.Errorf("%s MIDI back end: %w", runtime.GOOS, err)
	}
	return client, nil
}
