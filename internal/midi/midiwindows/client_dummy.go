//go:build !windows
// +build !windows

package midiwindows

import (
	"github.com/FilipRuta/sight-readia/internal/midi/capture"
	"github.com/FilipRuta/sight-readia/sdk/contracts"
)

type unavailableClient struct {
	logger contracts.Logger
}

// NewMIDIClient returns a client whose device operations fail with capture.ErrUnavailable.
func NewMIDIClient(options *contracts.ClientOptions) (contracts.ClientMIDI, error) {
	options.Logger.Debug("winmm back end unavailable on this platform")
	return &unavailableClient{logger: options.Logger}, nil
}

func (m *unavailableClient) ListDevices() ([]contracts.DeviceInfo, error) {
	return nil, capture.ErrUnavailable
}

func (m *unavailableClient) SelectDevice(int) error {
	return capture.ErrUnavailable
}

func (m *unavailableClient) StartCapture(chan contracts.MIDI) {
	m.logger.Warn(capture.ErrUnavailable.Error())
}

func (m *unavailableClient) Stop() error { return nil }
