//go:build darwin
// +build darwin

package mididarwin

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/FilipRuta/sight-readia/internal/midi/capture"
	"github.com/FilipRuta/sight-readia/sdk/contracts"
	"github.com/youpy/go-coremidi"
)

var (
	ErrNoMIDIDevices        = errors.New("no MIDI devices found")
	ErrInvalidMIDIDevice    = errors.New("invalid MIDI device")
	ErrMIDIConnectionError  = errors.New("error connecting to MIDI device")
	ErrCreateInputPort      = errors.New("error creating input port")
	ErrIncompleteMIDIPacket = errors.New("incomplete MIDI packet")
)

type portConnection interface {
	Disconnect()
}

// ClientMid reads key presses from a CoreMIDI source.
type ClientMid struct {
	logger     contracts.Logger
	client     coremidi.Client
	inputPort  coremidi.InputPort
	portConn   portConnection
	dispatcher *capture.Dispatcher
	noteRange  contracts.NoteRange
	mu         sync.Mutex
	stopOnce   sync.Once
}

// NewMIDIClient registers a CoreMIDI client named after options.CoreMIDIConfig.
func NewMIDIClient(options *contracts.ClientOptions) (contracts.ClientMIDI, error) {
	client, err := coremidi.NewClient(options.CoreMIDIConfig.ClientName)
	if err != nil {
		return nil, err
	}
	options.Logger.Info("MIDI client created", options.Logger.Field().String("client", options.CoreMIDIConfig.ClientName))

	return &ClientMid{
		logger:     options.Logger,
		client:     client,
		dispatcher: capture.NewDispatcher(options.Logger, options.MIDIEventFilter),
		noteRange:  capture.DeviceRange(options),
	}, nil
}

func (m *ClientMid) ListDevices() ([]contracts.DeviceInfo, error) {
	sources, err := coremidi.AllSources()
	if err != nil {
		return nil, fmt.Errorf("error listing MIDI sources: %w", err)
	}
	if len(sources) == 0 {
		m.logger.Warn(ErrNoMIDIDevices.Error())
		return nil, ErrNoMIDIDevices
	}

	devices := make([]contracts.DeviceInfo, len(sources))
	for i, source := range sources {
		entity := source.Entity()
		devices[i] = contracts.DeviceInfo{
			Name:         source.Name(),
			EntityName:   entity.Name(),
			Manufacturer: entity.Manufacturer(),
			Range:        m.noteRange,
		}
	}
	return devices, nil
}

// SelectDevice connects the input port to the source at deviceID, replacing any previous connection.
func (m *ClientMid) SelectDevice(deviceID int) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	sources, err := coremidi.AllSources()
	if err != nil {
		return fmt.Errorf("error retrieving MIDI sources: %w", err)
	}
	if deviceID < 0 || deviceID >= len(sources) {
		m.logger.Error(ErrInvalidMIDIDevice.Error(), m.logger.Field().Int("deviceID", deviceID))
		return ErrInvalidMIDIDevice
	}

	if m.portConn != nil {
		m.portConn.Disconnect()
		m.portConn = nil
	}

	source := sources[deviceID]
	m.inputPort, err = coremidi.NewInputPort(m.client, "sight-readia input", m.handlePacket)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrCreateInputPort, err)
	}
	m.portConn, err = m.inputPort.Connect(source)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrMIDIConnectionError, err)
	}

	m.logger.Info("MIDI device connected",
		m.logger.Field().Int("deviceID", deviceID),
		m.logger.Field().String("deviceName", source.Name()))
	return nil
}

// handlePacket splits a CoreMIDI packet into three-byte channel messages.
func (m *ClientMid) handlePacket(_ coremidi.Source, packet coremidi.Packet) {
	data := packet.Data
	if len(data) < 3 {
		m.logger.Warn(ErrIncompleteMIDIPacket.Error())
		return
	}
	now := time.Now()
	for len(data) >= 3 {
		if data[0]&0x80 == 0 {
			data = data[1:]
			continue
		}
		m.dispatcher.Dispatch(capture.Decode(data[0], data[1], data[2], now))
		data = data[3:]
	}
}

func (m *ClientMid) StartCapture(eventChannel chan contracts.MIDI) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if eventChannel == nil {
		m.logger.Error("StartCapture called with nil eventChannel")
		return
	}
	if m.dispatcher.Attached() {
		m.logger.Warn("capture already running; switching channel")
	}
	m.dispatcher.Attach(eventChannel)
	m.logger.Info("MIDI capture started")
}

// Stop disconnects the source and waits for in-flight callbacks. Further calls are no-ops.
func (m *ClientMid) Stop() error {
	m.stopOnce.Do(func() {
		m.mu.Lock()
		defer m.mu.Unlock()

		if m.portConn != nil {
			m.portConn.Disconnect()
			m.portConn = nil
		}
		m.dispatcher.Detach()
		m.logger.Info("MIDI capture stopped")
	})
	return nil
}
