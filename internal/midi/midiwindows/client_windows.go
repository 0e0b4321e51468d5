//go:build windows
// +build windows

package midiwindows

import (
	"errors"
	"fmt"
	"sync"
	"time"
	"unsafe"

	"github.com/FilipRuta/sight-readia/internal/midi/capture"
	"github.com/FilipRuta/sight-readia/sdk/contracts"
	"golang.org/x/sys/windows"
)

type HMIDIIN windows.Handle

const (
	CALLBACK_FUNCTION = 0x00030000
	MIDI_IO_STATUS    = 0x00000020
)

const (
	MIM_OPEN      = 0x3C1
	MIM_CLOSE     = 0x3C2
	MIM_DATA      = 0x3C3
	MIM_ERROR     = 0x3C5
	MIM_LONGERROR = 0x3C6
	MIM_MOREDATA  = 0x3CC
)

var (
	ErrNoMIDIDevices     = errors.New("no MIDI devices found")
	ErrInvalidMIDIDevice = errors.New("invalid MIDI device")
	ErrInvalidHandle     = errors.New("invalid MIDI device handle")
)

type midiInCaps struct {
	wMid           uint16
	wPid           uint16
	vDriverVersion uint32
	szPname        [32]uint16
	dwSupport      uint32
}

// ClientMid reads key presses through the winmm MIDI input API.
type ClientMid struct {
	logger     contracts.Logger
	handle     HMIDIIN
	open       bool
	started    bool
	mu         sync.Mutex
	callback   uintptr
	dispatcher *capture.Dispatcher
	noteRange  contracts.NoteRange
}

var (
	winmm                = windows.NewLazySystemDLL("winmm.dll")
	procMidiInGetNumDevs = winmm.NewProc("midiInGetNumDevs")
	procMidiInGetDevCaps = winmm.NewProc("midiInGetDevCapsW")
	procMidiInOpen       = winmm.NewProc("midiInOpen")
	procMidiInStart      = winmm.NewProc("midiInStart")
	procMidiInStop       = winmm.NewProc("midiInStop")
	procMidiInClose      = winmm.NewProc("midiInClose")
)

func NewMIDIClient(options *contracts.ClientOptions) (contracts.ClientMIDI, error) {
	options.Logger.Info("MIDI client created for Windows")
	return &ClientMid{
		logger:     options.Logger,
		dispatcher: capture.NewDispatcher(options.Logger, options.MIDIEventFilter),
		noteRange:  capture.DeviceRange(options),
	}, nil
}

func (m *ClientMid) ListDevices() ([]contracts.DeviceInfo, error) {
	r0, _, _ := procMidiInGetNumDevs.Call()
	count := uint32(r0)
	if count == 0 {
		m.logger.Warn(ErrNoMIDIDevices.Error())
		return nil, ErrNoMIDIDevices
	}

	devices := make([]contracts.DeviceInfo, 0, count)
	for i := uint32(0); i < count; i++ {
		var caps midiInCaps
		r1, _, _ := procMidiInGetDevCaps.Call(uintptr(i), uintptr(unsafe.Pointer(&caps)), unsafe.Sizeof(caps))
		if r1 != 0 {
			m.logger.Warn("failed to query MIDI device", m.logger.Field().Int("deviceID", int(i)))
			continue
		}
		name := windows.UTF16ToString(caps.szPname[:])
		devices = append(devices, contracts.DeviceInfo{
			Name:         name,
			EntityName:   name,
			Manufacturer: fmt.Sprintf("MID: %d PID: %d", caps.wMid, caps.wPid),
			Range:        m.noteRange,
		})
	}
	return devices, nil
}

// SelectDevice opens the input device at deviceID, closing any previously opened one.
func (m *ClientMid) SelectDevice(deviceID int) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if deviceID < 0 {
		return ErrInvalidMIDIDevice
	}
	if m.open {
		if err := m.close(); err != nil {
			return fmt.Errorf("failed to close previous MIDI device: %w", err)
		}
	}

	m.callback = windows.NewCallback(midiInCallback)
	r1, _, err := procMidiInOpen.Call(
		uintptr(unsafe.Pointer(&m.handle)),
		uintptr(deviceID),
		m.callback,
		uintptr(unsafe.Pointer(m)),
		uintptr(CALLBACK_FUNCTION|MIDI_IO_STATUS),
	)
	if r1 != 0 {
		return fmt.Errorf("%w %d: %v", ErrInvalidMIDIDevice, deviceID, err)
	}

	m.open = true
	m.logger.Info("MIDI device connected", m.logger.Field().Int("deviceID", deviceID))
	return nil
}

func (m *ClientMid) StartCapture(eventChannel chan contracts.MIDI) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if eventChannel == nil {
		m.logger.Error("StartCapture called with nil eventChannel")
		return
	}
	if !m.open || m.handle == 0 {
		m.logger.Error("cannot start capture: no MIDI device selected")
		return
	}

	m.dispatcher.Attach(eventChannel)
	if m.started {
		return
	}
	r1, _, err := procMidiInStart.Call(uintptr(m.handle))
	if r1 != 0 {
		m.logger.Error("failed to start MIDI capture", m.logger.Field().String("cause", err.Error()))
		return
	}
	m.started = true
	m.logger.Info("MIDI capture started")
}

func midiInCallback(hMidiIn uintptr, wMsg uint32, dwInstance uintptr, dwParam1 uintptr, dwParam2 uintptr) uintptr {
	m := (*ClientMid)(unsafe.Pointer(dwInstance))

	switch wMsg {
	case MIM_OPEN, MIM_CLOSE, MIM_MOREDATA:
	case MIM_DATA:
		ev := capture.Decode(byte(dwParam1), byte(dwParam1>>8), byte(dwParam1>>16), time.Now())
		m.dispatcher.Dispatch(ev)
	case MIM_ERROR, MIM_LONGERROR:
		m.logger.Error("MIDI input error", m.logger.Field().Uint64("message", uint64(wMsg)))
	default:
		m.logger.Debug("unknown MIDI input message", m.logger.Field().Uint64("message", uint64(wMsg)))
	}
	return 0
}

// Stop halts capture and closes the device.
func (m *ClientMid) Stop() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if !m.open {
		return nil
	}
	if err := m.close(); err != nil {
		return fmt.Errorf("failed to stop MIDI capture: %w", err)
	}
	m.logger.Info("MIDI capture stopped")
	return nil
}

func (m *ClientMid) close() error {
	if m.handle == 0 {
		return ErrInvalidHandle
	}
	m.dispatcher.Detach()

	if r1, _, err := procMidiInStop.Call(uintptr(m.handle)); r1 != 0 {
		return err
	}
	if r1, _, err := procMidiInClose.Call(uintptr(m.handle)); r1 != 0 {
		return err
	}
	m.open = false
	m.started = false
	m.handle = 0
	return nil
}
