package midi

import (
	"errors"
	"fmt"

	"github.com/FilipRuta/sight-readia/sdk/contracts"
)

// ErrDeviceNotFound is returned by OpenDevice for an index outside the device list.
var ErrDeviceNotFound = errors.New("MIDI device not found")

// NewMIDIClient creates a MIDI input client for the current platform.
//
// opts ...contracts.Option: A variadic list of option functions to customize the client configuration.
//
// Returns:
//   - contracts.ClientMIDI: An instance of the MIDI client.
//   - error: ErrUnsupportedOS on platforms without a back end, or the back end's initialization error.
func NewMIDIClient(opts ...contracts.Option) (contracts.ClientMIDI, error) {
	options, err := applyDefaultOptions(opts...)
	if err != nil {
		return nil, err
	}
	return NewClient(&options)
}

// OpenDevice creates a client and connects it to the input device at deviceID.
//
// Returns:
//   - contracts.ClientMIDI: A client ready for StartCapture. The caller must Stop it.
//   - contracts.DeviceInfo: The selected device, including its playable range.
//   - error: ErrDeviceNotFound for a bad index, or any client error.
func OpenDevice(deviceID int, opts ...contracts.Option) (contracts.ClientMIDI, contracts.DeviceInfo, error) {
	client, err := NewMIDIClient(opts...)
	if err != nil {
		return nil, contracts.DeviceInfo{}, err
	}

	device, err := selectDevice(client, deviceID)
	if err != nil {
		_ = client.Stop()
		return nil, contracts.DeviceInfo{}, err
	}
	return client, device, nil
}

func selectDevice(client contracts.ClientMIDI, deviceID int) (contracts.DeviceInfo, error) {
	devices, err := client.ListDevices()
	if err != nil {
		return contracts.DeviceInfo{}, err
	}
	if deviceID < 0 || deviceID >= len(devices) {
		return contracts.DeviceInfo{}, fmt.Errorf("%w: index %d of %d", ErrDeviceNotFound, deviceID, len(devices))
	}
	if err := client.SelectDevice(deviceID); err != nil {
		return contracts.DeviceInfo{}, err
	}
	return devices[deviceID], nil
}
