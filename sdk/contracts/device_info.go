package contracts

// DeviceInfo contains information about a MIDI device.
type DeviceInfo struct {
	Name         string    // Device name.
	Manufacturer string    // Device manufacturer.
	EntityName   string    // Name of the entity to which the device belongs.
	Range        NoteRange // Playable pitch range reported for the device.
}

// NoteRange is an inclusive range of MIDI note numbers a device can play.
type NoteRange struct {
	Low  int
	High int
}

var (
	// PCKeyboardRange is the range playable from a computer keyboard mapping.
	PCKeyboardRange = NoteRange{Low: 60, High: 88}
	// FullKeyboardRange covers every MIDI note number.
	FullKeyboardRange = NoteRange{Low: 0, High: 127}
)

// IsInDeviceRange reports whether midiCode lies within the range.
func (r NoteRange) IsInDeviceRange(midiCode int) bool {
	return midiCode >= r.Low && midiCode <= r.High
}
