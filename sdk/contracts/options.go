package contracts

// MIDICommand represents the types of MIDI commands for event filtering.
type MIDICommand byte

const (
	// NoteOn is the MIDI command for a Note On event (0x90).
	NoteOn MIDICommand = 0x90
	// NoteOff is the MIDI command for a Note Off event (0x80).
	NoteOff MIDICommand = 0x80
)

// MIDIEventFilter allows users to specify which MIDI commands to capture.
type MIDIEventFilter struct {
	Commands []MIDICommand // List of MIDI commands to filter.
}

// Allows reports whether command passes the filter. A nil filter allows everything.
func (f *MIDIEventFilter) Allows(command byte) bool {
	if f == nil {
		return true
	}
	for _, allowed := range f.Commands {
		if command == byte(allowed) {
			return true
		}
	}
	return false
}

// CoreMIDIConfig holds configuration for CoreMIDI.
type CoreMIDIConfig struct {
	ClientName string // Name of the MIDI client.
}

// ClientOptions defines the configuration options for the MIDI client.
type ClientOptions struct {
	Logger          Logger           // Logger for logging events and errors.
	LogLevel        LogLevel         // Level of logging to use.
	LogFilePath     string           // File path for logging if file logging is enabled.
	MIDIEventFilter *MIDIEventFilter // Optional filter for MIDI events to capture.
	CoreMIDIConfig  *CoreMIDIConfig  // Configuration specific to CoreMIDI.
	DeviceRange     *NoteRange       // Playable range reported for every listed device.
}

// Option is a function that modifies ClientOptions.
type Option func(*ClientOptions)

// WithLogger sets the logger for the MIDI client.
func WithLogger(l Logger) Option {
	return func(opts *ClientOptions) {
		opts.Logger = l
	}
}

// WithLogLevel sets the logging level for the MIDI client.
func WithLogLevel(level LogLevel) Option {
	return func(opts *ClientOptions) {
		opts.LogLevel = level
	}
}

// WithLogFile directs the client's logger to a file.
func WithLogFile(path string) Option {
	return func(opts *ClientOptions) {
		opts.LogFilePath = path
	}
}

// WithMIDIEventFilter sets the MIDI event filter for the MIDI client.
func WithMIDIEventFilter(filter MIDIEventFilter) Option {
	return func(opts *ClientOptions) {
		opts.MIDIEventFilter = &filter
	}
}

// WithCoreMIDIConfig sets the CoreMIDI configuration for the MIDI client.
func WithCoreMIDIConfig(config CoreMIDIConfig) Option {
	return func(opts *ClientOptions) {
		opts.CoreMIDIConfig = &config
	}
}

// WithDeviceRange overrides the playable range reported for listed devices.
func WithDeviceRange(r NoteRange) Option {
	return func(opts *ClientOptions) {
		opts.DeviceRange = &r
	}
}

// ParseOptions defines the configuration options for MusicXML parsing.
type ParseOptions struct {
	Logger          Logger   // Logger receiving recoverable parse warnings.
	LogLevel        LogLevel // Level of logging to use.
	ParseGrandStaff *bool    // Whether staff 2 (bass clef and its symbols) is compiled. Defaults to true.
}

// GrandStaff reports the effective grand-staff setting.
func (o ParseOptions) GrandStaff() bool {
	return o.ParseGrandStaff == nil || *o.ParseGrandStaff
}

// ParseOption is a function that modifies ParseOptions.
type ParseOption func(*ParseOptions)

// WithParseLogger sets the logger used while parsing.
func WithParseLogger(l Logger) ParseOption {
	return func(opts *ParseOptions) {
		opts.Logger = l
	}
}

// WithParseLogLevel sets the logging level used while parsing.
func WithParseLogLevel(level LogLevel) ParseOption {
	return func(opts *ParseOptions) {
		opts.LogLevel = level
	}
}

// WithGrandStaff enables or disables compilation of the bottom staff.
func WithGrandStaff(enabled bool) ParseOption {
	return func(opts *ParseOptions) {
		opts.ParseGrandStaff = &enabled
	}
}
