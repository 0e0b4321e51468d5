package capture

import (
	"errors"
	"sync"
	"sync/atomic"
	"time"

	"github.com/FilipRuta/sight-readia/sdk/contracts"
)

// Decode builds an event from a raw MIDI status byte and its two data bytes.
// Channel bits are stripped and a Note On with zero velocity is reported as a Note Off.
func Decode(status, data1, data2 byte, at time.Time) contracts.MIDI {
	ev := contracts.MIDI{
		Timestamp: uint64(at.UTC().UnixNano()),
		Command:   status & 0xF0,
		Note:      data1 & 0x7F,
		Velocity:  data2 & 0x7F,
	}
	if ev.Command == byte(contracts.NoteOn) && ev.Velocity == 0 {
		ev.Command = byte(contracts.NoteOff)
	}
	return ev
}

// Dispatcher forwards decoded events to the capture channel without ever blocking the
// driver callback. Full channels drop events with a warning.
type Dispatcher struct {
	logger  contracts.Logger
	filter  *contracts.MIDIEventFilter
	channel atomic.Value // chan contracts.MIDI
	wg      sync.WaitGroup
}

// NewDispatcher creates a dispatcher applying filter (nil accepts everything).
func NewDispatcher(logger contracts.Logger, filter *contracts.MIDIEventFilter) *Dispatcher {
	return &Dispatcher{logger: logger, filter: filter}
}

// Attach sets the channel events are delivered to.
func (d *Dispatcher) Attach(ch chan contracts.MIDI) {
	d.channel.Store(ch)
}

// Detach stops delivery and waits for in-flight dispatches to return.
func (d *Dispatcher) Detach() {
	d.channel.Store((chan contracts.MIDI)(nil))
	d.wg.Wait()
}

// Attached reports whether a channel is set.
func (d *Dispatcher) Attached() bool {
	ch, _ := d.channel.Load().(chan contracts.MIDI)
	return ch != nil
}

// Dispatch delivers ev if it passes the filter. It reports whether the event was delivered.
func (d *Dispatcher) Dispatch(ev contracts.MIDI) bool {
	d.wg.Add(1)
	defer d.wg.Done()

	ch, _ := d.channel.Load().(chan contracts.MIDI)
	if ch == nil {
		return false
	}
	if !d.filter.Allows(ev.Command) {
		return false
	}
	select {
	case ch <- ev:
		return true
	default:
		d.logger.Warn("MIDI event channel is full; event discarded",
			d.logger.Field().Uint8("note", ev.Note))
		return false
	}
}

// DeviceRange is the playable range assigned to listed devices.
func DeviceRange(opts *contracts.ClientOptions) contracts.NoteRange {
	if opts.DeviceRange != nil {
		return *opts.DeviceRange
	}
	return contracts.FullKeyboardRange
}

// ErrUnavailable is returned by back ends compiled for a platform they do not support.
var ErrUnavailable = errors.New("MIDI input is not available on this platform")
