package game

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/FilipRuta/sight-readia/sdk/contracts"
	"github.com/bep/debounce"
)

// PlayerInput tracks the keys currently held on the input device. Key changes are
// reported through the settle callback once no further change arrives within the
// settle window, so the notes of a chord struck by hand are seen together.
type PlayerInput struct {
	mu        sync.RWMutex
	held      map[int]struct{}
	noteRange contracts.NoteRange
	logger    contracts.Logger

	settle    func(f func())
	onSettled func()
}

// NewPlayerInput creates an input tracker for a device with the given playable range.
// A zero settle window reports every key change immediately.
func NewPlayerInput(noteRange contracts.NoteRange, settle time.Duration, logger contracts.Logger) *PlayerInput {
	p := &PlayerInput{
		held:      make(map[int]struct{}),
		noteRange: noteRange,
		logger:    logger,
	}
	if settle > 0 {
		p.settle = debounce.New(settle)
	} else {
		p.settle = func(f func()) { f() }
	}
	return p
}

// OnSettled registers the callback run after key changes settle.
func (p *PlayerInput) OnSettled(f func()) {
	p.mu.Lock()
	p.onSettled = f
	p.mu.Unlock()
}

// Handle applies one MIDI event. Events other than note on/off are ignored.
func (p *PlayerInput) Handle(ev contracts.MIDI) {
	code := int(ev.Note)
	switch {
	case ev.IsNoteOn():
		p.mu.Lock()
		p.held[code] = struct{}{}
		p.mu.Unlock()
		p.logger.Debug("key pressed", p.logger.Field().Int("note", code), p.logger.Field().Uint8("velocity", ev.Velocity))
	case ev.IsNoteOff():
		p.mu.Lock()
		delete(p.held, code)
		p.mu.Unlock()
		p.logger.Debug("key released", p.logger.Field().Int("note", code))
	default:
		return
	}

	p.mu.RLock()
	cb := p.onSettled
	p.mu.RUnlock()
	if cb != nil {
		p.settle(cb)
	}
}

// Run consumes events until ctx is done or events is closed.
func (p *PlayerInput) Run(ctx context.Context, events <-chan contracts.MIDI) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case ev, ok := <-events:
			if !ok {
				return nil
			}
			p.Handle(ev)
		}
	}
}

// NotesBeingPlayed returns the held MIDI codes in ascending order.
func (p *PlayerInput) NotesBeingPlayed() []int {
	p.mu.RLock()
	defer p.mu.RUnlock()

	notes := make([]int, 0, len(p.held))
	for code := range p.held {
		notes = append(notes, code)
	}
	sort.Ints(notes)
	return notes
}

// AnyNotesPlayed reports whether at least one key is held.
func (p *PlayerInput) AnyNotesPlayed() bool {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return len(p.held) > 0
}

// IsInDeviceRange reports whether midiCode is playable on the device.
func (p *PlayerInput) IsInDeviceRange(midiCode int) bool {
	return p.noteRange.IsInDeviceRange(midiCode)
}
