package game

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/FilipRuta/sight-readia/internal/logger"
	"github.com/FilipRuta/sight-readia/sdk/contracts"
	"github.com/stretchr/testify/assert"
)

func noteOn(code byte) contracts.MIDI {
	return contracts.MIDI{Command: byte(contracts.NoteOn), Note: code, Velocity: 90}
}

func noteOff(code byte) contracts.MIDI {
	return contracts.MIDI{Command: byte(contracts.NoteOff), Note: code}
}

func TestPlayerInputTracksHeldKeys(t *testing.T) {
	input := NewPlayerInput(contracts.PCKeyboardRange, 0, logger.NewNopLogger())
	assert.False(t, input.AnyNotesPlayed())

	input.Handle(noteOn(64))
	input.Handle(noteOn(60))
	input.Handle(contracts.MIDI{Command: 0xB0, Note: 64, Velocity: 127})
	assert.Equal(t, []int{60, 64}, input.NotesBeingPlayed())

	input.Handle(contracts.MIDI{Command: byte(contracts.NoteOn), Note: 64})
	assert.Equal(t, []int{60}, input.NotesBeingPlayed())

	input.Handle(noteOff(60))
	assert.False(t, input.AnyNotesPlayed())
	assert.Empty(t, input.NotesBeingPlayed())
}

func TestPlayerInputRange(t *testing.T) {
	input := NewPlayerInput(contracts.PCKeyboardRange, 0, logger.NewNopLogger())
	assert.True(t, input.IsInDeviceRange(60))
	assert.True(t, input.IsInDeviceRange(88))
	assert.False(t, input.IsInDeviceRange(59))
	assert.False(t, input.IsInDeviceRange(89))
}

func TestPlayerInputRun(t *testing.T) {
	t.Run("closed channel", func(t *testing.T) {
		input := NewPlayerInput(contracts.FullKeyboardRange, 0, logger.NewNopLogger())
		events := make(chan contracts.MIDI, 2)
		events <- noteOn(21)
		events <- noteOn(108)
		close(events)

		assert.NoError(t, input.Run(context.Background(), events))
		assert.Equal(t, []int{21, 108}, input.NotesBeingPlayed())
	})

	t.Run("cancelled", func(t *testing.T) {
		input := NewPlayerInput(contracts.FullKeyboardRange, 0, logger.NewNopLogger())
		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		assert.ErrorIs(t, input.Run(ctx, make(chan contracts.MIDI)), context.Canceled)
	})
}

func TestPlayerInputSettle(t *testing.T) {
	input := NewPlayerInput(contracts.FullKeyboardRange, 20*time.Millisecond, logger.NewNopLogger())
	var calls atomic.Int32
	var seen atomic.Value
	input.OnSettled(func() {
		calls.Add(1)
		seen.Store(input.NotesBeingPlayed())
	})

	input.Handle(noteOn(60))
	input.Handle(noteOn(64))
	input.Handle(noteOn(67))

	assert.Eventually(t, func() bool { return calls.Load() == 1 }, time.Second, 5*time.Millisecond)
	assert.Equal(t, []int{60, 64, 67}, seen.Load())
}
