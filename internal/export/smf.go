// Package export renders compiled scores as Standard MIDI Files.
package export

import (
	"errors"
	"fmt"
	"io"
	"os"
	"sort"

	"github.com/FilipRuta/sight-readia/sdk/sheet"
	"gitlab.com/gomidi/midi/v2"
	"gitlab.com/gomidi/midi/v2/smf"
)

// DefaultTempo is the tempo written when Options.Tempo is not set, in beats per minute.
const DefaultTempo = 120

// ErrEmptyScore is returned for a score without measures.
var ErrEmptyScore = errors.New("score has no measures")

// Options tunes the exported file.
type Options struct {
	Tempo    float64 // Beats per minute.
	Velocity uint8   // Note-on velocity, 80 when zero.
}

type noteEvent struct {
	tick uint32
	on   bool
	key  uint8
}

// WriteSMF writes score as a format 1 file: a conductor track with tempo and meter changes
// followed by one track per staff. Staff n plays on MIDI channel n-1. Ticks per quarter note
// equal the score's divisions.
func WriteSMF(w io.Writer, score *sheet.MusicScore, opts Options) error {
	measures := score.Measures()
	if len(measures) == 0 {
		return ErrEmptyScore
	}
	if opts.Tempo <= 0 {
		opts.Tempo = DefaultTempo
	}
	if opts.Velocity == 0 {
		opts.Velocity = 80
	}
	divisions := score.Divisions()

	var conductor smf.Track
	conductor.Add(0, smf.MetaTrackSequenceName("conductor"))
	conductor.Add(0, smf.MetaTempo(opts.Tempo))

	staffEvents := make([][]noteEvent, score.Staves())
	var measureStart, lastMeter uint32
	for _, m := range measures {
		head := m.StaffHead()
		if head != nil && head.DrawTime(m.PrevStaffHead()) {
			ts := head.TimeSignature()
			conductor.Add(measureStart-lastMeter, smf.MetaMeter(uint8(ts.Beats), uint8(ts.BeatType)))
			lastMeter = measureStart
		}

		top, bottom := m.GetAllSymbols()
		var end int
		for _, sym := range append(top, bottom...) {
			end = max(end, sym.StartPosition()+sym.Duration())
			note, ok := sym.(*sheet.Note)
			if !ok || note.Staff() > len(staffEvents) {
				continue
			}
			start := measureStart + uint32(note.StartPosition())
			stop := start + uint32(note.Duration())
			for _, n := range note.GetChordNotes() {
				key := uint8(n.MidiCode())
				staffEvents[note.Staff()-1] = append(staffEvents[note.Staff()-1],
					noteEvent{tick: start, on: true, key: key},
					noteEvent{tick: stop, key: key})
			}
		}
		if end == 0 && head != nil {
			end = head.TimeSignature().MeasureTicks(divisions)
		}
		measureStart += uint32(end)
	}
	conductor.Close(measureStart - lastMeter)

	file := smf.New()
	file.TimeFormat = smf.MetricTicks(divisions)
	if err := file.Add(conductor); err != nil {
		return fmt.Errorf("add conductor track: %w", err)
	}
	for i, events := range staffEvents {
		if err := file.Add(staffTrack(i, events, opts.Velocity)); err != nil {
			return fmt.Errorf("add staff %d track: %w", i+1, err)
		}
	}

	if _, err := file.WriteTo(w); err != nil {
		return fmt.Errorf("write midi file: %w", err)
	}
	return nil
}

// staffTrack orders events by tick, releases before presses at the same tick, and encodes deltas.
func staffTrack(index int, events []noteEvent, velocity uint8) smf.Track {
	sort.SliceStable(events, func(i, j int) bool {
		if events[i].tick != events[j].tick {
			return events[i].tick < events[j].tick
		}
		return !events[i].on && events[j].on
	})

	var tr smf.Track
	tr.Add(0, smf.MetaTrackSequenceName(fmt.Sprintf("staff %d", index+1)))
	channel := uint8(index)
	var last uint32
	for _, ev := range events {
		msg := midi.NoteOff(channel, ev.key)
		if ev.on {
			msg = midi.NoteOn(channel, ev.key, velocity)
		}
		tr.Add(ev.tick-last, msg)
		last = ev.tick
	}
	tr.Close(0)
	return tr
}

// WriteFile exports score to path.
func WriteFile(path string, score *sheet.MusicScore, opts Options) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := f.Close(); err == nil {
			err = cerr
		}
	}()
	return WriteSMF(f, score, opts)
}
