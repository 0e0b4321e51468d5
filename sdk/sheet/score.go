package sheet

import "math/rand/v2"

// DefaultTrainingRepetitions is how many times each note of a measure is asked in training mode.
const DefaultTrainingRepetitions = 2

// MusicScore is a compiled score with a single forward cursor. It is meant for one consumer at a
// time; concurrent traversal must be synchronized by the caller.
type MusicScore struct {
	measures  []*Measure
	staves    int
	divisions int

	current        *Measure
	nextMeasureIdx int
	endOfScore     bool
	upcomingNotes  []*Note
	trainingStack  []*Note
}

// NewMusicScore wraps compiled measures. staves is the staff count declared by the document and
// divisions the ticks per quarter note of its first measure.
func NewMusicScore(measures []*Measure, staves, divisions int) *MusicScore {
	return &MusicScore{
		measures:  measures,
		staves:    max(staves, 1),
		divisions: max(divisions, 1),
	}
}

func (s *MusicScore) Measures() []*Measure { return append([]*Measure(nil), s.measures...) }

func (s *MusicScore) Staves() int { return s.staves }

func (s *MusicScore) Divisions() int { return s.divisions }

// IsGrandStaff reports whether the document declares more than one staff.
func (s *MusicScore) IsGrandStaff() bool { return s.staves > 1 }

// EndOfScore reports whether the cursor moved past the last measure.
func (s *MusicScore) EndOfScore() bool { return s.endOfScore }

// CurrentMeasure returns the measure under the cursor, nil before the first advance.
func (s *MusicScore) CurrentMeasure() *Measure { return s.current }

// UpcomingNotes are the notes the player is expected to play next.
func (s *MusicScore) UpcomingNotes() []*Note { return append([]*Note(nil), s.upcomingNotes...) }

// Reset rewinds the score to its first measure.
func (s *MusicScore) Reset() {
	for _, m := range s.measures {
		m.Rewind()
	}
	s.current = nil
	s.nextMeasureIdx = 0
	s.endOfScore = false
	s.upcomingNotes = nil
	s.trainingStack = nil
}

func (s *MusicScore) advanceToNextMeasure() {
	if s.nextMeasureIdx < len(s.measures) {
		s.current = s.measures[s.nextMeasureIdx]
		s.nextMeasureIdx++
		return
	}
	s.current = nil
	s.upcomingNotes = nil
	s.endOfScore = true
}

// GetNextSymbols returns the next group of simultaneous symbols, moving to the following measure
// whenever the current one is exhausted. It returns nil and flags end of score when no measure is left.
func (s *MusicScore) GetNextSymbols() []Symbol {
	for !s.endOfScore {
		if s.current != nil {
			if next := s.current.GetNextSymbols(); next != nil {
				return next
			}
		}
		s.advanceToNextMeasure()
	}
	return nil
}

// UpdateUpcomingSymbol moves to the next group containing at least one playable note and stores its
// notes (chords split into members) in UpcomingNotes. Groups of rests or out-of-range notes are skipped.
func (s *MusicScore) UpdateUpcomingSymbol(filter PitchFilter) {
	for {
		group := s.GetNextSymbols()
		if group == nil {
			return
		}
		var notes []*Note
		for _, sym := range group {
			if note, ok := sym.(*Note); ok {
				notes = append(notes, note.GetNotesInRange(filter)...)
			}
		}
		if len(notes) > 0 {
			s.upcomingNotes = notes
			return
		}
	}
}

// Training configures training mode.
type Training struct {
	Repetitions int         // Times each note is asked; DefaultTrainingRepetitions when zero.
	Filter      PitchFilter // Playable range of the input device; nil accepts every note.
	Rand        *rand.Rand  // Shuffle source; the global source when nil.
}

// PrepareMeasureTraining builds the shuffled note stack of the current measure: every note and chord
// member in range, repeated.
func (s *MusicScore) PrepareMeasureTraining(t Training) {
	s.trainingStack = nil
	if s.endOfScore || s.current == nil {
		return
	}
	repetitions := t.Repetitions
	if repetitions <= 0 {
		repetitions = DefaultTrainingRepetitions
	}

	top, bottom := s.current.GetAllSymbols()
	for _, sym := range append(top, bottom...) {
		note, ok := sym.(*Note)
		if !ok {
			continue
		}
		for _, n := range note.GetNotesInRange(t.Filter) {
			for range repetitions {
				s.trainingStack = append(s.trainingStack, n)
			}
		}
	}

	swap := func(i, j int) { s.trainingStack[i], s.trainingStack[j] = s.trainingStack[j], s.trainingStack[i] }
	if t.Rand != nil {
		t.Rand.Shuffle(len(s.trainingStack), swap)
	} else {
		rand.Shuffle(len(s.trainingStack), swap)
	}
}

// UpdateUpcomingTrainingNote pops the next training note into UpcomingNotes, preparing following
// measures as stacks run empty.
func (s *MusicScore) UpdateUpcomingTrainingNote(t Training) {
	for !s.endOfScore {
		if len(s.trainingStack) == 0 {
			s.advanceToNextMeasure()
			s.PrepareMeasureTraining(t)
			continue
		}
		last := len(s.trainingStack) - 1
		s.upcomingNotes = []*Note{s.trainingStack[last]}
		s.trainingStack = s.trainingStack[:last]
		return
	}
}

// TrainingRemaining is the number of notes left on the current training stack.
func (s *MusicScore) TrainingRemaining() int { return len(s.trainingStack) }
