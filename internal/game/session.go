package game

import (
	"sort"
	"sync"

	"github.com/FilipRuta/sight-readia/sdk/contracts"
	"github.com/FilipRuta/sight-readia/sdk/sheet"
	"github.com/google/uuid"
)

// Mode selects how upcoming notes are drawn from the score.
type Mode int

const (
	// Classic walks the score group by group.
	Classic Mode = iota
	// Training asks the notes of each measure one at a time in shuffled order.
	Training
)

func (m Mode) String() string {
	if m == Training {
		return "training"
	}
	return "classic"
}

// Options configures a Session.
type Options struct {
	Mode Mode
	// ChordsIndividually accepts the notes of a chord one by one instead of all at once.
	ChordsIndividually bool
	// WaitForRelease ignores input after a completed group until every key is released.
	WaitForRelease bool
	// Training tunes training mode. Its Filter is replaced by the session's filter.
	Training sheet.Training
}

// Result is the outcome of evaluating one set of played notes.
type Result struct {
	Expected   []int // Notes still expected before the evaluation.
	Played     []int
	Correct    []int // Played notes that were expected.
	Wrong      []int // Played notes that were not expected.
	AllCorrect bool  // The expected group was completed by this evaluation.
	Points     int   // Running score after the evaluation.
}

// Session matches played notes against a score.
type Session struct {
	ID uuid.UUID

	mu              sync.Mutex
	score           *sheet.MusicScore
	filter          sheet.PitchFilter
	opts            Options
	logger          contracts.Logger
	remaining       map[int]struct{}
	points          int
	awaitingRelease bool
}

// NewSession rewinds score and moves to its first playable group.
func NewSession(score *sheet.MusicScore, filter sheet.PitchFilter, opts Options, logger contracts.Logger) *Session {
	opts.Training.Filter = filter
	s := &Session{
		ID:     uuid.New(),
		score:  score,
		filter: filter,
		opts:   opts,
		logger: logger,
	}
	score.Reset()
	s.advance()
	logger.Info("session started",
		logger.Field().String("session", s.ID.String()),
		logger.Field().String("mode", opts.Mode.String()))
	return s
}

func (s *Session) advance() {
	if s.opts.Mode == Training {
		s.score.UpdateUpcomingTrainingNote(s.opts.Training)
	} else {
		s.score.UpdateUpcomingSymbol(s.filter)
	}
	s.remaining = make(map[int]struct{})
	if s.score.EndOfScore() {
		return
	}
	for _, n := range s.score.UpcomingNotes() {
		s.remaining[n.MidiCode()] = struct{}{}
	}
}

// Expected returns the MIDI codes still expected, ascending.
func (s *Session) Expected() []int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return sortedKeys(s.remaining)
}

// Done reports whether the score has been played through.
func (s *Session) Done() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.score.EndOfScore()
}

// Points is the number of correctly played notes so far.
func (s *Session) Points() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.points
}

// Release tells the session every key is up.
func (s *Session) Release() {
	s.mu.Lock()
	s.awaitingRelease = false
	s.mu.Unlock()
}

// Evaluate scores the currently held notes. It returns false when the input was not
// evaluated because the score is finished or a release is pending.
func (s *Session) Evaluate(played []int) (Result, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.score.EndOfScore() || s.awaitingRelease || len(played) == 0 {
		return Result{}, false
	}

	res := Result{Expected: sortedKeys(s.remaining), Played: append([]int(nil), played...)}
	for _, code := range played {
		if _, ok := s.remaining[code]; ok {
			res.Correct = append(res.Correct, code)
		} else {
			res.Wrong = append(res.Wrong, code)
		}
	}

	if s.opts.ChordsIndividually {
		for _, code := range res.Correct {
			delete(s.remaining, code)
		}
		s.points += len(res.Correct)
		res.AllCorrect = len(s.remaining) == 0
	} else {
		res.AllCorrect = len(res.Wrong) == 0 && len(res.Correct) == len(s.remaining)
		if res.AllCorrect {
			s.points += len(res.Correct)
		}
	}
	res.Points = s.points

	if res.AllCorrect {
		s.advance()
		s.awaitingRelease = s.opts.WaitForRelease
	}
	s.logger.Debug("notes evaluated",
		s.logger.Field().String("session", s.ID.String()),
		s.logger.Field().Int("correct", len(res.Correct)),
		s.logger.Field().Int("wrong", len(res.Wrong)),
		s.logger.Field().Bool("complete", res.AllCorrect))
	return res, true
}

// Bind evaluates the session whenever input settles and reports each evaluated result.
// An empty keyboard counts as a release.
func Bind(input *PlayerInput, session *Session, report func(Result)) {
	input.OnSettled(func() {
		played := input.NotesBeingPlayed()
		if len(played) == 0 {
			session.Release()
			return
		}
		if res, ok := session.Evaluate(played); ok && report != nil {
			report(res)
		}
	})
}

func sortedKeys(set map[int]struct{}) []int {
	keys := make([]int, 0, len(set))
	for k := range set {
		keys = append(keys, k)
	}
	sort.Ints(keys)
	return keys
}
