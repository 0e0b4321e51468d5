package game

import (
	"math/rand/v2"
	"testing"

	"github.com/FilipRuta/sight-readia/internal/logger"
	"github.com/FilipRuta/sight-readia/sdk/contracts"
	"github.com/FilipRuta/sight-readia/sdk/sheet"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSessionClassic(t *testing.T) {
	s := NewSession(practiceScore(), contracts.PCKeyboardRange, Options{}, logger.NewNopLogger())
	assert.NotEqual(t, uuid.Nil, s.ID)
	assert.Equal(t, []int{60}, s.Expected())

	res, ok := s.Evaluate([]int{61})
	require.True(t, ok)
	assert.False(t, res.AllCorrect)
	assert.Equal(t, []int{61}, res.Wrong)
	assert.Equal(t, 0, res.Points)

	res, _ = s.Evaluate([]int{60})
	assert.True(t, res.AllCorrect)
	assert.Equal(t, 1, res.Points)
	assert.Equal(t, []int{64, 67}, s.Expected())

	res, _ = s.Evaluate([]int{64})
	assert.False(t, res.AllCorrect, "a partial chord is not accepted")
	assert.Equal(t, []int{64}, res.Correct)

	res, _ = s.Evaluate([]int{64, 67})
	assert.True(t, res.AllCorrect)
	assert.Equal(t, 3, res.Points)

	// The rest is skipped and C2 lies outside the keyboard range.
	assert.Equal(t, []int{81}, s.Expected())
	_, _ = s.Evaluate([]int{81})
	assert.Equal(t, []int{62}, s.Expected())
	res, _ = s.Evaluate([]int{62})
	assert.True(t, res.AllCorrect)

	assert.True(t, s.Done())
	assert.Equal(t, 5, s.Points())
	_, ok = s.Evaluate([]int{62})
	assert.False(t, ok)
}

func TestSessionWaitForRelease(t *testing.T) {
	s := NewSession(practiceScore(), contracts.PCKeyboardRange, Options{WaitForRelease: true}, logger.NewNopLogger())

	res, ok := s.Evaluate([]int{60})
	require.True(t, ok)
	require.True(t, res.AllCorrect)

	_, ok = s.Evaluate([]int{60, 64, 67})
	assert.False(t, ok, "keys still held from the previous group")

	s.Release()
	res, ok = s.Evaluate([]int{64, 67})
	assert.True(t, ok)
	assert.True(t, res.AllCorrect)
}

func TestSessionChordsIndividually(t *testing.T) {
	s := NewSession(practiceScore(), contracts.PCKeyboardRange, Options{ChordsIndividually: true}, logger.NewNopLogger())
	_, _ = s.Evaluate([]int{60})

	res, _ := s.Evaluate([]int{67})
	assert.False(t, res.AllCorrect)
	assert.Equal(t, []int{67}, res.Correct)
	assert.Equal(t, []int{64}, s.Expected())

	res, _ = s.Evaluate([]int{64})
	assert.True(t, res.AllCorrect)
	assert.Equal(t, 3, res.Points)
	assert.Equal(t, []int{81}, s.Expected())
}

func TestSessionTraining(t *testing.T) {
	opts := Options{
		Mode:     Training,
		Training: sheet.Training{Repetitions: 2, Rand: rand.New(rand.NewPCG(7, 11))},
	}
	s := NewSession(practiceScore(), contracts.PCKeyboardRange, opts, logger.NewNopLogger())

	counts := map[int]int{}
	for !s.Done() {
		expected := s.Expected()
		require.Len(t, expected, 1)
		counts[expected[0]]++

		res, ok := s.Evaluate(expected)
		require.True(t, ok)
		require.True(t, res.AllCorrect)
	}

	assert.Equal(t, map[int]int{60: 2, 64: 2, 67: 2, 81: 2, 62: 2}, counts)
	assert.Equal(t, 10, s.Points())
}

func TestBind(t *testing.T) {
	input := NewPlayerInput(contracts.PCKeyboardRange, 0, logger.NewNopLogger())
	s := NewSession(practiceScore(), input, Options{WaitForRelease: true}, logger.NewNopLogger())

	var results []Result
	Bind(input, s, func(r Result) { results = append(results, r) })

	input.Handle(noteOn(60))
	input.Handle(noteOn(64)) // ignored until release
	input.Handle(noteOff(64))
	input.Handle(noteOff(60))
	input.Handle(noteOn(64))
	input.Handle(noteOn(67))

	require.Len(t, results, 3)
	assert.True(t, results[0].AllCorrect)
	assert.False(t, results[1].AllCorrect)
	assert.True(t, results[2].AllCorrect)
	assert.Equal(t, []int{81}, s.Expected())
}
