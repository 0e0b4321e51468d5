package cmd

import (
	"context"
	"fmt"
	"io"
	"os/signal"
	"strings"
	"sync"
	"syscall"
	"time"

	"github.com/FilipRuta/sight-readia/internal/game"
	"github.com/FilipRuta/sight-readia/sdk/contracts"
	"github.com/FilipRuta/sight-readia/sdk/midi"
	"github.com/FilipRuta/sight-readia/sdk/musicxml"
	"github.com/FilipRuta/sight-readia/sdk/sheet"
	"github.com/spf13/cobra"
)

var (
	playDevice             int
	playTraining           bool
	playRepetitions        int
	playChordsIndividually bool
	playWaitForRelease     bool
	playSettle             time.Duration
)

func init() {
	flags := playCmd.Flags()
	flags.IntVar(&playDevice, "device", 0, "input device index, see the devices command")
	flags.BoolVar(&playTraining, "training", false, "ask each measure's notes one by one in random order")
	flags.IntVar(&playRepetitions, "repetitions", 0, "times each note is asked in training mode")
	flags.BoolVar(&playChordsIndividually, "chords-individually", false, "accept chord notes one at a time")
	flags.BoolVar(&playWaitForRelease, "wait-for-release", true, "require all keys up before the next group")
	flags.DurationVar(&playSettle, "settle", 0, "time to wait for the rest of a chord")
	rootCmd.AddCommand(playCmd)
}

var playCmd = &cobra.Command{
	Use:   "play <score>",
	Short: "Plays through a score on a MIDI keyboard",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		score, err := musicxml.ParseFile(args[0], parseOptions()...)
		if err != nil {
			return err
		}

		client, device, err := midi.OpenDevice(playDevice, clientOptions()...)
		if err != nil {
			return err
		}
		defer client.Stop()

		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()
		log.Info("device opened", log.Field().String("device", device.Name))
		return play(ctx, cmd.OutOrStdout(), score, client, device.Range, playSettings(cmd))
	},
}

type settings struct {
	options game.Options
	settle  time.Duration
}

func playSettings(cmd *cobra.Command) settings {
	s := settings{
		options: game.Options{
			ChordsIndividually: cfg.ChordsIndividually,
			WaitForRelease:     cfg.WaitForRelease,
			Training:           sheet.Training{Repetitions: cfg.TrainingRepetitions},
		},
		settle: cfg.ChordSettle,
	}
	if playTraining {
		s.options.Mode = game.Training
	}
	if playRepetitions > 0 {
		s.options.Training.Repetitions = playRepetitions
	}
	flags := cmd.Flags()
	if flags.Changed("chords-individually") {
		s.options.ChordsIndividually = playChordsIndividually
	}
	if flags.Changed("wait-for-release") {
		s.options.WaitForRelease = playWaitForRelease
	}
	if flags.Changed("settle") {
		s.settle = playSettle
	}
	return s
}

// play runs a session until the score is finished or ctx is cancelled.
func play(ctx context.Context, out io.Writer, score *sheet.MusicScore, source contracts.ClientMIDI, noteRange contracts.NoteRange, s settings) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	input := game.NewPlayerInput(noteRange, s.settle, log)
	session := game.NewSession(score, input, s.options, log)
	if session.Done() {
		fmt.Fprintln(out, "nothing to play in this range")
		return nil
	}

	var (
		mu       sync.Mutex
		finished = make(chan struct{})
		once     sync.Once
	)
	fmt.Fprintf(out, "play %s\n", spell(session.Expected()))
	game.Bind(input, session, func(r game.Result) {
		mu.Lock()
		defer mu.Unlock()
		switch {
		case session.Done():
			fmt.Fprintf(out, "done, %d points\n", r.Points)
			once.Do(func() { close(finished) })
		case r.AllCorrect:
			fmt.Fprintf(out, "ok (%d) next %s\n", r.Points, spell(session.Expected()))
		case len(r.Wrong) > 0:
			fmt.Fprintf(out, "wrong %s, expected %s\n", spell(r.Wrong), spell(r.Expected))
		}
	})

	events := make(chan contracts.MIDI, 64)
	source.StartCapture(events)
	errs := make(chan error, 1)
	go func() { errs <- input.Run(ctx, events) }()

	select {
	case <-finished:
		return nil
	case <-ctx.Done():
		fmt.Fprintf(out, "stopped, %d points\n", session.Points())
		return nil
	case err := <-errs:
		return err
	}
}

func spell(codes []int) string {
	names := make([]string, len(codes))
	for i, c := range codes {
		names[i] = noteName(c)
	}
	return strings.Join(names, " ")
}
