package cmd

import (
	"fmt"

	"github.com/FilipRuta/sight-readia/sdk/contracts"
	"github.com/FilipRuta/sight-readia/sdk/midi"
	"github.com/spf13/cobra"
)

var pcKeyboard bool

func init() {
	rootCmd.PersistentFlags().BoolVar(&pcKeyboard, "pc-keyboard", false, "limit devices to the computer-keyboard range C4..E6")
	rootCmd.AddCommand(devicesCmd)
}

var devicesCmd = &cobra.Command{
	Use:   "devices",
	Short: "Lists MIDI input devices",
	RunE: func(cmd *cobra.Command, args []string) error {
		client, err := midi.NewMIDIClient(clientOptions()...)
		if err != nil {
			return err
		}
		defer client.Stop()

		devices, err := client.ListDevices()
		if err != nil {
			return err
		}
		for i, d := range devices {
			fmt.Fprintf(cmd.OutOrStdout(), "%d\t%s\t%s\t%s..%s\n",
				i, d.Name, d.Manufacturer, noteName(d.Range.Low), noteName(d.Range.High))
		}
		return nil
	},
}

func clientOptions() []contracts.Option {
	opts := []contracts.Option{
		contracts.WithLogger(log),
		contracts.WithLogLevel(cfg.LogLevel),
		contracts.WithMIDIEventFilter(contracts.MIDIEventFilter{
			Commands: []contracts.MIDICommand{contracts.NoteOn, contracts.NoteOff},
		}),
	}
	if pcKeyboard {
		opts = append(opts, contracts.WithDeviceRange(contracts.PCKeyboardRange))
	}
	return opts
}

var pitchNames = [12]string{"C", "C#", "D", "D#", "E", "F", "F#", "G", "G#", "A", "A#", "B"}

// noteName spells a MIDI code with sharps, 60 being C4.
func noteName(code int) string {
	if code < 0 {
		return "?"
	}
	return fmt.Sprintf("%s%d", pitchNames[code%12], code/12-1)
}
