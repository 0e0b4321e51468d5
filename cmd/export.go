package cmd

import (
	"fmt"

	"github.com/FilipRuta/sight-readia/internal/export"
	"github.com/FilipRuta/sight-readia/sdk/musicxml"
	"github.com/google/uuid"
	"github.com/spf13/cobra"
)

var (
	exportOutput string
	exportTempo  float64
)

func init() {
	exportCmd.Flags().StringVarP(&exportOutput, "output", "o", "", "output file, a random .mid name when empty")
	exportCmd.Flags().Float64Var(&exportTempo, "tempo", 0, "tempo in beats per minute")
	rootCmd.AddCommand(exportCmd)
}

var exportCmd = &cobra.Command{
	Use:   "export <score>",
	Short: "Writes a score as a Standard MIDI File",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		score, err := musicxml.ParseFile(args[0], parseOptions()...)
		if err != nil {
			return err
		}

		out := exportOutput
		if out == "" {
			out = uuid.New().String() + ".mid"
		}
		tempo := cfg.ExportTempo
		if exportTempo > 0 {
			tempo = exportTempo
		}

		if err := export.WriteFile(out, score, export.Options{Tempo: tempo}); err != nil {
			return err
		}
		log.Info("score exported", log.Field().String("file", out), log.Field().Float64("tempo", tempo))
		fmt.Fprintln(cmd.OutOrStdout(), out)
		return nil
	},
}
