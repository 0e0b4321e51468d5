package cmd

import (
	"encoding/json"

	"github.com/FilipRuta/sight-readia/internal/summary"
	"github.com/FilipRuta/sight-readia/sdk/musicxml"
	"github.com/spf13/cobra"
)

var inspectCompact bool

func init() {
	inspectCmd.Flags().BoolVar(&inspectCompact, "compact", false, "print JSON on one line")
	rootCmd.AddCommand(inspectCmd)
}

var inspectCmd = &cobra.Command{
	Use:   "inspect <score>",
	Short: "Prints a summary of a compiled score",
	Long:  `Compiles a .musicxml, .xml or .mxl score and prints its measures, staff changes and note counts as JSON.`,
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		score, err := musicxml.ParseFile(args[0], parseOptions()...)
		if err != nil {
			return err
		}

		enc := json.NewEncoder(cmd.OutOrStdout())
		if !inspectCompact {
			enc.SetIndent("", "  ")
		}
		return enc.Encode(summary.FromScore(score))
	},
}
