package cmd

import (
	"fmt"

	"github.com/FilipRuta/sight-readia/internal/config"
	"github.com/FilipRuta/sight-readia/internal/logger"
	"github.com/FilipRuta/sight-readia/sdk/contracts"
	"github.com/spf13/cobra"
)

var (
	cfg *config.Config
	log contracts.Logger

	envFile    string
	logLevel   string
	logFile    string
	grandStaff bool
)

var rootCmd = &cobra.Command{
	Use:   "sight-readia",
	Short: "Sight-reading practice on MusicXML scores",
	Long: `sight-readia compiles MusicXML scores into playable note sequences and
checks what you play on a MIDI keyboard against them.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return setup(cmd)
	},
}

func init() {
	flags := rootCmd.PersistentFlags()
	flags.StringVar(&envFile, "env-file", "", "read settings from this file instead of .env")
	flags.StringVar(&logLevel, "log-level", "", "debug, info, warn or error")
	flags.StringVar(&logFile, "log-file", "", "write logs to this file")
	flags.BoolVar(&grandStaff, "grand-staff", true, "compile the bottom staff of piano scores")
}

// setup resolves configuration: flags override the environment, which overrides defaults.
func setup(cmd *cobra.Command) error {
	var files []string
	if envFile != "" {
		files = append(files, envFile)
	}
	if err := config.LoadDotEnv(files...); err != nil {
		return fmt.Errorf("load %s: %w", envFile, err)
	}
	cfg = config.Load()

	if logLevel != "" {
		level, ok := contracts.ParseLogLevel(logLevel)
		if !ok {
			return fmt.Errorf("unknown log level %q", logLevel)
		}
		cfg.LogLevel = level
	}
	if logFile != "" {
		cfg.LogFile = logFile
	}
	if cmd.Flags().Changed("grand-staff") {
		cfg.GrandStaff = grandStaff
	}

	log = logger.NewZapLogger()
	log.SetLevel(cfg.LogLevel)
	if cfg.LogFile != "" {
		log.SetDestination(contracts.FileLog, cfg.LogFile)
	}
	return nil
}

func parseOptions() []contracts.ParseOption {
	return []contracts.ParseOption{
		contracts.WithParseLogger(log),
		contracts.WithGrandStaff(cfg.GrandStaff),
	}
}

func Execute() {
	cobra.CheckErr(rootCmd.Execute())
}
