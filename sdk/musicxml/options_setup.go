package musicxml

import (
	"github.com/FilipRuta/sight-readia/internal/logger"
	"github.com/FilipRuta/sight-readia/sdk/contracts"
)

// applyDefaultParseOptions sets default values for ParseOptions if not explicitly provided.
//
// Returns:
//   - contracts.ParseOptions: The finalized options with defaults applied.
func applyDefaultParseOptions(opts ...contracts.ParseOption) contracts.ParseOptions {
	options := &contracts.ParseOptions{}
	for _, opt := range opts {
		opt(options)
	}

	if options.Logger == nil {
		options.Logger = logger.NewZapLogger()
		options.Logger.SetLevel(options.LogLevel) // InfoLevel unless set
	} else if options.LogLevel != contracts.InfoLevel {
		options.Logger.SetLevel(options.LogLevel)
	}
	if options.ParseGrandStaff == nil {
		grand := true
		options.ParseGrandStaff = &grand
	}
	return *options
}
