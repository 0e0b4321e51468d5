package musicxml

import (
	"bytes"

	"github.com/FilipRuta/sight-readia/internal/mxl"
	"github.com/FilipRuta/sight-readia/internal/parser"
	"github.com/FilipRuta/sight-readia/sdk/contracts"
	"github.com/FilipRuta/sight-readia/sdk/sheet"
)

// Parse compiles a MusicXML document into a score.
//
// opts ...contracts.ParseOption: A variadic list of option functions to customize parsing.
//
// Returns:
//   - *sheet.MusicScore: The compiled score, ready for traversal.
//   - error: contracts.ErrNilDocument for an empty document, or an error matching
//     contracts.ErrFormat when the document cannot be compiled. No partial score is returned.
func Parse(document string, opts ...contracts.ParseOption) (*sheet.MusicScore, error) {
	options := applyDefaultParseOptions(opts...)
	return parser.New(options).Parse(document)
}

// ParseFile reads a .musicxml, .xml or compressed .mxl file and compiles it.
//
// Returns:
//   - *sheet.MusicScore: The compiled score.
//   - error: An I/O error, or any error Parse returns.
func ParseFile(filename string, opts ...contracts.ParseOption) (*sheet.MusicScore, error) {
	document, err := mxl.ReadFile(filename)
	if err != nil {
		return nil, err
	}
	return Parse(document, opts...)
}

// ParseData compiles a document held in memory. Data starting with a zip signature is read
// as compressed MusicXML.
//
// Returns:
//   - *sheet.MusicScore: The compiled score.
//   - error: An archive error, or any error Parse returns.
func ParseData(data []byte, opts ...contracts.ParseOption) (*sheet.MusicScore, error) {
	if !bytes.HasPrefix(data, zipSignature) {
		return Parse(string(data), opts...)
	}
	document, err := mxl.ReadCompressed(data)
	if err != nil {
		return nil, err
	}
	return Parse(document, opts...)
}

var zipSignature = []byte("PK\x03\x04")
