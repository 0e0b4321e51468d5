package parser

import (
	"fmt"

	"github.com/FilipRuta/sight-readia/internal/logger"
	"github.com/FilipRuta/sight-readia/internal/mxl"
	"github.com/FilipRuta/sight-readia/sdk/contracts"
	"github.com/FilipRuta/sight-readia/sdk/sheet"
)

// Parser compiles MusicXML documents into scores. It holds no state between Parse calls.
type Parser struct {
	log        contracts.Logger
	grandStaff bool
}

// New creates a Parser from already defaulted options.
func New(opts contracts.ParseOptions) *Parser {
	log := opts.Logger
	if log == nil {
		log = logger.NewNopLogger()
	}
	return &Parser{log: log, grandStaff: opts.GrandStaff()}
}

// Parse compiles document. Any format error aborts the parse and no score is returned.
func (p *Parser) Parse(document string) (*sheet.MusicScore, error) {
	doc, err := mxl.Load(document)
	if err != nil {
		return nil, err
	}

	divisions := p.positiveInt(doc.Divisions, "divisions", true)
	staves := p.positiveInt(doc.Staves, "staves", false)
	if parts := doc.PartCount(); parts > 1 {
		p.log.Warn("only the first part is compiled", p.log.Field().Int("parts", parts))
	}

	var (
		measures []*sheet.Measure
		prevHead *sheet.StaffHead
	)
	measureDivisions := divisions
	for _, m := range doc.Measures() {
		probe := m.HeadProbe()
		if d, ok := parseOptInt(probe.Divisions); ok && d > 0 {
			measureDivisions = d
		}

		head, err := ResolveStaffHead(prevHead, probe, p.grandStaff)
		if err != nil {
			return nil, fmt.Errorf("measure %d: %w", m.Index, err)
		}
		if head == nil {
			head = prevHead
		}

		compiled, err := CompileMeasure(m.Records(), MeasureContext{
			Index:      m.Index,
			Divisions:  measureDivisions,
			GrandStaff: p.grandStaff,
			Logger:     p.log,
		})
		if err != nil {
			return nil, fmt.Errorf("measure %d: %w", m.Index, err)
		}

		measures = append(measures, sheet.NewMeasure(compiled.Symbols, compiled.BeamGroups, head, prevHead))
		prevHead = head
	}

	p.log.Debug("score compiled",
		p.log.Field().Int("measures", len(measures)),
		p.log.Field().Int("divisions", divisions),
		p.log.Field().Int("staves", staves))
	return sheet.NewMusicScore(measures, staves, divisions), nil
}

// positiveInt reads a document-level count, defaulting to 1. Unreadable values are logged, absent
// ones only when warnMissing is set.
func (p *Parser) positiveInt(lookup func() (string, bool), name string, warnMissing bool) int {
	raw, ok := lookup()
	if !ok {
		if warnMissing {
			p.log.Warn("missing " + name + ", using 1")
		}
		return 1
	}
	v, ok := parseOptInt(&raw)
	if !ok || v <= 0 {
		p.log.Warn("unreadable "+name+", using 1", p.log.Field().String("value", raw))
		return 1
	}
	return v
}
