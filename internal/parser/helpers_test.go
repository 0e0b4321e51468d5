package parser

import (
	"fmt"
	"strings"

	"github.com/FilipRuta/sight-readia/internal/logger"
	"github.com/FilipRuta/sight-readia/internal/mxl"
	"github.com/FilipRuta/sight-readia/sdk/contracts"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func observed() (contracts.Logger, *observer.ObservedLogs) {
	core, logs := observer.New(zapcore.WarnLevel)
	return logger.Wrap(zap.New(core)), logs
}

func str(s string) *string { return &s }

func pitched(step, octave string, duration int) mxl.NoteRecord {
	return mxl.NoteRecord{Step: step, Octave: octave, Duration: str(fmt.Sprint(duration)), Type: str("quarter")}
}

func score(measures ...string) string {
	return `<?xml version="1.0" encoding="UTF-8"?>
<!DOCTYPE score-partwise PUBLIC "-//Recordare//DTD MusicXML 4.0 Partwise//EN" "http://www.musicxml.org/dtds/partwise.dtd">
<score-partwise version="4.0"><part-list><score-part id="P1"><part-name>Piano</part-name></score-part></part-list>
<part id="P1">` + strings.Join(measures, "") + `</part></score-partwise>`
}

func measure(number int, body ...string) string {
	return fmt.Sprintf(`<measure number="%d">%s</measure>`, number, strings.Join(body, ""))
}

func attributes(divisions, fifths int, grand bool) string {
	staves, bass := "", ""
	if grand {
		staves = "<staves>2</staves>"
		bass = `<clef number="2"><sign>F</sign><line>4</line></clef>`
	}
	return fmt.Sprintf(`<attributes><divisions>%d</divisions><key><fifths>%d</fifths></key>`+
		`<time><beats>4</beats><beat-type>4</beat-type></time>%s<clef number="1"><sign>G</sign><line>2</line></clef>%s</attributes>`,
		divisions, fifths, staves, bass)
}

func xmlNote(step string, octave, duration, staff int, extra ...string) string {
	return fmt.Sprintf(`<note><pitch><step>%s</step><octave>%d</octave></pitch><duration>%d</duration>%s<staff>%d</staff></note>`,
		step, octave, duration, strings.Join(extra, ""), staff)
}
