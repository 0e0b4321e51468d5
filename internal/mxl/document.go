package mxl

import (
	"fmt"
	"strings"

	"github.com/FilipRuta/sight-readia/sdk/contracts"
	xmldom "github.com/subchen/go-xmldom"
)

// Document is a parsed MusicXML score.
type Document struct {
	root *xmldom.Node
}

// Measure is one <measure> element of the compiled part.
type Measure struct {
	Index  int // 1-based position in the part.
	Number string
	node   *xmldom.Node
}

// Load parses a MusicXML document. Documents declaring a non UTF-8 encoding are transcoded first.
func Load(doc string) (*Document, error) {
	if strings.TrimSpace(doc) == "" {
		return nil, contracts.ErrNilDocument
	}
	utf8Doc, err := toUTF8(doc)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", contracts.ErrMalformedDocument, err)
	}
	parsed, err := xmldom.ParseXML(utf8Doc)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", contracts.ErrMalformedDocument, err)
	}
	if parsed.Root == nil {
		return nil, contracts.ErrMalformedDocument
	}
	return &Document{root: parsed.Root}, nil
}

// Divisions returns the text of the first <divisions> element of the document.
func (d *Document) Divisions() (string, bool) {
	return firstDescendantText(d.root, "divisions")
}

// Staves returns the text of the first <staves> element of the document.
func (d *Document) Staves() (string, bool) {
	return firstDescendantText(d.root, "staves")
}

// PartCount is the number of <part> elements directly under the root.
func (d *Document) PartCount() int {
	return len(children(d.root, "part"))
}

// Measures returns the measures of the first part in document order. A document without
// parts yields every <measure> element.
func (d *Document) Measures() []*Measure {
	var nodes []*xmldom.Node
	if parts := children(d.root, "part"); len(parts) > 0 {
		nodes = children(parts[0], "measure")
	} else {
		nodes = descendants(d.root, "measure")
	}

	measures := make([]*Measure, len(nodes))
	for i, n := range nodes {
		measures[i] = &Measure{Index: i + 1, Number: attr(n, "number"), node: n}
	}
	return measures
}

// Records extracts the note, forward and backup children of the measure in document order.
func (m *Measure) Records() []Record {
	var records []Record
	for _, child := range m.node.Children {
		switch child.Name {
		case "note":
			records = append(records, noteRecord(child))
		case "forward":
			records = append(records, ForwardRecord{Duration: childText(child, "duration")})
		case "backup":
			records = append(records, BackupRecord{Duration: childText(child, "duration")})
		}
	}
	return records
}

// HeadProbe collects the key, time, divisions and clef fields found anywhere in the measure.
// Only the first occurrence of each scalar field counts.
func (m *Measure) HeadProbe() HeadProbe {
	var p HeadProbe
	if v, ok := firstDescendantText(m.node, "fifths"); ok {
		p.Fifths = &v
	}
	if v, ok := firstDescendantText(m.node, "beats"); ok {
		p.Beats = &v
	}
	if v, ok := firstDescendantText(m.node, "beat-type"); ok {
		p.BeatType = &v
	}
	if v, ok := firstDescendantText(m.node, "divisions"); ok {
		p.Divisions = &v
	}
	for _, clef := range descendants(m.node, "clef") {
		c := ClefElement{Number: optAttr(clef, "number")}
		c.Sign, _ = firstDescendantText(clef, "sign")
		if line, ok := firstDescendantText(clef, "line"); ok {
			c.Line = &line
		}
		p.Clefs = append(p.Clefs, c)
	}
	return p
}

func noteRecord(n *xmldom.Node) NoteRecord {
	r := NoteRecord{
		Duration:   childText(n, "duration"),
		Type:       childText(n, "type"),
		Accidental: childText(n, "accidental"),
		Staff:      childText(n, "staff"),
		Dots:       len(children(n, "dot")),
		Chord:      child(n, "chord") != nil,
		Grace:      child(n, "grace") != nil,
	}
	if rest := child(n, "rest"); rest != nil {
		r.Rest = true
		r.MeasureRest = attr(rest, "measure") == "yes"
	}
	if pitch := child(n, "pitch"); pitch != nil {
		if step := childText(pitch, "step"); step != nil {
			r.Step = *step
		}
		if octave := childText(pitch, "octave"); octave != nil {
			r.Octave = *octave
		}
	}
	if stem := childText(n, "stem"); stem != nil {
		r.StemDown = *stem == "down"
	}
	for _, beam := range children(n, "beam") {
		r.Beams = append(r.Beams, BeamElement{Number: optAttr(beam, "number"), Value: strings.TrimSpace(beam.Text)})
	}
	return r
}

func child(n *xmldom.Node, name string) *xmldom.Node {
	for _, c := range n.Children {
		if c.Name == name {
			return c
		}
	}
	return nil
}

func children(n *xmldom.Node, name string) []*xmldom.Node {
	var out []*xmldom.Node
	for _, c := range n.Children {
		if c.Name == name {
			out = append(out, c)
		}
	}
	return out
}

func childText(n *xmldom.Node, name string) *string {
	c := child(n, name)
	if c == nil {
		return nil
	}
	text := strings.TrimSpace(c.Text)
	return &text
}

// descendants returns every element named name below n in document order.
func descendants(n *xmldom.Node, name string) []*xmldom.Node {
	var out []*xmldom.Node
	for _, c := range n.Children {
		if c.Name == name {
			out = append(out, c)
		}
		out = append(out, descendants(c, name)...)
	}
	return out
}

func firstDescendantText(n *xmldom.Node, name string) (string, bool) {
	for _, c := range n.Children {
		if c.Name == name {
			return strings.TrimSpace(c.Text), true
		}
		if text, ok := firstDescendantText(c, name); ok {
			return text, true
		}
	}
	return "", false
}

func optAttr(n *xmldom.Node, name string) *string {
	for _, a := range n.Attributes {
		if a.Name == name {
			v := strings.TrimSpace(a.Value)
			return &v
		}
	}
	return nil
}

func attr(n *xmldom.Node, name string) string {
	if v := optAttr(n, name); v != nil {
		return *v
	}
	return ""
}
