package sheet

// BeamGroup is a run of notes joined by a primary beam.
type BeamGroup struct {
	notes []*Note
}

// BeamSegment is one drawn beam at a given level. For a hook, Start and End are the same
// note index and Hook tells the direction.
type BeamSegment struct {
	Level int
	Start int // Index into Notes().
	End   int
	Hook  *BeamValue
}

// IsHook reports whether the segment is a single-note hook.
func (s BeamSegment) IsHook() bool { return s.Hook != nil }

func (g *BeamGroup) AddNote(note *Note) { g.notes = append(g.notes, note) }

func (g *BeamGroup) Notes() []*Note { return append([]*Note(nil), g.notes...) }

// StemDown follows the first note of the group.
func (g *BeamGroup) StemDown() bool {
	return len(g.notes) > 0 && g.notes[0].IsStemDown()
}

// MaxBeamCount is the deepest beam level used by any note of the group.
func (g *BeamGroup) MaxBeamCount() int {
	count := 0
	for _, n := range g.notes {
		count = max(count, len(n.beams))
	}
	return count
}

// Segments reconstructs the beams of every level from the per-note markers.
// An END without a matching BEGIN on the same level is ignored.
func (g *BeamGroup) Segments() []BeamSegment {
	var segments []BeamSegment
	for level := 0; level < g.MaxBeamCount(); level++ {
		start := -1
		for i, n := range g.notes {
			if level >= len(n.beams) {
				continue
			}
			switch v := n.beams[level]; v {
			case BeamBegin:
				start = i
			case BeamEnd:
				if start >= 0 {
					segments = append(segments, BeamSegment{Level: level, Start: start, End: i})
					start = -1
				}
			case BeamForwardHook, BeamBackwardHook:
				segments = append(segments, BeamSegment{Level: level, Start: i, End: i, Hook: &v})
			}
		}
	}
	return segments
}
