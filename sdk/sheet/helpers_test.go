package sheet

func note(start, duration, staff int, step NoteStep, octave int, acc *Accidental) *Note {
	return NewNote(
		SymbolInfo{StartPosition: start, Duration: duration, Type: Quarter, Staff: staff},
		NoteSpec{Step: step, Octave: octave, Accidental: acc},
	)
}

func rest(start, duration, staff int) *Rest {
	return NewRest(SymbolInfo{StartPosition: start, Duration: duration, Type: Quarter, Staff: staff}, false)
}

func accidental(a Accidental) *Accidental { return &a }

func headWithFifths(fifths int) *StaffHead {
	bass := BassClef
	return NewStaffHead(TrebleClef, &bass, fifths, TimeSignature{Beats: 4, BeatType: 4})
}

type rangeFilter struct{ low, high int }

func (r rangeFilter) IsInDeviceRange(code int) bool { return code >= r.low && code <= r.high }
