package irctest

import "github.com/gissleh/ircstate"

// EmitLog records emits, e.g. from a tracker's handlers.
type EmitLog struct {
	emits []*ircstate.Emit
}

func (l *EmitLog) First(command string) *ircstate.Emit {
	for _, e := range l.emits {
		if e.Command == command {
			return e
		}
	}

	return nil
}

func (l *EmitLog) Last(command string) *ircstate.Emit {
	for i := len(l.emits) - 1; i >= 0; i-- {
		e := l.emits[i]
		if e.Command == command {
			return e
		}
	}

	return nil
}

func (l *EmitLog) Len() int {
	return len(l.emits)
}

func (l *EmitLog) Handler(emit *ircstate.Emit, _ *ircstate.Server) {
	l.emits = append(l.emits, emit)
}
