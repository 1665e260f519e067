package irctest

import (
	"context"

	"github.com/gissleh/ircstate"
)

// An Interaction is a scripted session: lines from the server are applied
// in order, with callbacks in between to check the state.
type Interaction struct {
	Strict  bool
	Lines   []InteractionLine
	Log     []string
	Failure *InteractionFailure
}

// A DispatchFunc applies one raw line.
type DispatchFunc func(line string) error

// Server dispatches directly to a server.
func Server(server *ircstate.Server) DispatchFunc {
	return func(line string) error {
		_, err := server.DispatchLine(line)
		return err
	}
}

// Tracker pushes the lines to a tracker and waits for each of them.
func Tracker(tracker *ircstate.Tracker) DispatchFunc {
	return func(line string) error {
		return tracker.PushLine(context.Background(), line)
	}
}

// Run runs the interaction until the end or the first failure. Lines that
// fail to dispatch are only logged unless Strict is set.
func (interaction *Interaction) Run(dispatch DispatchFunc) *InteractionFailure {
	for i, line := range interaction.Lines {
		if line.Server != "" {
			err := dispatch(line.Server)
			if err != nil {
				interaction.Log = append(interaction.Log, line.Server+": "+err.Error())

				if interaction.Strict {
					interaction.Failure = &InteractionFailure{
						Index: i, Result: line.Server, DispatchErr: err,
					}
					return interaction.Failure
				}
			}
		} else if line.Callback != nil {
			err := line.Callback()
			if err != nil {
				interaction.Failure = &InteractionFailure{
					Index: i, CBErr: err,
				}
				return interaction.Failure
			}
		}
	}

	return nil
}

// InteractionFailure signifies a test failure.
type InteractionFailure struct {
	Index       int
	Result      string
	DispatchErr error
	CBErr       error
}

// InteractionLine is part of an interaction, either a line from the server
// or a callback.
type InteractionLine struct {
	Server   string
	Callback func() error
}
