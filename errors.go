package ircstate

import (
	"errors"
	"fmt"
)

// ErrNotEnoughParams is returned when a message has fewer parameters than
// its handler needs. The message is ignored.
var ErrNotEnoughParams = errors.New("irc: not enough parameters")

// ErrMissingSource is returned when a message that must come from a user
// has no source.
var ErrMissingSource = errors.New("irc: missing source")

// ErrMissingModeParam is returned when a mode string uses more parameters
// than the message has. None of the changes are applied.
var ErrMissingModeParam = errors.New("irc: mode parameter missing")

// ErrInvalidTimestamp is returned when a numeric carries a time that isn't
// a unix timestamp.
var ErrInvalidTimestamp = errors.New("irc: invalid timestamp")

// ErrCasemappingLocked is returned when the casemapping changes after users
// or channels have been stored and strict casemapping is enabled.
var ErrCasemappingLocked = errors.New("irc: casemapping cannot change after names are stored")

// A ProtocolError describes a message the server should not have sent. The
// state is left as it was before the message.
type ProtocolError struct {
	Command string
	Err     error
}

func (err *ProtocolError) Error() string {
	return fmt.Sprintf("%s: %v", err.Command, err.Err)
}

func (err *ProtocolError) Unwrap() error {
	return err.Err
}

func protocolError(msg *Message, err error) error {
	return &ProtocolError{Command: msg.Command, Err: err}
}

// requireParams returns an error unless the message has at least n params.
func requireParams(msg *Message, n int) error {
	if len(msg.Params) < n {
		return protocolError(msg, fmt.Errorf("%w: got %d, want %d", ErrNotEnoughParams, len(msg.Params), n))
	}

	return nil
}

// requireSource is like requireParams, but also needs the message to have a source.
func requireSource(msg *Message, n int) error {
	if msg.Source == "" {
		return protocolError(msg, ErrMissingSource)
	}

	return requireParams(msg, n)
}
