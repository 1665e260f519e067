package ircstate

import (
	"fmt"
	"strings"

	"github.com/gissleh/ircstate/ircutil"
)

// A channelModeChange is a mode change with the argument it consumed, if any.
type channelModeChange struct {
	ircutil.ModeChange
	Arg    string
	HasArg bool
}

func (change channelModeChange) token() string {
	if change.HasArg {
		return change.String() + " " + change.Arg
	}

	return change.String()
}

func (server *Server) handleMode(msg *Message, emit *Emit) error {
	if err := requireParams(msg, 2); err != nil {
		return err
	}

	target := msg.Params[0]
	changes := ircutil.ParseModeString(msg.Params[1])

	if server.IsMe(target) {
		emit.SelfTarget = true
		emit.Tokens = make([]string, 0, len(changes))

		for _, change := range changes {
			emit.Tokens = append(emit.Tokens, change.String())
			server.applyUserMode(change)
		}

		return nil
	}

	channel := server.Channel(target)
	if channel == nil {
		return nil
	}
	emit.Channel = channel

	resolved, err := server.resolveChannelModes(changes, msg.Params[2:])
	if err != nil {
		return protocolError(msg, err)
	}

	emit.Tokens = make([]string, 0, len(resolved))
	for _, change := range resolved {
		emit.Tokens = append(emit.Tokens, change.token())
	}
	server.applyChannelModes(channel, resolved)

	return nil
}

func (server *Server) handleChannelModeIs(msg *Message, emit *Emit) error {
	if err := requireParams(msg, 3); err != nil {
		return err
	}

	channel := server.Channel(msg.Params[1])
	if channel == nil {
		return nil
	}
	emit.Channel = channel

	changes := ircutil.ParseModeString("+" + strings.TrimLeft(msg.Params[2], "+"))
	resolved, err := server.resolveChannelModes(changes, msg.Params[3:])
	if err != nil {
		return protocolError(msg, err)
	}
	server.applyChannelModes(channel, resolved)

	return nil
}

func (server *Server) handleUModeIs(msg *Message, emit *Emit) error {
	if err := requireParams(msg, 2); err != nil {
		return err
	}

	emit.SelfTarget = true
	for _, mode := range strings.TrimLeft(msg.Params[1], "+") {
		server.applyUserMode(ircutil.ModeChange{Add: true, Mode: mode})
	}

	return nil
}

func (server *Server) applyUserMode(change ircutil.ModeChange) {
	has := strings.ContainsRune(server.Modes, change.Mode)
	if change.Add && !has {
		server.Modes += string(change.Mode)
	} else if !change.Add && has {
		server.Modes = strings.Replace(server.Modes, string(change.Mode), "", 1)
	}

	if change.Mode == 'o' {
		server.IsOper = change.Add
	}
}

// resolveChannelModes pairs each change with its argument. It fails without
// a partial result if the arguments run out.
func (server *Server) resolveChannelModes(changes []ircutil.ModeChange, args []string) ([]channelModeChange, error) {
	resolved := make([]channelModeChange, 0, len(changes))

	for _, change := range changes {
		rc := channelModeChange{ModeChange: change}

		if server.isupport.ModeTakesArgument(change.Mode, change.Add) {
			if len(args) == 0 {
				return nil, fmt.Errorf("%w: %s", ErrMissingModeParam, change)
			}

			rc.Arg = args[0]
			rc.HasArg = true
			args = args[1:]
		}

		resolved = append(resolved, rc)
	}

	return resolved, nil
}

func (server *Server) applyChannelModes(channel *Channel, changes []channelModeChange) {
	for _, change := range changes {
		switch {
		case server.isupport.IsPermissionMode(change.Mode):
			if !server.HasUser(change.Arg) {
				continue
			}

			if change.Add {
				channel.members.AddMode(change.Arg, change.Mode)
			} else {
				channel.members.RemoveMode(change.Arg, change.Mode)
			}
		case change.Add:
			isList := server.isupport.ChannelModeType(change.Mode) == 0
			channel.AddMode(change.Mode, change.Arg, isList)
		default:
			channel.RemoveMode(change.Mode, change.Arg)
		}
	}
}

func (server *Server) listMode(msg *Message, emit *Emit, mode rune, maskIndex int) error {
	if err := requireParams(msg, maskIndex+1); err != nil {
		return err
	}

	if channel := server.Channel(msg.Params[1]); channel != nil {
		emit.Channel = channel
		channel.stageListMode(mode, msg.Params[maskIndex])
	}

	return nil
}

func (server *Server) listModeEnd(msg *Message, emit *Emit, mode rune) error {
	if err := requireParams(msg, 2); err != nil {
		return err
	}

	if channel := server.Channel(msg.Params[1]); channel != nil {
		emit.Channel = channel
		channel.commitListMode(mode)
	}

	return nil
}

func (server *Server) handleBanList(msg *Message, emit *Emit) error {
	return server.listMode(msg, emit, 'b', 2)
}

func (server *Server) handleEndOfBanList(msg *Message, emit *Emit) error {
	return server.listModeEnd(msg, emit, 'b')
}

// The quiet list numerics name the mode, since it's 'q' on some servers and
// a 'b' with an extban on others.

func (server *Server) handleQuietList(msg *Message, emit *Emit) error {
	if err := requireParams(msg, 4); err != nil {
		return err
	}

	return server.listMode(msg, emit, firstRune(msg.Params[2]), 3)
}

func (server *Server) handleEndOfQuietList(msg *Message, emit *Emit) error {
	if err := requireParams(msg, 3); err != nil {
		return err
	}

	return server.listModeEnd(msg, emit, firstRune(msg.Params[2]))
}

func (server *Server) handleExceptList(msg *Message, emit *Emit) error {
	return server.listMode(msg, emit, server.exceptsMode(), 2)
}

func (server *Server) handleEndOfExceptList(msg *Message, emit *Emit) error {
	return server.listModeEnd(msg, emit, server.exceptsMode())
}

func (server *Server) handleInviteList(msg *Message, emit *Emit) error {
	return server.listMode(msg, emit, server.invexMode(), 2)
}

func (server *Server) handleEndOfInviteList(msg *Message, emit *Emit) error {
	return server.listModeEnd(msg, emit, server.invexMode())
}

// exceptsMode gets the ban exception mode, which is 'e' unless the server
// says otherwise.
func (server *Server) exceptsMode() rune {
	if mode := firstRune(server.isupport.Excepts()); mode != 0 {
		return mode
	}

	return 'e'
}

func (server *Server) invexMode() rune {
	if mode := firstRune(server.isupport.Invex()); mode != 0 {
		return mode
	}

	return 'I'
}

func firstRune(s string) rune {
	for _, r := range s {
		return r
	}

	return 0
}
