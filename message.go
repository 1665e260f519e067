package ircstate

import (
	"strings"

	"github.com/ergochat/irc-go/ircmsg"
)

// A Message is one tokenized line from the server.
type Message struct {
	Tags    map[string]string `json:"tags,omitempty"`
	Source  string            `json:"source,omitempty"`
	Command string            `json:"command"`
	Params  []string          `json:"params"`
}

// ParseMessage tokenizes a raw line. The line ending is optional.
func ParseMessage(line string) (Message, error) {
	parsed, err := ircmsg.ParseLine(line)
	if err != nil {
		return Message{}, err
	}

	return Message{
		Tags:    parsed.AllTags(),
		Source:  parsed.Source,
		Command: strings.ToUpper(parsed.Command),
		Params:  parsed.Params,
	}, nil
}

// NewMessage creates a message without tags or source, which is what a
// client sends.
func NewMessage(command string, params ...string) Message {
	return Message{Command: command, Params: params}
}

// Hostmask parses the source. Server names end up as the name, and the
// result is empty if there is no source.
func (msg *Message) Hostmask() ircmsg.NUH {
	return parseNUH(msg.Source)
}

// Nick gets the nick part of the source.
func (msg *Message) Nick() string {
	return msg.Hostmask().Name
}

// Param gets the parameter by index, or "" if there are not enough of them.
func (msg *Message) Param(index int) string {
	if index < 0 || index >= len(msg.Params) {
		return ""
	}

	return msg.Params[index]
}

// Tag gets a message tag.
func (msg *Message) Tag(key string) (value string, ok bool) {
	value, ok = msg.Tags[key]
	return
}

// Line serializes the message without the line ending.
func (msg *Message) Line() (string, error) {
	out := ircmsg.MakeMessage(msg.Tags, msg.Source, msg.Command, msg.Params...)
	line, err := out.Line()
	if err != nil {
		return "", err
	}

	return strings.TrimRight(line, "\r\n"), nil
}

// parseNUH parses a source or a userhost-in-names token. Every partial form
// is accepted, so the only error is an empty string, which gives an empty
// NUH.
func parseNUH(s string) ircmsg.NUH {
	nuh, _ := ircmsg.ParseNUH(s)
	return nuh
}
