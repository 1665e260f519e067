package ircstate

import (
	"strings"

	"github.com/ergochat/irc-go/ircmsg"
)

func (server *Server) handleWelcome(msg *Message, emit *Emit) error {
	if err := requireParams(msg, 1); err != nil {
		return err
	}

	server.Nickname = server.name(msg.Params[0])
	server.Registered = true

	return nil
}

func (server *Server) handleISupport(msg *Message, emit *Emit) error {
	if err := requireParams(msg, 2); err != nil {
		return err
	}

	before := server.isupport.CaseMapping()

	var err error
	if tokensErr := server.isupport.Tokens(msg.Params[1 : len(msg.Params)-1]); tokensErr != nil {
		err = protocolError(msg, tokensErr)
	}

	if after := server.isupport.CaseMapping(); after != before {
		if server.config.StrictCasemapping && (len(server.users) > 0 || len(server.channels) > 0) {
			_ = server.isupport.Set("CASEMAPPING", string(before))
			return protocolError(msg, ErrCasemappingLocked)
		}

		// Stored users and channels keep their keys, but the client's own
		// nick is cheap to fold again.
		server.Nickname = server.name(server.Nickname.Normal)
	}

	return err
}

func (server *Server) handleMOTDStart(msg *Message, emit *Emit) error {
	server.MOTD = nil
	return nil
}

func (server *Server) handleMOTDLine(msg *Message, emit *Emit) error {
	if err := requireParams(msg, 2); err != nil {
		return err
	}

	emit.Text = msg.Params[1]
	server.MOTD = append(server.MOTD, msg.Params[1])

	return nil
}

func (server *Server) handleYoureOper(msg *Message, emit *Emit) error {
	emit.Self = true
	server.IsOper = true

	return nil
}

func (server *Server) handleVisibleHost(msg *Message, emit *Emit) error {
	if err := requireParams(msg, 2); err != nil {
		return err
	}

	userhost := msg.Params[1]
	if i := strings.LastIndexByte(userhost, '@'); i != -1 {
		if i > 0 {
			server.Username = userhost[:i]
		}
		server.Hostname = userhost[i+1:]
	} else {
		server.Hostname = userhost
	}

	emit.Self = true

	return nil
}

func (server *Server) handleLoggedIn(msg *Message, emit *Emit) error {
	if err := requireParams(msg, 3); err != nil {
		return err
	}

	emit.Self = true
	server.Account = msg.Params[2]
	server.selfHostmask(parseNUH(msg.Params[1]))

	return nil
}

func (server *Server) handleLoggedOut(msg *Message, emit *Emit) error {
	if err := requireParams(msg, 2); err != nil {
		return err
	}

	emit.Self = true
	server.Account = ""
	server.selfHostmask(parseNUH(msg.Params[1]))

	return nil
}

func (server *Server) handleCap(msg *Message, emit *Emit) error {
	if err := requireParams(msg, 3); err != nil {
		return err
	}

	server.HasCap = true

	subcommand := strings.ToUpper(msg.Params[1])
	multiline := msg.Params[2] == "*" && len(msg.Params) > 3
	caps := msg.Params[2]
	if multiline {
		caps = msg.Params[3]
	}

	tokens := strings.Fields(caps)
	finished := !multiline

	emit.Subcommand = subcommand
	emit.Finished = &finished
	emit.Tokens = tokens

	switch subcommand {
	case "LS":
		{
			for _, token := range tokens {
				key, value, _ := strings.Cut(token, "=")
				server.tempCaps[key] = value
			}

			// A finished listing is merged, since a server may split the
			// listing into separate replies without continuation markers.
			if !multiline {
				for key, value := range server.tempCaps {
					server.AvailableCaps[key] = value
				}
				server.tempCaps = make(map[string]string)
			}
		}
	case "NEW":
		{
			for _, token := range tokens {
				key, value, _ := strings.Cut(token, "=")
				server.AvailableCaps[key] = value
			}
		}
	case "DEL":
		{
			for _, token := range tokens {
				key, _, _ := strings.Cut(token, "=")
				delete(server.AvailableCaps, key)
				server.removeAgreedCap(key)
			}
		}
	case "ACK":
		{
			for _, token := range tokens {
				key, _, _ := strings.Cut(token, "=")

				if strings.HasPrefix(key, "-") {
					server.removeAgreedCap(key[1:])
					continue
				}

				if _, ok := server.AvailableCaps[key]; ok && !server.HasCapability(key) {
					server.AgreedCaps = append(server.AgreedCaps, key)
				}
			}
		}
	}

	return nil
}

func (server *Server) removeAgreedCap(key string) {
	for i, agreed := range server.AgreedCaps {
		if agreed == key {
			server.AgreedCaps = append(server.AgreedCaps[:i], server.AgreedCaps[i+1:]...)
			return
		}
	}
}

// selfHostmask updates the client's own identity from a message it sent.
func (server *Server) selfHostmask(hostmask ircmsg.NUH) {
	if hostmask.Name != "" {
		server.Nickname = server.name(hostmask.Name)
	}
	if hostmask.User != "" {
		server.Username = hostmask.User
	}
	if hostmask.Host != "" {
		server.Hostname = hostmask.Host
	}
}
