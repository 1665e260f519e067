package ircstate

import (
	"net/netip"
	"strings"

	"github.com/gissleh/ircstate/ircutil"
)

// Message tags from the solanum.chat/oper and solanum.chat/realhost
// capabilities.
const (
	TagOper     = "solanum.chat/oper"
	TagRealHost = "solanum.chat/realhost"
	TagIP       = "solanum.chat/ip"
)

func (server *Server) handleMessage(msg *Message, emit *Emit) error {
	if err := requireSource(msg, 1); err != nil {
		return err
	}

	if len(msg.Params) > 1 {
		emit.Text = msg.Params[1]
	}

	hostmask := msg.Hostmask()
	if server.IsMe(hostmask.Name) {
		emit.SelfSource = true
		server.selfHostmask(hostmask)
	}

	// Users outside of shared channels are not stored, but handlers still
	// get one to look at.
	user := server.User(hostmask.Name)
	if user == nil {
		user = newUser(server.name(hostmask.Name))
	}
	emit.User = user
	if hostmask.User != "" {
		user.Username = hostmask.User
	}
	if hostmask.Host != "" {
		user.Hostname = hostmask.Host
	}

	emit.Target = msg.Params[0]
	target, _ := server.isupport.StripStatusMsg(msg.Params[0])
	if server.IsChannel(target) {
		emit.Channel = server.Channel(target)
	} else if server.IsMe(target) {
		emit.SelfTarget = true
	}

	return nil
}

// whoReply is the part of a WHO or WHOX reply that is applied to a user.
type whoReply struct {
	username string
	hostname string
	realname string
	server   string
	away     bool

	// Only WHOX has these.
	account    string
	hasAccount bool
	ip         string
}

func (reply *whoReply) applyUser(user *User) {
	user.Username = reply.username
	user.Hostname = reply.hostname
	user.Realname = reply.realname
	user.Server = reply.server
	// WHO only has the away flag, so a known message is kept.
	if !reply.away || !user.Away {
		user.setAway(reply.away, "")
	}
	if reply.hasAccount {
		user.Account = reply.account
	}
	if reply.ip != "" {
		user.IP = reply.ip
	}
}

func (reply *whoReply) applySelf(server *Server) {
	server.Username = reply.username
	server.Hostname = reply.hostname
	server.Realname = reply.realname
	server.ServerName = reply.server
	if !reply.away || !server.Away {
		server.Away = reply.away
		server.AwayMessage = ""
	}
	if reply.hasAccount {
		server.Account = reply.account
	}
	if reply.ip != "" {
		server.IP = reply.ip
	}
}

func (server *Server) applyWhoReply(nick string, reply *whoReply, emit *Emit) {
	if server.IsMe(nick) {
		emit.Self = true
		reply.applySelf(server)
	}

	if user := server.User(nick); user != nil {
		emit.User = user
		reply.applyUser(user)
	}
}

func (server *Server) handleWho(msg *Message, emit *Emit) error {
	if err := requireParams(msg, 8); err != nil {
		return err
	}

	emit.Target = msg.Params[1]

	// The last param is "<hopcount> <realname>".
	_, realname := ircutil.ParseArgAndText(msg.Params[7])

	reply := whoReply{
		username: msg.Params[2],
		hostname: msg.Params[3],
		realname: realname,
		server:   serverName(msg.Params[4]),
		away:     strings.Contains(msg.Params[6], "G"),
	}
	server.applyWhoReply(msg.Params[5], &reply, emit)

	return nil
}

// handleWhox reads replies to the query sent by PrepareWHOX. The fields are
// token, user, ip, host, server, nick, flags, account and realname.
func (server *Server) handleWhox(msg *Message, emit *Emit) error {
	if len(msg.Params) != 10 || msg.Params[1] != server.config.WHOXToken {
		return nil
	}

	reply := whoReply{
		username:   msg.Params[2],
		hostname:   msg.Params[4],
		realname:   msg.Params[9],
		server:     serverName(msg.Params[5]),
		away:       strings.Contains(msg.Params[7], "G"),
		hasAccount: true,
	}
	if msg.Params[8] != "0" {
		reply.account = msg.Params[8]
	}
	if msg.Params[3] != "255.255.255.255" {
		if addr, err := netip.ParseAddr(msg.Params[3]); err == nil {
			reply.ip = addr.String()
		}
	}

	server.applyWhoReply(msg.Params[6], &reply, emit)

	return nil
}

func serverName(s string) string {
	if s == "*" {
		return ""
	}

	return s
}

func (server *Server) handleWhoisUser(msg *Message, emit *Emit) error {
	if err := requireParams(msg, 6); err != nil {
		return err
	}

	nick := msg.Params[1]
	username, hostname, realname := msg.Params[2], msg.Params[3], msg.Params[5]

	if server.IsMe(nick) {
		emit.Self = true
		server.Username = username
		server.Hostname = hostname
		server.Realname = realname
	}

	if user := server.User(nick); user != nil {
		emit.User = user
		user.Username = username
		user.Hostname = hostname
		user.Realname = realname
	}

	return nil
}

func (server *Server) handleChghost(msg *Message, emit *Emit) error {
	if err := requireSource(msg, 2); err != nil {
		return err
	}

	nick := msg.Nick()
	username, hostname := msg.Params[0], msg.Params[1]

	if server.IsMe(nick) {
		emit.Self = true
		server.Username = username
		server.Hostname = hostname
	}

	if user := server.User(nick); user != nil {
		emit.User = user
		user.Username = username
		user.Hostname = hostname
	}

	return nil
}

func (server *Server) handleSetname(msg *Message, emit *Emit) error {
	if err := requireSource(msg, 1); err != nil {
		return err
	}

	nick := msg.Nick()

	if server.IsMe(nick) {
		emit.Self = true
		server.Realname = msg.Params[0]
	}

	if user := server.User(nick); user != nil {
		emit.User = user
		user.Realname = msg.Params[0]
	}

	return nil
}

func (server *Server) handleAwayNumeric(msg *Message, emit *Emit) error {
	if err := requireParams(msg, 3); err != nil {
		return err
	}

	nick := msg.Params[1]
	emit.Text = msg.Params[2]

	if server.IsMe(nick) {
		emit.Self = true
		server.Away = true
		server.AwayMessage = msg.Params[2]
	}

	if user := server.User(nick); user != nil {
		emit.User = user
		user.setAway(true, msg.Params[2])
	}

	return nil
}

func (server *Server) handleAway(msg *Message, emit *Emit) error {
	if err := requireSource(msg, 0); err != nil {
		return err
	}

	nick := msg.Nick()
	away := len(msg.Params) > 0
	message := msg.Param(0)
	emit.Text = message

	if server.IsMe(nick) {
		emit.Self = true
		server.Away = away
		server.AwayMessage = message
	}

	if user := server.User(nick); user != nil {
		emit.User = user
		user.setAway(away, message)
	}

	return nil
}

func (server *Server) handleAccount(msg *Message, emit *Emit) error {
	if err := requireSource(msg, 1); err != nil {
		return err
	}

	nick := msg.Nick()
	account := strings.Trim(msg.Params[0], "*")

	if server.IsMe(nick) {
		emit.Self = true
		server.Account = account
	}

	if user := server.User(nick); user != nil {
		emit.User = user
		user.Account = account
	}

	return nil
}

// handleTags applies the solanum user tags once the handlers are done, so
// that users added by the message itself get them too.
func (server *Server) handleTags(msg *Message) {
	if len(msg.Tags) == 0 || msg.Source == "" {
		return
	}

	user := server.User(msg.Nick())
	if user == nil {
		return
	}

	if server.HasCapability(TagOper) {
		if operName, ok := msg.Tag(TagOper); ok {
			user.IsOper = true
			user.OperName = operName
		}
	}

	if server.HasCapability(TagRealHost) {
		if realHost, ok := msg.Tag(TagRealHost); ok {
			user.RealHost = realHost
		}
		if realIP, ok := msg.Tag(TagIP); ok {
			user.RealIP = realIP
		}
	}
}
