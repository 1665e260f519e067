package ircstate

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

func (server *Server) handleNick(msg *Message, emit *Emit) error {
	if err := requireSource(msg, 1); err != nil {
		return err
	}

	nick := msg.Nick()
	newNick := msg.Params[0]

	if user := server.User(nick); user != nil {
		emit.User = user
		server.renameUser(user, newNick)
	}

	if server.IsMe(nick) {
		emit.Self = true
		server.Nickname = server.name(newNick)
	}

	return nil
}

func (server *Server) handleJoin(msg *Message, emit *Emit) error {
	if err := requireSource(msg, 1); err != nil {
		return err
	}

	// extended-join: JOIN <channel> <account> :<realname>
	extended := len(msg.Params) == 3
	account, realname := "", ""
	if extended {
		account = strings.Trim(msg.Params[1], "*")
		realname = msg.Params[2]
	}

	hostmask := msg.Hostmask()
	if server.IsMe(hostmask.Name) {
		emit.Self = true
		server.addChannel(msg.Params[0])
		server.selfHostmask(hostmask)

		if extended {
			server.Account = account
			server.Realname = realname
		}
	}

	channel := server.Channel(msg.Params[0])
	if channel == nil {
		return nil
	}
	emit.Channel = channel

	user := server.addUser(hostmask.Name)
	emit.User = user
	if hostmask.User != "" {
		user.Username = hostmask.User
	}
	if hostmask.Host != "" {
		user.Hostname = hostmask.Host
	}
	if extended {
		user.Account = account
		user.Realname = realname
	}

	server.userJoin(channel, user, true)

	return nil
}

// leave handles PART and KICK. It returns the user who left if it was known.
func (server *Server) leave(msg *Message, emit *Emit, nick, channelName string, reasonIndex int) *User {
	if reasonIndex < len(msg.Params) {
		emit.Text = msg.Params[reasonIndex]
	}

	channel := server.Channel(channelName)
	if channel == nil {
		return nil
	}
	emit.Channel = channel

	user := server.User(nick)
	if user != nil {
		server.userPart(channel, user)
	}
	if server.IsMe(nick) {
		server.removeChannel(channel)
	}

	return user
}

func (server *Server) handlePart(msg *Message, emit *Emit) error {
	if err := requireSource(msg, 1); err != nil {
		return err
	}

	nick := msg.Nick()
	if user := server.leave(msg, emit, nick, msg.Params[0], 1); user != nil {
		emit.User = user
	}
	if server.IsMe(nick) {
		emit.Self = true
	}

	return nil
}

func (server *Server) handleKick(msg *Message, emit *Emit) error {
	if err := requireParams(msg, 2); err != nil {
		return err
	}

	// The kicker is looked up first, since they may be forgotten along with
	// the channel if it was the client who got kicked.
	var kicker *User
	if msg.Source != "" {
		hostmask := msg.Hostmask()
		kicker = server.User(hostmask.Name)
		if kicker == nil {
			kicker = newUser(server.name(hostmask.Name))
			kicker.Username = hostmask.User
			kicker.Hostname = hostmask.Host
		}
	}

	kicked := server.leave(msg, emit, msg.Params[1], msg.Params[0], 2)
	if kicked != nil {
		emit.UserTarget = kicked
	}
	if server.IsMe(msg.Params[1]) {
		emit.Self = true
	}
	if kicker != nil {
		emit.UserSource = kicker
		if server.IsMe(kicker.Nick()) {
			emit.SelfSource = true
		}
	}

	return nil
}

func (server *Server) handleQuit(msg *Message, emit *Emit) error {
	if err := requireSource(msg, 0); err != nil {
		return err
	}

	if len(msg.Params) > 0 {
		emit.Text = msg.Params[0]
	}

	nick := msg.Nick()
	if server.IsMe(nick) {
		emit.Self = true
		server.clearSession()
		return nil
	}

	if user := server.User(nick); user != nil {
		emit.User = user
		server.removeUser(user)
	}

	return nil
}

func (server *Server) handleError(msg *Message, emit *Emit) error {
	if len(msg.Params) > 0 {
		emit.Text = msg.Params[0]
	}

	emit.Self = true
	server.clearSession()

	return nil
}

func (server *Server) handleNames(msg *Message, emit *Emit) error {
	if err := requireParams(msg, 4); err != nil {
		return err
	}

	channel := server.Channel(msg.Params[2])
	if channel == nil {
		return nil
	}
	emit.Channel = channel

	// Sorting once after the whole batch is faster on big channels.
	channel.members.SetAutoSort(false)
	defer channel.members.SetAutoSort(true)

	emit.Users = make([]*User, 0, 16)
	for _, token := range strings.Fields(msg.Params[3]) {
		nickToken, modes, _ := server.isupport.ParsePrefixedNick(token)
		hostmask := parseNUH(nickToken)
		if hostmask.Name == "" {
			continue
		}

		user := server.addUser(hostmask.Name)
		emit.Users = append(emit.Users, user)
		server.userJoin(channel, user, false)

		// userhost-in-names
		if hostmask.User != "" {
			user.Username = hostmask.User
		}
		if hostmask.Host != "" {
			user.Hostname = hostmask.Host
		}
		if server.IsMe(hostmask.Name) {
			server.selfHostmask(hostmask)
		}

		for _, mode := range modes {
			channel.members.AddMode(hostmask.Name, mode)
		}
	}

	return nil
}

func (server *Server) handleEndOfNames(msg *Message, emit *Emit) error {
	if err := requireParams(msg, 2); err != nil {
		return err
	}

	if channel := server.Channel(msg.Params[1]); channel != nil {
		emit.Channel = channel
		emit.Users = server.ChannelUsers(msg.Params[1])
	}

	return nil
}

func (server *Server) handleCreationTime(msg *Message, emit *Emit) error {
	if err := requireParams(msg, 3); err != nil {
		return err
	}

	channel := server.Channel(msg.Params[1])
	if channel == nil {
		return nil
	}
	emit.Channel = channel

	created, err := parseTimestamp(msg.Params[2])
	if err != nil {
		return protocolError(msg, err)
	}
	channel.Created = created

	return nil
}

func (server *Server) handleTopic(msg *Message, emit *Emit) error {
	if err := requireParams(msg, 2); err != nil {
		return err
	}

	channel := server.Channel(msg.Params[0])
	if channel == nil {
		return nil
	}
	emit.Channel = channel
	emit.Text = msg.Params[1]

	channel.Topic = msg.Params[1]
	channel.TopicSetter = msg.Source
	channel.TopicTime = server.now()

	return nil
}

func (server *Server) handleTopicNumeric(msg *Message, emit *Emit) error {
	if err := requireParams(msg, 3); err != nil {
		return err
	}

	if channel := server.Channel(msg.Params[1]); channel != nil {
		emit.Channel = channel
		emit.Text = msg.Params[2]
		channel.Topic = msg.Params[2]
	}

	return nil
}

func (server *Server) handleNoTopic(msg *Message, emit *Emit) error {
	if err := requireParams(msg, 2); err != nil {
		return err
	}

	if channel := server.Channel(msg.Params[1]); channel != nil {
		emit.Channel = channel
		channel.Topic = ""
		channel.TopicSetter = ""
		channel.TopicTime = time.Time{}
	}

	return nil
}

func (server *Server) handleTopicWhoTime(msg *Message, emit *Emit) error {
	if err := requireParams(msg, 4); err != nil {
		return err
	}

	channel := server.Channel(msg.Params[1])
	if channel == nil {
		return nil
	}
	emit.Channel = channel

	topicTime, err := parseTimestamp(msg.Params[3])
	if err != nil {
		return protocolError(msg, err)
	}

	channel.TopicSetter = msg.Params[2]
	channel.TopicTime = topicTime

	return nil
}

func parseTimestamp(s string) (time.Time, error) {
	seconds, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidTimestamp, s)
	}

	return time.Unix(seconds, 0).UTC(), nil
}
