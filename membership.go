package ircstate

import "github.com/gissleh/ircstate/list"

// The users and channels maps own the entities. Memberships are indexed
// twice: in each channel's member list and in userChannels. Only the
// functions in this file may change either index.

func (server *Server) clearSession() {
	server.users = make(map[string]*User, 64)
	server.channels = make(map[string]*Channel, 16)
	server.userChannels = make(map[string]map[string]struct{}, 64)
}

// addUser returns the user by nick, creating it if needed.
func (server *Server) addUser(nick string) *User {
	name := server.name(nick)
	if user := server.users[name.Folded]; user != nil {
		return user
	}

	user := newUser(name)
	server.users[name.Folded] = user

	return user
}

// addChannel returns the channel by name, creating it if needed. New
// channels start with an empty list for each list mode.
func (server *Server) addChannel(channelName string) *Channel {
	name := server.name(channelName)
	if channel := server.channels[name.Folded]; channel != nil {
		return channel
	}

	channel := newChannel(name, server.isupport)
	for _, mode := range server.isupport.ChanModes()[0] {
		channel.ListModes[mode] = []string{}
	}
	server.channels[name.Folded] = channel

	return channel
}

// userJoin adds the membership if it's not there. A join seen as a JOIN
// message is timestamped, one seen in NAMES only has the since time.
func (server *Server) userJoin(channel *Channel, user *User, joined bool) {
	key := user.Name.Folded

	if server.userChannels[key] == nil {
		server.userChannels[key] = make(map[string]struct{}, 4)
	}
	server.userChannels[key][channel.Name.Folded] = struct{}{}

	if !channel.members.Has(key) {
		member := list.Member{Nick: user.Name.Normal, Key: key, Since: server.now()}
		if joined {
			member.Joined = member.Since
		}

		channel.members.Insert(member)
	}
}

// userPart removes one membership, and the user too if it has no more
// channels.
func (server *Server) userPart(channel *Channel, user *User) {
	key := user.Name.Folded

	channel.members.RemoveKey(key)
	if channels := server.userChannels[key]; channels != nil {
		delete(channels, channel.Name.Folded)
		if len(channels) > 0 {
			return
		}
	}

	delete(server.userChannels, key)
	delete(server.users, key)
}

// removeChannel forgets the channel after the client left it, along with
// the users who are no longer in any other channel.
func (server *Server) removeChannel(channel *Channel) {
	delete(server.channels, channel.Name.Folded)

	for _, key := range channel.members.Keys() {
		channels := server.userChannels[key]
		delete(channels, channel.Name.Folded)

		if len(channels) == 0 {
			delete(server.userChannels, key)
			delete(server.users, key)
		}
	}

	channel.members.Clear()
}

// removeUser forgets the user and all its memberships.
func (server *Server) removeUser(user *User) {
	key := user.Name.Folded

	for channelKey := range server.userChannels[key] {
		if channel := server.channels[channelKey]; channel != nil {
			channel.members.RemoveKey(key)
		}
	}

	delete(server.userChannels, key)
	delete(server.users, key)
}

// renameUser moves the user and its memberships to the new nick.
func (server *Server) renameUser(user *User, nick string) {
	oldKey := user.Name.Folded
	newName := server.name(nick)
	newKey := newName.Folded

	// A stale user under the new nick would otherwise shadow this one.
	if other := server.users[newKey]; other != nil && other != user {
		server.removeUser(other)
	}

	user.Name = newName

	delete(server.users, oldKey)
	server.users[newKey] = user

	channels := server.userChannels[oldKey]
	delete(server.userChannels, oldKey)
	if channels != nil {
		server.userChannels[newKey] = channels
	}

	for channelKey := range channels {
		if channel := server.channels[channelKey]; channel != nil {
			channel.members.RenameKey(oldKey, nick, newKey)
		}
	}
}
