package ircstate

import (
	"sort"
	"time"

	"github.com/gissleh/ircstate/isupport"
	"github.com/gissleh/ircstate/list"
)

// A Snapshot is a copy of a server's state that can be serialized and kept
// after the server moves on.
type Snapshot struct {
	ID          string          `json:"id,omitempty" yaml:"id,omitempty"`
	Name        string          `json:"name" yaml:"name"`
	Nick        string          `json:"nick" yaml:"nick"`
	User        string          `json:"user,omitempty" yaml:"user,omitempty"`
	Host        string          `json:"host,omitempty" yaml:"host,omitempty"`
	Realname    string          `json:"realname,omitempty" yaml:"realname,omitempty"`
	Account     string          `json:"account,omitempty" yaml:"account,omitempty"`
	Away        bool            `json:"away,omitempty" yaml:"away,omitempty"`
	AwayMessage string          `json:"awayMessage,omitempty" yaml:"awayMessage,omitempty"`
	IsOper      bool            `json:"isOper,omitempty" yaml:"isOper,omitempty"`
	Registered  bool            `json:"registered" yaml:"registered"`
	Modes       string          `json:"modes,omitempty" yaml:"modes,omitempty"`
	ISupport    *isupport.State `json:"isupport" yaml:"isupport"`
	Caps        []string        `json:"caps" yaml:"caps"`
	Channels    []ChannelState  `json:"channels" yaml:"channels"`
	Users       []User          `json:"users" yaml:"users"`
	Taken       time.Time       `json:"taken" yaml:"taken"`
}

// ChannelState is a channel in a Snapshot. The modes are keyed by their
// letter as a string.
type ChannelState struct {
	Name        string              `json:"name" yaml:"name"`
	Topic       string              `json:"topic,omitempty" yaml:"topic,omitempty"`
	TopicSetter string              `json:"topicSetter,omitempty" yaml:"topicSetter,omitempty"`
	TopicTime   time.Time           `json:"topicTime,omitempty" yaml:"topicTime,omitempty"`
	Created     time.Time           `json:"created,omitempty" yaml:"created,omitempty"`
	Modes       map[string]string   `json:"modes" yaml:"modes"`
	ListModes   map[string][]string `json:"listModes,omitempty" yaml:"listModes,omitempty"`
	Members     []list.Member       `json:"members" yaml:"members"`
}

// Snapshot copies the state.
func (server *Server) Snapshot() *Snapshot {
	snapshot := &Snapshot{
		Name:        server.Name,
		Nick:        server.Nickname.Normal,
		User:        server.Username,
		Host:        server.Hostname,
		Realname:    server.Realname,
		Account:     server.Account,
		Away:        server.Away,
		AwayMessage: server.AwayMessage,
		IsOper:      server.IsOper,
		Registered:  server.Registered,
		Modes:       server.Modes,
		ISupport:    server.isupport.State(),
		Caps:        append([]string{}, server.AgreedCaps...),
		Channels:    make([]ChannelState, 0, len(server.channels)),
		Users:       make([]User, 0, len(server.users)),
		Taken:       server.now(),
	}
	sort.Strings(snapshot.Caps)

	for _, channel := range server.Channels() {
		snapshot.Channels = append(snapshot.Channels, channel.state())
	}
	for _, user := range server.Users() {
		snapshot.Users = append(snapshot.Users, *user)
	}

	return snapshot
}

func (channel *Channel) state() ChannelState {
	state := ChannelState{
		Name:        channel.Name.Normal,
		Topic:       channel.Topic,
		TopicSetter: channel.TopicSetter,
		TopicTime:   channel.TopicTime,
		Created:     channel.Created,
		Modes:       make(map[string]string, len(channel.Modes)),
		ListModes:   make(map[string][]string, len(channel.ListModes)),
		Members:     channel.members.Members(),
	}

	for mode, value := range channel.Modes {
		state.Modes[string(mode)] = value
	}
	for mode, masks := range channel.ListModes {
		state.ListModes[string(mode)] = append([]string{}, masks...)
	}

	return state
}
