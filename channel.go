package ircstate

import (
	"time"

	"github.com/gissleh/ircstate/isupport"
	"github.com/gissleh/ircstate/list"
)

// A Channel is a channel the client is in. Flag modes are stored in Modes
// with an empty value, and list modes like bans are kept in ListModes.
type Channel struct {
	Name        Name              `json:"name"`
	Topic       string            `json:"topic,omitempty"`
	TopicSetter string            `json:"topicSetter,omitempty"`
	TopicTime   time.Time         `json:"topicTime"`
	Created     time.Time         `json:"created"`
	Modes       map[rune]string   `json:"modes"`
	ListModes   map[rune][]string `json:"listModes"`

	listModesTemp map[rune][]string
	members       *list.List
}

func newChannel(name Name, isupport *isupport.ISupport) *Channel {
	return &Channel{
		Name:          name,
		Modes:         make(map[rune]string, 8),
		ListModes:     make(map[rune][]string, 4),
		listModesTemp: make(map[rune][]string),
		members:       list.New(isupport),
	}
}

// Members gets the channel's members, sorted by rank and then nick.
func (channel *Channel) Members() []list.Member {
	return channel.members.Members()
}

// Member gets a member by nick.
func (channel *Channel) Member(nick string) (list.Member, bool) {
	return channel.members.Member(nick)
}

// MemberCount gets the number of known members.
func (channel *Channel) MemberCount() int {
	return channel.members.Len()
}

// Mode gets the value of a mode, and whether it's set.
func (channel *Channel) Mode(mode rune) (value string, ok bool) {
	value, ok = channel.Modes[mode]
	return
}

// AddMode sets a mode. List modes get the argument added if it isn't
// already there, other modes get it as their value.
func (channel *Channel) AddMode(mode rune, arg string, isList bool) {
	if !isList {
		channel.Modes[mode] = arg
		return
	}

	for _, existing := range channel.ListModes[mode] {
		if existing == arg {
			return
		}
	}

	channel.ListModes[mode] = append(channel.ListModes[mode], arg)
}

// RemoveMode unsets a mode. For list modes, only the argument is removed.
func (channel *Channel) RemoveMode(mode rune, arg string) {
	if masks, ok := channel.ListModes[mode]; ok {
		for i, existing := range masks {
			if existing == arg {
				channel.ListModes[mode] = append(masks[:i:i], masks[i+1:]...)
				break
			}
		}

		return
	}

	delete(channel.Modes, mode)
}

// stageListMode collects an entry from a list reply (e.g. a ban list) until
// commitListMode is called at the end of it.
func (channel *Channel) stageListMode(mode rune, mask string) {
	channel.listModesTemp[mode] = append(channel.listModesTemp[mode], mask)
}

// commitListMode replaces the list with the staged entries. A list that
// ends without entries becomes empty.
func (channel *Channel) commitListMode(mode rune) {
	masks := channel.listModesTemp[mode]
	delete(channel.listModesTemp, mode)

	if masks == nil {
		masks = []string{}
	}

	channel.ListModes[mode] = masks
}
