package ircstate

import "encoding/json"

// An Emit describes what a dispatched message did to the state. Fields the
// handlers didn't touch are left at their zero value, which means "not
// applicable" rather than false. The users and channels are the live ones,
// so they should be copied if kept beyond the next dispatch.
type Emit struct {
	Command    string   `json:"command"`
	Subcommand string   `json:"subcommand,omitempty"`
	Text       string   `json:"text,omitempty"`
	Tokens     []string `json:"tokens,omitempty"`
	Finished   *bool    `json:"finished,omitempty"`

	Self       bool `json:"self,omitempty"`
	SelfSource bool `json:"selfSource,omitempty"`
	SelfTarget bool `json:"selfTarget,omitempty"`

	User       *User    `json:"user,omitempty"`
	UserSource *User    `json:"userSource,omitempty"`
	UserTarget *User    `json:"userTarget,omitempty"`
	Users      []*User  `json:"users,omitempty"`
	Channel    *Channel `json:"channel,omitempty"`
	Target     string   `json:"target,omitempty"`
}

// MarshalJSON gives a compact form for logging, where users and channels
// are shown by name only.
func (emit *Emit) MarshalJSON() ([]byte, error) {
	type compact struct {
		Command    string   `json:"command"`
		Subcommand string   `json:"subcommand,omitempty"`
		Text       string   `json:"text,omitempty"`
		Tokens     []string `json:"tokens,omitempty"`
		Finished   *bool    `json:"finished,omitempty"`
		Self       bool     `json:"self,omitempty"`
		SelfSource bool     `json:"selfSource,omitempty"`
		SelfTarget bool     `json:"selfTarget,omitempty"`
		User       string   `json:"user,omitempty"`
		UserSource string   `json:"userSource,omitempty"`
		UserTarget string   `json:"userTarget,omitempty"`
		Users      []string `json:"users,omitempty"`
		Channel    string   `json:"channel,omitempty"`
		Target     string   `json:"target,omitempty"`
	}

	data := compact{
		Command:    emit.Command,
		Subcommand: emit.Subcommand,
		Text:       emit.Text,
		Tokens:     emit.Tokens,
		Finished:   emit.Finished,
		Self:       emit.Self,
		SelfSource: emit.SelfSource,
		SelfTarget: emit.SelfTarget,
		Target:     emit.Target,
	}
	if emit.User != nil {
		data.User = emit.User.Nick()
	}
	if emit.UserSource != nil {
		data.UserSource = emit.UserSource.Nick()
	}
	if emit.UserTarget != nil {
		data.UserTarget = emit.UserTarget.Nick()
	}
	for _, user := range emit.Users {
		data.Users = append(data.Users, user.Nick())
	}
	if emit.Channel != nil {
		data.Channel = emit.Channel.Name.Normal
	}

	return json.Marshal(data)
}
