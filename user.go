package ircstate

import "github.com/ergochat/irc-go/ircmsg"

// A User is someone the client shares a channel with, or, for messages and
// kicks, someone it has only heard from. Empty fields are unknown.
type User struct {
	Name        Name   `json:"name" yaml:"name"`
	Username    string `json:"username,omitempty" yaml:"username,omitempty"`
	Hostname    string `json:"hostname,omitempty" yaml:"hostname,omitempty"`
	Realname    string `json:"realname,omitempty" yaml:"realname,omitempty"`
	Account     string `json:"account,omitempty" yaml:"account,omitempty"`
	Server      string `json:"server,omitempty" yaml:"server,omitempty"`
	Away        bool   `json:"away,omitempty" yaml:"away,omitempty"`
	AwayMessage string `json:"awayMessage,omitempty" yaml:"awayMessage,omitempty"`
	IP          string `json:"ip,omitempty" yaml:"ip,omitempty"`

	IsOper   bool   `json:"isOper,omitempty" yaml:"isOper,omitempty"`
	OperName string `json:"operName,omitempty" yaml:"operName,omitempty"`
	RealHost string `json:"realHost,omitempty" yaml:"realHost,omitempty"`
	RealIP   string `json:"realIp,omitempty" yaml:"realIp,omitempty"`
}

func newUser(name Name) *User {
	return &User{Name: name}
}

// Nick gets the nick as the server spelled it.
func (user *User) Nick() string {
	return user.Name.Normal
}

// Hostmask gets the nick!user@host of the user, leaving out unknown parts.
func (user *User) Hostmask() string {
	nuh := ircmsg.NUH{Name: user.Name.Normal, User: user.Username, Host: user.Hostname}
	return nuh.Canonical()
}

// Userhost gets the user@host of the user, or just the host if the
// username is unknown. It's empty if the host is unknown.
func (user *User) Userhost() string {
	if user.Username == "" || user.Hostname == "" {
		return user.Hostname
	}

	return user.Username + "@" + user.Hostname
}

func (user *User) setAway(away bool, message string) {
	user.Away = away
	user.AwayMessage = message
}

// Copy returns a copy of the user.
func (user *User) Copy() *User {
	userCopy := *user
	return &userCopy
}
