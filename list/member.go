package list

import "time"

// A Member is one user's membership of a channel.
type Member struct {
	Nick         string    `json:"nick" yaml:"nick"`
	Key          string    `json:"-" yaml:"-"`
	Modes        string    `json:"modes" yaml:"modes"`
	Prefixes     string    `json:"prefixes" yaml:"prefixes"`
	PrefixedNick string    `json:"prefixedNick" yaml:"prefixedNick"`
	Since        time.Time `json:"since" yaml:"since"`
	Joined       time.Time `json:"joined" yaml:"joined"`
}

// HighestMode returns the highest mode.
func (member *Member) HighestMode() rune {
	if len(member.Modes) == 0 {
		return 0
	}

	return rune(member.Modes[0])
}

// HasMode returns true if the member has the status mode.
func (member *Member) HasMode(mode rune) bool {
	for _, ch := range member.Modes {
		if ch == mode {
			return true
		}
	}

	return false
}

func (member *Member) updatePrefixedNick() {
	if len(member.Prefixes) == 0 {
		member.PrefixedNick = member.Nick
		return
	}

	member.PrefixedNick = string(member.Prefixes[0]) + member.Nick
}
