package isupport

import "github.com/gissleh/ircstate/casemap"

// State is the parsed content of the ISUPPORT tokens seen so far. The typed
// fields hold the defaults until a server overrides them.
type State struct {
	Raw          map[string]string   `json:"raw" yaml:"raw"`
	Prefixes     map[rune]rune       `json:"-" yaml:"-"`
	ModeOrder    string              `json:"modeOrder" yaml:"modeOrder"`
	PrefixOrder  string              `json:"prefixOrder" yaml:"prefixOrder"`
	ChannelModes [4]string           `json:"channelModes" yaml:"channelModes"`
	Modes        int                 `json:"modes" yaml:"modes"`
	CaseMapping  casemap.CaseMapping `json:"casemapping" yaml:"casemapping"`
	ChanTypes    string              `json:"chantypes" yaml:"chantypes"`
	StatusMsg    string              `json:"statusmsg" yaml:"statusmsg"`
	Network      string              `json:"network,omitempty" yaml:"network,omitempty"`
	CallerID     string              `json:"callerid,omitempty" yaml:"callerid,omitempty"`
	Excepts      string              `json:"excepts,omitempty" yaml:"excepts,omitempty"`
	Invex        string              `json:"invex,omitempty" yaml:"invex,omitempty"`
	Monitor      int                 `json:"monitor,omitempty" yaml:"monitor,omitempty"`
	Watch        int                 `json:"watch,omitempty" yaml:"watch,omitempty"`
	WHOX         bool                `json:"whox" yaml:"whox"`
}

// DefaultState returns the state assumed before any ISUPPORT has arrived.
func DefaultState() State {
	return State{
		Raw:          make(map[string]string, 32),
		Prefixes:     map[rune]rune{'@': 'o', '+': 'v'},
		ModeOrder:    "ov",
		PrefixOrder:  "@+",
		ChannelModes: [4]string{"b", "k", "l", "imnpst"},
		Modes:        3,
		CaseMapping:  casemap.RFC1459,
		ChanTypes:    "#",
	}
}

func (state *State) Copy() *State {
	stateCopy := *state
	stateCopy.Raw = make(map[string]string, len(state.Raw))
	for key, value := range state.Raw {
		stateCopy.Raw[key] = value
	}
	stateCopy.Prefixes = make(map[rune]rune, len(state.Prefixes))
	for key, value := range state.Prefixes {
		stateCopy.Prefixes[key] = value
	}

	return &stateCopy
}
