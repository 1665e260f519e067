package ircstate

import (
	"time"

	"github.com/rs/zerolog"
)

// DefaultWHOXToken is the WHOX query type used by PrepareWHOX when none is
// configured. Replies carrying other tokens are ignored.
const DefaultWHOXToken = "735"

// The Config for a Server or Tracker.
type Config struct {
	// Name identifies the session, e.g. the network it connects to. By default
	// it's "irc".
	Name string `json:"name" toml:"name" yaml:"name"`

	// WHOXToken is the query type sent in WHOX requests and expected in the
	// replies. By default it's DefaultWHOXToken.
	WHOXToken string `json:"whoxToken" toml:"whox_token" yaml:"whoxToken"`

	// StrictCasemapping rejects CASEMAPPING changes once a user or channel
	// has been stored, since existing keys are never folded again.
	StrictCasemapping bool `json:"strictCasemapping" toml:"strict_casemapping" yaml:"strictCasemapping"`

	// Buffer is the size of the Tracker's message queue. By default it's 64.
	Buffer int `json:"buffer" toml:"buffer" yaml:"buffer"`

	// Logger receives diagnostics about malformed messages. It's silent
	// by default.
	Logger *zerolog.Logger `json:"-" toml:"-" yaml:"-"`

	// Clock supplies the time for topic changes and memberships. By default
	// it's time.Now.
	Clock func() time.Time `json:"-" toml:"-" yaml:"-"`
}

// WithDefaults returns the config with the default values
func (config Config) WithDefaults() Config {
	if config.Name == "" {
		config.Name = "irc"
	}
	if config.WHOXToken == "" {
		config.WHOXToken = DefaultWHOXToken
	}
	if config.Buffer <= 0 {
		config.Buffer = 64
	}
	if config.Logger == nil {
		logger := zerolog.Nop()
		config.Logger = &logger
	}
	if config.Clock == nil {
		config.Clock = time.Now
	}

	return config
}
