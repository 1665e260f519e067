package ircstate

import (
	"errors"
	"sort"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/gissleh/ircstate/isupport"
	"github.com/gissleh/ircstate/list"
)

// A Server is the state of one client session: who the client is, what the
// server supports, and the channels and users it can see. It is updated by
// passing each incoming message to Dispatch.
//
// A Server is not safe for concurrent use. Use a Tracker if the state needs
// to be read from other goroutines.
type Server struct {
	Name string `json:"name"`

	Nickname    Name   `json:"nickname"`
	Username    string `json:"username,omitempty"`
	Hostname    string `json:"hostname,omitempty"`
	Realname    string `json:"realname,omitempty"`
	Account     string `json:"account,omitempty"`
	ServerName  string `json:"server,omitempty"`
	Away        bool   `json:"away,omitempty"`
	AwayMessage string `json:"awayMessage,omitempty"`
	IP          string `json:"ip,omitempty"`
	IsOper      bool   `json:"isOper,omitempty"`

	Registered bool     `json:"registered"`
	Modes      string   `json:"modes"`
	MOTD       []string `json:"motd"`

	HasCap        bool              `json:"hasCap"`
	AvailableCaps map[string]string `json:"availableCaps"`
	AgreedCaps    []string          `json:"agreedCaps"`

	isupport *isupport.ISupport
	tempCaps map[string]string

	users        map[string]*User
	channels     map[string]*Channel
	userChannels map[string]map[string]struct{}

	handlers map[string][]Handler
	config   Config
	logger   zerolog.Logger
}

// NewServer creates a new server state with the default handlers.
func NewServer(config Config) *Server {
	config = config.WithDefaults()

	server := &Server{
		Name:     config.Name,
		isupport: isupport.New(),
		handlers: defaultHandlers(),
		config:   config,
		logger:   config.Logger.With().Str("session", config.Name).Logger(),
	}
	server.Reset()

	return server
}

// Reset puts the server in the state of a new connection, clearing the
// registration, capabilities and ISUPPORT along with the session.
func (server *Server) Reset() {
	server.Nickname = Name{}
	server.Username = ""
	server.Hostname = ""
	server.Realname = ""
	server.Account = ""
	server.ServerName = ""
	server.Away = false
	server.AwayMessage = ""
	server.IP = ""
	server.IsOper = false
	server.Registered = false
	server.Modes = ""
	server.MOTD = nil
	server.HasCap = false
	server.AvailableCaps = make(map[string]string)
	server.AgreedCaps = nil
	server.tempCaps = make(map[string]string)
	server.isupport.Reset()

	server.clearSession()
}

// Disconnect is called when the connection is lost. It forgets all users and
// channels but keeps the rest until Reset.
func (server *Server) Disconnect() {
	server.clearSession()
}

// ISupport gets the server's ISupport. This is mutable, and changes to it
// *will* affect the server.
func (server *Server) ISupport() *isupport.ISupport {
	return server.isupport
}

// Logger gets the logger the server reports malformed messages to.
func (server *Server) Logger() *zerolog.Logger {
	return &server.logger
}

// Casefold folds the name with the current casemapping.
func (server *Server) Casefold(name string) string {
	return server.isupport.Fold(name)
}

// CasefoldEquals returns true if the names are equal after folding.
func (server *Server) CasefoldEquals(a, b string) bool {
	return server.isupport.CaseMapping().Equal(a, b)
}

// IsMe returns true if the nick is the client's.
func (server *Server) IsMe(nick string) bool {
	return server.Nickname.Folded != "" && server.Casefold(nick) == server.Nickname.Folded
}

// IsChannel returns true if the target is named like a channel.
func (server *Server) IsChannel(target string) bool {
	return server.isupport.IsChannel(target)
}

// HasUser returns true if the user is known.
func (server *Server) HasUser(nick string) bool {
	_, ok := server.users[server.Casefold(nick)]
	return ok
}

// User gets a user by nick, or nil if it's not known.
func (server *Server) User(nick string) *User {
	return server.users[server.Casefold(nick)]
}

// Users gets all known users, ordered by their folded nick.
func (server *Server) Users() []*User {
	users := make([]*User, 0, len(server.users))
	for _, user := range server.users {
		users = append(users, user)
	}
	sort.Slice(users, func(i, j int) bool {
		return users[i].Name.Folded < users[j].Name.Folded
	})

	return users
}

// HasChannel returns true if the client is in the channel.
func (server *Server) HasChannel(name string) bool {
	_, ok := server.channels[server.Casefold(name)]
	return ok
}

// Channel gets a channel by name, or nil if the client isn't in it.
func (server *Server) Channel(name string) *Channel {
	return server.channels[server.Casefold(name)]
}

// Channels gets all channels, ordered by their folded name.
func (server *Server) Channels() []*Channel {
	channels := make([]*Channel, 0, len(server.channels))
	for _, channel := range server.channels {
		channels = append(channels, channel)
	}
	sort.Slice(channels, func(i, j int) bool {
		return channels[i].Name.Folded < channels[j].Name.Folded
	})

	return channels
}

// UserChannels gets the channels shared with the user.
func (server *Server) UserChannels(nick string) []*Channel {
	keys := server.userChannels[server.Casefold(nick)]
	channels := make([]*Channel, 0, len(keys))
	for key := range keys {
		if channel := server.channels[key]; channel != nil {
			channels = append(channels, channel)
		}
	}
	sort.Slice(channels, func(i, j int) bool {
		return channels[i].Name.Folded < channels[j].Name.Folded
	})

	return channels
}

// ChannelUsers gets the users in a channel, in the member list's order.
func (server *Server) ChannelUsers(name string) []*User {
	channel := server.Channel(name)
	if channel == nil {
		return nil
	}

	keys := channel.members.Keys()
	users := make([]*User, 0, len(keys))
	for _, key := range keys {
		if user := server.users[key]; user != nil {
			users = append(users, user)
		}
	}

	return users
}

// Membership gets the user's membership of a channel.
func (server *Server) Membership(channelName, nick string) (list.Member, bool) {
	channel := server.Channel(channelName)
	if channel == nil {
		return list.Member{}, false
	}

	return channel.members.MemberByKey(server.Casefold(nick))
}

// HasCapability returns true if the capability has been agreed to.
func (server *Server) HasCapability(name string) bool {
	for _, agreed := range server.AgreedCaps {
		if agreed == name {
			return true
		}
	}

	return false
}

// PrepareWHOX builds a WHOX request whose replies will update the users.
func (server *Server) PrepareWHOX(target string) Message {
	return NewMessage("WHO", target, "n%afhinrstu,"+server.config.WHOXToken)
}

// SupportedCaps are the capabilities whose messages the default handlers
// understand.
var SupportedCaps = []string{
	"cap-notify",
	"multi-prefix",
	"userhost-in-names",
	"account-notify",
	"away-notify",
	"extended-join",
	"chghost",
	"setname",
	TagOper,
	TagRealHost,
}

// PrepareCapRequest builds a CAP REQ for the supported capabilities that
// are available but not yet agreed to. It returns false if there is nothing
// to request.
func (server *Server) PrepareCapRequest() (Message, bool) {
	requests := make([]string, 0, len(SupportedCaps))
	for _, name := range SupportedCaps {
		if _, ok := server.AvailableCaps[name]; ok && !server.HasCapability(name) {
			requests = append(requests, name)
		}
	}

	if len(requests) == 0 {
		return Message{}, false
	}

	return NewMessage("CAP", "REQ", strings.Join(requests, " ")), true
}

// AddHandler adds a handler for the command. It runs after the ones already
// registered for it.
func (server *Server) AddHandler(command string, handler Handler) {
	command = strings.ToUpper(command)
	server.handlers[command] = append(server.handlers[command], handler)
}

// Dispatch applies the message to the state. It returns nil if there are no
// handlers for the command. Errors describe malformed parts of the message;
// the rest of the message is still applied, and the state stays consistent.
func (server *Server) Dispatch(msg Message) (*Emit, error) {
	msg.Command = strings.ToUpper(msg.Command)

	handlers := server.handlers[msg.Command]
	if len(handlers) == 0 {
		return nil, nil
	}

	emit := &Emit{Command: msg.Command}

	var errs []error
	for _, handler := range handlers {
		if err := handler(server, &msg, emit); err != nil {
			errs = append(errs, err)
		}
	}

	server.handleTags(&msg)

	err := errors.Join(errs...)
	if err != nil {
		server.logger.Debug().
			Str("command", msg.Command).
			Str("name", NumericName(msg.Command)).
			Err(err).
			Msg("Ignored malformed message")
	}

	return emit, err
}

// DispatchLine parses the line and dispatches it.
func (server *Server) DispatchLine(line string) (*Emit, error) {
	msg, err := ParseMessage(line)
	if err != nil {
		return nil, err
	}

	return server.Dispatch(msg)
}

func (server *Server) now() time.Time {
	return server.config.Clock()
}

func (server *Server) name(normal string) Name {
	return Name{Normal: normal, Folded: server.Casefold(normal)}
}
