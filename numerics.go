package ircstate

// Numeric replies understood by the tracker.
const (
	RPL_WELCOME         = "001" // :Welcome message
	RPL_ISUPPORT        = "005" // <token>... :are supported
	RPL_UMODEIS         = "221" // <modes>
	RPL_AWAY            = "301" // <nick> :<message>
	RPL_WHOISUSER       = "311" // <nick> <user> <host> * :<realname>
	RPL_CHANNELMODEIS   = "324" // <channel> <modes> <params>...
	RPL_CREATIONTIME    = "329" // <channel> <time>
	RPL_NOTOPIC         = "331" // <channel> :No topic is set
	RPL_TOPIC           = "332" // <channel> :<topic>
	RPL_TOPICWHOTIME    = "333" // <channel> <setter> <time>
	RPL_INVITELIST      = "346" // <channel> <mask>
	RPL_ENDOFINVITELIST = "347" // <channel> :End of list
	RPL_EXCEPTLIST      = "348" // <channel> <mask>
	RPL_ENDOFEXCEPTLIST = "349" // <channel> :End of list
	RPL_WHOREPLY        = "352" // <channel> <user> <host> <server> <nick> <flags> :<hopcount> <realname>
	RPL_NAMREPLY        = "353" // <symbol> <channel> :[prefix]<nick>...
	RPL_WHOSPCRPL       = "354" // <token> <fields>...
	RPL_ENDOFNAMES      = "366" // <channel> :End of /NAMES list
	RPL_BANLIST         = "367" // <channel> <mask> [<setter> <time>]
	RPL_ENDOFBANLIST    = "368" // <channel> :End of channel ban list
	RPL_MOTD            = "372" // :- <text>
	RPL_MOTDSTART       = "375" // :- <server> Message of the day -
	RPL_YOUREOPER       = "381" // :You are now an IRC operator
	RPL_VISIBLEHOST     = "396" // [<user>@]<host> :is now your visible host
	RPL_QUIETLIST       = "728" // <channel> <mode> <mask> [<setter> <time>]
	RPL_ENDOFQUIETLIST  = "729" // <channel> <mode> :End of channel quiet list
	RPL_LOGGEDIN        = "900" // <nick!user@host> <account> :You are now logged in
	RPL_LOGGEDOUT       = "901" // <nick!user@host> :You are now logged out
	RPL_SASLSUCCESS     = "903" // :SASL authentication successful
	ERR_SASLFAIL        = "904" // :SASL authentication failed
	ERR_SASLTOOLONG     = "905" // :SASL message too long
	ERR_SASLABORTED     = "906" // :SASL authentication aborted
	ERR_SASLALREADY     = "907" // :You have already authenticated
	RPL_SASLMECHS       = "908" // <mechanisms> :are available
)

var numericNames = map[string]string{
	RPL_WELCOME:         "RPL_WELCOME",
	RPL_ISUPPORT:        "RPL_ISUPPORT",
	RPL_UMODEIS:         "RPL_UMODEIS",
	RPL_AWAY:            "RPL_AWAY",
	RPL_WHOISUSER:       "RPL_WHOISUSER",
	RPL_CHANNELMODEIS:   "RPL_CHANNELMODEIS",
	RPL_CREATIONTIME:    "RPL_CREATIONTIME",
	RPL_NOTOPIC:         "RPL_NOTOPIC",
	RPL_TOPIC:           "RPL_TOPIC",
	RPL_TOPICWHOTIME:    "RPL_TOPICWHOTIME",
	RPL_INVITELIST:      "RPL_INVITELIST",
	RPL_ENDOFINVITELIST: "RPL_ENDOFINVITELIST",
	RPL_EXCEPTLIST:      "RPL_EXCEPTLIST",
	RPL_ENDOFEXCEPTLIST: "RPL_ENDOFEXCEPTLIST",
	RPL_WHOREPLY:        "RPL_WHOREPLY",
	RPL_NAMREPLY:        "RPL_NAMREPLY",
	RPL_WHOSPCRPL:       "RPL_WHOSPCRPL",
	RPL_ENDOFNAMES:      "RPL_ENDOFNAMES",
	RPL_BANLIST:         "RPL_BANLIST",
	RPL_ENDOFBANLIST:    "RPL_ENDOFBANLIST",
	RPL_MOTD:            "RPL_MOTD",
	RPL_MOTDSTART:       "RPL_MOTDSTART",
	RPL_YOUREOPER:       "RPL_YOUREOPER",
	RPL_VISIBLEHOST:     "RPL_VISIBLEHOST",
	RPL_QUIETLIST:       "RPL_QUIETLIST",
	RPL_ENDOFQUIETLIST:  "RPL_ENDOFQUIETLIST",
	RPL_LOGGEDIN:        "RPL_LOGGEDIN",
	RPL_LOGGEDOUT:       "RPL_LOGGEDOUT",
	RPL_SASLSUCCESS:     "RPL_SASLSUCCESS",
	ERR_SASLFAIL:        "ERR_SASLFAIL",
	ERR_SASLTOOLONG:     "ERR_SASLTOOLONG",
	ERR_SASLABORTED:     "ERR_SASLABORTED",
	ERR_SASLALREADY:     "ERR_SASLALREADY",
	RPL_SASLMECHS:       "RPL_SASLMECHS",
}

// NumericName gets the symbolic name of a numeric, e.g. "RPL_WELCOME" for
// "001". It returns the code itself if it's unknown.
func NumericName(code string) string {
	if name, ok := numericNames[code]; ok {
		return name
	}

	return code
}
