package ircstate

// defaultHandlers builds the handler table for a new server. Commands with
// more than one handler run them in the listed order.
func defaultHandlers() map[string][]Handler {
	return map[string][]Handler{
		// Registration
		RPL_WELCOME:     {(*Server).handleWelcome},
		RPL_ISUPPORT:    {(*Server).handleISupport},
		RPL_MOTDSTART:   {(*Server).handleMOTDStart, (*Server).handleMOTDLine},
		RPL_MOTD:        {(*Server).handleMOTDLine},
		RPL_YOUREOPER:   {(*Server).handleYoureOper},
		RPL_VISIBLEHOST: {(*Server).handleVisibleHost},
		RPL_LOGGEDIN:    {(*Server).handleLoggedIn},
		RPL_LOGGEDOUT:   {(*Server).handleLoggedOut},
		"CAP":           {(*Server).handleCap},

		// Membership
		"NICK":         {(*Server).handleNick},
		"JOIN":         {(*Server).handleJoin},
		"PART":         {(*Server).handlePart},
		"KICK":         {(*Server).handleKick},
		"QUIT":         {(*Server).handleQuit},
		"ERROR":        {(*Server).handleError},
		RPL_NAMREPLY:   {(*Server).handleNames},
		RPL_ENDOFNAMES: {(*Server).handleEndOfNames},

		// Channel properties
		RPL_CREATIONTIME:    {(*Server).handleCreationTime},
		"TOPIC":             {(*Server).handleTopic},
		RPL_TOPIC:           {(*Server).handleTopicNumeric},
		RPL_NOTOPIC:         {(*Server).handleNoTopic},
		RPL_TOPICWHOTIME:    {(*Server).handleTopicWhoTime},
		"MODE":              {(*Server).handleMode},
		RPL_CHANNELMODEIS:   {(*Server).handleChannelModeIs},
		RPL_UMODEIS:         {(*Server).handleUModeIs},
		RPL_BANLIST:         {(*Server).handleBanList},
		RPL_ENDOFBANLIST:    {(*Server).handleEndOfBanList},
		RPL_QUIETLIST:       {(*Server).handleQuietList},
		RPL_ENDOFQUIETLIST:  {(*Server).handleEndOfQuietList},
		RPL_EXCEPTLIST:      {(*Server).handleExceptList},
		RPL_ENDOFEXCEPTLIST: {(*Server).handleEndOfExceptList},
		RPL_INVITELIST:      {(*Server).handleInviteList},
		RPL_ENDOFINVITELIST: {(*Server).handleEndOfInviteList},

		// Messages
		"PRIVMSG": {(*Server).handleMessage},
		"NOTICE":  {(*Server).handleMessage},
		"TAGMSG":  {(*Server).handleMessage},

		// User properties
		RPL_WHOREPLY:  {(*Server).handleWho},
		RPL_WHOSPCRPL: {(*Server).handleWhox},
		RPL_WHOISUSER: {(*Server).handleWhoisUser},
		"CHGHOST":     {(*Server).handleChghost},
		"SETNAME":     {(*Server).handleSetname},
		RPL_AWAY:      {(*Server).handleAwayNumeric},
		"AWAY":        {(*Server).handleAway},
		"ACCOUNT":     {(*Server).handleAccount},
	}
}
