package ircstate

import (
	"encoding/json"

	"github.com/rs/zerolog"
)

// EnableDebug logs every emit that passes through the tracker at debug
// level. Handlers added after EnableDebug will not have their effects shown
// in the logged users and channels.
func (tracker *Tracker) EnableDebug(logger zerolog.Logger) {
	tracker.AddHandler(func(emit *Emit, server *Server) {
		data, err := json.Marshal(emit)
		if err != nil {
			return
		}

		logger.Debug().
			Str("session", server.Name).
			RawJSON("emit", data).
			Msg("Dispatched")
	})
}
