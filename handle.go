package ircstate

// A Handler applies one kind of message to the server state, filling in the
// parts of the emit it knows about. All handlers registered for a command
// share the same emit.
type Handler func(server *Server, msg *Message, emit *Emit) error

// An EmitHandler is a function that is part of the tracker's loop. It will
// receive the emit of every dispatched message that had handlers.
type EmitHandler func(emit *Emit, server *Server)
