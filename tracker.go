package ircstate

import (
	"bufio"
	"context"
	"errors"
	"io"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// ErrDestroyed is returned when messages are pushed to a destroyed tracker.
var ErrDestroyed = errors.New("irc: tracker destroyed")

// An Observer is told about every dispatch. The metrics package has one.
type Observer interface {
	ObserveDispatch(command string, handled bool, err error)
	ObserveState(users, channels int)
}

// A Tracker owns a Server and applies messages to it in order on its own
// goroutine, so that messages can be pushed and the state read from
// anywhere. Construct it with NewTracker.
type Tracker struct {
	id     string
	config Config
	logger zerolog.Logger

	mutex    sync.RWMutex
	server   *Server
	handlers []EmitHandler
	observer Observer

	ctx    context.Context
	cancel context.CancelFunc
	queue  chan *push
	done   chan struct{}

	// closed is set under queueMutex before the queue is drained, so
	// nothing can be queued after the drain.
	queueMutex sync.Mutex
	closed     bool
}

type push struct {
	msg        Message
	disconnect bool

	err    error
	ctx    context.Context
	cancel context.CancelFunc
}

// NewTracker creates a tracker and starts its loop. It's destroyed when
// the context is cancelled or Destroy is called.
func NewTracker(ctx context.Context, config Config) *Tracker {
	config = config.WithDefaults()

	tracker := &Tracker{
		id:     uuid.NewString(),
		config: config,
		server: NewServer(config),
		queue:  make(chan *push, config.Buffer),
		done:   make(chan struct{}),
	}
	tracker.logger = config.Logger.With().
		Str("session", config.Name).
		Str("tracker", tracker.id).
		Logger()

	tracker.ctx, tracker.cancel = context.WithCancel(ctx)

	go tracker.loop()

	return tracker
}

// ID gets the unique identifier of the tracker.
func (tracker *Tracker) ID() string {
	return tracker.id
}

// Context gets the tracker's context. It's cancelled if the parent context
// used in NewTracker is, or Destroy is called.
func (tracker *Tracker) Context() context.Context {
	return tracker.ctx
}

// AddHandler adds a function that is called with the emit of every
// dispatched message, after the state has been updated. It runs on the
// tracker's goroutine, and must not call methods that wait on it.
func (tracker *Tracker) AddHandler(handler EmitHandler) {
	tracker.mutex.Lock()
	tracker.handlers = append(tracker.handlers, handler)
	tracker.mutex.Unlock()
}

// SetObserver sets the observer, replacing any previous one.
func (tracker *Tracker) SetObserver(observer Observer) {
	tracker.mutex.Lock()
	tracker.observer = observer
	tracker.mutex.Unlock()
}

// Push queues the message. The returned context is done once the message has
// been applied.
func (tracker *Tracker) Push(msg Message) context.Context {
	return tracker.enqueue(&push{msg: msg})
}

// PushSync queues the message and waits for it to be applied. It returns
// the dispatch error, if any.
func (tracker *Tracker) PushSync(ctx context.Context, msg Message) error {
	return tracker.run(ctx, &push{msg: msg})
}

// PushLine parses the line and pushes it with PushSync.
func (tracker *Tracker) PushLine(ctx context.Context, line string) error {
	msg, err := ParseMessage(line)
	if err != nil {
		return err
	}

	return tracker.PushSync(ctx, msg)
}

// Disconnected tells the tracker the connection was lost, and waits until
// the users and channels are forgotten.
func (tracker *Tracker) Disconnected(ctx context.Context) error {
	return tracker.run(ctx, &push{disconnect: true})
}

// Replay pushes every line of the reader in order and waits for them to be
// applied. Blank lines are skipped, and lines that can't be parsed or
// dispatched are logged and counted as failed.
func (tracker *Tracker) Replay(ctx context.Context, reader io.Reader) (applied, failed int, err error) {
	scanner := bufio.NewScanner(reader)
	scanner.Buffer(make([]byte, 0, 4096), 65536)

	for scanner.Scan() {
		line := strings.TrimRight(scanner.Text(), "\r\n")
		if line == "" {
			continue
		}

		msg, parseErr := ParseMessage(line)
		if parseErr != nil {
			tracker.logger.Warn().Err(parseErr).Str("line", line).Msg("Skipped unparseable line")
			failed++
			continue
		}

		switch err := tracker.run(ctx, &push{msg: msg}); {
		case err == nil:
			applied++
		case errors.Is(err, ErrDestroyed) || ctx.Err() != nil:
			return applied, failed, err
		default:
			failed++
		}
	}

	return applied, failed, scanner.Err()
}

// Read calls the function with the server while no messages are applied.
// The server must not be kept or modified after the function returns.
func (tracker *Tracker) Read(cb func(server *Server)) {
	tracker.mutex.RLock()
	defer tracker.mutex.RUnlock()

	cb(tracker.server)
}

// Snapshot gets a copy of the state.
func (tracker *Tracker) Snapshot() *Snapshot {
	tracker.mutex.RLock()
	defer tracker.mutex.RUnlock()

	snapshot := tracker.server.Snapshot()
	snapshot.ID = tracker.id

	return snapshot
}

// Destroy stops the tracker's loop. Pushing after this fails.
func (tracker *Tracker) Destroy() {
	tracker.cancel()
	<-tracker.done
}

// Destroyed returns true if the tracker has been destroyed.
func (tracker *Tracker) Destroyed() bool {
	select {
	case <-tracker.ctx.Done():
		return true
	default:
		return false
	}
}

func (tracker *Tracker) enqueue(p *push) context.Context {
	p.ctx, p.cancel = context.WithCancel(context.Background())

	tracker.queueMutex.Lock()
	defer tracker.queueMutex.Unlock()

	if tracker.closed {
		p.err = ErrDestroyed
		p.cancel()
		return p.ctx
	}

	select {
	case tracker.queue <- p:
	case <-tracker.ctx.Done():
		p.err = ErrDestroyed
		p.cancel()
	}

	return p.ctx
}

// run pushes and waits for the result.
func (tracker *Tracker) run(ctx context.Context, p *push) error {
	tracker.enqueue(p)

	select {
	case <-p.ctx.Done():
		return p.err
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (tracker *Tracker) loop() {
	defer close(tracker.done)

	ticker := time.NewTicker(time.Second * 30)
	defer ticker.Stop()

	for {
		select {
		case p := <-tracker.queue:
			tracker.apply(p)
		case <-ticker.C:
			tracker.observeState()
		case <-tracker.ctx.Done():
			// A blocked enqueue sees ctx.Done as well, so this can't wait
			// on a full queue.
			tracker.queueMutex.Lock()
			tracker.closed = true
			tracker.queueMutex.Unlock()

			// Anything still queued is dropped, but its waiters are released.
			for {
				select {
				case p := <-tracker.queue:
					p.err = ErrDestroyed
					p.cancel()
				default:
					return
				}
			}
		}
	}
}

func (tracker *Tracker) apply(p *push) {
	defer p.cancel()

	tracker.mutex.Lock()
	defer tracker.mutex.Unlock()

	if p.disconnect {
		tracker.server.Disconnect()
		tracker.logger.Debug().Msg("Disconnected")
		return
	}

	emit, err := tracker.server.Dispatch(p.msg)
	p.err = err

	if tracker.observer != nil {
		tracker.observer.ObserveDispatch(p.msg.Command, emit != nil, err)
		tracker.observer.ObserveState(len(tracker.server.users), len(tracker.server.channels))
	}

	if emit == nil {
		return
	}

	for _, handler := range tracker.handlers {
		handler(emit, tracker.server)
	}
}

func (tracker *Tracker) observeState() {
	tracker.mutex.RLock()
	defer tracker.mutex.RUnlock()

	if tracker.observer != nil {
		tracker.observer.ObserveState(len(tracker.server.users), len(tracker.server.channels))
	}
}
