// internal/session/session.go
//
// Session runs one game as an event loop.
// Responsibilities:
//   - Own the game state; Run is its only reader and writer.
//   - Accept key events from any number of producers (terminal keyboard,
//     HTTP on-screen keyboard) through one channel, in arrival order.
//   - Execute effects returned by input.Reduce: notice expiry timers post an
//     ExpireNotice event back into the same channel instead of touching state.
//   - Publish a View after every processed event to subscribers.
//
// Subscribers never block the loop: a slow subscriber loses its oldest update.

package session

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/robalobadob/wordgrid/internal/game"
	"github.com/robalobadob/wordgrid/internal/input"
)

// ErrClosed is returned when pressing keys on a stopped session.
var ErrClosed = errors.New("session closed")

const (
	eventBuffer     = 32
	subscriberDepth = 64
)

// Update is published after each processed event.
type Update struct {
	View    View
	Effects []input.Effect
}

// Option configures a Session.
type Option func(*Session)

// WithAfterFunc replaces time.AfterFunc for scheduling notice expiry.
func WithAfterFunc(fn func(d time.Duration, f func())) Option {
	return func(s *Session) { s.afterFunc = fn }
}

type envelope struct {
	ev    input.Event
	reply chan View
}

// Session is one running game.
type Session struct {
	id        string
	dict      game.Dictionary
	events    chan envelope
	quit      chan struct{}
	stopping  chan struct{} // closed when Run leaves its loop
	done      chan struct{}
	closeOnce sync.Once
	afterFunc func(d time.Duration, f func())
	logger    zerolog.Logger

	state input.State // owned by Run

	lifeMu  sync.RWMutex // held shared by senders, exclusively to stop accepting
	stopped bool

	mu      sync.Mutex // guards view, subs, nextSub
	view    View
	subs    map[int]chan Update
	nextSub int
}

// New creates a session for solution. Call Run to start processing events.
func New(id, solution string, dict game.Dictionary, opts ...Option) (*Session, error) {
	st, err := input.NewState(solution)
	if err != nil {
		return nil, err
	}
	s := &Session{
		id:       id,
		dict:     dict,
		events:   make(chan envelope, eventBuffer),
		quit:     make(chan struct{}),
		stopping: make(chan struct{}),
		done:     make(chan struct{}),
		afterFunc: func(d time.Duration, f func()) {
			time.AfterFunc(d, f)
		},
		logger: log.With().Str("session", id).Logger(),
		state:  st,
		view:   Render(st),
		subs:   make(map[int]chan Update),
	}
	for _, o := range opts {
		o(s)
	}
	return s, nil
}

// ID returns the session identifier.
func (s *Session) ID() string { return s.id }

// View returns the latest published view.
func (s *Session) View() View {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.view
}

// Done is closed once Run has returned.
func (s *Session) Done() <-chan struct{} { return s.done }

// Close stops Run. Safe to call more than once.
func (s *Session) Close() {
	s.closeOnce.Do(func() { close(s.quit) })
}

// Run processes events until ctx is cancelled or Close is called. Events
// already accepted by Press or Post are still processed before it returns.
func (s *Session) Run(ctx context.Context) error {
	defer s.shutdown()
	s.logger.Debug().Msg("session started")
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-s.quit:
			return nil
		case env := <-s.events:
			v := s.handle(env.ev)
			if env.reply != nil {
				env.reply <- v
			}
		}
	}
}

// Press submits key and waits for the view it produced.
func (s *Session) Press(ctx context.Context, key input.Key) (View, error) {
	reply := make(chan View, 1)
	if err := s.send(ctx, envelope{ev: input.Press{Key: key}, reply: reply}); err != nil {
		return View{}, err
	}
	select {
	case v := <-reply:
		return v, nil
	case <-s.done:
		// Accepted events are answered before done closes.
		select {
		case v := <-reply:
			return v, nil
		default:
			return View{}, ErrClosed
		}
	case <-ctx.Done():
		return View{}, ctx.Err()
	}
}

// Post submits key without waiting for it to be processed.
func (s *Session) Post(ctx context.Context, key input.Key) error {
	return s.send(ctx, envelope{ev: input.Press{Key: key}})
}

// send enqueues env. A nil error means Run processes env before Done closes.
func (s *Session) send(ctx context.Context, env envelope) error {
	s.lifeMu.RLock()
	defer s.lifeMu.RUnlock()
	if s.stopped {
		return ErrClosed
	}
	select {
	case s.events <- env:
		return nil
	case <-s.stopping:
		return ErrClosed
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Subscribe returns a channel of updates and a function to stop receiving them.
// The channel is closed when the session stops or on unsubscribe.
func (s *Session) Subscribe() (<-chan Update, func()) {
	ch := make(chan Update, subscriberDepth)
	s.mu.Lock()
	id := s.nextSub
	s.nextSub++
	select {
	case <-s.done:
		close(ch)
	default:
		s.subs[id] = ch
	}
	s.mu.Unlock()

	return ch, func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		if c, ok := s.subs[id]; ok {
			delete(s.subs, id)
			close(c)
		}
	}
}

// handle reduces one event, runs its effects and publishes the result.
func (s *Session) handle(ev input.Event) View {
	next, effects := input.Reduce(s.state, s.dict, ev)
	s.state = next

	for _, e := range effects {
		switch e := e.(type) {
		case input.ShowNotice:
			gen := e.Gen
			s.afterFunc(e.TTL, func() { s.expire(gen) })
		case input.RowRevealed:
			s.logger.Debug().Int("row", e.Row).Str("word", e.Word).Msg("row submitted")
		case input.GameOver:
			s.logger.Info().Str("status", string(e.Status)).Int("rows", s.state.Board.CurrentRow()).Msg("game over")
		}
	}

	v := Render(s.state)
	s.publish(Update{View: v, Effects: effects})
	return v
}

// expire posts the notice expiry back into the loop.
func (s *Session) expire(gen uint64) {
	_ = s.send(context.Background(), envelope{ev: input.ExpireNotice{Gen: gen}})
}

func (s *Session) publish(u Update) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.view = u.View
	for _, ch := range s.subs {
		select {
		case ch <- u:
		default:
			// Drop the oldest update to make room.
			select {
			case <-ch:
			default:
			}
			select {
			case ch <- u:
			default:
			}
		}
	}
}

// shutdown stops accepting events, processes the ones already accepted,
// then closes done and every subscription.
func (s *Session) shutdown() {
	close(s.stopping)
	s.lifeMu.Lock()
	s.stopped = true
	s.lifeMu.Unlock()

	for drained := false; !drained; {
		select {
		case env := <-s.events:
			v := s.handle(env.ev)
			if env.reply != nil {
				env.reply <- v
			}
		default:
			drained = true
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	close(s.done)
	for id, ch := range s.subs {
		close(ch)
		delete(s.subs, id)
	}
	s.logger.Debug().Msg("session stopped")
}
