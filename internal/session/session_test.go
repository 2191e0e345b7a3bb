package session

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/robalobadob/wordgrid/internal/game"
	"github.com/robalobadob/wordgrid/internal/input"
)

// manualTimers records scheduled callbacks so tests fire them explicitly.
type manualTimers struct {
	mu    sync.Mutex
	fns   []func()
	delay []time.Duration
}

func (m *manualTimers) afterFunc(d time.Duration, f func()) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.fns = append(m.fns, f)
	m.delay = append(m.delay, d)
}

func (m *manualTimers) fire(i int) {
	m.mu.Lock()
	f := m.fns[i]
	m.mu.Unlock()
	f()
}

func (m *manualTimers) count() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.fns)
}

func startSession(t *testing.T, dict game.Dictionary, opts ...Option) *Session {
	t.Helper()
	s, err := New("test", "CRANE", dict, opts...)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	ctx, cancel := context.WithCancel(context.Background())
	go func() { _ = s.Run(ctx) }()
	t.Cleanup(func() {
		cancel()
		<-s.Done()
	})
	return s
}

func press(t *testing.T, s *Session, keys ...input.Key) View {
	t.Helper()
	var v View
	for _, k := range keys {
		var err error
		v, err = s.Press(context.Background(), k)
		if err != nil {
			t.Fatalf("Press(%q): %v", k, err)
		}
	}
	return v
}

func word(w string) []input.Key {
	out := make([]input.Key, 0, len(w))
	for _, r := range w {
		out = append(out, input.Key(string(r)))
	}
	return out
}

var allowAll = game.DictionaryFunc(func(string) bool { return true })

func TestPressReturnsViewForThatEvent(t *testing.T) {
	s := startSession(t, allowAll)
	v := press(t, s, word("cr")...)
	if v.Grid[0][0] != "C" || v.Grid[0][1] != "R" || v.Grid[0][2] != "" {
		t.Fatalf("row 0 = %v", v.Grid[0])
	}
	if v.Cursor != (game.Cursor{Row: 0, Col: 2}) {
		t.Fatalf("cursor = %+v", v.Cursor)
	}
	if v.Status != game.InProgress || v.Solution != "" {
		t.Fatalf("status = %s solution = %q", v.Status, v.Solution)
	}
	if got := s.View(); got.Cursor != v.Cursor {
		t.Fatalf("View() cursor = %+v, want %+v", got.Cursor, v.Cursor)
	}
}

func TestWinRevealsSolutionAndHighlights(t *testing.T) {
	s := startSession(t, allowAll)
	v := press(t, s, append(word("CRANE"), input.KeyEnter)...)
	if v.Status != game.Won {
		t.Fatalf("status = %s, want won", v.Status)
	}
	if v.Solution != "CRANE" {
		t.Fatalf("solution = %q", v.Solution)
	}
	for c, h := range v.Highlights[0] {
		if h != game.Correct {
			t.Fatalf("highlight[0][%d] = %s", c, h)
		}
	}
	if v.Highlights[1][0] != game.Unsubmitted {
		t.Fatalf("row 1 should be unsubmitted")
	}
}

func TestNoticeExpiresByGeneration(t *testing.T) {
	timers := &manualTimers{}
	deny := game.DictionaryFunc(func(string) bool { return false })
	s := startSession(t, deny, WithAfterFunc(timers.afterFunc))

	press(t, s, word("QZXVJ")...)
	v := press(t, s, input.KeyEnter)
	if v.Notice != input.NotInWordListText {
		t.Fatalf("notice = %q", v.Notice)
	}
	press(t, s, input.KeyEnter) // second notice supersedes the first
	if timers.count() != 2 {
		t.Fatalf("timers = %d, want 2", timers.count())
	}
	if timers.delay[0] != input.NoticeTTL {
		t.Fatalf("delay = %v, want %v", timers.delay[0], input.NoticeTTL)
	}

	updates, stop := s.Subscribe()
	defer stop()

	timers.fire(0) // stale
	u := <-updates
	if u.View.Notice == "" {
		t.Fatalf("stale expiry cleared the newer notice")
	}
	timers.fire(1)
	u = <-updates
	if u.View.Notice != "" {
		t.Fatalf("notice = %q, want cleared", u.View.Notice)
	}
	if u.View.Grid[0][0] != "Q" {
		t.Fatalf("grid changed by expiry")
	}
}

func TestProducersShareOneLoop(t *testing.T) {
	s := startSession(t, allowAll)
	updates, stop := s.Subscribe()
	defer stop()

	var wg sync.WaitGroup
	for _, k := range []input.Key{"A", "B"} {
		wg.Add(1)
		go func(k input.Key) {
			defer wg.Done()
			if err := s.Post(context.Background(), k); err != nil {
				t.Errorf("Post: %v", err)
			}
		}(k)
	}
	wg.Wait()

	var last View
	for i := 0; i < 2; i++ {
		select {
		case u := <-updates:
			last = u.View
		case <-time.After(2 * time.Second):
			t.Fatalf("timed out waiting for update %d", i)
		}
	}
	filled := 0
	for _, c := range last.Grid[0] {
		if c != "" {
			filled++
		}
	}
	if filled != 2 || last.Cursor.Col != 2 {
		t.Fatalf("row = %v cursor = %+v", last.Grid[0], last.Cursor)
	}
}

func TestSubscriberSeesRowRevealedEffect(t *testing.T) {
	s := startSession(t, allowAll)
	updates, stop := s.Subscribe()
	defer stop()

	press(t, s, append(word("SLOTH"), input.KeyEnter)...)
	var found bool
	for i := 0; i < 6; i++ {
		u := <-updates
		for _, e := range u.Effects {
			if r, ok := e.(input.RowRevealed); ok && r.Row == 0 && r.Word == "SLOTH" {
				found = true
			}
		}
	}
	if !found {
		t.Fatalf("no RowRevealed effect published")
	}
}

func TestClosedSession(t *testing.T) {
	s, err := New("x", "CRANE", allowAll)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	updates, _ := s.Subscribe()
	go func() { _ = s.Run(context.Background()) }()
	s.Close()
	s.Close()
	<-s.Done()

	if _, ok := <-updates; ok {
		t.Fatalf("subscription not closed")
	}
	if _, err := s.Press(context.Background(), "A"); !errors.Is(err, ErrClosed) {
		t.Fatalf("Press err = %v, want ErrClosed", err)
	}
}

func TestNewRejectsBadSolution(t *testing.T) {
	if _, err := New("x", "TOOLONG", allowAll); err == nil {
		t.Fatalf("New accepted bad solution")
	}
}

func TestAcceptedKeysSurviveClose(t *testing.T) {
	s, err := New("x", "CRANE", allowAll)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	for _, k := range word("CRA") {
		if err := s.Post(context.Background(), k); err != nil {
			t.Fatalf("Post(%q): %v", k, err)
		}
	}
	s.Close()
	if err := s.Run(context.Background()); err != nil {
		t.Fatalf("Run: %v", err)
	}

	row := s.View().Grid[0]
	if row[0] != "C" || row[1] != "R" || row[2] != "A" {
		t.Fatalf("row 0 = %v, want accepted keys applied", row)
	}
	if err := s.Post(context.Background(), "N"); !errors.Is(err, ErrClosed) {
		t.Fatalf("Post after stop = %v, want ErrClosed", err)
	}
}

func TestPostRacingCloseIsNeverLost(t *testing.T) {
	for trial := 0; trial < 50; trial++ {
		s, err := New("x", "CRANE", allowAll)
		if err != nil {
			t.Fatalf("New: %v", err)
		}
		go func() { _ = s.Run(context.Background()) }()

		accepted := make(chan int, 1)
		go func() {
			n := 0
			for _, k := range word("CRANE") {
				if s.Post(context.Background(), k) != nil {
					break
				}
				n++
			}
			accepted <- n
		}()
		s.Close()
		n := <-accepted
		<-s.Done()

		filled := 0
		for _, c := range s.View().Grid[0] {
			if c != "" {
				filled++
			}
		}
		if filled != n {
			t.Fatalf("trial %d: %d keys accepted, %d applied", trial, n, filled)
		}
	}
}
