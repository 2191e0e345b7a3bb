package tui

import (
	"context"
	"io"
	"reflect"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/robalobadob/wordgrid/internal/game"
	"github.com/robalobadob/wordgrid/internal/input"
	"github.com/robalobadob/wordgrid/internal/session"
)

func TestKeysFor(t *testing.T) {
	tests := []struct {
		msg  tea.KeyMsg
		want []input.Key
	}{
		{tea.KeyMsg{Type: tea.KeyEnter}, []input.Key{input.KeyEnter}},
		{tea.KeyMsg{Type: tea.KeyBackspace}, []input.Key{input.KeyBackspace}},
		{tea.KeyMsg{Type: tea.KeyLeft}, []input.Key{input.KeyArrowLeft}},
		{tea.KeyMsg{Type: tea.KeyRight}, []input.Key{input.KeyArrowRight}},
		{tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'q'}}, []input.Key{"q"}},
		{tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'Z'}}, []input.Key{"Z"}},
		{tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'7'}}, nil},
		{tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("ab")}, []input.Key{"a", "b"}},
		{tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("c-r1ane")}, []input.Key{"c", "r", "a", "n", "e"}},
		{tea.KeyMsg{Type: tea.KeyUp}, nil},
	}
	for _, tt := range tests {
		got := keysFor(tt.msg)
		if !reflect.DeepEqual(got, tt.want) {
			t.Errorf("keysFor(%v) = %q, want %q", tt.msg, got, tt.want)
		}
	}
}

func newTestModel(t *testing.T) (Model, *session.Session) {
	t.Helper()
	allow := game.DictionaryFunc(func(string) bool { return true })
	sess, err := session.New("tui", "CRANE", allow)
	if err != nil {
		t.Fatalf("session.New: %v", err)
	}
	ctx, cancel := context.WithCancel(context.Background())
	go func() { _ = sess.Run(ctx) }()
	t.Cleanup(func() {
		cancel()
		<-sess.Done()
	})
	return New(sess, "http token: abc"), sess
}

func TestModelRendersSessionUpdates(t *testing.T) {
	m, sess := newTestModel(t)
	t0 := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	m.now = func() time.Time { return t0 }

	for _, k := range []input.Key{"S", "L", "O", "T", "H"} {
		if _, err := sess.Press(context.Background(), k); err != nil {
			t.Fatalf("Press: %v", err)
		}
	}
	v, err := sess.Press(context.Background(), input.KeyEnter)
	if err != nil {
		t.Fatalf("Press: %v", err)
	}
	next, cmd := m.Update(updateMsg{View: v, Effects: []input.Effect{
		input.RowRevealed{Row: 0, Word: "SLOTH", Highlights: v.Highlights[0]},
	}})
	m = next.(Model)
	if cmd == nil {
		t.Fatalf("no follow-up command after update")
	}
	if !m.reveal.Pending() || m.reveal.Phase(0, 4) != Pending {
		t.Fatalf("row 0 reveal not scheduled")
	}
	if _, ok := m.letterStates()["S"]; ok {
		t.Fatalf("keyboard coloured before reveal finished")
	}

	m.now = func() time.Time { return t0.Add(2 * time.Second) }
	next, _ = m.Update(revealTickMsg(m.now()))
	m = next.(Model)
	if m.reveal.Pending() {
		t.Fatalf("reveal still pending")
	}
	if got := m.letterStates()["S"]; got != game.Absent {
		t.Fatalf("S state = %q, want absent", got)
	}

	out := m.View()
	for _, want := range []string{"S", "H", "http token: abc"} {
		if !strings.Contains(out, want) {
			t.Fatalf("view missing %q", want)
		}
	}
}

func TestModelShowsNotice(t *testing.T) {
	m, _ := newTestModel(t)
	v := m.view
	v.Notice = input.NotInWordListText
	next, _ := m.Update(updateMsg{View: v})
	if out := next.(Model).View(); !strings.Contains(out, input.NotInWordListText) {
		t.Fatalf("notice not rendered")
	}
}

func TestModelQuitKeys(t *testing.T) {
	m, _ := newTestModel(t)
	for _, k := range []tea.KeyType{tea.KeyCtrlC, tea.KeyEsc} {
		_, cmd := m.Update(tea.KeyMsg{Type: k})
		if cmd == nil {
			t.Fatalf("%v: no command", k)
		}
		if _, ok := cmd().(tea.QuitMsg); !ok {
			t.Fatalf("%v did not quit", k)
		}
	}
}

func rowOf(v session.View, r int) string {
	return strings.Join(v.Grid[r], "")
}

func waitForRow(t *testing.T, sess *session.Session, want string) {
	t.Helper()
	deadline := time.After(3 * time.Second)
	for rowOf(sess.View(), 0) != want {
		select {
		case <-deadline:
			t.Fatalf("row = %q, want %q", rowOf(sess.View(), 0), want)
		case <-time.After(5 * time.Millisecond):
		}
	}
}

func TestModelQueuesLettersInOrder(t *testing.T) {
	m, sess := newTestModel(t)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go forwardKeys(ctx, sess, m.keys)

	for _, r := range "crane" {
		if _, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}}); cmd != nil {
			t.Fatalf("letter %q produced a command", r)
		}
	}
	waitForRow(t, sess, "CRANE")
}

// startProgram runs a real program reading keys from a pipe.
func startProgram(t *testing.T, sess *session.Session) *io.PipeWriter {
	t.Helper()
	pr, pw := io.Pipe()
	ctx, cancel := context.WithCancel(context.Background())
	errc := make(chan error, 1)
	go func() {
		errc <- run(ctx, New(sess, ""), tea.WithInput(pr), tea.WithOutput(io.Discard), tea.WithoutRenderer())
	}()
	t.Cleanup(func() {
		cancel()
		_ = pw.Close()
		select {
		case err := <-errc:
			if err != nil {
				t.Errorf("run: %v", err)
			}
		case <-time.After(3 * time.Second):
			t.Errorf("program did not exit")
		}
	})
	return pw
}

func TestProgramKeepsKeyOrder(t *testing.T) {
	for trial := 0; trial < 10; trial++ {
		_, sess := newTestModel(t)
		pw := startProgram(t, sess)
		for _, b := range []byte("crane") {
			if _, err := pw.Write([]byte{b}); err != nil {
				t.Fatalf("write: %v", err)
			}
		}
		waitForRow(t, sess, "CRANE")
	}
}

func TestProgramAcceptsRunesReadTogether(t *testing.T) {
	_, sess := newTestModel(t)
	pw := startProgram(t, sess)
	if _, err := pw.Write([]byte("crane")); err != nil {
		t.Fatalf("write: %v", err)
	}
	waitForRow(t, sess, "CRANE")
}

func TestModelQuitsWhenSessionCloses(t *testing.T) {
	m, sess := newTestModel(t)
	sess.Close()
	<-sess.Done()
	msg := waitForUpdate(m.updates)()
	// Buffered updates may precede the close.
	for {
		if _, ok := msg.(closedMsg); ok {
			break
		}
		msg = waitForUpdate(m.updates)()
	}
	if _, cmd := m.Update(msg); cmd == nil {
		t.Fatalf("closed session did not quit")
	}
}
