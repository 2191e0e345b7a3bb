// internal/tui/model.go
//
// Terminal front end for one session.
// Responsibilities:
//   - Map terminal keys to logical keys and post them to the session loop.
//   - Receive session updates and redraw (grid, notice, keyboard).
//   - Drive the tile reveal schedule with tea.Tick.
//
// The model never changes game state itself; it only renders the session's
// View, so presses arriving over HTTP show up here too.

package tui

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/rs/zerolog/log"

	"github.com/robalobadob/wordgrid/internal/game"
	"github.com/robalobadob/wordgrid/internal/input"
	"github.com/robalobadob/wordgrid/internal/keyboard"
	"github.com/robalobadob/wordgrid/internal/session"
)

// updateMsg carries one session update into the tea loop.
type updateMsg session.Update

// closedMsg signals the session stopped.
type closedMsg struct{}

// keyBuffer bounds keys queued between the tea loop and the session.
const keyBuffer = 256

// revealTickMsg wakes the model to advance the reveal schedule.
type revealTickMsg time.Time

// Model is the bubbletea model for one session.
type Model struct {
	sess    *session.Session
	updates <-chan session.Update
	stop    func()
	keys    chan input.Key // drained in order by forwardKeys
	now     func() time.Time

	view   session.View
	reveal Reveal
	footer string
}

// New subscribes to sess. footer is shown under the keyboard when non-empty.
func New(sess *session.Session, footer string) Model {
	updates, stop := sess.Subscribe()
	return Model{
		sess:    sess,
		updates: updates,
		stop:    stop,
		keys:    make(chan input.Key, keyBuffer),
		now:     time.Now,
		view:    sess.View(),
		footer:  footer,
	}
}

// Run starts the program and blocks until the player quits.
func Run(ctx context.Context, sess *session.Session, footer string) error {
	return run(ctx, New(sess, footer), tea.WithAltScreen())
}

func run(ctx context.Context, m Model, opts ...tea.ProgramOption) error {
	defer m.stop()

	fctx, cancel := context.WithCancel(ctx)
	defer cancel()
	go forwardKeys(fctx, m.sess, m.keys)

	opts = append([]tea.ProgramOption{tea.WithContext(ctx)}, opts...)
	_, err := tea.NewProgram(m, opts...).Run()
	if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
		return nil
	}
	return err
}

func (m Model) Init() tea.Cmd {
	return waitForUpdate(m.updates)
}

// waitForUpdate blocks on the next session update.
func waitForUpdate(ch <-chan session.Update) tea.Cmd {
	return func() tea.Msg {
		u, ok := <-ch
		if !ok {
			return closedMsg{}
		}
		return updateMsg(u)
	}
}

// forwardKeys posts queued keys to sess one at a time, preserving press order.
func forwardKeys(ctx context.Context, sess *session.Session, keys <-chan input.Key) {
	for {
		select {
		case <-ctx.Done():
			return
		case k := <-keys:
			if err := sess.Post(ctx, k); err != nil {
				log.Debug().Err(err).Str("key", string(k)).Msg("post key")
				if errors.Is(err, session.ErrClosed) {
					return
				}
			}
		}
	}
}

// enqueue hands keys to the forwarder without blocking the tea loop.
func (m Model) enqueue(keys []input.Key) {
	for _, k := range keys {
		select {
		case m.keys <- k:
		default:
			log.Warn().Str("key", string(k)).Msg("key buffer full, dropping key")
		}
	}
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyCtrlC, tea.KeyEsc:
			return m, tea.Quit
		}
		m.enqueue(keysFor(msg))
		return m, nil

	case updateMsg:
		m.view = msg.View
		for _, e := range msg.Effects {
			if r, ok := e.(input.RowRevealed); ok {
				m.reveal.Start(r.Row, m.now())
			}
		}
		tick := m.scheduleTick()
		return m, tea.Batch(waitForUpdate(m.updates), tick)

	case revealTickMsg:
		tick := m.scheduleTick()
		return m, tick

	case closedMsg:
		return m, tea.Quit
	}
	return m, nil
}

// scheduleTick applies due reveal changes and arms a tick for the next one.
func (m *Model) scheduleTick() tea.Cmd {
	wait, ok := m.reveal.Advance(m.now())
	if !ok {
		return nil
	}
	return tea.Tick(wait, func(t time.Time) tea.Msg { return revealTickMsg(t) })
}

// keysFor maps a terminal key message to logical keys. Runes read together
// (fast typing, paste) yield one key per letter; other runes are skipped.
func keysFor(msg tea.KeyMsg) []input.Key {
	switch msg.Type {
	case tea.KeyEnter:
		return []input.Key{input.KeyEnter}
	case tea.KeyBackspace:
		return []input.Key{input.KeyBackspace}
	case tea.KeyLeft:
		return []input.Key{input.KeyArrowLeft}
	case tea.KeyRight:
		return []input.Key{input.KeyArrowRight}
	case tea.KeyRunes:
		var out []input.Key
		for _, r := range msg.Runes {
			k := input.Key(string(r))
			if _, ok := k.Letter(); ok {
				out = append(out, k)
			}
		}
		return out
	}
	return nil
}

func (m Model) View() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("W O R D G R I D"))
	b.WriteString("\n")

	notice := m.view.Notice
	if notice == "" && m.view.Status.Terminal() && !m.reveal.Pending() {
		notice = gameOverText(m.view)
	}
	if notice != "" {
		b.WriteString(noticeStyle.Render(notice))
	}
	b.WriteString("\n\n")

	for r := 0; r < game.MaxAttempts; r++ {
		b.WriteString(m.renderRow(r))
		b.WriteString("\n")
	}
	b.WriteString("\n")
	b.WriteString(m.renderKeyboard())

	help := "type letters · ←/→ move · enter submit · esc quit"
	if m.footer != "" {
		help += "\n" + m.footer
	}
	b.WriteString(helpStyle.Render(help))
	return lipgloss.NewStyle().Padding(1, 2).Render(b.String())
}

func gameOverText(v session.View) string {
	if v.Status == game.Won {
		return "Solved!"
	}
	return fmt.Sprintf("The word was %s", v.Solution)
}

func (m Model) renderRow(r int) string {
	tiles := make([]string, game.WordLength)
	for c := 0; c < game.WordLength; c++ {
		letter := " "
		if r < len(m.view.Grid) && m.view.Grid[r][c] != "" {
			letter = m.view.Grid[r][c]
		}
		style := tileStyle
		switch m.reveal.Phase(r, c) {
		case Shown:
			if r < len(m.view.Highlights) {
				style = style.Background(highlightColor(m.view.Highlights[r][c]))
			}
		case Flipping:
			style = style.Background(colorFlipping)
		}
		if !m.view.Status.Terminal() && m.view.Cursor == (game.Cursor{Row: r, Col: c}) {
			style = cursorStyle
		}
		tiles[c] = style.Render(letter)
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, tiles...)
}

// letterStates returns the best highlight seen per letter on fully revealed rows.
func (m Model) letterStates() map[string]game.Highlight {
	rank := map[game.Highlight]int{game.Absent: 1, game.Present: 2, game.Correct: 3}
	out := make(map[string]game.Highlight)
	for r := range m.view.Highlights {
		if !m.reveal.RowShown(r) {
			continue
		}
		for c, h := range m.view.Highlights[r] {
			if h == game.Unsubmitted {
				continue
			}
			l := m.view.Grid[r][c]
			if rank[h] > rank[out[l]] {
				out[l] = h
			}
		}
	}
	return out
}

func (m Model) renderKeyboard() string {
	states := m.letterStates()
	var rows []string
	for _, row := range keyboard.Layout() {
		keys := make([]string, 0, len(row))
		for _, k := range row {
			style := keyStyle
			if h, ok := states[string(k.Key)]; ok {
				style = style.Background(highlightColor(h))
			}
			keys = append(keys, style.Render(k.Label))
		}
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, keys...))
	}
	return lipgloss.JoinVertical(lipgloss.Center, rows...)
}
