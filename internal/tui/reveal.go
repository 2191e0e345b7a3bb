// internal/tui/reveal.go
//
// Tile reveal animation schedule.
// After a row is submitted each tile starts flipping c*RevealStagger after
// the submit and shows its colour RevealDuration later. The schedule only
// affects presentation: the board already holds the highlights.

package tui

import (
	"time"

	"github.com/gammazero/deque"

	"github.com/robalobadob/wordgrid/internal/game"
)

const (
	RevealStagger  = 150 * time.Millisecond
	RevealDuration = 500 * time.Millisecond
)

// Phase is the display phase of one tile.
type Phase int

const (
	// Shown is the zero value so rows never scheduled display normally.
	Shown Phase = iota
	Pending
	Flipping
)

type revealTask struct {
	at    time.Time
	row   int
	col   int
	phase Phase
}

// Reveal tracks tile phases and the queue of pending phase changes.
// The queue is kept in due order.
type Reveal struct {
	q      deque.Deque[revealTask]
	phases [game.MaxAttempts][game.WordLength]Phase
}

// Start schedules the reveal of row beginning at now. Any reveal still in
// progress is completed first.
func (r *Reveal) Start(row int, now time.Time) {
	if row < 0 || row >= game.MaxAttempts {
		return
	}
	r.Finish()
	for c := 0; c < game.WordLength; c++ {
		r.phases[row][c] = Pending
	}
	// Flip starts and ends interleave; merge the two ascending sequences.
	starts := make([]revealTask, 0, game.WordLength)
	ends := make([]revealTask, 0, game.WordLength)
	for c := 0; c < game.WordLength; c++ {
		off := time.Duration(c) * RevealStagger
		starts = append(starts, revealTask{at: now.Add(off), row: row, col: c, phase: Flipping})
		ends = append(ends, revealTask{at: now.Add(RevealDuration + off), row: row, col: c, phase: Shown})
	}
	i, j := 0, 0
	for i < len(starts) || j < len(ends) {
		if j == len(ends) || (i < len(starts) && !ends[j].at.Before(starts[i].at)) {
			r.q.PushBack(starts[i])
			i++
			continue
		}
		r.q.PushBack(ends[j])
		j++
	}
}

// Advance applies every change due at or before now. It returns the wait
// until the next change, and false once nothing is pending.
func (r *Reveal) Advance(now time.Time) (time.Duration, bool) {
	for r.q.Len() > 0 {
		t := r.q.Front()
		if t.at.After(now) {
			return t.at.Sub(now), true
		}
		r.q.PopFront()
		r.phases[t.row][t.col] = t.phase
	}
	return 0, false
}

// Finish applies all pending changes immediately.
func (r *Reveal) Finish() {
	for r.q.Len() > 0 {
		t := r.q.PopFront()
		r.phases[t.row][t.col] = t.phase
	}
}

// Pending reports whether any change is still scheduled.
func (r *Reveal) Pending() bool { return r.q.Len() > 0 }

// Phase returns the display phase of a tile.
func (r *Reveal) Phase(row, col int) Phase {
	if row < 0 || row >= game.MaxAttempts || col < 0 || col >= game.WordLength {
		return Shown
	}
	return r.phases[row][col]
}

// RowShown reports whether every tile of row has finished revealing.
func (r *Reveal) RowShown(row int) bool {
	for c := 0; c < game.WordLength; c++ {
		if r.Phase(row, c) != Shown {
			return false
		}
	}
	return true
}
