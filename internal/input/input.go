// internal/input/input.go
//
// Key-event processing for one game.
// Responsibilities:
//   - Parse logical key names (letters, Enter, Backspace, ArrowLeft, ArrowRight).
//   - Reduce(state, event) → (state, effects): the only place key events turn
//     into board mutations.
//   - Track the transient "Not in word list!" notice with a generation number,
//     so an expiry scheduled for an older notice never clears a newer one.
//
// Reduce is pure: it never sleeps, starts timers or does I/O. Timed work is
// returned as effects for the caller to schedule.

package input

import (
	"errors"
	"time"

	"github.com/robalobadob/wordgrid/internal/game"
)

// NoticeTTL is how long a notice stays visible.
const NoticeTTL = 2000 * time.Millisecond

// NotInWordListText is shown when a full row fails the dictionary check.
const NotInWordListText = "Not in word list!"

// Key is a logical key identifier. Origin (physical or on-screen) is irrelevant.
type Key string

const (
	KeyEnter      Key = "Enter"
	KeyBackspace  Key = "Backspace"
	KeyArrowLeft  Key = "ArrowLeft"
	KeyArrowRight Key = "ArrowRight"
)

// Letter returns the uppercase letter for a single a–z / A–Z key.
func (k Key) Letter() (rune, bool) {
	if len(k) != 1 {
		return 0, false
	}
	r := rune(k[0])
	switch {
	case r >= 'A' && r <= 'Z':
		return r, true
	case r >= 'a' && r <= 'z':
		return r - ('a' - 'A'), true
	}
	return 0, false
}

// Notice is the transient message shown above the grid.
type Notice struct {
	Text string `json:"text"`
	Gen  uint64 `json:"gen"`
}

// State is everything the game needs between events.
type State struct {
	Board   game.Board
	Notice  Notice
	LastGen uint64 // Generation handed to the most recent notice.
}

// NewState starts a game for solution.
func NewState(solution string) (State, error) {
	b, err := game.New(solution)
	if err != nil {
		return State{}, err
	}
	return State{Board: b}, nil
}

// Event is an input to Reduce.
type Event interface{ event() }

// Press is a key event.
type Press struct{ Key Key }

// ExpireNotice asks to clear the notice with generation Gen.
type ExpireNotice struct{ Gen uint64 }

func (Press) event()        {}
func (ExpireNotice) event() {}

// Effect is work produced by Reduce for the caller to carry out.
type Effect interface{ effect() }

// ShowNotice asks the caller to post ExpireNotice{Gen} after TTL.
type ShowNotice struct {
	Gen  uint64
	Text string
	TTL  time.Duration
}

// RowRevealed reports an accepted submit; presentation animates the row.
type RowRevealed struct {
	Row        int
	Word       string
	Highlights []game.Highlight
}

// GameOver reports the transition into a terminal status.
type GameOver struct {
	Status   game.Status
	Solution string
}

func (ShowNotice) effect()  {}
func (RowRevealed) effect() {}
func (GameOver) effect()    {}

// Reduce applies one event to s.
//
// Key handling, in order (every key is ignored once the game is over):
//  1. Enter: submit. Incomplete rows are ignored; unknown words raise a notice.
//  2. Backspace: clear the cell under the cursor, else the one to its left.
//  3. ArrowLeft / ArrowRight: move the cursor one column, clamped.
//  4. A letter: write it and advance to the next empty column.
//  5. Anything else: ignored.
func Reduce(s State, dict game.Dictionary, ev Event) (State, []Effect) {
	switch e := ev.(type) {
	case ExpireNotice:
		if s.Notice.Text != "" && s.Notice.Gen == e.Gen {
			s.Notice = Notice{}
		}
		return s, nil
	case Press:
		return press(s, dict, e.Key)
	}
	return s, nil
}

func press(s State, dict game.Dictionary, k Key) (State, []Effect) {
	b := &s.Board
	if b.Status().Terminal() {
		return s, nil
	}
	cur := b.Cursor()

	switch k {
	case KeyEnter:
		out, err := b.Submit(dict)
		switch {
		case errors.Is(err, game.ErrNotInWordList):
			s.LastGen++
			s.Notice = Notice{Text: NotInWordListText, Gen: s.LastGen}
			return s, []Effect{ShowNotice{Gen: s.LastGen, Text: NotInWordListText, TTL: NoticeTTL}}
		case err != nil:
			return s, nil
		}
		effects := []Effect{RowRevealed{Row: out.Row, Word: out.Word, Highlights: out.Highlights}}
		if out.Status.Terminal() {
			effects = append(effects, GameOver{Status: out.Status, Solution: b.Solution()})
		}
		return s, effects

	case KeyBackspace:
		if b.Cell(cur.Row, cur.Col) != 0 {
			b.ClearAt(cur.Col)
		} else if cur.Col > 0 {
			b.ClearAt(cur.Col - 1)
			b.MoveCursor(cur.Col - 1)
		}
		return s, nil

	case KeyArrowLeft:
		b.MoveCursor(cur.Col - 1)
		return s, nil

	case KeyArrowRight:
		b.MoveCursor(cur.Col + 1)
		return s, nil
	}

	if r, ok := k.Letter(); ok {
		b.SetLetter(r)
	}
	return s, nil
}
