// internal/game/board.go
//
// Board is the authoritative guess grid for one game.
// Responsibilities:
//   - Hold the grid, the cursor and the game status.
//   - Expose only mutations that keep the invariants:
//       • only the current row is writable;
//       • the current row advances by exactly one per accepted submit;
//       • nothing changes once the game is won or lost.
//   - Derive per-row highlights on demand from the solution.
//
// Board is a plain value. Copying it copies the whole grid, so a caller
// holding an older copy never observes later mutations.

package game

import (
	"fmt"
	"strings"
)

// Board is one game's grid, cursor, status and solution.
type Board struct {
	grid     Grid
	cursor   Cursor
	status   Status
	solution string
}

// Outcome describes an accepted submit.
type Outcome struct {
	Row        int         // Index of the row just submitted.
	Word       string      // Letters of that row.
	Highlights []Highlight // Score of the row against the solution.
	Status     Status      // Status after the submit.
}

// New constructs an empty board for solution.
// The solution must be WordLength letters; it is uppercased.
func New(solution string) (Board, error) {
	sol := strings.ToUpper(strings.TrimSpace(solution))
	if len(sol) != WordLength || !isUpperAlpha(sol) {
		return Board{}, fmt.Errorf("game: invalid solution %q", solution)
	}
	return Board{status: InProgress, solution: sol}, nil
}

// Status reports the game status.
func (b Board) Status() Status { return b.status }

// Cursor reports the cursor position.
func (b Board) Cursor() Cursor { return b.cursor }

// CurrentRow is the index of the first unsubmitted row.
// It equals MaxAttempts once every row has been submitted.
func (b Board) CurrentRow() int { return b.cursor.Row }

// Solution returns the uppercase solution word.
func (b Board) Solution() string { return b.solution }

// Grid returns a copy of the grid.
func (b Board) Grid() Grid { return b.grid }

// Cell returns the letter at (row, col), or 0 if empty or out of range.
func (b Board) Cell(row, col int) byte {
	if row < 0 || row >= MaxAttempts || col < 0 || col >= WordLength {
		return 0
	}
	return b.grid[row][col]
}

// Word returns the letters of row with empty cells omitted.
func (b Board) Word(row int) string {
	if row < 0 || row >= MaxAttempts {
		return ""
	}
	var sb strings.Builder
	for _, c := range b.grid[row] {
		if c != 0 {
			sb.WriteByte(c)
		}
	}
	return sb.String()
}

// RowFull reports whether every cell of row holds a letter.
func (b Board) RowFull(row int) bool {
	if row < 0 || row >= MaxAttempts {
		return false
	}
	for _, c := range b.grid[row] {
		if c == 0 {
			return false
		}
	}
	return true
}

// Highlights scores row against the solution.
// Rows at or past the current row are all Unsubmitted.
func (b Board) Highlights(row int) []Highlight {
	if row < 0 || row >= b.cursor.Row || row >= MaxAttempts {
		out := make([]Highlight, WordLength)
		for i := range out {
			out[i] = Unsubmitted
		}
		return out
	}
	return Score(string(b.grid[row][:]), b.solution)
}

// AllHighlights returns Highlights for every row.
func (b Board) AllHighlights() [][]Highlight {
	out := make([][]Highlight, MaxAttempts)
	for r := range out {
		out[r] = b.Highlights(r)
	}
	return out
}

// SetLetter writes letter at the cursor and advances the cursor to the next
// empty column. It reports whether the board changed.
// No-op when the game is over or letter is not a–z / A–Z.
func (b *Board) SetLetter(letter rune) bool {
	if b.status.Terminal() {
		return false
	}
	if letter >= 'a' && letter <= 'z' {
		letter -= 'a' - 'A'
	}
	if letter < 'A' || letter > 'Z' {
		return false
	}
	b.grid[b.cursor.Row][b.cursor.Col] = byte(letter)
	b.cursor.Col = b.nextEmptyCol()
	return true
}

// nextEmptyCol picks the column after a write: the first empty cell to the
// right of the cursor, else the first empty cell of the row, else the last column.
func (b Board) nextEmptyCol() int {
	row := b.grid[b.cursor.Row]
	for c := b.cursor.Col + 1; c < WordLength; c++ {
		if row[c] == 0 {
			return c
		}
	}
	for c := 0; c < WordLength; c++ {
		if row[c] == 0 {
			return c
		}
	}
	return WordLength - 1
}

// ClearAt empties the current row's cell at col.
// Out-of-range columns and finished games are ignored.
func (b *Board) ClearAt(col int) {
	if b.status.Terminal() || col < 0 || col >= WordLength {
		return
	}
	b.grid[b.cursor.Row][col] = 0
}

// MoveCursor sets the cursor column, clamped to [0, WordLength-1].
func (b *Board) MoveCursor(col int) {
	if b.status.Terminal() {
		return
	}
	b.cursor.Col = clamp(col, 0, WordLength-1)
}

// Submit locks in the current row.
//
// Validation rules (the board is untouched on any error):
//   - Game must not be finished            → ErrGameOver.
//   - Every cell of the row must be filled → ErrIncompleteRow.
//   - dict must accept the word            → ErrNotInWordList.
//
// State transitions:
//   - Row equals the solution              → Won.
//   - Else MaxAttempts rows are submitted  → Lost.
func (b *Board) Submit(dict Dictionary) (Outcome, error) {
	if b.status.Terminal() {
		return Outcome{}, ErrGameOver
	}
	row := b.cursor.Row
	if !b.RowFull(row) {
		return Outcome{}, ErrIncompleteRow
	}
	word := string(b.grid[row][:])
	if dict == nil || !dict.IsValidWord(word) {
		return Outcome{}, ErrNotInWordList
	}

	marks := Score(word, b.solution)
	b.cursor = Cursor{Row: row + 1, Col: 0}

	if allCorrect(marks) {
		b.status = Won
	} else if b.cursor.Row >= MaxAttempts {
		b.status = Lost
	}
	return Outcome{Row: row, Word: word, Highlights: marks, Status: b.status}, nil
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// isUpperAlpha checks that a string consists only of uppercase A–Z.
func isUpperAlpha(s string) bool {
	for _, r := range s {
		if r < 'A' || r > 'Z' {
			return false
		}
	}
	return true
}
