// internal/game/types.go
//
// Core type definitions for the guess grid.
// Defines:
//   - Highlight: per-letter feedback for a row (correct/present/absent/unsubmitted).
//   - Status: game lifecycle (in_progress → won | lost).
//   - Grid, Cursor: the fixed 6x5 letter grid and the editable position.
//   - Dictionary: the validity predicate the board consults on submit.

package game

const (
	// MaxAttempts is the number of rows in the grid.
	MaxAttempts = 6
	// WordLength is the number of cells per row.
	WordLength = 5
)

// Highlight is the evaluation of a single cell.
// Possible values:
//   - "correct":     letter is in the solution at this position.
//   - "present":     letter is in the solution elsewhere, within the remaining budget.
//   - "absent":      letter is not in the solution within the remaining budget.
//   - "unsubmitted": row has not been submitted yet.
type Highlight string

const (
	Unsubmitted Highlight = "unsubmitted"
	Correct     Highlight = "correct"
	Present     Highlight = "present"
	Absent      Highlight = "absent"
)

// Status is the coarse state of a game.
type Status string

const (
	InProgress Status = "in_progress"
	Won        Status = "won"
	Lost       Status = "lost"
)

// Terminal reports whether no further mutation is allowed.
func (s Status) Terminal() bool { return s == Won || s == Lost }

// Grid holds one uppercase ASCII letter per cell, 0 for empty.
// Being an array, assigning a Grid copies every cell.
type Grid [MaxAttempts][WordLength]byte

// Cursor points at the editable cell of the current row.
type Cursor struct {
	Row int `json:"row"`
	Col int `json:"col"`
}

// Dictionary answers whether a candidate word may be submitted.
type Dictionary interface {
	IsValidWord(word string) bool
}

// DictionaryFunc adapts a plain predicate to Dictionary.
type DictionaryFunc func(word string) bool

// IsValidWord calls f(word).
func (f DictionaryFunc) IsValidWord(word string) bool { return f(word) }
