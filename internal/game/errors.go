package game

// Code is a machine-readable reason a board operation was refused.
type Code string

const (
	CodeIncompleteRow Code = "INCOMPLETE_ROW"
	CodeNotInWordList Code = "NOT_IN_WORD_LIST"
	CodeGameOver      Code = "GAME_OVER"
)

// Error is a refused board operation. The board is unchanged whenever one is returned.
type Error struct {
	Code    Code
	Message string
}

// Error implements the error interface.
func (e *Error) Error() string { return e.Message }

// Is matches any *Error with the same code.
func (e *Error) Is(target error) bool {
	if t, ok := target.(*Error); ok {
		return e.Code == t.Code
	}
	return false
}

var (
	ErrIncompleteRow = &Error{Code: CodeIncompleteRow, Message: "row is not complete"}
	ErrNotInWordList = &Error{Code: CodeNotInWordList, Message: "not in word list"}
	ErrGameOver      = &Error{Code: CodeGameOver, Message: "game finished"}
)
