package session

import (
	"github.com/robalobadob/wordgrid/internal/game"
	"github.com/robalobadob/wordgrid/internal/input"
)

// View is what presentation layers read after each event.
type View struct {
	Grid       [][]string         `json:"grid"`
	Cursor     game.Cursor        `json:"cursor"`
	Status     game.Status        `json:"status"`
	Highlights [][]game.Highlight `json:"highlights"`
	Notice     string             `json:"notice"`
	Solution   string             `json:"solution,omitempty"` // only once the game is over
}

// Render builds a View from state. The result shares no memory with state.
func Render(st input.State) View {
	b := st.Board
	grid := make([][]string, game.MaxAttempts)
	for r := range grid {
		row := make([]string, game.WordLength)
		for c := range row {
			if l := b.Cell(r, c); l != 0 {
				row[c] = string(rune(l))
			}
		}
		grid[r] = row
	}
	v := View{
		Grid:       grid,
		Cursor:     b.Cursor(),
		Status:     b.Status(),
		Highlights: b.AllHighlights(),
		Notice:     st.Notice.Text,
	}
	if b.Status().Terminal() {
		v.Solution = b.Solution()
	}
	return v
}
