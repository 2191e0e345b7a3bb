// Package keyboard describes the on-screen keyboard.
// Every key maps to a logical input.Key, so presses from the on-screen
// keyboard are indistinguishable from physical ones.
package keyboard

import "github.com/robalobadob/wordgrid/internal/input"

// Key is one button.
type Key struct {
	Key   input.Key `json:"key"`
	Label string    `json:"label"`
}

// Layout returns the QWERTY rows with the control keys at the row ends.
func Layout() [][]Key {
	return [][]Key{
		append(letters("QWERTYUIOP"), Key{Key: input.KeyBackspace, Label: "⌫"}),
		append(letters("ASDFGHJKL"), Key{Key: input.KeyEnter, Label: "Enter"}),
		append(letters("ZXCVBNM"),
			Key{Key: input.KeyArrowLeft, Label: "←"},
			Key{Key: input.KeyArrowRight, Label: "→"},
		),
	}
}

func letters(s string) []Key {
	out := make([]Key, 0, len(s)+2)
	for _, r := range s {
		out = append(out, Key{Key: input.Key(string(r)), Label: string(r)})
	}
	return out
}
