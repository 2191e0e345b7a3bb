// internal/game/score.go
//
// Letter scoring for a submitted row.

package game

// Score classifies each letter of guess against solution using the two-pass
// multiset algorithm.
//
// Pass 1:
//   - Count every solution letter.
//   - Mark exact matches Correct and consume one of that letter.
//
// Pass 2:
//   - For each remaining position: Present if that letter still has budget
//     (and consume it), otherwise Absent.
//
// Exact matches are consumed first so a repeated guess letter is never
// reported Present when its only occurrence is already matched in place.
// Both words are expected to be uppercase A–Z; anything else scores Absent.
func Score(guess, solution string) []Highlight {
	n := len(guess)
	res := make([]Highlight, n)

	var remaining [26]int
	for i := 0; i < len(solution); i++ {
		if j := idx(solution[i]); j >= 0 {
			remaining[j]++
		}
	}

	// First pass: exact matches.
	for i := 0; i < n; i++ {
		if i < len(solution) && guess[i] == solution[i] && idx(guess[i]) >= 0 {
			res[i] = Correct
			remaining[idx(guess[i])]--
		}
	}

	// Second pass: misplaced letters within the remaining budget.
	for i := 0; i < n; i++ {
		if res[i] == Correct {
			continue
		}
		j := idx(guess[i])
		if j >= 0 && remaining[j] > 0 {
			res[i] = Present
			remaining[j]--
		} else {
			res[i] = Absent
		}
	}
	return res
}

// idx maps an uppercase ASCII letter to 0..25, or -1.
func idx(b byte) int {
	if b < 'A' || b > 'Z' {
		return -1
	}
	return int(b - 'A')
}

// allCorrect returns true if every highlight is Correct.
func allCorrect(h []Highlight) bool {
	for _, x := range h {
		if x != Correct {
			return false
		}
	}
	return len(h) > 0
}
