// internal/words/words.go
//
// Word sources for the game: the daily solution and the guess dictionary.
//
// Responsibilities:
//   - Define Source, the read-only capability the game consumes.
//   - List: an in-memory Source built from answer/allowed word lists.
//   - Normalize words (trim, uppercase, exactly 5 letters A–Z).
//
// Word Lists:
//   - "answers": candidate solutions; one is picked per UTC day.
//   - "allowed": valid guesses (always includes answers).
//
// Answers are kept sorted so every Source with the same list and salt
// agrees on the day's word regardless of file order.

package words

import (
	"errors"
	"sort"
	"strings"
	"time"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/robalobadob/wordgrid/internal/daily"
	"github.com/robalobadob/wordgrid/internal/game"
)

// DefaultSalt keys the daily word when none is configured.
const DefaultSalt = "local_dev_salt"

// Source supplies the daily solution and validates guesses.
type Source interface {
	SolutionForToday() string
	IsValidWord(candidate string) bool
}

// Option configures a Source.
type Option func(*options)

type options struct {
	salt string
	now  func() time.Time
}

// WithSalt sets the key for daily word selection.
func WithSalt(salt string) Option {
	return func(o *options) {
		if salt != "" {
			o.salt = salt
		}
	}
}

// WithClock overrides the clock used by SolutionForToday.
func WithClock(now func() time.Time) Option {
	return func(o *options) {
		if now != nil {
			o.now = now
		}
	}
}

func buildOptions(opts []Option) options {
	o := options{salt: DefaultSalt, now: time.Now}
	for _, fn := range opts {
		fn(&o)
	}
	return o
}

// List is an in-memory Source.
type List struct {
	answers []string            // sorted, unique
	allowed map[string]struct{} // answers ∪ guesses
	opts    options
}

// NewList normalizes both lists, dropping anything that is not a 5-letter word.
// Returns an error if no answers remain.
func NewList(answers, allowed []string, opts ...Option) (*List, error) {
	l := &List{
		answers: normalizeAll(answers),
		opts:    buildOptions(opts),
	}
	if len(l.answers) == 0 {
		return nil, errors.New("words: answers list is empty")
	}

	// Ensure all answers are also marked as allowed
	l.allowed = toSet(l.answers)
	for _, w := range normalizeAll(allowed) {
		l.allowed[w] = struct{}{}
	}
	return l, nil
}

// SolutionFor returns the answer for t's UTC date.
func (l *List) SolutionFor(t time.Time) string {
	return l.answers[daily.WordIndex(t, l.opts.salt, len(l.answers))]
}

// SolutionForToday returns the answer for the current UTC date.
func (l *List) SolutionForToday() string {
	return l.SolutionFor(l.opts.now())
}

// IsValidWord reports whether w is an allowed guess (case-insensitive).
func (l *List) IsValidWord(w string) bool {
	n, ok := Normalize(w)
	if !ok {
		return false
	}
	_, ok = l.allowed[n]
	return ok
}

// IsAnswer reports whether w is in the answers list.
func (l *List) IsAnswer(w string) bool {
	n, ok := Normalize(w)
	if !ok {
		return false
	}
	i := sort.SearchStrings(l.answers, n)
	return i < len(l.answers) && l.answers[i] == n
}

// Answers returns a copy of the sorted answers.
func (l *List) Answers() []string {
	return append([]string(nil), l.answers...)
}

// Allowed returns every allowed guess, sorted.
func (l *List) Allowed() []string {
	out := make([]string, 0, len(l.allowed))
	for w := range l.allowed {
		out = append(out, w)
	}
	sort.Strings(out)
	return out
}

// Stats returns counts of loaded words: (answers, allowed).
func (l *List) Stats() (answersCount int, allowedCount int) {
	return len(l.answers), len(l.allowed)
}

// Normalize trims and uppercases w, reporting whether it is a playable word.
func Normalize(w string) (string, bool) {
	n := cases.Upper(language.Und).String(strings.TrimSpace(w))
	if len(n) != game.WordLength || !isAlpha(n) {
		return "", false
	}
	return n, true
}

// normalizeAll normalizes, filters, dedups and sorts a list.
func normalizeAll(list []string) []string {
	set := make(map[string]struct{}, len(list))
	for _, w := range list {
		if n, ok := Normalize(w); ok {
			set[n] = struct{}{}
		}
	}
	out := make([]string, 0, len(set))
	for w := range set {
		out = append(out, w)
	}
	sort.Strings(out)
	return out
}

// toSet converts a list of strings into a lookup set.
func toSet(list []string) map[string]struct{} {
	m := make(map[string]struct{}, len(list))
	for _, w := range list {
		m[w] = struct{}{}
	}
	return m
}

// isAlpha reports whether s is all uppercase ASCII letters.
func isAlpha(s string) bool {
	for _, r := range s {
		if r < 'A' || r > 'Z' {
			return false
		}
	}
	return true
}
