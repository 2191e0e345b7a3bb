// internal/words/load.go
//
// Loading word lists from files or the embedded defaults.
//
// Resolution (Load):
//   1. Answers and Allowed paths both set → answers from the first,
//      allowed guesses from the second.
//   2. Only Allowed set → that file is used for both lists.
//   3. Neither set → embedded assets/answers.txt and assets/allowed.txt.
//
// Lines are trimmed; blank lines and "#" comments are skipped; anything that
// is not a 5-letter word is dropped by NewList.

package words

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/robalobadob/wordgrid/assets"
)

// Files names optional word-list files.
type Files struct {
	Answers string // WORDS_ANSWERS_FILE
	Allowed string // WORDS_ALLOWED_FILE
}

// Load builds a List according to files.
func Load(files Files, opts ...Option) (*List, error) {
	var ansList, allowList []string
	var err error

	switch {
	// Case 1: both lists provided
	case files.Answers != "" && files.Allowed != "":
		if ansList, err = readWordFile(files.Answers); err != nil {
			return nil, err
		}
		if allowList, err = readWordFile(files.Allowed); err != nil {
			return nil, err
		}

	// Case 2: only allowed file provided → use for both
	case files.Answers == "" && files.Allowed != "":
		if allowList, err = readWordFile(files.Allowed); err != nil {
			return nil, err
		}
		ansList = allowList

	// Case 3: fallback to embedded defaults
	default:
		if ansList, err = assets.AnswersList(); err != nil {
			return nil, fmt.Errorf("read embedded answers: %w", err)
		}
		if allowList, err = assets.AllowedList(); err != nil {
			return nil, fmt.Errorf("read embedded allowed: %w", err)
		}
	}

	return NewList(ansList, allowList, opts...)
}

// readWordFile loads one word per line from a file.
func readWordFile(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open word list: %w", err)
	}
	defer f.Close()
	var out []string
	sc := bufio.NewScanner(f)
	for sc.Scan() {
		w := strings.TrimSpace(sc.Text())
		if w == "" || strings.HasPrefix(w, "#") {
			continue
		}
		out = append(out, w)
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	return out, nil
}
