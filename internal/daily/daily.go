// internal/daily/daily.go
//
// Deterministic word-of-the-day selection.
// The index for a date is a keyed BLAKE2b-256 hash of the salt over the
// date key, reduced modulo the number of answers. Every process using the same
// salt and answer list agrees on the day's word without coordination.

package daily

import (
	"encoding/binary"
	"time"

	"golang.org/x/crypto/blake2b"
)

// DateKey returns YYYY-MM-DD in UTC.
func DateKey(t time.Time) string {
	return t.UTC().Format("2006-01-02")
}

// WordIndex returns a deterministic index in [0, answersLen) for date.
func WordIndex(date time.Time, salt string, answersLen int) int {
	if answersLen <= 0 {
		return 0
	}
	h, err := blake2b.New256(macKey(salt))
	if err != nil {
		// macKey never exceeds blake2b.Size.
		panic(err)
	}
	h.Write([]byte(DateKey(date)))
	sum := h.Sum(nil)
	// take first 8 bytes to uint64 for modulus distribution
	n := binary.BigEndian.Uint64(sum[:8])
	return int(n % uint64(answersLen))
}

// macKey fits salt into a BLAKE2b key, hashing salts longer than 64 bytes.
func macKey(salt string) []byte {
	if len(salt) <= blake2b.Size {
		return []byte(salt)
	}
	sum := blake2b.Sum512([]byte(salt))
	return sum[:]
}
