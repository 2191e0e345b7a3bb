package daily

import (
	"strings"
	"testing"
	"time"
)

func TestDateKeyUsesUTC(t *testing.T) {
	loc := time.FixedZone("UTC+10", 10*60*60)
	d := time.Date(2026, 3, 2, 5, 0, 0, 0, loc) // 2026-03-01 19:00 UTC
	if got := DateKey(d); got != "2026-03-01" {
		t.Fatalf("DateKey = %q, want 2026-03-01", got)
	}
}

func TestWordIndexDeterministic(t *testing.T) {
	d := time.Date(2026, 10, 19, 8, 0, 0, 0, time.UTC)
	later := time.Date(2026, 10, 19, 23, 59, 0, 0, time.UTC)
	a := WordIndex(d, "salt", 500)
	b := WordIndex(later, "salt", 500)
	if a != b {
		t.Fatalf("same day gave %d and %d", a, b)
	}
	if a < 0 || a >= 500 {
		t.Fatalf("index %d out of range", a)
	}
}

func TestWordIndexVariesAcrossDays(t *testing.T) {
	start := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	seen := map[int]bool{}
	for i := 0; i < 30; i++ {
		seen[WordIndex(start.AddDate(0, 0, i), "salt", 1000)] = true
	}
	if len(seen) < 10 {
		t.Fatalf("only %d distinct indexes over 30 days", len(seen))
	}
}

func TestWordIndexEdgeCases(t *testing.T) {
	d := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	if got := WordIndex(d, "salt", 0); got != 0 {
		t.Fatalf("empty list index = %d, want 0", got)
	}
	long := strings.Repeat("k", 200)
	if got := WordIndex(d, long, 7); got < 0 || got >= 7 {
		t.Fatalf("long salt index = %d", got)
	}
}
