package recurrence

import (
	"strconv"
	"strings"
	"time"
)

// ParseSkipMonths parses a free-text, comma-separated list of month numbers
// (1..12) into the set of months a recurring event skips. Tokens that are
// not integers, or fall outside 1..12, are discarded: garbled input means
// "skip nothing extra", never a failure.
func ParseSkipMonths(raw string) map[time.Month]bool {
	out := make(map[time.Month]bool)
	for _, tok := range strings.Split(raw, ",") {
		tok = strings.TrimSpace(tok)
		if tok == "" {
			continue
		}
		n, err := strconv.Atoi(tok)
		if err != nil || n < 1 || n > 12 {
			continue
		}
		out[time.Month(n)] = true
	}
	return out
}
