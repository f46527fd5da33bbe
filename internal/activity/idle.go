package activity

import (
	"strconv"
	"strings"
)

// ParseIdleField converts the idle column of a session-listing utility
// (w, who) into minutes. The second return is false when the token is
// unparsable; unknown idle must never count toward an idle decision.
//
// Accepted forms:
//
//	"", ".", "?"  -> 0 (active right now)
//	"old"         -> 1440 (no activity for over a day)
//	"45s"         -> seconds
//	"2m"          -> minutes
//	"3:45"        -> minutes:seconds when the first part is < 10
//	"12:30"       -> hours:minutes when the first part is >= 10
//	"20"          -> minutes
func ParseIdleField(token string) (float64, bool) {
	token = strings.TrimSpace(token)

	switch token {
	case "", ".", "?":
		return 0, true
	case "old":
		return 24 * 60, true
	}

	if strings.HasSuffix(token, "s") {
		secs, err := strconv.ParseFloat(strings.TrimSuffix(token, "s"), 64)
		if err != nil {
			return 0, false
		}
		return secs / 60, true
	}

	if strings.HasSuffix(token, "m") {
		mins, err := strconv.ParseFloat(strings.TrimSuffix(token, "m"), 64)
		if err != nil {
			return 0, false
		}
		return mins, true
	}

	if first, second, found := strings.Cut(token, ":"); found {
		a, errA := strconv.ParseFloat(first, 64)
		b, errB := strconv.ParseFloat(second, 64)
		if errA != nil || errB != nil {
			return 0, false
		}
		if a < 10 {
			// minutes:seconds
			return a + b/60, true
		}
		// hours:minutes
		return a*60 + b, true
	}

	mins, err := strconv.ParseFloat(token, 64)
	if err != nil {
		return 0, false
	}
	return mins, true
}
