// Package streak derives consecutive-day check-in streaks from raw login
// instants. Everything here is pure: callers supply the instants, the user's
// zone, and "today", and get a count back. Persistence and reward crediting
// live in the check-in controller.
package streak

import (
	"sort"
	"time"
)

// Count returns the number of consecutive calendar days, ending at today or
// yesterday, covered by logins when projected through loc.
//
// Duplicate same-day instants collapse to one. An empty record yields 0.
// When the most recent recorded day is neither today nor yesterday the chain
// is broken and the count is 1: callers record today's login before computing,
// so the result always describes a streak that includes today.
func Count(logins []time.Time, loc *time.Location, today Date) int {
	if len(logins) == 0 {
		return 0
	}

	seen := make(map[string]struct{}, len(logins))
	days := make([]string, 0, len(logins))
	for _, t := range logins {
		key := DateOf(t, loc).String()
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		days = append(days, key)
	}

	// Most recent first. Keys are zero-padded, so string order is day order.
	sort.Sort(sort.Reverse(sort.StringSlice(days)))

	if days[0] != today.String() && days[0] != today.Prev().String() {
		return 1
	}

	count := 1
	cur, err := ParseDate(days[0])
	if err != nil {
		return 1
	}
	for _, key := range days[1:] {
		if key != cur.Prev().String() {
			break
		}
		count++
		cur = cur.Prev()
	}
	return count
}

// Advance is the pure half of the daily check-in decision. Given the
// persisted record, the user's zone, and the current instant, it reports
// whether today is already credited and, when it is not, the streak value
// that recording now would produce.
func Advance(logins []time.Time, lastLogin *time.Time, loc *time.Location, now time.Time) (credited bool, next int) {
	today := DateOf(now, loc)
	if lastLogin != nil && DateOf(*lastLogin, loc) == today {
		return true, 0
	}
	return false, Count(append(append([]time.Time{}, logins...), now), loc, today)
}
