package model

import "time"

// IsUpcoming reports whether a show starting at start is still ahead of
// now. A show starting exactly now is past.
func IsUpcoming(start, now time.Time) bool {
	return start.After(now)
}

// ClassifyShows splits shows into upcoming and past relative to now,
// keeping input order within each bucket. Both results are non-nil.
func ClassifyShows(shows []ShowListing, now time.Time) (upcoming, past []ShowListing) {
	upcoming = []ShowListing{}
	past = []ShowListing{}
	for _, s := range shows {
		if IsUpcoming(s.StartTime, now) {
			upcoming = append(upcoming, s)
		} else {
			past = append(past, s)
		}
	}
	return upcoming, past
}

// CountUpcoming counts how many start times lie after now.
func CountUpcoming(times []time.Time, now time.Time) int {
	n := 0
	for _, t := range times {
		if IsUpcoming(t, now) {
			n++
		}
	}
	return n
}
