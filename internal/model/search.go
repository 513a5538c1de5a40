package model

import (
	"strings"
	"time"

	"golang.org/x/text/cases"
)

// Summary is the compact form of a venue or artist used by list and
// search pages: identity, location and the start times of its shows.
type Summary struct {
	ID        uint64      `db:"id"`
	Name      string      `db:"name"`
	City      string      `db:"city"`
	State     string      `db:"state"`
	ShowTimes []time.Time `db:"-"`
}

// SearchResult is one row of a search result page.
type SearchResult struct {
	ID               uint64
	Name             string
	NumUpcomingShows int
}

// MatchesTerm reports whether term occurs in any of fields, comparing
// Unicode case-folded text. The empty term matches everything.
func MatchesTerm(term string, fields ...string) bool {
	if term == "" {
		return true
	}
	fold := cases.Fold()
	needle := fold.String(term)
	for _, f := range fields {
		if strings.Contains(fold.String(f), needle) {
			return true
		}
	}
	return false
}

// Search filters summaries by term over name, city and state and counts
// each match's upcoming shows.
func Search(summaries []Summary, term string, now time.Time) []SearchResult {
	term = strings.TrimSpace(term)
	out := []SearchResult{}
	for _, s := range summaries {
		if !MatchesTerm(term, s.Name, s.City, s.State) {
			continue
		}
		out = append(out, SearchResult{
			ID:               s.ID,
			Name:             s.Name,
			NumUpcomingShows: CountUpcoming(s.ShowTimes, now),
		})
	}
	return out
}
