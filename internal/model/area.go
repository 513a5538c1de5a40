package model

import "time"

// Area groups the venues of one (city, state) pair.
type Area struct {
	City   string
	State  string
	Venues []SearchResult
}

// GroupByArea groups venue summaries by (city, state). Areas appear in
// the order they are first seen and venues keep their input order.
func GroupByArea(venues []Summary, now time.Time) []Area {
	type key struct{ city, state string }
	index := map[key]int{}
	areas := []Area{}
	for _, v := range venues {
		k := key{v.City, v.State}
		i, ok := index[k]
		if !ok {
			i = len(areas)
			index[k] = i
			areas = append(areas, Area{City: v.City, State: v.State})
		}
		areas[i].Venues = append(areas[i].Venues, SearchResult{
			ID:               v.ID,
			Name:             v.Name,
			NumUpcomingShows: CountUpcoming(v.ShowTimes, now),
		})
	}
	return areas
}
