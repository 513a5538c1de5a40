package model

import (
	"reflect"
	"testing"
	"time"
)

func TestParseGenres(t *testing.T) {
	t.Parallel()

	tests := []struct {
		raw  string
		want Genres
	}{
		{raw: "", want: Genres{}},
		{raw: "{}", want: Genres{}},
		{raw: "{Jazz,Rock}", want: Genres{"Jazz", "Rock"}},
		{raw: `{"Jazz","Rock n Roll"}`, want: Genres{"Jazz", "Rock n Roll"}},
		{raw: `{Jazz,"R&B"}`, want: Genres{"Jazz", "R&B"}},
		{raw: "Jazz, Rock", want: Genres{"Jazz", "Rock"}},
	}
	for _, tt := range tests {
		got := ParseGenres(tt.raw)
		if !reflect.DeepEqual(got, tt.want) {
			t.Fatalf("ParseGenres(%q) = %q, want %q", tt.raw, got, tt.want)
		}
	}
}

func TestGenresValueScan(t *testing.T) {
	t.Parallel()

	in := Genres{"Jazz", "Rock n Roll", "Hip-Hop"}
	v, err := in.Value()
	if err != nil {
		t.Fatalf("Value() error = %v", err)
	}
	var out Genres
	if err := out.Scan([]byte(v.(string))); err != nil {
		t.Fatalf("Scan() error = %v", err)
	}
	if !reflect.DeepEqual(out, in) {
		t.Fatalf("scanned = %q, want %q", out, in)
	}

	var nilGenres Genres
	v, err = nilGenres.Value()
	if err != nil || v != "{}" {
		t.Fatalf("nil Value() = %v, %v; want {}", v, err)
	}
	if err := out.Scan(42); err == nil {
		t.Fatal("Scan(int) error = nil, want error")
	}
}

func TestClassifyShows(t *testing.T) {
	t.Parallel()

	now := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	shows := []ShowListing{
		{ID: 1, StartTime: now.Add(-time.Hour)},
		{ID: 2, StartTime: now.Add(time.Hour)},
		{ID: 3, StartTime: now},
		{ID: 4, StartTime: now.Add(48 * time.Hour)},
	}

	upcoming, past := ClassifyShows(shows, now)
	if got := ids(upcoming); !reflect.DeepEqual(got, []uint64{2, 4}) {
		t.Fatalf("upcoming = %v, want [2 4]", got)
	}
	if got := ids(past); !reflect.DeepEqual(got, []uint64{1, 3}) {
		t.Fatalf("past = %v, want [1 3]", got)
	}

	upcoming, past = ClassifyShows(nil, now)
	if upcoming == nil || past == nil || len(upcoming)+len(past) != 0 {
		t.Fatalf("empty input gave %v / %v", upcoming, past)
	}
}

func TestCountUpcoming(t *testing.T) {
	t.Parallel()

	now := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	times := []time.Time{now, now.Add(time.Second), now.Add(-time.Second), now.AddDate(1, 0, 0)}
	if got := CountUpcoming(times, now); got != 2 {
		t.Fatalf("CountUpcoming = %d, want 2", got)
	}
}

func TestMatchesTerm(t *testing.T) {
	t.Parallel()

	tests := []struct {
		term   string
		fields []string
		want   bool
	}{
		{"", []string{"anything"}, true},
		{"hop", []string{"The Musical Hop"}, true},
		{"HOP", []string{"The Musical Hop"}, true},
		{"music", []string{"Park Square Live Music & Coffee"}, true},
		{"new", []string{"Dueling Pianos", "New York", "NY"}, true},
		{"ca", []string{"Venue", "Austin", "TX"}, false},
		{"Ça", []string{"ça va"}, true},
	}
	for _, tt := range tests {
		if got := MatchesTerm(tt.term, tt.fields...); got != tt.want {
			t.Fatalf("MatchesTerm(%q, %q) = %v, want %v", tt.term, tt.fields, got, tt.want)
		}
	}
}

func TestSearch(t *testing.T) {
	t.Parallel()

	now := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	summaries := []Summary{
		{ID: 1, Name: "The Musical Hop", City: "San Francisco", State: "CA", ShowTimes: []time.Time{now.Add(time.Hour)}},
		{ID: 2, Name: "Park Square Live Music & Coffee", City: "San Francisco", State: "CA"},
		{ID: 3, Name: "The Dueling Pianos Bar", City: "New York", State: "NY"},
	}

	got := Search(summaries, "  Music ", now)
	if len(got) != 2 {
		t.Fatalf("len = %d, want 2", len(got))
	}
	if got[0].ID != 1 || got[0].NumUpcomingShows != 1 {
		t.Fatalf("got[0] = %+v", got[0])
	}
	if got[1].ID != 2 || got[1].NumUpcomingShows != 0 {
		t.Fatalf("got[1] = %+v", got[1])
	}

	if got := Search(summaries, "ny", now); len(got) != 1 || got[0].ID != 3 {
		t.Fatalf("search by state = %+v", got)
	}
	if got := Search(summaries, "zzz", now); got == nil || len(got) != 0 {
		t.Fatalf("no match = %+v, want empty", got)
	}
}

func TestGroupByArea(t *testing.T) {
	t.Parallel()

	now := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	venues := []Summary{
		{ID: 1, Name: "A", City: "San Francisco", State: "CA", ShowTimes: []time.Time{now.Add(time.Hour), now.Add(-time.Hour)}},
		{ID: 2, Name: "B", City: "New York", State: "NY"},
		{ID: 3, Name: "C", City: "San Francisco", State: "CA"},
		{ID: 4, Name: "D", City: "San Francisco", State: "NY"},
	}

	areas := GroupByArea(venues, now)
	if len(areas) != 3 {
		t.Fatalf("len(areas) = %d, want 3", len(areas))
	}
	if areas[0].City != "San Francisco" || areas[0].State != "CA" {
		t.Fatalf("areas[0] = %s, %s", areas[0].City, areas[0].State)
	}
	if len(areas[0].Venues) != 2 || areas[0].Venues[0].ID != 1 || areas[0].Venues[1].ID != 3 {
		t.Fatalf("areas[0].Venues = %+v", areas[0].Venues)
	}
	if areas[0].Venues[0].NumUpcomingShows != 1 {
		t.Fatalf("num upcoming = %d, want 1", areas[0].Venues[0].NumUpcomingShows)
	}
	if areas[1].City != "New York" || areas[2].State != "NY" {
		t.Fatalf("area order = %+v", areas)
	}
}

func ids(shows []ShowListing) []uint64 {
	out := make([]uint64, 0, len(shows))
	for _, s := range shows {
		out = append(out, s.ID)
	}
	return out
}
