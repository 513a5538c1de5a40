package seed

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/iliyamo/fyyur/internal/database/databasetest"
	"github.com/iliyamo/fyyur/internal/logger"
	"github.com/iliyamo/fyyur/internal/repository"
)

func newSeeder(t *testing.T) (*Seeder, *repository.ShowRepo) {
	t.Helper()
	db := databasetest.Open(t)
	shows := repository.NewShowRepo(db)
	return New(repository.NewVenueRepo(db), repository.NewArtistRepo(db), shows, time.UTC, logger.Discard()), shows
}

func TestRunDemoFixtureIsRepeatable(t *testing.T) {
	f, err := LoadFile("../../fixtures/fyyur.yaml")
	if err != nil {
		t.Fatalf("LoadFile: %v", err)
	}
	s, shows := newSeeder(t)
	ctx := context.Background()

	res, err := s.Run(ctx, f)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if res != (Result{Venues: 3, Artists: 3, Shows: 5}) {
		t.Fatalf("first run = %+v", res)
	}

	res, err = s.Run(ctx, f)
	if err != nil {
		t.Fatalf("second Run: %v", err)
	}
	if res != (Result{Skipped: 11}) {
		t.Fatalf("second run = %+v", res)
	}

	listed, err := shows.List(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if len(listed) != 5 {
		t.Fatalf("shows = %d, want 5", len(listed))
	}
	first := listed[0]
	if first.VenueName != "The Musical Hop" || first.ArtistName != "Guns N Petals" {
		t.Fatalf("earliest show = %+v", first)
	}
	if want := time.Date(2019, 5, 21, 21, 30, 0, 0, time.UTC); !first.StartTime.Equal(want) {
		t.Fatalf("start = %v, want %v", first.StartTime, want)
	}
}

func TestRunRejectsInvalidEntries(t *testing.T) {
	cases := map[string]struct {
		doc  string
		want string
	}{
		"bad state": {
			doc: `
venues:
  - name: Nowhere Hall
    city: Springfield
    state: XX
    address: 1 Main St
    genres: [Jazz]
`,
			want: "Error in the State field - Not a valid choice.",
		},
		"unknown venue": {
			doc: `
artists:
  - name: Solo
    city: Austin
    state: TX
    genres: [Blues]
shows:
  - venue: Missing Club
    artist: Solo
    start_time: "2030-01-01 20:00:00"
`,
			want: `unknown venue "Missing Club"`,
		},
		"bad start time": {
			doc: `
venues:
  - name: The Spot
    city: Austin
    state: TX
    address: 2 Main St
    genres: [Blues]
artists:
  - name: Solo
    city: Austin
    state: TX
    genres: [Blues]
shows:
  - venue: The Spot
    artist: Solo
    start_time: next friday
`,
			want: "Error in the Start Time field - Not a valid datetime value.",
		},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			f, err := Decode(strings.NewReader(tc.doc))
			if err != nil {
				t.Fatalf("Decode: %v", err)
			}
			s, _ := newSeeder(t)
			_, err = s.Run(context.Background(), f)
			if err == nil || !strings.Contains(err.Error(), tc.want) {
				t.Fatalf("err = %v, want it to contain %q", err, tc.want)
			}
		})
	}
}

func TestDecodeRejectsUnknownKeys(t *testing.T) {
	_, err := Decode(strings.NewReader("venues:\n  - name: X\n    capacity: 10\n"))
	if err == nil {
		t.Fatal("unknown key accepted")
	}
}

func TestDecodeEmptyDocument(t *testing.T) {
	f, err := Decode(strings.NewReader(""))
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if len(f.Venues)+len(f.Artists)+len(f.Shows) != 0 {
		t.Fatalf("fixture = %+v", f)
	}
}
