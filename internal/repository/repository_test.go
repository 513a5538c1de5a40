package repository

import (
	"context"
	"errors"
	"reflect"
	"testing"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/iliyamo/fyyur/internal/database/databasetest"
	"github.com/iliyamo/fyyur/internal/model"
)

type repos struct {
	db      *sqlx.DB
	venues  *VenueRepo
	artists *ArtistRepo
	shows   *ShowRepo
}

func newRepos(t *testing.T) repos {
	t.Helper()
	db := databasetest.Open(t)
	return repos{db: db, venues: NewVenueRepo(db), artists: NewArtistRepo(db), shows: NewShowRepo(db)}
}

func mustVenue(t *testing.T, r repos, name, city, state string) *model.Venue {
	t.Helper()
	v := &model.Venue{
		Name: name, City: city, State: state, Address: "1 Main St",
		Genres: model.Genres{"Jazz", "Rock n Roll"}, SeekingTalent: true,
	}
	if err := r.venues.Create(context.Background(), v); err != nil {
		t.Fatalf("create venue %q: %v", name, err)
	}
	return v
}

func mustArtist(t *testing.T, r repos, name string) *model.Artist {
	t.Helper()
	a := &model.Artist{Name: name, City: "San Francisco", State: "CA", Genres: model.Genres{"Blues"}}
	if err := r.artists.Create(context.Background(), a); err != nil {
		t.Fatalf("create artist %q: %v", name, err)
	}
	return a
}

func mustShow(t *testing.T, r repos, venueID, artistID uint64, start time.Time) *model.Show {
	t.Helper()
	s := &model.Show{VenueID: venueID, ArtistID: artistID, StartTime: start}
	if err := r.shows.Create(context.Background(), s); err != nil {
		t.Fatalf("create show: %v", err)
	}
	return s
}

func TestVenueCreateAndGet(t *testing.T) {
	t.Parallel()
	r := newRepos(t)
	ctx := context.Background()

	v := mustVenue(t, r, "The Musical Hop", "San Francisco", "CA")
	if v.ID == 0 {
		t.Fatal("ID = 0, want generated id")
	}

	got, err := r.venues.GetByID(ctx, v.ID)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if got.Name != v.Name || got.Address != "1 Main St" || !got.SeekingTalent {
		t.Fatalf("got = %+v", got)
	}
	if !reflect.DeepEqual(got.Genres, model.Genres{"Jazz", "Rock n Roll"}) {
		t.Fatalf("Genres = %q", got.Genres)
	}

	if _, err := r.venues.GetByID(ctx, 999); !errors.Is(err, ErrVenueNotFound) {
		t.Fatalf("GetByID(999) err = %v, want ErrVenueNotFound", err)
	}
}

func TestVenueDuplicateName(t *testing.T) {
	t.Parallel()
	r := newRepos(t)

	mustVenue(t, r, "The Musical Hop", "San Francisco", "CA")
	err := r.venues.Create(context.Background(), &model.Venue{Name: "The Musical Hop", City: "x", State: "CA", Address: "y"})
	if !errors.Is(err, ErrVenueExists) {
		t.Fatalf("err = %v, want ErrVenueExists", err)
	}

	var n int
	if err := r.db.Get(&n, "SELECT COUNT(*) FROM venues"); err != nil {
		t.Fatal(err)
	}
	if n != 1 {
		t.Fatalf("venues = %d, want 1", n)
	}
}

func TestNamesDifferingOnlyByCaseAreDistinct(t *testing.T) {
	t.Parallel()
	r := newRepos(t)
	ctx := context.Background()

	mustVenue(t, r, "The Musical Hop", "San Francisco", "CA")
	lower := &model.Venue{Name: "the musical hop", City: "Oakland", State: "CA", Address: "2 Main St", Genres: model.Genres{"Jazz"}}
	if err := r.venues.Create(ctx, lower); err != nil {
		t.Fatalf("create lower-case venue: %v", err)
	}
	lower.Name = "THE MUSICAL HOP"
	if err := r.venues.Update(ctx, lower); err != nil {
		t.Fatalf("rename to upper-case: %v", err)
	}
	lower.Name = "The Musical Hop"
	if err := r.venues.Update(ctx, lower); !errors.Is(err, ErrVenueExists) {
		t.Fatalf("exact clash on update: err = %v, want ErrVenueExists", err)
	}

	a := &model.Artist{Name: "Guns N Petals", City: "San Francisco", State: "CA", Genres: model.Genres{"Rock n Roll"}}
	if err := r.artists.Create(ctx, a); err != nil {
		t.Fatal(err)
	}
	b := &model.Artist{Name: "guns n petals", City: "San Francisco", State: "CA", Genres: model.Genres{"Rock n Roll"}}
	if err := r.artists.Create(ctx, b); err != nil {
		t.Fatalf("create lower-case artist: %v", err)
	}
}

func TestVenueUpdate(t *testing.T) {
	t.Parallel()
	r := newRepos(t)
	ctx := context.Background()

	v := mustVenue(t, r, "Hop", "San Francisco", "CA")
	other := mustVenue(t, r, "Other", "New York", "NY")

	v.City = "Oakland"
	v.Genres = model.Genres{"Folk"}
	if err := r.venues.Update(ctx, v); err != nil {
		t.Fatalf("Update same name: %v", err)
	}
	got, _ := r.venues.GetByID(ctx, v.ID)
	if got.City != "Oakland" || !reflect.DeepEqual(got.Genres, model.Genres{"Folk"}) {
		t.Fatalf("after update = %+v", got)
	}

	v.Name = other.Name
	if err := r.venues.Update(ctx, v); !errors.Is(err, ErrVenueExists) {
		t.Fatalf("Update to taken name err = %v, want ErrVenueExists", err)
	}
	if err := r.venues.Update(ctx, &model.Venue{ID: 999, Name: "z"}); !errors.Is(err, ErrVenueNotFound) {
		t.Fatalf("Update missing err = %v, want ErrVenueNotFound", err)
	}
}

func TestVenueDeleteCascadesShows(t *testing.T) {
	t.Parallel()
	r := newRepos(t)
	ctx := context.Background()

	v := mustVenue(t, r, "Hop", "San Francisco", "CA")
	keep := mustVenue(t, r, "Keep", "San Francisco", "CA")
	a := mustArtist(t, r, "Guns N Petals")
	mustShow(t, r, v.ID, a.ID, time.Now().Add(time.Hour))
	mustShow(t, r, v.ID, a.ID, time.Now().Add(-time.Hour))
	mustShow(t, r, keep.ID, a.ID, time.Now())

	name, err := r.venues.Delete(ctx, v.ID)
	if err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if name != "Hop" {
		t.Fatalf("name = %q, want Hop", name)
	}

	shows, err := r.shows.List(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if len(shows) != 1 || shows[0].VenueID != keep.ID {
		t.Fatalf("remaining shows = %+v", shows)
	}
	if _, err := r.venues.Delete(ctx, v.ID); !errors.Is(err, ErrVenueNotFound) {
		t.Fatalf("second Delete err = %v, want ErrVenueNotFound", err)
	}
}

func TestArtistLifecycle(t *testing.T) {
	t.Parallel()
	r := newRepos(t)
	ctx := context.Background()

	a := mustArtist(t, r, "Matt Quevedo")
	if err := r.artists.Create(ctx, &model.Artist{Name: "Matt Quevedo", City: "a", State: "NY"}); !errors.Is(err, ErrArtistExists) {
		t.Fatalf("duplicate err = %v, want ErrArtistExists", err)
	}

	a.SeekingVenue = true
	a.SeekingDescription = "Looking for gigs"
	if err := r.artists.Update(ctx, a); err != nil {
		t.Fatalf("Update: %v", err)
	}
	got, err := r.artists.GetByID(ctx, a.ID)
	if err != nil {
		t.Fatal(err)
	}
	if !got.SeekingVenue || got.SeekingDescription != "Looking for gigs" {
		t.Fatalf("got = %+v", got)
	}

	v := mustVenue(t, r, "Hop", "San Francisco", "CA")
	mustShow(t, r, v.ID, a.ID, time.Now())
	if _, err := r.artists.Delete(ctx, a.ID); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	shows, _ := r.venues.Shows(ctx, v.ID)
	if len(shows) != 0 {
		t.Fatalf("venue shows after artist delete = %d, want 0", len(shows))
	}
	if _, err := r.artists.GetByID(ctx, a.ID); !errors.Is(err, ErrArtistNotFound) {
		t.Fatalf("GetByID err = %v, want ErrArtistNotFound", err)
	}
}

func TestShowCreateChecksVenueThenArtist(t *testing.T) {
	t.Parallel()
	r := newRepos(t)
	ctx := context.Background()

	v := mustVenue(t, r, "Hop", "San Francisco", "CA")
	a := mustArtist(t, r, "Guns N Petals")

	err := r.shows.Create(ctx, &model.Show{VenueID: 999, ArtistID: 998, StartTime: time.Now()})
	if !errors.Is(err, ErrVenueNotFound) {
		t.Fatalf("err = %v, want ErrVenueNotFound", err)
	}
	err = r.shows.Create(ctx, &model.Show{VenueID: v.ID, ArtistID: 998, StartTime: time.Now()})
	if !errors.Is(err, ErrArtistNotFound) {
		t.Fatalf("err = %v, want ErrArtistNotFound", err)
	}

	loc := time.FixedZone("PDT", -7*3600)
	start := time.Date(2035, 4, 1, 20, 0, 0, 0, loc)
	s := mustShow(t, r, v.ID, a.ID, start)

	got, err := r.shows.GetByID(ctx, s.ID)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if !got.StartTime.Equal(start) {
		t.Fatalf("StartTime = %v, want %v", got.StartTime, start)
	}
	if got.VenueName != "Hop" || got.ArtistName != "Guns N Petals" {
		t.Fatalf("listing = %+v", got)
	}
}

func TestShowDelete(t *testing.T) {
	t.Parallel()
	r := newRepos(t)
	ctx := context.Background()

	v := mustVenue(t, r, "Hop", "San Francisco", "CA")
	a := mustArtist(t, r, "Guns N Petals")
	s := mustShow(t, r, v.ID, a.ID, time.Now())

	if err := r.shows.Delete(ctx, s.ID); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if err := r.shows.Delete(ctx, s.ID); !errors.Is(err, ErrShowNotFound) {
		t.Fatalf("second Delete err = %v, want ErrShowNotFound", err)
	}
}

func TestSummariesAndShows(t *testing.T) {
	t.Parallel()
	r := newRepos(t)
	ctx := context.Background()

	v1 := mustVenue(t, r, "Hop", "San Francisco", "CA")
	v2 := mustVenue(t, r, "Dueling Pianos", "New York", "NY")
	a := mustArtist(t, r, "Guns N Petals")
	now := time.Now().UTC()
	mustShow(t, r, v1.ID, a.ID, now.Add(24*time.Hour))
	mustShow(t, r, v1.ID, a.ID, now.Add(-24*time.Hour))

	sums, err := r.venues.Summaries(ctx)
	if err != nil {
		t.Fatalf("Summaries: %v", err)
	}
	if len(sums) != 2 || sums[0].ID != v1.ID || sums[1].ID != v2.ID {
		t.Fatalf("summaries = %+v", sums)
	}
	if len(sums[0].ShowTimes) != 2 || len(sums[1].ShowTimes) != 0 {
		t.Fatalf("show times = %v / %v", sums[0].ShowTimes, sums[1].ShowTimes)
	}
	if got := model.CountUpcoming(sums[0].ShowTimes, now); got != 1 {
		t.Fatalf("upcoming = %d, want 1", got)
	}

	shows, err := r.artists.Shows(ctx, a.ID)
	if err != nil {
		t.Fatal(err)
	}
	if len(shows) != 2 || shows[0].VenueName != "Hop" || !shows[0].StartTime.Before(shows[1].StartTime) {
		t.Fatalf("artist shows = %+v", shows)
	}

	opts, err := r.venues.Options(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if len(opts) != 2 || opts[0].Name != "Dueling Pianos" {
		t.Fatalf("options = %+v", opts)
	}
}

func TestLegacyGenresStillParse(t *testing.T) {
	t.Parallel()
	r := newRepos(t)
	ctx := context.Background()

	if _, err := r.db.Exec(`INSERT INTO artists (name, city, state, genres) VALUES ('Legacy', 'x', 'CA', '{Jazz,Reggae}')`); err != nil {
		t.Fatal(err)
	}
	var id uint64
	if err := r.db.Get(&id, `SELECT id FROM artists WHERE name = 'Legacy'`); err != nil {
		t.Fatal(err)
	}
	got, err := r.artists.GetByID(ctx, id)
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(got.Genres, model.Genres{"Jazz", "Reggae"}) {
		t.Fatalf("Genres = %q", got.Genres)
	}
}
