// Package seed loads venues, artists and shows from a YAML fixture. Entries
// go through the same form validation and repositories as the web forms.
package seed

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/iliyamo/fyyur/internal/form"
	"github.com/iliyamo/fyyur/internal/repository"
)

// Fixture is the document layout of a seed file. Shows refer to venues and
// artists by name.
type Fixture struct {
	Venues  []Venue  `yaml:"venues"`
	Artists []Artist `yaml:"artists"`
	Shows   []Show   `yaml:"shows"`
}

type Venue struct {
	Name               string   `yaml:"name"`
	City               string   `yaml:"city"`
	State              string   `yaml:"state"`
	Address            string   `yaml:"address"`
	Phone              string   `yaml:"phone"`
	Genres             []string `yaml:"genres"`
	ImageLink          string   `yaml:"image_link"`
	FacebookLink       string   `yaml:"facebook_link"`
	WebsiteLink        string   `yaml:"website_link"`
	SeekingTalent      bool     `yaml:"seeking_talent"`
	SeekingDescription string   `yaml:"seeking_description"`
}

type Artist struct {
	Name               string   `yaml:"name"`
	City               string   `yaml:"city"`
	State              string   `yaml:"state"`
	Phone              string   `yaml:"phone"`
	Genres             []string `yaml:"genres"`
	ImageLink          string   `yaml:"image_link"`
	FacebookLink       string   `yaml:"facebook_link"`
	WebsiteLink        string   `yaml:"website_link"`
	SeekingVenue       bool     `yaml:"seeking_venue"`
	SeekingDescription string   `yaml:"seeking_description"`
}

type Show struct {
	Venue     string `yaml:"venue"`
	Artist    string `yaml:"artist"`
	StartTime string `yaml:"start_time"` // 2006-01-02 15:04:05 in the seeder's zone
}

// Result counts what a run inserted and what it left alone because it
// already existed.
type Result struct {
	Venues  int
	Artists int
	Shows   int
	Skipped int
}

// Decode parses a fixture. Unknown keys are rejected.
func Decode(r io.Reader) (*Fixture, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	var f Fixture
	if err := dec.Decode(&f); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("seed: decode fixture: %w", err)
	}
	return &f, nil
}

// LoadFile reads and decodes the fixture at path.
func LoadFile(path string) (*Fixture, error) {
	fh, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("seed: %w", err)
	}
	defer fh.Close()
	return Decode(fh)
}

// Seeder writes fixtures through the repositories.
type Seeder struct {
	venues  *repository.VenueRepo
	artists *repository.ArtistRepo
	shows   *repository.ShowRepo
	loc     *time.Location
	log     *slog.Logger
}

func New(venues *repository.VenueRepo, artists *repository.ArtistRepo, shows *repository.ShowRepo, loc *time.Location, log *slog.Logger) *Seeder {
	if loc == nil {
		loc = time.UTC
	}
	return &Seeder{venues: venues, artists: artists, shows: shows, loc: loc, log: log}
}

// Run inserts every entry of f. Venues and artists whose name is taken and
// shows identical to an existing one are skipped, so a fixture can be
// applied more than once. The first invalid entry stops the run.
func (s *Seeder) Run(ctx context.Context, f *Fixture) (Result, error) {
	const op = "seed.Run"
	log := s.log.With(slog.String("op", op))
	var res Result

	venueIDs, err := s.venueIDs(ctx)
	if err != nil {
		return res, fmt.Errorf("%s: %w", op, err)
	}
	for i, fv := range f.Venues {
		if _, ok := venueIDs[fv.Name]; ok {
			res.Skipped++
			continue
		}
		vf := fv.form()
		if msgs := vf.Validate(); len(msgs) > 0 {
			return res, fmt.Errorf("%s: venue #%d %q: %s", op, i+1, fv.Name, strings.Join(msgs, "; "))
		}
		v := vf.Venue()
		if err := s.venues.Create(ctx, &v); err != nil {
			return res, fmt.Errorf("%s: venue %q: %w", op, fv.Name, err)
		}
		venueIDs[v.Name] = v.ID
		res.Venues++
		log.Debug("venue seeded", slog.String("name", v.Name), slog.Uint64("id", v.ID))
	}

	artistIDs, err := s.artistIDs(ctx)
	if err != nil {
		return res, fmt.Errorf("%s: %w", op, err)
	}
	for i, fa := range f.Artists {
		if _, ok := artistIDs[fa.Name]; ok {
			res.Skipped++
			continue
		}
		af := fa.form()
		if msgs := af.Validate(); len(msgs) > 0 {
			return res, fmt.Errorf("%s: artist #%d %q: %s", op, i+1, fa.Name, strings.Join(msgs, "; "))
		}
		a := af.Artist()
		if err := s.artists.Create(ctx, &a); err != nil {
			return res, fmt.Errorf("%s: artist %q: %w", op, fa.Name, err)
		}
		artistIDs[a.Name] = a.ID
		res.Artists++
		log.Debug("artist seeded", slog.String("name", a.Name), slog.Uint64("id", a.ID))
	}

	existing, err := s.shows.List(ctx)
	if err != nil {
		return res, fmt.Errorf("%s: %w", op, err)
	}
	type showKey struct {
		venue, artist uint64
		start         int64
	}
	seen := make(map[showKey]bool, len(existing))
	for _, l := range existing {
		seen[showKey{l.VenueID, l.ArtistID, l.StartTime.Unix()}] = true
	}
	for i, fs := range f.Shows {
		venueID, ok := venueIDs[fs.Venue]
		if !ok {
			return res, fmt.Errorf("%s: show #%d: unknown venue %q", op, i+1, fs.Venue)
		}
		artistID, ok := artistIDs[fs.Artist]
		if !ok {
			return res, fmt.Errorf("%s: show #%d: unknown artist %q", op, i+1, fs.Artist)
		}
		sf := form.ShowForm{
			VenueID:   strconv.FormatUint(venueID, 10),
			ArtistID:  strconv.FormatUint(artistID, 10),
			StartTime: fs.StartTime,
		}
		if msgs := sf.Validate(); len(msgs) > 0 {
			return res, fmt.Errorf("%s: show #%d: %s", op, i+1, strings.Join(msgs, "; "))
		}
		show, err := sf.Show(s.loc)
		if err != nil {
			return res, fmt.Errorf("%s: show #%d: %w", op, i+1, err)
		}
		key := showKey{venueID, artistID, show.StartTime.Unix()}
		if seen[key] {
			res.Skipped++
			continue
		}
		if err := s.shows.Create(ctx, &show); err != nil {
			return res, fmt.Errorf("%s: show #%d: %w", op, i+1, err)
		}
		seen[key] = true
		res.Shows++
	}

	log.Info("fixture applied",
		slog.Int("venues", res.Venues),
		slog.Int("artists", res.Artists),
		slog.Int("shows", res.Shows),
		slog.Int("skipped", res.Skipped))
	return res, nil
}

func (s *Seeder) venueIDs(ctx context.Context) (map[string]uint64, error) {
	summaries, err := s.venues.Summaries(ctx)
	if err != nil {
		return nil, err
	}
	ids := make(map[string]uint64, len(summaries))
	for _, v := range summaries {
		ids[v.Name] = v.ID
	}
	return ids, nil
}

func (s *Seeder) artistIDs(ctx context.Context) (map[string]uint64, error) {
	summaries, err := s.artists.Summaries(ctx)
	if err != nil {
		return nil, err
	}
	ids := make(map[string]uint64, len(summaries))
	for _, a := range summaries {
		ids[a.Name] = a.ID
	}
	return ids, nil
}

func checkbox(b bool) string {
	if b {
		return "y"
	}
	return ""
}

func (v Venue) form() form.VenueForm {
	return form.VenueForm{
		Name:               v.Name,
		City:               v.City,
		State:              v.State,
		Address:            v.Address,
		Phone:              v.Phone,
		ImageLink:          v.ImageLink,
		Genres:             v.Genres,
		FacebookLink:       v.FacebookLink,
		WebsiteLink:        v.WebsiteLink,
		SeekingTalent:      checkbox(v.SeekingTalent),
		SeekingDescription: v.SeekingDescription,
	}
}

func (a Artist) form() form.ArtistForm {
	return form.ArtistForm{
		Name:               a.Name,
		City:               a.City,
		State:              a.State,
		Phone:              a.Phone,
		Genres:             a.Genres,
		ImageLink:          a.ImageLink,
		FacebookLink:       a.FacebookLink,
		WebsiteLink:        a.WebsiteLink,
		SeekingVenue:       checkbox(a.SeekingVenue),
		SeekingDescription: a.SeekingDescription,
	}
}
