package form

import (
	"reflect"
	"strings"
	"testing"
	"time"

	"github.com/iliyamo/fyyur/internal/model"
)

func validVenueForm() VenueForm {
	return VenueForm{
		Name:          "The Musical Hop",
		City:          "San Francisco",
		State:         "CA",
		Address:       "1015 Folsom Street",
		Phone:         "123-123-1234",
		ImageLink:     "https://example.com/hop.png",
		Genres:        []string{"Jazz", "Reggae"},
		FacebookLink:  "https://www.facebook.com/TheMusicalHop",
		WebsiteLink:   "https://www.themusicalhop.com",
		SeekingTalent: "y",
	}
}

func TestVenueFormValid(t *testing.T) {
	t.Parallel()

	f := validVenueForm()
	f.Name = "  The Musical Hop "
	if msgs := f.Validate(); msgs != nil {
		t.Fatalf("Validate() = %q, want nil", msgs)
	}
	v := f.Venue()
	if v.Name != "The Musical Hop" {
		t.Fatalf("Name = %q, want trimmed", v.Name)
	}
	if !v.SeekingTalent {
		t.Fatal("SeekingTalent = false, want true")
	}
	if !reflect.DeepEqual(v.Genres, model.Genres{"Jazz", "Reggae"}) {
		t.Fatalf("Genres = %q", v.Genres)
	}
}

func TestVenueFormErrors(t *testing.T) {
	t.Parallel()

	f := validVenueForm()
	f.Name = ""
	f.State = "ZZ"
	f.Phone = "1234567890"
	f.Genres = []string{"Jazz", "Polka", "Yodel"}
	f.WebsiteLink = "not a url"

	got := f.Validate()
	want := []string{
		"Error in the Name field - This field is required.",
		"Error in the State field - Not a valid choice.",
		"Error in the Phone field - Invalid phone number, use the format XXX-XXX-XXXX.",
		"Error in the Genres field - Invalid value, must be one of: " + strings.Join(GenreChoices, ",") + ".",
		"Error in the Website Link field - Invalid URL.",
	}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("Validate() =\n%q\nwant\n%q", got, want)
	}
}

func TestVenueFormMissingGenres(t *testing.T) {
	t.Parallel()

	f := validVenueForm()
	f.Genres = nil
	got := f.Validate()
	if len(got) != 1 || got[0] != "Error in the Genres field - This field is required." {
		t.Fatalf("Validate() = %q", got)
	}
}

func TestCheckboxOnlyY(t *testing.T) {
	t.Parallel()

	for value, want := range map[string]bool{"y": true, "": false, "on": false, "true": false, "Y": false} {
		f := ArtistForm{SeekingVenue: value}
		if got := f.Artist().SeekingVenue; got != want {
			t.Fatalf("seeking_venue=%q -> %v, want %v", value, got, want)
		}
	}
}

func TestArtistFormRoundTrip(t *testing.T) {
	t.Parallel()

	a := &model.Artist{
		Name: "Guns N Petals", City: "San Francisco", State: "CA", Phone: "326-123-5000",
		Genres: model.Genres{"Rock n Roll"}, SeekingVenue: true, SeekingDescription: "Looking",
	}
	f := NewArtistForm(a)
	if f.SeekingVenue != "y" {
		t.Fatalf("SeekingVenue = %q, want y", f.SeekingVenue)
	}
	if msgs := f.Validate(); msgs != nil {
		t.Fatalf("Validate() = %q", msgs)
	}
	got := f.Artist()
	if !reflect.DeepEqual(&got, a) {
		t.Fatalf("Artist() = %+v, want %+v", got, a)
	}
}

func TestShowForm(t *testing.T) {
	t.Parallel()

	loc := time.FixedZone("EST", -5*3600)
	f := ShowForm{ArtistID: "4", VenueID: " 1 ", StartTime: "2035-04-01 20:00:00"}
	if msgs := f.Validate(); msgs != nil {
		t.Fatalf("Validate() = %q", msgs)
	}
	s, err := f.Show(loc)
	if err != nil {
		t.Fatalf("Show() error = %v", err)
	}
	if s.ArtistID != 4 || s.VenueID != 1 {
		t.Fatalf("ids = %d/%d", s.ArtistID, s.VenueID)
	}
	want := time.Date(2035, 4, 2, 1, 0, 0, 0, time.UTC)
	if !s.StartTime.Equal(want) {
		t.Fatalf("StartTime = %v, want %v", s.StartTime.UTC(), want)
	}

	bad := ShowForm{ArtistID: "x", VenueID: "", StartTime: "tomorrow"}
	got := bad.Validate()
	wantMsgs := []string{
		"Error in the Artist ID field - Not a valid ID, must be a positive integer.",
		"Error in the Venue ID field - This field is required.",
		"Error in the Start Time field - Not a valid datetime value.",
	}
	if !reflect.DeepEqual(got, wantMsgs) {
		t.Fatalf("Validate() = %q, want %q", got, wantMsgs)
	}
}

func TestShowFormRejectsNonPositiveIDs(t *testing.T) {
	t.Parallel()

	for _, id := range []string{"0", "-3", "18446744073709551616", "1.5"} {
		f := ShowForm{ArtistID: "1", VenueID: id, StartTime: "2035-04-01 20:00:00"}
		got := f.Validate()
		want := []string{"Error in the Venue ID field - Not a valid ID, must be a positive integer."}
		if !reflect.DeepEqual(got, want) {
			t.Errorf("VenueID %q: Validate() = %q, want %q", id, got, want)
		}
	}

	f := ShowForm{ArtistID: "18446744073709551615", VenueID: "1", StartTime: "2035-04-01 20:00:00"}
	if msgs := f.Validate(); msgs != nil {
		t.Fatalf("max uint64: Validate() = %q", msgs)
	}
	if _, err := f.Show(time.UTC); err != nil {
		t.Fatalf("max uint64: Show() error = %v", err)
	}
}

func TestParseStartTimeLayouts(t *testing.T) {
	t.Parallel()

	for _, in := range []string{"2035-04-01 20:00:00", "2035-04-01T20:00", "2035-04-01T20:00:00"} {
		got, err := ParseStartTime(in, time.UTC)
		if err != nil {
			t.Fatalf("ParseStartTime(%q) error = %v", in, err)
		}
		if got.Hour() != 20 || got.Day() != 1 {
			t.Fatalf("ParseStartTime(%q) = %v", in, got)
		}
	}
}

func TestNewShowFormDefaultsToNow(t *testing.T) {
	t.Parallel()

	now := time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)
	if got := NewShowForm(now).StartTime; got != "2024-01-02 03:04:05" {
		t.Fatalf("StartTime = %q", got)
	}
}
