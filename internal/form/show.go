package form

import (
	"strconv"
	"strings"
	"time"

	"github.com/iliyamo/fyyur/internal/model"
)

// ShowForm is the create show submission. Ids stay strings so a bad value
// produces a validation message rather than a bind error.
type ShowForm struct {
	ArtistID  string `form:"artist_id" validate:"required,id" label:"Artist ID"`
	VenueID   string `form:"venue_id" validate:"required,id" label:"Venue ID"`
	StartTime string `form:"start_time" validate:"required,start_time" label:"Start Time"`
}

// NewShowForm returns an empty form whose start time defaults to now.
func NewShowForm(now time.Time) ShowForm {
	return ShowForm{StartTime: now.Format(StartTimeLayout)}
}

func (f *ShowForm) Validate() []string {
	f.ArtistID = strings.TrimSpace(f.ArtistID)
	f.VenueID = strings.TrimSpace(f.VenueID)
	f.StartTime = strings.TrimSpace(f.StartTime)
	return messages(f)
}

// Show converts a validated form into a model, reading the start time in
// loc.
func (f *ShowForm) Show(loc *time.Location) (model.Show, error) {
	artistID, err := strconv.ParseUint(f.ArtistID, 10, 64)
	if err != nil {
		return model.Show{}, err
	}
	venueID, err := strconv.ParseUint(f.VenueID, 10, 64)
	if err != nil {
		return model.Show{}, err
	}
	start, err := ParseStartTime(f.StartTime, loc)
	if err != nil {
		return model.Show{}, err
	}
	return model.Show{ArtistID: artistID, VenueID: venueID, StartTime: start}, nil
}
