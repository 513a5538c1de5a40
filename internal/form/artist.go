package form

import (
	"strings"

	"github.com/iliyamo/fyyur/internal/model"
)

// ArtistForm is the create/edit artist submission.
type ArtistForm struct {
	Name               string   `form:"name" validate:"required,max=255" label:"Name"`
	City               string   `form:"city" validate:"required,max=120" label:"City"`
	State              string   `form:"state" validate:"required,us_state" label:"State"`
	Phone              string   `form:"phone" validate:"omitempty,phone" label:"Phone"`
	ImageLink          string   `form:"image_link" validate:"omitempty,url,max=500" label:"Image Link"`
	Genres             []string `form:"genres" validate:"required,min=1,dive,genre" label:"Genres"`
	FacebookLink       string   `form:"facebook_link" validate:"omitempty,url,max=120" label:"Facebook Link"`
	WebsiteLink        string   `form:"website_link" validate:"omitempty,url,max=120" label:"Website Link"`
	SeekingVenue       string   `form:"seeking_venue" label:"Seeking Venue"`
	SeekingDescription string   `form:"seeking_description" validate:"max=500" label:"Seeking Description"`
}

// NewArtistForm pre-fills a form from an existing artist.
func NewArtistForm(a *model.Artist) ArtistForm {
	f := ArtistForm{
		Name:               a.Name,
		City:               a.City,
		State:              a.State,
		Phone:              a.Phone,
		ImageLink:          a.ImageLink,
		Genres:             append([]string(nil), a.Genres...),
		FacebookLink:       a.FacebookLink,
		WebsiteLink:        a.WebsiteLink,
		SeekingDescription: a.SeekingDescription,
	}
	if a.SeekingVenue {
		f.SeekingVenue = "y"
	}
	return f
}

func (f *ArtistForm) Validate() []string {
	for _, p := range []*string{&f.Name, &f.City, &f.State, &f.Phone,
		&f.ImageLink, &f.FacebookLink, &f.WebsiteLink, &f.SeekingDescription} {
		*p = strings.TrimSpace(*p)
	}
	return messages(f)
}

func (f *ArtistForm) Artist() model.Artist {
	return model.Artist{
		Name:               f.Name,
		City:               f.City,
		State:              f.State,
		Phone:              f.Phone,
		Genres:             model.Genres(append([]string(nil), f.Genres...)),
		ImageLink:          f.ImageLink,
		FacebookLink:       f.FacebookLink,
		WebsiteLink:        f.WebsiteLink,
		SeekingVenue:       checked(f.SeekingVenue),
		SeekingDescription: f.SeekingDescription,
	}
}

func (f ArtistForm) Seeking() bool { return checked(f.SeekingVenue) }
