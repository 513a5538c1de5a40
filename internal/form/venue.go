package form

import (
	"strings"

	"github.com/iliyamo/fyyur/internal/model"
)

// VenueForm is the create/edit venue submission.
type VenueForm struct {
	Name               string   `form:"name" validate:"required,max=255" label:"Name"`
	City               string   `form:"city" validate:"required,max=120" label:"City"`
	State              string   `form:"state" validate:"required,us_state" label:"State"`
	Address            string   `form:"address" validate:"required,max=120" label:"Address"`
	Phone              string   `form:"phone" validate:"omitempty,phone" label:"Phone"`
	ImageLink          string   `form:"image_link" validate:"omitempty,url,max=500" label:"Image Link"`
	Genres             []string `form:"genres" validate:"required,min=1,dive,genre" label:"Genres"`
	FacebookLink       string   `form:"facebook_link" validate:"omitempty,url,max=120" label:"Facebook Link"`
	WebsiteLink        string   `form:"website_link" validate:"omitempty,url,max=120" label:"Website Link"`
	SeekingTalent      string   `form:"seeking_talent" label:"Seeking Talent"`
	SeekingDescription string   `form:"seeking_description" validate:"max=500" label:"Seeking Description"`
}

// NewVenueForm pre-fills a form from an existing venue.
func NewVenueForm(v *model.Venue) VenueForm {
	f := VenueForm{
		Name:               v.Name,
		City:               v.City,
		State:              v.State,
		Address:            v.Address,
		Phone:              v.Phone,
		ImageLink:          v.ImageLink,
		Genres:             append([]string(nil), v.Genres...),
		FacebookLink:       v.FacebookLink,
		WebsiteLink:        v.WebsiteLink,
		SeekingDescription: v.SeekingDescription,
	}
	if v.SeekingTalent {
		f.SeekingTalent = "y"
	}
	return f
}

// Validate trims the text fields and returns the flash messages for every
// failed rule. A nil result means the form is valid.
func (f *VenueForm) Validate() []string {
	for _, p := range []*string{&f.Name, &f.City, &f.State, &f.Address, &f.Phone,
		&f.ImageLink, &f.FacebookLink, &f.WebsiteLink, &f.SeekingDescription} {
		*p = strings.TrimSpace(*p)
	}
	return messages(f)
}

// Venue converts the form into a model. The id is left zero.
func (f *VenueForm) Venue() model.Venue {
	return model.Venue{
		Name:               f.Name,
		City:               f.City,
		State:              f.State,
		Address:            f.Address,
		Phone:              f.Phone,
		ImageLink:          f.ImageLink,
		FacebookLink:       f.FacebookLink,
		Genres:             model.Genres(append([]string(nil), f.Genres...)),
		WebsiteLink:        f.WebsiteLink,
		SeekingTalent:      checked(f.SeekingTalent),
		SeekingDescription: f.SeekingDescription,
	}
}

// Seeking reports whether the checkbox is ticked, for templates.
func (f VenueForm) Seeking() bool { return checked(f.SeekingTalent) }
