package handler

import (
	"github.com/iliyamo/fyyur/internal/form"
	"github.com/iliyamo/fyyur/internal/model"
)

// Template data of the individual pages.

type SearchPage struct {
	Term    string
	Count   int
	Results []model.SearchResult
}

type VenueDetail struct {
	Venue              *model.Venue
	PastShows          []model.ShowListing
	UpcomingShows      []model.ShowListing
	PastShowsCount     int
	UpcomingShowsCount int
}

type ArtistDetail struct {
	Artist             *model.Artist
	PastShows          []model.ShowListing
	UpcomingShows      []model.ShowListing
	PastShowsCount     int
	UpcomingShowsCount int
}

type ShowsPage struct {
	When  string // upcoming, past or all
	Shows []model.ShowListing
}

type VenueFormPage struct {
	ID   uint64 // zero on create
	Form form.VenueForm
}

type ArtistFormPage struct {
	ID   uint64
	Form form.ArtistForm
}

type ShowFormPage struct {
	Form    form.ShowForm
	Venues  []model.Option
	Artists []model.Option
}
