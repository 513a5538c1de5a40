package handler

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/fyyur/internal/form"
	"github.com/iliyamo/fyyur/internal/logger/sl"
	"github.com/iliyamo/fyyur/internal/model"
	"github.com/iliyamo/fyyur/internal/queue"
	"github.com/iliyamo/fyyur/internal/repository"
	"github.com/iliyamo/fyyur/internal/session"
)

// ListVenues handles GET /venues: every venue grouped by (city, state).
func (h *Handler) ListVenues(c echo.Context) error {
	const op = "handler.ListVenues"

	summaries, err := h.venues.Summaries(c.Request().Context())
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return h.render(c, http.StatusOK, "pages/venues", "Venues", "venues",
		model.GroupByArea(summaries, h.now()))
}

// SearchVenues handles POST /venues/search.
func (h *Handler) SearchVenues(c echo.Context) error {
	const op = "handler.SearchVenues"

	summaries, err := h.venues.Summaries(c.Request().Context())
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	term := strings.TrimSpace(c.FormValue("search_term"))
	results := model.Search(summaries, term, h.now())
	return h.render(c, http.StatusOK, "pages/search_venues", "Search venues", "venues",
		SearchPage{Term: term, Count: len(results), Results: results})
}

// ShowVenue handles GET /venues/:id.
func (h *Handler) ShowVenue(c echo.Context) error {
	const op = "handler.ShowVenue"

	id, ok := parseID(c)
	if !ok {
		return echo.ErrNotFound
	}
	ctx := c.Request().Context()
	v, err := h.venues.GetByID(ctx, id)
	if errors.Is(err, repository.ErrVenueNotFound) {
		return echo.ErrNotFound
	}
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	shows, err := h.venues.Shows(ctx, id)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	upcoming, past := model.ClassifyShows(shows, h.now())
	return h.render(c, http.StatusOK, "pages/show_venue", v.Name, "venues", VenueDetail{
		Venue:              v,
		PastShows:          past,
		UpcomingShows:      upcoming,
		PastShowsCount:     len(past),
		UpcomingShowsCount: len(upcoming),
	})
}

// CreateVenueForm handles GET /venues/create.
func (h *Handler) CreateVenueForm(c echo.Context) error {
	return h.renderVenueForm(c, 0, form.VenueForm{})
}

// CreateVenue handles POST /venues/create. Success and failure both end on
// a rendered page; only the form is shown again on failure.
func (h *Handler) CreateVenue(c echo.Context) error {
	log := h.opLog(c, "handler.CreateVenue")

	var f form.VenueForm
	if err := c.Bind(&f); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid form submission")
	}
	if msgs := f.Validate(); len(msgs) > 0 {
		for _, m := range msgs {
			session.FlashError(c, m)
		}
		return h.renderVenueForm(c, 0, f)
	}

	v := f.Venue()
	err := h.venues.Create(c.Request().Context(), &v)
	switch {
	case errors.Is(err, repository.ErrVenueExists):
		session.Flash(c, `Venue with name: " `+v.Name+`" already exists.`)
		return h.renderVenueForm(c, 0, f)
	case err != nil:
		log.Error("failed to create venue", sl.Err(err), slog.String("name", v.Name))
		session.Flash(c, "An error occurred. Venue "+v.Name+" could not be listed.")
		return h.renderVenueForm(c, 0, f)
	}

	log.Info("venue created", slog.Uint64("venue_id", v.ID))
	h.afterMutation(c, log, queue.NewEvent(queue.VenueCreated, "venue", v.ID, v.Name, v.City+", "+v.State))
	session.Flash(c, "Venue "+v.Name+" was successfully listed!")
	return h.Home(c)
}

// EditVenueForm handles GET /venues/:id/edit.
func (h *Handler) EditVenueForm(c echo.Context) error {
	const op = "handler.EditVenueForm"

	id, ok := parseID(c)
	if !ok {
		return echo.ErrNotFound
	}
	v, err := h.venues.GetByID(c.Request().Context(), id)
	if errors.Is(err, repository.ErrVenueNotFound) {
		return echo.ErrNotFound
	}
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return h.renderVenueForm(c, id, form.NewVenueForm(v))
}

// EditVenue handles POST /venues/:id/edit and redirects to the venue page
// on success.
func (h *Handler) EditVenue(c echo.Context) error {
	log := h.opLog(c, "handler.EditVenue")

	id, ok := parseID(c)
	if !ok {
		return echo.ErrNotFound
	}
	var f form.VenueForm
	if err := c.Bind(&f); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid form submission")
	}
	if msgs := f.Validate(); len(msgs) > 0 {
		for _, m := range msgs {
			session.FlashError(c, m)
		}
		return h.renderVenueForm(c, id, f)
	}

	v := f.Venue()
	v.ID = id
	err := h.venues.Update(c.Request().Context(), &v)
	switch {
	case errors.Is(err, repository.ErrVenueNotFound):
		return echo.ErrNotFound
	case errors.Is(err, repository.ErrVenueExists):
		session.Flash(c, `Venue with name: " `+v.Name+`" already exists.`)
		return h.renderVenueForm(c, id, f)
	case err != nil:
		log.Error("failed to update venue", sl.Err(err), slog.Uint64("venue_id", id))
		session.Flash(c, "Venue "+v.Name+" record is not edited")
		return h.renderVenueForm(c, id, f)
	}

	h.afterMutation(c, log, queue.NewEvent(queue.VenueUpdated, "venue", id, v.Name, ""))
	session.Flash(c, "Venue "+v.Name+" has been edited successfully")
	return c.Redirect(http.StatusSeeOther, fmt.Sprintf("/venues/%d", id))
}

// DeleteVenue handles DELETE /venues/:id together with the venue's shows.
func (h *Handler) DeleteVenue(c echo.Context) error {
	log := h.opLog(c, "handler.DeleteVenue")

	id, ok := parseID(c)
	if !ok {
		return deleteResult(c, http.StatusNotFound)
	}
	name, err := h.venues.Delete(c.Request().Context(), id)
	if errors.Is(err, repository.ErrVenueNotFound) {
		return deleteResult(c, http.StatusNotFound)
	}
	if err != nil {
		log.Error("failed to delete venue", sl.Err(err), slog.Uint64("venue_id", id))
		return deleteResult(c, http.StatusInternalServerError)
	}

	h.afterMutation(c, log, queue.NewEvent(queue.VenueDeleted, "venue", id, name, ""))
	return deleteResult(c, http.StatusOK)
}

func (h *Handler) renderVenueForm(c echo.Context, id uint64, f form.VenueForm) error {
	if id == 0 {
		return h.render(c, http.StatusOK, "forms/new_venue", "New venue", "venues", VenueFormPage{Form: f})
	}
	return h.render(c, http.StatusOK, "forms/edit_venue", "Edit venue", "venues", VenueFormPage{ID: id, Form: f})
}
