package handler

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/fyyur/internal/form"
	"github.com/iliyamo/fyyur/internal/logger/sl"
	"github.com/iliyamo/fyyur/internal/model"
	"github.com/iliyamo/fyyur/internal/queue"
	"github.com/iliyamo/fyyur/internal/repository"
	"github.com/iliyamo/fyyur/internal/session"
)

// ListShows handles GET /shows. The when query parameter selects upcoming
// (default), past or all shows.
func (h *Handler) ListShows(c echo.Context) error {
	const op = "handler.ListShows"

	shows, err := h.shows.List(c.Request().Context())
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	when := c.QueryParam("when")
	upcoming, past := model.ClassifyShows(shows, h.now())
	switch when {
	case "past":
		shows = past
	case "all":
	default:
		when = "upcoming"
		shows = upcoming
	}
	return h.render(c, http.StatusOK, "pages/shows", "Shows", "shows", ShowsPage{When: when, Shows: shows})
}

// CreateShowForm handles GET /shows/create.
func (h *Handler) CreateShowForm(c echo.Context) error {
	return h.renderShowForm(c, form.NewShowForm(h.now().In(h.loc)))
}

// CreateShow handles POST /shows/create.
func (h *Handler) CreateShow(c echo.Context) error {
	log := h.opLog(c, "handler.CreateShow")

	var f form.ShowForm
	if err := c.Bind(&f); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid form submission")
	}
	if msgs := f.Validate(); len(msgs) > 0 {
		for _, m := range msgs {
			session.FlashError(c, m)
		}
		return h.renderShowForm(c, f)
	}
	s, err := f.Show(h.loc)
	if err != nil {
		session.Flash(c, "Show was not successfully listed!")
		return h.renderShowForm(c, f)
	}

	ctx := c.Request().Context()
	err = h.shows.Create(ctx, &s)
	switch {
	case errors.Is(err, repository.ErrVenueNotFound):
		session.Flash(c, fmt.Sprintf("Venue with ID %d does not exist.", s.VenueID))
		return h.renderShowForm(c, f)
	case errors.Is(err, repository.ErrArtistNotFound):
		session.Flash(c, fmt.Sprintf("Artist with ID %d does not exist.", s.ArtistID))
		return h.renderShowForm(c, f)
	case err != nil:
		log.Error("failed to create show", sl.Err(err))
		session.Flash(c, "Show was not successfully listed!")
		return h.renderShowForm(c, f)
	}

	log.Info("show created", slog.Uint64("show_id", s.ID))
	name := fmt.Sprintf("show #%d", s.ID)
	if l, err := h.shows.GetByID(ctx, s.ID); err == nil {
		name = showName(l)
	}
	detail := "starts " + s.StartTime.UTC().Format(time.RFC3339)
	h.afterMutation(c, log, queue.NewEvent(queue.ShowCreated, "show", s.ID, name, detail))
	session.Flash(c, "Show was successfully listed!")
	return h.Home(c)
}

// DeleteShow handles DELETE /shows/:id.
func (h *Handler) DeleteShow(c echo.Context) error {
	log := h.opLog(c, "handler.DeleteShow")

	id, ok := parseID(c)
	if !ok {
		return deleteResult(c, http.StatusNotFound)
	}
	ctx := c.Request().Context()
	l, err := h.shows.GetByID(ctx, id)
	if errors.Is(err, repository.ErrShowNotFound) {
		return deleteResult(c, http.StatusNotFound)
	}
	if err != nil {
		log.Error("failed to load show", sl.Err(err), slog.Uint64("show_id", id))
		return deleteResult(c, http.StatusInternalServerError)
	}
	err = h.shows.Delete(ctx, id)
	if errors.Is(err, repository.ErrShowNotFound) {
		return deleteResult(c, http.StatusNotFound)
	}
	if err != nil {
		log.Error("failed to delete show", sl.Err(err), slog.Uint64("show_id", id))
		return deleteResult(c, http.StatusInternalServerError)
	}

	h.afterMutation(c, log, queue.NewEvent(queue.ShowDeleted, "show", id, showName(l), ""))
	return deleteResult(c, http.StatusOK)
}

func showName(l *model.ShowListing) string {
	return l.ArtistName + " at " + l.VenueName
}

// renderShowForm shows the create form with venue and artist choices. A
// failed lookup only empties the choices.
func (h *Handler) renderShowForm(c echo.Context, f form.ShowForm) error {
	ctx := c.Request().Context()
	log := h.opLog(c, "handler.renderShowForm")

	venues, err := h.venues.Options(ctx)
	if err != nil {
		log.Warn("failed to load venue options", sl.Err(err))
	}
	artists, err := h.artists.Options(ctx)
	if err != nil {
		log.Warn("failed to load artist options", sl.Err(err))
	}
	return h.render(c, http.StatusOK, "forms/new_show", "New show", "shows",
		ShowFormPage{Form: f, Venues: venues, Artists: artists})
}
