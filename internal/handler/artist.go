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

// ListArtists handles GET /artists: id and name of every artist.
func (h *Handler) ListArtists(c echo.Context) error {
	const op = "handler.ListArtists"

	summaries, err := h.artists.Summaries(c.Request().Context())
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	artists := make([]model.Option, 0, len(summaries))
	for _, s := range summaries {
		artists = append(artists, model.Option{ID: s.ID, Name: s.Name})
	}
	return h.render(c, http.StatusOK, "pages/artists", "Artists", "artists", artists)
}

// SearchArtists handles POST /artists/search.
func (h *Handler) SearchArtists(c echo.Context) error {
	const op = "handler.SearchArtists"

	summaries, err := h.artists.Summaries(c.Request().Context())
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	term := strings.TrimSpace(c.FormValue("search_term"))
	results := model.Search(summaries, term, h.now())
	return h.render(c, http.StatusOK, "pages/search_artists", "Search artists", "artists",
		SearchPage{Term: term, Count: len(results), Results: results})
}

// ShowArtist handles GET /artists/:id.
func (h *Handler) ShowArtist(c echo.Context) error {
	const op = "handler.ShowArtist"

	id, ok := parseID(c)
	if !ok {
		return echo.ErrNotFound
	}
	ctx := c.Request().Context()
	a, err := h.artists.GetByID(ctx, id)
	if errors.Is(err, repository.ErrArtistNotFound) {
		return echo.ErrNotFound
	}
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	shows, err := h.artists.Shows(ctx, id)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	upcoming, past := model.ClassifyShows(shows, h.now())
	return h.render(c, http.StatusOK, "pages/show_artist", a.Name, "artists", ArtistDetail{
		Artist:             a,
		PastShows:          past,
		UpcomingShows:      upcoming,
		PastShowsCount:     len(past),
		UpcomingShowsCount: len(upcoming),
	})
}

// CreateArtistForm handles GET /artists/create.
func (h *Handler) CreateArtistForm(c echo.Context) error {
	return h.renderArtistForm(c, 0, form.ArtistForm{})
}

// CreateArtist handles POST /artists/create.
func (h *Handler) CreateArtist(c echo.Context) error {
	log := h.opLog(c, "handler.CreateArtist")

	var f form.ArtistForm
	if err := c.Bind(&f); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid form submission")
	}
	if msgs := f.Validate(); len(msgs) > 0 {
		for _, m := range msgs {
			session.FlashError(c, m)
		}
		return h.renderArtistForm(c, 0, f)
	}

	a := f.Artist()
	err := h.artists.Create(c.Request().Context(), &a)
	switch {
	case errors.Is(err, repository.ErrArtistExists):
		session.Flash(c, `Artist with name: " `+a.Name+`" already exists.`)
		return h.renderArtistForm(c, 0, f)
	case err != nil:
		log.Error("failed to create artist", sl.Err(err), slog.String("name", a.Name))
		session.Flash(c, "An error occurred. Artist "+a.Name+" could not be listed.")
		return h.renderArtistForm(c, 0, f)
	}

	log.Info("artist created", slog.Uint64("artist_id", a.ID))
	h.afterMutation(c, log, queue.NewEvent(queue.ArtistCreated, "artist", a.ID, a.Name, a.City+", "+a.State))
	session.Flash(c, "Artist "+a.Name+" was successfully listed!")
	return h.Home(c)
}

// EditArtistForm handles GET /artists/:id/edit.
func (h *Handler) EditArtistForm(c echo.Context) error {
	const op = "handler.EditArtistForm"

	id, ok := parseID(c)
	if !ok {
		return echo.ErrNotFound
	}
	a, err := h.artists.GetByID(c.Request().Context(), id)
	if errors.Is(err, repository.ErrArtistNotFound) {
		return echo.ErrNotFound
	}
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return h.renderArtistForm(c, id, form.NewArtistForm(a))
}

// EditArtist handles POST /artists/:id/edit and redirects to the artist page
// on success.
func (h *Handler) EditArtist(c echo.Context) error {
	log := h.opLog(c, "handler.EditArtist")

	id, ok := parseID(c)
	if !ok {
		return echo.ErrNotFound
	}
	var f form.ArtistForm
	if err := c.Bind(&f); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid form submission")
	}
	if msgs := f.Validate(); len(msgs) > 0 {
		for _, m := range msgs {
			session.FlashError(c, m)
		}
		return h.renderArtistForm(c, id, f)
	}

	a := f.Artist()
	a.ID = id
	err := h.artists.Update(c.Request().Context(), &a)
	switch {
	case errors.Is(err, repository.ErrArtistNotFound):
		return echo.ErrNotFound
	case errors.Is(err, repository.ErrArtistExists):
		session.Flash(c, `Artist with name: " `+a.Name+`" already exists.`)
		return h.renderArtistForm(c, id, f)
	case err != nil:
		log.Error("failed to update artist", sl.Err(err), slog.Uint64("artist_id", id))
		session.Flash(c, "Artist "+a.Name+" record is not edited")
		return h.renderArtistForm(c, id, f)
	}

	h.afterMutation(c, log, queue.NewEvent(queue.ArtistUpdated, "artist", id, a.Name, ""))
	session.Flash(c, "Artist "+a.Name+" has been edited successfully")
	return c.Redirect(http.StatusSeeOther, fmt.Sprintf("/artists/%d", id))
}

// DeleteArtist handles DELETE /artists/:id. The artist's shows go with it.
func (h *Handler) DeleteArtist(c echo.Context) error {
	log := h.opLog(c, "handler.DeleteArtist")

	id, ok := parseID(c)
	if !ok {
		return deleteResult(c, http.StatusNotFound)
	}
	name, err := h.artists.Delete(c.Request().Context(), id)
	if errors.Is(err, repository.ErrArtistNotFound) {
		return deleteResult(c, http.StatusNotFound)
	}
	if err != nil {
		log.Error("failed to delete artist", sl.Err(err), slog.Uint64("artist_id", id))
		return deleteResult(c, http.StatusInternalServerError)
	}

	h.afterMutation(c, log, queue.NewEvent(queue.ArtistDeleted, "artist", id, name, ""))
	return deleteResult(c, http.StatusOK)
}

func (h *Handler) renderArtistForm(c echo.Context, id uint64, f form.ArtistForm) error {
	if id == 0 {
		return h.render(c, http.StatusOK, "forms/new_artist", "New artist", "artists", ArtistFormPage{Form: f})
	}
	return h.render(c, http.StatusOK, "forms/edit_artist", "Edit artist", "artists", ArtistFormPage{ID: id, Form: f})
}
