// Package handler contains the HTTP handlers of the web application.
package handler

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/fyyur/internal/logger/sl"
	"github.com/iliyamo/fyyur/internal/queue"
	"github.com/iliyamo/fyyur/internal/repository"
	"github.com/iliyamo/fyyur/internal/view"
)

// CachePurger drops cached pages after a mutation.
type CachePurger interface {
	Purge(ctx context.Context) error
}

// EventPublisher publishes activity events.
type EventPublisher interface {
	Publish(ctx context.Context, ev queue.ActivityEvent) error
}

// Pinger reports database liveness.
type Pinger interface {
	PingContext(ctx context.Context) error
}

// Deps bundles what the handlers need. Cache, Events, Now and Loc are
// optional.
type Deps struct {
	Venues  *repository.VenueRepo
	Artists *repository.ArtistRepo
	Shows   *repository.ShowRepo
	DB      Pinger
	Cache   CachePurger
	Events  EventPublisher
	Log     *slog.Logger
	Now     func() time.Time
	Loc     *time.Location // zone of form input
}

// Handler serves every page and form of the application.
type Handler struct {
	venues  *repository.VenueRepo
	artists *repository.ArtistRepo
	shows   *repository.ShowRepo
	db      Pinger
	cache   CachePurger
	events  EventPublisher
	log     *slog.Logger
	now     func() time.Time
	loc     *time.Location
}

type noopCache struct{}

func (noopCache) Purge(context.Context) error { return nil }

type noopEvents struct{}

func (noopEvents) Publish(context.Context, queue.ActivityEvent) error { return nil }

// New constructs a Handler and panics if a repository is missing.
func New(d Deps) *Handler {
	if d.Venues == nil || d.Artists == nil || d.Shows == nil {
		panic("nil repository passed to handler.New")
	}
	h := &Handler{
		venues:  d.Venues,
		artists: d.Artists,
		shows:   d.Shows,
		db:      d.DB,
		cache:   d.Cache,
		events:  d.Events,
		log:     d.Log,
		now:     d.Now,
		loc:     d.Loc,
	}
	if h.cache == nil {
		h.cache = noopCache{}
	}
	if h.events == nil {
		h.events = noopEvents{}
	}
	if h.log == nil {
		h.log = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	if h.now == nil {
		h.now = time.Now
	}
	if h.loc == nil {
		h.loc = time.UTC
	}
	return h
}

// opLog returns the handler logger tagged with op and the request id.
func (h *Handler) opLog(c echo.Context, op string) *slog.Logger {
	return h.log.With(
		slog.String("op", op),
		slog.String("request_id", c.Response().Header().Get(echo.HeaderXRequestID)),
	)
}

func (h *Handler) render(c echo.Context, code int, name, title, section string, data any) error {
	return c.Render(code, name, &view.Page{Title: title, Section: section, Data: data})
}

// afterMutation purges the page cache and publishes ev. Failures are only
// logged; the mutation already committed.
func (h *Handler) afterMutation(c echo.Context, log *slog.Logger, ev queue.ActivityEvent) {
	ctx := c.Request().Context()
	if err := h.cache.Purge(ctx); err != nil {
		log.Warn("cache purge failed", sl.Err(err))
	}
	if err := h.events.Publish(ctx, ev); err != nil {
		log.Warn("event not queued", sl.Err(err), slog.String("event", ev.Type))
	}
}

// parseID reads the :id path parameter.
func parseID(c echo.Context) (uint64, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		return 0, false
	}
	return id, true
}

func deleteResult(c echo.Context, code int) error {
	return c.JSON(code, echo.Map{"success": code == http.StatusOK})
}
