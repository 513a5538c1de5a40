// Package router wires middleware and registers the HTTP routes.
package router

import (
	"log/slog"
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"

	"github.com/iliyamo/fyyur/internal/handler"
	"github.com/iliyamo/fyyur/internal/middleware"
	"github.com/iliyamo/fyyur/internal/session"
	"github.com/iliyamo/fyyur/internal/view"
)

// CSRFCookieName is read by the delete buttons' script.
const CSRFCookieName = "_csrf"

// Deps holds the middleware shared by the route groups. Cache, Limit and
// Admin may be nil.
type Deps struct {
	Log           *slog.Logger
	Renderer      echo.Renderer
	Flash         *session.Store
	Metrics       *middleware.Metrics
	Cache         *middleware.PageCache
	Limit         echo.MiddlewareFunc // form submissions, searches and deletes
	Admin         echo.MiddlewareFunc // create, edit and delete
	CSRF          bool
	SecureCookies bool
}

func passthrough(next echo.HandlerFunc) echo.HandlerFunc { return next }

// New builds the Echo instance with the global middleware chain and every
// route registered.
func New(h *handler.Handler, d Deps) *echo.Echo {
	if d.Limit == nil {
		d.Limit = passthrough
	}
	if d.Admin == nil {
		d.Admin = passthrough
	}

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Renderer = d.Renderer
	e.HTTPErrorHandler = handler.ErrorHandler(d.Log)

	e.Use(echomw.Recover())
	e.Use(echomw.RequestIDWithConfig(echomw.RequestIDConfig{Generator: uuid.NewString}))
	e.Use(middleware.RequestLogger(d.Log))
	if d.Metrics != nil {
		e.Use(d.Metrics.Middleware())
	}
	if d.CSRF {
		e.Use(echomw.CSRFWithConfig(echomw.CSRFConfig{
			Skipper:        skipCSRF,
			TokenLookup:    "form:csrf_token,header:X-CSRF-Token",
			ContextKey:     view.CSRFContextKey,
			CookieName:     CSRFCookieName,
			CookiePath:     "/",
			CookieSecure:   d.SecureCookies,
			CookieHTTPOnly: false, // read by app.js for DELETE requests
			CookieSameSite: http.SameSiteLaxMode,
		}))
	}
	if d.Flash != nil {
		e.Use(d.Flash.Middleware())
	}

	e.StaticFS("/static", view.Static())

	RegisterRoutes(e, h, d)
	RegisterVenues(e, h, d)
	RegisterArtists(e, h, d)
	RegisterShows(e, h, d)
	return e
}

// skipCSRF exempts the navbar search forms, which are rendered on cached
// pages without a per-user token, and the probe endpoints.
func skipCSRF(c echo.Context) bool {
	switch c.Path() {
	case "/venues/search", "/artists/search", "/healthz", "/metrics":
		return true
	}
	return false
}

// RegisterRoutes registers the home page and the operational endpoints.
func RegisterRoutes(e *echo.Echo, h *handler.Handler, d Deps) {
	e.GET("/", h.Home)
	// load balancers and monitoring systems poll this
	e.GET("/healthz", h.Health)
	if d.Metrics != nil {
		e.GET("/metrics", d.Metrics.Handler())
	}
}
