package router

import (
	"github.com/labstack/echo/v4"

	"github.com/iliyamo/fyyur/internal/handler"
)

// RegisterVenues registers the /venues pages. Lists and detail pages go
// through the page cache; mutations are rate limited and admin guarded.
func RegisterVenues(e *echo.Echo, h *handler.Handler, d Deps) {
	cache := d.Cache.Middleware()

	g := e.Group("/venues")
	g.GET("", h.ListVenues, cache)
	g.POST("/search", h.SearchVenues, d.Limit)
	g.GET("/create", h.CreateVenueForm, d.Admin)
	g.POST("/create", h.CreateVenue, d.Limit, d.Admin)
	g.GET("/:id", h.ShowVenue, cache)
	g.GET("/:id/edit", h.EditVenueForm, d.Admin)
	g.POST("/:id/edit", h.EditVenue, d.Limit, d.Admin)
	g.DELETE("/:id", h.DeleteVenue, d.Limit, d.Admin)
}
