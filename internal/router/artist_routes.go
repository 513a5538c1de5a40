package router

import (
	"github.com/labstack/echo/v4"

	"github.com/iliyamo/fyyur/internal/handler"
)

// RegisterArtists registers the /artists pages, mirroring RegisterVenues.
func RegisterArtists(e *echo.Echo, h *handler.Handler, d Deps) {
	cache := d.Cache.Middleware()

	g := e.Group("/artists")
	g.GET("", h.ListArtists, cache)
	g.POST("/search", h.SearchArtists, d.Limit)
	g.GET("/create", h.CreateArtistForm, d.Admin)
	g.POST("/create", h.CreateArtist, d.Limit, d.Admin)
	g.GET("/:id", h.ShowArtist, cache)
	g.GET("/:id/edit", h.EditArtistForm, d.Admin)
	g.POST("/:id/edit", h.EditArtist, d.Limit, d.Admin)
	g.DELETE("/:id", h.DeleteArtist, d.Limit, d.Admin)
}
