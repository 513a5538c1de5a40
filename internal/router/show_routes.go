package router

import (
	"github.com/labstack/echo/v4"

	"github.com/iliyamo/fyyur/internal/handler"
)

// RegisterShows registers the /shows pages.
func RegisterShows(e *echo.Echo, h *handler.Handler, d Deps) {
	g := e.Group("/shows")
	g.GET("", h.ListShows, d.Cache.Middleware())
	g.GET("/create", h.CreateShowForm, d.Admin)
	g.POST("/create", h.CreateShow, d.Limit, d.Admin)
	g.DELETE("/:id", h.DeleteShow, d.Limit, d.Admin)
}
