package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/fyyur/internal/logger/sl"
)

// Health is used by load balancers and monitoring systems. It answers a
// plain "ok" when the database responds to a ping within two seconds and
// 503 otherwise.
func (h *Handler) Health(c echo.Context) error {
	if h.db != nil {
		ctx, cancel := context.WithTimeout(c.Request().Context(), 2*time.Second)
		defer cancel()
		if err := h.db.PingContext(ctx); err != nil {
			h.opLog(c, "handler.Health").Error("database ping failed", sl.Err(err))
			return c.String(http.StatusServiceUnavailable, "unavailable")
		}
	}
	return c.String(http.StatusOK, "ok")
}

// Home renders the landing page.
func (h *Handler) Home(c echo.Context) error {
	return h.render(c, http.StatusOK, "pages/home", "", "", nil)
}
