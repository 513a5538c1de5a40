package handler

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/fyyur/internal/logger/sl"
	"github.com/iliyamo/fyyur/internal/view"
)

// ErrorHandler maps errors to responses: 404 and 5xx render the error
// pages, other HTTP errors keep their status with a short text body.
func ErrorHandler(log *slog.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		code := http.StatusInternalServerError
		msg := http.StatusText(code)
		var he *echo.HTTPError
		if errors.As(err, &he) {
			code = he.Code
			msg = fmt.Sprint(he.Message)
		}
		if code >= http.StatusInternalServerError {
			log.Error("request failed",
				slog.String("method", c.Request().Method),
				slog.String("uri", c.Request().RequestURI),
				sl.Err(err))
		}

		var rerr error
		switch {
		case c.Request().Method == http.MethodHead:
			rerr = c.NoContent(code)
		case code == http.StatusNotFound:
			rerr = c.Render(code, "errors/404", &view.Page{Title: "Not Found"})
		case code >= http.StatusInternalServerError:
			rerr = c.Render(code, "errors/500", &view.Page{Title: "Server Error"})
		default:
			rerr = c.String(code, msg)
		}
		if rerr != nil {
			log.Error("error response failed", sl.Err(rerr))
		}
	}
}
