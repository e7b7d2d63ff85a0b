package middleware

import (
	"fmt"
	"log/slog"
	"net/http"
	"runtime/debug"

	"github.com/labstack/echo/v4"
)

// Recovery turns a handler panic into the API's 500 answer. It sits inside
// RequestLog and Metrics so the failed call is still logged and counted.
func Recovery(log *slog.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) (err error) {
			defer func() {
				r := recover()
				if r == nil {
					return
				}

				reqID, _ := c.Get("request_id").(string)
				log.ErrorContext(c.Request().Context(), "handler panic",
					"panic", fmt.Sprint(r),
					"route", c.Path(),
					"method", c.Request().Method,
					"path", c.Request().URL.Path,
					"request_id", reqID,
					"stack", string(debug.Stack()),
				)

				if c.Response().Committed {
					err = nil
					return
				}
				err = message(c, http.StatusInternalServerError, "internal server error")
			}()
			return next(c)
		}
	}
}

// message writes the API's {"message": ...} error body.
func message(c echo.Context, status int, msg string) error {
	return c.JSON(status, map[string]string{"message": msg})
}
