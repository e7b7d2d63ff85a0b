package middleware

import (
	"errors"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/JWebCreation/wizishop-sdk/internal/metrics"
)

// unmatchedRoute labels requests no route matched, keeping raw paths out of
// the label set.
const unmatchedRoute = "unmatched"

// Metrics counts and times mock API calls by route pattern (for example
// /v3/shops/:shop/brands/:id). Health and scrape endpoints are left out.
func Metrics() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			route := c.Path()
			switch route {
			case "/metrics", "/healthz":
				return next(c)
			case "":
				route = unmatchedRoute
			}

			start := time.Now()
			err := next(c)
			elapsed := time.Since(start)

			labels := []string{c.Request().Method, route, strconv.Itoa(responseStatus(c, err))}
			metrics.MockRequestsTotal.WithLabelValues(labels...).Inc()
			metrics.MockRequestDuration.WithLabelValues(labels...).Observe(elapsed.Seconds())

			return err
		}
	}
}

// responseStatus is the status the client will see. An *echo.HTTPError
// returned by a handler is only written after the middleware chain unwinds.
func responseStatus(c echo.Context, err error) int {
	var he *echo.HTTPError
	if !c.Response().Committed && errors.As(err, &he) {
		return he.Code
	}
	return c.Response().Status
}
