package httpserver

import (
	"github.com/labstack/echo/v4"

	"github.com/pscheid92/salespulse/internal/platform/correlation"
)

const correlationHeader = "X-Correlation-ID"

// correlationMiddleware attaches a correlation ID to every request context,
// honoring an inbound X-Correlation-ID header and echoing the ID back.
func correlationMiddleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			id := c.Request().Header.Get(correlationHeader)
			if id == "" {
				id = correlation.NewID()
			}

			ctx := correlation.WithID(c.Request().Context(), id)
			c.SetRequest(c.Request().WithContext(ctx))
			c.Response().Header().Set(correlationHeader, id)

			return next(c)
		}
	}
}
