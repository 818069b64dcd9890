package middleware

import (
	"time"

	applogger "DomainFlip/pkg/logger"

	"github.com/labstack/echo/v4"
)

// RequestLogging logs every request through the application logger with
// method, path, status and latency. Errors are logged at warn level so the
// access log stays scannable for failures.
func RequestLogging(l *applogger.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()

			err := next(c)

			req := c.Request()
			res := c.Response()
			fields := []applogger.Field{
				applogger.String("method", req.Method),
				applogger.String("path", req.URL.Path),
				applogger.String("remote", c.RealIP()),
				applogger.Int("status", res.Status),
				applogger.Duration("took", time.Since(start)),
			}
			if err != nil {
				l.Warn("http request failed", append(fields, applogger.Error(err))...)
			} else {
				l.Info("http request", fields...)
			}

			return err
		}
	}
}
