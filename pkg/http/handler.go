package http

import "github.com/labstack/echo/v4"

// Handler is implemented by anything that mounts routes on the server's
// Echo instance; the server calls it once during construction.
type Handler interface {
	RegisterRoutes(e *echo.Echo)
}
