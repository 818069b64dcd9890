package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
)

func TestRouteTagLabelsByTemplate(t *testing.T) {
	e := echo.New()
	e.Use(RouteTag())

	var got string
	e.GET("/api/evaluate/:domain", func(c echo.Context) error {
		got = routeLabel(c.Request())
		return c.NoContent(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodGet, "/api/evaluate/ai.com", nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status: %d", rec.Code)
	}
	// the label is the route template, never the raw URL
	if got != "/api/evaluate/:domain" {
		t.Fatalf("route label = %q", got)
	}
}

func TestRouteLabelUnmatched(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/some/random/url", nil)
	if got := routeLabel(req); got != "unmatched" {
		t.Fatalf("route label = %q", got)
	}
}
