// Package server exposes the listing query engine over a small JSON API.
// No templates, no sessions, no static files — the presentation layer
// lives elsewhere.
package server

import (
	"context"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"golang.org/x/time/rate"

	"autoagora/catalog"
	"autoagora/config"
	"autoagora/query"
)

type Server struct {
	echo    *echo.Echo
	cfg     *config.Config
	catalog *catalog.Catalog
}

func New(cfg *config.Config, cat *catalog.Catalog) *Server {
	e := echo.New()
	e.HideBanner = true
	e.Use(middleware.Recover())
	e.Use(middleware.Logger())
	e.Use(middleware.RateLimiter(middleware.NewRateLimiterMemoryStore(rate.Limit(cfg.RateLimitRPS))))

	s := &Server{echo: e, cfg: cfg, catalog: cat}

	e.GET("/api/listings", s.handleListings)
	e.GET("/healthz", s.handleHealth)

	return s
}

// handleListings binds the query string tolerantly (junk bounds are
// ignored, junk page numbers become page 1) and returns one page of
// matches plus the facet lists.
func (s *Server) handleListings(c echo.Context) error {
	params := query.ParseParams(c.QueryParams())
	result := query.RunPaged(s.catalog.All(), params, s.cfg.PageSize)
	return c.JSON(http.StatusOK, result)
}

func (s *Server) handleHealth(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]interface{}{
		"status":   "ok",
		"listings": len(s.catalog.All()),
	})
}

func (s *Server) Start(addr string) error {
	return s.echo.Start(addr)
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.echo.Shutdown(ctx)
}
