package api

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"github.com/sotkon/dre-radar/internal/models"
	"github.com/sotkon/dre-radar/internal/rss"
	"github.com/sotkon/dre-radar/internal/search"
	"github.com/sotkon/dre-radar/internal/seeds"
)

// Server exposes the dashboard API: record listing with free-text search,
// seed filters and sorting, plus seed management and the filtered RSS feed.
type Server struct {
	Echo  *echo.Echo
	Seeds *seeds.Store

	records []models.Procedimento
	loadErr error
}

// NewServer wires routes and middleware. records/loadErr is the outcome of
// the one-shot record load: on failure the server stays up but serves an
// explicit error state with zero records.
func NewServer(records []models.Procedimento, loadErr error, seedStore *seeds.Store, corsOrigins []string) *Server {
	e := echo.New()
	e.Use(middleware.Logger())
	e.Use(middleware.Recover())

	if len(corsOrigins) == 0 {
		corsOrigins = []string{"http://localhost:4200"}
	}
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins: corsOrigins,
		AllowMethods: []string{http.MethodGet, http.MethodPost},
		AllowHeaders: []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept},
	}))

	s := &Server{
		Echo:    e,
		Seeds:   seedStore,
		records: records,
		loadErr: loadErr,
	}
	s.routes()
	return s
}

func (s *Server) routes() {
	s.Echo.GET("/health", s.handleHealth)

	api := s.Echo.Group("/api/v1")
	api.GET("/procedimentos", s.handleListProcedimentos)
	api.GET("/procedimentos/:numero", s.handleGetProcedimento)
	api.GET("/seeds", s.handleListSeeds)
	api.GET("/seeds/:code", s.handleGetSeed)
	api.POST("/seeds", s.handleCreateSeed)

	s.Echo.GET("/rss/seeds.xml", s.handleSeedFeed)
}

func (s *Server) handleHealth(c echo.Context) error {
	return c.String(http.StatusOK, "OK")
}

func (s *Server) handleListProcedimentos(c echo.Context) error {
	if s.loadErr != nil {
		return c.JSON(http.StatusServiceUnavailable, map[string]any{
			"error": "records unavailable",
			"total": 0,
			"items": []models.Procedimento{},
		})
	}

	active, err := s.resolveSeeds(splitCSV(c.QueryParam("seeds")))
	if err != nil {
		if errors.Is(err, seeds.ErrNotFound) {
			return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
		}
		c.Logger().Errorf("Failed to resolve seeds: %v", err)
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Internal Server Error"})
	}

	filtered := search.Filter(s.records, c.QueryParam("q"), active)

	state := sortState(c.QueryParam("sort"), c.QueryParam("dir"))
	sorted := search.Sort(filtered, state.Column, state.Direction)

	return c.JSON(http.StatusOK, map[string]any{
		"total": len(sorted),
		"items": sorted,
	})
}

func (s *Server) handleGetProcedimento(c echo.Context) error {
	if s.loadErr != nil {
		return c.JSON(http.StatusServiceUnavailable, map[string]string{"error": "records unavailable"})
	}

	numero := c.Param("numero")
	for _, p := range s.records {
		if p.NumeroProcedimento == numero {
			return c.JSON(http.StatusOK, p)
		}
	}
	return c.JSON(http.StatusNotFound, map[string]string{"error": "Not found"})
}

func (s *Server) handleListSeeds(c echo.Context) error {
	list, err := s.Seeds.Load()
	if err != nil {
		c.Logger().Errorf("Failed to load seeds: %v", err)
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Internal Server Error"})
	}
	if list == nil {
		list = []models.Seed{}
	}
	return c.JSON(http.StatusOK, list)
}

func (s *Server) handleGetSeed(c echo.Context) error {
	seed, ok, err := s.Seeds.Find(c.Param("code"))
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Internal Server Error"})
	}
	if !ok {
		return c.JSON(http.StatusNotFound, map[string]string{"error": "seed not found"})
	}
	return c.JSON(http.StatusOK, seed)
}

type createSeedRequest struct {
	Tags      []string `json:"tags"`
	TitleTags []string `json:"titleTags"`
	District  string   `json:"district"`
}

func (s *Server) handleCreateSeed(c echo.Context) error {
	var req createSeedRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid request"})
	}

	seed, err := seeds.New(req.Tags, req.TitleTags, req.District)
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	}

	if err := s.Seeds.Append(seed); err != nil {
		c.Logger().Errorf("Failed to save seed: %v", err)
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Internal Server Error"})
	}
	return c.JSON(http.StatusCreated, seed)
}

func (s *Server) handleSeedFeed(c echo.Context) error {
	list, err := s.Seeds.Load()
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Internal Server Error"})
	}

	out, _, err := rss.Generate(s.records, list, time.Now())
	if err != nil {
		c.Logger().Errorf("Failed to render feed: %v", err)
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Internal Server Error"})
	}
	return c.Blob(http.StatusOK, "application/rss+xml; charset=utf-8", out)
}

// resolveSeeds maps codes to stored seeds; an unknown code is a client
// error, matching the dashboard's "seed not found" report on activation.
func (s *Server) resolveSeeds(codes []string) ([]models.Seed, error) {
	if len(codes) == 0 {
		return nil, nil
	}

	known, err := s.Seeds.Load()
	if err != nil {
		return nil, err
	}

	var set seeds.ActiveSet
	var active []models.Seed
	for _, code := range codes {
		seed, err := set.Activate(known, code)
		switch {
		case err == nil:
			active = append(active, seed)
		case errors.Is(err, seeds.ErrAlreadyActive):
			// Duplicate code in the query string, keep the first.
		case errors.Is(err, seeds.ErrNotFound):
			return nil, fmt.Errorf("%w: %s", seeds.ErrNotFound, strings.ToUpper(strings.TrimSpace(code)))
		default:
			return nil, err
		}
	}
	return active, nil
}

// sortState maps query params onto a sort state, defaulting to publication
// date descending; a bare sort param starts ascending.
func sortState(col, dir string) search.State {
	if col == "" {
		return search.DefaultState()
	}
	state := search.State{Column: search.Column(col), Direction: search.Ascending}
	if dir == string(search.Descending) {
		state.Direction = search.Descending
	}
	return state
}

// splitCSV splits a comma-separated query parameter into trimmed non-empty
// strings.
func splitCSV(s string) []string {
	var result []string
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		if part != "" {
			result = append(result, part)
		}
	}
	return result
}
