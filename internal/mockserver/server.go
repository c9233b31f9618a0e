package mockserver

import (
	"errors"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"golang.org/x/net/context"

	"github.com/srcmap/evalkit/internal/apperr"
	"github.com/srcmap/evalkit/internal/srcmap"
	mw "github.com/srcmap/evalkit/pkg/middleware"
)

const (
	GracefulShutdownTimeout = 10 * time.Second
	defaultSearchLimit      = 10
)

type Server struct {
	Echo *echo.Echo

	corpus *Corpus
	port   string

	mu   sync.Mutex
	seen map[string]bool
}

func NewServer(corpus *Corpus, port string) *Server {
	e := echo.New()
	e.HideBanner = true

	s := &Server{
		Echo:   e,
		corpus: corpus,
		port:   port,
		seen:   make(map[string]bool),
	}

	e.HTTPErrorHandler = apperr.GlobalErrorHandler()
	e.Use(mw.Logger())
	e.Use(middleware.Recover())

	e.GET("/api/search", s.searchHandler)
	e.GET("/api/health", s.healthHandler)
	e.GET("/api/flows", s.flowsHandler)
	e.GET("/api/cards", s.cardsHandler)

	return s
}

func (s *Server) searchHandler(c echo.Context) error {
	query := c.QueryParam("q")
	if query == "" {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "q parameter is required"})
	}

	limit := defaultSearchLimit
	if raw := c.QueryParam("limit"); raw != "" {
		if v, err := strconv.Atoi(raw); err == nil && v > 0 {
			limit = v
		}
	}

	scored := s.corpus.scoreCards(query, limit)
	results := make([]srcmap.Card, 0, len(scored))
	for _, sc := range scored {
		results = append(results, sc.card)
	}

	return c.JSON(http.StatusOK, map[string]any{
		"results":  results,
		"cacheHit": s.markSeen(query),
	})
}

// markSeen reports whether the query was served before, mimicking the
// real service's response cache flag.
func (s *Server) markSeen(query string) bool {
	key := strings.ToLower(strings.TrimSpace(query))
	s.mu.Lock()
	defer s.mu.Unlock()
	hit := s.seen[key]
	s.seen[key] = true
	return hit
}

func (s *Server) healthHandler(c echo.Context) error {
	return c.JSON(http.StatusOK, srcmap.Health{
		Cards: len(s.corpus.AllCards()),
		Flows: len(s.corpus.Flows),
	})
}

func (s *Server) flowsHandler(c echo.Context) error {
	return c.JSON(http.StatusOK, s.corpus.FlowSummaries())
}

func (s *Server) cardsHandler(c echo.Context) error {
	flow := c.QueryParam("flow")
	if flow == "" {
		return c.JSON(http.StatusOK, s.corpus.AllCards())
	}

	cards := s.corpus.CardsForFlow(flow)
	if cards == nil {
		return c.JSON(http.StatusNotFound, map[string]string{"error": "unknown flow: " + flow})
	}
	return c.JSON(http.StatusOK, cards)
}

func (s *Server) Start() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	go func() {
		if err := s.Echo.Start(":" + s.port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			s.Echo.Logger.Fatal("shutting down the server")
		}
	}()

	<-ctx.Done()

	ctx, cancel := context.WithTimeout(context.Background(), GracefulShutdownTimeout)
	defer cancel()

	return s.Echo.Shutdown(ctx)
}
