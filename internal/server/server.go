// Package server exposes the engine over a small JSON HTTP API.
package server

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/germanamz/pagecraft/pkg/engine"
	"github.com/germanamz/pagecraft/pkg/htmlextract"
	"github.com/germanamz/pagecraft/pkg/providers/catalog"
	"github.com/germanamz/pagecraft/pkg/settings"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

// Generator is the part of engine.Engine the server needs.
type Generator interface {
	IsConfigured() bool
	Settings() (settings.Settings, error)
	GenerateCode(ctx context.Context, prompt string) engine.Result
}

// ErrNotConfigured is reported with 409 when generation is attempted before
// a provider has been configured.
var ErrNotConfigured = errors.New("AI nie jest skonfigurowane. Skonfiguruj dostawcę w ustawieniach.") //nolint:staticcheck // user-facing message

// Server is the HTTP API over a Generator.
type Server struct {
	addr   string
	gen    Generator
	log    zerolog.Logger
	engine *gin.Engine
}

type generateRequest struct {
	Prompt string `json:"prompt"`
}

type codeRequest struct {
	Code string `json:"code"`
}

type statusResponse struct {
	Configured   bool       `json:"configured"`
	Provider     catalog.ID `json:"provider"`
	ProviderName string     `json:"providerName"`
	Model        string     `json:"model"`
}

// New creates a Server listening on addr once started. Requests are logged
// to log; panics in handlers are recovered by gin.
func New(addr string, gen Generator, log zerolog.Logger) *Server {
	gin.SetMode(gin.ReleaseMode)

	r := gin.New()
	r.Use(requestLogger(log), gin.Recovery())

	srv := &Server{addr: addr, gen: gen, log: log, engine: r}
	srv.registerRoutes()
	return srv
}

func (s *Server) registerRoutes() {
	api := s.engine.Group("/v1")
	api.GET("/providers", s.listProviders)
	api.GET("/status", s.status)
	api.POST("/generate", s.generate)
	api.POST("/extract", s.extract)
	api.POST("/preview", s.preview)
}

// Handler returns the HTTP handler serving the API.
func (s *Server) Handler() http.Handler { return s.engine }

// Start serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) Start(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.addr,
		Handler:           s.engine,
		ReadHeaderTimeout: 10 * time.Second,
	}
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()

	s.log.Info().Str("address", s.addr).Msg("http server listening")

	if err := srv.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func (s *Server) listProviders(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"providers": catalog.All()})
}

func (s *Server) status(c *gin.Context) {
	st, err := s.gen.Settings()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, statusResponse{
		Configured:   settings.IsConfigured(st),
		Provider:     st.Provider,
		ProviderName: catalog.DisplayName(st.Provider),
		Model:        st.ModelOrDefault(),
	})
}

func (s *Server) generate(c *gin.Context) {
	var req generateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}
	if strings.TrimSpace(req.Prompt) == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "prompt is required"})
		return
	}
	if !s.gen.IsConfigured() {
		c.JSON(http.StatusConflict, gin.H{"error": ErrNotConfigured.Error()})
		return
	}

	c.JSON(http.StatusOK, s.gen.GenerateCode(c.Request.Context(), req.Prompt))
}

func (s *Server) extract(c *gin.Context) {
	var req codeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"html": htmlextract.Extract(req.Code)})
}

func (s *Server) preview(c *gin.Context) {
	var req codeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}
	if strings.TrimSpace(req.Code) == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "code is required"})
		return
	}

	c.Header("Content-Security-Policy", "sandbox allow-scripts allow-forms allow-popups allow-modals")
	c.Data(http.StatusOK, "text/html; charset=utf-8", []byte(htmlextract.Extract(req.Code)))
}
