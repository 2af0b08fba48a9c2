// Package server exposes the analysis pipeline over HTTP with server-sent
// event streaming.
package server

import (
	"fmt"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ledger-sage/ledger-sage/internal/config"
	"github.com/ledger-sage/ledger-sage/internal/llm"
	"github.com/ledger-sage/ledger-sage/internal/prompts"
	"github.com/ledger-sage/ledger-sage/internal/storage"
	"github.com/ledger-sage/ledger-sage/internal/tools"
)

// Config holds server settings.
type Config struct {
	Addr              string
	OllamaBaseURL     string
	OpenAIBaseURL     string
	OpenAIAPIKey      string
	Currency          string
	RequestsPerMinute int
}

// Server wires the HTTP surface to the pipeline.
type Server struct {
	cfg     Config
	mapping config.CategoryMapping
	prompts *prompts.Builder
	runner  tools.Runner
	store   *storage.SQLiteStorage
	logger  *slog.Logger
	engine  *gin.Engine
}

// New creates a Server. store may be nil when no local database is
// configured; requests must then carry their own data.
func New(cfg Config, mapping config.CategoryMapping, store *storage.SQLiteStorage, logger *slog.Logger) (*Server, error) {
	if logger == nil {
		logger = slog.Default()
	}
	builder, err := prompts.NewBuilder()
	if err != nil {
		return nil, err
	}

	gin.SetMode(gin.ReleaseMode)
	s := &Server{
		cfg:     cfg,
		mapping: mapping,
		prompts: builder,
		runner:  tools.NewRunner(logger),
		store:   store,
		logger:  logger,
		engine:  gin.New(),
	}
	s.engine.Use(gin.Recovery(), corsMiddleware())
	s.routes()
	return s, nil
}

func (s *Server) routes() {
	s.engine.GET("/health", s.handleHealth)
	s.engine.GET("/models/:provider", s.handleListModels)
	s.engine.POST("/analyze_stream", s.handleAnalyzeStream)
}

// Run serves until the listener fails.
func (s *Server) Run() error {
	s.logger.Info("server listening", "addr", s.cfg.Addr)
	if err := s.engine.Run(s.cfg.Addr); err != nil {
		return fmt.Errorf("server stopped: %w", err)
	}
	return nil
}

// Handler exposes the underlying handler for tests.
func (s *Server) Handler() http.Handler {
	return s.engine
}

func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// handleListModels returns the models installed on a provider's backend.
// Errors degrade to an empty list so the frontend's model picker never
// breaks.
func (s *Server) handleListModels(c *gin.Context) {
	provider := c.Param("provider")
	client, err := s.clientFor(provider, "placeholder")
	if err != nil {
		s.logger.Error("failed to create client for model listing", "provider", provider, "error", err)
		c.JSON(http.StatusOK, gin.H{"models": []string{}})
		return
	}

	lister, ok := client.(llm.ModelLister)
	if !ok {
		c.JSON(http.StatusOK, gin.H{"models": []string{}})
		return
	}
	models, err := lister.ListModels(c.Request.Context())
	if err != nil {
		s.logger.Error("failed to list models", "provider", provider, "error", err)
		c.JSON(http.StatusOK, gin.H{"models": []string{}})
		return
	}
	c.JSON(http.StatusOK, gin.H{"models": models})
}

// clientFor builds an LLM client for the given provider and model.
func (s *Server) clientFor(provider, model string) (llm.Client, error) {
	cfg := llm.Config{
		Provider:          provider,
		Model:             model,
		RequestsPerMinute: s.cfg.RequestsPerMinute,
	}
	switch provider {
	case "openai":
		cfg.BaseURL = s.cfg.OpenAIBaseURL
		cfg.APIKey = s.cfg.OpenAIAPIKey
	default:
		cfg.BaseURL = s.cfg.OllamaBaseURL
	}
	return llm.NewClient(cfg)
}

// corsMiddleware allows cross-origin requests from the dashboard frontend.
func corsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("Access-Control-Allow-Origin", "*")
		c.Header("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		c.Header("Access-Control-Allow-Headers", "Content-Type, Authorization")

		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}
		c.Next()
	}
}
