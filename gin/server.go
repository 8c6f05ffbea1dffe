// Package gin exposes the control API over HTTP: pipeline trigger and
// status, chat, and health endpoints.
package gin

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/fwojciec/docrag"
	"github.com/fwojciec/docrag/rag"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// Runner starts an ingestion run. The State claimed by the server is
// released by the runner when it finishes.
type Runner interface {
	Run(ctx context.Context, maxDepth int) error
}

// Chatter answers user queries against the ingested content.
type Chatter interface {
	Answer(ctx context.Context, query, providedContext string) *rag.Answer
}

// Server handles the control API routes.
type Server struct {
	State    *docrag.State
	Runner   Runner
	Chat     Chatter
	MaxDepth int
	Logger   *slog.Logger

	started time.Time
}

// IngestRequest is the body of POST /ingest. MaxDepth of zero uses the
// configured default.
type IngestRequest struct {
	MaxDepth int `json:"max_depth"`
}

// ChatRequest is the body of POST /chat. Context carries optional text
// selected by the user.
type ChatRequest struct {
	Query   string `json:"query"`
	Context string `json:"context"`
}

// NewRouter builds the gin engine with CORS and all routes registered.
func NewRouter(s *Server) *gin.Engine {
	s.started = time.Now()

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "OPTIONS", "PUT", "DELETE"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept"},
		AllowCredentials: false,
		MaxAge:           24 * time.Hour,
	}))

	r.GET("/", s.root)
	r.GET("/health", s.health)
	r.GET("/status", s.status)
	r.POST("/ingest", s.ingest)
	r.POST("/chat", s.chat)

	return r
}

func (s *Server) root(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":    "operational",
		"timestamp": time.Now(),
		"uptime":    time.Since(s.started).Seconds(),
	})
}

func (s *Server) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":    "healthy",
		"timestamp": time.Now(),
	})
}

func (s *Server) status(c *gin.Context) {
	c.JSON(http.StatusOK, s.State.Snapshot())
}

// ingest claims the pipeline state and launches the run in the
// background. A 409 is returned while a run is in flight.
func (s *Server) ingest(c *gin.Context) {
	var req IngestRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
	}
	maxDepth := req.MaxDepth
	if maxDepth <= 0 {
		maxDepth = s.MaxDepth
	}

	if !s.State.TryStart() {
		c.JSON(http.StatusConflict, gin.H{"error": "Pipeline is already running"})
		return
	}

	go func() {
		if err := s.Runner.Run(context.Background(), maxDepth); err != nil {
			s.logger().Error("ingestion run failed", "error", err)
		}
	}()

	c.JSON(http.StatusAccepted, gin.H{
		"message":   "Ingestion pipeline started successfully",
		"max_depth": maxDepth,
	})
}

func (s *Server) chat(c *gin.Context) {
	var req ChatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	answer := s.Chat.Answer(c.Request.Context(), req.Query, req.Context)
	c.JSON(http.StatusOK, answer)
}

func (s *Server) logger() *slog.Logger {
	if s.Logger != nil {
		return s.Logger
	}
	return slog.Default()
}
