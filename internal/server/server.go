// Package server exposes a viewer.Session over HTTP with gin. It is a thin
// presentation surface: every handler maps one request onto one session
// call and renders the result or the error as JSON.
package server

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/mesh-intelligence/sqlview/internal/viewer"
	"github.com/mesh-intelligence/sqlview/pkg/types"
)

// shutdownTimeout bounds graceful shutdown in Run.
const shutdownTimeout = 5 * time.Second

// HeaderRequestID carries the request identifier. A client-supplied value is
// echoed back; otherwise the server assigns a UUID v7.
const HeaderRequestID = "X-Request-ID"

// Server serves one session.
type Server struct {
	session *viewer.Session
	logger  *slog.Logger
	engine  *gin.Engine
}

// OpenRequest is the body of POST /open.
type OpenRequest struct {
	Path string `json:"path"`
}

// SelectRequest is the body of POST /select.
type SelectRequest struct {
	Table string `json:"table" binding:"required"`
}

// QueryRequest is the body of POST /query. An empty SQL runs the
// session's current query.
type QueryRequest struct {
	SQL string `json:"sql"`
}

// New returns a Server for session. A nil logger discards request logs.
func New(session *viewer.Session, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	s := &Server{session: session, logger: logger}

	r := gin.New()
	r.Use(gin.Recovery(), s.requestLogger())

	r.GET("/state", s.handleState)
	r.POST("/open", s.handleOpen)
	r.GET("/tables", s.handleTables)
	r.GET("/tables/:name/columns", s.handleColumns)
	r.POST("/select", s.handleSelect)
	r.POST("/query", s.handleQuery)
	r.GET("/result", s.handleResult)

	s.engine = r
	return s
}

// Handler returns the HTTP handler.
func (s *Server) Handler() http.Handler { return s.engine }

// Run serves on addr until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.engine,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("listening", "addr", addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	}
}

func (s *Server) handleState(c *gin.Context) {
	c.JSON(http.StatusOK, s.session.Snapshot())
}

func (s *Server) handleOpen(c *gin.Context) {
	var req OpenRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	if err := s.session.Open(c.Request.Context(), types.Target(req.Path)); err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, s.session.Snapshot())
}

func (s *Server) handleTables(c *gin.Context) {
	if c.Query("refresh") == "true" {
		tables, err := s.session.Refresh(c.Request.Context())
		if err != nil {
			s.fail(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"tables": tables})
		return
	}

	if s.session.State() != viewer.Ready {
		s.fail(c, types.ErrNotReady)
		return
	}
	tables := s.session.Tables()
	if tables == nil {
		tables = []string{}
	}
	c.JSON(http.StatusOK, gin.H{"tables": tables})
}

func (s *Server) handleColumns(c *gin.Context) {
	columns, err := s.session.Columns(c.Request.Context(), c.Param("name"))
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"columns": columns})
}

func (s *Server) handleSelect(c *gin.Context) {
	var req SelectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	query, err := s.session.SelectTable(req.Table)
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"query": query})
}

func (s *Server) handleQuery(c *gin.Context) {
	var req QueryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	var (
		result *types.Result
		err    error
	)
	if req.SQL == "" {
		result, err = s.session.Execute(c.Request.Context())
	} else {
		result, err = s.session.Run(c.Request.Context(), req.SQL)
	}
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

func (s *Server) handleResult(c *gin.Context) {
	result := s.session.Result()
	if result == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "no result"})
		return
	}
	c.JSON(http.StatusOK, result)
}

// fail writes err with the status that matches its category.
func (s *Server) fail(c *gin.Context, err error) {
	c.JSON(statusFor(err), gin.H{"error": err.Error()})
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, types.ErrNotReady):
		return http.StatusConflict
	case errors.Is(err, types.ErrUnknownTable):
		return http.StatusNotFound
	case errors.Is(err, types.ErrNoTarget), errors.Is(err, types.ErrQuery):
		return http.StatusBadRequest
	case errors.Is(err, types.ErrConnection):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

func (s *Server) requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		id := c.GetHeader(HeaderRequestID)
		if id == "" {
			id = newRequestID()
		}
		c.Header(HeaderRequestID, id)
		c.Next()
		s.logger.Info("request",
			"id", id,
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", c.Writer.Status(),
			"duration", time.Since(start),
		)
	}
}

func newRequestID() string {
	id, err := uuid.NewV7()
	if err != nil {
		return uuid.NewString()
	}
	return id.String()
}
