// Package httpapi exposes listing parsing over HTTP.
package httpapi

import (
	"bufio"
	"context"
	"errors"
	"log/slog"
	"math"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gonzalop/ftplist/internal/ratelimit"
	"github.com/gonzalop/ftplist/internal/render"
	"github.com/gonzalop/ftplist/internal/scan"
)

// UnparsedLine reports a line of a listing that matched no known format.
type UnparsedLine struct {
	Line int    `json:"line"`
	Raw  string `json:"raw"`
}

// ParseResponse is the body returned by POST /api/parse.
type ParseResponse struct {
	Entries  []render.Record `json:"entries"`
	Unparsed []UnparsedLine  `json:"unparsed"`
	Summary  scan.Summary    `json:"summary"`
}

// LineRequest is the body accepted by POST /api/parse/line.
type LineRequest struct {
	Line *string `json:"line" binding:"required"`
}

// DefaultMaxBodyBytes is the request body cap used when WithMaxBodyBytes is
// not given.
const DefaultMaxBodyBytes = 1 << 20

// Handler serves the parsing API.
type Handler struct {
	parser       scan.Parser
	maxBodyBytes int64
	limiter      *ratelimit.Limiter
	metrics      MetricsCollector
	logger       *slog.Logger
}

// NewHandler creates a handler that parses with p.
func NewHandler(p scan.Parser, opts ...Option) (*Handler, error) {
	if p == nil {
		return nil, errors.New("parser cannot be nil")
	}
	h := &Handler{
		parser:       p,
		maxBodyBytes: DefaultMaxBodyBytes,
		logger:       slog.Default(),
	}
	for _, opt := range opts {
		if err := opt(h); err != nil {
			return nil, err
		}
	}
	return h, nil
}

// NewRouter returns a gin engine with the API routes registered.
func NewRouter(h *Handler) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(h.observe())

	api := r.Group("/api")
	{
		api.GET("/health", h.Health)

		parse := api.Group("/parse", h.rateLimit())
		parse.POST("", h.ParseListing)
		parse.POST("/line", h.ParseLine)
	}
	return r
}

// Health reports that the service is up.
func (h *Handler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// ParseListing parses a multi-line listing sent as the raw request body.
func (h *Handler) ParseListing(c *gin.Context) {
	body := http.MaxBytesReader(c.Writer, c.Request.Body, h.maxBodyBytes)

	resp := ParseResponse{
		Entries:  []render.Record{},
		Unparsed: []UnparsedLine{},
	}
	sum, err := scan.Scan(c.Request.Context(), body, h.parser, func(res scan.Result) error {
		if res.Err != nil {
			resp.Unparsed = append(resp.Unparsed, UnparsedLine{Line: res.LineNo, Raw: res.Raw})
			return nil
		}
		resp.Entries = append(resp.Entries, render.NewRecord(res.Entry))
		return nil
	})
	if err != nil {
		var tooLarge *http.MaxBytesError
		switch {
		case errors.As(err, &tooLarge):
			c.JSON(http.StatusRequestEntityTooLarge, gin.H{
				"error": "listing exceeds the size limit",
			})
		case errors.Is(err, bufio.ErrTooLong):
			c.JSON(http.StatusBadRequest, gin.H{
				"error": err.Error(),
			})
		case errors.Is(err, context.Canceled):
			c.Status(499)
		default:
			h.logger.Error("Failed to read listing", "error", err)
			c.JSON(http.StatusInternalServerError, gin.H{
				"error": "failed to read listing",
			})
		}
		return
	}

	resp.Summary = sum
	if h.metrics != nil {
		h.metrics.RecordListing(sum)
	}
	c.JSON(http.StatusOK, resp)
}

// ParseLine parses a single line sent as JSON.
func (h *Handler) ParseLine(c *gin.Context) {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, h.maxBodyBytes)

	var req LineRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid request body",
		})
		return
	}

	entry, err := h.parser.Parse(*req.Line)
	if err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{
			"error": err.Error(),
		})
		return
	}
	c.JSON(http.StatusOK, render.NewRecord(entry))
}

// observe logs every request and reports it to the metrics collector.
func (h *Handler) observe() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		duration := time.Since(start)
		h.logger.Info("HTTP request",
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", c.Writer.Status(),
			"duration", duration)
		if h.metrics != nil {
			h.metrics.RecordRequest(c.Request.Method, c.FullPath(), c.Writer.Status(), duration)
		}
	}
}

func (h *Handler) rateLimit() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !h.limiter.Allow() {
			wait := h.limiter.RetryAfter()
			c.Header("Retry-After", strconv.Itoa(int(math.Ceil(wait.Seconds()))))
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{
				"error": "too many requests",
			})
			return
		}
		c.Next()
	}
}

// Serve runs an HTTP server for handler on addr until ctx is done, then shuts
// it down gracefully.
func Serve(ctx context.Context, addr string, handler http.Handler, logger *slog.Logger) error {
	if logger == nil {
		logger = slog.Default()
	}
	srv := &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("Server starting", "addr", addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if err := <-errCh; !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	logger.Info("Server stopped")
	return nil
}
