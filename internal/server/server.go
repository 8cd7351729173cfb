// Package server exposes the analyzer over HTTP.
package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/tsawler/textmood"
)

// AnalyzeRequest is the body of POST /api/analyze. Omitted fields fall back
// to the analyzer's configuration.
type AnalyzeRequest struct {
	Text                  string   `json:"text"`
	TargetLanguage        *string  `json:"target_language"`
	TopN                  *int     `json:"top_n"`
	PositiveThreshold     *float64 `json:"positive_threshold"`
	NegativeThreshold     *float64 `json:"negative_threshold"`
	SubjectivityThreshold *float64 `json:"subjectivity_threshold"`
}

func (r AnalyzeRequest) options() []textmood.RequestOpt {
	var opts []textmood.RequestOpt
	if r.TargetLanguage != nil {
		opts = append(opts, textmood.WithTargetLanguage(*r.TargetLanguage))
	}
	if r.TopN != nil {
		opts = append(opts, textmood.WithTopN(*r.TopN))
	}
	if r.PositiveThreshold != nil {
		opts = append(opts, textmood.WithPositiveThreshold(*r.PositiveThreshold))
	}
	if r.NegativeThreshold != nil {
		opts = append(opts, textmood.WithNegativeThreshold(*r.NegativeThreshold))
	}
	if r.SubjectivityThreshold != nil {
		opts = append(opts, textmood.WithSubjectivityThreshold(*r.SubjectivityThreshold))
	}
	return opts
}

// SetupRouter builds the gin engine serving a.
func SetupRouter(a *textmood.Analyzer, log *slog.Logger) *gin.Engine {
	if log == nil {
		log = slog.Default()
	}

	r := gin.New()
	r.Use(gin.Recovery(), requestLogger(log))

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := r.Group("/api")
	{
		api.POST("/analyze", func(c *gin.Context) {
			handleAnalyze(c, a, log)
		})
	}

	return r
}

func handleAnalyze(c *gin.Context, a *textmood.Analyzer, log *slog.Logger) {
	var req AnalyzeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	report, err := a.Analyze(c.Request.Context(), req.Text, req.options()...)
	if err != nil {
		var scoringErr *textmood.ScoringError
		switch {
		case errors.Is(err, textmood.ErrEmptyInput), errors.Is(err, textmood.ErrInvalidOptions):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		case errors.As(err, &scoringErr):
			log.Error("[Server] Scoring failed", slog.String("error", err.Error()))
			c.JSON(http.StatusBadGateway, gin.H{
				"error": err.Error(),
				"words": scoringErr.Words,
			})
		default:
			log.Error("[Server] Analysis failed", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		}
		return
	}

	c.JSON(http.StatusOK, report)
}

func requestLogger(log *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		log.Info("[Server] Request handled",
			slog.String("method", c.Request.Method),
			slog.String("path", c.Request.URL.Path),
			slog.Int("status", c.Writer.Status()),
			slog.Duration("elapsed", time.Since(start)))
	}
}

// Run serves handler on addr until ctx is cancelled, then shuts down
// gracefully.
func Run(ctx context.Context, addr string, handler http.Handler, log *slog.Logger) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info("[Server] Listening", slog.String("addr", addr))
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("server failed: %w", err)
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	log.Info("[Server] Shutting down")
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown failed: %w", err)
	}
	return nil
}
