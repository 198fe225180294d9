// Package server exposes the counseling engine over HTTP.
package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/Veraticus/kcet-counsel/internal/common"
	"github.com/Veraticus/kcet-counsel/internal/cutoff"
	"github.com/Veraticus/kcet-counsel/internal/engine"
	"github.com/Veraticus/kcet-counsel/internal/model"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Simulator runs a mock allotment.
type Simulator interface {
	Simulate(ctx context.Context, req engine.Request) (*model.SimulationResult, error)
}

// Predictor maps exam marks to a rank band.
type Predictor interface {
	Predict(examScore, boardPct float64) (model.RankPrediction, error)
}

// Dataset answers coverage and lookup questions about the loaded cutoffs.
type Dataset interface {
	Len() int
	Years() []string
	Rounds(year string) []string
	Query(pred cutoff.Predicate) []model.CutoffRecord
	FillBranchNames(prefs model.Preferences) model.Preferences
}

// HistoryStore persists simulations and predictions.
type HistoryStore interface {
	SaveSimulation(ctx context.Context, rec *model.SimulationRecord) error
	SavePrediction(ctx context.Context, rec *model.PredictionRecord) error
	PrunePredictions(ctx context.Context, keep int) (int, error)
}

// Config holds server options.
type Config struct {
	// DefaultYear and DefaultRound fill requests that omit them.
	DefaultYear  string
	DefaultRound string
	// HistoryKeep bounds stored predictions; zero keeps everything.
	HistoryKeep int
}

// Server is the HTTP surface over the engine.
type Server struct {
	simulator Simulator
	predictor Predictor
	dataset   Dataset
	history   HistoryStore
	metrics   *Metrics
	gatherer  prometheus.Gatherer
	router    *gin.Engine
	config    Config
}

// New builds a server. history may be nil, in which case save requests are rejected.
func New(sim Simulator, predictor Predictor, dataset Dataset, history HistoryStore, config Config) *Server {
	reg := prometheus.NewRegistry()
	s := &Server{
		simulator: sim,
		predictor: predictor,
		dataset:   dataset,
		history:   history,
		metrics:   NewMetrics(reg),
		gatherer:  reg,
		config:    config,
	}
	s.router = s.setupRouter()
	return s
}

// Handler returns the HTTP handler.
func (s *Server) Handler() http.Handler {
	return s.router
}

func (s *Server) setupRouter() *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), requestLogger())

	api := r.Group("/api/v1")
	api.GET("/health", s.Health)
	api.POST("/simulate", s.Simulate)
	api.POST("/predict", s.Predict)
	api.GET("/cutoffs", s.Cutoffs)
	api.GET("/cutoffs/coverage", s.Coverage)

	r.GET("/metrics", gin.WrapH(promhttp.HandlerFor(s.gatherer, promhttp.HandlerOpts{})))
	return r
}

// Run serves on addr until ctx is canceled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		slog.Info("HTTP server listening", "addr", addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("server failed: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	slog.Info("Shutdown signal received, stopping server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("failed to shut down server: %w", err)
	}
	return nil
}

func requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		slog.Debug("request",
			"method", c.Request.Method,
			"path", c.FullPath(),
			"status", c.Writer.Status(),
			"duration", time.Since(start))
	}
}

// fail writes an error response: 400 for validation failures, 500 otherwise.
func (s *Server) fail(c *gin.Context, route string, err error) {
	if common.IsValidation(err) {
		s.metrics.RequestErrors.WithLabelValues(route, "invalid").Inc()
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	s.metrics.RequestErrors.WithLabelValues(route, "internal").Inc()
	common.LogError(err, "request failed", common.Fields{"route": route, "method": c.Request.Method})
	c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
}
