package server

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	json "github.com/goccy/go-json"
	"github.com/google/uuid"
	"github.com/iwvelando/finance-calculator/internal/cache"
	"github.com/iwvelando/finance-calculator/internal/metrics"
	"github.com/iwvelando/finance-calculator/internal/tracing"
	"github.com/iwvelando/finance-calculator/pkg/adapters"
	"github.com/iwvelando/finance-calculator/pkg/calculator"
	"github.com/iwvelando/finance-calculator/pkg/format"
	"github.com/iwvelando/finance-calculator/pkg/params"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.uber.org/zap"
)

type handler struct {
	logger      *zap.Logger
	maxBodySize int64
	version     string
	baseURL     string
	cache       cache.Cache
	cacheTTL    time.Duration
}

// NewHandler constructs the HTTP handler that serves the calculator API. A
// nil cfg uses the defaults and a nil store disables caching.
func NewHandler(logger *zap.Logger, cfg *Config, store cache.Cache, version string) http.Handler {
	if logger == nil {
		logger = zap.NewNop()
	}
	if cfg == nil {
		cfg = defaultConfig()
	}
	if store == nil {
		store = cache.Nop{}
	}

	trimmedVersion := strings.TrimSpace(version)
	if trimmedVersion == "" {
		trimmedVersion = "dev"
	}

	h := &handler{
		logger:      logger,
		maxBodySize: cfg.BodySizeBytes(),
		version:     trimmedVersion,
		baseURL:     cfg.BaseURL,
		cache:       store,
		cacheTTL:    cfg.CacheTTL(),
	}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(h.logRequests)
	r.Use(middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: cfg.CORS.AllowedOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders: []string{"Accept", "Content-Type"},
		MaxAge:         300,
	}))

	r.Get("/healthz", h.handleHealth)
	r.Handle("/metrics", promhttp.Handler())

	r.Route("/api", func(r chi.Router) {
		r.Get("/version", h.handleVersion)
		r.Get("/calculators", h.handleCalculators)
		r.Get("/calculators/{name}", h.handleEvaluateQuery)
		r.Post("/calculators/{name}", h.handleEvaluateBody)
	})

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		h.writeJSON(w, http.StatusNotFound, map[string]string{"error": "not found"})
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		h.writeJSON(w, http.StatusMethodNotAllowed, map[string]string{"error": http.StatusText(http.StatusMethodNotAllowed)})
	})

	return r
}

type headlineResponse struct {
	Label string      `json:"label"`
	Value *float64    `json:"value"`
	Unit  format.Unit `json:"unit"`
	Text  string      `json:"text"`
}

// evaluationPayload is the cacheable part of a response.
type evaluationPayload struct {
	Calculator string             `json:"calculator"`
	Query      string             `json:"query"`
	ShareURL   string             `json:"shareUrl"`
	OK         bool               `json:"ok"`
	Headline   headlineResponse   `json:"headline"`
	Result     json.RawMessage    `json:"result"`
	Breakdown  []calculator.Slice `json:"breakdown"`
	Warnings   []string           `json:"warnings,omitempty"`
}

type evaluationResponse struct {
	CalculationID string `json:"calculationId"`
	evaluationPayload
	Cached   bool   `json:"cached"`
	Duration string `json:"duration"`
}

func (h *handler) handleHealth(w http.ResponseWriter, r *http.Request) {
	h.writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *handler) handleVersion(w http.ResponseWriter, r *http.Request) {
	h.writeJSON(w, http.StatusOK, map[string]string{
		"version": h.version,
	})
}

func (h *handler) handleCalculators(w http.ResponseWriter, r *http.Request) {
	h.writeJSON(w, http.StatusOK, map[string]interface{}{
		"calculators": adapters.Calculators(),
	})
}

func (h *handler) handleEvaluateQuery(w http.ResponseWriter, r *http.Request) {
	h.evaluate(w, r, r.URL.Query(), "server.handleEvaluateQuery")
}

func (h *handler) handleEvaluateBody(w http.ResponseWriter, r *http.Request) {
	const op = "server.handleEvaluateBody"

	if h.maxBodySize > 0 {
		r.Body = http.MaxBytesReader(w, r.Body, h.maxBodySize)
	}

	data, err := io.ReadAll(r.Body)
	if err != nil {
		var maxBytesErr *http.MaxBytesError
		if errors.As(err, &maxBytesErr) {
			h.respondErrorWithOp(w, http.StatusRequestEntityTooLarge,
				fmt.Sprintf("request body exceeds limit of %d bytes", h.maxBodySize), op)
			return
		}
		h.respondErrorWithOp(w, http.StatusBadRequest, fmt.Sprintf("failed to read request body: %v", err), op)
		return
	}

	var payload map[string]interface{}
	if err := json.Unmarshal(data, &payload); err != nil {
		h.respondErrorWithOp(w, http.StatusBadRequest, fmt.Sprintf("failed to decode parameters: %v", err), op)
		return
	}

	values, err := params.FromMap(payload)
	if err != nil {
		h.respondErrorWithOp(w, http.StatusBadRequest, fmt.Sprintf("invalid parameters: %v", err), op)
		return
	}

	h.evaluate(w, r, values, op)
}

func (h *handler) evaluate(w http.ResponseWriter, r *http.Request, values url.Values, op string) {
	start := time.Now()
	name := strings.ToLower(chi.URLParam(r, "name"))

	adapter, err := adapters.Lookup(name)
	if err != nil {
		h.respondErrorWithOp(w, http.StatusNotFound, err.Error(), op)
		return
	}

	ctx, span := tracing.Tracer().Start(r.Context(), "calculator.evaluate")
	defer span.End()
	span.SetAttributes(attribute.String("calculator", name))

	key := cache.Key(name, values.Encode())
	payload, cached := h.lookup(ctx, key, op)
	if !cached {
		evaluation := adapter.Evaluate(values)
		payload, err = h.buildPayload(evaluation)
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, "encoding failed")
			h.respondErrorWithOp(w, http.StatusInternalServerError, fmt.Sprintf("failed to encode result: %v", err), op)
			return
		}
		h.store(ctx, key, payload, op)

		status := metrics.StatusOK
		if !evaluation.OK {
			status = metrics.StatusNoResult
		}
		metrics.Evaluations.WithLabelValues(name, status).Inc()
		if n := len(evaluation.Warnings); n > 0 {
			metrics.ParamWarnings.WithLabelValues(name).Add(float64(n))
		}
	}

	span.SetAttributes(
		attribute.Bool("ok", payload.OK),
		attribute.Bool("cached", cached),
		attribute.Int("warnings", len(payload.Warnings)),
	)

	elapsed := time.Since(start)
	h.logger.Debug("calculation evaluated",
		zap.String("op", op),
		zap.String("calculator", name),
		zap.Bool("ok", payload.OK),
		zap.Bool("cached", cached),
		zap.Duration("duration", elapsed),
	)

	h.writeJSON(w, http.StatusOK, evaluationResponse{
		CalculationID:     uuid.NewString(),
		evaluationPayload: payload,
		Cached:            cached,
		Duration:          elapsed.String(),
	})
}

func (h *handler) buildPayload(e adapters.Evaluation) (evaluationPayload, error) {
	payload := evaluationPayload{
		Calculator: e.Calculator,
		Query:      e.Query.Encode(),
		ShareURL:   params.ShareURL(h.baseURL, e.Calculator, e.Query),
		OK:         e.OK,
		Headline: headlineResponse{
			Label: e.Headline.Label,
			Unit:  e.Headline.Unit,
			Text:  format.Placeholder,
		},
		Result:    json.RawMessage("null"),
		Breakdown: []calculator.Slice{},
		Warnings:  e.Warnings,
	}
	if !e.OK {
		return payload, nil
	}

	result, err := json.Marshal(e.Result)
	if err != nil {
		return evaluationPayload{}, err
	}
	v := e.Headline.Value
	payload.Headline.Value = &v
	payload.Headline.Text = e.Headline.Text()
	payload.Result = result
	payload.Breakdown = e.Breakdown
	return payload, nil
}

// lookup returns a cached payload. Cache failures count as misses.
func (h *handler) lookup(ctx context.Context, key, op string) (evaluationPayload, bool) {
	data, ok, err := h.cache.Get(ctx, key)
	if err != nil {
		h.logger.Warn("cache lookup failed",
			zap.String("op", op),
			zap.Error(err),
		)
		metrics.CacheLookups.WithLabelValues("error").Inc()
		return evaluationPayload{}, false
	}
	if !ok {
		metrics.CacheLookups.WithLabelValues("miss").Inc()
		return evaluationPayload{}, false
	}

	var payload evaluationPayload
	if err := json.Unmarshal(data, &payload); err != nil {
		h.logger.Warn("discarding undecodable cache entry",
			zap.String("op", op),
			zap.Error(err),
		)
		metrics.CacheLookups.WithLabelValues("error").Inc()
		return evaluationPayload{}, false
	}
	metrics.CacheLookups.WithLabelValues("hit").Inc()
	return payload, true
}

func (h *handler) store(ctx context.Context, key string, payload evaluationPayload, op string) {
	data, err := json.Marshal(payload)
	if err == nil {
		err = h.cache.Set(ctx, key, data, h.cacheTTL)
	}
	if err != nil {
		h.logger.Warn("cache store failed",
			zap.String("op", op),
			zap.Error(err),
		)
	}
}

func (h *handler) respondErrorWithOp(w http.ResponseWriter, status int, msg string, op string) {
	h.logger.Error("calculator request failed",
		zap.String("op", op),
		zap.Int("status", status),
		zap.String("error", msg),
	)

	h.writeJSON(w, status, map[string]string{"error": msg})
}

func (h *handler) writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		h.logger.Error("failed to write JSON response", zap.Error(err))
	}
}

// logRequests logs every request and records its metrics.
func (h *handler) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)

		route := r.URL.Path
		if rctx := chi.RouteContext(r.Context()); rctx != nil {
			if pattern := rctx.RoutePattern(); pattern != "" {
				route = pattern
			}
		}
		elapsed := time.Since(start)
		metrics.HTTPRequests.WithLabelValues(route, r.Method, strconv.Itoa(ww.Status())).Inc()
		metrics.HTTPDuration.WithLabelValues(route, r.Method).Observe(elapsed.Seconds())

		h.logger.Info("HTTP request",
			zap.String("op", "server.logRequests"),
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Int("status", ww.Status()),
			zap.Int("bytes", ww.BytesWritten()),
			zap.Duration("duration", elapsed),
			zap.String("request_id", middleware.GetReqID(r.Context())),
		)
	})
}

// Server wraps an http.Server serving the calculator API.
type Server struct {
	server *http.Server
	logger *zap.Logger
}

// New creates a server listening on cfg.Address.
func New(logger *zap.Logger, cfg *Config, store cache.Cache, version string) *Server {
	if logger == nil {
		logger = zap.NewNop()
	}
	if cfg == nil {
		cfg = defaultConfig()
	}
	return &Server{
		server: &http.Server{
			Addr:              cfg.Address,
			Handler:           NewHandler(logger, cfg, store, version),
			ReadHeaderTimeout: 10 * time.Second,
			ReadTimeout:       15 * time.Second,
			WriteTimeout:      15 * time.Second,
			IdleTimeout:       60 * time.Second,
		},
		logger: logger,
	}
}

// Start serves until Shutdown is called. It returns nil after a clean
// shutdown.
func (s *Server) Start() error {
	s.logger.Info("starting HTTP server",
		zap.String("op", "server.Start"),
		zap.String("address", s.server.Addr),
	)
	if err := s.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Shutdown gracefully shuts down the server.
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("shutting down HTTP server", zap.String("op", "server.Shutdown"))
	return s.server.Shutdown(ctx)
}
