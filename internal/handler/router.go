package handler

import (
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/segyhp/loan-simulator/internal/metrics"
	"github.com/segyhp/loan-simulator/pkg/response"
)

// RouterOptions holds the optional collaborators of the router
type RouterOptions struct {
	Logger      *zap.Logger
	Metrics     *metrics.Collector
	Gatherer    prometheus.Gatherer
	RateLimiter *RateLimiter
}

// NewRouter wires the loan API, health probes and the metrics endpoint
func NewRouter(loanHandler *LoanHandler, healthHandler *HealthHandler, opts RouterOptions) *mux.Router {
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	router := mux.NewRouter()
	router.NotFoundHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		response.NotFound(w, "Route not found")
	})
	router.MethodNotAllowedHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		response.Error(w, http.StatusMethodNotAllowed, "Method not allowed", nil)
	})
	router.Use(
		response.RecoveryMiddleware(logger),
		response.RequestIDMiddleware,
		response.LoggingMiddleware(logger),
		metricsMiddleware(opts.Metrics),
	)

	// Health check
	router.HandleFunc("/health", healthHandler.Health).Methods(http.MethodGet)
	router.HandleFunc("/health/ready", healthHandler.Ready).Methods(http.MethodGet)

	if opts.Gatherer != nil {
		router.Handle("/metrics", promhttp.HandlerFor(opts.Gatherer, promhttp.HandlerOpts{})).Methods(http.MethodGet)
	}

	// API routes
	api := router.PathPrefix("/api/v1").Subrouter()
	api.Use(response.CORSMiddleware)
	if opts.RateLimiter != nil {
		api.Use(opts.RateLimiter.Middleware)
	}

	api.HandleFunc("/loans/eligibility", loanHandler.CheckEligibility).Methods(http.MethodPost, http.MethodOptions)
	api.HandleFunc("/loans/calculate-rate", loanHandler.CalculateRate).Methods(http.MethodPost, http.MethodOptions)
	api.HandleFunc("/loans/validation-rules", loanHandler.GetValidationRules).Methods(http.MethodGet, http.MethodOptions)
	api.HandleFunc("/loans/products", loanHandler.ListProducts).Methods(http.MethodGet, http.MethodOptions)
	api.HandleFunc("/loans/products/{productId}", loanHandler.GetProduct).Methods(http.MethodGet, http.MethodOptions)

	return router
}

// metricsMiddleware records request counts and latency by route template
func metricsMiddleware(collector *metrics.Collector) mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			recorder := response.NewRecorder(w)

			next.ServeHTTP(recorder, r)

			route := "unmatched"
			if current := mux.CurrentRoute(r); current != nil {
				if template, err := current.GetPathTemplate(); err == nil {
					route = template
				}
			}
			collector.RecordRequest(r.Method, route, recorder.StatusCode(), time.Since(start))
		})
	}
}
