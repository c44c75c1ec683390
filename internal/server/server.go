package server

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	httpSwagger "github.com/swaggo/http-swagger"

	"github.com/alvinquach/fgo-planner-go/internal/account"
	"github.com/alvinquach/fgo-planner-go/internal/database"
	"github.com/alvinquach/fgo-planner-go/internal/handler"
	"github.com/alvinquach/fgo-planner-go/internal/logger"
	"github.com/alvinquach/fgo-planner-go/internal/metrics"
	"github.com/alvinquach/fgo-planner-go/internal/plan"
)

type Server struct {
	httpServer     *http.Server
	dbPool         database.Pool
	accountService account.Service
	planService    plan.Service
}

// NewServer creates a new Server instance
func NewServer(port int, apiKey string, trustedProxies []string, dbPool database.Pool, accountService account.Service, planService plan.Service, itemCatalog handler.ItemCatalog) *Server {
	r := chi.NewRouter()

	// Middleware stack
	// Chi middleware executes in order defined (outermost to innermost)
	detector := NewSuspiciousActivityDetector()

	r.Use(SecurityHeadersMiddleware())
	r.Use(AuthMiddleware(apiKey, trustedProxies, detector))
	r.Use(RateLimitMiddleware(trustedProxies, detector))
	r.Use(RequestSizeLimitMiddleware(MaxRequestBodyBytes))
	r.Use(metrics.Middleware)
	r.Use(loggingMiddleware)

	// Health check routes (unversioned)
	r.Get("/healthz", handler.HandleHealthz())
	r.Get("/readyz", handler.HandleReadyz(dbPool))

	// Version endpoint (public, for deployment verification)
	r.Get("/version", handler.HandleVersion())

	// Metrics endpoint (public, for Prometheus scraping)
	r.Handle("/metrics", promhttp.Handler())

	// API v1 routes
	r.Route("/api/v1", func(r chi.Router) {
		r.Route("/account", func(r chi.Router) {
			r.Post("/", handler.HandleCreateAccount(accountService))
			r.Get("/", handler.HandleListAccounts(accountService))

			r.Route("/{accountID}", func(r chi.Router) {
				r.Get("/", handler.HandleGetAccount(accountService))
				r.Put("/", handler.HandleUpdateAccount(accountService))
				r.Delete("/", handler.HandleDeleteAccount(accountService))
				r.Put("/servants", handler.HandleUpdateServants(accountService))
				r.Put("/items", handler.HandleUpdateItems(accountService))

				r.Get("/servants/{instanceID}/requirements", handler.HandleComputeServantRequirements(planService))
			})
		})

		r.Route("/plan", func(r chi.Router) {
			r.Post("/", handler.HandleCreatePlan(planService))

			r.Route("/{planID}", func(r chi.Router) {
				r.Get("/", handler.HandleGetPlan(planService))
				r.Put("/", handler.HandleUpdatePlan(planService))
				r.Delete("/", handler.HandleDeletePlan(planService))
				r.Get("/requirements", handler.HandleComputePlanRequirements(planService))
			})
		})

		r.Route("/plan-group", func(r chi.Router) {
			r.Post("/", handler.HandleCreatePlanGroup(planService))
			r.Get("/", handler.HandleListPlanGroups(planService))
			r.Get("/{groupID}", handler.HandleGetPlanGroup(planService))
			r.Delete("/{groupID}", handler.HandleDeletePlanGroup(planService))
		})

		r.Route("/gamedata", func(r chi.Router) {
			r.Get("/items", handler.HandleListItems(itemCatalog))
			r.Get("/items/{itemID}", handler.HandleGetItem(itemCatalog))
		})
	})

	// Swagger documentation
	r.Get("/swagger/*", httpSwagger.WrapHandler)

	return &Server{
		httpServer: &http.Server{
			Addr:              fmt.Sprintf(":%d", port),
			Handler:           r,
			ReadHeaderTimeout: 5 * time.Second,
		},
		dbPool:         dbPool,
		accountService: accountService,
		planService:    planService,
	}
}

// responseWriter wraps http.ResponseWriter to capture the status code
type responseWriter struct {
	http.ResponseWriter
	statusCode int
	written    bool
}

func newResponseWriter(w http.ResponseWriter) *responseWriter {
	return &responseWriter{
		ResponseWriter: w,
		statusCode:     http.StatusOK, // default status
	}
}

func (rw *responseWriter) WriteHeader(statusCode int) {
	if !rw.written {
		rw.statusCode = statusCode
		rw.written = true
		rw.ResponseWriter.WriteHeader(statusCode)
	}
}

func (rw *responseWriter) Write(b []byte) (int, error) {
	if !rw.written {
		rw.WriteHeader(http.StatusOK)
	}
	return rw.ResponseWriter.Write(b)
}

func loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		// Skip logging for health check endpoints and metrics.
		// Use HasPrefix to catch variations (e.g. /healthz/).
		if strings.HasPrefix(r.URL.Path, "/healthz") ||
			strings.HasPrefix(r.URL.Path, "/readyz") ||
			strings.HasPrefix(r.URL.Path, "/metrics") {
			next.ServeHTTP(w, r)
			return
		}

		requestID := logger.GenerateRequestID()
		ctx := logger.WithRequestID(r.Context(), requestID)
		r = r.WithContext(ctx)

		log := logger.FromContext(ctx)

		log.Info(LogMsgRequestStarted,
			"method", r.Method,
			"path", r.URL.Path,
			"remote_addr", r.RemoteAddr,
			"content_length", r.ContentLength,
			"user_agent", r.UserAgent())

		// Sanitize headers for logging
		sanitizedHeaders := make(http.Header)
		for k, v := range r.Header {
			if strings.EqualFold(k, HeaderAPIKey) || strings.EqualFold(k, HeaderAuthorization) {
				sanitizedHeaders[k] = []string{RedactedValue}
			} else {
				sanitizedHeaders[k] = v
			}
		}
		log.Debug(LogMsgRequestHeaders, "headers", sanitizedHeaders)

		rw := newResponseWriter(w)

		next.ServeHTTP(rw, r)

		duration := time.Since(start)
		log.Info(LogMsgRequestCompleted,
			"method", r.Method,
			"path", r.URL.Path,
			"status", rw.statusCode,
			"duration_ms", duration.Milliseconds(),
			"duration", duration)
	})
}

// Start starts the server
func (s *Server) Start() error {
	slog.Default().Info(LogMsgServerStarting, "addr", s.httpServer.Addr)
	return s.httpServer.ListenAndServe()
}

// Stop stops the server gracefully
func (s *Server) Stop(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}
