// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"net/http"
	"net/url"
	"strings"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/goccy/go-json"

	"github.com/okian/hello/internal/domain/types"
	"github.com/okian/hello/pkg/logger"
)

// Dependencies required by HTTP handlers. Using an interface bundle keeps
// the handler layer loosely coupled to implementations in other packages.
type Dependencies interface {
	RootDependencies
	GreetDependencies
	UserDependencies
	CalculateDependencies
	HealthDependencies
}

// Server wires HTTP routes for the business API.
type Server struct {
	rootHandler      *RootHandler
	greetHandler     *GreetHandler
	userHandler      *UserHandler
	calculateHandler *CalculateHandler
	healthHandler    *HealthHandler

	logger         logger.Logger
	metricsEnabled bool
	corsOrigins    []string
	extra          []func(chi.Router)
}

// Option applies a configuration option to the Server.
type Option func(*Server)

// WithLogger sets the logger used for access logs.
func WithLogger(l logger.Logger) Option {
	return func(s *Server) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithMetricsEndpoint exposes Prometheus metrics at /metrics.
func WithMetricsEndpoint(enabled bool) Option {
	return func(s *Server) {
		s.metricsEnabled = enabled
	}
}

// WithCORS enables CORS for the given origins. An empty list disables it.
func WithCORS(origins []string) Option {
	return func(s *Server) {
		s.corsOrigins = origins
	}
}

// WithRoutes registers additional routes, such as API docs, on the router.
func WithRoutes(register func(chi.Router)) Option {
	return func(s *Server) {
		if register != nil {
			s.extra = append(s.extra, register)
		}
	}
}

// NewServer creates a new API server with all handlers.
func NewServer(deps Dependencies, opts ...Option) *Server {
	s := &Server{
		rootHandler:      NewRootHandler(deps),
		greetHandler:     NewGreetHandler(deps),
		userHandler:      NewUserHandler(deps),
		calculateHandler: NewCalculateHandler(deps),
		healthHandler:    NewHealthHandler(deps),
		logger:           logger.Nop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Handler builds the complete router: middleware, business routes and the
// catch-all not-found responder.
func (s *Server) Handler(ctx context.Context) http.Handler {
	r := chi.NewRouter()

	r.Use(RequestLogger(s.logger))
	r.Use(chimiddleware.Recoverer)
	r.Use(escapedRoutePath)
	r.Use(chimiddleware.GetHead)
	if len(s.corsOrigins) > 0 {
		r.Use(cors.Handler(cors.Options{
			AllowedOrigins: s.corsOrigins,
			AllowedMethods: []string{http.MethodGet, http.MethodHead, http.MethodPost},
			AllowedHeaders: []string{"Content-Type", RequestIDHeader},
			ExposedHeaders: []string{RequestIDHeader},
			MaxAge:         86400,
		}))
	}

	s.Register(ctx, r)

	notFound := MetricsMiddleware(HandleNotFound, "not_found")
	r.NotFound(notFound)
	r.MethodNotAllowed(notFound)
	return r
}

// Register attaches all HTTP routes to r.
func (s *Server) Register(_ context.Context, r chi.Router) {
	r.Get("/", MetricsMiddleware(s.rootHandler.HandleRoot, "root"))
	r.Get("/greet", MetricsMiddleware(s.greetHandler.HandleGreet, "greet"))
	r.Get("/user/{id}", MetricsMiddleware(s.userHandler.HandleGetUser, "user"))
	r.Post("/calculate", MetricsMiddleware(s.calculateHandler.HandleCalculate, "calculate"))
	r.Get("/health", MetricsMiddleware(s.healthHandler.HandleHealth, "health"))

	if s.metricsEnabled {
		r.Get("/metrics", HandleMetrics)
	}
	for _, register := range s.extra {
		register(r)
	}
}

// HandleNotFound answers every unmatched method and path.
func HandleNotFound(w http.ResponseWriter, _ *http.Request) {
	writeError(w, http.StatusNotFound, MsgRouteNotFound)
}

// escapedRoutePath routes on the lower-cased escaped request path with any
// trailing slash removed, so "/GREET/" matches "/greet". Path parameters
// therefore arrive escaped and are decoded once by pathParam, so
// "/user/a%2Fb" reaches the user route as "a/b".
func escapedRoutePath(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if rctx := chi.RouteContext(r.Context()); rctx != nil {
			if p := requestPath(r); p != "" {
				// Escaped paths are ASCII, so lowering keeps byte offsets.
				rctx.RoutePath = strings.ToLower(p)
			}
		}
		next.ServeHTTP(w, r)
	})
}

// requestPath returns the escaped request path without a trailing slash.
func requestPath(r *http.Request) string {
	p := r.URL.EscapedPath()
	if len(p) > 1 {
		p = strings.TrimSuffix(p, "/")
	}
	return p
}

// pathParam returns the decoded value of a route parameter in the case the
// client sent it. Route parameters always form the last path segment.
func pathParam(r *http.Request, name string) (string, error) {
	v := chi.URLParam(r, name)
	if p := requestPath(r); len(p) >= len(v) {
		if orig := p[len(p)-len(v):]; strings.EqualFold(orig, v) {
			v = orig
		}
	}
	return url.PathUnescape(v)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	body, err := json.Marshal(v)
	if err != nil {
		writeError(w, http.StatusInternalServerError, http.StatusText(http.StatusInternalServerError))
		return
	}
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_, _ = w.Write(body)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	body, _ := json.Marshal(types.ErrorResponse{Error: msg})
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_, _ = w.Write(body)
}

func writeText(w http.ResponseWriter, status int, text string) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(status)
	_, _ = w.Write([]byte(text))
}
