// internal/server/server.go
package server

import (
	"context"
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"cardgen/internal/common/logger"
	"cardgen/internal/common/observability"
	"cardgen/internal/models"
)

// Function is a single HTTP-shaped invocation target.
type Function interface {
	Handle(ctx context.Context, req models.Request) models.Response
}

// Server exposes a Function over plain HTTP.
type Server struct {
	cfg    Config
	fn     Function
	obs    *observability.Observability
	router chi.Router
	logger logger.Logger
}

// New builds the router. obs may be nil.
func New(cfg Config, fn Function, obs *observability.Observability, log logger.Logger) *Server {
	if cfg.MaxBodyBytes <= 0 {
		cfg.MaxBodyBytes = DefaultMaxBodyBytes
	}
	if log == nil {
		log = logger.NewNoOpLogger()
	}

	s := &Server{
		cfg:    cfg,
		fn:     fn,
		obs:    obs,
		router: chi.NewRouter(),
		logger: log.With(map[string]interface{}{"component": "server"}),
	}
	s.routes()
	return s
}

func (s *Server) routes() {
	r := s.router

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(s.observe)
	r.Use(middleware.Recoverer)

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "healthy"})
	})
	r.Get("/ready", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ready"})
	})
	r.Handle("/metrics", promhttp.Handler())

	// method dispatch belongs to the function
	r.HandleFunc("/", s.invoke)
	r.HandleFunc("/generate-product", s.invoke)
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// HTTPServer creates an *http.Server ready to ListenAndServe.
func (s *Server) HTTPServer() *http.Server {
	return &http.Server{
		Addr:         s.cfg.Address,
		Handler:      s,
		ReadTimeout:  s.cfg.ReadTimeout,
		WriteTimeout: s.cfg.WriteTimeout,
	}
}

func (s *Server) invoke(w http.ResponseWriter, r *http.Request) {
	event, err := s.toEvent(w, r)
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			s.logger.Warn("request body too large", map[string]interface{}{
				"limit": tooLarge.Limit,
				"path":  r.URL.Path,
			})
			writeJSON(w, http.StatusRequestEntityTooLarge, models.ErrorBody{Error: "request body too large"})
			return
		}
		s.logger.Warn("reading request body", map[string]interface{}{"error": err})
		writeJSON(w, http.StatusBadRequest, models.ErrorBody{Error: "unreadable request body"})
		return
	}

	ctx := r.Context()
	if id := middleware.GetReqID(ctx); id != "" {
		ctx = logger.ContextWithRequestID(ctx, id)
	}

	writeResponse(w, s.fn.Handle(ctx, event))
}

// toEvent copies the inbound request into the event shape. A request
// without body bytes yields a nil Body.
func (s *Server) toEvent(w http.ResponseWriter, r *http.Request) (models.Request, error) {
	event := models.Request{HTTPMethod: r.Method}
	if r.Body == nil {
		return event, nil
	}

	data, err := io.ReadAll(http.MaxBytesReader(w, r.Body, s.cfg.MaxBodyBytes))
	if err != nil {
		return event, err
	}
	if len(data) > 0 {
		body := string(data)
		event.Body = &body
	}
	return event, nil
}

func (s *Server) observe(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)

		next.ServeHTTP(ww, r)

		route := r.URL.Path
		if rctx := chi.RouteContext(r.Context()); rctx != nil && rctx.RoutePattern() != "" {
			route = rctx.RoutePattern()
		}
		status := ww.Status()
		if status == 0 {
			status = http.StatusOK
		}
		s.obs.RecordRequest(r.Context(), route, r.Method, status, time.Since(start))
	})
}

// --- response helpers ---

func writeResponse(w http.ResponseWriter, resp models.Response) {
	for k, v := range resp.Headers {
		w.Header().Set(k, v)
	}
	w.WriteHeader(resp.StatusCode)
	if resp.Body != "" {
		_, _ = io.WriteString(w, resp.Body)
	}
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	body, err := models.MarshalJSON(v)
	if err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = io.WriteString(w, body)
}
