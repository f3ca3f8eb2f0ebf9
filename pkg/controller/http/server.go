package http

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/toolhub/pkg/domain/types"
	"github.com/secmon-lab/toolhub/pkg/usecase"
	"github.com/secmon-lab/toolhub/pkg/utils/errutil"
	"github.com/secmon-lab/toolhub/pkg/utils/logging"
	"github.com/secmon-lab/toolhub/pkg/utils/safe"
)

// DefaultMaxUploadBytes bounds request bodies including multipart uploads
const DefaultMaxUploadBytes int64 = 20 << 20

type Server struct {
	router         *chi.Mux
	uc             *usecase.UseCases
	metricsHandler http.Handler
	maxUploadBytes int64
}

type Options func(*Server)

// WithMetricsHandler exposes h at GET /metrics
func WithMetricsHandler(h http.Handler) Options {
	return func(s *Server) {
		s.metricsHandler = h
	}
}

func WithMaxUploadBytes(n int64) Options {
	return func(s *Server) {
		if n > 0 {
			s.maxUploadBytes = n
		}
	}
}

func New(uc *usecase.UseCases, opts ...Options) *Server {
	r := chi.NewRouter()

	s := &Server{
		router:         r,
		uc:             uc,
		maxUploadBytes: DefaultMaxUploadBytes,
	}
	for _, opt := range opts {
		opt(s)
	}

	// Middleware
	r.Use(middleware.RequestID)
	r.Use(requestLogger)
	r.Use(accessLogger)
	r.Use(middleware.Recoverer)

	r.Get("/healthz", healthHandler)
	if s.metricsHandler != nil {
		r.Method(http.MethodGet, "/metrics", s.metricsHandler)
	}

	r.Route("/tools", func(r chi.Router) {
		r.Get("/", s.listToolsHandler)
		r.Post("/"+types.ToolKindTextStats.String(), s.jsonToolHandler(types.ToolKindTextStats))
		r.Post("/"+types.ToolKindImageResize.String(), s.imageResizeHandler)
		r.Post("/"+types.ToolKindPageMetadata.String(), s.jsonToolHandler(types.ToolKindPageMetadata))
		r.Post("/"+types.ToolKindMarkupToText.String(), s.jsonToolHandler(types.ToolKindMarkupToText))
		r.Post("/"+types.ToolKindPercentage.String(), s.jsonToolHandler(types.ToolKindPercentage))
	})

	r.Route("/analytics", func(r chi.Router) {
		r.Post("/track-usage/{toolId}", s.trackUsageHandler)
		r.Get("/tool-usage/{toolId}", s.toolUsageHandler)
		r.Get("/user-activity/{userId}", s.userActivityHandler)
		r.Get("/category-stats", s.categoryStatsHandler)
	})

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		writeMessage(r, w, http.StatusNotFound, "Not found")
	})

	return s
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// requestLogger binds a logger carrying the request ID to the request context
func requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logger := logging.Default().With("request_id", middleware.GetReqID(r.Context()))
		ctx := logging.With(r.Context(), logger)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// accessLogger is a middleware that logs HTTP requests
func accessLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)

		defer func() {
			logging.From(r.Context()).Info("access",
				"method", r.Method,
				"path", r.URL.Path,
				"status", ww.Status(),
				"bytes", ww.BytesWritten(),
				"duration", time.Since(start),
				"remote", r.RemoteAddr,
				"user_agent", r.UserAgent(),
			)
		}()

		next.ServeHTTP(ww, r)
	})
}

func healthHandler(w http.ResponseWriter, r *http.Request) {
	writeJSON(r, w, http.StatusOK, map[string]string{"status": "ok"})
}

type messageResponse struct {
	Message string `json:"message"`
}

func writeMessage(r *http.Request, w http.ResponseWriter, status int, message string) {
	writeJSON(r, w, status, messageResponse{Message: message})
}

func writeJSON(r *http.Request, w http.ResponseWriter, status int, v any) {
	data, err := json.Marshal(v)
	if err != nil {
		errutil.HandleHTTP(r.Context(), w, goerr.Wrap(err, "failed to marshal response"), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	safe.Write(r.Context(), w, data)
}
