package httpserver

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/OliveiraNt/topicscope/internal/application"
	"github.com/OliveiraNt/topicscope/internal/utils"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// Server provides the HTTP API endpoints for topicscope.
type Server struct {
	clusterService *application.ClusterService
	topicService   *application.TopicService
}

// New creates a new HTTP server instance.
func New(clusterService *application.ClusterService, topicService *application.TopicService) *Server {
	return &Server{
		clusterService: clusterService,
		topicService:   topicService,
	}
}

// Router builds the handler tree; Run serves it.
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(requestLogger)

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	r.Route("/api", func(r chi.Router) {
		r.Get("/clusters", s.apiListClusters)
		r.Get("/clusters/{clusterName}/topics", s.apiListTopics)
		r.Post("/clusters/{clusterName}/topics/describe", s.apiDescribeTopics)
		r.Get("/clusters/{clusterName}/topics/{topicName}", s.apiDescribeTopic)
		r.Post("/topic-descriptions/validate", s.apiValidateTopicDescription)
	})
	return r
}

// Run starts the HTTP server on the given address.
func (s *Server) Run(addr string) error {
	utils.Logger.Info("HTTP server listening", "addr", addr)
	return http.ListenAndServe(addr, s.Router())
}

func requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(ww, r)
		utils.Logger.Info("http request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"bytes", ww.BytesWritten(),
			"duration", time.Since(start).String(),
			"request_id", middleware.GetReqID(r.Context()),
		)
	})
}

type errorResponse struct {
	Error string `json:"error"`
	Key   string `json:"key,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		utils.Logger.Error("encode response failed", "err", err)
	}
}

func writeError(w http.ResponseWriter, status int, err error) {
	writeJSON(w, status, errorResponse{Error: err.Error()})
}
