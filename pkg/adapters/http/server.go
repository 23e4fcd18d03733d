// Package http exposes a running host over HTTP: health and version, the
// state snapshot, the transition diagram, Prometheus metrics, command
// submission and a server-sent event stream.
package http

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"

	"github.com/aretw0/ludus"
	"github.com/aretw0/ludus/internal/logging"
	"github.com/aretw0/ludus/pkg/domain"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Inspector reads the host state from outside the loop.
type Inspector interface {
	Status() Status
	Diagram() string
}

// Submitter queues a command by registry name.
type Submitter interface {
	Submit(name string, args map[string]any) error
}

// Server serves the debug API.
type Server struct {
	Inspector Inspector
	Submitter Submitter
	Streams   *StreamManager
	Gatherer  prometheus.Gatherer
	Logger    *slog.Logger
}

// Option configures the handler.
type Option func(*Server)

func WithInspector(i Inspector) Option { return func(s *Server) { s.Inspector = i } }

func WithSubmitter(sub Submitter) Option { return func(s *Server) { s.Submitter = sub } }

func WithStreams(sm *StreamManager) Option { return func(s *Server) { s.Streams = sm } }

// WithGatherer serves g on /metrics. Without it /metrics is not routed.
func WithGatherer(g prometheus.Gatherer) Option { return func(s *Server) { s.Gatherer = g } }

func WithLogger(logger *slog.Logger) Option { return func(s *Server) { s.Logger = logger } }

// NewHandler creates the HTTP handler. Routes whose dependency is missing
// answer 404.
func NewHandler(opts ...Option) http.Handler {
	s := &Server{Logger: logging.NewNop()}
	for _, opt := range opts {
		opt(s)
	}

	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(enableCORS)

	r.Get("/health", s.GetHealth)
	r.Get("/info", s.GetInfo)
	if s.Inspector != nil {
		r.Get("/state", s.GetState)
		r.Get("/graph", s.GetGraph)
	}
	if s.Submitter != nil {
		r.Post("/commands/{name}", s.PostCommand)
	}
	if s.Streams != nil {
		r.Get("/events", s.SubscribeEvents)
	}
	if s.Gatherer != nil {
		r.Handle("/metrics", promhttp.HandlerFor(s.Gatherer, promhttp.HandlerOpts{}))
	}
	return r
}

func enableCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// GetHealth handles the GET /health request.
func (s *Server) GetHealth(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// GetInfo handles the GET /info request.
func (s *Server) GetInfo(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]string{
		"app":     "ludus",
		"version": strings.TrimSpace(ludus.Version),
	})
}

// GetState handles the GET /state request.
func (s *Server) GetState(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, s.Inspector.Status())
}

// GetGraph handles the GET /graph request with a mermaid diagram.
func (s *Server) GetGraph(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	_, _ = w.Write([]byte(s.Inspector.Diagram()))
}

// PostCommand handles POST /commands/{name}. The optional JSON object body
// holds the command arguments.
func (s *Server) PostCommand(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")

	var args map[string]any
	if r.ContentLength != 0 {
		if err := json.NewDecoder(r.Body).Decode(&args); err != nil && !errors.Is(err, io.EOF) {
			http.Error(w, "Invalid request body", http.StatusBadRequest)
			s.Logger.Warn("post command: invalid request body", "command", name, "err", err)
			return
		}
	}

	if err := s.Submitter.Submit(name, args); err != nil {
		status := http.StatusBadRequest
		if errors.Is(err, domain.ErrUnknownCommand) {
			status = http.StatusNotFound
		}
		http.Error(w, err.Error(), status)
		return
	}
	s.writeJSON(w, http.StatusAccepted, map[string]string{"command": name})
}

// SubscribeEvents handles the GET /events request (SSE). The optional watch
// query parameter is a comma separated list of event types to forward.
func (s *Server) SubscribeEvents(w http.ResponseWriter, r *http.Request) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		http.Error(w, "Streaming not supported", http.StatusInternalServerError)
		return
	}

	var watch map[domain.EventType]bool
	if raw := r.URL.Query().Get("watch"); raw != "" {
		watch = make(map[domain.EventType]bool)
		for _, t := range strings.Split(raw, ",") {
			watch[domain.EventType(strings.TrimSpace(t))] = true
		}
	}

	ch, cancel := s.Streams.Subscribe()
	defer cancel()

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	fmt.Fprintf(w, "event: ping\ndata: connected\n\n")
	flusher.Flush()

	for {
		select {
		case <-r.Context().Done():
			s.Logger.Debug("sse client disconnected")
			return
		case e, ok := <-ch:
			if !ok {
				return
			}
			if watch != nil && !watch[e.Type] {
				continue
			}
			fmt.Fprintf(w, "event: %s\ndata: %s\n\n", e.Type, e.marshal())
			flusher.Flush()
		}
	}
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.Logger.Error("response encode failed", "err", err)
	}
}
