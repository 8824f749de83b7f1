// Package api serves project evaluations over HTTP.
//
// GET endpoints read the stored project. POST /api/v1/evaluate evaluates a
// posted document without storing it; POST /api/v1/estimate/apply is the only
// endpoint that changes the stored project.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"math"
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"pumpsizer/internal/app"
	"pumpsizer/internal/project"
	"pumpsizer/internal/services/estimator"
	"pumpsizer/internal/services/evaluate"
	"pumpsizer/internal/services/health"
)

const maxBody = 1 << 20

// Server serves the project over HTTP.
type Server struct {
	app *app.App
	log *slog.Logger

	reg         *prometheus.Registry
	evaluations prometheus.Counter
	verdicts    *prometheus.CounterVec
	guards      *prometheus.CounterVec
}

// New returns a Server for a. A nil logger uses slog.Default().
func New(a *app.App, log *slog.Logger) *Server {
	if log == nil {
		log = slog.Default()
	}
	s := &Server{
		app: a,
		log: log,
		reg: prometheus.NewRegistry(),
		evaluations: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "pumpsizer",
			Name:      "evaluations_total",
			Help:      "Project evaluations served.",
		}),
		verdicts: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "pumpsizer",
			Name:      "pump_verdicts_total",
			Help:      "Pump verdicts produced by evaluations.",
		}, []string{"verdict"}),
		guards: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "pumpsizer",
			Name:      "head_guard_warnings_total",
			Help:      "Head estimate guard-rail warnings raised.",
		}, []string{"code"}),
	}
	s.reg.MustRegister(s.evaluations, s.verdicts, s.guards)
	return s
}

// Handler returns the routed HTTP handler.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/v1/report", s.handleReport)
	mux.HandleFunc("POST /api/v1/evaluate", s.handleEvaluate)
	mux.HandleFunc("GET /api/v1/capacity", s.handleCapacity)
	mux.HandleFunc("POST /api/v1/estimate/apply", s.handleApply)
	mux.HandleFunc("GET /healthz", func(w http.ResponseWriter, r *http.Request) {
		s.writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	mux.Handle("GET /metrics", promhttp.HandlerFor(s.reg, promhttp.HandlerOpts{}))
	return mux
}

// ListenAndServe serves on addr until ctx is cancelled.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
	}
	errc := make(chan error, 1)
	go func() { errc <- srv.ListenAndServe() }()
	s.log.Info("HTTP API starting", "addr", addr)

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
		shutdown, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		s.log.Info("HTTP API stopping")
		return srv.Shutdown(shutdown)
	}
}

func (s *Server) handleReport(w http.ResponseWriter, r *http.Request) {
	rep, err := s.app.Report()
	if err != nil {
		s.fail(w, http.StatusInternalServerError, err)
		return
	}
	s.observe(rep)
	s.writeJSON(w, http.StatusOK, rep)
}

func (s *Server) handleEvaluate(w http.ResponseWriter, r *http.Request) {
	doc := project.Default()
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBody))
	if err := dec.Decode(&doc); err != nil {
		s.fail(w, http.StatusBadRequest, err)
		return
	}
	if err := project.Validate(doc); err != nil {
		s.fail(w, http.StatusBadRequest, err)
		return
	}
	rep, err := s.app.Evaluator.Evaluate(project.New(doc))
	if err != nil {
		s.fail(w, http.StatusInternalServerError, err)
		return
	}
	s.observe(rep)
	s.writeJSON(w, http.StatusOK, rep)
}

func (s *Server) handleCapacity(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	id := q.Get("pump")
	if id == "" {
		s.fail(w, http.StatusBadRequest, errors.New("missing pump"))
		return
	}
	snap := s.app.Snapshot()
	var head float64
	if v := q.Get("head"); v != "" {
		h, err := strconv.ParseFloat(v, 64)
		if err == nil && (math.IsNaN(h) || math.IsInf(h, 0)) {
			err = errors.New("head must be a finite number of feet")
		}
		if err != nil {
			s.fail(w, http.StatusBadRequest, err)
			return
		}
		head = h
	} else if p, ok := snap.Doc.Pump(id); ok {
		head = p.TargetHead
	}

	res, found, err := s.app.Evaluator.Capacity(snap, id, head)
	switch {
	case err != nil:
		s.fail(w, http.StatusInternalServerError, err)
	case !found:
		s.fail(w, http.StatusNotFound, errors.New("unknown pump "+strconv.Quote(id)))
	default:
		s.writeJSON(w, http.StatusOK, res)
	}
}

type applyResponse struct {
	Estimate estimator.Estimate `json:"estimate"`
	Updated  int                `json:"updated"`
	Error    string             `json:"error,omitempty"`
}

func (s *Server) handleApply(w http.ResponseWriter, r *http.Request) {
	est, n, err := s.app.ApplyEstimate()
	for _, warn := range est.Warnings {
		s.guards.WithLabelValues(warn.Code).Inc()
	}
	switch {
	case errors.Is(err, estimator.ErrNotApplicable):
		s.writeJSON(w, http.StatusConflict, applyResponse{Estimate: est, Error: err.Error()})
	case err != nil:
		s.fail(w, http.StatusInternalServerError, err)
	default:
		s.writeJSON(w, http.StatusOK, applyResponse{Estimate: est, Updated: n})
	}
}

func (s *Server) observe(rep evaluate.Report) {
	s.evaluations.Inc()
	for _, p := range rep.Pumps {
		s.verdicts.WithLabelValues(p.Result.Verdict.String()).Inc()
	}
	for _, warn := range rep.Warnings {
		s.guards.WithLabelValues(warn.Code).Inc()
	}
	if rep.Health.Overall == health.StatusFail {
		s.log.Info("system health failing", "version", rep.Version)
	}
}

func (s *Server) fail(w http.ResponseWriter, code int, err error) {
	if code >= http.StatusInternalServerError {
		s.log.Error("request failed", "error", err)
	}
	s.writeJSON(w, code, map[string]string{"error": err.Error()})
}

// writeJSON encodes data before writing the status; an encoding failure is
// logged and answered with a 500.
func (s *Server) writeJSON(w http.ResponseWriter, code int, data any) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetIndent("", "  ")
	if err := enc.Encode(data); err != nil {
		s.log.Error("encode response", "error", err)
		http.Error(w, `{"error":"response could not be encoded"}`, http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if _, err := w.Write(buf.Bytes()); err != nil {
		s.log.Debug("write response", "error", err)
	}
}
