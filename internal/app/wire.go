package app

import (
	"log/slog"

	"pumpsizer/internal/services/estimator"
	"pumpsizer/internal/services/evaluate"
	"pumpsizer/internal/store"
)

// Wire bundles all stores and services.
type Wire struct {
	Documents *store.DocumentFileStore
	Curves    *store.CurveLibrary
	Estimator *estimator.Service
	Evaluator *evaluate.Service
	Log       *slog.Logger
}

// NewWire constructs the dependency graph from cfg. cfg is expected to have
// passed through WithDefaults.
func NewWire(cfg Config, log *slog.Logger) (*Wire, error) {
	if log == nil {
		log = slog.Default()
	}

	docs := store.NewDocumentFileStore(cfg.ProjectPath)
	curves, err := store.OpenCurveLibrary(cfg.CurveDB)
	if err != nil {
		return nil, err
	}

	est := estimator.New(estimator.DefaultOptions(), log.With("component", "estimator"))
	eval := evaluate.New(curves, est, log.With("component", "evaluate"))

	return &Wire{
		Documents: docs,
		Curves:    curves,
		Estimator: est,
		Evaluator: eval,
		Log:       log,
	}, nil
}

// Close releases the curve library.
func (w *Wire) Close() error {
	return w.Curves.Close()
}
