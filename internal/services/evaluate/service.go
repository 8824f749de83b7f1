// Package evaluate recomputes everything derived from one project snapshot.
//
// An evaluation is synchronous and bounded by the number of curve points,
// water-feature rows and pump assignments. Nothing is cached between calls
// except the head estimator's warning memory.
package evaluate

import (
	"log/slog"

	"pumpsizer/internal/domain"
	"pumpsizer/internal/project"
	"pumpsizer/internal/services/demand"
	"pumpsizer/internal/services/estimator"
	"pumpsizer/internal/services/health"
	"pumpsizer/internal/services/matcher"
)

// PumpReport pairs an assignment with its verdict.
type PumpReport struct {
	Assignment domain.PumpAssignment `json:"assignment"`
	Result     matcher.Result        `json:"result"`
}

// Report is the complete evaluation of one snapshot.
type Report struct {
	Version  uint64              `json:"version"`
	Demand   demand.Summary      `json:"demand"`
	Pumps    []PumpReport        `json:"pumps"`
	Health   health.Summary      `json:"health"`
	Estimate estimator.Estimate  `json:"estimate"`
	Warnings []estimator.Warning `json:"warnings,omitempty"` // newly raised this run
}

// Service evaluates snapshots against a base curve library.
type Service struct {
	curves domain.CurveStore
	est    *estimator.Service
	log    *slog.Logger
}

// New returns a Service. curves may be nil when only document curves are used.
func New(curves domain.CurveStore, est *estimator.Service, log *slog.Logger) *Service {
	if log == nil {
		log = slog.Default()
	}
	return &Service{curves: curves, est: est, log: log}
}

// Library returns the curve library in effect for doc: the shared library
// overlaid with the document's own curves.
func (s *Service) Library(doc domain.Document) (domain.CurveLibrary, error) {
	base := domain.CurveLibrary{}
	if s.curves != nil {
		lib, err := s.curves.LoadLibrary()
		if err != nil {
			return nil, err
		}
		base = lib
	}
	return base.Merge(doc.Curves), nil
}

// Evaluate runs demand, matching, health and the head estimate for snap.
func (s *Service) Evaluate(snap project.Snapshot) (Report, error) {
	lib, err := s.Library(snap.Doc)
	if err != nil {
		return Report{}, err
	}
	return s.EvaluateWith(snap, lib), nil
}

// EvaluateWith is Evaluate with an explicit curve library.
func (s *Service) EvaluateWith(snap project.Snapshot, lib domain.CurveLibrary) Report {
	doc := project.Sanitize(snap.Doc)
	rep := Report{Version: snap.Version, Demand: demand.Compute(doc)}

	results := make([]matcher.Result, len(doc.Pumps))
	rep.Pumps = make([]PumpReport, len(doc.Pumps))
	for i, p := range doc.Pumps {
		results[i] = matcher.Match(lib, p, rep.Demand.ForSystem(p.System))
		rep.Pumps[i] = PumpReport{Assignment: p, Result: results[i]}
		s.log.Debug("pump matched", "pump", p.ID, "model", p.ModelID, "verdict", results[i].Verdict.String())
	}
	rep.Health = health.Aggregate(doc.Pumps, results, rep.Demand)
	rep.Estimate, rep.Warnings = s.est.Run(doc)
	return rep
}

// Capacity answers "what does pump id deliver at head" for chart layers.
func (s *Service) Capacity(snap project.Snapshot, id string, head float64) (matcher.Result, bool, error) {
	doc := project.Sanitize(snap.Doc)
	p, ok := doc.Pump(id)
	if !ok {
		return matcher.Result{}, false, nil
	}
	lib, err := s.Library(doc)
	if err != nil {
		return matcher.Result{}, true, err
	}
	req := demand.Compute(doc).ForSystem(p.System)
	return matcher.At(lib, p, head, req), true, nil
}
