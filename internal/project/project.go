// Package project holds the versioned configuration snapshot that every
// calculation reads.
//
// A Snapshot is never mutated in place. Update copies the document, applies
// one change and returns the next version, so a caller always evaluates a
// consistent value. Sanitize replaces non-finite or out-of-range inputs with
// defaults; it is applied on every update and before every evaluation.
package project

import (
	"errors"
	"fmt"
	"math"

	"pumpsizer/internal/domain"
)

// Defaults for fields the engine cannot work without.
const (
	DefaultTurnoverHours    = 6.0
	DefaultSpaTurnoverHours = 0.5
	DefaultPipeDiameter     = 2.469 // inches, 2" schedule 40 PVC
	DefaultRoughness        = 140.0 // Hazen-Williams C for PVC
)

var (
	// ErrUnsupportedVersion indicates a document newer than this build understands.
	ErrUnsupportedVersion = errors.New("project: unsupported document version")
	// ErrPumpID indicates a pump assignment with a missing or duplicated id.
	ErrPumpID = errors.New("project: pump ids must be present and unique")
	// ErrPumpSystem indicates a pump assignment without a known demand system.
	ErrPumpSystem = errors.New("project: pump system must be pool, waterFeatures, spa or shared")
)

// Snapshot is one immutable version of the project document.
type Snapshot struct {
	Version uint64
	Doc     domain.Document
}

// New wraps doc as version 1 after sanitizing it.
func New(doc domain.Document) Snapshot {
	return Snapshot{Version: 1, Doc: Sanitize(Clone(doc))}
}

// Update is the single entry point for configuration changes. fn receives a
// private copy; the receiver is left untouched.
func (s Snapshot) Update(fn func(doc *domain.Document)) Snapshot {
	doc := Clone(s.Doc)
	fn(&doc)
	return Snapshot{Version: s.Version + 1, Doc: Sanitize(doc)}
}

// Default returns an empty project with engineering defaults filled in.
func Default() domain.Document {
	return domain.Document{
		Version: domain.DocumentVersion,
		Project: domain.Project{Name: "Untitled", TurnoverHours: DefaultTurnoverHours},
		Spa: domain.SpaConfig{
			Mode:          domain.SpaShared,
			TurnoverHours: DefaultSpaTurnoverHours,
		},
		Engineering: domain.EngineeringParams{
			PipeDiameter: DefaultPipeDiameter,
			Roughness:    DefaultRoughness,
			ApplyScope:   domain.ScopeAll,
		},
		Curves: domain.CurveLibrary{},
	}
}

// Clone deep-copies doc.
func Clone(doc domain.Document) domain.Document {
	out := doc
	out.WaterFeatures = append([]domain.WaterFeatureRow(nil), doc.WaterFeatures...)
	out.Pumps = append([]domain.PumpAssignment(nil), doc.Pumps...)
	if doc.Curves != nil {
		out.Curves = make(domain.CurveLibrary, len(doc.Curves))
		for id, m := range doc.Curves {
			out.Curves[id] = cloneModel(m)
		}
	}
	return out
}

func cloneModel(m domain.PumpCurveModel) domain.PumpCurveModel {
	lines := make([]domain.RpmLine, len(m.Lines))
	for i, l := range m.Lines {
		l.Points = append([]domain.CurvePoint(nil), l.Points...)
		lines[i] = l
	}
	m.Lines = lines
	return m
}

// Sanitize replaces values the engine cannot use. Non-finite numbers fall
// back to their default (or 0), negative quantities become 0 and pump
// quantities are at least 1. Zero or negative turnover, diameter and C are
// kept so the calculations can report them. Curves are left as supplied;
// the curve package normalizes them at lookup time.
func Sanitize(doc domain.Document) domain.Document {
	if doc.Version == 0 {
		doc.Version = domain.DocumentVersion
	}
	p := &doc.Project
	p.PoolVolume = nonNegative(p.PoolVolume)
	p.TurnoverHours = finiteOr(p.TurnoverHours, DefaultTurnoverHours)

	for i := range doc.WaterFeatures {
		r := &doc.WaterFeatures[i]
		r.Quantity = nonNegative(r.Quantity)
		r.Width = nonNegative(r.Width)
		r.FlowPerUnitWidth = nonNegative(r.FlowPerUnitWidth)
	}

	s := &doc.Spa
	s.Volume = nonNegative(s.Volume)
	s.TurnoverHours = finiteOr(s.TurnoverHours, DefaultSpaTurnoverHours)
	s.JetCount = nonNegative(s.JetCount)
	s.FlowPerJet = nonNegative(s.FlowPerJet)
	s.TargetHead = nonNegative(s.TargetHead)

	for i := range doc.Pumps {
		a := &doc.Pumps[i]
		if a.Quantity < 1 {
			a.Quantity = 1
		}
		a.TargetHead = nonNegative(a.TargetHead)
	}

	e := &doc.Engineering
	e.EquipmentDistance = nonNegative(e.EquipmentDistance)
	e.FittingAllowance = nonNegative(e.FittingAllowance)
	e.PipeDiameter = finiteOr(e.PipeDiameter, DefaultPipeDiameter)
	e.ElevationChange = finiteOr(e.ElevationChange, 0)
	e.EquipmentHeadLoss = nonNegative(e.EquipmentHeadLoss)
	e.Roughness = finiteOr(e.Roughness, DefaultRoughness)

	if doc.Curves == nil {
		doc.Curves = domain.CurveLibrary{}
	}
	return doc
}

// Validate performs the shape checks an imported document must pass before
// it replaces the stored one.
func Validate(doc domain.Document) error {
	if doc.Version > domain.DocumentVersion {
		return fmt.Errorf("%w: %d", ErrUnsupportedVersion, doc.Version)
	}
	seen := make(map[string]bool, len(doc.Pumps))
	for i, p := range doc.Pumps {
		if p.ID == "" || seen[p.ID] {
			return fmt.Errorf("%w (pump #%d)", ErrPumpID, i+1)
		}
		seen[p.ID] = true
	}
	for _, p := range doc.Pumps {
		if !p.System.Valid() {
			return fmt.Errorf("%w (pump %s)", ErrPumpSystem, p.ID)
		}
	}
	for id, m := range doc.Curves {
		if m.ID != "" && m.ID != id {
			return fmt.Errorf("project: curve key %q does not match model id %q", id, m.ID)
		}
	}
	return nil
}

func finite(v float64) bool { return !math.IsNaN(v) && !math.IsInf(v, 0) }

func finiteOr(v, fallback float64) float64 {
	if !finite(v) {
		return fallback
	}
	return v
}

func nonNegative(v float64) float64 {
	if !finite(v) || v < 0 {
		return 0
	}
	return v
}
