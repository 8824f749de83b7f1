package estimator

import (
	"errors"
	"fmt"
	"math"

	"pumpsizer/internal/digest"
	"pumpsizer/internal/domain"
	"pumpsizer/internal/services/demand"
)

// Hazen-Williams constants for US customary units.
const (
	hwCoefficient = 4.52
	hwFlowExp     = 1.85
	hwDiameterExp = 4.87
)

// Guard codes.
const (
	CodeFlowInvalid = "flow-invalid"
	CodeFlowHigh    = "flow-high"
	CodeHeadInvalid = "head-invalid"
	CodeHeadHigh    = "head-high"
)

// ErrNotApplicable is returned by Apply when any guard rail tripped.
var ErrNotApplicable = errors.New("estimator: estimate is not applicable")

// Options bounds what the estimator accepts as plausible.
type Options struct {
	MaxFlow float64 // GPM
	MaxHead float64 // feet
}

// DefaultOptions returns the residential sanity ceilings.
func DefaultOptions() Options {
	return Options{MaxFlow: 400, MaxHead: 200}
}

// Warning is a non-blocking guard-rail finding.
type Warning struct {
	Code      string `json:"code"`
	Message   string `json:"message"`
	Signature string `json:"signature"`
}

// Estimate is the head derived for one scope.
type Estimate struct {
	Scope      domain.ApplyScope `json:"scope"`
	FlowBasis  float64           `json:"flowBasis"` // GPM
	Length     float64           `json:"length"`    // equivalent feet
	Friction   float64           `json:"friction"`  // feet
	Head       float64           `json:"head"`      // feet
	Warnings   []Warning         `json:"warnings,omitempty"`
	Applicable bool              `json:"applicable"`
}

// EquivalentLength is the round trip plus the fitting allowance.
func EquivalentLength(oneWay, fittings float64) float64 {
	return 2*oneWay + fittings
}

// FrictionLoss evaluates Hazen-Williams. The result is non-finite for a
// non-positive diameter or C.
func FrictionLoss(length, flow, c, diameter float64) float64 {
	return hwCoefficient * length * math.Pow(flow, hwFlowExp) /
		(math.Pow(c, hwFlowExp) * math.Pow(diameter, hwDiameterExp))
}

// Compute estimates the head for doc's engineering parameters and apply
// scope. It has no side effects.
func Compute(doc domain.Document, opts Options) Estimate {
	e := doc.Engineering
	est := Estimate{
		Scope:     e.ApplyScope,
		FlowBasis: demand.Compute(doc).ForScope(e.ApplyScope),
		Length:    EquivalentLength(e.EquipmentDistance, e.FittingAllowance),
	}
	q := est.FlowBasis

	switch {
	case !finite(q) || q <= 0:
		est.Warnings = append(est.Warnings, warn(CodeFlowInvalid,
			fmt.Sprintf("no usable demand flow for scope %s (%.1f GPM)", est.Scope, q), q))
	case q > opts.MaxFlow:
		est.Warnings = append(est.Warnings, warn(CodeFlowHigh,
			fmt.Sprintf("demand flow %.1f GPM exceeds %.0f GPM; check the water-feature widths and flow per foot", q, opts.MaxFlow), q))
	}

	if finite(q) && q > 0 {
		est.Friction = FrictionLoss(est.Length, q, e.Roughness, e.PipeDiameter)
	}
	est.Head = est.Friction + e.ElevationChange + e.EquipmentHeadLoss

	inputs := []float64{est.Length, q, e.Roughness, e.PipeDiameter, e.ElevationChange, e.EquipmentHeadLoss}
	switch {
	case !finite(est.Head) || est.Head <= 0:
		est.Warnings = append(est.Warnings, warn(CodeHeadInvalid,
			fmt.Sprintf("estimated head %.1f ft is not usable; check pipe diameter and C", est.Head), inputs...))
	case est.Head > opts.MaxHead:
		est.Warnings = append(est.Warnings, warn(CodeHeadHigh,
			fmt.Sprintf("estimated head %.1f ft exceeds %.0f ft", est.Head, opts.MaxHead), inputs...))
	}

	// Non-finite figures are reported through the warnings above; the
	// estimate itself must stay encodable.
	if !finite(est.FlowBasis) {
		est.FlowBasis = 0
	}
	if !finite(est.Friction) || !finite(est.Head) {
		est.Friction, est.Head = 0, 0
	}
	est.Applicable = len(est.Warnings) == 0
	return est
}

// Rounded is the head written onto pump assignments, rounded to 0.1 ft.
func (e Estimate) Rounded() float64 { return math.Round(e.Head*10) / 10 }

// ApplyTo writes the rounded head into every pump within the estimate's
// scope and returns how many were changed.
func (e Estimate) ApplyTo(doc *domain.Document) int {
	n := 0
	h := e.Rounded()
	for i := range doc.Pumps {
		if e.Scope.Matches(doc.Pumps[i].System) {
			doc.Pumps[i].TargetHead = h
			n++
		}
	}
	return n
}

func warn(code, msg string, inputs ...float64) Warning {
	return Warning{Code: code, Message: msg, Signature: digest.Signature(code, inputs...)}
}

func finite(v float64) bool { return !math.IsNaN(v) && !math.IsInf(v, 0) }
