package matcher

import (
	"fmt"
	"math"

	"pumpsizer/internal/curve"
	"pumpsizer/internal/domain"
)

// CloseRatio is the share of the requirement above which a failing
// assignment is reported as CLOSE rather than FAIL.
const CloseRatio = 0.9

// Verdict is the outcome of matching one assignment.
type Verdict int

const (
	VerdictNoCurve Verdict = iota
	VerdictPass
	VerdictClose
	VerdictFail
)

func (v Verdict) String() string {
	switch v {
	case VerdictPass:
		return "PASS"
	case VerdictClose:
		return "CLOSE"
	case VerdictFail:
		return "FAIL"
	default:
		return "NO-CURVE"
	}
}

func (v Verdict) MarshalText() ([]byte, error) { return []byte(v.String()), nil }

// Failing reports whether v is FAIL or CLOSE.
func (v Verdict) Failing() bool { return v == VerdictFail || v == VerdictClose }

// Result is the verdict for one assignment plus the figures behind it.
type Result struct {
	AssignmentID   string         `json:"assignmentId"`
	ModelID        string         `json:"modelId"`
	Verdict        Verdict        `json:"verdict"`
	LineIndex      int            `json:"lineIndex"` // -1 when no line was selected
	Line           domain.RpmLine `json:"line"`
	UnitFlow       float64        `json:"unitFlow"`
	TotalCapacity  float64        `json:"totalCapacity"`
	Required       float64        `json:"required"`
	TargetHead     float64        `json:"targetHead"`
	MaxHead        float64        `json:"maxHead"`
	HeadExceedsMax bool           `json:"headExceedsMax"`
	Explanation    string         `json:"explanation"`
}

// Match evaluates a against the curves in lib for the given required flow.
func Match(lib domain.CurveLibrary, a domain.PumpAssignment, required float64) Result {
	return At(lib, a, a.TargetHead, required)
}

// At evaluates a as if its target head were head. Chart layers use it to
// place an operating point without re-implementing the selection policy.
func At(lib domain.CurveLibrary, a domain.PumpAssignment, head, required float64) Result {
	qty := a.Quantity
	if qty < 1 {
		qty = 1
	}
	res := Result{
		AssignmentID: a.ID,
		ModelID:      a.ModelID,
		LineIndex:    -1,
		Required:     required,
		TargetHead:   head,
	}

	raw, ok := lib[a.ModelID]
	if !ok {
		res.Verdict = VerdictNoCurve
		res.Explanation = fmt.Sprintf("no curve data for model %q", a.ModelID)
		return res
	}
	model := curve.NormalizeModel(raw)
	if !curve.HasUsableLine(model) {
		res.Verdict = VerdictNoCurve
		res.Explanation = fmt.Sprintf("model %q has no usable RPM line", a.ModelID)
		return res
	}

	res.MaxHead = curve.MaxHead(model)
	if math.IsNaN(head) || math.IsInf(head, 0) {
		res.TargetHead = 0
		res.Verdict = VerdictFail
		res.Explanation = "target head is not a finite number"
		return res
	}
	if head > res.MaxHead {
		res.Verdict = VerdictFail
		res.HeadExceedsMax = true
		res.Explanation = fmt.Sprintf("target head %.1f ft exceeds the model's maximum %.1f ft", head, res.MaxHead)
		return res
	}

	res.LineIndex = selectLine(model.Lines, head, qty, required)
	line := model.Lines[res.LineIndex]
	res.Line = line
	res.UnitFlow = curve.FlowAt(line.Points, head)
	res.TotalCapacity = res.UnitFlow * float64(qty)

	switch {
	case res.TotalCapacity >= required:
		res.Verdict = VerdictPass
		res.Explanation = fmt.Sprintf("%s delivers %.1f GPM at %.1f ft (needs %.1f)",
			lineName(line), res.TotalCapacity, head, required)
	case res.TotalCapacity >= CloseRatio*required:
		res.Verdict = VerdictClose
		res.Explanation = fmt.Sprintf("%s delivers %.1f GPM at %.1f ft, just short of %.1f",
			lineName(line), res.TotalCapacity, head, required)
	default:
		res.Verdict = VerdictFail
		res.Explanation = fmt.Sprintf("best line %s delivers %.1f GPM at %.1f ft, needs %.1f",
			lineName(line), res.TotalCapacity, head, required)
	}
	return res
}

// selectLine returns the index of the slowest line meeting required, or of
// the highest-capacity line when none does. lines must be sorted by speed
// and contain at least one usable line.
func selectLine(lines []domain.RpmLine, head float64, qty int, required float64) int {
	best, bestCap := -1, -1.0
	for i, l := range lines {
		if !curve.Usable(l.Points) {
			continue
		}
		c := curve.FlowAt(l.Points, head) * float64(qty)
		if c >= required {
			return i
		}
		if c > bestCap {
			best, bestCap = i, c
		}
	}
	return best
}

func lineName(l domain.RpmLine) string {
	if l.Label != "" {
		return fmt.Sprintf("%q (%.0f RPM)", l.Label, l.RPM)
	}
	return fmt.Sprintf("%.0f RPM", l.RPM)
}
