package curve

import (
	"math"
	"sort"

	"pumpsizer/internal/domain"
)

// headEpsilon is the smallest segment head delta that is interpolated.
const headEpsilon = 1e-9

// Normalize returns a sorted copy of points. Non-finite or negative points
// are dropped and duplicate flows collapse onto the latest occurrence.
func Normalize(points []domain.CurvePoint) []domain.CurvePoint {
	byFlow := make(map[float64]int, len(points))
	out := make([]domain.CurvePoint, 0, len(points))
	for _, p := range points {
		if !validPoint(p) {
			continue
		}
		if i, ok := byFlow[p.Flow]; ok {
			out[i] = p
			continue
		}
		byFlow[p.Flow] = len(out)
		out = append(out, p)
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Flow < out[j].Flow })
	return out
}

// NormalizeModel normalizes every line of m and orders lines by speed.
func NormalizeModel(m domain.PumpCurveModel) domain.PumpCurveModel {
	lines := make([]domain.RpmLine, len(m.Lines))
	for i, l := range m.Lines {
		l.Points = Normalize(l.Points)
		lines[i] = l
	}
	sort.SliceStable(lines, func(i, j int) bool { return lines[i].RPM < lines[j].RPM })
	m.Lines = lines
	return m
}

// Usable reports whether points describe a curve (at least two points).
func Usable(points []domain.CurvePoint) bool { return len(points) >= 2 }

// HasUsableLine reports whether any line of m is usable.
func HasUsableLine(m domain.PumpCurveModel) bool {
	for _, l := range m.Lines {
		if Usable(l.Points) {
			return true
		}
	}
	return false
}

// HeadAt returns the head the curve produces at flow.
func HeadAt(points []domain.CurvePoint, flow float64) float64 {
	if !Usable(points) || !finite(flow) {
		return 0
	}
	first, last := points[0], points[len(points)-1]
	if flow <= first.Flow {
		return first.Head
	}
	if flow >= last.Flow {
		return last.Head
	}
	for i := 1; i < len(points); i++ {
		a, b := points[i-1], points[i]
		if flow > b.Flow {
			continue
		}
		if b.Flow == a.Flow {
			return b.Head
		}
		t := (flow - a.Flow) / (b.Flow - a.Flow)
		return a.Head + t*(b.Head-a.Head)
	}
	return last.Head
}

// FlowAt returns the flow the curve delivers against head.
func FlowAt(points []domain.CurvePoint, head float64) float64 {
	if !Usable(points) || !finite(head) {
		return 0
	}
	lo, hi := HeadRange(points)
	if head > hi {
		return 0
	}
	if head < lo {
		return points[len(points)-1].Flow
	}
	for i := 1; i < len(points); i++ {
		a, b := points[i-1], points[i]
		if head < math.Min(a.Head, b.Head) || head > math.Max(a.Head, b.Head) {
			continue
		}
		dh := b.Head - a.Head
		if math.Abs(dh) < headEpsilon {
			return b.Flow
		}
		t := (head - a.Head) / dh
		return a.Flow + t*(b.Flow-a.Flow)
	}
	return 0
}

// HeadRange returns the minimum and maximum head over points.
func HeadRange(points []domain.CurvePoint) (lo, hi float64) {
	if len(points) == 0 {
		return 0, 0
	}
	lo, hi = points[0].Head, points[0].Head
	for _, p := range points[1:] {
		lo = math.Min(lo, p.Head)
		hi = math.Max(hi, p.Head)
	}
	return lo, hi
}

// MaxHead is the highest head any usable line of m can produce.
func MaxHead(m domain.PumpCurveModel) float64 {
	var top float64
	for _, l := range m.Lines {
		if !Usable(l.Points) {
			continue
		}
		_, hi := HeadRange(l.Points)
		top = math.Max(top, hi)
	}
	return top
}

func validPoint(p domain.CurvePoint) bool {
	return finite(p.Flow) && finite(p.Head) && p.Flow >= 0 && p.Head >= 0
}

func finite(v float64) bool { return !math.IsNaN(v) && !math.IsInf(v, 0) }

// UpsertLine returns m with line added, replacing any line at the same RPM.
func UpsertLine(m domain.PumpCurveModel, line domain.RpmLine) domain.PumpCurveModel {
	lines := make([]domain.RpmLine, 0, len(m.Lines)+1)
	for _, l := range m.Lines {
		if l.RPM != line.RPM {
			lines = append(lines, l)
		}
	}
	m.Lines = append(lines, line)
	return NormalizeModel(m)
}
