// Package health rolls individual pump verdicts up into per-system status.
//
// A system passes when it has at least one assignment, no assignment's head
// exceeds its model's maximum and the summed capacity meets the requirement.
// A system with no requirement is neutral. A system that requires flow but
// has no assignments is neutral when another system's pumps carry its
// demand, and SystemHealth.CoveredBy then names that system:
//
//   - pool and waterFeatures are covered by shared
//   - spa is covered by shared when the spa runs through shared plumbing
//   - shared is covered by pool
//
// Otherwise it fails.
package health

import (
	"pumpsizer/internal/domain"
	"pumpsizer/internal/services/demand"
	"pumpsizer/internal/services/matcher"
)

// Status of one demand system or of the whole plant.
type Status int

const (
	StatusNeutral Status = iota // not applicable: nothing required
	StatusPass
	StatusFail
)

func (s Status) String() string {
	switch s {
	case StatusPass:
		return "pass"
	case StatusFail:
		return "fail"
	default:
		return "n/a"
	}
}

func (s Status) MarshalText() ([]byte, error) { return []byte(s.String()), nil }

// SystemHealth is the aggregate for one demand system.
type SystemHealth struct {
	System      domain.DemandSystem `json:"system"`
	Required    float64             `json:"required"`
	Capacity    float64             `json:"capacity"`
	Assignments int                 `json:"assignments"`
	HardFail    bool                `json:"hardFail"`
	CoveredBy   string              `json:"coveredBy,omitempty"`
	Status      Status              `json:"status"`
}

// Summary is the health of every demand system plus an overall status.
type Summary struct {
	Systems []SystemHealth `json:"systems"`
	Overall Status         `json:"overall"`
}

// System returns the entry for sys.
func (s Summary) System(sys domain.DemandSystem) SystemHealth {
	for _, h := range s.Systems {
		if h.System == sys {
			return h
		}
	}
	return SystemHealth{System: sys}
}

// Aggregate groups results by their assignment's system. results[i] must
// belong to pumps[i].
func Aggregate(pumps []domain.PumpAssignment, results []matcher.Result, req demand.Summary) Summary {
	groups := make(map[domain.DemandSystem]*SystemHealth, len(domain.Systems))
	for _, sys := range domain.Systems {
		groups[sys] = &SystemHealth{System: sys, Required: req.ForSystem(sys)}
	}
	for i, p := range pumps {
		g, ok := groups[p.System]
		if !ok || i >= len(results) {
			continue
		}
		g.Assignments++
		r := results[i]
		if r.HeadExceedsMax {
			g.HardFail = true
			continue
		}
		g.Capacity += r.TotalCapacity
	}

	out := Summary{Systems: make([]SystemHealth, 0, len(groups))}
	anyPass, anyFail := false, false
	for _, sys := range domain.Systems {
		g := groups[sys]
		switch {
		case g.Required == 0:
			g.Status = StatusNeutral
		case g.Assignments == 0:
			if by, ok := coveredBy(sys, groups, req); ok {
				g.CoveredBy = by.String()
				g.Status = StatusNeutral
			} else {
				g.Status = StatusFail
			}
		case !g.HardFail && g.Capacity >= g.Required:
			g.Status = StatusPass
		default:
			g.Status = StatusFail
		}
		anyPass = anyPass || g.Status == StatusPass
		anyFail = anyFail || g.Status == StatusFail
		out.Systems = append(out.Systems, *g)
	}

	switch {
	case anyFail:
		out.Overall = StatusFail
	case anyPass:
		out.Overall = StatusPass
	default:
		out.Overall = StatusNeutral
	}
	return out
}

// coveredBy reports which other system's pumps carry the demand of an
// unassigned system.
func coveredBy(sys domain.DemandSystem, groups map[domain.DemandSystem]*SystemHealth, req demand.Summary) (domain.DemandSystem, bool) {
	has := func(s domain.DemandSystem) bool { return groups[s].Assignments > 0 }
	switch sys {
	case domain.SystemPool, domain.SystemWaterFeatures:
		if has(domain.SystemShared) {
			return domain.SystemShared, true
		}
	case domain.SystemSpa:
		if req.SpaThroughShared && has(domain.SystemShared) {
			return domain.SystemShared, true
		}
	case domain.SystemShared:
		if has(domain.SystemPool) {
			return domain.SystemPool, true
		}
	}
	return 0, false
}
