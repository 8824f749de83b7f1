package demand

import (
	"math"

	"pumpsizer/internal/domain"
)

// Summary holds every required-flow figure derived from one document (GPM).
type Summary struct {
	PoolTurnover  float64 `json:"poolTurnover"`
	WaterFeatures float64 `json:"waterFeatures"`
	PoolRequired  float64 `json:"poolRequired"`
	SpaJets       float64 `json:"spaJets"`
	SpaTurnover   float64 `json:"spaTurnover"`
	SpaRequired   float64 `json:"spaRequired"`

	SpaEnabled        bool `json:"spaEnabled"`
	SpaThroughShared  bool `json:"spaThroughShared"`
	DedicatedFeatures bool `json:"dedicatedFeatures"`
}

// Compute derives the Summary for doc.
func Compute(doc domain.Document) Summary {
	s := Summary{
		PoolTurnover:      TurnoverFlow(doc.Project.PoolVolume, doc.Project.TurnoverHours),
		WaterFeatures:     WaterFeaturesFlow(doc.WaterFeatures),
		SpaEnabled:        doc.Spa.Enabled,
		SpaThroughShared:  doc.Spa.ThroughShared(),
		DedicatedFeatures: doc.HasSystem(domain.SystemWaterFeatures),
	}
	s.PoolRequired = s.PoolTurnover + s.WaterFeatures
	s.SpaJets = positive(doc.Spa.JetCount) * positive(doc.Spa.FlowPerJet)
	s.SpaTurnover = TurnoverFlow(doc.Spa.Volume, doc.Spa.TurnoverHours)
	// Jets usually dominate; turnover is the floor.
	s.SpaRequired = math.Max(s.SpaJets, s.SpaTurnover)
	return s
}

// ForSystem returns the flow the pumps tagged sys must deliver together.
func (s Summary) ForSystem(sys domain.DemandSystem) float64 {
	switch sys {
	case domain.SystemPool:
		return s.PoolTurnover
	case domain.SystemWaterFeatures:
		return s.WaterFeatures
	case domain.SystemSpa:
		if !s.SpaEnabled {
			return 0
		}
		return s.SpaRequired
	case domain.SystemShared:
		shared := s.PoolRequired
		if s.DedicatedFeatures {
			shared = s.PoolTurnover
		}
		if s.SpaThroughShared {
			shared = math.Max(shared, s.SpaRequired)
		}
		return shared
	default:
		return 0
	}
}

// ForScope returns the flow basis for a head estimate over scope.
//
// ScopeAll is the whole plant: the shared plumbing carries the larger of the
// pool and spa demand when the spa is routed through it, otherwise both add.
func (s Summary) ForScope(scope domain.ApplyScope) float64 {
	if sys, ok := scope.System(); ok {
		return s.ForSystem(sys)
	}
	if !s.SpaEnabled {
		return s.PoolRequired
	}
	if s.SpaThroughShared {
		return math.Max(s.PoolRequired, s.SpaRequired)
	}
	return s.PoolRequired + s.SpaRequired
}

// TurnoverFlow is volume (gallons) / (hours * 60), or 0 when either is not positive.
func TurnoverFlow(volume, hours float64) float64 {
	volume, hours = positive(volume), positive(hours)
	if volume == 0 || hours == 0 {
		return 0
	}
	return volume / (hours * 60)
}

// WaterFeaturesFlow sums quantity * width * flow-per-unit-width over rows.
func WaterFeaturesFlow(rows []domain.WaterFeatureRow) float64 {
	var total float64
	for _, r := range rows {
		total += positive(r.Quantity) * positive(r.Width) * positive(r.FlowPerUnitWidth)
	}
	return total
}

func positive(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) || v < 0 {
		return 0
	}
	return v
}
