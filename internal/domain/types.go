package domain

// DocumentVersion is the current persisted document format.
const DocumentVersion = 1

// CurvePoint is one (flow, head) pair on a pump curve.
type CurvePoint struct {
	Flow float64 `json:"flow"`
	Head float64 `json:"head"`
}

// RpmLine is the curve of one pump at a fixed motor speed.
type RpmLine struct {
	RPM    float64      `json:"rpm"`
	Label  string       `json:"label"`
	Points []CurvePoint `json:"points"`
}

// PumpCurveModel groups every speed curve published for a pump model.
type PumpCurveModel struct {
	ID    string    `json:"id"`
	Label string    `json:"label"`
	Lines []RpmLine `json:"lines"`
}

// CurveLibrary maps a model id to its curves.
type CurveLibrary map[string]PumpCurveModel

// Merge returns a library holding every model of l overlaid with other.
// Models in other win on id clashes.
func (l CurveLibrary) Merge(other CurveLibrary) CurveLibrary {
	out := make(CurveLibrary, len(l)+len(other))
	for id, m := range l {
		out[id] = m
	}
	for id, m := range other {
		out[id] = m
	}
	return out
}

// Project carries the pool itself.
type Project struct {
	Name          string  `json:"name"`
	PoolVolume    float64 `json:"poolVolume"`    // gallons
	TurnoverHours float64 `json:"turnoverHours"` // hours per full turnover
}

// WaterFeatureRow is one line of sheet-flow features (weirs, deck jets, ...).
type WaterFeatureRow struct {
	Type             string  `json:"type"`
	Quantity         float64 `json:"quantity"`
	Width            float64 `json:"width"`            // feet per unit
	FlowPerUnitWidth float64 `json:"flowPerUnitWidth"` // GPM per foot
}

// SpaConfig describes an optional spa.
type SpaConfig struct {
	Enabled       bool    `json:"enabled"`
	Mode          SpaMode `json:"mode"`
	Volume        float64 `json:"volume"`
	TurnoverHours float64 `json:"turnoverHours"`
	JetCount      float64 `json:"jetCount"`
	FlowPerJet    float64 `json:"flowPerJet"`
	TargetHead    float64 `json:"targetHead"`
}

// ThroughShared reports whether spa demand is carried by the shared pump.
func (s SpaConfig) ThroughShared() bool { return s.Enabled && s.Mode == SpaShared }

// PumpAssignment places Quantity identical pumps of ModelID on one system.
type PumpAssignment struct {
	ID         string       `json:"id"`
	ModelID    string       `json:"modelId"`
	Quantity   int          `json:"quantity"`
	System     DemandSystem `json:"system"`
	TargetHead float64      `json:"targetHead"` // feet
}

// EngineeringParams feeds the total dynamic head estimate.
type EngineeringParams struct {
	EquipmentDistance float64    `json:"equipmentDistance"` // one-way, feet
	FittingAllowance  float64    `json:"fittingAllowance"`  // equivalent feet
	PipeDiameter      float64    `json:"pipeDiameter"`      // internal, inches
	ElevationChange   float64    `json:"elevationChange"`   // feet
	EquipmentHeadLoss float64    `json:"equipmentHeadLoss"` // filter, heater... feet
	Roughness         float64    `json:"roughness"`         // Hazen-Williams C
	ApplyScope        ApplyScope `json:"applyScope"`
}

// Document is the single persisted record of a project.
type Document struct {
	Version       int               `json:"version"`
	Project       Project           `json:"project"`
	WaterFeatures []WaterFeatureRow `json:"waterFeatures"`
	Spa           SpaConfig         `json:"spa"`
	Pumps         []PumpAssignment  `json:"pumps"`
	Engineering   EngineeringParams `json:"engineering"`
	Curves        CurveLibrary      `json:"curves"`
}

// Pump returns the assignment with id and whether it exists.
func (d Document) Pump(id string) (PumpAssignment, bool) {
	for _, p := range d.Pumps {
		if p.ID == id {
			return p, true
		}
	}
	return PumpAssignment{}, false
}

// HasSystem reports whether any pump assignment is tagged sys.
func (d Document) HasSystem(sys DemandSystem) bool {
	for _, p := range d.Pumps {
		if p.System == sys {
			return true
		}
	}
	return false
}
