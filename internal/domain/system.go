package domain

import "fmt"

// DemandSystem tags the hydraulic system a pump assignment serves.
type DemandSystem int

const (
	SystemUnset         DemandSystem = iota // missing from the document
	SystemPool                              // Pool turnover only
	SystemWaterFeatures                     // Dedicated water-feature pumps
	SystemSpa                               // Dedicated spa pumps
	SystemShared                            // Combined pool plumbing
)

// Systems lists every valid demand system in reporting order.
var Systems = []DemandSystem{SystemPool, SystemWaterFeatures, SystemSpa, SystemShared}

// String returns the document name of the system.
func (s DemandSystem) String() string {
	switch s {
	case SystemPool:
		return "pool"
	case SystemWaterFeatures:
		return "waterFeatures"
	case SystemSpa:
		return "spa"
	case SystemShared:
		return "shared"
	case SystemUnset:
		return ""
	default:
		return "unknown"
	}
}

// Valid reports whether s is one of Systems.
func (s DemandSystem) Valid() bool { return s >= SystemPool && s <= SystemShared }

// ParseDemandSystem maps a document name back to its tag.
func ParseDemandSystem(s string) (DemandSystem, error) {
	for _, sys := range Systems {
		if sys.String() == s {
			return sys, nil
		}
	}
	return 0, fmt.Errorf("unknown demand system %q", s)
}

func (s DemandSystem) MarshalText() ([]byte, error) { return []byte(s.String()), nil }

// UnmarshalText accepts an empty name as SystemUnset so that Validate can
// report the assignment instead of the decoder.
func (s *DemandSystem) UnmarshalText(b []byte) error {
	if len(b) == 0 {
		*s = SystemUnset
		return nil
	}
	v, err := ParseDemandSystem(string(b))
	if err != nil {
		return err
	}
	*s = v
	return nil
}

// ApplyScope selects which demand flow feeds the head estimator and which
// pump assignments receive the derived head.
type ApplyScope int

const (
	ScopeAll ApplyScope = iota
	ScopeShared
	ScopePool
	ScopeWaterFeatures
	ScopeSpa
)

var scopeNames = map[ApplyScope]string{
	ScopeAll:           "all",
	ScopeShared:        "shared",
	ScopePool:          "pool",
	ScopeWaterFeatures: "waterFeatures",
	ScopeSpa:           "spa",
}

func (a ApplyScope) String() string {
	if n, ok := scopeNames[a]; ok {
		return n
	}
	return "unknown"
}

// ParseApplyScope maps a document name back to its scope.
func ParseApplyScope(s string) (ApplyScope, error) {
	for k, n := range scopeNames {
		if n == s {
			return k, nil
		}
	}
	return 0, fmt.Errorf("unknown apply scope %q", s)
}

// System reports the demand system a single-system scope stands for.
// ok is false for ScopeAll.
func (a ApplyScope) System() (DemandSystem, bool) {
	switch a {
	case ScopeShared:
		return SystemShared, true
	case ScopePool:
		return SystemPool, true
	case ScopeWaterFeatures:
		return SystemWaterFeatures, true
	case ScopeSpa:
		return SystemSpa, true
	default:
		return 0, false
	}
}

// Matches reports whether an assignment tagged sys falls inside the scope.
func (a ApplyScope) Matches(sys DemandSystem) bool {
	if a == ScopeAll {
		return true
	}
	s, ok := a.System()
	return ok && s == sys
}

func (a ApplyScope) MarshalText() ([]byte, error) { return []byte(a.String()), nil }

func (a *ApplyScope) UnmarshalText(b []byte) error {
	v, err := ParseApplyScope(string(b))
	if err != nil {
		return err
	}
	*a = v
	return nil
}

// SpaMode says how the spa is plumbed.
type SpaMode int

const (
	SpaShared    SpaMode = iota // Spa flow is routed through the shared pump
	SpaDedicated                // Spa has its own pump(s)
)

func (m SpaMode) String() string {
	if m == SpaDedicated {
		return "dedicated"
	}
	return "shared"
}

// ParseSpaMode maps "shared" or "dedicated" to a SpaMode.
func ParseSpaMode(s string) (SpaMode, error) {
	switch s {
	case "shared":
		return SpaShared, nil
	case "dedicated":
		return SpaDedicated, nil
	}
	return 0, fmt.Errorf("unknown spa mode %q", s)
}

func (m SpaMode) MarshalText() ([]byte, error) { return []byte(m.String()), nil }

func (m *SpaMode) UnmarshalText(b []byte) error {
	v, err := ParseSpaMode(string(b))
	if err != nil {
		return err
	}
	*m = v
	return nil
}
