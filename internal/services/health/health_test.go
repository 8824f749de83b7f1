package health_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pumpsizer/internal/domain"
	"pumpsizer/internal/services/demand"
	"pumpsizer/internal/services/health"
	"pumpsizer/internal/services/matcher"
)

func summary(pool, features, spa float64, spaShared bool, dedicated bool) demand.Summary {
	return demand.Summary{
		PoolTurnover:      pool,
		WaterFeatures:     features,
		PoolRequired:      pool + features,
		SpaRequired:       spa,
		SpaEnabled:        spa > 0,
		SpaThroughShared:  spa > 0 && spaShared,
		DedicatedFeatures: dedicated,
	}
}

func pump(id string, sys domain.DemandSystem) domain.PumpAssignment {
	return domain.PumpAssignment{ID: id, System: sys, Quantity: 1}
}

func ok(capacity float64) matcher.Result {
	return matcher.Result{Verdict: matcher.VerdictPass, TotalCapacity: capacity}
}

func TestAggregate_SumsCapacity(t *testing.T) {
	pumps := []domain.PumpAssignment{pump("a", domain.SystemShared), pump("b", domain.SystemShared)}
	results := []matcher.Result{ok(40), {Verdict: matcher.VerdictFail, TotalCapacity: 30}}

	s := health.Aggregate(pumps, results, summary(50, 0, 0, false, false))
	shared := s.System(domain.SystemShared)

	assert.Equal(t, 2, shared.Assignments)
	assert.Equal(t, 70.0, shared.Capacity, "failing pumps still contribute capacity")
	assert.Equal(t, health.StatusPass, shared.Status)
	assert.Equal(t, health.StatusPass, s.Overall)
	assert.Equal(t, health.StatusNeutral, s.System(domain.SystemSpa).Status)
	assert.Equal(t, health.StatusNeutral, s.System(domain.SystemWaterFeatures).Status)
	assert.Equal(t, "shared", s.System(domain.SystemPool).CoveredBy)
}

// TestAggregate_HardFail makes a head-above-max pump contribute nothing and fail the group.
func TestAggregate_HardFail(t *testing.T) {
	pumps := []domain.PumpAssignment{pump("a", domain.SystemShared), pump("b", domain.SystemShared)}
	results := []matcher.Result{ok(200), {Verdict: matcher.VerdictFail, TotalCapacity: 0, HeadExceedsMax: true}}

	s := health.Aggregate(pumps, results, summary(50, 0, 0, false, false))
	shared := s.System(domain.SystemShared)
	assert.True(t, shared.HardFail)
	assert.Equal(t, 200.0, shared.Capacity)
	assert.Equal(t, health.StatusFail, shared.Status)
	assert.Equal(t, health.StatusFail, s.Overall)
}

func TestAggregate_ZeroAssignments(t *testing.T) {
	s := health.Aggregate(nil, nil, summary(50, 0, 0, false, false))
	assert.Equal(t, health.StatusFail, s.System(domain.SystemShared).Status)
	assert.Equal(t, health.StatusFail, s.System(domain.SystemPool).Status)
	assert.Equal(t, health.StatusFail, s.Overall)

	s = health.Aggregate(nil, nil, demand.Summary{})
	for _, h := range s.Systems {
		assert.Equal(t, health.StatusNeutral, h.Status, h.System.String())
	}
	assert.Equal(t, health.StatusNeutral, s.Overall)
}

func TestAggregate_DedicatedPumps(t *testing.T) {
	pumps := []domain.PumpAssignment{
		pump("pool", domain.SystemPool),
		pump("wf", domain.SystemWaterFeatures),
		pump("spa", domain.SystemSpa),
	}
	results := []matcher.Result{ok(55), ok(60), ok(100)}

	s := health.Aggregate(pumps, results, summary(50, 90, 80, false, true))
	require.Len(t, s.Systems, 4)
	assert.Equal(t, health.StatusPass, s.System(domain.SystemPool).Status)
	assert.Equal(t, health.StatusFail, s.System(domain.SystemWaterFeatures).Status, "60 < 90")
	assert.Equal(t, health.StatusPass, s.System(domain.SystemSpa).Status)
	shared := s.System(domain.SystemShared)
	assert.Equal(t, health.StatusNeutral, shared.Status)
	assert.Equal(t, "pool", shared.CoveredBy)
	assert.Equal(t, health.StatusFail, s.Overall)
}

func TestAggregate_SpaCoveredOnlyWhenShared(t *testing.T) {
	pumps := []domain.PumpAssignment{pump("s", domain.SystemShared)}
	results := []matcher.Result{ok(100)}

	s := health.Aggregate(pumps, results, summary(50, 0, 80, true, false))
	assert.Equal(t, health.StatusNeutral, s.System(domain.SystemSpa).Status)

	s = health.Aggregate(pumps, results, summary(50, 0, 80, false, false))
	assert.Equal(t, health.StatusFail, s.System(domain.SystemSpa).Status, "dedicated spa needs its own pump")
}
