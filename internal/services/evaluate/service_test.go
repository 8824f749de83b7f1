package evaluate_test

import (
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pumpsizer/internal/domain"
	"pumpsizer/internal/project"
	"pumpsizer/internal/services/estimator"
	"pumpsizer/internal/services/evaluate"
	"pumpsizer/internal/services/health"
	"pumpsizer/internal/services/matcher"
)

type memCurves struct {
	lib domain.CurveLibrary
	err error
}

func (m memCurves) LoadLibrary() (domain.CurveLibrary, error) { return m.lib, m.err }
func (m memCurves) SaveModel(domain.PumpCurveModel) error     { return nil }
func (m memCurves) DeleteModel(string) error                  { return nil }

func quiet() *slog.Logger { return slog.New(slog.NewTextHandler(io.Discard, nil)) }

func model(id string, rpm float64, pairs ...float64) domain.PumpCurveModel {
	l := domain.RpmLine{RPM: rpm}
	for i := 0; i+1 < len(pairs); i += 2 {
		l.Points = append(l.Points, domain.CurvePoint{Flow: pairs[i], Head: pairs[i+1]})
	}
	return domain.PumpCurveModel{ID: id, Lines: []domain.RpmLine{l}}
}

func newService(lib domain.CurveLibrary) *evaluate.Service {
	return evaluate.New(memCurves{lib: lib}, estimator.New(estimator.DefaultOptions(), quiet()), quiet())
}

func projectDoc() domain.Document {
	doc := project.Default()
	doc.Project.PoolVolume = 18000
	doc.WaterFeatures = []domain.WaterFeatureRow{{Quantity: 3, Width: 2, FlowPerUnitWidth: 15}}
	doc.Engineering.EquipmentDistance = 80
	doc.Engineering.FittingAllowance = 20
	doc.Engineering.ElevationChange = 5
	doc.Engineering.EquipmentHeadLoss = 10
	doc.Pumps = []domain.PumpAssignment{
		{ID: "main", ModelID: "lib-pump", Quantity: 1, System: domain.SystemShared, TargetHead: 50},
		{ID: "wf", ModelID: "doc-pump", Quantity: 1, System: domain.SystemWaterFeatures, TargetHead: 30},
	}
	doc.Curves = domain.CurveLibrary{"doc-pump": model("doc-pump", 3450, 0, 60, 150, 20)}
	return doc
}

func TestEvaluate_EndToEnd(t *testing.T) {
	svc := newService(domain.CurveLibrary{"lib-pump": model("lib-pump", 3450, 0, 90, 90, 50, 120, 30)})
	rep, err := svc.Evaluate(project.New(projectDoc()))
	require.NoError(t, err)

	assert.Equal(t, uint64(1), rep.Version)
	assert.Equal(t, 50.0, rep.Demand.PoolTurnover)
	assert.Equal(t, 90.0, rep.Demand.WaterFeatures)
	require.Len(t, rep.Pumps, 2)

	shared := rep.Pumps[0].Result
	assert.Equal(t, 50.0, shared.Required, "dedicated features pump leaves shared at turnover only")
	assert.Equal(t, matcher.VerdictPass, shared.Verdict)
	assert.Equal(t, 90.0, shared.TotalCapacity)

	wf := rep.Pumps[1].Result
	assert.Equal(t, 90.0, wf.Required)
	assert.Equal(t, matcher.VerdictPass, wf.Verdict)
	assert.InDelta(t, 112.5, wf.TotalCapacity, 1e-9, "document curve is used")
	assert.Equal(t, health.StatusPass, rep.Health.System(domain.SystemShared).Status)
	assert.True(t, rep.Estimate.Applicable)
	assert.Equal(t, 140.0, rep.Estimate.FlowBasis)
}

func TestEvaluate_DocumentCurvesOverrideLibrary(t *testing.T) {
	lib := domain.CurveLibrary{"doc-pump": model("doc-pump", 1725, 0, 10, 10, 5)}
	svc := newService(lib)
	got, err := svc.Library(projectDoc())
	require.NoError(t, err)
	assert.Equal(t, 3450.0, got["doc-pump"].Lines[0].RPM)
}

func TestEvaluate_LibraryError(t *testing.T) {
	svc := evaluate.New(memCurves{err: errors.New("boom")}, estimator.New(estimator.DefaultOptions(), quiet()), quiet())
	_, err := svc.Evaluate(project.New(projectDoc()))
	assert.Error(t, err)
}

func TestCapacity(t *testing.T) {
	svc := newService(domain.CurveLibrary{"lib-pump": model("lib-pump", 3450, 0, 90, 90, 50, 120, 30)})
	snap := project.New(projectDoc())

	r, ok, err := svc.Capacity(snap, "main", 30)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, 120.0, r.TotalCapacity)

	_, ok, err = svc.Capacity(snap, "nope", 30)
	require.NoError(t, err)
	assert.False(t, ok)
}
