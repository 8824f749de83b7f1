package curve_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pumpsizer/internal/curve"
	"pumpsizer/internal/domain"
)

func pts(pairs ...float64) []domain.CurvePoint {
	out := make([]domain.CurvePoint, 0, len(pairs)/2)
	for i := 0; i+1 < len(pairs); i += 2 {
		out = append(out, domain.CurvePoint{Flow: pairs[i], Head: pairs[i+1]})
	}
	return out
}

var highSpeed = pts(0, 95, 30, 92, 60, 86, 90, 75, 120, 55, 135, 44)

// TestFlowAt_ExactPoint checks that a head on a vertex returns that vertex's flow.
func TestFlowAt_ExactPoint(t *testing.T) {
	assert.Equal(t, 90.0, curve.FlowAt(highSpeed, 75), "head 75 sits on the (90,75) vertex")
}

// TestFlowAt_AboveMaxHead verifies an unreachable head yields zero flow.
func TestFlowAt_AboveMaxHead(t *testing.T) {
	assert.Equal(t, 0.0, curve.FlowAt(highSpeed, 95.01))
	assert.Equal(t, 0.0, curve.FlowAt(highSpeed, 500))
}

// TestFlowAt_BelowMinHead verifies a head under the curve returns the max-flow point.
func TestFlowAt_BelowMinHead(t *testing.T) {
	assert.Equal(t, 135.0, curve.FlowAt(highSpeed, 10))
	assert.Equal(t, 135.0, curve.FlowAt(highSpeed, 0))
}

func TestFlowAt_Degenerate(t *testing.T) {
	assert.Equal(t, 0.0, curve.FlowAt(nil, 10), "no points")
	assert.Equal(t, 0.0, curve.FlowAt(pts(10, 50), 50), "single point is unusable")
	assert.Equal(t, 0.0, curve.FlowAt(highSpeed, math.NaN()), "NaN head")
	assert.Equal(t, 0.0, curve.FlowAt(highSpeed, math.Inf(1)), "+Inf head")
}

// TestFlowAt_FlatSegment hits the near-zero head delta guard.
func TestFlowAt_FlatSegment(t *testing.T) {
	flat := pts(0, 50, 40, 50, 80, 30)
	assert.Equal(t, 40.0, curve.FlowAt(flat, 50), "flat segment returns its higher-flow endpoint")
}

// TestFlowAt_RisingSegment accepts segments whose head increases with flow.
func TestFlowAt_RisingSegment(t *testing.T) {
	rising := pts(0, 40, 20, 60, 60, 20)
	assert.InDelta(t, 10.0, curve.FlowAt(rising, 50), 1e-9, "first bracketing segment is the rising one")
}

func TestHeadAt_Clamps(t *testing.T) {
	assert.Equal(t, 95.0, curve.HeadAt(highSpeed, -5))
	assert.Equal(t, 44.0, curve.HeadAt(highSpeed, 400))
	assert.InDelta(t, 80.5, curve.HeadAt(highSpeed, 75), 1e-9)
	assert.Equal(t, 0.0, curve.HeadAt(pts(1, 1), 1))
}

// TestRoundTrip checks HeadAt(FlowAt(h)) == h for heads strictly inside the range.
func TestRoundTrip(t *testing.T) {
	lo, hi := curve.HeadRange(highSpeed)
	for h := lo + 0.25; h < hi; h += 0.5 {
		f := curve.FlowAt(highSpeed, h)
		assert.InDelta(t, h, curve.HeadAt(highSpeed, f), 1e-9, "head %.2f", h)
	}
}

func TestNormalize(t *testing.T) {
	raw := pts(60, 86, 0, 95, 30, 90, 30, 92, -1, 10, math.NaN(), 5)
	got := curve.Normalize(raw)
	require.Len(t, got, 3)
	assert.Equal(t, pts(0, 95, 30, 92, 60, 86), got, "sorted, latest duplicate kept, invalid dropped")
}

func TestNormalizeModel_OrdersBySpeed(t *testing.T) {
	m := curve.NormalizeModel(domain.PumpCurveModel{
		ID: "vs",
		Lines: []domain.RpmLine{
			{RPM: 3450, Points: pts(50, 40, 0, 60)},
			{RPM: 1725, Points: pts(0, 15, 30, 10)},
		},
	})
	require.Len(t, m.Lines, 2)
	assert.Equal(t, 1725.0, m.Lines[0].RPM)
	assert.Equal(t, 0.0, m.Lines[1].Points[0].Flow)
}

func TestMaxHead(t *testing.T) {
	m := domain.PumpCurveModel{Lines: []domain.RpmLine{
		{RPM: 1, Points: pts(0, 30, 10, 20)},
		{RPM: 2, Points: pts(0, 95)}, // unusable, ignored
		{RPM: 3, Points: highSpeed},
	}}
	assert.Equal(t, 95.0, curve.MaxHead(m))
	assert.True(t, curve.HasUsableLine(m))
	assert.False(t, curve.HasUsableLine(domain.PumpCurveModel{}))
}

func TestUpsertLine(t *testing.T) {
	m := domain.PumpCurveModel{ID: "vs", Lines: []domain.RpmLine{
		{RPM: 3450, Label: "High", Points: pts(0, 60, 50, 40)},
	}}
	m = curve.UpsertLine(m, domain.RpmLine{RPM: 1725, Label: "Low", Points: pts(0, 15, 30, 10)})
	m = curve.UpsertLine(m, domain.RpmLine{RPM: 3450, Label: "High v2", Points: pts(0, 62, 50, 41)})

	require.Len(t, m.Lines, 2)
	assert.Equal(t, "Low", m.Lines[0].Label)
	assert.Equal(t, "High v2", m.Lines[1].Label)
}
