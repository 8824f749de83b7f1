package app_test

import (
	"errors"
	"log/slog"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pumpsizer/internal/app"
	"pumpsizer/internal/domain"
	"pumpsizer/internal/services/estimator"
	"pumpsizer/internal/store"
)

func newApp(t *testing.T) (*app.App, app.Config) {
	t.Helper()
	cfg, err := app.Config{Home: t.TempDir()}.WithDefaults()
	require.NoError(t, err)
	w, err := app.NewWire(cfg, slog.New(slog.DiscardHandler))
	require.NoError(t, err)
	t.Cleanup(func() { _ = w.Close() })
	a, err := app.New(w)
	require.NoError(t, err)
	return a, cfg
}

func TestConfigDefaults(t *testing.T) {
	home := t.TempDir()
	cfg, err := app.Config{Home: home}.WithDefaults()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(home, "project.json"), cfg.ProjectPath)
	assert.Equal(t, filepath.Join(home, "curves.db"), cfg.CurveDB)
	assert.Equal(t, ":8080", cfg.Listen)

	lvl, err := cfg.Level()
	require.NoError(t, err)
	assert.Equal(t, slog.LevelInfo, lvl)

	_, err = app.Config{LogLevel: "loud"}.Level()
	assert.Error(t, err)
}

func TestUpdatePersists(t *testing.T) {
	a, cfg := newApp(t)
	v0 := a.Snapshot().Version

	snap, err := a.Update(func(doc *domain.Document) { doc.Project.PoolVolume = 21600 })
	require.NoError(t, err)
	assert.Equal(t, v0+1, snap.Version)

	doc, err := store.NewDocumentFileStore(cfg.ProjectPath).LoadDocument()
	require.NoError(t, err)
	assert.Equal(t, 21600.0, doc.Project.PoolVolume)

	rep, err := a.Report()
	require.NoError(t, err)
	assert.InDelta(t, 60.0, rep.Demand.PoolTurnover, 1e-9)
}

func TestChangeErrorSavesNothing(t *testing.T) {
	a, cfg := newApp(t)
	_, err := a.Update(func(doc *domain.Document) { doc.Project.PoolVolume = 9000 })
	require.NoError(t, err)
	before := a.Snapshot()

	_, err = a.Change(func(doc *domain.Document) error {
		doc.Project.PoolVolume = 1
		return errors.New("rejected")
	})
	assert.EqualError(t, err, "rejected")
	assert.Equal(t, before, a.Snapshot())

	doc, err := store.NewDocumentFileStore(cfg.ProjectPath).LoadDocument()
	require.NoError(t, err)
	assert.Equal(t, 9000.0, doc.Project.PoolVolume)
}

func TestApplyEstimate(t *testing.T) {
	a, cfg := newApp(t)
	_, err := a.Update(func(doc *domain.Document) {
		doc.Project.PoolVolume = 21600
		doc.Pumps = []domain.PumpAssignment{{ID: "p1", ModelID: "m", Quantity: 1, System: domain.SystemShared}}
		doc.Engineering.EquipmentDistance = 50
		doc.Engineering.FittingAllowance = 20
		doc.Engineering.EquipmentHeadLoss = 15
	})
	require.NoError(t, err)

	est, n, err := a.ApplyEstimate()
	require.NoError(t, err)
	assert.Equal(t, 1, n)
	assert.Equal(t, est.Rounded(), a.Snapshot().Doc.Pumps[0].TargetHead)

	fp, err := a.Fingerprint()
	require.NoError(t, err)
	assert.Len(t, fp, 20)

	// A tripped guard leaves both memory and disk untouched.
	_, err = a.Update(func(doc *domain.Document) { doc.Project.PoolVolume = 500 * 60 * 6 })
	require.NoError(t, err)
	before := a.Snapshot()
	_, _, err = a.ApplyEstimate()
	assert.ErrorIs(t, err, estimator.ErrNotApplicable)
	assert.Equal(t, before, a.Snapshot())

	doc, err := store.NewDocumentFileStore(cfg.ProjectPath).LoadDocument()
	require.NoError(t, err)
	assert.Equal(t, est.Rounded(), doc.Pumps[0].TargetHead)
}

func TestImportKeepsSnapshotOnError(t *testing.T) {
	a, _ := newApp(t)
	before := a.Snapshot()
	_, err := a.Import(strings.NewReader(`{"pumps":[{"id":""}]}`))
	assert.Error(t, err)
	assert.Equal(t, before, a.Snapshot())

	snap, err := a.Import(strings.NewReader(`{"project":{"name":"Imported","poolVolume":10000,"turnoverHours":8}}`))
	require.NoError(t, err)
	assert.Equal(t, "Imported", snap.Doc.Project.Name)
	assert.Greater(t, snap.Version, before.Version)
}
