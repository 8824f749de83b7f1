package commands

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pumpsizer/internal/domain"
	"pumpsizer/internal/project"
)

func TestApplyField(t *testing.T) {
	doc := project.Default()

	require.NoError(t, applyField(&doc, "pool.volume", "21600"))
	require.NoError(t, applyField(&doc, "spa.enabled", "true"))
	require.NoError(t, applyField(&doc, "spa.mode", "dedicated"))
	require.NoError(t, applyField(&doc, "eng.scope", "waterFeatures"))
	require.NoError(t, applyField(&doc, "eng.c", "130"))

	assert.Equal(t, 21600.0, doc.Project.PoolVolume)
	assert.True(t, doc.Spa.Enabled)
	assert.Equal(t, domain.SpaDedicated, doc.Spa.Mode)
	assert.Equal(t, domain.ScopeWaterFeatures, doc.Engineering.ApplyScope)
	assert.Equal(t, 130.0, doc.Engineering.Roughness)
}

func TestApplyFieldErrors(t *testing.T) {
	doc := project.Default()
	assert.ErrorContains(t, applyField(&doc, "pool.depth", "5"), "unknown field")
	assert.Error(t, applyField(&doc, "pool.volume", "lots"))
	assert.Error(t, applyField(&doc, "spa.mode", "hot"))
	assert.Equal(t, project.Default(), doc, "failed sets leave the document alone")
}
