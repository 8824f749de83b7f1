package digest_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pumpsizer/internal/digest"
)

func TestFingerprint(t *testing.T) {
	a := digest.Fingerprint([]byte("pool"))
	assert.Len(t, a, 20)
	assert.Equal(t, a, digest.Fingerprint([]byte("pool")))
	assert.NotEqual(t, a, digest.Fingerprint([]byte("spa")))
}

func TestJSON(t *testing.T) {
	a, err := digest.JSON(map[string]float64{"flow": 50})
	require.NoError(t, err)
	b, err := digest.JSON(map[string]float64{"flow": 51})
	require.NoError(t, err)
	assert.NotEqual(t, a, b)

	_, err = digest.JSON(math.NaN())
	assert.Error(t, err, "NaN has no JSON encoding")
}

func TestSignature(t *testing.T) {
	assert.Equal(t, digest.Signature("flow-high", 500), digest.Signature("flow-high", 500))
	assert.NotEqual(t, digest.Signature("flow-high", 500), digest.Signature("flow-high", 501))
	assert.NotEqual(t, digest.Signature("flow-high", 500), digest.Signature("head-high", 500))
	assert.Equal(t, digest.Signature("x", math.NaN()), digest.Signature("x", math.Float64frombits(0x7ff8000000000001)))
}
