package rank

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestComputeQuartiles(t *testing.T) {
	q, ok := ComputeQuartiles([]float64{4, 1, 3, 2})
	require.True(t, ok)
	assert.InDelta(t, 1.75, q.Q1, 1e-9)
	assert.InDelta(t, 2.5, q.Median, 1e-9)
	assert.InDelta(t, 3.25, q.Q3, 1e-9)
}

func TestComputeQuartiles_OddCount(t *testing.T) {
	q, ok := ComputeQuartiles([]float64{10, 20, 30, 40, 50})
	require.True(t, ok)
	assert.InDelta(t, 20, q.Q1, 1e-9)
	assert.InDelta(t, 30, q.Median, 1e-9)
	assert.InDelta(t, 40, q.Q3, 1e-9)
}

func TestComputeQuartiles_Degenerate(t *testing.T) {
	_, ok := ComputeQuartiles(nil)
	assert.False(t, ok)

	q, ok := ComputeQuartiles([]float64{7})
	require.True(t, ok)
	assert.Equal(t, 7.0, q.Q1)
	assert.Equal(t, 7.0, q.Median)
	assert.Equal(t, 7.0, q.Q3)
}
