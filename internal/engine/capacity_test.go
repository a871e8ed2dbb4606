package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDetectCapacityChange(t *testing.T) {
	c := DetectCapacityChange(10, 6, 100)
	assert.True(t, c.Warning)
	require.NotNil(t, c.RecalculatedBatchSize)
	assert.Equal(t, 60, *c.RecalculatedBatchSize)
	assert.InDelta(t, 0.6, c.CapacityFactor, 1e-9)

	c = DetectCapacityChange(10, 10, 100)
	assert.False(t, c.Warning)
	assert.Nil(t, c.RecalculatedBatchSize)

	c = DetectCapacityChange(10, 12, 100)
	assert.False(t, c.Warning)

	c = DetectCapacityChange(10, 0, 100)
	assert.False(t, c.Warning, "an empty line proposes nothing")

	c = DetectCapacityChange(10, 1, 5)
	require.NotNil(t, c.RecalculatedBatchSize)
	assert.Equal(t, 1, *c.RecalculatedBatchSize)
}

func TestRemainingQuantity(t *testing.T) {
	assert.Equal(t, 120, RemainingQuantity(200, 80))
	assert.Equal(t, 0, RemainingQuantity(200, 200))
	assert.Equal(t, 0, RemainingQuantity(200, 240))
}

func TestRebalanceVersionName(t *testing.T) {
	assert.Equal(t, "V1-R2", RebalanceVersionName("V1", 2))
}
