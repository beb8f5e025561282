package local

import (
	"context"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEmbed_Deterministic(t *testing.T) {
	service := NewEmbeddingService()
	ctx := context.Background()

	first, err := service.Embed(ctx, "customs clearance delayed")
	require.NoError(t, err)
	second, err := service.Embed(ctx, "customs clearance delayed")
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestEmbed_UnitNorm(t *testing.T) {
	service := NewEmbeddingService()

	vec, err := service.Embed(context.Background(), "freight invoice reconciliation")
	require.NoError(t, err)

	var norm float64
	for _, v := range vec {
		norm += float64(v) * float64(v)
	}
	assert.InDelta(t, 1.0, math.Sqrt(norm), 1e-6)
}

func TestEmbed_EmptyTextIsZeroVector(t *testing.T) {
	service := NewEmbeddingService()

	vec, err := service.Embed(context.Background(), "")
	require.NoError(t, err)

	require.Len(t, vec, Dimensions)
	for _, v := range vec {
		assert.Zero(t, v)
	}
}

func TestEmbed_DistinctTextsDiffer(t *testing.T) {
	service := NewEmbeddingService()
	ctx := context.Background()

	a, err := service.Embed(ctx, "aaaa")
	require.NoError(t, err)
	b, err := service.Embed(ctx, "bbbb")
	require.NoError(t, err)

	assert.NotEqual(t, a, b)
}

func TestEmbedBatch_PreservesOrder(t *testing.T) {
	service := NewEmbeddingService()
	ctx := context.Background()

	batch, err := service.EmbedBatch(ctx, []string{"first", "second"})
	require.NoError(t, err)
	require.Len(t, batch, 2)

	first, err := service.Embed(ctx, "first")
	require.NoError(t, err)
	assert.Equal(t, first, batch[0])
}

func TestEmbedBatch_Empty(t *testing.T) {
	service := NewEmbeddingService()

	batch, err := service.EmbedBatch(context.Background(), nil)

	require.NoError(t, err)
	assert.Nil(t, batch)
}

func TestServiceMetadata(t *testing.T) {
	service := NewEmbeddingService()

	assert.Equal(t, Dimensions, service.Dimensions())
	assert.Equal(t, ModelName, service.ModelName())
	assert.NoError(t, service.Ping(context.Background()))
	assert.NoError(t, service.Close())
}
