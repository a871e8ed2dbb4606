package repository

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func TestIsUUID(t *testing.T) {
	assert.True(t, isUUID(uuid.NewString()))
	for _, id := range []string{"", "batch-1", "123", "0000-0000"} {
		assert.False(t, isUUID(id), id)
	}
	assert.Equal(t, []string{"6f1c1a44-5c4f-4b7e-9d77-2f1a3c9e0b11"}, uuidsOnly([]string{"x", "6f1c1a44-5c4f-4b7e-9d77-2f1a3c9e0b11"}))
}

// malformed ids never reach the database, so no connection is needed here
func TestLookups_MalformedIDSkipsQuery(t *testing.T) {
	repo := NewRepository(nil)
	ctx := context.Background()

	_, err := repo.Batch.GetForUpdate(ctx, "batch-1")
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
	_, err = repo.Batch.GetByID(ctx, "batch-1")
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
	_, err = repo.Planning.GetByID(ctx, "session-1")
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
	_, err = repo.ProductionOrder.GetByID(ctx, "order-1")
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
	_, err = repo.SequenceVersion.GetByID(ctx, "ver-1")
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
	_, err = repo.Operator.GetByID(ctx, "opr-1")
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
	assert.ErrorIs(t, repo.Operator.UpdateStatus(ctx, "opr-1", true), gorm.ErrRecordNotFound)

	ops, err := repo.Operator.ListByIDs(ctx, []string{"opr-1", "opr-2"})
	require.NoError(t, err)
	assert.Empty(t, ops)
	sessions, err := repo.Planning.ListByOrder(ctx, "order-1")
	require.NoError(t, err)
	assert.Empty(t, sessions)
}
