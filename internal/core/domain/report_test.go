package domain

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOperationReport_Empty(t *testing.T) {
	var r OperationReport
	assert.True(t, r.OK())
	assert.NoError(t, r.Err())
	assert.Empty(t, r.Steps())
	assert.Equal(t, "ok", r.String())
}

func TestOperationReport_Record(t *testing.T) {
	var r OperationReport
	r.Record(StepResolveFile, nil)
	assert.True(t, r.OK())

	boom := errors.New("boom")
	r.Record(StepIndexUpsert, boom)
	r.Record(StepDeleteBlob, ErrBlobNotFound)

	assert.False(t, r.OK())
	assert.True(t, r.Failed(StepIndexUpsert))
	assert.False(t, r.Failed(StepResolveFile))
	assert.Equal(t, []Step{StepIndexUpsert, StepDeleteBlob}, r.Steps())

	err := r.Err()
	require.Error(t, err)
	assert.ErrorIs(t, err, boom)
	assert.ErrorIs(t, err, ErrBlobNotFound)
	assert.Contains(t, r.String(), "index_upsert")
}
