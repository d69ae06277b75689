package Models

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newCountingWriter(limit int) (*BatchWriter, *[]int) {
	var batches []int
	w := &BatchWriter{limit: limit}
	w.commit = func(ops []BatchOp) error {
		batches = append(batches, len(ops))
		return nil
	}
	return w, &batches
}

func TestBatchWriterFlushesAtLimit(t *testing.T) {
	w, batches := newCountingWriter(MaxBatchOps)

	total := MaxBatchOps*2 + 37
	for i := 0; i < total; i++ {
		require.NoError(t, w.Queue(func(tx *gorm.DB) error { return nil }))
	}
	require.NoError(t, w.Flush())

	assert.Equal(t, []int{MaxBatchOps, MaxBatchOps, 37}, *batches)
	assert.Equal(t, 0, w.Pending())
}

func TestBatchWriterEmptyFlushIsNoop(t *testing.T) {
	w, batches := newCountingWriter(MaxBatchOps)
	require.NoError(t, w.Flush())
	assert.Empty(t, *batches)
}

func TestBatchWriterSequentialChunks(t *testing.T) {
	// Exactly at the limit the buffer must commit once, not twice.
	w, batches := newCountingWriter(5)
	for i := 0; i < 5; i++ {
		require.NoError(t, w.Queue(func(tx *gorm.DB) error { return nil }))
	}
	assert.Equal(t, []int{5}, *batches)
	require.NoError(t, w.Flush())
	assert.Equal(t, []int{5}, *batches)
}

func TestBatchWriterCommitErrorSurfaces(t *testing.T) {
	w := &BatchWriter{limit: 2}
	w.commit = func(ops []BatchOp) error { return errors.New("disk full") }

	require.NoError(t, w.Queue(func(tx *gorm.DB) error { return nil }))
	err := w.Queue(func(tx *gorm.DB) error { return nil })
	assert.EqualError(t, err, "disk full")
}
