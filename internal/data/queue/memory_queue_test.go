package queue

import (
	"context"
	"io"
	"testing"
	"time"

	"objcunused/internal/core/ports"
	"objcunused/internal/data/history"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryQueue_EnqueueDequeue(t *testing.T) {
	q := NewMemoryQueue(2)
	t.Cleanup(func() { _ = q.Close() })

	require.Equal(t, ports.EnqueueAccepted, q.Enqueue(history.Run{MainFile: "a.m"}))
	require.Equal(t, ports.EnqueueAccepted, q.Enqueue(history.Run{MainFile: "b.m"}))
	assert.Equal(t, 2, q.Len())

	batch, err := q.DequeueBatch(context.Background(), 2, time.Millisecond)
	require.NoError(t, err)
	require.Len(t, batch, 2)
	assert.Equal(t, "a.m", batch[0].MainFile)
	assert.Equal(t, "b.m", batch[1].MainFile)
}

func TestMemoryQueue_FullQueueDrops(t *testing.T) {
	q := NewMemoryQueue(1)
	t.Cleanup(func() { _ = q.Close() })

	assert.Equal(t, ports.EnqueueAccepted, q.Enqueue(history.Run{MainFile: "a.m"}))
	assert.Equal(t, ports.EnqueueDropped, q.Enqueue(history.Run{MainFile: "b.m"}))
}

func TestMemoryQueue_EmptyWaitTimesOut(t *testing.T) {
	q := NewMemoryQueue(1)
	t.Cleanup(func() { _ = q.Close() })

	batch, err := q.DequeueBatch(context.Background(), 1, 5*time.Millisecond)
	require.NoError(t, err)
	assert.Empty(t, batch)
}

func TestMemoryQueue_CancelledContext(t *testing.T) {
	q := NewMemoryQueue(1)
	t.Cleanup(func() { _ = q.Close() })

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := q.DequeueBatch(ctx, 1, time.Second)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestMemoryQueue_CloseReturnsEOFWhenDrained(t *testing.T) {
	q := NewMemoryQueue(1)
	require.Equal(t, ports.EnqueueAccepted, q.Enqueue(history.Run{MainFile: "a.m"}))
	require.NoError(t, q.Close())
	assert.Equal(t, ports.EnqueueDropped, q.Enqueue(history.Run{MainFile: "b.m"}))

	batch, err := q.DequeueBatch(context.Background(), 2, 0)
	assert.Len(t, batch, 1)
	assert.ErrorIs(t, err, io.EOF)

	batch, err = q.DequeueBatch(context.Background(), 1, 0)
	assert.ErrorIs(t, err, io.EOF)
	assert.Empty(t, batch)
}
