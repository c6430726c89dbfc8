package fitshovel

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func newTestQueue(t *testing.T) *ConfirmationQueue {
	t.Helper()
	dir := filepath.Join(t.TempDir(), "queue")
	cq, err := NewConfirmationQueue(dir, nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = cq.Close() })
	return cq
}

func TestConfirmationQueueEnqueueDequeueFIFO(t *testing.T) {
	cq := newTestQueue(t)
	cq.Enqueue([]byte("first"))
	cq.Enqueue([]byte("second"))
	require.Equal(t, 2, cq.Size())

	got, err := cq.Dequeue()
	require.NoError(t, err)
	require.Equal(t, "first", string(got))

	got, err = cq.Dequeue()
	require.NoError(t, err)
	require.Equal(t, "second", string(got))

	require.Equal(t, 0, cq.Size())
}

func TestConfirmationQueueSpillsToDisk(t *testing.T) {
	cq := newTestQueue(t)
	for i := 0; i < maxInMemory+5; i++ {
		cq.Enqueue([]byte{byte(i)})
	}
	require.Equal(t, maxInMemory+5, cq.Size())

	for i := 0; i < maxInMemory+5; i++ {
		got, err := cq.Dequeue()
		require.NoError(t, err)
		require.Equal(t, byte(i), got[0])
	}
	require.Equal(t, 0, cq.Size())
}
