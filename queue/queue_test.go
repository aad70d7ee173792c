package queue

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestFIFOOrder(t *testing.T) {
	q := New(-1)
	q.Enqueue(1)
	q.Enqueue(2)
	q.Enqueue(3)

	for _, want := range []int{1, 2, 3} {
		got, ok := q.Dequeue()
		require.True(t, ok)
		require.Equal(t, want, got)
	}
}

func TestNegativeCapacityNeverBlocksEnqueue(t *testing.T) {
	q := New(-1)
	for i := 0; i < 1000; i++ {
		q.Enqueue(i)
	}
	require.Equal(t, 1000, q.Length())
}

func TestEnqueueBlocksOnFullBoundedQueue(t *testing.T) {
	q := New(1)
	q.Enqueue("a")

	done := make(chan struct{})
	go func() {
		q.Enqueue("b")
		close(done)
	}()

	select {
	case <-done:
		t.Fatal("enqueue on a full bounded queue should have blocked")
	case <-time.After(30 * time.Millisecond):
	}

	v, ok := q.Dequeue()
	require.True(t, ok)
	require.Equal(t, "a", v)

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("enqueue never unblocked after a slot freed")
	}
}

func TestDequeueTimeoutExpiresWhenEmpty(t *testing.T) {
	q := New(-1)
	start := time.Now()
	_, ok := q.DequeueTimeout(20 * time.Millisecond)
	require.False(t, ok)
	require.GreaterOrEqual(t, time.Since(start), 20*time.Millisecond)
}

func TestDequeueTimeoutReturnsItemBeforeDeadline(t *testing.T) {
	q := New(-1)
	q.Enqueue("x")
	v, ok := q.DequeueTimeout(time.Second)
	require.True(t, ok)
	require.Equal(t, "x", v)
}

func TestCloseDrainsThenReportsClosed(t *testing.T) {
	q := New(-1)
	q.Enqueue("last")
	q.Close()

	v, ok := q.Dequeue()
	require.True(t, ok)
	require.Equal(t, "last", v)

	_, ok = q.Dequeue()
	require.False(t, ok)
}

func TestCloseWakesBlockedDequeue(t *testing.T) {
	q := New(-1)
	done := make(chan bool, 1)
	go func() {
		_, ok := q.Dequeue()
		done <- ok
	}()

	time.Sleep(30 * time.Millisecond)
	q.Close()

	select {
	case ok := <-done:
		require.False(t, ok)
	case <-time.After(time.Second):
		t.Fatal("close never woke a blocked dequeue")
	}
}
