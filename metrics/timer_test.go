package metrics

import (
	"sync"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestHistogram(name string) *prometheus.HistogramVec {
	return prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: name,
			Name:      "latency",
			Buckets:   prometheus.LinearBuckets(0, 50, 100),
		},
		[]string{"key"},
	)
}

func TestEnd(t *testing.T) {
	timer := NewTimer(newTestHistogram("TestEnd"), time.Millisecond, "key")
	assert.Equal(t, time.Duration(0), timer.End("dne"))
	timer.Start("test")
	time.Sleep(time.Millisecond)
	assert.NotEqual(t, time.Duration(0), timer.End("test"))
	assert.Equal(t, time.Duration(0), timer.End("test"))
}

func TestObserve(t *testing.T) {
	m := newTestHistogram("TestObserve")
	timer := NewTimer(m, time.Millisecond, "key")
	timer.Observe(75*time.Millisecond, "width")
	timer.Observe(25*time.Millisecond, "width")

	snapshot, err := SnapshotHistogram(m, "width")
	require.NoError(t, err)
	assert.Equal(t, uint64(2), snapshot.Count)
	assert.InDelta(t, 100, snapshot.Sum, 0.001)
	assert.InDelta(t, 50, snapshot.Mean(), 0.001)
	assert.Equal(t, uint64(1), snapshot.Buckets[50])
	assert.Equal(t, uint64(2), snapshot.Buckets[100])
}

func TestTimerConcurrent(t *testing.T) {
	m := newTestHistogram("TestTimerConcurrent")
	timer := NewTimer(m, time.Microsecond, "key")
	labels := []string{"8", "16", "32", "64", "128"}

	var wg sync.WaitGroup
	for _, label := range labels {
		wg.Add(1)
		go func(label string) {
			defer wg.Done()
			timer.Start(label)
			timer.EndAndObserve(label)
		}(label)
	}
	wg.Wait()

	for _, label := range labels {
		snapshot, err := SnapshotHistogram(m, label)
		require.NoError(t, err)
		assert.Equal(t, uint64(1), snapshot.Count, label)
	}
}
