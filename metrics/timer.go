package metrics

import (
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Timer assumes the metrics is partitioned by one label
type Timer struct {
	lock        sync.Mutex
	startTime   map[string]time.Time
	metrics     *prometheus.HistogramVec
	measureUnit time.Duration
	labelKey    string
}

func NewTimer(metrics *prometheus.HistogramVec, unit time.Duration, labelKey string) *Timer {
	return &Timer{
		startTime:   make(map[string]time.Time),
		measureUnit: unit,
		metrics:     metrics,
		labelKey:    labelKey,
	}
}

func (i *Timer) Start(labelVal string) {
	i.lock.Lock()
	defer i.lock.Unlock()
	i.startTime[labelVal] = time.Now()
}

// End returns the time since Start was called for labelVal, or 0 if it never was.
func (i *Timer) End(labelVal string) time.Duration {
	i.lock.Lock()
	start, ok := i.startTime[labelVal]
	delete(i.startTime, labelVal)
	i.lock.Unlock()
	if ok {
		return Latency(start, time.Now())
	}
	return 0
}

func (i *Timer) Observe(measurement time.Duration, labelVal string) {
	metricsLabels := prometheus.Labels{i.labelKey: labelVal}
	i.metrics.With(metricsLabels).Observe(float64(measurement) / float64(i.measureUnit))
}

func (i *Timer) EndAndObserve(labelVal string) {
	i.Observe(i.End(labelVal), labelVal)
}

func Latency(startTime, endTime time.Time) time.Duration {
	return endTime.Sub(startTime)
}
