package metrics

import (
	"github.com/pkg/errors"
	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
)

var ErrMetricNotFound = errors.New("metric not found")

// HistogramSnapshot is the state of one histogram series at the time it was read.
type HistogramSnapshot struct {
	Count   uint64
	Sum     float64
	Buckets map[float64]uint64 // cumulative count per upper bound
}

// Mean returns Sum/Count, or 0 for an empty histogram.
func (h HistogramSnapshot) Mean() float64 {
	if h.Count == 0 {
		return 0
	}
	return h.Sum / float64(h.Count)
}

// SnapshotHistogram reads the series of vec selected by labelValues.
func SnapshotHistogram(vec *prometheus.HistogramVec, labelValues ...string) (HistogramSnapshot, error) {
	observer, err := vec.GetMetricWithLabelValues(labelValues...)
	if err != nil {
		return HistogramSnapshot{}, errors.Wrap(err, "failed to select histogram series")
	}
	metric, ok := observer.(prometheus.Metric)
	if !ok {
		return HistogramSnapshot{}, errors.Errorf("%T is not a prometheus.Metric", observer)
	}
	var m dto.Metric
	if err := metric.Write(&m); err != nil {
		return HistogramSnapshot{}, errors.Wrap(err, "failed to read histogram")
	}
	h := m.GetHistogram()
	if h == nil {
		return HistogramSnapshot{}, errors.Wrapf(ErrMetricNotFound, "no histogram in series %v", labelValues)
	}
	snapshot := HistogramSnapshot{
		Count:   h.GetSampleCount(),
		Sum:     h.GetSampleSum(),
		Buckets: make(map[float64]uint64, len(h.GetBucket())),
	}
	for _, b := range h.GetBucket() {
		snapshot.Buckets[b.GetUpperBound()] = b.GetCumulativeCount()
	}
	return snapshot, nil
}

// CounterValue gathers from gatherer and returns the value of the counter
// called name whose labels include all of labels.
func CounterValue(gatherer prometheus.Gatherer, name string, labels map[string]string) (float64, error) {
	families, err := gatherer.Gather()
	if err != nil {
		return 0, errors.Wrap(err, "failed to gather metrics")
	}
	for _, family := range families {
		if family.GetName() != name {
			continue
		}
		var total float64
		found := false
		for _, m := range family.GetMetric() {
			if !hasLabels(m, labels) {
				continue
			}
			found = true
			total += m.GetCounter().GetValue()
		}
		if found {
			return total, nil
		}
	}
	return 0, errors.Wrapf(ErrMetricNotFound, "%s%v", name, labels)
}

func hasLabels(m *dto.Metric, labels map[string]string) bool {
	matched := 0
	for _, pair := range m.GetLabel() {
		if want, ok := labels[pair.GetName()]; ok {
			if want != pair.GetValue() {
				return false
			}
			matched++
		}
	}
	return matched == len(labels)
}
