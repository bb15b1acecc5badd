package spies

import (
	"context"
	"maps"
	"sync"
	"time"

	"github.com/AntonStoeckl/commodity-ledger-go/ledger"
)

// MetricsCollectorSpy captures MetricsCollector calls for testing.
// It implements ledger.ContextualMetricsCollector so callers exercise their context-aware branch.
type MetricsCollectorSpy struct {
	durationRecords []SpyMetricRecord
	counterRecords  []SpyMetricRecord
	valueRecords    []SpyMetricRecord
	mu              sync.Mutex
	recordCalls     bool
}

// SpyMetricRecord represents one recorded metric call.
type SpyMetricRecord struct {
	Metric   string
	Duration time.Duration
	Value    float64
	Labels   map[string]string
}

// NewMetricsCollectorSpy creates a new MetricsCollectorSpy.
// Set recordCalls to true to capture all metrics calls for inspection in tests.
func NewMetricsCollectorSpy(recordCalls bool) *MetricsCollectorSpy {
	return &MetricsCollectorSpy{recordCalls: recordCalls}
}

func (s *MetricsCollectorSpy) RecordDuration(metric string, duration time.Duration, labels map[string]string) {
	s.append(&s.durationRecords, SpyMetricRecord{Metric: metric, Duration: duration, Labels: maps.Clone(labels)})
}

func (s *MetricsCollectorSpy) IncrementCounter(metric string, labels map[string]string) {
	s.append(&s.counterRecords, SpyMetricRecord{Metric: metric, Labels: maps.Clone(labels)})
}

func (s *MetricsCollectorSpy) RecordValue(metric string, value float64, labels map[string]string) {
	s.append(&s.valueRecords, SpyMetricRecord{Metric: metric, Value: value, Labels: maps.Clone(labels)})
}

func (s *MetricsCollectorSpy) RecordDurationContext(_ context.Context, metric string, duration time.Duration, labels map[string]string) {
	s.RecordDuration(metric, duration, labels)
}

func (s *MetricsCollectorSpy) IncrementCounterContext(_ context.Context, metric string, labels map[string]string) {
	s.IncrementCounter(metric, labels)
}

func (s *MetricsCollectorSpy) RecordValueContext(_ context.Context, metric string, value float64, labels map[string]string) {
	s.RecordValue(metric, value, labels)
}

func (s *MetricsCollectorSpy) append(records *[]SpyMetricRecord, record SpyMetricRecord) {
	if !s.recordCalls {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	*records = append(*records, record)
}

// GetCounterRecordCount returns the number of captured counter records.
func (s *MetricsCollectorSpy) GetCounterRecordCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	return len(s.counterRecords)
}

// GetDurationRecordCount returns the number of captured duration records.
func (s *MetricsCollectorSpy) GetDurationRecordCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	return len(s.durationRecords)
}

// MetricRecordMatcher provides a fluent interface for checking metric records.
type MetricRecordMatcher struct {
	candidates []SpyMetricRecord
}

// HasDurationRecordForMetric starts a fluent chain to check duration records.
func (s *MetricsCollectorSpy) HasDurationRecordForMetric(metric string) *MetricRecordMatcher {
	return s.matcher(s.durationRecords, metric)
}

// HasCounterRecordForMetric starts a fluent chain to check counter records.
func (s *MetricsCollectorSpy) HasCounterRecordForMetric(metric string) *MetricRecordMatcher {
	return s.matcher(s.counterRecords, metric)
}

func (s *MetricsCollectorSpy) matcher(records []SpyMetricRecord, metric string) *MetricRecordMatcher {
	s.mu.Lock()
	defer s.mu.Unlock()

	candidates := make([]SpyMetricRecord, 0)
	for _, record := range records {
		if record.Metric == metric {
			candidates = append(candidates, record)
		}
	}

	return &MetricRecordMatcher{candidates: candidates}
}

// WithLabel keeps only records carrying the label with the given value.
func (m *MetricRecordMatcher) WithLabel(key, value string) *MetricRecordMatcher {
	kept := make([]SpyMetricRecord, 0, len(m.candidates))
	for _, record := range m.candidates {
		if record.Labels[key] == value {
			kept = append(kept, record)
		}
	}

	m.candidates = kept

	return m
}

// WithStatus keeps only records with the given status label.
func (m *MetricRecordMatcher) WithStatus(status string) *MetricRecordMatcher {
	return m.WithLabel("status", status)
}

// WithOperation keeps only records with the given operation label.
func (m *MetricRecordMatcher) WithOperation(operation string) *MetricRecordMatcher {
	return m.WithLabel("operation", operation)
}

// Assert returns true if at least one record satisfied the whole chain.
func (m *MetricRecordMatcher) Assert() bool {
	return len(m.candidates) > 0
}

var _ ledger.ContextualMetricsCollector = (*MetricsCollectorSpy)(nil)
