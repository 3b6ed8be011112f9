package simulator

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"
	"sync/atomic"
	"time"

	"github.com/willfong/bank-ledger/internal/ledger"
)

// OperationType is one kind of card-holder action
type OperationType string

const (
	OpSpend   OperationType = "spend"
	OpRepay   OperationType = "repay"
	OpHistory OperationType = "history"
	OpReport  OperationType = "report"
)

// Operations lists every operation type in display order
var Operations = []OperationType{OpSpend, OpRepay, OpHistory, OpReport}

// Metrics tracks operation outcomes and latency. Declined operations are
// business rule rejections and are counted apart from errors.
type Metrics struct {
	totalOperations atomic.Int64
	totalRejections atomic.Int64
	totalErrors     atomic.Int64

	// Per-operation tracking, fixed at construction
	opCounts  map[OperationType]*atomic.Int64
	opLatency map[OperationType]*LatencyTracker

	rejectMu   sync.Mutex
	rejections map[string]int64

	startTime time.Time
	recentOps *RollingWindow
}

// LatencyTracker keeps the most recent latency samples for percentiles
type LatencyTracker struct {
	mu      sync.Mutex
	samples []time.Duration
	maxSize int
	totalNs int64
	count   int64
}

// RollingWindow tracks counts within a sliding time window
type RollingWindow struct {
	mu       sync.Mutex
	buckets  []windowBucket
	duration time.Duration
	bucketMs int64
}

type windowBucket struct {
	timestamp int64 // Unix milliseconds
	count     int64
}

// NewMetrics creates a metrics tracker
func NewMetrics() *Metrics {
	m := &Metrics{
		opCounts:   make(map[OperationType]*atomic.Int64),
		opLatency:  make(map[OperationType]*LatencyTracker),
		rejections: make(map[string]int64),
		startTime:  time.Now(),
		recentOps:  NewRollingWindow(time.Minute, 100*time.Millisecond),
	}
	for _, op := range Operations {
		m.opCounts[op] = &atomic.Int64{}
		m.opLatency[op] = NewLatencyTracker(10000)
	}
	return m
}

// NewLatencyTracker creates a tracker holding up to maxSize samples
func NewLatencyTracker(maxSize int) *LatencyTracker {
	return &LatencyTracker{
		samples: make([]time.Duration, 0, maxSize),
		maxSize: maxSize,
	}
}

// Record adds a latency sample, dropping the oldest when full
func (lt *LatencyTracker) Record(latency time.Duration) {
	lt.mu.Lock()
	defer lt.mu.Unlock()

	lt.totalNs += latency.Nanoseconds()
	lt.count++

	if len(lt.samples) < lt.maxSize {
		lt.samples = append(lt.samples, latency)
	} else {
		copy(lt.samples, lt.samples[1:])
		lt.samples[len(lt.samples)-1] = latency
	}
}

// Percentile returns the p-th percentile latency
func (lt *LatencyTracker) Percentile(p float64) time.Duration {
	lt.mu.Lock()
	sorted := make([]time.Duration, len(lt.samples))
	copy(sorted, lt.samples)
	lt.mu.Unlock()

	return percentile(sorted, p)
}

// Average returns the average latency
func (lt *LatencyTracker) Average() time.Duration {
	lt.mu.Lock()
	defer lt.mu.Unlock()

	if lt.count == 0 {
		return 0
	}
	return time.Duration(lt.totalNs / lt.count)
}

// percentile sorts samples in place and picks the p-th percentile
func percentile(samples []time.Duration, p float64) time.Duration {
	if len(samples) == 0 {
		return 0
	}
	sort.Slice(samples, func(i, j int) bool { return samples[i] < samples[j] })
	return samples[int(float64(len(samples)-1)*p/100.0)]
}

// NewRollingWindow creates a new rolling window for TPS calculation
func NewRollingWindow(duration time.Duration, bucketSize time.Duration) *RollingWindow {
	numBuckets := int(duration / bucketSize)
	if numBuckets < 10 {
		numBuckets = 10
	}
	return &RollingWindow{
		buckets:  make([]windowBucket, 0, numBuckets),
		duration: duration,
		bucketMs: bucketSize.Milliseconds(),
	}
}

// Add increments the count in the current time bucket
func (rw *RollingWindow) Add(count int64) {
	rw.mu.Lock()
	defer rw.mu.Unlock()

	now := time.Now().UnixMilli()
	bucketTime := (now / rw.bucketMs) * rw.bucketMs

	// Prune old buckets
	cutoff := now - rw.duration.Milliseconds()
	kept := rw.buckets[:0]
	for _, b := range rw.buckets {
		if b.timestamp >= cutoff {
			kept = append(kept, b)
		}
	}
	rw.buckets = kept

	if n := len(rw.buckets); n > 0 && rw.buckets[n-1].timestamp == bucketTime {
		rw.buckets[n-1].count += count
	} else {
		rw.buckets = append(rw.buckets, windowBucket{timestamp: bucketTime, count: count})
	}
}

// Rate returns the rate per second over the window
func (rw *RollingWindow) Rate() float64 {
	rw.mu.Lock()
	defer rw.mu.Unlock()

	cutoff := time.Now().UnixMilli() - rw.duration.Milliseconds()

	var total int64
	for _, b := range rw.buckets {
		if b.timestamp >= cutoff {
			total += b.count
		}
	}
	return float64(total) / rw.duration.Seconds()
}

// Outcome classifies the result of one operation
type Outcome int

const (
	OutcomeOK Outcome = iota
	OutcomeRejected
	OutcomeError
	// OutcomeAborted is an operation cut short by shutdown; it is not counted
	OutcomeAborted
)

// Classify maps an operation error to its outcome
func Classify(err error) Outcome {
	switch {
	case err == nil:
		return OutcomeOK
	case ledger.IsBusinessError(err):
		return OutcomeRejected
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return OutcomeAborted
	}
	return OutcomeError
}

// Record counts one operation and returns its outcome
func (m *Metrics) Record(op OperationType, latency time.Duration, err error) Outcome {
	outcome := Classify(err)
	if outcome == OutcomeAborted {
		return outcome
	}

	m.totalOperations.Add(1)
	m.recentOps.Add(1)
	if counter, ok := m.opCounts[op]; ok {
		counter.Add(1)
	}
	if tracker, ok := m.opLatency[op]; ok {
		tracker.Record(latency)
	}

	switch outcome {
	case OutcomeRejected:
		m.totalRejections.Add(1)
		m.rejectMu.Lock()
		m.rejections[err.Error()]++
		m.rejectMu.Unlock()
	case OutcomeError:
		m.totalErrors.Add(1)
	}
	return outcome
}

// Snapshot is a point-in-time copy of the metrics
type Snapshot struct {
	TotalOperations int64
	Rejections      int64
	Errors          int64

	TPS       float64
	RecentTPS float64 // over the last minute

	AvgLatency time.Duration
	P50Latency time.Duration
	P95Latency time.Duration
	P99Latency time.Duration

	OperationStats   map[OperationType]OperationStat
	RejectionReasons map[string]int64

	Uptime time.Duration
}

// OperationStat holds stats for a single operation type
type OperationStat struct {
	Count      int64
	AvgLatency time.Duration
	P95Latency time.Duration
}

// Snapshot returns current metrics
func (m *Metrics) Snapshot() Snapshot {
	uptime := time.Since(m.startTime)
	elapsed := uptime.Seconds()
	if elapsed < 1 {
		elapsed = 1
	}

	var totalNs, totalCount int64
	var all []time.Duration
	opStats := make(map[OperationType]OperationStat, len(Operations))
	for _, op := range Operations {
		tracker := m.opLatency[op]
		opStats[op] = OperationStat{
			Count:      m.opCounts[op].Load(),
			AvgLatency: tracker.Average(),
			P95Latency: tracker.Percentile(95),
		}

		tracker.mu.Lock()
		all = append(all, tracker.samples...)
		totalNs += tracker.totalNs
		totalCount += tracker.count
		tracker.mu.Unlock()
	}

	var avg time.Duration
	if totalCount > 0 {
		avg = time.Duration(totalNs / totalCount)
	}

	m.rejectMu.Lock()
	reasons := make(map[string]int64, len(m.rejections))
	for reason, n := range m.rejections {
		reasons[reason] = n
	}
	m.rejectMu.Unlock()

	ops := m.totalOperations.Load()
	return Snapshot{
		TotalOperations:  ops,
		Rejections:       m.totalRejections.Load(),
		Errors:           m.totalErrors.Load(),
		TPS:              float64(ops) / elapsed,
		RecentTPS:        m.recentOps.Rate(),
		AvgLatency:       avg,
		P50Latency:       percentile(all, 50),
		P95Latency:       percentile(all, 95),
		P99Latency:       percentile(all, 99),
		OperationStats:   opStats,
		RejectionReasons: reasons,
		Uptime:           uptime,
	}
}

// FormatLine returns a one-line metrics summary
func (s Snapshot) FormatLine() string {
	return fmt.Sprintf("TPS: %.1f (recent: %.1f) | Ops: %d | Declined: %d | Errors: %d | Latency: avg=%s p95=%s p99=%s",
		s.TPS,
		s.RecentTPS,
		s.TotalOperations,
		s.Rejections,
		s.Errors,
		s.AvgLatency.Round(time.Microsecond),
		s.P95Latency.Round(time.Microsecond),
		s.P99Latency.Round(time.Microsecond),
	)
}
