package metrics

import (
	"bytes"
	"fmt"
	"net/http"
	"strconv"
	"sync"
	"sync/atomic"
	"time"

	"github.com/gin-gonic/gin"
)

var (
	matchRunStartedTotal   atomic.Uint64
	matchRunCompletedTotal atomic.Uint64
	matchRunFailedTotal    atomic.Uint64
	matchRunFallbackTotal  atomic.Uint64

	queueSentTotal                atomic.Uint64
	queueReceivedTotal            atomic.Uint64
	queueJobsCompletedTotal       atomic.Uint64
	queueJobsFailedTotal          atomic.Uint64
	queueJobsDeletedUnrecoverable atomic.Uint64

	matchRunDuration = newHistogram([]float64{100, 250, 500, 1000, 2000, 5000, 10000, 30000, 60000})
)

// IncMatchRunStarted increments the started counter.
func IncMatchRunStarted() {
	matchRunStartedTotal.Add(1)
}

// IncMatchRunCompleted increments the completed counter.
func IncMatchRunCompleted() {
	matchRunCompletedTotal.Add(1)
}

// IncMatchRunFailed increments the failed counter.
func IncMatchRunFailed() {
	matchRunFailedTotal.Add(1)
}

// IncMatchRunFallback counts runs that completed without usable AI output.
func IncMatchRunFallback() {
	matchRunFallbackTotal.Add(1)
}

// IncQueueSent counts messages published to the job queue.
func IncQueueSent() {
	queueSentTotal.Add(1)
}

// IncQueueReceived counts messages consumed from the job queue.
func IncQueueReceived() {
	queueReceivedTotal.Add(1)
}

// IncQueueJobCompleted counts worker jobs that finished and were deleted.
func IncQueueJobCompleted() {
	queueJobsCompletedTotal.Add(1)
}

// IncQueueJobFailed counts worker jobs that errored and were left for redelivery.
func IncQueueJobFailed() {
	queueJobsFailedTotal.Add(1)
}

// IncQueueJobDeletedUnrecoverable counts malformed messages dropped without processing.
func IncQueueJobDeletedUnrecoverable() {
	queueJobsDeletedUnrecoverable.Add(1)
}

// ObserveMatchRunDurationMs records a match run duration in milliseconds.
func ObserveMatchRunDurationMs(value float64) {
	if value < 0 {
		value = 0
	}
	matchRunDuration.Observe(value)
}

// Handler exposes metrics in Prometheus text format.
func Handler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("Content-Type", "text/plain; version=0.0.4")
		c.String(http.StatusOK, Render())
	}
}

// Render renders metrics in Prometheus text format.
func Render() string {
	var buf bytes.Buffer
	writeCounter(&buf, "match_run_started_total", "Total match runs started", matchRunStartedTotal.Load())
	writeCounter(&buf, "match_run_completed_total", "Total match runs completed", matchRunCompletedTotal.Load())
	writeCounter(&buf, "match_run_failed_total", "Total match runs failed", matchRunFailedTotal.Load())
	writeCounter(&buf, "match_run_fallback_total", "Total match runs completed via deterministic fallback", matchRunFallbackTotal.Load())
	writeCounter(&buf, "queue_messages_sent_total", "Total queue messages published", queueSentTotal.Load())
	writeCounter(&buf, "queue_messages_received_total", "Total queue messages consumed", queueReceivedTotal.Load())
	writeCounter(&buf, "queue_jobs_completed_total", "Total worker jobs completed", queueJobsCompletedTotal.Load())
	writeCounter(&buf, "queue_jobs_failed_total", "Total worker jobs failed", queueJobsFailedTotal.Load())
	writeCounter(&buf, "queue_jobs_deleted_unrecoverable_total", "Total malformed messages dropped", queueJobsDeletedUnrecoverable.Load())
	writeHistogram(&buf, "match_run_duration_ms", "Match run duration in milliseconds", matchRunDuration.Snapshot())
	return buf.String()
}

type histogram struct {
	mu      sync.Mutex
	buckets []float64
	counts  []uint64
	sum     float64
	count   uint64
}

type histogramSnapshot struct {
	buckets []float64
	counts  []uint64
	sum     float64
	count   uint64
}

func newHistogram(buckets []float64) *histogram {
	return &histogram{
		buckets: buckets,
		counts:  make([]uint64, len(buckets)),
	}
}

func (h *histogram) Observe(value float64) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.count++
	h.sum += value
	for i, bound := range h.buckets {
		if value <= bound {
			h.counts[i]++
		}
	}
}

func (h *histogram) Snapshot() histogramSnapshot {
	h.mu.Lock()
	defer h.mu.Unlock()
	out := histogramSnapshot{
		buckets: append([]float64(nil), h.buckets...),
		counts:  append([]uint64(nil), h.counts...),
		sum:     h.sum,
		count:   h.count,
	}
	return out
}

func writeCounter(buf *bytes.Buffer, name, help string, value uint64) {
	fmt.Fprintf(buf, "# HELP %s %s\n", name, help)
	fmt.Fprintf(buf, "# TYPE %s counter\n", name)
	fmt.Fprintf(buf, "%s %d\n", name, value)
}

func writeHistogram(buf *bytes.Buffer, name, help string, snap histogramSnapshot) {
	fmt.Fprintf(buf, "# HELP %s %s\n", name, help)
	fmt.Fprintf(buf, "# TYPE %s histogram\n", name)
	var cumulative uint64
	for i, bound := range snap.buckets {
		cumulative += snap.counts[i]
		fmt.Fprintf(buf, "%s_bucket{le=\"%s\"} %d\n", name, formatFloat(bound), cumulative)
	}
	fmt.Fprintf(buf, "%s_bucket{le=\"+Inf\"} %d\n", name, snap.count)
	fmt.Fprintf(buf, "%s_sum %s\n", name, formatFloat(snap.sum))
	fmt.Fprintf(buf, "%s_count %d\n", name, snap.count)
}

func formatFloat(value float64) string {
	if value == float64(int64(value)) {
		return strconv.FormatInt(int64(value), 10)
	}
	return strconv.FormatFloat(value, 'f', -1, 64)
}

// NowMillis returns current time in milliseconds, useful for callers without time utilities.
func NowMillis() float64 {
	return float64(time.Now().UnixNano()) / float64(time.Millisecond)
}
