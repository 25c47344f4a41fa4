package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var HttpRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "http_requests_total",
	Help: "Total number of requests labelled by path and status",
}, []string{"path", "status"})

var countJobsInQueue = promauto.NewGauge(prometheus.GaugeOpts{
	Name: "count_jobs_in_queue",
	Help: "Number of jobs in queue",
})

var dispatcherSignalCount = promauto.NewGauge(prometheus.GaugeOpts{
	Name: "dispatcher_signal_count",
	Help: "How often the dispatcher has signaled to start worker",
})

var activeWorkerCount = promauto.NewGauge(prometheus.GaugeOpts{
	Name: "active_worker_count",
	Help: "Number of active workers",
})

var documentsIngested = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "documents_ingested_total",
	Help: "Documents ingested labelled by outcome",
}, []string{"outcome"})

var ocrPagesTotal = promauto.NewCounter(prometheus.CounterOpts{
	Name: "ocr_pages_total",
	Help: "Pages sent through the OCR fallback",
})

var pageTimeoutsTotal = promauto.NewCounter(prometheus.CounterOpts{
	Name: "page_timeouts_total",
	Help: "Pages abandoned after the per-page extraction timeout",
})

type HttpStatusRecorder struct {
	http.ResponseWriter
	Status int
}

func (r *HttpStatusRecorder) CaptureWriteHeaderMetrics(code int) {
	r.Status = code
	r.ResponseWriter.WriteHeader(code)
}

func IncrementJobsInQueue() {
	countJobsInQueue.Inc()
}

func DecrementJobsInQueue() {
	countJobsInQueue.Dec()
}

func StartDispatcherSignalCount() {
	dispatcherSignalCount.Inc()
}

func IncrementActiveWorkerCount() {
	activeWorkerCount.Inc()
}
func DecrementActiveWorkerCount() {
	activeWorkerCount.Dec()
}

func IncrementDocumentsIngested(outcome string) {
	documentsIngested.WithLabelValues(outcome).Inc()
}

func IncrementOCRPages() {
	ocrPagesTotal.Inc()
}

func IncrementPageTimeouts() {
	pageTimeoutsTotal.Inc()
}

var requestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
	Name:    "ingest_job_duration_seconds",
	Help:    "Total time spent processing one ingestion job.",
	Buckets: []float64{.1, .5, 1, 2, 5, 10, 30, 60, 120},
}, []string{"status"})

var dependencyLatency = promauto.NewHistogramVec(prometheus.HistogramOpts{
	Name:    "stage_latency_seconds",
	Help:    "Latency of pipeline stages and store calls.",
	Buckets: []float64{.05, .1, .25, .5, 1, 2, 5, 10},
}, []string{"stage"})

func CaptureExecutionMetrics(label string, timeElapsed time.Duration) {
	dependencyLatency.WithLabelValues(label).Observe(timeElapsed.Seconds())
}

func CaptureJobMetrics(label string, timeElapsed time.Duration) {
	requestDuration.WithLabelValues(label).Observe(timeElapsed.Seconds())
}
