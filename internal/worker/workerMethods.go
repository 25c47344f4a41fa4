package worker

import (
	"context"
	"sync/atomic"
	"time"

	"github.com/rkampati/carekb/internal/config"
	"github.com/rkampati/carekb/internal/domain/jobModel"
	"github.com/rkampati/carekb/internal/metrics"
)

// executeJob runs one ingestion with a hard per-document deadline. OCR
// on a hostile or huge file must not hold a worker forever.
func executeJob(job jobModel.Job) {
	start := time.Now()
	defer func() {
		metrics.CaptureJobMetrics(string(job.Status), time.Since(start))
	}()
	ctxTrace := context.WithValue(context.Background(), config.TRACE_ID_KEY, job.TraceId)
	ctx, cancel := context.WithTimeout(ctxTrace, config.IngestTimeout)
	defer cancel()

	logger.Debug("Processing job", "jobId", job.Id, "traceId", job.TraceId)

	saveJobState(ctx, job, jobModel.JobStatusRunning)

	job = _ingestService.IngestDocument(ctx, job)

	job.EndTime = time.Now()
	saveJobState(ctx, job, job.Status)
}

func removeWorker(reason string) {
	workerWaitGroup.Done()
	atomic.AddInt64(&currentWorkerCount, -1)
	logger.Info("Removed worker", "reason", reason, "workerCount", currentWorkerCount)
	metrics.DecrementActiveWorkerCount()
}

func saveJobState(ctx context.Context, job jobModel.Job, jobStatus jobModel.JobStatus) {
	job.Status = jobStatus
	if err := _jobService.JobStore.SaveJob(ctx, job); err != nil {
		logger.Error("Failed to update job status", "err", err)
	}
}
