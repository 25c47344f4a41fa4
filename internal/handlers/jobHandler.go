package handlers

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/rkampati/carekb/internal/config"
	"github.com/rkampati/carekb/internal/domain/docModel"
	"github.com/rkampati/carekb/internal/domain/jobModel"
	"github.com/rkampati/carekb/internal/job"
	"github.com/rkampati/carekb/internal/metrics"
	"github.com/rkampati/carekb/internal/search"
	"github.com/rkampati/carekb/pkg/logger_i"
)

var (
	handlerInstance *JobHandler //private singleton
	once            sync.Once
	logJH           *logger_i.Logger
)

type JobHandler struct {
	service       *job.Service
	searchService search.Service
	documentStore docModel.DocumentStore
}

func InitJobHandler(jobService *job.Service, searchService search.Service, documentStore docModel.DocumentStore) {
	once.Do(func() {
		handlerInstance = &JobHandler{
			service:       jobService,
			searchService: searchService,
			documentStore: documentStore,
		}

		logJH = logger_i.NewLogger("JobHandler")
		logRH = logger_i.NewLogger("RequestHandler")
		logJH.Info("Starting job handler")
	})

}

func CreateNewJob(newJob newJobData) {
	logJH.With("traceId", newJob.traceId, "job id", newJob.id)
	logJH.Info("To create new job")
	handlerInstance.pushToJobChannel(newJob)
}

func GetJobStatus(id string, traceId string) (result jobModel.Job, isFound bool) {
	ctxC := context.WithValue(context.Background(), config.TRACE_ID_KEY, traceId)
	if handlerInstance != nil {
		return handlerInstance.service.JobStore.GetJob(ctxC, id)
	}
	return result, false
}

// private methods
func (h *JobHandler) pushToJobChannel(newJob newJobData) {

	_job := jobModel.Job{}
	_job.Id = newJob.id
	_job.CreatedTime = time.Now()
	_job.TraceId = newJob.traceId
	_job.Status = jobModel.JobStatusQueued
	_job.CurrentStep = jobModel.IngestInit
	_job.JobPayload.DocumentName = newJob.documentName
	_job.JobPayload.IngestFileName = newJob.fileName
	_job.JobPayload.IngestPath = newJob.filePath
	_job.JobPayload.Category = newJob.category
	_job.JobPayload.SourceAuthority = newJob.sourceAuthority

	//metrics
	metrics.IncrementJobsInQueue()

	h.service.JobChannel <- _job //this is a blocking send to prevent the system from being overwhelmed
	logJH.Info("Created new job")

	//ingestion jobs are slow - extraction can fall back to per page OCR
	//so every queued document signals the dispatcher for an extra worker
	//idle workers retire on their own, so the pool shrinks back afterwards

	accurateCount := atomic.AddInt64(&h.service.RequestCount, 1) //after sending a request increment counter
	metrics.StartDispatcherSignalCount()                         //metrics
	logJH.Debug("Request count ", accurateCount)
	h.service.DispatcherChannel <- true
}
