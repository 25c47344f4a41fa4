package ingest

import (
	"context"
	"errors"
	"net/http"
	"os"
	"time"

	"github.com/rkampati/carekb/internal/adapter/utils"
	"github.com/rkampati/carekb/internal/config"
	"github.com/rkampati/carekb/internal/data/store"
	"github.com/rkampati/carekb/internal/domain/docModel"
	"github.com/rkampati/carekb/internal/domain/jobModel"
	"github.com/rkampati/carekb/internal/extract"
	"github.com/rkampati/carekb/internal/metrics"
	"github.com/rkampati/carekb/pkg/logger_i"
)

// userFacingFailure is what the upload collaborator shows the clinician.
// Internals go to the log, never to the patient-facing surface.
const userFacingFailure = "could not process this document, please retry or contact support"

// Service is the public ingestion contract - the worker only sees this,
// not the extractor or the store.
type Service interface {
	IngestDocument(ctx context.Context, job jobModel.Job) jobModel.Job
}

type service struct {
	extractor extract.Extractor
	docStore  docModel.DocumentStore
	logger    *logger_i.Logger
}

func NewService(extractor extract.Extractor, docStore docModel.DocumentStore) Service {
	return &service{
		extractor: extractor,
		docStore:  docStore,
		logger:    logger_i.NewLogger("Ingest Service"),
	}
}

// IngestDocument runs the full pipeline for one upload: extract, chunk,
// persist. Any ExtractionError aborts with nothing persisted; per-page
// warnings ride along on the job for operator visibility.
func (s *service) IngestDocument(ctx context.Context, job jobModel.Job) jobModel.Job {
	start := time.Now()
	outcome := "error"
	defer func() {
		metrics.CaptureExecutionMetrics("document_ingestion", time.Since(start))
		metrics.IncrementDocumentsIngested(outcome)
	}()

	log := s.logger.With("traceId", ctx.Value(config.TRACE_ID_KEY), "jobId", job.Id)
	log.Debug("Processing document", "filename", job.JobPayload.IngestFileName)

	// the upload temp file is consumed here either way
	defer func() {
		if err := os.Remove(job.JobPayload.IngestPath); err != nil && !os.IsNotExist(err) {
			log.Warn("Error removing upload temp file", "error", err)
		}
	}()

	data, err := os.ReadFile(job.JobPayload.IngestPath)
	if err != nil {
		log.Error("Error reading upload", "error", err)
		return s.jobError(job, userFacingFailure, true)
	}

	job.CurrentStep = jobModel.ExtractCall
	result, err := s.extractor.Extract(ctx, data, job.JobPayload.IngestFileName)
	if err != nil {
		return s.extractionError(job, err, log)
	}
	if result.Confidence != nil {
		log.Debug("OCR extraction", "confidence", *result.Confidence)
	}

	job.CurrentStep = jobModel.ChunkCall
	fullText := store.CapText(result.Text)
	chunks := store.ChunksFor(fullText)

	doc := docModel.Document{
		Id:              utils.GetNewUUID(),
		Title:           job.JobPayload.DocumentName,
		FileName:        job.JobPayload.IngestFileName,
		Category:        normalizeCategory(job.JobPayload.Category),
		SourceAuthority: normalizeAuthority(job.JobPayload.SourceAuthority),
		SourceFormat:    extract.FormatFor(job.JobPayload.IngestFileName),
		PageCount:       result.Pages,
		SizeBytes:       int64(len(data)),
		FullText:        fullText,
		Chunks:          chunks,
		Description:     store.DeriveDescription(fullText),
		UploadedAt:      time.Now().UTC(),
	}

	// a timed-out job must not leave a half-written document behind
	if ctxErr := ctx.Err(); ctxErr != nil {
		log.Error("Ingestion deadline hit before commit", "error", ctxErr)
		return s.jobError(job, userFacingFailure, true)
	}

	job.CurrentStep = jobModel.StoreCall
	if err := s.docStore.PutDocument(ctx, doc); err != nil {
		log.Error("Error persisting document", "error", err)
		return s.jobError(job, userFacingFailure, true)
	}

	job.JobPayload.DocumentId = doc.Id
	job.JobPayload.PageCount = doc.PageCount
	job.JobPayload.ChunkCount = len(doc.Chunks)
	job.JobPayload.Warnings = result.Warnings
	job.CurrentStep = jobModel.Complete
	job.Status = jobModel.JobStatusComplete
	outcome = "success"

	log.Debug("Document ingested", "documentId", doc.Id, "pages", doc.PageCount,
		"chunks", len(doc.Chunks), "method", result.Method)
	return job
}

func (s *service) extractionError(job jobModel.Job, err error, log *logger_i.Logger) jobModel.Job {
	var extractionErr *extract.ExtractionError
	if errors.As(err, &extractionErr) {
		log.Error("Extraction failed", "kind", extractionErr.Kind, "error", err)
		// a timeout may clear up on retry, corrupt bytes will not
		return s.jobError(job, userFacingFailure, extractionErr.Kind == extract.Timeout)
	}
	log.Error("Extraction failed", "error", err)
	return s.jobError(job, userFacingFailure, true)
}

func (s *service) jobError(job jobModel.Job, message string, canRetry bool) jobModel.Job {
	job.Error = jobModel.JobError{
		Code:    http.StatusInternalServerError,
		Message: message,
		Retry:   canRetry,
	}
	job.Status = jobModel.JobStatusError
	job.CurrentStep = jobModel.Error
	return job
}

func normalizeCategory(category string) string {
	if config.KnownCategory(category) {
		return category
	}
	return "other"
}

func normalizeAuthority(authority string) docModel.SourceAuthority {
	if docModel.ValidAuthority(authority) {
		return docModel.SourceAuthority(authority)
	}
	return docModel.AuthorityGeneral
}
