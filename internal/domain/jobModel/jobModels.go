package jobModel

import (
	"context"
	"time"
)

type JobStatus string
type InternalStatus string

const (
	JobStatusQueued   JobStatus = "QUEUED"
	JobStatusRunning  JobStatus = "RUNNING"
	JobStatusComplete JobStatus = "COMPLETE"
	JobStatusError    JobStatus = "Error"

	IngestInit  InternalStatus = "IngestInit"
	ExtractCall InternalStatus = "Extract"
	ChunkCall   InternalStatus = "Chunk"
	StoreCall   InternalStatus = "Store"
	Error       InternalStatus = "Error"
	Complete    InternalStatus = "Complete"
)

type Job struct {
	Id          string         `json:"id"`
	TraceId     string         `json:"trace_id"`
	JobPayload  JobPayload     `json:"job_payload"`
	Error       JobError       `json:"error,omitempty"`
	CreatedTime time.Time      `json:"created_time"`
	EndTime     time.Time      `json:"end_time,omitempty"`
	Status      JobStatus      `json:"status"`
	CurrentStep InternalStatus `json:"current_step"`
}

type JobError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Retry   bool   `json:"retry"`
}

type JobPayload struct {
	DocumentName    string `json:"document_name"`
	IngestFileName  string `json:"ingest_file_name,omitempty"`
	IngestPath      string `json:"ingest_path,omitempty"`
	Category        string `json:"category,omitempty"`
	SourceAuthority string `json:"source_authority,omitempty"`

	//set once ingestion completes
	DocumentId string   `json:"document_id,omitempty"`
	PageCount  int      `json:"page_count,omitempty"`
	ChunkCount int      `json:"chunk_count,omitempty"`
	Warnings   []string `json:"warnings,omitempty"`
}

type JobStore interface {
	GetJob(ctx context.Context, jobId string) (Job, bool)
	SaveJob(ctx context.Context, job Job) error
	DeleteJob(ctx context.Context, jobID string)
}
