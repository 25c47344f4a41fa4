package api

import "time"

type JobExternalStatus string

const (
	JobStatusError JobExternalStatus = "Error"
)

type JobResponse struct {
	Id        string            `json:"id" example:"job_cz109"`
	Result    Result            `json:"result"`
	Error     *JobOutgoingError `json:"error,omitempty"`
	StartTime time.Time         `json:"start_time"`
	EndTime   time.Time         `json:"end_time,omitempty"`
}

type JobOutgoingError struct {
	Code    int    `json:"code" example:"400"`
	Message string `json:"message" example:"Job not found"`
	Retry   bool   `json:"can_retry" example:"false"`
}

type IngestOutcome struct {
	DocumentId string   `json:"document_id"`
	PageCount  int      `json:"page_count"`
	ChunkCount int      `json:"chunk_count"`
	Warnings   []string `json:"warnings,omitempty"`
}

type Result struct {
	Status        string         `json:"status"`
	IngestOutcome *IngestOutcome `json:"ingest_outcome,omitempty"`
}

type InitJobResponse struct {
	Id        string `json:"id"`
	StatusURL string `json:"status_url"`
}

type DocumentResponse struct {
	Id              string    `json:"id"`
	Title           string    `json:"title"`
	FileName        string    `json:"file_name"`
	Category        string    `json:"category"`
	SourceAuthority string    `json:"source_authority"`
	SourceFormat    string    `json:"source_format"`
	PageCount       int       `json:"page_count"`
	SizeBytes       int64     `json:"size_bytes"`
	ChunkCount      int       `json:"chunk_count"`
	Description     string    `json:"description"`
	UploadedAt      time.Time `json:"uploaded_at"`
}

type DocumentListResponse struct {
	Documents []DocumentResponse `json:"documents"`
	Count     int                `json:"count"`
}

type QueryResultEntry struct {
	DocumentId    string   `json:"document_id"`
	DocumentTitle string   `json:"document_title"`
	Authority     string   `json:"authority"`
	ContentType   string   `json:"content_type"`
	Tags          []string `json:"tags,omitempty"`
	Text          string   `json:"text"`
	Score         int      `json:"score"`
}

type QueryResponse struct {
	IsRestrictedDomain bool               `json:"is_restricted_domain"`
	Domain             string             `json:"domain,omitempty"`
	Results            []QueryResultEntry `json:"results"`
	Context            string             `json:"context"`
}

// requests---------------------

type QueryRequest struct {
	Query           string `json:"query" validate:"required"`
	MaxResults      int    `json:"max_results,omitempty"`
	MaxContextChars int    `json:"max_context_chars,omitempty"`
}

type JobStatusRequest struct {
	JobId string `json:"job_id" validate:"required"`
}

type UpdateDocumentRequest struct {
	Title           *string `json:"title,omitempty"`
	Category        *string `json:"category,omitempty"`
	SourceAuthority *string `json:"source_authority,omitempty"`
	Description     *string `json:"description,omitempty"`
	FullText        *string `json:"full_text,omitempty"`
}
