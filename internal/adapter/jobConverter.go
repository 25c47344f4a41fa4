package adapter

import (
	"fmt"
	"time"

	"github.com/rkampati/carekb/internal/api"
	"github.com/rkampati/carekb/internal/domain/docModel"
	"github.com/rkampati/carekb/internal/domain/jobModel"
	"github.com/rkampati/carekb/internal/search"
)

func ToInitJobResponse(id string) api.InitJobResponse {
	return api.InitJobResponse{
		Id:        id,
		StatusURL: fmt.Sprintf("status/%s", id), //pass "status/job.Id"
	}
}

func ToAPIResponse(job jobModel.Job) api.JobResponse {

	var errorPtr *api.JobOutgoingError
	if job.Error.Message != "" || job.Error.Code != 0 {
		errorPtr = &api.JobOutgoingError{
			Code:    job.Error.Code,
			Message: job.Error.Message,
			Retry:   job.Error.Retry,
		}
	}

	result := api.Result{
		Status:        string(job.Status),
		IngestOutcome: ToIngestOutcome(job.JobPayload),
	}

	return api.JobResponse{
		Id:        job.Id,
		StartTime: job.CreatedTime,
		EndTime:   job.EndTime,
		Error:     errorPtr,
		Result:    result,
	}
}

func ToIngestOutcome(payload jobModel.JobPayload) *api.IngestOutcome {
	if payload.DocumentId == "" {
		return nil
	}

	return &api.IngestOutcome{
		DocumentId: payload.DocumentId,
		PageCount:  payload.PageCount,
		ChunkCount: payload.ChunkCount,
		Warnings:   payload.Warnings,
	}
}

func ToDocumentResponse(doc docModel.Document) api.DocumentResponse {
	return api.DocumentResponse{
		Id:              doc.Id,
		Title:           doc.Title,
		FileName:        doc.FileName,
		Category:        doc.Category,
		SourceAuthority: string(doc.SourceAuthority),
		SourceFormat:    string(doc.SourceFormat),
		PageCount:       doc.PageCount,
		SizeBytes:       doc.SizeBytes,
		ChunkCount:      len(doc.Chunks),
		Description:     doc.Description,
		UploadedAt:      doc.UploadedAt,
	}
}

func ToDocumentListResponse(docs []docModel.Document) api.DocumentListResponse {
	responses := make([]api.DocumentResponse, 0, len(docs))
	for _, doc := range docs {
		responses = append(responses, ToDocumentResponse(doc))
	}
	return api.DocumentListResponse{Documents: responses, Count: len(responses)}
}

func ToQueryResponse(bundle search.ContextBundle) api.QueryResponse {
	entries := make([]api.QueryResultEntry, 0, len(bundle.Results))
	for _, result := range bundle.Results {
		entries = append(entries, api.QueryResultEntry{
			DocumentId:    result.Document.Id,
			DocumentTitle: result.Document.Title,
			Authority:     string(result.Document.SourceAuthority),
			ContentType:   string(result.Chunk.ContentType),
			Tags:          result.Chunk.Tags,
			Text:          result.Chunk.Text,
			Score:         result.Score,
		})
	}
	return api.QueryResponse{
		IsRestrictedDomain: bundle.Classification.IsRestrictedDomain,
		Domain:             bundle.Classification.Domain,
		Results:            entries,
		Context:            bundle.Context,
	}
}

func BadRequest(id string, error string, code int) api.JobResponse {
	return api.JobResponse{
		Id:        id,
		StartTime: time.Time{},
		EndTime:   time.Time{},
		Result: api.Result{
			Status: string(api.JobStatusError),
		},
		Error: &api.JobOutgoingError{
			Code:    code,
			Message: error,
			Retry:   false,
		},
	}
}
