package docModel

import (
	"context"
	"time"
)

type SourceAuthority string
type SourceFormat string
type ContentType string

const (
	AuthorityVetted  SourceAuthority = "vetted"
	AuthorityGeneral SourceAuthority = "general"

	FormatPDF      SourceFormat = "pdf"
	FormatDocx     SourceFormat = "docx"
	FormatMarkdown SourceFormat = "markdown"
	FormatText     SourceFormat = "text"

	ContentEmergency ContentType = "emergency"
	ContentTimeline  ContentType = "timeline"
	ContentAdvice    ContentType = "advice"
	ContentProtocol  ContentType = "protocol"
	ContentFAQ       ContentType = "faq"
	ContentGeneral   ContentType = "general"
)

// Chunk is a derived artifact - it is recomputed whenever the parent
// document's text changes and is never edited on its own.
type Chunk struct {
	Text        string      `json:"text"`
	ContentType ContentType `json:"content_type"`
	Tags        []string    `json:"tags,omitempty"`
	Ordinal     int         `json:"ordinal"`
}

type Document struct {
	Id              string          `json:"id"`
	Title           string          `json:"title"`
	FileName        string          `json:"file_name"`
	Category        string          `json:"category"`
	SourceAuthority SourceAuthority `json:"source_authority"`
	SourceFormat    SourceFormat    `json:"source_format"`
	PageCount       int             `json:"page_count"`
	SizeBytes       int64           `json:"size_bytes"`
	FullText        string          `json:"full_text,omitempty"`
	Chunks          []Chunk         `json:"chunks"`
	Description     string          `json:"description"`
	UploadedAt      time.Time       `json:"uploaded_at"`
}

// QueryResult is computed fresh per query and never persisted.
type QueryResult struct {
	Chunk    Chunk
	Document Document
	Score    int
}

// ListFilter is a cheap pre-filter applied by the store before the
// retriever ranks anything.
type ListFilter struct {
	Category string
	Query    string //substring match over title/file name/description
}

// DocumentPatch carries partial updates - nil fields are left untouched.
// Patching FullText is the only mutation that regenerates chunks.
type DocumentPatch struct {
	Title           *string `json:"title,omitempty"`
	Category        *string `json:"category,omitempty"`
	SourceAuthority *string `json:"source_authority,omitempty"`
	Description     *string `json:"description,omitempty"`
	FullText        *string `json:"full_text,omitempty"`
}

type DocumentStore interface {
	PutDocument(ctx context.Context, doc Document) error
	GetDocument(ctx context.Context, id string) (Document, bool, error)
	ListDocuments(ctx context.Context, filter ListFilter) ([]Document, error)
	UpdateDocument(ctx context.Context, id string, patch DocumentPatch) (Document, bool, error)
	DeleteDocument(ctx context.Context, id string) (bool, error)
}

func ValidAuthority(s string) bool {
	return SourceAuthority(s) == AuthorityVetted || SourceAuthority(s) == AuthorityGeneral
}
