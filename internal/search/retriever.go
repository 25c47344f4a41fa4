package search

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/rkampati/carekb/internal/config"
	"github.com/rkampati/carekb/internal/domain/docModel"
	"github.com/rkampati/carekb/internal/metrics"
	"github.com/rkampati/carekb/pkg/logger_i"
)

// Service is the public retrieval contract. The chat collaborator only
// sees this interface - the store and scoring internals stay private.
type Service interface {
	Retrieve(ctx context.Context, query string, maxResults, maxContextChars int) ([]docModel.QueryResult, Classification, error)
	AnswerContext(ctx context.Context, query string) (ContextBundle, error)
}

// ContextBundle is what the chat layer stitches into the model prompt.
type ContextBundle struct {
	Results        []docModel.QueryResult
	Classification Classification
	Context        string
}

type service struct {
	store  docModel.DocumentStore
	logger *logger_i.Logger
}

func NewService(store docModel.DocumentStore) Service {
	return &service{
		store:  store,
		logger: logger_i.NewLogger("Retriever"),
	}
}

// Retrieve ranks every chunk in the store for the query. Zero-scoring
// chunks never appear; results past the character budget are dropped
// whole, not truncated. An empty store or a query nothing matches is a
// valid empty result, not an error.
func (s *service) Retrieve(ctx context.Context, query string, maxResults, maxContextChars int) ([]docModel.QueryResult, Classification, error) {
	start := time.Now()
	defer func() { metrics.CaptureExecutionMetrics("retrieval", time.Since(start)) }()

	classification := Classify(query)
	if maxResults <= 0 {
		maxResults = config.DefaultMaxResults
	}
	if maxContextChars <= 0 {
		maxContextChars = config.DefaultMaxContextChars
	}

	docs, err := s.store.ListDocuments(ctx, docModel.ListFilter{})
	if err != nil {
		return nil, classification, fmt.Errorf("retrieve: %w", err)
	}

	var results []docModel.QueryResult
	for _, doc := range docs {
		for _, chunk := range doc.Chunks {
			score := ScoreChunk(query, chunk, doc)
			if score == 0 {
				continue
			}
			results = append(results, docModel.QueryResult{Chunk: chunk, Document: doc, Score: score})
		}
	}

	sortResults(results)

	if len(results) > maxResults {
		results = results[:maxResults]
	}
	results = trimToBudget(results, maxContextChars)

	s.logger.Debug("Retrieve", "query", query, "results", len(results),
		"restricted", classification.IsRestrictedDomain)
	return results, classification, nil
}

func (s *service) AnswerContext(ctx context.Context, query string) (ContextBundle, error) {
	results, classification, err := s.Retrieve(ctx, query, config.DefaultMaxResults, config.DefaultMaxContextChars)
	if err != nil {
		return ContextBundle{}, err
	}

	return ContextBundle{
		Results:        results,
		Classification: classification,
		Context:        BuildContext(results),
	}, nil
}

// BuildContext concatenates chunks in result order, each prefixed by
// its source document title.
func BuildContext(results []docModel.QueryResult) string {
	var sb strings.Builder
	for _, r := range results {
		if sb.Len() > 0 {
			sb.WriteString("\n\n")
		}
		sb.WriteString("[" + r.Document.Title + "]\n")
		sb.WriteString(r.Chunk.Text)
	}
	return sb.String()
}

// sortResults orders by score descending; ties break on the newest
// document first, then the earliest chunk, so ranking stays
// reproducible across runs.
func sortResults(results []docModel.QueryResult) {
	sort.SliceStable(results, func(i, j int) bool {
		if results[i].Score != results[j].Score {
			return results[i].Score > results[j].Score
		}
		if !results[i].Document.UploadedAt.Equal(results[j].Document.UploadedAt) {
			return results[i].Document.UploadedAt.After(results[j].Document.UploadedAt)
		}
		return results[i].Chunk.Ordinal < results[j].Chunk.Ordinal
	})
}

// trimToBudget drops results from the tail once the cumulative chunk
// text would exceed the character budget.
func trimToBudget(results []docModel.QueryResult, maxContextChars int) []docModel.QueryResult {
	total := 0
	for i, r := range results {
		total += len(r.Chunk.Text)
		if total > maxContextChars {
			return results[:i]
		}
	}
	return results
}
