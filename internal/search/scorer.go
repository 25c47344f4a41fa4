package search

import (
	"strings"

	"github.com/rkampati/carekb/internal/config"
	"github.com/rkampati/carekb/internal/domain/docModel"
)

// ScoreChunk computes the relevance of one chunk for a query as a sum
// of independent non-negative contributions. Additive on purpose: an
// extra matching term can never demote a document, and the authority
// bonus guarantees vetted material outranks equally matched general
// material without per-query tuning.
func ScoreChunk(query string, chunk docModel.Chunk, doc docModel.Document) int {
	queryLower := strings.ToLower(query)
	chunkLower := strings.ToLower(chunk.Text)
	categoryLower := strings.ToLower(doc.Category)

	score := 0

	// exact-phrase bonus for curated high-value phrases
	for _, phrase := range config.HighValuePhrases {
		if strings.Contains(queryLower, phrase) && strings.Contains(chunkLower, phrase) {
			score += config.PhraseBonus
		}
	}

	// term overlap: tags > category > raw text
	for _, term := range queryTerms(queryLower) {
		if tagsContain(chunk.Tags, term) {
			score += config.TagTermBonus
		}
		if strings.Contains(categoryLower, term) {
			score += config.CategoryTermBonus
		}
		if strings.Contains(chunkLower, term) {
			score += config.TextTermBonus
		}
	}

	if doc.SourceAuthority == docModel.AuthorityVetted {
		score += config.AuthorityBonus
	}

	// curated ingestion path (PDF uploads) beats ad hoc notes
	if doc.SourceFormat == docModel.FormatPDF {
		score += config.FormatBonus
	}

	return score
}

// queryTerms splits a lowercased query into searchable terms, dropping
// short stop-ish words.
func queryTerms(queryLower string) []string {
	fields := strings.FieldsFunc(queryLower, func(r rune) bool {
		return !('a' <= r && r <= 'z') && !('0' <= r && r <= '9')
	})
	var terms []string
	for _, f := range fields {
		if len(f) >= config.MinQueryTermLen {
			terms = append(terms, f)
		}
	}
	return terms
}

func tagsContain(tags []string, term string) bool {
	for _, tag := range tags {
		if strings.Contains(strings.ToLower(tag), term) {
			return true
		}
	}
	return false
}
