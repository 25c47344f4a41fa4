package store

import (
	"strings"
	"unicode/utf8"

	"github.com/rkampati/carekb/internal/chunker"
	"github.com/rkampati/carekb/internal/config"
	"github.com/rkampati/carekb/internal/domain/docModel"
)

// applyPatch merges the provided fields into doc. Only a FullText patch
// regenerates chunks - metadata edits never touch them.
func applyPatch(doc docModel.Document, patch docModel.DocumentPatch) docModel.Document {
	if patch.Title != nil {
		doc.Title = *patch.Title
	}
	if patch.Category != nil {
		doc.Category = *patch.Category
	}
	if patch.SourceAuthority != nil {
		doc.SourceAuthority = docModel.SourceAuthority(*patch.SourceAuthority)
	}
	if patch.Description != nil {
		doc.Description = *patch.Description
	}
	if patch.FullText != nil {
		doc.FullText = CapText(*patch.FullText)
		doc.Chunks = ChunksFor(doc.FullText)
		if patch.Description == nil {
			doc.Description = DeriveDescription(doc.FullText)
		}
	}
	return doc
}

// ChunksFor guarantees the searchability invariant: an empty text still
// yields one placeholder chunk so the document stays addressable by
// metadata filters.
func ChunksFor(fullText string) []docModel.Chunk {
	chunks := chunker.Chunk(fullText, config.MaxChunkSize)
	if len(chunks) == 0 {
		chunks = []docModel.Chunk{{
			Text:        config.PlaceholderChunk,
			ContentType: docModel.ContentGeneral,
			Ordinal:     0,
		}}
	}
	return chunks
}

func CapText(text string) string {
	return truncateAtRune(text, config.MaxStoredTextBytes)
}

func DeriveDescription(fullText string) string {
	trimmed := strings.TrimSpace(fullText)
	if trimmed == "" {
		return config.EmptyDescription
	}
	trimmed = truncateAtRune(trimmed, config.DescriptionLength)
	return strings.Join(strings.Fields(trimmed), " ")
}

// truncateAtRune caps text at maxBytes without splitting a multi-byte
// rune - a torn trailing sequence would JSON-encode as U+FFFD.
func truncateAtRune(text string, maxBytes int) string {
	if len(text) <= maxBytes {
		return text
	}
	cut := maxBytes
	for cut > 0 && !utf8.RuneStart(text[cut]) {
		cut--
	}
	return text[:cut]
}

func matchesFilter(doc docModel.Document, filter docModel.ListFilter) bool {
	if filter.Category != "" && doc.Category != filter.Category {
		return false
	}
	if filter.Query != "" {
		q := strings.ToLower(filter.Query)
		if !strings.Contains(strings.ToLower(doc.Title), q) &&
			!strings.Contains(strings.ToLower(doc.FileName), q) &&
			!strings.Contains(strings.ToLower(doc.Description), q) {
			return false
		}
	}
	return true
}
