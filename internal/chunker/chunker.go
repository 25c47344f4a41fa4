package chunker

import (
	"strings"

	"github.com/rkampati/carekb/internal/config"
	"github.com/rkampati/carekb/internal/domain/docModel"
)

// Chunk splits extracted text into bounded segments on paragraph
// boundaries. A running accumulation is emitted whenever adding the
// next paragraph would push it past maxChunkSize. A single paragraph
// longer than maxChunkSize is still emitted whole - we would rather
// have one oversized chunk than a sentence cut in half.
func Chunk(text string, maxChunkSize int) []docModel.Chunk {
	paragraphs := splitParagraphs(text)
	if len(paragraphs) == 0 {
		return nil
	}

	var chunks []docModel.Chunk
	var current strings.Builder

	emit := func() {
		if current.Len() == 0 {
			return
		}
		chunks = append(chunks, newChunk(current.String(), len(chunks)))
		current.Reset()
	}

	for _, para := range paragraphs {
		if current.Len() > 0 && current.Len()+len("\n\n")+len(para) > maxChunkSize {
			emit()
		}
		if current.Len() > 0 {
			current.WriteString("\n\n")
		}
		current.WriteString(para)
	}
	emit()

	return chunks
}

func newChunk(text string, ordinal int) docModel.Chunk {
	contentType := classifyContent(text)
	return docModel.Chunk{
		Text:        text,
		ContentType: contentType,
		Tags:        buildTags(text, contentType),
		Ordinal:     ordinal,
	}
}

func splitParagraphs(text string) []string {
	var result []string
	for _, p := range strings.Split(normalizeNewlines(text), "\n\n") {
		p = strings.TrimSpace(p)
		if p != "" {
			result = append(result, p)
		}
	}
	return result
}

func normalizeNewlines(text string) string {
	return strings.ReplaceAll(text, "\r\n", "\n")
}

// buildTags collects the chunk's content type plus every restricted
// domain keyword the chunk mentions, in config.RestrictedDomains order
// so stored tags are stable across runs. The scorer pays a tag bonus
// when a query term hits one of these.
func buildTags(text string, contentType docModel.ContentType) []string {
	tags := []string{string(contentType)}
	lower := strings.ToLower(text)
	for _, domain := range config.RestrictedDomains {
		matched := false
		for _, kw := range config.RestrictedDomainKeywords[domain] {
			if strings.Contains(lower, kw) {
				matched = true
				break
			}
		}
		if matched {
			tags = append(tags, domain)
		}
	}
	return tags
}
