package chunker

import (
	"regexp"
	"strings"

	"github.com/rkampati/carekb/internal/domain/docModel"
)

// Lexical cues per content type. Order matters: a chunk can carry cues
// for several types, so checks run in a fixed priority and the first
// match wins. Emergency outranks everything else on purpose.
var timelinePattern = regexp.MustCompile(`\b(day|week|month)\s+\d+\b`)

var emergencyCues = []string{"call immediately", "call 911", "red flag", "emergency", "seek medical", "go to the er"}
var adviceCues = []string{"tips", "solution", "recommendation", "suggestion", "try "}
var protocolCues = []string{"protocol", "guideline", "procedure", "dosage"}
var faqCues = []string{"q:", "faq", "?"}

func classifyContent(text string) docModel.ContentType {
	lower := strings.ToLower(text)

	if containsAny(lower, emergencyCues) {
		return docModel.ContentEmergency
	}
	if timelinePattern.MatchString(lower) || strings.Contains(lower, "timeline") {
		return docModel.ContentTimeline
	}
	if containsAny(lower, adviceCues) {
		return docModel.ContentAdvice
	}
	if containsAny(lower, protocolCues) {
		return docModel.ContentProtocol
	}
	if containsAny(lower, faqCues) {
		return docModel.ContentFAQ
	}
	return docModel.ContentGeneral
}

func containsAny(text string, cues []string) bool {
	for _, cue := range cues {
		if strings.Contains(text, cue) {
			return true
		}
	}
	return false
}
