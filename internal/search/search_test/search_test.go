package search_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rkampati/carekb/internal/config"
	"github.com/rkampati/carekb/internal/domain/docModel"
	"github.com/rkampati/carekb/internal/search"
)

func vettedDoc(id, category string, chunks ...docModel.Chunk) docModel.Document {
	return docModel.Document{
		Id:              id,
		Title:           "Doc " + id,
		Category:        category,
		SourceAuthority: docModel.AuthorityVetted,
		SourceFormat:    docModel.FormatMarkdown,
		Chunks:          chunks,
		UploadedAt:      time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC),
	}
}

func TestClassify(t *testing.T) {
	tests := []struct {
		query      string
		restricted bool
		domain     string
	}{
		{"how do I improve my latch", true, "breastfeeding"},
		{"is my milk supply low", true, "breastfeeding"},
		{"engorgement relief", true, "breastfeeding"},
		{"when does my baby sleep through the night", false, ""},
		{"", false, ""},
	}

	for _, tt := range tests {
		got := search.Classify(tt.query)
		if got.IsRestrictedDomain != tt.restricted || got.Domain != tt.domain {
			t.Errorf("Classify(%q) = %+v; want restricted=%v domain=%q",
				tt.query, got, tt.restricted, tt.domain)
		}
	}
}

func TestScoreChunk_Monotonic(t *testing.T) {
	doc := vettedDoc("m1", "sleep")
	query := "newborn sleep schedule"

	base := docModel.Chunk{Text: "General newborn advice."}
	richer := docModel.Chunk{Text: "General newborn advice about a sleep schedule."}

	baseScore := search.ScoreChunk(query, base, doc)
	richerScore := search.ScoreChunk(query, richer, doc)

	if richerScore < baseScore {
		t.Errorf("Adding matching terms decreased the score: %d -> %d", baseScore, richerScore)
	}
}

func TestScoreChunk_AuthorityOrdering(t *testing.T) {
	chunk := docModel.Chunk{Text: "Swaddle the baby snugly for naps."}
	query := "swaddle naps"

	vetted := vettedDoc("a", "sleep", chunk)
	general := vetted
	general.SourceAuthority = docModel.AuthorityGeneral

	vettedScore := search.ScoreChunk(query, chunk, vetted)
	generalScore := search.ScoreChunk(query, chunk, general)

	if vettedScore <= generalScore {
		t.Errorf("Vetted document must outrank general on identical overlap: %d vs %d",
			vettedScore, generalScore)
	}
}

func TestScoreChunk_Contributions(t *testing.T) {
	// markdown + general keeps authority/format bonuses out of the way
	doc := docModel.Document{
		Category:        "breastfeeding",
		SourceAuthority: docModel.AuthorityGeneral,
		SourceFormat:    docModel.FormatMarkdown,
	}

	tests := []struct {
		name     string
		query    string
		chunk    docModel.Chunk
		expected int
	}{
		{
			name:     "no overlap scores zero",
			query:    "car seat installation",
			chunk:    docModel.Chunk{Text: "Swaddling basics."},
			expected: 0,
		},
		{
			name:     "phrase bonus plus its term hits",
			query:    "golden hour",
			chunk:    docModel.Chunk{Text: "the golden hour after birth"},
			expected: 10 + 2 + 2, // phrase + "golden" + "hour" in text
		},
		{
			name:     "category term bonus",
			query:    "breastfeeding",
			chunk:    docModel.Chunk{Text: "unrelated text"},
			expected: 4,
		},
		{
			name:     "tag term bonus",
			query:    "emergency",
			chunk:    docModel.Chunk{Text: "unrelated", Tags: []string{"emergency"}},
			expected: 5,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := search.ScoreChunk(tt.query, tt.chunk, doc); got != tt.expected {
				t.Errorf("ScoreChunk got %d, want %d", got, tt.expected)
			}
		})
	}
}

func TestRetrieve_EmptyStore(t *testing.T) {
	s := search.NewService(&MockDocumentStore{})

	results, classification, err := s.Retrieve(context.Background(), "breastfeeding latch", 3, 4000)
	if err != nil {
		t.Fatalf("Retrieve failed: %v", err)
	}
	if len(results) != 0 {
		t.Errorf("Expected empty results on empty store, got %d", len(results))
	}
	if !classification.IsRestrictedDomain {
		t.Error("Expected restricted-domain classification for a latch query")
	}
}

func TestRetrieve_VettedWins(t *testing.T) {
	chunkText := "The golden hour is the first hour after birth."
	a := vettedDoc("a", "postpartum", docModel.Chunk{Text: chunkText, Ordinal: 0})
	b := a
	b.Id = "b"
	b.Title = "Doc b"
	b.SourceAuthority = docModel.AuthorityGeneral
	b.Chunks = []docModel.Chunk{{Text: chunkText, Ordinal: 0}}

	store := &MockDocumentStore{
		OnList: func(ctx context.Context, _ docModel.ListFilter) ([]docModel.Document, error) {
			return []docModel.Document{b, a}, nil
		},
	}

	results, _, err := search.NewService(store).Retrieve(context.Background(), "what is the golden hour", 3, 4000)
	if err != nil {
		t.Fatalf("Retrieve failed: %v", err)
	}
	if len(results) != 2 {
		t.Fatalf("Expected 2 results, got %d", len(results))
	}
	if results[0].Document.Id != "a" {
		t.Errorf("Vetted document must rank first, got %s", results[0].Document.Id)
	}
	if results[0].Score <= results[1].Score {
		t.Errorf("Vetted score %d should exceed general score %d",
			results[0].Score, results[1].Score)
	}
}

func TestRetrieve_ZeroScoresExcluded(t *testing.T) {
	doc := vettedDoc("z", "", docModel.Chunk{Text: "totally unrelated content"})
	doc.SourceAuthority = docModel.AuthorityGeneral // no freebie bonuses
	doc.SourceFormat = docModel.FormatText

	store := &MockDocumentStore{
		OnList: func(ctx context.Context, _ docModel.ListFilter) ([]docModel.Document, error) {
			return []docModel.Document{doc}, nil
		},
	}

	results, _, err := search.NewService(store).Retrieve(context.Background(), "qqq xyz", 3, 4000)
	if err != nil {
		t.Fatalf("Retrieve failed: %v", err)
	}
	if len(results) != 0 {
		t.Errorf("Zero-score chunks leaked into results: %+v", results)
	}
}

func TestRetrieve_ContextBudget(t *testing.T) {
	long := make([]byte, 300)
	for i := range long {
		long[i] = 'a'
	}
	chunkText := "sleep " + string(long)

	var chunks []docModel.Chunk
	for i := 0; i < 5; i++ {
		chunks = append(chunks, docModel.Chunk{Text: chunkText, Ordinal: i})
	}
	doc := vettedDoc("budget", "sleep", chunks...)

	store := &MockDocumentStore{
		OnList: func(ctx context.Context, _ docModel.ListFilter) ([]docModel.Document, error) {
			return []docModel.Document{doc}, nil
		},
	}

	results, _, err := search.NewService(store).Retrieve(context.Background(), "sleep", 10, 500)
	if err != nil {
		t.Fatalf("Retrieve failed: %v", err)
	}

	total := 0
	for _, r := range results {
		total += len(r.Chunk.Text)
	}
	if total > 500 {
		t.Errorf("Context budget exceeded: %d chars", total)
	}
	if len(results) == 0 {
		t.Error("Budget trim dropped everything, expected at least one whole chunk")
	}
}

func TestRetrieve_TieBreaks(t *testing.T) {
	chunkText := "Swaddle guidance for newborns."
	older := vettedDoc("older", "sleep", docModel.Chunk{Text: chunkText, Ordinal: 0})
	newer := vettedDoc("newer", "sleep",
		docModel.Chunk{Text: chunkText, Ordinal: 0},
		docModel.Chunk{Text: chunkText, Ordinal: 1})
	newer.UploadedAt = older.UploadedAt.Add(time.Hour)

	store := &MockDocumentStore{
		OnList: func(ctx context.Context, _ docModel.ListFilter) ([]docModel.Document, error) {
			return []docModel.Document{older, newer}, nil
		},
	}

	results, _, err := search.NewService(store).Retrieve(context.Background(), "swaddle", 10, 10000)
	if err != nil {
		t.Fatalf("Retrieve failed: %v", err)
	}
	if len(results) != 3 {
		t.Fatalf("Expected 3 results, got %d", len(results))
	}
	if results[0].Document.Id != "newer" || results[1].Document.Id != "newer" {
		t.Errorf("Newest document should win ties: %s %s",
			results[0].Document.Id, results[1].Document.Id)
	}
	if results[0].Chunk.Ordinal != 0 {
		t.Errorf("Within a document, earlier ordinal wins ties: got %d", results[0].Chunk.Ordinal)
	}
	if results[2].Document.Id != "older" {
		t.Errorf("Older document should rank last: %s", results[2].Document.Id)
	}
}

func TestRetrieve_StoreUnavailable(t *testing.T) {
	store := &MockDocumentStore{
		OnList: func(ctx context.Context, _ docModel.ListFilter) ([]docModel.Document, error) {
			return nil, errors.New("connection refused")
		},
	}

	_, _, err := search.NewService(store).Retrieve(context.Background(), "latch", 3, 4000)
	if err == nil {
		t.Error("Expected error when the store is unavailable")
	}
}

func TestAnswerContext_TitlePrefixes(t *testing.T) {
	doc := vettedDoc("ctx", "breastfeeding", docModel.Chunk{Text: "Aim for a deep latch.", Ordinal: 0})
	doc.Title = "Latch Guide"

	store := &MockDocumentStore{
		OnList: func(ctx context.Context, _ docModel.ListFilter) ([]docModel.Document, error) {
			return []docModel.Document{doc}, nil
		},
	}

	bundle, err := search.NewService(store).AnswerContext(context.Background(), "latch help")
	if err != nil {
		t.Fatalf("AnswerContext failed: %v", err)
	}
	if !bundle.Classification.IsRestrictedDomain {
		t.Error("Expected restricted classification")
	}
	want := "[Latch Guide]\nAim for a deep latch."
	if bundle.Context != want {
		t.Errorf("Context got %q, want %q", bundle.Context, want)
	}
}

func TestClassify_DomainOrderIsFixed(t *testing.T) {
	config.RestrictedDomains = append(config.RestrictedDomains, "pumping-equipment")
	config.RestrictedDomainKeywords["pumping-equipment"] = []string{"latch"}
	t.Cleanup(func() {
		config.RestrictedDomains = config.RestrictedDomains[:len(config.RestrictedDomains)-1]
		delete(config.RestrictedDomainKeywords, "pumping-equipment")
	})

	// "latch" routes to both domains; the first configured one must win
	// on every run, not whichever the map happens to yield
	for i := 0; i < 50; i++ {
		got := search.Classify("trouble with the latch")
		if got.Domain != "breastfeeding" {
			t.Fatalf("Domain order not stable on run %d: got %q", i, got.Domain)
		}
	}
}
