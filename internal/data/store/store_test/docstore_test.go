package store_test

import (
	"context"
	"strings"
	"testing"
	"time"
	"unicode/utf8"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"

	"github.com/rkampati/carekb/internal/config"
	"github.com/rkampati/carekb/internal/data/redisStore"
	"github.com/rkampati/carekb/internal/data/store"
	"github.com/rkampati/carekb/internal/domain/docModel"
)

func newTestStore(t *testing.T) (*miniredis.Miniredis, *store.RedisDocumentStore) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	return mr, store.TestDocumentStore(redisStore.NewTestStore(client))
}

func sampleDocument(id string) docModel.Document {
	return docModel.Document{
		Id:              id,
		Title:           "Breastfeeding Basics",
		FileName:        "breastfeeding_basics.pdf",
		Category:        "breastfeeding",
		SourceAuthority: docModel.AuthorityVetted,
		SourceFormat:    docModel.FormatPDF,
		PageCount:       4,
		FullText:        "Feed on demand.\n\nWatch for a deep latch.",
		Chunks: []docModel.Chunk{
			{Text: "Feed on demand.", ContentType: docModel.ContentGeneral, Ordinal: 0},
		},
		Description: "Feed on demand.",
		UploadedAt:  time.Now().UTC(),
	}
}

func TestRedisDocumentStore_Lifecycle(t *testing.T) {
	_, docStore := newTestStore(t)
	ctx := context.WithValue(context.Background(), config.TRACE_ID_KEY, "test-trace")
	doc := sampleDocument("doc-1")

	t.Run("Put and Get Roundtrip", func(t *testing.T) {
		if err := docStore.PutDocument(ctx, doc); err != nil {
			t.Fatalf("PutDocument failed: %v", err)
		}

		retrieved, found, err := docStore.GetDocument(ctx, "doc-1")
		if err != nil || !found {
			t.Fatalf("Document was saved but not found: %v", err)
		}
		if retrieved.Title != doc.Title || retrieved.SourceAuthority != docModel.AuthorityVetted {
			t.Errorf("Data mismatch: %+v", retrieved)
		}
		if len(retrieved.Chunks) != 1 {
			t.Errorf("Chunks lost in roundtrip: %d", len(retrieved.Chunks))
		}
	})

	t.Run("Get Non-Existent Document", func(t *testing.T) {
		_, found, err := docStore.GetDocument(ctx, "ghost-id")
		if err != nil {
			t.Fatalf("Unexpected error: %v", err)
		}
		if found {
			t.Error("Expected found=false for non-existent id")
		}
	})

	t.Run("Delete Is Terminal", func(t *testing.T) {
		deleted, err := docStore.DeleteDocument(ctx, "doc-1")
		if err != nil || !deleted {
			t.Fatalf("DeleteDocument failed: deleted=%v err=%v", deleted, err)
		}

		_, found, _ := docStore.GetDocument(ctx, "doc-1")
		if found {
			t.Error("Document still readable after delete")
		}

		// deleting again reports not found, not an error
		deleted, err = docStore.DeleteDocument(ctx, "doc-1")
		if err != nil {
			t.Fatalf("Second delete errored: %v", err)
		}
		if deleted {
			t.Error("Second delete reported success on a removed id")
		}
	})
}

func TestRedisDocumentStore_PartialUpdate(t *testing.T) {
	_, docStore := newTestStore(t)
	ctx := context.Background()

	doc := sampleDocument("doc-2")
	if err := docStore.PutDocument(ctx, doc); err != nil {
		t.Fatalf("PutDocument failed: %v", err)
	}

	t.Run("Metadata patch leaves chunks alone", func(t *testing.T) {
		newCategory := "postpartum"
		updated, found, err := docStore.UpdateDocument(ctx, "doc-2", docModel.DocumentPatch{Category: &newCategory})
		if err != nil || !found {
			t.Fatalf("UpdateDocument failed: %v", err)
		}
		if updated.Category != "postpartum" {
			t.Errorf("Category not updated: %s", updated.Category)
		}
		if updated.Title != doc.Title {
			t.Errorf("Untouched field changed: %s", updated.Title)
		}
		if len(updated.Chunks) != len(doc.Chunks) || updated.Chunks[0].Text != doc.Chunks[0].Text {
			t.Error("Chunks regenerated on a metadata-only patch")
		}
	})

	t.Run("FullText patch regenerates chunks", func(t *testing.T) {
		newText := "A fresh paragraph.\n\nAnd another one about safe sleep."
		updated, found, err := docStore.UpdateDocument(ctx, "doc-2", docModel.DocumentPatch{FullText: &newText})
		if err != nil || !found {
			t.Fatalf("UpdateDocument failed: %v", err)
		}
		if updated.FullText != newText {
			t.Errorf("FullText not updated")
		}
		rebuilt := ""
		for _, c := range updated.Chunks {
			rebuilt += c.Text
		}
		if !strings.Contains(rebuilt, "safe sleep") {
			t.Errorf("Chunks not regenerated from new text: %q", rebuilt)
		}
	})

	t.Run("Update unknown id reports not found", func(t *testing.T) {
		title := "nope"
		_, found, err := docStore.UpdateDocument(ctx, "missing", docModel.DocumentPatch{Title: &title})
		if err != nil {
			t.Fatalf("Unexpected error: %v", err)
		}
		if found {
			t.Error("Expected found=false for unknown id")
		}
	})
}

func TestRedisDocumentStore_ListFilter(t *testing.T) {
	_, docStore := newTestStore(t)
	ctx := context.Background()

	a := sampleDocument("doc-a")
	b := sampleDocument("doc-b")
	b.Title = "Safe Sleep Protocol"
	b.FileName = "safe_sleep.pdf"
	b.Category = "sleep"
	b.Description = "Crib setup and room sharing guidance"
	b.UploadedAt = a.UploadedAt.Add(time.Minute)

	for _, d := range []docModel.Document{a, b} {
		if err := docStore.PutDocument(ctx, d); err != nil {
			t.Fatalf("PutDocument failed: %v", err)
		}
	}

	t.Run("Category filter", func(t *testing.T) {
		docs, err := docStore.ListDocuments(ctx, docModel.ListFilter{Category: "sleep"})
		if err != nil {
			t.Fatalf("ListDocuments failed: %v", err)
		}
		if len(docs) != 1 || docs[0].Id != "doc-b" {
			t.Errorf("Category filter wrong: %+v", docs)
		}
	})

	t.Run("Substring filter over title and description", func(t *testing.T) {
		docs, err := docStore.ListDocuments(ctx, docModel.ListFilter{Query: "crib setup"})
		if err != nil {
			t.Fatalf("ListDocuments failed: %v", err)
		}
		if len(docs) != 1 || docs[0].Id != "doc-b" {
			t.Errorf("Substring filter wrong: %+v", docs)
		}
	})

	t.Run("Newest first ordering", func(t *testing.T) {
		docs, err := docStore.ListDocuments(ctx, docModel.ListFilter{})
		if err != nil {
			t.Fatalf("ListDocuments failed: %v", err)
		}
		if len(docs) != 2 || docs[0].Id != "doc-b" {
			t.Errorf("Expected newest document first: %+v", docs)
		}
	})
}

func TestInMemoryDocumentStore_MatchesRedisBehavior(t *testing.T) {
	memStore := store.InitInMemoryDocumentStore()
	ctx := context.Background()
	doc := sampleDocument("doc-mem")

	if err := memStore.PutDocument(ctx, doc); err != nil {
		t.Fatalf("PutDocument failed: %v", err)
	}

	_, found, _ := memStore.GetDocument(ctx, "doc-mem")
	if !found {
		t.Fatal("Document not found after put")
	}

	deleted, _ := memStore.DeleteDocument(ctx, "doc-mem")
	if !deleted {
		t.Error("Delete did not report success")
	}
	_, found, _ = memStore.GetDocument(ctx, "doc-mem")
	if found {
		t.Error("Document resurrected after delete")
	}
}

func TestTextCapping_RuneBoundaries(t *testing.T) {
	t.Run("CapText backs off to a rune start", func(t *testing.T) {
		// 2-byte runes guarantee the byte cap lands mid-rune
		long := strings.Repeat("é", config.MaxStoredTextBytes)
		capped := store.CapText(long)

		if len(capped) > config.MaxStoredTextBytes {
			t.Errorf("CapText exceeded the byte ceiling: %d", len(capped))
		}
		if !utf8.ValidString(capped) {
			t.Error("CapText produced a torn trailing rune")
		}
	})

	t.Run("DeriveDescription backs off to a rune start", func(t *testing.T) {
		long := strings.Repeat("ß", config.DescriptionLength)
		desc := store.DeriveDescription(long)

		if !utf8.ValidString(desc) {
			t.Error("DeriveDescription produced a torn trailing rune")
		}
		if len(desc) > config.DescriptionLength {
			t.Errorf("DeriveDescription exceeded the length cap: %d", len(desc))
		}
	})
}
