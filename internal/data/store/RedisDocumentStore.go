package store

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"

	"github.com/rkampati/carekb/internal/config"
	"github.com/rkampati/carekb/internal/data/redisStore"
	"github.com/rkampati/carekb/internal/domain/docModel"
	"github.com/rkampati/carekb/pkg/logger_i"
)

const documentKeyPrefix = "document:"

type RedisDocumentStore struct {
	store  *redisStore.Store
	logger *logger_i.Logger
}

func GetRedisDocumentStore(ctx context.Context) *RedisDocumentStore {
	inner := redisStore.GetRedisStore(ctx, config.RedisDocumentStore)
	if inner == nil {
		return nil
	}
	return &RedisDocumentStore{
		store:  inner,
		logger: logger_i.NewLogger("DocumentStore"),
	}
}

func documentKey(id string) string {
	return documentKeyPrefix + id
}

func (s *RedisDocumentStore) PutDocument(ctx context.Context, doc docModel.Document) error {
	log := s.logger.With("traceId", ctx.Value(config.TRACE_ID_KEY), "document id", doc.Id)
	log.Debug("saving document")
	data, err := json.Marshal(doc)
	if err != nil {
		return err
	}

	err = s.store.Set(ctx, documentKey(doc.Id), data, config.RedisDocumentStoreTTL)
	if err != nil {
		return fmt.Errorf("document store unavailable: %w", err)
	}
	log.Debug("Saved document to Redis")
	return nil
}

func (s *RedisDocumentStore) GetDocument(ctx context.Context, id string) (docModel.Document, bool, error) {
	var doc docModel.Document
	val, err := s.store.Get(ctx, documentKey(id))
	if s.store.IsNil(err) {
		return doc, false, nil
	} else if err != nil {
		return doc, false, fmt.Errorf("document store unavailable: %w", err)
	}

	if err = json.Unmarshal([]byte(val), &doc); err != nil {
		return doc, false, fmt.Errorf("corrupt document record %s: %w", id, err)
	}
	return doc, true, nil
}

func (s *RedisDocumentStore) ListDocuments(ctx context.Context, filter docModel.ListFilter) ([]docModel.Document, error) {
	keys, err := s.store.ScanKeys(ctx, documentKeyPrefix+"*")
	if err != nil {
		return nil, fmt.Errorf("document store unavailable: %w", err)
	}
	if len(keys) == 0 {
		return nil, nil
	}

	values, err := s.store.MGet(ctx, keys...)
	if err != nil {
		return nil, fmt.Errorf("document store unavailable: %w", err)
	}

	var docs []docModel.Document
	for _, val := range values {
		var doc docModel.Document
		if err := json.Unmarshal([]byte(val), &doc); err != nil {
			s.logger.Warn("skipping corrupt document record", "error", err)
			continue
		}
		if matchesFilter(doc, filter) {
			docs = append(docs, doc)
		}
	}

	// SCAN order is arbitrary; newest-first keeps listings stable
	sort.Slice(docs, func(i, j int) bool {
		return docs[i].UploadedAt.After(docs[j].UploadedAt)
	})
	return docs, nil
}

func (s *RedisDocumentStore) UpdateDocument(ctx context.Context, id string, patch docModel.DocumentPatch) (docModel.Document, bool, error) {
	doc, found, err := s.GetDocument(ctx, id)
	if err != nil || !found {
		return docModel.Document{}, found, err
	}

	doc = applyPatch(doc, patch)
	if err := s.PutDocument(ctx, doc); err != nil {
		return docModel.Document{}, true, err
	}
	return doc, true, nil
}

func (s *RedisDocumentStore) DeleteDocument(ctx context.Context, id string) (bool, error) {
	deleted, err := s.store.Del(ctx, documentKey(id))
	if err != nil {
		return false, fmt.Errorf("document store unavailable: %w", err)
	}
	s.logger.Debug("Document delete", "id", id, "deleted", deleted > 0)
	return deleted > 0, nil
}

// TestDocumentStore wires a miniredis-backed store for tests.
func TestDocumentStore(inner *redisStore.Store) *RedisDocumentStore {
	return &RedisDocumentStore{
		store:  inner,
		logger: logger_i.NewLogger("test document store"),
	}
}
