package store

import (
	"context"
	"sort"
	"sync"

	"github.com/rkampati/carekb/internal/domain/docModel"
	"github.com/rkampati/carekb/pkg/logger_i"
)

var inMemLogger = logger_i.NewLogger("InMem DocumentStore")

// InMemoryDocumentStore is the fallback when redis is offline. All
// operations on a given id are serialized by the single lock, which is
// what makes delete terminal: a delete that lands after a put removes
// the record, and only a later explicit put recreates it.
type InMemoryDocumentStore struct {
	mutex  *sync.RWMutex
	docMap map[string]docModel.Document
}

func InitInMemoryDocumentStore() *InMemoryDocumentStore {
	return &InMemoryDocumentStore{
		mutex:  new(sync.RWMutex),
		docMap: make(map[string]docModel.Document),
	}
}

func (s *InMemoryDocumentStore) PutDocument(ctx context.Context, doc docModel.Document) error {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	s.docMap[doc.Id] = doc
	inMemLogger.Debug("Saved document to store", "id", doc.Id)
	return nil
}

func (s *InMemoryDocumentStore) GetDocument(ctx context.Context, id string) (docModel.Document, bool, error) {
	s.mutex.RLock()
	defer s.mutex.RUnlock()
	doc, found := s.docMap[id]
	return doc, found, nil
}

func (s *InMemoryDocumentStore) ListDocuments(ctx context.Context, filter docModel.ListFilter) ([]docModel.Document, error) {
	s.mutex.RLock()
	defer s.mutex.RUnlock()

	var docs []docModel.Document
	for _, doc := range s.docMap {
		if matchesFilter(doc, filter) {
			docs = append(docs, doc)
		}
	}
	sort.Slice(docs, func(i, j int) bool {
		return docs[i].UploadedAt.After(docs[j].UploadedAt)
	})
	return docs, nil
}

func (s *InMemoryDocumentStore) UpdateDocument(ctx context.Context, id string, patch docModel.DocumentPatch) (docModel.Document, bool, error) {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	doc, found := s.docMap[id]
	if !found {
		return docModel.Document{}, false, nil
	}
	doc = applyPatch(doc, patch)
	s.docMap[id] = doc
	return doc, true, nil
}

func (s *InMemoryDocumentStore) DeleteDocument(ctx context.Context, id string) (bool, error) {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	_, found := s.docMap[id]
	delete(s.docMap, id)
	return found, nil
}
