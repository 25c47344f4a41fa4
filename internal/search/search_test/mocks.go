package search_test

import (
	"context"

	"github.com/rkampati/carekb/internal/domain/docModel"
)

// MockDocumentStore implements docModel.DocumentStore
type MockDocumentStore struct {
	OnList   func(ctx context.Context, filter docModel.ListFilter) ([]docModel.Document, error)
	OnGet    func(ctx context.Context, id string) (docModel.Document, bool, error)
	OnPut    func(ctx context.Context, doc docModel.Document) error
	OnUpdate func(ctx context.Context, id string, patch docModel.DocumentPatch) (docModel.Document, bool, error)
	OnDelete func(ctx context.Context, id string) (bool, error)
}

func (m *MockDocumentStore) ListDocuments(ctx context.Context, filter docModel.ListFilter) ([]docModel.Document, error) {
	if m.OnList != nil {
		return m.OnList(ctx, filter)
	}
	return nil, nil
}

func (m *MockDocumentStore) GetDocument(ctx context.Context, id string) (docModel.Document, bool, error) {
	if m.OnGet != nil {
		return m.OnGet(ctx, id)
	}
	return docModel.Document{}, false, nil
}

func (m *MockDocumentStore) PutDocument(ctx context.Context, doc docModel.Document) error {
	if m.OnPut != nil {
		return m.OnPut(ctx, doc)
	}
	return nil
}

func (m *MockDocumentStore) UpdateDocument(ctx context.Context, id string, patch docModel.DocumentPatch) (docModel.Document, bool, error) {
	if m.OnUpdate != nil {
		return m.OnUpdate(ctx, id, patch)
	}
	return docModel.Document{}, false, nil
}

func (m *MockDocumentStore) DeleteDocument(ctx context.Context, id string) (bool, error) {
	if m.OnDelete != nil {
		return m.OnDelete(ctx, id)
	}
	return false, nil
}
