package services

import (
	"context"
	"sync"

	"github.com/custodia-labs/ragdesk/internal/core/domain"
	"github.com/custodia-labs/ragdesk/internal/core/ports/driven"
)

// MockDocumentGateway wraps an optional backend and lets tests override
// single calls. Every call is recorded by name.
type MockDocumentGateway struct {
	Backend driven.DocumentGateway

	ListDocumentsFunc      func(ctx context.Context, offset, limit int) ([]domain.Document, error)
	UpsertDocumentsFunc    func(ctx context.Context, req domain.UpsertRequest) (*domain.UpsertResult, error)
	DeleteDocumentFunc     func(ctx context.Context, id int64) error
	DeleteAllDocumentsFunc func(ctx context.Context) (*domain.DeleteAllResult, error)
	StatsFunc              func(ctx context.Context) (*domain.Stats, error)
	SearchFunc             func(ctx context.Context, query string, topK int) ([]domain.Hit, error)

	mu    sync.Mutex
	calls []string
}

func (m *MockDocumentGateway) record(name string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls = append(m.calls, name)
}

// Calls returns the recorded call names in order.
func (m *MockDocumentGateway) Calls() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string{}, m.calls...)
}

// Count returns how many times name was called.
func (m *MockDocumentGateway) Count(name string) int {
	n := 0
	for _, c := range m.Calls() {
		if c == name {
			n++
		}
	}
	return n
}

func (m *MockDocumentGateway) ListDocuments(ctx context.Context, offset, limit int) ([]domain.Document, error) {
	m.record("list")
	if m.ListDocumentsFunc != nil {
		return m.ListDocumentsFunc(ctx, offset, limit)
	}
	if m.Backend != nil {
		return m.Backend.ListDocuments(ctx, offset, limit)
	}
	return []domain.Document{}, nil
}

func (m *MockDocumentGateway) GetDocument(ctx context.Context, id int64) (*domain.Document, error) {
	m.record("get")
	if m.Backend != nil {
		return m.Backend.GetDocument(ctx, id)
	}
	return nil, domain.ErrNotFound
}

func (m *MockDocumentGateway) UpsertDocuments(
	ctx context.Context, req domain.UpsertRequest,
) (*domain.UpsertResult, error) {
	m.record("upsert")
	if m.UpsertDocumentsFunc != nil {
		return m.UpsertDocumentsFunc(ctx, req)
	}
	if m.Backend != nil {
		return m.Backend.UpsertDocuments(ctx, req)
	}
	return &domain.UpsertResult{}, nil
}

func (m *MockDocumentGateway) DeleteDocument(ctx context.Context, id int64) error {
	m.record("delete")
	if m.DeleteDocumentFunc != nil {
		return m.DeleteDocumentFunc(ctx, id)
	}
	if m.Backend != nil {
		return m.Backend.DeleteDocument(ctx, id)
	}
	return nil
}

func (m *MockDocumentGateway) DeleteAllDocuments(ctx context.Context) (*domain.DeleteAllResult, error) {
	m.record("delete-all")
	if m.DeleteAllDocumentsFunc != nil {
		return m.DeleteAllDocumentsFunc(ctx)
	}
	if m.Backend != nil {
		return m.Backend.DeleteAllDocuments(ctx)
	}
	return &domain.DeleteAllResult{}, nil
}

func (m *MockDocumentGateway) Stats(ctx context.Context) (*domain.Stats, error) {
	m.record("stats")
	if m.StatsFunc != nil {
		return m.StatsFunc(ctx)
	}
	if m.Backend != nil {
		return m.Backend.Stats(ctx)
	}
	return &domain.Stats{}, nil
}

func (m *MockDocumentGateway) Search(ctx context.Context, query string, topK int) ([]domain.Hit, error) {
	m.record("search")
	if m.SearchFunc != nil {
		return m.SearchFunc(ctx, query, topK)
	}
	if m.Backend != nil {
		return m.Backend.Search(ctx, query, topK)
	}
	return nil, nil
}

// MockAnswerGateway is a test double for driven.AnswerGateway.
type MockAnswerGateway struct {
	AskFunc func(ctx context.Context, question string, topK int) (*domain.Answer, error)

	mu    sync.Mutex
	asked []string
	topK  int
}

func (m *MockAnswerGateway) Ask(ctx context.Context, question string, topK int) (*domain.Answer, error) {
	m.mu.Lock()
	m.asked = append(m.asked, question)
	m.topK = topK
	m.mu.Unlock()
	if m.AskFunc != nil {
		return m.AskFunc(ctx, question, topK)
	}
	return &domain.Answer{}, nil
}

// Asked returns the questions sent so far.
func (m *MockAnswerGateway) Asked() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string{}, m.asked...)
}

// scriptedConfirmer answers Confirm and Prompt with fixed values.
type scriptedConfirmer struct {
	accept     bool
	phrase     string
	confirmErr error
	promptErr  error

	confirms int
	prompts  int
}

func (c *scriptedConfirmer) Confirm(_ context.Context, _ string) (bool, error) {
	c.confirms++
	return c.accept, c.confirmErr
}

func (c *scriptedConfirmer) Prompt(_ context.Context, _ string) (string, error) {
	c.prompts++
	return c.phrase, c.promptErr
}

// MockClipboard records written text.
type MockClipboard struct {
	Err     error
	Written []string
}

func (m *MockClipboard) WriteText(text string) error {
	if m.Err != nil {
		return m.Err
	}
	m.Written = append(m.Written, text)
	return nil
}
