package memory

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/custodia-labs/ragdesk/internal/core/domain"
	"github.com/custodia-labs/ragdesk/internal/core/ports/driven"
)

// Ensure DocumentStore implements the gateway interfaces.
var (
	_ driven.DocumentGateway = (*DocumentStore)(nil)
	_ driven.AnswerGateway   = (*DocumentStore)(nil)
)

// CollectionName is reported by Stats.
const CollectionName = "memory"

// DocumentStore is an in-memory document backend. Ids are assigned by the
// store, starting at 1, and listing is ordered by id.
type DocumentStore struct {
	mu        sync.RWMutex
	documents map[int64]domain.Document
	nextID    int64
}

// NewDocumentStore creates a new in-memory document store.
func NewDocumentStore() *DocumentStore {
	return &DocumentStore{
		documents: make(map[int64]domain.Document),
		nextID:    1,
	}
}

// Seed inserts texts directly and returns their ids.
func (s *DocumentStore) Seed(texts ...string) []int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	ids := make([]int64, 0, len(texts))
	for _, text := range texts {
		ids = append(ids, s.insert(text))
	}
	return ids
}

// ListDocuments returns the id-ordered window at offset/limit.
func (s *DocumentStore) ListDocuments(_ context.Context, offset, limit int) ([]domain.Document, error) {
	cursor := domain.PageCursor{Offset: offset, Limit: limit}
	if err := cursor.Validate(); err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	sorted := s.sorted()
	if offset >= len(sorted) {
		return []domain.Document{}, nil
	}
	end := offset + limit
	if end > len(sorted) {
		end = len(sorted)
	}
	page := make([]domain.Document, end-offset)
	copy(page, sorted[offset:end])
	return page, nil
}

// GetDocument retrieves a document by id.
func (s *DocumentStore) GetDocument(_ context.Context, id int64) (*domain.Document, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	doc, ok := s.documents[id]
	if !ok {
		return nil, fmt.Errorf("document %d: %w", id, domain.ErrNotFound)
	}
	return &doc, nil
}

// UpsertDocuments stores each item as a new document. With Overwrite set,
// existing documents are removed first.
func (s *DocumentStore) UpsertDocuments(_ context.Context, req domain.UpsertRequest) (*domain.UpsertResult, error) {
	if len(req.Items) == 0 {
		return nil, domain.ErrEmptyUpsert
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if req.Overwrite {
		s.documents = make(map[int64]domain.Document)
	}

	ids := make([]int64, 0, len(req.Items))
	for _, item := range req.Items {
		ids = append(ids, s.insert(item.Text))
	}
	inserted := len(ids)
	return &domain.UpsertResult{Inserted: &inserted, IDs: ids}, nil
}

// DeleteDocument removes a document by id.
func (s *DocumentStore) DeleteDocument(_ context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.documents[id]; !ok {
		return fmt.Errorf("document %d: %w", id, domain.ErrNotFound)
	}
	delete(s.documents, id)
	return nil
}

// DeleteAllDocuments removes every document and reports how many were removed.
func (s *DocumentStore) DeleteAllDocuments(_ context.Context) (*domain.DeleteAllResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	deleted := len(s.documents)
	s.documents = make(map[int64]domain.Document)
	return &domain.DeleteAllResult{Deleted: &deleted}, nil
}

// Stats reports the collection name and document count.
func (s *DocumentStore) Stats(_ context.Context) (*domain.Stats, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return &domain.Stats{Collection: CollectionName, NumEntities: int64(len(s.documents))}, nil
}

// Search ranks documents by the share of query terms their text contains.
// Documents matching no term are left out.
func (s *DocumentStore) Search(_ context.Context, query string, topK int) ([]domain.Hit, error) {
	terms := strings.Fields(strings.ToLower(query))
	if len(terms) == 0 {
		return nil, domain.ErrInvalidInput
	}
	if topK <= 0 {
		topK = domain.DefaultTopK
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	hits := make([]domain.Hit, 0)
	for _, doc := range s.sorted() {
		text := strings.ToLower(doc.Text)
		matched := 0
		for _, term := range terms {
			if strings.Contains(text, term) {
				matched++
			}
		}
		if matched == 0 {
			continue
		}
		hits = append(hits, domain.Hit{
			ID:    doc.ID,
			Score: float64(matched) / float64(len(terms)),
			Text:  doc.Text,
		})
	}

	sort.SliceStable(hits, func(i, j int) bool {
		return hits[i].Score > hits[j].Score
	})
	if len(hits) > topK {
		hits = hits[:topK]
	}
	return hits, nil
}

// Ask answers with the best matching documents as context. The answer text
// quotes the top context.
func (s *DocumentStore) Ask(ctx context.Context, question string, topK int) (*domain.Answer, error) {
	hits, err := s.Search(ctx, question, topK)
	if err != nil {
		return nil, err
	}
	answer := &domain.Answer{Contexts: hits, Model: CollectionName}
	if len(hits) == 0 {
		answer.Answer = "No stored document matches the question."
		return answer, nil
	}
	answer.Answer = fmt.Sprintf("From %d matching document(s): %s", len(hits), hits[0].Text)
	return answer, nil
}

// insert adds a document with the next id (caller must hold the write lock).
func (s *DocumentStore) insert(text string) int64 {
	id := s.nextID
	s.nextID++
	s.documents[id] = domain.Document{ID: id, Text: text}
	return id
}

// sorted returns the documents ordered by id (caller must hold a lock).
func (s *DocumentStore) sorted() []domain.Document {
	docs := make([]domain.Document, 0, len(s.documents))
	for _, doc := range s.documents {
		docs = append(docs, doc)
	}
	sort.Slice(docs, func(i, j int) bool {
		return docs[i].ID < docs[j].ID
	})
	return docs
}
