package driven

import (
	"context"

	"github.com/custodia-labs/ragdesk/internal/core/domain"
)

// DocumentGateway performs one call to a document store operation.
// Every method issues exactly one request and never retries.
// Non-success responses are returned as *domain.UpstreamError.
type DocumentGateway interface {
	// ListDocuments returns the documents in the offset/limit window.
	ListDocuments(ctx context.Context, offset, limit int) ([]domain.Document, error)

	// GetDocument returns a single document by id.
	GetDocument(ctx context.Context, id int64) (*domain.Document, error)

	// UpsertDocuments stores new documents. Ids are assigned by the backend.
	UpsertDocuments(ctx context.Context, req domain.UpsertRequest) (*domain.UpsertResult, error)

	// DeleteDocument removes a single document.
	DeleteDocument(ctx context.Context, id int64) error

	// DeleteAllDocuments removes every document. The request always carries
	// the explicit confirm flag.
	DeleteAllDocuments(ctx context.Context) (*domain.DeleteAllResult, error)

	// Stats returns aggregate collection metadata.
	Stats(ctx context.Context) (*domain.Stats, error)

	// Search returns the topK documents most similar to the query.
	Search(ctx context.Context, query string, topK int) ([]domain.Hit, error)
}

// AnswerGateway performs one call to the question answering service.
type AnswerGateway interface {
	// Ask answers a question using retrieved document context.
	Ask(ctx context.Context, question string, topK int) (*domain.Answer, error)
}
