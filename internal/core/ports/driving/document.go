package driving

import (
	"context"

	"github.com/custodia-labs/ragdesk/internal/core/domain"
)

// Confirmer asks the operator to confirm destructive actions.
// Implementations are supplied by the driving adapter (TUI dialog, CLI prompt).
type Confirmer interface {
	// Confirm asks a yes/no question.
	Confirm(ctx context.Context, question string) (bool, error)

	// Prompt asks for a typed answer. A cancelled prompt returns "".
	Prompt(ctx context.Context, question string) (string, error)
}

// BusyState reports which operations are in flight.
type BusyState interface {
	// IsBusy reports whether any of the given operations is in flight.
	// With no arguments it reports whether any operation is in flight.
	IsBusy(ops ...domain.Operation) bool
}

// ToastSource exposes the live notification.
type ToastSource interface {
	// Current returns the live toast, if any.
	Current() (domain.Toast, bool)
}

// DocumentCoordinator drives the document management workflow.
// Every remote call posts a toast on failure; success toasts are posted
// where the workflow calls for them.
type DocumentCoordinator interface {
	// List fetches the page at offset/limit and replaces the current page.
	List(ctx context.Context, offset, limit int) error

	// RefreshStats fetches collection metadata.
	RefreshStats(ctx context.Context) error

	// Refresh fetches stats and then the current page.
	Refresh(ctx context.Context) error

	// Upsert stores each non-empty line of raw as a new document.
	Upsert(ctx context.Context, raw string) (*domain.UpsertResult, error)

	// DeleteOne removes a single document after a yes/no confirmation.
	DeleteOne(ctx context.Context, id int64, confirmer Confirmer) error

	// DeleteAll removes every document after the two-step confirmation.
	DeleteAll(ctx context.Context, confirmer Confirmer) error

	// Next fetches the following page.
	Next(ctx context.Context) error

	// Prev fetches the previous page, clamped at the start.
	Prev(ctx context.Context) error

	// ApplyPaging fetches the first page using a new limit.
	ApplyPaging(ctx context.Context, limit int) error

	// Get fetches a single document by id.
	Get(ctx context.Context, id int64) (*domain.Document, error)

	// Search runs a similarity search without touching the current page.
	Search(ctx context.Context, query string, topK int) ([]domain.Hit, error)

	// Copy writes text to the clipboard, reporting the outcome as a toast.
	Copy(text string)

	// SetFilter sets the client-side filter query.
	SetFilter(query string)

	// Filter returns the client-side filter query.
	Filter() string

	// Filtered returns the current page narrowed by the filter.
	Filtered() []domain.Document

	// Page returns the last fetched page.
	Page() []domain.Document

	// Cursor returns the current pagination cursor.
	Cursor() domain.PageCursor

	// Stats returns the last fetched stats, nil before the first fetch.
	Stats() *domain.Stats

	// SetDraft replaces the pending upsert input.
	SetDraft(raw string)

	// Draft returns the pending upsert input.
	Draft() string

	// Busy returns the busy state of the workflow.
	Busy() BusyState

	// Toasts returns the workflow's notification slot.
	Toasts() ToastSource
}
