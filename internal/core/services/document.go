package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/custodia-labs/ragdesk/internal/core/domain"
	"github.com/custodia-labs/ragdesk/internal/core/ports/driven"
	"github.com/custodia-labs/ragdesk/internal/core/ports/driving"
	"github.com/custodia-labs/ragdesk/internal/logger"
)

// Ensure DocumentCoordinator implements the interface.
var _ driving.DocumentCoordinator = (*DocumentCoordinator)(nil)

// DocumentCoordinator owns the document management view state: the current
// page, its cursor, collection stats, the client-side filter and the pending
// upsert input. Each remote call is a single attempt; failures leave the
// previous view state untouched and surface as an error toast.
//
// Concurrent calls of different operations may overlap and the last response
// to arrive wins. A second call of the same operation from an entry point is
// rejected with domain.ErrOperationBusy before any request is issued.
type DocumentCoordinator struct {
	docs      driven.DocumentGateway
	clipboard driven.Clipboard
	busy      *BusyTracker
	toasts    *ToastQueue

	mu     sync.RWMutex
	page   []domain.Document
	cursor domain.PageCursor
	stats  *domain.Stats
	filter string
	draft  string
}

// NewDocumentCoordinator creates a coordinator starting at offset 0 with the given limit.
// The clipboard is optional (can be nil).
func NewDocumentCoordinator(
	docs driven.DocumentGateway,
	clipboard driven.Clipboard,
	toasts *ToastQueue,
	limit int,
) *DocumentCoordinator {
	if toasts == nil {
		toasts = NewToastQueue(0)
	}
	if limit < domain.MinPageLimit || limit > domain.MaxPageLimit {
		limit = domain.DefaultPageLimit
	}
	return &DocumentCoordinator{
		docs:      docs,
		clipboard: clipboard,
		busy:      NewBusyTracker(),
		toasts:    toasts,
		page:      []domain.Document{},
		cursor:    domain.NewPageCursor(limit),
	}
}

// List fetches the page at offset/limit. On success the page and cursor are
// replaced together; on failure both are left as they were.
func (c *DocumentCoordinator) List(ctx context.Context, offset, limit int) error {
	cursor := domain.PageCursor{Offset: offset, Limit: limit}
	if err := cursor.Validate(); err != nil {
		c.toasts.Error(fmt.Sprintf("list failed: %s", err))
		return err
	}
	if !c.busy.TryBegin(domain.OpList) {
		return domain.ErrOperationBusy
	}
	defer c.busy.End(domain.OpList)

	return c.fetchPage(ctx, cursor)
}

// RefreshStats fetches collection metadata. Failures do not touch the page.
func (c *DocumentCoordinator) RefreshStats(ctx context.Context) error {
	if !c.busy.TryBegin(domain.OpStats) {
		return domain.ErrOperationBusy
	}
	defer c.busy.End(domain.OpStats)

	return c.fetchStats(ctx)
}

// Refresh fetches stats and then the current page, in that order.
func (c *DocumentCoordinator) Refresh(ctx context.Context) error {
	statsErr := c.RefreshStats(ctx)
	listErr := c.List(ctx, c.Cursor().Offset, c.Cursor().Limit)
	return errors.Join(statsErr, listErr)
}

// Upsert stores each non-empty, trimmed line of raw as a new document.
// No request is issued when there are no such lines. On success the draft is
// cleared, the cursor returns to the first page and stats then the first
// page are fetched again.
func (c *DocumentCoordinator) Upsert(ctx context.Context, raw string) (*domain.UpsertResult, error) {
	items := SplitUpsertLines(raw)
	if len(items) == 0 {
		c.toasts.Error("nothing to upsert: enter at least one line")
		return nil, domain.ErrEmptyUpsert
	}
	if !c.busy.TryBegin(domain.OpUpsert) {
		return nil, domain.ErrOperationBusy
	}
	defer c.busy.End(domain.OpUpsert)

	logger.Section("Upsert")
	logger.Debug("Upserting %d items", len(items))

	result, err := c.docs.UpsertDocuments(ctx, domain.UpsertRequest{Items: items, Overwrite: false})
	if err != nil {
		c.fail(domain.OpUpsert, "upsert failed", err)
		return nil, err
	}
	if result == nil {
		result = &domain.UpsertResult{}
	}

	c.toasts.OK(fmt.Sprintf("upserted: %s", domain.FormatCount(result.Inserted)))

	c.mu.Lock()
	c.draft = ""
	c.cursor = c.cursor.Reset()
	cursor := c.cursor
	c.mu.Unlock()

	c.reconcile(ctx, cursor)
	return result, nil
}

// DeleteOne removes a single document once the operator confirms. A declined
// confirmation issues no request and shows no toast. On success the current
// page, not the first one, is fetched again.
func (c *DocumentCoordinator) DeleteOne(ctx context.Context, id int64, confirmer driving.Confirmer) error {
	accepted, err := confirmer.Confirm(ctx, fmt.Sprintf("Delete document id=%d?", id))
	if err != nil {
		return fmt.Errorf("confirm delete: %w", err)
	}
	if !accepted {
		logger.Debug("Delete of id=%d declined", id)
		return domain.ErrDeclined
	}
	if !c.busy.TryBegin(domain.OpDelete) {
		return domain.ErrOperationBusy
	}
	defer c.busy.End(domain.OpDelete)

	if err := c.docs.DeleteDocument(ctx, id); err != nil {
		c.fail(domain.OpDelete, "delete failed", err)
		return err
	}

	c.toasts.OK(fmt.Sprintf("deleted: id=%d", id))
	c.reconcile(ctx, c.Cursor())
	return nil
}

// DeleteAll removes every document once both confirmation steps pass.
// A declined first step is silent; a wrong phrase shows a cancellation toast.
// Neither issues a request. Each call runs its own gate.
func (c *DocumentCoordinator) DeleteAll(ctx context.Context, confirmer driving.Confirmer) error {
	gate := NewConfirmationGate(domain.DeleteAllPhrase)
	if err := gate.Run(ctx, confirmer); err != nil {
		if errors.Is(err, domain.ErrPhraseMismatch) {
			c.toasts.Error("canceled: confirmation phrase mismatch")
		}
		logger.Debug("Delete all not confirmed: %v", err)
		return err
	}
	if !c.busy.TryBegin(domain.OpDelete) {
		return domain.ErrOperationBusy
	}
	defer c.busy.End(domain.OpDelete)

	logger.Section("Delete All")

	result, err := c.docs.DeleteAllDocuments(ctx)
	if err != nil {
		c.fail(domain.OpDelete, "delete all failed", err)
		return err
	}
	if result == nil {
		result = &domain.DeleteAllResult{}
	}

	c.toasts.OK(fmt.Sprintf("deleted all: %s", domain.FormatCount(result.Deleted)))

	c.mu.Lock()
	c.cursor = c.cursor.Reset()
	cursor := c.cursor
	c.mu.Unlock()

	c.reconcile(ctx, cursor)
	return nil
}

// Next fetches the page after the current one.
func (c *DocumentCoordinator) Next(ctx context.Context) error {
	next := c.Cursor().Next()
	return c.List(ctx, next.Offset, next.Limit)
}

// Prev fetches the page before the current one, clamped at the start.
func (c *DocumentCoordinator) Prev(ctx context.Context) error {
	prev := c.Cursor().Prev()
	return c.List(ctx, prev.Offset, prev.Limit)
}

// ApplyPaging fetches the first page using a new limit.
func (c *DocumentCoordinator) ApplyPaging(ctx context.Context, limit int) error {
	return c.List(ctx, 0, limit)
}

// Get fetches a single document by id.
func (c *DocumentCoordinator) Get(ctx context.Context, id int64) (*domain.Document, error) {
	doc, err := c.docs.GetDocument(ctx, id)
	if err != nil {
		c.fail(domain.OpList, "get failed", err)
		return nil, err
	}
	return doc, nil
}

// Search runs a similarity search. The current page is not touched.
func (c *DocumentCoordinator) Search(ctx context.Context, query string, topK int) ([]domain.Hit, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		c.toasts.Error("search failed: query is empty")
		return nil, domain.ErrInvalidInput
	}
	hits, err := c.docs.Search(ctx, query, topK)
	if err != nil {
		c.fail(domain.OpList, "search failed", err)
		return nil, err
	}
	if hits == nil {
		hits = []domain.Hit{}
	}
	return hits, nil
}

// Copy writes text to the clipboard. Failures stay inside this call and
// are reported only as an error toast.
func (c *DocumentCoordinator) Copy(text string) {
	if c.clipboard == nil {
		c.toasts.Error(fmt.Sprintf("copy failed: %s", domain.ErrClipboardUnavailable))
		return
	}
	if err := c.clipboard.WriteText(text); err != nil {
		logger.Warn("Clipboard write failed: %v", err)
		c.toasts.Error("copy failed (permission or clipboard unavailable)")
		return
	}
	c.toasts.OK("copied to clipboard")
}

// SetFilter sets the client-side filter query.
func (c *DocumentCoordinator) SetFilter(query string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.filter = query
}

// Filter returns the client-side filter query.
func (c *DocumentCoordinator) Filter() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.filter
}

// Filtered returns the current page narrowed by the filter.
func (c *DocumentCoordinator) Filtered() []domain.Document {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return FilterDocuments(c.page, c.filter)
}

// Page returns a copy of the last fetched page.
func (c *DocumentCoordinator) Page() []domain.Document {
	c.mu.RLock()
	defer c.mu.RUnlock()
	page := make([]domain.Document, len(c.page))
	copy(page, c.page)
	return page
}

// Cursor returns the current pagination cursor.
func (c *DocumentCoordinator) Cursor() domain.PageCursor {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.cursor
}

// Stats returns the last fetched stats, nil before the first fetch.
func (c *DocumentCoordinator) Stats() *domain.Stats {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.stats == nil {
		return nil
	}
	stats := *c.stats
	return &stats
}

// SetDraft replaces the pending upsert input.
func (c *DocumentCoordinator) SetDraft(raw string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.draft = raw
}

// Draft returns the pending upsert input.
func (c *DocumentCoordinator) Draft() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.draft
}

// Busy returns the busy state of the workflow.
func (c *DocumentCoordinator) Busy() driving.BusyState {
	return c.busy
}

// Toasts returns the workflow's notification slot.
func (c *DocumentCoordinator) Toasts() driving.ToastSource {
	return c.toasts
}

// reconcile fetches stats and then the page at cursor after a mutation.
// These calls are not guarded against a concurrent list or stats: the
// mutation has already happened and the view must catch up.
func (c *DocumentCoordinator) reconcile(ctx context.Context, cursor domain.PageCursor) {
	c.busy.Begin(domain.OpStats)
	_ = c.fetchStats(ctx)
	c.busy.End(domain.OpStats)

	c.busy.Begin(domain.OpList)
	_ = c.fetchPage(ctx, cursor)
	c.busy.End(domain.OpList)
}

// fetchPage performs the list request (caller must hold the list flag).
func (c *DocumentCoordinator) fetchPage(ctx context.Context, cursor domain.PageCursor) error {
	logger.Debug("Listing documents offset=%d limit=%d", cursor.Offset, cursor.Limit)

	docs, err := c.docs.ListDocuments(ctx, cursor.Offset, cursor.Limit)
	if err != nil {
		c.fail(domain.OpList, "list failed", err)
		return err
	}
	if docs == nil {
		docs = []domain.Document{}
	}

	c.mu.Lock()
	c.page = docs
	c.cursor = cursor
	c.mu.Unlock()

	logger.Debug("Listed %d documents", len(docs))
	return nil
}

// fetchStats performs the stats request (caller must hold the stats flag).
func (c *DocumentCoordinator) fetchStats(ctx context.Context) error {
	stats, err := c.docs.Stats(ctx)
	if err != nil {
		c.fail(domain.OpStats, "stats failed", err)
		return err
	}

	c.mu.Lock()
	c.stats = stats
	c.mu.Unlock()
	return nil
}

// fail logs err and surfaces it as an error toast.
func (c *DocumentCoordinator) fail(op domain.Operation, prefix string, err error) {
	var upstream *domain.UpstreamError
	if errors.As(err, &upstream) {
		logger.Warn("%s: upstream status=%d detail=%q", op, upstream.Status, upstream.Detail)
	} else {
		logger.Warn("%s: %v", op, err)
	}
	c.toasts.Error(fmt.Sprintf("%s: %s", prefix, err))
}
