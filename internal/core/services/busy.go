package services

import (
	"sort"
	"sync"

	"github.com/custodia-labs/ragdesk/internal/core/domain"
	"github.com/custodia-labs/ragdesk/internal/core/ports/driving"
)

// Ensure BusyTracker implements the interface.
var _ driving.BusyState = (*BusyTracker)(nil)

// BusyTracker records which operations are in flight.
// Flags are reference counted so an overlapping reconciliation call cannot
// clear another call's flag early; callers only ever observe booleans.
type BusyTracker struct {
	mu     sync.RWMutex
	counts map[domain.Operation]int
}

// NewBusyTracker creates an idle tracker.
func NewBusyTracker() *BusyTracker {
	return &BusyTracker{counts: make(map[domain.Operation]int)}
}

// Begin marks op as in flight.
func (b *BusyTracker) Begin(op domain.Operation) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.counts[op]++
}

// TryBegin marks op as in flight unless it already is.
// It reports whether the caller now owns the flag.
func (b *BusyTracker) TryBegin(op domain.Operation) bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.counts[op] > 0 {
		return false
	}
	b.counts[op]++
	return true
}

// End clears one in-flight mark for op.
func (b *BusyTracker) End(op domain.Operation) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.counts[op] <= 1 {
		delete(b.counts, op)
		return
	}
	b.counts[op]--
}

// IsBusy reports whether any of ops is in flight.
// With no arguments it reports whether any operation is in flight.
func (b *BusyTracker) IsBusy(ops ...domain.Operation) bool {
	b.mu.RLock()
	defer b.mu.RUnlock()
	if len(ops) == 0 {
		return len(b.counts) > 0
	}
	for _, op := range ops {
		if b.counts[op] > 0 {
			return true
		}
	}
	return false
}

// Active returns the in-flight operations in name order.
func (b *BusyTracker) Active() []domain.Operation {
	b.mu.RLock()
	defer b.mu.RUnlock()
	ops := make([]domain.Operation, 0, len(b.counts))
	for op := range b.counts {
		ops = append(ops, op)
	}
	sort.Slice(ops, func(i, j int) bool { return ops[i] < ops[j] })
	return ops
}
