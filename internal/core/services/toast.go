package services

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/custodia-labs/ragdesk/internal/core/domain"
	"github.com/custodia-labs/ragdesk/internal/core/ports/driving"
)

// Ensure ToastQueue implements the interface.
var _ driving.ToastSource = (*ToastQueue)(nil)

// ToastQueue is a single-slot notification with an auto-expiry timer.
// Showing a toast replaces the current one and cancels its timer, so only
// the latest toast's timer is ever live. Toasts shown faster than the
// display duration are lost.
type ToastQueue struct {
	mu       sync.Mutex
	current  *domain.Toast
	timer    *time.Timer
	duration time.Duration
	now      func() time.Time
	notify   func(toast domain.Toast, visible bool)
}

// NewToastQueue creates an empty queue. A non-positive duration uses the default.
func NewToastQueue(duration time.Duration) *ToastQueue {
	if duration <= 0 {
		duration = domain.DefaultToastDuration
	}
	return &ToastQueue{
		duration: duration,
		now:      time.Now,
	}
}

// SetNotify registers a callback invoked whenever the slot changes.
// visible is false when the slot was cleared.
func (q *ToastQueue) SetNotify(fn func(toast domain.Toast, visible bool)) {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.notify = fn
}

// Show replaces the current toast and re-arms the expiry timer.
func (q *ToastQueue) Show(kind domain.ToastKind, message string) domain.Toast {
	q.mu.Lock()
	if q.timer != nil {
		q.timer.Stop()
	}

	toast := domain.Toast{
		ID:        uuid.NewString(),
		Kind:      kind,
		Message:   message,
		ExpiresAt: q.now().Add(q.duration),
	}
	q.current = &toast

	id := toast.ID
	q.timer = time.AfterFunc(q.duration, func() { q.expire(id) })
	notify := q.notify
	q.mu.Unlock()

	if notify != nil {
		notify(toast, true)
	}
	return toast
}

// OK shows a success toast.
func (q *ToastQueue) OK(message string) domain.Toast {
	return q.Show(domain.ToastOK, message)
}

// Error shows a failure toast.
func (q *ToastQueue) Error(message string) domain.Toast {
	return q.Show(domain.ToastError, message)
}

// Clear removes the current toast immediately.
func (q *ToastQueue) Clear() {
	q.mu.Lock()
	if q.timer != nil {
		q.timer.Stop()
		q.timer = nil
	}
	prev := q.current
	q.current = nil
	notify := q.notify
	q.mu.Unlock()

	if prev != nil && notify != nil {
		notify(*prev, false)
	}
}

// Current returns the live toast, if any.
func (q *ToastQueue) Current() (domain.Toast, bool) {
	q.mu.Lock()
	defer q.mu.Unlock()
	if q.current == nil {
		return domain.Toast{}, false
	}
	return *q.current, true
}

// expire clears the slot only if it still holds the toast the timer was armed for.
// A timer that fired while a newer toast was being shown must not clear it.
func (q *ToastQueue) expire(id string) {
	q.mu.Lock()
	if q.current == nil || q.current.ID != id {
		q.mu.Unlock()
		return
	}
	prev := *q.current
	q.current = nil
	q.timer = nil
	notify := q.notify
	q.mu.Unlock()

	if notify != nil {
		notify(prev, false)
	}
}
