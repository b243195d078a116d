package domain

import "time"

// DefaultToastDuration is how long a toast stays visible.
const DefaultToastDuration = 2400 * time.Millisecond

// ToastKind distinguishes success from failure notifications.
type ToastKind string

const (
	ToastOK    ToastKind = "ok"
	ToastError ToastKind = "error"
)

// String returns the kind name.
func (k ToastKind) String() string {
	return string(k)
}

// Toast is a transient notification. At most one is live at a time.
type Toast struct {
	// ID identifies this toast among successive ones.
	ID string

	// Kind is ok or error.
	Kind ToastKind

	// Message is the text shown to the user.
	Message string

	// ExpiresAt is when the toast is cleared.
	ExpiresAt time.Time
}

// IsError reports whether the toast signals a failure.
func (t Toast) IsError() bool {
	return t.Kind == ToastError
}
