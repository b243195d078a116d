package domain

import "fmt"

// Page limit bounds accepted by the list operation.
const (
	MinPageLimit     = 1
	MaxPageLimit     = 200
	DefaultPageLimit = 20
)

// PageCursor is the offset/limit window over the stored collection.
// Offset only moves in steps of Limit or resets to zero, so it is always
// a multiple of the limit used to reach it.
type PageCursor struct {
	Offset int `json:"offset"`
	Limit  int `json:"limit"`
}

// NewPageCursor returns a cursor at the start of the collection.
func NewPageCursor(limit int) PageCursor {
	return PageCursor{Offset: 0, Limit: limit}
}

// Validate checks the cursor against the accepted bounds.
func (c PageCursor) Validate() error {
	if c.Limit < MinPageLimit || c.Limit > MaxPageLimit {
		return fmt.Errorf("%w: limit must be in [%d, %d], got %d",
			ErrInvalidPaging, MinPageLimit, MaxPageLimit, c.Limit)
	}
	if c.Offset < 0 {
		return fmt.Errorf("%w: offset must be >= 0, got %d", ErrInvalidPaging, c.Offset)
	}
	return nil
}

// Next returns the cursor advanced by one page.
func (c PageCursor) Next() PageCursor {
	return PageCursor{Offset: c.Offset + c.Limit, Limit: c.Limit}
}

// Prev returns the cursor moved back by one page, clamped at zero.
func (c PageCursor) Prev() PageCursor {
	return PageCursor{Offset: max(0, c.Offset-c.Limit), Limit: c.Limit}
}

// Reset returns the cursor moved back to the start.
func (c PageCursor) Reset() PageCursor {
	return PageCursor{Offset: 0, Limit: c.Limit}
}

// WithLimit returns a cursor at the start using the given limit.
func (c PageCursor) WithLimit(limit int) PageCursor {
	return PageCursor{Offset: 0, Limit: limit}
}

// AtStart reports whether the cursor is on the first page.
func (c PageCursor) AtStart() bool {
	return c.Offset == 0
}
