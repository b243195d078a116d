// Package clipboard provides the system clipboard adapter.
package clipboard

import (
	"fmt"

	"github.com/atotto/clipboard"

	"github.com/custodia-labs/ragdesk/internal/core/domain"
	"github.com/custodia-labs/ragdesk/internal/core/ports/driven"
)

// Ensure System implements the interface.
var _ driven.Clipboard = (*System)(nil)

// System writes to the operating system clipboard.
type System struct {
	unsupported func() bool
	write       func(string) error
}

// New creates a system clipboard adapter.
func New() *System {
	return &System{
		unsupported: func() bool { return clipboard.Unsupported },
		write:       clipboard.WriteAll,
	}
}

// WriteText places text on the clipboard.
func (s *System) WriteText(text string) error {
	if s.unsupported() {
		return domain.ErrClipboardUnavailable
	}
	if err := s.write(text); err != nil {
		return fmt.Errorf("%w: %v", domain.ErrClipboardUnavailable, err)
	}
	return nil
}
