// Package tui provides an interactive terminal user interface for ragdesk.
// It implements a driving adapter following hexagonal architecture principles.
package tui

import (
	"github.com/custodia-labs/ragdesk/internal/core/ports/driving"
)

// Ports aggregates all driving port interfaces required by the TUI.
// This provides a single injection point for dependency injection.
type Ports struct {
	// Documents drives the admin screen.
	Documents driving.DocumentCoordinator

	// Chat drives the chat screen.
	Chat driving.ChatCoordinator
}

// NewPorts creates a new Ports aggregate with the given coordinators.
func NewPorts(documents driving.DocumentCoordinator, chat driving.ChatCoordinator) *Ports {
	return &Ports{Documents: documents, Chat: chat}
}

// Validate ensures all required ports are set.
func (p *Ports) Validate() error {
	if p.Documents == nil {
		return ErrMissingDocumentCoordinator
	}
	if p.Chat == nil {
		return ErrMissingChatCoordinator
	}
	return nil
}
