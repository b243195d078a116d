// Package messages defines Bubbletea message types for the TUI.
// Messages represent events and commands that flow through the Elm architecture.
package messages

import (
	"github.com/custodia-labs/ragdesk/internal/core/domain"
)

// ViewChanged is sent when navigating between views.
type ViewChanged struct {
	View ViewType
}

// ViewType identifies which view is currently active.
type ViewType int

const (
	// ViewMenu is the main navigation menu.
	ViewMenu ViewType = iota
	// ViewAdmin is the document management screen.
	ViewAdmin
	// ViewChat is the question answering screen.
	ViewChat
	// ViewHelp is the help/keybindings view.
	ViewHelp
)

// String returns the string representation of the view type.
func (v ViewType) String() string {
	switch v {
	case ViewMenu:
		return "menu"
	case ViewAdmin:
		return "admin"
	case ViewChat:
		return "chat"
	case ViewHelp:
		return "help"
	default:
		return "unknown"
	}
}

// OperationDone signals that a coordinator call returned.
// Views re-read coordinator state on render, so only the outcome is carried.
type OperationDone struct {
	Op  domain.Operation
	Err error
}

// AnswerReady carries the result of a chat question.
type AnswerReady struct {
	Turn domain.ChatTurn
	Err  error
}

// ToastExpired signals that the toast with the given id reached its expiry.
type ToastExpired struct {
	ID string
}

// Quit signals the application should exit.
type Quit struct{}
