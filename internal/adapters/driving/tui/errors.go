package tui

import "errors"

// ErrMissingDocumentCoordinator is returned when the document coordinator is not provided.
var ErrMissingDocumentCoordinator = errors.New("tui: document coordinator is required")

// ErrMissingChatCoordinator is returned when the chat coordinator is not provided.
var ErrMissingChatCoordinator = errors.New("tui: chat coordinator is required")
