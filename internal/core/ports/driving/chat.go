package driving

import (
	"context"

	"github.com/custodia-labs/ragdesk/internal/core/domain"
)

// ChatCoordinator drives the question answering workflow.
type ChatCoordinator interface {
	// Ask sends a question and stores the answer with its contexts.
	Ask(ctx context.Context, question string) (domain.ChatTurn, error)

	// Turn returns the live chat turn.
	Turn() domain.ChatTurn

	// AverageScore returns the mean context score, false when absent.
	AverageScore() (float64, bool)

	// Busy returns the busy state of the workflow.
	Busy() BusyState

	// Toasts returns the workflow's notification slot.
	Toasts() ToastSource
}
