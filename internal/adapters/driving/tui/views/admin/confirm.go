package admin

import (
	"context"

	"github.com/custodia-labs/ragdesk/internal/core/ports/driving"
)

// dialog identifies the confirmation step shown over the list.
type dialog int

const (
	dialogNone dialog = iota
	dialogDeleteOne
	dialogDeleteAllIntent
	dialogDeleteAllPhrase
)

// answered replays the operator's dialog answers to the coordinator.
// The dialog collects them on screen first, so the coordinator call never
// waits on the event loop.
type answered struct {
	accept bool
	phrase string
}

var _ driving.Confirmer = answered{}

func (a answered) Confirm(context.Context, string) (bool, error) {
	return a.accept, nil
}

func (a answered) Prompt(context.Context, string) (string, error) {
	return a.phrase, nil
}
