package services

import (
	"context"
	"fmt"
	"sync"

	"github.com/custodia-labs/ragdesk/internal/core/domain"
	"github.com/custodia-labs/ragdesk/internal/core/ports/driving"
)

// ConfirmationGate is the two-step challenge guarding delete-all.
//
//	idle --Start--> awaiting-intent --Intent(yes)--> awaiting-phrase --Phrase("DELETE")--> confirmed
//	                      |                                 |
//	                 Intent(no)                      Phrase(other)
//	                      v                                 v
//	                   aborted                           aborted
//
// Transitions from any other state are ignored.
type ConfirmationGate struct {
	mu     sync.Mutex
	state  domain.ConfirmationState
	phrase string
}

// NewConfirmationGate creates an idle gate requiring the given phrase.
// An empty phrase uses domain.DeleteAllPhrase.
func NewConfirmationGate(phrase string) *ConfirmationGate {
	if phrase == "" {
		phrase = domain.DeleteAllPhrase
	}
	return &ConfirmationGate{phrase: phrase}
}

// State returns the current state.
func (g *ConfirmationGate) State() domain.ConfirmationState {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.state
}

// Start begins a new challenge. A gate in a terminal state is restarted.
func (g *ConfirmationGate) Start() domain.ConfirmationState {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.state == domain.ConfirmIdle || g.state.IsTerminal() {
		g.state = domain.ConfirmAwaitingIntent
	}
	return g.state
}

// Intent records the yes/no answer to the first step.
func (g *ConfirmationGate) Intent(accepted bool) domain.ConfirmationState {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.state != domain.ConfirmAwaitingIntent {
		return g.state
	}
	if accepted {
		g.state = domain.ConfirmAwaitingPhrase
	} else {
		g.state = domain.ConfirmAborted
	}
	return g.state
}

// Phrase records the typed phrase. The comparison is exact and case-sensitive.
func (g *ConfirmationGate) Phrase(typed string) domain.ConfirmationState {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.state != domain.ConfirmAwaitingPhrase {
		return g.state
	}
	if typed == g.phrase {
		g.state = domain.ConfirmConfirmed
	} else {
		g.state = domain.ConfirmAborted
	}
	return g.state
}

// Reset returns the gate to idle.
func (g *ConfirmationGate) Reset() {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.state = domain.ConfirmIdle
}

// Run drives the gate through both steps with the given confirmer.
// It returns nil only when the gate reaches confirmed; ErrDeclined when the
// first step is refused and ErrPhraseMismatch when the phrase is wrong.
func (g *ConfirmationGate) Run(ctx context.Context, confirmer driving.Confirmer) error {
	defer g.Reset()

	g.Start()

	accepted, err := confirmer.Confirm(ctx, "Deleting every document cannot be undone. Continue?")
	if err != nil {
		g.Intent(false)
		return fmt.Errorf("confirm intent: %w", err)
	}
	if g.Intent(accepted) == domain.ConfirmAborted {
		return domain.ErrDeclined
	}

	typed, err := confirmer.Prompt(ctx, fmt.Sprintf("Type %q to confirm", g.phrase))
	if err != nil {
		g.Phrase("")
		return fmt.Errorf("confirm phrase: %w", err)
	}
	if g.Phrase(typed) != domain.ConfirmConfirmed {
		return domain.ErrPhraseMismatch
	}
	return nil
}
