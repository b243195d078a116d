package domain

// DeleteAllPhrase must be typed exactly to confirm a delete-all.
const DeleteAllPhrase = "DELETE"

// ConfirmationState is a step of the two-step delete-all confirmation.
type ConfirmationState int

const (
	ConfirmIdle ConfirmationState = iota
	ConfirmAwaitingIntent
	ConfirmAwaitingPhrase
	ConfirmConfirmed
	ConfirmAborted
)

// String returns the state name.
func (s ConfirmationState) String() string {
	switch s {
	case ConfirmIdle:
		return "idle"
	case ConfirmAwaitingIntent:
		return "awaiting-intent"
	case ConfirmAwaitingPhrase:
		return "awaiting-phrase"
	case ConfirmConfirmed:
		return "confirmed"
	case ConfirmAborted:
		return "aborted"
	default:
		return "unknown"
	}
}

// IsTerminal reports whether no further transitions are accepted.
func (s ConfirmationState) IsTerminal() bool {
	return s == ConfirmConfirmed || s == ConfirmAborted
}
