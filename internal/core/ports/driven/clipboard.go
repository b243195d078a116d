package driven

// Clipboard writes text to the system clipboard.
type Clipboard interface {
	// WriteText replaces the clipboard contents.
	WriteText(text string) error
}
