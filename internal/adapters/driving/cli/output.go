package cli

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/custodia-labs/ragdesk/internal/core/domain"
	"github.com/custodia-labs/ragdesk/internal/core/ports/driving"
)

var (
	okColor    = color.New(color.FgGreen)
	errorColor = color.New(color.FgRed)
	dimColor   = color.New(color.Faint)
)

// printToast writes a toast as a single coloured status line.
func printToast(cmd *cobra.Command, toast domain.Toast) {
	if toast.IsError() {
		errorColor.Fprintf(cmd.ErrOrStderr(), "✗ %s\n", toast.Message)
		return
	}
	okColor.Fprintf(cmd.OutOrStdout(), "✓ %s\n", toast.Message)
}

// finish maps a workflow outcome to the command result. The workflow's
// toast already carries the user-facing message, so a failure returns it
// as the error and a success prints it.
func finish(cmd *cobra.Command, toasts driving.ToastSource, err error) error {
	toast, shown := toasts.Current()
	switch {
	case err == nil:
		if shown {
			printToast(cmd, toast)
		}
		return nil
	case errors.Is(err, domain.ErrDeclined):
		cmd.Println("Aborted.")
		return nil
	case shown && toast.IsError():
		return errors.New(toast.Message)
	default:
		return err
	}
}

// printJSON writes v as indented JSON.
func printJSON(cmd *cobra.Command, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal output: %w", err)
	}
	cmd.Println(string(data))
	return nil
}

// truncate shortens s to at most n runes on a single line.
func truncate(s string, n int) string {
	s = strings.Join(strings.Fields(s), " ")
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n-1]) + "…"
}

// promptConfirmer answers confirmations from flags or from the terminal.
// With input that is not a terminal and no --yes, confirmations are declined.
type promptConfirmer struct {
	in          *bufio.Reader
	out         io.Writer
	interactive bool
	assumeYes   bool
	phrase      string
}

// Ensure promptConfirmer implements the interface.
var _ driving.Confirmer = (*promptConfirmer)(nil)

func newPromptConfirmer(cmd *cobra.Command, assumeYes bool, phrase string) *promptConfirmer {
	in := cmd.InOrStdin()
	return &promptConfirmer{
		in:          bufio.NewReader(in),
		out:         cmd.ErrOrStderr(),
		interactive: isInteractive(in),
		assumeYes:   assumeYes,
		phrase:      phrase,
	}
}

// isInteractive reports whether r can answer prompts. Readers other than
// files are treated as scripted input.
func isInteractive(r io.Reader) bool {
	f, ok := r.(*os.File)
	if !ok {
		return true
	}
	return term.IsTerminal(int(f.Fd()))
}

func (c *promptConfirmer) Confirm(_ context.Context, question string) (bool, error) {
	if c.assumeYes {
		return true, nil
	}
	if !c.interactive {
		return false, nil
	}
	fmt.Fprintf(c.out, "%s [y/N]: ", question)
	line, err := c.readLine()
	if err != nil {
		return false, err
	}
	answer := strings.ToLower(strings.TrimSpace(line))
	return answer == "y" || answer == "yes", nil
}

func (c *promptConfirmer) Prompt(_ context.Context, question string) (string, error) {
	if c.phrase != "" {
		return c.phrase, nil
	}
	if !c.interactive {
		return "", nil
	}
	fmt.Fprintf(c.out, "%s: ", question)
	return c.readLine()
}

// readLine reads one line. End of input counts as an empty answer.
func (c *promptConfirmer) readLine() (string, error) {
	line, err := c.in.ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return "", fmt.Errorf("read answer: %w", err)
	}
	return strings.TrimRight(line, "\r\n"), nil
}
