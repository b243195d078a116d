package cli

import (
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/ragdesk/internal/core/domain"
)

var docsCmd = &cobra.Command{
	Use:     "docs",
	Aliases: []string{"documents"},
	Short:   "Manage stored documents",
	Long:    `List, inspect, search, upsert and delete documents in the store.`,
}

var docsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List one page of documents",
	Args:  cobra.NoArgs,
	RunE:  runDocsList,
}

var docsGetCmd = &cobra.Command{
	Use:   "get [id]",
	Short: "Show a single document",
	Args:  cobra.ExactArgs(1),
	RunE:  runDocsGet,
}

var docsUpsertCmd = &cobra.Command{
	Use:   "upsert",
	Short: "Insert one document per input line",
	Long: `Reads text from --file, or from standard input, and stores every
non-empty line as a new document. Ids are assigned by the store.`,
	Args: cobra.NoArgs,
	RunE: runDocsUpsert,
}

var docsDeleteCmd = &cobra.Command{
	Use:   "delete [id]",
	Short: "Delete a single document",
	Args:  cobra.ExactArgs(1),
	RunE:  runDocsDelete,
}

var docsDeleteAllCmd = &cobra.Command{
	Use:   "delete-all",
	Short: "Delete every document",
	Long: `Deletes every document in the store. You are asked to confirm and then
to type DELETE. Pass --yes and --phrase DELETE to skip both prompts.`,
	Args: cobra.NoArgs,
	RunE: runDocsDeleteAll,
}

// Flags for the docs commands.
var (
	docsOffset int
	docsLimit  int
	docsFilter string
	docsJSON   bool
	upsertFile string
	assumeYes  bool
	phraseFlag string
)

func init() {
	docsListCmd.Flags().IntVar(&docsOffset, "offset", 0, "number of documents to skip")
	docsListCmd.Flags().IntVarP(&docsLimit, "limit", "n", 0, "page size, 1-200 (default from config)")
	docsListCmd.Flags().StringVarP(&docsFilter, "filter", "f", "", "only show documents whose text or id contains this")
	docsListCmd.Flags().BoolVar(&docsJSON, "json", false, "output documents as JSON")

	docsUpsertCmd.Flags().StringVar(&upsertFile, "file", "", "read lines from this file instead of stdin")

	docsDeleteCmd.Flags().BoolVarP(&assumeYes, "yes", "y", false, "do not ask for confirmation")
	docsDeleteAllCmd.Flags().BoolVarP(&assumeYes, "yes", "y", false, "answer yes to the first confirmation")
	docsDeleteAllCmd.Flags().StringVar(&phraseFlag, "phrase", "", "confirmation phrase (must be DELETE)")

	docsCmd.AddCommand(docsListCmd)
	docsCmd.AddCommand(docsGetCmd)
	docsCmd.AddCommand(docsSearchCmd)
	docsCmd.AddCommand(docsUpsertCmd)
	docsCmd.AddCommand(docsDeleteCmd)
	docsCmd.AddCommand(docsDeleteAllCmd)
	rootCmd.AddCommand(docsCmd)
}

func runDocsList(cmd *cobra.Command, _ []string) error {
	svc, err := requireServices()
	if err != nil {
		return err
	}
	docs := svc.Documents

	limit := docsLimit
	if limit == 0 {
		limit = docs.Cursor().Limit
	}
	if err := docs.List(cmd.Context(), docsOffset, limit); err != nil {
		return finish(cmd, docs.Toasts(), err)
	}
	docs.SetFilter(docsFilter)
	page := docs.Filtered()

	if docsJSON {
		return printJSON(cmd, page)
	}

	if len(page) == 0 {
		cmd.Println("No documents found.")
		return nil
	}
	for _, doc := range page {
		cmd.Printf("%-16s %s\n", doc.IDString(), truncate(doc.Text, 100))
	}
	cursor := docs.Cursor()
	cmd.Println()
	dimColor.Fprintf(cmd.OutOrStdout(), "Showing %d of %d on page offset=%d limit=%d\n",
		len(page), len(docs.Page()), cursor.Offset, cursor.Limit)
	return nil
}

func runDocsGet(cmd *cobra.Command, args []string) error {
	svc, err := requireServices()
	if err != nil {
		return err
	}
	id, err := parseID(args[0])
	if err != nil {
		return err
	}

	doc, err := svc.Documents.Get(cmd.Context(), id)
	if err != nil {
		return finish(cmd, svc.Documents.Toasts(), err)
	}

	cmd.Printf("Document: %s\n\n", doc.IDString())
	cmd.Println(doc.Text)
	return nil
}

func runDocsUpsert(cmd *cobra.Command, _ []string) error {
	svc, err := requireServices()
	if err != nil {
		return err
	}

	var in io.Reader = cmd.InOrStdin()
	if upsertFile != "" {
		f, err := os.Open(upsertFile)
		if err != nil {
			return fmt.Errorf("failed to open input: %w", err)
		}
		defer f.Close()
		in = f
	}
	raw, err := io.ReadAll(in)
	if err != nil {
		return fmt.Errorf("failed to read input: %w", err)
	}

	result, err := svc.Documents.Upsert(cmd.Context(), string(raw))
	if err := finish(cmd, svc.Documents.Toasts(), err); err != nil {
		return err
	}
	if result != nil && len(result.IDs) > 0 {
		for _, id := range result.IDs {
			cmd.Printf("  %d\n", id)
		}
	}
	return nil
}

func runDocsDelete(cmd *cobra.Command, args []string) error {
	svc, err := requireServices()
	if err != nil {
		return err
	}
	id, err := parseID(args[0])
	if err != nil {
		return err
	}

	confirmer := newPromptConfirmer(cmd, assumeYes, "")
	err = svc.Documents.DeleteOne(cmd.Context(), id, confirmer)
	return finish(cmd, svc.Documents.Toasts(), err)
}

func runDocsDeleteAll(cmd *cobra.Command, _ []string) error {
	svc, err := requireServices()
	if err != nil {
		return err
	}

	confirmer := newPromptConfirmer(cmd, assumeYes, phraseFlag)
	err = svc.Documents.DeleteAll(cmd.Context(), confirmer)
	return finish(cmd, svc.Documents.Toasts(), err)
}

// parseID parses a decimal document id.
func parseID(s string) (int64, error) {
	id, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: invalid document id %q", domain.ErrInvalidInput, s)
	}
	return id, nil
}
