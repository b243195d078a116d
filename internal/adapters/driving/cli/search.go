package cli

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/ragdesk/internal/core/domain"
)

var (
	searchTopK int
	searchJSON bool
)

var docsSearchCmd = &cobra.Command{
	Use:   "search [query]",
	Short: "Semantic search over stored documents",
	Long: `Ranks stored documents by similarity to the query. The page shown by
"docs list" is not affected.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runDocsSearch,
}

func init() {
	docsSearchCmd.Flags().IntVarP(&searchTopK, "top-k", "k", domain.DefaultTopK, "maximum number of hits")
	docsSearchCmd.Flags().BoolVar(&searchJSON, "json", false, "output hits as JSON")
}

func runDocsSearch(cmd *cobra.Command, args []string) error {
	svc, err := requireServices()
	if err != nil {
		return err
	}

	query := strings.Join(args, " ")
	hits, err := svc.Documents.Search(cmd.Context(), query, searchTopK)
	if err != nil {
		return finish(cmd, svc.Documents.Toasts(), err)
	}

	if searchJSON {
		return printJSON(cmd, hits)
	}
	return outputHits(cmd, hits)
}

// outputHits prints ranked hits with 3-decimal scores.
func outputHits(cmd *cobra.Command, hits []domain.Hit) error {
	if len(hits) == 0 {
		cmd.Println("No results found.")
		return nil
	}
	for i, hit := range hits {
		cmd.Printf("[%d] score=%.3f id=%d\n", i+1, hit.Score, hit.ID)
		cmd.Printf("    %s\n", truncate(hit.Text, 200))
	}
	return nil
}
