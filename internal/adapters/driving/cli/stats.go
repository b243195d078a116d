package cli

import (
	"github.com/spf13/cobra"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show collection statistics",
	Args:  cobra.NoArgs,
	RunE:  runStats,
}

func init() {
	rootCmd.AddCommand(statsCmd)
}

func runStats(cmd *cobra.Command, _ []string) error {
	svc, err := requireServices()
	if err != nil {
		return err
	}

	if err := svc.Documents.RefreshStats(cmd.Context()); err != nil {
		return finish(cmd, svc.Documents.Toasts(), err)
	}
	stats := svc.Documents.Stats()
	if stats == nil {
		cmd.Println("No statistics reported.")
		return nil
	}

	cmd.Printf("Collection: %s\n", stats.Collection)
	cmd.Printf("Documents:  %d\n", stats.NumEntities)
	return nil
}
