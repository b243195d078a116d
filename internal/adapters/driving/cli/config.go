package cli

import (
	"github.com/spf13/cobra"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show or change settings",
	Long: `Settings are stored in ~/.ragdesk/config.toml. EMBED_API_URL, LLM_API_URL,
RAGDESK_PAGE_LIMIT and RAGDESK_TOP_K override stored values, and may also be
set in a .env file.`,
	RunE: runConfigShow,
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show effective settings",
	Args:  cobra.NoArgs,
	RunE:  runConfigShow,
}

var configSetCmd = &cobra.Command{
	Use:   "set [key] [value]",
	Short: "Change a setting",
	Args:  cobra.ExactArgs(2),
	RunE:  runConfigSet,
}

func init() {
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configSetCmd)
	rootCmd.AddCommand(configCmd)
}

func runConfigShow(cmd *cobra.Command, _ []string) error {
	svc, err := requireServices()
	if err != nil {
		return err
	}

	settings, err := svc.Settings.Get()
	if err != nil {
		return err
	}

	values := map[string]any{
		"api.embed_url":  settings.API.EmbedURL,
		"api.llm_url":    settings.API.LLMURL,
		"api.timeout":    settings.API.Timeout,
		"paging.limit":   settings.Paging.Limit,
		"chat.top_k":     settings.Chat.TopK,
		"toast.duration": settings.Toast.Duration,
		"log.file":       settings.Log.File,
	}
	for _, key := range svc.Settings.Keys() {
		cmd.Printf("%-16s %v\n", key, values[key])
	}
	return nil
}

func runConfigSet(cmd *cobra.Command, args []string) error {
	svc, err := requireServices()
	if err != nil {
		return err
	}

	if err := svc.Settings.Set(args[0], args[1]); err != nil {
		return err
	}
	okColor.Fprintf(cmd.OutOrStdout(), "✓ %s = %s\n", args[0], args[1])
	return nil
}
