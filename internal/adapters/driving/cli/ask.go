package cli

import (
	"strings"

	"github.com/spf13/cobra"
)

var (
	askTopK int
	askJSON bool
)

var askCmd = &cobra.Command{
	Use:   "ask [question]",
	Short: "Ask a question against the stored documents",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runAsk,
}

func init() {
	askCmd.Flags().IntVarP(&askTopK, "top-k", "k", 0, "number of contexts to retrieve (default from config)")
	askCmd.Flags().BoolVar(&askJSON, "json", false, "output the answer and contexts as JSON")
	rootCmd.AddCommand(askCmd)
}

// askOutput is the JSON form of a chat turn.
type askOutput struct {
	Question     string   `json:"question"`
	Answer       string   `json:"answer"`
	Contexts     any      `json:"contexts"`
	AverageScore *float64 `json:"average_score,omitempty"`
}

func runAsk(cmd *cobra.Command, args []string) error {
	svc, err := requireServices()
	if err != nil {
		return err
	}

	chat := svc.Chat
	if askTopK > 0 && svc.NewChat != nil {
		chat = svc.NewChat(askTopK)
	}

	turn, err := chat.Ask(cmd.Context(), strings.Join(args, " "))
	if err != nil {
		return finish(cmd, chat.Toasts(), err)
	}
	avg, hasAvg := turn.AverageScore()

	if askJSON {
		out := askOutput{Question: turn.Question, Answer: turn.Answer, Contexts: turn.Contexts}
		if hasAvg {
			out.AverageScore = &avg
		}
		return printJSON(cmd, out)
	}

	cmd.Println(turn.Answer)
	cmd.Println()
	if hasAvg {
		dimColor.Fprintf(cmd.OutOrStdout(), "Contexts: %d, average score %.3f\n", len(turn.Contexts), avg)
	} else {
		dimColor.Fprintln(cmd.OutOrStdout(), "Contexts: none")
	}
	return outputHits(cmd, turn.Contexts)
}
