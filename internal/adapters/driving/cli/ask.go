package cli

import (
	"errors"
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/docfox-labs/docfox-cli/internal/core/domain"
)

// askPlain disables coloured output.
var askPlain bool

var askCmd = &cobra.Command{
	Use:   "ask [question]",
	Short: "Ask a question grounded in your documents",
	Long: `Retrieves the most relevant document context for the question and
asks the configured LLM to answer from that context alone. When no
relevant context exists the model says so instead of guessing.`,
	Args: cobra.ExactArgs(1),
	RunE: runAsk,
}

func init() {
	askCmd.Flags().BoolVar(&askPlain, "plain", false, "disable coloured output")
	rootCmd.AddCommand(askCmd)
}

func runAsk(cmd *cobra.Command, args []string) error {
	if chatService == nil {
		return errors.New("chat service not configured")
	}

	answer, err := chatService.Ask(cmd.Context(), args[0])
	if errors.Is(err, domain.ErrLLMUnavailable) {
		return fmt.Errorf("LLM unavailable: %w", err)
	}
	if err != nil {
		return fmt.Errorf("ask failed: %w", err)
	}

	out := cmd.OutOrStdout()

	bold := color.New(color.Bold)
	dim := color.New(color.Faint)
	if askPlain {
		bold.DisableColor()
		dim.DisableColor()
	}

	bold.Fprintln(out, answer.Text)

	if len(answer.Sources) > 0 {
		fmt.Fprintln(out)
		dim.Fprint(out, "Sources:")
		for _, src := range answer.Sources {
			name := src.Filename
			if name == "" {
				name = src.DocumentID
			}
			dim.Fprintf(out, " %s", name)
		}
		dim.Fprintln(out)
	}

	return nil
}
