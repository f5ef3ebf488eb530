package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/docfox-labs/docfox-cli/internal/core/domain"
)

var (
	searchLimit int
	searchJSON  bool
)

var searchCmd = &cobra.Command{
	Use:   "search [query]",
	Short: "Rank documents against a query",
	Long: `Scores every stored document against the query and prints the
top matches. Scoring combines verbatim matches, fuzzy word matches,
and section reference bonuses; no embeddings are involved.`,
	Args: cobra.ExactArgs(1),
	RunE: runSearch,
}

var contextCmd = &cobra.Command{
	Use:   "context [query]",
	Short: "Print the grounding context for a query",
	Long: `Assembles and prints the exact context string that would be handed
to the LLM for the given query. Useful for inspecting what an answer
would be grounded on.`,
	Args: cobra.ExactArgs(1),
	RunE: runContext,
}

// contextMaxChars is a flag for the context command.
var contextMaxChars int

func init() {
	searchCmd.Flags().IntVarP(&searchLimit, "limit", "n", 5, "maximum number of results")
	searchCmd.Flags().BoolVar(&searchJSON, "json", false, "output results as JSON")
	contextCmd.Flags().IntVar(&contextMaxChars, "max-chars", 2500, "context length budget in characters")
	rootCmd.AddCommand(searchCmd)
	rootCmd.AddCommand(contextCmd)
}

func runSearch(cmd *cobra.Command, args []string) error {
	query := args[0]

	if searchService == nil {
		return errors.New("search service not configured")
	}

	results, err := searchService.Search(cmd.Context(), query, searchLimit)
	if err != nil {
		return fmt.Errorf("search failed: %w", err)
	}

	if searchJSON {
		return outputSearchJSON(cmd, results)
	}

	return outputSearchTable(cmd, results)
}

func outputSearchJSON(cmd *cobra.Command, results []domain.ScoredDocument) error {
	data, err := json.MarshalIndent(results, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal results: %w", err)
	}
	cmd.Println(string(data))
	return nil
}

func outputSearchTable(cmd *cobra.Command, results []domain.ScoredDocument) error {
	if len(results) == 0 {
		cmd.Println("No results found.")
		return nil
	}

	cmd.Println("Results:")
	cmd.Println()
	for i := range results {
		name := results[i].Filename
		if name == "" {
			name = results[i].DocumentID
		}

		cmd.Printf("  [%d] %s (score %d)\n", i+1, name, results[i].Score)
		cmd.Printf("      ID: %s\n", results[i].DocumentID)
		if len(results[i].MatchedChunks) > 0 {
			cmd.Printf("      Sections: %s\n", strings.Join(results[i].MatchedChunks, ", "))
		}
		cmd.Println()
	}

	cmd.Printf("Total: %d results\n", len(results))
	return nil
}

func runContext(cmd *cobra.Command, args []string) error {
	if searchService == nil {
		return errors.New("search service not configured")
	}

	rendered, err := searchService.ContextForQuery(cmd.Context(), args[0], contextMaxChars)
	if err != nil {
		return fmt.Errorf("context assembly failed: %w", err)
	}

	if rendered == "" {
		cmd.Println("No grounding context available for this query.")
		return nil
	}

	cmd.Println(rendered)
	return nil
}
