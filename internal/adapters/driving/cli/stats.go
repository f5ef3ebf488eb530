package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show knowledge base statistics",
	Args:  cobra.NoArgs,
	RunE:  runStats,
}

func init() {
	rootCmd.AddCommand(statsCmd)
}

func runStats(cmd *cobra.Command, _ []string) error {
	if knowledgeService == nil {
		return errors.New("knowledge service not configured")
	}

	stats, err := knowledgeService.Stats(cmd.Context())
	if err != nil {
		return fmt.Errorf("failed to collect stats: %w", err)
	}

	cmd.Println("Knowledge base:")
	cmd.Printf("  Documents:       %d\n", stats.TotalDocuments)
	cmd.Printf("  Chunks:          %d\n", stats.TotalChunks)
	cmd.Printf("  Characters:      %d\n", stats.TotalCharacters)
	cmd.Printf("  Avg confidence:  %.2f\n", stats.AvgConfidence)
	return nil
}
