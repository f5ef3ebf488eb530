package cli

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/docfox-labs/docfox-cli/internal/core/domain"
)

var addCmd = &cobra.Command{
	Use:   "add [file...]",
	Short: "Add documents to the knowledge base",
	Long: `Extracts text from the given files, cleans and chunks it, and
stores the result. Files whose content is already stored are skipped.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runAdd,
}

func init() {
	rootCmd.AddCommand(addCmd)
}

func runAdd(cmd *cobra.Command, args []string) error {
	if knowledgeService == nil {
		return errors.New("knowledge service not configured")
	}

	added := 0
	for _, path := range args {
		content, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("failed to read %s: %w", path, err)
		}

		doc, err := knowledgeService.AddFile(cmd.Context(), content, path)
		if errors.Is(err, domain.ErrDuplicateDocument) {
			cmd.Printf("Skipped %s: already stored as %s\n", path, doc.ID)
			continue
		}
		if err != nil {
			return fmt.Errorf("failed to add %s: %w", path, err)
		}

		cmd.Printf("Added %s (id %s, %d chunks)\n", doc.Filename, doc.ID, len(doc.Chunks))
		added++
	}

	cmd.Printf("\n%d of %d files added.\n", added, len(args))
	return nil
}
