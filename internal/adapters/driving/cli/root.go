// Package cli implements the docfox command-line interface using cobra.
// Commands are thin adapters over the driving ports; all behaviour lives
// in the core services.
package cli

import (
	"github.com/spf13/cobra"

	"github.com/docfox-labs/docfox-cli/internal/core/ports/driving"
	"github.com/docfox-labs/docfox-cli/internal/logger"
)

// version is overridden at build time via -ldflags.
var version = "dev"

// Services wired by the composition root before Execute is called.
// Commands check for nil and fail with a clear message rather than panic.
var (
	searchService    driving.SearchService
	knowledgeService driving.KnowledgeService
	chatService      driving.ChatService
)

// Services bundles the driving ports the CLI depends on.
type Services struct {
	Search    driving.SearchService
	Knowledge driving.KnowledgeService
	Chat      driving.ChatService
}

// SetServices wires the core services into the CLI commands.
func SetServices(s Services) {
	searchService = s.Search
	knowledgeService = s.Knowledge
	chatService = s.Chat
}

// SetVersion sets the version string printed by the version command.
func SetVersion(v string) {
	if v != "" {
		version = v
	}
}

var rootCmd = &cobra.Command{
	Use:   "docfox",
	Short: "Ground a local LLM in your scanned documents",
	Long: `DocFox keeps a small collection of scanned or extracted documents
and answers questions grounded strictly in their text.

Add documents with 'docfox add', then query them with 'docfox ask'
or inspect the collection with 'docfox search' and 'docfox document'.`,
	SilenceUsage: true,
	PersistentPreRun: func(_ *cobra.Command, _ []string) {
		logger.SetVerbose(verboseFlag)
	},
}

// verboseFlag enables pipeline logging to stderr.
var verboseFlag bool

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verboseFlag, "verbose", "v", false, "enable verbose logging")
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}
