// Command docfox is the entry point for the DocFox CLI.
// It wires adapters to core services and hands control to cobra.
package main

import (
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"

	configfile "github.com/docfox-labs/docfox-cli/internal/adapters/driven/config/file"
	"github.com/docfox-labs/docfox-cli/internal/adapters/driven/extractor/plaintext"
	"github.com/docfox-labs/docfox-cli/internal/adapters/driven/llm/anthropic"
	"github.com/docfox-labs/docfox-cli/internal/adapters/driven/llm/ollama"
	"github.com/docfox-labs/docfox-cli/internal/adapters/driven/llm/openai"
	"github.com/docfox-labs/docfox-cli/internal/adapters/driven/storage/jsonfile"
	"github.com/docfox-labs/docfox-cli/internal/adapters/driven/storage/sqlite"
	"github.com/docfox-labs/docfox-cli/internal/adapters/driving/cli"
	"github.com/docfox-labs/docfox-cli/internal/core/ports/driven"
	"github.com/docfox-labs/docfox-cli/internal/core/services"
	"github.com/docfox-labs/docfox-cli/internal/logger"
	"github.com/docfox-labs/docfox-cli/internal/postprocessors/chunker"
)

// version is set at build time via -ldflags "-X main.version=...".
var version = "dev"

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	// Optional .env for API keys; absence is not an error.
	_ = godotenv.Load()

	cfg, err := configfile.NewConfigStore(os.Getenv("DOCFOX_CONFIG_DIR"))
	if err != nil {
		return fmt.Errorf("initialising config: %w", err)
	}

	store, err := newDocumentStore(cfg)
	if err != nil {
		return fmt.Errorf("initialising document store: %w", err)
	}

	prompts, err := configfile.NewPromptStore(cfg.GetString("prompts.dir"))
	if err != nil {
		return fmt.Errorf("initialising prompt store: %w", err)
	}

	knowledge := services.NewKnowledge(store, chunker.New(), plaintext.New())
	search := services.NewRanker(store)

	chatOpts := []services.ChatOption{services.WithPromptStore(prompts)}
	if maxChars := cfg.GetInt("chat.max_context_chars"); maxChars > 0 {
		chatOpts = append(chatOpts, services.WithMaxContextChars(maxChars))
	}
	chat := services.NewChat(search, newLLMService(cfg), chatOpts...)

	cli.SetVersion(version)
	cli.SetServices(cli.Services{
		Search:    search,
		Knowledge: knowledge,
		Chat:      chat,
	})

	return cli.Execute()
}

// newDocumentStore builds the configured document store.
// The JSON file store is the default; sqlite is opt-in via config.
func newDocumentStore(cfg driven.ConfigStore) (driven.DocumentStore, error) {
	dataDir := cfg.GetString("storage.data_dir")

	switch backend := cfg.GetString("storage.backend"); backend {
	case "", "jsonfile":
		return jsonfile.NewStore(dataDir)
	case "sqlite":
		return sqlite.NewStore(dataDir)
	default:
		return nil, fmt.Errorf("unknown storage backend %q", backend)
	}
}

// newLLMService builds the configured LLM adapter, or nil when answering
// is not configured. Retrieval commands work without an LLM.
func newLLMService(cfg driven.ConfigStore) driven.LLMService {
	timeout := time.Duration(cfg.GetInt("llm.timeout_seconds")) * time.Second

	switch provider := cfg.GetString("llm.provider"); provider {
	case "", "ollama":
		return ollama.NewLLMService(ollama.LLMConfig{
			BaseURL: cfg.GetString("llm.base_url"),
			Model:   cfg.GetString("llm.model"),
			Timeout: timeout,
		})
	case "openai":
		apiKey := os.Getenv("OPENAI_API_KEY")
		if apiKey == "" {
			apiKey = cfg.GetString("llm.api_key")
		}
		svc, err := openai.NewLLMService(openai.LLMConfig{
			APIKey:  apiKey,
			BaseURL: cfg.GetString("llm.base_url"),
			Model:   cfg.GetString("llm.model"),
			Timeout: timeout,
		})
		if err != nil {
			logger.Warn("OpenAI unavailable: %v", err)
			return nil
		}
		return svc
	case "anthropic":
		apiKey := os.Getenv("ANTHROPIC_API_KEY")
		if apiKey == "" {
			apiKey = cfg.GetString("llm.api_key")
		}
		svc, err := anthropic.NewLLMService(anthropic.LLMConfig{
			APIKey:  apiKey,
			BaseURL: cfg.GetString("llm.base_url"),
			Model:   cfg.GetString("llm.model"),
			Timeout: timeout,
		})
		if err != nil {
			logger.Warn("Anthropic unavailable: %v", err)
			return nil
		}
		return svc
	default:
		logger.Warn("Unknown LLM provider %q, answering disabled", provider)
		return nil
	}
}
