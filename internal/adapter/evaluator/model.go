package evaluator

import (
	"fmt"
	"net/http"
	"strings"

	"ai-interviewer/internal/config"

	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/ollama"
	"github.com/tmc/langchaingo/llms/openai"
)

// NewModel builds the chat model selected by cfg.Provider.
// The openai provider talks to any OpenAI-compatible endpoint, which is how the LLM proxy is exposed.
func NewModel(cfg config.LLMConfig) (llms.Model, error) {
	httpClient := &http.Client{Timeout: cfg.Timeout}

	switch cfg.Provider {
	case config.LLMProviderOpenAI:
		if cfg.APIKey == "" {
			return nil, fmt.Errorf("llm api key cannot be empty")
		}
		opts := []openai.Option{
			openai.WithToken(cfg.APIKey),
			openai.WithModel(cfg.Model),
			openai.WithHTTPClient(httpClient),
		}
		if cfg.Server != "" {
			opts = append(opts, openai.WithBaseURL(strings.TrimRight(cfg.Server, "/")+"/v1"))
		}
		llm, err := openai.New(opts...)
		if err != nil {
			return nil, fmt.Errorf("failed to create LangchainGo OpenAI client: %w", err)
		}
		return llm, nil
	case config.LLMProviderOllama:
		if cfg.Server == "" {
			return nil, fmt.Errorf("ollama server URL cannot be empty")
		}
		llm, err := ollama.New(
			ollama.WithServerURL(cfg.Server),
			ollama.WithModel(cfg.Model),
			ollama.WithHTTPClient(httpClient),
		)
		if err != nil {
			return nil, fmt.Errorf("failed to create LangchainGo Ollama client: %w", err)
		}
		return llm, nil
	default:
		return nil, fmt.Errorf("unsupported llm provider: %s", cfg.Provider)
	}
}
