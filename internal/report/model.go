// Package report builds the AI company report: it assembles the analysis
// prompt from recent headlines and delegates text generation to a chat
// model. Generation failures never propagate; the report degrades to a
// fixed placeholder string.
package report

import (
	"context"
	"fmt"

	"github.com/cloudwego/eino-ext/components/model/deepseek"
	"github.com/cloudwego/eino-ext/components/model/openai"
	"github.com/cloudwego/eino/components/model"

	"github.com/nvats/StockLens/config"
)

// Default models per provider, used when LLM_MODEL is not set.
const (
	defaultOpenAIModel   = "gpt-4o-mini"
	defaultDeepSeekModel = "deepseek-chat"
)

// NewChatModel constructs the chat model for the configured LLM provider.
func NewChatModel(ctx context.Context, cfg *config.Config) (model.BaseChatModel, error) {
	switch cfg.LLMProvider {
	case "openai":
		modelName := cfg.LLMModel
		if modelName == "" {
			modelName = defaultOpenAIModel
		}
		maxTokens := cfg.MaxTokens
		return openai.NewChatModel(ctx, &openai.ChatModelConfig{
			BaseURL:   cfg.BackendURL,
			APIKey:    cfg.OpenAIAPIKey,
			Model:     modelName,
			MaxTokens: &maxTokens,
		})
	case "deepseek":
		modelName := cfg.LLMModel
		if modelName == "" {
			modelName = defaultDeepSeekModel
		}
		return deepseek.NewChatModel(ctx, &deepseek.ChatModelConfig{
			APIKey:    cfg.DeepSeekAPIKey,
			Model:     modelName,
			MaxTokens: cfg.MaxTokens,
		})
	default:
		return nil, fmt.Errorf("unknown llm provider %q", cfg.LLMProvider)
	}
}
