package llm

import (
	"context"
	"fmt"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"

	"github.com/PabloGalante/pci-agent/internal/domain"
)

const openaiProviderName = "openai"

type OpenAIClient struct {
	client openai.Client
	model  string
}

// NewOpenAIClient creates a CompletionClient backed by the OpenAI chat
// completions API.
func NewOpenAIClient(apiKey, model string) (*OpenAIClient, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("openai API key is required")
	}
	if model == "" {
		model = "gpt-4o-mini"
	}

	return &OpenAIClient{
		client: openai.NewClient(option.WithAPIKey(apiKey)),
		model:  model,
	}, nil
}

// Complete implements domain.CompletionClient.
func (c *OpenAIClient) Complete(ctx context.Context, messages []domain.Turn) (string, error) {
	params := openai.ChatCompletionNewParams{
		Model:       c.model,
		Messages:    toOpenAIMessages(messages),
		Temperature: openai.Float(0.7),
	}

	resp, err := c.client.Chat.Completions.New(ctx, params)
	if err != nil {
		return "", domain.NewServiceError(openaiProviderName, fmt.Errorf("chat completion: %w", err))
	}

	if len(resp.Choices) == 0 {
		return "", domain.NewServiceError(openaiProviderName, fmt.Errorf("no choices in response"))
	}

	text := resp.Choices[0].Message.Content
	if text == "" {
		return "", domain.NewServiceError(openaiProviderName, fmt.Errorf("empty completion text"))
	}

	return text, nil
}

func toOpenAIMessages(messages []domain.Turn) []openai.ChatCompletionMessageParamUnion {
	out := make([]openai.ChatCompletionMessageParamUnion, 0, len(messages))
	for _, m := range messages {
		switch m.Role {
		case domain.RoleSystem:
			out = append(out, openai.SystemMessage(m.Content))
		case domain.RoleAssistant:
			out = append(out, openai.AssistantMessage(m.Content))
		default:
			out = append(out, openai.UserMessage(m.Content))
		}
	}
	return out
}
