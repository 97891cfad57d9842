// internal/common/genai/openai.go
package genai

import (
	"context"

	"github.com/sashabaranov/go-openai"

	"cardgen/internal/models"
)

// OpenAIClient implements models.ChatClient on top of the OpenAI chat
// completions API (or any compatible gateway reachable at baseURL).
type OpenAIClient struct {
	client *openai.Client
}

// NewOpenAIClient builds a client bound to apiKey. An empty baseURL keeps the
// public OpenAI endpoint; a nil doer keeps go-openai's default http.Client.
func NewOpenAIClient(apiKey, baseURL string, doer openai.HTTPDoer) *OpenAIClient {
	cfg := openai.DefaultConfig(apiKey)
	if baseURL != "" {
		cfg.BaseURL = baseURL
	}
	if doer != nil {
		cfg.HTTPClient = doer
	}
	return &OpenAIClient{client: openai.NewClientWithConfig(cfg)}
}

// NewFactory returns a models.ChatClientFactory sharing baseURL and doer
// across per-request clients.
func NewFactory(baseURL string, doer openai.HTTPDoer) models.ChatClientFactory {
	return func(apiKey string) models.ChatClient {
		return NewOpenAIClient(apiKey, baseURL, doer)
	}
}

// CreateChatCompletion forwards req unchanged. Upstream errors are returned
// as-is so their message reaches the caller.
func (c *OpenAIClient) CreateChatCompletion(ctx context.Context, req models.ChatRequest) (*models.ChatResponse, error) {
	messages := make([]openai.ChatCompletionMessage, 0, len(req.Messages))
	for _, m := range req.Messages {
		messages = append(messages, openai.ChatCompletionMessage{
			Role:    m.Role,
			Content: m.Content,
		})
	}

	resp, err := c.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:       req.Model,
		Messages:    messages,
		Temperature: float32(req.Temperature),
		MaxTokens:   req.MaxTokens,
	})
	if err != nil {
		return nil, err
	}

	out := &models.ChatResponse{
		ID:      resp.ID,
		Model:   resp.Model,
		Choices: make([]models.ChatChoice, 0, len(resp.Choices)),
	}
	for _, ch := range resp.Choices {
		out.Choices = append(out.Choices, models.ChatChoice{
			Index: ch.Index,
			Message: models.ChatMessage{
				Role:    ch.Message.Role,
				Content: ch.Message.Content,
			},
			FinishReason: string(ch.FinishReason),
		})
	}
	return out, nil
}
