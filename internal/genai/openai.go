package genai

// #region imports
import (
	"context"
	"fmt"
	"time"

	openai "github.com/sashabaranov/go-openai"
)

// #endregion

// #region config

// OpenAIConfig configures the OpenAI-compatible chat-completions client.
// BaseURL may point at any compatible endpoint.
type OpenAIConfig struct {
	APIKey      string
	BaseURL     string
	Model       string
	Timeout     time.Duration
	MaxTokens   int     // fallback when the request carries none
	Temperature float32 // fallback when the request carries zero
}

// DefaultOpenAIConfig returns sensible defaults for the generation client.
func DefaultOpenAIConfig() OpenAIConfig {
	return OpenAIConfig{
		Model:       "gpt-4o-mini",
		Timeout:     60 * time.Second,
		MaxTokens:   512,
		Temperature: 0.7,
	}
}

// #endregion

// #region client-struct

// OpenAIClient calls a chat-completions endpoint. The per-call timeout lives
// here: the turn pipeline has no timeouts of its own.
type OpenAIClient struct {
	client *openai.Client
	config OpenAIConfig
}

// NewOpenAIClient builds a client from config.
func NewOpenAIClient(config OpenAIConfig) *OpenAIClient {
	cc := openai.DefaultConfig(config.APIKey)
	if config.BaseURL != "" {
		cc.BaseURL = config.BaseURL
	}
	return &OpenAIClient{
		client: openai.NewClientWithConfig(cc),
		config: config,
	}
}

// #endregion

// #region generate

// Generate sends one chat completion. Returns an error on transport failure,
// API error, or an empty choice list; never panics.
func (c *OpenAIClient) Generate(ctx context.Context, req Request) (string, error) {
	if c.config.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.config.Timeout)
		defer cancel()
	}

	maxTokens := req.MaxTokens
	if maxTokens == 0 {
		maxTokens = c.config.MaxTokens
	}
	temperature := req.Temperature
	if temperature == 0 {
		temperature = c.config.Temperature
	}

	messages := make([]openai.ChatCompletionMessage, 0, 2)
	if req.SystemPrompt != "" {
		messages = append(messages, openai.ChatCompletionMessage{
			Role:    openai.ChatMessageRoleSystem,
			Content: req.SystemPrompt,
		})
	}
	messages = append(messages, openai.ChatCompletionMessage{
		Role:    openai.ChatMessageRoleUser,
		Content: req.Prompt,
	})

	resp, err := c.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:       c.config.Model,
		Messages:    messages,
		MaxTokens:   maxTokens,
		Temperature: temperature,
	})
	if err != nil {
		return "", fmt.Errorf("chat completion: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("chat completion: empty choice list")
	}
	return resp.Choices[0].Message.Content, nil
}

// #endregion
