package translate

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/sashabaranov/go-openai"
)

// SystemPersona is sent ahead of every prompt
const SystemPersona = "You are a helpful assistant specializing in Chinese language learning. " +
	"Provide clear, accurate, and educational responses about Chinese characters, " +
	"their meanings, usage, and cultural context."

// Defaults used when the config leaves a field empty
const (
	DefaultModel       = "gpt-4o-mini"
	DefaultMaxTokens   = 750
	DefaultTemperature = 0.7
)

// ErrMissingAPIKey is returned when OPENAI_API_KEY is not set
var ErrMissingAPIKey = errors.New("OPENAI_API_KEY environment variable not set")

// Completer answers a single prompt
type Completer interface {
	Complete(ctx context.Context, prompt string) (string, error)
}

// Options tune the chat completion request
type Options struct {
	Model       string
	MaxTokens   int
	Temperature float32
	BaseURL     string // Empty means the public OpenAI endpoint
}

// OpenAIClient completes prompts through the OpenAI chat API
type OpenAIClient struct {
	client *openai.Client
	opts   Options
}

// NewOpenAIClient builds a client from OPENAI_API_KEY and opts
func NewOpenAIClient(opts Options) (*OpenAIClient, error) {
	apiKey := os.Getenv("OPENAI_API_KEY")
	if apiKey == "" {
		return nil, ErrMissingAPIKey
	}
	return NewOpenAIClientWithKey(apiKey, opts), nil
}

// NewOpenAIClientWithKey builds a client for an explicit key
func NewOpenAIClientWithKey(apiKey string, opts Options) *OpenAIClient {
	if opts.Model == "" {
		opts.Model = DefaultModel
	}
	if opts.MaxTokens == 0 {
		opts.MaxTokens = DefaultMaxTokens
	}
	if opts.Temperature == 0 {
		opts.Temperature = DefaultTemperature
	}

	cfg := openai.DefaultConfig(apiKey)
	if opts.BaseURL != "" {
		cfg.BaseURL = opts.BaseURL
	}

	slog.Debug("initializing openai client", "model", opts.Model)
	return &OpenAIClient{
		client: openai.NewClientWithConfig(cfg),
		opts:   opts,
	}
}

// Complete implements Completer
func (o *OpenAIClient) Complete(ctx context.Context, prompt string) (string, error) {
	req := openai.ChatCompletionRequest{
		Model: o.opts.Model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: SystemPersona},
			{Role: openai.ChatMessageRoleUser, Content: prompt},
		},
		MaxTokens:   o.opts.MaxTokens,
		Temperature: o.opts.Temperature,
	}

	resp, err := o.client.CreateChatCompletion(ctx, req)
	if err != nil {
		return "", fmt.Errorf("openai request failed: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("no response from openai")
	}

	slog.Debug("openai response", "finish_reason", resp.Choices[0].FinishReason)
	return resp.Choices[0].Message.Content, nil
}
