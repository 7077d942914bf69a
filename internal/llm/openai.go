package llm

import (
	"context"
	"fmt"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
)

// groqBaseURL is the OpenAI-compatible endpoint for Groq, the provider
// the cleanup engine defaults to for low-latency rewrites.
const groqBaseURL = "https://api.groq.com/openai/v1"

// defaultGroqModel is a small instant model; rewrites are latency-bound.
const defaultGroqModel = "llama-3.1-8b-instant"

// OpenAIProvider wraps the OpenAI SDK. It also backs any
// OpenAI-compatible endpoint such as Groq.
type OpenAIProvider struct {
	client       openai.Client
	model        string
	cfg          ProviderConfig
	providerName string // "openai" or "groq"
}

// NewOpenAIProvider creates a new OpenAI provider.
func NewOpenAIProvider(cfg ProviderConfig) (*OpenAIProvider, error) {
	opts := []option.RequestOption{}

	if cfg.APIKey != "" {
		opts = append(opts, option.WithAPIKey(cfg.APIKey))
	}
	if cfg.BaseURL != "" {
		opts = append(opts, option.WithBaseURL(cfg.BaseURL))
	}
	if cfg.MaxRetries > 0 {
		opts = append(opts, option.WithMaxRetries(cfg.MaxRetries))
	}
	if cfg.Timeout > 0 {
		opts = append(opts, option.WithRequestTimeout(cfg.Timeout))
	}

	client := openai.NewClient(opts...)

	model := cfg.Model
	if model == "" {
		model = string(openai.ChatModelGPT4o)
	}

	return &OpenAIProvider{
		client:       client,
		model:        model,
		cfg:          cfg,
		providerName: "openai",
	}, nil
}

// NewGroqProvider creates an OpenAI-compatible client for Groq.
func NewGroqProvider(cfg ProviderConfig) (*OpenAIProvider, error) {
	if cfg.BaseURL == "" {
		cfg.BaseURL = groqBaseURL
	}
	if cfg.Model == "" {
		cfg.Model = defaultGroqModel
	}
	provider, err := NewOpenAIProvider(cfg)
	if err != nil {
		return nil, err
	}
	provider.providerName = "groq"
	return provider, nil
}

// Complete sends a completion request to the endpoint.
func (p *OpenAIProvider) Complete(ctx context.Context, req CompletionRequest) (CompletionResponse, error) {
	messages := make([]openai.ChatCompletionMessageParamUnion, 0, len(req.Messages))

	for _, msg := range req.Messages {
		switch msg.Role {
		case RoleSystem:
			messages = append(messages, openai.SystemMessage(msg.Content))
		case RoleUser:
			messages = append(messages, openai.UserMessage(msg.Content))
		case RoleAssistant:
			messages = append(messages, openai.AssistantMessage(msg.Content))
		}
	}

	maxTokens := req.MaxTokens
	if maxTokens == 0 {
		maxTokens = 4096
	}

	params := openai.ChatCompletionNewParams{
		Model:       openai.ChatModel(p.model),
		Messages:    messages,
		MaxTokens:   openai.Int(int64(maxTokens)),
		Temperature: openai.Float(req.Temperature),
	}

	resp, err := p.client.Chat.Completions.New(ctx, params)
	if err != nil {
		return CompletionResponse{}, fmt.Errorf("%s API error: %w", p.providerName, err)
	}

	if len(resp.Choices) == 0 {
		return CompletionResponse{}, fmt.Errorf("no choices in response")
	}

	return CompletionResponse{
		Content:      resp.Choices[0].Message.Content,
		FinishReason: string(resp.Choices[0].FinishReason),
		Usage: Usage{
			InputTokens:  int(resp.Usage.PromptTokens),
			OutputTokens: int(resp.Usage.CompletionTokens),
		},
		Model: resp.Model,
	}, nil
}

// Name returns the provider identifier.
func (p *OpenAIProvider) Name() string {
	return p.providerName
}

// Model returns the configured model name.
func (p *OpenAIProvider) Model() string {
	return p.model
}
