package openrouter

import (
	"context"
	"fmt"
	"strings"
	"time"

	openaisdk "github.com/openai/openai-go"
	"github.com/openai/openai-go/option"

	contractx "github.com/pattarav/supportline/agent/contract"
)

type Config struct {
	BaseURL            string        `envconfig:"BASE_URL" split_words:"true" default:"https://openrouter.ai/api/v1"`
	APIKey             string        `envconfig:"API_KEY" split_words:"true" required:"true"`
	Model              string        `envconfig:"MODEL" split_words:"true" required:"true"`
	MaxCompletionToken int           `envconfig:"MAX_COMPLETION_TOKEN" split_words:"true" default:"1000"`
	Temperature        float32       `envconfig:"TEMPERATURE" split_words:"true" default:"0.5"`
	Timeout            time.Duration `envconfig:"TIMEOUT" split_words:"true" default:"30s"`
	SiteURL            string        `envconfig:"SITE_URL" split_words:"true"`
	SiteName           string        `envconfig:"SITE_NAME" split_words:"true"`
}

// Client is a plain-text completion client over the OpenRouter chat API. It is
// the production implementation of the Classifier capability.
type Client struct {
	api         openaisdk.Client
	model       string
	temperature float32
	maxTokens   int
}

var _ contractx.Classifier = (*Client)(nil)

// NewClient creates an OpenAI SDK client configured for OpenRouter.
func NewClient(cfg Config) (*Client, error) {
	apiKey := strings.TrimSpace(cfg.APIKey)
	if apiKey == "" {
		return nil, fmt.Errorf("%w: openrouter api key is required", contractx.ErrValidation)
	}
	model := strings.TrimSpace(cfg.Model)
	if model == "" {
		return nil, fmt.Errorf("%w: openrouter model is required", contractx.ErrValidation)
	}

	opts := []option.RequestOption{
		option.WithAPIKey(apiKey),
	}

	if trimmed := strings.TrimRight(cfg.BaseURL, "/"); trimmed != "" {
		opts = append(opts, option.WithBaseURL(trimmed))
	}
	if cfg.Timeout > 0 {
		opts = append(opts, option.WithRequestTimeout(cfg.Timeout))
	}

	// OpenRouter specific attribution headers
	if cfg.SiteURL != "" {
		opts = append(opts, option.WithHeader("HTTP-Referer", cfg.SiteURL))
	}
	if cfg.SiteName != "" {
		opts = append(opts, option.WithHeader("X-Title", cfg.SiteName))
	}

	maxTokens := cfg.MaxCompletionToken
	if maxTokens <= 0 {
		maxTokens = 1000
	}

	return &Client{
		api:         openaisdk.NewClient(opts...),
		model:       model,
		temperature: cfg.Temperature,
		maxTokens:   maxTokens,
	}, nil
}

// Generate issues one chat completion with the prompt as the sole user message
// and returns the first choice's text.
func (c *Client) Generate(ctx context.Context, prompt string) (string, error) {
	resp, err := c.api.Chat.Completions.New(ctx, openaisdk.ChatCompletionNewParams{
		Model: openaisdk.ChatModel(c.model),
		Messages: []openaisdk.ChatCompletionMessageParamUnion{
			openaisdk.UserMessage(prompt),
		},
		Temperature:         openaisdk.Float(float64(c.temperature)),
		MaxCompletionTokens: openaisdk.Int(int64(c.maxTokens)),
	})
	if err != nil {
		return "", fmt.Errorf("%w: model=%s: %v", contractx.ErrClassifierInvoke, c.model, err)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("%w: model=%s", contractx.ErrEmptyCompletion, c.model)
	}
	return resp.Choices[0].Message.Content, nil
}
