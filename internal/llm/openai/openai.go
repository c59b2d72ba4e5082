package openai

import (
	"context"
	"fmt"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"

	"github.com/spamurai/spamurai/internal/llm"
)

// Ensure Classifier implements llm.Classifier.
var _ llm.Classifier = (*Classifier)(nil)

func init() {
	llm.Register(llm.ProviderOpenAI, func(s llm.Settings) llm.Classifier {
		return New(s)
	})
}

// Classifier implements llm.Classifier over the OpenAI chat completions
// API.
type Classifier struct {
	client      openai.Client
	model       string
	maxTokens   int64
	temperature float64
}

// New creates an OpenAI-backed classifier. Extra request options are
// mainly for tests (base URL overrides, retry suppression).
func New(s llm.Settings, opts ...option.RequestOption) *Classifier {
	reqOpts := append([]option.RequestOption{option.WithAPIKey(s.APIKey)}, opts...)
	return &Classifier{
		client:      openai.NewClient(reqOpts...),
		model:       s.Model,
		maxTokens:   s.MaxTokens,
		temperature: s.Temperature,
	}
}

// Classify makes a single chat completion call and parses the verdict.
func (c *Classifier) Classify(ctx context.Context, in llm.Input) (*llm.Verdict, error) {
	resp, err := c.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model: openai.ChatModel(c.model),
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.UserMessage(llm.BuildPrompt(in)),
		},
		MaxTokens:   openai.Int(c.maxTokens),
		Temperature: openai.Float(c.temperature),
	})
	if err != nil {
		return nil, fmt.Errorf("chat completion: %w", err)
	}
	if len(resp.Choices) == 0 {
		return nil, llm.ErrEmptyResponse
	}
	return llm.ParseVerdict(resp.Choices[0].Message.Content)
}
