package anthropic

import (
	"context"
	"fmt"
	"strings"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"

	"github.com/spamurai/spamurai/internal/llm"
)

// Ensure Classifier implements llm.Classifier.
var _ llm.Classifier = (*Classifier)(nil)

func init() {
	llm.Register(llm.ProviderAnthropic, func(s llm.Settings) llm.Classifier {
		return New(s)
	})
}

// Classifier implements llm.Classifier over the Anthropic messages API.
type Classifier struct {
	client      anthropic.Client
	model       string
	maxTokens   int64
	temperature float64
}

// New creates an Anthropic-backed classifier. Extra request options are
// mainly for tests (base URL overrides, retry suppression).
func New(s llm.Settings, opts ...option.RequestOption) *Classifier {
	reqOpts := append([]option.RequestOption{option.WithAPIKey(s.APIKey)}, opts...)
	return &Classifier{
		client:      anthropic.NewClient(reqOpts...),
		model:       s.Model,
		maxTokens:   s.MaxTokens,
		temperature: s.Temperature,
	}
}

// Classify makes a single messages call and parses the verdict from the
// concatenated text blocks.
func (c *Classifier) Classify(ctx context.Context, in llm.Input) (*llm.Verdict, error) {
	params := anthropic.MessageNewParams{
		Model:     anthropic.Model(c.model),
		MaxTokens: c.maxTokens,
		Messages: []anthropic.MessageParam{{
			Role: anthropic.MessageParamRoleUser,
			Content: []anthropic.ContentBlockParamUnion{
				anthropic.NewTextBlock(llm.BuildPrompt(in)),
			},
		}},
	}
	params.Temperature = anthropic.Float(c.temperature)

	msg, err := c.client.Messages.New(ctx, params)
	if err != nil {
		return nil, fmt.Errorf("messages: %w", err)
	}

	var text strings.Builder
	for _, block := range msg.Content {
		if block.Type == "text" {
			text.WriteString(block.Text)
		}
	}
	if text.Len() == 0 {
		return nil, llm.ErrEmptyResponse
	}
	return llm.ParseVerdict(text.String())
}
