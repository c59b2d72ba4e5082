package llm

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spamurai/spamurai/internal/config"
)

type staticClassifier struct {
	verdict *Verdict
}

func (s staticClassifier) Classify(ctx context.Context, in Input) (*Verdict, error) {
	return s.verdict, nil
}

func TestNewClassifier(t *testing.T) {
	var got Settings
	Register(Provider("fake"), func(s Settings) Classifier {
		got = s
		return staticClassifier{}
	})
	t.Cleanup(func() { delete(registry, Provider("fake")) })

	cfg := config.DefaultConfig()
	cfg.LLM.Provider = "fake"
	cfg.LLM.APIKey = "sk-test"
	cfg.LLM.Model = "gpt-4"
	cfg.LLM.MaxTokens = 1500
	cfg.LLM.Temperature = 0.5

	c, err := NewClassifier(cfg)
	require.NoError(t, err)
	assert.NotNil(t, c)

	assert.Equal(t, "sk-test", got.APIKey)
	assert.Equal(t, "gpt-4", got.Model)
	assert.Equal(t, int64(1500), got.MaxTokens)
	assert.InDelta(t, 0.5, got.Temperature, 1e-9)
}

func TestNewClassifier_Unregistered(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.LLM.Provider = "no-such-provider"

	_, err := NewClassifier(cfg)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not registered")
}
