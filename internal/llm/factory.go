package llm

import (
	"fmt"

	"github.com/spamurai/spamurai/internal/config"
)

// Settings carries the provider-independent knobs for a classifier.
type Settings struct {
	APIKey      string
	Model       string
	MaxTokens   int64
	Temperature float64
}

// ClassifierFactory is a function that creates a Classifier.
type ClassifierFactory func(s Settings) Classifier

// registry holds registered classifier factories by provider.
var registry = make(map[Provider]ClassifierFactory)

// Register registers a classifier factory for a provider.
func Register(provider Provider, factory ClassifierFactory) {
	registry[provider] = factory
}

// NewClassifier creates a classifier based on the configured provider.
func NewClassifier(cfg *config.Config) (Classifier, error) {
	provider := Provider(cfg.LLM.Provider)
	factory, ok := registry[provider]
	if !ok {
		return nil, fmt.Errorf("LLM provider %q not registered (import _ \"github.com/spamurai/spamurai/internal/llm/%s\")", provider, provider)
	}
	return factory(Settings{
		APIKey:      cfg.LLM.APIKey,
		Model:       cfg.LLM.Model,
		MaxTokens:   cfg.LLM.MaxTokens,
		Temperature: cfg.LLM.Temperature,
	}), nil
}
