package llm

import (
	"context"
	"errors"
)

// Provider identifies the classification backend.
type Provider string

const (
	ProviderOpenAI    Provider = "openai"
	ProviderAnthropic Provider = "anthropic"
)

// Action is the follow-up the model recommends for a pull request.
type Action string

const (
	ActionClose          Action = "close"
	ActionRequestChanges Action = "request_changes"
	ActionApprove        Action = "approve"
	ActionNone           Action = "none"
)

// Valid reports whether a is one of the four allowed actions.
func (a Action) Valid() bool {
	switch a {
	case ActionClose, ActionRequestChanges, ActionApprove, ActionNone:
		return true
	}
	return false
}

// Input is the pull request material handed to the model.
type Input struct {
	Title       string
	Description string
	Diff        string
}

// Verdict is the model's structured judgement of a pull request. Field
// names mirror the JSON contract the prompt demands, including the odd
// capitalization of PRConfidence.
type Verdict struct {
	IsSpam            bool     `json:"isSpam"`
	SpamConfidence    float64  `json:"spamConfidence"`
	PRConfidence      float64  `json:"PRConfidence"`
	Quality           float64  `json:"quality"`
	Reasons           []string `json:"reasons"`
	Feedback          string   `json:"feedback"`
	RecommendedAction Action   `json:"recommendedAction"`
}

// ErrEmptyResponse is returned when the model answered with no content at
// all. Callers treat it the same as any other classification failure: the
// verdict is undetermined, never defaulted.
var ErrEmptyResponse = errors.New("empty response from model")

// Classifier asks a language model whether a pull request is spam.
// Implementations make exactly one API call per Classify; there is no
// retry policy.
type Classifier interface {
	Classify(ctx context.Context, in Input) (*Verdict, error)
}
