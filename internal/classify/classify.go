package classify

import (
	"context"
	"fmt"
	"log"

	"github.com/spamurai/spamurai/internal/event"
	"github.com/spamurai/spamurai/internal/llm"
	"github.com/spamurai/spamurai/internal/metrics"
)

// Classifier is the pipeline stage that asks the model for a spam
// verdict and emits pr.analysed.
type Classifier struct {
	bus   *event.Bus
	model llm.Classifier
}

// New creates the classification stage.
func New(bus *event.Bus, model llm.Classifier) *Classifier {
	return &Classifier{
		bus:   bus,
		model: model,
	}
}

// Register subscribes the stage to both PR-change topics.
func (c *Classifier) Register() {
	c.bus.Subscribe(event.TopicPROpened, c.handle)
	c.bus.Subscribe(event.TopicPREdited, c.handle)
}

// handle issues exactly one classification call. An undetermined result
// (model error, empty or unparseable output) is logged and ends the
// pipeline for this PR: no verdict is ever fabricated, and the handler
// does not fail the emitter over it.
func (c *Classifier) handle(ctx context.Context, payload any) error {
	pr, ok := payload.(*event.PullRequest)
	if !ok {
		return fmt.Errorf("classify: unexpected payload type %T", payload)
	}
	log.Printf("Classifying %s", pr.Key())

	verdict, err := c.model.Classify(ctx, llm.Input{
		Title:       pr.Title,
		Description: pr.Description,
		Diff:        pr.Diff,
	})
	if err != nil {
		metrics.ClassificationFailed()
		log.Printf("Classification undetermined for %s: %v", pr.Key(), err)
		return nil
	}
	if verdict == nil {
		metrics.ClassificationFailed()
		log.Printf("Classification undetermined for %s: no verdict", pr.Key())
		return nil
	}

	metrics.PRAnalysed()
	if verdict.IsSpam {
		metrics.SpamDetected()
	}
	log.Printf("Verdict for %s: isSpam=%t action=%s", pr.Key(), verdict.IsSpam, verdict.RecommendedAction)

	return c.bus.Emit(ctx, event.TopicPRAnalysed, &event.Analysis{
		Number:            pr.Number,
		Owner:             pr.Owner,
		Repo:              pr.Repo,
		InstallationID:    pr.InstallationID,
		Body:              verdict.Feedback,
		IsSpam:            verdict.IsSpam,
		RecommendedAction: verdict.RecommendedAction,
	})
}
