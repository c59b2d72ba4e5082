package closer

import (
	"context"
	"fmt"
	"log"

	gh "github.com/google/go-github/v60/github"

	"github.com/spamurai/spamurai/internal/event"
	"github.com/spamurai/spamurai/internal/llm"
	"github.com/spamurai/spamurai/internal/metrics"
)

// PullRequestCloser is the slice of the GitHub collaborator the closer
// needs.
type PullRequestCloser interface {
	ClosePullRequest(ctx context.Context, owner, repo string, number int, installationID int64) (*gh.PullRequest, error)
}

// Closer is the pipeline terminal: it closes spam PRs and emits nothing.
type Closer struct {
	bus *event.Bus
	gh  PullRequestCloser
}

// New creates the close stage.
func New(bus *event.Bus, gh PullRequestCloser) *Closer {
	return &Closer{
		bus: bus,
		gh:  gh,
	}
}

// Register subscribes the stage to a verdict-bearing topic: pr.commented
// in the default wiring, or pr.analysed when the deployment closes
// without waiting for the comment.
func (c *Closer) Register(topic event.Topic) {
	c.bus.Subscribe(topic, c.handle)
}

// handle applies the sole close rule: isSpam AND recommendedAction ==
// "close". Every other verdict is a no-op. Close errors propagate; the
// already-posted comment stands.
func (c *Closer) handle(ctx context.Context, payload any) error {
	analysis, ok := payload.(*event.Analysis)
	if !ok {
		return fmt.Errorf("closer: unexpected payload type %T", payload)
	}

	if !analysis.IsSpam || analysis.RecommendedAction != llm.ActionClose {
		return nil
	}

	log.Printf("Closing spam PR %s", analysis.Key())
	if _, err := c.gh.ClosePullRequest(ctx, analysis.Owner, analysis.Repo, analysis.Number, analysis.InstallationID); err != nil {
		return fmt.Errorf("closing %s: %w", analysis.Key(), err)
	}
	metrics.PRClosed()
	return nil
}
