package comment

import (
	"context"
	"fmt"
	"log"

	gh "github.com/google/go-github/v60/github"

	"github.com/spamurai/spamurai/internal/event"
	"github.com/spamurai/spamurai/internal/metrics"
)

// Poster is the slice of the GitHub collaborator the dispatcher needs.
type Poster interface {
	CreateComment(ctx context.Context, owner, repo string, number int, body string, installationID int64) (*gh.IssueComment, error)
}

// Dispatcher posts the verdict feedback as a PR comment and re-emits the
// analysis as pr.commented, so downstream stages can depend on the
// comment having been posted.
type Dispatcher struct {
	bus *event.Bus
	gh  Poster
}

// New creates the comment stage.
func New(bus *event.Bus, gh Poster) *Dispatcher {
	return &Dispatcher{
		bus: bus,
		gh:  gh,
	}
}

// Register subscribes the stage to pr.analysed.
func (d *Dispatcher) Register() {
	d.bus.Subscribe(event.TopicPRAnalysed, d.handle)
}

// handle posts the comment. Unlike the diff fetch, a failure here is not
// swallowed: the error propagates and nothing is re-emitted, halting
// this PR's pipeline at the comment stage. Replayed analyses post again;
// there is no dedup.
func (d *Dispatcher) handle(ctx context.Context, payload any) error {
	analysis, ok := payload.(*event.Analysis)
	if !ok {
		return fmt.Errorf("comment: unexpected payload type %T", payload)
	}
	log.Printf("Posting feedback comment on %s", analysis.Key())

	if _, err := d.gh.CreateComment(ctx, analysis.Owner, analysis.Repo, analysis.Number, analysis.Body, analysis.InstallationID); err != nil {
		return fmt.Errorf("posting comment on %s: %w", analysis.Key(), err)
	}
	metrics.CommentPosted()

	// Copy forward: events are values, never mutated in place.
	next := *analysis
	return d.bus.Emit(ctx, event.TopicPRCommented, &next)
}
