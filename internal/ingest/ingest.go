package ingest

import (
	"context"
	"log"

	"github.com/spamurai/spamurai/internal/config"
	"github.com/spamurai/spamurai/internal/event"
	"github.com/spamurai/spamurai/internal/webhook"
)

// DiffFetcher is the slice of the GitHub collaborator the ingestor needs.
type DiffFetcher interface {
	GetPullRequestDiff(ctx context.Context, owner, repo string, number int, installationID int64) (string, error)
}

// Ingestor converts validated webhook payloads into pipeline events.
type Ingestor struct {
	bus    *event.Bus
	gh     DiffFetcher
	events config.EventsConfig
}

// New creates an ingestor emitting onto the given bus.
func New(bus *event.Bus, gh DiffFetcher, events config.EventsConfig) *Ingestor {
	return &Ingestor{
		bus:    bus,
		gh:     gh,
		events: events,
	}
}

// Handle implements webhook.EventHandler. It normalizes the payload,
// attempts exactly one diff fetch, and emits pr.opened or pr.edited.
// Actions outside {opened, edited} are logged and dropped.
func (i *Ingestor) Handle(ctx context.Context, p *webhook.Payload) error {
	pr := p.PullRequest
	log.Printf("Received webhook: action=%s pr=%d", p.Action, pr.Number)

	// Prefer the PR's own base repo coordinates; fall back to the
	// top-level repository object.
	owner := p.Repository.Owner.Login
	repo := p.Repository.Name
	if pr.Base.Repo != nil {
		if pr.Base.Repo.Owner.Login != "" {
			owner = pr.Base.Repo.Owner.Login
		}
		if pr.Base.Repo.Name != "" {
			repo = pr.Base.Repo.Name
		}
	}
	if owner == "" || repo == "" {
		log.Printf("Dropping webhook for pr=%d: repository coordinates missing", pr.Number)
		return nil
	}

	// One fetch, no retry. A failed fetch degrades to an empty diff:
	// title and description alone still carry spam signal.
	diff, err := i.gh.GetPullRequestDiff(ctx, owner, repo, pr.Number, p.Installation.ID)
	if err != nil {
		log.Printf("Failed to fetch PR diff for %s/%s#%d: %v", owner, repo, pr.Number, err)
		diff = ""
	}

	topic, ok := i.topicFor(p.Action)
	if !ok {
		log.Printf("Unsupported action: %s", p.Action)
		return nil
	}

	description := ""
	if pr.Body != nil {
		description = *pr.Body
	}

	return i.bus.Emit(ctx, topic, &event.PullRequest{
		Number:         pr.Number,
		Owner:          owner,
		Repo:           repo,
		InstallationID: p.Installation.ID,
		Title:          pr.Title,
		Description:    description,
		Diff:           diff,
	})
}

// topicFor maps a webhook action to its pipeline topic. The second
// return is false for actions the pipeline ignores, including actions
// disabled in config.
func (i *Ingestor) topicFor(action string) (event.Topic, bool) {
	switch action {
	case "opened":
		return event.TopicPROpened, i.events.Opened
	case "edited":
		return event.TopicPREdited, i.events.Edited
	default:
		return "", false
	}
}
