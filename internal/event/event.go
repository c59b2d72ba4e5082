package event

import (
	"fmt"

	"github.com/spamurai/spamurai/internal/llm"
)

// Topic names one of the pipeline's event streams. The vocabulary is a
// single closed enumeration; no stage hardcodes a topic string anywhere
// else.
type Topic string

const (
	// TopicPROpened and TopicPREdited carry a *PullRequest emitted by
	// the webhook ingestor.
	TopicPROpened Topic = "pr.opened"
	TopicPREdited Topic = "pr.edited"

	// TopicPRAnalysed carries an *Analysis emitted by the classifier.
	TopicPRAnalysed Topic = "pr.analysed"

	// TopicPRCommented carries an *Analysis re-emitted by the comment
	// dispatcher once the feedback comment is posted.
	TopicPRCommented Topic = "pr.commented"
)

// PullRequest is the normalized unit the ingestor emits. Description and
// Diff may be empty, never absent: a nil webhook body and a failed diff
// fetch both degrade to "".
type PullRequest struct {
	Number         int
	Owner          string
	Repo           string
	InstallationID int64
	Title          string
	Description    string
	Diff           string
}

// Key returns a stable identifier for logging.
func (p *PullRequest) Key() string {
	return fmt.Sprintf("%s/%s#%d", p.Owner, p.Repo, p.Number)
}

// Analysis carries a classification verdict downstream. Body is the
// model's feedback text, posted verbatim as the PR comment.
type Analysis struct {
	Number            int
	Owner             string
	Repo              string
	InstallationID    int64
	Body              string
	IsSpam            bool
	RecommendedAction llm.Action
}

// Key returns a stable identifier for logging.
func (a *Analysis) Key() string {
	return fmt.Sprintf("%s/%s#%d", a.Owner, a.Repo, a.Number)
}
