package ingest

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spamurai/spamurai/internal/config"
	"github.com/spamurai/spamurai/internal/event"
	"github.com/spamurai/spamurai/internal/webhook"
)

type fakeDiffs struct {
	diff  string
	err   error
	calls int

	owner  string
	repo   string
	number int
	instID int64
}

func (f *fakeDiffs) GetPullRequestDiff(ctx context.Context, owner, repo string, number int, installationID int64) (string, error) {
	f.calls++
	f.owner, f.repo, f.number, f.instID = owner, repo, number, installationID
	return f.diff, f.err
}

func allEvents() config.EventsConfig {
	return config.EventsConfig{Opened: true, Edited: true}
}

// capture subscribes to topic and records every payload.
func capture(bus *event.Bus, topic event.Topic) *[]*event.PullRequest {
	var got []*event.PullRequest
	bus.Subscribe(topic, func(ctx context.Context, payload any) error {
		got = append(got, payload.(*event.PullRequest))
		return nil
	})
	return &got
}

func payload(action string, number int) *webhook.Payload {
	body := "A real description."
	return &webhook.Payload{
		Action: action,
		PullRequest: &webhook.PullRequest{
			Number: number,
			Title:  "Add feature",
			Body:   &body,
		},
		Repository: webhook.Repository{
			Name:  "repo",
			Owner: webhook.Account{Login: "owner"},
		},
		Installation: webhook.Installation{ID: 123},
	}
}

func TestHandle_Opened(t *testing.T) {
	bus := event.NewBus()
	got := capture(bus, event.TopicPROpened)
	gh := &fakeDiffs{diff: "diff --git a/x b/x"}

	i := New(bus, gh, allEvents())
	require.NoError(t, i.Handle(context.Background(), payload("opened", 42)))

	require.Len(t, *got, 1)
	pr := (*got)[0]
	assert.Equal(t, 42, pr.Number)
	assert.Equal(t, "owner", pr.Owner)
	assert.Equal(t, "repo", pr.Repo)
	assert.Equal(t, int64(123), pr.InstallationID)
	assert.Equal(t, "Add feature", pr.Title)
	assert.Equal(t, "A real description.", pr.Description)
	assert.Equal(t, "diff --git a/x b/x", pr.Diff)

	assert.Equal(t, 1, gh.calls)
	assert.Equal(t, "owner", gh.owner)
	assert.Equal(t, int64(123), gh.instID)
}

func TestHandle_EditedTopic(t *testing.T) {
	bus := event.NewBus()
	opened := capture(bus, event.TopicPROpened)
	edited := capture(bus, event.TopicPREdited)

	i := New(bus, &fakeDiffs{}, allEvents())
	require.NoError(t, i.Handle(context.Background(), payload("edited", 7)))

	assert.Empty(t, *opened)
	require.Len(t, *edited, 1)
	assert.Equal(t, 7, (*edited)[0].Number)
}

func TestHandle_DiffFetchFailureDegrades(t *testing.T) {
	bus := event.NewBus()
	got := capture(bus, event.TopicPROpened)
	gh := &fakeDiffs{err: errors.New("api down")}

	i := New(bus, gh, allEvents())
	require.NoError(t, i.Handle(context.Background(), payload("opened", 42)))

	require.Len(t, *got, 1)
	assert.Empty(t, (*got)[0].Diff, "failed fetch degrades to an empty diff")
}

func TestHandle_NilBody(t *testing.T) {
	bus := event.NewBus()
	got := capture(bus, event.TopicPROpened)

	p := payload("opened", 42)
	p.PullRequest.Body = nil

	i := New(bus, &fakeDiffs{}, allEvents())
	require.NoError(t, i.Handle(context.Background(), p))

	require.Len(t, *got, 1)
	assert.Equal(t, "", (*got)[0].Description)
}

func TestHandle_UnsupportedAction(t *testing.T) {
	bus := event.NewBus()
	opened := capture(bus, event.TopicPROpened)
	edited := capture(bus, event.TopicPREdited)
	gh := &fakeDiffs{}

	i := New(bus, gh, allEvents())
	require.NoError(t, i.Handle(context.Background(), payload("closed", 42)))

	assert.Empty(t, *opened)
	assert.Empty(t, *edited)
}

func TestHandle_DisabledEvent(t *testing.T) {
	bus := event.NewBus()
	edited := capture(bus, event.TopicPREdited)

	i := New(bus, &fakeDiffs{}, config.EventsConfig{Opened: true, Edited: false})
	require.NoError(t, i.Handle(context.Background(), payload("edited", 42)))

	assert.Empty(t, *edited)
}

func TestHandle_BaseRepoCoordinatesWin(t *testing.T) {
	bus := event.NewBus()
	got := capture(bus, event.TopicPROpened)
	gh := &fakeDiffs{}

	p := payload("opened", 42)
	p.PullRequest.Base = webhook.Ref{
		Repo: &webhook.Repository{
			Name:  "upstream-repo",
			Owner: webhook.Account{Login: "upstream-owner"},
		},
	}

	i := New(bus, gh, allEvents())
	require.NoError(t, i.Handle(context.Background(), p))

	require.Len(t, *got, 1)
	assert.Equal(t, "upstream-owner", (*got)[0].Owner)
	assert.Equal(t, "upstream-repo", (*got)[0].Repo)
	assert.Equal(t, "upstream-owner", gh.owner)
	assert.Equal(t, "upstream-repo", gh.repo)
}

func TestHandle_MissingCoordinates(t *testing.T) {
	bus := event.NewBus()
	got := capture(bus, event.TopicPROpened)
	gh := &fakeDiffs{}

	p := payload("opened", 42)
	p.Repository = webhook.Repository{}

	i := New(bus, gh, allEvents())
	require.NoError(t, i.Handle(context.Background(), p))

	assert.Empty(t, *got)
	assert.Zero(t, gh.calls, "no outbound call without repository coordinates")
}
