package webhook

// Payload is the subset of the GitHub pull_request webhook the bot reads.
type Payload struct {
	Action       string       `json:"action"`
	PullRequest  *PullRequest `json:"pull_request"`
	Repository   Repository   `json:"repository"`
	Installation Installation `json:"installation"`
}

// PullRequest mirrors the pull_request object of the webhook.
type PullRequest struct {
	Number int    `json:"number"`
	Title  string `json:"title"`

	// Body is a pointer: GitHub sends null for PRs without a
	// description, and consumers normalize that to "".
	Body *string `json:"body"`

	State   string  `json:"state"`
	Labels  []Label `json:"labels"`
	User    Account `json:"user"`
	Base    Ref     `json:"base"`
	Head    Ref     `json:"head"`
	HTMLURL string  `json:"html_url"`
	DiffURL string  `json:"diff_url"`
}

// Ref is a branch reference with its repository.
type Ref struct {
	Ref  string      `json:"ref"`
	SHA  string      `json:"sha"`
	Repo *Repository `json:"repo"`
}

// Repository identifies a repository by name and owner.
type Repository struct {
	Name  string  `json:"name"`
	Owner Account `json:"owner"`
}

// Account is a user or organization login.
type Account struct {
	Login string `json:"login"`
}

// Label is a label attached to the pull request.
type Label struct {
	Name string `json:"name"`
}

// Installation carries the GitHub App installation id used to mint
// scoped tokens for every authenticated call downstream.
type Installation struct {
	ID int64 `json:"id"`
}
