package github

// Labels the bot may attach to triaged pull requests.
const (
	LabelSpam           = "spam"
	LabelWIP            = "wip"
	LabelGoodFirstIssue = "good-first-issue"
	LabelDocumentation  = "documentation"
	LabelBug            = "bug"
	LabelFeature        = "feature"
)
