package metrics

import (
	"sync/atomic"
)

// Metrics tracks operational metrics.
type Metrics struct {
	WebhooksReceived      uint64 `json:"webhooks_received"`
	WebhooksProcessed     uint64 `json:"webhooks_processed"`
	PRsAnalysed           uint64 `json:"prs_analysed"`
	SpamDetected          uint64 `json:"spam_detected"`
	ClassificationsFailed uint64 `json:"classifications_failed"`
	CommentsPosted        uint64 `json:"comments_posted"`
	PRsClosed             uint64 `json:"prs_closed"`
}

var global = &Metrics{}

// WebhookReceived increments the count of webhooks received.
func WebhookReceived() { atomic.AddUint64(&global.WebhooksReceived, 1) }

// WebhookProcessed increments the count of webhooks processed.
func WebhookProcessed() { atomic.AddUint64(&global.WebhooksProcessed, 1) }

// PRAnalysed increments the count of pull requests with a verdict.
func PRAnalysed() { atomic.AddUint64(&global.PRsAnalysed, 1) }

// SpamDetected increments the count of spam verdicts.
func SpamDetected() { atomic.AddUint64(&global.SpamDetected, 1) }

// ClassificationFailed increments the count of undetermined classifications.
func ClassificationFailed() { atomic.AddUint64(&global.ClassificationsFailed, 1) }

// CommentPosted increments the count of feedback comments posted.
func CommentPosted() { atomic.AddUint64(&global.CommentsPosted, 1) }

// PRClosed increments the count of pull requests closed as spam.
func PRClosed() { atomic.AddUint64(&global.PRsClosed, 1) }

// Get returns a snapshot of the current metrics.
func Get() Metrics {
	return Metrics{
		WebhooksReceived:      atomic.LoadUint64(&global.WebhooksReceived),
		WebhooksProcessed:     atomic.LoadUint64(&global.WebhooksProcessed),
		PRsAnalysed:           atomic.LoadUint64(&global.PRsAnalysed),
		SpamDetected:          atomic.LoadUint64(&global.SpamDetected),
		ClassificationsFailed: atomic.LoadUint64(&global.ClassificationsFailed),
		CommentsPosted:        atomic.LoadUint64(&global.CommentsPosted),
		PRsClosed:             atomic.LoadUint64(&global.PRsClosed),
	}
}

// Reset resets all metrics to zero (useful for testing).
func Reset() {
	atomic.StoreUint64(&global.WebhooksReceived, 0)
	atomic.StoreUint64(&global.WebhooksProcessed, 0)
	atomic.StoreUint64(&global.PRsAnalysed, 0)
	atomic.StoreUint64(&global.SpamDetected, 0)
	atomic.StoreUint64(&global.ClassificationsFailed, 0)
	atomic.StoreUint64(&global.CommentsPosted, 0)
	atomic.StoreUint64(&global.PRsClosed, 0)
}
