package webhook

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"io"
	"log"
	"net/http"
	"strings"

	"github.com/spamurai/spamurai/internal/metrics"
)

// EventHandler is called with each validated pull request payload.
type EventHandler func(ctx context.Context, p *Payload) error

// Handler handles GitHub pull request webhook requests.
type Handler struct {
	secret  string
	handler EventHandler
}

// NewHandler creates a webhook handler. An empty secret disables
// signature verification; the bot then accepts unsigned deliveries.
func NewHandler(secret string, handler EventHandler) *Handler {
	return &Handler{
		secret:  secret,
		handler: handler,
	}
}

// ServeHTTP implements http.Handler. Once a payload carries a
// pull_request object the response is 200 no matter what happens
// downstream: pipeline failures surface in logs, not to GitHub.
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(r.Body)
	if err != nil {
		respond(w, http.StatusBadRequest, "failed to read body")
		return
	}

	if h.secret != "" {
		signature := r.Header.Get("X-Hub-Signature-256")
		if signature == "" {
			respond(w, http.StatusUnauthorized, "missing signature")
			return
		}
		if !h.verifySignature(body, signature) {
			respond(w, http.StatusUnauthorized, "invalid signature")
			return
		}
	}

	metrics.WebhookReceived()

	var payload Payload
	if err := json.Unmarshal(body, &payload); err != nil {
		respond(w, http.StatusBadRequest, "failed to parse payload")
		return
	}

	if payload.PullRequest == nil || payload.PullRequest.Number <= 0 {
		respond(w, http.StatusNotFound, "no pr found")
		return
	}

	if err := h.handler(r.Context(), &payload); err != nil {
		log.Printf("Pipeline error for %s/%s#%d: %v",
			payload.Repository.Owner.Login, payload.Repository.Name,
			payload.PullRequest.Number, err)
	}

	metrics.WebhookProcessed()
	respond(w, http.StatusOK, "Webhook processed successfully")
}

// verifySignature verifies the GitHub webhook signature.
func (h *Handler) verifySignature(payload []byte, signature string) bool {
	if !strings.HasPrefix(signature, "sha256=") {
		return false
	}

	sig, err := hex.DecodeString(strings.TrimPrefix(signature, "sha256="))
	if err != nil {
		return false
	}

	mac := hmac.New(sha256.New, []byte(h.secret))
	mac.Write(payload)
	expected := mac.Sum(nil)

	return hmac.Equal(sig, expected)
}

func respond(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]string{"message": message})
}
