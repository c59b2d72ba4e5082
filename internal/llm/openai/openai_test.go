package openai

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/openai/openai-go/option"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spamurai/spamurai/internal/llm"
)

func testSettings() llm.Settings {
	return llm.Settings{
		APIKey:      "sk-test",
		Model:       "gpt-4",
		MaxTokens:   1500,
		Temperature: 0.5,
	}
}

// completion wraps content in a minimal chat completion response body.
func completion(content string) string {
	b, _ := json.Marshal(content)
	return fmt.Sprintf(`{
		"id": "chatcmpl-1",
		"object": "chat.completion",
		"model": "gpt-4",
		"choices": [{
			"index": 0,
			"finish_reason": "stop",
			"message": {"role": "assistant", "content": %s}
		}]
	}`, b)
}

func newTestClassifier(t *testing.T, handler http.HandlerFunc) *Classifier {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return New(testSettings(),
		option.WithBaseURL(srv.URL),
		option.WithMaxRetries(0),
	)
}

func TestClassify(t *testing.T) {
	verdict := `{"isSpam": true, "spamConfidence": 0.9, "PRConfidence": 0.1, "quality": 0.1, "reasons": ["trivial edit"], "feedback": "Please submit a meaningful change.", "recommendedAction": "close"}`

	var gotBody map[string]any
	c := newTestClassifier(t, func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, completion(verdict))
	})

	v, err := c.Classify(context.Background(), llm.Input{
		Title:       "Refactored API logic",
		Description: "Improved the code",
		Diff:        `+console.log("test")`,
	})
	require.NoError(t, err)

	assert.True(t, v.IsSpam)
	assert.Equal(t, llm.ActionClose, v.RecommendedAction)
	assert.Equal(t, "Please submit a meaningful change.", v.Feedback)

	assert.Equal(t, "gpt-4", gotBody["model"])
	assert.EqualValues(t, 1500, gotBody["max_tokens"])
	assert.InDelta(t, 0.5, gotBody["temperature"].(float64), 1e-9)

	messages := gotBody["messages"].([]any)
	require.Len(t, messages, 1, "exactly one user message per call")
	msg := messages[0].(map[string]any)
	assert.Equal(t, "user", msg["role"])
	assert.Contains(t, msg["content"], `PR Title: "Refactored API logic"`)
}

func TestClassify_FencedResponse(t *testing.T) {
	c := newTestClassifier(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, completion("```json\n{\"isSpam\": false, \"recommendedAction\": \"none\"}\n```"))
	})

	v, err := c.Classify(context.Background(), llm.Input{Title: "t"})
	require.NoError(t, err)
	assert.False(t, v.IsSpam)
	assert.Equal(t, llm.ActionNone, v.RecommendedAction)
}

func TestClassify_EmptyContent(t *testing.T) {
	c := newTestClassifier(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, completion(""))
	})

	_, err := c.Classify(context.Background(), llm.Input{Title: "t"})
	assert.ErrorIs(t, err, llm.ErrEmptyResponse)
}

func TestClassify_APIError(t *testing.T) {
	c := newTestClassifier(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error": {"message": "model overloaded"}}`, http.StatusServiceUnavailable)
	})

	v, err := c.Classify(context.Background(), llm.Input{Title: "t"})
	assert.Error(t, err)
	assert.Nil(t, v, "no verdict is fabricated on API failure")
}

func TestClassify_UnparseableVerdict(t *testing.T) {
	c := newTestClassifier(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, completion("I think this PR is probably fine."))
	})

	v, err := c.Classify(context.Background(), llm.Input{Title: "t"})
	assert.Error(t, err)
	assert.Nil(t, v)
}
