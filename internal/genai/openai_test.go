package genai

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/Omkar290703/Ai-IV-Planner/internal/domain"
	"github.com/sashabaranov/go-openai/jsonschema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *OpenAI {
	t.Helper()

	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	client, err := NewOpenAI(WithToken("test-key"), WithBaseURL(srv.URL+"/v1"), WithHTTPClient(srv.Client()))
	require.NoError(t, err)
	return client
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

func TestNewOpenAIRequiresToken(t *testing.T) {
	_, err := NewOpenAI()
	require.Error(t, err)
}

func TestGenerateText(t *testing.T) {
	var gotBody map[string]any
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/chat/completions", r.URL.Path)
		_ = json.NewDecoder(r.Body).Decode(&gotBody)
		writeJSON(w, http.StatusOK, map[string]any{
			"id":      "chatcmpl-1",
			"object":  "chat.completion",
			"created": 1,
			"model":   "gpt-4o-mini",
			"choices": []map[string]any{{
				"index":         0,
				"message":       map[string]any{"role": "assistant", "content": "```json\n{}\n```"},
				"finish_reason": "stop",
			}},
		})
	})

	schema := &jsonschema.Definition{
		Type:       jsonschema.Object,
		Properties: map[string]jsonschema.Definition{"total": {Type: jsonschema.Number}},
	}
	text, err := client.GenerateText(context.Background(), TextRequest{Prompt: "plan", Schema: schema, SchemaName: "budget"})
	require.NoError(t, err)
	assert.Equal(t, "```json\n{}\n```", text)

	format, ok := gotBody["response_format"].(map[string]any)
	require.True(t, ok, "response_format should be sent when a schema is set")
	assert.Equal(t, "json_schema", format["type"])
}

func TestGenerateTextEmpty(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]any{"id": "x", "choices": []any{}})
	})

	_, err := client.GenerateText(context.Background(), TextRequest{Prompt: "plan"})
	require.Error(t, err)
	assert.Equal(t, domain.FailureEmpty, domain.ClassifyGeneration(err))
}

func TestGenerateTextQuota(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusTooManyRequests, map[string]any{
			"error": map[string]any{"message": "You exceeded your current quota", "type": "insufficient_quota", "code": "insufficient_quota"},
		})
	})

	_, err := client.GenerateText(context.Background(), TextRequest{Prompt: "plan"})
	require.Error(t, err)

	var quota domain.QuotaExceededError
	assert.True(t, errors.As(err, &quota))
	assert.True(t, domain.IsQuotaExceeded(err))
}

func TestGenerateTextServerError(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusUnauthorized, map[string]any{
			"error": map[string]any{"message": "invalid api key", "type": "invalid_request_error", "code": "invalid_api_key"},
		})
	})

	_, err := client.GenerateText(context.Background(), TextRequest{Prompt: "plan"})
	require.Error(t, err)
	assert.False(t, domain.IsQuotaExceeded(err))

	var pe domain.ProviderError
	require.True(t, errors.As(err, &pe))
	assert.Equal(t, http.StatusUnauthorized, pe.StatusCode)
	assert.Equal(t, "invalid_api_key", pe.Code)
}

func TestGenerateImage(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/images/generations", r.URL.Path)
		writeJSON(w, http.StatusOK, map[string]any{
			"created": 1,
			"data":    []map[string]any{{"b64_json": "aGVsbG8="}},
		})
	})

	uri, err := client.GenerateImage(context.Background(), "city skyline")
	require.NoError(t, err)
	assert.Equal(t, "data:image/png;base64,aGVsbG8=", uri)
}

func TestGenerateImageNoData(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]any{"created": 1, "data": []any{}})
	})

	uri, err := client.GenerateImage(context.Background(), "city skyline")
	require.NoError(t, err)
	assert.Empty(t, uri)
}

func TestDisabledProvider(t *testing.T) {
	_, err := Disabled{}.GenerateText(context.Background(), TextRequest{})
	assert.Equal(t, domain.FailureProvider, domain.ClassifyGeneration(err))

	_, err = Disabled{}.GenerateImage(context.Background(), "x")
	assert.Error(t, err)
}
