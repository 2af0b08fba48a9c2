package llm

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOllamaComplete(t *testing.T) {
	var gotBody map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/api/chat", r.URL.Path)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))
		fmt.Fprint(w, `{"message":{"role":"assistant","content":"calculate_total"},"done":true}`)
	}))
	defer srv.Close()

	client, err := NewClient(Config{BaseURL: srv.URL, Model: "llama3.2"})
	require.NoError(t, err)

	got, err := client.Complete(context.Background(),
		SystemUser("system prompt", "user question"),
		Options{Temperature: 0.2, MaxTokens: 64})
	require.NoError(t, err)
	assert.Equal(t, "calculate_total", got)

	assert.Equal(t, "llama3.2", gotBody["model"])
	assert.Equal(t, false, gotBody["stream"])
	opts, ok := gotBody["options"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, 0.2, opts["temperature"])
	assert.Equal(t, float64(64), opts["num_predict"])
}

func TestOllamaComplete_Errors(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		body    string
		wantErr string
	}{
		{name: "server error", status: http.StatusInternalServerError, body: "boom", wantErr: "status 500"},
		{name: "empty completion", status: http.StatusOK, body: `{"message":{"content":""},"done":true}`, wantErr: "empty completion"},
		{name: "malformed json", status: http.StatusOK, body: "{", wantErr: "failed to parse response"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
				w.WriteHeader(tt.status)
				fmt.Fprint(w, tt.body)
			}))
			defer srv.Close()

			client, err := NewClient(Config{BaseURL: srv.URL, Model: "llama3.2"})
			require.NoError(t, err)

			_, err = client.Complete(context.Background(), SystemUser("s", "u"), Options{})
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestOllamaListModels(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/api/tags", r.URL.Path)
		fmt.Fprint(w, `{"models":[{"name":"llama3.2"},{"name":"mistral"}]}`)
	}))
	defer srv.Close()

	client, err := NewClient(Config{BaseURL: srv.URL, Model: "llama3.2"})
	require.NoError(t, err)

	lister, ok := client.(ModelLister)
	require.True(t, ok)
	models, err := lister.ListModels(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"llama3.2", "mistral"}, models)
}

func TestOpenAIComplete(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/chat/completions", r.URL.Path)
		require.Equal(t, "Bearer sk-test", r.Header.Get("Authorization"))
		fmt.Fprint(w, `{"choices":[{"message":{"role":"assistant","content":"hello"},"finish_reason":"stop"}]}`)
	}))
	defer srv.Close()

	client, err := NewClient(Config{Provider: "openai", BaseURL: srv.URL, APIKey: "sk-test", Model: "gpt-4o-mini"})
	require.NoError(t, err)

	got, err := client.Complete(context.Background(), SystemUser("s", "u"), Options{})
	require.NoError(t, err)
	assert.Equal(t, "hello", got)
}

func TestOpenAIComplete_NoChoices(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		fmt.Fprint(w, `{"choices":[]}`)
	}))
	defer srv.Close()

	client, err := NewClient(Config{Provider: "openai", BaseURL: srv.URL, APIKey: "sk-test"})
	require.NoError(t, err)

	_, err = client.Complete(context.Background(), SystemUser("s", "u"), Options{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no completion choices")
}

func TestSystemUser(t *testing.T) {
	msgs := SystemUser("be helpful", "what is up")
	require.Len(t, msgs, 2)
	assert.Equal(t, Message{Role: RoleSystem, Content: "be helpful"}, msgs[0])
	assert.Equal(t, Message{Role: RoleUser, Content: "what is up"}, msgs[1])
}
