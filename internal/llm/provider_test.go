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

func TestNewProvider_InvalidName(t *testing.T) {
	_, err := NewProvider(ProviderConfig{Name: "invalid", APIKey: "key", Model: "model"})
	assert.Error(t, err)
}

func TestNewProvider_ValidNames(t *testing.T) {
	tests := []struct {
		name ProviderName
	}{
		{ProviderOpenAI},
		{ProviderAnthropic},
		{ProviderOllama},
		{ProviderGemini},
	}
	for _, tt := range tests {
		t.Run(string(tt.name), func(t *testing.T) {
			p, err := NewProvider(ProviderConfig{
				Name:       tt.name,
				APIKey:     "fake-key",
				Model:      "model",
				OllamaHost: "http://localhost:11434",
			})
			require.NoError(t, err)
			assert.NotNil(t, p)
		})
	}
}

func TestNewProvider_None(t *testing.T) {
	for _, name := range []ProviderName{ProviderNone, ""} {
		p, err := NewProvider(ProviderConfig{Name: name})
		require.NoError(t, err)
		assert.Nil(t, p)
	}
}

func TestNewProvider_BadOllamaHost(t *testing.T) {
	_, err := NewProvider(ProviderConfig{Name: ProviderOllama, OllamaHost: "://bad", Model: "m"})
	assert.Error(t, err)
}

func TestOllamaComplete(t *testing.T) {
	var got struct {
		Model    string `json:"model"`
		Stream   *bool  `json:"stream"`
		Messages []struct {
			Role    string `json:"role"`
			Content string `json:"content"`
		} `json:"messages"`
	}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/chat", r.URL.Path)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `{"model":"llama3.1:8b","message":{"role":"assistant","content":"85"},"done":true}`)
	}))
	defer srv.Close()

	p, err := NewProvider(ProviderConfig{Name: ProviderOllama, OllamaHost: srv.URL, Model: "llama3.1:8b"})
	require.NoError(t, err)

	out, err := p.Complete(context.Background(), "grade it", "README text", nil)
	require.NoError(t, err)
	assert.Equal(t, "85", out)
	assert.Equal(t, "llama3.1:8b", got.Model)
	require.NotNil(t, got.Stream)
	assert.False(t, *got.Stream)
	require.Len(t, got.Messages, 2)
	assert.Equal(t, "system", got.Messages[0].Role)
	assert.Equal(t, "README text", got.Messages[1].Content)
}

func TestOllamaComplete_ServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		fmt.Fprint(w, `{"error":"model not loaded"}`)
	}))
	defer srv.Close()

	p, err := NewProvider(ProviderConfig{Name: ProviderOllama, OllamaHost: srv.URL, Model: "m"})
	require.NoError(t, err)

	_, err = p.Complete(context.Background(), "s", "p", nil)
	assert.ErrorContains(t, err, "ollama chat")
}

func TestOpenAIComplete_CompatibleEndpoint(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/chat/completions", r.URL.Path)
		assert.Equal(t, "Bearer sk-test", r.Header.Get("Authorization"))
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `{"id":"x","object":"chat.completion","choices":[{"index":0,"message":{"role":"assistant","content":"{\"ok\":true}"},"finish_reason":"stop"}]}`)
	}))
	defer srv.Close()

	p, err := NewProvider(ProviderConfig{Name: ProviderOpenAI, APIKey: "sk-test", Model: "gpt-4o", BaseURL: srv.URL + "/v1"})
	require.NoError(t, err)

	out, err := p.Complete(context.Background(), "s", "p", nil)
	require.NoError(t, err)
	assert.Equal(t, `{"ok":true}`, out)
}

func TestOpenAIComplete_NoChoices(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `{"id":"x","object":"chat.completion","choices":[]}`)
	}))
	defer srv.Close()

	p, err := NewProvider(ProviderConfig{Name: ProviderOpenAI, APIKey: "k", Model: "m", BaseURL: srv.URL})
	require.NoError(t, err)

	_, err = p.Complete(context.Background(), "s", "p", nil)
	assert.ErrorContains(t, err, "no choices")
}
