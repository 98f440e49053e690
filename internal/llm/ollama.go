package llm

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/ollama/ollama/api"
)

const defaultOllamaHost = "http://localhost:11434"

type ollamaProvider struct {
	client *api.Client
	model  string
}

func newOllama(host, model string) (*ollamaProvider, error) {
	if host == "" {
		host = defaultOllamaHost
	}
	u, err := url.Parse(host)
	if err != nil {
		return nil, fmt.Errorf("invalid ollama host %q: %w", host, err)
	}
	httpClient := &http.Client{Timeout: 5 * time.Minute}
	return &ollamaProvider{
		client: api.NewClient(u, httpClient),
		model:  model,
	}, nil
}

func (p *ollamaProvider) Complete(ctx context.Context, system, prompt string, opts *CompleteOptions) (string, error) {
	stream := false
	options := map[string]any{"temperature": temperature(opts, 0.3)}
	if opts != nil && opts.MaxTokens > 0 {
		options["num_predict"] = opts.MaxTokens
	}

	var content strings.Builder
	err := p.client.Chat(ctx, &api.ChatRequest{
		Model: p.model,
		Messages: []api.Message{
			{Role: "system", Content: system},
			{Role: "user", Content: prompt},
		},
		Stream:  &stream,
		Options: options,
	}, func(resp api.ChatResponse) error {
		content.WriteString(resp.Message.Content)
		return nil
	})
	if err != nil {
		return "", fmt.Errorf("ollama chat: %w", err)
	}
	return content.String(), nil
}
