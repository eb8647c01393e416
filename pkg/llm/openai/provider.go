package openai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"memoscribe-be/pkg/llm"
)

// Input sent to the embeddings endpoint is cut to this many runes to stay
// under token limits.
const embedInputLimit = 8000

// Provider talks to any OpenAI-compatible API (chat/completions and
// embeddings). It is constructed explicitly and injected; there is no
// process-wide singleton.
type Provider struct {
	BaseURL        string
	APIKey         string
	ChatModel      string
	EmbeddingModel string
	Enabled        bool
	Client         *http.Client
}

// Ensure Provider implements llm.Provider
var _ llm.Provider = &Provider{}

type Config struct {
	BaseURL        string
	APIKey         string
	ChatModel      string
	EmbeddingModel string
	Enabled        bool
}

func NewProvider(cfg Config) *Provider {
	return &Provider{
		BaseURL:        strings.TrimRight(cfg.BaseURL, "/"),
		APIKey:         cfg.APIKey,
		ChatModel:      cfg.ChatModel,
		EmbeddingModel: cfg.EmbeddingModel,
		Enabled:        cfg.Enabled,
		Client: &http.Client{
			Timeout: 120 * time.Second,
		},
	}
}

// --- Request/Response structs (internal to this package) ---

type chatRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	Temperature float64       `json:"temperature,omitempty"`
	MaxTokens   int           `json:"max_tokens,omitempty"`
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatResponse struct {
	Choices []struct {
		Message chatMessage `json:"message"`
	} `json:"choices"`
}

type embeddingRequest struct {
	Model string `json:"model"`
	Input string `json:"input"`
}

type embeddingResponse struct {
	Data []struct {
		Embedding []float32 `json:"embedding"`
	} `json:"data"`
}

// --- Interface Implementation ---

func (p *Provider) IsAvailable() bool {
	return p.Enabled && p.APIKey != "" && p.Client != nil
}

func (p *Provider) Chat(ctx context.Context, history []llm.Message, opts ...llm.Option) (string, error) {
	if !p.IsAvailable() {
		return "", fmt.Errorf("llm provider not available")
	}

	options := &llm.Options{
		Temperature: 0.7,
	}
	for _, opt := range opts {
		opt(options)
	}

	messages := make([]chatMessage, len(history))
	for i, msg := range history {
		role := msg.Role
		if role == "model" {
			role = "assistant"
		}
		messages[i] = chatMessage{Role: role, Content: msg.Content}
	}

	model := p.ChatModel
	if options.Model != "" {
		model = options.Model
	}

	reqPayload := chatRequest{
		Model:       model,
		Messages:    messages,
		Temperature: options.Temperature,
		MaxTokens:   options.MaxTokens,
	}

	var res chatResponse
	if err := p.post(ctx, "/chat/completions", reqPayload, &res); err != nil {
		return "", err
	}

	if len(res.Choices) == 0 {
		return "", fmt.Errorf("chat completion returned no choices")
	}
	return res.Choices[0].Message.Content, nil
}

func (p *Provider) Embed(ctx context.Context, text string) ([]float32, error) {
	if strings.TrimSpace(text) == "" {
		return nil, nil
	}
	if !p.IsAvailable() {
		return nil, fmt.Errorf("llm provider not available")
	}

	input := text
	if runes := []rune(input); len(runes) > embedInputLimit {
		input = string(runes[:embedInputLimit])
	}

	var res embeddingResponse
	if err := p.post(ctx, "/embeddings", embeddingRequest{Model: p.EmbeddingModel, Input: input}, &res); err != nil {
		return nil, err
	}

	if len(res.Data) == 0 {
		return nil, fmt.Errorf("embedding response contained no data")
	}
	return res.Data[0].Embedding, nil
}

func (p *Provider) post(ctx context.Context, path string, payload any, out any) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.BaseURL+path, bytes.NewBuffer(body))
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+p.APIKey)

	resp, err := p.Client.Do(req)
	if err != nil {
		return fmt.Errorf("request %s: %w", path, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("api returned status %d: %s", resp.StatusCode, string(raw))
	}

	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}
