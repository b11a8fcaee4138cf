package openai

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	jsoniter "github.com/json-iterator/go"
	"github.com/vfg2006/tracionar-api/internal/config"
	"github.com/vfg2006/tracionar-api/internal/domain"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

const (
	RoleSystem = "system"
	RoleUser   = "user"

	maxErrorBody = 512
)

var ErrEmptyCompletion = errors.New("completion returned no choices")

type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type ChatRequest struct {
	Model       string    `json:"model"`
	Messages    []Message `json:"messages"`
	MaxTokens   int       `json:"max_tokens,omitempty"`
	Temperature float64   `json:"temperature"`
}

type Choice struct {
	Index        int     `json:"index"`
	Message      Message `json:"message"`
	FinishReason string  `json:"finish_reason"`
}

type ChatResponse struct {
	ID      string   `json:"id"`
	Model   string   `json:"model"`
	Choices []Choice `json:"choices"`
}

type errorEnvelope struct {
	Error struct {
		Message string `json:"message"`
		Type    string `json:"type"`
		Code    any    `json:"code"`
	} `json:"error"`
}

type Client interface {
	CreateChatCompletion(ctx context.Context, req ChatRequest) (*ChatResponse, error)
	Configured() bool
}

type HTTPClient struct {
	cfg        config.Insight
	httpClient *http.Client
}

func NewClient(cfg config.Insight) *HTTPClient {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 60 * time.Second
	}

	return &HTTPClient{
		cfg:        cfg,
		httpClient: &http.Client{Timeout: timeout},
	}
}

func (c *HTTPClient) Configured() bool {
	return c.cfg.Configured()
}

func (c *HTTPClient) CreateChatCompletion(ctx context.Context, req ChatRequest) (*ChatResponse, error) {
	const op = "openai.chat_completion"

	if !c.Configured() {
		return nil, domain.NewError(domain.KindNotConfigured, op, domain.ErrNotConfigured)
	}

	if req.Model == "" {
		req.Model = c.cfg.Model
	}

	body, err := json.Marshal(req)
	if err != nil {
		return nil, domain.NewError(domain.KindGeneration, op, err)
	}

	url := strings.TrimRight(c.cfg.BaseURL, "/") + "/chat/completions"
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return nil, domain.NewError(domain.KindGeneration, op, err)
	}

	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Authorization", "Bearer "+c.cfg.APIKey)

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, domain.NewError(domain.KindGeneration, op, err)
	}
	defer resp.Body.Close()

	payload, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, domain.NewError(domain.KindGeneration, op, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, domain.NewError(domain.KindGeneration, op, decodeError(resp.StatusCode, payload))
	}

	var completion ChatResponse
	if err := json.Unmarshal(payload, &completion); err != nil {
		return nil, domain.NewError(domain.KindGeneration, op, fmt.Errorf("erro ao decodificar resposta: %w", err))
	}

	if len(completion.Choices) == 0 || strings.TrimSpace(completion.Choices[0].Message.Content) == "" {
		return nil, domain.NewError(domain.KindGeneration, op, ErrEmptyCompletion)
	}

	return &completion, nil
}

func decodeError(status int, payload []byte) error {
	var envelope errorEnvelope
	if err := json.Unmarshal(payload, &envelope); err == nil && envelope.Error.Message != "" {
		return fmt.Errorf("status %d: %s (%s)", status, envelope.Error.Message, envelope.Error.Type)
	}

	text := string(payload)
	if len(text) > maxErrorBody {
		text = text[:maxErrorBody]
	}

	return fmt.Errorf("status %d: %s", status, text)
}
