package service

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// Sampling hyperparameters, fixed for all generation calls.
const (
	DefaultTemperature   = 0.7
	DefaultTopP          = 0.95
	DefaultRepeatPenalty = 1.15
)

// Generator is the single narrow seam around engine state. Implementations
// return the generated continuation text (no prompt echo) or an error —
// failures are never folded into the reply text, so callers can branch.
type Generator interface {
	Generate(ctx context.Context, prompt string, maxTokens int, stop []string) (string, error)
}

// EngineClient talks to a local llama.cpp-style completion server over
// HTTP. The server owns the model weights, tokenization, quantization
// and sampling; this client only ships prompts and sampling parameters.
type EngineClient struct {
	baseURL       string
	temperature   float64
	topP          float64
	repeatPenalty float64
	client        *http.Client
}

// NewEngineClient creates a client for the engine at baseURL.
// timeout bounds each generation call; 0 means block until the engine
// answers, matching a trusted single-user local setup where inference
// can run for minutes.
func NewEngineClient(baseURL string, timeout time.Duration) *EngineClient {
	return &EngineClient{
		baseURL:       strings.TrimRight(baseURL, "/"),
		temperature:   DefaultTemperature,
		topP:          DefaultTopP,
		repeatPenalty: DefaultRepeatPenalty,
		client:        &http.Client{Timeout: timeout},
	}
}

// completionRequest is the llama.cpp /completion request body.
type completionRequest struct {
	Prompt        string   `json:"prompt"`
	NPredict      int      `json:"n_predict"`
	Temperature   float64  `json:"temperature"`
	TopP          float64  `json:"top_p"`
	RepeatPenalty float64  `json:"repeat_penalty"`
	Stop          []string `json:"stop,omitempty"`
	Stream        bool     `json:"stream"`
}

// completionResponse is the subset of the llama.cpp /completion response
// this client reads.
type completionResponse struct {
	Content string `json:"content"`
}

// Generate sends the prompt to the engine and returns the continuation
// text with surrounding whitespace trimmed.
func (c *EngineClient) Generate(ctx context.Context, prompt string, maxTokens int, stop []string) (string, error) {
	reqBody := completionRequest{
		Prompt:        prompt,
		NPredict:      maxTokens,
		Temperature:   c.temperature,
		TopP:          c.topP,
		RepeatPenalty: c.repeatPenalty,
		Stop:          stop,
		Stream:        false,
	}

	bodyBytes, err := json.Marshal(reqBody)
	if err != nil {
		return "", fmt.Errorf("marshal completion request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/completion", bytes.NewReader(bodyBytes))
	if err != nil {
		return "", fmt.Errorf("create completion request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("engine HTTP request: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("read engine response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("engine returned %d: %s", resp.StatusCode, string(respBody))
	}

	var compResp completionResponse
	if err := json.Unmarshal(respBody, &compResp); err != nil {
		return "", fmt.Errorf("unmarshal engine response: %w", err)
	}

	return strings.TrimSpace(compResp.Content), nil
}

// Ping checks that the engine is up and has finished loading its model.
// Called once at startup; a failure aborts before the REPL or server runs.
func (c *EngineClient) Ping(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/health", nil)
	if err != nil {
		return fmt.Errorf("create health request: %w", err)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("engine unreachable: %w", err)
	}
	defer resp.Body.Close()
	io.Copy(io.Discard, resp.Body)

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("engine health returned %d (model may still be loading)", resp.StatusCode)
	}
	return nil
}
