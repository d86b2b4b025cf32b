package clients

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/homescope/homescope/pkg/logger"
	"github.com/homescope/homescope/pkg/metrics"
	"github.com/sony/gobreaker/v2"
)

// PerplexityClient calls the Perplexity chat-completions API. Requests run
// through a circuit breaker so a failing upstream stops being hammered.
type PerplexityClient struct {
	baseURL    string
	model      string
	httpClient *http.Client
	breaker    *gobreaker.CircuitBreaker[string]
}

func NewPerplexityClient(baseURL, model string) *PerplexityClient {
	settings := gobreaker.Settings{
		Name:        "perplexity",
		MaxRequests: 3,
		Interval:    1 * time.Minute,
		Timeout:     30 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			failureRatio := float64(counts.TotalFailures) / float64(counts.Requests)
			return counts.Requests >= 5 && failureRatio >= 0.5
		},
		OnStateChange: func(name string, from gobreaker.State, to gobreaker.State) {
			logger.Warnf("Circuit breaker %s changed state from %s to %s", name, from.String(), to.String())
		},
	}

	return &PerplexityClient{
		baseURL:    baseURL,
		model:      model,
		httpClient: &http.Client{Timeout: 30 * time.Second},
		breaker:    gobreaker.NewCircuitBreaker[string](settings),
	}
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model    string        `json:"model"`
	Messages []chatMessage `json:"messages"`
}

type chatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

// ChatCompletion sends a single-turn prompt and returns the assistant reply
func (c *PerplexityClient) ChatCompletion(ctx context.Context, apiKey, systemPrompt, userPrompt string) (string, error) {
	start := time.Now()
	content, err := c.breaker.Execute(func() (string, error) {
		return c.doChatCompletion(ctx, apiKey, systemPrompt, userPrompt)
	})
	metrics.GetMetrics().ObserveExternalAPIRequest("perplexity", time.Since(start), err)

	if err != nil {
		return "", err
	}
	return content, nil
}

func (c *PerplexityClient) doChatCompletion(ctx context.Context, apiKey, systemPrompt, userPrompt string) (string, error) {
	payload := chatRequest{
		Model: c.model,
		Messages: []chatMessage{
			{Role: "system", Content: systemPrompt},
			{Role: "user", Content: userPrompt},
		},
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return "", fmt.Errorf("failed to encode request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/chat/completions", bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("perplexity request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		raw, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return "", fmt.Errorf("perplexity returned status %d: %s", resp.StatusCode, string(raw))
	}

	var parsed chatResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return "", fmt.Errorf("failed to decode response: %w", err)
	}
	if len(parsed.Choices) == 0 {
		return "", fmt.Errorf("perplexity returned no choices")
	}

	return parsed.Choices[0].Message.Content, nil
}
