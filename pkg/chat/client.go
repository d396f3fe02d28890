// Package chat is a minimal chat-completions client for the planner's
// natural-language assistants. The endpoint is OpenAI-compatible and opaque;
// the planner only ever sends a message list and reads back one reply.
package chat

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

const (
	defaultModel = "gpt-4o-mini"

	maxRetries   = 3
	initialDelay = 1 * time.Second
)

type Client struct {
	endpoint string
	apiKey   string
	model    string
	client   *http.Client
}

func New(endpoint, apiKey, model string) *Client {
	if model == "" {
		model = defaultModel
	}
	return &Client{
		endpoint: endpoint,
		apiKey:   apiKey,
		model:    model,
		client:   &http.Client{Timeout: 60 * time.Second},
	}
}

// Message is one turn of a conversation. Role is "system", "user", or
// "assistant".
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type request struct {
	Model    string    `json:"model"`
	Messages []Message `json:"messages"`
}

type response struct {
	Choices []struct {
		Message Message `json:"message"`
	} `json:"choices"`
}

type apiError struct {
	Error struct {
		Message string `json:"message"`
		Type    string `json:"type"`
	} `json:"error"`
}

// Complete sends the conversation and returns the assistant's reply,
// retrying rate limits and server errors with exponential backoff.
func (c *Client) Complete(ctx context.Context, messages []Message) (Message, error) {
	if c.apiKey == "" {
		return Message{}, fmt.Errorf("chat: no API key configured")
	}
	if len(messages) == 0 {
		return Message{}, fmt.Errorf("chat: no messages provided")
	}

	payload, err := json.Marshal(request{Model: c.model, Messages: messages})
	if err != nil {
		return Message{}, fmt.Errorf("chat: encode request: %w", err)
	}

	delay := initialDelay
	var lastErr error
	for attempt := 0; attempt < maxRetries; attempt++ {
		if attempt > 0 {
			select {
			case <-ctx.Done():
				return Message{}, ctx.Err()
			case <-time.After(delay):
			}
			delay *= 2
		}

		req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(payload))
		if err != nil {
			return Message{}, err
		}
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set("Authorization", "Bearer "+c.apiKey)

		resp, err := c.client.Do(req)
		if err != nil {
			lastErr = err
			continue
		}
		data, readErr := io.ReadAll(resp.Body)
		resp.Body.Close()
		if readErr != nil {
			lastErr = readErr
			continue
		}

		switch {
		case resp.StatusCode == http.StatusTooManyRequests || resp.StatusCode >= 500:
			lastErr = fmt.Errorf("chat: status %d: %s", resp.StatusCode, errorMessage(data))
			continue
		case resp.StatusCode >= 400:
			return Message{}, fmt.Errorf("chat: status %d: %s", resp.StatusCode, errorMessage(data))
		}

		var out response
		if err := json.Unmarshal(data, &out); err != nil {
			return Message{}, fmt.Errorf("chat: decode response: %w", err)
		}
		if len(out.Choices) == 0 {
			return Message{}, fmt.Errorf("chat: empty response")
		}
		return out.Choices[0].Message, nil
	}
	return Message{}, fmt.Errorf("chat: after %d attempts: %w", maxRetries, lastErr)
}

func errorMessage(data []byte) string {
	var ae apiError
	if err := json.Unmarshal(data, &ae); err == nil && ae.Error.Message != "" {
		return ae.Error.Message
	}
	return strings.TrimSpace(string(data))
}
