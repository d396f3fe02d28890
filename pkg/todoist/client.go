// Package todoist is a thin REST wrapper over the Todoist v2 API, covering
// only what the planner needs: listing (optionally filtered) tasks, updating
// a task's due time, and completing, reopening, or creating tasks. Filter
// query strings are passed through opaquely.
package todoist

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"golang.org/x/oauth2"

	"tableflip.dev/agenda/pkg/task"
)

const (
	defaultBaseURL = "https://api.todoist.com/rest/v2"

	maxRetries   = 3
	initialDelay = 500 * time.Millisecond
)

type Client struct {
	baseURL string
	client  *http.Client
}

// New builds a client authenticated with the given bearer token. An empty
// baseURL selects the public API endpoint.
func New(baseURL, token string) *Client {
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	src := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: token})
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  oauth2.NewClient(context.Background(), src),
	}
}

// Tasks lists active tasks, optionally narrowed by a filter query. The query
// syntax belongs to the remote service and is not interpreted here.
func (c *Client) Tasks(ctx context.Context, filter string) ([]*task.Task, error) {
	endpoint := c.baseURL + "/tasks"
	if filter != "" {
		endpoint += "?filter=" + url.QueryEscape(filter)
	}
	var out []apiTask
	if err := c.do(ctx, http.MethodGet, endpoint, nil, &out); err != nil {
		return nil, fmt.Errorf("todoist: list tasks: %w", err)
	}
	tasks := make([]*task.Task, 0, len(out))
	for _, at := range out {
		tasks = append(tasks, at.toTask())
	}
	return tasks, nil
}

// Task fetches a single task by id.
func (c *Client) Task(ctx context.Context, id string) (*task.Task, error) {
	var out apiTask
	if err := c.do(ctx, http.MethodGet, c.baseURL+"/tasks/"+id, nil, &out); err != nil {
		return nil, fmt.Errorf("todoist: get task %s: %w", id, err)
	}
	return out.toTask(), nil
}

// Reschedule moves a task's due time to the given instant. This is the
// persistence target of a drag-reschedule.
func (c *Client) Reschedule(ctx context.Context, id string, due time.Time) error {
	body := map[string]string{
		"due_datetime": due.Format("2006-01-02T15:04:05"),
	}
	if err := c.do(ctx, http.MethodPost, c.baseURL+"/tasks/"+id, body, nil); err != nil {
		return fmt.Errorf("todoist: reschedule task %s: %w", id, err)
	}
	return nil
}

// Update applies arbitrary field changes to a task.
func (c *Client) Update(ctx context.Context, id string, fields map[string]any) error {
	if err := c.do(ctx, http.MethodPost, c.baseURL+"/tasks/"+id, fields, nil); err != nil {
		return fmt.Errorf("todoist: update task %s: %w", id, err)
	}
	return nil
}

// Close completes a task.
func (c *Client) Close(ctx context.Context, id string) error {
	if err := c.do(ctx, http.MethodPost, c.baseURL+"/tasks/"+id+"/close", nil, nil); err != nil {
		return fmt.Errorf("todoist: close task %s: %w", id, err)
	}
	return nil
}

// Reopen uncompletes a task.
func (c *Client) Reopen(ctx context.Context, id string) error {
	if err := c.do(ctx, http.MethodPost, c.baseURL+"/tasks/"+id+"/reopen", nil, nil); err != nil {
		return fmt.Errorf("todoist: reopen task %s: %w", id, err)
	}
	return nil
}

// Create adds a new task.
func (c *Client) Create(ctx context.Context, fields map[string]any) (*task.Task, error) {
	var out apiTask
	if err := c.do(ctx, http.MethodPost, c.baseURL+"/tasks", fields, &out); err != nil {
		return nil, fmt.Errorf("todoist: create task: %w", err)
	}
	return out.toTask(), nil
}

// Delete removes a task permanently.
func (c *Client) Delete(ctx context.Context, id string) error {
	if err := c.do(ctx, http.MethodDelete, c.baseURL+"/tasks/"+id, nil, nil); err != nil {
		return fmt.Errorf("todoist: delete task %s: %w", id, err)
	}
	return nil
}

// do sends one API request, retrying rate limits and server errors with
// exponential backoff.
func (c *Client) do(ctx context.Context, method, endpoint string, body, out any) error {
	var payload []byte
	if body != nil {
		var err error
		payload, err = json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
	}

	delay := initialDelay
	var lastErr error
	for attempt := 0; attempt < maxRetries; attempt++ {
		if attempt > 0 {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(delay):
			}
			delay *= 2
		}

		var reader io.Reader
		if payload != nil {
			reader = bytes.NewReader(payload)
		}
		req, err := http.NewRequestWithContext(ctx, method, endpoint, reader)
		if err != nil {
			return err
		}
		if payload != nil {
			req.Header.Set("Content-Type", "application/json")
		}

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
			lastErr = fmt.Errorf("status %d: %s", resp.StatusCode, strings.TrimSpace(string(data)))
			continue
		case resp.StatusCode >= 400:
			return fmt.Errorf("status %d: %s", resp.StatusCode, strings.TrimSpace(string(data)))
		}

		if out == nil || len(data) == 0 {
			return nil
		}
		if err := json.Unmarshal(data, out); err != nil {
			return fmt.Errorf("decode response: %w", err)
		}
		return nil
	}
	return fmt.Errorf("after %d attempts: %w", maxRetries, lastErr)
}
