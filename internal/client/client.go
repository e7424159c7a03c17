// Package client talks to the task list API on behalf of the dashboard.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/adanyl0v/agua-vida/internal/models"
)

const (
	DefaultBaseURL    = "http://localhost:8000"
	DefaultCookieName = "agua-vida-session"
	defaultTimeout    = 10 * time.Second
)

var (
	ErrUnauthenticated = errors.New("unauthenticated")
	ErrNotFound        = errors.New("not found")
	ErrValidation      = errors.New("validation failed")
)

// StatusError is returned for non-2xx answers without a dedicated
// sentinel. Unwrap exposes the sentinel when there is one.
type StatusError struct {
	Method  string
	Path    string
	Status  int
	Message string
}

func (e *StatusError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("%s %s: %d %s", e.Method, e.Path, e.Status, e.Message)
	}
	return fmt.Sprintf("%s %s: %d %s", e.Method, e.Path, e.Status, http.StatusText(e.Status))
}

func (e *StatusError) Unwrap() error {
	switch e.Status {
	case http.StatusUnauthorized:
		return ErrUnauthenticated
	case http.StatusNotFound:
		return ErrNotFound
	case http.StatusBadRequest:
		return ErrValidation
	}
	return nil
}

type Client struct {
	logger     zerolog.Logger
	baseURL    *url.URL
	httpClient *http.Client
	cookieName string
	session    string
}

type Option func(*Client)

func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

func WithLogger(logger zerolog.Logger) Option {
	return func(c *Client) { c.logger = logger }
}

func WithCookieName(name string) Option {
	return func(c *Client) { c.cookieName = name }
}

// New builds a client for the API at baseURL that authenticates with
// the given session token. An empty token leaves requests anonymous.
func New(baseURL, session string, opts ...Option) (*Client, error) {
	u, err := url.Parse(strings.TrimRight(baseURL, "/"))
	if err != nil {
		return nil, fmt.Errorf("invalid base url %q: %w", baseURL, err)
	}
	if u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("invalid base url %q: scheme and host required", baseURL)
	}

	c := &Client{
		logger:     zerolog.Nop(),
		baseURL:    u,
		httpClient: &http.Client{Timeout: defaultTimeout},
		cookieName: DefaultCookieName,
		session:    session,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// CurrentUser returns nil without error when the session is not
// recognised.
func (c *Client) CurrentUser(ctx context.Context) (*models.User, error) {
	var raw json.RawMessage
	err := c.do(ctx, http.MethodGet, "/api/current_user", nil, &raw)
	if err != nil {
		return nil, err
	}
	if len(bytes.TrimSpace(raw)) == 0 {
		return nil, nil
	}

	var user models.User
	err = json.Unmarshal(raw, &user)
	if err != nil {
		return nil, fmt.Errorf("failed to decode user: %w", err)
	}
	if user.ID == "" {
		return nil, nil
	}
	return &user, nil
}

func (c *Client) TaskLists(ctx context.Context) ([]models.TaskList, error) {
	var lists []models.TaskList
	err := c.do(ctx, http.MethodGet, "/api/tasklists", nil, &lists)
	if err != nil {
		return nil, err
	}
	return lists, nil
}

func (c *Client) CreateTaskList(ctx context.Context, data models.NewTaskList) (*models.TaskList, error) {
	var list models.TaskList
	err := c.do(ctx, http.MethodPost, "/api/tasklists", data, &list)
	if err != nil {
		return nil, err
	}
	return &list, nil
}

func (c *Client) UpdateTaskList(ctx context.Context, listID string, update models.TaskListUpdate) (*models.TaskList, error) {
	var list models.TaskList
	err := c.do(ctx, http.MethodPatch, "/api/tasklists/"+url.PathEscape(listID), update, &list)
	if err != nil {
		return nil, err
	}
	return &list, nil
}

func (c *Client) ToggleTask(ctx context.Context, listID, taskID string) (*models.TaskList, error) {
	var list models.TaskList
	path := "/api/tasklists/" + url.PathEscape(listID) + "/tasks/" + url.PathEscape(taskID)
	err := c.do(ctx, http.MethodPatch, path, nil, &list)
	if err != nil {
		return nil, err
	}
	return &list, nil
}

func (c *Client) CreateTask(ctx context.Context, listID string, data models.NewTask) (*models.TaskList, error) {
	var list models.TaskList
	err := c.do(ctx, http.MethodPost, "/api/tasklists/"+url.PathEscape(listID)+"/tasks", data, &list)
	if err != nil {
		return nil, err
	}
	return &list, nil
}

func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to encode request: %w", err)
		}
		reader = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL.String()+path, reader)
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")
	if c.session != "" {
		req.AddCookie(&http.Cookie{Name: c.cookieName, Value: c.session})
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Error().
			Err(err).
			Str("method", method).
			Str("path", path).
			Msg("request failed")
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	payload, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response: %w", err)
	}
	c.logger.Debug().
		Str("method", method).
		Str("path", path).
		Int("status", resp.StatusCode).
		Msg("request done")

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		statusErr := &StatusError{Method: method, Path: path, Status: resp.StatusCode}
		var apiErr struct {
			Error string `json:"error"`
		}
		if json.Unmarshal(payload, &apiErr) == nil {
			statusErr.Message = apiErr.Error
		}
		return statusErr
	}

	if out == nil {
		return nil
	}
	if raw, ok := out.(*json.RawMessage); ok {
		*raw = payload
		return nil
	}
	err = json.Unmarshal(payload, out)
	if err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}
