// Package httpstore implements the service.Service interface over a JSON REST API.
package httpstore

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
	"google.golang.org/api/googleapi"

	"tasklist/internal/config"
	"tasklist/internal/service"
)

// RequestIDHeader carries a per-request correlation id.
const RequestIDHeader = "X-Request-Id"

// Client implements service.Service against a task collection resource.
// It holds no task state; every method is a single round trip.
type Client struct {
	base    *url.URL
	http    *http.Client
	timeout time.Duration
	log     *slog.Logger
}

// New creates a client for the collection configured in cfg.
func New(cfg *config.Config) (*Client, error) {
	c, err := NewWithHTTPClient(cfg.BaseURL, &http.Client{})
	if err != nil {
		return nil, err
	}
	c.timeout = cfg.Timeout
	if cfg.Logger != nil {
		c.log = cfg.Logger
	}
	return c, nil
}

// NewWithHTTPClient creates a client with a custom HTTP client (for testing).
func NewWithHTTPClient(baseURL string, httpClient *http.Client) (*Client, error) {
	if !strings.HasSuffix(baseURL, "/") {
		baseURL += "/"
	}
	u, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("invalid base url: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("invalid base url: %s", baseURL)
	}
	return &Client{
		base: u,
		http: httpClient,
		log:  slog.New(slog.DiscardHandler),
	}, nil
}

// List fetches the full task collection.
func (c *Client) List(ctx context.Context) ([]service.Task, error) {
	resp, err := c.do(ctx, http.MethodGet, c.base, nil)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if err := checkStatus(resp); err != nil {
		return nil, err
	}
	var tasks []service.Task
	if err := decode(resp, &tasks); err != nil {
		return nil, err
	}
	if tasks == nil {
		tasks = []service.Task{}
	}
	return tasks, nil
}

// Create submits a new task with completed=false.
func (c *Client) Create(ctx context.Context, title string) (service.Task, error) {
	body := struct {
		Title     string `json:"title"`
		Completed bool   `json:"completed"`
	}{Title: title}

	resp, err := c.do(ctx, http.MethodPost, c.base, body)
	if err != nil {
		return service.Task{}, err
	}
	defer resp.Body.Close()

	if err := checkStatus(resp); err != nil {
		return service.Task{}, err
	}
	var task service.Task
	if err := decode(resp, &task); err != nil {
		return service.Task{}, err
	}
	return task, nil
}

// Update submits a partial update and returns the resulting task.
func (c *Client) Update(ctx context.Context, id service.ID, p service.Patch) (service.Task, error) {
	resp, err := c.do(ctx, http.MethodPatch, c.itemURL(id), p)
	if err != nil {
		return service.Task{}, err
	}
	defer resp.Body.Close()

	// The status decides, whatever the body says.
	if err := googleapi.CheckResponse(resp); err != nil {
		return service.Task{}, fmt.Errorf("%w: %w", service.ErrUpdateFailed, wrapStatus(err))
	}
	var task service.Task
	if err := decode(resp, &task); err != nil {
		return service.Task{}, err
	}
	return task, nil
}

// Delete requests removal of a task. No response body is expected.
func (c *Client) Delete(ctx context.Context, id service.ID) error {
	resp, err := c.do(ctx, http.MethodDelete, c.itemURL(id), nil)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, resp.Body)

	return checkStatus(resp)
}

// itemURL returns <base>/<id>/.
func (c *Client) itemURL(id service.ID) *url.URL {
	return c.base.JoinPath(url.PathEscape(string(id)), "/")
}

// do sends a single request with an optional JSON body.
func (c *Client) do(ctx context.Context, method string, u *url.URL, body any) (*http.Response, error) {
	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		// The body is read after do returns; release the timer with it.
		resp, err := c.send(ctx, method, u, body)
		if err != nil {
			cancel()
			return nil, err
		}
		resp.Body = &cancelBody{ReadCloser: resp.Body, cancel: cancel}
		return resp, nil
	}
	return c.send(ctx, method, u, body)
}

func (c *Client) send(ctx context.Context, method string, u *url.URL, body any) (*http.Response, error) {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("encode request: %w", err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, u.String(), reader)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", service.ErrTransport, err)
	}
	reqID := uuid.NewString()
	req.Header.Set("Accept", "application/json")
	req.Header.Set(RequestIDHeader, reqID)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		c.log.Debug("request failed", "method", method, "url", u.String(), "request_id", reqID, "err", err)
		return nil, wrapTransport(err)
	}
	c.log.Debug("request", "method", method, "url", u.String(), "status", resp.StatusCode,
		"request_id", reqID, "elapsed", time.Since(start))
	return resp, nil
}

type cancelBody struct {
	io.ReadCloser
	cancel context.CancelFunc
}

func (b *cancelBody) Close() error {
	defer b.cancel()
	return b.ReadCloser.Close()
}

func checkStatus(resp *http.Response) error {
	if err := googleapi.CheckResponse(resp); err != nil {
		return wrapStatus(err)
	}
	return nil
}

func decode(resp *http.Response, v any) error {
	if err := json.NewDecoder(resp.Body).Decode(v); err != nil {
		return fmt.Errorf("%w: %v", service.ErrDecode, err)
	}
	return nil
}

// wrapStatus turns a googleapi status error into a service.ErrStatus error.
func wrapStatus(err error) error {
	var gerr *googleapi.Error
	if errors.As(err, &gerr) {
		return fmt.Errorf("%w: %d %s", service.ErrStatus, gerr.Code, http.StatusText(gerr.Code))
	}
	return fmt.Errorf("%w: %v", service.ErrStatus, err)
}

// wrapTransport maps client errors to service.ErrTransport with a readable message.
func wrapTransport(err error) error {
	if errors.Is(err, context.DeadlineExceeded) {
		return fmt.Errorf("%w: request timed out", service.ErrTransport)
	}
	if errors.Is(err, context.Canceled) {
		return fmt.Errorf("%w: cancelled", service.ErrTransport)
	}
	return fmt.Errorf("%w: %v", service.ErrTransport, err)
}
