// Package client provides an HTTP client for the visitor API. Client
// implements visitor.Store, so every screen can run against a remote server.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/kinjal-s-patel/visitor-management-system/internal/host"
	"github.com/kinjal-s-patel/visitor-management-system/internal/visitor"
)

// Client is an HTTP client for the visitor API.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// New creates a new API client.
func New(baseURL string) *Client {
	return &Client{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: 30 * time.Second},
	}
}

// Fetch returns visitor records per q. The server evaluates the query; the
// criteria and limit are applied again here so servers that ignore a
// parameter still yield a correct result.
func (c *Client) Fetch(ctx context.Context, q visitor.Query) ([]*visitor.Record, error) {
	if err := q.Validate(); err != nil {
		return nil, fmt.Errorf("invalid query: %w", err)
	}

	path := "/api/visitors"
	if v := q.Values(); len(v) > 0 {
		path += "?" + v.Encode()
	}

	var raw []json.RawMessage
	if err := c.get(ctx, path, &raw); err != nil {
		return nil, &visitor.StoreError{Op: "fetch", Err: err}
	}

	records := make([]*visitor.Record, 0, len(raw))
	for i, item := range raw {
		r, err := decodeRecord(item)
		if err != nil {
			return nil, &visitor.StoreError{Op: "fetch", Err: fmt.Errorf("record %d: %w", i, err)}
		}
		records = append(records, r)
	}
	return visitor.Truncate(visitor.Filter(records, q.Where), q.Limit), nil
}

// InsertResponse is the response from POST /api/visitors.
type InsertResponse struct {
	ID   int64  `json:"id"`
	Next string `json:"next,omitempty"`
}

// Insert registers a visitor. The server validates the record; rejected
// input comes back as *visitor.ValidationError.
func (c *Client) Insert(ctx context.Context, rec *visitor.NewRecord) (int64, error) {
	var resp InsertResponse
	if err := c.post(ctx, "/api/visitors", rec, &resp); err != nil {
		var ve *visitor.ValidationError
		if errors.As(err, &ve) {
			return 0, ve
		}
		return 0, &visitor.StoreError{Op: "insert", Err: err}
	}
	return resp.ID, nil
}

// Hosts returns every host, ordered by name.
func (c *Client) Hosts(ctx context.Context) ([]*host.Host, error) {
	var hosts []*host.Host
	if err := c.get(ctx, "/api/hosts", &hosts); err != nil {
		return nil, err
	}
	return hosts, nil
}

// GetByID returns the host with the given ID. Unknown hosts yield
// visitor.ErrNotFound.
func (c *Client) GetByID(ctx context.Context, id int64) (*host.Host, error) {
	hosts, err := c.Hosts(ctx)
	if err != nil {
		return nil, err
	}
	for _, h := range hosts {
		if h.ID == id {
			return h, nil
		}
	}
	return nil, fmt.Errorf("host %d: %w", id, visitor.ErrNotFound)
}

// AddHost creates a host.
func (c *Client) AddHost(ctx context.Context, title, email, department string) (*host.Host, error) {
	body := map[string]string{"title": title, "email": email, "department": department}
	var h host.Host
	if err := c.post(ctx, "/api/hosts", body, &h); err != nil {
		return nil, err
	}
	return &h, nil
}

// DeleteHost removes a host. Visitors registered against it keep their
// record and show no host. Unknown hosts yield visitor.ErrNotFound.
func (c *Client) DeleteHost(ctx context.Context, id int64) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodDelete, fmt.Sprintf("%s/api/hosts?id=%d", c.baseURL, id), nil)
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}
	return c.do(req, nil)
}

// Health checks that the server is up.
func (c *Client) Health(ctx context.Context) error {
	return c.get(ctx, "/health", nil)
}

// get performs a GET request and decodes the response.
func (c *Client) get(ctx context.Context, path string, result interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}
	return c.do(req, result)
}

// post performs a POST request with a JSON body and decodes the response.
func (c *Client) post(ctx context.Context, path string, body interface{}, result interface{}) error {
	data, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("marshaling request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(data))
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	return c.do(req, result)
}

// errorResponse is the body of every API error.
type errorResponse struct {
	Error    string                 `json:"error"`
	Problems []visitor.FieldProblem `json:"problems,omitempty"`
}

// do executes an HTTP request and handles errors.
func (c *Client) do(req *http.Request, result interface{}) error {
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("reading response: %w", err)
	}

	if resp.StatusCode >= 400 {
		msg := "server error: " + http.StatusText(resp.StatusCode)
		var errResp errorResponse
		if json.Unmarshal(respBody, &errResp) == nil {
			if len(errResp.Problems) > 0 {
				return &visitor.ValidationError{Problems: errResp.Problems}
			}
			if errResp.Error != "" {
				msg = errResp.Error
			}
		}
		if resp.StatusCode == http.StatusNotFound {
			return fmt.Errorf("%s: %w", msg, visitor.ErrNotFound)
		}
		return errors.New(msg)
	}

	if result != nil && len(respBody) > 0 {
		if err := json.Unmarshal(respBody, result); err != nil {
			return fmt.Errorf("decoding response: %w", err)
		}
	}

	return nil
}
