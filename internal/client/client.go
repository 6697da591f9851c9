// Package client is the typed HTTP client for the journal service. One
// method per consumed operation; every call requires the caller-supplied
// credential token the client was built with.
package client

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

	"github.com/marait123/gnothi/internal/types"
)

// API is the surface the editing session consumes. Satisfied by *Client;
// tests substitute fakes.
type API interface {
	ListFields(ctx context.Context) ([]types.Field, error)
	CreateField(ctx context.Context, name string, ft types.FieldType) (types.Field, error)
	GetEntry(ctx context.Context, id string) (types.Entry, error)
	CreateEntry(ctx context.Context, e types.Entry) (string, error)
	UpdateEntry(ctx context.Context, e types.Entry) (string, error)
	SyncService(ctx context.Context, service, entryID string) error
}

// Client talks to the journal service over HTTP.
type Client struct {
	baseURL string
	token   string
	http    *http.Client
}

// Config holds client configuration.
type Config struct {
	BaseURL string
	Token   string

	// HTTPClient overrides the default client, mainly for tests.
	HTTPClient *http.Client
}

// New creates a journal client.
func New(cfg Config) (*Client, error) {
	if cfg.BaseURL == "" {
		return nil, fmt.Errorf("client: BaseURL is required")
	}
	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 30 * time.Second}
	}
	return &Client{
		baseURL: strings.TrimSuffix(cfg.BaseURL, "/"),
		token:   cfg.Token,
		http:    httpClient,
	}, nil
}

// ListFields returns all fields in server order.
func (c *Client) ListFields(ctx context.Context) ([]types.Field, error) {
	var resp struct {
		Fields []types.Field `json:"fields"`
	}
	if err := c.do(ctx, http.MethodGet, "fields", nil, &resp); err != nil {
		return nil, err
	}
	return resp.Fields, nil
}

// CreateField creates a user-defined field. The caller must refetch the
// full registry afterwards; this call guarantees no incremental update.
func (c *Client) CreateField(ctx context.Context, name string, ft types.FieldType) (types.Field, error) {
	body := map[string]any{"name": name, "type": ft}
	var f types.Field
	if err := c.do(ctx, http.MethodPost, "fields", body, &f); err != nil {
		return types.Field{}, err
	}
	return f, nil
}

// GetEntry fetches one entry with its stored field-value mapping.
func (c *Client) GetEntry(ctx context.Context, id string) (types.Entry, error) {
	var e types.Entry
	if err := c.do(ctx, http.MethodGet, "entries/"+url.PathEscape(id), nil, &e); err != nil {
		return types.Entry{}, err
	}
	e.ID = id
	return e, nil
}

// CreateEntry persists a new entry and returns its assigned identity.
func (c *Client) CreateEntry(ctx context.Context, e types.Entry) (string, error) {
	return c.saveEntry(ctx, http.MethodPost, "entries", e)
}

// UpdateEntry replaces an existing entry. The payload shape matches
// CreateEntry exactly.
func (c *Client) UpdateEntry(ctx context.Context, e types.Entry) (string, error) {
	return c.saveEntry(ctx, http.MethodPut, "entries/"+url.PathEscape(e.ID), e)
}

func (c *Client) saveEntry(ctx context.Context, method, path string, e types.Entry) (string, error) {
	if e.Fields == nil {
		e.Fields = map[string]types.Value{}
	}
	body := map[string]any{
		"title":  e.Title,
		"text":   e.Text,
		"fields": e.Fields,
	}
	var resp struct {
		ID string `json:"id"`
	}
	if err := c.do(ctx, method, path, body, &resp); err != nil {
		return "", err
	}
	return resp.ID, nil
}

// SyncService triggers a one-shot provider sync for a persisted entry.
// The response body is service-dependent and discarded; callers follow
// up with a full registry and entry reload regardless of outcome.
func (c *Client) SyncService(ctx context.Context, service, entryID string) error {
	path := url.PathEscape(service) + "/" + url.PathEscape(entryID)
	return c.do(ctx, http.MethodGet, path, nil, nil)
}

func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	op := method + " " + path

	var reader io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("client: encoding %s body: %w", op, err)
		}
		reader = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+"/"+path, reader)
	if err != nil {
		return fmt.Errorf("client: building %s: %w", op, err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return &NetworkError{Op: op, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return decodeAPIError(resp)
	}

	if out == nil {
		io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return &NetworkError{Op: op, Err: fmt.Errorf("decoding response: %w", err)}
	}
	return nil
}

func decodeAPIError(resp *http.Response) error {
	apiErr := &APIError{Status: resp.StatusCode}
	var envelope struct {
		Error string `json:"error"`
		Code  string `json:"code"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err == nil && envelope.Error != "" {
		apiErr.Message = envelope.Error
		apiErr.Code = envelope.Code
	} else {
		apiErr.Message = http.StatusText(resp.StatusCode)
	}
	return apiErr
}
