// Package client talks to the procurement API over HTTP.
package client

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"licitaciones/backend/internal/model"
)

// Client issues GET requests against the API with a fixed per-request timeout.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

func New(baseURL string, timeout time.Duration) *Client {
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: timeout},
	}
}

// PageParams are the pagination and filter values sent with a page request.
type PageParams struct {
	Pagina int
	Limite int
	Filtro string
}

// APIError is a non-2xx answer from the server.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("api responded %d: %s", e.StatusCode, e.Message)
}

func (c *Client) Tables(ctx context.Context) ([]string, error) {
	var resp model.TablesResponse
	if err := c.getJSON(ctx, "/api/tablas", nil, &resp); err != nil {
		return nil, err
	}
	return resp.Tablas, nil
}

func (c *Client) Page(ctx context.Context, table string, p PageParams) (*model.Page, error) {
	q := url.Values{}
	q.Set("pagina", strconv.Itoa(p.Pagina))
	q.Set("limite", strconv.Itoa(p.Limite))
	q.Set("filtro", p.Filtro)

	var page model.Page
	if err := c.getJSON(ctx, "/api/"+url.PathEscape(table), q, &page); err != nil {
		return nil, err
	}
	return &page, nil
}

// ModelResults returns the results document undecoded.
func (c *Client) ModelResults(ctx context.Context) (json.RawMessage, error) {
	var raw json.RawMessage
	if err := c.getJSON(ctx, "/api/model_results", nil, &raw); err != nil {
		return nil, err
	}
	return raw, nil
}

func (c *Client) getJSON(ctx context.Context, path string, query url.Values, out any) error {
	u := c.baseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return fmt.Errorf("new request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("http do: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		var apiErr model.ErrorResponse
		msg := strings.TrimSpace(string(body))
		if json.Unmarshal(body, &apiErr) == nil && apiErr.Error != "" {
			msg = apiErr.Error
		}
		return &APIError{StatusCode: resp.StatusCode, Message: msg}
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode json: %w", err)
	}
	return nil
}
