// Package upstream talks to the backend that owns every piece of data the web app shows.
package upstream

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
)

var (
	// ErrUnauthorized matches any *APIError with status 401.
	ErrUnauthorized = errors.New("unauthorized")
	// ErrTransport wraps network failures and unparseable backend responses.
	ErrTransport = errors.New("backend request failed")
)

// NetworkErrorMessage is what users see for transport failures.
const NetworkErrorMessage = "Network error"

// APIError is a non-2xx answer from the backend, carrying its message verbatim.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("backend returned %d: %s", e.Status, e.Message)
}

func (e *APIError) Is(target error) bool {
	return target == ErrUnauthorized && e.Status == http.StatusUnauthorized
}

// MessageOf returns the user-facing message for an error returned by the client.
func MessageOf(err error) string {
	var apiErr *APIError
	if errors.As(err, &apiErr) && apiErr.Message != "" {
		return apiErr.Message
	}
	return NetworkErrorMessage
}

// Client is a thin HTTP client bound to one backend origin.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// NewClient creates a client for baseURL. A zero timeout means requests never time out.
func NewClient(baseURL string, timeout time.Duration) *Client {
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: timeout},
	}
}

// ForwardRequest is a request relayed verbatim to the backend.
type ForwardRequest struct {
	Method string
	Path   string
	Query  url.Values
	Header http.Header
	Body   []byte
}

// ForwardResponse is the backend's raw answer.
type ForwardResponse struct {
	Status int
	Body   []byte
}

// Forward sends req to the backend and returns its status and body untouched.
// Only transport failures produce an error.
func (c *Client) Forward(ctx context.Context, req ForwardRequest) (*ForwardResponse, error) {
	target := c.baseURL + req.Path
	if len(req.Query) > 0 {
		target += "?" + req.Query.Encode()
	}

	var body io.Reader
	if len(req.Body) > 0 {
		body = bytes.NewReader(req.Body)
	}
	httpReq, err := http.NewRequestWithContext(ctx, req.Method, target, body)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to create request: %v", ErrTransport, err)
	}
	for key, values := range req.Header {
		for _, v := range values {
			httpReq.Header.Add(key, v)
		}
	}

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrTransport, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to read response: %v", ErrTransport, err)
	}
	return &ForwardResponse{Status: resp.StatusCode, Body: data}, nil
}

// do sends a JSON request with the bearer token and decodes a JSON answer into out.
func (c *Client) do(ctx context.Context, method, path, token string, in, out any) error {
	header := http.Header{}
	header.Set("Content-Type", "application/json")
	if token != "" {
		header.Set("Authorization", "Bearer "+token)
	}

	var body []byte
	if in != nil {
		var err error
		if body, err = json.Marshal(in); err != nil {
			return fmt.Errorf("failed to encode request: %w", err)
		}
	}

	resp, err := c.Forward(ctx, ForwardRequest{Method: method, Path: path, Header: header, Body: body})
	if err != nil {
		return err
	}

	if resp.Status < 200 || resp.Status > 299 {
		var errBody struct {
			Message string `json:"message"`
		}
		_ = json.Unmarshal(resp.Body, &errBody)
		if errBody.Message == "" {
			errBody.Message = http.StatusText(resp.Status)
		}
		return &APIError{Status: resp.Status, Message: errBody.Message}
	}

	if out == nil || len(bytes.TrimSpace(resp.Body)) == 0 {
		return nil
	}
	if err := json.Unmarshal(resp.Body, out); err != nil {
		return fmt.Errorf("%w: failed to decode %s %s: %v", ErrTransport, method, path, err)
	}
	return nil
}
