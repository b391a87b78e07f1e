package storage

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/rs/zerolog"
)

// Transport issues a single HTTP exchange on behalf of the client. It exists
// so tests can substitute a double for the network; the default
// implementation wraps *http.Client.
type Transport interface {
	// Do issues one request and returns the response body on a 2xx status.
	// Any other outcome, including cancellation, is a transport error.
	Do(ctx context.Context, method, url string, body io.Reader, headers map[string]string) ([]byte, error)

	// Stream issues one request and returns the response body as a stream.
	// The caller owns the returned reader and must close it.
	Stream(ctx context.Context, method, url string, headers map[string]string) (io.ReadCloser, error)
}

// Client handles communication with the storage API server. It holds no
// mutable state across calls and is safe for concurrent use.
type Client struct {
	// Base URL of the storage API
	BaseURL string

	apiKey    string
	transport Transport
	logger    zerolog.Logger
}

// Option configures a Client at construction time.
type Option func(*Client)

// WithTransport replaces the default HTTP transport, typically with a test
// double.
func WithTransport(t Transport) Option {
	return func(c *Client) {
		c.transport = t
	}
}

// WithHTTPClient uses hc for the default transport instead of the built-in
// client with its 30 second timeout.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.transport = &httpTransport{client: hc}
	}
}

// WithLogger enables debug logging of every request on the client.
func WithLogger(logger zerolog.Logger) Option {
	return func(c *Client) {
		c.logger = logger
	}
}

// New creates a client for the storage API at baseURL, authenticating every
// request with apiKey.
func New(baseURL, apiKey string, opts ...Option) *Client {
	c := &Client{
		BaseURL: baseURL,
		apiKey:  apiKey,
		transport: &httpTransport{
			client: &http.Client{Timeout: 30 * time.Second},
		},
		logger: zerolog.Nop(),
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

// headers returns the standard auth headers, merged with any extras.
func (c *Client) headers(extra map[string]string) map[string]string {
	h := map[string]string{
		"Authorization": "Bearer " + c.apiKey,
		"apikey":        c.apiKey,
	}
	for k, v := range extra {
		h[k] = v
	}
	return h
}

// request issues a JSON request against path and returns the raw response
// body. A nil payload sends no body.
func (c *Client) request(ctx context.Context, method, path string, payload interface{}) ([]byte, error) {
	var body io.Reader
	headers := c.headers(nil)

	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			return nil, wrapError(KindUnknown, "error marshalling request", err)
		}
		body = bytes.NewReader(data)
		headers["Content-Type"] = "application/json"
	}

	resp, err := c.transport.Do(ctx, method, c.BaseURL+path, body, headers)
	if err != nil {
		c.logger.Debug().Str("method", method).Str("path", path).Err(err).Msg("request failed")
		return nil, err
	}

	c.logger.Debug().Str("method", method).Str("path", path).Msg("request ok")
	return resp, nil
}

// requestJSON issues a request and decodes the response body into out.
func (c *Client) requestJSON(ctx context.Context, method, path string, payload, out interface{}) error {
	resp, err := c.request(ctx, method, path, payload)
	if err != nil {
		return err
	}

	if err := json.Unmarshal(resp, out); err != nil {
		return wrapError(KindParse, "error decoding response", err)
	}

	return nil
}

// httpTransport is the default Transport over net/http.
type httpTransport struct {
	client *http.Client
}

func (t *httpTransport) Do(ctx context.Context, method, url string, body io.Reader, headers map[string]string) ([]byte, error) {
	resp, err := t.roundTrip(ctx, method, url, body, headers)
	if err != nil {
		return nil, err
	}
	defer func(Body io.ReadCloser) {
		if err := Body.Close(); err != nil {
			fmt.Printf("Warning: Failed to close response body: %v\n", err)
		}
	}(resp.Body)

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, wrapError(KindTransport, "error reading response body", err)
	}

	return data, nil
}

func (t *httpTransport) Stream(ctx context.Context, method, url string, headers map[string]string) (io.ReadCloser, error) {
	resp, err := t.roundTrip(ctx, method, url, nil, headers)
	if err != nil {
		return nil, err
	}
	return resp.Body, nil
}

// roundTrip performs the request and turns any non-2xx response into a
// transport error carrying the status and server message.
func (t *httpTransport) roundTrip(ctx context.Context, method, url string, body io.Reader, headers map[string]string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, method, url, body)
	if err != nil {
		return nil, wrapError(KindTransport, "error creating request", err)
	}

	for k, v := range headers {
		req.Header.Set(k, v)
	}

	resp, err := t.client.Do(req)
	if err != nil {
		return nil, wrapError(KindTransport, "error making request", err)
	}

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		bodyBytes, _ := io.ReadAll(resp.Body)
		if err := resp.Body.Close(); err != nil {
			fmt.Printf("Warning: Failed to close response body: %v\n", err)
		}
		return nil, &Error{
			Kind:    KindTransport,
			Message: serverMessage(bodyBytes),
			Status:  resp.StatusCode,
		}
	}

	return resp, nil
}

// serverMessage extracts the message or error field from an error response
// body, falling back to the raw body.
func serverMessage(body []byte) string {
	var payload struct {
		Message string `json:"message"`
		Error   string `json:"error"`
	}
	if err := json.Unmarshal(body, &payload); err == nil {
		if payload.Message != "" {
			return payload.Message
		}
		if payload.Error != "" {
			return payload.Error
		}
	}
	if len(body) == 0 {
		return "request failed"
	}
	return string(body)
}
