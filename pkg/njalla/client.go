package njalla

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"time"

	"github.com/gorilla/rpc/v2/json2"
)

const (
	// DefaultEndpoint is the JSON-RPC endpoint of the Njalla API.
	DefaultEndpoint = "https://njal.la/api/1/"

	// DefaultTimeout bounds a whole request/response cycle.
	DefaultTimeout = 30 * time.Second

	authScheme = "Njalla"
)

// Client performs authenticated JSON-RPC calls against the Njalla API.
// It holds no mutable state and is safe for concurrent use.
type Client struct {
	endpoint string
	http     *http.Client
	logger   *log.Logger
}

// Option configures a Client.
type Option func(*options)

type options struct {
	endpoint   string
	httpClient *http.Client
	logger     *log.Logger
}

// WithEndpoint overrides the API endpoint.
func WithEndpoint(endpoint string) Option {
	return func(o *options) { o.endpoint = endpoint }
}

// WithHTTPClient sets the base HTTP client. Its transport is wrapped to add
// the Authorization header and its timeout is replaced by DefaultTimeout.
func WithHTTPClient(c *http.Client) Option {
	return func(o *options) { o.httpClient = c }
}

// WithLogger enables one log line per call (method, status, elapsed time).
func WithLogger(l *log.Logger) Option {
	return func(o *options) { o.logger = l }
}

// New creates a client that authenticates every request with token.
func New(token string, opts ...Option) (*Client, error) {
	if token == "" {
		return nil, ErrEmptyToken
	}

	o := &options{endpoint: DefaultEndpoint}
	for _, opt := range opts {
		opt(o)
	}

	hc := &http.Client{}
	if o.httpClient != nil {
		copied := *o.httpClient
		hc = &copied
	}
	hc.Timeout = DefaultTimeout
	hc.Transport = newAuthRoundTripper(authScheme+" "+token, hc.Transport)

	return &Client{
		endpoint: o.endpoint,
		http:     hc,
		logger:   o.logger,
	}, nil
}

// Close releases idle connections held by the client.
func (c *Client) Close() {
	c.http.CloseIdleConnections()
}

// params is the JSON object sent as the "params" member of a request.
type params map[string]any

// call performs one JSON-RPC call and decodes the result into T.
//
// Resolution order: transport failure, non-2xx status, malformed envelope,
// populated error (wins over result), absent result, result decode.
func call[T any](ctx context.Context, c *Client, method string, p any) (T, error) {
	var out T

	if p == nil {
		p = params{}
	}
	body, err := json2.EncodeClientRequest(method, p)
	if err != nil {
		return out, &DecodeError{Method: method, Err: fmt.Errorf("failed to encode params: %w", err)}
	}

	raw, err := c.post(ctx, method, body)
	if err != nil {
		return out, err
	}

	// json2 decodes with a stream decoder and would ignore trailing bytes.
	if !json.Valid(raw) {
		return out, &DecodeError{Method: method, Err: errors.New("response body is not a single JSON value")}
	}

	err = json2.DecodeClientResponse(bytes.NewReader(raw), &out)
	if err == nil {
		return out, nil
	}

	var rpcErr *json2.Error
	switch {
	case errors.As(err, &rpcErr):
		return out, &APIError{Code: int(rpcErr.Code), Message: rpcErr.Message}
	case errors.Is(err, json2.ErrNullResult):
		return out, ErrMissingResult
	default:
		return out, &DecodeError{Method: method, Err: err}
	}
}

// callVoid is call for methods whose result the caller does not need.
func callVoid(ctx context.Context, c *Client, method string, p any) error {
	_, err := call[json.RawMessage](ctx, c, method, p)
	return err
}

// post sends body and returns the full response body of a 2xx reply.
func (c *Client) post(ctx context.Context, method string, body []byte) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, &TransportError{Method: method, Err: fmt.Errorf("failed to create request: %w", err)}
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		c.logf("%s: request failed after %s: %v", method, time.Since(start), err)
		return nil, &TransportError{Method: method, Err: err}
	}
	defer cleanlyCloseBody(resp.Body)

	c.logf("%s: status %d in %s", method, resp.StatusCode, time.Since(start))

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &TransportError{
			Method:     method,
			StatusCode: resp.StatusCode,
			Err:        fmt.Errorf("received status code: %d", resp.StatusCode),
		}
	}

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &TransportError{Method: method, Err: fmt.Errorf("failed to read response: %w", err)}
	}
	return raw, nil
}

func (c *Client) logf(format string, args ...any) {
	if c.logger != nil {
		c.logger.Printf(format, args...)
	}
}

// cleanlyCloseBody drains the body so the connection can be reused.
func cleanlyCloseBody(body io.ReadCloser) {
	_, _ = io.Copy(io.Discard, body)
	_ = body.Close()
}
