// Package transport defines the contract of the network collaborator used by the
// client and provides its net/http implementation.
package transport

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"
)

const (
	// DefaultTimeout bounds a single request.
	DefaultTimeout = 10 * time.Second
	// DefaultMaxResponseSize bounds the body of a single response (1 GiB).
	DefaultMaxResponseSize int64 = 1 << 30
	// DefaultCapacity is the default number of connections per host.
	DefaultCapacity = 10
)

// idempotencyKeyHeader is honoured by net/http: a request carrying it may be
// replayed on a reused connection. A nil value is never written on the wire.
const idempotencyKeyHeader = "Idempotency-Key"

// ErrResponseTooLarge is returned when a response body exceeds the size limit.
var ErrResponseTooLarge = errors.New("response body too large")

// Request describes a single outgoing POST request.
type Request struct {
	URL    string
	Header map[string]string
	Body   []byte
	// Timeout bounds the request; zero means no timeout besides ctx.
	Timeout time.Duration
	// MaxResponseSize bounds the response body; zero or less means unbounded.
	MaxResponseSize int64
	// Replayable allows the transport to replay or pipeline the request on a
	// reused connection. It must only be set for requests safe to repeat.
	Replayable bool
}

// Response is a received response.
type Response struct {
	StatusCode int
	Body       []byte
}

// Transport sends requests. Implementations must be safe for concurrent use.
type Transport interface {
	Do(ctx context.Context, req *Request) (*Response, error)
}

// HTTP implements Transport with net/http.
type HTTP struct {
	client *http.Client
}

var _ Transport = (*HTTP)(nil)

// NewHTTP creates an HTTP transport keeping up to capacity connections per host.
func NewHTTP(capacity int) *HTTP {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}

	base, ok := http.DefaultTransport.(*http.Transport)
	if !ok {
		return NewHTTPFromClient(&http.Client{}) //nolint:exhaustruct
	}

	tr := base.Clone()
	tr.MaxConnsPerHost = capacity
	tr.MaxIdleConnsPerHost = capacity

	return NewHTTPFromClient(&http.Client{Transport: tr}) //nolint:exhaustruct
}

// NewHTTPFromClient wraps an existing http.Client.
func NewHTTPFromClient(client *http.Client) *HTTP {
	if client == nil {
		client = http.DefaultClient
	}

	return &HTTP{client: client}
}

// Do implements Transport interface.
func (t *HTTP) Do(ctx context.Context, req *Request) (*Response, error) {
	if req.Timeout > 0 {
		var cancel context.CancelFunc

		ctx, cancel = context.WithTimeout(ctx, req.Timeout)
		defer cancel()
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, req.URL, bytes.NewReader(req.Body))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	for name, value := range req.Header {
		httpReq.Header.Set(name, value)
	}

	if req.Replayable {
		httpReq.Header[idempotencyKeyHeader] = nil
	}

	resp, err := t.client.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := readBody(resp.Body, req.MaxResponseSize)
	if err != nil {
		return nil, err
	}

	return &Response{StatusCode: resp.StatusCode, Body: body}, nil
}

func readBody(r io.Reader, limit int64) ([]byte, error) {
	if limit <= 0 {
		body, err := io.ReadAll(r)
		if err != nil {
			return nil, fmt.Errorf("failed to read response body: %w", err)
		}

		return body, nil
	}

	body, err := io.ReadAll(io.LimitReader(r, limit+1))
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	if int64(len(body)) > limit {
		return nil, fmt.Errorf("%w: limit is %d bytes", ErrResponseTooLarge, limit)
	}

	return body, nil
}
