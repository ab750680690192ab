package vss

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/tarantool/go-vss/header"
	"github.com/tarantool/go-vss/internal/options"
	"github.com/tarantool/go-vss/kv"
	"github.com/tarantool/go-vss/marshaller"
	"github.com/tarantool/go-vss/message"
	"github.com/tarantool/go-vss/retry"
	"github.com/tarantool/go-vss/transport"
)

const contentType = "application/octet-stream"

// endpoint is a server route together with its replay hint.
type endpoint struct {
	path       string
	name       string
	replayable bool
}

var (
	getObjectEndpoint       = endpoint{path: "/getObject", name: "get object", replayable: true}
	putObjectsEndpoint      = endpoint{path: "/putObjects", name: "put objects", replayable: false}
	deleteObjectEndpoint    = endpoint{path: "/deleteObject", name: "delete object", replayable: true}
	listKeyVersionsEndpoint = endpoint{path: "/listKeyVersions", name: "list key versions", replayable: true}
)

type clientOptions struct {
	policy          retry.Policy[error]
	provider        header.Provider
	transport       transport.Transport
	httpClient      *http.Client
	capacity        int
	timeout         time.Duration
	maxResponseSize int64
	logger          zerolog.Logger
}

// Option configures a Client.
type Option = options.OptionCallback[clientOptions]

// WithRetryPolicy sets the policy deciding on repeated attempts.
// DefaultRetryPolicy is used by default.
func WithRetryPolicy(policy retry.Policy[error]) Option {
	return func(opts *clientOptions) {
		opts.policy = policy
	}
}

// WithHeaderProvider sets the source of per-request headers.
func WithHeaderProvider(provider header.Provider) Option {
	return func(opts *clientOptions) {
		opts.provider = provider
	}
}

// WithTransport replaces the network layer. WithCapacity and WithHTTPClient are
// ignored when a transport is set.
func WithTransport(tr transport.Transport) Option {
	return func(opts *clientOptions) {
		opts.transport = tr
	}
}

// WithHTTPClient makes the default transport send requests with client.
func WithHTTPClient(client *http.Client) Option {
	return func(opts *clientOptions) {
		opts.httpClient = client
	}
}

// WithCapacity sets the number of connections kept per host.
func WithCapacity(capacity int) Option {
	return func(opts *clientOptions) {
		opts.capacity = capacity
	}
}

// WithTimeout bounds every single attempt.
func WithTimeout(timeout time.Duration) Option {
	return func(opts *clientOptions) {
		opts.timeout = timeout
	}
}

// WithMaxResponseSize bounds the size of a response body. Values below one
// keep the default limit.
func WithMaxResponseSize(size int64) Option {
	return func(opts *clientOptions) {
		opts.maxResponseSize = size
	}
}

// WithLogger sets the logger for trace events.
func WithLogger(logger zerolog.Logger) Option {
	return func(opts *clientOptions) {
		opts.logger = logger
	}
}

func defaultClientOptions() clientOptions {
	return clientOptions{
		policy:          nil,
		provider:        nil,
		transport:       nil,
		httpClient:      nil,
		capacity:        transport.DefaultCapacity,
		timeout:         transport.DefaultTimeout,
		maxResponseSize: transport.DefaultMaxResponseSize,
		logger:          log.Logger,
	}
}

// Client issues requests to a Versioned Storage Service.
// It is safe for concurrent use.
type Client struct {
	baseURL         string
	policy          retry.Policy[error]
	provider        header.Provider
	transport       transport.Transport
	timeout         time.Duration
	maxResponseSize int64
	logger          zerolog.Logger
}

// New creates a client for the service located at baseURL.
func New(baseURL string, cOpts ...Option) (*Client, error) {
	baseURL = strings.TrimRight(baseURL, "/")
	if baseURL == "" {
		return nil, ErrEmptyBaseURL
	}

	opts := options.ApplyOptions(defaultClientOptions, cOpts)

	if opts.policy == nil {
		opts.policy = DefaultRetryPolicy()
	}

	if opts.provider == nil {
		opts.provider = header.NewStatic(nil)
	}

	if opts.maxResponseSize <= 0 {
		opts.maxResponseSize = transport.DefaultMaxResponseSize
	}

	if opts.transport == nil {
		if opts.httpClient != nil {
			opts.transport = transport.NewHTTPFromClient(opts.httpClient)
		} else {
			opts.transport = transport.NewHTTP(opts.capacity)
		}
	}

	return &Client{
		baseURL:         baseURL,
		policy:          opts.policy,
		provider:        opts.provider,
		transport:       opts.transport,
		timeout:         opts.timeout,
		maxResponseSize: opts.maxResponseSize,
		logger:          opts.logger,
	}, nil
}

// BaseURL returns the service location the client was created with.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// GetObject fetches a single stored item. A successful response without a
// value is reported as ProtocolViolationError.
func (c *Client) GetObject(ctx context.Context, req *message.GetObjectRequest) (*message.GetObjectResponse, error) {
	logger := c.requestLogger(getObjectEndpoint)
	logger.Trace().Str("store_id", req.StoreID).Str("key", req.Key).Msg("sending request")

	return execute(ctx, c, logger, getObjectEndpoint, req, func(body []byte) (*message.GetObjectResponse, error) {
		resp := &message.GetObjectResponse{} //nolint:exhaustruct
		if err := resp.Unmarshal(body); err != nil {
			return nil, errDecode(err)
		}

		if !resp.Value.IsSome() {
			return nil, errProtocolViolation("get object response has no value")
		}

		return resp, nil
	})
}

// PutObject writes and deletes items in a single transaction. Put requests are
// never replayed by the transport on its own.
func (c *Client) PutObject(ctx context.Context, req *message.PutObjectRequest) (*message.PutObjectResponse, error) {
	logger := c.requestLogger(putObjectsEndpoint)
	logger.Trace().
		Str("store_id", req.StoreID).
		Stringer("transaction_items", kv.KeyList(req.TransactionItems)).
		Stringer("delete_items", kv.KeyList(req.DeleteItems)).
		Msg("sending request")

	return execute(ctx, c, logger, putObjectsEndpoint, req, decodeInto[message.PutObjectResponse])
}

// DeleteObject removes a single stored item.
func (c *Client) DeleteObject(
	ctx context.Context,
	req *message.DeleteObjectRequest,
) (*message.DeleteObjectResponse, error) {
	logger := c.requestLogger(deleteObjectEndpoint)

	event := logger.Trace().Str("store_id", req.StoreID)
	if item, ok := req.KeyValue.Get(); ok {
		event = event.Str("key", item.Key).Int64("version", item.Version)
	}

	event.Msg("sending request")

	return execute(ctx, c, logger, deleteObjectEndpoint, req, decodeInto[message.DeleteObjectResponse])
}

// ListKeyVersions fetches one page of keys with their versions.
func (c *Client) ListKeyVersions(
	ctx context.Context,
	req *message.ListKeyVersionsRequest,
) (*message.ListKeyVersionsResponse, error) {
	logger := c.requestLogger(listKeyVersionsEndpoint)
	logger.Trace().
		Str("store_id", req.StoreID).
		Str("key_prefix", req.KeyPrefix.UnwrapOr("")).
		Int32("page_size", req.PageSize.UnwrapOr(0)).
		Str("page_token", req.PageToken.UnwrapOr("")).
		Msg("sending request")

	return execute(ctx, c, logger, listKeyVersionsEndpoint, req, decodeInto[message.ListKeyVersionsResponse])
}

// ListAllKeyVersions follows page tokens starting from req until the last page
// and returns all collected key versions. The global version is taken from the
// first page reporting it.
func (c *Client) ListAllKeyVersions(
	ctx context.Context,
	req *message.ListKeyVersionsRequest,
) (*message.ListKeyVersionsResponse, error) {
	page := *req
	result := &message.ListKeyVersionsResponse{} //nolint:exhaustruct

	for {
		resp, err := c.ListKeyVersions(ctx, &page)
		if err != nil {
			return nil, err
		}

		result.KeyVersions = append(result.KeyVersions, resp.KeyVersions...)

		if !result.GlobalVersion.IsSome() {
			result.GlobalVersion = resp.GlobalVersion
		}

		if !resp.HasNextPage() {
			return result, nil
		}

		page.PageToken = resp.NextPageToken
	}
}

func (c *Client) requestLogger(ep endpoint) zerolog.Logger {
	return c.logger.With().
		Str("request_id", uuid.NewString()).
		Str("operation", ep.name).
		Logger()
}

func decodeInto[T any, PT interface {
	*T
	marshaller.Marshallable
}](body []byte) (*T, error) {
	resp := PT(new(T))
	if err := resp.Unmarshal(body); err != nil {
		return nil, errDecode(err)
	}

	return resp, nil
}

// execute runs attempts under the client's retry policy.
func execute[T any](
	ctx context.Context,
	c *Client,
	logger zerolog.Logger,
	ep endpoint,
	req marshaller.Marshallable,
	decode func(body []byte) (T, error),
) (T, error) {
	var zero T

	body, err := req.Marshal()
	if err != nil {
		return zero, fmt.Errorf("failed to encode request: %w", err)
	}

	result, err := retry.Do(ctx, c.policy, func(ctx context.Context) (T, error) {
		respBody, err := c.post(ctx, ep, body)
		if err != nil {
			return zero, err
		}

		return decode(respBody)
	}, retry.WithNotify(func(rc retry.Context[error], delay time.Duration) {
		logger.Trace().
			Err(rc.Err).
			Int("attempt", rc.AttemptsMade).
			Dur("delay", delay).
			Msg("retrying request")
	}))
	if err != nil {
		logger.Trace().Err(err).Msg("request failed")

		return zero, err
	}

	return result, nil
}

// post makes a single attempt and returns the body of a 2xx response.
func (c *Client) post(ctx context.Context, ep endpoint, body []byte) ([]byte, error) {
	provided, err := c.provider.Headers(ctx, body)
	if err != nil {
		return nil, errAuth(err)
	}

	// Names are canonicalized so that a provider header overrides the content
	// type whatever its case.
	headers := make(map[string]string, len(provided)+1)
	headers["Content-Type"] = contentType

	for name, value := range provided {
		headers[http.CanonicalHeaderKey(name)] = value
	}

	resp, err := c.transport.Do(ctx, &transport.Request{
		URL:             c.baseURL + ep.path,
		Header:          headers,
		Body:            body,
		Timeout:         c.timeout,
		MaxResponseSize: c.maxResponseSize,
		Replayable:      ep.replayable,
	})
	if err != nil {
		return nil, errTransport(err)
	}

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return nil, errStatus(resp.StatusCode, resp.Body)
	}

	return resp.Body, nil
}
