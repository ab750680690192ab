package testing

import (
	"context"
	"errors"
	"maps"
	"sync"

	"github.com/tarantool/go-vss/transport"
)

var errNoResponses = errors.New("no scripted responses left")

type transportResponse struct {
	resp *transport.Response
	err  error
}

// MockTransport is an implementation of the transport.Transport interface
// used for testing purposes.
type MockTransport struct {
	mu sync.Mutex
	// Requests is a slice of received requests.
	// It could be used to compare outgoing requests with expected.
	Requests  []transport.Request
	responses []transportResponse
	handler   func(req transport.Request) (*transport.Response, error)
	t         T
}

var _ transport.Transport = (*MockTransport)(nil)

// NewMockTransport creates a MockTransport by given responses, returned in order.
// Each response could be one of two types: *transport.Response or error.
func NewMockTransport(t T, responses ...any) *MockTransport {
	t.Helper()

	mockTransport := &MockTransport{
		mu:        sync.Mutex{},
		t:         t,
		Requests:  []transport.Request{},
		responses: []transportResponse{},
		handler:   nil,
	}

	for _, response := range responses {
		tResp := transportResponse{
			resp: nil,
			err:  nil,
		}

		switch resp := response.(type) {
		case *transport.Response:
			tResp.resp = resp
		case error:
			tResp.err = resp
		default:
			t.Fatalf("unsupported type: %T", response)
		}

		mockTransport.responses = append(mockTransport.responses, tResp)
	}

	return mockTransport
}

// NewMockTransportFunc creates a MockTransport answering every request with handler.
// The handler may be called concurrently.
func NewMockTransportFunc(t T, handler func(req transport.Request) (*transport.Response, error)) *MockTransport {
	t.Helper()

	mockTransport := NewMockTransport(t)
	mockTransport.handler = handler

	return mockTransport
}

// Response is a shortcut for a response with the given status and body.
func Response(statusCode int, body []byte) *transport.Response {
	return &transport.Response{StatusCode: statusCode, Body: body}
}

// Do returns the current response or an error.
// It saves a copy of the request into MockTransport.Requests.
func (m *MockTransport) Do(_ context.Context, req *transport.Request) (*transport.Response, error) {
	saved := *req
	saved.Header = maps.Clone(req.Header)
	saved.Body = append([]byte(nil), req.Body...)

	m.mu.Lock()

	m.Requests = append(m.Requests, saved)

	if m.handler != nil {
		m.mu.Unlock()

		return m.handler(saved)
	}

	defer m.mu.Unlock()

	if len(m.responses) == 0 {
		m.t.Errorf("list of responses is empty")

		return nil, errNoResponses
	}

	response := m.responses[0]
	m.responses = m.responses[1:]

	return response.resp, response.err
}

// Sent returns a snapshot of the received requests.
func (m *MockTransport) Sent() []transport.Request {
	m.mu.Lock()
	defer m.mu.Unlock()

	return append([]transport.Request(nil), m.Requests...)
}
