// Package header provides header providers which authenticate requests to the
// storage service.
//
// A [Provider] computes the headers of a single request from its serialized body.
// [Static] attaches a fixed set of headers, [SigsAuth] proves possession of a
// secp256k1 private key.
package header

import (
	"context"
	"maps"
)

//go:generate go tool minimock -i Provider -o ../internal/mocks/provider_mock.go -n ProviderMock -p mocks

// Provider computes headers for a request given its serialized body.
// Calls are independent and may run concurrently.
type Provider interface {
	Headers(ctx context.Context, request []byte) (map[string]string, error)
}

// Static always returns the same headers.
type Static struct {
	headers map[string]string
}

var _ Provider = Static{} //nolint:exhaustruct

// NewStatic creates a provider returning a copy of headers on every call.
func NewStatic(headers map[string]string) Static {
	return Static{headers: maps.Clone(headers)}
}

// Headers implements Provider interface. It never fails.
func (s Static) Headers(_ context.Context, _ []byte) (map[string]string, error) {
	out := make(map[string]string, len(s.headers))
	maps.Copy(out, s.headers)

	return out, nil
}
