// Package vss provides a thin client for a hosted Versioned Storage Service.
//
// The [Client] API mirrors the server-side API: every call is authenticated by a
// [github.com/tarantool/go-vss/header.Provider], retried according to a
// [github.com/tarantool/go-vss/retry.Policy] and decoded into a typed response.
//
// See the [github.com/tarantool/go-vss/typed] package for a typed value layer on top of
// the client.
package vss
