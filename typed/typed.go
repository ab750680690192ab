// Package typed provides a typed value layer on top of the storage client.
//
// Values are encoded with a [marshaller.TypedMarshaller] before they are stored
// and decoded back on reads. See [New] for available options.
package typed

import (
	"context"
	"errors"
	"fmt"

	"github.com/tarantool/go-option"

	vss "github.com/tarantool/go-vss"
	"github.com/tarantool/go-vss/internal/options"
	"github.com/tarantool/go-vss/kv"
	"github.com/tarantool/go-vss/marshaller"
	"github.com/tarantool/go-vss/message"
	"github.com/tarantool/go-vss/operation"
	"github.com/tarantool/go-vss/tx"
)

var (
	// ErrInvalidKey is returned for empty keys.
	ErrInvalidKey = errors.New("invalid key")
	// ErrNotFound is returned by Get when the key does not exist.
	ErrNotFound = errors.New("not found")
	// ErrConflict is returned by Put and Delete when a version check fails.
	ErrConflict = errors.New("version conflict")
)

// Backend is the subset of the client used by Store. *vss.Client implements it.
// A GetObject response without a value is treated as a missing key.
type Backend interface {
	GetObject(ctx context.Context, req *message.GetObjectRequest) (*message.GetObjectResponse, error)
	PutObject(ctx context.Context, req *message.PutObjectRequest) (*message.PutObjectResponse, error)
	DeleteObject(ctx context.Context, req *message.DeleteObjectRequest) (*message.DeleteObjectResponse, error)
	ListAllKeyVersions(ctx context.Context, req *message.ListKeyVersionsRequest) (*message.ListKeyVersionsResponse, error)
}

var _ Backend = (*vss.Client)(nil)

// Item is a typed stored value.
type Item[T any] struct {
	Key string
	// Version is the version the item is stored with, or the version expected
	// by the server on writes.
	Version int64
	Value   T
}

type storeOptions[T any] struct {
	marshaller marshaller.TypedMarshaller[T]
}

// WithMarshaller sets the encoding of stored values. MessagePack is used by default.
func WithMarshaller[T any](m marshaller.TypedMarshaller[T]) options.OptionCallback[storeOptions[T]] {
	return func(opts *storeOptions[T]) {
		opts.marshaller = m
	}
}

// Store keeps typed values in a single store.
type Store[T any] struct {
	base       Backend
	storeID    string
	marshaller marshaller.TypedMarshaller[T]
}

// New creates a Store for values of type T kept under storeID.
func New[T any](base Backend, storeID string, sOpts ...options.OptionCallback[storeOptions[T]]) *Store[T] {
	opts := options.ApplyOptions(func() storeOptions[T] {
		return storeOptions[T]{marshaller: marshaller.NewTypedMsgpackMarshaller[T]()}
	}, sOpts)

	return &Store[T]{
		base:       base,
		storeID:    storeID,
		marshaller: opts.marshaller,
	}
}

// Get retrieves and decodes a single value.
func (s *Store[T]) Get(ctx context.Context, key string) (Item[T], error) {
	if key == "" {
		return Item[T]{}, ErrInvalidKey
	}

	resp, err := s.base.GetObject(ctx, &message.GetObjectRequest{StoreID: s.storeID, Key: key})
	if err != nil {
		return Item[T]{}, classify(err)
	}

	// *vss.Client never returns an empty response; other backends may report
	// a missing key this way.
	stored, ok := resp.Value.Get()
	if !ok {
		return Item[T]{}, ErrNotFound
	}

	value, err := s.marshaller.Unmarshal(stored.Value)
	if err != nil {
		return Item[T]{}, fmt.Errorf("failed to decode %q: %w", key, err)
	}

	return Item[T]{Key: stored.Key, Version: stored.Version, Value: value}, nil
}

type putOptions struct {
	globalVersion option.Generic[int64]
	deletes       []kv.KeyValue
}

// WithGlobalVersion makes Put conditional on the store-wide version.
func WithGlobalVersion(version int64) options.OptionCallback[putOptions] {
	return func(opts *putOptions) {
		opts.globalVersion = option.Some(version)
	}
}

// WithDeletes removes keys at the given versions in the same transaction.
func WithDeletes(items ...kv.KeyValue) options.OptionCallback[putOptions] {
	return func(opts *putOptions) {
		opts.deletes = append(opts.deletes, items...)
	}
}

// Put encodes and writes all items in a single transaction.
func (s *Store[T]) Put(ctx context.Context, items []Item[T], pOpts ...options.OptionCallback[putOptions]) error {
	opts := options.ApplyOptions[putOptions](nil, pOpts)

	txn := tx.New(s.storeID)
	if v, ok := opts.globalVersion.Get(); ok {
		txn = txn.IfGlobalVersion(v)
	}

	for _, item := range items {
		if item.Key == "" {
			return ErrInvalidKey
		}

		data, err := s.marshaller.Marshal(item.Value)
		if err != nil {
			return fmt.Errorf("failed to encode %q: %w", item.Key, err)
		}

		txn = txn.Then(operation.Put(item.Key, item.Version, data))
	}

	for _, item := range opts.deletes {
		txn = txn.Then(operation.Delete(item.Key, item.Version))
	}

	if err := txn.Commit(ctx, s.base); err != nil {
		return classify(err)
	}

	return nil
}

// Delete removes a key at the given version.
func (s *Store[T]) Delete(ctx context.Context, key string, version int64) error {
	if key == "" {
		return ErrInvalidKey
	}

	_, err := s.base.DeleteObject(ctx, &message.DeleteObjectRequest{
		StoreID:  s.storeID,
		KeyValue: option.Some(kv.KeyValue{Key: key, Version: version, Value: nil}),
	})
	if err != nil {
		return classify(err)
	}

	return nil
}

// Versions lists all keys starting with prefix together with their versions.
func (s *Store[T]) Versions(ctx context.Context, prefix string) ([]kv.KeyValue, error) {
	req := &message.ListKeyVersionsRequest{
		StoreID:   s.storeID,
		KeyPrefix: option.None[string](),
		PageSize:  option.None[int32](),
		PageToken: option.None[string](),
	}

	if prefix != "" {
		req.KeyPrefix = option.Some(prefix)
	}

	resp, err := s.base.ListAllKeyVersions(ctx, req)
	if err != nil {
		return nil, classify(err)
	}

	return resp.KeyVersions, nil
}

func classify(err error) error {
	switch {
	case errors.Is(err, vss.ErrNoSuchKey):
		return fmt.Errorf("%w: %w", ErrNotFound, err)
	case errors.Is(err, vss.ErrConflict):
		return fmt.Errorf("%w: %w", ErrConflict, err)
	default:
		return err
	}
}
