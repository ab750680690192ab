// Package tx builds atomic write transactions.
//
// All operations of a transaction are applied together or not at all. Every
// operation carries the version it expects the key to have; the transaction
// may additionally be conditioned on the store-wide version.
package tx

import (
	"context"
	"errors"

	"github.com/tarantool/go-option"

	"github.com/tarantool/go-vss/message"
	"github.com/tarantool/go-vss/operation"
)

// ErrEmpty is returned on commit of a transaction without operations.
var ErrEmpty = errors.New("transaction has no operations")

// Committer sends a put request. *vss.Client implements it.
type Committer interface {
	PutObject(ctx context.Context, req *message.PutObjectRequest) (*message.PutObjectResponse, error)
}

// Tx collects operations of a single transaction. It is not safe for concurrent use.
type Tx struct {
	storeID       string
	globalVersion option.Generic[int64]
	ops           []operation.Operation
}

// New starts a transaction on the store.
func New(storeID string) *Tx {
	return &Tx{
		storeID:       storeID,
		globalVersion: option.None[int64](),
		ops:           nil,
	}
}

// IfGlobalVersion makes the transaction fail unless the store-wide version equals version.
func (t *Tx) IfGlobalVersion(version int64) *Tx {
	t.globalVersion = option.Some(version)
	return t
}

// Then adds operations to the transaction.
func (t *Tx) Then(ops ...operation.Operation) *Tx {
	t.ops = append(t.ops, ops...)
	return t
}

// Operations returns the collected operations.
func (t *Tx) Operations() []operation.Operation {
	return t.ops
}

// Request builds the wire request. Puts and deletes keep their relative order.
func (t *Tx) Request() *message.PutObjectRequest {
	req := &message.PutObjectRequest{
		StoreID:          t.storeID,
		GlobalVersion:    t.globalVersion,
		TransactionItems: nil,
		DeleteItems:      nil,
	}

	for _, op := range t.ops {
		switch op.Type() {
		case operation.TypePut:
			req.TransactionItems = append(req.TransactionItems, op.KeyValue())
		case operation.TypeDelete:
			req.DeleteItems = append(req.DeleteItems, op.KeyValue())
		}
	}

	return req
}

// Commit sends the transaction. A transaction without operations is only
// sent when it is conditioned on the global version.
func (t *Tx) Commit(ctx context.Context, committer Committer) error {
	if len(t.ops) == 0 && !t.globalVersion.IsSome() {
		return ErrEmpty
	}

	_, err := committer.PutObject(ctx, t.Request())

	return err
}
