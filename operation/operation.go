// Package operation provides the write operations of a transaction.
package operation

import (
	"github.com/tarantool/go-vss/kv"
)

// Operation is a single write within a transaction.
type Operation struct {
	typ  Type
	item kv.KeyValue
}

// Put stores value under key. The write succeeds only if the key currently
// has the given version; zero stands for a key that does not exist yet.
func Put(key string, version int64, value []byte) Operation {
	return Operation{
		typ:  TypePut,
		item: kv.KeyValue{Key: key, Version: version, Value: value},
	}
}

// Delete removes key if it currently has the given version.
func Delete(key string, version int64) Operation {
	return Operation{
		typ:  TypeDelete,
		item: kv.KeyValue{Key: key, Version: version, Value: nil},
	}
}

// Type returns the operation type.
func (o Operation) Type() Type {
	return o.typ
}

// Key returns the target key.
func (o Operation) Key() string {
	return o.item.Key
}

// Version returns the expected current version of the key.
func (o Operation) Version() int64 {
	return o.item.Version
}

// Value returns the value to store, nil for deletes.
func (o Operation) Value() []byte {
	return o.item.Value
}

// KeyValue returns the wire form of the operation.
func (o Operation) KeyValue() kv.KeyValue {
	return o.item
}
