// Package kv provides key-value data structures exchanged with the storage service.
// It defines the core KeyValue type used throughout the client.
package kv

import (
	"strings"
)

// KeyValue represents a key-value pair with version metadata.
// Identity is (store, key); the version is used for optimistic concurrency.
type KeyValue struct {
	// Key is the key of the item.
	Key string
	// Version is the version of the item the caller expects (on writes)
	// or the server holds (on reads).
	Version int64
	// Value is the opaque value of the item.
	Value []byte
}

// KeyList prints only the keys of the items, never their values.
type KeyList []KeyValue

// String implements fmt.Stringer.
func (l KeyList) String() string {
	var b strings.Builder

	b.WriteByte('[')

	for i, item := range l {
		if i > 0 {
			b.WriteString(", ")
		}

		b.WriteString(item.Key)
	}

	b.WriteByte(']')

	return b.String()
}
