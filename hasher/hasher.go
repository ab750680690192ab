// Package hasher provides types and interfaces for hash calculating.
package hasher

import (
	"crypto/sha256"
	"errors"
)

// ErrDataIsNil is returned if the passed data is nil.
var ErrDataIsNil = errors.New("data is nil")

// Hasher is the interface that hashers must implement.
// Implementations keep no state between calls and are safe for concurrent use.
type Hasher interface {
	Name() string
	Size() int
	Hash(data []byte) ([]byte, error)
}

type sha256Hasher struct{}

// NewSHA256Hasher creates a new sha256Hasher instance.
func NewSHA256Hasher() Hasher {
	return sha256Hasher{}
}

// Name implements Hasher interface.
func (sha256Hasher) Name() string {
	return "sha256"
}

// Size implements Hasher interface.
func (sha256Hasher) Size() int {
	return sha256.Size
}

// Hash implements Hasher interface.
func (sha256Hasher) Hash(data []byte) ([]byte, error) {
	if data == nil {
		return nil, ErrDataIsNil
	}

	digest := sha256.Sum256(data)

	return digest[:], nil
}
