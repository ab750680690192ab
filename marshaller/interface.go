// Package marshaller represents interfaces to transform objects into bytes and back.
package marshaller

// Marshallable - custom object serialization, implemented for each object.
// Wire messages of the service implement it with their canonical binary form.
type Marshallable interface {
	Marshal() ([]byte, error)
	Unmarshal(data []byte) error
}

// TypedMarshaller is a generic interface for typed marshalling operations.
// It is used by `typed.Store` to encode stored values.
type TypedMarshaller[T any] interface {
	Name() string
	Marshal(data T) ([]byte, error)
	Unmarshal(data []byte) (T, error)
}

func zero[T any]() T {
	var out T
	return out
}
