package marshaller

import (
	"github.com/vmihailenco/msgpack/v5"
)

const msgpackFormat = "msgpack"

// TypedMsgpackMarshaller is a generic MessagePack marshaller for typed objects.
type TypedMsgpackMarshaller[T any] struct{}

// NewTypedMsgpackMarshaller creates a new TypedMsgpackMarshaller for the specified type.
func NewTypedMsgpackMarshaller[T any]() TypedMsgpackMarshaller[T] {
	return TypedMsgpackMarshaller[T]{}
}

// Name implements TypedMarshaller interface.
func (m TypedMsgpackMarshaller[T]) Name() string {
	return msgpackFormat
}

// Marshal serializes the typed data to MessagePack format.
func (m TypedMsgpackMarshaller[T]) Marshal(data T) ([]byte, error) {
	marshalled, err := msgpack.Marshal(data)
	if err != nil {
		return nil, errMarshal(msgpackFormat, err)
	}

	return marshalled, nil
}

// Unmarshal deserializes MessagePack data into a typed object.
func (m TypedMsgpackMarshaller[T]) Unmarshal(data []byte) (T, error) {
	var out T

	err := msgpack.Unmarshal(data, &out)
	if err != nil {
		return zero[T](), errUnmarshal(msgpackFormat, err)
	}

	return out, nil
}
