package message

import (
	"errors"
	"fmt"

	"google.golang.org/protobuf/encoding/protowire"

	"github.com/tarantool/go-vss/kv"
)

// ErrMalformed is returned when a record can not be decoded.
var ErrMalformed = errors.New("malformed message")

// DecodingError represents an error that occurs during decoding of a record.
type DecodingError struct {
	ObjectType string
	Err        error
}

// Error returns the error message.
func (e DecodingError) Error() string {
	return fmt.Sprintf("failed to decode %s: %s", e.ObjectType, e.Err)
}

func (e DecodingError) Unwrap() error {
	return e.Err
}

func errDecoding(objectType string, err error) error {
	if err == nil {
		return nil
	}

	return DecodingError{ObjectType: objectType, Err: err}
}

// visitor consumes a single field value and returns the number of bytes consumed.
// Zero means the field is unknown and is skipped.
type visitor func(num protowire.Number, typ protowire.Type, data []byte) int

func walk(data []byte, visit visitor) error {
	for len(data) > 0 {
		num, typ, n := protowire.ConsumeTag(data)
		if n < 0 {
			return fmt.Errorf("%w: %w", ErrMalformed, protowire.ParseError(n))
		}

		data = data[n:]

		n = visit(num, typ, data)
		if n == 0 {
			n = protowire.ConsumeFieldValue(num, typ, data)
		}

		if n < 0 {
			return fmt.Errorf("%w: field %d: %w", ErrMalformed, num, protowire.ParseError(n))
		}

		data = data[n:]
	}

	return nil
}

func appendString(b []byte, num protowire.Number, v string) []byte {
	b = protowire.AppendTag(b, num, protowire.BytesType)
	return protowire.AppendString(b, v)
}

func appendBytes(b []byte, num protowire.Number, v []byte) []byte {
	b = protowire.AppendTag(b, num, protowire.BytesType)
	return protowire.AppendBytes(b, v)
}

func appendVarint(b []byte, num protowire.Number, v uint64) []byte {
	b = protowire.AppendTag(b, num, protowire.VarintType)
	return protowire.AppendVarint(b, v)
}

func appendKeyValue(b []byte, num protowire.Number, item kv.KeyValue) []byte {
	b = protowire.AppendTag(b, num, protowire.BytesType)
	return protowire.AppendBytes(b, encodeKeyValue(item))
}

// encodeKeyValue encodes KeyValue{key = 1, version = 2, value = 3}.
func encodeKeyValue(item kv.KeyValue) []byte {
	var b []byte

	if item.Key != "" {
		b = appendString(b, 1, item.Key)
	}

	if item.Version != 0 {
		b = appendVarint(b, 2, uint64(item.Version)) //nolint:gosec
	}

	if len(item.Value) > 0 {
		b = appendBytes(b, 3, item.Value)
	}

	return b
}

func decodeKeyValue(data []byte) (kv.KeyValue, error) {
	var item kv.KeyValue

	err := walk(data, func(num protowire.Number, typ protowire.Type, data []byte) int {
		switch {
		case num == 1 && typ == protowire.BytesType:
			v, n := protowire.ConsumeString(data)
			item.Key = v

			return n
		case num == 2 && typ == protowire.VarintType:
			v, n := protowire.ConsumeVarint(data)
			item.Version = int64(v) //nolint:gosec

			return n
		case num == 3 && typ == protowire.BytesType:
			v, n := protowire.ConsumeBytes(data)
			item.Value = append([]byte(nil), v...)

			return n
		default:
			return 0
		}
	})
	if err != nil {
		return kv.KeyValue{}, err
	}

	return item, nil
}

// consumeKeyValue consumes a length-delimited KeyValue, reporting a nested
// decoding failure through errp.
func consumeKeyValue(data []byte, errp *error) (kv.KeyValue, int) {
	v, n := protowire.ConsumeBytes(data)
	if n < 0 {
		return kv.KeyValue{}, n
	}

	item, err := decodeKeyValue(v)
	if err != nil {
		*errp = err
		return kv.KeyValue{}, n
	}

	return item, n
}
