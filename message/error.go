package message

import (
	"fmt"

	"google.golang.org/protobuf/encoding/protowire"
)

// ErrorCode classifies a failed request on the server side.
type ErrorCode int32

const (
	// ErrorCodeUnknown is the default code for unclassified failures.
	ErrorCodeUnknown ErrorCode = iota
	// ErrorCodeConflict is returned when a version check of a write fails.
	ErrorCodeConflict
	// ErrorCodeInvalidRequest is returned for malformed or rejected requests.
	ErrorCodeInvalidRequest
	// ErrorCodeInternalServer is returned when the server failed to serve a valid request.
	ErrorCodeInternalServer
	// ErrorCodeNoSuchKey is returned when the requested key does not exist.
	ErrorCodeNoSuchKey
	// ErrorCodeAuth is returned when the request was not authenticated.
	ErrorCodeAuth
)

// String returns the wire name of the code.
func (c ErrorCode) String() string {
	switch c {
	case ErrorCodeUnknown:
		return "UNKNOWN"
	case ErrorCodeConflict:
		return "CONFLICT_EXCEPTION"
	case ErrorCodeInvalidRequest:
		return "INVALID_REQUEST_EXCEPTION"
	case ErrorCodeInternalServer:
		return "INTERNAL_SERVER_EXCEPTION"
	case ErrorCodeNoSuchKey:
		return "NO_SUCH_KEY_EXCEPTION"
	case ErrorCodeAuth:
		return "AUTH_EXCEPTION"
	default:
		return fmt.Sprintf("ErrorCode(%d)", int32(c))
	}
}

// ErrorResponse is the body of a non-2xx response.
type ErrorResponse struct {
	ErrorCode ErrorCode
	Message   string
}

// Marshal implements marshaller.Marshallable.
func (r *ErrorResponse) Marshal() ([]byte, error) {
	var b []byte

	if r.ErrorCode != ErrorCodeUnknown {
		b = appendVarint(b, 1, uint64(int64(r.ErrorCode))) //nolint:gosec
	}

	if r.Message != "" {
		b = appendString(b, 2, r.Message)
	}

	return b, nil
}

// Unmarshal implements marshaller.Marshallable.
func (r *ErrorResponse) Unmarshal(data []byte) error {
	*r = ErrorResponse{}

	err := walk(data, func(num protowire.Number, typ protowire.Type, data []byte) int {
		switch {
		case num == 1 && typ == protowire.VarintType:
			v, n := protowire.ConsumeVarint(data)
			r.ErrorCode = ErrorCode(int32(v)) //nolint:gosec

			return n
		case num == 2 && typ == protowire.BytesType:
			v, n := protowire.ConsumeString(data)
			r.Message = v

			return n
		default:
			return 0
		}
	})

	return errDecoding("ErrorResponse", err)
}
