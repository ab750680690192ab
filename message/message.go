package message

import (
	"github.com/tarantool/go-option"
	"google.golang.org/protobuf/encoding/protowire"

	"github.com/tarantool/go-vss/kv"
	"github.com/tarantool/go-vss/marshaller"
)

var (
	_ marshaller.Marshallable = (*GetObjectRequest)(nil)
	_ marshaller.Marshallable = (*GetObjectResponse)(nil)
	_ marshaller.Marshallable = (*PutObjectRequest)(nil)
	_ marshaller.Marshallable = (*PutObjectResponse)(nil)
	_ marshaller.Marshallable = (*DeleteObjectRequest)(nil)
	_ marshaller.Marshallable = (*DeleteObjectResponse)(nil)
	_ marshaller.Marshallable = (*ListKeyVersionsRequest)(nil)
	_ marshaller.Marshallable = (*ListKeyVersionsResponse)(nil)
	_ marshaller.Marshallable = (*ErrorResponse)(nil)
)

// GetObjectRequest fetches the value stored against a key.
type GetObjectRequest struct {
	// StoreID scopes the key; all keys of one store live in one namespace.
	StoreID string
	// Key to fetch.
	Key string
}

// Marshal implements marshaller.Marshallable.
func (r *GetObjectRequest) Marshal() ([]byte, error) {
	var b []byte

	if r.StoreID != "" {
		b = appendString(b, 1, r.StoreID)
	}

	if r.Key != "" {
		b = appendString(b, 2, r.Key)
	}

	return b, nil
}

// Unmarshal implements marshaller.Marshallable.
func (r *GetObjectRequest) Unmarshal(data []byte) error {
	*r = GetObjectRequest{}

	err := walk(data, func(num protowire.Number, typ protowire.Type, data []byte) int {
		if typ != protowire.BytesType {
			return 0
		}

		switch num {
		case 1:
			v, n := protowire.ConsumeString(data)
			r.StoreID = v

			return n
		case 2:
			v, n := protowire.ConsumeString(data)
			r.Key = v

			return n
		default:
			return 0
		}
	})

	return errDecoding("GetObjectRequest", err)
}

// GetObjectResponse carries the fetched item. A successful response
// always has a value; its absence is a server contract violation.
type GetObjectResponse struct {
	Value option.Generic[kv.KeyValue]
}

// Marshal implements marshaller.Marshallable.
func (r *GetObjectResponse) Marshal() ([]byte, error) {
	var b []byte

	if item, ok := r.Value.Get(); ok {
		b = appendKeyValue(b, 2, item)
	}

	return b, nil
}

// Unmarshal implements marshaller.Marshallable.
func (r *GetObjectResponse) Unmarshal(data []byte) error {
	r.Value = option.None[kv.KeyValue]()

	var nested error

	err := walk(data, func(num protowire.Number, typ protowire.Type, data []byte) int {
		if num != 2 || typ != protowire.BytesType {
			return 0
		}

		item, n := consumeKeyValue(data, &nested)
		r.Value = option.Some(item)

		return n
	})
	if err == nil {
		err = nested
	}

	return errDecoding("GetObjectResponse", err)
}

// PutObjectRequest writes TransactionItems and deletes DeleteItems as a single
// all-or-nothing transaction.
type PutObjectRequest struct {
	StoreID string
	// GlobalVersion, when set, makes the whole write conditional on the
	// store-wide version.
	GlobalVersion    option.Generic[int64]
	TransactionItems []kv.KeyValue
	DeleteItems      []kv.KeyValue
}

// Marshal implements marshaller.Marshallable.
func (r *PutObjectRequest) Marshal() ([]byte, error) {
	var b []byte

	if r.StoreID != "" {
		b = appendString(b, 1, r.StoreID)
	}

	if v, ok := r.GlobalVersion.Get(); ok {
		b = appendVarint(b, 2, uint64(v)) //nolint:gosec
	}

	for _, item := range r.TransactionItems {
		b = appendKeyValue(b, 3, item)
	}

	for _, item := range r.DeleteItems {
		b = appendKeyValue(b, 4, item)
	}

	return b, nil
}

// Unmarshal implements marshaller.Marshallable.
func (r *PutObjectRequest) Unmarshal(data []byte) error {
	*r = PutObjectRequest{
		StoreID:          "",
		GlobalVersion:    option.None[int64](),
		TransactionItems: nil,
		DeleteItems:      nil,
	}

	var nested error

	err := walk(data, func(num protowire.Number, typ protowire.Type, data []byte) int {
		switch {
		case num == 1 && typ == protowire.BytesType:
			v, n := protowire.ConsumeString(data)
			r.StoreID = v

			return n
		case num == 2 && typ == protowire.VarintType:
			v, n := protowire.ConsumeVarint(data)
			r.GlobalVersion = option.Some(int64(v)) //nolint:gosec

			return n
		case num == 3 && typ == protowire.BytesType:
			item, n := consumeKeyValue(data, &nested)
			r.TransactionItems = append(r.TransactionItems, item)

			return n
		case num == 4 && typ == protowire.BytesType:
			item, n := consumeKeyValue(data, &nested)
			r.DeleteItems = append(r.DeleteItems, item)

			return n
		default:
			return 0
		}
	})
	if err == nil {
		err = nested
	}

	return errDecoding("PutObjectRequest", err)
}

// PutObjectResponse carries no payload beyond success.
type PutObjectResponse struct{}

// Marshal implements marshaller.Marshallable.
func (r *PutObjectResponse) Marshal() ([]byte, error) {
	return []byte{}, nil
}

// Unmarshal implements marshaller.Marshallable.
func (r *PutObjectResponse) Unmarshal(data []byte) error {
	return errDecoding("PutObjectResponse", walk(data, skipAll))
}

// DeleteObjectRequest deletes a single item at the expected version.
type DeleteObjectRequest struct {
	StoreID  string
	KeyValue option.Generic[kv.KeyValue]
}

// Marshal implements marshaller.Marshallable.
func (r *DeleteObjectRequest) Marshal() ([]byte, error) {
	var b []byte

	if r.StoreID != "" {
		b = appendString(b, 1, r.StoreID)
	}

	if item, ok := r.KeyValue.Get(); ok {
		b = appendKeyValue(b, 2, item)
	}

	return b, nil
}

// Unmarshal implements marshaller.Marshallable.
func (r *DeleteObjectRequest) Unmarshal(data []byte) error {
	*r = DeleteObjectRequest{StoreID: "", KeyValue: option.None[kv.KeyValue]()}

	var nested error

	err := walk(data, func(num protowire.Number, typ protowire.Type, data []byte) int {
		switch {
		case num == 1 && typ == protowire.BytesType:
			v, n := protowire.ConsumeString(data)
			r.StoreID = v

			return n
		case num == 2 && typ == protowire.BytesType:
			item, n := consumeKeyValue(data, &nested)
			r.KeyValue = option.Some(item)

			return n
		default:
			return 0
		}
	})
	if err == nil {
		err = nested
	}

	return errDecoding("DeleteObjectRequest", err)
}

// DeleteObjectResponse is empty on success.
type DeleteObjectResponse struct{}

// Marshal implements marshaller.Marshallable.
func (r *DeleteObjectResponse) Marshal() ([]byte, error) {
	return []byte{}, nil
}

// Unmarshal implements marshaller.Marshallable.
func (r *DeleteObjectResponse) Unmarshal(data []byte) error {
	return errDecoding("DeleteObjectResponse", walk(data, skipAll))
}

// ListKeyVersionsRequest lists keys with their versions, page by page.
type ListKeyVersionsRequest struct {
	StoreID   string
	KeyPrefix option.Generic[string]
	PageSize  option.Generic[int32]
	// PageToken continues a previous listing; absent for the first page.
	PageToken option.Generic[string]
}

// Marshal implements marshaller.Marshallable.
func (r *ListKeyVersionsRequest) Marshal() ([]byte, error) {
	var b []byte

	if r.StoreID != "" {
		b = appendString(b, 1, r.StoreID)
	}

	if v, ok := r.KeyPrefix.Get(); ok {
		b = appendString(b, 2, v)
	}

	if v, ok := r.PageSize.Get(); ok {
		b = appendVarint(b, 3, uint64(int64(v))) //nolint:gosec
	}

	if v, ok := r.PageToken.Get(); ok {
		b = appendString(b, 4, v)
	}

	return b, nil
}

// Unmarshal implements marshaller.Marshallable.
func (r *ListKeyVersionsRequest) Unmarshal(data []byte) error {
	*r = ListKeyVersionsRequest{
		StoreID:   "",
		KeyPrefix: option.None[string](),
		PageSize:  option.None[int32](),
		PageToken: option.None[string](),
	}

	err := walk(data, func(num protowire.Number, typ protowire.Type, data []byte) int {
		switch {
		case num == 1 && typ == protowire.BytesType:
			v, n := protowire.ConsumeString(data)
			r.StoreID = v

			return n
		case num == 2 && typ == protowire.BytesType:
			v, n := protowire.ConsumeString(data)
			r.KeyPrefix = option.Some(v)

			return n
		case num == 3 && typ == protowire.VarintType:
			v, n := protowire.ConsumeVarint(data)
			r.PageSize = option.Some(int32(v)) //nolint:gosec

			return n
		case num == 4 && typ == protowire.BytesType:
			v, n := protowire.ConsumeString(data)
			r.PageToken = option.Some(v)

			return n
		default:
			return 0
		}
	})

	return errDecoding("ListKeyVersionsRequest", err)
}

// ListKeyVersionsResponse carries one page of (key, version) pairs.
type ListKeyVersionsResponse struct {
	// KeyVersions holds keys and versions; values are never listed.
	KeyVersions []kv.KeyValue
	// NextPageToken continues the listing. Absent or empty means no further pages.
	NextPageToken option.Generic[string]
	// GlobalVersion is the store-wide version, returned on the first page only.
	GlobalVersion option.Generic[int64]
}

// HasNextPage reports whether the listing continues past this page.
func (r *ListKeyVersionsResponse) HasNextPage() bool {
	return r.NextPageToken.UnwrapOr("") != ""
}

// Marshal implements marshaller.Marshallable.
func (r *ListKeyVersionsResponse) Marshal() ([]byte, error) {
	var b []byte

	for _, item := range r.KeyVersions {
		b = appendKeyValue(b, 1, item)
	}

	if v, ok := r.NextPageToken.Get(); ok {
		b = appendString(b, 2, v)
	}

	if v, ok := r.GlobalVersion.Get(); ok {
		b = appendVarint(b, 3, uint64(v)) //nolint:gosec
	}

	return b, nil
}

// Unmarshal implements marshaller.Marshallable.
func (r *ListKeyVersionsResponse) Unmarshal(data []byte) error {
	*r = ListKeyVersionsResponse{
		KeyVersions:   nil,
		NextPageToken: option.None[string](),
		GlobalVersion: option.None[int64](),
	}

	var nested error

	err := walk(data, func(num protowire.Number, typ protowire.Type, data []byte) int {
		switch {
		case num == 1 && typ == protowire.BytesType:
			item, n := consumeKeyValue(data, &nested)
			r.KeyVersions = append(r.KeyVersions, item)

			return n
		case num == 2 && typ == protowire.BytesType:
			v, n := protowire.ConsumeString(data)
			r.NextPageToken = option.Some(v)

			return n
		case num == 3 && typ == protowire.VarintType:
			v, n := protowire.ConsumeVarint(data)
			r.GlobalVersion = option.Some(int64(v)) //nolint:gosec

			return n
		default:
			return 0
		}
	})
	if err == nil {
		err = nested
	}

	return errDecoding("ListKeyVersionsResponse", err)
}

func skipAll(protowire.Number, protowire.Type, []byte) int {
	return 0
}
