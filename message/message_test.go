package message_test

import (
	"encoding/hex"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tarantool/go-option"

	"github.com/tarantool/go-vss/kv"
	"github.com/tarantool/go-vss/message"
)

func TestGetObjectRequest_Encoding(t *testing.T) {
	t.Parallel()

	req := message.GetObjectRequest{StoreID: "s", Key: "k"}

	data, err := req.Marshal()
	require.NoError(t, err)
	// store_id = 1 ("s"), key = 2 ("k").
	assert.Equal(t, "0a017312016b", hex.EncodeToString(data))

	var decoded message.GetObjectRequest
	require.NoError(t, decoded.Unmarshal(data))
	assert.Equal(t, req, decoded)
}

func TestGetObjectResponse_Encoding(t *testing.T) {
	t.Parallel()

	resp := message.GetObjectResponse{
		Value: option.Some(kv.KeyValue{Key: "k", Version: 2, Value: []byte{0xff}}),
	}

	data, err := resp.Marshal()
	require.NoError(t, err)
	// value = 2 { key = 1 ("k"), version = 2 (2), value = 3 (0xff) }.
	assert.Equal(t, "12080a016b10021a01ff", hex.EncodeToString(data))

	var decoded message.GetObjectResponse
	require.NoError(t, decoded.Unmarshal(data))

	item, ok := decoded.Value.Get()
	require.True(t, ok)
	assert.Equal(t, kv.KeyValue{Key: "k", Version: 2, Value: []byte{0xff}}, item)
}

func TestGetObjectResponse_MissingValue(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		data []byte
	}{
		{"empty body", []byte{}},
		{"unknown field only", []byte{0x08, 0x01}},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			t.Parallel()

			var decoded message.GetObjectResponse
			require.NoError(t, decoded.Unmarshal(test.data))
			assert.False(t, decoded.Value.IsSome())
		})
	}
}

func TestPutObjectRequest_RoundTrip(t *testing.T) {
	t.Parallel()

	req := message.PutObjectRequest{
		StoreID:       "store",
		GlobalVersion: option.Some[int64](7),
		TransactionItems: []kv.KeyValue{
			{Key: "a", Version: 1, Value: []byte("1")},
			{Key: "b", Version: 0, Value: []byte("2")},
		},
		DeleteItems: []kv.KeyValue{
			{Key: "c", Version: 4, Value: nil},
		},
	}

	data, err := req.Marshal()
	require.NoError(t, err)

	var decoded message.PutObjectRequest
	require.NoError(t, decoded.Unmarshal(data))
	assert.Equal(t, req, decoded)
}

func TestPutObjectRequest_NegativeVersion(t *testing.T) {
	t.Parallel()

	req := message.PutObjectRequest{
		StoreID:          "store",
		GlobalVersion:    option.None[int64](),
		TransactionItems: []kv.KeyValue{{Key: "a", Version: -1, Value: []byte("1")}},
		DeleteItems:      nil,
	}

	data, err := req.Marshal()
	require.NoError(t, err)

	var decoded message.PutObjectRequest
	require.NoError(t, decoded.Unmarshal(data))
	assert.Equal(t, int64(-1), decoded.TransactionItems[0].Version)
	assert.False(t, decoded.GlobalVersion.IsSome())
}

func TestDeleteObjectRequest_RoundTrip(t *testing.T) {
	t.Parallel()

	req := message.DeleteObjectRequest{
		StoreID:  "store",
		KeyValue: option.Some(kv.KeyValue{Key: "k", Version: 3, Value: nil}),
	}

	data, err := req.Marshal()
	require.NoError(t, err)

	var decoded message.DeleteObjectRequest
	require.NoError(t, decoded.Unmarshal(data))
	assert.Equal(t, req, decoded)
}

func TestListKeyVersions_RoundTrip(t *testing.T) {
	t.Parallel()

	req := message.ListKeyVersionsRequest{
		StoreID:   "store",
		KeyPrefix: option.Some("pre"),
		PageSize:  option.Some[int32](10),
		PageToken: option.Some("token"),
	}

	data, err := req.Marshal()
	require.NoError(t, err)

	var decodedReq message.ListKeyVersionsRequest
	require.NoError(t, decodedReq.Unmarshal(data))
	assert.Equal(t, req, decodedReq)

	resp := message.ListKeyVersionsResponse{
		KeyVersions: []kv.KeyValue{
			{Key: "pre1", Version: 1, Value: nil},
			{Key: "pre2", Version: 5, Value: nil},
		},
		NextPageToken: option.Some(""),
		GlobalVersion: option.Some[int64](9),
	}

	data, err = resp.Marshal()
	require.NoError(t, err)

	var decodedResp message.ListKeyVersionsResponse
	require.NoError(t, decodedResp.Unmarshal(data))
	assert.Equal(t, resp, decodedResp)
	assert.False(t, decodedResp.HasNextPage())
}

func TestListKeyVersionsResponse_HasNextPage(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		token option.Generic[string]
		next  bool
	}{
		{"absent", option.None[string](), false},
		{"empty", option.Some(""), false},
		{"set", option.Some("abc"), true},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			t.Parallel()

			resp := message.ListKeyVersionsResponse{
				KeyVersions:   nil,
				NextPageToken: test.token,
				GlobalVersion: option.None[int64](),
			}
			assert.Equal(t, test.next, resp.HasNextPage())
		})
	}
}

func TestEmptyResponses(t *testing.T) {
	t.Parallel()

	var put message.PutObjectResponse
	require.NoError(t, put.Unmarshal(nil))
	require.NoError(t, put.Unmarshal([]byte{0x08, 0x01}))

	var del message.DeleteObjectResponse
	require.NoError(t, del.Unmarshal(nil))
}

func TestErrorResponse_RoundTrip(t *testing.T) {
	t.Parallel()

	resp := message.ErrorResponse{ErrorCode: message.ErrorCodeConflict, Message: "version mismatch"}

	data, err := resp.Marshal()
	require.NoError(t, err)

	var decoded message.ErrorResponse
	require.NoError(t, decoded.Unmarshal(data))
	assert.Equal(t, resp, decoded)
	assert.Equal(t, "CONFLICT_EXCEPTION", decoded.ErrorCode.String())
	assert.Equal(t, "ErrorCode(42)", message.ErrorCode(42).String())
}

func TestUnmarshal_Malformed(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		msg  interface{ Unmarshal(data []byte) error }
		data []byte
	}{
		{"truncated tag", &message.GetObjectRequest{}, []byte{0x80}},
		{"truncated length", &message.GetObjectResponse{}, []byte{0x12, 0x05, 0x0a}},
		{"bad nested", &message.GetObjectResponse{}, []byte{0x12, 0x01, 0x80}},
		{"bad nested item", &message.PutObjectRequest{}, []byte{0x1a, 0x02, 0x0a, 0x05}},
		{"truncated varint", &message.ListKeyVersionsResponse{}, []byte{0x18, 0xff}},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			t.Parallel()

			err := test.msg.Unmarshal(test.data)
			require.ErrorIs(t, err, message.ErrMalformed)

			var decodingErr message.DecodingError
			require.ErrorAs(t, err, &decodingErr)
		})
	}
}
