package config_test

import (
	"context"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	vss "github.com/tarantool/go-vss"
	"github.com/tarantool/go-vss/config"
	"github.com/tarantool/go-vss/header"
	vssTesting "github.com/tarantool/go-vss/internal/testing"
	"github.com/tarantool/go-vss/message"
	"github.com/tarantool/go-vss/transport"
)

const testKey = "0101010101010101010101010101010101010101010101010101010101010101"

func TestParse_Defaults(t *testing.T) {
	t.Parallel()

	cfg, err := config.Parse([]byte("base_url: http://vss.test\n"))
	require.NoError(t, err)

	expected := config.Default()
	expected.BaseURL = "http://vss.test"

	assert.Equal(t, expected, cfg)
	assert.Equal(t, 10*time.Second, cfg.Timeout)
	assert.Equal(t, int64(1<<30), cfg.MaxResponseSize)
	assert.Equal(t, 10, cfg.Capacity)
	assert.Equal(t, 10, cfg.Retry.MaxAttempts)
}

func TestParse_Full(t *testing.T) {
	t.Parallel()

	data := `
base_url: https://vss.example.com/vss
store_id: wallet
timeout: 3s
max_response_size: 1024
capacity: 4
headers:
  X-Api-Key: secret
retry:
  base_delay: 50ms
  max_attempts: 3
  max_total_delay: 1s
  max_jitter: 5ms
`

	cfg, err := config.Parse([]byte(data))
	require.NoError(t, err)

	assert.Equal(t, config.Config{
		BaseURL:         "https://vss.example.com/vss",
		StoreID:         "wallet",
		Timeout:         3 * time.Second,
		MaxResponseSize: 1024,
		Capacity:        4,
		Headers:         map[string]string{"X-Api-Key": "secret"},
		SigningKey:      "",
		Retry: config.Retry{
			BaseDelay:     50 * time.Millisecond,
			MaxAttempts:   3,
			MaxTotalDelay: time.Second,
			MaxJitter:     5 * time.Millisecond,
		},
	}, cfg)
}

func TestParse_Invalid(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		data string
	}{
		{"no base url", "store_id: wallet\n"},
		{"negative timeout", "base_url: x\ntimeout: -1s\n"},
		{"zero capacity", "base_url: x\ncapacity: 0\n"},
		{"zero max response size", "base_url: x\nmax_response_size: 0\n"},
		{"negative max response size", "base_url: x\nmax_response_size: -1\n"},
		{"zero attempts", "base_url: x\nretry:\n  max_attempts: 0\n"},
		{"negative jitter", "base_url: x\nretry:\n  max_jitter: -1ms\n"},
		{"short key", "base_url: x\nsigning_key: abcd\n"},
		{"non-hex key", "base_url: x\nsigning_key: " + strings.Repeat("zz", 32) + "\n"},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			t.Parallel()

			_, err := config.Parse([]byte(test.data))
			require.ErrorIs(t, err, config.ErrInvalidConfig)
		})
	}

	_, err := config.Parse([]byte("base_url: [unterminated"))
	require.Error(t, err)
	require.NotErrorIs(t, err, config.ErrInvalidConfig)
}

func TestLoad(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "vss.yaml")
	require.NoError(t, os.WriteFile(path, []byte("base_url: http://vss.test\nstore_id: s\n"), 0o600))

	cfg, err := config.Load(path)
	require.NoError(t, err)
	assert.Equal(t, "s", cfg.StoreID)

	_, err = config.Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.ErrorIs(t, err, os.ErrNotExist)
}

func TestConfig_HeaderProvider(t *testing.T) {
	t.Parallel()

	cfg := config.Default()
	cfg.BaseURL = "http://vss.test"
	cfg.Headers = map[string]string{"X-Api-Key": "secret"}

	provider, err := cfg.HeaderProvider()
	require.NoError(t, err)
	assert.IsType(t, header.Static{}, provider)

	cfg.SigningKey = testKey

	provider, err = cfg.HeaderProvider()
	require.NoError(t, err)

	headers, err := provider.Headers(context.Background(), nil)
	require.NoError(t, err)
	assert.Equal(t, "secret", headers["X-Api-Key"])

	token, err := header.ParseToken(headers[header.AuthorizationHeader])
	require.NoError(t, err)
	require.NoError(t, token.Verify())
}

func TestConfig_NewClient(t *testing.T) {
	t.Parallel()

	cfg := config.Default()
	cfg.BaseURL = "http://vss.test/"
	cfg.Timeout = 2 * time.Second
	cfg.MaxResponseSize = 512
	cfg.Headers = map[string]string{"X-Api-Key": "secret"}

	mockTransport := vssTesting.NewMockTransport(t, vssTesting.Response(http.StatusOK, nil))

	client, err := cfg.NewClient(vss.WithTransport(mockTransport))
	require.NoError(t, err)
	assert.Equal(t, "http://vss.test", client.BaseURL())

	_, err = client.DeleteObject(context.Background(), &message.DeleteObjectRequest{StoreID: "s"}) //nolint:exhaustruct
	require.NoError(t, err)

	require.Len(t, mockTransport.Requests, 1)
	assert.Equal(t, transport.Request{
		URL:             "http://vss.test/deleteObject",
		Header:          map[string]string{"Content-Type": "application/octet-stream", "X-Api-Key": "secret"},
		Body:            mockTransport.Requests[0].Body,
		Timeout:         2 * time.Second,
		MaxResponseSize: 512,
		Replayable:      true,
	}, mockTransport.Requests[0])

	_, err = config.Config{}.NewClient() //nolint:exhaustruct
	require.ErrorIs(t, err, config.ErrInvalidConfig)
}
