package header_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tarantool/go-vss/header"
)

func TestStatic_Headers(t *testing.T) {
	t.Parallel()

	source := map[string]string{"X-Api-Key": "secret", "X-Client": "go"}
	provider := header.NewStatic(source)

	first, err := provider.Headers(context.Background(), []byte("request one"))
	require.NoError(t, err)

	second, err := provider.Headers(context.Background(), []byte("a completely different request"))
	require.NoError(t, err)

	assert.Equal(t, source, first)
	assert.Equal(t, first, second)
}

func TestStatic_Isolation(t *testing.T) {
	t.Parallel()

	source := map[string]string{"X-Api-Key": "secret"}
	provider := header.NewStatic(source)

	source["X-Api-Key"] = "changed"

	got, err := provider.Headers(context.Background(), nil)
	require.NoError(t, err)
	assert.Equal(t, "secret", got["X-Api-Key"])

	got["X-Api-Key"] = "mutated"

	again, err := provider.Headers(context.Background(), nil)
	require.NoError(t, err)
	assert.Equal(t, "secret", again["X-Api-Key"])
}

func TestStatic_Empty(t *testing.T) {
	t.Parallel()

	got, err := header.NewStatic(nil).Headers(context.Background(), nil)
	require.NoError(t, err)
	assert.Empty(t, got)
}
