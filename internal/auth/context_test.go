package auth

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRequestIDRoundTrip(t *testing.T) {
	ctx := WithRequestID(context.Background(), "req-123")

	assert.Equal(t, "req-123", GetRequestID(ctx))
}

func TestRequestIDMintedWhenAbsent(t *testing.T) {
	first := GetRequestID(context.Background())
	second := GetRequestID(context.Background())

	assert.NotEmpty(t, first)
	assert.NotEmpty(t, second)
	// Fresh ids, not a shared fallback value.
	assert.NotEqual(t, first, second)
}

func TestRequestIDEmptyValueTreatedAsAbsent(t *testing.T) {
	ctx := WithRequestID(context.Background(), "")

	assert.NotEmpty(t, GetRequestID(ctx))
}
