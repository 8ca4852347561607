package prediction

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRequestID(t *testing.T) {
	ctx := WithRequestID(context.Background(), "req-7")
	assert.Equal(t, "req-7", RequestIDFromContext(ctx))

	assert.Empty(t, RequestIDFromContext(context.Background()))

	base := context.Background()
	assert.Equal(t, base, WithRequestID(base, ""))
}
