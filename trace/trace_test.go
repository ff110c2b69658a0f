package trace_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	"roastedin/trace"
)

func TestGenerateID(t *testing.T) {
	a := trace.GenerateID()
	b := trace.GenerateID()
	assert.NotEmpty(t, a)
	assert.NotEqual(t, a, b)
}

func TestSpanSequence(t *testing.T) {
	ctx := trace.WithRequestAndSpan(context.Background(), "req-1", 0)

	assert.Equal(t, "req-1", trace.RequestIDFromContext(ctx))
	assert.Equal(t, "0", trace.CurrentSpanID(ctx))

	reqID, span := trace.NextSpanID(ctx)
	assert.Equal(t, "req-1", reqID)
	assert.Equal(t, "1", span)

	_, span = trace.NextSpanID(ctx)
	assert.Equal(t, "2", span)
	assert.Equal(t, "2", trace.CurrentSpanID(ctx))
}

func TestSpanOutsideMiddleware(t *testing.T) {
	// 미들웨어를 거치지 않은 컨텍스트에서도 fallback 으로 동작해야 한다
	assert.Equal(t, "", trace.RequestIDFromContext(context.Background()))
	assert.Equal(t, "0", trace.CurrentSpanID(context.Background()))

	reqID, span := trace.NextSpanID(context.Background())
	assert.NotEmpty(t, reqID)
	assert.Equal(t, "1", span)
}
