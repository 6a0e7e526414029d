package telemetry

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTracerBeforeSetupIsUsable(t *testing.T) {
	tr := Tracer("test")
	require.NotNil(t, tr)

	_, span := tr.Start(context.Background(), "op")
	defer span.End()
	assert.False(t, span.SpanContext().IsValid())
}

func TestNoopTracer(t *testing.T) {
	ctx, span := NoopTracer().Start(context.Background(), "op")
	defer span.End()
	assert.False(t, span.IsRecording())
	assert.NotNil(t, ctx)
}

func TestHostname(t *testing.T) {
	assert.NotEmpty(t, hostname())
}
