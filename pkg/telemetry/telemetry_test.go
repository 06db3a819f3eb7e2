package telemetry

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
)

func TestSetup_EmptyEndpointIsNoop(t *testing.T) {
	tp, shutdown, err := Setup(context.Background(), "")
	require.NoError(t, err)

	_, isSDK := tp.(*sdktrace.TracerProvider)
	assert.False(t, isSDK)
	assert.NoError(t, shutdown(context.Background()))
}

func TestSetup_Endpoint(t *testing.T) {
	tp, shutdown, err := Setup(context.Background(), "http://localhost:4318")
	require.NoError(t, err)

	_, isSDK := tp.(*sdktrace.TracerProvider)
	assert.True(t, isSDK)

	_, span := tp.Tracer("test").Start(context.Background(), "noop")
	span.End()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_ = shutdown(ctx)
}

func TestHostPort(t *testing.T) {
	assert.Equal(t, "localhost:4318", hostPort("http://localhost:4318/"))
	assert.Equal(t, "collector:4318", hostPort("https://collector:4318"))
	assert.Equal(t, "collector:4318", hostPort("collector:4318"))
}
