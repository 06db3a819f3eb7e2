package modeladapter_test

import (
	"bytes"
	"context"
	"errors"
	"testing"
	"time"

	"github.com/germanamz/pagecraft/pkg/chats/chat"
	"github.com/germanamz/pagecraft/pkg/chats/message"
	"github.com/germanamz/pagecraft/pkg/modeladapter"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
)

// --- test helpers ---

func stubSender(reply string, err error) modeladapter.Sender {
	return modeladapter.SenderFunc(func(context.Context, *chat.Chat) (string, error) {
		return reply, err
	})
}

func panicSender() modeladapter.Sender {
	return modeladapter.SenderFunc(func(context.Context, *chat.Chat) (string, error) {
		panic("something went wrong")
	})
}

func slowSender(delay time.Duration) modeladapter.Sender {
	return modeladapter.SenderFunc(func(ctx context.Context, _ *chat.Chat) (string, error) {
		select {
		case <-time.After(delay):
			return "done", nil
		case <-ctx.Done():
			return "", ctx.Err()
		}
	})
}

func hello() *chat.Chat {
	return chat.New(message.User("hello"))
}

// --- Timeout tests ---

func TestTimeout(t *testing.T) {
	wrapped := modeladapter.Timeout(time.Second)(stubSender("done", nil))

	got, err := wrapped.Send(context.Background(), hello())
	require.NoError(t, err)
	assert.Equal(t, "done", got)
}

func TestTimeoutExpires(t *testing.T) {
	wrapped := modeladapter.Timeout(50 * time.Millisecond)(slowSender(2 * time.Second))

	_, err := wrapped.Send(context.Background(), hello())
	require.Error(t, err)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestTimeoutZeroIsNoop(t *testing.T) {
	var deadline bool
	inner := modeladapter.SenderFunc(func(ctx context.Context, _ *chat.Chat) (string, error) {
		_, deadline = ctx.Deadline()
		return "", nil
	})

	_, err := modeladapter.Timeout(0)(inner).Send(context.Background(), hello())
	require.NoError(t, err)
	assert.False(t, deadline)
}

// --- Recovery tests ---

func TestRecovery(t *testing.T) {
	got, err := modeladapter.Recovery()(stubSender("ok", nil)).Send(context.Background(), hello())

	require.NoError(t, err)
	assert.Equal(t, "ok", got)
}

func TestRecoveryCatchesPanic(t *testing.T) {
	got, err := modeladapter.Recovery()(panicSender()).Send(context.Background(), hello())

	require.Error(t, err)
	assert.Empty(t, got)
	assert.Contains(t, err.Error(), "adapter panicked")
	assert.Contains(t, err.Error(), "something went wrong")
}

// --- Logger tests ---

func TestLogger(t *testing.T) {
	var buf bytes.Buffer
	log := zerolog.New(&buf).With().Str("request_id", "r-1").Logger()

	_, err := modeladapter.Logger(log)(stubSender("ok", nil)).Send(context.Background(), hello())
	require.NoError(t, err)

	out := buf.String()
	assert.Contains(t, out, "adapter call started")
	assert.Contains(t, out, "adapter call finished")
	assert.Contains(t, out, `"request_id":"r-1"`)
	assert.Contains(t, out, `"duration"`)
}

func TestLoggerError(t *testing.T) {
	var buf bytes.Buffer

	_, err := modeladapter.Logger(zerolog.New(&buf))(stubSender("", errors.New("boom"))).Send(context.Background(), hello())
	require.Error(t, err)

	assert.Contains(t, buf.String(), "adapter call failed")
	assert.Contains(t, buf.String(), `"error":"boom"`)
}

// --- Tracing tests ---

func TestTracing(t *testing.T) {
	sr := tracetest.NewSpanRecorder()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(sr))
	tracer := tp.Tracer("test")

	_, err := modeladapter.Tracing(tracer, attribute.String("provider", "openai"))(stubSender("ok", nil)).
		Send(context.Background(), hello())
	require.NoError(t, err)

	_, err = modeladapter.Tracing(tracer)(stubSender("", errors.New("boom"))).Send(context.Background(), hello())
	require.Error(t, err)

	spans := sr.Ended()
	require.Len(t, spans, 2)

	assert.Equal(t, "adapter.Send", spans[0].Name())
	assert.Contains(t, spans[0].Attributes(), attribute.String("provider", "openai"))
	assert.Equal(t, codes.Unset, spans[0].Status().Code)

	assert.Equal(t, codes.Error, spans[1].Status().Code)
	assert.Equal(t, "boom", spans[1].Status().Description)
}

// --- Chain tests ---

func TestChainOrder(t *testing.T) {
	var order []string
	mark := func(name string) modeladapter.Middleware {
		return func(next modeladapter.Sender) modeladapter.Sender {
			return modeladapter.SenderFunc(func(ctx context.Context, c *chat.Chat) (string, error) {
				order = append(order, name)
				return next.Send(ctx, c)
			})
		}
	}

	_, err := modeladapter.Chain(stubSender("ok", nil), mark("outer"), mark("inner")).Send(context.Background(), hello())
	require.NoError(t, err)
	assert.Equal(t, []string{"outer", "inner"}, order)
}

func TestChainRecoveryInsideTracing(t *testing.T) {
	sr := tracetest.NewSpanRecorder()
	tracer := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(sr)).Tracer("test")

	_, err := modeladapter.Chain(panicSender(), modeladapter.Tracing(tracer), modeladapter.Recovery()).
		Send(context.Background(), hello())
	require.Error(t, err)

	require.Len(t, sr.Ended(), 1)
	assert.Equal(t, codes.Error, sr.Ended()[0].Status().Code)
}
