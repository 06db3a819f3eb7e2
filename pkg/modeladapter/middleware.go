package modeladapter

import (
	"context"
	"fmt"
	"time"

	"github.com/germanamz/pagecraft/pkg/chats/chat"
	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// Middleware wraps a Sender, returning a new Sender with added behaviour.
type Middleware func(next Sender) Sender

// Chain applies mws to s so that the first middleware is the outermost.
func Chain(s Sender, mws ...Middleware) Sender {
	for i := len(mws) - 1; i >= 0; i-- {
		s = mws[i](s)
	}
	return s
}

// --- Timeout middleware ---

// Timeout returns a Middleware that bounds each call with a deadline. A
// non-positive d leaves the context untouched.
func Timeout(d time.Duration) Middleware {
	return func(next Sender) Sender {
		if d <= 0 {
			return next
		}

		return SenderFunc(func(ctx context.Context, c *chat.Chat) (string, error) {
			ctx, cancel := context.WithTimeout(ctx, d)
			defer cancel()

			return next.Send(ctx, c)
		})
	}
}

// --- Recovery middleware ---

// Recovery returns a Middleware that catches panics and converts them to errors.
func Recovery() Middleware {
	return func(next Sender) Sender {
		return SenderFunc(func(ctx context.Context, c *chat.Chat) (reply string, err error) {
			defer func() {
				if r := recover(); r != nil {
					err = fmt.Errorf("adapter panicked: %v", r)
				}
			}()

			return next.Send(ctx, c)
		})
	}
}

// --- Logger middleware ---

// Logger returns a Middleware that logs call start, duration and error.
func Logger(log zerolog.Logger) Middleware {
	return func(next Sender) Sender {
		return SenderFunc(func(ctx context.Context, c *chat.Chat) (string, error) {
			log.Debug().Int("messages", c.Len()).Msg("adapter call started")

			start := time.Now()

			reply, err := next.Send(ctx, c)

			duration := time.Since(start)

			if err != nil {
				log.Warn().Err(err).Dur("duration", duration).Msg("adapter call failed")
			} else {
				log.Debug().Dur("duration", duration).Int("reply_bytes", len(reply)).Msg("adapter call finished")
			}

			return reply, err
		})
	}
}

// --- Tracing middleware ---

// Tracing returns a Middleware that records each call as an "adapter.Send"
// span carrying attrs. Failed calls mark the span as errored.
func Tracing(tracer trace.Tracer, attrs ...attribute.KeyValue) Middleware {
	return func(next Sender) Sender {
		return SenderFunc(func(ctx context.Context, c *chat.Chat) (string, error) {
			ctx, span := tracer.Start(ctx, "adapter.Send", trace.WithAttributes(attrs...))
			defer span.End()

			reply, err := next.Send(ctx, c)
			if err != nil {
				span.RecordError(err)
				span.SetStatus(codes.Error, err.Error())
			}

			return reply, err
		})
	}
}
