package obs

import (
	"context"
	"log"
	"time"
)

type ctxKey string

// RequestIDKey carries the per-request correlation id through context.
const RequestIDKey ctxKey = "req_id"

// WithRequestID attaches a correlation id to the context.
func WithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, RequestIDKey, id)
}

// Time logs the duration of a named operation when the returned func runs.
// Usage: defer obs.Time(ctx, "store.ListVendors")(&err)
func Time(ctx context.Context, name string) func(errp *error) {
	start := time.Now()

	reqID, _ := ctx.Value(RequestIDKey).(string)

	return func(errp *error) {
		dur := time.Since(start)

		if errp != nil && *errp != nil {
			log.Printf("req_id=%s op=%s dur=%dms err=%v", reqID, name, dur.Milliseconds(), *errp)
			return
		}
		log.Printf("req_id=%s op=%s dur=%dms", reqID, name, dur.Milliseconds())
	}
}
