package auth

import (
	"context"

	"github.com/google/uuid"
)

type contextKey string

const requestIDKey contextKey = "request_id"

// WithRequestID attaches the id a serving edge assigned to this request;
// operator identity travels as an explicit argument instead.
func WithRequestID(ctx context.Context, requestID string) context.Context {
	return context.WithValue(ctx, requestIDKey, requestID)
}

// GetRequestID returns the request id carried by the context, minting a
// fresh one when absent so log lines always correlate on something.
func GetRequestID(ctx context.Context) string {
	if val, ok := ctx.Value(requestIDKey).(string); ok && val != "" {
		return val
	}
	return uuid.New().String()
}
