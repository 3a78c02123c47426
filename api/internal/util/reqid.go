package util

import (
	"context"
	"strings"

	"github.com/google/uuid"
)

const RequestIDHeader = "X-Request-ID"

type ctxKey struct{}

// NewRequestID keeps a sane inbound id and mints a fresh uuid otherwise.
func NewRequestID(inbound string) string {
	inbound = strings.TrimSpace(inbound)
	if inbound != "" && len(inbound) <= 128 && !strings.ContainsAny(inbound, "\r\n") {
		return inbound
	}
	return uuid.NewString()
}

func WithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, ctxKey{}, id)
}

// RequestID returns "-" when the context carries no id, so log lines stay aligned.
func RequestID(ctx context.Context) string {
	if id, ok := ctx.Value(ctxKey{}).(string); ok && id != "" {
		return id
	}
	return "-"
}
