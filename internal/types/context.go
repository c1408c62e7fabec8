package types

import (
	"context"
)

// ContextKey is a type for the keys of values stored in the context
type ContextKey string

const (
	CtxRequestID ContextKey = "ctx_request_id"
	CtxUsername  ContextKey = "ctx_username"

	HeaderRequestID = "X-Request-ID"
	HeaderUsername  = "X-Username"
)

func GetRequestID(ctx context.Context) string {
	if requestID, ok := ctx.Value(CtxRequestID).(string); ok {
		return requestID
	}
	return ""
}

func GetUsername(ctx context.Context) string {
	if username, ok := ctx.Value(CtxUsername).(string); ok {
		return username
	}
	return ""
}
