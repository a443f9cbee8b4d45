package web

import (
	"context"
	"net/http"
)

type contextKey string

const RequestIDKey contextKey = "request_id"

func AddValueToContext(r *http.Request, key contextKey, value any) *http.Request {
	ctx := context.WithValue(r.Context(), key, value)
	return r.WithContext(ctx)
}

func GetValueFromContext[T any](r *http.Request, key contextKey) (T, bool) {
	val, ok := r.Context().Value(key).(T)
	return val, ok
}
