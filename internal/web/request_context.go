package web

import "net/http"

// RequestID returns the id assigned to r by the request id middleware, or "".
func RequestID(r *http.Request) string {
	id, _ := GetValueFromContext[string](r, RequestIDKey)
	return id
}

func SetRequestID(r *http.Request, id string) *http.Request {
	return AddValueToContext(r, RequestIDKey, id)
}
