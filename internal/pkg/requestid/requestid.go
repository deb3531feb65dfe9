// Package requestid assigns every inbound HTTP request a UUID and carries it
// through the context so log records and downstream calls can be correlated.
package requestid

import (
	"context"
	"net/http"

	"github.com/google/uuid"
)

// Header is the HTTP header the request ID travels in between services.
const Header = "X-Request-Id"

// ctxKey is an unexported type for context keys in this package. Using a
// custom type prevents collisions with keys from other packages that might
// use the same underlying string value.
type ctxKey string

const requestIDKey ctxKey = "request_id"

// Middleware attaches a request ID to the context. An ID already present on
// the inbound request (set by an upstream service) is reused so the two
// services log the same value for one logical operation.
func Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get(Header)
		if id == "" {
			id = uuid.NewString()
		}
		ctx := context.WithValue(r.Context(), requestIDKey, id)
		w.Header().Set(Header, id)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// FromContext returns the request ID stored in ctx, or "" when absent.
func FromContext(ctx context.Context) string {
	// Comma-ok idiom to safely extract the typed context value.
	id, _ := ctx.Value(requestIDKey).(string)
	return id
}

// NewContext returns ctx with the given request ID attached. Used by outbound
// clients and tests that do not go through the HTTP middleware.
func NewContext(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, requestIDKey, id)
}
