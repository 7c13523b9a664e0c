package sessionx

import (
	"context"
	"net/http"
)

type requestKey struct{}

// WithRequest stashes the inbound request into ctx so code that only holds
// a context (handlers, services) can still reach the session cookie.
// Install via Middleware; ReadContext routes back through the same Read as
// the request-based entry point, so the two can never disagree.
func WithRequest(ctx context.Context, r *http.Request) context.Context {
	return context.WithValue(ctx, requestKey{}, r)
}

// ReadContext is Read for call sites that have a context instead of the
// request. ok is false when no request is attached or the cookie is absent.
func ReadContext(ctx context.Context) (token string, ok bool) {
	r, rok := ctx.Value(requestKey{}).(*http.Request)
	if !rok {
		return "", false
	}
	return Read(r)
}

// Middleware attaches each request to its own context for ReadContext and
// Resolver.ResolveContext. It belongs near the top of the middleware chain.
func Middleware() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			r = r.WithContext(WithRequest(r.Context(), r))
			next.ServeHTTP(w, r)
		})
	}
}
