package sessionx

import (
	"context"
	"net/http"
)

// Resolver turns an inbound request (or its context) into a Session, or nil
// for anonymous. It runs on every request, so it performs no I/O: the
// token's cached payload is the answer unless the caller explicitly opts
// into a store lookup with ResolveFresh.
type Resolver struct {
	Codec *Codec
}

// Resolve extracts the session cookie from r, verifies it, and returns the
// Session. Missing, malformed, tampered, and expired tokens all yield nil:
// anonymous is a normal state, not an error, and the distinction between
// "expired" and "forged" is deliberately not surfaced to callers.
func (rv *Resolver) Resolve(r *http.Request) *Session {
	token, ok := Read(r)
	if !ok {
		return nil
	}
	return rv.fromToken(token)
}

// ResolveContext is Resolve for call sites holding a context instead of the
// request, e.g. handlers re-checking authorization after the edge layer.
// Behaves identically to Resolve for the same underlying request.
func (rv *Resolver) ResolveContext(ctx context.Context) *Session {
	token, ok := ReadContext(ctx)
	if !ok {
		return nil
	}
	return rv.fromToken(token)
}

func (rv *Resolver) fromToken(token string) *Session {
	s, err := rv.Codec.Verify(token)
	if err != nil {
		return nil
	}
	return &s
}

// UserRecord is the authoritative user row a freshness lookup returns.
type UserRecord struct {
	ID        string
	Email     string
	Name      string
	AvatarURL string
	Role      Role
}

// UserSource is the narrow store interface a freshness lookup needs.
type UserSource interface {
	FindUserByID(ctx context.Context, id string) (UserRecord, error)
}

// ResolveFresh resolves the cached session and then re-reads the user's
// authoritative record, overriding the token's cached fields with current
// values. Use it when a handler cares about role changes made inside the
// token's validity window; plain ResolveContext is the right default.
//
// The lookup is an enhancement, not a requirement: if it fails the cached
// session is returned unchanged rather than logging the user out.
func (rv *Resolver) ResolveFresh(ctx context.Context, src UserSource) *Session {
	cached := rv.ResolveContext(ctx)
	if cached == nil {
		return nil
	}

	rec, err := src.FindUserByID(ctx, cached.UserID)
	if err != nil {
		return cached
	}

	return &Session{
		UserID:    rec.ID,
		Email:     rec.Email,
		Name:      rec.Name,
		AvatarURL: rec.AvatarURL,
		Role:      rec.Role,
	}
}
