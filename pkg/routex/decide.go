package routex

import (
	"net/http"
	"net/url"

	"github.com/goodluckurom/portfolio/pkg/sessionx"
)

// Well-known destinations used by redirect verdicts.
const (
	SignInPath    = "/sign-in"
	HomePath      = "/"
	AdminHomePath = "/admin"

	// CallbackParam carries the originally requested path through the
	// sign-in flow so the user lands back where they started.
	CallbackParam = "callbackUrl"
)

// Outcome is the kind of verdict Decide reaches.
type Outcome int

const (
	Allow Outcome = iota
	Redirect
	Reject
)

// Verdict is the result of an authorization decision. Location is set for
// Redirect, Status for Reject.
type Verdict struct {
	Outcome  Outcome
	Location string
	Status   int
}

func allow() Verdict                { return Verdict{Outcome: Allow} }
func redirectTo(url string) Verdict { return Verdict{Outcome: Redirect, Location: url} }
func reject(status int) Verdict     { return Verdict{Outcome: Reject, Status: status} }

// Decide combines a resolved session (nil for anonymous) with a path's
// classification and returns the verdict. It is a pure function: the edge
// middleware and the per-handler guards both call it per request and must
// reach the identical verdict for identical input.
//
// Admin API rejections use 401 for both "not logged in" and "not admin" so
// probing clients cannot tell roles apart from the response.
func Decide(s *sessionx.Session, class Class, path string) Verdict {
	switch class {
	case AdminPage:
		if s == nil {
			return redirectTo(SignInRedirectURL(path))
		}
		if !s.IsAdmin() {
			return redirectTo(HomePath)
		}
		return allow()

	case AdminAPI:
		if !s.IsAdmin() {
			return reject(http.StatusUnauthorized)
		}
		return allow()

	case AnonOnly:
		if s == nil {
			return allow()
		}
		if s.IsAdmin() {
			return redirectTo(AdminHomePath)
		}
		return redirectTo(HomePath)

	case AuthPage:
		if s == nil {
			return redirectTo(SignInRedirectURL(path))
		}
		return allow()

	case AuthAPI:
		if s == nil {
			return reject(http.StatusUnauthorized)
		}
		return allow()

	default: // Public, PublicAPI
		return allow()
	}
}

// SignInRedirectURL builds the sign-in URL carrying the original path as
// the callback, e.g. "/sign-in?callbackUrl=%2Fadmin%2Fblogs".
func SignInRedirectURL(path string) string {
	return SignInPath + "?" + CallbackParam + "=" + url.QueryEscape(path)
}
