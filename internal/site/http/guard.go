package http

import (
	"net/http"
	"strings"

	"github.com/goodluckurom/portfolio/pkg/httpx"
	"github.com/goodluckurom/portfolio/pkg/routex"
	"github.com/goodluckurom/portfolio/pkg/sessionx"
	"github.com/goodluckurom/portfolio/pkg/slogx"
)

// applyVerdict writes a redirect or rejection and reports whether the
// request may proceed. The edge guard and every handler-level check go
// through this one function, so the two layers render identical responses
// for identical verdicts.
func applyVerdict(w http.ResponseWriter, r *http.Request, v routex.Verdict) bool {
	switch v.Outcome {
	case routex.Redirect:
		http.Redirect(w, r, v.Location, http.StatusSeeOther)
		return false
	case routex.Reject:
		// Minimal body: no role or identity hints for probing clients.
		httpx.WriteError(w, v.Status, "unauthorized")
		return false
	default:
		return true
	}
}

// guard is the edge layer: it intercepts requests under the configured
// prefixes and short-circuits denied ones before any handler runs. Paths
// outside the prefix list bypass it entirely and rely on the handler-level
// checks below, which is why handlers never trust the edge layer alone.
func (rt *Router) guard() httpx.Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			path := r.URL.Path
			if !underAnyPrefix(path, rt.guardPrefixes) {
				next.ServeHTTP(w, r)
				return
			}

			sess := rt.resolver.Resolve(r)
			class := rt.classifier.Classify(path)
			verdict := routex.Decide(sess, class, path)

			if !applyVerdict(w, r, verdict) {
				slogx.FromContext(r.Context()).Info("edge guard denied request",
					"path", path,
					"class", class.String(),
					"authenticated", sess != nil,
				)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

func underAnyPrefix(path string, prefixes []string) bool {
	for _, p := range prefixes {
		if path == p || strings.HasPrefix(path, p+"/") {
			return true
		}
	}
	return false
}

// requireAdmin re-resolves the session from the ambient request context and
// applies the same decision function the edge layer used. If the route was
// never added to the classifier table it fails closed, treating the path as
// admin-tier anyway: forgetting a table entry must not open a hole here.
// Returns nil after writing the response when the request is denied.
func (rt *Router) requireAdmin(w http.ResponseWriter, r *http.Request) *sessionx.Session {
	class := rt.classifier.Classify(r.URL.Path)
	if class != routex.AdminPage && class != routex.AdminAPI {
		class = fallbackClass(r.URL.Path, routex.AdminPage, routex.AdminAPI)
	}

	sess := rt.resolver.ResolveContext(r.Context())
	if !applyVerdict(w, r, routex.Decide(sess, class, r.URL.Path)) {
		return nil
	}
	return sess
}

// requireUser is requireAdmin's any-valid-session counterpart.
func (rt *Router) requireUser(w http.ResponseWriter, r *http.Request) *sessionx.Session {
	class := rt.classifier.Classify(r.URL.Path)
	if class != routex.AuthPage && class != routex.AuthAPI &&
		class != routex.AdminPage && class != routex.AdminAPI {
		class = fallbackClass(r.URL.Path, routex.AuthPage, routex.AuthAPI)
	}

	sess := rt.resolver.ResolveContext(r.Context())
	if !applyVerdict(w, r, routex.Decide(sess, class, r.URL.Path)) {
		return nil
	}
	return sess
}

// requireAnon guards the sign-in/sign-up surface: signed-in visitors are
// redirected to their home instead. Returns false when denied.
func (rt *Router) requireAnon(w http.ResponseWriter, r *http.Request) bool {
	sess := rt.resolver.ResolveContext(r.Context())
	return applyVerdict(w, r, routex.Decide(sess, routex.AnonOnly, r.URL.Path))
}

func fallbackClass(path string, page, api routex.Class) routex.Class {
	if strings.HasPrefix(path, "/api/") {
		return api
	}
	return page
}
