// Package routex classifies request paths into authorization tiers and
// turns a (session, tier) pair into a single allow/redirect/reject verdict.
// The verdict logic lives here exactly once: the edge middleware and the
// per-handler guards both call it, so the two layers cannot drift apart.
package routex

import (
	"fmt"
	"regexp"
	"strings"
)

// Class is the authorization tier a path belongs to.
type Class int

const (
	// Public is the default tier: anyone may request the path.
	Public Class = iota

	// PublicAPI paths are always allowed regardless of session.
	PublicAPI

	// AdminPage and AdminAPI require an ADMIN session.
	AdminPage
	AdminAPI

	// AnonOnly paths (sign-in, sign-up) are for anonymous visitors;
	// signed-in users are redirected away.
	AnonOnly

	// AuthPage and AuthAPI require any valid session.
	AuthPage
	AuthAPI
)

func (c Class) String() string {
	switch c {
	case Public:
		return "public"
	case PublicAPI:
		return "public_api"
	case AdminPage:
		return "admin_page"
	case AdminAPI:
		return "admin_api"
	case AnonOnly:
		return "anon_only"
	case AuthPage:
		return "auth_page"
	case AuthAPI:
		return "auth_api"
	default:
		return fmt.Sprintf("class(%d)", int(c))
	}
}

// Config is the immutable route table. Build it once at startup and inject
// it; the classifier never mutates or re-reads it.
type Config struct {
	// AdminRoutes are page and API patterns requiring an ADMIN session.
	AdminRoutes []string

	// PublicAPIRoutes are API patterns that never require a session.
	PublicAPIRoutes []string

	// AuthPrefixes are page prefixes for anonymous-only auth pages.
	AuthPrefixes []string

	// ProfilePath is the single authenticated-profile page, matched exactly.
	ProfilePath string

	// UserAPIPrefix is the authenticated-user API prefix.
	UserAPIPrefix string
}

// Classifier matches paths against the compiled route table.
type Classifier struct {
	cfg       Config
	admin     []*regexp.Regexp
	publicAPI []*regexp.Regexp
}

// NewClassifier compiles every pattern in cfg once. A pattern that fails to
// compile is a programming error in the route table and aborts startup.
func NewClassifier(cfg Config) (*Classifier, error) {
	admin, err := compileAll(cfg.AdminRoutes)
	if err != nil {
		return nil, err
	}
	publicAPI, err := compileAll(cfg.PublicAPIRoutes)
	if err != nil {
		return nil, err
	}

	return &Classifier{cfg: cfg, admin: admin, publicAPI: publicAPI}, nil
}

// Classify returns the tier for path. It is total and deterministic: every
// path maps to exactly one Class, applying the tiers in precedence order
// (admin, public API, anonymous-only, profile, user API, default public).
// A path matching no explicit pattern is Public, which means any new
// protected route must be added to the table or it silently becomes public.
func (c *Classifier) Classify(path string) Class {
	if matchAny(c.admin, path) {
		if strings.HasPrefix(path, "/api/") {
			return AdminAPI
		}
		return AdminPage
	}

	if matchAny(c.publicAPI, path) {
		return PublicAPI
	}

	for _, prefix := range c.cfg.AuthPrefixes {
		if underPrefix(path, prefix) {
			return AnonOnly
		}
	}

	if c.cfg.ProfilePath != "" && path == c.cfg.ProfilePath {
		return AuthPage
	}

	if c.cfg.UserAPIPrefix != "" && underPrefix(path, c.cfg.UserAPIPrefix) {
		return AuthAPI
	}

	return Public
}

// CompilePattern converts a route pattern into an anchored regexp. Literal
// segments match themselves; a [param] segment matches exactly one non-slash
// segment; the whole pattern also matches any deeper sub-path, so a pattern
// registered for a collection endpoint covers its children too.
func CompilePattern(pattern string) (*regexp.Regexp, error) {
	trimmed := strings.Trim(pattern, "/")
	if trimmed == "" {
		return regexp.Compile(`^/$`)
	}

	segments := strings.Split(trimmed, "/")
	parts := make([]string, len(segments))
	for i, seg := range segments {
		if strings.HasPrefix(seg, "[") && strings.HasSuffix(seg, "]") && len(seg) > 2 {
			parts[i] = `[^/]+`
			continue
		}
		parts[i] = regexp.QuoteMeta(seg)
	}

	expr := `^/` + strings.Join(parts, `/`) + `(/.*)?$`
	re, err := regexp.Compile(expr)
	if err != nil {
		return nil, fmt.Errorf("routex: compile pattern %q: %w", pattern, err)
	}
	return re, nil
}

func compileAll(patterns []string) ([]*regexp.Regexp, error) {
	res := make([]*regexp.Regexp, 0, len(patterns))
	for _, p := range patterns {
		re, err := CompilePattern(p)
		if err != nil {
			return nil, err
		}
		res = append(res, re)
	}
	return res, nil
}

func matchAny(res []*regexp.Regexp, path string) bool {
	for _, re := range res {
		if re.MatchString(path) {
			return true
		}
	}
	return false
}

// underPrefix reports whether path equals prefix or sits beneath it at a
// segment boundary, so "/sign-in" covers "/sign-in/extra" but not
// "/sign-integration".
func underPrefix(path, prefix string) bool {
	return path == prefix || strings.HasPrefix(path, prefix+"/")
}
