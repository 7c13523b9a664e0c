package http

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/goodluckurom/portfolio/internal/site/service"
	"github.com/goodluckurom/portfolio/internal/site/store"
	"github.com/goodluckurom/portfolio/pkg/httpx"
	"github.com/goodluckurom/portfolio/pkg/routex"
	"github.com/goodluckurom/portfolio/pkg/sessionx"
	"github.com/goodluckurom/portfolio/pkg/slogx"
)

// DefaultRouteConfig is the site's route table. Any new protected route
// must be added here or it silently becomes public (the classifier default).
func DefaultRouteConfig() routex.Config {
	return routex.Config{
		AdminRoutes: []string{
			"/admin",
			"/admin/blogs",
			"/admin/blogs/[id]",
			"/admin/projects",
			"/admin/projects/[id]",
			"/api/admin/blogs",
			"/api/admin/blogs/[id]",
			"/api/admin/projects",
			"/api/admin/projects/[id]",
		},
		PublicAPIRoutes: []string{
			"/api/blogs",
			"/api/blogs/[slug]",
			"/api/projects",
			"/api/auth/sign-in",
			"/api/auth/sign-up",
		},
		AuthPrefixes:  []string{"/sign-in", "/sign-up"},
		ProfilePath:   "/profile",
		UserAPIPrefix: "/api/user",
	}
}

// DefaultGuardPrefixes is the edge interception surface. It is deliberately
// an explicit list rather than "everything": paths outside it skip the edge
// guard and are protected by handler-level checks only.
func DefaultGuardPrefixes() []string {
	return []string{
		"/admin",
		"/sign-in",
		"/sign-up",
		"/profile",
		"/api/admin",
		"/api/user",
	}
}

// Router holds shared dependencies for HTTP handlers.
type Router struct {
	Mux         *http.ServeMux
	middlewares []httpx.Middleware

	resolver      *sessionx.Resolver
	classifier    *routex.Classifier
	jar           sessionx.Jar
	guardPrefixes []string
	buildVersion  string
	startTime     time.Time
	logger        *slog.Logger

	store          store.Store
	AuthService    *service.AuthService
	UserService    *service.UserService
	BlogService    *service.BlogService
	ProjectService *service.ProjectService
}

func NewRouter(
	resolver *sessionx.Resolver,
	classifier *routex.Classifier,
	jar sessionx.Jar,
	buildVersion string,
	st store.Store,
	logger *slog.Logger,
) *Router {
	rt := &Router{
		Mux:           http.NewServeMux(),
		resolver:      resolver,
		classifier:    classifier,
		jar:           jar,
		guardPrefixes: DefaultGuardPrefixes(),
		buildVersion:  buildVersion,
		startTime:     time.Now(),
		store:         st,
		logger:        logger,
	}

	// Default middleware chain: request logging, then the ambient-request
	// context for ResolveContext, then the edge guard.
	rt.middlewares = []httpx.Middleware{
		slogx.HTTPMiddleware(rt.logger),
		sessionx.Middleware(),
		rt.guard(),
	}

	return rt
}

func (rt *Router) ApplyRoutes() {
	rt.registerPages()
	rt.registerAuth()
	rt.registerProfile()
	rt.registerPublicAPI()
	rt.registerAdmin()
	rt.registerSystem()
}

// ServeHTTP implements http.Handler for Router and applies the global middleware chain.
func (rt *Router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	httpx.Chain(rt.Mux, rt.middlewares...).ServeHTTP(w, req)
}

func (rt *Router) registerPages() {
	rt.Mux.Handle("GET /{$}", http.HandlerFunc(rt.handleHome))
	rt.Mux.Handle("GET /blogs/{slug}", http.HandlerFunc(rt.handleBlogPage))
}

func (rt *Router) registerAuth() {
	// Sign-in form: lenient on GET, strict on POST keyed by IP + email to
	// slow credential stuffing.
	rt.Mux.Handle("GET /sign-in", http.HandlerFunc(rt.handleSignInPage))
	rt.Mux.Handle("POST /sign-in",
		httpx.Chain(http.HandlerFunc(rt.handleSignInSubmit),
			httpx.RateLimitByIPAndFormField(httpx.StrictLimit, "email"),
		),
	)

	rt.Mux.Handle("GET /sign-up", http.HandlerFunc(rt.handleSignUpPage))
	rt.Mux.Handle("POST /sign-up",
		httpx.Chain(http.HandlerFunc(rt.handleSignUpSubmit),
			httpx.RateLimitByIP(httpx.StrictLimit),
		),
	)

	rt.Mux.Handle("POST /sign-out", http.HandlerFunc(rt.handleSignOut))

	// JSON variants of the same flows for programmatic clients.
	rt.Mux.Handle("POST /api/auth/sign-in",
		httpx.Chain(http.HandlerFunc(rt.handleAPISignIn),
			httpx.RateLimitByIPAndFormField(httpx.StrictLimit, "email"),
		),
	)
	rt.Mux.Handle("POST /api/auth/sign-up",
		httpx.Chain(http.HandlerFunc(rt.handleAPISignUp),
			httpx.RateLimitByIP(httpx.StrictLimit),
		),
	)
}

func (rt *Router) registerProfile() {
	rt.Mux.Handle("GET /profile", http.HandlerFunc(rt.handleProfilePage))
	rt.Mux.Handle("PUT /api/user/profile",
		httpx.Chain(http.HandlerFunc(rt.handleProfileUpdate),
			httpx.RateLimitByIP(httpx.ModerateLimit),
		),
	)
}

func (rt *Router) registerPublicAPI() {
	public := httpx.RateLimitByIP(httpx.PublicLimit)

	rt.Mux.Handle("GET /api/blogs", httpx.Chain(http.HandlerFunc(rt.handleListBlogs), public))
	rt.Mux.Handle("GET /api/blogs/{slug}", httpx.Chain(http.HandlerFunc(rt.handleGetBlog), public))
	rt.Mux.Handle("GET /api/projects", httpx.Chain(http.HandlerFunc(rt.handleListProjects), public))
}

func (rt *Router) registerAdmin() {
	rt.Mux.Handle("GET /admin", http.HandlerFunc(rt.handleAdminHome))
	rt.Mux.Handle("GET /admin/blogs", http.HandlerFunc(rt.handleAdminBlogsPage))
	rt.Mux.Handle("GET /admin/projects", http.HandlerFunc(rt.handleAdminProjectsPage))

	moderate := httpx.RateLimitByIP(httpx.ModerateLimit)

	rt.Mux.Handle("POST /api/admin/blogs", httpx.Chain(http.HandlerFunc(rt.handleAdminCreateBlog), moderate))
	rt.Mux.Handle("PUT /api/admin/blogs/{id}", httpx.Chain(http.HandlerFunc(rt.handleAdminUpdateBlog), moderate))
	rt.Mux.Handle("DELETE /api/admin/blogs/{id}", httpx.Chain(http.HandlerFunc(rt.handleAdminDeleteBlog), moderate))

	rt.Mux.Handle("POST /api/admin/projects", httpx.Chain(http.HandlerFunc(rt.handleAdminCreateProject), moderate))
	rt.Mux.Handle("PUT /api/admin/projects/{id}", httpx.Chain(http.HandlerFunc(rt.handleAdminUpdateProject), moderate))
	rt.Mux.Handle("DELETE /api/admin/projects/{id}", httpx.Chain(http.HandlerFunc(rt.handleAdminDeleteProject), moderate))
}

func (rt *Router) registerSystem() {
	rt.Mux.Handle("GET /livez", LivezHandler(rt.startTime, rt.buildVersion))
	rt.Mux.Handle("GET /readyz", ReadyzHandler(rt.startTime, rt.buildVersion, rt.store))
}
