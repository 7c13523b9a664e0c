package routex

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func testConfig() Config {
	return Config{
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

func newTestClassifier(t *testing.T) *Classifier {
	t.Helper()

	c, err := NewClassifier(testConfig())
	require.NoError(t, err)
	return c
}

func TestClassify(t *testing.T) {
	t.Parallel()

	c := newTestClassifier(t)

	cases := []struct {
		path string
		want Class
	}{
		{"/", Public},
		{"/blogs", Public},
		{"/blogs/my-first-post", Public},
		{"/about", Public},
		{"/admin", AdminPage},
		{"/admin/blogs", AdminPage},
		{"/admin/blogs/01J8ME3CCN", AdminPage},
		{"/admin/blogs/01J8ME3CCN/edit", AdminPage},
		{"/admin/projects/new", AdminPage},
		{"/api/admin/blogs", AdminAPI},
		{"/api/admin/blogs/01J8ME3CCN", AdminAPI},
		{"/api/admin/projects", AdminAPI},
		{"/api/blogs", PublicAPI},
		{"/api/blogs/my-first-post", PublicAPI},
		{"/api/projects", PublicAPI},
		{"/api/auth/sign-in", PublicAPI},
		{"/sign-in", AnonOnly},
		{"/sign-up", AnonOnly},
		{"/sign-in/reset", AnonOnly},
		{"/sign-integration", Public}, // prefix must stop at a segment boundary
		{"/profile", AuthPage},
		{"/profile/extra", Public}, // profile is an exact match
		{"/api/user", AuthAPI},
		{"/api/user/settings", AuthAPI},
		{"/api/userland", Public},
	}

	for _, tc := range cases {
		require.Equal(t, tc.want, c.Classify(tc.path), "path %q", tc.path)
	}
}

func TestClassifyIsDeterministic(t *testing.T) {
	t.Parallel()

	c := newTestClassifier(t)

	corpus := []string{
		"/", "", "/admin", "/api/blogs", "/sign-in", "/profile",
		"/api/user/x", "/nonsense", "/admin/blogs/a/b/c", "//double",
		"/api", "/api/", "/ADMIN", "/Admin/blogs",
	}
	for _, path := range corpus {
		first := c.Classify(path)
		second := c.Classify(path)
		require.Equal(t, first, second, "path %q", path)
	}
}

func TestAdminWinsOverPublicAPI(t *testing.T) {
	t.Parallel()

	// Deliberately overlapping tables: the same path matches both an admin
	// pattern and a public API pattern. Admin must win.
	c, err := NewClassifier(Config{
		AdminRoutes:     []string{"/api/admin/export"},
		PublicAPIRoutes: []string{"/api/admin/[resource]"},
	})
	require.NoError(t, err)

	require.Equal(t, AdminAPI, c.Classify("/api/admin/export"))
	require.Equal(t, PublicAPI, c.Classify("/api/admin/other"))
}

func TestWildcardMatchesExactlyOneSegment(t *testing.T) {
	t.Parallel()

	re, err := CompilePattern("/blogs/[slug]/comments")
	require.NoError(t, err)

	require.True(t, re.MatchString("/blogs/hello-world/comments"))
	require.True(t, re.MatchString("/blogs/hello-world/comments/42"))
	require.False(t, re.MatchString("/blogs/comments"))
	require.False(t, re.MatchString("/blogs/a/b/comments"))
}

func TestCompilePatternEscapesLiterals(t *testing.T) {
	t.Parallel()

	// Dots in literal segments are literal dots, not regex wildcards.
	re, err := CompilePattern("/files/report.pdf")
	require.NoError(t, err)

	require.True(t, re.MatchString("/files/report.pdf"))
	require.False(t, re.MatchString("/files/reportxpdf"))
}

func TestCompilePatternTrailingSubPath(t *testing.T) {
	t.Parallel()

	re, err := CompilePattern("/admin/blogs")
	require.NoError(t, err)

	require.True(t, re.MatchString("/admin/blogs"))
	require.True(t, re.MatchString("/admin/blogs/new"))
	require.False(t, re.MatchString("/admin/blogsx"))
	require.False(t, re.MatchString("/admin"))
}
