package http

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/goodluckurom/portfolio/pkg/sessionx"
	"github.com/stretchr/testify/require"
)

func postForm(rt *Router, path string, form url.Values) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rec := httptest.NewRecorder()
	rt.ServeHTTP(rec, req)
	return rec
}

func sessionCookie(t *testing.T, rec *httptest.ResponseRecorder) *http.Cookie {
	t.Helper()
	for _, c := range rec.Result().Cookies() {
		if c.Name == sessionx.CookieName {
			return c
		}
	}
	t.Fatal("no session cookie in response")
	return nil
}

func TestSignUpThenSignIn(t *testing.T) {
	t.Parallel()
	rt, _ := newTestRouter(t)

	rec := postForm(rt, "/sign-up", url.Values{
		"name":     {"Alice"},
		"email":    {"alice@example.com"},
		"password": {"correct horse battery"},
	})
	require.Equal(t, http.StatusSeeOther, rec.Code)
	require.Equal(t, "/sign-in", rec.Header().Get("Location"))

	rec = postForm(rt, "/sign-in", url.Values{
		"email":    {"alice@example.com"},
		"password": {"correct horse battery"},
	})
	require.Equal(t, http.StatusSeeOther, rec.Code)
	require.Equal(t, "/", rec.Header().Get("Location"))

	c := sessionCookie(t, rec)
	require.NotEmpty(t, c.Value)
	require.True(t, c.HttpOnly)
	require.Equal(t, "/", c.Path)
}

func TestSignInHonoursCallbackURL(t *testing.T) {
	t.Parallel()
	rt, _ := newTestRouter(t)

	postForm(rt, "/sign-up", url.Values{
		"name":     {"Alice"},
		"email":    {"alice@example.com"},
		"password": {"correct horse battery"},
	})

	rec := postForm(rt, "/sign-in", url.Values{
		"email":       {"alice@example.com"},
		"password":    {"correct horse battery"},
		"callbackUrl": {"/profile"},
	})
	require.Equal(t, http.StatusSeeOther, rec.Code)
	require.Equal(t, "/profile", rec.Header().Get("Location"))
}

func TestSignInRejectsForeignCallbackURL(t *testing.T) {
	t.Parallel()
	rt, _ := newTestRouter(t)

	postForm(rt, "/sign-up", url.Values{
		"name":     {"Alice"},
		"email":    {"alice@example.com"},
		"password": {"correct horse battery"},
	})

	for _, evil := range []string{
		"https://evil.example/phish",
		"//evil.example/phish",
		"javascript:alert(1)",
	} {
		rec := postForm(rt, "/sign-in", url.Values{
			"email":       {"alice@example.com"},
			"password":    {"correct horse battery"},
			"callbackUrl": {evil},
		})
		require.Equal(t, http.StatusSeeOther, rec.Code, "callbackUrl=%s", evil)
		require.Equal(t, "/", rec.Header().Get("Location"), "callbackUrl=%s", evil)
	}
}

func TestSignInAdminLandsOnAdminHome(t *testing.T) {
	t.Parallel()
	rt, _ := newTestRouter(t)

	postForm(rt, "/sign-up", url.Values{
		"name":     {"Admin"},
		"email":    {"admin@example.com"},
		"password": {"correct horse battery"},
	})

	rec := postForm(rt, "/sign-in", url.Values{
		"email":    {"admin@example.com"},
		"password": {"correct horse battery"},
	})
	require.Equal(t, http.StatusSeeOther, rec.Code)
	require.Equal(t, "/admin", rec.Header().Get("Location"))
}

func TestSignInWrongPasswordIsUniform(t *testing.T) {
	t.Parallel()
	rt, _ := newTestRouter(t)

	postForm(rt, "/sign-up", url.Values{
		"name":     {"Alice"},
		"email":    {"alice@example.com"},
		"password": {"correct horse battery"},
	})

	wrongPassword := postForm(rt, "/sign-in", url.Values{
		"email":    {"alice@example.com"},
		"password": {"wrong"},
	})
	unknownEmail := postForm(rt, "/sign-in", url.Values{
		"email":    {"nobody@example.com"},
		"password": {"wrong"},
	})

	// Same status and same body for both failure modes, so responses don't
	// reveal whether the account exists.
	require.Equal(t, http.StatusUnauthorized, wrongPassword.Code)
	require.Equal(t, http.StatusUnauthorized, unknownEmail.Code)
	require.Equal(t, wrongPassword.Body.String(), unknownEmail.Body.String())
}

func TestSignUpDuplicateEmailConflicts(t *testing.T) {
	t.Parallel()
	rt, _ := newTestRouter(t)

	form := url.Values{
		"name":     {"Alice"},
		"email":    {"alice@example.com"},
		"password": {"correct horse battery"},
	}
	rec := postForm(rt, "/sign-up", form)
	require.Equal(t, http.StatusSeeOther, rec.Code)

	rec = postForm(rt, "/sign-up", form)
	require.Equal(t, http.StatusConflict, rec.Code)
}

func TestSignOutClearsCookie(t *testing.T) {
	t.Parallel()
	rt, _ := newTestRouter(t)

	rec := postForm(rt, "/sign-out", url.Values{})
	require.Equal(t, http.StatusSeeOther, rec.Code)
	require.Equal(t, "/", rec.Header().Get("Location"))

	c := sessionCookie(t, rec)
	require.Empty(t, c.Value)
	require.Less(t, c.MaxAge, 0)
}

func TestAPISignInSetsCookieAndReturnsJSON(t *testing.T) {
	t.Parallel()
	rt, _ := newTestRouter(t)

	postForm(rt, "/sign-up", url.Values{
		"name":     {"Alice"},
		"email":    {"alice@example.com"},
		"password": {"correct horse battery"},
	})

	body := `{"email":"alice@example.com","password":"correct horse battery"}`
	req := httptest.NewRequest(http.MethodPost, "/api/auth/sign-in", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	rt.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	require.Contains(t, rec.Body.String(), `"role":"USER"`)
	require.NotEmpty(t, sessionCookie(t, rec).Value)
}

func TestAPISignUpValidatesInput(t *testing.T) {
	t.Parallel()
	rt, _ := newTestRouter(t)

	for _, body := range []string{
		`not json`,
		`{"email":"","password":"correct horse battery"}`,
		`{"email":"short@example.com","password":"short"}`,
	} {
		req := httptest.NewRequest(http.MethodPost, "/api/auth/sign-up", strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		rec := httptest.NewRecorder()
		rt.ServeHTTP(rec, req)
		require.Equal(t, http.StatusBadRequest, rec.Code, "body=%s", body)
	}
}

func TestSafeCallbackURL(t *testing.T) {
	t.Parallel()

	require.Equal(t, "/profile", safeCallbackURL("/profile"))
	require.Equal(t, "/admin/blogs", safeCallbackURL("/admin/blogs"))
	require.Empty(t, safeCallbackURL(""))
	require.Empty(t, safeCallbackURL("profile"))
	require.Empty(t, safeCallbackURL("//evil.example"))
	require.Empty(t, safeCallbackURL("https://evil.example/x"))
}
