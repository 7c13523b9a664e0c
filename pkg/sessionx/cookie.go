package sessionx

import "net/http"

// CookieName is the wire name of the session cookie.
const CookieName = "session"

// Jar writes and deletes the session cookie with its security attributes.
// Reading is a package function because it needs no configuration and must
// behave identically everywhere.
type Jar struct {
	// Secure marks cookies as TLS-only. Leave false only in local dev.
	Secure bool
}

// Attach sets the session cookie carrying token. Calling it again simply
// overwrites the previous cookie.
func (j Jar) Attach(w http.ResponseWriter, token string) {
	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    token,
		Path:     "/",
		HttpOnly: true,
		Secure:   j.Secure,
		SameSite: http.SameSiteLaxMode,
		MaxAge:   int(TTL.Seconds()),
	})
}

// Clear deletes the session cookie by overwriting it with MaxAge=-1.
// Safe to call when no cookie exists.
func (j Jar) Clear(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    "",
		Path:     "/",
		HttpOnly: true,
		Secure:   j.Secure,
		SameSite: http.SameSiteLaxMode,
		MaxAge:   -1,
	})
}

// Read returns the raw token from the request's session cookie without
// verifying it. ok is false when the cookie is missing or empty.
func Read(r *http.Request) (token string, ok bool) {
	c, err := r.Cookie(CookieName)
	if err != nil || c.Value == "" {
		return "", false
	}
	return c.Value, true
}
