package http

import (
	"encoding/json"
	"errors"
	"html/template"
	"net/http"
	"net/url"
	"strings"

	"github.com/goodluckurom/portfolio/internal/site/service"
	"github.com/goodluckurom/portfolio/pkg/httpx"
	"github.com/goodluckurom/portfolio/pkg/routex"
	"github.com/goodluckurom/portfolio/pkg/slogx"
)

var signInTmpl = template.Must(template.New("sign-in").Parse(`<!DOCTYPE html>
<html><head><title>Sign in</title></head><body>
<h1>Sign in</h1>
{{if .Error}}<p>{{.Error}}</p>{{end}}
<form method="post" action="/sign-in">
<input type="hidden" name="callbackUrl" value="{{.CallbackURL}}">
<label>Email <input type="email" name="email" required></label>
<label>Password <input type="password" name="password" required></label>
<button type="submit">Sign in</button>
</form>
</body></html>`))

var signUpTmpl = template.Must(template.New("sign-up").Parse(`<!DOCTYPE html>
<html><head><title>Sign up</title></head><body>
<h1>Sign up</h1>
{{if .Error}}<p>{{.Error}}</p>{{end}}
<form method="post" action="/sign-up">
<label>Name <input type="text" name="name" required></label>
<label>Email <input type="email" name="email" required></label>
<label>Password <input type="password" name="password" required minlength="8"></label>
<button type="submit">Sign up</button>
</form>
</body></html>`))

func (rt *Router) handleSignInPage(w http.ResponseWriter, r *http.Request) {
	if !rt.requireAnon(w, r) {
		return
	}

	renderHTML(w, signInTmpl, map[string]any{
		"CallbackURL": safeCallbackURL(r.URL.Query().Get(routex.CallbackParam)),
		"Error":       "",
	})
}

func (rt *Router) handleSignInSubmit(w http.ResponseWriter, r *http.Request) {
	if !rt.requireAnon(w, r) {
		return
	}

	ctx := r.Context()
	log := slogx.FromContext(ctx)

	if err := r.ParseForm(); err != nil {
		http.Error(w, "bad request", http.StatusBadRequest)
		return
	}

	token, sess, err := rt.AuthService.Login(ctx, r.FormValue("email"), r.FormValue("password"))
	if errors.Is(err, service.ErrInvalidCredentials) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.WriteHeader(http.StatusUnauthorized)
		renderHTML(w, signInTmpl, map[string]any{
			"CallbackURL": safeCallbackURL(r.FormValue(routex.CallbackParam)),
			"Error":       "Invalid email or password.",
		})
		return
	}
	if err != nil {
		log.Error("sign-in failed", "err", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	rt.jar.Attach(w, token)

	// Send the user back where they started, or to their tier's home.
	target := safeCallbackURL(r.FormValue(routex.CallbackParam))
	if target == "" {
		target = routex.HomePath
		if sess.IsAdmin() {
			target = routex.AdminHomePath
		}
	}
	http.Redirect(w, r, target, http.StatusSeeOther)
}

func (rt *Router) handleSignUpPage(w http.ResponseWriter, r *http.Request) {
	if !rt.requireAnon(w, r) {
		return
	}
	renderHTML(w, signUpTmpl, map[string]any{"Error": ""})
}

func (rt *Router) handleSignUpSubmit(w http.ResponseWriter, r *http.Request) {
	if !rt.requireAnon(w, r) {
		return
	}

	ctx := r.Context()
	log := slogx.FromContext(ctx)

	if err := r.ParseForm(); err != nil {
		http.Error(w, "bad request", http.StatusBadRequest)
		return
	}

	email := r.FormValue("email")
	password := r.FormValue("password")
	if email == "" || len(password) < 8 {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.WriteHeader(http.StatusBadRequest)
		renderHTML(w, signUpTmpl, map[string]any{
			"Error": "Email and a password of at least 8 characters are required.",
		})
		return
	}

	user, err := rt.AuthService.Register(ctx, email, r.FormValue("name"), password)
	if errors.Is(err, service.ErrEmailTaken) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.WriteHeader(http.StatusConflict)
		renderHTML(w, signUpTmpl, map[string]any{"Error": "That email is already registered."})
		return
	}
	if err != nil {
		log.Error("sign-up failed", "err", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	log.Info("user registered", "user_id", user.ID, "role", user.Role)
	http.Redirect(w, r, routex.SignInPath, http.StatusSeeOther)
}

// handleSignOut clears the session cookie. Clearing an absent cookie is
// fine, so no session check here.
func (rt *Router) handleSignOut(w http.ResponseWriter, r *http.Request) {
	rt.jar.Clear(w)
	http.Redirect(w, r, routex.HomePath, http.StatusSeeOther)
}

type signInRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type signUpRequest struct {
	Email    string `json:"email"`
	Name     string `json:"name"`
	Password string `json:"password"`
}

func (rt *Router) handleAPISignIn(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	var req signInRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.WriteError(w, http.StatusBadRequest, "invalid_request")
		return
	}

	token, sess, err := rt.AuthService.Login(ctx, req.Email, req.Password)
	if errors.Is(err, service.ErrInvalidCredentials) {
		httpx.WriteError(w, http.StatusUnauthorized, "invalid_credentials")
		return
	}
	if err != nil {
		log.Error("api sign-in failed", "err", err)
		httpx.WriteError(w, http.StatusInternalServerError, "server_error")
		return
	}

	rt.jar.Attach(w, token)
	httpx.WriteJSON(w, http.StatusOK, map[string]string{
		"user_id": sess.UserID,
		"role":    string(sess.Role),
	})
}

func (rt *Router) handleAPISignUp(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	var req signUpRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.WriteError(w, http.StatusBadRequest, "invalid_request")
		return
	}
	if req.Email == "" || len(req.Password) < 8 {
		httpx.WriteError(w, http.StatusBadRequest, "invalid_request")
		return
	}

	user, err := rt.AuthService.Register(ctx, req.Email, req.Name, req.Password)
	if errors.Is(err, service.ErrEmailTaken) {
		httpx.WriteError(w, http.StatusConflict, "email_taken")
		return
	}
	if err != nil {
		log.Error("api sign-up failed", "err", err)
		httpx.WriteError(w, http.StatusInternalServerError, "server_error")
		return
	}

	httpx.WriteJSON(w, http.StatusCreated, map[string]string{"user_id": user.ID})
}

// safeCallbackURL keeps post-sign-in redirects on this site: only rooted
// paths survive, anything absolute or scheme-relative is dropped.
func safeCallbackURL(raw string) string {
	if raw == "" || !strings.HasPrefix(raw, "/") || strings.HasPrefix(raw, "//") {
		return ""
	}
	if u, err := url.Parse(raw); err != nil || u.Host != "" || u.Scheme != "" {
		return ""
	}
	return raw
}
