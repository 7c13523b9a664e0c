package http

import (
	"encoding/json"
	"errors"
	"html/template"
	"net/http"

	"github.com/goodluckurom/portfolio/internal/site/store"
	"github.com/goodluckurom/portfolio/pkg/httpx"
	"github.com/goodluckurom/portfolio/pkg/routex"
	"github.com/goodluckurom/portfolio/pkg/slogx"
)

var profileTmpl = template.Must(template.New("profile").Parse(`<!DOCTYPE html>
<html><head><title>Profile</title></head><body>
<h1>{{.Name}}</h1>
<p>{{.Email}}</p>
{{if .AvatarURL}}<img src="{{.AvatarURL}}" alt="avatar">{{end}}
<p>Role: {{.Role}}</p>
</body></html>`))

func (rt *Router) handleProfilePage(w http.ResponseWriter, r *http.Request) {
	if rt.requireUser(w, r) == nil {
		return
	}

	ctx := r.Context()
	log := slogx.FromContext(ctx)

	// Fresh lookup rather than the token snapshot: a rename or role change
	// should show up here without waiting for the token to expire.
	sess := rt.resolver.ResolveFresh(ctx, rt.UserService)
	if sess == nil {
		http.Redirect(w, r, routex.SignInPath, http.StatusSeeOther)
		return
	}

	log.Debug("profile viewed", "user_id", sess.UserID)
	renderHTML(w, profileTmpl, sess)
}

type profileUpdateRequest struct {
	Name      string `json:"name"`
	AvatarURL string `json:"avatar_url"`
}

func (rt *Router) handleProfileUpdate(w http.ResponseWriter, r *http.Request) {
	sess := rt.requireUser(w, r)
	if sess == nil {
		return
	}

	ctx := r.Context()
	log := slogx.FromContext(ctx)

	var req profileUpdateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.WriteError(w, http.StatusBadRequest, "invalid_request")
		return
	}
	if req.Name == "" {
		httpx.WriteError(w, http.StatusBadRequest, "invalid_request")
		return
	}

	// Users can only ever edit themselves; the target id comes from the
	// session, never the payload.
	err := rt.UserService.UpdateProfile(ctx, sess.UserID, req.Name, req.AvatarURL)
	if errors.Is(err, store.ErrNotFound) {
		httpx.WriteError(w, http.StatusNotFound, "not_found")
		return
	}
	if err != nil {
		log.Error("profile update failed", "err", err, "user_id", sess.UserID)
		httpx.WriteError(w, http.StatusInternalServerError, "server_error")
		return
	}

	httpx.WriteJSON(w, http.StatusOK, map[string]string{"status": "updated"})
}
