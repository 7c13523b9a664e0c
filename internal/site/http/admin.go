package http

import (
	"encoding/json"
	"errors"
	"html/template"
	"net/http"

	"github.com/goodluckurom/portfolio/internal/site/domain"
	"github.com/goodluckurom/portfolio/internal/site/store"
	"github.com/goodluckurom/portfolio/pkg/httpx"
	"github.com/goodluckurom/portfolio/pkg/slogx"
)

var (
	adminHomeTmpl = template.Must(template.New("admin").Parse(`<!DOCTYPE html>
<html><head><title>Admin</title></head><body>
<h1>Admin</h1>
<ul>
<li><a href="/admin/blogs">Blogs</a></li>
<li><a href="/admin/projects">Projects</a></li>
</ul>
</body></html>`))

	adminBlogsTmpl = template.Must(template.New("admin-blogs").Parse(`<!DOCTYPE html>
<html><head><title>Admin - Blogs</title></head><body>
<h1>Blogs</h1>
<ul>
{{range .Posts}}<li>{{.Title}} ({{if .Published}}published{{else}}draft{{end}})</li>
{{else}}<li>No posts.</li>
{{end}}
</ul>
</body></html>`))

	adminProjectsTmpl = template.Must(template.New("admin-projects").Parse(`<!DOCTYPE html>
<html><head><title>Admin - Projects</title></head><body>
<h1>Projects</h1>
<ul>
{{range .Projects}}<li>{{.Title}} - {{.URL}}</li>
{{else}}<li>No projects.</li>
{{end}}
</ul>
</body></html>`))
)

func (rt *Router) handleAdminHome(w http.ResponseWriter, r *http.Request) {
	if rt.requireAdmin(w, r) == nil {
		return
	}
	renderHTML(w, adminHomeTmpl, nil)
}

func (rt *Router) handleAdminBlogsPage(w http.ResponseWriter, r *http.Request) {
	if rt.requireAdmin(w, r) == nil {
		return
	}

	ctx := r.Context()
	posts, err := rt.BlogService.ListAll(ctx)
	if err != nil {
		slogx.FromContext(ctx).Error("failed to list posts", "err", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	renderHTML(w, adminBlogsTmpl, map[string]any{"Posts": posts})
}

func (rt *Router) handleAdminProjectsPage(w http.ResponseWriter, r *http.Request) {
	if rt.requireAdmin(w, r) == nil {
		return
	}

	ctx := r.Context()
	projects, err := rt.ProjectService.List(ctx)
	if err != nil {
		slogx.FromContext(ctx).Error("failed to list projects", "err", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	renderHTML(w, adminProjectsTmpl, map[string]any{"Projects": projects})
}

type blogRequest struct {
	Slug      string `json:"slug"`
	Title     string `json:"title"`
	Summary   string `json:"summary"`
	Body      string `json:"body"`
	Published bool   `json:"published"`
}

type projectRequest struct {
	Title   string `json:"title"`
	Summary string `json:"summary"`
	URL     string `json:"url"`
}

func (rt *Router) handleAdminCreateBlog(w http.ResponseWriter, r *http.Request) {
	sess := rt.requireAdmin(w, r)
	if sess == nil {
		return
	}

	ctx := r.Context()
	log := slogx.FromContext(ctx)

	var req blogRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Title == "" {
		httpx.WriteError(w, http.StatusBadRequest, "invalid_request")
		return
	}

	post, err := rt.BlogService.Create(ctx, domain.Post{
		Slug:      req.Slug,
		Title:     req.Title,
		Summary:   req.Summary,
		Body:      req.Body,
		Published: req.Published,
	})
	if errors.Is(err, store.ErrAlreadyExists) {
		httpx.WriteError(w, http.StatusConflict, "slug_taken")
		return
	}
	if err != nil {
		log.Error("failed to create post", "err", err)
		httpx.WriteError(w, http.StatusInternalServerError, "server_error")
		return
	}

	log.Info("post created", "post_id", post.ID, "user_id", sess.UserID)
	httpx.WriteJSON(w, http.StatusCreated, toPostResponse(post, true))
}

func (rt *Router) handleAdminUpdateBlog(w http.ResponseWriter, r *http.Request) {
	sess := rt.requireAdmin(w, r)
	if sess == nil {
		return
	}

	ctx := r.Context()
	log := slogx.FromContext(ctx)

	var req blogRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Title == "" {
		httpx.WriteError(w, http.StatusBadRequest, "invalid_request")
		return
	}

	err := rt.BlogService.Update(ctx, domain.Post{
		ID:        r.PathValue("id"),
		Slug:      req.Slug,
		Title:     req.Title,
		Summary:   req.Summary,
		Body:      req.Body,
		Published: req.Published,
	})
	if errors.Is(err, store.ErrNotFound) {
		httpx.WriteError(w, http.StatusNotFound, "not_found")
		return
	}
	if errors.Is(err, store.ErrAlreadyExists) {
		httpx.WriteError(w, http.StatusConflict, "slug_taken")
		return
	}
	if err != nil {
		log.Error("failed to update post", "err", err)
		httpx.WriteError(w, http.StatusInternalServerError, "server_error")
		return
	}

	log.Info("post updated", "post_id", r.PathValue("id"), "user_id", sess.UserID)
	httpx.WriteJSON(w, http.StatusOK, map[string]string{"status": "updated"})
}

func (rt *Router) handleAdminDeleteBlog(w http.ResponseWriter, r *http.Request) {
	sess := rt.requireAdmin(w, r)
	if sess == nil {
		return
	}

	ctx := r.Context()
	log := slogx.FromContext(ctx)

	err := rt.BlogService.Delete(ctx, r.PathValue("id"))
	if errors.Is(err, store.ErrNotFound) {
		httpx.WriteError(w, http.StatusNotFound, "not_found")
		return
	}
	if err != nil {
		log.Error("failed to delete post", "err", err)
		httpx.WriteError(w, http.StatusInternalServerError, "server_error")
		return
	}

	log.Info("post deleted", "post_id", r.PathValue("id"), "user_id", sess.UserID)
	w.WriteHeader(http.StatusNoContent)
}

func (rt *Router) handleAdminCreateProject(w http.ResponseWriter, r *http.Request) {
	sess := rt.requireAdmin(w, r)
	if sess == nil {
		return
	}

	ctx := r.Context()
	log := slogx.FromContext(ctx)

	var req projectRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Title == "" {
		httpx.WriteError(w, http.StatusBadRequest, "invalid_request")
		return
	}

	project, err := rt.ProjectService.Create(ctx, domain.Project{
		Title:   req.Title,
		Summary: req.Summary,
		URL:     req.URL,
	})
	if err != nil {
		log.Error("failed to create project", "err", err)
		httpx.WriteError(w, http.StatusInternalServerError, "server_error")
		return
	}

	log.Info("project created", "project_id", project.ID, "user_id", sess.UserID)
	httpx.WriteJSON(w, http.StatusCreated, toProjectResponse(project))
}

func (rt *Router) handleAdminUpdateProject(w http.ResponseWriter, r *http.Request) {
	sess := rt.requireAdmin(w, r)
	if sess == nil {
		return
	}

	ctx := r.Context()
	log := slogx.FromContext(ctx)

	var req projectRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Title == "" {
		httpx.WriteError(w, http.StatusBadRequest, "invalid_request")
		return
	}

	err := rt.ProjectService.Update(ctx, domain.Project{
		ID:      r.PathValue("id"),
		Title:   req.Title,
		Summary: req.Summary,
		URL:     req.URL,
	})
	if errors.Is(err, store.ErrNotFound) {
		httpx.WriteError(w, http.StatusNotFound, "not_found")
		return
	}
	if err != nil {
		log.Error("failed to update project", "err", err)
		httpx.WriteError(w, http.StatusInternalServerError, "server_error")
		return
	}

	log.Info("project updated", "project_id", r.PathValue("id"), "user_id", sess.UserID)
	httpx.WriteJSON(w, http.StatusOK, map[string]string{"status": "updated"})
}

func (rt *Router) handleAdminDeleteProject(w http.ResponseWriter, r *http.Request) {
	sess := rt.requireAdmin(w, r)
	if sess == nil {
		return
	}

	ctx := r.Context()
	log := slogx.FromContext(ctx)

	err := rt.ProjectService.Delete(ctx, r.PathValue("id"))
	if errors.Is(err, store.ErrNotFound) {
		httpx.WriteError(w, http.StatusNotFound, "not_found")
		return
	}
	if err != nil {
		log.Error("failed to delete project", "err", err)
		httpx.WriteError(w, http.StatusInternalServerError, "server_error")
		return
	}

	log.Info("project deleted", "project_id", r.PathValue("id"), "user_id", sess.UserID)
	w.WriteHeader(http.StatusNoContent)
}
