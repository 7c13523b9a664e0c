package http

import (
	"errors"
	"net/http"
	"time"

	"github.com/goodluckurom/portfolio/internal/site/domain"
	"github.com/goodluckurom/portfolio/internal/site/store"
	"github.com/goodluckurom/portfolio/pkg/httpx"
	"github.com/goodluckurom/portfolio/pkg/slogx"
)

// Wire shapes for the content API. Kept separate from the domain structs so
// column additions don't silently widen the public payload.
type postResponse struct {
	ID        string    `json:"id"`
	Slug      string    `json:"slug"`
	Title     string    `json:"title"`
	Summary   string    `json:"summary"`
	Body      string    `json:"body,omitempty"`
	Published bool      `json:"published"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type projectResponse struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Summary   string    `json:"summary"`
	URL       string    `json:"url"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func toPostResponse(p domain.Post, includeBody bool) postResponse {
	resp := postResponse{
		ID:        p.ID,
		Slug:      p.Slug,
		Title:     p.Title,
		Summary:   p.Summary,
		Published: p.Published,
		CreatedAt: p.CreatedAt,
		UpdatedAt: p.UpdatedAt,
	}
	if includeBody {
		resp.Body = p.Body
	}
	return resp
}

func toProjectResponse(p domain.Project) projectResponse {
	return projectResponse{
		ID:        p.ID,
		Title:     p.Title,
		Summary:   p.Summary,
		URL:       p.URL,
		CreatedAt: p.CreatedAt,
		UpdatedAt: p.UpdatedAt,
	}
}

// handleListBlogs serves published posts to anyone, cookie or not.
func (rt *Router) handleListBlogs(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	posts, err := rt.BlogService.ListPublished(ctx)
	if err != nil {
		slogx.FromContext(ctx).Error("failed to list posts", "err", err)
		httpx.WriteError(w, http.StatusInternalServerError, "server_error")
		return
	}

	out := make([]postResponse, 0, len(posts))
	for _, p := range posts {
		out = append(out, toPostResponse(p, false))
	}
	httpx.WriteJSON(w, http.StatusOK, out)
}

func (rt *Router) handleGetBlog(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	post, err := rt.BlogService.GetPublishedBySlug(ctx, r.PathValue("slug"))
	if errors.Is(err, store.ErrNotFound) {
		httpx.WriteError(w, http.StatusNotFound, "not_found")
		return
	}
	if err != nil {
		slogx.FromContext(ctx).Error("failed to load post", "err", err)
		httpx.WriteError(w, http.StatusInternalServerError, "server_error")
		return
	}

	httpx.WriteJSON(w, http.StatusOK, toPostResponse(post, true))
}

func (rt *Router) handleListProjects(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	projects, err := rt.ProjectService.List(ctx)
	if err != nil {
		slogx.FromContext(ctx).Error("failed to list projects", "err", err)
		httpx.WriteError(w, http.StatusInternalServerError, "server_error")
		return
	}

	out := make([]projectResponse, 0, len(projects))
	for _, p := range projects {
		out = append(out, toProjectResponse(p))
	}
	httpx.WriteJSON(w, http.StatusOK, out)
}
