package http

import (
	"errors"
	"html/template"
	"net/http"

	"github.com/goodluckurom/portfolio/internal/site/store"
	"github.com/goodluckurom/portfolio/pkg/slogx"
)

// Page markup is intentionally bare: the site's real styling lives in
// front-end assets served elsewhere, these templates just carry content.
var (
	homeTmpl = template.Must(template.New("home").Parse(`<!DOCTYPE html>
<html><head><title>Home</title></head><body>
<h1>Blog</h1>
<ul>
{{range .Posts}}<li><a href="/blogs/{{.Slug}}">{{.Title}}</a> - {{.Summary}}</li>
{{else}}<li>No posts yet.</li>
{{end}}
</ul>
</body></html>`))

	blogTmpl = template.Must(template.New("blog").Parse(`<!DOCTYPE html>
<html><head><title>{{.Title}}</title></head><body>
<h1>{{.Title}}</h1>
<article>{{.Body}}</article>
</body></html>`))
)

func (rt *Router) handleHome(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	posts, err := rt.BlogService.ListPublished(ctx)
	if err != nil {
		log.Error("failed to list posts", "err", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	renderHTML(w, homeTmpl, map[string]any{"Posts": posts})
}

func (rt *Router) handleBlogPage(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	post, err := rt.BlogService.GetPublishedBySlug(ctx, r.PathValue("slug"))
	if errors.Is(err, store.ErrNotFound) {
		http.NotFound(w, r)
		return
	}
	if err != nil {
		log.Error("failed to load post", "err", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	renderHTML(w, blogTmpl, post)
}

func renderHTML(w http.ResponseWriter, tmpl *template.Template, data any) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_ = tmpl.Execute(w, data)
}
