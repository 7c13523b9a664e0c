package service

import (
	"context"
	"strings"

	"github.com/goodluckurom/portfolio/internal/site/domain"
	"github.com/goodluckurom/portfolio/internal/site/store"
	"github.com/goodluckurom/portfolio/pkg/idx"
)

type BlogService struct {
	Store store.Store
}

// ListPublished returns the posts visible to anonymous visitors.
func (s *BlogService) ListPublished(ctx context.Context) ([]domain.Post, error) {
	return s.Store.Posts().ListPublishedPosts(ctx)
}

// ListAll returns every post, drafts included, for the admin surface.
func (s *BlogService) ListAll(ctx context.Context) ([]domain.Post, error) {
	return s.Store.Posts().ListAllPosts(ctx)
}

// GetPublishedBySlug returns a published post. Drafts come back as
// store.ErrNotFound so their existence doesn't leak through the public API.
func (s *BlogService) GetPublishedBySlug(ctx context.Context, slug string) (domain.Post, error) {
	post, err := s.Store.Posts().GetPostBySlug(ctx, slug)
	if err != nil {
		return domain.Post{}, err
	}
	if !post.Published {
		return domain.Post{}, store.ErrNotFound
	}
	return post, nil
}

func (s *BlogService) GetByID(ctx context.Context, id string) (domain.Post, error) {
	return s.Store.Posts().GetPostByID(ctx, id)
}

// Create inserts a new post, generating the id and, when absent, a slug
// from the title.
func (s *BlogService) Create(ctx context.Context, p domain.Post) (domain.Post, error) {
	p.ID = idx.New().String()
	if p.Slug == "" {
		p.Slug = Slugify(p.Title)
	}
	if err := s.Store.Posts().CreatePost(ctx, p); err != nil {
		return domain.Post{}, err
	}
	return p, nil
}

func (s *BlogService) Update(ctx context.Context, p domain.Post) error {
	if p.Slug == "" {
		p.Slug = Slugify(p.Title)
	}
	return s.Store.Posts().UpdatePost(ctx, p)
}

func (s *BlogService) Delete(ctx context.Context, id string) error {
	return s.Store.Posts().DeletePost(ctx, id)
}

// Slugify lowercases the title and collapses every non-alphanumeric run
// into a single hyphen: "Hello, World!" -> "hello-world".
func Slugify(title string) string {
	var b strings.Builder
	lastHyphen := true // suppress a leading hyphen
	for _, r := range strings.ToLower(title) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
			lastHyphen = false
		default:
			if !lastHyphen {
				b.WriteByte('-')
				lastHyphen = true
			}
		}
	}
	return strings.TrimSuffix(b.String(), "-")
}
