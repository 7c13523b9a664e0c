package service

import (
	"context"
	"testing"

	"github.com/goodluckurom/portfolio/internal/site/domain"
	"github.com/goodluckurom/portfolio/internal/site/store"
	"github.com/goodluckurom/portfolio/internal/site/store/drivers/sqlite"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) store.Store {
	t.Helper()

	st, err := sqlite.NewStore(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = st.Close() })

	require.NoError(t, st.ApplyMigrations())
	return st
}

func TestSlugify(t *testing.T) {
	t.Parallel()

	cases := []struct{ in, want string }{
		{"Hello, World!", "hello-world"},
		{"  leading and trailing  ", "leading-and-trailing"},
		{"Already-Slugged", "already-slugged"},
		{"100% Go", "100-go"},
		{"___", ""},
		{"", ""},
	}
	for _, tc := range cases {
		require.Equal(t, tc.want, Slugify(tc.in), "Slugify(%q)", tc.in)
	}
}

func TestBlogCreateGeneratesIDAndSlug(t *testing.T) {
	ctx := context.Background()
	svc := &BlogService{Store: newTestStore(t)}

	post, err := svc.Create(ctx, domain.Post{Title: "My First Post", Body: "hello", Published: true})
	require.NoError(t, err)
	require.NotEmpty(t, post.ID)
	require.Equal(t, "my-first-post", post.Slug)

	t.Run("explicit slug is kept", func(t *testing.T) {
		post, err := svc.Create(ctx, domain.Post{Title: "Another", Slug: "custom-slug"})
		require.NoError(t, err)
		require.Equal(t, "custom-slug", post.Slug)
	})

	t.Run("duplicate slug is rejected", func(t *testing.T) {
		_, err := svc.Create(ctx, domain.Post{Title: "Copy", Slug: "my-first-post"})
		require.ErrorIs(t, err, store.ErrAlreadyExists)
	})
}

func TestBlogDraftsStayHidden(t *testing.T) {
	ctx := context.Background()
	svc := &BlogService{Store: newTestStore(t)}

	published, err := svc.Create(ctx, domain.Post{Title: "Public Post", Published: true})
	require.NoError(t, err)

	draft, err := svc.Create(ctx, domain.Post{Title: "Secret Draft", Published: false})
	require.NoError(t, err)

	t.Run("public listing omits drafts", func(t *testing.T) {
		posts, err := svc.ListPublished(ctx)
		require.NoError(t, err)
		require.Len(t, posts, 1)
		require.Equal(t, published.ID, posts[0].ID)
	})

	t.Run("admin listing includes drafts", func(t *testing.T) {
		posts, err := svc.ListAll(ctx)
		require.NoError(t, err)
		require.Len(t, posts, 2)
	})

	t.Run("draft by slug reads as not found", func(t *testing.T) {
		_, err := svc.GetPublishedBySlug(ctx, draft.Slug)
		require.ErrorIs(t, err, store.ErrNotFound)
	})

	t.Run("published by slug resolves", func(t *testing.T) {
		got, err := svc.GetPublishedBySlug(ctx, published.Slug)
		require.NoError(t, err)
		require.Equal(t, published.ID, got.ID)
	})
}

func TestBlogUpdateAndDelete(t *testing.T) {
	ctx := context.Background()
	svc := &BlogService{Store: newTestStore(t)}

	post, err := svc.Create(ctx, domain.Post{Title: "Original", Published: false})
	require.NoError(t, err)

	post.Title = "Revised"
	post.Published = true
	require.NoError(t, svc.Update(ctx, post))

	got, err := svc.GetByID(ctx, post.ID)
	require.NoError(t, err)
	require.Equal(t, "Revised", got.Title)
	require.True(t, got.Published)

	require.NoError(t, svc.Delete(ctx, post.ID))
	_, err = svc.GetByID(ctx, post.ID)
	require.ErrorIs(t, err, store.ErrNotFound)

	t.Run("updating a missing post reports not found", func(t *testing.T) {
		require.ErrorIs(t, svc.Update(ctx, post), store.ErrNotFound)
	})

	t.Run("deleting a missing post reports not found", func(t *testing.T) {
		require.ErrorIs(t, svc.Delete(ctx, post.ID), store.ErrNotFound)
	})
}

func TestProjectLifecycle(t *testing.T) {
	ctx := context.Background()
	svc := &ProjectService{Store: newTestStore(t)}

	project, err := svc.Create(ctx, domain.Project{
		Title:   "Side Project",
		Summary: "A thing I built",
		URL:     "https://example.com/side-project",
	})
	require.NoError(t, err)
	require.NotEmpty(t, project.ID)

	list, err := svc.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 1)

	project.Summary = "A thing I rebuilt"
	require.NoError(t, svc.Update(ctx, project))

	got, err := svc.GetByID(ctx, project.ID)
	require.NoError(t, err)
	require.Equal(t, "A thing I rebuilt", got.Summary)

	require.NoError(t, svc.Delete(ctx, project.ID))
	_, err = svc.GetByID(ctx, project.ID)
	require.ErrorIs(t, err, store.ErrNotFound)
}
