package store

import (
	"context"
	"errors"

	"github.com/goodluckurom/portfolio/internal/site/domain"
)

var (
	ErrNotFound      = errors.New("store: not found")
	ErrAlreadyExists = errors.New("store: already exists")
)

// Store is the root data access interface. Concrete drivers (sqlite today)
// implement this. It exposes sub-repositories to keep concerns tidy and
// testable.
type Store interface {
	Users() Users
	Posts() Posts
	Projects() Projects

	ApplyMigrations() error

	// Tx starts a read/write transaction and returns a Tx-scoped Store.
	// The caller MUST call Commit() or Rollback() on the returned Tx.
	Tx(ctx context.Context) (Tx, error)

	// WithTx executes fn within a transaction: rolled back if fn returns an
	// error, committed otherwise. Prefer this over Tx directly.
	WithTx(ctx context.Context, fn func(tx Tx) error) error

	// Close releases any underlying resources.
	Close() error

	// Ping verifies the database connection is still alive.
	Ping(ctx context.Context) error
}

// Tx is a transactional store. It embeds the same repos but adds Commit/Rollback.
type Tx interface {
	Store
	Commit() error
	Rollback() error
}

type Users interface {
	// GetUserByID returns a user by id. This is the lookup session
	// freshness checks rely on.
	GetUserByID(ctx context.Context, id string) (domain.User, error)

	// GetUserByEmail is used during sign-in.
	GetUserByEmail(ctx context.Context, email string) (domain.User, error)

	// CreateUser inserts a new user (id is provided by app via ULID).
	CreateUser(ctx context.Context, u domain.User) error

	// UpdateProfile mutates name and avatar_url and bumps updated_at.
	UpdateProfile(ctx context.Context, userID, name, avatarURL string) error

	// IsEmpty returns true if there are no users.
	IsEmpty(ctx context.Context) (bool, error)
}

type Posts interface {
	GetPostByID(ctx context.Context, id string) (domain.Post, error)

	// GetPostBySlug is the public lookup; unpublished posts are still
	// returned, visibility is the caller's concern.
	GetPostBySlug(ctx context.Context, slug string) (domain.Post, error)

	// ListPublishedPosts returns published posts, newest first.
	ListPublishedPosts(ctx context.Context) ([]domain.Post, error)

	// ListAllPosts returns every post for the admin surface, newest first.
	ListAllPosts(ctx context.Context) ([]domain.Post, error)

	CreatePost(ctx context.Context, p domain.Post) error
	UpdatePost(ctx context.Context, p domain.Post) error
	DeletePost(ctx context.Context, id string) error
}

type Projects interface {
	GetProjectByID(ctx context.Context, id string) (domain.Project, error)

	// ListProjects returns all projects, newest first.
	ListProjects(ctx context.Context) ([]domain.Project, error)

	CreateProject(ctx context.Context, p domain.Project) error
	UpdateProject(ctx context.Context, p domain.Project) error
	DeleteProject(ctx context.Context, id string) error
}
