package samajcms

import (
	"context"
	"errors"
)

// ErrDuplicate is returned when a create or update collides with a unique
// field: post or category slug, category name, or username. Both backends
// enforce the same uniqueness rules.
var ErrDuplicate = errors.New("duplicate unique value")

// Storage is the CRUD contract shared by the in-memory and SQLite backends.
// Lookups return a nil pointer (not an error) when the record is absent;
// deletes report whether a record existed. List results are ordered
// newest-created-first except where noted.
type Storage interface {
	// Users
	GetUser(ctx context.Context, id string) (*User, error)
	GetUserByUsername(ctx context.Context, username string) (*User, error)
	CreateUser(ctx context.Context, in InsertUser) (*User, error)

	// Blog posts. PublishedBlogPosts returns only published posts ordered by
	// publish date descending, treating a missing PublishedAt as earliest.
	AllBlogPosts(ctx context.Context) ([]BlogPost, error)
	PublishedBlogPosts(ctx context.Context) ([]BlogPost, error)
	GetBlogPost(ctx context.Context, id string) (*BlogPost, error)
	GetBlogPostBySlug(ctx context.Context, slug string) (*BlogPost, error)
	CreateBlogPost(ctx context.Context, in InsertBlogPost, authorID string) (*BlogPost, error)
	UpdateBlogPost(ctx context.Context, id string, patch UpdateBlogPost) (*BlogPost, error)
	DeleteBlogPost(ctx context.Context, id string) (bool, error)

	// Categories, ordered by name ascending.
	AllCategories(ctx context.Context) ([]Category, error)
	GetCategory(ctx context.Context, id string) (*Category, error)
	CreateCategory(ctx context.Context, in InsertCategory) (*Category, error)

	// Gallery items
	AllGalleryItems(ctx context.Context) ([]GalleryItem, error)
	GetGalleryItem(ctx context.Context, id string) (*GalleryItem, error)
	CreateGalleryItem(ctx context.Context, in InsertGalleryItem) (*GalleryItem, error)
	UpdateGalleryItem(ctx context.Context, id string, patch UpdateGalleryItem) (*GalleryItem, error)
	DeleteGalleryItem(ctx context.Context, id string) (bool, error)

	// Publications
	AllPublications(ctx context.Context) ([]Publication, error)
	GetPublication(ctx context.Context, id string) (*Publication, error)
	CreatePublication(ctx context.Context, in InsertPublication) (*Publication, error)
	UpdatePublication(ctx context.Context, id string, patch UpdatePublication) (*Publication, error)
	DeletePublication(ctx context.Context, id string) (bool, error)

	// Important days
	AllImportantDays(ctx context.Context) ([]ImportantDay, error)
	GetImportantDay(ctx context.Context, id string) (*ImportantDay, error)
	CreateImportantDay(ctx context.Context, in InsertImportantDay) (*ImportantDay, error)
	UpdateImportantDay(ctx context.Context, id string, patch UpdateImportantDay) (*ImportantDay, error)
	DeleteImportantDay(ctx context.Context, id string) (bool, error)

	// Close releases backend resources.
	Close() error
}
