package samajcms

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	_ "modernc.org/sqlite"
)

// timeLayout is RFC 3339 with fixed-width nanoseconds so that stored
// timestamps order lexicographically the same as chronologically.
const timeLayout = "2006-01-02T15:04:05.000000000Z07:00"

// SQLStore is the durable Storage backend over a SQLite database.
type SQLStore struct {
	db *sql.DB
}

// NewSQLStore opens (or creates) the SQLite database at path, ensures the
// data directory exists, and creates the schema.
func NewSQLStore(path string) (*SQLStore, error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	// WAL for concurrent read/write access, busy timeout so writers wait
	// instead of failing with SQLITE_BUSY, synchronous=NORMAL is safe with
	// WAL and avoids an fsync per transaction.
	if _, err := db.Exec(`
		PRAGMA journal_mode=WAL;
		PRAGMA busy_timeout=5000;
		PRAGMA synchronous=NORMAL;
	`); err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(4)
	db.SetMaxIdleConns(4)
	s := &SQLStore{db: db}
	if err := s.ensureSchema(); err != nil {
		return nil, fmt.Errorf("samajcms: ensure schema: %w", err)
	}
	return s, nil
}

// Close closes the underlying database connection.
func (s *SQLStore) Close() error {
	return s.db.Close()
}

func (s *SQLStore) ensureSchema() error {
	_, err := s.db.Exec(`
CREATE TABLE IF NOT EXISTS users (
    id TEXT PRIMARY KEY,
    username TEXT NOT NULL UNIQUE,
    password TEXT NOT NULL,
    is_admin INTEGER NOT NULL DEFAULT 0,
    created_at TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS categories (
    id TEXT PRIMARY KEY,
    name TEXT NOT NULL UNIQUE,
    slug TEXT NOT NULL UNIQUE,
    description TEXT,
    created_at TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS blog_posts (
    id TEXT PRIMARY KEY,
    title TEXT NOT NULL,
    slug TEXT NOT NULL UNIQUE,
    content TEXT NOT NULL,
    excerpt TEXT,
    cover_image TEXT,
    author_id TEXT NOT NULL,
    category_id TEXT,
    published INTEGER NOT NULL DEFAULT 0,
    featured INTEGER NOT NULL DEFAULT 0,
    published_at TEXT,
    created_at TEXT NOT NULL,
    updated_at TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS gallery_items (
    id TEXT PRIMARY KEY,
    title TEXT NOT NULL,
    description TEXT,
    type TEXT NOT NULL,
    src TEXT NOT NULL,
    thumbnail TEXT,
    category TEXT NOT NULL,
    featured INTEGER NOT NULL DEFAULT 0,
    created_at TEXT NOT NULL,
    updated_at TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS publications (
    id TEXT PRIMARY KEY,
    title TEXT NOT NULL,
    description TEXT NOT NULL,
    category TEXT NOT NULL,
    file_url TEXT NOT NULL,
    file_size TEXT NOT NULL,
    featured INTEGER NOT NULL DEFAULT 0,
    created_at TEXT NOT NULL,
    updated_at TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS important_days (
    id TEXT PRIMARY KEY,
    title TEXT NOT NULL,
    description TEXT NOT NULL,
    date TEXT NOT NULL,
    time TEXT NOT NULL,
    category TEXT NOT NULL,
    featured INTEGER NOT NULL DEFAULT 0,
    is_upcoming INTEGER NOT NULL DEFAULT 1,
    created_at TEXT NOT NULL,
    updated_at TEXT NOT NULL
);
`)
	return err
}

// Bootstrap ensures the admin user and the default category exist, creating
// them if absent. Existence is checked by natural key (username, slug), so
// running it on every startup is safe.
func (s *SQLStore) Bootstrap(ctx context.Context, adminPassword string) error {
	admin, err := s.GetUserByUsername(ctx, "admin")
	if err != nil {
		return fmt.Errorf("samajcms: bootstrap admin lookup: %w", err)
	}
	if admin == nil {
		hash, err := bcrypt.GenerateFromPassword([]byte(adminPassword), bcrypt.DefaultCost)
		if err != nil {
			return err
		}
		_, err = s.db.ExecContext(ctx,
			`INSERT INTO users (id, username, password, is_admin, created_at) VALUES (?, ?, ?, 1, ?)`,
			uuid.NewString(), "admin", string(hash), formatTime(time.Now()))
		if err != nil {
			return fmt.Errorf("samajcms: bootstrap admin: %w", err)
		}
	}

	var n int
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM categories WHERE slug = ?`, "general").Scan(&n); err != nil {
		return fmt.Errorf("samajcms: bootstrap category lookup: %w", err)
	}
	if n == 0 {
		_, err := s.db.ExecContext(ctx,
			`INSERT INTO categories (id, name, slug, description, created_at) VALUES (?, ?, ?, ?, ?)`,
			uuid.NewString(), "General", "general", "General blog posts", formatTime(time.Now()))
		if err != nil {
			return fmt.Errorf("samajcms: bootstrap category: %w", err)
		}
	}
	return nil
}

func formatTime(t time.Time) string {
	return t.UTC().Format(timeLayout)
}

func parseStoredTime(s string) time.Time {
	t, _ := time.Parse(timeLayout, s)
	return t
}

// isUniqueViolation reports whether err is a SQLite unique-constraint error.
func isUniqueViolation(err error) bool {
	return err != nil && strings.Contains(strings.ToLower(err.Error()), "unique constraint failed")
}

// nullable converts an optional string for use as a bind parameter.
func nullable(s *string) any {
	if s == nil {
		return nil
	}
	return *s
}

func strPtr(ns sql.NullString) *string {
	if !ns.Valid {
		return nil
	}
	s := ns.String
	return &s
}

// --- Users ---

func (s *SQLStore) scanUser(row *sql.Row) (*User, error) {
	var u User
	var createdAt string
	err := row.Scan(&u.ID, &u.Username, &u.Password, &u.IsAdmin, &createdAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	u.CreatedAt = parseStoredTime(createdAt)
	return &u, nil
}

func (s *SQLStore) GetUser(ctx context.Context, id string) (*User, error) {
	return s.scanUser(s.db.QueryRowContext(ctx,
		`SELECT id, username, password, is_admin, created_at FROM users WHERE id = ?`, id))
}

func (s *SQLStore) GetUserByUsername(ctx context.Context, username string) (*User, error) {
	return s.scanUser(s.db.QueryRowContext(ctx,
		`SELECT id, username, password, is_admin, created_at FROM users WHERE username = ?`, username))
}

func (s *SQLStore) CreateUser(ctx context.Context, in InsertUser) (*User, error) {
	u := User{
		ID:        uuid.NewString(),
		Username:  in.Username,
		Password:  in.Password,
		IsAdmin:   false,
		CreatedAt: time.Now().UTC(),
	}
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO users (id, username, password, is_admin, created_at) VALUES (?, ?, ?, 0, ?)`,
		u.ID, u.Username, u.Password, formatTime(u.CreatedAt))
	if isUniqueViolation(err) {
		return nil, ErrDuplicate
	}
	if err != nil {
		return nil, err
	}
	return &u, nil
}

// --- Blog posts ---

const blogPostColumns = `id, title, slug, content, excerpt, cover_image, author_id, category_id, published, featured, published_at, created_at, updated_at`

func scanBlogPost(sc interface{ Scan(...any) error }) (BlogPost, error) {
	var p BlogPost
	var excerpt, coverImage, categoryID, publishedAt sql.NullString
	var createdAt, updatedAt string
	err := sc.Scan(&p.ID, &p.Title, &p.Slug, &p.Content, &excerpt, &coverImage,
		&p.AuthorID, &categoryID, &p.Published, &p.Featured, &publishedAt, &createdAt, &updatedAt)
	if err != nil {
		return BlogPost{}, err
	}
	p.Excerpt = strPtr(excerpt)
	p.CoverImage = strPtr(coverImage)
	p.CategoryID = strPtr(categoryID)
	if publishedAt.Valid {
		t := parseStoredTime(publishedAt.String)
		p.PublishedAt = &t
	}
	p.CreatedAt = parseStoredTime(createdAt)
	p.UpdatedAt = parseStoredTime(updatedAt)
	return p, nil
}

func (s *SQLStore) queryBlogPosts(ctx context.Context, query string, args ...any) ([]BlogPost, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var posts []BlogPost
	for rows.Next() {
		p, err := scanBlogPost(rows)
		if err != nil {
			return nil, err
		}
		posts = append(posts, p)
	}
	return posts, rows.Err()
}

func (s *SQLStore) AllBlogPosts(ctx context.Context) ([]BlogPost, error) {
	return s.queryBlogPosts(ctx,
		`SELECT `+blogPostColumns+` FROM blog_posts ORDER BY created_at DESC`)
}

func (s *SQLStore) PublishedBlogPosts(ctx context.Context) ([]BlogPost, error) {
	// NULL publish dates sort last under DESC, which treats a missing
	// published_at as earliest-possible.
	return s.queryBlogPosts(ctx,
		`SELECT `+blogPostColumns+` FROM blog_posts WHERE published = 1 ORDER BY published_at DESC`)
}

func (s *SQLStore) getBlogPostWhere(ctx context.Context, where string, arg any) (*BlogPost, error) {
	p, err := scanBlogPost(s.db.QueryRowContext(ctx,
		`SELECT `+blogPostColumns+` FROM blog_posts WHERE `+where, arg))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (s *SQLStore) GetBlogPost(ctx context.Context, id string) (*BlogPost, error) {
	return s.getBlogPostWhere(ctx, `id = ?`, id)
}

func (s *SQLStore) GetBlogPostBySlug(ctx context.Context, slug string) (*BlogPost, error) {
	return s.getBlogPostWhere(ctx, `slug = ?`, slug)
}

func (s *SQLStore) CreateBlogPost(ctx context.Context, in InsertBlogPost, authorID string) (*BlogPost, error) {
	now := time.Now().UTC()
	p := BlogPost{
		ID:         uuid.NewString(),
		Title:      in.Title,
		Slug:       in.Slug,
		Content:    in.Content,
		Excerpt:    in.Excerpt,
		CoverImage: in.CoverImage,
		AuthorID:   authorID,
		CategoryID: in.CategoryID,
		Published:  in.Published,
		Featured:   in.Featured,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	var publishedAt any
	if in.Published {
		p.PublishedAt = &now
		publishedAt = formatTime(now)
	}
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO blog_posts (`+blogPostColumns+`) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		p.ID, p.Title, p.Slug, p.Content, nullable(p.Excerpt), nullable(p.CoverImage),
		p.AuthorID, nullable(p.CategoryID), p.Published, p.Featured, publishedAt,
		formatTime(now), formatTime(now))
	if isUniqueViolation(err) {
		return nil, ErrDuplicate
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (s *SQLStore) UpdateBlogPost(ctx context.Context, id string, patch UpdateBlogPost) (*BlogPost, error) {
	p, err := s.GetBlogPost(ctx, id)
	if err != nil || p == nil {
		return nil, err
	}
	if patch.Title != nil {
		p.Title = *patch.Title
	}
	if patch.Slug != nil {
		p.Slug = *patch.Slug
	}
	if patch.Content != nil {
		p.Content = *patch.Content
	}
	if patch.Excerpt != nil {
		p.Excerpt = patch.Excerpt
	}
	if patch.CoverImage != nil {
		p.CoverImage = patch.CoverImage
	}
	if patch.CategoryID != nil {
		p.CategoryID = patch.CategoryID
	}
	if patch.Featured != nil {
		p.Featured = *patch.Featured
	}
	now := time.Now().UTC()
	if patch.Published != nil {
		p.Published = *patch.Published
		// Refresh the publish date only when the patch explicitly
		// publishes; unpublishing or omitting the flag leaves it alone.
		if *patch.Published {
			p.PublishedAt = &now
		}
	}
	p.UpdatedAt = now

	var publishedAt any
	if p.PublishedAt != nil {
		publishedAt = formatTime(*p.PublishedAt)
	}
	_, err = s.db.ExecContext(ctx,
		`UPDATE blog_posts SET title = ?, slug = ?, content = ?, excerpt = ?, cover_image = ?,
		 category_id = ?, published = ?, featured = ?, published_at = ?, updated_at = ? WHERE id = ?`,
		p.Title, p.Slug, p.Content, nullable(p.Excerpt), nullable(p.CoverImage),
		nullable(p.CategoryID), p.Published, p.Featured, publishedAt, formatTime(now), id)
	if isUniqueViolation(err) {
		return nil, ErrDuplicate
	}
	if err != nil {
		return nil, err
	}
	return p, nil
}

func (s *SQLStore) DeleteBlogPost(ctx context.Context, id string) (bool, error) {
	return s.deleteByID(ctx, "blog_posts", id)
}

// deleteByID removes one row and reports whether it existed. Table names
// come from the fixed set above, never from user input.
func (s *SQLStore) deleteByID(ctx context.Context, table, id string) (bool, error) {
	res, err := s.db.ExecContext(ctx, `DELETE FROM `+table+` WHERE id = ?`, id)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

// --- Categories ---

func scanCategory(sc interface{ Scan(...any) error }) (Category, error) {
	var c Category
	var description sql.NullString
	var createdAt string
	if err := sc.Scan(&c.ID, &c.Name, &c.Slug, &description, &createdAt); err != nil {
		return Category{}, err
	}
	c.Description = strPtr(description)
	c.CreatedAt = parseStoredTime(createdAt)
	return c, nil
}

func (s *SQLStore) AllCategories(ctx context.Context) ([]Category, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, name, slug, description, created_at FROM categories ORDER BY name ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var cats []Category
	for rows.Next() {
		c, err := scanCategory(rows)
		if err != nil {
			return nil, err
		}
		cats = append(cats, c)
	}
	return cats, rows.Err()
}

func (s *SQLStore) GetCategory(ctx context.Context, id string) (*Category, error) {
	c, err := scanCategory(s.db.QueryRowContext(ctx,
		`SELECT id, name, slug, description, created_at FROM categories WHERE id = ?`, id))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (s *SQLStore) CreateCategory(ctx context.Context, in InsertCategory) (*Category, error) {
	c := Category{
		ID:          uuid.NewString(),
		Name:        in.Name,
		Slug:        in.Slug,
		Description: in.Description,
		CreatedAt:   time.Now().UTC(),
	}
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO categories (id, name, slug, description, created_at) VALUES (?, ?, ?, ?, ?)`,
		c.ID, c.Name, c.Slug, nullable(c.Description), formatTime(c.CreatedAt))
	if isUniqueViolation(err) {
		return nil, ErrDuplicate
	}
	if err != nil {
		return nil, err
	}
	return &c, nil
}

// --- Gallery items ---

const galleryColumns = `id, title, description, type, src, thumbnail, category, featured, created_at, updated_at`

func scanGalleryItem(sc interface{ Scan(...any) error }) (GalleryItem, error) {
	var it GalleryItem
	var description, thumbnail sql.NullString
	var createdAt, updatedAt string
	err := sc.Scan(&it.ID, &it.Title, &description, &it.Type, &it.Src, &thumbnail,
		&it.Category, &it.Featured, &createdAt, &updatedAt)
	if err != nil {
		return GalleryItem{}, err
	}
	it.Description = strPtr(description)
	it.Thumbnail = strPtr(thumbnail)
	it.CreatedAt = parseStoredTime(createdAt)
	it.UpdatedAt = parseStoredTime(updatedAt)
	return it, nil
}

func (s *SQLStore) AllGalleryItems(ctx context.Context) ([]GalleryItem, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT `+galleryColumns+` FROM gallery_items ORDER BY created_at DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []GalleryItem
	for rows.Next() {
		it, err := scanGalleryItem(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, it)
	}
	return items, rows.Err()
}

func (s *SQLStore) GetGalleryItem(ctx context.Context, id string) (*GalleryItem, error) {
	it, err := scanGalleryItem(s.db.QueryRowContext(ctx,
		`SELECT `+galleryColumns+` FROM gallery_items WHERE id = ?`, id))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &it, nil
}

func (s *SQLStore) CreateGalleryItem(ctx context.Context, in InsertGalleryItem) (*GalleryItem, error) {
	now := time.Now().UTC()
	it := GalleryItem{
		ID:          uuid.NewString(),
		Title:       in.Title,
		Description: in.Description,
		Type:        in.Type,
		Src:         in.Src,
		Thumbnail:   in.Thumbnail,
		Category:    in.Category,
		Featured:    in.Featured,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO gallery_items (`+galleryColumns+`) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		it.ID, it.Title, nullable(it.Description), it.Type, it.Src, nullable(it.Thumbnail),
		it.Category, it.Featured, formatTime(now), formatTime(now))
	if err != nil {
		return nil, err
	}
	return &it, nil
}

func (s *SQLStore) UpdateGalleryItem(ctx context.Context, id string, patch UpdateGalleryItem) (*GalleryItem, error) {
	it, err := s.GetGalleryItem(ctx, id)
	if err != nil || it == nil {
		return nil, err
	}
	if patch.Title != nil {
		it.Title = *patch.Title
	}
	if patch.Description != nil {
		it.Description = patch.Description
	}
	if patch.Type != nil {
		it.Type = *patch.Type
	}
	if patch.Src != nil {
		it.Src = *patch.Src
	}
	if patch.Thumbnail != nil {
		it.Thumbnail = patch.Thumbnail
	}
	if patch.Category != nil {
		it.Category = *patch.Category
	}
	if patch.Featured != nil {
		it.Featured = *patch.Featured
	}
	it.UpdatedAt = time.Now().UTC()
	_, err = s.db.ExecContext(ctx,
		`UPDATE gallery_items SET title = ?, description = ?, type = ?, src = ?, thumbnail = ?,
		 category = ?, featured = ?, updated_at = ? WHERE id = ?`,
		it.Title, nullable(it.Description), it.Type, it.Src, nullable(it.Thumbnail),
		it.Category, it.Featured, formatTime(it.UpdatedAt), id)
	if err != nil {
		return nil, err
	}
	return it, nil
}

func (s *SQLStore) DeleteGalleryItem(ctx context.Context, id string) (bool, error) {
	return s.deleteByID(ctx, "gallery_items", id)
}

// --- Publications ---

const publicationColumns = `id, title, description, category, file_url, file_size, featured, created_at, updated_at`

func scanPublication(sc interface{ Scan(...any) error }) (Publication, error) {
	var p Publication
	var createdAt, updatedAt string
	err := sc.Scan(&p.ID, &p.Title, &p.Description, &p.Category, &p.FileURL,
		&p.FileSize, &p.Featured, &createdAt, &updatedAt)
	if err != nil {
		return Publication{}, err
	}
	p.CreatedAt = parseStoredTime(createdAt)
	p.UpdatedAt = parseStoredTime(updatedAt)
	return p, nil
}

func (s *SQLStore) AllPublications(ctx context.Context) ([]Publication, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT `+publicationColumns+` FROM publications ORDER BY created_at DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var pubs []Publication
	for rows.Next() {
		p, err := scanPublication(rows)
		if err != nil {
			return nil, err
		}
		pubs = append(pubs, p)
	}
	return pubs, rows.Err()
}

func (s *SQLStore) GetPublication(ctx context.Context, id string) (*Publication, error) {
	p, err := scanPublication(s.db.QueryRowContext(ctx,
		`SELECT `+publicationColumns+` FROM publications WHERE id = ?`, id))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (s *SQLStore) CreatePublication(ctx context.Context, in InsertPublication) (*Publication, error) {
	now := time.Now().UTC()
	p := Publication{
		ID:          uuid.NewString(),
		Title:       in.Title,
		Description: in.Description,
		Category:    in.Category,
		FileURL:     in.FileURL,
		FileSize:    in.FileSize,
		Featured:    in.Featured,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO publications (`+publicationColumns+`) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		p.ID, p.Title, p.Description, p.Category, p.FileURL, p.FileSize, p.Featured,
		formatTime(now), formatTime(now))
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (s *SQLStore) UpdatePublication(ctx context.Context, id string, patch UpdatePublication) (*Publication, error) {
	p, err := s.GetPublication(ctx, id)
	if err != nil || p == nil {
		return nil, err
	}
	if patch.Title != nil {
		p.Title = *patch.Title
	}
	if patch.Description != nil {
		p.Description = *patch.Description
	}
	if patch.Category != nil {
		p.Category = *patch.Category
	}
	if patch.FileURL != nil {
		p.FileURL = *patch.FileURL
	}
	if patch.FileSize != nil {
		p.FileSize = *patch.FileSize
	}
	if patch.Featured != nil {
		p.Featured = *patch.Featured
	}
	p.UpdatedAt = time.Now().UTC()
	_, err = s.db.ExecContext(ctx,
		`UPDATE publications SET title = ?, description = ?, category = ?, file_url = ?,
		 file_size = ?, featured = ?, updated_at = ? WHERE id = ?`,
		p.Title, p.Description, p.Category, p.FileURL, p.FileSize, p.Featured,
		formatTime(p.UpdatedAt), id)
	if err != nil {
		return nil, err
	}
	return p, nil
}

func (s *SQLStore) DeletePublication(ctx context.Context, id string) (bool, error) {
	return s.deleteByID(ctx, "publications", id)
}

// --- Important days ---

const importantDayColumns = `id, title, description, date, time, category, featured, is_upcoming, created_at, updated_at`

func scanImportantDay(sc interface{ Scan(...any) error }) (ImportantDay, error) {
	var d ImportantDay
	var createdAt, updatedAt string
	err := sc.Scan(&d.ID, &d.Title, &d.Description, &d.Date, &d.Time, &d.Category,
		&d.Featured, &d.IsUpcoming, &createdAt, &updatedAt)
	if err != nil {
		return ImportantDay{}, err
	}
	d.CreatedAt = parseStoredTime(createdAt)
	d.UpdatedAt = parseStoredTime(updatedAt)
	return d, nil
}

func (s *SQLStore) AllImportantDays(ctx context.Context) ([]ImportantDay, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT `+importantDayColumns+` FROM important_days ORDER BY created_at DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var days []ImportantDay
	for rows.Next() {
		d, err := scanImportantDay(rows)
		if err != nil {
			return nil, err
		}
		days = append(days, d)
	}
	return days, rows.Err()
}

func (s *SQLStore) GetImportantDay(ctx context.Context, id string) (*ImportantDay, error) {
	d, err := scanImportantDay(s.db.QueryRowContext(ctx,
		`SELECT `+importantDayColumns+` FROM important_days WHERE id = ?`, id))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &d, nil
}

func (s *SQLStore) CreateImportantDay(ctx context.Context, in InsertImportantDay) (*ImportantDay, error) {
	now := time.Now().UTC()
	d := ImportantDay{
		ID:          uuid.NewString(),
		Title:       in.Title,
		Description: in.Description,
		Date:        in.Date,
		Time:        in.Time,
		Category:    in.Category,
		Featured:    in.Featured,
		IsUpcoming:  in.Upcoming(),
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO important_days (`+importantDayColumns+`) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		d.ID, d.Title, d.Description, d.Date, d.Time, d.Category, d.Featured, d.IsUpcoming,
		formatTime(now), formatTime(now))
	if err != nil {
		return nil, err
	}
	return &d, nil
}

func (s *SQLStore) UpdateImportantDay(ctx context.Context, id string, patch UpdateImportantDay) (*ImportantDay, error) {
	d, err := s.GetImportantDay(ctx, id)
	if err != nil || d == nil {
		return nil, err
	}
	if patch.Title != nil {
		d.Title = *patch.Title
	}
	if patch.Description != nil {
		d.Description = *patch.Description
	}
	if patch.Date != nil {
		d.Date = *patch.Date
	}
	if patch.Time != nil {
		d.Time = *patch.Time
	}
	if patch.Category != nil {
		d.Category = *patch.Category
	}
	if patch.Featured != nil {
		d.Featured = *patch.Featured
	}
	if patch.IsUpcoming != nil {
		d.IsUpcoming = *patch.IsUpcoming
	}
	d.UpdatedAt = time.Now().UTC()
	_, err = s.db.ExecContext(ctx,
		`UPDATE important_days SET title = ?, description = ?, date = ?, time = ?, category = ?,
		 featured = ?, is_upcoming = ?, updated_at = ? WHERE id = ?`,
		d.Title, d.Description, d.Date, d.Time, d.Category, d.Featured, d.IsUpcoming,
		formatTime(d.UpdatedAt), id)
	if err != nil {
		return nil, err
	}
	return d, nil
}

func (s *SQLStore) DeleteImportantDay(ctx context.Context, id string) (bool, error) {
	return s.deleteByID(ctx, "important_days", id)
}
