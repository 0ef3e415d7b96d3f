package samajcms

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"golang.org/x/crypto/bcrypt"
)

func setupTestStore(t *testing.T) *SQLStore {
	t.Helper()
	path := filepath.Join(t.TempDir(), "test.db")
	s, err := NewSQLStore(path)
	if err != nil {
		t.Fatalf("failed to create store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func strp(s string) *string { return &s }
func boolp(b bool) *bool    { return &b }

func TestBootstrap(t *testing.T) {
	s := setupTestStore(t)
	ctx := context.Background()

	if err := s.Bootstrap(ctx, "secret"); err != nil {
		t.Fatalf("Bootstrap failed: %v", err)
	}

	admin, err := s.GetUserByUsername(ctx, "admin")
	if err != nil {
		t.Fatalf("GetUserByUsername failed: %v", err)
	}
	if admin == nil {
		t.Fatal("admin user should exist after bootstrap")
	}
	if !admin.IsAdmin {
		t.Error("bootstrap admin should have IsAdmin set")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(admin.Password), []byte("secret")); err != nil {
		t.Errorf("admin password should be a bcrypt hash of the configured password: %v", err)
	}

	cats, err := s.AllCategories(ctx)
	if err != nil {
		t.Fatalf("AllCategories failed: %v", err)
	}
	if len(cats) != 1 || cats[0].Slug != "general" {
		t.Errorf("expected single general category, got %v", cats)
	}

	// Running bootstrap again must not duplicate anything.
	if err := s.Bootstrap(ctx, "other"); err != nil {
		t.Fatalf("second Bootstrap failed: %v", err)
	}
	again, err := s.GetUserByUsername(ctx, "admin")
	if err != nil {
		t.Fatalf("GetUserByUsername failed: %v", err)
	}
	if again.ID != admin.ID {
		t.Error("second bootstrap should keep the existing admin")
	}
	cats, _ = s.AllCategories(ctx)
	if len(cats) != 1 {
		t.Errorf("second bootstrap should keep a single category, got %d", len(cats))
	}
}

func TestCreateAndGetBlogPost(t *testing.T) {
	s := setupTestStore(t)
	ctx := context.Background()

	in := InsertBlogPost{
		Title:     "Navratri Schedule",
		Slug:      "navratri-schedule",
		Content:   "Full schedule for this year's celebrations.",
		Excerpt:   strp("Schedule overview"),
		Published: true,
		Featured:  true,
	}
	created, err := s.CreateBlogPost(ctx, in, "author-1")
	if err != nil {
		t.Fatalf("CreateBlogPost failed: %v", err)
	}
	if created.ID == "" {
		t.Fatal("created post should have a generated id")
	}
	if created.PublishedAt == nil {
		t.Fatal("publishing on create should stamp PublishedAt")
	}

	got, err := s.GetBlogPost(ctx, created.ID)
	if err != nil {
		t.Fatalf("GetBlogPost failed: %v", err)
	}
	if got == nil {
		t.Fatal("created post should be readable by id")
	}
	if got.Title != in.Title || got.Slug != in.Slug || got.Content != in.Content {
		t.Errorf("roundtrip mismatch: got %+v", got)
	}
	if got.Excerpt == nil || *got.Excerpt != "Schedule overview" {
		t.Errorf("Excerpt = %v, want %q", got.Excerpt, "Schedule overview")
	}
	if got.CoverImage != nil || got.CategoryID != nil {
		t.Error("unset optional fields should stay nil")
	}
	if got.AuthorID != "author-1" {
		t.Errorf("AuthorID = %q, want author-1", got.AuthorID)
	}
	if !got.PublishedAt.Equal(*created.PublishedAt) {
		t.Errorf("PublishedAt changed across roundtrip: %v vs %v", got.PublishedAt, created.PublishedAt)
	}
}

func TestCreateDraftHasNoPublishDate(t *testing.T) {
	s := setupTestStore(t)
	ctx := context.Background()

	created, err := s.CreateBlogPost(ctx, InsertBlogPost{
		Title: "Draft", Slug: "draft", Content: "c",
	}, "author-1")
	if err != nil {
		t.Fatalf("CreateBlogPost failed: %v", err)
	}
	if created.PublishedAt != nil {
		t.Error("a draft must not have PublishedAt set")
	}
	if created.Published {
		t.Error("omitted published flag should default to false")
	}
}

func TestGetBlogPostBySlug(t *testing.T) {
	s := setupTestStore(t)
	ctx := context.Background()

	created, err := s.CreateBlogPost(ctx, InsertBlogPost{
		Title: "Slug Test", Slug: "slug-test", Content: "c", Published: true,
	}, "author-1")
	if err != nil {
		t.Fatalf("CreateBlogPost failed: %v", err)
	}

	got, err := s.GetBlogPostBySlug(ctx, "slug-test")
	if err != nil {
		t.Fatalf("GetBlogPostBySlug failed: %v", err)
	}
	if got == nil || got.ID != created.ID {
		t.Errorf("slug lookup returned %v, want id %s", got, created.ID)
	}

	missing, err := s.GetBlogPostBySlug(ctx, "no-such-slug")
	if err != nil {
		t.Fatalf("GetBlogPostBySlug failed: %v", err)
	}
	if missing != nil {
		t.Error("unknown slug should return nil, not an error")
	}
}

func TestDuplicateSlugRejected(t *testing.T) {
	s := setupTestStore(t)
	ctx := context.Background()

	if _, err := s.CreateBlogPost(ctx, InsertBlogPost{Title: "A", Slug: "same", Content: "c"}, "author-1"); err != nil {
		t.Fatalf("first create failed: %v", err)
	}
	_, err := s.CreateBlogPost(ctx, InsertBlogPost{Title: "B", Slug: "same", Content: "c"}, "author-1")
	if err != ErrDuplicate {
		t.Errorf("second create with the same slug: err = %v, want ErrDuplicate", err)
	}
}

func TestPublishedBlogPostsFilterAndOrder(t *testing.T) {
	s := setupTestStore(t)
	ctx := context.Background()

	first, err := s.CreateBlogPost(ctx, InsertBlogPost{Title: "First", Slug: "first", Content: "c", Published: true}, "a")
	if err != nil {
		t.Fatal(err)
	}
	time.Sleep(5 * time.Millisecond)
	if _, err := s.CreateBlogPost(ctx, InsertBlogPost{Title: "Draft", Slug: "hidden", Content: "c"}, "a"); err != nil {
		t.Fatal(err)
	}
	time.Sleep(5 * time.Millisecond)
	second, err := s.CreateBlogPost(ctx, InsertBlogPost{Title: "Second", Slug: "second", Content: "c", Published: true}, "a")
	if err != nil {
		t.Fatal(err)
	}

	published, err := s.PublishedBlogPosts(ctx)
	if err != nil {
		t.Fatalf("PublishedBlogPosts failed: %v", err)
	}
	if len(published) != 2 {
		t.Fatalf("published count = %d, want 2", len(published))
	}
	for _, p := range published {
		if !p.Published {
			t.Errorf("unpublished post %s leaked into published listing", p.Slug)
		}
	}
	if published[0].ID != second.ID || published[1].ID != first.ID {
		t.Errorf("published posts not ordered by publish date descending: %s, %s",
			published[0].Slug, published[1].Slug)
	}

	all, err := s.AllBlogPosts(ctx)
	if err != nil {
		t.Fatalf("AllBlogPosts failed: %v", err)
	}
	if len(all) != 3 {
		t.Errorf("all count = %d, want 3", len(all))
	}
	if all[0].Slug != "second" || all[2].Slug != "first" {
		t.Errorf("all posts not ordered newest-created-first: %s .. %s", all[0].Slug, all[2].Slug)
	}
}

func TestUpdateBlogPostPublishSemantics(t *testing.T) {
	s := setupTestStore(t)
	ctx := context.Background()

	post, err := s.CreateBlogPost(ctx, InsertBlogPost{Title: "T", Slug: "t", Content: "c", Published: true}, "a")
	if err != nil {
		t.Fatal(err)
	}
	firstPublish := *post.PublishedAt

	// A patch that does not mention published must not touch PublishedAt.
	time.Sleep(5 * time.Millisecond)
	updated, err := s.UpdateBlogPost(ctx, post.ID, UpdateBlogPost{Title: strp("T2")})
	if err != nil {
		t.Fatalf("UpdateBlogPost failed: %v", err)
	}
	if updated.Title != "T2" {
		t.Errorf("Title = %q, want T2", updated.Title)
	}
	if !updated.PublishedAt.Equal(firstPublish) {
		t.Error("patch without published flag must preserve PublishedAt")
	}

	// Explicitly unpublishing keeps the stale publish date.
	updated, err = s.UpdateBlogPost(ctx, post.ID, UpdateBlogPost{Published: boolp(false)})
	if err != nil {
		t.Fatal(err)
	}
	if updated.Published {
		t.Error("post should be unpublished")
	}
	if updated.PublishedAt == nil || !updated.PublishedAt.Equal(firstPublish) {
		t.Error("unpublishing must not clear or refresh PublishedAt")
	}

	// Explicitly publishing refreshes the date.
	time.Sleep(5 * time.Millisecond)
	updated, err = s.UpdateBlogPost(ctx, post.ID, UpdateBlogPost{Published: boolp(true)})
	if err != nil {
		t.Fatal(err)
	}
	if updated.PublishedAt == nil || !updated.PublishedAt.After(firstPublish) {
		t.Error("explicit publish should refresh PublishedAt")
	}
}

func TestUpdateBlogPostEmptyPatch(t *testing.T) {
	s := setupTestStore(t)
	ctx := context.Background()

	post, err := s.CreateBlogPost(ctx, InsertBlogPost{
		Title: "Keep", Slug: "keep", Content: "c", Excerpt: strp("e"), Featured: true,
	}, "a")
	if err != nil {
		t.Fatal(err)
	}

	time.Sleep(5 * time.Millisecond)
	updated, err := s.UpdateBlogPost(ctx, post.ID, UpdateBlogPost{})
	if err != nil {
		t.Fatalf("UpdateBlogPost failed: %v", err)
	}
	if updated.Title != post.Title || updated.Slug != post.Slug || updated.Content != post.Content {
		t.Error("empty patch must leave fields unchanged")
	}
	if updated.Excerpt == nil || *updated.Excerpt != "e" {
		t.Error("empty patch must leave optional fields unchanged")
	}
	if updated.Featured != post.Featured || updated.Published != post.Published {
		t.Error("empty patch must leave flags unchanged")
	}
	if !updated.UpdatedAt.After(post.UpdatedAt) {
		t.Error("empty patch should still refresh UpdatedAt")
	}
}

func TestUpdateMissingBlogPost(t *testing.T) {
	s := setupTestStore(t)

	post, err := s.UpdateBlogPost(context.Background(), "nope", UpdateBlogPost{Title: strp("x")})
	if err != nil {
		t.Fatalf("UpdateBlogPost failed: %v", err)
	}
	if post != nil {
		t.Error("updating a missing post should return nil, not a record")
	}
}

func TestDeleteBlogPostTwice(t *testing.T) {
	s := setupTestStore(t)
	ctx := context.Background()

	post, err := s.CreateBlogPost(ctx, InsertBlogPost{Title: "D", Slug: "d", Content: "c"}, "a")
	if err != nil {
		t.Fatal(err)
	}

	ok, err := s.DeleteBlogPost(ctx, post.ID)
	if err != nil || !ok {
		t.Fatalf("first delete: ok=%v err=%v, want true/nil", ok, err)
	}
	got, err := s.GetBlogPost(ctx, post.ID)
	if err != nil {
		t.Fatal(err)
	}
	if got != nil {
		t.Error("deleted post should be absent")
	}
	ok, err = s.DeleteBlogPost(ctx, post.ID)
	if err != nil {
		t.Fatal(err)
	}
	if ok {
		t.Error("second delete should report false")
	}
}

func TestCreateUserDuplicateUsername(t *testing.T) {
	s := setupTestStore(t)
	ctx := context.Background()

	if _, err := s.CreateUser(ctx, InsertUser{Username: "asha", Password: "pw"}); err != nil {
		t.Fatalf("CreateUser failed: %v", err)
	}
	_, err := s.CreateUser(ctx, InsertUser{Username: "asha", Password: "pw2"})
	if err != ErrDuplicate {
		t.Errorf("duplicate username: err = %v, want ErrDuplicate", err)
	}
}

func TestCategoryCRUD(t *testing.T) {
	s := setupTestStore(t)
	ctx := context.Background()

	created, err := s.CreateCategory(ctx, InsertCategory{Name: "Events", Slug: "events", Description: strp("Community events")})
	if err != nil {
		t.Fatalf("CreateCategory failed: %v", err)
	}
	got, err := s.GetCategory(ctx, created.ID)
	if err != nil {
		t.Fatal(err)
	}
	if got == nil || got.Name != "Events" || got.Description == nil || *got.Description != "Community events" {
		t.Errorf("category roundtrip mismatch: %+v", got)
	}

	if _, err := s.CreateCategory(ctx, InsertCategory{Name: "Events", Slug: "events-2"}); err != ErrDuplicate {
		t.Errorf("duplicate category name: err = %v, want ErrDuplicate", err)
	}

	if _, err := s.CreateCategory(ctx, InsertCategory{Name: "Archive", Slug: "archive"}); err != nil {
		t.Fatal(err)
	}
	cats, err := s.AllCategories(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if len(cats) != 2 || cats[0].Name != "Archive" || cats[1].Name != "Events" {
		t.Errorf("categories should be ordered by name ascending, got %v", cats)
	}
}

func TestGalleryItemCRUD(t *testing.T) {
	s := setupTestStore(t)
	ctx := context.Background()

	created, err := s.CreateGalleryItem(ctx, InsertGalleryItem{
		Title: "Garba Night", Type: "video", Src: "/media/garba.mp4", Category: "Events",
	})
	if err != nil {
		t.Fatalf("CreateGalleryItem failed: %v", err)
	}
	if created.Description != nil || created.Thumbnail != nil {
		t.Error("unset optional fields should stay nil")
	}

	updated, err := s.UpdateGalleryItem(ctx, created.ID, UpdateGalleryItem{
		Thumbnail: strp("/media/garba.jpg"),
		Featured:  boolp(true),
	})
	if err != nil {
		t.Fatalf("UpdateGalleryItem failed: %v", err)
	}
	if updated.Thumbnail == nil || *updated.Thumbnail != "/media/garba.jpg" {
		t.Errorf("Thumbnail = %v, want /media/garba.jpg", updated.Thumbnail)
	}
	if !updated.Featured {
		t.Error("Featured should be true after patch")
	}
	if updated.Title != "Garba Night" || updated.Type != "video" {
		t.Error("patch must leave unspecified fields unchanged")
	}

	ok, err := s.DeleteGalleryItem(ctx, created.ID)
	if err != nil || !ok {
		t.Fatalf("delete: ok=%v err=%v", ok, err)
	}
}

func TestPublicationCRUD(t *testing.T) {
	s := setupTestStore(t)
	ctx := context.Background()

	created, err := s.CreatePublication(ctx, InsertPublication{
		Title: "Annual Report", Description: "2024 report", Category: "Reports",
		FileURL: "/docs/report.pdf", FileSize: "1.1 MB",
	})
	if err != nil {
		t.Fatalf("CreatePublication failed: %v", err)
	}

	updated, err := s.UpdatePublication(ctx, created.ID, UpdatePublication{FileSize: strp("1.2 MB")})
	if err != nil {
		t.Fatal(err)
	}
	if updated.FileSize != "1.2 MB" || updated.Title != "Annual Report" {
		t.Errorf("patch result mismatch: %+v", updated)
	}

	got, err := s.GetPublication(ctx, created.ID)
	if err != nil {
		t.Fatal(err)
	}
	if got.FileSize != "1.2 MB" {
		t.Error("update should persist")
	}
}

func TestImportantDayCRUD(t *testing.T) {
	s := setupTestStore(t)
	ctx := context.Background()

	created, err := s.CreateImportantDay(ctx, InsertImportantDay{
		Title: "Uttarayan", Description: "Kite festival", Date: "January 14, 2025",
		Time: "10:00 AM", Category: "Festival",
	})
	if err != nil {
		t.Fatalf("CreateImportantDay failed: %v", err)
	}
	if !created.IsUpcoming {
		t.Error("IsUpcoming should default to true")
	}

	updated, err := s.UpdateImportantDay(ctx, created.ID, UpdateImportantDay{IsUpcoming: boolp(false)})
	if err != nil {
		t.Fatal(err)
	}
	if updated.IsUpcoming {
		t.Error("IsUpcoming should be false after patch")
	}
	if updated.Date != "January 14, 2025" || updated.Time != "10:00 AM" {
		t.Error("patch must leave date/time strings unchanged")
	}
}
