package samajcms

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// MemStore is a map-backed Storage for development and tests. It holds no
// persistent state and seeds a small demo dataset on construction. All
// methods copy records on the way in and out, so callers never share memory
// with the store.
type MemStore struct {
	mu            sync.RWMutex
	users         map[string]User
	categories    map[string]Category
	blogPosts     map[string]BlogPost
	galleryItems  map[string]GalleryItem
	publications  map[string]Publication
	importantDays map[string]ImportantDay
}

// NewMemStore creates an in-memory store seeded with an admin user, a
// default category, and one sample record per content type.
func NewMemStore() *MemStore {
	s := &MemStore{
		users:         make(map[string]User),
		categories:    make(map[string]Category),
		blogPosts:     make(map[string]BlogPost),
		galleryItems:  make(map[string]GalleryItem),
		publications:  make(map[string]Publication),
		importantDays: make(map[string]ImportantDay),
	}
	s.seed()
	return s
}

// Close implements Storage; there is nothing to release.
func (s *MemStore) Close() error { return nil }

func (s *MemStore) seed() {
	now := time.Now().UTC()
	hash, err := bcrypt.GenerateFromPassword([]byte("admin"), bcrypt.DefaultCost)
	if err != nil {
		// bcrypt only fails on an invalid cost, which is constant here.
		panic(err)
	}

	adminID := uuid.NewString()
	s.users[adminID] = User{
		ID:        adminID,
		Username:  "admin",
		Password:  string(hash),
		IsAdmin:   true,
		CreatedAt: now,
	}

	categoryID := uuid.NewString()
	desc := "General blog posts"
	s.categories[categoryID] = Category{
		ID:          categoryID,
		Name:        "General",
		Slug:        "general",
		Description: &desc,
		CreatedAt:   now,
	}

	postID := uuid.NewString()
	excerpt := "This is a sample blog post."
	publishedAt := now
	s.blogPosts[postID] = BlogPost{
		ID:          postID,
		Title:       "Welcome to Our Blog",
		Slug:        "welcome-to-our-blog",
		Content:     "This is a sample blog post. You can create, edit, and manage posts through the admin panel.",
		Excerpt:     &excerpt,
		AuthorID:    adminID,
		CategoryID:  &categoryID,
		Published:   true,
		Featured:    true,
		PublishedAt: &publishedAt,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	galleryID := uuid.NewString()
	galleryDesc := "Annual cultural festival showcasing traditional Gujarati dance forms"
	thumbnail := "/assets/gallery/traditional-dance.png"
	s.galleryItems[galleryID] = GalleryItem{
		ID:          galleryID,
		Title:       "Traditional Dance Performance",
		Description: &galleryDesc,
		Type:        "image",
		Src:         "/assets/gallery/traditional-dance.png",
		Thumbnail:   &thumbnail,
		Category:    "Performances",
		Featured:    true,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	pubID := uuid.NewString()
	s.publications[pubID] = Publication{
		ID:          pubID,
		Title:       "Cultural Heritage Preservation Guidelines",
		Description: "Comprehensive guide on preserving and promoting Gujarati cultural traditions in modern society.",
		Category:    "Guidelines",
		FileURL:     "#",
		FileSize:    "2.3 MB",
		Featured:    true,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	dayID := uuid.NewString()
	s.importantDays[dayID] = ImportantDay{
		ID:          dayID,
		Title:       "Navratri Celebration",
		Description: "Join us for a vibrant celebration of Navratri with traditional dance, music, and authentic Gujarati cuisine.",
		Date:        "October 15, 2024",
		Time:        "6:00 PM",
		Category:    "Festival",
		Featured:    true,
		IsUpcoming:  true,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}

// --- Users ---

func (s *MemStore) GetUser(ctx context.Context, id string) (*User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if u, ok := s.users[id]; ok {
		return &u, nil
	}
	return nil, nil
}

func (s *MemStore) GetUserByUsername(ctx context.Context, username string) (*User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, u := range s.users {
		if u.Username == username {
			u := u
			return &u, nil
		}
	}
	return nil, nil
}

func (s *MemStore) CreateUser(ctx context.Context, in InsertUser) (*User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, u := range s.users {
		if u.Username == in.Username {
			return nil, ErrDuplicate
		}
	}
	u := User{
		ID:        uuid.NewString(),
		Username:  in.Username,
		Password:  in.Password,
		IsAdmin:   false,
		CreatedAt: time.Now().UTC(),
	}
	s.users[u.ID] = u
	return &u, nil
}

// --- Blog posts ---

func (s *MemStore) AllBlogPosts(ctx context.Context) ([]BlogPost, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	posts := make([]BlogPost, 0, len(s.blogPosts))
	for _, p := range s.blogPosts {
		posts = append(posts, p)
	}
	sort.Slice(posts, func(i, j int) bool {
		return posts[i].CreatedAt.After(posts[j].CreatedAt)
	})
	return posts, nil
}

func (s *MemStore) PublishedBlogPosts(ctx context.Context) ([]BlogPost, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var posts []BlogPost
	for _, p := range s.blogPosts {
		if p.Published {
			posts = append(posts, p)
		}
	}
	// A post without a publish date sorts as oldest.
	sort.Slice(posts, func(i, j int) bool {
		return publishTime(posts[i]).After(publishTime(posts[j]))
	})
	return posts, nil
}

func publishTime(p BlogPost) time.Time {
	if p.PublishedAt == nil {
		return time.Time{}
	}
	return *p.PublishedAt
}

func (s *MemStore) GetBlogPost(ctx context.Context, id string) (*BlogPost, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if p, ok := s.blogPosts[id]; ok {
		return &p, nil
	}
	return nil, nil
}

func (s *MemStore) GetBlogPostBySlug(ctx context.Context, slug string) (*BlogPost, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, p := range s.blogPosts {
		if p.Slug == slug {
			p := p
			return &p, nil
		}
	}
	return nil, nil
}

func (s *MemStore) CreateBlogPost(ctx context.Context, in InsertBlogPost, authorID string) (*BlogPost, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, p := range s.blogPosts {
		if p.Slug == in.Slug {
			return nil, ErrDuplicate
		}
	}
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
	if in.Published {
		p.PublishedAt = &now
	}
	s.blogPosts[p.ID] = p
	return &p, nil
}

func (s *MemStore) UpdateBlogPost(ctx context.Context, id string, patch UpdateBlogPost) (*BlogPost, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.blogPosts[id]
	if !ok {
		return nil, nil
	}
	if patch.Slug != nil && *patch.Slug != p.Slug {
		for _, other := range s.blogPosts {
			if other.Slug == *patch.Slug {
				return nil, ErrDuplicate
			}
		}
		p.Slug = *patch.Slug
	}
	if patch.Title != nil {
		p.Title = *patch.Title
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
		// The publish date is refreshed only on an explicit publish;
		// unpublishing leaves the old date in place.
		if *patch.Published {
			p.PublishedAt = &now
		}
	}
	p.UpdatedAt = now
	s.blogPosts[id] = p
	return &p, nil
}

func (s *MemStore) DeleteBlogPost(ctx context.Context, id string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.blogPosts[id]; !ok {
		return false, nil
	}
	delete(s.blogPosts, id)
	return true, nil
}

// --- Categories ---

func (s *MemStore) AllCategories(ctx context.Context) ([]Category, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	cats := make([]Category, 0, len(s.categories))
	for _, c := range s.categories {
		cats = append(cats, c)
	}
	sort.Slice(cats, func(i, j int) bool { return cats[i].Name < cats[j].Name })
	return cats, nil
}

func (s *MemStore) GetCategory(ctx context.Context, id string) (*Category, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if c, ok := s.categories[id]; ok {
		return &c, nil
	}
	return nil, nil
}

func (s *MemStore) CreateCategory(ctx context.Context, in InsertCategory) (*Category, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, c := range s.categories {
		if c.Name == in.Name || c.Slug == in.Slug {
			return nil, ErrDuplicate
		}
	}
	c := Category{
		ID:          uuid.NewString(),
		Name:        in.Name,
		Slug:        in.Slug,
		Description: in.Description,
		CreatedAt:   time.Now().UTC(),
	}
	s.categories[c.ID] = c
	return &c, nil
}

// --- Gallery items ---

func (s *MemStore) AllGalleryItems(ctx context.Context) ([]GalleryItem, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	items := make([]GalleryItem, 0, len(s.galleryItems))
	for _, it := range s.galleryItems {
		items = append(items, it)
	}
	sort.Slice(items, func(i, j int) bool {
		return items[i].CreatedAt.After(items[j].CreatedAt)
	})
	return items, nil
}

func (s *MemStore) GetGalleryItem(ctx context.Context, id string) (*GalleryItem, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if it, ok := s.galleryItems[id]; ok {
		return &it, nil
	}
	return nil, nil
}

func (s *MemStore) CreateGalleryItem(ctx context.Context, in InsertGalleryItem) (*GalleryItem, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
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
	s.galleryItems[it.ID] = it
	return &it, nil
}

func (s *MemStore) UpdateGalleryItem(ctx context.Context, id string, patch UpdateGalleryItem) (*GalleryItem, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	it, ok := s.galleryItems[id]
	if !ok {
		return nil, nil
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
	s.galleryItems[id] = it
	return &it, nil
}

func (s *MemStore) DeleteGalleryItem(ctx context.Context, id string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.galleryItems[id]; !ok {
		return false, nil
	}
	delete(s.galleryItems, id)
	return true, nil
}

// --- Publications ---

func (s *MemStore) AllPublications(ctx context.Context) ([]Publication, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	pubs := make([]Publication, 0, len(s.publications))
	for _, p := range s.publications {
		pubs = append(pubs, p)
	}
	sort.Slice(pubs, func(i, j int) bool {
		return pubs[i].CreatedAt.After(pubs[j].CreatedAt)
	})
	return pubs, nil
}

func (s *MemStore) GetPublication(ctx context.Context, id string) (*Publication, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if p, ok := s.publications[id]; ok {
		return &p, nil
	}
	return nil, nil
}

func (s *MemStore) CreatePublication(ctx context.Context, in InsertPublication) (*Publication, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
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
	s.publications[p.ID] = p
	return &p, nil
}

func (s *MemStore) UpdatePublication(ctx context.Context, id string, patch UpdatePublication) (*Publication, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.publications[id]
	if !ok {
		return nil, nil
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
	s.publications[id] = p
	return &p, nil
}

func (s *MemStore) DeletePublication(ctx context.Context, id string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.publications[id]; !ok {
		return false, nil
	}
	delete(s.publications, id)
	return true, nil
}

// --- Important days ---

func (s *MemStore) AllImportantDays(ctx context.Context) ([]ImportantDay, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	days := make([]ImportantDay, 0, len(s.importantDays))
	for _, d := range s.importantDays {
		days = append(days, d)
	}
	sort.Slice(days, func(i, j int) bool {
		return days[i].CreatedAt.After(days[j].CreatedAt)
	})
	return days, nil
}

func (s *MemStore) GetImportantDay(ctx context.Context, id string) (*ImportantDay, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if d, ok := s.importantDays[id]; ok {
		return &d, nil
	}
	return nil, nil
}

func (s *MemStore) CreateImportantDay(ctx context.Context, in InsertImportantDay) (*ImportantDay, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
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
	s.importantDays[d.ID] = d
	return &d, nil
}

func (s *MemStore) UpdateImportantDay(ctx context.Context, id string, patch UpdateImportantDay) (*ImportantDay, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	d, ok := s.importantDays[id]
	if !ok {
		return nil, nil
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
	s.importantDays[id] = d
	return &d, nil
}

func (s *MemStore) DeleteImportantDay(ctx context.Context, id string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.importantDays[id]; !ok {
		return false, nil
	}
	delete(s.importantDays, id)
	return true, nil
}
