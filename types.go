package samajcms

import "time"

// User is a site account. Only the seeded admin exists in practice; the
// password hash never leaves the server.
type User struct {
	ID        string    `json:"id"`
	Username  string    `json:"username"`
	Password  string    `json:"-"`
	IsAdmin   bool      `json:"isAdmin"`
	CreatedAt time.Time `json:"createdAt"`
}

// Category groups blog posts. Name and slug are unique.
type Category struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Slug        string    `json:"slug"`
	Description *string   `json:"description"`
	CreatedAt   time.Time `json:"createdAt"`
}

// BlogPost is a news article. PublishedAt is set when the post first goes
// live and is not cleared if it is later unpublished.
type BlogPost struct {
	ID          string     `json:"id"`
	Title       string     `json:"title"`
	Slug        string     `json:"slug"`
	Content     string     `json:"content"`
	Excerpt     *string    `json:"excerpt"`
	CoverImage  *string    `json:"coverImage"`
	AuthorID    string     `json:"authorId"`
	CategoryID  *string    `json:"categoryId"`
	Published   bool       `json:"published"`
	Featured    bool       `json:"featured"`
	PublishedAt *time.Time `json:"publishedAt"`
	CreatedAt   time.Time  `json:"createdAt"`
	UpdatedAt   time.Time  `json:"updatedAt"`
}

// GalleryItem is a photo or video shown on the gallery page. Type is "image"
// or "video" by convention; the server does not enforce an enum.
type GalleryItem struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description *string   `json:"description"`
	Type        string    `json:"type"`
	Src         string    `json:"src"`
	Thumbnail   *string   `json:"thumbnail"`
	Category    string    `json:"category"`
	Featured    bool      `json:"featured"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// Publication is a downloadable document. FileSize is a display string
// such as "2.3 MB".
type Publication struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Category    string    `json:"category"`
	FileURL     string    `json:"fileUrl"`
	FileSize    string    `json:"fileSize"`
	Featured    bool      `json:"featured"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// ImportantDay is a festival or event on the community calendar. Date and
// time are display strings, not calendar types.
type ImportantDay struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Date        string    `json:"date"`
	Time        string    `json:"time"`
	Category    string    `json:"category"`
	Featured    bool      `json:"featured"`
	IsUpcoming  bool      `json:"isUpcoming"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}
