package samajcms

import "errors"

// errMissingField rejects a create payload that omits a required field. The
// API reports it as a generic 400; the specific field is only logged.
var errMissingField = errors.New("missing required field")

// InsertUser is the create payload for a user account.
type InsertUser struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

func (in *InsertUser) Validate() error {
	if in.Username == "" || in.Password == "" {
		return errMissingField
	}
	return nil
}

// InsertCategory is the create payload for a category.
type InsertCategory struct {
	Name        string  `json:"name"`
	Slug        string  `json:"slug"`
	Description *string `json:"description"`
}

func (in *InsertCategory) Validate() error {
	if in.Name == "" || in.Slug == "" {
		return errMissingField
	}
	return nil
}

// InsertBlogPost is the create payload for a blog post. The author is
// resolved server-side, not taken from the request.
type InsertBlogPost struct {
	Title      string  `json:"title"`
	Slug       string  `json:"slug"`
	Content    string  `json:"content"`
	Excerpt    *string `json:"excerpt"`
	CoverImage *string `json:"coverImage"`
	CategoryID *string `json:"categoryId"`
	Published  bool    `json:"published"`
	Featured   bool    `json:"featured"`
}

func (in *InsertBlogPost) Validate() error {
	if in.Title == "" || in.Slug == "" || in.Content == "" {
		return errMissingField
	}
	return nil
}

// UpdateBlogPost is a partial patch: nil fields are left untouched.
// Published being a pointer distinguishes "omitted" from "set to false",
// which decides whether PublishedAt is refreshed.
type UpdateBlogPost struct {
	Title      *string `json:"title"`
	Slug       *string `json:"slug"`
	Content    *string `json:"content"`
	Excerpt    *string `json:"excerpt"`
	CoverImage *string `json:"coverImage"`
	CategoryID *string `json:"categoryId"`
	Published  *bool   `json:"published"`
	Featured   *bool   `json:"featured"`
}

// InsertGalleryItem is the create payload for a gallery item.
type InsertGalleryItem struct {
	Title       string  `json:"title"`
	Description *string `json:"description"`
	Type        string  `json:"type"`
	Src         string  `json:"src"`
	Thumbnail   *string `json:"thumbnail"`
	Category    string  `json:"category"`
	Featured    bool    `json:"featured"`
}

func (in *InsertGalleryItem) Validate() error {
	if in.Title == "" || in.Type == "" || in.Src == "" || in.Category == "" {
		return errMissingField
	}
	return nil
}

// UpdateGalleryItem is a partial patch for a gallery item.
type UpdateGalleryItem struct {
	Title       *string `json:"title"`
	Description *string `json:"description"`
	Type        *string `json:"type"`
	Src         *string `json:"src"`
	Thumbnail   *string `json:"thumbnail"`
	Category    *string `json:"category"`
	Featured    *bool   `json:"featured"`
}

// InsertPublication is the create payload for a publication.
type InsertPublication struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Category    string `json:"category"`
	FileURL     string `json:"fileUrl"`
	FileSize    string `json:"fileSize"`
	Featured    bool   `json:"featured"`
}

func (in *InsertPublication) Validate() error {
	if in.Title == "" || in.Description == "" || in.Category == "" || in.FileURL == "" || in.FileSize == "" {
		return errMissingField
	}
	return nil
}

// UpdatePublication is a partial patch for a publication.
type UpdatePublication struct {
	Title       *string `json:"title"`
	Description *string `json:"description"`
	Category    *string `json:"category"`
	FileURL     *string `json:"fileUrl"`
	FileSize    *string `json:"fileSize"`
	Featured    *bool   `json:"featured"`
}

// InsertImportantDay is the create payload for an important day.
type InsertImportantDay struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Date        string `json:"date"`
	Time        string `json:"time"`
	Category    string `json:"category"`
	Featured    bool   `json:"featured"`
	IsUpcoming  *bool  `json:"isUpcoming"`
}

func (in *InsertImportantDay) Validate() error {
	if in.Title == "" || in.Description == "" || in.Date == "" || in.Time == "" || in.Category == "" {
		return errMissingField
	}
	return nil
}

// Upcoming resolves the optional isUpcoming flag, defaulting to true.
func (in *InsertImportantDay) Upcoming() bool {
	if in.IsUpcoming == nil {
		return true
	}
	return *in.IsUpcoming
}

// UpdateImportantDay is a partial patch for an important day.
type UpdateImportantDay struct {
	Title       *string `json:"title"`
	Description *string `json:"description"`
	Date        *string `json:"date"`
	Time        *string `json:"time"`
	Category    *string `json:"category"`
	Featured    *bool   `json:"featured"`
	IsUpcoming  *bool   `json:"isUpcoming"`
}
