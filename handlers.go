package samajcms

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
)

// errorBody is the fixed-shape JSON error response. Clients never see
// internal error detail, only these strings.
type errorBody struct {
	Error string `json:"error"`
}

func jsonError(c echo.Context, code int, msg string) error {
	return c.JSON(code, errorBody{Error: msg})
}

// --- Blog posts ---

func (a *App) handleListPosts(c echo.Context) error {
	ctx := c.Request().Context()
	var posts []BlogPost
	var err error
	if c.QueryParam("all") == "true" {
		posts, err = a.store.AllBlogPosts(ctx)
	} else {
		posts, err = a.store.PublishedBlogPosts(ctx)
	}
	if err != nil {
		c.Logger().Errorf("fetch posts: %v", err)
		return jsonError(c, http.StatusInternalServerError, "Failed to fetch posts")
	}
	if posts == nil {
		posts = []BlogPost{}
	}
	return c.JSON(http.StatusOK, posts)
}

func (a *App) handleGetPost(c echo.Context) error {
	post, err := a.store.GetBlogPost(c.Request().Context(), c.Param("id"))
	if err != nil {
		c.Logger().Errorf("fetch post: %v", err)
		return jsonError(c, http.StatusInternalServerError, "Failed to fetch post")
	}
	if post == nil {
		return jsonError(c, http.StatusNotFound, "Post not found")
	}
	return c.JSON(http.StatusOK, post)
}

func (a *App) handleGetPostBySlug(c echo.Context) error {
	post, err := a.store.GetBlogPostBySlug(c.Request().Context(), c.Param("slug"))
	if err != nil {
		c.Logger().Errorf("fetch post by slug: %v", err)
		return jsonError(c, http.StatusInternalServerError, "Failed to fetch post")
	}
	if post == nil {
		return jsonError(c, http.StatusNotFound, "Post not found")
	}
	return c.JSON(http.StatusOK, post)
}

func (a *App) handleCreatePost(c echo.Context) error {
	ctx := c.Request().Context()
	var in InsertBlogPost
	if err := c.Bind(&in); err != nil {
		return jsonError(c, http.StatusBadRequest, "Invalid data")
	}
	if err := in.Validate(); err != nil {
		c.Logger().Errorf("create post: %v", err)
		return jsonError(c, http.StatusBadRequest, "Invalid data")
	}
	// Posts are always attributed to the admin account until real
	// authentication exists.
	admin, err := a.store.GetUserByUsername(ctx, "admin")
	if err != nil {
		c.Logger().Errorf("create post: admin lookup: %v", err)
		return jsonError(c, http.StatusInternalServerError, "Failed to create post")
	}
	if admin == nil {
		return jsonError(c, http.StatusBadRequest, "No admin user found")
	}
	post, err := a.store.CreateBlogPost(ctx, in, admin.ID)
	if errors.Is(err, ErrDuplicate) {
		return jsonError(c, http.StatusBadRequest, "Invalid data")
	}
	if err != nil {
		c.Logger().Errorf("create post: %v", err)
		return jsonError(c, http.StatusInternalServerError, "Failed to create post")
	}
	return c.JSON(http.StatusCreated, post)
}

func (a *App) handleUpdatePost(c echo.Context) error {
	var patch UpdateBlogPost
	if err := c.Bind(&patch); err != nil {
		return jsonError(c, http.StatusBadRequest, "Invalid data")
	}
	post, err := a.store.UpdateBlogPost(c.Request().Context(), c.Param("id"), patch)
	if errors.Is(err, ErrDuplicate) {
		return jsonError(c, http.StatusBadRequest, "Invalid data")
	}
	if err != nil {
		c.Logger().Errorf("update post: %v", err)
		return jsonError(c, http.StatusInternalServerError, "Failed to update post")
	}
	if post == nil {
		return jsonError(c, http.StatusNotFound, "Post not found")
	}
	return c.JSON(http.StatusOK, post)
}

func (a *App) handleDeletePost(c echo.Context) error {
	ok, err := a.store.DeleteBlogPost(c.Request().Context(), c.Param("id"))
	if err != nil {
		c.Logger().Errorf("delete post: %v", err)
		return jsonError(c, http.StatusInternalServerError, "Failed to delete post")
	}
	if !ok {
		return jsonError(c, http.StatusNotFound, "Post not found")
	}
	return c.NoContent(http.StatusNoContent)
}

// --- Gallery ---

func (a *App) handleListGallery(c echo.Context) error {
	items, err := a.store.AllGalleryItems(c.Request().Context())
	if err != nil {
		c.Logger().Errorf("fetch gallery items: %v", err)
		return jsonError(c, http.StatusInternalServerError, "Failed to fetch gallery items")
	}
	if items == nil {
		items = []GalleryItem{}
	}
	return c.JSON(http.StatusOK, items)
}

func (a *App) handleGetGalleryItem(c echo.Context) error {
	item, err := a.store.GetGalleryItem(c.Request().Context(), c.Param("id"))
	if err != nil {
		c.Logger().Errorf("fetch gallery item: %v", err)
		return jsonError(c, http.StatusInternalServerError, "Failed to fetch gallery item")
	}
	if item == nil {
		return jsonError(c, http.StatusNotFound, "Gallery item not found")
	}
	return c.JSON(http.StatusOK, item)
}

func (a *App) handleCreateGalleryItem(c echo.Context) error {
	var in InsertGalleryItem
	if err := c.Bind(&in); err != nil {
		return jsonError(c, http.StatusBadRequest, "Invalid data")
	}
	if err := in.Validate(); err != nil {
		c.Logger().Errorf("create gallery item: %v", err)
		return jsonError(c, http.StatusBadRequest, "Invalid data")
	}
	item, err := a.store.CreateGalleryItem(c.Request().Context(), in)
	if err != nil {
		c.Logger().Errorf("create gallery item: %v", err)
		return jsonError(c, http.StatusInternalServerError, "Failed to create gallery item")
	}
	return c.JSON(http.StatusCreated, item)
}

func (a *App) handleUpdateGalleryItem(c echo.Context) error {
	var patch UpdateGalleryItem
	if err := c.Bind(&patch); err != nil {
		return jsonError(c, http.StatusBadRequest, "Invalid data")
	}
	item, err := a.store.UpdateGalleryItem(c.Request().Context(), c.Param("id"), patch)
	if err != nil {
		c.Logger().Errorf("update gallery item: %v", err)
		return jsonError(c, http.StatusInternalServerError, "Failed to update gallery item")
	}
	if item == nil {
		return jsonError(c, http.StatusNotFound, "Gallery item not found")
	}
	return c.JSON(http.StatusOK, item)
}

func (a *App) handleDeleteGalleryItem(c echo.Context) error {
	ok, err := a.store.DeleteGalleryItem(c.Request().Context(), c.Param("id"))
	if err != nil {
		c.Logger().Errorf("delete gallery item: %v", err)
		return jsonError(c, http.StatusInternalServerError, "Failed to delete gallery item")
	}
	if !ok {
		return jsonError(c, http.StatusNotFound, "Gallery item not found")
	}
	return c.NoContent(http.StatusNoContent)
}

// --- Publications ---

func (a *App) handleListPublications(c echo.Context) error {
	pubs, err := a.store.AllPublications(c.Request().Context())
	if err != nil {
		c.Logger().Errorf("fetch publications: %v", err)
		return jsonError(c, http.StatusInternalServerError, "Failed to fetch publications")
	}
	if pubs == nil {
		pubs = []Publication{}
	}
	return c.JSON(http.StatusOK, pubs)
}

func (a *App) handleGetPublication(c echo.Context) error {
	pub, err := a.store.GetPublication(c.Request().Context(), c.Param("id"))
	if err != nil {
		c.Logger().Errorf("fetch publication: %v", err)
		return jsonError(c, http.StatusInternalServerError, "Failed to fetch publication")
	}
	if pub == nil {
		return jsonError(c, http.StatusNotFound, "Publication not found")
	}
	return c.JSON(http.StatusOK, pub)
}

func (a *App) handleCreatePublication(c echo.Context) error {
	var in InsertPublication
	if err := c.Bind(&in); err != nil {
		return jsonError(c, http.StatusBadRequest, "Invalid data")
	}
	if err := in.Validate(); err != nil {
		c.Logger().Errorf("create publication: %v", err)
		return jsonError(c, http.StatusBadRequest, "Invalid data")
	}
	pub, err := a.store.CreatePublication(c.Request().Context(), in)
	if err != nil {
		c.Logger().Errorf("create publication: %v", err)
		return jsonError(c, http.StatusInternalServerError, "Failed to create publication")
	}
	return c.JSON(http.StatusCreated, pub)
}

func (a *App) handleUpdatePublication(c echo.Context) error {
	var patch UpdatePublication
	if err := c.Bind(&patch); err != nil {
		return jsonError(c, http.StatusBadRequest, "Invalid data")
	}
	pub, err := a.store.UpdatePublication(c.Request().Context(), c.Param("id"), patch)
	if err != nil {
		c.Logger().Errorf("update publication: %v", err)
		return jsonError(c, http.StatusInternalServerError, "Failed to update publication")
	}
	if pub == nil {
		return jsonError(c, http.StatusNotFound, "Publication not found")
	}
	return c.JSON(http.StatusOK, pub)
}

func (a *App) handleDeletePublication(c echo.Context) error {
	ok, err := a.store.DeletePublication(c.Request().Context(), c.Param("id"))
	if err != nil {
		c.Logger().Errorf("delete publication: %v", err)
		return jsonError(c, http.StatusInternalServerError, "Failed to delete publication")
	}
	if !ok {
		return jsonError(c, http.StatusNotFound, "Publication not found")
	}
	return c.NoContent(http.StatusNoContent)
}

// --- Important days ---

func (a *App) handleListImportantDays(c echo.Context) error {
	days, err := a.store.AllImportantDays(c.Request().Context())
	if err != nil {
		c.Logger().Errorf("fetch important days: %v", err)
		return jsonError(c, http.StatusInternalServerError, "Failed to fetch important days")
	}
	if days == nil {
		days = []ImportantDay{}
	}
	return c.JSON(http.StatusOK, days)
}

func (a *App) handleGetImportantDay(c echo.Context) error {
	day, err := a.store.GetImportantDay(c.Request().Context(), c.Param("id"))
	if err != nil {
		c.Logger().Errorf("fetch important day: %v", err)
		return jsonError(c, http.StatusInternalServerError, "Failed to fetch important day")
	}
	if day == nil {
		return jsonError(c, http.StatusNotFound, "Important day not found")
	}
	return c.JSON(http.StatusOK, day)
}

func (a *App) handleCreateImportantDay(c echo.Context) error {
	var in InsertImportantDay
	if err := c.Bind(&in); err != nil {
		return jsonError(c, http.StatusBadRequest, "Invalid data")
	}
	if err := in.Validate(); err != nil {
		c.Logger().Errorf("create important day: %v", err)
		return jsonError(c, http.StatusBadRequest, "Invalid data")
	}
	day, err := a.store.CreateImportantDay(c.Request().Context(), in)
	if err != nil {
		c.Logger().Errorf("create important day: %v", err)
		return jsonError(c, http.StatusInternalServerError, "Failed to create important day")
	}
	return c.JSON(http.StatusCreated, day)
}

func (a *App) handleUpdateImportantDay(c echo.Context) error {
	var patch UpdateImportantDay
	if err := c.Bind(&patch); err != nil {
		return jsonError(c, http.StatusBadRequest, "Invalid data")
	}
	day, err := a.store.UpdateImportantDay(c.Request().Context(), c.Param("id"), patch)
	if err != nil {
		c.Logger().Errorf("update important day: %v", err)
		return jsonError(c, http.StatusInternalServerError, "Failed to update important day")
	}
	if day == nil {
		return jsonError(c, http.StatusNotFound, "Important day not found")
	}
	return c.JSON(http.StatusOK, day)
}

func (a *App) handleDeleteImportantDay(c echo.Context) error {
	ok, err := a.store.DeleteImportantDay(c.Request().Context(), c.Param("id"))
	if err != nil {
		c.Logger().Errorf("delete important day: %v", err)
		return jsonError(c, http.StatusInternalServerError, "Failed to delete important day")
	}
	if !ok {
		return jsonError(c, http.StatusNotFound, "Important day not found")
	}
	return c.NoContent(http.StatusNoContent)
}

// --- Categories ---

func (a *App) handleListCategories(c echo.Context) error {
	cats, err := a.store.AllCategories(c.Request().Context())
	if err != nil {
		c.Logger().Errorf("fetch categories: %v", err)
		return jsonError(c, http.StatusInternalServerError, "Failed to fetch categories")
	}
	if cats == nil {
		cats = []Category{}
	}
	return c.JSON(http.StatusOK, cats)
}

func (a *App) handleGetCategory(c echo.Context) error {
	cat, err := a.store.GetCategory(c.Request().Context(), c.Param("id"))
	if err != nil {
		c.Logger().Errorf("fetch category: %v", err)
		return jsonError(c, http.StatusInternalServerError, "Failed to fetch category")
	}
	if cat == nil {
		return jsonError(c, http.StatusNotFound, "Category not found")
	}
	return c.JSON(http.StatusOK, cat)
}

func (a *App) handleCreateCategory(c echo.Context) error {
	var in InsertCategory
	if err := c.Bind(&in); err != nil {
		return jsonError(c, http.StatusBadRequest, "Invalid data")
	}
	if err := in.Validate(); err != nil {
		return jsonError(c, http.StatusBadRequest, "Invalid data")
	}
	cat, err := a.store.CreateCategory(c.Request().Context(), in)
	if errors.Is(err, ErrDuplicate) {
		return jsonError(c, http.StatusBadRequest, "Invalid data")
	}
	if err != nil {
		c.Logger().Errorf("create category: %v", err)
		return jsonError(c, http.StatusInternalServerError, "Failed to create category")
	}
	return c.JSON(http.StatusCreated, cat)
}

// --- Auth ---

// authMeResponse is the identity subset exposed by /api/auth/me.
type authMeResponse struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	IsAdmin  bool   `json:"isAdmin"`
}

// handleAuthMe reports the static admin identity. There is no session
// handling yet; the endpoint exists so the admin UI can render.
func (a *App) handleAuthMe(c echo.Context) error {
	admin, err := a.store.GetUserByUsername(c.Request().Context(), "admin")
	if err != nil {
		c.Logger().Errorf("auth lookup: %v", err)
		return jsonError(c, http.StatusInternalServerError, "Failed to fetch user")
	}
	if admin == nil {
		return jsonError(c, http.StatusUnauthorized, "Not authenticated")
	}
	return c.JSON(http.StatusOK, authMeResponse{
		ID:       admin.ID,
		Username: admin.Username,
		IsAdmin:  admin.IsAdmin,
	})
}
