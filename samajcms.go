// Package samajcms is the backend for a cultural community organization's
// content-managed website. It exposes a REST/JSON API for blog posts, gallery
// items, publications, important days, and categories, backed by either an
// in-memory store or SQLite.
package samajcms

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
)

// App wires the storage backend, configuration, and HTTP routes together.
// The backend is chosen once at startup and injected; nothing in the package
// reaches for a global store.
type App struct {
	Config Config
	Echo   *echo.Echo

	store Storage
}

// New creates an App serving the API from the given storage backend.
func New(cfg Config, store Storage) *App {
	a := &App{
		Config: cfg,
		Echo:   echo.New(),
		store:  store,
	}
	a.Echo.HideBanner = true
	a.setupMiddleware()
	a.setupRoutes()
	return a
}

func (a *App) setupMiddleware() {
	e := a.Echo

	e.Use(middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogStatus:  true,
		LogURI:     true,
		LogMethod:  true,
		LogLatency: true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			c.Logger().Infof("%s %s -> %d (%s)", v.Method, v.URI, v.Status, v.Latency)
			return nil
		},
	}))

	e.Use(middleware.Recover())

	// The public site is a separate client app served from its own origin.
	e.Use(middleware.CORS())

	e.Use(apiCacheControl)
}

// apiCacheControl keeps admin-editable API responses out of shared caches;
// the feed may be cached for a day.
func apiCacheControl(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		path := c.Request().URL.Path
		switch {
		case strings.HasPrefix(path, "/api/"):
			c.Response().Header().Set("Cache-Control", "no-store")
		case path == "/feed.xml":
			c.Response().Header().Set("Cache-Control", "public, max-age=86400")
		}
		return next(c)
	}
}

func (a *App) setupRoutes() {
	e := a.Echo

	// Blog posts
	e.GET("/api/posts", a.handleListPosts)
	e.GET("/api/posts/slug/:slug", a.handleGetPostBySlug)
	e.GET("/api/posts/:id", a.handleGetPost)
	e.POST("/api/posts", a.handleCreatePost)
	e.PUT("/api/posts/:id", a.handleUpdatePost)
	e.DELETE("/api/posts/:id", a.handleDeletePost)

	// Gallery
	e.GET("/api/gallery", a.handleListGallery)
	e.GET("/api/gallery/:id", a.handleGetGalleryItem)
	e.POST("/api/gallery", a.handleCreateGalleryItem)
	e.PUT("/api/gallery/:id", a.handleUpdateGalleryItem)
	e.DELETE("/api/gallery/:id", a.handleDeleteGalleryItem)

	// Publications
	e.GET("/api/publications", a.handleListPublications)
	e.GET("/api/publications/:id", a.handleGetPublication)
	e.POST("/api/publications", a.handleCreatePublication)
	e.PUT("/api/publications/:id", a.handleUpdatePublication)
	e.DELETE("/api/publications/:id", a.handleDeletePublication)

	// Important days
	e.GET("/api/important-days", a.handleListImportantDays)
	e.GET("/api/important-days/:id", a.handleGetImportantDay)
	e.POST("/api/important-days", a.handleCreateImportantDay)
	e.PUT("/api/important-days/:id", a.handleUpdateImportantDay)
	e.DELETE("/api/important-days/:id", a.handleDeleteImportantDay)

	// Categories
	e.GET("/api/categories", a.handleListCategories)
	e.GET("/api/categories/:id", a.handleGetCategory)
	e.POST("/api/categories", a.handleCreateCategory)

	// Auth
	e.GET("/api/auth/me", a.handleAuthMe)

	// News feed
	e.GET("/feed.xml", a.handleFeed)
}

// Start runs the HTTP server on the configured address and blocks until the
// server stops.
func (a *App) Start() error {
	if err := a.Echo.Start(a.Config.Addr); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

// Close releases the storage backend.
func (a *App) Close() error {
	return a.store.Close()
}
