// Package inkwell is a small content-management backend built with Go, Echo,
// and SQLite. It persists blog articles, static pages, visitor counters,
// admin sessions, and binary assets in one database, and serves the queries
// needed to render a blog: listing, search, previous/next navigation, and
// raw asset retrieval.
package inkwell

import (
	"fmt"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
	_ "modernc.org/sqlite"
)

// App is the central inkwell application. It wires together the store, the
// article cache, handlers, and middleware.
type App struct {
	Config SiteConfig
	Echo   *echo.Echo
	Store  *Store
	Cache  *ArticleCache
	Log    *zap.Logger

	loginLimiter *LoginLimiter
	stopSweeper  func()
}

// New creates a new inkwell App with the given configuration.
func New(cfg SiteConfig) *App {
	cfg.setDefaults()
	return &App{
		Config: cfg,
		Echo:   echo.New(),
		Log:    NewLogger(cfg),
	}
}

// Start initializes the database, cache, middleware, and routes, then starts
// the server. It blocks until the server stops.
func (a *App) Start() error {
	if a.Config.AdminPassword == "" && a.Config.AdminPasswordHash == "" {
		return fmt.Errorf("inkwell: AdminPassword or AdminPasswordHash is required")
	}
	if a.Config.SessionSecret == "" {
		return fmt.Errorf("inkwell: SessionSecret is required")
	}

	store, err := NewStore(a.Config.DatabasePath, AuthConfig{
		Password:     a.Config.AdminPassword,
		PasswordHash: a.Config.AdminPasswordHash,
	})
	if err != nil {
		return fmt.Errorf("inkwell: init store: %w", err)
	}
	a.Store = store

	a.Cache = NewArticleCache(a.Store, a.Config.ArticleCacheTTL)
	a.loginLimiter = NewLoginLimiter(5, time.Minute)
	a.stopSweeper = a.Store.StartSessionSweeper(time.Hour, a.Log)

	a.setupMiddleware()
	a.setupRoutes()

	a.Log.Info("starting server", zap.String("addr", a.Config.Addr))
	if err := a.Echo.Start(a.Config.Addr); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

func (a *App) setupRoutes() {
	e := a.Echo

	// Public HTML pages
	e.GET("/", a.handleHome)
	e.GET("/blog", handleBlogRedirect)
	e.GET("/blog/:slug/", a.handleArticle)
	e.GET("/feed.xml", a.handleFeed)
	e.GET("/sitemap.xml", a.handleSitemap)
	e.GET("/robots.txt", a.handleRobots)

	// Public JSON API
	e.GET("/api/articles", a.handleListArticles)
	e.GET("/api/articles/:slug", a.handleGetArticle)
	e.GET("/api/articles/:slug/next", a.handleNextArticle)
	e.GET("/api/search", a.handleSearch)
	e.GET("/api/pages/:id", a.handleGetPage)
	e.POST("/api/counters/:id", a.handleCounter)
	e.GET("/assets/*", a.handleGetAsset)

	// Admin
	e.POST("/admin/login/", a.handleAdminLogin)
	e.POST("/admin/logout/", a.handleAdminLogout)
	admin := e.Group("/admin", a.requireActor)
	admin.GET("/articles/", a.handleAdminListArticles)
	admin.POST("/articles/", a.handleAdminCreateArticle)
	admin.PUT("/articles/:slug", a.handleAdminUpdateArticle)
	admin.DELETE("/articles/:slug", a.handleAdminDeleteArticle)
	admin.PUT("/pages/:id", a.handleAdminSavePage)
	admin.POST("/assets/*", a.handleAdminStoreAsset)
}

// Close cleans up resources. Call this when the app is shutting down.
func (a *App) Close() error {
	if a.stopSweeper != nil {
		a.stopSweeper()
	}
	if a.Store != nil {
		return a.Store.Close()
	}
	return nil
}
