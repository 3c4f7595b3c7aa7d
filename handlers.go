package inkwell

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/inkwell-cms/inkwell/views"
)

func (a *App) site() views.Site {
	return views.Site{
		Name:        a.Config.Name,
		Description: a.Config.Description,
		URL:         a.Config.URL,
	}
}

func articleView(art Article) views.ArticleView {
	v := views.ArticleView{
		Slug:    art.Slug,
		Title:   art.Title,
		Teaser:  art.Teaser,
		Content: art.Content,
		Link:    art.Link,
	}
	if art.Published() {
		v.Published = art.PublishedAt.Format("2006-01-02")
	}
	return v
}

func (a *App) handleHome(c echo.Context) error {
	articles, err := a.Cache.ListArticles()
	if err != nil {
		return err
	}
	items := make([]views.ArticleView, 0, len(articles))
	for _, art := range articles {
		items = append(items, articleView(art))
	}
	return Render(c, views.Home(a.site(), items))
}

func (a *App) handleArticle(c echo.Context) error {
	slug := c.Param("slug")
	art, err := a.Cache.GetArticle(slug)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return RenderStatus(c, http.StatusNotFound, views.NotFound(a.site()))
		}
		return err
	}

	// A page view bumps the per-article counter; failures never block the
	// response.
	if _, err := a.Store.IncrementCounter("views:" + slug); err != nil {
		a.Log.Warn("counter increment failed", zap.String("slug", slug), zap.Error(err))
	}

	var next *views.ArticleView
	if n, err := a.Store.NextArticle(slug); err == nil {
		v := articleView(n)
		next = &v
	} else if !errors.Is(err, ErrNotFound) {
		return err
	}

	view := articleView(art)
	return Render(c, views.Article(a.site(), view, next))
}

func handleBlogRedirect(c echo.Context) error {
	return c.Redirect(http.StatusMovedPermanently, "/")
}

func (a *App) handleRobots(c echo.Context) error {
	sitemap := strings.TrimSuffix(a.Config.URL, "/") + "/sitemap.xml"
	return c.String(http.StatusOK, "User-agent: *\nAllow: /\nSitemap: "+sitemap+"\n")
}

func (a *App) handleFeed(c echo.Context) error {
	articles, err := a.Cache.ListArticles()
	if err != nil {
		return err
	}
	return a.renderRSS(c, articles)
}

func (a *App) handleSitemap(c echo.Context) error {
	articles, err := a.Cache.ListArticles()
	if err != nil {
		return err
	}
	return a.renderSitemap(c, articles)
}

func (a *App) handleListArticles(c echo.Context) error {
	articles, err := a.Store.ListArticles(CurrentActor(c))
	if err != nil {
		return err
	}
	if articles == nil {
		articles = []Article{}
	}
	return c.JSON(http.StatusOK, articles)
}

func (a *App) handleGetArticle(c echo.Context) error {
	art, err := a.Store.GetArticleBySlug(c.Param("slug"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, art)
}

func (a *App) handleNextArticle(c echo.Context) error {
	art, err := a.Store.NextArticle(c.Param("slug"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, art)
}

func (a *App) handleSearch(c echo.Context) error {
	results, err := a.Store.Search(c.QueryParam("q"), CurrentActor(c), a.Config.Shortcuts)
	if err != nil {
		return err
	}
	if results == nil {
		results = []SearchResult{}
	}
	return c.JSON(http.StatusOK, results)
}

func (a *App) handleGetPage(c echo.Context) error {
	var payload json.RawMessage
	if err := a.Store.GetPage(c.Param("id"), &payload); err != nil {
		return err
	}
	return c.JSONBlob(http.StatusOK, payload)
}

func (a *App) handleCounter(c echo.Context) error {
	count, err := a.Store.IncrementCounter(c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, map[string]int64{"count": count})
}

func (a *App) handleGetAsset(c echo.Context) error {
	asset, err := a.Store.GetAsset(c.Param("*"))
	if err != nil {
		return err
	}
	c.Response().Header().Set("Last-Modified", asset.LastModified.UTC().Format(http.TimeFormat))
	c.Response().Header().Set("Content-Disposition", `inline; filename="`+asset.Filename+`"`)
	return c.Blob(http.StatusOK, asset.MimeType, asset.Data)
}

func (a *App) httpErrorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}

	code := http.StatusInternalServerError
	switch {
	case errors.Is(err, ErrNotFound):
		code = http.StatusNotFound
	case errors.Is(err, ErrUnauthorized), errors.Is(err, ErrAuthenticationFailed):
		code = http.StatusUnauthorized
	default:
		if he, ok := err.(*echo.HTTPError); ok {
			code = he.Code
		}
	}

	if code >= 500 {
		a.Log.Error("server error", zap.String("uri", c.Request().RequestURI), zap.Error(err))
	}

	isAPI := strings.HasPrefix(c.Request().URL.Path, "/api/") ||
		strings.HasPrefix(c.Request().URL.Path, "/admin/") ||
		strings.HasPrefix(c.Request().URL.Path, "/assets/")
	if isAPI {
		_ = c.JSON(code, map[string]string{"error": http.StatusText(code)})
		return
	}
	if code == http.StatusNotFound {
		_ = RenderStatus(c, code, views.NotFound(a.site()))
		return
	}
	if code >= 500 {
		_ = RenderStatus(c, code, views.ServerError(a.site()))
		return
	}
	a.Echo.DefaultHTTPErrorHandler(err, c)
}
