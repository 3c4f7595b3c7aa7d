package inkwell

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

// maxUploadSize caps admin asset uploads. The store itself has no limit, but
// it reads the whole payload into memory, so the HTTP layer bounds it.
const maxUploadSize = 10 << 20 // 10MB

func (a *App) handleAdminLogin(c echo.Context) error {
	ip := c.RealIP()
	if !a.loginLimiter.Check(ip) {
		return c.String(http.StatusTooManyRequests, "Too many login attempts. Try again later.")
	}
	sessionID, err := a.Store.Authenticate(c.FormValue("password"), a.Config.SessionTTL)
	if err != nil {
		if errors.Is(err, ErrAuthenticationFailed) {
			a.loginLimiter.Record(ip)
		}
		return err
	}
	if err := a.setSessionCookie(c, sessionID); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, map[string]bool{"ok": true})
}

func (a *App) handleAdminLogout(c echo.Context) error {
	if id := a.cookieSessionID(c); id != "" {
		if err := a.Store.DestroySession(id); err != nil {
			return err
		}
	}
	if err := a.clearSessionCookie(c); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, map[string]bool{"ok": true})
}

func (a *App) handleAdminListArticles(c echo.Context) error {
	articles, err := a.Store.ListArticles(CurrentActor(c))
	if err != nil {
		return err
	}
	if articles == nil {
		articles = []Article{}
	}
	return c.JSON(http.StatusOK, articles)
}

type articleRequest struct {
	Title   string `json:"title"`
	Content string `json:"content"`
	Teaser  string `json:"teaser"`
}

func (a *App) handleAdminCreateArticle(c echo.Context) error {
	var req articleRequest
	if err := c.Bind(&req); err != nil {
		return err
	}
	art, err := a.Store.CreateArticle(req.Title, req.Content, req.Teaser, CurrentActor(c))
	if err != nil {
		return err
	}
	a.Cache.Invalidate()
	return c.JSON(http.StatusCreated, map[string]any{
		"slug":      art.Slug,
		"createdAt": art.CreatedAt.Format(time.RFC3339),
	})
}

func (a *App) handleAdminUpdateArticle(c echo.Context) error {
	var req articleRequest
	if err := c.Bind(&req); err != nil {
		return err
	}
	slug := c.Param("slug")
	updatedAt, err := a.Store.UpdateArticle(slug, req.Title, req.Content, req.Teaser, CurrentActor(c))
	if err != nil {
		return err
	}
	a.Cache.Invalidate()
	return c.JSON(http.StatusOK, map[string]any{
		"slug":      slug,
		"updatedAt": updatedAt.Format(time.RFC3339),
	})
}

func (a *App) handleAdminDeleteArticle(c echo.Context) error {
	deleted, err := a.Store.DeleteArticle(c.Param("slug"), CurrentActor(c))
	if err != nil {
		return err
	}
	a.Cache.Invalidate()
	return c.JSON(http.StatusOK, map[string]bool{"deleted": deleted})
}

func (a *App) handleAdminSavePage(c echo.Context) error {
	body, err := io.ReadAll(c.Request().Body)
	if err != nil {
		return err
	}
	var payload json.RawMessage
	if err := json.Unmarshal(body, &payload); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "page data must be valid JSON")
	}
	pageID, err := a.Store.CreateOrUpdatePage(c.Param("id"), payload, CurrentActor(c))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, map[string]string{"pageId": pageID})
}

func (a *App) handleAdminStoreAsset(c echo.Context) error {
	assetID := c.Param("*")
	if assetID == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "asset id required")
	}

	file, err := c.FormFile("file")
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "no file provided")
	}
	if file.Size > maxUploadSize {
		return echo.NewHTTPError(http.StatusBadRequest, "file too large (max 10MB)")
	}

	src, err := file.Open()
	if err != nil {
		return err
	}
	defer src.Close()

	data, err := io.ReadAll(src)
	if err != nil {
		return err
	}

	mimeType := file.Header.Get("Content-Type")
	if mimeType == "" {
		mimeType = http.DetectContentType(data)
	}

	if err := a.Store.StoreAsset(assetID, mimeType, bytes.NewReader(data)); err != nil {
		return err
	}

	// Raster images additionally get a scaled-down variant under thumbs/.
	if IsRasterImage(mimeType) {
		thumb, err := Thumbnail(bytes.NewReader(data))
		if err != nil {
			a.Log.Warn("thumbnail generation failed", zap.String("asset", assetID), zap.Error(err))
		} else if err := a.Store.StoreAsset(ThumbPrefix+assetID, "image/jpeg", bytes.NewReader(thumb)); err != nil {
			return err
		}
	}

	return c.JSON(http.StatusCreated, map[string]any{
		"assetId": assetID,
		"size":    len(data),
	})
}
