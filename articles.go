package inkwell

import (
	"database/sql"
	"strings"
	"time"
)

const articleColumns = `slug, title, content, teaser, created_at, updated_at, published_at`

// articleLinkPrefix is the public URL path under which articles are served.
const articleLinkPrefix = "/blog/"

func scanArticle(row interface{ Scan(...any) error }) (Article, error) {
	var a Article
	var createdAt, updatedAt string
	var publishedAt sql.NullString
	if err := row.Scan(&a.Slug, &a.Title, &a.Content, &a.Teaser, &createdAt, &updatedAt, &publishedAt); err != nil {
		return Article{}, err
	}
	a.CreatedAt = parseTime(createdAt)
	a.UpdatedAt = parseTime(updatedAt)
	a.PublishedAt = parseNullTime(publishedAt)
	a.Link = articleLinkPrefix + a.Slug
	return a, nil
}

// CreateArticle inserts a new article, published immediately. The slug is
// derived from the title; if it is already taken, a short random suffix is
// appended. A collision on the suffixed slug is not detected and surfaces as
// a uniqueness violation from SQLite.
func (s *Store) CreateArticle(title, content, teaser string, actor *Actor) (Article, error) {
	if actor == nil {
		return Article{}, ErrUnauthorized
	}
	slug := Slugify(title)
	if slug == "" {
		slug = ShortID()
	}
	var exists int
	err := s.db.QueryRow(`SELECT 1 FROM articles WHERE slug = ?`, slug).Scan(&exists)
	switch {
	case err == nil:
		slug = slug + "-" + ShortID()
	case err != sql.ErrNoRows:
		return Article{}, err
	}
	now := nowUTC()
	_, err = s.db.Exec(`INSERT INTO articles (slug, title, content, teaser, created_at, updated_at, published_at) VALUES (?, ?, ?, ?, ?, ?, ?)`,
		slug, title, content, teaser, fmtTime(now), fmtTime(now), fmtTime(now))
	if err != nil {
		return Article{}, err
	}
	return Article{
		Slug:        slug,
		Title:       title,
		Content:     content,
		Teaser:      teaser,
		Link:        articleLinkPrefix + slug,
		CreatedAt:   now,
		UpdatedAt:   now,
		PublishedAt: now,
	}, nil
}

// UpdateArticle overwrites title, content, and teaser of an existing article
// and refreshes updated_at. The slug and publish time are never touched.
// Updating a slug that does not exist returns ErrNotFound.
func (s *Store) UpdateArticle(slug, title, content, teaser string, actor *Actor) (time.Time, error) {
	if actor == nil {
		return time.Time{}, ErrUnauthorized
	}
	now := nowUTC()
	res, err := s.db.Exec(`UPDATE articles SET title = ?, content = ?, teaser = ?, updated_at = ? WHERE slug = ?`,
		title, content, teaser, fmtTime(now), slug)
	if err != nil {
		return time.Time{}, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return time.Time{}, err
	}
	if n == 0 {
		return time.Time{}, ErrNotFound
	}
	return now, nil
}

// DeleteArticle removes an article by slug and reports whether a row was
// actually deleted.
func (s *Store) DeleteArticle(slug string, actor *Actor) (bool, error) {
	if actor == nil {
		return false, ErrUnauthorized
	}
	res, err := s.db.Exec(`DELETE FROM articles WHERE slug = ?`, slug)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

// GetArticleBySlug returns a single article by slug regardless of publication
// state, or ErrNotFound.
func (s *Store) GetArticleBySlug(slug string) (Article, error) {
	row := s.db.QueryRow(`SELECT `+articleColumns+` FROM articles WHERE slug = ?`, slug)
	return scanArticle(row)
}

// ListArticles returns articles for listing pages. With an actor, every
// article is returned (drafts included) ordered by modified time descending.
// Without one, only published articles are returned, newest first. This is
// the authorization boundary between the admin and public views.
func (s *Store) ListArticles(actor *Actor) ([]Article, error) {
	var rows *sql.Rows
	var err error
	if actor != nil {
		rows, err = s.db.Query(`SELECT ` + articleColumns + ` FROM articles ORDER BY COALESCE(published_at, updated_at, created_at) DESC`)
	} else {
		rows, err = s.db.Query(`SELECT ` + articleColumns + ` FROM articles WHERE published_at IS NOT NULL ORDER BY published_at DESC`)
	}
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var articles []Article
	for rows.Next() {
		a, err := scanArticle(rows)
		if err != nil {
			return nil, err
		}
		articles = append(articles, a)
	}
	return articles, rows.Err()
}

// NextArticle returns the article a reader moves to from the given slug on a
// newest-first blog: the immediately older published article, or the most
// recently published one (excluding the given slug) when no older article
// exists. With a single published article, or none, it returns ErrNotFound.
func (s *Store) NextArticle(slug string) (Article, error) {
	row := s.db.QueryRow(`
SELECT `+articleColumns+` FROM (
    SELECT * FROM articles
     WHERE published_at IS NOT NULL
       AND published_at < (SELECT published_at FROM articles WHERE slug = ?1)
     ORDER BY published_at DESC LIMIT 1
)
UNION
SELECT `+articleColumns+` FROM (
    SELECT * FROM articles
     WHERE published_at IS NOT NULL AND slug != ?1
     ORDER BY published_at DESC LIMIT 1
)
ORDER BY published_at ASC
LIMIT 1`, slug)
	return scanArticle(row)
}

// Search returns articles whose title contains the query, case-insensitively,
// ordered by modified time descending. Publication visibility follows
// ListArticles. Static shortcuts whose name contains the query are appended
// after the database results.
func (s *Store) Search(query string, actor *Actor, shortcuts []Shortcut) ([]SearchResult, error) {
	pattern := "%" + strings.ToLower(query) + "%"
	q := `SELECT slug, title, COALESCE(published_at, updated_at, created_at) FROM articles
 WHERE lower(title) LIKE ?`
	if actor == nil {
		q += ` AND published_at IS NOT NULL`
	}
	q += ` ORDER BY COALESCE(published_at, updated_at, created_at) DESC`

	rows, err := s.db.Query(q, pattern)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var results []SearchResult
	for rows.Next() {
		var slug, title, modified string
		if err := rows.Scan(&slug, &title, &modified); err != nil {
			return nil, err
		}
		results = append(results, SearchResult{
			Name:       title,
			URL:        articleLinkPrefix + slug,
			ModifiedAt: parseTime(modified),
		})
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	needle := strings.ToLower(query)
	for _, sc := range shortcuts {
		if strings.Contains(strings.ToLower(sc.Name), needle) {
			results = append(results, SearchResult{Name: sc.Name, URL: sc.URL})
		}
	}
	return results, nil
}
