package inkwell

import "time"

// Article is the core content type stored in SQLite and rendered by templates.
type Article struct {
	Slug        string
	Title       string
	Content     string
	Teaser      string
	Link        string
	CreatedAt   time.Time
	UpdatedAt   time.Time
	PublishedAt time.Time // zero when the article has not been published
}

// Published reports whether the article is visible to anonymous readers.
func (a Article) Published() bool {
	return !a.PublishedAt.IsZero()
}

// Modified returns the timestamp used to order articles in admin listings and
// search results: publish time, else update time, else creation time.
func (a Article) Modified() time.Time {
	switch {
	case !a.PublishedAt.IsZero():
		return a.PublishedAt
	case !a.UpdatedAt.IsZero():
		return a.UpdatedAt
	default:
		return a.CreatedAt
	}
}

// Actor is an authenticated administrator identity. Values are only produced
// by Store.Authenticate and Store.CurrentUser; a nil *Actor means the caller
// is anonymous, and every mutating operation refuses it.
type Actor struct {
	Name string
}

// Shortcut is a static name/URL pair merged into search results. The list is
// loaded once from configuration and passed into Search; it is never stored.
type Shortcut struct {
	Name string
	URL  string
}

// SearchResult is a single row returned by Store.Search: either a matching
// article or a matching static shortcut.
type SearchResult struct {
	Name       string
	URL        string
	ModifiedAt time.Time // zero for shortcuts
}

// Asset is a binary payload stored by key, e.g. an uploaded image. Filename
// is the last path-like segment of the asset id.
type Asset struct {
	Filename     string
	MimeType     string
	LastModified time.Time
	Size         int64
	Data         []byte
}
