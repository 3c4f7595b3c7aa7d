// Package views holds the HTML components for the public site, built as
// templ components so handlers can render them with a shared layout.
package views

import (
	"context"
	"html"
	"io"

	"github.com/a-h/templ"

	"github.com/inkwell-cms/inkwell/markdown"
)

// Site carries the site-wide values every page needs.
type Site struct {
	Name        string
	Description string
	URL         string
}

// ArticleView is the shape the templates render; the handler layer maps
// store articles into it.
type ArticleView struct {
	Slug      string
	Title     string
	Teaser    string
	Content   string
	Link      string
	Published string // formatted date, empty for drafts
}

func component(fn func(w io.Writer) error) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		return fn(w)
	})
}

func layout(site Site, title string, body func(w io.Writer) error) templ.Component {
	return component(func(w io.Writer) error {
		if _, err := io.WriteString(w, `<!DOCTYPE html><html lang="en"><head><meta charset="utf-8"/><meta name="viewport" content="width=device-width, initial-scale=1"/><title>`+
			html.EscapeString(title)+`</title><meta name="description" content="`+html.EscapeString(site.Description)+`"/></head><body><header><a href="/">`+
			html.EscapeString(site.Name)+`</a></header><main>`); err != nil {
			return err
		}
		if err := body(w); err != nil {
			return err
		}
		_, err := io.WriteString(w, `</main></body></html>`)
		return err
	})
}

// Home renders the published article listing, newest first.
func Home(site Site, articles []ArticleView) templ.Component {
	return layout(site, site.Name, func(w io.Writer) error {
		if _, err := io.WriteString(w, `<ul class="articles">`); err != nil {
			return err
		}
		for _, a := range articles {
			if _, err := io.WriteString(w, `<li><a href="`+html.EscapeString(a.Link)+`">`+
				html.EscapeString(a.Title)+`</a><time>`+html.EscapeString(a.Published)+`</time><p>`+
				html.EscapeString(a.Teaser)+`</p></li>`); err != nil {
				return err
			}
		}
		_, err := io.WriteString(w, `</ul>`)
		return err
	})
}

// Article renders a single article page with its markdown body and a link to
// the next-older article.
func Article(site Site, a ArticleView, next *ArticleView) templ.Component {
	return layout(site, a.Title+" | "+site.Name, func(w io.Writer) error {
		if _, err := io.WriteString(w, `<article><h1>`+html.EscapeString(a.Title)+`</h1><time>`+
			html.EscapeString(a.Published)+`</time>`); err != nil {
			return err
		}
		if err := markdown.Markdown(a.Content).Render(context.Background(), w); err != nil {
			return err
		}
		if _, err := io.WriteString(w, `</article>`); err != nil {
			return err
		}
		if next != nil {
			if _, err := io.WriteString(w, `<nav class="next"><a href="`+html.EscapeString(next.Link)+`">`+
				html.EscapeString(next.Title)+`</a></nav>`); err != nil {
				return err
			}
		}
		return nil
	})
}

// NotFound renders the 404 page.
func NotFound(site Site) templ.Component {
	return layout(site, "Not found", func(w io.Writer) error {
		_, err := io.WriteString(w, `<h1>404</h1><p>This page does not exist.</p>`)
		return err
	})
}

// ServerError renders the 500 page.
func ServerError(site Site) templ.Component {
	return layout(site, "Something went wrong", func(w io.Writer) error {
		_, err := io.WriteString(w, `<h1>500</h1><p>Something went wrong.</p>`)
		return err
	})
}
