package inkwell

import (
	"strings"
	"testing"
)

func TestSlugify(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Hello, World!", "hello-world"},
		{"  Leading and trailing  ", "leading-and-trailing"},
		{"Multiple   Spaces", "multiple-spaces"},
		{"UPPER case", "upper-case"},
		{"numbers 123 too", "numbers-123-too"},
		{"what's up?", "what-s-up"},
		{"---", ""},
		{"", ""},
		{"already-a-slug", "already-a-slug"},
	}
	for _, tt := range tests {
		if got := Slugify(tt.in); got != tt.want {
			t.Errorf("Slugify(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestShortID(t *testing.T) {
	a := ShortID()
	b := ShortID()
	if len(a) != 8 {
		t.Errorf("ShortID length = %d, want 8", len(a))
	}
	if a == b {
		t.Error("two ShortID calls returned the same value")
	}
	if strings.ContainsAny(a, " /?#") {
		t.Errorf("ShortID %q contains URL-unsafe characters", a)
	}
}

func TestBuildURL(t *testing.T) {
	tests := []struct {
		base     string
		segments []string
		want     string
	}{
		{"https://example.com", nil, "https://example.com"},
		{"https://example.com", []string{"blog"}, "https://example.com/blog/"},
		{"https://example.com/", []string{"blog", "my-post"}, "https://example.com/blog/my-post/"},
		{"https://example.com/sub", []string{"feed.xml/"}, "https://example.com/sub/feed.xml/"},
	}
	for _, tt := range tests {
		if got := BuildURL(tt.base, tt.segments...); got != tt.want {
			t.Errorf("BuildURL(%q, %v) = %q, want %q", tt.base, tt.segments, got, tt.want)
		}
	}
}

func TestAssetFilename(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"a/b.png", "b.png"},
		{"b.png", "b.png"},
		{"images/2024/photo.jpg", "photo.jpg"},
	}
	for _, tt := range tests {
		if got := AssetFilename(tt.in); got != tt.want {
			t.Errorf("AssetFilename(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestWebsiteJsonLD(t *testing.T) {
	cfg := SiteConfig{Name: "Test Site", URL: "https://example.com", Description: "A test", Author: "Jo"}
	out := WebsiteJsonLD(cfg)
	for _, want := range []string{`"@type":"WebSite"`, `"name":"Test Site"`, `"Jo"`} {
		if !strings.Contains(out, want) {
			t.Errorf("WebsiteJsonLD missing %s: %s", want, out)
		}
	}
}

func TestBlogPostingJsonLD(t *testing.T) {
	cfg := SiteConfig{Name: "Test Site", URL: "https://example.com", Author: "Jo"}
	art := Article{Slug: "hi", Title: "Hi", Teaser: "a teaser"}
	out := BlogPostingJsonLD(art, cfg)
	if !strings.Contains(out, `"headline":"Hi"`) {
		t.Errorf("BlogPostingJsonLD missing headline: %s", out)
	}
	if strings.Contains(out, "datePublished") {
		t.Error("unpublished article must not carry datePublished")
	}
	if !strings.Contains(out, "https://example.com/blog/hi/") {
		t.Errorf("BlogPostingJsonLD missing article URL: %s", out)
	}
}
