package extractor

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ecooper/dp-headlines/internal/fetcher"
	"github.com/ecooper/dp-headlines/internal/logger"
)

func testLogger() *logger.Logger {
	return logger.New(logger.LevelError, io.Discard)
}

const homepageWithMostRead = `<!DOCTYPE html>
<html><body>
<div class="col">
  <span id="mostRead">
    <a class="frontpage-link standard-link" href="/article/penn-announces-new-provost">Penn announces new provost</a>
    <a class="frontpage-link standard-link" href="/article/second-story">Second story</a>
  </span>
</div>
</body></html>`

const articlePage = `<!DOCTYPE html>
<html><body>
<header><h1>  Penn announces new provost after national search  </h1></header>
<p>Article body.</p>
</body></html>`

func TestNewVariants(t *testing.T) {
	tests := []struct {
		variant string
		wantErr bool
	}{
		{VariantMostRead, false},
		{VariantFeatured, false},
		{VariantRSS, false},
		{"", true},
		{"most-read", true},
		{"headline", true},
	}

	for _, tt := range tests {
		t.Run("variant "+tt.variant, func(t *testing.T) {
			ext, err := New(tt.variant, "https://example.com", "https://example.com/rss")
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.variant, ext.Name())
		})
	}
}

func TestResolveURL(t *testing.T) {
	tests := []struct {
		name string
		base string
		href string
		want string
	}{
		{"relative path", "https://www.thedp.com", "/article/penn-wins", "https://www.thedp.com/article/penn-wins"},
		{"absolute href", "https://www.thedp.com", "https://other.example/x", "https://other.example/x"},
		{"base with path", "https://www.thedp.com/home", "/article/a", "https://www.thedp.com/article/a"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := resolveURL(tt.base, tt.href)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestMostReadExtract(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/":
			io.WriteString(w, homepageWithMostRead)
		case "/article/penn-announces-new-provost":
			io.WriteString(w, articlePage)
		default:
			http.NotFound(w, r)
		}
	}))
	defer srv.Close()

	ext := &MostRead{HomepageURL: srv.URL}
	res := ext.Extract(fetcher.New(0), testLogger())

	require.True(t, res.OK(), "expected a headline, got reason %q (%s)", res.Reason, res.Detail)
	assert.Equal(t, "Penn announces new provost after national search", res.Headline)
}

func TestMostReadStructureFailures(t *testing.T) {
	tests := []struct {
		name     string
		homepage string
		article  string
	}{
		{
			name:     "most read section absent",
			homepage: `<html><body><div>no sections here</div></body></html>`,
		},
		{
			name:     "article link absent",
			homepage: `<html><body><span id="mostRead"><p>no links</p></span></body></html>`,
		},
		{
			name:     "article link without href",
			homepage: `<html><body><span id="mostRead"><a class="frontpage-link standard-link">text</a></span></body></html>`,
		},
		{
			name:     "article page without h1",
			homepage: homepageWithMostRead,
			article:  `<html><body><h2>Not the headline element</h2></body></html>`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				if r.URL.Path == "/" {
					io.WriteString(w, tt.homepage)
					return
				}
				io.WriteString(w, tt.article)
			}))
			defer srv.Close()

			ext := &MostRead{HomepageURL: srv.URL}
			res := ext.Extract(fetcher.New(0), testLogger())

			assert.False(t, res.OK())
			assert.Equal(t, ReasonStructure, res.Reason)
		})
	}
}

func TestMostReadTransportFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	ext := &MostRead{HomepageURL: srv.URL}
	res := ext.Extract(fetcher.New(0), testLogger())

	assert.False(t, res.OK())
	assert.Equal(t, ReasonTransport, res.Reason)
	assert.Error(t, res.Err)
}

func TestMostReadArticleFetchFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/" {
			io.WriteString(w, homepageWithMostRead)
			return
		}
		w.WriteHeader(http.StatusForbidden)
	}))
	defer srv.Close()

	ext := &MostRead{HomepageURL: srv.URL}
	res := ext.Extract(fetcher.New(0), testLogger())

	assert.False(t, res.OK())
	assert.Equal(t, ReasonTransport, res.Reason)
}

func TestFeaturedHeadline(t *testing.T) {
	tests := []struct {
		name      string
		html      string
		want      string
		wantFound bool
	}{
		{
			name: "link after featured heading",
			html: `<html><body>
				<h2>Top News</h2><a href="/a">Not this one</a>
				<h3>Featured Stories</h3>
				<div><a href="/b"> Quakers take the Ivy title </a></div>
				</body></html>`,
			want:      "Quakers take the Ivy title",
			wantFound: true,
		},
		{
			name:      "no featured heading",
			html:      `<html><body><h3>Sports</h3><a href="/a">Story</a></body></html>`,
			wantFound: false,
		},
		{
			name:      "featured heading but no following link",
			html:      `<html><body><a href="/a">Before</a><h3>Featured</h3><p>text only</p></body></html>`,
			wantFound: false,
		},
		{
			name:      "link with empty text",
			html:      `<html><body><h3>Featured</h3><a href="/a">   </a></body></html>`,
			want:      "",
			wantFound: true,
		},
		{
			name:      "link nested inside the featured heading",
			html:      `<html><body><h3>Featured: <a href="/a">Inline story</a></h3></body></html>`,
			want:      "Inline story",
			wantFound: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc, err := goquery.NewDocumentFromReader(strings.NewReader(tt.html))
			require.NoError(t, err)

			got, found := featuredHeadline(doc)
			assert.Equal(t, tt.wantFound, found)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestFeaturedExtract(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		io.WriteString(w, `<html><body>
			<h3>Featured</h3>
			<article><a href="/story">Engineering school opens new lab</a></article>
			</body></html>`)
	}))
	defer srv.Close()

	ext := &Featured{HomepageURL: srv.URL}
	res := ext.Extract(fetcher.New(0), testLogger())

	require.True(t, res.OK(), "expected a headline, got reason %q (%s)", res.Reason, res.Detail)
	assert.Equal(t, "Engineering school opens new lab", res.Headline)
}

func TestFeaturedExtractEmptyLink(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		io.WriteString(w, `<html><body><h3>Featured</h3><a href="/story">  </a></body></html>`)
	}))
	defer srv.Close()

	ext := &Featured{HomepageURL: srv.URL}
	res := ext.Extract(fetcher.New(0), testLogger())

	assert.False(t, res.OK())
	assert.Equal(t, ReasonEmpty, res.Reason)
}

const sampleFeed = `<?xml version="1.0" encoding="UTF-8"?>
<rss version="2.0">
  <channel>
    <title>The Daily Pennsylvanian</title>
    <link>https://www.thedp.com</link>
    <item>
      <title>  Trustees approve tuition freeze  </title>
      <link>https://www.thedp.com/article/tuition-freeze</link>
    </item>
    <item>
      <title>Second item</title>
      <link>https://www.thedp.com/article/second</link>
    </item>
  </channel>
</rss>`

func TestRSSExtract(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		io.WriteString(w, sampleFeed)
	}))
	defer srv.Close()

	ext := &RSS{FeedURL: srv.URL}
	res := ext.Extract(fetcher.New(0), testLogger())

	require.True(t, res.OK(), "expected a headline, got reason %q (%s)", res.Reason, res.Detail)
	assert.Equal(t, "Trustees approve tuition freeze", res.Headline)
}

func TestRSSExtractFailures(t *testing.T) {
	tests := []struct {
		name       string
		body       string
		status     int
		wantReason Reason
	}{
		{"transport failure", "", http.StatusBadGateway, ReasonTransport},
		{"invalid feed", "not a feed", http.StatusOK, ReasonStructure},
		{"empty feed", `<?xml version="1.0"?><rss version="2.0"><channel><title>t</title></channel></rss>`, http.StatusOK, ReasonStructure},
		{"first item untitled", `<?xml version="1.0"?><rss version="2.0"><channel><title>t</title><item><title></title></item></channel></rss>`, http.StatusOK, ReasonEmpty},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				if tt.status != http.StatusOK {
					w.WriteHeader(tt.status)
					return
				}
				io.WriteString(w, tt.body)
			}))
			defer srv.Close()

			ext := &RSS{FeedURL: srv.URL}
			res := ext.Extract(fetcher.New(0), testLogger())

			assert.False(t, res.OK())
			assert.Equal(t, tt.wantReason, res.Reason)
		})
	}
}
