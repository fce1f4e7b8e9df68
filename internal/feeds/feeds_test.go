package feeds

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"oppintel-engine/internal/domain"
)

func rssDoc(n int) string {
	var b strings.Builder
	b.WriteString(`<?xml version="1.0"?><rss version="2.0"><channel><title>Campus News</title>`)
	for i := 0; i < n; i++ {
		fmt.Fprintf(&b, `<item>
<title>Item %d</title>
<link>https://news.example.edu/item-%d</link>
<description>&lt;p&gt;Applications&amp;nbsp;open for the &lt;b&gt;fellowship&lt;/b&gt; program.&lt;/p&gt;</description>
</item>`, i, i)
	}
	b.WriteString(`</channel></rss>`)
	return b.String()
}

func TestFetchCapsEntriesAndStripsHTML(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/rss+xml")
		fmt.Fprint(w, rssDoc(30))
	}))
	defer srv.Close()

	c := New(nil, 15)
	entries, err := c.Fetch(context.Background(), domain.Source{University: "Example", URL: srv.URL})
	require.NoError(t, err)
	require.Len(t, entries, 15)

	require.Equal(t, "Item 0", entries[0].Title)
	require.Equal(t, "https://news.example.edu/item-0", entries[0].Link)
	require.Equal(t, "Applications open for the fellowship program.", entries[0].Summary)
}

func TestFetchMalformedFeed(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, "<html>not a feed</html>")
	}))
	defer srv.Close()

	c := New(nil, 15)
	_, err := c.Fetch(context.Background(), domain.Source{University: "Example", URL: srv.URL})
	require.Error(t, err)
}

func TestStripHTML(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"<p>Deadline: <b>October 15</b></p>", "Deadline: October 15"},
		{"plain text, no markup", "plain text, no markup"},
		{"  spaced \n out  ", "spaced out"},
	}
	for _, tt := range tests {
		if got := StripHTML(tt.in); got != tt.want {
			t.Errorf("StripHTML(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
