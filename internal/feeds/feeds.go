package feeds

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/mmcdole/gofeed"

	"oppintel-engine/internal/domain"
	"oppintel-engine/internal/util"
)

// Client fetches one university feed at a time. A failed or malformed feed is
// the caller's problem to log; the error never carries partial entries.
type Client struct {
	parser     *gofeed.Parser
	limiter    *util.HostLimiter
	maxEntries int
}

func New(limiter *util.HostLimiter, maxEntries int) *Client {
	if maxEntries <= 0 {
		maxEntries = 15
	}
	p := gofeed.NewParser()
	p.Client = &http.Client{Timeout: 20 * time.Second}
	p.UserAgent = "OppIntel/1.0 (+local)"
	return &Client{parser: p, limiter: limiter, maxEntries: maxEntries}
}

func (c *Client) Fetch(ctx context.Context, src domain.Source) ([]domain.RawEntry, error) {
	if c.limiter != nil {
		if err := c.limiter.WaitURL(ctx, src.URL); err != nil {
			return nil, err
		}
	}

	feed, err := c.parser.ParseURLWithContext(src.URL, ctx)
	if err != nil {
		return nil, fmt.Errorf("fetch feed %s: %w", src.URL, err)
	}

	items := feed.Items
	if len(items) > c.maxEntries {
		items = items[:c.maxEntries]
	}

	out := make([]domain.RawEntry, 0, len(items))
	for _, item := range items {
		summary := item.Description
		if summary == "" {
			summary = item.Content
		}
		out = append(out, domain.RawEntry{
			Title:   util.CleanText(item.Title),
			Summary: StripHTML(summary),
			Link:    strings.TrimSpace(item.Link),
		})
	}
	return out, nil
}

// StripHTML flattens feed summaries (often full HTML fragments) to plain text
// so the keyword filter and the prompt see readable sentences.
func StripHTML(s string) string {
	if !strings.Contains(s, "<") {
		return util.CleanText(s)
	}
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(s))
	if err != nil {
		return util.CleanText(s)
	}
	return util.CleanText(doc.Text())
}
