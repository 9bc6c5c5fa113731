package infomoney

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"

	"github.com/PAlucas/investsite/internal/domain/news"
)

// NewsClient scrapes the stock profile, news index and article pages.
type NewsClient struct {
	*Client
}

func NewNewsClient(c *Client) *NewsClient {
	return &NewsClient{Client: c}
}

// DiscoverNewsURL scrapes a stock profile page and returns the "tudo-sobre"
// news index URL, or "" when the page carries none.
func (c *NewsClient) DiscoverNewsURL(ctx context.Context, profileURL string) (string, error) {
	doc, err := c.fetchDocument(ctx, profileURL)
	if err != nil {
		return "", err
	}

	var newsURL string
	doc.Find("a.href-title").EachWithBreak(func(_ int, s *goquery.Selection) bool {
		href, ok := s.Attr("href")
		if ok && strings.Contains(href, "tudo-sobre") {
			newsURL = href
			return false
		}
		return true
	})

	return newsURL, nil
}

// FetchArticleURLs scrapes a news index page and returns the linked article
// URLs in page order.
func (c *NewsClient) FetchArticleURLs(ctx context.Context, indexURL string) ([]string, error) {
	doc, err := c.fetchDocument(ctx, indexURL)
	if err != nil {
		return nil, err
	}

	urls := []string{}
	doc.Find("div[data-ds-component='card-sm']").Each(func(_ int, card *goquery.Selection) {
		href, ok := card.Find("a").First().Attr("href")
		if ok && href != "" {
			urls = append(urls, href)
		}
	})

	return urls, nil
}

// FetchArticle scrapes one article page for its title, body text and
// published date. A page missing the article body or the timestamp returns
// news.ErrEmptyContent.
func (c *NewsClient) FetchArticle(ctx context.Context, articleURL string) (*news.PageContent, error) {
	doc, err := c.fetchDocument(ctx, articleURL)
	if err != nil {
		return nil, err
	}

	article := doc.Find("article[data-ds-component='article']").First()
	if article.Length() == 0 {
		return nil, fmt.Errorf("%w: %s", news.ErrEmptyContent, articleURL)
	}
	content := strings.TrimSpace(article.Text())
	if content == "" {
		return nil, fmt.Errorf("%w: %s", news.ErrEmptyContent, articleURL)
	}

	title := strings.TrimSpace(doc.Find("h1").First().Text())

	datetimeAttr, ok := doc.Find("div[data-ds-component='author-small'] time").First().Attr("datetime")
	if !ok {
		return nil, fmt.Errorf("%w: %s", news.ErrEmptyContent, articleURL)
	}
	publishedDate, err := parseArticleTime(datetimeAttr)
	if err != nil {
		return nil, fmt.Errorf("parse article date %q: %w", datetimeAttr, err)
	}

	return &news.PageContent{
		Title:         title,
		Content:       content,
		PublishedDate: publishedDate,
	}, nil
}

func (c *NewsClient) fetchDocument(ctx context.Context, url string) (*goquery.Document, error) {
	if err := c.throttle(ctx); err != nil {
		return nil, err
	}

	resp, err := c.http.R().
		SetContext(ctx).
		SetHeader("User-Agent", c.userAgent()).
		SetHeader("Referer", c.cfg.BaseURL+"/").
		Get(url)
	if err != nil {
		return nil, fmt.Errorf("fetch %s: %w", url, err)
	}
	if resp.StatusCode() != 200 {
		return nil, fmt.Errorf("fetch %s: status %d", url, resp.StatusCode())
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(string(resp.Body())))
	if err != nil {
		return nil, fmt.Errorf("parse html %s: %w", url, err)
	}
	return doc, nil
}

// parseArticleTime accepts the ISO 8601 variants the site emits, with and
// without an offset.
func parseArticleTime(s string) (time.Time, error) {
	for _, layout := range []string{time.RFC3339, "2006-01-02T15:04:05", "2006-01-02"} {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized datetime %q", s)
}
