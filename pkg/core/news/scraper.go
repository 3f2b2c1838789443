// Package news fetches recent company news from free sources: the Google
// News RSS feed as the primary source, plus a tag-page scrape as a secondary
// one. No source requires an API key, and every fetch failure degrades to an
// empty list.
package news

import (
	"context"
	"encoding/xml"
	"fmt"
	"net/http"
	"net/url"
	"regexp"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"

	"equity_research/pkg/models"
)

const (
	userAgent      = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36"
	requestTimeout = 10 * time.Second
	maxTagArticles = 20

	googleNewsRSSURL = "https://news.google.com/rss/search?q=%s&hl=en-IN&gl=IN&ceid=IN:en"
	tagPageURL       = "https://www.moneycontrol.com/news/tags/%s.html"
)

// Article is one news item from any source.
type Article struct {
	Title     string    `json:"title"`
	Link      string    `json:"link"`
	Published time.Time `json:"published"`
	Summary   string    `json:"summary,omitempty"`
	Source    string    `json:"source"`
}

// Scraper fetches and merges news across sources.
type Scraper struct {
	client *http.Client
	rssURL string
	tagURL string
	now    func() time.Time
}

// NewScraper builds a scraper against the live sources.
func NewScraper() *Scraper {
	return &Scraper{
		client: &http.Client{Timeout: requestTimeout},
		rssURL: googleNewsRSSURL,
		tagURL: tagPageURL,
		now:    time.Now,
	}
}

type rssFeed struct {
	Channel struct {
		Items []rssItem `xml:"item"`
	} `xml:"channel"`
}

type rssItem struct {
	Title       string `xml:"title"`
	Link        string `xml:"link"`
	PubDate     string `xml:"pubDate"`
	Description string `xml:"description"`
}

// FetchGoogleNews queries the Google News RSS feed for the company and keeps
// articles newer than the cutoff (months * 30 days).
func (s *Scraper) FetchGoogleNews(ctx context.Context, companyName, ticker string, months int) ([]Article, error) {
	query := url.QueryEscape(fmt.Sprintf("%s OR %s stock news", companyName, ticker))
	feedURL := fmt.Sprintf(s.rssURL, query)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, feedURL, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("news feed returned status %d", resp.StatusCode)
	}

	var feed rssFeed
	if err := xml.NewDecoder(resp.Body).Decode(&feed); err != nil {
		return nil, fmt.Errorf("failed to parse news feed: %w", err)
	}

	cutoff := s.now().AddDate(0, 0, -months*30)
	var articles []Article
	for _, item := range feed.Channel.Items {
		published := s.now()
		if parsed, err := time.Parse(time.RFC1123Z, item.PubDate); err == nil {
			published = parsed
		} else if parsed, err := time.Parse(time.RFC1123, item.PubDate); err == nil {
			published = parsed
		}
		if published.Before(cutoff) {
			continue
		}
		articles = append(articles, Article{
			Title:     item.Title,
			Link:      item.Link,
			Published: published,
			Summary:   item.Description,
			Source:    extractSource(item.Title),
		})
	}
	return articles, nil
}

// FetchTagPage scrapes the secondary source's per-ticker tag page. The markup
// is a plain list of anchors with relative timestamps, so the parse is
// best-effort: items without a link are skipped.
func (s *Scraper) FetchTagPage(ctx context.Context, ticker string, months int) ([]Article, error) {
	pageURL := fmt.Sprintf(s.tagURL, strings.ToLower(ticker))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, pageURL, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("tag page returned status %d", resp.StatusCode)
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to parse tag page: %w", err)
	}

	cutoff := s.now().AddDate(0, 0, -months*30)
	var articles []Article
	doc.Find("li.clearfix").EachWithBreak(func(i int, sel *goquery.Selection) bool {
		if len(articles) >= maxTagArticles {
			return false
		}
		link := sel.Find("a").First()
		href, ok := link.Attr("href")
		if !ok {
			return true
		}
		title := strings.TrimSpace(link.Text())
		if title == "" {
			return true
		}

		published := s.now()
		if dateText := strings.TrimSpace(sel.Find("span").First().Text()); dateText != "" {
			published = parseRelativeDate(dateText, s.now())
		}
		if published.Before(cutoff) {
			return true
		}

		articles = append(articles, Article{
			Title:     title,
			Link:      href,
			Published: published,
			Source:    "MoneyControl",
		})
		return true
	})
	return articles, nil
}

// FetchAll merges all sources, newest first, with exact-title duplicates
// removed. Per-source failures are tolerated; an error is returned only when
// every source failed.
func (s *Scraper) FetchAll(ctx context.Context, companyName, ticker string, months int) ([]Article, error) {
	var articles []Article
	var errs []string

	google, err := s.FetchGoogleNews(ctx, companyName, ticker, months)
	if err != nil {
		errs = append(errs, fmt.Sprintf("google news: %v", err))
	} else {
		articles = append(articles, google...)
	}

	tagged, err := s.FetchTagPage(ctx, ticker, months)
	if err != nil {
		errs = append(errs, fmt.Sprintf("tag page: %v", err))
	} else {
		articles = append(articles, tagged...)
	}

	if len(articles) == 0 && len(errs) == 2 {
		return nil, fmt.Errorf("all news sources failed: %s", strings.Join(errs, "; "))
	}

	sort.SliceStable(articles, func(i, j int) bool {
		return articles[i].Published.After(articles[j].Published)
	})
	return dedupeByTitle(articles), nil
}

// extractSource pulls the publisher out of a Google News title, which uses
// the "Headline - Source" convention.
func extractSource(title string) string {
	if idx := strings.LastIndex(title, " - "); idx >= 0 {
		return strings.TrimSpace(title[idx+3:])
	}
	return "Unknown"
}

var numberRe = regexp.MustCompile(`\d+`)

// parseRelativeDate interprets strings like "2 hours ago" or "3 days ago"
// relative to now. Unrecognized formats resolve to now.
func parseRelativeDate(s string, now time.Time) time.Time {
	s = strings.ToLower(s)
	n := 1
	if m := numberRe.FindString(s); m != "" {
		n, _ = strconv.Atoi(m)
	}

	switch {
	case strings.Contains(s, "hour") || strings.Contains(s, "hr"):
		return now.Add(-time.Duration(n) * time.Hour)
	case strings.Contains(s, "day"):
		return now.AddDate(0, 0, -n)
	case strings.Contains(s, "week"):
		return now.AddDate(0, 0, -7*n)
	case strings.Contains(s, "month"):
		return now.AddDate(0, 0, -30*n)
	}
	return now
}

func dedupeByTitle(articles []Article) []Article {
	seen := make(map[string]bool, len(articles))
	out := articles[:0]
	for _, a := range articles {
		if seen[a.Title] {
			continue
		}
		seen[a.Title] = true
		out = append(out, a)
	}
	return out
}

// Headlines converts the newest articles into the report model, capped at
// limit.
func Headlines(articles []Article, limit int) []models.Headline {
	if limit > len(articles) {
		limit = len(articles)
	}
	out := make([]models.Headline, 0, limit)
	for _, a := range articles[:limit] {
		out = append(out, models.Headline{Title: a.Title, URL: a.Link, Source: a.Source})
	}
	return out
}
