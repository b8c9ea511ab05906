package repository

import (
	"context"
	"fmt"
	"net/url"
	"sort"
	"strings"
	"time"

	"golang-stock-sentinel/internal/dashboard/config"
	"golang-stock-sentinel/internal/dashboard/dto"
	"golang-stock-sentinel/pkg/logger"
	"golang-stock-sentinel/pkg/utils"

	"github.com/PuerkitoBio/goquery"
	"github.com/mmcdole/gofeed"
)

type googleRSSRepository struct {
	cfg    *config.Config
	log    *logger.Logger
	parser *gofeed.Parser
}

// NewGoogleRSSRepository creates a NewsRepository backed by the Google News
// RSS search feed. It needs no credentials, which makes it a useful fallback
// when no NewsAPI key is configured.
func NewGoogleRSSRepository(cfg *config.Config, log *logger.Logger) NewsRepository {
	return &googleRSSRepository{
		cfg:    cfg,
		log:    log,
		parser: gofeed.NewParser(),
	}
}

// Search fetches the RSS search feed for the query and adapts feed items into
// raw article records, newest first.
func (r *googleRSSRepository) Search(ctx context.Context, query string, limit int) ([]dto.RawNewsArticle, error) {
	lang := r.cfg.GoogleRSS.Language
	country := r.cfg.GoogleRSS.Country
	feedURL := fmt.Sprintf("%s/rss/search?q=%s&hl=%s&gl=%s&ceid=%s:%s",
		r.cfg.GoogleRSS.BaseURL, url.QueryEscape(query+" stock"), lang, country, country, lang)

	r.log.DebugContext(ctx, "Fetching RSS feed", logger.StringField("url", feedURL))

	feed, err := r.parser.ParseURLWithContext(feedURL, ctx)
	if err != nil {
		r.log.ErrorContext(ctx, "Failed to parse RSS feed", logger.ErrorField(err), logger.StringField("query", query))
		return nil, err
	}

	items := feed.Items
	sort.Slice(items, func(i, j int) bool {
		if items[i].PublishedParsed == nil || items[j].PublishedParsed == nil {
			return false
		}
		return items[i].PublishedParsed.After(*items[j].PublishedParsed)
	})
	if limit > 0 && len(items) > limit {
		items = items[:limit]
	}

	articles := make([]dto.RawNewsArticle, 0, len(items))
	for _, item := range items {
		articles = append(articles, r.adaptItem(item))
	}
	return articles, nil
}

func (r *googleRSSRepository) adaptItem(item *gofeed.Item) dto.RawNewsArticle {
	article := dto.RawNewsArticle{
		URL: item.Link,
		Source: dto.RawNewsSource{
			Name: sourceName(item.Link),
		},
	}

	if item.Title != "" {
		title := utils.CleanToValidUTF8(item.Title)
		article.Title = &title
	}
	if desc := stripHTML(item.Description); desc != "" {
		article.Description = &desc
	}
	if item.PublishedParsed != nil {
		article.PublishedAt = item.PublishedParsed.Format(time.RFC3339)
	} else {
		article.PublishedAt = item.Published
	}
	return article
}

// stripHTML reduces an RSS description, which is typically an HTML fragment,
// to its text content.
func stripHTML(fragment string) string {
	if fragment == "" {
		return ""
	}
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(fragment))
	if err != nil {
		return strings.TrimSpace(fragment)
	}
	return strings.TrimSpace(doc.Text())
}

func sourceName(link string) string {
	parsed, err := url.Parse(link)
	if err != nil {
		return ""
	}
	return parsed.Hostname()
}
