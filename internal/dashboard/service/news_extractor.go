package service

import (
	"golang-stock-sentinel/internal/dashboard/dto"
	"golang-stock-sentinel/internal/entity"
)

// ExtractArticles converts raw provider article records into the uniform
// four-field news table. The source display name is pulled out of the nested
// source record; row order matches the provider's order. The result is never
// nil, so a failed or empty provider call maps to a zero-row table.
func ExtractArticles(raw []dto.RawNewsArticle) []entity.NewsArticle {
	articles := make([]entity.NewsArticle, 0, len(raw))
	for _, item := range raw {
		articles = append(articles, entity.NewsArticle{
			Title:       item.Title,
			Description: item.Description,
			PublishedAt: item.PublishedAt,
			Source:      item.Source.Name,
		})
	}
	return articles
}
