package service

import (
	"testing"

	"golang-stock-sentinel/internal/dashboard/dto"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func strPtr(s string) *string { return &s }

func TestExtractArticles_UniformShapeAndOrder(t *testing.T) {
	raw := []dto.RawNewsArticle{
		{
			Source:      dto.RawNewsSource{Name: "Reuters"},
			Title:       strPtr("Stock soars"),
			Description: strPtr("Shares jumped"),
			PublishedAt: "2024-03-01T10:00:00Z",
		},
		{
			Source:      dto.RawNewsSource{Name: "Bloomberg"},
			Title:       nil,
			PublishedAt: "2024-03-01T11:00:00Z",
		},
	}

	articles := ExtractArticles(raw)
	require.Len(t, articles, 2)

	assert.Equal(t, "Stock soars", *articles[0].Title)
	assert.Equal(t, "Reuters", articles[0].Source)
	assert.Equal(t, "2024-03-01T10:00:00Z", articles[0].PublishedAt)

	assert.Nil(t, articles[1].Title)
	assert.Equal(t, "Bloomberg", articles[1].Source, "source name extracted from the nested record")
}

func TestExtractArticles_EmptyAndNilInput(t *testing.T) {
	assert.NotNil(t, ExtractArticles(nil))
	assert.Len(t, ExtractArticles(nil), 0)
	assert.Len(t, ExtractArticles([]dto.RawNewsArticle{}), 0)
}
