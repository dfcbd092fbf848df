package services

import (
	"context"
	"testing"

	"github.com/cookiepedia/cookiepedia/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newLocalSearchService(t *testing.T) SearchService {
	t.Helper()
	return NewSearchService(context.Background(), &config.Config{GeminiModel: "gemini-1.5-flash"})
}

func TestSearchShortQueryReturnsEmpty(t *testing.T) {
	svc := newLocalSearchService(t)

	suggestions, source, err := svc.GetSuggestions(context.Background(), " c ", 8)
	require.NoError(t, err)
	assert.Equal(t, "local", source)
	assert.Empty(t, suggestions)
}

func TestSearchLocalMatchesByName(t *testing.T) {
	svc := newLocalSearchService(t)

	suggestions, source, err := svc.GetSuggestions(context.Background(), "chocolate chip", 8)
	require.NoError(t, err)
	assert.Equal(t, "local", source)
	require.NotEmpty(t, suggestions)

	assert.Contains(t, suggestions[0].Name, "Chocolate Chip")
	for _, suggestion := range suggestions {
		assert.NotZero(t, suggestion.Score)
		assert.NotEmpty(t, suggestion.Description)
	}
}

func TestSearchLocalRespectsLimit(t *testing.T) {
	svc := newLocalSearchService(t)

	suggestions, _, err := svc.GetSuggestions(context.Background(), "cookie", 3)
	require.NoError(t, err)
	assert.LessOrEqual(t, len(suggestions), 3)
}

func TestSearchLocalOrdersByScore(t *testing.T) {
	svc := newLocalSearchService(t)

	suggestions, _, err := svc.GetSuggestions(context.Background(), "lemon", 8)
	require.NoError(t, err)
	for i := 1; i < len(suggestions); i++ {
		assert.GreaterOrEqual(t, suggestions[i-1].Score, suggestions[i].Score)
	}
}

func TestGetPopularLocalSource(t *testing.T) {
	svc := newLocalSearchService(t)

	popular, source := svc.GetPopular(context.Background())
	assert.Equal(t, "local", source)
	require.Len(t, popular, 10)
	assert.Contains(t, popular, "Double Chocolate Brownies")
}

func TestGetCategories(t *testing.T) {
	svc := newLocalSearchService(t)

	categories := svc.GetCategories()
	require.NotEmpty(t, categories)
	assert.Equal(t, "Cookies", categories[0].Name)
}

func TestChatUnconfiguredFails(t *testing.T) {
	svc := newLocalSearchService(t)
	assert.False(t, svc.IsConfigured())

	_, err := svc.ChatReply(context.Background(), nil)
	assert.Error(t, err)
}

func TestStripCodeFences(t *testing.T) {
	assert.Equal(t, `[{"id":1}]`, stripCodeFences("```json\n[{\"id\":1}]\n```"))
	assert.Equal(t, `[]`, stripCodeFences("[]"))
}

func TestFillSuggestionDefaults(t *testing.T) {
	var suggestion = recipeDatabase[0]
	suggestion.ID = 0
	suggestion.Description = ""
	fillSuggestionDefaults(&suggestion, 4)

	assert.Equal(t, 5, suggestion.ID)
	assert.Equal(t, "Delicious homemade recipe", suggestion.Description)
	assert.Equal(t, recipeDatabase[0].Name, suggestion.Name)
}
