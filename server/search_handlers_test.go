package server

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/cookiepedia/cookiepedia/config"
	"github.com/cookiepedia/cookiepedia/services"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newSearchTestServer() *Server {
	gin.SetMode(gin.TestMode)
	return &Server{
		SearchService: services.NewSearchService(context.Background(), &config.Config{GeminiModel: "gemini-1.5-flash"}),
	}
}

type suggestionsBody struct {
	Message string `json:"message"`
	Data    struct {
		Query       string        `json:"query"`
		Suggestions []interface{} `json:"suggestions"`
		Total       int           `json:"total"`
		Source      string        `json:"source"`
	} `json:"data"`
}

func TestSearchSuggestionsShortQueryMessage(t *testing.T) {
	s := newSearchTestServer()

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/api/v1/search/suggestions?q=c", nil)

	s.handleSearchSuggestions()(c)

	require.Equal(t, http.StatusOK, w.Code)
	var body suggestionsBody
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "Query too short", body.Message)
	assert.Empty(t, body.Data.Suggestions)
	assert.Equal(t, 0, body.Data.Total)
	assert.Equal(t, "local", body.Data.Source)
}

func TestSearchSuggestionsNormalQueryHasNoShortMessage(t *testing.T) {
	s := newSearchTestServer()

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/api/v1/search/suggestions?q=chocolate", nil)

	s.handleSearchSuggestions()(c)

	require.Equal(t, http.StatusOK, w.Code)
	var body suggestionsBody
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Empty(t, body.Message)
	assert.NotEmpty(t, body.Data.Suggestions)
	assert.Equal(t, "local", body.Data.Source)
}
