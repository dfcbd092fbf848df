package server

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/cookiepedia/cookiepedia/models"
	"github.com/cookiepedia/cookiepedia/server/response"
	"github.com/gin-gonic/gin"
)

func (s *Server) handleSearchSuggestions() gin.HandlerFunc {
	return func(c *gin.Context) {
		query := strings.TrimSpace(c.Query("q"))
		limit, err := strconv.Atoi(c.DefaultQuery("limit", "8"))
		if err != nil || limit < 1 || limit > 20 {
			limit = 8
		}

		if len(query) < 2 {
			response.JSON(c, "Query too short", http.StatusOK, gin.H{
				"query":       query,
				"suggestions": []models.RecipeSuggestion{},
				"total":       0,
				"source":      "local",
				"timestamp":   time.Now().UTC().Format(time.RFC3339),
			}, nil)
			return
		}

		suggestions, source, searchErr := s.SearchService.GetSuggestions(c.Request.Context(), query, limit)
		if searchErr != nil {
			response.JSON(c, "search failed", http.StatusInternalServerError, nil, searchErr)
			return
		}
		response.JSON(c, "", http.StatusOK, gin.H{
			"query":       query,
			"suggestions": suggestions,
			"total":       len(suggestions),
			"source":      source,
			"timestamp":   time.Now().UTC().Format(time.RFC3339),
		}, nil)
	}
}

func (s *Server) handlePopularSearches() gin.HandlerFunc {
	return func(c *gin.Context) {
		popular, source := s.SearchService.GetPopular(c.Request.Context())
		response.JSON(c, "", http.StatusOK, gin.H{
			"popular":   popular,
			"source":    source,
			"timestamp": time.Now().UTC().Format(time.RFC3339),
		}, nil)
	}
}

func (s *Server) handleSearchCategories() gin.HandlerFunc {
	return func(c *gin.Context) {
		response.JSON(c, "", http.StatusOK, gin.H{"categories": s.SearchService.GetCategories()}, nil)
	}
}

func (s *Server) handleChatbot() gin.HandlerFunc {
	return func(c *gin.Context) {
		var request models.ChatRequest
		if err := decode(c, &request); err != nil {
			response.JSON(c, "", http.StatusBadRequest, nil, err)
			return
		}

		reply, err := s.SearchService.ChatReply(c.Request.Context(), request.Messages)
		if err != nil {
			response.JSON(c, "failed to process chat message", http.StatusInternalServerError, nil, err)
			return
		}
		response.JSON(c, "", http.StatusOK, gin.H{"reply": reply}, nil)
	}
}
