package server

import (
	"net/http"

	"github.com/cookiepedia/cookiepedia/models"
	"github.com/cookiepedia/cookiepedia/server/response"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

func (s *Server) handleGetReelFeed() gin.HandlerFunc {
	return func(c *gin.Context) {
		page, limit := paginationParams(c)
		reels, apiErr := s.ReelService.GetFeed(page, limit)
		if apiErr != nil {
			response.JSON(c, "", apiErr.Status, nil, apiErr)
			return
		}
		response.JSON(c, "", http.StatusOK, reels, nil)
	}
}

func (s *Server) handleCreateReel() gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, _ := currentUserID(c)

		var request models.CreateReelRequest
		if err := decode(c, &request); err != nil {
			response.JSON(c, "", http.StatusBadRequest, nil, err)
			return
		}

		reel, apiErr := s.ReelService.CreateReel(userID, &request)
		if apiErr != nil {
			response.JSON(c, "", apiErr.Status, nil, apiErr)
			return
		}
		response.JSON(c, "reel created", http.StatusCreated, reel, nil)
	}
}

func (s *Server) handleGetReel() gin.HandlerFunc {
	return func(c *gin.Context) {
		reelID, err := uuid.Parse(c.Param("reelID"))
		if err != nil {
			response.JSON(c, "invalid reel id", http.StatusBadRequest, nil, err)
			return
		}

		reel, apiErr := s.ReelService.GetReel(reelID)
		if apiErr != nil {
			response.JSON(c, "", apiErr.Status, nil, apiErr)
			return
		}
		response.JSON(c, "", http.StatusOK, reel, nil)
	}
}

// handleUploadReelMedia uploads the raw video (and optional thumbnail)
// ahead of the reel creation call, returning the stored URLs.
func (s *Server) handleUploadReelMedia() gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, _ := currentUserID(c)

		_, videoHeader, err := c.Request.FormFile("video")
		if err != nil {
			response.JSON(c, "missing or invalid video file", http.StatusBadRequest, nil, err)
			return
		}
		_, thumbnailHeader, err := c.Request.FormFile("thumbnail")
		if err != nil {
			thumbnailHeader = nil
		}

		videoURL, thumbnailURL, err := s.MediaService.ProcessReelUpload(videoHeader, thumbnailHeader, userID)
		if err != nil {
			response.JSON(c, "failed to upload reel media", http.StatusInternalServerError, nil, err)
			return
		}
		response.JSON(c, "media uploaded", http.StatusCreated, gin.H{
			"video_url":     videoURL,
			"thumbnail_url": thumbnailURL,
		}, nil)
	}
}

func (s *Server) handleToggleReelLike() gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, _ := currentUserID(c)
		reelID, err := uuid.Parse(c.Param("reelID"))
		if err != nil {
			response.JSON(c, "invalid reel id", http.StatusBadRequest, nil, err)
			return
		}

		liked, apiErr := s.ReelService.ToggleLike(reelID, userID)
		if apiErr != nil {
			response.JSON(c, "", apiErr.Status, nil, apiErr)
			return
		}
		response.JSON(c, "", http.StatusOK, gin.H{"liked": liked}, nil)
	}
}
