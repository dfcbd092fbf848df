package server

import (
	"net/http"
	"strconv"

	errs "github.com/cookiepedia/cookiepedia/errors"
	"github.com/cookiepedia/cookiepedia/models"
	"github.com/cookiepedia/cookiepedia/server/response"
	"github.com/gin-gonic/gin"
)

func (s *Server) handleShowProfile() gin.HandlerFunc {
	return func(c *gin.Context) {
		user, exists := c.Get("user")
		if !exists {
			response.JSON(c, "", http.StatusUnauthorized, nil, errs.New("Unauthorized", http.StatusUnauthorized))
			return
		}
		response.JSON(c, "", http.StatusOK, user, nil)
	}
}

func (s *Server) handleGetUserProfile() gin.HandlerFunc {
	return func(c *gin.Context) {
		viewerID, _ := currentUserID(c)
		profile, err := s.AuthService.GetUserProfile(c.Param("username"), viewerID)
		if err != nil {
			response.JSON(c, "", err.Status, nil, err)
			return
		}
		response.JSON(c, "", http.StatusOK, profile, nil)
	}
}

func (s *Server) handleEditUserProfile() gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := currentUserID(c)
		if !ok {
			response.JSON(c, "", http.StatusUnauthorized, nil, errs.New("Unauthorized", http.StatusUnauthorized))
			return
		}

		var request models.EditProfileRequest
		if err := decode(c, &request); err != nil {
			response.JSON(c, "", http.StatusBadRequest, nil, err)
			return
		}
		if err := s.AuthService.EditUserProfile(userID, &request); err != nil {
			response.JSON(c, "unable to update profile", http.StatusInternalServerError, nil, err)
			return
		}
		response.JSON(c, "profile updated", http.StatusOK, nil, nil)
	}
}

// handleUpdateProfilePicture accepts a multipart upload, pushes the
// processed image to S3 and stores the resulting URL.
func (s *Server) handleUpdateProfilePicture() gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := currentUserID(c)
		if !ok {
			response.JSON(c, "", http.StatusUnauthorized, nil, errs.New("Unauthorized", http.StatusUnauthorized))
			return
		}

		_, fileHeader, err := c.Request.FormFile("profile_picture")
		if err != nil {
			response.JSON(c, "missing or invalid file", http.StatusBadRequest, nil, err)
			return
		}

		fileURL, err := s.MediaService.ProcessProfileImage(fileHeader, userID)
		if err != nil {
			response.JSON(c, "failed to upload profile picture", http.StatusInternalServerError, nil, err)
			return
		}

		user := c.MustGet("user").(*models.User)
		user.ProfilePicture = fileURL
		if err := s.AuthRepository.UpdateUser(user); err != nil {
			response.JSON(c, "failed to update profile", http.StatusInternalServerError, nil, err)
			return
		}
		response.JSON(c, "profile picture updated", http.StatusOK, gin.H{"url": fileURL}, nil)
	}
}

func (s *Server) handleRegisterDeviceToken() gin.HandlerFunc {
	return func(c *gin.Context) {
		var request struct {
			DeviceToken string `json:"device_token" binding:"required"`
		}
		if err := decode(c, &request); err != nil {
			response.JSON(c, "", http.StatusBadRequest, nil, err)
			return
		}

		user := c.MustGet("user").(*models.User)
		user.DeviceToken = request.DeviceToken
		if err := s.AuthRepository.UpdateUser(user); err != nil {
			response.JSON(c, "failed to register device token", http.StatusInternalServerError, nil, err)
			return
		}
		response.JSON(c, "device token registered", http.StatusOK, nil, nil)
	}
}

func (s *Server) handleFollowUser() gin.HandlerFunc {
	return func(c *gin.Context) {
		followerID, _ := currentUserID(c)
		userID, err := parseUintParam(c, "userID")
		if err != nil {
			response.JSON(c, "invalid user id", http.StatusBadRequest, nil, err)
			return
		}

		if apiErr := s.AuthService.FollowUser(followerID, userID); apiErr != nil {
			response.JSON(c, "", apiErr.Status, nil, apiErr)
			return
		}
		response.JSON(c, "user followed", http.StatusOK, nil, nil)
	}
}

func (s *Server) handleUnfollowUser() gin.HandlerFunc {
	return func(c *gin.Context) {
		followerID, _ := currentUserID(c)
		userID, err := parseUintParam(c, "userID")
		if err != nil {
			response.JSON(c, "invalid user id", http.StatusBadRequest, nil, err)
			return
		}

		if apiErr := s.AuthService.UnfollowUser(followerID, userID); apiErr != nil {
			response.JSON(c, "", apiErr.Status, nil, apiErr)
			return
		}
		response.JSON(c, "user unfollowed", http.StatusOK, nil, nil)
	}
}

func (s *Server) handleGetFollowers() gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, err := parseUintParam(c, "userID")
		if err != nil {
			response.JSON(c, "invalid user id", http.StatusBadRequest, nil, err)
			return
		}
		page, limit := paginationParams(c)

		followers, err := s.AuthService.GetFollowers(userID, page, limit)
		if err != nil {
			response.JSON(c, "unable to fetch followers", http.StatusInternalServerError, nil, err)
			return
		}
		response.JSON(c, "", http.StatusOK, followers, nil)
	}
}

func (s *Server) handleGetFollowing() gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, err := parseUintParam(c, "userID")
		if err != nil {
			response.JSON(c, "invalid user id", http.StatusBadRequest, nil, err)
			return
		}
		page, limit := paginationParams(c)

		following, err := s.AuthService.GetFollowing(userID, page, limit)
		if err != nil {
			response.JSON(c, "unable to fetch following", http.StatusInternalServerError, nil, err)
			return
		}
		response.JSON(c, "", http.StatusOK, following, nil)
	}
}

func (s *Server) handleSearchUsers() gin.HandlerFunc {
	return func(c *gin.Context) {
		query := c.Query("q")
		if query == "" {
			response.JSON(c, "", http.StatusOK, gin.H{"users": []models.UserSummary{}, "total": 0}, nil)
			return
		}
		page, limit := paginationParams(c)

		users, total, err := s.AuthService.SearchUsers(query, page, limit)
		if err != nil {
			response.JSON(c, "unable to search users", http.StatusInternalServerError, nil, err)
			return
		}
		response.JSON(c, "", http.StatusOK, gin.H{"users": users, "total": total}, nil)
	}
}

func parseUintParam(c *gin.Context, name string) (uint, error) {
	value, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil {
		return 0, err
	}
	return uint(value), nil
}

func paginationParams(c *gin.Context) (int, int) {
	page, err := strconv.Atoi(c.DefaultQuery("page", "1"))
	if err != nil || page < 1 {
		page = 1
	}
	limit, err := strconv.Atoi(c.DefaultQuery("limit", "20"))
	if err != nil || limit < 1 || limit > 100 {
		limit = 20
	}
	return page, limit
}
