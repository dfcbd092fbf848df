package server

import (
	"net/http"

	"github.com/cookiepedia/cookiepedia/models"
	"github.com/cookiepedia/cookiepedia/server/response"
	"github.com/gin-gonic/gin"
)

func (s *Server) handleCreateChannel() gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, _ := currentUserID(c)

		var request models.CreateChannelRequest
		if err := decode(c, &request); err != nil {
			response.JSON(c, "", http.StatusBadRequest, nil, err)
			return
		}

		channel, apiErr := s.ChannelService.CreateChannel(userID, &request)
		if apiErr != nil {
			response.JSON(c, "", apiErr.Status, nil, apiErr)
			return
		}
		response.JSON(c, "channel created", http.StatusCreated, channel, nil)
	}
}

func (s *Server) handleGetMyChannel() gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, _ := currentUserID(c)
		channel, apiErr := s.ChannelService.GetChannelByOwner(userID)
		if apiErr != nil {
			response.JSON(c, "", apiErr.Status, nil, apiErr)
			return
		}
		response.JSON(c, "", http.StatusOK, channel, nil)
	}
}

func (s *Server) handleGetUserChannel() gin.HandlerFunc {
	return func(c *gin.Context) {
		ownerID, err := parseUintParam(c, "userID")
		if err != nil {
			response.JSON(c, "invalid user id", http.StatusBadRequest, nil, err)
			return
		}

		channel, apiErr := s.ChannelService.GetChannelByOwner(ownerID)
		if apiErr != nil {
			response.JSON(c, "", apiErr.Status, nil, apiErr)
			return
		}
		response.JSON(c, "", http.StatusOK, channel, nil)
	}
}

func (s *Server) handleUpdateChannel() gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, _ := currentUserID(c)

		var request models.UpdateChannelRequest
		if err := decode(c, &request); err != nil {
			response.JSON(c, "", http.StatusBadRequest, nil, err)
			return
		}

		channel, apiErr := s.ChannelService.UpdateChannel(userID, &request)
		if apiErr != nil {
			response.JSON(c, "", apiErr.Status, nil, apiErr)
			return
		}
		response.JSON(c, "channel updated", http.StatusOK, channel, nil)
	}
}
