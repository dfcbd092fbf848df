package server

import (
	"net/http"

	"github.com/cookiepedia/cookiepedia/models"
	"github.com/cookiepedia/cookiepedia/server/response"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

func (s *Server) handleGetConversations() gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, _ := currentUserID(c)
		conversations, err := s.ChatService.GetUserConversations(userID)
		if err != nil {
			response.JSON(c, "", err.Status, nil, err)
			return
		}
		response.JSON(c, "", http.StatusOK, conversations, nil)
	}
}

func (s *Server) handleStartConversation() gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, _ := currentUserID(c)

		var request models.CreateConversationRequest
		if err := decode(c, &request); err != nil {
			response.JSON(c, "", http.StatusBadRequest, nil, err)
			return
		}

		conversation, apiErr := s.ChatService.StartConversation(userID, request.ParticipantID)
		if apiErr != nil {
			response.JSON(c, "", apiErr.Status, nil, apiErr)
			return
		}
		response.JSON(c, "", http.StatusCreated, conversation, nil)
	}
}

func (s *Server) handleCreateGroupConversation() gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, _ := currentUserID(c)

		var request models.CreateGroupConversationRequest
		if err := decode(c, &request); err != nil {
			response.JSON(c, "", http.StatusBadRequest, nil, err)
			return
		}

		conversation, apiErr := s.ChatService.CreateGroupConversation(userID, &request)
		if apiErr != nil {
			response.JSON(c, "", apiErr.Status, nil, apiErr)
			return
		}
		response.JSON(c, "group created", http.StatusCreated, conversation, nil)
	}
}

func (s *Server) handleGetConversationMessages() gin.HandlerFunc {
	return func(c *gin.Context) {
		conversationID, err := uuid.Parse(c.Param("conversationID"))
		if err != nil {
			response.JSON(c, "invalid conversation id", http.StatusBadRequest, nil, err)
			return
		}

		messages, apiErr := s.ChatService.GetConversationMessages(conversationID)
		if apiErr != nil {
			response.JSON(c, "", apiErr.Status, nil, apiErr)
			return
		}
		response.JSON(c, "", http.StatusOK, messages, nil)
	}
}

func (s *Server) handleSendMessage() gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, _ := currentUserID(c)

		var request models.SendMessageRequest
		if err := decode(c, &request); err != nil {
			response.JSON(c, "", http.StatusBadRequest, nil, err)
			return
		}

		message, apiErr := s.ChatService.SendMessage(userID, &request)
		if apiErr != nil {
			response.JSON(c, "", apiErr.Status, nil, apiErr)
			return
		}
		response.JSON(c, "message sent", http.StatusCreated, message, nil)
	}
}

func (s *Server) handleMarkMessageRead() gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, _ := currentUserID(c)
		messageID, err := uuid.Parse(c.Param("messageID"))
		if err != nil {
			response.JSON(c, "invalid message id", http.StatusBadRequest, nil, err)
			return
		}

		readBy, apiErr := s.ChatService.MarkMessageRead(messageID, userID)
		if apiErr != nil {
			response.JSON(c, "", apiErr.Status, nil, apiErr)
			return
		}
		response.JSON(c, "", http.StatusOK, gin.H{"message_id": messageID, "read_by": readBy}, nil)
	}
}

func (s *Server) handleAddParticipant() gin.HandlerFunc {
	return func(c *gin.Context) {
		conversationID, err := uuid.Parse(c.Param("conversationID"))
		if err != nil {
			response.JSON(c, "invalid conversation id", http.StatusBadRequest, nil, err)
			return
		}

		var request struct {
			UserID uint `json:"user_id" binding:"required"`
		}
		if err := decode(c, &request); err != nil {
			response.JSON(c, "", http.StatusBadRequest, nil, err)
			return
		}

		if apiErr := s.ChatService.AddParticipant(conversationID, request.UserID); apiErr != nil {
			response.JSON(c, "", apiErr.Status, nil, apiErr)
			return
		}
		response.JSON(c, "participant added", http.StatusOK, nil, nil)
	}
}

func (s *Server) handleDeleteConversation() gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, _ := currentUserID(c)
		conversationID, err := uuid.Parse(c.Param("conversationID"))
		if err != nil {
			response.JSON(c, "invalid conversation id", http.StatusBadRequest, nil, err)
			return
		}

		if apiErr := s.ChatService.DeleteConversation(conversationID, userID); apiErr != nil {
			response.JSON(c, "", apiErr.Status, nil, apiErr)
			return
		}
		response.JSON(c, "conversation deleted", http.StatusOK, nil, nil)
	}
}
