package server

import (
	"errors"
	"net/http"

	errs "github.com/cookiepedia/cookiepedia/errors"
	"github.com/cookiepedia/cookiepedia/server/response"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

func (s *Server) handleGetNotifications() gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, _ := currentUserID(c)
		page, limit := paginationParams(c)

		list, err := s.NotificationService.GetUserNotifications(userID, page, limit)
		if err != nil {
			response.JSON(c, "unable to fetch notifications", http.StatusInternalServerError, nil, err)
			return
		}
		response.JSON(c, "", http.StatusOK, list, nil)
	}
}

func (s *Server) handleGetUnreadCount() gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, _ := currentUserID(c)
		count, err := s.NotificationService.UnreadCount(userID)
		if err != nil {
			response.JSON(c, "unable to fetch unread count", http.StatusInternalServerError, nil, err)
			return
		}
		response.JSON(c, "", http.StatusOK, gin.H{"unread_count": count}, nil)
	}
}

func (s *Server) handleMarkNotificationRead() gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, _ := currentUserID(c)
		notificationID, err := uuid.Parse(c.Param("notificationID"))
		if err != nil {
			response.JSON(c, "invalid notification id", http.StatusBadRequest, nil, err)
			return
		}

		notification, err := s.NotificationService.MarkRead(notificationID, userID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				response.JSON(c, "notification not found", http.StatusNotFound, nil, errs.ErrNotFound)
				return
			}
			response.JSON(c, "unable to mark notification read", http.StatusInternalServerError, nil, err)
			return
		}
		response.JSON(c, "", http.StatusOK, notification, nil)
	}
}

func (s *Server) handleMarkAllNotificationsRead() gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, _ := currentUserID(c)
		if err := s.NotificationService.MarkAllRead(userID); err != nil {
			response.JSON(c, "unable to mark notifications read", http.StatusInternalServerError, nil, err)
			return
		}
		response.JSON(c, "all notifications marked read", http.StatusOK, nil, nil)
	}
}

func (s *Server) handleDeleteNotification() gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, _ := currentUserID(c)
		notificationID, err := uuid.Parse(c.Param("notificationID"))
		if err != nil {
			response.JSON(c, "invalid notification id", http.StatusBadRequest, nil, err)
			return
		}

		if err := s.NotificationService.DeleteNotification(notificationID, userID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				response.JSON(c, "notification not found", http.StatusNotFound, nil, errs.ErrNotFound)
				return
			}
			response.JSON(c, "unable to delete notification", http.StatusInternalServerError, nil, err)
			return
		}
		response.JSON(c, "notification deleted", http.StatusOK, nil, nil)
	}
}
