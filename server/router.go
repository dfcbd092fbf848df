package server

import (
	"fmt"
	"os"
	"time"

	ratelimit "github.com/JGLTechnologies/gin-rate-limit"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

func (s *Server) setupRouter() *gin.Engine {
	ginMode := os.Getenv("GIN_MODE")
	if ginMode == "test" {
		r := gin.New()
		s.defineRoutes(r)
		return r
	}

	r := gin.New()
	r.Use(gin.LoggerWithFormatter(func(param gin.LogFormatterParams) string {
		return fmt.Sprintf("%s - [%s] \"%s %s %s %d %s \"%s\" %s\"\n",
			param.ClientIP,
			param.TimeStamp.Format(time.RFC1123),
			param.Method,
			param.Path,
			param.Request.Proto,
			param.StatusCode,
			param.Latency,
			param.Request.UserAgent(),
			param.ErrorMessage,
		)
	}))
	r.Use(gin.Recovery())

	r.Use(cors.New(cors.Config{
		AllowAllOrigins:  true,
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE"},
		AllowHeaders:     []string{"Origin", "Authorization", "Content-Type"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))
	r.MaxMultipartMemory = 32 << 20
	s.defineRoutes(r)

	return r
}

func (s *Server) defineRoutes(router *gin.Engine) {
	store := ratelimit.InMemoryStore(&ratelimit.InMemoryOptions{Rate: time.Minute, Limit: 3})
	limitRate := limitRateForPasswordReset(store)

	apirouter := router.Group("/api/v1")
	apirouter.GET("/health", s.handleHealthCheck())

	apirouter.POST("/auth/signup", s.handleSignup())
	apirouter.POST("/auth/verify-email", s.handleVerifyEmail())
	apirouter.POST("/auth/login", s.handleLogin())
	apirouter.GET("/google/login", s.HandleGoogleLogin())
	apirouter.GET("/auth/google/callback", s.HandleGoogleCallback())
	apirouter.POST("/password/forgot", limitRate, s.HandleForgotPassword())
	apirouter.POST("/password/reset/:token", s.ResetPassword())

	apirouter.GET("/search/suggestions", s.handleSearchSuggestions())
	apirouter.GET("/search/popular", s.handlePopularSearches())
	apirouter.GET("/search/categories", s.handleSearchCategories())
	apirouter.POST("/chat", s.handleChatbot())

	apirouter.GET("/ws", s.handleWebsocket())

	authorized := apirouter.Group("/")
	authorized.Use(s.Authorize())
	authorized.GET("/logout", s.handleLogout())
	authorized.GET("/me", s.handleShowProfile())
	authorized.PUT("/me", s.handleEditUserProfile())
	authorized.PUT("/me/avatar", s.handleUpdateProfilePicture())
	authorized.POST("/me/device-token", s.handleRegisterDeviceToken())
	authorized.GET("/profile/:username", s.handleGetUserProfile())
	authorized.GET("/search/users", s.handleSearchUsers())
	authorized.POST("/users/:userID/follow", s.handleFollowUser())
	authorized.DELETE("/users/:userID/follow", s.handleUnfollowUser())
	authorized.GET("/users/:userID/followers", s.handleGetFollowers())
	authorized.GET("/users/:userID/following", s.handleGetFollowing())

	authorized.POST("/channels", s.handleCreateChannel())
	authorized.GET("/channels/me", s.handleGetMyChannel())
	authorized.GET("/channels/user/:userID", s.handleGetUserChannel())
	authorized.PUT("/channels/me", s.handleUpdateChannel())

	authorized.GET("/conversations", s.handleGetConversations())
	authorized.POST("/conversations", s.handleStartConversation())
	authorized.POST("/group-conversations", s.handleCreateGroupConversation())
	authorized.GET("/conversations/:conversationID/messages", s.handleGetConversationMessages())
	authorized.POST("/conversations/:conversationID/participants", s.handleAddParticipant())
	authorized.DELETE("/conversations/:conversationID", s.handleDeleteConversation())
	authorized.POST("/messages", s.handleSendMessage())
	authorized.POST("/messages/:messageID/read", s.handleMarkMessageRead())

	authorized.GET("/notifications", s.handleGetNotifications())
	authorized.GET("/notifications/unread-count", s.handleGetUnreadCount())
	authorized.PATCH("/notifications/:notificationID/read", s.handleMarkNotificationRead())
	authorized.POST("/notifications/read-all", s.handleMarkAllNotificationsRead())
	authorized.DELETE("/notifications/:notificationID", s.handleDeleteNotification())

	authorized.GET("/reels", s.handleGetReelFeed())
	authorized.POST("/reels", s.handleCreateReel())
	authorized.GET("/reels/:reelID", s.handleGetReel())
	authorized.POST("/reels/upload", s.handleUploadReelMedia())
	authorized.PUT("/reels/:reelID/like", s.handleToggleReelLike())
}
