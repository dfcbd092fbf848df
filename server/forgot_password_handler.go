package server

import (
	"net/http"

	"github.com/cookiepedia/cookiepedia/models"
	"github.com/cookiepedia/cookiepedia/server/response"
	"github.com/gin-gonic/gin"
)

func (s *Server) HandleForgotPassword() gin.HandlerFunc {
	return func(c *gin.Context) {
		var request models.ForgotPassword
		if err := decode(c, &request); err != nil {
			response.JSON(c, "", http.StatusBadRequest, nil, err)
			return
		}

		if apiErr := s.AuthService.SendEmailForPasswordReset(&request); apiErr != nil {
			response.JSON(c, "", apiErr.Status, nil, apiErr)
			return
		}
		// same response whether or not the address exists
		response.JSON(c, "Reset Password Link Sent Successfully", http.StatusOK, nil, nil)
	}
}

func (s *Server) ResetPassword() gin.HandlerFunc {
	return func(c *gin.Context) {
		var request models.ResetPassword
		if err := decode(c, &request); err != nil {
			response.JSON(c, "", http.StatusBadRequest, nil, err)
			return
		}

		token := c.Param("token")
		if apiErr := s.AuthService.ResetPassword(&request, token); apiErr != nil {
			response.JSON(c, "", apiErr.Status, nil, apiErr)
			return
		}
		response.JSON(c, "Password Reset Successfully", http.StatusOK, nil, nil)
	}
}
