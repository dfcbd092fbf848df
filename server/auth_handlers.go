package server

import (
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"time"

	errs "github.com/cookiepedia/cookiepedia/errors"
	"github.com/cookiepedia/cookiepedia/models"
	"github.com/cookiepedia/cookiepedia/server/response"
	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt"
	"github.com/google/uuid"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
)

func (s *Server) handleHealthCheck() gin.HandlerFunc {
	return func(c *gin.Context) {
		response.JSON(c, "ok", http.StatusOK, gin.H{
			"uptime":    time.Now().UTC().Format(time.RFC3339),
			"live_conn": s.Registry.Len(),
		}, nil)
	}
}

func (s *Server) handleSignup() gin.HandlerFunc {
	return func(c *gin.Context) {
		var request models.SignupRequest
		if err := decode(c, &request); err != nil {
			response.JSON(c, "", http.StatusBadRequest, nil, err)
			return
		}

		if err := s.AuthService.SignupUser(&request); err != nil {
			response.JSON(c, "", err.Status, nil, err)
			return
		}
		response.JSON(c, "Signup successful, check your email for the verification code", http.StatusCreated, nil, nil)
	}
}

func (s *Server) handleVerifyEmail() gin.HandlerFunc {
	return func(c *gin.Context) {
		var request models.VerifyEmailRequest
		if err := decode(c, &request); err != nil {
			response.JSON(c, "", http.StatusBadRequest, nil, err)
			return
		}

		user, err := s.AuthService.VerifyEmail(&request)
		if err != nil {
			response.JSON(c, "", err.Status, nil, err)
			return
		}
		response.JSON(c, "email verified, you can now log in", http.StatusOK, user, nil)
	}
}

func (s *Server) handleLogin() gin.HandlerFunc {
	return func(c *gin.Context) {
		var loginRequest models.LoginRequest
		if err := decode(c, &loginRequest); err != nil {
			response.JSON(c, "", errs.ErrBadRequest.Status, nil, err)
			return
		}
		userResponse, err := s.AuthService.LoginUser(&loginRequest)
		if err != nil {
			response.JSON(c, "", err.Status, nil, err)
			return
		}
		response.JSON(c, "login successful", http.StatusOK, userResponse, nil)
	}
}

func (s *Server) handleLogout() gin.HandlerFunc {
	return func(c *gin.Context) {
		accessToken, exists := c.Get("access_token")
		user, userExists := c.Get("user")
		if !exists || !userExists {
			response.JSON(c, "", http.StatusUnauthorized, nil, errs.New("Unauthorized", http.StatusUnauthorized))
			return
		}

		blacklist := &models.Blacklist{
			Token: accessToken.(string),
			Email: user.(*models.User).Email,
		}
		if err := s.AuthRepository.AddToBlackList(blacklist); err != nil {
			log.Printf("error blacklisting token: %v", err)
			response.JSON(c, "logout failed", http.StatusInternalServerError, nil, errs.ErrInternalServerError)
			return
		}
		response.JSON(c, "logout successful", http.StatusOK, nil, nil)
	}
}

func (s *Server) googleOauthConfig() *oauth2.Config {
	return &oauth2.Config{
		ClientID:     s.Config.GoogleClientID,
		ClientSecret: s.Config.GoogleClientSecret,
		RedirectURL:  s.Config.GoogleRedirectURL,
		Endpoint:     google.Endpoint,
		Scopes: []string{
			"https://www.googleapis.com/auth/userinfo.email",
			"https://www.googleapis.com/auth/userinfo.profile",
		},
	}
}

// generateJWTState signs a short-lived state token so the callback can
// verify the redirect came from us without server-side session state.
func generateJWTState(secret string) (string, error) {
	claims := jwt.MapClaims{
		"exp":   time.Now().Add(10 * time.Minute).Unix(),
		"iat":   time.Now().Unix(),
		"state": uuid.New().String(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signedToken, err := token.SignedString([]byte(secret))
	if err != nil {
		return "", fmt.Errorf("failed to sign JWT token: %w", err)
	}
	return signedToken, nil
}

func verifyState(state string, secret string) bool {
	token, err := jwt.Parse(state, func(token *jwt.Token) (interface{}, error) {
		return []byte(secret), nil
	})
	return err == nil && token.Valid
}

func (s *Server) HandleGoogleLogin() gin.HandlerFunc {
	return func(c *gin.Context) {
		state, err := generateJWTState(s.Config.JWTSecret)
		if err != nil {
			response.JSON(c, "Failed to generate state", http.StatusInternalServerError, nil, errs.ErrInternalServerError)
			return
		}

		authURL := s.googleOauthConfig().AuthCodeURL(state, oauth2.AccessTypeOffline)
		c.Redirect(http.StatusTemporaryRedirect, authURL)
	}
}

func (s *Server) HandleGoogleCallback() gin.HandlerFunc {
	return func(c *gin.Context) {
		code := c.Query("code")
		state := c.Query("state")

		if !verifyState(state, s.Config.JWTSecret) {
			response.JSON(c, "Invalid or expired state", http.StatusForbidden, nil, errs.New("Invalid or expired state", http.StatusForbidden))
			return
		}

		token, err := s.googleOauthConfig().Exchange(c.Request.Context(), code)
		if err != nil {
			log.Printf("token exchange failed: %v", err)
			response.JSON(c, "Token exchange failed", http.StatusInternalServerError, nil, errs.ErrInternalServerError)
			return
		}

		userData, err := s.getUserDataFromGoogle(token.AccessToken)
		if err != nil {
			log.Printf("failed to fetch user information: %v", err)
			response.JSON(c, "Failed to fetch user information", http.StatusInternalServerError, nil, errs.ErrInternalServerError)
			return
		}
		if userData.Email == "" {
			response.JSON(c, "Invalid user data: email missing", http.StatusBadRequest, nil, errs.ErrBadRequest)
			return
		}

		loginResponse, apiErr := s.AuthService.GoogleLoginUser(userData)
		if apiErr != nil {
			response.JSON(c, "", apiErr.Status, nil, apiErr)
			return
		}
		response.JSON(c, "login successful", http.StatusOK, loginResponse, nil)
	}
}

func (s *Server) getUserDataFromGoogle(accessToken string) (*models.CreateSocialUserParams, error) {
	resp, err := http.Get("https://www.googleapis.com/oauth2/v2/userinfo?access_token=" + accessToken)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("userinfo request failed with status %d", resp.StatusCode)
	}

	var params models.CreateSocialUserParams
	if err := json.NewDecoder(resp.Body).Decode(&params); err != nil {
		return nil, err
	}
	return &params, nil
}
