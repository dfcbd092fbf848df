package errors

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	ratelimit "github.com/JGLTechnologies/gin-rate-limit"
	"github.com/gin-gonic/gin"
)

// Error is the API error type. It carries the HTTP status the handler
// should respond with.
type Error struct {
	Message string `json:"message"`
	Status  int    `json:"status"`
}

var (
	ErrInternalServerError = New("internal server error", http.StatusInternalServerError)
	ErrNotFound            = New("not found", http.StatusNotFound)
	ErrBadRequest          = New("bad request", http.StatusBadRequest)
	ErrUnauthorized        = New("unauthorized", http.StatusUnauthorized)
	ErrInvalidPassword     = New("invalid password", http.StatusUnauthorized)
	InActiveUserError      = errors.New("user inactive")
)

func New(message string, status int) *Error {
	return &Error{
		Message: message,
		Status:  status,
	}
}

func (e *Error) Error() string {
	return fmt.Sprintf("%d: %s", e.Status, e.Message)
}

// GetUniqueContraintError maps a postgres unique-constraint violation to a
// client-facing conflict error; anything else stays an internal error.
func GetUniqueContraintError(err error) *Error {
	if err == nil {
		return nil
	}
	msg := err.Error()
	if strings.Contains(msg, "duplicate key value") || strings.Contains(msg, "23505") {
		switch {
		case strings.Contains(msg, "email"):
			return New("email already in use", http.StatusConflict)
		case strings.Contains(msg, "username"):
			return New("username already taken", http.StatusConflict)
		default:
			return New("record already exists", http.StatusConflict)
		}
	}
	return ErrInternalServerError
}

// ErrorHandler is the gin-rate-limit error handler.
func ErrorHandler(c *gin.Context, info ratelimit.Info) {
	c.JSON(http.StatusTooManyRequests, gin.H{
		"errors": fmt.Sprintf("too many requests, try again in %s", time.Until(info.ResetTime).Round(time.Second)),
	})
	c.Abort()
}
